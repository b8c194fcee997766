package pkg

import (
	"strings"
	"testing"
)

func TestRandString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		s := RandString(6)
		if len(s) != 6 {
			t.Fatalf("expected 6 chars, got %q", s)
		}
		for _, r := range s {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("unexpected rune %q in %q", r, s)
			}
		}
		seen[s] = true
	}
	if len(seen) < 190 {
		t.Fatalf("codes should rarely collide, got %d distinct of 200", len(seen))
	}
}
