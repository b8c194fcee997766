package pkg

import (
	"math/rand"
	"sync"
	"time"
)

// Alphabet used for room codes and player ids. 0/O and 1/I are left out.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var (
	srcMu sync.Mutex
	src   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func RandString(n int) string {
	b := make([]byte, n)
	srcMu.Lock()
	for i := range b {
		b[i] = Alphabet[src.Intn(len(Alphabet))]
	}
	srcMu.Unlock()
	return string(b)
}
