package game

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/sirupsen/logrus"
)

type sent struct {
	target  string
	event   string
	payload interface{}
}

type fakeOut struct {
	mu     sync.Mutex
	sent   []sent
	joined map[string]string
	kicked []string
}

func newFakeOut() *fakeOut {
	return &fakeOut{joined: make(map[string]string)}
}

func (f *fakeOut) BroadcastToRoom(roomId, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{target: roomId, event: event, payload: payload})
}

func (f *fakeOut) EmitTo(connId, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{target: connId, event: event, payload: payload})
}

func (f *fakeOut) Join(connId, roomId string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joined[connId] = roomId
}

func (f *fakeOut) Leave(connId, roomId string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.joined[connId] == roomId {
		delete(f.joined, connId)
	}
}

func (f *fakeOut) Disconnect(connId string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicked = append(f.kicked, connId)
}

func (f *fakeOut) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sent {
		if s.event == event {
			n++
		}
	}
	return n
}

// first returns the position of the first event of that name, or -1.
func (f *fakeOut) first(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.sent {
		if s.event == event {
			return i
		}
	}
	return -1
}

func (f *fakeOut) last(event string) (sent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].event == event {
			return f.sent[i], true
		}
	}
	return sent{}, false
}

func (f *fakeOut) wasKicked(connId string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range f.kicked {
		if k == connId {
			return true
		}
	}
	return false
}

// scriptedRand replays vals in order and returns 0 once exhausted.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	if r.i >= len(r.vals) {
		return 0
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

func (r *scriptedRand) push(vals ...int) {
	r.vals = append(r.vals, vals...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeMirror struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
}

func (f *fakeMirror) SaveRoom(roomId string, snapshot []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[roomId] = snapshot
	return nil
}

func (f *fakeMirror) DeleteRoom(roomId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, roomId)
	f.deleted = append(f.deleted, roomId)
	return nil
}

type fakeArchive struct {
	results []*models.GameResult
}

func (f *fakeArchive) SaveResult(result *models.GameResult) error {
	f.results = append(f.results, result)
	return nil
}

type harness struct {
	m       *Manager
	out     *fakeOut
	rng     *scriptedRand
	clock   *fakeClock
	mirror  *fakeMirror
	archive *fakeArchive
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.Out = io.Discard
	return logrus.NewEntry(l)
}

func newHarness(t *testing.T, tweak ...func(*Config)) *harness {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ActionTimeout = time.Hour
	for _, fn := range tweak {
		fn(&cfg)
	}
	h := &harness{
		out:     newFakeOut(),
		rng:     &scriptedRand{},
		clock:   &fakeClock{now: time.Unix(1700000000, 0)},
		mirror:  &fakeMirror{},
		archive: &fakeArchive{},
	}
	h.m = NewManager(cfg, h.out,
		WithRandomizer(h.rng),
		WithClock(h.clock.Now),
		WithMirror(h.mirror),
		WithArchive(h.archive),
		WithLogger(quietLogger()),
	)
	return h
}

// startGame seats Alice (c1/t1) and Bob (c2/t2) and starts the match with Alice to roll.
func (h *harness) startGame(t *testing.T) (roomId, alice, bob string) {
	t.Helper()
	created, err := h.m.CreateRoom("c1", "Alice", "t1")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	roomId = created.RoomId
	joined, err := h.m.JoinRoom("c2", roomId, "Bob", "t2")
	if err != nil {
		t.Fatalf("join room: %v", err)
	}
	if _, err := h.m.SelectCharacter("c1", roomId, "caocao"); err != nil {
		t.Fatalf("select character: %v", err)
	}
	if _, err := h.m.SelectCharacter("c2", roomId, "liubei"); err != nil {
		t.Fatalf("select character: %v", err)
	}
	for _, conn := range []string{"c1", "c2"} {
		if _, err := h.m.ToggleReady(conn, roomId); err != nil {
			t.Fatalf("toggle ready: %v", err)
		}
	}
	if _, err := h.m.StartGame("c1", roomId); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return roomId, created.PlayerId, joined.PlayerId
}

// mutate edits live room state under the room lock.
func (h *harness) mutate(t *testing.T, roomId string, fn func(st *models.Room)) {
	t.Helper()
	rec := h.m.room(roomId)
	if rec == nil {
		t.Fatalf("room %s not found", roomId)
	}
	rec.mu.Lock()
	fn(rec.state)
	rec.mu.Unlock()
}

func (h *harness) snapshot(t *testing.T, roomId string) *models.Room {
	t.Helper()
	st, ok := h.m.Snapshot(roomId)
	if !ok {
		t.Fatalf("room %s not found", roomId)
	}
	return st
}

func expectCode(t *testing.T, err error, code models.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil error", code)
	}
	if got := CodeOf(err); got != code {
		t.Fatalf("expected %s, got %s (%v)", code, got, err)
	}
}
