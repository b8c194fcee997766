package game

import "sync"

// SessionRef is what a transport connection is bound to.
type SessionRef struct {
	RoomId    string
	PlayerId  string
	Spectator bool
}

// SessionIndex maps connections to seats and seats back to their current connection.
type SessionIndex struct {
	mu     sync.Mutex
	byConn map[string]SessionRef
	bySeat map[string]string
}

func NewSessionIndex() *SessionIndex {
	return &SessionIndex{
		byConn: make(map[string]SessionRef),
		bySeat: make(map[string]string),
	}
}

func seatKey(roomId, playerId string) string {
	return roomId + ":" + playerId
}

// Bind attaches connId to ref. If the seat was held by another connection, that
// connection's mapping is dropped and its id returned so the caller can kick it.
func (s *SessionIndex) Bind(connId string, ref SessionRef) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byConn[connId]; ok {
		key := seatKey(old.RoomId, old.PlayerId)
		if s.bySeat[key] == connId {
			delete(s.bySeat, key)
		}
	}

	key := seatKey(ref.RoomId, ref.PlayerId)
	previous := s.bySeat[key]
	if previous == connId {
		previous = ""
	}
	if previous != "" {
		delete(s.byConn, previous)
	}
	s.byConn[connId] = ref
	s.bySeat[key] = connId
	return previous
}

func (s *SessionIndex) Lookup(connId string) (SessionRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.byConn[connId]
	return ref, ok
}

func (s *SessionIndex) ConnFor(roomId, playerId string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	connId, ok := s.bySeat[seatKey(roomId, playerId)]
	return connId, ok
}

// Unbind drops connId. The seat mapping is only removed if it still points at connId.
func (s *SessionIndex) Unbind(connId string) (SessionRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.byConn[connId]
	if !ok {
		return SessionRef{}, false
	}
	delete(s.byConn, connId)
	key := seatKey(ref.RoomId, ref.PlayerId)
	if s.bySeat[key] == connId {
		delete(s.bySeat, key)
	}
	return ref, true
}

// PurgeSeat removes both directions for a seat and returns the connection it had.
func (s *SessionIndex) PurgeSeat(roomId, playerId string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := seatKey(roomId, playerId)
	connId, ok := s.bySeat[key]
	if !ok {
		return ""
	}
	delete(s.bySeat, key)
	delete(s.byConn, connId)
	return connId
}

// PurgeRoom removes every mapping of a room and returns the affected connections.
func (s *SessionIndex) PurgeRoom(roomId string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var conns []string
	for connId, ref := range s.byConn {
		if ref.RoomId != roomId {
			continue
		}
		conns = append(conns, connId)
		delete(s.byConn, connId)
		delete(s.bySeat, seatKey(ref.RoomId, ref.PlayerId))
	}
	return conns
}

func (s *SessionIndex) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byConn)
}
