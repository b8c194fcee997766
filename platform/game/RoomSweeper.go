package game

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweep destroys abandoned rooms and returns how many were removed. A room is abandoned once nobody
// has been connected for the grace window, or when no player is connected and it has been idle past the TTL.
func (m *Manager) Sweep() int {
	now := m.now()
	m.mu.RLock()
	recs := make([]*roomRecord, 0, len(m.rooms))
	for _, rec := range m.rooms {
		recs = append(recs, rec)
	}
	m.mu.RUnlock()

	removed := 0
	for _, rec := range recs {
		rec.mu.Lock()
		if rec.destroyed {
			rec.mu.Unlock()
			continue
		}
		st := rec.state
		expired := false
		if connectedParticipants(st) == 0 {
			if rec.emptySince.IsZero() {
				rec.emptySince = now
			} else if now.Sub(rec.emptySince) >= m.cfg.EmptyRoomGrace {
				expired = true
			}
		}
		idle := time.Duration(now.UnixNano()/int64(time.Millisecond)-st.LastActiveAt) * time.Millisecond
		if len(connectedSeats(st)) == 0 && idle >= m.cfg.IdleTTL {
			expired = true
		}
		if expired {
			m.destroyLocked(rec)
		}
		rec.mu.Unlock()

		if expired {
			m.forget(rec)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps on every tick until ctx is cancelled.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.log.WithField("rooms", n).Info("swept abandoned rooms")
			}
		}
	}
}

// destroyLocked tears a room down. The caller holds rec.mu.
func (m *Manager) destroyLocked(rec *roomRecord) {
	st := rec.state
	rec.destroyed = true
	m.clearGate(rec)
	rec.trade = nil
	rec.dirty = false
	for _, connId := range m.sessions.PurgeRoom(st.RoomId) {
		m.out.Leave(connId, st.RoomId)
	}
	if m.mirror != nil {
		if err := m.mirror.DeleteRoom(st.RoomId); err != nil {
			m.log.WithError(err).WithField("room_id", st.RoomId).Warn("could not delete room snapshot")
		}
	}
	m.log.WithFields(logrus.Fields{"room_id": st.RoomId, "status": st.Status}).Info("room destroyed")
}

func (m *Manager) forget(rec *roomRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[rec.state.RoomId] == rec {
		delete(m.rooms, rec.state.RoomId)
	}
}
