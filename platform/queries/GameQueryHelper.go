package queries

import (
	"encoding/json"

	"github.com/DedS3t/rich-backend/app/models"
)

type LiveRooms interface {
	Snapshot(roomId string) (*models.Room, bool)
}

type MirroredRooms interface {
	LoadRoom(roomId string) ([]byte, error)
}

func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxHistory {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// RoomSnapshot serves a room from memory, falling back to the redis mirror.
// mirror may be nil.
func RoomSnapshot(roomId string, live LiveRooms, mirror MirroredRooms) (json.RawMessage, bool, error) {
	if st, ok := live.Snapshot(roomId); ok {
		raw, err := json.Marshal(st)
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	}
	if mirror == nil {
		return nil, false, nil
	}
	raw, err := mirror.LoadRoom(roomId)
	if err != nil || raw == nil {
		return nil, false, err
	}
	return json.RawMessage(raw), true, nil
}

// VerifyGame reports whether a room code can still be joined.
func VerifyGame(roomId string, live LiveRooms) bool {
	st, ok := live.Snapshot(roomId)
	return ok && st.Status != models.RoomEnded
}
