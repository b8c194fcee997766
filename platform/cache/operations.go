package cache

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

const (
	keyPrefix = "rich:room:"
	roomsKey  = "rich:rooms"
)

func RoomKey(roomId string) string {
	return keyPrefix + roomId
}

func Get(key string, conn redis.Conn) ([]byte, error) {
	return redis.Bytes(conn.Do("GET", key))
}

func SetEx(key string, value interface{}, ttl time.Duration, conn redis.Conn) error {
	reply, err := redis.String(conn.Do("SET", key, value, "EX", int(ttl/time.Second)))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return fmt.Errorf("unexpected SET reply %q", reply)
	}
	return nil
}

func Del(key string, conn redis.Conn) error {
	_, err := conn.Do("DEL", key)
	return err
}

func SAdd(key, member string, conn redis.Conn) error {
	_, err := conn.Do("SADD", key, member)
	return err
}

func SRem(key, member string, conn redis.Conn) error {
	_, err := conn.Do("SREM", key, member)
	return err
}

func SMembers(key string, conn redis.Conn) ([]string, error) {
	return redis.Strings(conn.Do("SMEMBERS", key))
}

// RoomMirror keeps a read-only copy of every live room in redis.
type RoomMirror struct {
	pool Pool
	ttl  time.Duration
}

func NewRoomMirror(pool Pool, ttl time.Duration) *RoomMirror {
	if ttl < time.Second {
		ttl = time.Hour
	}
	return &RoomMirror{pool: pool, ttl: ttl}
}

func (r *RoomMirror) SaveRoom(roomId string, snapshot []byte) error {
	conn := r.pool.Get()
	defer conn.Close()

	if err := SetEx(RoomKey(roomId), snapshot, r.ttl, conn); err != nil {
		return fmt.Errorf("mirror room %s: %w", roomId, err)
	}
	if err := SAdd(roomsKey, roomId, conn); err != nil {
		return fmt.Errorf("index room %s: %w", roomId, err)
	}
	return nil
}

func (r *RoomMirror) DeleteRoom(roomId string) error {
	conn := r.pool.Get()
	defer conn.Close()

	if err := Del(RoomKey(roomId), conn); err != nil {
		return fmt.Errorf("drop room %s: %w", roomId, err)
	}
	return SRem(roomsKey, roomId, conn)
}

// LoadRoom returns the mirrored snapshot, or nil when the room is not mirrored.
func (r *RoomMirror) LoadRoom(roomId string) ([]byte, error) {
	conn := r.pool.Get()
	defer conn.Close()

	raw, err := Get(RoomKey(roomId), conn)
	if err == redis.ErrNil {
		return nil, nil
	}
	return raw, err
}

func (r *RoomMirror) RoomIds() ([]string, error) {
	conn := r.pool.Get()
	defer conn.Close()
	return SMembers(roomsKey, conn)
}
