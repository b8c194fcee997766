package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DedS3t/rich-backend/platform/game"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	SocketAddr  string
	CorsOrigins []string

	RedisURL string

	DBAddr     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string

	ActionTimeout  time.Duration
	SweepInterval  time.Duration
	EmptyRoomGrace time.Duration
	RoomIdleTTL    time.Duration
	InitialCash    int

	LogLevel  string
	LogFormat string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) Config {
	str := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	num := func(key string, def int) int {
		v, err := strconv.Atoi(strings.TrimSpace(getenv(key)))
		if err != nil || v <= 0 {
			return def
		}
		return v
	}

	var origins []string
	for _, o := range strings.Split(str("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		HTTPAddr:          str("HTTP_ADDR", ":4101"),
		SocketAddr:        str("SOCKET_ADDR", ":8000"),
		CorsOrigins:       origins,
		RedisURL:          str("REDIS_URL", ""),
		DBAddr:            str("DB_ADDR", ""),
		DBUser:            str("DB_USER", ""),
		DBPassword:        str("DB_PASSWORD", ""),
		DBName:            str("DB_NAME", ""),
		JWTSecret:         str("JWT_SECRET", "secret"),
		AdminUser:         str("ADMIN_USER", "admin"),
		AdminPasswordHash: str("ADMIN_PASSWORD_HASH", ""),
		ActionTimeout:     time.Duration(num("ACTION_TIMEOUT_SECONDS", 20)) * time.Second,
		SweepInterval:     time.Duration(num("SWEEP_INTERVAL_SECONDS", 30)) * time.Second,
		EmptyRoomGrace:    time.Duration(num("EMPTY_ROOM_GRACE_SECONDS", 90)) * time.Second,
		RoomIdleTTL:       time.Duration(num("ROOM_IDLE_TTL_MINUTES", 120)) * time.Minute,
		InitialCash:       num("DEFAULT_INITIAL_CASH", 15000),
		LogLevel:          str("LOG_LEVEL", "info"),
		LogFormat:         str("LOG_FORMAT", "text"),
	}
}

// Game derives the room engine settings.
func (c Config) Game() game.Config {
	g := game.DefaultConfig()
	g.ActionTimeout = c.ActionTimeout
	g.EmptyRoomGrace = c.EmptyRoomGrace
	g.IdleTTL = c.RoomIdleTTL
	if c.InitialCash >= g.MinInitialCash && c.InitialCash <= g.MaxInitialCash {
		g.DefaultInitialCash = c.InitialCash
	}
	return g
}
