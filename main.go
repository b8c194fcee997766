package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DedS3t/rich-backend/app/controllers"
	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/pkg/routes"
	"github.com/DedS3t/rich-backend/platform/cache"
	"github.com/DedS3t/rich-backend/platform/config"
	"github.com/DedS3t/rich-backend/platform/database"
	"github.com/DedS3t/rich-backend/platform/game"
	"github.com/DedS3t/rich-backend/platform/logging"
	"github.com/DedS3t/rich-backend/platform/queries"
	socket "github.com/DedS3t/rich-backend/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	sockets, err := socket.NewServer(logging.Component("sockets"))
	if err != nil {
		logrus.WithError(err).Fatal("create socket.io server")
	}

	h := &controllers.Controllers{
		Admin:  models.Admin{Username: cfg.AdminUser, PasswordHash: cfg.AdminPasswordHash},
		Secret: []byte(cfg.JWTSecret),
		Log:    logging.Component("http"),
	}
	opts := []game.Option{game.WithLogger(logging.Component("game"))}

	if cfg.RedisURL != "" {
		pool := cache.CreateRedisPool(cfg.RedisURL)
		defer pool.Close()
		mirror := cache.NewRoomMirror(pool, cfg.RoomIdleTTL)
		opts = append(opts, game.WithMirror(mirror))
		h.Mirror = mirror
	} else {
		logrus.Info("REDIS_URL not set, room mirror disabled")
	}

	if cfg.DBAddr != "" {
		db := database.PostgreSQLConnection(database.Options{
			Addr:     cfg.DBAddr,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Database: cfg.DBName,
		})
		defer db.Close()
		if err := database.CreateSchema(db); err != nil {
			logrus.WithError(err).Fatal("create schema")
		}
		archive := queries.NewArchive(db)
		opts = append(opts, game.WithArchive(archive))
		h.History = archive
	} else {
		logrus.Info("DB_ADDR not set, result archive disabled")
	}

	m := game.NewManager(cfg.Game(), sockets, opts...)
	h.Games = m
	sockets.Bind(m)
	sockets.Serve()
	defer sockets.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go m.RunSweeper(ctx, cfg.SweepInterval)

	go func() {
		logrus.WithField("addr", cfg.SocketAddr).Info("socket.io listening")
		if err := http.ListenAndServe(cfg.SocketAddr, sockets.Handler(cfg.CorsOrigins)); err != nil {
			logrus.WithError(err).Fatal("socket.io listener")
		}
	}()

	app := fiber.New()
	app.Use(cors.New())
	routes.AuthRoutes(app, h)
	routes.GameRoutes(app, h)
	routes.AdminRoutes(app, h)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logrus.WithError(err).Fatal("http listener")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Warn("http shutdown")
	}
}
