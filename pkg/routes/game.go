package routes

import (
	"github.com/DedS3t/rich-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, h *controllers.Controllers) {
	a.Get("/health", h.Health)

	route := a.Group("/game")
	route.Get("/board", h.Board)
	route.Get("/rooms", h.GetAllRooms)
	route.Get("/verify", h.VerifyGame)
	route.Get("/history", h.GetHistory)
	route.Get("/:id/snapshot", h.Snapshot)
}
