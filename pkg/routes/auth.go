package routes

import (
	"github.com/DedS3t/rich-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

func AuthRoutes(a *fiber.App, h *controllers.Controllers) {
	route := a.Group("/user")
	route.Post("/login", h.Login)
	route.Get("/cur", protected(h.Secret), h.Cur)
}

func AdminRoutes(a *fiber.App, h *controllers.Controllers) {
	route := a.Group("/admin", protected(h.Secret))
	route.Get("/rooms", h.GetAllRooms)
	route.Delete("/rooms/:id", h.CloseRoom)
}

func protected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: secret,
	})
}
