package controllers

import (
	"time"

	"github.com/DedS3t/rich-backend/app/models"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// Login issues an admin token for a valid username and password.
func (h *Controllers) Login(c *fiber.Ctx) error {
	dto := new(models.UserDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if h.Admin.PasswordHash == "" || dto.Username != h.Admin.Username {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.Admin.PasswordHash), []byte(dto.Pass)); err != nil {
		h.log().WithField("username", dto.Username).Warn("admin login failed")
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = dto.Username
	claims["exp"] = time.Now().Add(tokenTTL).Unix()
	t, err := token.SignedString(h.Secret)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t})
}

func (h *Controllers) Cur(c *fiber.Ctx) error {
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	return c.SendString(sub)
}
