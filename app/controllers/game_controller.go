package controllers

import (
	"strconv"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/game"
	"github.com/DedS3t/rich-backend/platform/queries"
	"github.com/gofiber/fiber/v2"
)

func (h *Controllers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "rooms": len(h.Games.Rooms())})
}

func (h *Controllers) Board(c *fiber.Ctx) error {
	return c.JSON(game.StaticConfig())
}

func (h *Controllers) GetAllRooms(c *fiber.Ctx) error {
	return c.JSON(h.Games.Rooms())
}

func (h *Controllers) VerifyGame(c *fiber.Ctx) error {
	dto := new(models.VerifyGameDto)
	if err := c.QueryParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	ok := queries.VerifyGame(game.NormalizeRoomId(dto.Code), h.Games)
	return c.JSON(fiber.Map{"status": ok})
}

func (h *Controllers) Snapshot(c *fiber.Ctx) error {
	roomId := game.NormalizeRoomId(c.Params("id"))
	raw, ok, err := queries.RoomSnapshot(roomId, h.Games, h.Mirror)
	if err != nil {
		h.log().WithError(err).WithField("room_id", roomId).Warn("snapshot lookup failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorPayload{Code: models.ErrRoomNotFound, Message: "room does not exist"})
	}
	c.Type("json")
	return c.Send(raw)
}

func (h *Controllers) GetHistory(c *fiber.Ctx) error {
	if h.History == nil {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}
	var (
		results []models.GameResult
		err     error
	)
	if room := c.Query("room"); room != "" {
		results, err = h.History.ResultsForRoom(game.NormalizeRoomId(room))
	} else {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		limit, offset = queries.ClampPage(limit, offset)
		results, err = h.History.ListResults(limit, offset)
	}
	if err != nil {
		h.log().WithError(err).Error("list results")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if results == nil {
		results = []models.GameResult{}
	}
	return c.JSON(results)
}

// CloseRoom destroys a live room.
func (h *Controllers) CloseRoom(c *fiber.Ctx) error {
	roomId := game.NormalizeRoomId(c.Params("id"))
	if err := h.Games.CloseRoom(roomId); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(game.ToPayload(err))
	}
	h.log().WithField("room_id", roomId).Info("room closed by admin")
	return c.SendStatus(fiber.StatusNoContent)
}
