package controllers

import (
	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/game"
	"github.com/DedS3t/rich-backend/platform/queries"
	"github.com/sirupsen/logrus"
)

type History interface {
	ListResults(limit, offset int) ([]models.GameResult, error)
	ResultsForRoom(roomId string) ([]models.GameResult, error)
}

// Controllers holds what the HTTP handlers read from. Mirror and History may be nil.
type Controllers struct {
	Games   *game.Manager
	Mirror  queries.MirroredRooms
	History History
	Admin   models.Admin
	Secret  []byte
	Log     *logrus.Entry
}

func (h *Controllers) log() *logrus.Entry {
	if h.Log == nil {
		return logrus.WithField("component", "http")
	}
	return h.Log
}
