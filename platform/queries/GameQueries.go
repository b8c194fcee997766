package queries

import (
	"fmt"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/go-pg/pg/v10/orm"
)

const maxHistory = 100

// Archive stores finished matches in postgres.
type Archive struct {
	db orm.DB
}

func NewArchive(db orm.DB) *Archive {
	return &Archive{db: db}
}

func (a *Archive) SaveResult(result *models.GameResult) error {
	if _, err := a.db.Model(result).Insert(); err != nil {
		return fmt.Errorf("archive result for room %s: %w", result.RoomId, err)
	}
	return nil
}

// ListResults returns the most recent matches first.
func (a *Archive) ListResults(limit, offset int) ([]models.GameResult, error) {
	limit, offset = ClampPage(limit, offset)
	var results []models.GameResult
	err := a.db.Model(&results).
		Order("ended_at DESC").
		Limit(limit).
		Offset(offset).
		Select()
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ResultsForRoom returns the matches played under one room code, newest first.
func (a *Archive) ResultsForRoom(roomId string) ([]models.GameResult, error) {
	var results []models.GameResult
	err := a.db.Model(&results).
		Where("room_id = ?", roomId).
		Order("ended_at DESC").
		Limit(maxHistory).
		Select()
	if err != nil {
		return nil, err
	}
	return results, nil
}
