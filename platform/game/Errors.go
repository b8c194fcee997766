package game

import (
	"errors"
	"fmt"

	"github.com/DedS3t/rich-backend/app/models"
)

// GameError is a rejected request. Code is part of the closed taxonomy shared with clients.
type GameError struct {
	Code    models.ErrorCode
	Message string
}

func (e *GameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code models.ErrorCode, format string, args ...interface{}) *GameError {
	return &GameError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ToPayload maps any error to an acknowledgement payload.
func ToPayload(err error) models.ErrorPayload {
	var ge *GameError
	if errors.As(err, &ge) {
		return models.ErrorPayload{Ok: false, Code: ge.Code, Message: ge.Message}
	}
	return models.ErrorPayload{Ok: false, Code: models.ErrInvalidPayload, Message: err.Error()}
}

func CodeOf(err error) models.ErrorCode {
	return ToPayload(err).Code
}

func errRoomNotFound() error {
	return newError(models.ErrRoomNotFound, "room does not exist")
}

func errRoomEnded() error {
	return newError(models.ErrRoomEnded, "room has ended")
}

func errRoomMismatch() error {
	return newError(models.ErrRoomMismatch, "connection does not belong to this room")
}

func errNotYourTurn() error {
	return newError(models.ErrNotYourTurn, "it is not your turn")
}

func errGameNotReady() error {
	return newError(models.ErrGameNotReady, "at least 2 connected players are required")
}

func errInvalidAction(format string, args ...interface{}) error {
	return newError(models.ErrInvalidAction, format, args...)
}

func errInvalidPayload(format string, args ...interface{}) error {
	return newError(models.ErrInvalidPayload, format, args...)
}

func errInsufficientCash() error {
	return newError(models.ErrInsufficientCash, "not enough cash")
}
