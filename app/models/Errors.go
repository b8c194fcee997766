package models

type ErrorCode string

const (
	ErrRoomNotFound     ErrorCode = "ROOM_NOT_FOUND"
	ErrRoomEnded        ErrorCode = "ROOM_ENDED"
	ErrRoomFull         ErrorCode = "ROOM_FULL"
	ErrRoomMismatch     ErrorCode = "ROOM_MISMATCH"
	ErrNotYourTurn      ErrorCode = "NOT_YOUR_TURN"
	ErrGameNotReady     ErrorCode = "GAME_NOT_READY"
	ErrNotBuyPhase      ErrorCode = "NOT_BUY_PHASE"
	ErrTileNotBuyable   ErrorCode = "TILE_NOT_BUYABLE"
	ErrInsufficientCash ErrorCode = "INSUFFICIENT_CASH"
	ErrPlayerNotFound   ErrorCode = "PLAYER_NOT_FOUND"
	ErrCharTaken        ErrorCode = "CHAR_TAKEN"
	ErrInvalidAction    ErrorCode = "ERR_INVALID_ACTION"
	ErrInvalidPayload   ErrorCode = "INVALID_PAYLOAD"
)

// ErrorPayload is the acknowledgement of a rejected request.
type ErrorPayload struct {
	Ok      bool      `json:"ok"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SocketErrorPayload is pushed as a standalone "error" event.
type SocketErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
