package models

import "time"

// GameResult is an archived finished match.
type GameResult struct {
	tableName struct{} `pg:"game_results"`

	Id             int64     `json:"id"`
	RoomId         string    `json:"roomId"`
	WinnerPlayerId string    `json:"winnerPlayerId"`
	WinnerNickname string    `json:"winnerNickname"`
	Players        []string  `json:"players" pg:",array"`
	Turns          int       `json:"turns"`
	EndedAt        time.Time `json:"endedAt"`
}

type VerifyGameDto struct {
	Code string `query:"code"`
}

type RoomSummary struct {
	RoomId      string     `json:"roomId"`
	Status      RoomStatus `json:"status"`
	Players     int        `json:"players"`
	Connected   int        `json:"connected"`
	Spectators  int        `json:"spectators"`
	InitialCash int        `json:"initialCash"`
}
