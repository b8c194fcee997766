package models

type Role string

const (
	RolePlayer    Role = "player"
	RoleSpectator Role = "spectator"
)

// Inbound requests. Every request carries the room id.

type CreateRoomPayload struct {
	Nickname    string `json:"nickname"`
	PlayerToken string `json:"playerToken"`
}

type JoinRoomPayload struct {
	RoomId      string `json:"roomId"`
	Nickname    string `json:"nickname"`
	PlayerToken string `json:"playerToken"`
}

type ReconnectPayload struct {
	RoomId   string `json:"roomId"`
	PlayerId string `json:"playerId"`
}

type RoomPayload struct {
	RoomId string `json:"roomId"`
}

type SelectCharacterPayload struct {
	RoomId      string `json:"roomId"`
	CharacterId string `json:"characterId"`
}

type InitialCashPayload struct {
	RoomId string `json:"roomId"`
	Amount int    `json:"amount"`
}

type ActionDecisionPayload struct {
	RoomId      string   `json:"roomId"`
	ActionId    string   `json:"actionId"`
	PlayerToken string   `json:"playerToken"`
	TurnSeq     int      `json:"turnSeq"`
	Decision    Decision `json:"decision"`
}

type CreateTradeOfferPayload struct {
	RoomId         string   `json:"roomId"`
	TargetPlayerId string   `json:"targetPlayerId"`
	GiveCash       int      `json:"giveCash"`
	TakeCash       int      `json:"takeCash"`
	GiveTiles      []int    `json:"giveTiles"`
	TakeTiles      []int    `json:"takeTiles"`
	GiveItems      []ItemId `json:"giveItems"`
	TakeItems      []ItemId `json:"takeItems"`
}

type RespondTradeOfferPayload struct {
	RoomId  string `json:"roomId"`
	TradeId string `json:"tradeId"`
	Accept  bool   `json:"accept"`
}

type UseItemPayload struct {
	RoomId          string `json:"roomId"`
	ItemId          ItemId `json:"itemId"`
	TargetPlayerId  string `json:"targetPlayerId,omitempty"`
	TargetTileIndex *int   `json:"targetTileIndex,omitempty"`
	DesiredDice     *int   `json:"desiredDice,omitempty"`
}

type LeaveRoomPayload struct {
	RoomId      string `json:"roomId"`
	PlayerToken string `json:"playerToken"`
}

// Acknowledgements.

type JoinAck struct {
	Ok          bool   `json:"ok"`
	RoomId      string `json:"roomId"`
	PlayerId    string `json:"playerId"`
	Role        Role   `json:"role"`
	Reconnected bool   `json:"reconnected"`
}

type RollAck struct {
	Ok       bool   `json:"ok"`
	RoomId   string `json:"roomId"`
	PlayerId string `json:"playerId"`
	Dice     int    `json:"dice"`
	Dice1    int    `json:"dice1"`
	Dice2    int    `json:"dice2"`
	Position int    `json:"position"`
}

type ActionAck struct {
	Ok       bool   `json:"ok"`
	RoomId   string `json:"roomId"`
	PlayerId string `json:"playerId"`
	Action   string `json:"action"`
}

type TradeAck struct {
	Ok      bool   `json:"ok"`
	RoomId  string `json:"roomId"`
	TradeId string `json:"tradeId"`
}

// Outbound events.

type DiceRolledEvent struct {
	RoomId      string `json:"roomId"`
	PlayerId    string `json:"playerId"`
	Dice        int    `json:"dice"`
	Dice1       int    `json:"dice1"`
	Dice2       int    `json:"dice2"`
	From        int    `json:"from"`
	To          int    `json:"to"`
	PassedStart bool   `json:"passedStart"`
	Forced      bool   `json:"forced"`
}

type LogEvent struct {
	RoomId string   `json:"roomId"`
	Lines  []string `json:"lines"`
}

// LandingResult describes the tile behind an action-required prompt.
type LandingResult struct {
	TileIndex   int        `json:"tileIndex"`
	TileName    string     `json:"tileName"`
	Price       int        `json:"price"`
	Level       int        `json:"level"`
	UpgradeCost int        `json:"upgradeCost"`
	NextRent    int        `json:"nextRent"`
	Cash        int        `json:"cash"`
	Offer       *ItemOffer `json:"offer,omitempty"`
}

type ActionRequiredEvent struct {
	RoomId         string        `json:"roomId"`
	ActionId       string        `json:"actionId"`
	ActionType     ActionType    `json:"actionType"`
	TargetPlayerId string        `json:"targetPlayerId"`
	TurnSeq        int           `json:"turnSeq"`
	ExpiresAt      int64         `json:"expiresAt"`
	Payload        LandingResult `json:"payload"`
}

type ItemAnnouncementEvent struct {
	RoomId         string `json:"roomId"`
	PlayerId       string `json:"playerId"`
	ItemId         ItemId `json:"itemId"`
	TargetPlayerId string `json:"targetPlayerId,omitempty"`
	TileIndex      *int   `json:"tileIndex,omitempty"`
	Text           string `json:"text"`
}

type TradeResultEvent struct {
	RoomId   string `json:"roomId"`
	TradeId  string `json:"tradeId"`
	Accepted bool   `json:"accepted"`
	Voided   bool   `json:"voided"`
	Text     string `json:"text"`
}

type StaticConfigEvent struct {
	BoardId string     `json:"boardId"`
	Tiles   []Property `json:"tiles"`
}
