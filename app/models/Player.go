package models

type PlayerStatus string

const (
	PlayerActive       PlayerStatus = "active"
	PlayerDisconnected PlayerStatus = "disconnected"
	PlayerLeft         PlayerStatus = "left"
)

// Effects is the durational status bundle carried by a seat.
type Effects struct {
	TurtleTurns int   `json:"turtleTurns"`
	OutlawArmed bool  `json:"outlawArmed"`
	God         GodId `json:"god"`
	GodTurns    int   `json:"godTurns"`
	JailTurns   int   `json:"jailTurns"`
	// GodFresh marks a possession gained during the current turn; that turn is not counted.
	GodFresh    bool  `json:"-"`
}

type Player struct {
	PlayerId            string         `json:"playerId"`
	Nickname            string         `json:"nickname"`
	Position            int            `json:"position"`
	Cash                int            `json:"cash"`
	Connected           bool           `json:"connected"`
	Status              PlayerStatus   `json:"status"`
	Token               string         `json:"-"`
	SelectedCharacterId string         `json:"selectedCharacterId"`
	Ready               bool           `json:"ready"`
	Items               map[ItemId]int `json:"items"`
	Effects             Effects        `json:"effects"`
	JoinedAt            int64          `json:"joinedAt"`
}

// InPlay reports whether the seat still takes part in the match.
func (p *Player) InPlay() bool {
	return p.Status != PlayerLeft
}

type Spectator struct {
	SpectatorId string `json:"spectatorId"`
	Nickname    string `json:"nickname"`
	Connected   bool   `json:"connected"`
	Token       string `json:"-"`
	JoinedAt    int64  `json:"joinedAt"`
}
