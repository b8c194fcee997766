package models

type RoomStatus string

const (
	RoomWaiting RoomStatus = "waiting"
	RoomInGame  RoomStatus = "in_game"
	RoomEnded   RoomStatus = "ended"
)

type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhaseRolling Phase = "rolling"
	PhaseMoving  Phase = "moving"
	PhaseCanBuy  Phase = "can_buy"
)

type ActionType string

const (
	ActionBuy      ActionType = "BUY"
	ActionUpgrade  ActionType = "UPGRADE"
	ActionItemShop ActionType = "ITEM_SHOP"
)

type Decision string

const (
	DecisionBuyConfirm     Decision = "BUY_CONFIRM"
	DecisionBuySkip        Decision = "BUY_SKIP"
	DecisionUpgradeConfirm Decision = "UPGRADE_CONFIRM"
	DecisionUpgradeSkip    Decision = "UPGRADE_SKIP"
	DecisionShopConfirm    Decision = "SHOP_CONFIRM"
	DecisionShopSkip       Decision = "SHOP_SKIP"
)

// ActionType returns the gate type a decision belongs to.
func (d Decision) ActionType() (ActionType, bool) {
	switch d {
	case DecisionBuyConfirm, DecisionBuySkip:
		return ActionBuy, true
	case DecisionUpgradeConfirm, DecisionUpgradeSkip:
		return ActionUpgrade, true
	case DecisionShopConfirm, DecisionShopSkip:
		return ActionItemShop, true
	}
	return "", false
}

func (d Decision) IsConfirm() bool {
	return d == DecisionBuyConfirm || d == DecisionUpgradeConfirm || d == DecisionShopConfirm
}

// SkipDecision is the fallback branch applied when a gate of type t times out.
func SkipDecision(t ActionType) Decision {
	switch t {
	case ActionUpgrade:
		return DecisionUpgradeSkip
	case ActionItemShop:
		return DecisionShopSkip
	}
	return DecisionBuySkip
}

func ConfirmDecision(t ActionType) Decision {
	switch t {
	case ActionUpgrade:
		return DecisionUpgradeConfirm
	case ActionItemShop:
		return DecisionShopConfirm
	}
	return DecisionBuyConfirm
}

// PendingAction is the single decision gate of a room.
type PendingAction struct {
	ActionId       string     `json:"actionId"`
	Type           ActionType `json:"type"`
	TileIndex      int        `json:"tileIndex"`
	TargetPlayerId string     `json:"targetPlayerId"`
	PlayerToken    string     `json:"-"`
	TurnSeq        int        `json:"turnSeq"`
	CreatedAt      int64      `json:"createdAt"`
	ExpiresAt      int64      `json:"expiresAt"`
	Offer          *ItemOffer `json:"offer,omitempty"`
}

type LastRoll struct {
	PlayerId string `json:"playerId"`
	Value    int    `json:"value"`
	Dice1    int    `json:"dice1"`
	Dice2    int    `json:"dice2"`
}

type Room struct {
	RoomId              string         `json:"roomId"`
	Status              RoomStatus     `json:"status"`
	HostPlayerId        string         `json:"hostPlayerId"`
	InitialCash         int            `json:"initialCash"`
	Players             []*Player      `json:"players"`
	Spectators          []*Spectator   `json:"spectators"`
	Board               []*Tile        `json:"board"`
	CurrentTurnPlayerId string         `json:"currentTurnPlayerId"`
	Phase               Phase          `json:"phase"`
	PendingBuyTileIndex *int           `json:"pendingBuyTileIndex"`
	PendingAction       *PendingAction `json:"pendingAction"`
	TurnSeq             int            `json:"turnSeq"`
	LastRoll            *LastRoll      `json:"lastRoll"`
	WinnerPlayerId      string         `json:"winnerPlayerId,omitempty"`
	Logs                []string       `json:"logs"`
	CreatedAt           int64          `json:"createdAt"`
	LastActiveAt        int64          `json:"lastActiveAt"`
}

func (r *Room) PlayerById(playerId string) *Player {
	for _, p := range r.Players {
		if p.PlayerId == playerId {
			return p
		}
	}
	return nil
}

func (r *Room) PlayerByToken(token string) *Player {
	for _, p := range r.Players {
		if p.Token == token {
			return p
		}
	}
	return nil
}

func (r *Room) SpectatorByToken(token string) *Spectator {
	for _, s := range r.Spectators {
		if s.Token == token {
			return s
		}
	}
	return nil
}

func (r *Room) SpectatorById(spectatorId string) *Spectator {
	for _, s := range r.Spectators {
		if s.SpectatorId == spectatorId {
			return s
		}
	}
	return nil
}

// TradeOffer is the single outstanding trade proposal of a room.
type TradeOffer struct {
	TradeId      string   `json:"tradeId"`
	RoomId       string   `json:"roomId"`
	FromPlayerId string   `json:"fromPlayerId"`
	ToPlayerId   string   `json:"toPlayerId"`
	GiveTiles    []int    `json:"giveTiles"`
	TakeTiles    []int    `json:"takeTiles"`
	GiveCash     int      `json:"giveCash"`
	TakeCash     int      `json:"takeCash"`
	GiveItems    []ItemId `json:"giveItems"`
	TakeItems    []ItemId `json:"takeItems"`
	CreatedAt    int64    `json:"createdAt"`
}
