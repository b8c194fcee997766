package models

type TileKind string

const (
	TileKindProperty TileKind = "property"
	TileKindSpecial  TileKind = "special"
)

type SpecialKey string

const (
	SpecialStart    SpecialKey = "start"
	SpecialFate     SpecialKey = "fate"
	SpecialItemShop SpecialKey = "item_shop"
	SpecialJail     SpecialKey = "jail"
)

// Property is one entry of the static tile catalog.
type Property struct {
	Index       int        `json:"index"`
	TileId      string     `json:"tileId"`
	Name        string     `json:"name"`
	Kind        TileKind   `json:"kind"`
	Zone        string     `json:"zone,omitempty"`
	ZoneAbbr    string     `json:"zoneAbbr,omitempty"`
	Price       int        `json:"price"`
	Rent        int        `json:"rent"`
	UpgradeCost int        `json:"upgradeCost,omitempty"`
	RentByLevel []int      `json:"rentByLevel,omitempty"`
	SpecialKey  SpecialKey `json:"specialKey,omitempty"`
}

func (p Property) IsProperty() bool {
	return p.Kind == TileKindProperty
}

// MaxLevel is the highest upgrade level reachable on this tile.
func (p Property) MaxLevel() int {
	if len(p.RentByLevel) == 0 {
		return 0
	}
	return len(p.RentByLevel) - 1
}

// RentAt returns the rent for the given upgrade level, clamped to the table.
func (p Property) RentAt(level int) int {
	if len(p.RentByLevel) == 0 {
		return p.Rent
	}
	if level < 0 {
		level = 0
	}
	if level >= len(p.RentByLevel) {
		level = len(p.RentByLevel) - 1
	}
	return p.RentByLevel[level]
}

// Tile is the per-room mutable state of a board position.
type Tile struct {
	Index            int    `json:"index"`
	OwnerPlayerId    string `json:"ownerPlayerId"`
	OwnerCharacterId string `json:"ownerCharacterId"`
	Price            int    `json:"price"`
	Rent             int    `json:"rent"`
	Level            int    `json:"level"`
}
