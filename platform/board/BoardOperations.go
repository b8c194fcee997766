package board

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/DedS3t/rich-backend/app/models"
)

const (
	BoardId    = "rich666_v1"
	StartIndex = 0
	JailIndex  = 19
)

//go:embed properties.json
var propertiesJSON []byte

var properties = mustLoadProperties(propertiesJSON)

func mustLoadProperties(raw []byte) []models.Property {
	props, err := LoadProperties(raw)
	if err != nil {
		panic(err)
	}
	return props
}

// LoadProperties parses and validates a tile catalog.
func LoadProperties(raw []byte) ([]models.Property, error) {
	var props []models.Property
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("parse tile catalog: %w", err)
	}
	if len(props) < 40 || len(props) > 72 {
		return nil, fmt.Errorf("tile catalog has %d tiles, want 40-72", len(props))
	}
	for i, p := range props {
		if p.Index != i {
			return nil, fmt.Errorf("tile %d declares index %d", i, p.Index)
		}
		if p.IsProperty() && (p.Price <= 0 || len(p.RentByLevel) == 0 || p.Zone == "") {
			return nil, fmt.Errorf("property tile %d (%s) is incomplete", i, p.Name)
		}
	}
	return props, nil
}

func Size() int {
	return len(properties)
}

// Properties returns a copy of the catalog.
func Properties() []models.Property {
	out := make([]models.Property, len(properties))
	copy(out, properties)
	return out
}

// TileConfig looks a tile up by index. Unknown indexes resolve to an inert special tile.
func TileConfig(index int) models.Property {
	if index < 0 || index >= len(properties) {
		return models.Property{
			Index:  index,
			TileId: fmt.Sprintf("unknown-%d", index),
			Name:   fmt.Sprintf("Tile %d", index),
			Kind:   models.TileKindSpecial,
		}
	}
	return properties[index]
}

// ZoneMates returns the indexes of every property in the same zone as index, itself included.
func ZoneMates(index int) []int {
	cfg := TileConfig(index)
	if !cfg.IsProperty() || cfg.Zone == "" {
		return nil
	}
	var out []int
	for _, p := range properties {
		if p.IsProperty() && p.Zone == cfg.Zone {
			out = append(out, p.Index)
		}
	}
	return out
}

// NewBoard builds the fresh per-room runtime board.
func NewBoard() []*models.Tile {
	tiles := make([]*models.Tile, len(properties))
	for i, p := range properties {
		tiles[i] = &models.Tile{
			Index: i,
			Price: p.Price,
			Rent:  p.RentAt(0),
		}
	}
	return tiles
}

// Distance is the circular distance between two board positions.
func Distance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	n := len(properties)
	if n-d < d {
		return n - d
	}
	return d
}
