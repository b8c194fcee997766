package game

import (
	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
)

const (
	ambushPercent = 15
	liuSiphon     = 500
)

// resolveLanding applies the tile p stopped on. At most one of the tile outcomes fires;
// the outlaw ambush along the path is checked first and does not preclude them.
func (m *Manager) resolveLanding(rec *roomRecord, p *models.Player, from, dice int) {
	st := rec.state
	m.resolveAmbush(rec, p, from, dice)

	cfg := board.TileConfig(p.Position)
	tile := st.Board[p.Position]

	if cfg.IsProperty() && m.resolveGodLanding(rec, p, tile, cfg) {
		m.advanceTurn(rec)
		return
	}
	if m.specialHook(rec, p, cfg) {
		m.advanceTurn(rec)
		return
	}

	switch {
	case cfg.SpecialKey == models.SpecialFate:
		m.triggerFate(rec, p)
		m.advanceTurn(rec)
	case cfg.SpecialKey == models.SpecialItemShop:
		offer := m.rollShopOffer()
		m.logf(rec, "%s entered the item shop, %s is on sale for %d", p.Nickname, offer.ItemId, offer.Price)
		m.openGate(rec, p, models.ActionItemShop, cfg.Index, &offer)
	case !cfg.IsProperty():
		m.logf(rec, "%s landed on %s", p.Nickname, cfg.Name)
		m.advanceTurn(rec)
	case tile.OwnerPlayerId == "":
		if p.Cash >= tile.Price {
			m.openGate(rec, p, models.ActionBuy, cfg.Index, nil)
			return
		}
		m.logf(rec, "%s cannot afford %s", p.Nickname, cfg.Name)
		m.advanceTurn(rec)
	case tile.OwnerPlayerId != p.PlayerId:
		m.payRent(rec, p, tile)
		m.advanceTurn(rec)
	default:
		if tile.Level < cfg.MaxLevel() && p.Cash >= cfg.UpgradeCost {
			m.openGate(rec, p, models.ActionUpgrade, cfg.Index, nil)
			return
		}
		m.logf(rec, "%s visited their own %s", p.Nickname, cfg.Name)
		m.advanceTurn(rec)
	}
}

// resolveAmbush robs the first other seat on the path when the mover carries an armed outlaw.
func (m *Manager) resolveAmbush(rec *roomRecord, p *models.Player, from, dice int) {
	if !p.Effects.OutlawArmed {
		return
	}
	st := rec.state
	n := board.Size()
	for k := 1; k <= dice; k++ {
		pos := (from + k) % n
		for _, victim := range st.Players {
			if victim == p || !victim.InPlay() || victim.Position != pos {
				continue
			}
			amount := victim.Cash * ambushPercent / 100
			if amount < 0 {
				amount = 0
			}
			victim.Cash -= amount
			p.Cash += amount
			p.Effects.OutlawArmed = false
			m.logf(rec, "%s ambushed %s and took %d", p.Nickname, victim.Nickname, amount)
			return
		}
	}
}

// resolveGodLanding lets a possessing god settle the tile outright. It reports whether it did.
func (m *Manager) resolveGodLanding(rec *roomRecord, p *models.Player, tile *models.Tile, cfg models.Property) bool {
	switch p.Effects.God {
	case models.GodHoly:
		if tile.OwnerPlayerId == "" || tile.OwnerPlayerId == p.PlayerId {
			return false
		}
		name := tile.OwnerPlayerId
		if owner := rec.state.PlayerById(tile.OwnerPlayerId); owner != nil {
			name = owner.Nickname
		}
		releaseTile(tile, cfg)
		m.logf(rec, "%s cleansed %s, %s lost it", godName(models.GodHoly), cfg.Name, name)
		return true
	case models.GodLand:
		if tile.OwnerPlayerId == p.PlayerId {
			return false
		}
		tile.OwnerPlayerId = p.PlayerId
		tile.OwnerCharacterId = p.SelectedCharacterId
		m.logf(rec, "%s granted %s to %s", godName(models.GodLand), cfg.Name, p.Nickname)
		return true
	}
	return false
}

// specialHook is the extension point for custom special tiles. It reports whether the tile was handled.
func (m *Manager) specialHook(rec *roomRecord, p *models.Player, cfg models.Property) bool {
	return false
}

// rentFor sums the owner's rent over every tile it holds in the landed tile's zone.
func rentFor(st *models.Room, tile *models.Tile) int {
	total, held := 0, 0
	for _, idx := range board.ZoneMates(tile.Index) {
		mate := st.Board[idx]
		if mate.OwnerPlayerId == tile.OwnerPlayerId {
			total += mate.Rent
			held++
		}
	}
	if held == 0 {
		return tile.Rent
	}
	return total
}

// payRent moves rent from payer to owner. Cash is not clamped; settlement handles negatives.
func (m *Manager) payRent(rec *roomRecord, payer *models.Player, tile *models.Tile) {
	st := rec.state
	cfg := board.TileConfig(tile.Index)
	owner := st.PlayerById(tile.OwnerPlayerId)
	if owner == nil || !owner.InPlay() {
		m.logf(rec, "%s landed on %s", payer.Nickname, cfg.Name)
		return
	}

	amount := rentFor(st, tile)
	switch payer.Effects.God {
	case models.GodFortune:
		m.logf(rec, "%s protects %s from paying rent on %s", godName(models.GodFortune), payer.Nickname, cfg.Name)
		amount = 0
	case models.GodPoor:
		amount *= 2
	}
	if amount > 0 {
		payer.Cash -= amount
		owner.Cash += amount
		m.logf(rec, "%s paid %d rent to %s for %s", payer.Nickname, amount, owner.Nickname, cfg.Name)
	}
	if payer.Effects.God == models.GodLiu {
		owner.Cash -= liuSiphon
		payer.Cash += liuSiphon
		m.logf(rec, "%s charmed %d back from %s", payer.Nickname, liuSiphon, owner.Nickname)
	}
}

func releaseTile(tile *models.Tile, cfg models.Property) {
	tile.OwnerPlayerId = ""
	tile.OwnerCharacterId = ""
	tile.Level = 0
	tile.Rent = cfg.RentAt(0)
}
