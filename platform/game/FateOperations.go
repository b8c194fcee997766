package game

import (
	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
)

const (
	fateGainCash     = 1000
	fateLoseCash     = 800
	fateTransferMin  = 100
	fateTransferMax  = 500
	fateGodTurns     = 3
	fateGodCash      = 1000
	fateNanmanPerLot = 200
)

type fateWeight struct {
	Id     models.FateEventId
	Weight int
}

var fateTable = []fateWeight{
	{models.FateGainCash, 14},
	{models.FateLoseCash, 12},
	{models.FateStealFromAll, 8},
	{models.FateGiveToAll, 8},
	{models.FateForcedSale, 6},
	{models.FateRandomGod, 10},
	{models.FateGainItem, 12},
	{models.FateLoseItem, 8},
	{models.FateNanman, 6},
	{models.FateJail, 8},
	{models.FateTeleportStart, 8},
}

var gods = []models.GodId{
	models.GodFortune,
	models.GodPoor,
	models.GodHoly,
	models.GodLand,
	models.GodLiu,
}

func godName(g models.GodId) string {
	switch g {
	case models.GodFortune:
		return "the God of Fortune"
	case models.GodPoor:
		return "the God of Poverty"
	case models.GodHoly:
		return "Holy Mary"
	case models.GodLand:
		return "the Land God"
	case models.GodLiu:
		return "Liu Dehua"
	}
	return string(g)
}

func (m *Manager) drawFate() models.FateEventId {
	total := 0
	for _, f := range fateTable {
		total += f.Weight
	}
	r := m.intn(total)
	for _, f := range fateTable {
		if r < f.Weight {
			return f.Id
		}
		r -= f.Weight
	}
	return fateTable[len(fateTable)-1].Id
}

func (m *Manager) triggerFate(rec *roomRecord, p *models.Player) {
	m.applyFate(rec, p, m.drawFate())
}

// applyFate fires exactly one fate outcome for p.
func (m *Manager) applyFate(rec *roomRecord, p *models.Player, id models.FateEventId) {
	st := rec.state
	switch id {
	case models.FateGainCash:
		p.Cash += fateGainCash
		m.logf(rec, "Fate: %s found %d", p.Nickname, fateGainCash)

	case models.FateLoseCash:
		p.Cash -= fateLoseCash
		m.logf(rec, "Fate: %s lost %d", p.Nickname, fateLoseCash)

	case models.FateStealFromAll:
		for _, other := range st.Players {
			if other == p || !other.InPlay() {
				continue
			}
			amount := m.fateTransfer()
			other.Cash -= amount
			p.Cash += amount
			m.logf(rec, "Fate: %s took %d from %s", p.Nickname, amount, other.Nickname)
		}

	case models.FateGiveToAll:
		for _, other := range st.Players {
			if other == p || !other.InPlay() {
				continue
			}
			amount := m.fateTransfer()
			p.Cash -= amount
			other.Cash += amount
			m.logf(rec, "Fate: %s gave %d to %s", p.Nickname, amount, other.Nickname)
		}

	case models.FateForcedSale:
		var owned []*models.Tile
		for _, tile := range st.Board {
			if tile.OwnerPlayerId == p.PlayerId {
				owned = append(owned, tile)
			}
		}
		if len(owned) == 0 {
			m.logf(rec, "Fate: %s had nothing to sell", p.Nickname)
			return
		}
		tile := owned[m.intn(len(owned))]
		cfg := board.TileConfig(tile.Index)
		refund := tile.Price / 2
		releaseTile(tile, cfg)
		p.Cash += refund
		m.logf(rec, "Fate: %s was forced to sell %s for %d", p.Nickname, cfg.Name, refund)

	case models.FateRandomGod:
		god := gods[m.intn(len(gods))]
		p.Effects.God = god
		p.Effects.GodTurns = fateGodTurns
		p.Effects.GodFresh = true
		m.logf(rec, "Fate: %s is possessed by %s", p.Nickname, godName(god))
		switch god {
		case models.GodFortune:
			p.Cash += fateGodCash
			m.logf(rec, "%s gained %d", p.Nickname, fateGodCash)
		case models.GodPoor:
			p.Cash -= fateGodCash
			m.logf(rec, "%s lost %d", p.Nickname, fateGodCash)
		}

	case models.FateGainItem:
		id := itemOrder[m.intn(len(itemOrder))]
		addItem(p, id, 1)
		m.logf(rec, "Fate: %s received %s", p.Nickname, id)

	case models.FateLoseItem:
		held := heldItems(p)
		if len(held) == 0 {
			m.logf(rec, "Fate: %s had no item to lose", p.Nickname)
			return
		}
		id := held[m.intn(len(held))]
		addItem(p, id, -1)
		m.logf(rec, "Fate: %s lost %s", p.Nickname, id)

	case models.FateNanman:
		m.logf(rec, "Fate: the Nanman invade")
		for _, victim := range st.Players {
			if !victim.InPlay() {
				continue
			}
			lots := 0
			for _, tile := range st.Board {
				if tile.OwnerPlayerId == victim.PlayerId {
					lots++
				}
			}
			if lots == 0 {
				continue
			}
			loss := lots * fateNanmanPerLot
			victim.Cash -= loss
			m.logf(rec, "%s lost %d defending %d properties", victim.Nickname, loss, lots)
		}

	case models.FateJail:
		p.Position = board.JailIndex
		p.Effects.JailTurns = jailTurns
		m.logf(rec, "Fate: %s was thrown in jail", p.Nickname)

	case models.FateTeleportStart:
		p.Position = board.StartIndex
		p.Cash += m.cfg.StartBonus
		m.logf(rec, "Fate: %s was sent to the start and collected %d", p.Nickname, m.cfg.StartBonus)

	default:
		m.logf(rec, "Fate: nothing happened to %s", p.Nickname)
	}
}

func (m *Manager) fateTransfer() int {
	return fateTransferMin + m.intn(fateTransferMax-fateTransferMin+1)
}
