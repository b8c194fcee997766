package game

import (
	"fmt"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
	"github.com/sirupsen/logrus"
)

const (
	itemRadius  = 6
	turtleTurns = 3
	jailTurns   = 2
)

type itemSpec struct {
	Price       int
	Weight      int
	Description string
}

// itemOrder fixes the iteration order for weighted draws.
var itemOrder = []models.ItemId{
	models.ItemAnyDice,
	models.ItemTurtle,
	models.ItemOutlaw,
	models.ItemSteal,
	models.ItemBanish,
	models.ItemFrame,
	models.ItemAuction,
	models.ItemBuild,
	models.ItemEqualPoor,
	models.ItemEqualRich,
}

var itemCatalog = map[models.ItemId]itemSpec{
	models.ItemAnyDice:   {Price: 600, Weight: 12, Description: "Choose the value of your next roll"},
	models.ItemTurtle:    {Price: 400, Weight: 12, Description: "A player moves one step per roll for 3 turns"},
	models.ItemOutlaw:    {Price: 800, Weight: 8, Description: "Rob 15% of the cash of the first player you pass"},
	models.ItemSteal:     {Price: 500, Weight: 10, Description: "Take a random item from a nearby player"},
	models.ItemBanish:    {Price: 700, Weight: 8, Description: "Send a nearby player back to the start"},
	models.ItemFrame:     {Price: 900, Weight: 6, Description: "Send a nearby player to jail"},
	models.ItemAuction:   {Price: 1200, Weight: 5, Description: "Return another player's property to the bank"},
	models.ItemBuild:     {Price: 1000, Weight: 6, Description: "Upgrade one of your properties for free"},
	models.ItemEqualPoor: {Price: 1500, Weight: 3, Description: "Drop a player's cash to the poorest player's"},
	models.ItemEqualRich: {Price: 2000, Weight: 2, Description: "Raise your cash to the richest player's"},
}

// rollShopOffer draws one item by cumulative weight.
func (m *Manager) rollShopOffer() models.ItemOffer {
	total := 0
	for _, id := range itemOrder {
		total += itemCatalog[id].Weight
	}
	r := m.intn(total)
	for _, id := range itemOrder {
		entry := itemCatalog[id]
		if r < entry.Weight {
			return models.ItemOffer{ItemId: id, Price: entry.Price, Description: entry.Description}
		}
		r -= entry.Weight
	}
	last := itemOrder[len(itemOrder)-1]
	entry := itemCatalog[last]
	return models.ItemOffer{ItemId: last, Price: entry.Price, Description: entry.Description}
}

func addItem(p *models.Player, id models.ItemId, n int) {
	if p.Items == nil {
		p.Items = map[models.ItemId]int{}
	}
	p.Items[id] += n
	if p.Items[id] <= 0 {
		delete(p.Items, id)
	}
}

// heldItems lists the item kinds p holds, in catalog order.
func heldItems(p *models.Player) []models.ItemId {
	var out []models.ItemId
	for _, id := range itemOrder {
		if p.Items[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}

// itemUse is a validated item effect waiting to be applied.
type itemUse struct {
	target string
	tile   *int
	apply  func() string
	// then runs after the announcement, for effects that emit their own events
	then func()
}

func (m *Manager) UseItem(connId string, req models.UseItemPayload) (models.ActionAck, error) {
	roomId := NormalizeRoomId(req.RoomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	if _, ok := itemCatalog[req.ItemId]; !ok {
		return models.ActionAck{}, errInvalidPayload("unknown item %q", req.ItemId)
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}
		if st.Status != models.RoomInGame {
			return errGameNotReady()
		}
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if st.CurrentTurnPlayerId != p.PlayerId || st.Phase != models.PhaseRolling {
			return errInvalidAction("items can only be used at the start of your turn")
		}
		if p.Items[req.ItemId] <= 0 {
			return errInvalidAction("you do not hold %s", req.ItemId)
		}
		use, err := m.prepareItem(rec, p, req)
		if err != nil {
			return err
		}

		addItem(p, req.ItemId, -1)
		text := use.apply()
		m.out.BroadcastToRoom(st.RoomId, EventItemAnnouncement, models.ItemAnnouncementEvent{
			RoomId:         st.RoomId,
			PlayerId:       p.PlayerId,
			ItemId:         req.ItemId,
			TargetPlayerId: use.target,
			TileIndex:      use.tile,
			Text:           text,
		})
		m.logf(rec, "%s", text)
		if use.then != nil {
			use.then()
		}
		m.settle(rec)

		m.log.WithFields(logrus.Fields{"room_id": roomId, "player_id": p.PlayerId, "item": req.ItemId}).Info("item used")
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: string(req.ItemId)}
		return nil
	})
	return ack, err
}

// prepareItem validates a use completely before anything is consumed.
func (m *Manager) prepareItem(rec *roomRecord, p *models.Player, req models.UseItemPayload) (itemUse, error) {
	st := rec.state
	switch req.ItemId {
	case models.ItemAnyDice:
		if req.DesiredDice == nil || *req.DesiredDice < 1 || *req.DesiredDice > 6 {
			return itemUse{}, errInvalidPayload("desiredDice must be between 1 and 6")
		}
		value := *req.DesiredDice
		return itemUse{
			apply: func() string {
				return fmt.Sprintf("%s used any dice and chose %d", p.Nickname, value)
			},
			then: func() {
				m.performRoll(rec, p, value)
			},
		}, nil

	case models.ItemTurtle:
		target := p
		if req.TargetPlayerId != "" && req.TargetPlayerId != p.PlayerId {
			t, err := itemTarget(st, p, req.TargetPlayerId, false)
			if err != nil {
				return itemUse{}, err
			}
			target = t
		}
		return itemUse{target: target.PlayerId, apply: func() string {
			target.Effects.TurtleTurns = turtleTurns
			return fmt.Sprintf("%s turned %s into a turtle for %d turns", p.Nickname, target.Nickname, turtleTurns)
		}}, nil

	case models.ItemOutlaw:
		if p.Effects.OutlawArmed {
			return itemUse{}, errInvalidAction("outlaw is already armed")
		}
		return itemUse{apply: func() string {
			p.Effects.OutlawArmed = true
			return fmt.Sprintf("%s is lying in ambush", p.Nickname)
		}}, nil

	case models.ItemSteal:
		t, err := itemTarget(st, p, req.TargetPlayerId, true)
		if err != nil {
			return itemUse{}, err
		}
		if len(heldItems(t)) == 0 {
			return itemUse{}, errInvalidAction("%s has no items", t.Nickname)
		}
		return itemUse{target: t.PlayerId, apply: func() string {
			held := heldItems(t)
			id := held[m.intn(len(held))]
			addItem(t, id, -1)
			addItem(p, id, 1)
			return fmt.Sprintf("%s stole %s from %s", p.Nickname, id, t.Nickname)
		}}, nil

	case models.ItemBanish:
		t, err := itemTarget(st, p, req.TargetPlayerId, true)
		if err != nil {
			return itemUse{}, err
		}
		return itemUse{target: t.PlayerId, apply: func() string {
			t.Position = board.StartIndex
			return fmt.Sprintf("%s banished %s back to the start", p.Nickname, t.Nickname)
		}}, nil

	case models.ItemFrame:
		t, err := itemTarget(st, p, req.TargetPlayerId, true)
		if err != nil {
			return itemUse{}, err
		}
		return itemUse{target: t.PlayerId, apply: func() string {
			t.Position = board.JailIndex
			t.Effects.JailTurns = jailTurns
			return fmt.Sprintf("%s framed %s, who is sent to jail", p.Nickname, t.Nickname)
		}}, nil

	case models.ItemAuction:
		tile, cfg, err := itemTile(st, req.TargetTileIndex)
		if err != nil {
			return itemUse{}, err
		}
		if tile.OwnerPlayerId == "" || tile.OwnerPlayerId == p.PlayerId {
			return itemUse{}, errInvalidAction("%s is not owned by another player", cfg.Name)
		}
		idx := tile.Index
		return itemUse{target: tile.OwnerPlayerId, tile: &idx, apply: func() string {
			releaseTile(tile, cfg)
			return fmt.Sprintf("%s auctioned %s back to the bank", p.Nickname, cfg.Name)
		}}, nil

	case models.ItemBuild:
		tile, cfg, err := itemTile(st, req.TargetTileIndex)
		if err != nil {
			return itemUse{}, err
		}
		if tile.OwnerPlayerId != p.PlayerId {
			return itemUse{}, errInvalidAction("%s is not yours", cfg.Name)
		}
		if tile.Level >= cfg.MaxLevel() {
			return itemUse{}, errInvalidAction("%s is already at the highest level", cfg.Name)
		}
		idx := tile.Index
		return itemUse{tile: &idx, apply: func() string {
			tile.Level++
			tile.Rent = cfg.RentAt(tile.Level)
			return fmt.Sprintf("%s built %s up to level %d", p.Nickname, cfg.Name, tile.Level)
		}}, nil

	case models.ItemEqualPoor:
		t, err := itemTarget(st, p, req.TargetPlayerId, false)
		if err != nil {
			return itemUse{}, err
		}
		return itemUse{target: t.PlayerId, apply: func() string {
			low, _ := cashRange(st)
			t.Cash = low
			return fmt.Sprintf("%s made %s as poor as the poorest (%d)", p.Nickname, t.Nickname, low)
		}}, nil

	case models.ItemEqualRich:
		return itemUse{apply: func() string {
			_, high := cashRange(st)
			p.Cash = high
			return fmt.Sprintf("%s became as rich as the richest (%d)", p.Nickname, high)
		}}, nil
	}
	return itemUse{}, errInvalidPayload("unknown item %q", req.ItemId)
}

// itemTarget resolves another in-play seat, optionally within the item radius.
func itemTarget(st *models.Room, p *models.Player, targetId string, ranged bool) (*models.Player, error) {
	if targetId == "" {
		return nil, errInvalidPayload("targetPlayerId is required")
	}
	t := st.PlayerById(targetId)
	if t == nil || !t.InPlay() {
		return nil, newError(models.ErrPlayerNotFound, "target player not found")
	}
	if t == p {
		return nil, errInvalidAction("you cannot target yourself")
	}
	if ranged && board.Distance(p.Position, t.Position) > itemRadius {
		return nil, errInvalidAction("%s is out of range", t.Nickname)
	}
	return t, nil
}

func itemTile(st *models.Room, index *int) (*models.Tile, models.Property, error) {
	if index == nil || *index < 0 || *index >= len(st.Board) {
		return nil, models.Property{}, errInvalidPayload("targetTileIndex is out of range")
	}
	cfg := board.TileConfig(*index)
	if !cfg.IsProperty() {
		return nil, models.Property{}, errInvalidAction("%s is not a property", cfg.Name)
	}
	return st.Board[*index], cfg, nil
}

// cashRange returns the lowest and highest cash among in-play seats.
func cashRange(st *models.Room) (int, int) {
	low, high, seen := 0, 0, false
	for _, p := range st.Players {
		if !p.InPlay() {
			continue
		}
		if !seen || p.Cash < low {
			low = p.Cash
		}
		if !seen || p.Cash > high {
			high = p.Cash
		}
		seen = true
	}
	return low, high
}
