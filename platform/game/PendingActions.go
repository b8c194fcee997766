package game

import (
	"time"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// openGate replaces any previous gate with a new one for p and arms its timeout.
func (m *Manager) openGate(rec *roomRecord, p *models.Player, t models.ActionType, tileIndex int, offer *models.ItemOffer) {
	st := rec.state
	m.clearGate(rec)

	now := m.millis()
	ga := &models.PendingAction{
		ActionId:       uuid.NewV4().String(),
		Type:           t,
		TileIndex:      tileIndex,
		TargetPlayerId: p.PlayerId,
		PlayerToken:    p.Token,
		TurnSeq:        st.TurnSeq,
		CreatedAt:      now,
		ExpiresAt:      now + int64(m.cfg.ActionTimeout/time.Millisecond),
		Offer:          offer,
	}
	st.PendingAction = ga
	st.Phase = models.PhaseCanBuy
	if t == models.ActionBuy {
		idx := tileIndex
		st.PendingBuyTileIndex = &idx
	}

	roomId, actionId := st.RoomId, ga.ActionId
	rec.timer = time.AfterFunc(m.cfg.ActionTimeout, func() {
		m.resolveTimeout(roomId, actionId)
	})
	m.touch(rec)
	m.pushActionRequired(rec, ga)
}

// clearGate drops the live gate and disarms its timer.
func (m *Manager) clearGate(rec *roomRecord) {
	if rec.timer != nil {
		rec.timer.Stop()
		rec.timer = nil
	}
	st := rec.state
	if st.PendingAction == nil && st.PendingBuyTileIndex == nil {
		return
	}
	st.PendingAction = nil
	st.PendingBuyTileIndex = nil
	if st.Phase == models.PhaseCanBuy {
		st.Phase = models.PhaseRolling
	}
	m.touch(rec)
}

func (m *Manager) pushActionRequired(rec *roomRecord, ga *models.PendingAction) {
	st := rec.state
	connId, ok := m.sessions.ConnFor(st.RoomId, ga.TargetPlayerId)
	if !ok {
		return
	}
	p := st.PlayerById(ga.TargetPlayerId)
	if p == nil {
		return
	}
	m.out.EmitTo(connId, EventActionRequired, models.ActionRequiredEvent{
		RoomId:         st.RoomId,
		ActionId:       ga.ActionId,
		ActionType:     ga.Type,
		TargetPlayerId: ga.TargetPlayerId,
		TurnSeq:        ga.TurnSeq,
		ExpiresAt:      ga.ExpiresAt,
		Payload:        landingResult(st, p, ga),
	})
}

func landingResult(st *models.Room, p *models.Player, ga *models.PendingAction) models.LandingResult {
	cfg := board.TileConfig(ga.TileIndex)
	res := models.LandingResult{
		TileIndex: ga.TileIndex,
		TileName:  cfg.Name,
		Cash:      p.Cash,
		Offer:     ga.Offer,
	}
	if ga.TileIndex >= 0 && ga.TileIndex < len(st.Board) {
		tile := st.Board[ga.TileIndex]
		res.Price = tile.Price
		res.Level = tile.Level
		res.UpgradeCost = cfg.UpgradeCost
		res.NextRent = cfg.RentAt(tile.Level)
		if ga.Type == models.ActionUpgrade {
			res.NextRent = cfg.RentAt(tile.Level + 1)
		}
	}
	return res
}

// resolveTimeout applies the skip branch of a gate that was not answered in time.
func (m *Manager) resolveTimeout(roomId, actionId string) {
	_ = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		ga := st.PendingAction
		if ga == nil || ga.ActionId != actionId {
			return nil
		}
		rec.timer = nil
		m.log.WithFields(logrus.Fields{"room_id": roomId, "action_id": actionId, "type": ga.Type}).Info("pending action timed out")

		m.skipGate(rec, ga, true)
		m.settle(rec)
		return nil
	})
}

// skipGate applies the skip branch of ga, which always ends the turn.
func (m *Manager) skipGate(rec *roomRecord, ga *models.PendingAction, timedOut bool) {
	p := rec.state.PlayerById(ga.TargetPlayerId)
	if p == nil {
		m.advanceTurn(rec)
		return
	}
	if err := m.applyDecision(rec, p, ga, models.SkipDecision(ga.Type), timedOut); err != nil {
		m.log.WithError(err).WithField("room_id", rec.state.RoomId).Warn("skipping pending action failed")
		m.advanceTurn(rec)
	}
}

// applyDecision is the single place a gate is resolved, manually or by timeout.
// A rejected confirm leaves the gate open and mutates nothing.
func (m *Manager) applyDecision(rec *roomRecord, p *models.Player, ga *models.PendingAction, d models.Decision, timedOut bool) error {
	st := rec.state
	suffix := ""
	if timedOut {
		suffix = " (timeout)"
	}
	cfg := board.TileConfig(ga.TileIndex)

	if d.IsConfirm() {
		switch ga.Type {
		case models.ActionBuy:
			if !cfg.IsProperty() || st.Board[ga.TileIndex].OwnerPlayerId != "" {
				return newError(models.ErrTileNotBuyable, "%s cannot be bought", cfg.Name)
			}
			tile := st.Board[ga.TileIndex]
			if p.Cash < tile.Price {
				return errInsufficientCash()
			}
			p.Cash -= tile.Price
			tile.OwnerPlayerId = p.PlayerId
			tile.OwnerCharacterId = p.SelectedCharacterId
			m.logf(rec, "%s bought %s for %d%s", p.Nickname, cfg.Name, tile.Price, suffix)
		case models.ActionUpgrade:
			tile := st.Board[ga.TileIndex]
			if tile.OwnerPlayerId != p.PlayerId || tile.Level >= cfg.MaxLevel() {
				return errInvalidAction("%s cannot be upgraded", cfg.Name)
			}
			if p.Cash < cfg.UpgradeCost {
				return errInsufficientCash()
			}
			p.Cash -= cfg.UpgradeCost
			tile.Level++
			tile.Rent = cfg.RentAt(tile.Level)
			m.logf(rec, "%s upgraded %s to level %d%s", p.Nickname, cfg.Name, tile.Level, suffix)
		case models.ActionItemShop:
			if ga.Offer == nil {
				return errInvalidAction("nothing is on offer")
			}
			if p.Cash < ga.Offer.Price {
				return errInsufficientCash()
			}
			p.Cash -= ga.Offer.Price
			addItem(p, ga.Offer.ItemId, 1)
			m.logf(rec, "%s bought %s for %d%s", p.Nickname, ga.Offer.ItemId, ga.Offer.Price, suffix)
		default:
			return errInvalidAction("unknown action type %q", ga.Type)
		}
	} else {
		switch ga.Type {
		case models.ActionBuy:
			m.logf(rec, "%s did not buy %s%s", p.Nickname, cfg.Name, suffix)
		case models.ActionUpgrade:
			m.logf(rec, "%s did not upgrade %s%s", p.Nickname, cfg.Name, suffix)
		case models.ActionItemShop:
			m.logf(rec, "%s left the item shop%s", p.Nickname, suffix)
		default:
			return errInvalidAction("unknown action type %q", ga.Type)
		}
	}
	m.advanceTurn(rec)
	return nil
}

// ActionDecision resolves the live gate when (actionId, token, turnSeq) all match it.
func (m *Manager) ActionDecision(connId string, req models.ActionDecisionPayload) (models.ActionAck, error) {
	roomId := NormalizeRoomId(req.RoomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	t, ok := req.Decision.ActionType()
	if !ok {
		return models.ActionAck{}, errInvalidAction("unknown decision %q", req.Decision)
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		ga := st.PendingAction
		if ga == nil || ga.ActionId != req.ActionId || ga.PlayerToken != req.PlayerToken ||
			ga.TurnSeq != req.TurnSeq || ga.TargetPlayerId != p.PlayerId {
			return errInvalidAction("decision does not match the live prompt")
		}
		if t != ga.Type {
			return errInvalidAction("decision %s does not apply to a %s prompt", req.Decision, ga.Type)
		}
		if err := m.applyDecision(rec, p, ga, req.Decision, false); err != nil {
			return err
		}
		m.settle(rec)
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: string(req.Decision)}
		return nil
	})
	return ack, err
}

// Buy confirms the caller's live gate.
func (m *Manager) Buy(connId, roomId string) (models.ActionAck, error) {
	return m.quickDecision(connId, roomId, true)
}

// SkipBuy declines the caller's live gate.
func (m *Manager) SkipBuy(connId, roomId string) (models.ActionAck, error) {
	return m.quickDecision(connId, roomId, false)
}

func (m *Manager) quickDecision(connId, roomId string, confirm bool) (models.ActionAck, error) {
	roomId = NormalizeRoomId(roomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		ga := st.PendingAction
		if st.Phase != models.PhaseCanBuy || ga == nil {
			return newError(models.ErrNotBuyPhase, "no decision is pending")
		}
		if ga.TargetPlayerId != p.PlayerId {
			return errNotYourTurn()
		}
		d := models.SkipDecision(ga.Type)
		if confirm {
			d = models.ConfirmDecision(ga.Type)
		}
		if err := m.applyDecision(rec, p, ga, d, false); err != nil {
			return err
		}
		m.settle(rec)
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: string(d)}
		return nil
	})
	return ack, err
}
