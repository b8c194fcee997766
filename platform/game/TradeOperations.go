package game

import (
	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

func (m *Manager) CreateTradeOffer(connId string, req models.CreateTradeOfferPayload) (models.TradeAck, error) {
	roomId := NormalizeRoomId(req.RoomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.TradeAck{}, err
	}
	var ack models.TradeAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}
		if st.Status != models.RoomInGame {
			return errGameNotReady()
		}
		from, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if req.TargetPlayerId == from.PlayerId {
			return errInvalidAction("you cannot trade with yourself")
		}
		offer := &models.TradeOffer{
			TradeId:      uuid.NewV4().String(),
			RoomId:       roomId,
			FromPlayerId: from.PlayerId,
			ToPlayerId:   req.TargetPlayerId,
			GiveTiles:    req.GiveTiles,
			TakeTiles:    req.TakeTiles,
			GiveCash:     req.GiveCash,
			TakeCash:     req.TakeCash,
			GiveItems:    req.GiveItems,
			TakeItems:    req.TakeItems,
			CreatedAt:    m.millis(),
		}
		if offer.GiveCash == 0 && offer.TakeCash == 0 && len(offer.GiveTiles) == 0 && len(offer.TakeTiles) == 0 &&
			len(offer.GiveItems) == 0 && len(offer.TakeItems) == 0 {
			return errInvalidPayload("the offer is empty")
		}
		if err := validateTrade(st, offer); err != nil {
			return err
		}
		to := st.PlayerById(offer.ToPlayerId)
		if to.Status != models.PlayerActive {
			return errInvalidAction("%s is not connected", to.Nickname)
		}

		if rec.trade != nil {
			m.logf(rec, "the previous trade offer was withdrawn")
		}
		rec.trade = offer
		m.out.BroadcastToRoom(roomId, EventTradeOffer, *offer)
		m.logf(rec, "%s proposed a trade to %s", from.Nickname, to.Nickname)
		ack = models.TradeAck{Ok: true, RoomId: roomId, TradeId: offer.TradeId}
		return nil
	})
	return ack, err
}

func (m *Manager) RespondTradeOffer(connId string, req models.RespondTradeOfferPayload) (models.TradeAck, error) {
	roomId := NormalizeRoomId(req.RoomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.TradeAck{}, err
	}
	var ack models.TradeAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		offer := rec.trade
		if offer == nil || offer.TradeId != req.TradeId {
			return errInvalidAction("trade offer not found")
		}
		if offer.ToPlayerId != p.PlayerId {
			return errInvalidAction("only %s may respond to this offer", offer.ToPlayerId)
		}
		rec.trade = nil

		if !req.Accept {
			m.out.BroadcastToRoom(roomId, EventTradeResult, models.TradeResultEvent{RoomId: roomId, TradeId: offer.TradeId, Text: "rejected"})
			m.logf(rec, "%s rejected the trade", p.Nickname)
			ack = models.TradeAck{Ok: true, RoomId: roomId, TradeId: offer.TradeId}
			return nil
		}

		if err := validateTrade(st, offer); err != nil {
			m.out.BroadcastToRoom(roomId, EventTradeResult, models.TradeResultEvent{RoomId: roomId, TradeId: offer.TradeId, Voided: true, Text: "voided"})
			m.logf(rec, "the trade was voided because the offer is no longer valid")
			m.log.WithError(err).WithFields(logrus.Fields{"room_id": roomId, "trade_id": offer.TradeId}).Info("trade voided")
			return errInvalidAction("the offer is no longer valid: %s", ToPayload(err).Message)
		}

		m.executeTrade(st, offer)
		m.out.BroadcastToRoom(roomId, EventTradeResult, models.TradeResultEvent{RoomId: roomId, TradeId: offer.TradeId, Accepted: true, Text: "accepted"})
		m.logf(rec, "%s accepted the trade", p.Nickname)
		m.settle(rec)
		ack = models.TradeAck{Ok: true, RoomId: roomId, TradeId: offer.TradeId}
		return nil
	})
	return ack, err
}

// validateTrade checks an offer against live state.
func validateTrade(st *models.Room, offer *models.TradeOffer) error {
	from := st.PlayerById(offer.FromPlayerId)
	to := st.PlayerById(offer.ToPlayerId)
	if from == nil || !from.InPlay() || to == nil || !to.InPlay() {
		return newError(models.ErrPlayerNotFound, "trade partner is not in play")
	}
	if offer.GiveCash < 0 || offer.TakeCash < 0 {
		return errInvalidPayload("cash amounts must not be negative")
	}
	if from.Cash < offer.GiveCash || to.Cash < offer.TakeCash {
		return errInsufficientCash()
	}
	if err := checkTiles(st, from, offer.GiveTiles); err != nil {
		return err
	}
	if err := checkTiles(st, to, offer.TakeTiles); err != nil {
		return err
	}
	if err := checkItems(from, offer.GiveItems); err != nil {
		return err
	}
	return checkItems(to, offer.TakeItems)
}

func checkTiles(st *models.Room, owner *models.Player, tiles []int) error {
	seen := make(map[int]bool, len(tiles))
	for _, idx := range tiles {
		if idx < 0 || idx >= len(st.Board) || seen[idx] {
			return errInvalidPayload("invalid tile index %d", idx)
		}
		seen[idx] = true
		if st.Board[idx].OwnerPlayerId != owner.PlayerId {
			return errInvalidAction("%s does not own %s", owner.Nickname, board.TileConfig(idx).Name)
		}
	}
	return nil
}

func checkItems(owner *models.Player, items []models.ItemId) error {
	need := make(map[models.ItemId]int, len(items))
	for _, id := range items {
		need[id]++
	}
	for id, n := range need {
		if owner.Items[id] < n {
			return errInvalidAction("%s does not hold %d %s", owner.Nickname, n, id)
		}
	}
	return nil
}

func (m *Manager) executeTrade(st *models.Room, offer *models.TradeOffer) {
	from := st.PlayerById(offer.FromPlayerId)
	to := st.PlayerById(offer.ToPlayerId)

	from.Cash += offer.TakeCash - offer.GiveCash
	to.Cash += offer.GiveCash - offer.TakeCash
	for _, idx := range offer.GiveTiles {
		st.Board[idx].OwnerPlayerId = to.PlayerId
		st.Board[idx].OwnerCharacterId = to.SelectedCharacterId
	}
	for _, idx := range offer.TakeTiles {
		st.Board[idx].OwnerPlayerId = from.PlayerId
		st.Board[idx].OwnerCharacterId = from.SelectedCharacterId
	}
	for _, id := range offer.GiveItems {
		addItem(from, id, -1)
		addItem(to, id, 1)
	}
	for _, id := range offer.TakeItems {
		addItem(to, id, -1)
		addItem(from, id, 1)
	}
}

// voidTradesFor drops the outstanding offer if playerId is one of its sides.
func (m *Manager) voidTradesFor(rec *roomRecord, playerId string) {
	offer := rec.trade
	if offer == nil || (offer.FromPlayerId != playerId && offer.ToPlayerId != playerId) {
		return
	}
	rec.trade = nil
	m.out.BroadcastToRoom(rec.state.RoomId, EventTradeResult, models.TradeResultEvent{
		RoomId:  rec.state.RoomId,
		TradeId: offer.TradeId,
		Voided:  true,
		Text:    "voided",
	})
	m.logf(rec, "the pending trade was voided")
}
