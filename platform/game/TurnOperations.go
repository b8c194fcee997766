package game

import (
	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
	"github.com/sirupsen/logrus"
)

func (m *Manager) Roll(connId, roomId string) (models.RollAck, error) {
	roomId = NormalizeRoomId(roomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.RollAck{}, err
	}
	var ack models.RollAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}
		if st.Status != models.RoomInGame || st.Phase == models.PhaseWaiting {
			return errGameNotReady()
		}
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if st.CurrentTurnPlayerId != p.PlayerId || st.Phase != models.PhaseRolling {
			return errNotYourTurn()
		}
		ev := m.performRoll(rec, p, 0)
		ack = models.RollAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Dice: ev.Dice, Dice1: ev.Dice1, Dice2: ev.Dice2, Position: ev.To}
		return nil
	})
	return ack, err
}

// performRoll moves p by a random or forced dice value and resolves the landing.
// A forced value is still subject to the turtle override.
func (m *Manager) performRoll(rec *roomRecord, p *models.Player, forced int) models.DiceRolledEvent {
	st := rec.state
	st.Phase = models.PhaseMoving

	var d1, d2 int
	if forced > 0 {
		d1 = forced
	} else {
		d1 = m.intn(6) + 1
		d2 = m.intn(6) + 1
	}
	if p.Effects.TurtleTurns > 0 {
		d1, d2 = 1, 0
		p.Effects.TurtleTurns--
		m.logf(rec, "%s crawls like a turtle (%d turns left)", p.Nickname, p.Effects.TurtleTurns)
	}
	dice := d1 + d2

	n := board.Size()
	from := p.Position
	to := (from + dice) % n
	passed := from+dice >= n
	p.Position = to
	if passed {
		p.Cash += m.cfg.StartBonus
		m.logf(rec, "%s passed the start and collected %d", p.Nickname, m.cfg.StartBonus)
	}
	st.LastRoll = &models.LastRoll{PlayerId: p.PlayerId, Value: dice, Dice1: d1, Dice2: d2}

	ev := models.DiceRolledEvent{
		RoomId:      st.RoomId,
		PlayerId:    p.PlayerId,
		Dice:        dice,
		Dice1:       d1,
		Dice2:       d2,
		From:        from,
		To:          to,
		PassedStart: passed,
		Forced:      forced > 0,
	}
	m.out.BroadcastToRoom(st.RoomId, EventDiceRolled, ev)
	m.logf(rec, "%s rolled %d and moved to %s", p.Nickname, dice, board.TileConfig(to).Name)

	m.resolveLanding(rec, p, from, dice)
	m.settle(rec)
	return ev
}

// advanceTurn hands the turn to the next connected seat. Jailed seats burn one jail turn and are skipped.
func (m *Manager) advanceTurn(rec *roomRecord) {
	st := rec.state
	m.clearGate(rec)
	m.touch(rec)
	if st.Status != models.RoomInGame {
		return
	}
	st.TurnSeq++

	idx := -1
	for i, p := range st.Players {
		if p.PlayerId == st.CurrentTurnPlayerId {
			idx = i
			m.tickGod(rec, p)
			break
		}
	}

	n := len(st.Players)
	candidates := connectedSeats(st)
	if len(candidates) < 2 {
		// the turn still moves on so a resumed game never replays it
		for step := 1; step <= n; step++ {
			if p := st.Players[(idx+step+n)%n]; p.InPlay() {
				st.CurrentTurnPlayerId = p.PlayerId
				break
			}
		}
		st.Phase = models.PhaseWaiting
		return
	}

	var next *models.Player
	for step := 1; step <= n && next == nil; step++ {
		p := st.Players[(idx+step+n)%n]
		if !p.InPlay() || !p.Connected {
			continue
		}
		if p.Effects.JailTurns > 0 {
			p.Effects.JailTurns--
			m.logf(rec, "%s is in jail and skips this turn (%d left)", p.Nickname, p.Effects.JailTurns)
			continue
		}
		next = p
	}
	if next == nil {
		next = candidates[0]
	}

	st.CurrentTurnPlayerId = next.PlayerId
	st.Phase = models.PhaseRolling
	m.log.WithFields(logrus.Fields{"room_id": st.RoomId, "player_id": next.PlayerId, "turn_seq": st.TurnSeq}).Debug("turn advanced")
}

func (m *Manager) tickGod(rec *roomRecord, p *models.Player) {
	if p.Effects.God == models.GodNone {
		return
	}
	if p.Effects.GodFresh {
		p.Effects.GodFresh = false
		return
	}
	p.Effects.GodTurns--
	if p.Effects.GodTurns > 0 {
		return
	}
	god := p.Effects.God
	p.Effects.God = models.GodNone
	p.Effects.GodTurns = 0
	p.Effects.GodFresh = false
	m.logf(rec, "%s has left %s", godName(god), p.Nickname)
}
