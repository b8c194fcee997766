package game

import (
	"time"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
	"github.com/sirupsen/logrus"
)

// settle retires every bankrupt seat and ends the match when one seat remains.
func (m *Manager) settle(rec *roomRecord) {
	st := rec.state
	if st.Status != models.RoomInGame {
		return
	}
	for _, p := range st.Players {
		if !p.InPlay() || p.Cash >= 0 {
			continue
		}
		p.Cash = 0
		m.logf(rec, "%s went bankrupt", p.Nickname)
		m.retireSeat(rec, p)
	}
	m.checkVictory(rec)
}

// retireSeat removes p from play: tiles go back to the bank and nothing may reference the seat afterwards.
func (m *Manager) retireSeat(rec *roomRecord, p *models.Player) {
	st := rec.state
	held := st.CurrentTurnPlayerId == p.PlayerId

	for _, tile := range st.Board {
		if tile.OwnerPlayerId == p.PlayerId {
			releaseTile(tile, board.TileConfig(tile.Index))
		}
	}
	p.Effects = models.Effects{}
	p.Status = models.PlayerLeft
	p.Connected = false
	p.Ready = false
	if st.Status == models.RoomWaiting {
		p.SelectedCharacterId = ""
	}

	m.voidTradesFor(rec, p.PlayerId)
	if ga := st.PendingAction; ga != nil && ga.TargetPlayerId == p.PlayerId {
		m.clearGate(rec)
	}
	if connId := m.sessions.PurgeSeat(st.RoomId, p.PlayerId); connId != "" {
		m.out.Leave(connId, st.RoomId)
	}

	if st.HostPlayerId == p.PlayerId {
		for _, next := range st.Players {
			if next.InPlay() {
				st.HostPlayerId = next.PlayerId
				break
			}
		}
	}
	if st.Status == models.RoomInGame && held && len(inPlaySeats(st)) >= 2 {
		m.advanceTurn(rec)
	}
	m.touch(rec)
	m.log.WithFields(logrus.Fields{"room_id": st.RoomId, "player_id": p.PlayerId}).Info("seat retired")
}

func (m *Manager) checkVictory(rec *roomRecord) {
	st := rec.state
	remaining := inPlaySeats(st)
	if len(remaining) > 1 {
		return
	}
	m.clearGate(rec)
	rec.trade = nil
	st.Status = models.RoomEnded
	st.Phase = models.PhaseWaiting
	if len(remaining) == 0 {
		m.logf(rec, "the game ended without a winner")
		m.archiveResult(st, nil)
		return
	}
	winner := remaining[0]
	st.WinnerPlayerId = winner.PlayerId
	st.CurrentTurnPlayerId = winner.PlayerId
	m.logf(rec, "%s wins the game", winner.Nickname)
	m.archiveResult(st, winner)
}

func (m *Manager) archiveResult(st *models.Room, winner *models.Player) {
	entry := m.log.WithField("room_id", st.RoomId)
	entry.WithField("winner", st.WinnerPlayerId).Info("game ended")
	if m.archive == nil {
		return
	}
	result := &models.GameResult{
		RoomId:  st.RoomId,
		Turns:   st.TurnSeq,
		EndedAt: time.Unix(0, m.millis()*int64(time.Millisecond)).UTC(),
	}
	if winner != nil {
		result.WinnerPlayerId = winner.PlayerId
		result.WinnerNickname = winner.Nickname
	}
	for _, p := range st.Players {
		result.Players = append(result.Players, p.Nickname)
	}
	if err := m.archive.SaveResult(result); err != nil {
		entry.WithError(err).Warn("could not archive game result")
	}
}
