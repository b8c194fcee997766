package game

import (
	"testing"

	"github.com/DedS3t/rich-backend/app/models"
)

func TestBankruptcyEndsTheGame(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.Board[1].OwnerPlayerId = alice
		st.Board[1].Level = 1
		st.Board[7].OwnerPlayerId = bob
		st.Board[7].Level = 3
		st.Board[7].Rent = 340
		st.PlayerById(alice).Cash = 100
		st.PlayerById(alice).Effects.TurtleTurns = 0
	})
	offer, err := h.m.CreateTradeOffer("c2", models.CreateTradeOfferPayload{RoomId: roomId, TargetPlayerId: alice, GiveCash: 10})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}

	h.rng.push(1, 4)
	if _, err := h.m.Roll("c1", roomId); err != nil {
		t.Fatalf("roll: %v", err)
	}

	st := h.snapshot(t, roomId)
	a := st.PlayerById(alice)
	if a.Status != models.PlayerLeft || a.Cash != 0 || a.Connected {
		t.Fatalf("alice should be retired with zero cash, got %+v", a)
	}
	if tile := st.Board[1]; tile.OwnerPlayerId != "" || tile.Level != 0 {
		t.Fatalf("alice's tiles should be released, got %+v", tile)
	}
	if st.Status != models.RoomEnded || st.WinnerPlayerId != bob {
		t.Fatalf("bob should win, got status %s winner %s", st.Status, st.WinnerPlayerId)
	}
	if st.PendingAction != nil {
		t.Fatalf("no gate may survive the end of the game")
	}
	if _, ok := h.m.Sessions().Lookup("c1"); ok {
		t.Fatalf("the bankrupt seat's session should be purged")
	}
	if len(h.archive.results) != 1 || h.archive.results[0].WinnerPlayerId != bob || h.archive.results[0].WinnerNickname != "Bob" {
		t.Fatalf("result should be archived, got %+v", h.archive.results)
	}

	_, err = h.m.RespondTradeOffer("c2", models.RespondTradeOfferPayload{RoomId: roomId, TradeId: offer.TradeId, Accept: true})
	expectCode(t, err, models.ErrRoomEnded)
	_, err = h.m.Roll("c2", roomId)
	expectCode(t, err, models.ErrRoomEnded)
	_, err = h.m.JoinRoom("c5", roomId, "Dan", "t5")
	expectCode(t, err, models.ErrRoomEnded)
}

func TestBankruptcyWithThreeSeatsContinues(t *testing.T) {
	h := newHarness(t)
	created, _ := h.m.CreateRoom("c1", "Alice", "t1")
	roomId := created.RoomId
	bob, _ := h.m.JoinRoom("c2", roomId, "Bob", "t2")
	carol, _ := h.m.JoinRoom("c3", roomId, "Carol", "t3")
	for i, conn := range []string{"c1", "c2", "c3"} {
		h.m.SelectCharacter(conn, roomId, Characters[i])
		h.m.ToggleReady(conn, roomId)
	}
	h.m.StartGame("c1", roomId)

	h.mutate(t, roomId, func(st *models.Room) {
		st.Board[7].OwnerPlayerId = carol.PlayerId
		st.PlayerById(created.PlayerId).Cash = 10
	})
	h.rng.push(1, 4)
	h.m.Roll("c1", roomId)

	st := h.snapshot(t, roomId)
	if st.Status != models.RoomInGame {
		t.Fatalf("two seats remain, the game goes on")
	}
	if st.PlayerById(created.PlayerId).Status != models.PlayerLeft {
		t.Fatalf("alice should be bankrupt")
	}
	if st.CurrentTurnPlayerId != bob.PlayerId {
		t.Fatalf("turn should be with bob, got %s", st.CurrentTurnPlayerId)
	}
	if st.HostPlayerId != bob.PlayerId {
		t.Fatalf("host should migrate to bob")
	}
}

func TestLeavingMidGameHandsVictory(t *testing.T) {
	h := newHarness(t)
	roomId, _, bob := h.startGame(t)
	h.rng.push(1, 4)
	h.m.Roll("c1", roomId)

	if _, err := h.m.LeaveRoom("c1", roomId, "t1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	st := h.snapshot(t, roomId)
	if st.Status != models.RoomEnded || st.WinnerPlayerId != bob || st.PendingAction != nil {
		t.Fatalf("bob should win and the gate should be gone, got %s %s %+v", st.Status, st.WinnerPlayerId, st.PendingAction)
	}
}
