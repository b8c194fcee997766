package game

import (
	"testing"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
)

func fate(t *testing.T, h *harness, roomId, playerId string, id models.FateEventId) {
	t.Helper()
	err := h.m.withRoom(roomId, func(rec *roomRecord) error {
		h.m.applyFate(rec, rec.state.PlayerById(playerId), id)
		return nil
	})
	if err != nil {
		t.Fatalf("apply fate: %v", err)
	}
}

func TestDrawFateUsesCumulativeWeights(t *testing.T) {
	h := newHarness(t)
	h.rng.push(0, 13, 14, 99)
	want := []models.FateEventId{models.FateGainCash, models.FateGainCash, models.FateLoseCash, models.FateTeleportStart}
	for _, id := range want {
		if got := h.m.drawFate(); got != id {
			t.Fatalf("expected %s, got %s", id, got)
		}
	}
}

func TestFateCashTransfers(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)

	h.rng.push(0) // 100
	fate(t, h, roomId, alice, models.FateStealFromAll)
	st := h.snapshot(t, roomId)
	if st.PlayerById(alice).Cash != 15100 || st.PlayerById(bob).Cash != 14900 {
		t.Fatalf("steal from all should move 100, got %d/%d", st.PlayerById(alice).Cash, st.PlayerById(bob).Cash)
	}

	h.rng.push(400) // 500
	fate(t, h, roomId, alice, models.FateGiveToAll)
	st = h.snapshot(t, roomId)
	if st.PlayerById(alice).Cash != 14600 || st.PlayerById(bob).Cash != 15400 {
		t.Fatalf("give to all should move 500, got %d/%d", st.PlayerById(alice).Cash, st.PlayerById(bob).Cash)
	}

	fate(t, h, roomId, alice, models.FateLoseCash)
	if cash := h.snapshot(t, roomId).PlayerById(alice).Cash; cash != 13800 {
		t.Fatalf("lose cash should cost 800, got %d", cash)
	}
}

func TestFateForcedSaleAndNanman(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.Board[1].OwnerPlayerId = alice
		st.Board[1].Level = 2
		st.Board[8].OwnerPlayerId = bob
		st.Board[9].OwnerPlayerId = bob
	})

	fate(t, h, roomId, bob, models.FateNanman)
	st := h.snapshot(t, roomId)
	if st.PlayerById(alice).Cash != 14800 || st.PlayerById(bob).Cash != 14600 {
		t.Fatalf("nanman should cost 200 per property, got %d/%d", st.PlayerById(alice).Cash, st.PlayerById(bob).Cash)
	}

	fate(t, h, roomId, alice, models.FateForcedSale)
	st = h.snapshot(t, roomId)
	if tile := st.Board[1]; tile.OwnerPlayerId != "" || tile.Level != 0 {
		t.Fatalf("forced sale should release the tile, got %+v", tile)
	}
	if cash := st.PlayerById(alice).Cash; cash != 14800+220 {
		t.Fatalf("forced sale should refund half the price, got %d", cash)
	}
}

func TestFateGodPossession(t *testing.T) {
	h := newHarness(t)
	roomId, alice, _ := h.startGame(t)

	h.rng.push(1) // poor_god
	fate(t, h, roomId, alice, models.FateRandomGod)
	p := h.snapshot(t, roomId).PlayerById(alice)
	if p.Effects.God != models.GodPoor || p.Effects.GodTurns != 3 || p.Cash != 14000 {
		t.Fatalf("poor god should possess alice and cost 1000, got %+v cash %d", p.Effects, p.Cash)
	}

	h.rng.push(0) // fortune_god
	fate(t, h, roomId, alice, models.FateRandomGod)
	p = h.snapshot(t, roomId).PlayerById(alice)
	if p.Effects.God != models.GodFortune || p.Cash != 15000 {
		t.Fatalf("fortune god should replace it and pay 1000, got %+v cash %d", p.Effects, p.Cash)
	}
}

func TestFateItemsJailAndTeleport(t *testing.T) {
	h := newHarness(t)
	roomId, alice, _ := h.startGame(t)

	h.rng.push(2)
	fate(t, h, roomId, alice, models.FateGainItem)
	if n := h.snapshot(t, roomId).PlayerById(alice).Items[models.ItemOutlaw]; n != 1 {
		t.Fatalf("expected an outlaw, got %d", n)
	}
	fate(t, h, roomId, alice, models.FateLoseItem)
	if items := h.snapshot(t, roomId).PlayerById(alice).Items; len(items) != 0 {
		t.Fatalf("the only item should be lost, got %v", items)
	}
	fate(t, h, roomId, alice, models.FateLoseItem)

	fate(t, h, roomId, alice, models.FateJail)
	p := h.snapshot(t, roomId).PlayerById(alice)
	if p.Position != board.JailIndex || p.Effects.JailTurns != 2 {
		t.Fatalf("alice should be jailed, got %+v", p)
	}

	fate(t, h, roomId, alice, models.FateTeleportStart)
	p = h.snapshot(t, roomId).PlayerById(alice)
	if p.Position != board.StartIndex || p.Cash != 17000 {
		t.Fatalf("teleport should move to start with the bonus, got position %d cash %d", p.Position, p.Cash)
	}
}

func TestFatePossessionLastsThreeOwnTurns(t *testing.T) {
	h := newHarness(t)
	roomId, alice, _ := h.startGame(t)

	h.rng.push(2) // holy_mary
	fate(t, h, roomId, alice, models.FateRandomGod)

	endTurn := func() {
		t.Helper()
		err := h.m.withRoom(roomId, func(rec *roomRecord) error {
			h.m.advanceTurn(rec)
			return nil
		})
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	endTurn() // the turn the god arrived
	if g := h.snapshot(t, roomId).PlayerById(alice).Effects; g.God != models.GodHoly || g.GodTurns != 3 {
		t.Fatalf("the arrival turn must not count, got %+v", g)
	}
	for left := 2; left >= 0; left-- {
		endTurn() // bob
		endTurn() // alice
		g := h.snapshot(t, roomId).PlayerById(alice).Effects
		if left > 0 && (g.God != models.GodHoly || g.GodTurns != left) {
			t.Fatalf("expected %d turns left, got %+v", left, g)
		}
		if left == 0 && g.God != models.GodNone {
			t.Fatalf("god should leave after three turns, got %+v", g)
		}
	}
}
