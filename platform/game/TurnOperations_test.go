package game

import (
	"testing"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/board"
)

func TestRollRequiresTurn(t *testing.T) {
	h := newHarness(t)
	roomId, _, _ := h.startGame(t)

	_, err := h.m.Roll("c2", roomId)
	expectCode(t, err, models.ErrNotYourTurn)

	_, err = h.m.Roll("nobody", roomId)
	expectCode(t, err, models.ErrRoomNotFound)
}

func TestRollBeforeStart(t *testing.T) {
	h := newHarness(t)
	created, _ := h.m.CreateRoom("c1", "Alice", "t1")
	_, err := h.m.Roll("c1", created.RoomId)
	expectCode(t, err, models.ErrGameNotReady)
}

func TestBuyScenario(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)

	h.rng.push(1, 4) // 2 + 5
	ack, err := h.m.Roll("c1", roomId)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if ack.Dice != 7 || ack.Dice1 != 2 || ack.Dice2 != 5 || ack.Position != 7 {
		t.Fatalf("unexpected roll %+v", ack)
	}

	st := h.snapshot(t, roomId)
	ga := st.PendingAction
	if st.Phase != models.PhaseCanBuy || ga == nil || ga.Type != models.ActionBuy || ga.TileIndex != 7 {
		t.Fatalf("expected a BUY gate on tile 7, got phase %s gate %+v", st.Phase, ga)
	}
	if st.PendingBuyTileIndex == nil || *st.PendingBuyTileIndex != 7 {
		t.Fatalf("pending buy tile should be 7")
	}
	prompt, ok := h.out.last(EventActionRequired)
	if !ok || prompt.target != "c1" {
		t.Fatalf("action required should be pushed to alice only, got %+v", prompt)
	}

	_, err = h.m.ActionDecision("c1", models.ActionDecisionPayload{
		RoomId:      roomId,
		ActionId:    ga.ActionId,
		PlayerToken: "t1",
		TurnSeq:     ga.TurnSeq,
		Decision:    models.DecisionBuyConfirm,
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	st = h.snapshot(t, roomId)
	if cash := st.PlayerById(alice).Cash; cash != 14700 {
		t.Fatalf("alice should have 14700, got %d", cash)
	}
	if owner := st.Board[7].OwnerPlayerId; owner != alice {
		t.Fatalf("tile 7 should belong to alice, got %q", owner)
	}
	if st.Board[7].OwnerCharacterId != "caocao" {
		t.Fatalf("owner character should be recorded")
	}
	if st.PendingAction != nil || st.PendingBuyTileIndex != nil {
		t.Fatalf("gate should be cleared")
	}
	if st.CurrentTurnPlayerId != bob || st.Phase != models.PhaseRolling || st.TurnSeq != 1 {
		t.Fatalf("turn should pass to bob, got %s %s %d", st.CurrentTurnPlayerId, st.Phase, st.TurnSeq)
	}
}

func TestPassingStartPaysBonus(t *testing.T) {
	h := newHarness(t)
	roomId, alice, _ := h.startGame(t)
	n := board.Size()
	h.mutate(t, roomId, func(st *models.Room) {
		st.PlayerById(alice).Position = n - 2
	})

	h.rng.push(1, 2) // 2 + 3
	ack, err := h.m.Roll("c1", roomId)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if ack.Position != 3 {
		t.Fatalf("position should wrap to 3, got %d", ack.Position)
	}
	st := h.snapshot(t, roomId)
	if cash := st.PlayerById(alice).Cash; cash != 15000+2000 {
		t.Fatalf("start bonus should be paid once, cash %d", cash)
	}
	ev, _ := h.out.last(EventDiceRolled)
	if rolled := ev.payload.(models.DiceRolledEvent); !rolled.PassedStart || rolled.From != n-2 {
		t.Fatalf("unexpected dice event %+v", rolled)
	}
}

func TestLandingExactlyOnStartPaysBonus(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	n := board.Size()
	h.mutate(t, roomId, func(st *models.Room) {
		st.PlayerById(alice).Position = n - 4
	})
	h.rng.push(1, 1)
	if _, err := h.m.Roll("c1", roomId); err != nil {
		t.Fatalf("roll: %v", err)
	}
	st := h.snapshot(t, roomId)
	if p := st.PlayerById(alice); p.Position != 0 || p.Cash != 17000 {
		t.Fatalf("expected start tile with bonus, got position %d cash %d", p.Position, p.Cash)
	}
	if st.CurrentTurnPlayerId != bob {
		t.Fatalf("start tile resolves immediately")
	}
}

func TestRentSumsOwnerZone(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.Board[1].OwnerPlayerId = bob
		st.Board[2].OwnerPlayerId = bob
		st.Board[3].OwnerPlayerId = bob
		st.Board[7].OwnerPlayerId = bob
	})

	h.rng.push(0, 1) // 1 + 2 -> tile 3
	if _, err := h.m.Roll("c1", roomId); err != nil {
		t.Fatalf("roll: %v", err)
	}
	// tile 7 sits in another zone and does not count
	want := board.TileConfig(1).RentAt(0) + board.TileConfig(2).RentAt(0) + board.TileConfig(3).RentAt(0)
	st := h.snapshot(t, roomId)
	if cash := st.PlayerById(alice).Cash; cash != 15000-want {
		t.Fatalf("alice should pay %d, cash %d", want, cash)
	}
	if cash := st.PlayerById(bob).Cash; cash != 15000+want {
		t.Fatalf("bob should receive %d, cash %d", want, cash)
	}
	if st.CurrentTurnPlayerId != bob {
		t.Fatalf("rent resolves immediately and advances the turn")
	}
}

func TestRentModifiers(t *testing.T) {
	cases := []struct {
		god       models.GodId
		wantPayer int
		wantOwner int
	}{
		{models.GodNone, 15000 - 34, 15000 + 34},
		{models.GodFortune, 15000, 15000},
		{models.GodPoor, 15000 - 68, 15000 + 68},
		{models.GodLiu, 15000 - 34 + 500, 15000 + 34 - 500},
	}
	for _, tc := range cases {
		h := newHarness(t)
		roomId, alice, bob := h.startGame(t)
		h.mutate(t, roomId, func(st *models.Room) {
			st.Board[7].OwnerPlayerId = bob
			st.PlayerById(alice).Effects.God = tc.god
			if tc.god != models.GodNone {
				st.PlayerById(alice).Effects.GodTurns = 3
			}
		})
		h.rng.push(1, 4)
		if _, err := h.m.Roll("c1", roomId); err != nil {
			t.Fatalf("%s: roll: %v", tc.god, err)
		}
		st := h.snapshot(t, roomId)
		if got := st.PlayerById(alice).Cash; got != tc.wantPayer {
			t.Fatalf("%q: payer cash %d, want %d", tc.god, got, tc.wantPayer)
		}
		if got := st.PlayerById(bob).Cash; got != tc.wantOwner {
			t.Fatalf("%q: owner cash %d, want %d", tc.god, got, tc.wantOwner)
		}
	}
}

func TestGodLandingOverridesTile(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.Board[7].OwnerPlayerId = bob
		st.Board[7].Level = 2
		st.Board[7].Rent = 153
		st.PlayerById(alice).Effects.God = models.GodLand
		st.PlayerById(alice).Effects.GodTurns = 3
	})
	h.rng.push(1, 4)
	h.m.Roll("c1", roomId)

	st := h.snapshot(t, roomId)
	if st.Board[7].OwnerPlayerId != alice || st.Board[7].Level != 2 {
		t.Fatalf("land god should hand the tile to alice keeping its level, got %+v", st.Board[7])
	}
	if st.PlayerById(alice).Cash != 15000 {
		t.Fatalf("no rent should be paid")
	}
	if g := st.PlayerById(alice).Effects; g.GodTurns != 2 {
		t.Fatalf("god should tick when the turn ends, got %+v", g)
	}

	h2 := newHarness(t)
	roomId, alice, bob = h2.startGame(t)
	h2.mutate(t, roomId, func(st *models.Room) {
		st.Board[7].OwnerPlayerId = bob
		st.PlayerById(alice).Effects.God = models.GodHoly
		st.PlayerById(alice).Effects.GodTurns = 1
	})
	h2.rng.push(1, 4)
	h2.m.Roll("c1", roomId)
	st = h2.snapshot(t, roomId)
	if st.Board[7].OwnerPlayerId != "" {
		t.Fatalf("holy mary should clear ownership")
	}
	if st.PendingAction != nil {
		t.Fatalf("cleared tile must not open a buy prompt in the same landing")
	}
	if g := st.PlayerById(alice).Effects.God; g != models.GodNone {
		t.Fatalf("god with one turn left should expire, got %s", g)
	}
}

func TestUpgradePrompt(t *testing.T) {
	h := newHarness(t)
	roomId, alice, _ := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.Board[7].OwnerPlayerId = alice
	})
	h.rng.push(1, 4)
	h.m.Roll("c1", roomId)

	st := h.snapshot(t, roomId)
	if st.PendingAction == nil || st.PendingAction.Type != models.ActionUpgrade {
		t.Fatalf("expected an UPGRADE gate, got %+v", st.PendingAction)
	}
	if st.PendingBuyTileIndex != nil {
		t.Fatalf("upgrade gates do not set the pending buy tile")
	}
	if _, err := h.m.Buy("c1", roomId); err != nil {
		t.Fatalf("confirm upgrade: %v", err)
	}
	st = h.snapshot(t, roomId)
	if st.Board[7].Level != 1 || st.Board[7].Rent != 68 {
		t.Fatalf("tile should be level 1 with rent 68, got %+v", st.Board[7])
	}
	if cash := st.PlayerById(alice).Cash; cash != 15000-165 {
		t.Fatalf("upgrade cost should be charged, cash %d", cash)
	}
}

func TestJailedSeatIsSkipped(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.PlayerById(bob).Effects.JailTurns = 1
	})
	h.rng.push(1, 4)
	h.m.Roll("c1", roomId)
	if _, err := h.m.SkipBuy("c1", roomId); err != nil {
		t.Fatalf("skip: %v", err)
	}
	st := h.snapshot(t, roomId)
	if st.CurrentTurnPlayerId != alice {
		t.Fatalf("jailed bob should be skipped, turn is %s", st.CurrentTurnPlayerId)
	}
	if jt := st.PlayerById(bob).Effects.JailTurns; jt != 0 {
		t.Fatalf("jail counter should decrement, got %d", jt)
	}
	if st.TurnSeq != 1 {
		t.Fatalf("turn sequence should increase once, got %d", st.TurnSeq)
	}
}

func TestFateTileFiresOneOutcome(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	h.rng.push(0, 3, 0) // 1 + 4 -> fate tile 5, then gain_cash
	if _, err := h.m.Roll("c1", roomId); err != nil {
		t.Fatalf("roll: %v", err)
	}
	st := h.snapshot(t, roomId)
	if cash := st.PlayerById(alice).Cash; cash != 16000 {
		t.Fatalf("gain cash fate should pay 1000, cash %d", cash)
	}
	if st.CurrentTurnPlayerId != bob {
		t.Fatalf("fate resolves immediately")
	}
}

func TestItemShopPrompt(t *testing.T) {
	h := newHarness(t)
	roomId, alice, _ := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.PlayerById(alice).Position = 10
	})
	h.rng.push(1, 4, 0) // 7 -> shop 17, offer any_dice
	h.m.Roll("c1", roomId)

	st := h.snapshot(t, roomId)
	ga := st.PendingAction
	if ga == nil || ga.Type != models.ActionItemShop || ga.Offer == nil || ga.Offer.ItemId != models.ItemAnyDice {
		t.Fatalf("expected an item shop offer for any_dice, got %+v", ga)
	}
	_, err := h.m.ActionDecision("c1", models.ActionDecisionPayload{
		RoomId: roomId, ActionId: ga.ActionId, PlayerToken: "t1", TurnSeq: ga.TurnSeq, Decision: models.DecisionBuyConfirm,
	})
	expectCode(t, err, models.ErrInvalidAction)

	_, err = h.m.ActionDecision("c1", models.ActionDecisionPayload{
		RoomId: roomId, ActionId: ga.ActionId, PlayerToken: "t1", TurnSeq: ga.TurnSeq, Decision: models.DecisionShopConfirm,
	})
	if err != nil {
		t.Fatalf("shop confirm: %v", err)
	}
	st = h.snapshot(t, roomId)
	p := st.PlayerById(alice)
	if p.Items[models.ItemAnyDice] != 1 || p.Cash != 15000-600 {
		t.Fatalf("expected one any_dice for 600, got items %v cash %d", p.Items, p.Cash)
	}
}

func TestOutlawAmbush(t *testing.T) {
	h := newHarness(t)
	roomId, alice, bob := h.startGame(t)
	h.mutate(t, roomId, func(st *models.Room) {
		st.PlayerById(alice).Effects.OutlawArmed = true
		st.PlayerById(bob).Position = 3
	})
	h.rng.push(1, 4)
	h.m.Roll("c1", roomId)

	st := h.snapshot(t, roomId)
	if cash := st.PlayerById(bob).Cash; cash != 15000-2250 {
		t.Fatalf("bob should lose 15%%, cash %d", cash)
	}
	if p := st.PlayerById(alice); p.Cash != 15000+2250 || p.Effects.OutlawArmed {
		t.Fatalf("alice should collect and disarm, got cash %d armed %v", p.Cash, p.Effects.OutlawArmed)
	}
	if st.PendingAction == nil || st.PendingAction.Type != models.ActionBuy {
		t.Fatalf("the ambush does not replace the landing outcome")
	}
}
