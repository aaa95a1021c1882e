package wager

import (
	"testing"

	"arenabattle/internal/events"
)

func newTestEngine() (*Engine, *events.Recorder) {
	rec := &events.Recorder{}
	return New(nil, rec), rec
}

func TestRegisterPlayer_InitialState(t *testing.T) {
	e, _ := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)

	p, ok := e.Get("p1")
	if !ok {
		t.Fatal("player not registered")
	}
	if p.InitialBet != 10 || p.CurrentRound != 1 || p.CurrentWinnings != 0 {
		t.Errorf("progress = %+v, want bet=10 round=1 winnings=0", p)
	}
	if p.HasWon || p.HasCashedOut {
		t.Errorf("fresh progress has flags set: %+v", p)
	}
}

func TestMultiplierTable(t *testing.T) {
	e, _ := newTestEngine()
	cases := []struct {
		round int
		want  float64
	}{
		{1, 1.5}, {2, 2.0}, {3, 2.5}, {4, 3.0}, {5, 4.0},
		{0, 1}, {6, 1},
	}
	for _, tc := range cases {
		if got := e.Multiplier(tc.round); got != tc.want {
			t.Errorf("Multiplier(%d) = %v, want %v", tc.round, got, tc.want)
		}
	}
}

func TestHandleRoundWin_BanksStakeTimesMultiplier(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 20)

	e.HandleRoundWin("p1", 3)

	p, _ := e.Get("p1")
	if p.CurrentWinnings != 50 { // 20 x 2.5
		t.Errorf("winnings = %v, want 50", p.CurrentWinnings)
	}
	if !p.HasWon || p.CurrentRound != 3 {
		t.Errorf("progress = %+v, want won at round 3", p)
	}

	won := rec.PlayerEvents(events.RoundWonEvent)
	if len(won) != 1 {
		t.Fatalf("roundWon events = %d, want 1", len(won))
	}
	note := won[0].Payload.(events.RoundWon)
	if note.NextRoundMultiplier != 3.0 || note.PotentialWinnings != 60 {
		t.Errorf("projection = x%v/%v, want x3/60", note.NextRoundMultiplier, note.PotentialWinnings)
	}
	if !note.CanContinue {
		t.Error("round 3 of 5 should allow continuing")
	}
}

func TestHandleRoundWin_FinalRoundCannotContinue(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)

	e.HandleRoundWin("p1", 5)

	note := rec.PlayerEvents(events.RoundWonEvent)[0].Payload.(events.RoundWon)
	if note.CanContinue {
		t.Error("final round must not offer continuation")
	}
}

func TestHandleRoundLoss_FreshStakeLosesBetOnly(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)

	e.HandleRoundLoss("p1")

	note := rec.PlayerEvents(events.RoundLostEvent)[0].Payload.(events.RoundLost)
	if note.LostAmount != 10 {
		t.Errorf("lostAmount = %v, want the stake 10", note.LostAmount)
	}
}

// The core risk contract: continuing puts banked winnings at stake, and a
// loss forfeits them, not merely the original bet.
func TestHandleRoundLoss_AfterContinueForfeitsBankedWinnings(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)

	e.HandleRoundWin("p1", 1) // banked 15
	e.Continue("p1")
	e.HandleRoundLoss("p1")

	note := rec.PlayerEvents(events.RoundLostEvent)[0].Payload.(events.RoundLost)
	if note.LostAmount != 15 {
		t.Errorf("lostAmount = %v, want the banked 15", note.LostAmount)
	}

	p, _ := e.Get("p1")
	if p.CurrentWinnings != 0 || p.HasWon {
		t.Errorf("progress after loss = %+v, want reset", p)
	}
}

func TestCashOut_ProducesDescriptorAndLatches(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)
	e.HandleRoundWin("p1", 2)

	payout := e.CashOut("p1")
	if payout == nil {
		t.Fatal("cash-out after a win should produce a payout")
	}
	if payout.Amount != 20 || payout.Round != 2 || payout.Wallet != "0xabc" {
		t.Errorf("payout = %+v, want amount=20 round=2 wallet=0xabc", payout)
	}
	notes := rec.PlayerEvents(events.CashedOutEvent)
	if len(notes) != 1 {
		t.Fatal("cashedOut notification missing")
	}
	if got := notes[0].Payload.(events.CashedOut).Message; got != "Congratulations! You cashed out 20 MONAT!" {
		t.Errorf("message = %q, want the MONAT amount", got)
	}

	// The latch: a second cash-out is a no-op and re-emits nothing.
	if again := e.CashOut("p1"); again != nil {
		t.Errorf("second cash-out returned %+v, want nil", again)
	}
	if len(rec.PlayerEvents(events.CashedOutEvent)) != 1 {
		t.Error("cashedOut re-emitted after latch")
	}

	// Nothing mutates a cashed-out record.
	e.HandleRoundWin("p1", 3)
	e.HandleRoundLoss("p1")
	p, _ := e.Get("p1")
	if p.CurrentWinnings != 20 || p.CurrentRound != 2 || !p.HasCashedOut {
		t.Errorf("cashed-out record mutated: %+v", p)
	}
}

func TestCashOut_RequiresPendingWin(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)

	if payout := e.CashOut("p1"); payout != nil {
		t.Errorf("cash-out without a win returned %+v", payout)
	}
	if payout := e.CashOut("ghost"); payout != nil {
		t.Errorf("cash-out for unknown player returned %+v", payout)
	}
	if len(rec.PlayerEvents(events.CashedOutEvent)) != 0 {
		t.Error("invalid cash-out emitted a notification")
	}
}

func TestContinue_ExposesWinningsAndAdvances(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)
	e.HandleRoundWin("p1", 1)

	if payout := e.Continue("p1"); payout != nil {
		t.Errorf("mid-progression continue returned a payout: %+v", payout)
	}

	p, _ := e.Get("p1")
	if p.HasWon {
		t.Error("continuing must clear the won flag; the player is exposed again")
	}
	if p.CurrentRound != 2 {
		t.Errorf("round = %d, want advanced to 2", p.CurrentRound)
	}
	if p.CurrentWinnings != 15 {
		t.Errorf("winnings = %v, want still-banked 15", p.CurrentWinnings)
	}

	notes := rec.PlayerEvents(events.ContinuingToNextRoundEvent)
	if len(notes) != 1 {
		t.Fatalf("continuing events = %d, want 1", len(notes))
	}
	note := notes[0].Payload.(events.ContinuingToNextRound)
	if note.NextRound != 2 || note.AtRisk != 15 || note.PotentialWinnings != 20 {
		t.Errorf("note = %+v, want next=2 atRisk=15 potential=20", note)
	}
}

func TestContinue_AtFinalRoundForcesCashOut(t *testing.T) {
	e, rec := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)
	e.HandleRoundWin("p1", 5)

	payout := e.Continue("p1")
	if payout == nil {
		t.Fatal("continue at the final round must force a cash-out")
	}
	if payout.Amount != 40 || payout.Round != 5 {
		t.Errorf("forced payout = %+v, want amount=40 round=5", payout)
	}
	if len(rec.PlayerEvents(events.CashedOutEvent)) != 1 {
		t.Error("forced cash-out did not notify")
	}
	if len(rec.PlayerEvents(events.ContinuingToNextRoundEvent)) != 0 {
		t.Error("forced cash-out also emitted continuingToNextRound")
	}
}

// A win forwarded after a continue must bank at the advanced round's
// multiplier, not re-bank round 1.
func TestWinContinueWin_AdvancesMultiplier(t *testing.T) {
	e, _ := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)

	e.HandleRoundWin("p1", e.CurrentRound("p1"))
	e.Continue("p1")
	e.HandleRoundWin("p1", e.CurrentRound("p1"))

	p, _ := e.Get("p1")
	if p.CurrentRound != 2 {
		t.Errorf("round after win-continue-win = %d, want 2", p.CurrentRound)
	}
	if p.CurrentWinnings != 20 { // 10 x 2.0
		t.Errorf("winnings = %v, want 20", p.CurrentWinnings)
	}
}

func TestFullProgression_ReachesForcedCashOut(t *testing.T) {
	e, _ := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)

	for i := 0; i < 4; i++ {
		e.HandleRoundWin("p1", e.CurrentRound("p1"))
		if payout := e.Continue("p1"); payout != nil {
			t.Fatalf("continue at round %d returned a payout: %+v", i+1, payout)
		}
	}
	e.HandleRoundWin("p1", e.CurrentRound("p1")) // round 5 at x4.0

	payout := e.Continue("p1")
	if payout == nil {
		t.Fatal("continue at the final round must force a cash-out")
	}
	if payout.Amount != 40 || payout.Round != 5 {
		t.Errorf("payout = %+v, want amount=40 round=5", payout)
	}
}

func TestContinue_RequiresPendingWin(t *testing.T) {
	e, _ := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)
	if payout := e.Continue("p1"); payout != nil {
		t.Errorf("continue without a win returned %+v", payout)
	}
	if payout := e.Continue("ghost"); payout != nil {
		t.Errorf("continue for unknown player returned %+v", payout)
	}
}

func TestCurrentRound_Monotonic(t *testing.T) {
	e, _ := newTestEngine()
	e.RegisterPlayer("p1", "0xabc", 10)
	e.HandleRoundWin("p1", 3)
	e.HandleRoundWin("p1", 2) // out-of-order signal must not regress the round

	if got := e.CurrentRound("p1"); got != 3 {
		t.Errorf("CurrentRound = %d, want 3", got)
	}
}

func TestStatus_SumsActivePot(t *testing.T) {
	e, _ := newTestEngine()
	e.RegisterPlayer("p1", "0xa", 10)
	e.RegisterPlayer("p2", "0xb", 25)

	s := e.Status()
	if s.ActivePlayers != 2 || s.TotalPot != 35 {
		t.Errorf("status = %+v, want 2 players, pot 35", s)
	}
}
