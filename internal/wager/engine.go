// Package wager tracks each player's stake, round and banked winnings
// across a multi-round progression, independent of any single room's
// lifetime. It is driven purely by round-outcome signals from whoever maps
// rounds to rooms; payment execution belongs to an external payer that is
// only ever informed.
package wager

import (
	"fmt"
	"log"
	"sync"

	"arenabattle/internal/events"
)

// Progress is one player's wager state. Once HasCashedOut latches, the
// record is frozen for good.
type Progress struct {
	PlayerID        string
	Wallet          string
	InitialBet      float64
	CurrentRound    int
	CurrentWinnings float64
	HasWon          bool
	HasCashedOut    bool
}

// Payout is the descriptor handed to the external payer. Producing it is
// the engine's entire involvement in payment.
type Payout struct {
	PlayerID string
	Wallet   string
	Amount   float64
	Round    int
}

type Engine struct {
	mu          sync.Mutex
	sink        events.Sink
	multipliers []float64 // index round-1
	progress    map[string]*Progress
}

func New(multipliers []float64, sink events.Sink) *Engine {
	if len(multipliers) == 0 {
		multipliers = []float64{1.5, 2.0, 2.5, 3.0, 4.0}
	}
	if sink == nil {
		sink = events.Nop{}
	}
	return &Engine{
		sink:        sink,
		multipliers: multipliers,
		progress:    make(map[string]*Progress),
	}
}

// FinalRound is the last round of the progression; continuing past it is
// impossible.
func (e *Engine) FinalRound() int {
	return len(e.multipliers)
}

// Multiplier returns the payout multiplier for a round, or 1 outside the
// table.
func (e *Engine) Multiplier(round int) float64 {
	if round < 1 || round > len(e.multipliers) {
		return 1
	}
	return e.multipliers[round-1]
}

// RegisterPlayer initializes a fresh progression at round 1. Re-registering
// an active player is ignored.
func (e *Engine) RegisterPlayer(playerID, wallet string, bet float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.progress[playerID]; exists {
		return
	}
	e.progress[playerID] = &Progress{
		PlayerID:     playerID,
		Wallet:       wallet,
		InitialBet:   bet,
		CurrentRound: 1,
	}
}

// Get returns a copy of a player's progress.
func (e *Engine) Get(playerID string) (Progress, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.progress[playerID]
	if !ok {
		return Progress{}, false
	}
	return *p, true
}

// CurrentRound reports which round a registered player is on, or 0.
func (e *Engine) CurrentRound(playerID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.progress[playerID]; ok {
		return p.CurrentRound
	}
	return 0
}

// HandleRoundWin banks stake x multiplier for the round and offers the
// cash-out-or-continue decision. Unknown or cashed-out players are no-ops.
func (e *Engine) HandleRoundWin(playerID string, round int) {
	e.mu.Lock()
	p, ok := e.progress[playerID]
	if !ok || p.HasCashedOut {
		e.mu.Unlock()
		return
	}
	p.CurrentWinnings = p.InitialBet * e.Multiplier(round)
	if round > p.CurrentRound {
		p.CurrentRound = round
	}
	p.HasWon = true
	note := events.RoundWon{
		Round:               round,
		CurrentWinnings:     p.CurrentWinnings,
		NextRoundMultiplier: e.Multiplier(round + 1),
		PotentialWinnings:   p.InitialBet * e.nextOrCurrent(round),
		CanContinue:         round < e.FinalRound(),
	}
	e.mu.Unlock()

	e.sink.ToPlayer(playerID, events.RoundWonEvent, note)
}

// HandleRoundLoss settles a lost round. A player who continued with banked
// winnings forfeits those winnings; otherwise only the original stake is
// lost. This is the core risk contract of the progression.
func (e *Engine) HandleRoundLoss(playerID string) {
	e.mu.Lock()
	p, ok := e.progress[playerID]
	if !ok || p.HasCashedOut {
		e.mu.Unlock()
		return
	}
	lost := p.InitialBet
	message := "Better luck next time!"
	if p.CurrentWinnings > 0 {
		lost = p.CurrentWinnings
		message = "You lost your previous round winnings by continuing!"
	}
	note := events.RoundLost{
		Round:      p.CurrentRound,
		LostAmount: lost,
		Message:    message,
	}
	p.CurrentWinnings = 0
	p.HasWon = false
	e.mu.Unlock()

	e.sink.ToPlayer(playerID, events.RoundLostEvent, note)
}

// CashOut latches the terminal cashed-out state and returns the payout
// descriptor for the external payer. Without a pending win, or after a
// prior cash-out, it returns nil and emits nothing.
func (e *Engine) CashOut(playerID string) *Payout {
	e.mu.Lock()
	p, ok := e.progress[playerID]
	if !ok || !p.HasWon || p.HasCashedOut {
		e.mu.Unlock()
		return nil
	}
	p.HasCashedOut = true
	payout := &Payout{
		PlayerID: playerID,
		Wallet:   p.Wallet,
		Amount:   p.CurrentWinnings,
		Round:    p.CurrentRound,
	}
	note := events.CashedOut{
		Amount:  p.CurrentWinnings,
		Round:   p.CurrentRound,
		Message: fmt.Sprintf("Congratulations! You cashed out %g MONAT!", p.CurrentWinnings),
	}
	e.mu.Unlock()

	e.sink.ToPlayer(playerID, events.CashedOutEvent, note)
	log.Printf("[Wager] player %s cashed out %g at round %d\n", playerID, payout.Amount, payout.Round)
	return payout
}

// Continue exposes the banked winnings to the next round's outcome and
// advances the round, so the next win banks at the next multiplier. At the
// final round there is no next round, so it degrades to a forced cash-out.
// Returns the payout descriptor only in that forced case.
func (e *Engine) Continue(playerID string) *Payout {
	e.mu.Lock()
	p, ok := e.progress[playerID]
	if !ok || !p.HasWon || p.HasCashedOut {
		e.mu.Unlock()
		return nil
	}
	if p.CurrentRound >= e.FinalRound() {
		e.mu.Unlock()
		return e.CashOut(playerID)
	}
	p.HasWon = false
	p.CurrentRound++
	note := events.ContinuingToNextRound{
		NextRound:         p.CurrentRound,
		AtRisk:            p.CurrentWinnings,
		PotentialWinnings: p.InitialBet * e.Multiplier(p.CurrentRound),
	}
	nextRound := p.CurrentRound
	atRisk := p.CurrentWinnings
	e.mu.Unlock()

	e.sink.ToPlayer(playerID, events.ContinuingToNextRoundEvent, note)
	log.Printf("[Wager] player %s continuing to round %d, risking %g\n", playerID, nextRound, atRisk)
	return nil
}

// Status summarizes the engine for the status endpoint.
type Status struct {
	ActivePlayers int     `json:"activePlayers"`
	TotalPot      float64 `json:"totalPot"`
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Status{ActivePlayers: len(e.progress)}
	for _, p := range e.progress {
		s.TotalPot += p.InitialBet
	}
	return s
}

// nextOrCurrent mirrors the projected-winnings rule: the next round's
// multiplier when one exists, otherwise the current one.
func (e *Engine) nextOrCurrent(round int) float64 {
	if round < e.FinalRound() {
		return e.Multiplier(round + 1)
	}
	return e.Multiplier(round)
}
