// Package bot implements the heuristic agent that fills rooms the
// matchmaker could not fill with humans. Bots read the room's public state
// and act through the same input path as human players, so they can never
// bypass the room's own rules.
package bot

import (
	"math"
	"math/rand"

	"arenabattle/internal/arena"
	"arenabattle/internal/events"
)

// Decision cadence and heuristics. The agent runs far slower than the
// physics tick; probabilities are evaluated once per decision.
const (
	Interval = arena.TickInterval * 6 // 5 Hz

	edgeMargin     = 50.0
	pushRange      = 60.0
	pushChance     = 0.7
	chaseDeadband  = 30.0
	chaseJumpAbove = 50.0
	chaseJumpOdds  = 0.3
	reactJumpAbove = 40.0
	reactJumpOdds  = 0.5
	idleJumpOdds   = 0.2 // then 0.3 left, 0.3 right, 0.2 nothing
)

// Decide picks at most one intent for this cadence step. Priority order,
// first match wins: edge avoidance, close-range push, pursuit (with an
// occasional jump when the target is well above), reactive jump, idle
// wandering.
func Decide(self events.PlayerState, others []events.PlayerState, rng *rand.Rand) (arena.InputType, bool) {
	nearest, found := nearestOpponent(self, others)
	if !found {
		return "", false
	}

	roll := rng.Float64()

	if self.X < edgeMargin {
		return arena.InputRight, true
	}
	if self.X > arena.ArenaWidth-edgeMargin {
		return arena.InputLeft, true
	}

	if distance(self, nearest) < pushRange && roll < pushChance {
		return arena.InputPush, true
	}

	if nearest.X < self.X-chaseDeadband {
		if roll < chaseJumpOdds && nearest.Y < self.Y-chaseJumpAbove {
			return arena.InputJump, true
		}
		return arena.InputLeft, true
	}
	if nearest.X > self.X+chaseDeadband {
		if roll < chaseJumpOdds && nearest.Y < self.Y-chaseJumpAbove {
			return arena.InputJump, true
		}
		return arena.InputRight, true
	}

	if nearest.Y < self.Y-reactJumpAbove && roll < reactJumpOdds {
		return arena.InputJump, true
	}

	switch {
	case roll < idleJumpOdds:
		return arena.InputJump, true
	case roll < 0.5:
		return arena.InputLeft, true
	case roll < 0.8:
		return arena.InputRight, true
	default:
		return "", false
	}
}

func nearestOpponent(self events.PlayerState, others []events.PlayerState) (events.PlayerState, bool) {
	var nearest events.PlayerState
	best := math.Inf(1)
	for _, o := range others {
		if o.ID == self.ID || !o.IsAlive {
			continue
		}
		if d := distance(self, o); d < best {
			best = d
			nearest = o
		}
	}
	return nearest, !math.IsInf(best, 1)
}

func distance(a, b events.PlayerState) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
