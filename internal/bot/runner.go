package bot

import (
	"math/rand"

	"arenabattle/internal/arena"
)

// Runner drives one bot's decisions against one room. The matchmaker
// schedules Step on the room's own timer group, so a room teardown stops
// the loop; the runner also stops itself once its bot is dead or the match
// is over.
type Runner struct {
	botID  string
	room   *arena.Room
	rng    *rand.Rand
	cancel func()
}

func NewRunner(botID string, room *arena.Room, rng *rand.Rand) *Runner {
	return &Runner{botID: botID, room: room, rng: rng}
}

// Bind hands the runner its own cancel handle after scheduling.
func (r *Runner) Bind(cancel func()) {
	r.cancel = cancel
}

func (r *Runner) stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Runner) Step() {
	switch r.room.Phase() {
	case arena.PhasePlaying:
	case arena.PhaseEnded:
		r.stop()
		return
	default:
		return
	}

	self, others, ok := r.room.View(r.botID)
	if !ok || !self.IsAlive {
		r.stop()
		return
	}
	if in, act := Decide(self, others, r.rng); act {
		r.room.HandleInput(r.botID, in)
	}
}
