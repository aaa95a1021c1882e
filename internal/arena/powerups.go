package arena

import "math"

type powerupKind int

const (
	powerHealth powerupKind = iota
	powerDamage
	powerStamina
)

// powerup is a combat-mode pickup that drops from the top of the arena,
// rests on platforms and is consumed on contact.
type powerup struct {
	kind powerupKind
	x, y float64
	vy   float64
}

// spawnPowerup runs on the room scheduler while a combat match is playing,
// so teardown cancels it with the rest of the room's timers.
func (r *Room) spawnPowerup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhasePlaying {
		return
	}
	r.powerups = append(r.powerups, &powerup{
		kind: powerupKind(r.rng.Intn(3)),
		x:    100 + r.rng.Float64()*600,
		y:    -PowerupSize,
		vy:   PowerupFallSpeed,
	})
}

// stepPowerups advances pickups by one tick. Caller holds r.mu.
func (r *Room) stepPowerups() {
	kept := r.powerups[:0]
	for _, pu := range r.powerups {
		pu.y += pu.vy
		for i := range r.platforms {
			pf := &r.platforms[i]
			if pu.y+PowerupSize > pf.Y && pu.y < pf.Y+pf.Height &&
				pu.x > pf.X && pu.x < pf.X+pf.Width {
				pu.y = pf.Y - PowerupSize
				pu.vy = 0
			}
		}

		taken := false
		for _, id := range r.order {
			p := r.players[id]
			if !p.alive {
				continue
			}
			dx := math.Abs(p.x + PlayerWidth/2 - pu.x)
			dy := math.Abs(p.y + PlayerHeight/2 - pu.y)
			if dx < PowerupSize && dy < PowerupSize {
				r.applyPowerup(p, pu.kind)
				taken = true
				break
			}
		}
		if taken || pu.y > CombatFallY+PowerupSize {
			continue
		}
		kept = append(kept, pu)
	}
	r.powerups = kept
}

func (r *Room) applyPowerup(p *player, kind powerupKind) {
	switch kind {
	case powerHealth:
		p.health = min(MaxHealth, p.health+PowerupHeal)
	case powerDamage:
		p.damageBonus += PowerupDamageUp
	case powerStamina:
		p.staminaTicks = StaminaTicks
	}
}
