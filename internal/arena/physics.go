package arena

import "math"

// step advances the simulation by one fixed timestep. Caller holds r.mu.
//
// Per-player order: cooldowns, staged-intent consumption, gravity, friction
// when idle, position integration, platform landing, bounds clamp, push
// resolution, fall elimination, sword-hit resolution (combat mode).
func (r *Room) step() {
	combat := r.cfg.Mode == ModeCombat
	gravity, fallY := Gravity, FallY
	if combat {
		gravity, fallY = CombatGravity, CombatFallY
	}

	for _, id := range r.order {
		p := r.players[id]
		if !p.alive {
			continue
		}

		if combat {
			if p.attackCooldown > 0 {
				p.attackCooldown--
			}
			if p.hitCooldown > 0 {
				p.hitCooldown--
			}
			if p.staminaTicks > 0 {
				p.staminaTicks--
			}
			if p.attackFrame > 0 {
				p.attackFrame--
				if p.attackFrame == 0 {
					p.attacking = false
				}
			}
		}

		in := p.intent
		p.intent = intent{}
		switch {
		case in.move < 0:
			p.vx = -p.moveSpeed()
			p.facing = "left"
		case in.move > 0:
			p.vx = p.moveSpeed()
			p.facing = "right"
		}
		if in.jump && p.onGround {
			jump := JumpForce
			if combat {
				jump = CombatJumpForce
			}
			p.vy = jump
			p.onGround = false
		}
		if in.push {
			p.pushing = true
		}
		if combat && in.attack && p.attackCooldown <= 0 {
			p.attacking = true
			p.attackFrame = AttackDurationTk
			p.attackCooldown = AttackCooldownTk
		}

		p.vy += gravity
		if in.move == 0 {
			p.vx *= Friction
		}

		p.x += p.vx
		p.y += p.vy

		// Landing scan. If several platforms match, the last one in layout
		// order wins; the layout slice makes that deterministic.
		p.onGround = false
		for i := range r.platforms {
			if r.landing(p, &r.platforms[i]) {
				p.y = r.platforms[i].Y - PlayerHeight
				p.vy = 0
				p.onGround = true
			}
		}

		if p.x < 0 {
			p.x = 0
		}
		if p.x > MaxX {
			p.x = MaxX
		}

		if p.pushing {
			r.resolvePush(p)
			p.pushing = false
		}

		if p.y > fallY {
			r.eliminateLocked(p.ID, "You fell! Better luck next time.")
			continue
		}

		// The sword connects a few frames into the swing, not on the
		// trigger tick.
		if combat && p.attacking && p.attackFrame == AttackDurationTk-5 {
			r.resolveSword(p)
		}
	}

	if combat {
		r.stepPowerups()
	}
}

// landing reports whether p comes to rest on pf this tick. The "was above"
// test reconstructs the bottom edge before this tick's vertical move from
// the velocity just applied, so a fast-falling player cannot tunnel through
// a platform.
func (r *Room) landing(p *player, pf *Platform) bool {
	bottom := p.y + PlayerHeight
	aboveSlack := 0.0
	overlapSlack := LandingSlack
	if r.cfg.Mode == ModeCombat {
		aboveSlack = WasAboveSlack
		overlapSlack = CombatSlack
	}
	wasAbove := bottom-p.vy <= pf.Y+aboveSlack

	return wasAbove &&
		bottom >= pf.Y &&
		bottom <= pf.Y+pf.Height+overlapSlack &&
		p.x+PlayerWidth > pf.X &&
		p.x < pf.X+pf.Width &&
		p.vy >= 0
}

// resolvePush applies an instantaneous impulse away from the pusher, along
// its facing axis with a slight lift, to every other alive player in range.
func (r *Room) resolvePush(pusher *player) {
	dir := pusher.facingDir()
	for _, id := range r.order {
		other := r.players[id]
		if other == pusher || !other.alive {
			continue
		}
		dx := other.x - pusher.x
		dy := other.y - pusher.y
		if math.Hypot(dx, dy) < PushRange {
			other.vx += dir * PushForce
			other.vy += PushLift
		}
	}
}

// resolveSword lands the combat-mode attack: range, facing direction and
// vertical reach must all pass, and targets inside their hit cooldown are
// immune.
func (r *Room) resolveSword(attacker *player) {
	for _, id := range r.order {
		target := r.players[id]
		if target == attacker || !target.alive || target.hitCooldown > 0 {
			continue
		}
		dx := target.x - attacker.x
		dy := target.y - attacker.y
		inRange := math.Hypot(dx, dy) < SwordRange
		facingTarget := (attacker.facing == "right" && dx > 0) ||
			(attacker.facing == "left" && dx < 0)
		if !inRange || !facingTarget || math.Abs(dy) >= SwordVerticalReach {
			continue
		}

		damage := SwordDamage + SwordDamage*attacker.damageBonus/100
		target.health -= damage
		target.hitCooldown = HitCooldownTk
		target.vx += attacker.facingDir() * KnockbackForce
		target.vy += KnockbackLift
		if target.health <= 0 {
			r.eliminateLocked(target.ID, "You were cut down! Better luck next time.")
		}
	}
}
