package arena

import "time"

// Simulation constants. The tick rate is fixed; every room integrates at
// exactly TickHz regardless of when input arrives.
const (
	TickHz       = 30
	TickInterval = time.Second / TickHz

	ArenaWidth   = 800.0
	PlayerWidth  = 20.0
	PlayerHeight = 30.0
	MaxX         = ArenaWidth - PlayerWidth

	Gravity   = 0.5 // per-tick downward acceleration
	Friction  = 0.9 // per-tick horizontal decay when no move intent
	MoveSpeed = 5.0
	JumpForce = -12.0

	PushForce = 15.0 // horizontal impulse on a push hit
	PushRange = 50.0
	PushLift  = -5.0 // slight upward impulse on a push hit

	FallY        = 600.0 // below this a player is eliminated
	LandingSlack = 10.0  // tolerated overlap below a platform's top surface
)

// Combat-variant constants, used by local combat rooms only.
const (
	CombatGravity   = 0.6
	CombatJumpForce = -14.0
	CombatFallY     = 580.0
	CombatSlack     = 12.0
	WasAboveSlack   = 5.0

	MaxHealth          = 100
	SwordRange         = 70.0
	SwordDamage        = 12
	SwordVerticalReach = 40.0
	AttackDurationTk   = 15 // ticks an attack animation lasts
	AttackCooldownTk   = 25
	HitCooldownTk      = 30 // invulnerability ticks after taking a hit
	KnockbackForce     = 12.0
	KnockbackLift      = -6.0

	PowerupInterval  = 6 * time.Second
	PowerupFallSpeed = 2.0
	PowerupSize      = 30.0
	PowerupHeal      = 15
	PowerupDamageUp  = 5          // permanent +5% damage
	StaminaTicks     = 10 * TickHz // speed buff duration
	StaminaSpeedUp   = 0.2
)
