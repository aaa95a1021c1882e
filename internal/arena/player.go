package arena

// InputType is a client movement or action intent.
type InputType string

const (
	InputLeft   InputType = "left"
	InputRight  InputType = "right"
	InputJump   InputType = "jump"
	InputPush   InputType = "push"
	InputAttack InputType = "attack"
)

// Participant describes a player assigned to a room at creation time.
type Participant struct {
	ID     string
	Name   string
	Wallet string
	Bet    float64
	IsBot  bool
}

// intent is the input staged since the last tick. HandleInput only writes
// here; the tick loop consumes it, so physics always integrates against a
// consistent timestep no matter when within the frame input arrived.
type intent struct {
	move   int // -1 left, 0 none, 1 right
	jump   bool
	push   bool
	attack bool
}

type player struct {
	Participant

	x, y     float64
	vx, vy   float64
	alive    bool
	facing   string // "left" or "right"
	onGround bool
	pushing  bool

	intent intent

	// Combat variant only.
	health         int
	attacking      bool
	attackFrame    int
	attackCooldown int
	hitCooldown    int
	damageBonus    int // percent
	staminaTicks   int
}

func (p *player) facingDir() float64 {
	if p.facing == "left" {
		return -1
	}
	return 1
}

func (p *player) moveSpeed() float64 {
	if p.staminaTicks > 0 {
		return MoveSpeed * (1 + StaminaSpeedUp)
	}
	return MoveSpeed
}
