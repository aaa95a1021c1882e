package arena

import (
	"math/rand"
	"sync"
	"time"

	"arenabattle/internal/events"
	"arenabattle/internal/sched"
)

type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseCountdown Phase = "countdown"
	PhasePlaying   Phase = "playing"
	PhaseEnded     Phase = "ended"
)

// Mode selects the match ruleset: push-only knockout or the local combat
// variant with swords, health and powerups.
type Mode int

const (
	ModePush Mode = iota
	ModeCombat
)

type Config struct {
	Mode          Mode
	Layout        []Platform
	CountdownSecs int
	RoundSecs     int
	Seed          int64 // powerup spawn randomness; 0 seeds from the clock
}

// Result is emitted exactly once when a room ends.
type Result struct {
	RoomID     string
	Winner     *events.PlayerRef
	Eliminated []events.Elimination
	Players    []events.PlayerState
}

var (
	startPositions       = []float64{100, 300, 500, 700}
	combatStartPositions = []float64{150, 400, 650}
)

// Room owns one match: its phase machine, players, platforms and timers.
// All mutation happens under r.mu, either by the tick loop or by input
// staged through HandleInput. Timers live on one scheduler so the ended
// transition cancels every one of them atomically.
type Room struct {
	id     string
	sink   events.Sink
	timers *sched.Scheduler

	mu              sync.Mutex
	cfg             Config
	phase           Phase
	countdown       int
	timeLeft        int
	platforms       []Platform
	players         map[string]*player
	order           []string // slot order; fixed iteration keeps ticks deterministic
	eliminated      []events.Elimination
	powerups        []*powerup
	rng             *rand.Rand
	cancelCountdown func()
	notices         []notice
	onEnd           func(Result)
}

// notice is a player-targeted emission staged during a locked step and
// flushed after the lock is released.
type notice struct {
	playerID string
	event    string
	payload  any
}

func NewRoom(id string, parts []Participant, cfg Config, sink events.Sink) *Room {
	if cfg.Layout == nil {
		if cfg.Mode == ModeCombat {
			cfg.Layout = LocalLayout()
		} else {
			cfg.Layout = DefaultLayout()
		}
	}
	if cfg.CountdownSecs <= 0 {
		cfg.CountdownSecs = 3
	}
	if cfg.RoundSecs <= 0 {
		cfg.RoundSecs = 60
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Room{
		id:        id,
		sink:      sink,
		timers:    sched.New(),
		cfg:       cfg,
		phase:     PhaseWaiting,
		countdown: cfg.CountdownSecs,
		timeLeft:  cfg.RoundSecs,
		platforms: cfg.Layout,
		players:   make(map[string]*player, len(parts)),
		rng:       rand.New(rand.NewSource(seed)),
	}
	slots := startPositions
	if cfg.Mode == ModeCombat {
		slots = combatStartPositions
	}
	for i, part := range parts {
		p := &player{
			Participant: part,
			x:           slots[i%len(slots)],
			y:           400,
			alive:       true,
			facing:      "right",
			health:      MaxHealth,
		}
		r.players[part.ID] = p
		r.order = append(r.order, part.ID)
	}
	return r
}

func (r *Room) ID() string { return r.id }

func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// OnEnd registers the completion callback. Set it before Start.
func (r *Room) OnEnd(fn func(Result)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEnd = fn
}

// Every schedules auxiliary per-room work (bot loops and the like) on the
// room's own timer group, so teardown cancels it with everything else. The
// returned func cancels just this task.
func (r *Room) Every(interval time.Duration, fn func()) (cancel func()) {
	return r.timers.Repeat(interval, fn)
}

// Close cancels all room timers without running end-of-match emission.
// For process shutdown only.
func (r *Room) Close() {
	r.mu.Lock()
	r.phase = PhaseEnded
	r.mu.Unlock()
	r.timers.CancelAll()
}

// Start moves the room from waiting into countdown. Any other phase is a
// no-op.
func (r *Room) Start() {
	r.mu.Lock()
	if r.phase != PhaseWaiting {
		r.mu.Unlock()
		return
	}
	r.phase = PhaseCountdown
	state := r.stateLocked()
	r.mu.Unlock()

	r.sink.ToRoom(r.id, events.GameStateEvent, state)
	cancel := r.timers.Repeat(time.Second, r.countdownTick)
	r.mu.Lock()
	r.cancelCountdown = cancel
	r.mu.Unlock()
}

func (r *Room) countdownTick() {
	r.mu.Lock()
	if r.phase != PhaseCountdown {
		r.mu.Unlock()
		return
	}
	r.countdown--
	done := r.countdown <= 0
	var cancel func()
	if done {
		r.phase = PhasePlaying
		cancel = r.cancelCountdown
		r.cancelCountdown = nil
	}
	state := r.stateLocked()
	r.mu.Unlock()

	r.sink.ToRoom(r.id, events.GameStateEvent, state)
	if done {
		if cancel != nil {
			cancel()
		}
		r.beginPlay()
	}
}

func (r *Room) beginPlay() {
	r.timers.Repeat(TickInterval, r.tick)
	r.timers.Repeat(time.Second, r.clockTick)
	if r.cfg.Mode == ModeCombat {
		r.timers.Repeat(PowerupInterval, r.spawnPowerup)
	}
}

func (r *Room) clockTick() {
	r.mu.Lock()
	if r.phase == PhasePlaying {
		r.timeLeft--
	}
	r.mu.Unlock()
}

func (r *Room) tick() {
	r.mu.Lock()
	if r.phase != PhasePlaying {
		r.mu.Unlock()
		return
	}
	r.step()
	state := r.stateLocked()
	var res *Result
	if r.aliveCountLocked() <= 1 || r.timeLeft <= 0 {
		res = r.endLocked()
	}
	notices := r.notices
	r.notices = nil
	onEnd := r.onEnd
	r.mu.Unlock()

	for _, n := range notices {
		r.sink.ToPlayer(n.playerID, n.event, n.payload)
	}
	r.sink.ToRoom(r.id, events.GameStateEvent, state)
	if res != nil {
		r.sink.ToRoom(r.id, events.GameEndedEvent, events.GameEnded{
			RoomID:     res.RoomID,
			Winner:     res.Winner,
			Eliminated: res.Eliminated,
			Players:    res.Players,
		})
		if onEnd != nil {
			onEnd(*res)
		}
	}
}

// endLocked performs the single irreversible transition to ended: it stops
// every room timer and builds the result payload. Caller holds r.mu.
func (r *Room) endLocked() *Result {
	r.phase = PhaseEnded
	r.timers.CancelAll()

	res := &Result{
		RoomID:     r.id,
		Eliminated: append([]events.Elimination(nil), r.eliminated...),
		Players:    r.playerStatesLocked(),
	}
	for _, id := range r.order {
		if p := r.players[id]; p.alive {
			res.Winner = &events.PlayerRef{ID: p.ID, Name: p.Name, IsBot: p.IsBot}
			break
		}
	}
	return res
}

// HandleInput stages one intent for the next tick. It never blocks and
// never advances simulation time. Outside the playing phase, for dead or
// unknown players, or for input kinds the room's mode does not use, it is
// a no-op.
func (r *Room) HandleInput(playerID string, in InputType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhasePlaying {
		return
	}
	p, ok := r.players[playerID]
	if !ok || !p.alive {
		return
	}
	switch in {
	case InputLeft:
		p.intent.move = -1
	case InputRight:
		p.intent.move = 1
	case InputJump:
		p.intent.jump = true
	case InputPush:
		if r.cfg.Mode == ModePush {
			p.intent.push = true
		}
	case InputAttack:
		if r.cfg.Mode == ModeCombat {
			p.intent.attack = true
		}
	default:
		// stray client message; ignore
	}
}

// EliminatePlayer marks a player dead and logs the elimination. Idempotent;
// unknown ids are ignored. The end condition is evaluated on the next tick.
func (r *Room) EliminatePlayer(playerID string) {
	r.mu.Lock()
	r.eliminateLocked(playerID, "You fell! Better luck next time.")
	notices := r.notices
	r.notices = nil
	r.mu.Unlock()

	for _, n := range notices {
		r.sink.ToPlayer(n.playerID, n.event, n.payload)
	}
}

func (r *Room) eliminateLocked(playerID, message string) {
	p, ok := r.players[playerID]
	if !ok || !p.alive {
		return
	}
	p.alive = false
	p.health = 0
	r.eliminated = append(r.eliminated, events.Elimination{
		ID:   playerID,
		Name: p.Name,
		Time: time.Now().UnixMilli(),
	})
	r.notices = append(r.notices, notice{
		playerID: playerID,
		event:    events.EliminatedEvent,
		payload:  events.Eliminated{Message: message},
	})
}

// View returns the sanitized state of one player and all other alive
// players, for bot decision-making. The bot has no privileged write access;
// it acts through HandleInput like everyone else.
func (r *Room) View(selfID string) (self events.PlayerState, others []events.PlayerState, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, found := r.players[selfID]
	if !found {
		return events.PlayerState{}, nil, false
	}
	for _, id := range r.order {
		o := r.players[id]
		if id == selfID || !o.alive {
			continue
		}
		others = append(others, playerState(o))
	}
	return playerState(p), others, true
}

func (r *Room) aliveCountLocked() int {
	n := 0
	for _, p := range r.players {
		if p.alive {
			n++
		}
	}
	return n
}

// AliveCount reports how many players are still alive.
func (r *Room) AliveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aliveCountLocked()
}

func (r *Room) stateLocked() events.GameState {
	platforms := make([]events.PlatformState, len(r.platforms))
	for i, pf := range r.platforms {
		platforms[i] = events.PlatformState{X: pf.X, Y: pf.Y, Width: pf.Width, Height: pf.Height}
	}
	return events.GameState{
		Phase:     string(r.phase),
		Countdown: r.countdown,
		TimeLeft:  r.timeLeft,
		Platforms: platforms,
		Players:   r.playerStatesLocked(),
	}
}

func (r *Room) playerStatesLocked() []events.PlayerState {
	states := make([]events.PlayerState, 0, len(r.order))
	for _, id := range r.order {
		states = append(states, playerState(r.players[id]))
	}
	return states
}

func playerState(p *player) events.PlayerState {
	return events.PlayerState{
		ID:      p.ID,
		Name:    p.Name,
		X:       p.x,
		Y:       p.y,
		VX:      p.vx,
		VY:      p.vy,
		IsAlive: p.alive,
		Facing:  p.facing,
		IsBot:   p.IsBot,
	}
}
