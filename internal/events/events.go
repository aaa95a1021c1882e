package events

// Event names as they appear on the wire.
const (
	MatchFoundEvent            = "matchFound"
	GameStateEvent             = "gameState"
	EliminatedEvent            = "eliminated"
	GameEndedEvent             = "gameEnded"
	LobbyUpdateEvent           = "lobbyUpdate"
	RoundWonEvent              = "roundWon"
	RoundLostEvent             = "roundLost"
	CashedOutEvent             = "cashedOut"
	ContinuingToNextRoundEvent = "continuingToNextRound"
)

// Sink is where the core hands off outbound notifications. The transport
// layer implements it and owns fan-out to actual connections; the core
// never learns whether delivery succeeded.
type Sink interface {
	ToRoom(roomID, event string, payload any)
	ToPlayer(playerID, event string, payload any)
	Broadcast(event string, payload any)
}

// PlayerRef identifies a match participant in lobby and result payloads.
type PlayerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsBot bool   `json:"isBot"`
}

type MatchFound struct {
	RoomID  string      `json:"roomId"`
	Players []PlayerRef `json:"players"`
}

type PlatformState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PlayerState struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	IsAlive bool    `json:"isAlive"`
	Facing  string  `json:"facing"`
	IsBot   bool    `json:"isBot"`
}

// GameState is the sanitized snapshot broadcast every physics tick and every
// countdown second. Internal bookkeeping (cooldowns, staged intents) is
// deliberately absent.
type GameState struct {
	Phase     string          `json:"phase"`
	Countdown int             `json:"countdown"`
	TimeLeft  int             `json:"timeLeft"`
	Platforms []PlatformState `json:"platforms"`
	Players   []PlayerState   `json:"players"`
}

type Eliminated struct {
	Message string `json:"message"`
}

// Elimination is one entry of a room's chronological elimination log.
type Elimination struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time int64  `json:"time"`
}

type GameEnded struct {
	RoomID     string        `json:"roomId"`
	Winner     *PlayerRef    `json:"winner"`
	Eliminated []Elimination `json:"eliminated"`
	Players    []PlayerState `json:"players"`
}

type LobbyUpdate struct {
	Players      []PlayerRef `json:"players"`
	WaitingCount int         `json:"waitingCount"`
}

type RoundWon struct {
	Round               int     `json:"round"`
	CurrentWinnings     float64 `json:"currentWinnings"`
	NextRoundMultiplier float64 `json:"nextRoundMultiplier"`
	PotentialWinnings   float64 `json:"potentialWinnings"`
	CanContinue         bool    `json:"canContinue"`
}

type RoundLost struct {
	Round      int     `json:"round"`
	LostAmount float64 `json:"lostAmount"`
	Message    string  `json:"message"`
}

type CashedOut struct {
	Amount  float64 `json:"amount"`
	Round   int     `json:"round"`
	Message string  `json:"message"`
}

type ContinuingToNextRound struct {
	NextRound         int     `json:"nextRound"`
	AtRisk            float64 `json:"atRisk"`
	PotentialWinnings float64 `json:"potentialWinnings"`
}
