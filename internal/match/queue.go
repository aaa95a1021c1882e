// Package match admits players, forms rooms of a fixed size, back-fills
// with bots when a room cannot fill in time, and owns the room registry.
package match

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"arenabattle/internal/arena"
	"arenabattle/internal/bot"
	"arenabattle/internal/events"
	"arenabattle/internal/sched"
)

// Player is a queued (not yet matched) player.
type Player struct {
	ID     string
	Name   string
	Wallet string
	Bet    float64
	Ready  bool
}

// Presence is the transport hook for room membership, so the event sink can
// fan room emissions out to the right connections. Optional.
type Presence interface {
	JoinRoom(playerID, roomID string)
	LeaveRoom(playerID string)
}

type Config struct {
	RoomSize      int
	BackfillWait  time.Duration // grace window before filling with bots
	StartDelay    time.Duration // matchFound to Start, lets clients switch UI
	TeardownDelay time.Duration // room end to registry removal
	CountdownSecs int
	RoundSecs     int
}

func DefaultConfig() Config {
	return Config{
		RoomSize:      4,
		BackfillWait:  10 * time.Second,
		StartDelay:    2 * time.Second,
		TeardownDelay: 5 * time.Second,
		CountdownSecs: 3,
		RoundSecs:     60,
	}
}

// Queue is the matchmaking registry. The waiting list, the room registry
// and the player-to-room map are all guarded by one mutex, so waiting-list
// removal and room insertion happen as a single atomic step and no two
// formation checks can select the same player.
type Queue struct {
	cfg      Config
	sink     events.Sink
	presence Presence
	ids      *IDSource
	timers   *sched.Scheduler

	mu           sync.Mutex
	waiting      []*Player
	rooms        map[string]*arena.Room
	playerRoom   map[string]string
	roomsCreated int
	botsSpawned  int
	onResult     func(arena.Result)
}

func New(cfg Config, sink events.Sink, presence Presence, ids *IDSource) *Queue {
	if sink == nil {
		sink = events.Nop{}
	}
	if ids == nil {
		ids = NewIDSource()
	}
	return &Queue{
		cfg:        cfg,
		sink:       sink,
		presence:   presence,
		ids:        ids,
		timers:     sched.New(),
		rooms:      make(map[string]*arena.Room),
		playerRoom: make(map[string]string),
	}
}

// OnResult registers the round-outcome forwarder invoked with each room's
// result before teardown is scheduled.
func (q *Queue) OnResult(fn func(arena.Result)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onResult = fn
}

// AddPlayer appends to the waiting list and evaluates match formation.
// A player already waiting or already in a room is ignored.
func (q *Queue) AddPlayer(p Player) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, inRoom := q.playerRoom[p.ID]; inRoom || q.waitingLocked(p.ID) != nil {
		return
	}
	q.waiting = append(q.waiting, &p)
	q.checkForMatchLocked()
}

// PlayerReady marks a waiting player ready and evaluates match formation.
func (q *Queue) PlayerReady(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.waitingLocked(playerID)
	if p == nil {
		return
	}
	p.Ready = true
	q.checkForMatchLocked()
}

// RemovePlayer drops a player from the waiting list, or eliminates them
// from their active room. The room itself keeps running.
func (q *Queue) RemovePlayer(playerID string) {
	q.mu.Lock()
	kept := q.waiting[:0]
	for _, w := range q.waiting {
		if w.ID != playerID {
			kept = append(kept, w)
		}
	}
	q.waiting = kept

	var room *arena.Room
	if roomID, ok := q.playerRoom[playerID]; ok {
		room = q.rooms[roomID]
		delete(q.playerRoom, playerID)
	}
	q.mu.Unlock()

	if room != nil {
		room.EliminatePlayer(playerID)
	}
	if q.presence != nil {
		q.presence.LeaveRoom(playerID)
	}
}

// Room returns a registered room by id, or nil.
func (q *Queue) Room(roomID string) *arena.Room {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rooms[roomID]
}

// RoomOf returns the active room a player is mapped to, or nil.
func (q *Queue) RoomOf(playerID string) *arena.Room {
	q.mu.Lock()
	defer q.mu.Unlock()
	if roomID, ok := q.playerRoom[playerID]; ok {
		return q.rooms[roomID]
	}
	return nil
}

func (q *Queue) WaitingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

func (q *Queue) ActiveRooms() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.rooms)
}

func (q *Queue) RoomsCreated() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.roomsCreated
}

func (q *Queue) BotsSpawned() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.botsSpawned
}

// Close stops queue timers and shuts every registered room down.
func (q *Queue) Close() {
	q.timers.CancelAll()
	q.mu.Lock()
	rooms := make([]*arena.Room, 0, len(q.rooms))
	for _, r := range q.rooms {
		rooms = append(rooms, r)
	}
	q.mu.Unlock()
	for _, r := range rooms {
		r.Close()
	}
}

func (q *Queue) waitingLocked(playerID string) *Player {
	for _, w := range q.waiting {
		if w.ID == playerID {
			return w
		}
	}
	return nil
}

func (q *Queue) checkForMatchLocked() {
	var ready []*Player
	for _, w := range q.waiting {
		if w.Ready {
			ready = append(ready, w)
		}
	}
	if len(ready) >= q.cfg.RoomSize {
		q.createRoomLocked(ready[:q.cfg.RoomSize], nil)
		return
	}
	if len(ready) > 0 {
		q.scheduleBackfillLocked(ready)
	}
}

// scheduleBackfillLocked snapshots the considered players and defers a
// re-check. The firing check re-verifies against the live waiting list: a
// player matched or gone in the interim is simply absent from the grouping.
func (q *Queue) scheduleBackfillLocked(ready []*Player) {
	considered := make([]string, len(ready))
	for i, p := range ready {
		considered[i] = p.ID
	}
	q.timers.Once(q.cfg.BackfillWait, func() { q.backfill(considered) })
}

func (q *Queue) backfill(considered []string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var still []*Player
	for _, id := range considered {
		if p := q.waitingLocked(id); p != nil && p.Ready {
			still = append(still, p)
		}
	}
	if len(still) == 0 || len(still) >= q.cfg.RoomSize {
		return
	}

	need := q.cfg.RoomSize - len(still)
	bots := make([]arena.Participant, need)
	for i := range bots {
		bots[i] = arena.Participant{
			ID:    q.ids.NextBotID(),
			Name:  fmt.Sprintf("Bot_%d", i+1),
			IsBot: true,
		}
	}
	q.createRoomLocked(still, bots)
}

// createRoomLocked is the atomic room-formation step: the selected humans
// leave the waiting list and enter the registry under the same lock hold.
func (q *Queue) createRoomLocked(humans []*Player, bots []arena.Participant) {
	roomID := q.ids.NextRoomID()

	selected := make(map[string]bool, len(humans))
	parts := make([]arena.Participant, 0, len(humans)+len(bots))
	for _, h := range humans {
		selected[h.ID] = true
		parts = append(parts, arena.Participant{
			ID:     h.ID,
			Name:   h.Name,
			Wallet: h.Wallet,
			Bet:    h.Bet,
		})
		q.playerRoom[h.ID] = roomID
	}
	parts = append(parts, bots...)

	kept := q.waiting[:0]
	for _, w := range q.waiting {
		if !selected[w.ID] {
			kept = append(kept, w)
		}
	}
	q.waiting = kept

	room := arena.NewRoom(roomID, parts, arena.Config{
		CountdownSecs: q.cfg.CountdownSecs,
		RoundSecs:     q.cfg.RoundSecs,
	}, q.sink)
	room.OnEnd(q.handleEnd)
	q.rooms[roomID] = room
	q.roomsCreated++
	q.botsSpawned += len(bots)

	if q.presence != nil {
		for _, h := range humans {
			q.presence.JoinRoom(h.ID, roomID)
		}
	}

	refs := make([]events.PlayerRef, len(parts))
	for i, p := range parts {
		refs[i] = events.PlayerRef{ID: p.ID, Name: p.Name, IsBot: p.IsBot}
	}
	q.sink.ToRoom(roomID, events.MatchFoundEvent, events.MatchFound{RoomID: roomID, Players: refs})

	q.timers.Once(q.cfg.StartDelay, func() {
		room.Start()
		for i, b := range bots {
			runner := bot.NewRunner(b.ID, room, rand.New(rand.NewSource(time.Now().UnixNano()+int64(i))))
			runner.Bind(room.Every(bot.Interval, runner.Step))
		}
	})

	log.Printf("[Match] room %s created with %d players (%d bots)\n", roomID, len(parts), len(bots))
}

func (q *Queue) handleEnd(res arena.Result) {
	q.mu.Lock()
	onResult := q.onResult
	q.mu.Unlock()
	if onResult != nil {
		onResult(res)
	}

	q.timers.Once(q.cfg.TeardownDelay, func() {
		q.mu.Lock()
		delete(q.rooms, res.RoomID)
		var left []string
		for _, ps := range res.Players {
			if !ps.IsBot && q.playerRoom[ps.ID] == res.RoomID {
				delete(q.playerRoom, ps.ID)
				left = append(left, ps.ID)
			}
		}
		q.mu.Unlock()

		if q.presence != nil {
			for _, id := range left {
				q.presence.LeaveRoom(id)
			}
		}
	})
}
