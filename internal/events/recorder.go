package events

import "sync"

// Nop discards every event. Useful as a default sink.
type Nop struct{}

func (Nop) ToRoom(string, string, any)   {}
func (Nop) ToPlayer(string, string, any) {}
func (Nop) Broadcast(string, any)        {}

// Recorded is one captured emission. Target holds the room or player id;
// it is empty for broadcasts.
type Recorded struct {
	Target  string
	Event   string
	Payload any
}

// Recorder is a Sink that captures every emission in order. Tests across
// packages use it to assert on outbound notifications.
type Recorder struct {
	mu     sync.Mutex
	room   []Recorded
	player []Recorded
	global []Recorded
}

func (r *Recorder) ToRoom(roomID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.room = append(r.room, Recorded{Target: roomID, Event: event, Payload: payload})
}

func (r *Recorder) ToPlayer(playerID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.player = append(r.player, Recorded{Target: playerID, Event: event, Payload: payload})
}

func (r *Recorder) Broadcast(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = append(r.global, Recorded{Event: event, Payload: payload})
}

// RoomEvents returns the captured room emissions, optionally filtered by event name.
func (r *Recorder) RoomEvents(event string) []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return filter(r.room, event)
}

// PlayerEvents returns the captured player-targeted emissions, optionally filtered.
func (r *Recorder) PlayerEvents(event string) []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return filter(r.player, event)
}

// Broadcasts returns the captured broadcast emissions, optionally filtered.
func (r *Recorder) Broadcasts(event string) []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return filter(r.global, event)
}

func filter(in []Recorded, event string) []Recorded {
	out := make([]Recorded, 0, len(in))
	for _, rec := range in {
		if event == "" || rec.Event == event {
			out = append(out, rec)
		}
	}
	return out
}
