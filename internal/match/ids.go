package match

import (
	"fmt"
	"sync"
)

// IDSource hands out room and bot ids. It is owned by whoever constructs
// the queue, so id state is scoped to one queue instance instead of living
// in a package-level counter.
type IDSource struct {
	mu   sync.Mutex
	room int
	bot  int
}

func NewIDSource() *IDSource {
	return &IDSource{}
}

func (s *IDSource) NextRoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room++
	return fmt.Sprintf("room_%d", s.room)
}

func (s *IDSource) NextBotID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bot++
	return fmt.Sprintf("bot_%d", s.bot)
}
