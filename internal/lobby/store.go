// Package lobby tracks connected players between matches: identity, wallet,
// stake and readiness. Room membership lives in the matchmaking queue, not
// here.
package lobby

import (
	"sync"

	"arenabattle/internal/utility"
)

type Player struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Wallet string  `json:"wallet,omitempty"`
	Color  string  `json:"color"`
	Bet    float64 `json:"bet"`
	Ready  bool    `json:"ready"`
}

type Store struct {
	mu      sync.Mutex
	players map[string]*Player
}

func NewStore() *Store {
	return &Store{
		players: make(map[string]*Player),
	}
}

func (s *Store) Add(id, name, wallet string, bet float64) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	player := &Player{ID: id, Name: name, Wallet: wallet, Bet: bet, Color: utility.RandomColorHex()}
	s.players[id] = player
	return player
}

func (s *Store) Get(id string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, e := s.players[id]; e {
		copied := *p
		return &copied
	}
	return nil
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
}

func (s *Store) SetReady(id string, isReady bool) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, e := s.players[id]; e {
		p.Ready = isReady
		copied := *p
		return &copied
	}
	return nil
}

func (s *Store) SetBet(id string, bet float64) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, e := s.players[id]; e {
		p.Bet = bet
		copied := *p
		return &copied
	}
	return nil
}

func (s *Store) GetList() []Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	playerList := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		playerList = append(playerList, *p)
	}
	return playerList
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

func (s *Store) ValidateSession(sessionId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.players[sessionId]
	return exists
}
