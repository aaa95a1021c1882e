package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"arenabattle/internal/arena"
	"arenabattle/internal/events"
	"arenabattle/internal/match"
	"arenabattle/internal/wshub"
)

// clientMessage is the decoded body of an inbound frame. Fields are a
// union across message kinds; each handler reads only its own.
type clientMessage struct {
	Name      string  `json:"name,omitempty"`
	Wallet    string  `json:"wallet,omitempty"`
	BetAmount float64 `json:"betAmount,omitempty"`
	Type      string  `json:"type,omitempty"`
	Decision  string  `json:"decision,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}

	playerID := uuid.New().String()
	client := &wshub.Client{
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, 64),
	}
	s.Hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)

	defer func() {
		s.disconnect(playerID)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var frame wshub.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		var msg clientMessage
		if len(frame.Data) > 0 {
			if err := json.Unmarshal(frame.Data, &msg); err != nil {
				continue
			}
		}
		s.dispatch(playerID, frame.Event, msg)
	}
}

func (s *Server) dispatch(playerID, event string, msg clientMessage) {
	switch event {
	case "joinLobby":
		s.joinLobby(playerID, msg)
	case "playerReady":
		s.playerReady(playerID)
	case "gameInput":
		s.gameInput(playerID, msg)
	case "roundDecision":
		s.roundDecision(playerID, msg)
	}
	// Unknown events are dropped; a confused client is not an error.
}

// joinLobby admits or re-admits a player. Re-joining after a round is the
// normal path back into matchmaking: it resets readiness but never the
// wager progression.
func (s *Server) joinLobby(playerID string, msg clientMessage) {
	name := msg.Name
	if name == "" {
		name = "Player_" + shortID(playerID)
	}
	s.Lobby.Add(playerID, name, msg.Wallet, msg.BetAmount)
	if msg.BetAmount > 0 {
		s.Engine.RegisterPlayer(playerID, msg.Wallet, msg.BetAmount)
	}
	s.Queue.AddPlayer(match.Player{
		ID:     playerID,
		Name:   name,
		Wallet: msg.Wallet,
		Bet:    msg.BetAmount,
	})
	log.Printf("[WS] %s joined lobby as %q\n", playerID, name)
	s.broadcastLobby()
}

func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}

func (s *Server) playerReady(playerID string) {
	if s.Lobby.SetReady(playerID, true) == nil {
		return
	}
	s.Queue.PlayerReady(playerID)
	s.broadcastLobby()
}

func (s *Server) gameInput(playerID string, msg clientMessage) {
	room := s.Queue.RoomOf(playerID)
	if room == nil {
		return
	}
	room.HandleInput(playerID, arena.InputType(msg.Type))
}

func (s *Server) roundDecision(playerID string, msg clientMessage) {
	switch msg.Decision {
	case "cashout":
		s.recordPayout(s.Engine.CashOut(playerID))
	case "continue":
		// At the final round this degrades to a forced cash-out.
		s.recordPayout(s.Engine.Continue(playerID))
	}
}

func (s *Server) disconnect(playerID string) {
	s.Queue.RemovePlayer(playerID)
	s.Hub.Unregister(playerID)
	if s.Lobby.ValidateSession(playerID) {
		s.Lobby.Remove(playerID)
		log.Printf("[WS] %s disconnected\n", playerID)
		s.broadcastLobby()
	}
}

func (s *Server) broadcastLobby() {
	players := s.Lobby.GetList()
	refs := make([]events.PlayerRef, 0, len(players))
	for _, p := range players {
		refs = append(refs, events.PlayerRef{ID: p.ID, Name: p.Name})
	}
	s.Hub.Broadcast(events.LobbyUpdateEvent, events.LobbyUpdate{
		Players:      refs,
		WaitingCount: s.Queue.WaitingCount(),
	})
}
