package server

import (
	"encoding/json"
	"log"
	"net/http"
)

type statusResponse struct {
	PlayersOnline int     `json:"playersOnline"`
	LobbyPlayers  int     `json:"lobbyPlayers"`
	WaitingCount  int     `json:"waitingCount"`
	ActiveRooms   int     `json:"activeRooms"`
	ActivePlayers int     `json:"activePlayers"`
	TotalPot      float64 `json:"totalPot"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ws := s.Engine.Status()
	resp := statusResponse{
		PlayersOnline: s.Hub.ClientCount(),
		LobbyPlayers:  s.Lobby.Count(),
		WaitingCount:  s.Queue.WaitingCount(),
		ActiveRooms:   s.Queue.ActiveRooms(),
		ActivePlayers: ws.ActivePlayers,
		TotalPot:      ws.TotalPot,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[Server] Status encode error: %v\n", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Ledger != nil {
		if err := s.Ledger.Ping(); err != nil {
			http.Error(w, "ledger unreachable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
