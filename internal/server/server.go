// Package server wires the gateway together: WebSocket transport, lobby,
// matchmaking, wager progression, optional payout ledger and metrics.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"arenabattle/internal/arena"
	"arenabattle/internal/config"
	"arenabattle/internal/ledger"
	"arenabattle/internal/lobby"
	"arenabattle/internal/match"
	"arenabattle/internal/metrics"
	"arenabattle/internal/wager"
	"arenabattle/internal/wshub"
)

type Server struct {
	Hub     *wshub.Hub
	Lobby   *lobby.Store
	Queue   *match.Queue
	Engine  *wager.Engine
	Metrics *metrics.Metrics

	Ledger       *ledger.Ledger           // nil if no database configured
	PayoutBuffer chan ledger.PayoutRecord // nil if no database configured
}

func Run() error {
	appCfg := config.Load()

	tuning := config.DefaultTuning()
	if appCfg.TuningPath != "" {
		loaded, err := config.LoadTuning(appCfg.TuningPath)
		if err != nil {
			return fmt.Errorf("loading tuning: %w", err)
		}
		tuning = loaded
	}

	hub := wshub.NewHub()
	engine := wager.New(tuning.Multipliers, hub)
	queue := match.New(match.Config{
		RoomSize:      tuning.RoomSize,
		BackfillWait:  time.Duration(tuning.BackfillWaitSecs) * time.Second,
		StartDelay:    time.Duration(tuning.StartDelaySecs) * time.Second,
		TeardownDelay: time.Duration(tuning.TeardownDelaySecs) * time.Second,
		CountdownSecs: tuning.CountdownSecs,
		RoundSecs:     tuning.RoundSecs,
	}, hub, hub, nil)

	srv := &Server{
		Hub:     hub,
		Lobby:   lobby.NewStore(),
		Queue:   queue,
		Engine:  engine,
		Metrics: metrics.New(),
	}
	queue.OnResult(srv.handleResult)

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		l, err := ledger.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[Ledger] Failed to connect: %v (running without ledger)\n", err)
		} else {
			if err := l.Migrate(); err != nil {
				log.Printf("[Ledger] Migration failed: %v\n", err)
			}
			srv.Ledger = l
			srv.PayoutBuffer = make(chan ledger.PayoutRecord, 1000)
			go ledger.BatchWriter(l, srv.PayoutBuffer)
			log.Println("[Ledger] Database connected and migrations applied")
		}
	} else {
		log.Println("[Ledger] DATABASE_URL not set, running without ledger")
	}

	srv.registerGauges()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.Handle("/metrics", srv.Metrics.Handler())

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) registerGauges() {
	s.Metrics.Gauge("arena_players_online", "Connected WebSocket clients.", func() float64 {
		return float64(s.Hub.ClientCount())
	})
	s.Metrics.Gauge("arena_queue_waiting", "Players waiting in the matchmaking queue.", func() float64 {
		return float64(s.Queue.WaitingCount())
	})
	s.Metrics.Gauge("arena_rooms_active", "Rooms currently registered.", func() float64 {
		return float64(s.Queue.ActiveRooms())
	})
	s.Metrics.Gauge("arena_wager_active_players", "Players with an active wager progression.", func() float64 {
		return float64(s.Engine.Status().ActivePlayers)
	})
	s.Metrics.Gauge("arena_wager_total_pot", "Sum of active initial bets.", func() float64 {
		return s.Engine.Status().TotalPot
	})
	s.Metrics.Counter("arena_rooms_created_total", "Rooms created by the matchmaking queue.", func() float64 {
		return float64(s.Queue.RoomsCreated())
	})
	s.Metrics.Counter("arena_bots_spawned_total", "Bot players spawned to back-fill rooms.", func() float64 {
		return float64(s.Queue.BotsSpawned())
	})
}

// handleResult forwards a finished room's outcome to the wager engine.
// Bots and zero-stake players have no progression to advance.
func (s *Server) handleResult(res arena.Result) {
	s.Metrics.Eliminations.Add(float64(len(res.Eliminated)))

	winnerID := ""
	if res.Winner != nil && !res.Winner.IsBot {
		winnerID = res.Winner.ID
	}

	for _, p := range res.Players {
		if p.IsBot {
			continue
		}
		// Gate on the engine's own registration, not lobby presence: a
		// player who disconnected mid-match is gone from the lobby but an
		// exposed progression must still settle as a loss.
		if _, registered := s.Engine.Get(p.ID); !registered {
			continue
		}
		if p.ID == winnerID {
			s.Engine.HandleRoundWin(p.ID, s.Engine.CurrentRound(p.ID))
		} else {
			s.Engine.HandleRoundLoss(p.ID)
		}
	}
}

// recordPayout hands a payout descriptor to the external payer's ledger.
func (s *Server) recordPayout(p *wager.Payout) {
	if p == nil {
		return
	}
	s.Metrics.PayoutsIssued.Inc()
	s.Metrics.PayoutAmountTotal.Add(p.Amount)
	if s.PayoutBuffer == nil {
		return
	}
	select {
	case s.PayoutBuffer <- ledger.PayoutRecord{
		PlayerID: p.PlayerID,
		Wallet:   p.Wallet,
		Amount:   p.Amount,
		Round:    p.Round,
	}:
	default:
		log.Printf("[Ledger] Payout buffer full, dropping record for %s\n", p.PlayerID)
	}
}
