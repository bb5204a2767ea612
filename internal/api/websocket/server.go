// Package websocket relays game updates from the Redis streams to
// browser clients over one fan-out hub per league.
package websocket

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server relays per-league Redis stream entries to websocket clients.
type Server struct {
	port    string
	server  *http.Server
	redis   *redis.Client
	leagues []league.League
	hubs    map[string]*Hub
	log     *zap.SugaredLogger
}

// NewServer creates a websocket server with one hub per league.
func NewServer(redisClient *redis.Client, leagues []league.League, logger *zap.SugaredLogger) *Server {
	hubs := make(map[string]*Hub, len(leagues))
	for _, lg := range leagues {
		hubs[lg.Code] = NewHub()
	}

	return &Server{
		redis:   redisClient,
		leagues: leagues,
		hubs:    hubs,
		log:     logger,
	}
}

// Start runs the hubs, the stream relays, and the HTTP listener. Blocks
// until the listener fails or is shut down.
func (s *Server) Start(ctx context.Context, port string) error {
	s.port = port

	for _, lg := range s.leagues {
		go s.hubs[lg.Code].Run()
		go s.relay(ctx, lg.Code)
	}

	router := http.NewServeMux()
	router.HandleFunc("/ws/games/", s.handleGames)
	router.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	s.log.Infow("websocket server listening", "port", port)
	return s.server.ListenAndServe()
}

// relay tails a league's live stream and broadcasts each entry.
func (s *Server) relay(ctx context.Context, leagueCode string) {
	stream := publisher.LiveStream(leagueCode)
	lastID := "$"

	for {
		if ctx.Err() != nil {
			return
		}

		result, err := s.redis.XRead(ctx, &redis.XReadArgs{
			Streams: []string{stream, lastID},
			Block:   5 * time.Second,
			Count:   32,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			s.log.Warnw("stream read failed", "stream", stream, "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, streamResult := range result {
			for _, message := range streamResult.Messages {
				lastID = message.ID
				if data, ok := message.Values["data"].(string); ok {
					s.hubs[leagueCode].Broadcast([]byte(data))
				}
			}
		}
	}
}

// handleGames upgrades a connection and attaches it to its league's hub.
// Path shape: /ws/games/{league}.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	leagueCode := r.URL.Path[len("/ws/games/"):]
	hub, ok := s.hubs[leagueCode]
	if !ok {
		http.Error(w, "unknown league", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	total := 0
	for _, hub := range s.hubs {
		total += hub.ClientCount()
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, total)
}

// Shutdown gracefully shuts down the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
