// Package rest serves the HTTP API: read endpoints over stored games,
// teams, and box scores, plus sync triggers that feed the game queue.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server is the REST API server.
type Server struct {
	port   string
	server *http.Server
}

// NewServer creates the REST server with all routes registered.
func NewServer(port string, handler *Handler, logger *zap.SugaredLogger) *Server {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Games
	api.HandleFunc("/games/{league}", handler.GetGamesByDate).Methods("GET")
	api.HandleFunc("/games/{league}/sync-visible", handler.SyncVisible).Methods("POST")
	api.HandleFunc("/games/{league}/{gameID}/sync", handler.SyncGame).Methods("POST")
	api.HandleFunc("/games/{league}/{gameID}/sync", handler.GetSyncStatus).Methods("GET")
	api.HandleFunc("/games/{league}/{gameID}/boxscore", handler.GetGameBoxScore).Methods("GET")

	// Teams
	api.HandleFunc("/teams/{league}", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{league}/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{league}/{teamID}/roster", handler.GetTeamRoster).Methods("GET")

	return &Server{
		port: port,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST server and blocks.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
