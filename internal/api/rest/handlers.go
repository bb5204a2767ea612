package rest

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/gamequeue"
	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	db      *store.Database
	queue   *gamequeue.Queue
	teams   *repository.TeamRepository
	players *repository.PlayerRepository
	games   *repository.GameRepository
	events  *repository.EventStatsRepository
	log     *zap.SugaredLogger
}

// NewHandler creates a new handler.
func NewHandler(db *store.Database, queue *gamequeue.Queue, teams *repository.TeamRepository, players *repository.PlayerRepository, games *repository.GameRepository, events *repository.EventStatsRepository, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:      db,
		queue:   queue,
		teams:   teams,
		players: players,
		games:   games,
		events:  events,
		log:     logger,
	}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "courtside",
	})
}

// SyncGame queues an immediate check for one game.
func (h *Handler) SyncGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lg, err := league.Get(vars["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	externalID := vars["gameID"]
	if _, err := h.games.GetByExternalID(r.Context(), lg.Code, externalID); err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	if err := h.queue.EnqueueGame(r.Context(), lg, externalID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to queue game sync", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "Game sync queued",
		"league":  lg.Code,
		"game_id": externalID,
	})
}

// GetSyncStatus returns the queue entry for a previously requested sync.
func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lg, err := league.Get(vars["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	entry, err := h.queue.Status(r.Context(), lg, vars["gameID"])
	if err != nil {
		respondError(w, http.StatusNotFound, "No sync queued for game", err)
		return
	}

	response := map[string]interface{}{
		"league":      entry.League,
		"game_id":     entry.ExternalGameID,
		"status":      entry.Status,
		"check_count": entry.CheckCount,
	}
	if entry.FirstCheckAt.Valid {
		response["next_check_at"] = entry.FirstCheckAt.Time
	}
	respondJSON(w, http.StatusOK, response)
}

// SyncVisible queues checks for every possibly-live game today.
func (h *Handler) SyncVisible(w http.ResponseWriter, r *http.Request) {
	lg, err := league.Get(mux.Vars(r)["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	queued, err := h.queue.EnqueueVisible(r.Context(), lg, time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to queue visible games", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Visible games queued",
		"league":  lg.Code,
		"queued":  queued,
	})
}

// GetGamesByDate returns a league's games for a date (default today).
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	lg, err := league.Get(mux.Vars(r)["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	date := time.Now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
	}

	games, err := h.games.ListByDate(r.Context(), lg.Code, date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	out := make([]gameResponse, 0, len(games))
	for _, game := range games {
		out = append(out, toGameResponse(game))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetGameBoxScore returns the stored box score for one game.
func (h *Handler) GetGameBoxScore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lg, err := league.Get(vars["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	game, err := h.games.GetByExternalID(r.Context(), lg.Code, vars["gameID"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	teamEvents, err := h.events.ListTeamEventsForGame(r.Context(), game.GameEventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team stats", err)
		return
	}
	playerEvents, err := h.events.ListPlayerEventsForGame(r.Context(), game.GameEventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player stats", err)
		return
	}

	players := make([]playerLineResponse, 0, len(playerEvents))
	names := make(map[int]string)
	for _, pe := range playerEvents {
		name, ok := names[pe.PlayerID]
		if !ok {
			if player, err := h.players.GetByID(r.Context(), pe.PlayerID); err == nil {
				name = player.Name
			}
			names[pe.PlayerID] = name
		}
		players = append(players, toPlayerLineResponse(pe, name))
	}

	teams := make([]teamLineResponse, 0, len(teamEvents))
	for _, te := range teamEvents {
		teams = append(teams, toTeamLineResponse(te))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game":    toGameResponse(game),
		"teams":   teams,
		"players": players,
	})
}

// GetTeams returns a league's teams with season averages and rankings.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	lg, err := league.Get(mux.Vars(r)["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	season := r.URL.Query().Get("season")
	if season == "" {
		season = lg.CurrentSeason(time.Now())
	}

	teams, err := h.teams.ListBySeason(r.Context(), lg.Code, season)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	out := make([]teamResponse, 0, len(teams))
	for _, team := range teams {
		out = append(out, toTeamResponse(team))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetTeam returns one team with its averages and rankings.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lg, err := league.Get(vars["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	season := r.URL.Query().Get("season")
	if season == "" {
		season = lg.CurrentSeason(time.Now())
	}

	team, err := h.teams.GetByExternal(r.Context(), lg.Code, vars["teamID"], season)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	respondJSON(w, http.StatusOK, toTeamResponse(team))
}

// GetTeamRoster returns a team's players with season averages.
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lg, err := league.Get(vars["league"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown league", err)
		return
	}

	season := r.URL.Query().Get("season")
	if season == "" {
		season = lg.CurrentSeason(time.Now())
	}

	team, err := h.teams.GetByExternal(r.Context(), lg.Code, vars["teamID"], season)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	players, err := h.players.ListByTeam(r.Context(), team.TeamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch roster", err)
		return
	}

	out := make([]playerResponse, 0, len(players))
	for _, player := range players {
		out = append(out, toPlayerResponse(player))
	}
	respondJSON(w, http.StatusOK, out)
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

func nf(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func ni(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	return &v.Int32
}
