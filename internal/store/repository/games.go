package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/courtside/internal/store"
)

// GameRepository handles game event data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert inserts or updates a game event keyed on (league, external_id).
// check_count is preserved on conflict so repeated discovery runs don't
// reset the polling budget. Returns the row's game_event_id.
func (r *GameRepository) Upsert(ctx context.Context, game *store.GameEvent) (int, error) {
	query := `
		INSERT INTO game_events (
			league, external_id, season, home_team_id, away_team_id,
			start_time, status, status_detail, home_score, away_score, venue
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (league, external_id) DO UPDATE SET
			season = EXCLUDED.season,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			start_time = EXCLUDED.start_time,
			status = EXCLUDED.status,
			status_detail = EXCLUDED.status_detail,
			home_score = COALESCE(EXCLUDED.home_score, game_events.home_score),
			away_score = COALESCE(EXCLUDED.away_score, game_events.away_score),
			venue = EXCLUDED.venue,
			updated_at = NOW()
		RETURNING game_event_id
	`

	var gameID int
	err := r.db.DB().QueryRowContext(ctx, query,
		game.League, game.ExternalID, game.Season, game.HomeTeamID, game.AwayTeamID,
		game.StartTime, game.Status, game.StatusDetail, game.HomeScore, game.AwayScore, game.Venue,
	).Scan(&gameID)
	if err != nil {
		return 0, fmt.Errorf("upserting game %s/%s: %w", game.League, game.ExternalID, err)
	}
	return gameID, nil
}

const gameColumns = `
	game_event_id, league, external_id, season, home_team_id, away_team_id,
	start_time, status, status_detail, home_score, away_score, venue,
	last_fetched_at, check_count, created_at, updated_at
`

func scanGame(row interface{ Scan(...interface{}) error }) (*store.GameEvent, error) {
	game := &store.GameEvent{}
	err := row.Scan(
		&game.GameEventID, &game.League, &game.ExternalID, &game.Season, &game.HomeTeamID, &game.AwayTeamID,
		&game.StartTime, &game.Status, &game.StatusDetail, &game.HomeScore, &game.AwayScore, &game.Venue,
		&game.LastFetchedAt, &game.CheckCount, &game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return game, nil
}

// GetByID finds a game by internal id.
func (r *GameRepository) GetByID(ctx context.Context, gameEventID int) (*store.GameEvent, error) {
	query := `SELECT ` + gameColumns + ` FROM game_events WHERE game_event_id = $1`

	game, err := scanGame(r.db.DB().QueryRowContext(ctx, query, gameEventID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameEventID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return game, nil
}

// GetByExternalID finds a game by provider event id within one league.
func (r *GameRepository) GetByExternalID(ctx context.Context, league, externalID string) (*store.GameEvent, error) {
	query := `SELECT ` + gameColumns + ` FROM game_events WHERE league = $1 AND external_id = $2`

	game, err := scanGame(r.db.DB().QueryRowContext(ctx, query, league, externalID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %s/%s", league, externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return game, nil
}

// ListByDate returns a league's games starting within the UTC day of the
// given time.
func (r *GameRepository) ListByDate(ctx context.Context, league string, date time.Time) ([]*store.GameEvent, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT ` + gameColumns + `
		FROM game_events
		WHERE league = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`

	rows, err := r.db.DB().QueryContext(ctx, query, league, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []*store.GameEvent
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// UpdateFromCheck patches the columns a status check can change. Scores
// are only written when present in the fetched payload.
func (r *GameRepository) UpdateFromCheck(ctx context.Context, game *store.GameEvent) error {
	query := `
		UPDATE game_events SET
			status = $2,
			status_detail = $3,
			home_score = COALESCE($4, home_score),
			away_score = COALESCE($5, away_score),
			last_fetched_at = $6,
			check_count = $7,
			updated_at = NOW()
		WHERE game_event_id = $1
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		game.GameEventID, game.Status, game.StatusDetail,
		game.HomeScore, game.AwayScore, game.LastFetchedAt, game.CheckCount,
	)
	if err != nil {
		return fmt.Errorf("updating game from check: %w", err)
	}
	return nil
}
