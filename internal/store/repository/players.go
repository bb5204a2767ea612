package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
)

// PlayerRepository handles player-season data access.
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Upsert inserts or updates a player's identity columns, keyed on
// (league, external_id, season). Average columns are untouched. Returns
// the row's player_id.
func (r *PlayerRepository) Upsert(ctx context.Context, player *store.Player) (int, error) {
	query := `
		INSERT INTO players (
			league, external_id, season, team_id, name, position,
			jersey, height, weight, birth_date, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (league, external_id, season) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			name = EXCLUDED.name,
			position = EXCLUDED.position,
			jersey = EXCLUDED.jersey,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			birth_date = EXCLUDED.birth_date,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING player_id
	`

	var playerID int
	err := r.db.DB().QueryRowContext(ctx, query,
		player.League, player.ExternalID, player.Season, player.TeamID, player.Name, player.Position,
		player.Jersey, player.Height, player.Weight, player.BirthDate, player.Active,
	).Scan(&playerID)
	if err != nil {
		return 0, fmt.Errorf("upserting player %s/%s: %w", player.League, player.ExternalID, err)
	}
	return playerID, nil
}

const playerColumns = `
	player_id, league, external_id, season, team_id, name, position,
	jersey, height, weight, birth_date, is_active,
	games_played, games_started,
	minutes_pg, ppg, rebounds_pg, assists_pg, steals_pg, blocks_pg,
	turnovers_pg, fouls_pg, field_goal_pct, three_point_pct, free_throw_pct,
	created_at, updated_at
`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*store.Player, error) {
	player := &store.Player{}
	err := row.Scan(
		&player.PlayerID, &player.League, &player.ExternalID, &player.Season, &player.TeamID, &player.Name, &player.Position,
		&player.Jersey, &player.Height, &player.Weight, &player.BirthDate, &player.Active,
		&player.GamesPlayed, &player.GamesStarted,
		&player.MinutesPG, &player.PPG, &player.ReboundsPG, &player.AssistsPG, &player.StealsPG, &player.BlocksPG,
		&player.TurnoversPG, &player.FoulsPG, &player.FieldGoalPct, &player.ThreePointPct, &player.FreeThrowPct,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// GetByID finds a player by internal id.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1`

	player, err := scanPlayer(r.db.DB().QueryRowContext(ctx, query, playerID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}
	return player, nil
}

// GetByExternal finds a player by provider id for one league-season.
func (r *PlayerRepository) GetByExternal(ctx context.Context, league, externalID, season string) (*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE league = $1 AND external_id = $2 AND season = $3`

	player, err := scanPlayer(r.db.DB().QueryRowContext(ctx, query, league, externalID, season))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %s/%s/%s", league, externalID, season)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}
	return player, nil
}

// ListByTeam returns all players currently attached to a team.
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY name`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []*store.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// UpdateAverages rewrites a player's season-average columns.
func (r *PlayerRepository) UpdateAverages(ctx context.Context, player *store.Player) error {
	query := `
		UPDATE players SET
			games_played = $2, games_started = $3,
			minutes_pg = $4, ppg = $5, rebounds_pg = $6, assists_pg = $7,
			steals_pg = $8, blocks_pg = $9, turnovers_pg = $10, fouls_pg = $11,
			field_goal_pct = $12, three_point_pct = $13, free_throw_pct = $14,
			updated_at = NOW()
		WHERE player_id = $1
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		player.PlayerID,
		player.GamesPlayed, player.GamesStarted,
		player.MinutesPG, player.PPG, player.ReboundsPG, player.AssistsPG,
		player.StealsPG, player.BlocksPG, player.TurnoversPG, player.FoulsPG,
		player.FieldGoalPct, player.ThreePointPct, player.FreeThrowPct,
	)
	if err != nil {
		return fmt.Errorf("updating player averages: %w", err)
	}
	return nil
}
