package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
)

// EventStatsRepository handles per-game team and player box score rows.
type EventStatsRepository struct {
	db *store.Database
}

// NewEventStatsRepository creates a new event stats repository.
func NewEventStatsRepository(db *store.Database) *EventStatsRepository {
	return &EventStatsRepository{db: db}
}

// UpsertTeamEvent inserts or fully replaces one team's box score for one
// game, keyed on (game_event_id, team_id).
func (r *EventStatsRepository) UpsertTeamEvent(ctx context.Context, te *store.TeamEvent) error {
	query := `
		INSERT INTO team_events (
			game_event_id, team_id,
			points, field_goals_made, field_goals_att,
			three_pointers_made, three_pointers_att,
			free_throws_made, free_throws_att,
			rebounds, off_rebounds, def_rebounds,
			assists, turnovers, steals, blocks, fouls,
			pace, offensive_rating, defensive_rating, net_rating,
			effective_fg_pct, true_shooting_pct
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (game_event_id, team_id) DO UPDATE SET
			points = EXCLUDED.points,
			field_goals_made = EXCLUDED.field_goals_made,
			field_goals_att = EXCLUDED.field_goals_att,
			three_pointers_made = EXCLUDED.three_pointers_made,
			three_pointers_att = EXCLUDED.three_pointers_att,
			free_throws_made = EXCLUDED.free_throws_made,
			free_throws_att = EXCLUDED.free_throws_att,
			rebounds = EXCLUDED.rebounds,
			off_rebounds = EXCLUDED.off_rebounds,
			def_rebounds = EXCLUDED.def_rebounds,
			assists = EXCLUDED.assists,
			turnovers = EXCLUDED.turnovers,
			steals = EXCLUDED.steals,
			blocks = EXCLUDED.blocks,
			fouls = EXCLUDED.fouls,
			pace = EXCLUDED.pace,
			offensive_rating = EXCLUDED.offensive_rating,
			defensive_rating = EXCLUDED.defensive_rating,
			net_rating = EXCLUDED.net_rating,
			effective_fg_pct = EXCLUDED.effective_fg_pct,
			true_shooting_pct = EXCLUDED.true_shooting_pct,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		te.GameEventID, te.TeamID,
		te.Points, te.FieldGoalsMade, te.FieldGoalsAtt,
		te.ThreePointersMade, te.ThreePointersAtt,
		te.FreeThrowsMade, te.FreeThrowsAtt,
		te.Rebounds, te.OffRebounds, te.DefRebounds,
		te.Assists, te.Turnovers, te.Steals, te.Blocks, te.Fouls,
		te.Pace, te.OffensiveRating, te.DefensiveRating, te.NetRating,
		te.EffectiveFGPct, te.TrueShootingPct,
	)
	if err != nil {
		return fmt.Errorf("upserting team event game=%d team=%d: %w", te.GameEventID, te.TeamID, err)
	}
	return nil
}

// UpsertPlayerEvent inserts or fully replaces one player's line for one
// game, keyed on (game_event_id, player_id).
func (r *EventStatsRepository) UpsertPlayerEvent(ctx context.Context, pe *store.PlayerEvent) error {
	query := `
		INSERT INTO player_events (
			game_event_id, player_id, team_id, starter, is_active, minutes,
			points, field_goals_made, field_goals_att,
			three_pointers_made, three_pointers_att,
			free_throws_made, free_throws_att,
			rebounds, off_rebounds, def_rebounds,
			assists, turnovers, steals, blocks, fouls, plus_minus
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (game_event_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			starter = EXCLUDED.starter,
			is_active = EXCLUDED.is_active,
			minutes = EXCLUDED.minutes,
			points = EXCLUDED.points,
			field_goals_made = EXCLUDED.field_goals_made,
			field_goals_att = EXCLUDED.field_goals_att,
			three_pointers_made = EXCLUDED.three_pointers_made,
			three_pointers_att = EXCLUDED.three_pointers_att,
			free_throws_made = EXCLUDED.free_throws_made,
			free_throws_att = EXCLUDED.free_throws_att,
			rebounds = EXCLUDED.rebounds,
			off_rebounds = EXCLUDED.off_rebounds,
			def_rebounds = EXCLUDED.def_rebounds,
			assists = EXCLUDED.assists,
			turnovers = EXCLUDED.turnovers,
			steals = EXCLUDED.steals,
			blocks = EXCLUDED.blocks,
			fouls = EXCLUDED.fouls,
			plus_minus = EXCLUDED.plus_minus,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		pe.GameEventID, pe.PlayerID, pe.TeamID, pe.Starter, pe.Active, pe.Minutes,
		pe.Points, pe.FieldGoalsMade, pe.FieldGoalsAtt,
		pe.ThreePointersMade, pe.ThreePointersAtt,
		pe.FreeThrowsMade, pe.FreeThrowsAtt,
		pe.Rebounds, pe.OffRebounds, pe.DefRebounds,
		pe.Assists, pe.Turnovers, pe.Steals, pe.Blocks, pe.Fouls, pe.PlusMinus,
	)
	if err != nil {
		return fmt.Errorf("upserting player event game=%d player=%d: %w", pe.GameEventID, pe.PlayerID, err)
	}
	return nil
}

const teamEventColumns = `
	te.team_event_id, te.game_event_id, te.team_id,
	te.points, te.field_goals_made, te.field_goals_att,
	te.three_pointers_made, te.three_pointers_att,
	te.free_throws_made, te.free_throws_att,
	te.rebounds, te.off_rebounds, te.def_rebounds,
	te.assists, te.turnovers, te.steals, te.blocks, te.fouls,
	te.pace, te.offensive_rating, te.defensive_rating, te.net_rating,
	te.effective_fg_pct, te.true_shooting_pct,
	te.created_at, te.updated_at
`

func scanTeamEvent(row interface{ Scan(...interface{}) error }) (*store.TeamEvent, error) {
	te := &store.TeamEvent{}
	err := row.Scan(
		&te.TeamEventID, &te.GameEventID, &te.TeamID,
		&te.Points, &te.FieldGoalsMade, &te.FieldGoalsAtt,
		&te.ThreePointersMade, &te.ThreePointersAtt,
		&te.FreeThrowsMade, &te.FreeThrowsAtt,
		&te.Rebounds, &te.OffRebounds, &te.DefRebounds,
		&te.Assists, &te.Turnovers, &te.Steals, &te.Blocks, &te.Fouls,
		&te.Pace, &te.OffensiveRating, &te.DefensiveRating, &te.NetRating,
		&te.EffectiveFGPct, &te.TrueShootingPct,
		&te.CreatedAt, &te.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return te, nil
}

// ListTeamEventsForTeamSeason returns a team's box scores from completed
// games in one season, joined through game_events.
func (r *EventStatsRepository) ListTeamEventsForTeamSeason(ctx context.Context, teamID int, season string) ([]*store.TeamEvent, error) {
	query := `
		SELECT ` + teamEventColumns + `
		FROM team_events te
		JOIN game_events ge ON ge.game_event_id = te.game_event_id
		WHERE te.team_id = $1 AND ge.season = $2 AND ge.status = 'completed'
		ORDER BY ge.start_time
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, season)
	if err != nil {
		return nil, fmt.Errorf("querying team events: %w", err)
	}
	defer rows.Close()

	var events []*store.TeamEvent
	for rows.Next() {
		te, err := scanTeamEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team event: %w", err)
		}
		events = append(events, te)
	}
	return events, rows.Err()
}

// ListTeamEventsForGame returns both teams' box scores for one game.
func (r *EventStatsRepository) ListTeamEventsForGame(ctx context.Context, gameEventID int) ([]*store.TeamEvent, error) {
	query := `
		SELECT ` + teamEventColumns + `
		FROM team_events te
		WHERE te.game_event_id = $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameEventID)
	if err != nil {
		return nil, fmt.Errorf("querying team events: %w", err)
	}
	defer rows.Close()

	var events []*store.TeamEvent
	for rows.Next() {
		te, err := scanTeamEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team event: %w", err)
		}
		events = append(events, te)
	}
	return events, rows.Err()
}

const playerEventColumns = `
	pe.player_event_id, pe.game_event_id, pe.player_id, pe.team_id,
	pe.starter, pe.is_active, pe.minutes,
	pe.points, pe.field_goals_made, pe.field_goals_att,
	pe.three_pointers_made, pe.three_pointers_att,
	pe.free_throws_made, pe.free_throws_att,
	pe.rebounds, pe.off_rebounds, pe.def_rebounds,
	pe.assists, pe.turnovers, pe.steals, pe.blocks, pe.fouls, pe.plus_minus,
	pe.created_at, pe.updated_at
`

func scanPlayerEvent(row interface{ Scan(...interface{}) error }) (*store.PlayerEvent, error) {
	pe := &store.PlayerEvent{}
	err := row.Scan(
		&pe.PlayerEventID, &pe.GameEventID, &pe.PlayerID, &pe.TeamID,
		&pe.Starter, &pe.Active, &pe.Minutes,
		&pe.Points, &pe.FieldGoalsMade, &pe.FieldGoalsAtt,
		&pe.ThreePointersMade, &pe.ThreePointersAtt,
		&pe.FreeThrowsMade, &pe.FreeThrowsAtt,
		&pe.Rebounds, &pe.OffRebounds, &pe.DefRebounds,
		&pe.Assists, &pe.Turnovers, &pe.Steals, &pe.Blocks, &pe.Fouls, &pe.PlusMinus,
		&pe.CreatedAt, &pe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pe, nil
}

// ListPlayerEventsForPlayerSeason returns a player's lines from completed
// games in one season.
func (r *EventStatsRepository) ListPlayerEventsForPlayerSeason(ctx context.Context, playerID int, season string) ([]*store.PlayerEvent, error) {
	query := `
		SELECT ` + playerEventColumns + `
		FROM player_events pe
		JOIN game_events ge ON ge.game_event_id = pe.game_event_id
		WHERE pe.player_id = $1 AND ge.season = $2 AND ge.status = 'completed'
		ORDER BY ge.start_time
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerID, season)
	if err != nil {
		return nil, fmt.Errorf("querying player events: %w", err)
	}
	defer rows.Close()

	var events []*store.PlayerEvent
	for rows.Next() {
		pe, err := scanPlayerEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player event: %w", err)
		}
		events = append(events, pe)
	}
	return events, rows.Err()
}

// ListPlayerEventsForGame returns every player line for one game.
func (r *EventStatsRepository) ListPlayerEventsForGame(ctx context.Context, gameEventID int) ([]*store.PlayerEvent, error) {
	query := `
		SELECT ` + playerEventColumns + `
		FROM player_events pe
		WHERE pe.game_event_id = $1
		ORDER BY pe.team_id, pe.starter DESC, pe.minutes DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameEventID)
	if err != nil {
		return nil, fmt.Errorf("querying player events: %w", err)
	}
	defer rows.Close()

	var events []*store.PlayerEvent
	for rows.Next() {
		pe, err := scanPlayerEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player event: %w", err)
		}
		events = append(events, pe)
	}
	return events, rows.Err()
}

// ListGamePlayerIDs returns the distinct player ids with a line in one game.
func (r *EventStatsRepository) ListGamePlayerIDs(ctx context.Context, gameEventID int) ([]int, error) {
	query := `SELECT DISTINCT player_id FROM player_events WHERE game_event_id = $1`

	rows, err := r.db.DB().QueryContext(ctx, query, gameEventID)
	if err != nil {
		return nil, fmt.Errorf("querying game player ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
