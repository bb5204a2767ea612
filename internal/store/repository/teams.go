package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
)

// TeamRepository handles team-season data access.
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Upsert inserts or updates a team's identity and standings columns,
// keyed on (league, external_id, season). Average and rank columns are
// untouched. Returns the row's team_id.
func (r *TeamRepository) Upsert(ctx context.Context, team *store.Team) (int, error) {
	query := `
		INSERT INTO teams (
			league, external_id, season, name, abbreviation, location,
			conference, conference_rank, wins, losses,
			home_record, away_record, last_ten_record, points_for, points_against
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (league, external_id, season) DO UPDATE SET
			name = EXCLUDED.name,
			abbreviation = EXCLUDED.abbreviation,
			location = EXCLUDED.location,
			conference = EXCLUDED.conference,
			conference_rank = EXCLUDED.conference_rank,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			home_record = EXCLUDED.home_record,
			away_record = EXCLUDED.away_record,
			last_ten_record = EXCLUDED.last_ten_record,
			points_for = EXCLUDED.points_for,
			points_against = EXCLUDED.points_against,
			updated_at = NOW()
		RETURNING team_id
	`

	var teamID int
	err := r.db.DB().QueryRowContext(ctx, query,
		team.League, team.ExternalID, team.Season, team.Name, team.Abbreviation, team.Location,
		team.Conference, team.ConferenceRank, team.Wins, team.Losses,
		team.HomeRecord, team.AwayRecord, team.LastTenRecord, team.PointsFor, team.PointsAgainst,
	).Scan(&teamID)
	if err != nil {
		return 0, fmt.Errorf("upserting team %s/%s: %w", team.League, team.ExternalID, err)
	}
	return teamID, nil
}

const teamColumns = `
	team_id, league, external_id, season, name, abbreviation, location,
	conference, conference_rank, wins, losses, home_record, away_record, last_ten_record,
	points_for, points_against,
	ppg, opp_ppg, pace, offensive_rating, defensive_rating, net_rating,
	field_goal_pct, three_point_pct, free_throw_pct, effective_fg_pct, true_shooting_pct,
	rebounds_pg, off_rebounds_pg, def_rebounds_pg, assists_pg, turnovers_pg,
	steals_pg, blocks_pg, fouls_pg, assist_turnover_ratio,
	ppg_rank, opp_ppg_rank, pace_rank, ortg_rank, drtg_rank, net_rtg_rank,
	fg_pct_rank, three_pct_rank, ft_pct_rank, efg_pct_rank, ts_pct_rank,
	rebounds_rank, assists_rank, turnovers_rank, steals_rank, blocks_rank,
	created_at, updated_at
`

func scanTeam(row interface{ Scan(...interface{}) error }) (*store.Team, error) {
	team := &store.Team{}
	err := row.Scan(
		&team.TeamID, &team.League, &team.ExternalID, &team.Season, &team.Name, &team.Abbreviation, &team.Location,
		&team.Conference, &team.ConferenceRank, &team.Wins, &team.Losses, &team.HomeRecord, &team.AwayRecord, &team.LastTenRecord,
		&team.PointsFor, &team.PointsAgainst,
		&team.PPG, &team.OppPPG, &team.Pace, &team.OffensiveRating, &team.DefensiveRating, &team.NetRating,
		&team.FieldGoalPct, &team.ThreePointPct, &team.FreeThrowPct, &team.EffectiveFGPct, &team.TrueShootingPct,
		&team.ReboundsPG, &team.OffReboundsPG, &team.DefReboundsPG, &team.AssistsPG, &team.TurnoversPG,
		&team.StealsPG, &team.BlocksPG, &team.FoulsPG, &team.AssistTurnoverRatio,
		&team.PPGRank, &team.OppPPGRank, &team.PaceRank, &team.ORtgRank, &team.DRtgRank, &team.NetRtgRank,
		&team.FGPctRank, &team.ThreePctRank, &team.FTPctRank, &team.EFGPctRank, &team.TSPctRank,
		&team.ReboundsRank, &team.AssistsRank, &team.TurnoversRank, &team.StealsRank, &team.BlocksRank,
		&team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return team, nil
}

// GetByID finds a team by internal id.
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE team_id = $1`

	team, err := scanTeam(r.db.DB().QueryRowContext(ctx, query, teamID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}
	return team, nil
}

// GetByExternal finds a team by provider id for one league-season.
func (r *TeamRepository) GetByExternal(ctx context.Context, league, externalID, season string) (*store.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE league = $1 AND external_id = $2 AND season = $3`

	team, err := scanTeam(r.db.DB().QueryRowContext(ctx, query, league, externalID, season))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %s/%s/%s", league, externalID, season)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}
	return team, nil
}

// ListBySeason returns every team for one league-season, ordered by name.
func (r *TeamRepository) ListBySeason(ctx context.Context, league, season string) ([]*store.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE league = $1 AND season = $2 ORDER BY name`

	rows, err := r.db.DB().QueryContext(ctx, query, league, season)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// UpdateAverages rewrites a team's season-average columns.
func (r *TeamRepository) UpdateAverages(ctx context.Context, team *store.Team) error {
	query := `
		UPDATE teams SET
			ppg = $2, opp_ppg = $3, pace = $4,
			offensive_rating = $5, defensive_rating = $6, net_rating = $7,
			field_goal_pct = $8, three_point_pct = $9, free_throw_pct = $10,
			effective_fg_pct = $11, true_shooting_pct = $12,
			rebounds_pg = $13, off_rebounds_pg = $14, def_rebounds_pg = $15,
			assists_pg = $16, turnovers_pg = $17, steals_pg = $18,
			blocks_pg = $19, fouls_pg = $20, assist_turnover_ratio = $21,
			updated_at = NOW()
		WHERE team_id = $1
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		team.TeamID,
		team.PPG, team.OppPPG, team.Pace,
		team.OffensiveRating, team.DefensiveRating, team.NetRating,
		team.FieldGoalPct, team.ThreePointPct, team.FreeThrowPct,
		team.EffectiveFGPct, team.TrueShootingPct,
		team.ReboundsPG, team.OffReboundsPG, team.DefReboundsPG,
		team.AssistsPG, team.TurnoversPG, team.StealsPG,
		team.BlocksPG, team.FoulsPG, team.AssistTurnoverRatio,
	)
	if err != nil {
		return fmt.Errorf("updating team averages: %w", err)
	}
	return nil
}

// UpdateRanks rewrites a team's rank columns.
func (r *TeamRepository) UpdateRanks(ctx context.Context, team *store.Team) error {
	query := `
		UPDATE teams SET
			ppg_rank = $2, opp_ppg_rank = $3, pace_rank = $4,
			ortg_rank = $5, drtg_rank = $6, net_rtg_rank = $7,
			fg_pct_rank = $8, three_pct_rank = $9, ft_pct_rank = $10,
			efg_pct_rank = $11, ts_pct_rank = $12,
			rebounds_rank = $13, assists_rank = $14, turnovers_rank = $15,
			steals_rank = $16, blocks_rank = $17,
			updated_at = NOW()
		WHERE team_id = $1
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		team.TeamID,
		team.PPGRank, team.OppPPGRank, team.PaceRank,
		team.ORtgRank, team.DRtgRank, team.NetRtgRank,
		team.FGPctRank, team.ThreePctRank, team.FTPctRank,
		team.EFGPctRank, team.TSPctRank,
		team.ReboundsRank, team.AssistsRank, team.TurnoversRank,
		team.StealsRank, team.BlocksRank,
	)
	if err != nil {
		return fmt.Errorf("updating team ranks: %w", err)
	}
	return nil
}
