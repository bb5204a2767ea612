// Package aggregate recomputes season averages from stored per-game box
// scores. Every recompute is a full pass over the season's completed
// games, so re-syncing a game never double-counts.
package aggregate

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/stats"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// TeamAverages holds a team's season averages before rounding.
type TeamAverages struct {
	Games int

	PPG             float64
	OppPPG          float64
	Pace            float64
	OffensiveRating float64
	DefensiveRating float64
	NetRating       float64
	FieldGoalPct    float64
	ThreePointPct   float64
	FreeThrowPct    float64
	EffectiveFGPct  float64
	TrueShootingPct float64
	ReboundsPG      float64
	OffReboundsPG   float64
	DefReboundsPG   float64
	AssistsPG       float64
	TurnoversPG     float64
	StealsPG        float64
	BlocksPG        float64
	FoulsPG         float64
	AssistTurnover  float64
}

// PlayerAverages holds a player's season averages before rounding.
type PlayerAverages struct {
	GamesPlayed  int
	GamesStarted int

	MinutesPG     float64
	PPG           float64
	ReboundsPG    float64
	AssistsPG     float64
	StealsPG      float64
	BlocksPG      float64
	TurnoversPG   float64
	FoulsPG       float64
	FieldGoalPct  float64
	ThreePointPct float64
	FreeThrowPct  float64
}

// ComputeTeamAverages reduces a team's game lines to season averages.
// Percentages come from summed makes and attempts, not averaged
// per-game percentages. Opponent points are reconstructed from each
// game's stored defensive rating and pace.
func ComputeTeamAverages(events []*store.TeamEvent) TeamAverages {
	avg := TeamAverages{Games: len(events)}
	if len(events) == 0 {
		return avg
	}

	var points, fgm, fga, tpm, tpa, ftm, fta int
	var reb, oreb, dreb, ast, tov, stl, blk, fouls int
	var oppPoints, possessions float64

	for _, e := range events {
		points += e.Points
		fgm += e.FieldGoalsMade
		fga += e.FieldGoalsAtt
		tpm += e.ThreePointersMade
		tpa += e.ThreePointersAtt
		ftm += e.FreeThrowsMade
		fta += e.FreeThrowsAtt
		reb += e.Rebounds
		oreb += e.OffRebounds
		dreb += e.DefRebounds
		ast += e.Assists
		tov += e.Turnovers
		stl += e.Steals
		blk += e.Blocks
		fouls += e.Fouls

		possessions += e.Pace
		oppPoints += e.DefensiveRating / 100 * e.Pace
	}

	games := float64(len(events))
	avg.PPG = float64(points) / games
	avg.OppPPG = oppPoints / games
	avg.Pace = possessions / games
	avg.OffensiveRating = stats.OffensiveRating(points, possessions)
	avg.DefensiveRating = stats.OffensiveRating(int(oppPoints+0.5), possessions)
	avg.NetRating = stats.NetRating(avg.OffensiveRating, avg.DefensiveRating)
	avg.FieldGoalPct = stats.Pct(fgm, fga)
	avg.ThreePointPct = stats.Pct(tpm, tpa)
	avg.FreeThrowPct = stats.Pct(ftm, fta)
	avg.EffectiveFGPct = stats.EffectiveFieldGoalPct(fgm, tpm, fga)
	avg.TrueShootingPct = stats.TrueShootingPct(points, fga, fta)
	avg.ReboundsPG = float64(reb) / games
	avg.OffReboundsPG = float64(oreb) / games
	avg.DefReboundsPG = float64(dreb) / games
	avg.AssistsPG = float64(ast) / games
	avg.TurnoversPG = float64(tov) / games
	avg.StealsPG = float64(stl) / games
	avg.BlocksPG = float64(blk) / games
	avg.FoulsPG = float64(fouls) / games
	avg.AssistTurnover = stats.Ratio(ast, tov)

	return avg
}

// ComputePlayerAverages reduces a player's game lines to season averages.
// Only lines where the player was active and logged minutes count toward
// games played.
func ComputePlayerAverages(events []*store.PlayerEvent) PlayerAverages {
	var avg PlayerAverages

	var minutes float64
	var points, fgm, fga, tpm, tpa, ftm, fta int
	var reb, ast, stl, blk, tov, fouls int

	for _, e := range events {
		if !e.Active || e.Minutes <= 0 {
			continue
		}
		avg.GamesPlayed++
		if e.Starter {
			avg.GamesStarted++
		}

		minutes += e.Minutes
		points += e.Points
		fgm += e.FieldGoalsMade
		fga += e.FieldGoalsAtt
		tpm += e.ThreePointersMade
		tpa += e.ThreePointersAtt
		ftm += e.FreeThrowsMade
		fta += e.FreeThrowsAtt
		reb += e.Rebounds
		ast += e.Assists
		stl += e.Steals
		blk += e.Blocks
		tov += e.Turnovers
		fouls += e.Fouls
	}

	if avg.GamesPlayed == 0 {
		return avg
	}

	games := float64(avg.GamesPlayed)
	avg.MinutesPG = minutes / games
	avg.PPG = float64(points) / games
	avg.ReboundsPG = float64(reb) / games
	avg.AssistsPG = float64(ast) / games
	avg.StealsPG = float64(stl) / games
	avg.BlocksPG = float64(blk) / games
	avg.TurnoversPG = float64(tov) / games
	avg.FoulsPG = float64(fouls) / games
	avg.FieldGoalPct = stats.Pct(fgm, fga)
	avg.ThreePointPct = stats.Pct(tpm, tpa)
	avg.FreeThrowPct = stats.Pct(ftm, fta)

	return avg
}

// Engine recomputes and persists season aggregates.
type Engine struct {
	teams   *repository.TeamRepository
	players *repository.PlayerRepository
	events  *repository.EventStatsRepository
	log     *zap.SugaredLogger
}

// NewEngine creates an aggregation engine.
func NewEngine(teams *repository.TeamRepository, players *repository.PlayerRepository, events *repository.EventStatsRepository, logger *zap.SugaredLogger) *Engine {
	return &Engine{teams: teams, players: players, events: events, log: logger}
}

// RecomputeTeam rebuilds one team's season averages from its completed
// games. A team with no completed games keeps NULL averages.
func (e *Engine) RecomputeTeam(ctx context.Context, teamID int, season string) error {
	events, err := e.events.ListTeamEventsForTeamSeason(ctx, teamID, season)
	if err != nil {
		return fmt.Errorf("loading team events: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	avg := ComputeTeamAverages(events)

	team := &store.Team{
		TeamID:              teamID,
		PPG:                 round(avg.PPG),
		OppPPG:              round(avg.OppPPG),
		Pace:                round(avg.Pace),
		OffensiveRating:     round(avg.OffensiveRating),
		DefensiveRating:     round(avg.DefensiveRating),
		NetRating:           round(avg.NetRating),
		FieldGoalPct:        round(avg.FieldGoalPct),
		ThreePointPct:       round(avg.ThreePointPct),
		FreeThrowPct:        round(avg.FreeThrowPct),
		EffectiveFGPct:      round(avg.EffectiveFGPct),
		TrueShootingPct:     round(avg.TrueShootingPct),
		ReboundsPG:          round(avg.ReboundsPG),
		OffReboundsPG:       round(avg.OffReboundsPG),
		DefReboundsPG:       round(avg.DefReboundsPG),
		AssistsPG:           round(avg.AssistsPG),
		TurnoversPG:         round(avg.TurnoversPG),
		StealsPG:            round(avg.StealsPG),
		BlocksPG:            round(avg.BlocksPG),
		FoulsPG:             round(avg.FoulsPG),
		AssistTurnoverRatio: sql.NullFloat64{Float64: avg.AssistTurnover, Valid: true},
	}

	if err := e.teams.UpdateAverages(ctx, team); err != nil {
		return err
	}

	e.log.Debugw("recomputed team averages", "team_id", teamID, "season", season, "games", avg.Games)
	return nil
}

// RecomputePlayer rebuilds one player's season averages from their
// completed-game lines.
func (e *Engine) RecomputePlayer(ctx context.Context, playerID int, season string) error {
	events, err := e.events.ListPlayerEventsForPlayerSeason(ctx, playerID, season)
	if err != nil {
		return fmt.Errorf("loading player events: %w", err)
	}

	avg := ComputePlayerAverages(events)
	if avg.GamesPlayed == 0 {
		return nil
	}

	player := &store.Player{
		PlayerID:      playerID,
		GamesPlayed:   avg.GamesPlayed,
		GamesStarted:  avg.GamesStarted,
		MinutesPG:     round(avg.MinutesPG),
		PPG:           round(avg.PPG),
		ReboundsPG:    round(avg.ReboundsPG),
		AssistsPG:     round(avg.AssistsPG),
		StealsPG:      round(avg.StealsPG),
		BlocksPG:      round(avg.BlocksPG),
		TurnoversPG:   round(avg.TurnoversPG),
		FoulsPG:       round(avg.FoulsPG),
		FieldGoalPct:  round(avg.FieldGoalPct),
		ThreePointPct: round(avg.ThreePointPct),
		FreeThrowPct:  round(avg.FreeThrowPct),
	}

	return e.players.UpdateAverages(ctx, player)
}

func round(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: stats.Round1(v), Valid: true}
}
