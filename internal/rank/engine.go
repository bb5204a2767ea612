// Package rank assigns league-wide ordinal ranks over team season
// averages. Rankings cover only teams with computed stats; a team that
// has not played ranks NULL everywhere.
package rank

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// statDef describes one rankable stat: how to read its value and where
// to write its rank. ascending stats rank the lowest value first.
type statDef struct {
	name      string
	ascending bool
	// signed stats (net rating) may legitimately be zero or negative
	// and are ranked whenever present.
	signed bool
	value  func(*store.Team) sql.NullFloat64
	assign func(*store.Team, sql.NullInt32)
}

var statDefs = []statDef{
	{name: "ppg", value: func(t *store.Team) sql.NullFloat64 { return t.PPG }, assign: func(t *store.Team, r sql.NullInt32) { t.PPGRank = r }},
	{name: "opp_ppg", ascending: true, value: func(t *store.Team) sql.NullFloat64 { return t.OppPPG }, assign: func(t *store.Team, r sql.NullInt32) { t.OppPPGRank = r }},
	{name: "pace", value: func(t *store.Team) sql.NullFloat64 { return t.Pace }, assign: func(t *store.Team, r sql.NullInt32) { t.PaceRank = r }},
	{name: "offensive_rating", value: func(t *store.Team) sql.NullFloat64 { return t.OffensiveRating }, assign: func(t *store.Team, r sql.NullInt32) { t.ORtgRank = r }},
	{name: "defensive_rating", ascending: true, value: func(t *store.Team) sql.NullFloat64 { return t.DefensiveRating }, assign: func(t *store.Team, r sql.NullInt32) { t.DRtgRank = r }},
	{name: "net_rating", signed: true, value: func(t *store.Team) sql.NullFloat64 { return t.NetRating }, assign: func(t *store.Team, r sql.NullInt32) { t.NetRtgRank = r }},
	{name: "field_goal_pct", value: func(t *store.Team) sql.NullFloat64 { return t.FieldGoalPct }, assign: func(t *store.Team, r sql.NullInt32) { t.FGPctRank = r }},
	{name: "three_point_pct", value: func(t *store.Team) sql.NullFloat64 { return t.ThreePointPct }, assign: func(t *store.Team, r sql.NullInt32) { t.ThreePctRank = r }},
	{name: "free_throw_pct", value: func(t *store.Team) sql.NullFloat64 { return t.FreeThrowPct }, assign: func(t *store.Team, r sql.NullInt32) { t.FTPctRank = r }},
	{name: "effective_fg_pct", value: func(t *store.Team) sql.NullFloat64 { return t.EffectiveFGPct }, assign: func(t *store.Team, r sql.NullInt32) { t.EFGPctRank = r }},
	{name: "true_shooting_pct", value: func(t *store.Team) sql.NullFloat64 { return t.TrueShootingPct }, assign: func(t *store.Team, r sql.NullInt32) { t.TSPctRank = r }},
	{name: "rebounds_pg", value: func(t *store.Team) sql.NullFloat64 { return t.ReboundsPG }, assign: func(t *store.Team, r sql.NullInt32) { t.ReboundsRank = r }},
	{name: "assists_pg", value: func(t *store.Team) sql.NullFloat64 { return t.AssistsPG }, assign: func(t *store.Team, r sql.NullInt32) { t.AssistsRank = r }},
	{name: "turnovers_pg", ascending: true, value: func(t *store.Team) sql.NullFloat64 { return t.TurnoversPG }, assign: func(t *store.Team, r sql.NullInt32) { t.TurnoversRank = r }},
	{name: "steals_pg", value: func(t *store.Team) sql.NullFloat64 { return t.StealsPG }, assign: func(t *store.Team, r sql.NullInt32) { t.StealsRank = r }},
	{name: "blocks_pg", value: func(t *store.Team) sql.NullFloat64 { return t.BlocksPG }, assign: func(t *store.Team, r sql.NullInt32) { t.BlocksRank = r }},
}

// Engine computes and persists league rankings.
type Engine struct {
	teams *repository.TeamRepository
	log   *zap.SugaredLogger
}

// NewEngine creates a ranking engine.
func NewEngine(teams *repository.TeamRepository, logger *zap.SugaredLogger) *Engine {
	return &Engine{teams: teams, log: logger}
}

// Recompute reranks every team in one league-season. Teams without a
// computed offensive rating are excluded from all rankings.
func (e *Engine) Recompute(ctx context.Context, league, season string) error {
	teams, err := e.teams.ListBySeason(ctx, league, season)
	if err != nil {
		return fmt.Errorf("loading teams for ranking: %w", err)
	}

	ranked := make([]*store.Team, 0, len(teams))
	for _, team := range teams {
		if team.OffensiveRating.Valid && team.OffensiveRating.Float64 > 0 {
			ranked = append(ranked, team)
		}
	}
	if len(ranked) == 0 {
		return nil
	}

	for _, def := range statDefs {
		assignRanks(ranked, def)
	}

	for _, team := range ranked {
		if err := e.teams.UpdateRanks(ctx, team); err != nil {
			return err
		}
	}

	e.log.Debugw("recomputed rankings", "league", league, "season", season, "teams", len(ranked))
	return nil
}

// assignRanks sorts by one stat and writes ordinal ranks; tied values
// share a rank and the next distinct value skips past them. Teams
// missing the stat get a NULL rank.
func assignRanks(teams []*store.Team, def statDef) {
	type entry struct {
		team  *store.Team
		value float64
	}

	var entries []entry
	for _, team := range teams {
		v := def.value(team)
		if !v.Valid || (!def.signed && v.Float64 <= 0) {
			def.assign(team, sql.NullInt32{})
			continue
		}
		entries = append(entries, entry{team: team, value: v.Float64})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if def.ascending {
			return entries[i].value < entries[j].value
		}
		return entries[i].value > entries[j].value
	})

	rank := 0
	var prev float64
	for i, e := range entries {
		if i == 0 || e.value != prev {
			rank = i + 1
			prev = e.value
		}
		def.assign(e.team, sql.NullInt32{Int32: int32(rank), Valid: true})
	}
}
