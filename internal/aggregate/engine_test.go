package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fortuna/courtside/internal/stats"
	"github.com/fortuna/courtside/internal/store"
)

func teamGame(points int, pace, drtg float64) *store.TeamEvent {
	return &store.TeamEvent{
		Points:            points,
		FieldGoalsMade:    points * 4 / 10,
		FieldGoalsAtt:     85,
		ThreePointersMade: 12,
		ThreePointersAtt:  34,
		FreeThrowsMade:    20,
		FreeThrowsAtt:     24,
		Rebounds:          44,
		OffRebounds:       10,
		DefRebounds:       34,
		Assists:           25,
		Turnovers:         14,
		Steals:            7,
		Blocks:            5,
		Fouls:             18,
		Pace:              pace,
		DefensiveRating:   drtg,
	}
}

func TestComputeTeamAveragesEmpty(t *testing.T) {
	avg := ComputeTeamAverages(nil)
	assert.Zero(t, avg.Games)
	assert.Zero(t, avg.PPG)
}

func TestComputeTeamAverages(t *testing.T) {
	events := []*store.TeamEvent{
		teamGame(110, 98.0, 104.0),
		teamGame(100, 96.0, 110.0),
	}

	avg := ComputeTeamAverages(events)

	assert.Equal(t, 2, avg.Games)
	assert.InDelta(t, 105.0, avg.PPG, 0.001)
	assert.InDelta(t, 97.0, avg.Pace, 0.001)

	// Opponent points reconstructed per game: 104/100*98 + 110/100*96.
	wantOpp := (104.0/100*98 + 110.0/100*96) / 2
	assert.InDelta(t, wantOpp, avg.OppPPG, 0.001)

	// Season rating from totals, not averaged per-game ratings.
	assert.InDelta(t, 210.0/194.0*100, avg.OffensiveRating, 0.001)

	assert.InDelta(t, 25.0, avg.AssistsPG, 0.001)
	assert.InDelta(t, stats.Ratio(50, 28), avg.AssistTurnover, 0.001)
}

func TestComputeTeamAveragesPctFromTotals(t *testing.T) {
	events := []*store.TeamEvent{
		{FieldGoalsMade: 30, FieldGoalsAtt: 100, Pace: 95, Points: 80},
		{FieldGoalsMade: 50, FieldGoalsAtt: 100, Pace: 95, Points: 120},
	}

	avg := ComputeTeamAverages(events)
	// 80/200 = 40%, not the 30%/50% mean.
	assert.InDelta(t, 40.0, avg.FieldGoalPct, 0.001)
}

func TestComputePlayerAveragesSkipsInactive(t *testing.T) {
	events := []*store.PlayerEvent{
		{Active: true, Starter: true, Minutes: 36, Points: 30, Rebounds: 10, Assists: 8, FieldGoalsMade: 11, FieldGoalsAtt: 22},
		{Active: true, Minutes: 20, Points: 10, Rebounds: 4, Assists: 2, FieldGoalsMade: 4, FieldGoalsAtt: 10},
		{Active: false, Minutes: 0},
		{Active: true, Minutes: 0, Points: 0},
	}

	avg := ComputePlayerAverages(events)

	assert.Equal(t, 2, avg.GamesPlayed)
	assert.Equal(t, 1, avg.GamesStarted)
	assert.InDelta(t, 28.0, avg.MinutesPG, 0.001)
	assert.InDelta(t, 20.0, avg.PPG, 0.001)
	assert.InDelta(t, 7.0, avg.ReboundsPG, 0.001)
	assert.InDelta(t, 5.0, avg.AssistsPG, 0.001)
	assert.InDelta(t, stats.Pct(15, 32), avg.FieldGoalPct, 0.001)
}

func TestComputePlayerAveragesAllInactive(t *testing.T) {
	events := []*store.PlayerEvent{
		{Active: false},
		{Active: true, Minutes: 0},
	}

	avg := ComputePlayerAverages(events)
	assert.Zero(t, avg.GamesPlayed)
	assert.Zero(t, avg.PPG)
}
