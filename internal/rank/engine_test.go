package rank

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/store"
)

func f(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func TestAssignRanksDescending(t *testing.T) {
	teams := []*store.Team{
		{PPG: f(110)},
		{PPG: f(118)},
		{PPG: f(114)},
	}

	assignRanks(teams, statDefs[0])

	assert.Equal(t, int32(3), teams[0].PPGRank.Int32)
	assert.Equal(t, int32(1), teams[1].PPGRank.Int32)
	assert.Equal(t, int32(2), teams[2].PPGRank.Int32)
}

func TestAssignRanksAscending(t *testing.T) {
	// Fewest opponent points ranks first.
	teams := []*store.Team{
		{OppPPG: f(112)},
		{OppPPG: f(104)},
		{OppPPG: f(108)},
	}

	assignRanks(teams, statDefs[1])

	assert.Equal(t, int32(3), teams[0].OppPPGRank.Int32)
	assert.Equal(t, int32(1), teams[1].OppPPGRank.Int32)
	assert.Equal(t, int32(2), teams[2].OppPPGRank.Int32)
}

func TestAssignRanksTies(t *testing.T) {
	teams := []*store.Team{
		{PPG: f(110)},
		{PPG: f(114)},
		{PPG: f(114)},
		{PPG: f(108)},
	}

	assignRanks(teams, statDefs[0])

	assert.Equal(t, int32(1), teams[1].PPGRank.Int32)
	assert.Equal(t, int32(1), teams[2].PPGRank.Int32)
	assert.Equal(t, int32(3), teams[0].PPGRank.Int32)
	assert.Equal(t, int32(4), teams[3].PPGRank.Int32)
}

func TestAssignRanksMissingStat(t *testing.T) {
	teams := []*store.Team{
		{ThreePointPct: f(37.5)},
		{},
		{ThreePointPct: f(0)},
	}

	var def statDef
	for _, d := range statDefs {
		if d.name == "three_point_pct" {
			def = d
		}
	}
	require.NotNil(t, def.value)

	assignRanks(teams, def)

	assert.True(t, teams[0].ThreePctRank.Valid)
	assert.Equal(t, int32(1), teams[0].ThreePctRank.Int32)
	assert.False(t, teams[1].ThreePctRank.Valid)
	assert.False(t, teams[2].ThreePctRank.Valid)
}

func TestAssignRanksNegativeNetRating(t *testing.T) {
	teams := []*store.Team{
		{NetRating: f(-4.2)},
		{NetRating: f(6.1)},
		{NetRating: f(0)},
	}

	var def statDef
	for _, d := range statDefs {
		if d.name == "net_rating" {
			def = d
		}
	}

	assignRanks(teams, def)

	assert.Equal(t, int32(1), teams[1].NetRtgRank.Int32)
	assert.Equal(t, int32(2), teams[2].NetRtgRank.Int32)
	assert.Equal(t, int32(3), teams[0].NetRtgRank.Int32)
}
