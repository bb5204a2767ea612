package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPossessions(t *testing.T) {
	// 85 + 0.44*20 - 10 + 14 = 97.8
	assert.InDelta(t, 97.8, Possessions(85, 20, 10, 14), 0.001)
}

func TestRatings(t *testing.T) {
	poss := Possessions(85, 20, 10, 14)

	ortg := OffensiveRating(110, poss)
	drtg := DefensiveRating(102, poss)

	assert.InDelta(t, 112.5, Round1(ortg), 0.01)
	assert.InDelta(t, 104.3, Round1(drtg), 0.01)
	assert.InDelta(t, 8.2, Round1(NetRating(ortg, drtg)), 0.01)
}

func TestRatingsZeroPossessions(t *testing.T) {
	assert.Zero(t, OffensiveRating(110, 0))
	assert.Zero(t, DefensiveRating(102, 0))
	assert.Zero(t, OffensiveRating(110, -3))
}

func TestEffectiveFieldGoalPct(t *testing.T) {
	// (38 + 0.5*12) / 85 = 51.76%
	assert.InDelta(t, 51.8, Round1(EffectiveFieldGoalPct(38, 12, 85)), 0.01)
	assert.Zero(t, EffectiveFieldGoalPct(10, 4, 0))
}

func TestTrueShootingPct(t *testing.T) {
	// 110 / (2 * (85 + 8.8)) = 58.64%
	assert.InDelta(t, 58.6, Round1(TrueShootingPct(110, 85, 20)), 0.01)
	assert.Zero(t, TrueShootingPct(0, 0, 0))
}

func TestPctAndRatio(t *testing.T) {
	assert.InDelta(t, 44.7, Round1(Pct(38, 85)), 0.01)
	assert.Zero(t, Pct(5, 0))

	assert.InDelta(t, 1.79, Ratio(25, 14), 0.01)
	assert.Zero(t, Ratio(25, 0))
}
