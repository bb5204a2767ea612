// Package stats implements the advanced-stat formulas used for single-game
// and season-level metrics. All functions are pure and deterministic;
// division by zero degrades to 0. Rounding is the caller's concern.
package stats

import "math"

// Possessions estimates possessions from box-score totals:
// FGA + 0.44*FTA - OREB + TOV.
func Possessions(fga, fta, oreb, tov int) float64 {
	return float64(fga) + 0.44*float64(fta) - float64(oreb) + float64(tov)
}

// OffensiveRating is points scored per 100 possessions.
func OffensiveRating(points int, possessions float64) float64 {
	if possessions <= 0 {
		return 0
	}
	return float64(points) / possessions * 100
}

// DefensiveRating is points allowed per 100 possessions.
func DefensiveRating(opponentPoints int, possessions float64) float64 {
	if possessions <= 0 {
		return 0
	}
	return float64(opponentPoints) / possessions * 100
}

// NetRating is the offensive/defensive rating differential.
func NetRating(offensiveRating, defensiveRating float64) float64 {
	return offensiveRating - defensiveRating
}

// EffectiveFieldGoalPct weights three-point makes:
// (FGM + 0.5*3PM) / FGA * 100.
func EffectiveFieldGoalPct(fgm, threePM, fga int) float64 {
	if fga <= 0 {
		return 0
	}
	return (float64(fgm) + 0.5*float64(threePM)) / float64(fga) * 100
}

// TrueShootingPct accounts for free-throw trips:
// points / (2 * (FGA + 0.44*FTA)) * 100.
func TrueShootingPct(points, fga, fta int) float64 {
	denom := 2 * (float64(fga) + 0.44*float64(fta))
	if denom <= 0 {
		return 0
	}
	return float64(points) / denom * 100
}

// Pct is a plain made/attempted percentage.
func Pct(made, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	return float64(made) / float64(attempted) * 100
}

// Ratio divides two counts, returning 0 for a zero denominator.
func Ratio(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
