package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentSeasonTwoYear(t *testing.T) {
	// Season rolls over in October.
	assert.Equal(t, "2025-26", CurrentSeason(time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), false))
	assert.Equal(t, "2025-26", CurrentSeason(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), false))
	assert.Equal(t, "2024-25", CurrentSeason(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), false))
	assert.Equal(t, "2024-25", CurrentSeason(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), false))
}

func TestCurrentSeasonSingleYear(t *testing.T) {
	assert.Equal(t, "2025", CurrentSeason(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), true))
	assert.Equal(t, "2026", CurrentSeason(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), true))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"nba", "wnba", "gleague"}, splitCSV("nba, wnba ,gleague"))
	assert.Nil(t, splitCSV(" , ,"))
}
