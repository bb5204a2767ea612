package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreboard(t *testing.T) {
	payload := map[string]interface{}{
		"events": []interface{}{
			map[string]interface{}{
				"id":   "401766123",
				"date": "2025-11-16T00:00Z",
				"status": map[string]interface{}{
					"type": map[string]interface{}{
						"state":  "pre",
						"detail": "Sat, November 15th at 7:00 PM EST",
					},
				},
				"competitions": []interface{}{
					map[string]interface{}{
						"venue": map[string]interface{}{"fullName": "Madison Square Garden"},
						"competitors": []interface{}{
							map[string]interface{}{
								"homeAway": "home",
								"team": map[string]interface{}{
									"id": "18", "displayName": "New York Knicks",
									"abbreviation": "ny", "location": "New York",
								},
							},
							map[string]interface{}{
								"homeAway": "away",
								"score":    "0",
								"team": map[string]interface{}{
									"id": "2", "displayName": "Boston Celtics",
									"abbreviation": "BOS", "location": "Boston",
								},
							},
						},
					},
				},
			},
			map[string]interface{}{
				"id": "junk-no-competitions",
			},
		},
	}

	events := ParseScoreboard(payload)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "401766123", event.ID)
	assert.Equal(t, time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC), event.StartTime)
	assert.Equal(t, "pre", event.State)
	assert.Equal(t, "Madison Square Garden", event.Venue)

	assert.Equal(t, "18", event.Home.TeamID)
	assert.Equal(t, "NY", event.Home.Abbreviation)
	assert.False(t, event.Home.HasScore)

	assert.Equal(t, "2", event.Away.TeamID)
	assert.True(t, event.Away.HasScore)
	assert.Zero(t, event.Away.Score)
}

func TestParseStandings(t *testing.T) {
	payload := map[string]interface{}{
		"children": []interface{}{
			map[string]interface{}{
				"name": "Eastern Conference",
				"standings": map[string]interface{}{
					"entries": []interface{}{
						map[string]interface{}{
							"team": map[string]interface{}{"id": "2"},
							"stats": []interface{}{
								map[string]interface{}{"name": "wins", "value": float64(10)},
								map[string]interface{}{"name": "losses", "value": float64(3)},
								map[string]interface{}{"name": "playoffSeed", "value": float64(1)},
								map[string]interface{}{"name": "avgPointsFor", "value": 118.4},
								map[string]interface{}{"name": "home", "displayValue": "6-1"},
								map[string]interface{}{"name": "road", "displayValue": "4-2"},
								map[string]interface{}{"name": "lasttengames", "displayValue": "8-2"},
							},
						},
					},
				},
			},
		},
	}

	standings := ParseStandings(payload)
	require.Contains(t, standings, "2")

	s := standings["2"]
	assert.Equal(t, "Eastern Conference", s.Conference)
	assert.Equal(t, 10, s.Wins)
	assert.Equal(t, 3, s.Losses)
	assert.Equal(t, 1, s.ConferenceRank)
	assert.InDelta(t, 118.4, s.PointsFor, 0.001)
	assert.Equal(t, "6-1", s.HomeRecord)
	assert.Equal(t, "4-2", s.AwayRecord)
	assert.Equal(t, "8-2", s.LastTenRecord)
}

func TestParseRoster(t *testing.T) {
	payload := map[string]interface{}{
		"athletes": []interface{}{
			map[string]interface{}{
				"id":            "3945274",
				"fullName":      "Luka Doncic",
				"jersey":        "77",
				"displayHeight": "6' 6\"",
				"weight":        float64(230),
				"dateOfBirth":   "1999-02-28T07:00Z",
				"position":      map[string]interface{}{"abbreviation": "PG"},
			},
			map[string]interface{}{
				"fullName": "no id, skipped",
			},
		},
	}

	players := ParseRoster(payload)
	require.Len(t, players, 1)
	assert.Equal(t, "3945274", players[0].ID)
	assert.Equal(t, "Luka Doncic", players[0].Name)
	assert.Equal(t, "PG", players[0].Position)
	assert.Equal(t, 230, players[0].Weight)
	require.NotNil(t, players[0].BirthDate)
	assert.Equal(t, 1999, players[0].BirthDate.Year())
}

func TestParseEventTimeFallback(t *testing.T) {
	assert.Equal(t, time.Date(2025, 11, 15, 1, 0, 0, 0, time.UTC), parseEventTime("2025-11-15T01:00Z"))
	assert.True(t, parseEventTime("garbage").IsZero())
	assert.True(t, parseEventTime("").IsZero())
}
