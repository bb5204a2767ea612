package boxscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryPayload() map[string]interface{} {
	return map[string]interface{}{
		"header": map[string]interface{}{
			"id": "401766123",
			"competitions": []interface{}{
				map[string]interface{}{
					"status": map[string]interface{}{
						"type": map[string]interface{}{
							"state":  "post",
							"detail": "Final",
						},
					},
					"competitors": []interface{}{
						map[string]interface{}{
							"id": "13", "homeAway": "home", "score": "110",
						},
						map[string]interface{}{
							"id": "25", "homeAway": "away", "score": "102",
						},
					},
				},
			},
		},
		"boxscore": map[string]interface{}{
			"teams": []interface{}{
				map[string]interface{}{
					"team": map[string]interface{}{"id": "13"},
					"statistics": []interface{}{
						map[string]interface{}{"name": "fieldGoalsMade-fieldGoalsAttempted", "displayValue": "38-85"},
						map[string]interface{}{"name": "threePointFieldGoalsMade-threePointFieldGoalsAttempted", "displayValue": "12-34"},
						map[string]interface{}{"name": "freeThrowsMade-freeThrowsAttempted", "displayValue": "22-26"},
						map[string]interface{}{"name": "totalRebounds", "displayValue": "44"},
						map[string]interface{}{"name": "offensiveRebounds", "displayValue": "10"},
						map[string]interface{}{"name": "defensiveRebounds", "displayValue": "34"},
						map[string]interface{}{"name": "assists", "displayValue": "25"},
						map[string]interface{}{"name": "turnovers", "displayValue": "14"},
						map[string]interface{}{"name": "steals", "displayValue": "7"},
						map[string]interface{}{"name": "blocks", "displayValue": "5"},
						map[string]interface{}{"name": "fouls", "displayValue": "18"},
					},
				},
			},
			"players": []interface{}{
				map[string]interface{}{
					"team": map[string]interface{}{"id": "13"},
					"statistics": []interface{}{
						map[string]interface{}{
							"keys": []interface{}{
								"minutes",
								"fieldGoalsMade-fieldGoalsAttempted",
								"rebounds",
								"assists",
								"plusMinus",
								"points",
							},
							"athletes": []interface{}{
								map[string]interface{}{
									"athlete": map[string]interface{}{
										"id":          "3945274",
										"displayName": "Luka Doncic",
										"jersey":      "77",
										"position":    map[string]interface{}{"abbreviation": "PG"},
									},
									"starter": true,
									"stats":   []interface{}{"36:30", "11-22", "9", "8", "+12", "32"},
								},
								map[string]interface{}{
									"athlete": map[string]interface{}{
										"id":          "4066218",
										"displayName": "Bench Guy",
									},
									"didNotPlay": true,
									"stats":      []interface{}{},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestParseSummary(t *testing.T) {
	summary := ParseSummary(summaryPayload())

	assert.Equal(t, "401766123", summary.EventID)
	assert.Equal(t, "post", summary.State)
	assert.Equal(t, "Final", summary.Detail)

	assert.Equal(t, "13", summary.Home.TeamID)
	assert.Equal(t, 110, summary.Home.Score)
	assert.True(t, summary.Home.HasScore)
	assert.Equal(t, "25", summary.Away.TeamID)
	assert.Equal(t, 102, summary.Away.Score)

	require.Len(t, summary.TeamBoxes, 1)
	team := summary.TeamBoxes[0]
	assert.Equal(t, "13", team.TeamID)
	assert.Equal(t, 110, team.Points)
	assert.Equal(t, 102, team.OppPoints)
	assert.Equal(t, 38, team.FieldGoalsMade)
	assert.Equal(t, 85, team.FieldGoalsAtt)
	assert.Equal(t, 12, team.ThreePointersMade)
	assert.Equal(t, 22, team.FreeThrowsMade)
	assert.Equal(t, 26, team.FreeThrowsAtt)
	assert.Equal(t, 44, team.Rebounds)
	assert.Equal(t, 10, team.OffRebounds)
	assert.Equal(t, 14, team.Turnovers)
	assert.Equal(t, 18, team.Fouls)
}

func TestParseSummaryPlayers(t *testing.T) {
	summary := ParseSummary(summaryPayload())

	require.Len(t, summary.PlayerBoxes, 2)

	starter := summary.PlayerBoxes[0]
	assert.Equal(t, "3945274", starter.AthleteID)
	assert.Equal(t, "Luka Doncic", starter.Name)
	assert.Equal(t, "PG", starter.Position)
	assert.True(t, starter.Starter)
	assert.True(t, starter.Active)
	assert.InDelta(t, 36.5, starter.Minutes, 0.001)
	assert.Equal(t, 11, starter.FieldGoalsMade)
	assert.Equal(t, 22, starter.FieldGoalsAtt)
	assert.Equal(t, 9, starter.Rebounds)
	assert.Equal(t, 32, starter.Points)
	require.NotNil(t, starter.PlusMinus)
	assert.Equal(t, 12, *starter.PlusMinus)

	dnp := summary.PlayerBoxes[1]
	assert.False(t, dnp.Active)
	assert.Zero(t, dnp.Minutes)
}

func TestParseSummaryPreGame(t *testing.T) {
	payload := map[string]interface{}{
		"header": map[string]interface{}{
			"id": "401766999",
			"competitions": []interface{}{
				map[string]interface{}{
					"status": map[string]interface{}{
						"type": map[string]interface{}{"state": "pre", "detail": "Sat, November 15th at 7:00 PM EST"},
					},
					"competitors": []interface{}{
						map[string]interface{}{"id": "13", "homeAway": "home"},
						map[string]interface{}{"id": "25", "homeAway": "away"},
					},
				},
			},
		},
	}

	summary := ParseSummary(payload)
	assert.Equal(t, "pre", summary.State)
	assert.False(t, summary.Home.HasScore)
	assert.Empty(t, summary.TeamBoxes)
	assert.Empty(t, summary.PlayerBoxes)
}

func TestSplitMadeAttempted(t *testing.T) {
	made, att := splitMadeAttempted("38-85")
	assert.Equal(t, 38, made)
	assert.Equal(t, 85, att)

	made, att = splitMadeAttempted("garbage")
	assert.Zero(t, made)
	assert.Zero(t, att)

	made, att = splitMadeAttempted("38-")
	assert.Zero(t, made)
	assert.Zero(t, att)
}

func TestParseMinutes(t *testing.T) {
	assert.InDelta(t, 34.0, parseMinutes("34"), 0.001)
	assert.InDelta(t, 34.5, parseMinutes("34:30"), 0.001)
	assert.Zero(t, parseMinutes(""))
	assert.Zero(t, parseMinutes("DNP"))
}
