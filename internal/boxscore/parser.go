// Package boxscore parses provider game summary payloads into typed box
// scores. Parsing is best-effort in the provider package's manner: absent
// blocks are skipped, malformed numbers degrade to zero.
package boxscore

import (
	"strconv"
	"strings"

	"github.com/fortuna/courtside/internal/provider"
)

// CompetitorLine is one side of the summary header.
type CompetitorLine struct {
	TeamID   string
	Score    int
	HasScore bool
	Home     bool
}

// TeamBox is one team's counting stats plus the opponent's score, needed
// for defensive rating.
type TeamBox struct {
	TeamID    string
	Points    int
	OppPoints int

	FieldGoalsMade    int
	FieldGoalsAtt     int
	ThreePointersMade int
	ThreePointersAtt  int
	FreeThrowsMade    int
	FreeThrowsAtt     int
	Rebounds          int
	OffRebounds       int
	DefRebounds       int
	Assists           int
	Turnovers         int
	Steals            int
	Blocks            int
	Fouls             int
}

// PlayerBox is one player's line.
type PlayerBox struct {
	TeamID    string
	AthleteID string
	Name      string
	Position  string
	Jersey    string
	Starter   bool
	Active    bool
	Minutes   float64

	Points            int
	FieldGoalsMade    int
	FieldGoalsAtt     int
	ThreePointersMade int
	ThreePointersAtt  int
	FreeThrowsMade    int
	FreeThrowsAtt     int
	Rebounds          int
	OffRebounds       int
	DefRebounds       int
	Assists           int
	Turnovers         int
	Steals            int
	Blocks            int
	Fouls             int
	PlusMinus         *int
}

// Summary is a parsed game summary: header status and scores plus
// whatever box score blocks the payload carried. TeamBoxes and
// PlayerBoxes are empty for pre-game summaries.
type Summary struct {
	EventID     string
	State       string
	Detail      string
	Home        CompetitorLine
	Away        CompetitorLine
	TeamBoxes   []TeamBox
	PlayerBoxes []PlayerBox
}

// ParseSummary extracts a Summary from a raw summary payload.
func ParseSummary(payload map[string]interface{}) Summary {
	var summary Summary

	header := provider.ExtractMap(payload, "header")
	summary.EventID = provider.ExtractString(header, "id")
	summary.State, summary.Detail = parseHeaderStatus(header)
	summary.Home, summary.Away = parseHeaderCompetitors(header)

	box := provider.ExtractMap(payload, "boxscore")
	summary.TeamBoxes = parseTeamBoxes(box, summary)
	summary.PlayerBoxes = parsePlayerBoxes(box)

	return summary
}

func parseHeaderStatus(header map[string]interface{}) (string, string) {
	competitions := provider.ExtractArray(header, "competitions")
	if len(competitions) == 0 {
		return "", ""
	}
	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return "", ""
	}
	return provider.ParseStatus(provider.ExtractMap(comp, "status"))
}

func parseHeaderCompetitors(header map[string]interface{}) (home, away CompetitorLine) {
	competitions := provider.ExtractArray(header, "competitions")
	if len(competitions) == 0 {
		return
	}
	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return
	}

	for _, raw := range provider.ExtractArray(comp, "competitors") {
		competitor, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		line := CompetitorLine{TeamID: provider.ExtractString(competitor, "id")}
		if line.TeamID == "" {
			line.TeamID = provider.ExtractString(provider.ExtractMap(competitor, "team"), "id")
		}
		if scoreStr := provider.ExtractString(competitor, "score"); scoreStr != "" {
			line.Score = provider.ParseInt(scoreStr)
			line.HasScore = true
		}

		switch provider.ExtractString(competitor, "homeAway") {
		case "home":
			line.Home = true
			home = line
		case "away":
			away = line
		}
	}
	return
}

func parseTeamBoxes(box map[string]interface{}, summary Summary) []TeamBox {
	var boxes []TeamBox
	for _, raw := range provider.ExtractArray(box, "teams") {
		teamBlock, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		teamID := provider.ExtractString(provider.ExtractMap(teamBlock, "team"), "id")
		if teamID == "" {
			continue
		}

		parsed := TeamBox{TeamID: teamID}
		for _, rawStat := range provider.ExtractArray(teamBlock, "statistics") {
			stat, ok := rawStat.(map[string]interface{})
			if !ok {
				continue
			}
			applyTeamStat(&parsed, stat)
		}

		// Points and opponent points come from the header scores; the
		// team stats block doesn't reliably carry totals.
		switch teamID {
		case summary.Home.TeamID:
			parsed.Points = summary.Home.Score
			parsed.OppPoints = summary.Away.Score
		case summary.Away.TeamID:
			parsed.Points = summary.Away.Score
			parsed.OppPoints = summary.Home.Score
		}

		boxes = append(boxes, parsed)
	}
	return boxes
}

func applyTeamStat(box *TeamBox, stat map[string]interface{}) {
	name := provider.ExtractString(stat, "name")
	value := provider.ExtractString(stat, "displayValue")

	switch name {
	case "fieldGoalsMade-fieldGoalsAttempted":
		box.FieldGoalsMade, box.FieldGoalsAtt = splitMadeAttempted(value)
	case "threePointFieldGoalsMade-threePointFieldGoalsAttempted":
		box.ThreePointersMade, box.ThreePointersAtt = splitMadeAttempted(value)
	case "freeThrowsMade-freeThrowsAttempted":
		box.FreeThrowsMade, box.FreeThrowsAtt = splitMadeAttempted(value)
	case "totalRebounds":
		box.Rebounds = provider.ParseInt(value)
	case "offensiveRebounds":
		box.OffRebounds = provider.ParseInt(value)
	case "defensiveRebounds":
		box.DefRebounds = provider.ParseInt(value)
	case "assists":
		box.Assists = provider.ParseInt(value)
	case "turnovers", "totalTurnovers":
		box.Turnovers = provider.ParseInt(value)
	case "steals":
		box.Steals = provider.ParseInt(value)
	case "blocks":
		box.Blocks = provider.ParseInt(value)
	case "fouls", "totalFouls":
		box.Fouls = provider.ParseInt(value)
	}
}

func parsePlayerBoxes(box map[string]interface{}) []PlayerBox {
	var boxes []PlayerBox
	for _, raw := range provider.ExtractArray(box, "players") {
		teamBlock, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		teamID := provider.ExtractString(provider.ExtractMap(teamBlock, "team"), "id")
		if teamID == "" {
			continue
		}

		statistics := provider.ExtractArray(teamBlock, "statistics")
		if len(statistics) == 0 {
			continue
		}
		statBlock, ok := statistics[0].(map[string]interface{})
		if !ok {
			continue
		}

		keys := statKeys(statBlock)
		for _, rawAthlete := range provider.ExtractArray(statBlock, "athletes") {
			entry, ok := rawAthlete.(map[string]interface{})
			if !ok {
				continue
			}
			player, ok := parseAthleteLine(entry, keys)
			if !ok {
				continue
			}
			player.TeamID = teamID
			boxes = append(boxes, player)
		}
	}
	return boxes
}

func statKeys(statBlock map[string]interface{}) []string {
	raw := provider.ExtractArray(statBlock, "keys")
	if len(raw) == 0 {
		raw = provider.ExtractArray(statBlock, "names")
	}

	keys := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			keys = append(keys, s)
		}
	}
	return keys
}

func parseAthleteLine(entry map[string]interface{}, keys []string) (PlayerBox, bool) {
	athlete := provider.ExtractMap(entry, "athlete")
	player := PlayerBox{
		AthleteID: provider.ExtractString(athlete, "id"),
		Name:      provider.ExtractString(athlete, "displayName"),
		Position:  provider.ExtractString(provider.ExtractMap(athlete, "position"), "abbreviation"),
		Jersey:    provider.ExtractString(athlete, "jersey"),
		Starter:   provider.ExtractBool(entry, "starter"),
		Active:    !provider.ExtractBool(entry, "didNotPlay"),
	}
	if player.AthleteID == "" {
		return player, false
	}

	stats := provider.ExtractArray(entry, "stats")
	for i, key := range keys {
		if i >= len(stats) {
			break
		}
		value, ok := stats[i].(string)
		if !ok {
			continue
		}
		applyPlayerStat(&player, key, value)
	}
	return player, true
}

func applyPlayerStat(player *PlayerBox, key, value string) {
	switch key {
	case "minutes":
		player.Minutes = parseMinutes(value)
	case "fieldGoalsMade-fieldGoalsAttempted":
		player.FieldGoalsMade, player.FieldGoalsAtt = splitMadeAttempted(value)
	case "threePointFieldGoalsMade-threePointFieldGoalsAttempted":
		player.ThreePointersMade, player.ThreePointersAtt = splitMadeAttempted(value)
	case "freeThrowsMade-freeThrowsAttempted":
		player.FreeThrowsMade, player.FreeThrowsAtt = splitMadeAttempted(value)
	case "rebounds", "totalRebounds":
		player.Rebounds = provider.ParseInt(value)
	case "offensiveRebounds":
		player.OffRebounds = provider.ParseInt(value)
	case "defensiveRebounds":
		player.DefRebounds = provider.ParseInt(value)
	case "assists":
		player.Assists = provider.ParseInt(value)
	case "turnovers":
		player.Turnovers = provider.ParseInt(value)
	case "steals":
		player.Steals = provider.ParseInt(value)
	case "blocks":
		player.Blocks = provider.ParseInt(value)
	case "fouls":
		player.Fouls = provider.ParseInt(value)
	case "points":
		player.Points = provider.ParseInt(value)
	case "plusMinus":
		if pm, err := strconv.Atoi(strings.TrimPrefix(value, "+")); err == nil {
			player.PlusMinus = &pm
		}
	}
}

// splitMadeAttempted parses "38-85" pairs. Anything malformed yields
// (0, 0) rather than a partial read.
func splitMadeAttempted(value string) (int, int) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	made, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	att, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return made, att
}

// parseMinutes handles both "34" and "34:30" minute formats.
func parseMinutes(value string) float64 {
	if value == "" {
		return 0
	}
	if strings.Contains(value, ":") {
		parts := strings.SplitN(value, ":", 2)
		mins, err1 := strconv.Atoi(parts[0])
		secs, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0
		}
		return float64(mins) + float64(secs)/60
	}
	mins, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return mins
}
