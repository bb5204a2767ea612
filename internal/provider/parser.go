package provider

import (
	"strings"
	"time"
)

// Competitor is one side of a scoreboard event.
type Competitor struct {
	TeamID       string
	Name         string
	Abbreviation string
	Location     string
	Score        int
	HasScore     bool
}

// ScoreboardEvent is one game from a scoreboard response.
type ScoreboardEvent struct {
	ID        string
	StartTime time.Time
	State     string
	Detail    string
	Venue     string
	Home      Competitor
	Away      Competitor
}

// Standing is one team's row from a standings response.
type Standing struct {
	TeamID         string
	Conference     string
	ConferenceRank int
	Wins           int
	Losses         int
	HomeRecord     string
	AwayRecord     string
	LastTenRecord  string
	PointsFor      float64
	PointsAgainst  float64
}

// RosterPlayer is one athlete from a roster response.
type RosterPlayer struct {
	ID        string
	Name      string
	Position  string
	Jersey    string
	Height    string
	Weight    int
	BirthDate *time.Time
}

// ParseScoreboard extracts events from a scoreboard payload. Events that
// are missing both competitors are skipped; everything else is parsed
// best-effort.
func ParseScoreboard(payload map[string]interface{}) []ScoreboardEvent {
	var events []ScoreboardEvent
	for _, raw := range ExtractArray(payload, "events") {
		event, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		parsed := ScoreboardEvent{
			ID:        ExtractString(event, "id"),
			StartTime: parseEventTime(ExtractString(event, "date")),
		}
		parsed.State, parsed.Detail = parseStatus(ExtractMap(event, "status"))

		competitions := ExtractArray(event, "competitions")
		if len(competitions) == 0 {
			continue
		}
		comp, ok := competitions[0].(map[string]interface{})
		if !ok {
			continue
		}

		parsed.Venue = ExtractString(ExtractMap(comp, "venue"), "fullName")

		for _, rawComp := range ExtractArray(comp, "competitors") {
			competitor, ok := rawComp.(map[string]interface{})
			if !ok {
				continue
			}
			side := parseCompetitor(competitor)
			switch ExtractString(competitor, "homeAway") {
			case "home":
				parsed.Home = side
			case "away":
				parsed.Away = side
			}
		}

		if parsed.Home.TeamID == "" && parsed.Away.TeamID == "" {
			continue
		}
		events = append(events, parsed)
	}
	return events
}

// ParseStatus extracts the raw (state, detail) pair from a status object,
// as found on scoreboard events and summary headers.
func ParseStatus(status map[string]interface{}) (state, detail string) {
	return parseStatus(status)
}

// ParseStandings flattens a conference-grouped standings payload into a
// lookup by external team id.
func ParseStandings(payload map[string]interface{}) map[string]Standing {
	standings := make(map[string]Standing)

	for _, rawGroup := range ExtractArray(payload, "children") {
		group, ok := rawGroup.(map[string]interface{})
		if !ok {
			continue
		}
		conference := ExtractString(group, "name")
		if conference == "" {
			conference = ExtractString(group, "abbreviation")
		}

		entries := ExtractArray(ExtractMap(group, "standings"), "entries")
		for _, rawEntry := range entries {
			entry, ok := rawEntry.(map[string]interface{})
			if !ok {
				continue
			}

			team := ExtractMap(entry, "team")
			standing := Standing{
				TeamID:     ExtractString(team, "id"),
				Conference: conference,
			}
			if standing.TeamID == "" {
				continue
			}

			for _, rawStat := range ExtractArray(entry, "stats") {
				stat, ok := rawStat.(map[string]interface{})
				if !ok {
					continue
				}
				applyStandingStat(&standing, stat)
			}

			standings[standing.TeamID] = standing
		}
	}

	return standings
}

// ParseRoster extracts athletes from a roster payload.
func ParseRoster(payload map[string]interface{}) []RosterPlayer {
	var players []RosterPlayer
	for _, rawAthlete := range ExtractArray(payload, "athletes") {
		athlete, ok := rawAthlete.(map[string]interface{})
		if !ok {
			continue
		}

		player := RosterPlayer{
			ID:       ExtractString(athlete, "id"),
			Name:     ExtractString(athlete, "fullName"),
			Position: ExtractString(ExtractMap(athlete, "position"), "abbreviation"),
			Jersey:   ExtractString(athlete, "jersey"),
			Height:   ExtractString(athlete, "displayHeight"),
			Weight:   int(ExtractFloat(athlete, "weight")),
		}
		if player.Name == "" {
			player.Name = ExtractString(athlete, "displayName")
		}
		if dob := ExtractString(athlete, "dateOfBirth"); dob != "" {
			if ts := parseEventTime(dob); !ts.IsZero() {
				player.BirthDate = &ts
			}
		}
		if player.ID == "" || player.Name == "" {
			continue
		}
		players = append(players, player)
	}
	return players
}

func parseCompetitor(competitor map[string]interface{}) Competitor {
	team := ExtractMap(competitor, "team")
	side := Competitor{
		TeamID:       ExtractString(team, "id"),
		Name:         ExtractString(team, "displayName"),
		Abbreviation: strings.ToUpper(ExtractString(team, "abbreviation")),
		Location:     ExtractString(team, "location"),
	}
	if scoreStr := ExtractString(competitor, "score"); scoreStr != "" {
		side.Score = ParseInt(scoreStr)
		side.HasScore = true
	}
	return side
}

func parseStatus(status map[string]interface{}) (string, string) {
	statusType := ExtractMap(status, "type")
	state := ExtractString(statusType, "state")
	detail := ExtractString(statusType, "detail")
	if detail == "" {
		detail = ExtractString(statusType, "shortDetail")
	}
	if detail == "" {
		detail = ExtractString(statusType, "description")
	}
	return state, detail
}

func parseEventTime(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return ts
	}
	// The provider sometimes omits seconds: "2025-11-15T01:00Z"
	if ts, err := time.Parse("2006-01-02T15:04Z", dateStr); err == nil {
		return ts
	}
	return time.Time{}
}

func applyStandingStat(standing *Standing, stat map[string]interface{}) {
	name := ExtractString(stat, "name")
	if name == "" {
		name = ExtractString(stat, "type")
	}

	switch name {
	case "wins":
		standing.Wins = int(ExtractFloat(stat, "value"))
	case "losses":
		standing.Losses = int(ExtractFloat(stat, "value"))
	case "playoffSeed", "rank":
		standing.ConferenceRank = int(ExtractFloat(stat, "value"))
	case "avgPointsFor", "pointsFor":
		standing.PointsFor = ExtractFloat(stat, "value")
	case "avgPointsAgainst", "pointsAgainst":
		standing.PointsAgainst = ExtractFloat(stat, "value")
	case "home", "Home":
		standing.HomeRecord = ExtractString(stat, "displayValue")
	case "road", "away", "Road":
		standing.AwayRecord = ExtractString(stat, "displayValue")
	case "lasttengames", "lastTenGames", "L10":
		standing.LastTenRecord = ExtractString(stat, "displayValue")
	}
}
