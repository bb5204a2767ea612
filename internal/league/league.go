package league

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/provider"
)

// League parameterizes the ingestion pipeline for one competition. The
// three leagues share every code path; differences are confined to this
// value and its StandingsSource strategy.
type League struct {
	Code             string
	Name             string
	SportPath        string
	SingleYearSeason bool
	Standings        StandingsSource
}

// StandingsSource abstracts where a league's standings come from. The
// development league publishes no JSON standings endpoint, only an HTML
// table, so it gets its own implementation.
type StandingsSource interface {
	Fetch(ctx context.Context, client *provider.Client) (map[string]provider.Standing, error)
}

// CurrentSeason returns the season identifier for this league at the
// given time.
func (l League) CurrentSeason(now time.Time) string {
	return config.CurrentSeason(now, l.SingleYearSeason)
}

var registry = map[string]League{
	"nba": {
		Code:      "nba",
		Name:      "NBA",
		SportPath: "basketball/nba",
		Standings: apiStandings{sportPath: "basketball/nba"},
	},
	"wnba": {
		Code:             "wnba",
		Name:             "WNBA",
		SportPath:        "basketball/wnba",
		SingleYearSeason: true,
		Standings:        apiStandings{sportPath: "basketball/wnba"},
	},
	"gleague": {
		Code:      "gleague",
		Name:      "G League",
		SportPath: "basketball/nba-development",
		Standings: htmlStandings{url: "https://gleague.nba.com/standings"},
	},
}

// Get looks up a league by code.
func Get(code string) (League, error) {
	l, ok := registry[code]
	if !ok {
		return League{}, fmt.Errorf("unknown league %q", code)
	}
	return l, nil
}

// All returns the leagues for the given codes, failing on any unknown code.
func All(codes []string) ([]League, error) {
	leagues := make([]League, 0, len(codes))
	for _, code := range codes {
		l, err := Get(code)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}

// apiStandings reads the provider's JSON standings endpoint.
type apiStandings struct {
	sportPath string
}

func (s apiStandings) Fetch(ctx context.Context, client *provider.Client) (map[string]provider.Standing, error) {
	payload, err := client.FetchStandings(ctx, s.sportPath)
	if err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}
	return provider.ParseStandings(payload), nil
}
