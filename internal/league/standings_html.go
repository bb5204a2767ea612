package league

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/courtside/internal/provider"
)

var teamIDPattern = regexp.MustCompile(`/team/[^/]*/?id/(\d+)`)

// htmlStandings scrapes a standings table from a league site that has no
// JSON standings endpoint. Column layout: team, W, L, PCT, home, road,
// L10, PF, PA — parsed positionally with best-effort fallbacks.
type htmlStandings struct {
	url string
}

func (s htmlStandings) Fetch(ctx context.Context, client *provider.Client) (map[string]provider.Standing, error) {
	body, err := client.FetchHTML(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch standings page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse standings page: %w", err)
	}

	standings := make(map[string]provider.Standing)
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		conference := strings.TrimSpace(table.Find("caption").Text())
		rank := 0
		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			standing, ok := parseStandingsRow(row)
			if !ok {
				return
			}
			rank++
			standing.Conference = conference
			standing.ConferenceRank = rank
			standings[standing.TeamID] = standing
		})
	})

	if len(standings) == 0 {
		return nil, fmt.Errorf("no standings rows found at %s", s.url)
	}
	return standings, nil
}

func parseStandingsRow(row *goquery.Selection) (provider.Standing, bool) {
	var standing provider.Standing

	row.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if match := teamIDPattern.FindStringSubmatch(href); match != nil {
			standing.TeamID = match[1]
			return false
		}
		return true
	})
	if standing.TeamID == "" {
		return standing, false
	}

	cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
		return strings.TrimSpace(cell.Text())
	})
	// First cell is the team name; counting columns follow.
	if len(cells) > 1 {
		standing.Wins, _ = strconv.Atoi(cells[1])
	}
	if len(cells) > 2 {
		standing.Losses, _ = strconv.Atoi(cells[2])
	}
	if len(cells) > 4 {
		standing.HomeRecord = cells[4]
	}
	if len(cells) > 5 {
		standing.AwayRecord = cells[5]
	}
	if len(cells) > 6 {
		standing.LastTenRecord = cells[6]
	}
	if len(cells) > 7 {
		standing.PointsFor, _ = strconv.ParseFloat(cells[7], 64)
	}
	if len(cells) > 8 {
		standing.PointsAgainst, _ = strconv.ParseFloat(cells[8], 64)
	}

	return standing, true
}
