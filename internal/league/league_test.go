package league

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	lg, err := Get("nba")
	require.NoError(t, err)
	assert.Equal(t, "basketball/nba", lg.SportPath)
	assert.False(t, lg.SingleYearSeason)

	_, err = Get("nhl")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	leagues, err := All([]string{"nba", "gleague"})
	require.NoError(t, err)
	require.Len(t, leagues, 2)
	assert.Equal(t, "gleague", leagues[1].Code)

	_, err = All([]string{"nba", "bogus"})
	assert.Error(t, err)
}

func TestCurrentSeason(t *testing.T) {
	november := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)

	nba, _ := Get("nba")
	wnba, _ := Get("wnba")

	assert.Equal(t, "2025-26", nba.CurrentSeason(november))
	assert.Equal(t, "2024-25", nba.CurrentSeason(july))
	assert.Equal(t, "2025", wnba.CurrentSeason(july))
}

func TestParseStandingsRow(t *testing.T) {
	html := `
		<table><tbody><tr>
			<td><a href="/team/iowa-wolves/id/42">Iowa Wolves</a></td>
			<td>12</td><td>5</td><td>.706</td>
			<td>7-2</td><td>5-3</td><td>8-2</td>
			<td>112.4</td><td>108.1</td>
		</tr></tbody></table>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	row := doc.Find("tbody tr").First()
	standing, ok := parseStandingsRow(row)
	require.True(t, ok)

	assert.Equal(t, "42", standing.TeamID)
	assert.Equal(t, 12, standing.Wins)
	assert.Equal(t, 5, standing.Losses)
	assert.Equal(t, "7-2", standing.HomeRecord)
	assert.Equal(t, "5-3", standing.AwayRecord)
	assert.Equal(t, "8-2", standing.LastTenRecord)
	assert.InDelta(t, 112.4, standing.PointsFor, 0.001)
	assert.InDelta(t, 108.1, standing.PointsAgainst, 0.001)
}

func TestParseStandingsRowNoTeamLink(t *testing.T) {
	html := `<table><tbody><tr><td>header row</td><td>W</td></tr></tbody></table>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	_, ok := parseStandingsRow(doc.Find("tbody tr").First())
	assert.False(t, ok)
}
