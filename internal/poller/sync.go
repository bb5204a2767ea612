package poller

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtside/internal/boxscore"
	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/stats"
	"github.com/fortuna/courtside/internal/store"
)

// syncBoxScore writes the summary's team and player box scores. Team
// blocks for teams we don't know are skipped; unknown players are
// created on the fly so mid-season call-ups still get lines.
func (p *Poller) syncBoxScore(ctx context.Context, lg league.League, game *store.GameEvent, summary boxscore.Summary) error {
	teamIDs := make(map[string]int, 2)

	for _, box := range summary.TeamBoxes {
		team, err := p.teams.GetByExternal(ctx, lg.Code, box.TeamID, game.Season)
		if err != nil {
			p.log.Warnw("skipping team box for unknown team",
				"league", lg.Code, "game", game.ExternalID, "team", box.TeamID)
			continue
		}
		teamIDs[box.TeamID] = team.TeamID

		if err := p.events.UpsertTeamEvent(ctx, buildTeamEvent(game.GameEventID, team.TeamID, box)); err != nil {
			return err
		}
	}

	for _, box := range summary.PlayerBoxes {
		teamID, ok := teamIDs[box.TeamID]
		if !ok {
			continue
		}

		playerID, err := p.resolvePlayer(ctx, lg, game.Season, teamID, box)
		if err != nil {
			return err
		}

		if err := p.events.UpsertPlayerEvent(ctx, buildPlayerEvent(game.GameEventID, playerID, teamID, box)); err != nil {
			return err
		}
	}

	return nil
}

// resolvePlayer finds the player row for a box line, creating it from
// the line's athlete metadata when the roster sync hasn't seen them.
func (p *Poller) resolvePlayer(ctx context.Context, lg league.League, season string, teamID int, box boxscore.PlayerBox) (int, error) {
	player, err := p.players.GetByExternal(ctx, lg.Code, box.AthleteID, season)
	if err == nil {
		return player.PlayerID, nil
	}

	playerID, err := p.players.Upsert(ctx, &store.Player{
		League:     lg.Code,
		ExternalID: box.AthleteID,
		Season:     season,
		TeamID:     sql.NullInt32{Int32: int32(teamID), Valid: true},
		Name:       box.Name,
		Position:   box.Position,
		Jersey:     box.Jersey,
		Active:     true,
	})
	if err != nil {
		return 0, fmt.Errorf("creating player from box score: %w", err)
	}
	return playerID, nil
}

func buildTeamEvent(gameEventID, teamID int, box boxscore.TeamBox) *store.TeamEvent {
	possessions := stats.Possessions(box.FieldGoalsAtt, box.FreeThrowsAtt, box.OffRebounds, box.Turnovers)
	ortg := stats.OffensiveRating(box.Points, possessions)
	drtg := stats.DefensiveRating(box.OppPoints, possessions)

	return &store.TeamEvent{
		GameEventID:       gameEventID,
		TeamID:            teamID,
		Points:            box.Points,
		FieldGoalsMade:    box.FieldGoalsMade,
		FieldGoalsAtt:     box.FieldGoalsAtt,
		ThreePointersMade: box.ThreePointersMade,
		ThreePointersAtt:  box.ThreePointersAtt,
		FreeThrowsMade:    box.FreeThrowsMade,
		FreeThrowsAtt:     box.FreeThrowsAtt,
		Rebounds:          box.Rebounds,
		OffRebounds:       box.OffRebounds,
		DefRebounds:       box.DefRebounds,
		Assists:           box.Assists,
		Turnovers:         box.Turnovers,
		Steals:            box.Steals,
		Blocks:            box.Blocks,
		Fouls:             box.Fouls,
		Pace:              stats.Round1(possessions),
		OffensiveRating:   stats.Round1(ortg),
		DefensiveRating:   stats.Round1(drtg),
		NetRating:         stats.Round1(stats.NetRating(ortg, drtg)),
		EffectiveFGPct:    stats.Round1(stats.EffectiveFieldGoalPct(box.FieldGoalsMade, box.ThreePointersMade, box.FieldGoalsAtt)),
		TrueShootingPct:   stats.Round1(stats.TrueShootingPct(box.Points, box.FieldGoalsAtt, box.FreeThrowsAtt)),
	}
}

func buildPlayerEvent(gameEventID, playerID, teamID int, box boxscore.PlayerBox) *store.PlayerEvent {
	event := &store.PlayerEvent{
		GameEventID:       gameEventID,
		PlayerID:          playerID,
		TeamID:            teamID,
		Starter:           box.Starter,
		Active:            box.Active,
		Minutes:           box.Minutes,
		Points:            box.Points,
		FieldGoalsMade:    box.FieldGoalsMade,
		FieldGoalsAtt:     box.FieldGoalsAtt,
		ThreePointersMade: box.ThreePointersMade,
		ThreePointersAtt:  box.ThreePointersAtt,
		FreeThrowsMade:    box.FreeThrowsMade,
		FreeThrowsAtt:     box.FreeThrowsAtt,
		Rebounds:          box.Rebounds,
		OffRebounds:       box.OffRebounds,
		DefRebounds:       box.DefRebounds,
		Assists:           box.Assists,
		Turnovers:         box.Turnovers,
		Steals:            box.Steals,
		Blocks:            box.Blocks,
		Fouls:             box.Fouls,
	}
	if box.PlusMinus != nil {
		event.PlusMinus = sql.NullInt32{Int32: int32(*box.PlusMinus), Valid: true}
	}
	return event
}
