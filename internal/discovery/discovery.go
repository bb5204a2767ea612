// Package discovery ingests each league's daily schedule: teams merged
// with current standings, the day's game events, and the scheduled
// checks that later drive the polling lifecycle.
package discovery

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/poller"
	"github.com/fortuna/courtside/internal/provider"
	"github.com/fortuna/courtside/internal/scheduler"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// taskScheduler is the slice of the scheduler discovery uses.
type taskScheduler interface {
	ScheduleAt(ctx context.Context, taskType string, payload interface{}, runAt time.Time) (int64, error)
	HasQueued(ctx context.Context, taskType string, payload interface{}) (bool, error)
}

// Service discovers games and teams for one or more leagues.
type Service struct {
	provider *provider.Client
	teams    *repository.TeamRepository
	games    *repository.GameRepository
	players  *repository.PlayerRepository
	sched    taskScheduler
	log      *zap.SugaredLogger
}

// NewService creates a discovery service.
func NewService(client *provider.Client, teams *repository.TeamRepository, games *repository.GameRepository, players *repository.PlayerRepository, sched *scheduler.Scheduler, logger *zap.SugaredLogger) *Service {
	return &Service{
		provider: client,
		teams:    teams,
		games:    games,
		players:  players,
		sched:    sched,
		log:      logger,
	}
}

// FirstCheckTime returns when a game's first status check should run.
func FirstCheckTime(startTime time.Time) time.Time {
	return startTime.Add(poller.FirstCheckDelay)
}

// Run discovers one league's games for a date. A zero date uses the
// provider's "today" window. Standings failures are tolerated: teams
// are still upserted from the scoreboard, just without standings data.
func (s *Service) Run(ctx context.Context, lg league.League, date time.Time) error {
	season := lg.CurrentSeason(time.Now())

	standings, err := lg.Standings.Fetch(ctx, s.provider)
	if err != nil {
		s.log.Warnw("standings fetch failed, continuing without standings",
			"league", lg.Code, "error", err)
		standings = nil
	}

	payload, err := s.provider.FetchScoreboard(ctx, lg.SportPath, date)
	if err != nil {
		return fmt.Errorf("fetching scoreboard: %w", err)
	}

	events := provider.ParseScoreboard(payload)
	s.log.Infow("discovered games", "league", lg.Code, "date", date.Format("2006-01-02"), "games", len(events))

	for _, event := range events {
		if err := s.ingestEvent(ctx, lg, season, event, standings); err != nil {
			s.log.Errorw("failed to ingest game", "league", lg.Code, "game", event.ID, "error", err)
		}
	}
	return nil
}

func (s *Service) ingestEvent(ctx context.Context, lg league.League, season string, event provider.ScoreboardEvent, standings map[string]provider.Standing) error {
	homeID, err := s.upsertTeam(ctx, lg, season, event.Home, standings)
	if err != nil {
		return err
	}
	awayID, err := s.upsertTeam(ctx, lg, season, event.Away, standings)
	if err != nil {
		return err
	}

	status := poller.Classify(event.State, event.Detail)
	if status == store.StatusUnknown {
		// A brand-new game with an unrecognized state starts as
		// scheduled; the poller sorts it out later.
		status = store.StatusScheduled
	}
	game := &store.GameEvent{
		League:       lg.Code,
		ExternalID:   event.ID,
		Season:       season,
		HomeTeamID:   homeID,
		AwayTeamID:   awayID,
		StartTime:    event.StartTime,
		Status:       status,
		StatusDetail: event.Detail,
		Venue:        event.Venue,
	}
	if event.Home.HasScore {
		game.HomeScore = nullInt32(event.Home.Score)
	}
	if event.Away.HasScore {
		game.AwayScore = nullInt32(event.Away.Score)
	}

	if _, err := s.games.Upsert(ctx, game); err != nil {
		return err
	}

	if status == store.StatusScheduled && !event.StartTime.IsZero() {
		if err := s.scheduleFirstCheck(ctx, lg, event); err != nil {
			return fmt.Errorf("scheduling first check: %w", err)
		}
	}
	return nil
}

// scheduleFirstCheck enqueues a game's first status check unless a check
// for it is already queued. Re-running discovery over the same schedule,
// or restarting on game day, must not spawn a second polling chain that
// splits the game's check budget.
func (s *Service) scheduleFirstCheck(ctx context.Context, lg league.League, event provider.ScoreboardEvent) error {
	check := poller.CheckPayload{League: lg.Code, ExternalGameID: event.ID}

	queued, err := s.sched.HasQueued(ctx, poller.TaskGameCheck, check)
	if err != nil {
		return err
	}
	if queued {
		s.log.Debugw("first check already queued", "league", lg.Code, "game", event.ID)
		return nil
	}

	_, err = s.sched.ScheduleAt(ctx, poller.TaskGameCheck, check, FirstCheckTime(event.StartTime))
	return err
}

func (s *Service) upsertTeam(ctx context.Context, lg league.League, season string, competitor provider.Competitor, standings map[string]provider.Standing) (int, error) {
	if competitor.TeamID == "" {
		return 0, fmt.Errorf("scoreboard competitor missing team id")
	}

	team := &store.Team{
		League:       lg.Code,
		ExternalID:   competitor.TeamID,
		Season:       season,
		Name:         competitor.Name,
		Abbreviation: competitor.Abbreviation,
		Location:     competitor.Location,
	}

	if standing, ok := standings[competitor.TeamID]; ok {
		mergeStanding(team, standing)
	}

	return s.teams.Upsert(ctx, team)
}

// mergeStanding copies a standings entry onto the team row.
func mergeStanding(team *store.Team, standing provider.Standing) {
	team.Conference = standing.Conference
	team.ConferenceRank = standing.ConferenceRank
	team.Wins = standing.Wins
	team.Losses = standing.Losses
	team.HomeRecord = standing.HomeRecord
	team.AwayRecord = standing.AwayRecord
	team.LastTenRecord = standing.LastTenRecord
	team.PointsFor = standing.PointsFor
	team.PointsAgainst = standing.PointsAgainst
}

// SyncRosters pulls the roster for every known team in the league's
// current season and upserts the players.
func (s *Service) SyncRosters(ctx context.Context, lg league.League) error {
	season := lg.CurrentSeason(time.Now())

	teams, err := s.teams.ListBySeason(ctx, lg.Code, season)
	if err != nil {
		return err
	}

	for _, team := range teams {
		payload, err := s.provider.FetchRoster(ctx, lg.SportPath, team.ExternalID)
		if err != nil {
			s.log.Warnw("roster fetch failed", "league", lg.Code, "team", team.ExternalID, "error", err)
			continue
		}

		roster := provider.ParseRoster(payload)
		for _, athlete := range roster {
			player := &store.Player{
				League:     lg.Code,
				ExternalID: athlete.ID,
				Season:     season,
				TeamID:     nullInt32(team.TeamID),
				Name:       athlete.Name,
				Position:   athlete.Position,
				Jersey:     athlete.Jersey,
				Height:     athlete.Height,
				Weight:     athlete.Weight,
				Active:     true,
			}
			if athlete.BirthDate != nil {
				player.BirthDate.Time = *athlete.BirthDate
				player.BirthDate.Valid = true
			}

			if _, err := s.players.Upsert(ctx, player); err != nil {
				s.log.Errorw("failed to upsert roster player", "league", lg.Code, "player", athlete.ID, "error", err)
			}
		}

		s.log.Debugw("synced roster", "league", lg.Code, "team", team.Abbreviation, "players", len(roster))
	}
	return nil
}

func nullInt32(v int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(v), Valid: true}
}
