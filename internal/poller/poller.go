// Package poller drives the per-game polling lifecycle: a scheduled
// check fetches the game summary, classifies the provider's status,
// persists what changed, and either reschedules itself or finalizes the
// game. Each game gets a fixed check budget so nothing polls forever.
package poller

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/boxscore"
	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/provider"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/scheduler"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// TaskGameCheck is the scheduler task type for one game status check.
const TaskGameCheck = "game.check"

// CheckPayload is the scheduled task payload for a game check. Retries
// counts consecutive fetch failures; it rides in the payload so a failed
// fetch doesn't consume the game's persisted check budget but still
// can't retry forever.
type CheckPayload struct {
	League         string `json:"league"`
	ExternalGameID string `json:"external_game_id"`
	Retries        int    `json:"retries,omitempty"`
}

// Finalizer recomputes season aggregates after a game completes.
type Finalizer interface {
	RecomputeTeam(ctx context.Context, teamID int, season string) error
	RecomputePlayer(ctx context.Context, playerID int, season string) error
}

// Ranker recomputes league rankings after aggregates change.
type Ranker interface {
	Recompute(ctx context.Context, league, season string) error
}

// Poller executes game status checks.
type Poller struct {
	provider  *provider.Client
	games     *repository.GameRepository
	teams     *repository.TeamRepository
	players   *repository.PlayerRepository
	events    *repository.EventStatsRepository
	cache     *cache.RedisCache
	publisher *publisher.RedisStreamPublisher
	finalizer Finalizer
	ranker    Ranker
	sched     *scheduler.Scheduler
	log       *zap.SugaredLogger
}

// Config collects the poller's collaborators.
type Config struct {
	Provider  *provider.Client
	Games     *repository.GameRepository
	Teams     *repository.TeamRepository
	Players   *repository.PlayerRepository
	Events    *repository.EventStatsRepository
	Cache     *cache.RedisCache
	Publisher *publisher.RedisStreamPublisher
	Finalizer Finalizer
	Ranker    Ranker
	Scheduler *scheduler.Scheduler
	Logger    *zap.SugaredLogger
}

// New creates a poller.
func New(cfg Config) *Poller {
	return &Poller{
		provider:  cfg.Provider,
		games:     cfg.Games,
		teams:     cfg.Teams,
		players:   cfg.Players,
		events:    cfg.Events,
		cache:     cfg.Cache,
		publisher: cfg.Publisher,
		finalizer: cfg.Finalizer,
		ranker:    cfg.Ranker,
		sched:     cfg.Scheduler,
		log:       cfg.Logger,
	}
}

// HandleTask is the scheduler handler for TaskGameCheck.
func (p *Poller) HandleTask(ctx context.Context, payload []byte) error {
	var check CheckPayload
	if err := json.Unmarshal(payload, &check); err != nil {
		return fmt.Errorf("decoding check payload: %w", err)
	}

	lg, err := league.Get(check.League)
	if err != nil {
		return err
	}
	return p.Check(ctx, lg, check.ExternalGameID, check.Retries)
}

// Check runs one status check against a game. Terminal games and games
// fetched inside the throttle window are skipped without consuming
// budget.
func (p *Poller) Check(ctx context.Context, lg league.League, externalGameID string, retries int) error {
	game, err := p.games.GetByExternalID(ctx, lg.Code, externalGameID)
	if err != nil {
		return err
	}

	if game.Status.IsTerminal() {
		p.log.Debugw("skipping check, game is terminal", "league", lg.Code, "game", externalGameID, "status", game.Status)
		return nil
	}

	if game.LastFetchedAt.Valid && time.Since(game.LastFetchedAt.Time) < ThrottleWindow {
		p.log.Debugw("skipping check, inside throttle window", "league", lg.Code, "game", externalGameID)
		return nil
	}
	if p.cache != nil {
		key := fmt.Sprintf("check:%s:%s", lg.Code, externalGameID)
		acquired, err := p.cache.TryAcquire(ctx, key, ThrottleWindow)
		if err != nil {
			p.log.Warnw("throttle check failed, proceeding", "error", err)
		} else if !acquired {
			p.log.Debugw("skipping check, concurrent check in flight", "league", lg.Code, "game", externalGameID)
			return nil
		}
	}

	payload, err := p.provider.FetchGameSummary(ctx, lg.SportPath, externalGameID)
	if err != nil {
		return p.handleFetchFailure(ctx, lg, game, retries, err)
	}

	summary := boxscore.ParseSummary(payload)
	status := Classify(summary.State, summary.Detail)
	outcome := Decide(status, game.CheckCount+retries)

	if outcome.Persist {
		game.Status = outcome.Status
		game.StatusDetail = summary.Detail
		game.LastFetchedAt = sql.NullTime{Time: time.Now(), Valid: true}
		if outcome.IncrementCheck {
			game.CheckCount++
		}
		if outcome.PersistScores {
			if summary.Home.HasScore {
				game.HomeScore = sql.NullInt32{Int32: int32(summary.Home.Score), Valid: true}
			}
			if summary.Away.HasScore {
				game.AwayScore = sql.NullInt32{Int32: int32(summary.Away.Score), Valid: true}
			}
		}
		if err := p.games.UpdateFromCheck(ctx, game); err != nil {
			return err
		}
	} else if outcome.Retry {
		p.log.Warnw("unrecognized provider state, keeping stored status",
			"league", lg.Code, "game", externalGameID, "state", summary.State, "detail", summary.Detail, "retries", retries)
	}

	if outcome.SyncBoxScore {
		if err := p.syncBoxScore(ctx, lg, game, summary); err != nil {
			return fmt.Errorf("syncing box score: %w", err)
		}
	}

	if outcome.Status.IsLive() {
		p.publishLive(ctx, lg, game)
	}

	if outcome.Finalize {
		if err := p.finalize(ctx, lg, game); err != nil {
			return fmt.Errorf("finalizing game: %w", err)
		}
	}

	if outcome.Abandon {
		p.log.Warnw("abandoning game after exhausting check budget",
			"league", lg.Code, "game", externalGameID, "checks", game.CheckCount, "retries", retries)
	}

	if outcome.Reschedule {
		next := CheckPayload{League: lg.Code, ExternalGameID: externalGameID}
		if outcome.Retry {
			next.Retries = retries + 1
		}
		if _, err := p.sched.ScheduleAfter(ctx, TaskGameCheck, next, outcome.RescheduleIn); err != nil {
			return fmt.Errorf("rescheduling check: %w", err)
		}
	}

	return nil
}

// handleFetchFailure retries a failed fetch on a fixed interval. Fetch
// failures don't touch the game's persisted check count, but the
// combined total of checks and retries still caps at MaxChecks so an
// unreachable endpoint can't retry forever.
func (p *Poller) handleFetchFailure(ctx context.Context, lg league.League, game *store.GameEvent, retries int, fetchErr error) error {
	if game.CheckCount+retries+1 >= MaxChecks {
		p.log.Warnw("abandoning game after repeated fetch failures",
			"league", lg.Code, "game", game.ExternalID, "checks", game.CheckCount, "retries", retries, "error", fetchErr)
		return nil
	}

	p.log.Warnw("game fetch failed, will retry",
		"league", lg.Code, "game", game.ExternalID, "retries", retries, "error", fetchErr)

	next := CheckPayload{League: lg.Code, ExternalGameID: game.ExternalID, Retries: retries + 1}
	if _, err := p.sched.ScheduleAfter(ctx, TaskGameCheck, next, RetryInterval); err != nil {
		return fmt.Errorf("scheduling fetch retry: %w", err)
	}
	return nil
}

type liveUpdate struct {
	League       string `json:"league"`
	GameID       string `json:"game_id"`
	Status       string `json:"status"`
	StatusDetail string `json:"status_detail"`
	HomeScore    *int32 `json:"home_score,omitempty"`
	AwayScore    *int32 `json:"away_score,omitempty"`
}

func (p *Poller) publishLive(ctx context.Context, lg league.League, game *store.GameEvent) {
	if p.publisher == nil {
		return
	}

	update := liveUpdate{
		League:       lg.Code,
		GameID:       game.ExternalID,
		Status:       string(game.Status),
		StatusDetail: game.StatusDetail,
	}
	if game.HomeScore.Valid {
		update.HomeScore = &game.HomeScore.Int32
	}
	if game.AwayScore.Valid {
		update.AwayScore = &game.AwayScore.Int32
	}

	if err := p.publisher.PublishLiveUpdate(ctx, lg.Code, update); err != nil {
		p.log.Warnw("failed to publish live update", "league", lg.Code, "game", game.ExternalID, "error", err)
	}
}

// finalize recomputes both teams' season aggregates, every player who
// logged a line in the game, and the league rankings.
func (p *Poller) finalize(ctx context.Context, lg league.League, game *store.GameEvent) error {
	for _, teamID := range []int{game.HomeTeamID, game.AwayTeamID} {
		if err := p.finalizer.RecomputeTeam(ctx, teamID, game.Season); err != nil {
			return fmt.Errorf("recomputing team %d: %w", teamID, err)
		}
	}

	playerIDs, err := p.events.ListGamePlayerIDs(ctx, game.GameEventID)
	if err != nil {
		return err
	}
	for _, playerID := range playerIDs {
		if err := p.finalizer.RecomputePlayer(ctx, playerID, game.Season); err != nil {
			return fmt.Errorf("recomputing player %d: %w", playerID, err)
		}
	}

	if err := p.ranker.Recompute(ctx, lg.Code, game.Season); err != nil {
		return fmt.Errorf("recomputing rankings: %w", err)
	}

	if p.publisher != nil {
		final := liveUpdate{
			League:       lg.Code,
			GameID:       game.ExternalID,
			Status:       string(game.Status),
			StatusDetail: game.StatusDetail,
		}
		if game.HomeScore.Valid {
			final.HomeScore = &game.HomeScore.Int32
		}
		if game.AwayScore.Valid {
			final.AwayScore = &game.AwayScore.Int32
		}
		if err := p.publisher.PublishFinalStats(ctx, lg.Code, final); err != nil {
			p.log.Warnw("failed to publish final stats", "league", lg.Code, "game", game.ExternalID, "error", err)
		}
	}

	p.log.Infow("finalized game", "league", lg.Code, "game", game.ExternalID, "players", len(playerIDs))
	return nil
}
