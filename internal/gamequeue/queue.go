// Package gamequeue tracks on-demand game sync requests. API calls and
// visibility sweeps enqueue games; the worker drains due entries through
// the same check path the scheduled poller uses, so a queued sync and a
// scheduled check can never disagree about a game's state.
package gamequeue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/poller"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

const (
	drainInterval = 30 * time.Second
	claimBatch    = 5

	// visibilityWindow bounds how long after tipoff a game still counts
	// as possibly live for the visibility sweep.
	visibilityWindow = 6 * time.Hour
)

// Queue manages on-demand game checks.
type Queue struct {
	entries *repository.QueueRepository
	games   *repository.GameRepository
	poller  *poller.Poller
	log     *zap.SugaredLogger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a game queue.
func New(entries *repository.QueueRepository, games *repository.GameRepository, p *poller.Poller, logger *zap.SugaredLogger) *Queue {
	return &Queue{entries: entries, games: games, poller: p, log: logger}
}

// EnqueueGame queues an immediate check for one game.
func (q *Queue) EnqueueGame(ctx context.Context, lg league.League, externalGameID string) error {
	_, err := q.entries.Enqueue(ctx, lg.Code, externalGameID, time.Now())
	return err
}

// Status returns the queue entry for a game, if one exists.
func (q *Queue) Status(ctx context.Context, lg league.League, externalGameID string) (*store.GameQueueEntry, error) {
	return q.entries.Get(ctx, lg.Code, externalGameID)
}

// EnqueueVisible queues a check for every game on the given date that
// could plausibly be live right now.
func (q *Queue) EnqueueVisible(ctx context.Context, lg league.League, date time.Time) (int, error) {
	games, err := q.games.ListByDate(ctx, lg.Code, date)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	queued := 0
	for _, game := range games {
		if !ShouldSync(game, now) {
			continue
		}
		if _, err := q.entries.Enqueue(ctx, lg.Code, game.ExternalID, now); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}

// ShouldSync reports whether a game is worth an on-demand check: it is
// already live, or tipoff has passed recently enough that it could be.
func ShouldSync(game *store.GameEvent, now time.Time) bool {
	if game.Status.IsTerminal() {
		return false
	}
	if game.Status.IsLive() {
		return true
	}
	if game.StartTime.IsZero() {
		return false
	}
	return !now.Before(game.StartTime) && now.Sub(game.StartTime) <= visibilityWindow
}

// Start launches the drain loop.
func (q *Queue) Start(ctx context.Context) {
	ctx, q.cancel = context.WithCancel(ctx)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		ticker := time.NewTicker(drainInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := q.ProcessDue(ctx); err != nil && ctx.Err() == nil {
					q.log.Errorw("queue drain failed", "error", err)
				}
			}
		}
	}()
}

// Shutdown stops the drain loop.
func (q *Queue) Shutdown() {
	if q.cancel != nil {
		q.cancel()
	}
	q.wg.Wait()
}

// ProcessDue claims and runs due entries.
func (q *Queue) ProcessDue(ctx context.Context) error {
	entries, err := q.entries.ClaimDue(ctx, time.Now(), claimBatch)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		q.process(ctx, entry)
	}
	return nil
}

func (q *Queue) process(ctx context.Context, entry *store.GameQueueEntry) {
	lg, err := league.Get(entry.League)
	if err != nil {
		q.log.Errorw("queue entry for unknown league", "league", entry.League, "entry", entry.EntryID)
		q.finish(ctx, entry.EntryID, store.QueueAbandoned)
		return
	}

	if err := q.poller.Check(ctx, lg, entry.ExternalGameID, 0); err != nil {
		q.log.Warnw("queued check failed", "league", entry.League, "game", entry.ExternalGameID, "error", err)
		q.release(ctx, entry.EntryID, time.Now().Add(poller.RetryInterval))
		return
	}

	game, err := q.games.GetByExternalID(ctx, entry.League, entry.ExternalGameID)
	if err != nil {
		q.log.Warnw("queued game missing after check", "league", entry.League, "game", entry.ExternalGameID, "error", err)
		q.finish(ctx, entry.EntryID, store.QueueAbandoned)
		return
	}

	switch {
	case game.Status.IsTerminal():
		q.finish(ctx, entry.EntryID, store.QueueProcessed)
	case game.CheckCount >= poller.MaxChecks:
		q.finish(ctx, entry.EntryID, store.QueueAbandoned)
	default:
		q.release(ctx, entry.EntryID, time.Now().Add(poller.LiveInterval))
	}
}

func (q *Queue) finish(ctx context.Context, entryID int, status store.QueueStatus) {
	if err := q.entries.Finish(ctx, entryID, status); err != nil {
		q.log.Errorw("failed to finish queue entry", "entry", entryID, "error", err)
	}
}

func (q *Queue) release(ctx context.Context, entryID int, nextCheckAt time.Time) {
	if err := q.entries.Release(ctx, entryID, nextCheckAt); err != nil {
		q.log.Errorw("failed to release queue entry", "entry", entryID, "error", err)
	}
}
