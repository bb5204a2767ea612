package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/league"
)

// Orchestrator runs discovery for every configured league once on start
// and then daily at a fixed UTC hour. Each league fails independently;
// one league's provider outage doesn't block the others.
type Orchestrator struct {
	svc     *Service
	leagues []league.League
	hour    int
	log     *zap.SugaredLogger
}

// NewOrchestrator creates a daily discovery orchestrator.
func NewOrchestrator(svc *Service, leagues []league.League, hour int, logger *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{svc: svc, leagues: leagues, hour: hour, log: logger}
}

// Start blocks until ctx is cancelled, running discovery immediately and
// then at the configured hour each day.
func (o *Orchestrator) Start(ctx context.Context) {
	o.runAll(ctx)

	for {
		wait := time.Until(nextRunAt(time.Now().UTC(), o.hour))
		o.log.Infow("next discovery run scheduled", "in", wait.Round(time.Minute))

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			o.runAll(ctx)
		}
	}
}

func (o *Orchestrator) runAll(ctx context.Context) {
	for _, lg := range o.leagues {
		if err := ctx.Err(); err != nil {
			return
		}
		if err := o.svc.Run(ctx, lg, time.Time{}); err != nil {
			o.log.Errorw("discovery run failed", "league", lg.Code, "error", err)
			continue
		}
		if err := o.svc.SyncRosters(ctx, lg); err != nil {
			o.log.Errorw("roster sync failed", "league", lg.Code, "error", err)
		}
	}
}

// nextRunAt returns the next occurrence of the given UTC hour strictly
// after now.
func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
