package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/poller"
	"github.com/fortuna/courtside/internal/provider"
	"github.com/fortuna/courtside/internal/store"
)

func TestFirstCheckTime(t *testing.T) {
	// First check runs 2h15m after tipoff.
	tipoff := time.Date(2025, 11, 15, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 11, 15, 21, 15, 0, 0, time.UTC), FirstCheckTime(tipoff))
}

func TestNextRunAt(t *testing.T) {
	now := time.Date(2025, 11, 15, 6, 30, 0, 0, time.UTC)

	// Later today.
	assert.Equal(t, time.Date(2025, 11, 15, 9, 0, 0, 0, time.UTC), nextRunAt(now, 9))

	// Already passed, so tomorrow.
	assert.Equal(t, time.Date(2025, 11, 16, 5, 0, 0, 0, time.UTC), nextRunAt(now, 5))

	// Exactly now still moves to tomorrow.
	onTheHour := time.Date(2025, 11, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 11, 16, 9, 0, 0, 0, time.UTC), nextRunAt(onTheHour, 9))
}

func TestMergeStanding(t *testing.T) {
	team := &store.Team{League: "gleague", ExternalID: "42", Name: "Iowa Wolves"}

	mergeStanding(team, provider.Standing{
		TeamID:         "42",
		Conference:     "Western",
		ConferenceRank: 2,
		Wins:           12,
		Losses:         5,
		HomeRecord:     "7-2",
		AwayRecord:     "5-3",
		LastTenRecord:  "8-2",
		PointsFor:      112.4,
		PointsAgainst:  108.1,
	})

	assert.Equal(t, "Western", team.Conference)
	assert.Equal(t, 2, team.ConferenceRank)
	assert.Equal(t, 12, team.Wins)
	assert.Equal(t, 5, team.Losses)
	assert.Equal(t, "7-2", team.HomeRecord)
	assert.Equal(t, "5-3", team.AwayRecord)
	assert.Equal(t, "8-2", team.LastTenRecord)
	assert.InDelta(t, 112.4, team.PointsFor, 0.001)
	assert.InDelta(t, 108.1, team.PointsAgainst, 0.001)
}

type fakeScheduler struct {
	queued    bool
	taskTypes []string
	runTimes  []time.Time
}

func (f *fakeScheduler) ScheduleAt(_ context.Context, taskType string, _ interface{}, runAt time.Time) (int64, error) {
	f.taskTypes = append(f.taskTypes, taskType)
	f.runTimes = append(f.runTimes, runAt)
	return 1, nil
}

func (f *fakeScheduler) HasQueued(context.Context, string, interface{}) (bool, error) {
	return f.queued, nil
}

func TestScheduleFirstCheckSkipsWhenAlreadyQueued(t *testing.T) {
	lg, err := league.Get("nba")
	require.NoError(t, err)

	event := provider.ScoreboardEvent{
		ID:        "401766123",
		StartTime: time.Date(2025, 11, 15, 19, 0, 0, 0, time.UTC),
	}

	fake := &fakeScheduler{queued: true}
	svc := &Service{sched: fake, log: zap.NewNop().Sugar()}

	// Re-discovering a game with a queued check schedules nothing.
	require.NoError(t, svc.scheduleFirstCheck(context.Background(), lg, event))
	assert.Empty(t, fake.taskTypes)

	fake.queued = false
	require.NoError(t, svc.scheduleFirstCheck(context.Background(), lg, event))
	require.Len(t, fake.runTimes, 1)
	assert.Equal(t, poller.TaskGameCheck, fake.taskTypes[0])
	assert.Equal(t, FirstCheckTime(event.StartTime), fake.runTimes[0])
}
