package poller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fortuna/courtside/internal/boxscore"
	"github.com/fortuna/courtside/internal/store"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		state  string
		detail string
		want   store.GameStatus
	}{
		{"pre", "Sat, November 15th at 7:00 PM EST", store.StatusScheduled},
		{"post", "Final", store.StatusCompleted},
		{"post", "Final/OT", store.StatusCompleted},
		{"in", "8:42 - 3rd Quarter", store.StatusInProgress},
		{"in", "Halftime", store.StatusHalftime},
		{"in", "End of 1st Quarter", store.StatusEndOfPeriod},
		{"in", "2:00 - 1st Overtime", store.StatusOvertime},
		{"in", "5:00 - 2nd OT", store.StatusOvertime},
		{"pre", "Postponed", store.StatusPostponed},
		{"in", "Game Postponed", store.StatusPostponed},
		{"pre", "Canceled", store.StatusCancelled},
		{"pre", "Cancelled", store.StatusCancelled},
		{"", "", store.StatusUnknown},
		{"bogus", "who knows", store.StatusUnknown},
		{"delayed", "Start delayed", store.StatusUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.state, tc.detail),
			"state=%q detail=%q", tc.state, tc.detail)
	}
}

func TestDecideCompleted(t *testing.T) {
	outcome := Decide(store.StatusCompleted, 5)

	assert.True(t, outcome.Persist)
	assert.True(t, outcome.PersistScores)
	assert.True(t, outcome.SyncBoxScore)
	assert.True(t, outcome.Finalize)
	assert.False(t, outcome.IncrementCheck)
	assert.False(t, outcome.Reschedule)
	assert.False(t, outcome.Abandon)
}

func TestDecideLive(t *testing.T) {
	outcome := Decide(store.StatusInProgress, 5)

	assert.True(t, outcome.Persist)
	assert.True(t, outcome.PersistScores)
	assert.True(t, outcome.SyncBoxScore)
	assert.True(t, outcome.IncrementCheck)
	assert.True(t, outcome.Reschedule)
	assert.Equal(t, LiveInterval, outcome.RescheduleIn)
	assert.False(t, outcome.Finalize)
}

func TestDecideScheduled(t *testing.T) {
	outcome := Decide(store.StatusScheduled, 0)

	assert.True(t, outcome.Persist)
	assert.False(t, outcome.PersistScores)
	assert.False(t, outcome.SyncBoxScore)
	assert.True(t, outcome.IncrementCheck)
	assert.True(t, outcome.Reschedule)
	assert.Equal(t, PreGameInterval, outcome.RescheduleIn)
}

func TestDecideExhaustsBudget(t *testing.T) {
	// 23 checks spent, this one is the 24th and last.
	outcome := Decide(store.StatusScheduled, MaxChecks-1)
	assert.True(t, outcome.Abandon)
	assert.False(t, outcome.Reschedule)

	outcome = Decide(store.StatusHalftime, MaxChecks-1)
	assert.True(t, outcome.Abandon)
	assert.True(t, outcome.PersistScores)
}

func TestDecideTerminal(t *testing.T) {
	for _, status := range []store.GameStatus{store.StatusPostponed, store.StatusCancelled} {
		outcome := Decide(status, 3)
		assert.True(t, outcome.Persist)
		assert.False(t, outcome.Reschedule)
		assert.False(t, outcome.IncrementCheck)
		assert.False(t, outcome.SyncBoxScore)
		assert.False(t, outcome.Abandon)
	}
}

func TestDecideCompletedIgnoresBudget(t *testing.T) {
	outcome := Decide(store.StatusCompleted, MaxChecks+10)
	assert.True(t, outcome.Finalize)
	assert.False(t, outcome.Abandon)
}

func TestDecideUnknownKeepsStoredStatus(t *testing.T) {
	outcome := Decide(store.StatusUnknown, 5)

	assert.False(t, outcome.Persist)
	assert.True(t, outcome.Retry)
	assert.True(t, outcome.Reschedule)
	assert.Equal(t, RetryInterval, outcome.RescheduleIn)
	assert.False(t, outcome.SyncBoxScore)
	assert.False(t, outcome.IncrementCheck)

	outcome = Decide(store.StatusUnknown, MaxChecks-1)
	assert.True(t, outcome.Abandon)
	assert.False(t, outcome.Persist)
	assert.False(t, outcome.Reschedule)
}

func TestMalformedSummaryDoesNotRegressStatus(t *testing.T) {
	// A 200 response without a header block parses to an empty state,
	// which must not write scheduled over a live game.
	summary := boxscore.ParseSummary(map[string]interface{}{"note": "maintenance"})
	assert.Equal(t, "", summary.State)

	status := Classify(summary.State, summary.Detail)
	assert.Equal(t, store.StatusUnknown, status)
	assert.False(t, Decide(status, 5).Persist)
}
