package gamequeue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fortuna/courtside/internal/store"
)

func TestShouldSync(t *testing.T) {
	now := time.Date(2025, 11, 16, 2, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		game store.GameEvent
		want bool
	}{
		{
			name: "live game",
			game: store.GameEvent{Status: store.StatusInProgress, StartTime: now.Add(-90 * time.Minute)},
			want: true,
		},
		{
			name: "halftime",
			game: store.GameEvent{Status: store.StatusHalftime, StartTime: now.Add(-time.Hour)},
			want: true,
		},
		{
			name: "scheduled but tipoff passed",
			game: store.GameEvent{Status: store.StatusScheduled, StartTime: now.Add(-30 * time.Minute)},
			want: true,
		},
		{
			name: "scheduled for tonight",
			game: store.GameEvent{Status: store.StatusScheduled, StartTime: now.Add(3 * time.Hour)},
			want: false,
		},
		{
			name: "tipoff too long ago",
			game: store.GameEvent{Status: store.StatusScheduled, StartTime: now.Add(-7 * time.Hour)},
			want: false,
		},
		{
			name: "completed",
			game: store.GameEvent{Status: store.StatusCompleted, StartTime: now.Add(-3 * time.Hour)},
			want: false,
		},
		{
			name: "postponed",
			game: store.GameEvent{Status: store.StatusPostponed, StartTime: now.Add(-time.Hour)},
			want: false,
		},
		{
			name: "no start time",
			game: store.GameEvent{Status: store.StatusScheduled},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldSync(&tc.game, now))
		})
	}
}
