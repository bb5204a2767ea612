package poller

import (
	"strings"
	"time"

	"github.com/fortuna/courtside/internal/store"
)

const (
	// MaxChecks is the total status-check budget per game. Games that
	// exhaust it are abandoned.
	MaxChecks = 24

	// FirstCheckDelay is how long after tipoff the first check runs.
	FirstCheckDelay = 2*time.Hour + 15*time.Minute

	// PreGameInterval is the recheck interval while the provider still
	// reports the game as not started.
	PreGameInterval = 30 * time.Minute

	// LiveInterval is the recheck interval while the game is live.
	LiveInterval = 15 * time.Minute

	// RetryInterval is the recheck interval after a fetch failure.
	RetryInterval = 15 * time.Minute

	// ThrottleWindow suppresses checks against a game fetched this
	// recently, collapsing duplicate manual and scheduled syncs.
	ThrottleWindow = 15 * time.Second
)

// Classify maps the provider's (state, detail) status pair onto a game
// status. Postponements and cancellations are announced in the detail
// text regardless of state, so they are checked first. A state outside
// pre/in/post classifies as StatusUnknown.
func Classify(state, detail string) store.GameStatus {
	lower := strings.ToLower(detail)

	if strings.Contains(lower, "postpon") {
		return store.StatusPostponed
	}
	if strings.Contains(lower, "cancel") {
		return store.StatusCancelled
	}

	switch state {
	case "pre":
		return store.StatusScheduled
	case "post":
		return store.StatusCompleted
	case "in":
		switch {
		case strings.Contains(lower, "halftime"):
			return store.StatusHalftime
		case strings.Contains(lower, "end of"):
			return store.StatusEndOfPeriod
		case strings.Contains(lower, "overtime"), strings.Contains(lower, " ot"):
			return store.StatusOvertime
		default:
			return store.StatusInProgress
		}
	}
	return store.StatusUnknown
}

// Outcome is the set of effects one status check should apply. Decide
// computes it; the check executor carries it out.
type Outcome struct {
	Status store.GameStatus

	Persist        bool
	PersistScores  bool
	IncrementCheck bool
	SyncBoxScore   bool
	Finalize       bool
	Abandon        bool

	// Retry marks a check that spends no persisted budget; its
	// reschedule carries an incremented retry counter in the payload.
	Retry bool

	Reschedule   bool
	RescheduleIn time.Duration
}

// Decide maps a classified status and the checks already spent onto the
// effects to apply. checkCount is the count before this check.
func Decide(status store.GameStatus, checkCount int) Outcome {
	outcome := Outcome{Status: status, Persist: true}

	switch {
	case status == store.StatusCompleted:
		outcome.PersistScores = true
		outcome.SyncBoxScore = true
		outcome.Finalize = true

	case status.IsLive():
		outcome.PersistScores = true
		outcome.SyncBoxScore = true
		outcome.IncrementCheck = true
		if checkCount+1 >= MaxChecks {
			outcome.Abandon = true
		} else {
			outcome.Reschedule = true
			outcome.RescheduleIn = LiveInterval
		}

	case status == store.StatusScheduled:
		outcome.IncrementCheck = true
		if checkCount+1 >= MaxChecks {
			outcome.Abandon = true
		} else {
			outcome.Reschedule = true
			outcome.RescheduleIn = PreGameInterval
		}

	case status == store.StatusUnknown:
		// Leave the stored status alone and try again later.
		outcome.Persist = false
		outcome.Retry = true
		if checkCount+1 >= MaxChecks {
			outcome.Abandon = true
		} else {
			outcome.Reschedule = true
			outcome.RescheduleIn = RetryInterval
		}

	default:
		// Postponed and cancelled: record the status and stop polling.
	}

	return outcome
}
