package store

// GameStatus is a game event's lifecycle state. Transitions only move
// forward, except the live sub-states which may cycle among themselves
// before reaching StatusCompleted.
type GameStatus string

const (
	StatusScheduled   GameStatus = "scheduled"
	StatusInProgress  GameStatus = "in_progress"
	StatusHalftime    GameStatus = "halftime"
	StatusEndOfPeriod GameStatus = "end_of_period"
	StatusOvertime    GameStatus = "overtime"
	StatusCompleted   GameStatus = "completed"
	StatusPostponed   GameStatus = "postponed"
	StatusCancelled   GameStatus = "cancelled"

	// StatusUnknown marks a provider state the classifier does not
	// recognize. Never persisted; a check that sees it retries without
	// touching the stored status.
	StatusUnknown GameStatus = "unknown"
)

// IsLive reports whether the status is one of the in-game sub-states.
func (s GameStatus) IsLive() bool {
	switch s {
	case StatusInProgress, StatusHalftime, StatusEndOfPeriod, StatusOvertime:
		return true
	}
	return false
}

// IsTerminal reports whether no further polling is useful for this status.
func (s GameStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusPostponed, StatusCancelled:
		return true
	}
	return false
}
