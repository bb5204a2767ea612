package store

import (
	"database/sql"
	"time"
)

// Team is one team-season row. Identity and standings come from discovery;
// the average and rank columns are rewritten by the aggregation and
// ranking engines and are NULL until the first completed game.
type Team struct {
	TeamID       int
	League       string
	ExternalID   string
	Season       string
	Name         string
	Abbreviation string
	Location     string

	Conference     string
	ConferenceRank int
	Wins           int
	Losses         int
	HomeRecord     string
	AwayRecord     string
	LastTenRecord  string
	PointsFor      float64
	PointsAgainst  float64

	PPG                  sql.NullFloat64
	OppPPG               sql.NullFloat64
	Pace                 sql.NullFloat64
	OffensiveRating      sql.NullFloat64
	DefensiveRating      sql.NullFloat64
	NetRating            sql.NullFloat64
	FieldGoalPct         sql.NullFloat64
	ThreePointPct        sql.NullFloat64
	FreeThrowPct         sql.NullFloat64
	EffectiveFGPct       sql.NullFloat64
	TrueShootingPct      sql.NullFloat64
	ReboundsPG           sql.NullFloat64
	OffReboundsPG        sql.NullFloat64
	DefReboundsPG        sql.NullFloat64
	AssistsPG            sql.NullFloat64
	TurnoversPG          sql.NullFloat64
	StealsPG             sql.NullFloat64
	BlocksPG             sql.NullFloat64
	FoulsPG              sql.NullFloat64
	AssistTurnoverRatio  sql.NullFloat64

	PPGRank       sql.NullInt32
	OppPPGRank    sql.NullInt32
	PaceRank      sql.NullInt32
	ORtgRank      sql.NullInt32
	DRtgRank      sql.NullInt32
	NetRtgRank    sql.NullInt32
	FGPctRank     sql.NullInt32
	ThreePctRank  sql.NullInt32
	FTPctRank     sql.NullInt32
	EFGPctRank    sql.NullInt32
	TSPctRank     sql.NullInt32
	ReboundsRank  sql.NullInt32
	AssistsRank   sql.NullInt32
	TurnoversRank sql.NullInt32
	StealsRank    sql.NullInt32
	BlocksRank    sql.NullInt32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Player is one player-season row. TeamID is NULL for players whose team
// has not been synced for this season yet.
type Player struct {
	PlayerID   int
	League     string
	ExternalID string
	Season     string
	TeamID     sql.NullInt32
	Name       string
	Position   string
	Jersey     string
	Height     string
	Weight     int
	BirthDate  sql.NullTime
	Active     bool

	GamesPlayed  int
	GamesStarted int

	MinutesPG     sql.NullFloat64
	PPG           sql.NullFloat64
	ReboundsPG    sql.NullFloat64
	AssistsPG     sql.NullFloat64
	StealsPG      sql.NullFloat64
	BlocksPG      sql.NullFloat64
	TurnoversPG   sql.NullFloat64
	FoulsPG       sql.NullFloat64
	FieldGoalPct  sql.NullFloat64
	ThreePointPct sql.NullFloat64
	FreeThrowPct  sql.NullFloat64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GameEvent is one scheduled or played game. CheckCount is the
// authoritative number of status checks spent on this game.
type GameEvent struct {
	GameEventID   int
	League        string
	ExternalID    string
	Season        string
	HomeTeamID    int
	AwayTeamID    int
	StartTime     time.Time
	Status        GameStatus
	StatusDetail  string
	HomeScore     sql.NullInt32
	AwayScore     sql.NullInt32
	Venue         string
	LastFetchedAt sql.NullTime
	CheckCount    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamEvent is one team's box score for one game, counting stats plus the
// single-game derived metrics computed at sync time.
type TeamEvent struct {
	TeamEventID int
	GameEventID int
	TeamID      int

	Points            int
	FieldGoalsMade    int
	FieldGoalsAtt     int
	ThreePointersMade int
	ThreePointersAtt  int
	FreeThrowsMade    int
	FreeThrowsAtt     int
	Rebounds          int
	OffRebounds       int
	DefRebounds       int
	Assists           int
	Turnovers         int
	Steals            int
	Blocks            int
	Fouls             int

	Pace            float64
	OffensiveRating float64
	DefensiveRating float64
	NetRating       float64
	EffectiveFGPct  float64
	TrueShootingPct float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerEvent is one player's box score line for one game.
type PlayerEvent struct {
	PlayerEventID int
	GameEventID   int
	PlayerID      int
	TeamID        int

	Starter bool
	Active  bool
	Minutes float64

	Points            int
	FieldGoalsMade    int
	FieldGoalsAtt     int
	ThreePointersMade int
	ThreePointersAtt  int
	FreeThrowsMade    int
	FreeThrowsAtt     int
	Rebounds          int
	OffRebounds       int
	DefRebounds       int
	Assists           int
	Turnovers         int
	Steals            int
	Blocks            int
	Fouls             int
	PlusMinus         sql.NullInt32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QueueStatus tracks a game-queue entry through its lifecycle.
type QueueStatus string

const (
	QueuePending   QueueStatus = "pending"
	QueueChecking  QueueStatus = "checking"
	QueueProcessed QueueStatus = "processed"
	QueueAbandoned QueueStatus = "abandoned"
)

// GameQueueEntry is one queued game sync request. The entry's CheckCount
// is bookkeeping for the queue itself; the game's authoritative check
// budget lives on GameEvent.
type GameQueueEntry struct {
	EntryID        int
	League         string
	ExternalGameID string
	Status         QueueStatus
	CheckCount     int
	FirstCheckAt   sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskStatus tracks a scheduled task through the worker.
type TaskStatus string

const (
	TaskQueued    TaskStatus = "queued"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task is one durable scheduled task. Payload is the handler's JSON
// arguments.
type Task struct {
	TaskID    int64
	TaskType  string
	Payload   []byte
	RunAt     time.Time
	Status    TaskStatus
	LastError sql.NullString

	CreatedAt time.Time
	UpdatedAt time.Time
}
