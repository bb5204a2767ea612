// Package scheduler runs durable, database-backed delayed tasks. Tasks
// survive process restarts: a row in scheduled_tasks is the unit of work,
// claimed by the worker loop with FOR UPDATE SKIP LOCKED so multiple
// instances can share one queue.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/courtside/internal/store"
)

const (
	pollInterval = 5 * time.Second
	claimBatch   = 10
)

// HandlerFunc executes one task. The payload is the JSON written at
// schedule time. A returned error marks the task failed.
type HandlerFunc func(ctx context.Context, payload []byte) error

// Scheduler persists and executes delayed tasks.
type Scheduler struct {
	db  *store.Database
	log *zap.SugaredLogger

	mu       sync.RWMutex
	handlers map[string]HandlerFunc

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a scheduler. Handlers must be registered before Start.
func New(db *store.Database, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		db:       db,
		log:      logger,
		handlers: make(map[string]HandlerFunc),
	}
}

// Register binds a handler to a task type.
func (s *Scheduler) Register(taskType string, handler HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[taskType] = handler
}

// ScheduleAt inserts a task due at the given time. The payload is
// marshalled to JSON.
func (s *Scheduler) ScheduleAt(ctx context.Context, taskType string, payload interface{}, runAt time.Time) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshalling task payload: %w", err)
	}

	query := `
		INSERT INTO scheduled_tasks (task_type, payload, run_at, status)
		VALUES ($1, $2, $3, 'queued')
		RETURNING task_id
	`

	var taskID int64
	if err := s.db.DB().QueryRowContext(ctx, query, taskType, data, runAt).Scan(&taskID); err != nil {
		return 0, fmt.Errorf("scheduling task %s: %w", taskType, err)
	}

	s.log.Debugw("scheduled task", "type", taskType, "run_at", runAt, "task_id", taskID)
	return taskID, nil
}

// ScheduleAfter inserts a task due after the given delay.
func (s *Scheduler) ScheduleAfter(ctx context.Context, taskType string, payload interface{}, delay time.Duration) (int64, error) {
	return s.ScheduleAt(ctx, taskType, payload, time.Now().Add(delay))
}

// HasQueued reports whether a queued task of the given type whose
// payload contains the given fields already exists.
func (s *Scheduler) HasQueued(ctx context.Context, taskType string, payload interface{}) (bool, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshalling task payload: %w", err)
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM scheduled_tasks
			WHERE task_type = $1 AND status = 'queued' AND payload @> $2::jsonb
		)
	`

	var exists bool
	if err := s.db.DB().QueryRowContext(ctx, query, taskType, string(data)).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking queued tasks: %w", err)
	}
	return exists, nil
}

// ResetStuckTasks moves running tasks back to queued (used on restart).
func (s *Scheduler) ResetStuckTasks(ctx context.Context) error {
	_, err := s.db.DB().ExecContext(ctx, `
		UPDATE scheduled_tasks
		SET status = 'queued', updated_at = NOW()
		WHERE status = 'running'
	`)
	if err != nil {
		return fmt.Errorf("resetting stuck tasks: %w", err)
	}
	return nil
}

// Start launches the worker loop.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Shutdown stops the worker loop and waits for in-flight tasks.
func (s *Scheduler) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.runDue(ctx); err != nil && ctx.Err() == nil {
				s.log.Errorw("scheduler tick failed", "error", err)
			}
		}
	}
}

func (s *Scheduler) runDue(ctx context.Context) error {
	tasks, err := s.claimDue(ctx, time.Now(), claimBatch)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		s.execute(ctx, task)
	}
	return nil
}

func (s *Scheduler) claimDue(ctx context.Context, now time.Time, limit int) ([]*store.Task, error) {
	query := `
		UPDATE scheduled_tasks SET status = 'running', updated_at = NOW()
		WHERE task_id IN (
			SELECT task_id FROM scheduled_tasks
			WHERE status = 'queued' AND run_at <= $1
			ORDER BY run_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING task_id, task_type, payload, run_at, status, last_error, created_at, updated_at
	`

	rows, err := s.db.DB().QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claiming due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*store.Task
	for rows.Next() {
		task := &store.Task{}
		err := rows.Scan(
			&task.TaskID, &task.TaskType, &task.Payload, &task.RunAt,
			&task.Status, &task.LastError, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *Scheduler) execute(ctx context.Context, task *store.Task) {
	s.mu.RLock()
	handler, ok := s.handlers[task.TaskType]
	s.mu.RUnlock()

	if !ok {
		s.finish(ctx, task.TaskID, store.TaskFailed, fmt.Errorf("no handler for task type %q", task.TaskType))
		return
	}

	if err := handler(ctx, task.Payload); err != nil {
		s.log.Warnw("task failed", "type", task.TaskType, "task_id", task.TaskID, "error", err)
		s.finish(ctx, task.TaskID, store.TaskFailed, err)
		return
	}
	s.finish(ctx, task.TaskID, store.TaskCompleted, nil)
}

func (s *Scheduler) finish(ctx context.Context, taskID int64, status store.TaskStatus, taskErr error) {
	var errText sql.NullString
	if taskErr != nil {
		errText = sql.NullString{String: taskErr.Error(), Valid: true}
	}

	_, err := s.db.DB().ExecContext(ctx, `
		UPDATE scheduled_tasks
		SET status = $2, last_error = $3, updated_at = NOW()
		WHERE task_id = $1
	`, taskID, status, errText)
	if err != nil && ctx.Err() == nil {
		s.log.Errorw("failed to record task outcome", "task_id", taskID, "error", err)
	}
}
