package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/courtside/internal/store"
)

// QueueRepository handles game queue entries.
type QueueRepository struct {
	db *store.Database
}

// NewQueueRepository creates a new queue repository.
func NewQueueRepository(db *store.Database) *QueueRepository {
	return &QueueRepository{db: db}
}

// Enqueue inserts a pending entry for a game, or returns the existing
// entry's id. A processed or abandoned entry is reopened as pending so a
// manual re-sync can run again.
func (r *QueueRepository) Enqueue(ctx context.Context, league, externalGameID string, firstCheckAt time.Time) (int, error) {
	query := `
		INSERT INTO game_queue (league, external_game_id, status, first_check_at)
		VALUES ($1, $2, 'pending', $3)
		ON CONFLICT (league, external_game_id) DO UPDATE SET
			status = CASE
				WHEN game_queue.status IN ('processed', 'abandoned') THEN 'pending'
				ELSE game_queue.status
			END,
			first_check_at = LEAST(game_queue.first_check_at, EXCLUDED.first_check_at),
			updated_at = NOW()
		RETURNING entry_id
	`

	var entryID int
	err := r.db.DB().QueryRowContext(ctx, query, league, externalGameID, firstCheckAt).Scan(&entryID)
	if err != nil {
		return 0, fmt.Errorf("enqueueing game %s/%s: %w", league, externalGameID, err)
	}
	return entryID, nil
}

// ClaimDue atomically claims up to limit due pending entries, marking
// them checking. Concurrent workers skip each other's claims.
func (r *QueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*store.GameQueueEntry, error) {
	query := `
		UPDATE game_queue SET status = 'checking', updated_at = NOW()
		WHERE entry_id IN (
			SELECT entry_id FROM game_queue
			WHERE status = 'pending' AND (first_check_at IS NULL OR first_check_at <= $1)
			ORDER BY first_check_at NULLS FIRST
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING entry_id, league, external_game_id, status, check_count, first_check_at,
			created_at, updated_at
	`

	rows, err := r.db.DB().QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claiming queue entries: %w", err)
	}
	defer rows.Close()

	var entries []*store.GameQueueEntry
	for rows.Next() {
		entry := &store.GameQueueEntry{}
		err := rows.Scan(
			&entry.EntryID, &entry.League, &entry.ExternalGameID, &entry.Status,
			&entry.CheckCount, &entry.FirstCheckAt, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning queue entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Release moves an entry back to pending after an inconclusive check,
// incrementing its bookkeeping counter.
func (r *QueueRepository) Release(ctx context.Context, entryID int, nextCheckAt time.Time) error {
	query := `
		UPDATE game_queue
		SET status = 'pending', check_count = check_count + 1,
			first_check_at = $2, updated_at = NOW()
		WHERE entry_id = $1
	`
	if _, err := r.db.DB().ExecContext(ctx, query, entryID, nextCheckAt); err != nil {
		return fmt.Errorf("releasing queue entry %d: %w", entryID, err)
	}
	return nil
}

// Finish marks an entry processed or abandoned.
func (r *QueueRepository) Finish(ctx context.Context, entryID int, status store.QueueStatus) error {
	query := `
		UPDATE game_queue
		SET status = $2, check_count = check_count + 1, updated_at = NOW()
		WHERE entry_id = $1
	`
	if _, err := r.db.DB().ExecContext(ctx, query, entryID, status); err != nil {
		return fmt.Errorf("finishing queue entry %d: %w", entryID, err)
	}
	return nil
}

// Get returns one entry by league and external game id.
func (r *QueueRepository) Get(ctx context.Context, league, externalGameID string) (*store.GameQueueEntry, error) {
	query := `
		SELECT entry_id, league, external_game_id, status, check_count, first_check_at,
			created_at, updated_at
		FROM game_queue
		WHERE league = $1 AND external_game_id = $2
	`

	entry := &store.GameQueueEntry{}
	err := r.db.DB().QueryRowContext(ctx, query, league, externalGameID).Scan(
		&entry.EntryID, &entry.League, &entry.ExternalGameID, &entry.Status,
		&entry.CheckCount, &entry.FirstCheckAt, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("queue entry not found: %s/%s", league, externalGameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying queue entry: %w", err)
	}
	return entry, nil
}

// ResetStuck moves checking entries back to pending (used on restart).
func (r *QueueRepository) ResetStuck(ctx context.Context) error {
	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE game_queue SET status = 'pending', updated_at = NOW()
		WHERE status = 'checking'
	`)
	if err != nil {
		return fmt.Errorf("resetting stuck queue entries: %w", err)
	}
	return nil
}
