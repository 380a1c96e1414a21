package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type ChecklistRepo struct {
	db *sql.DB
}

func NewChecklistRepo(db *sql.DB) *ChecklistRepo {
	return &ChecklistRepo{db: db}
}

func (r *ChecklistRepo) Set(ctx context.Context, actionItemID string, done bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checklist (action_item_id, done, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(action_item_id) DO UPDATE SET done = excluded.done, updated_at = excluded.updated_at
	`, actionItemID, boolToInt(done), time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("checklist set: %w", err)
	}
	return nil
}

// Toggle flips an item and returns the new state. A missing row counts as not done.
func (r *ChecklistRepo) Toggle(ctx context.Context, actionItemID string) (bool, error) {
	var next bool
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var cur int
		err := tx.QueryRowContext(ctx, `SELECT done FROM checklist WHERE action_item_id = ?`, actionItemID).Scan(&cur)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("checklist get: %w", err)
		}
		next = cur == 0
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO checklist (action_item_id, done, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(action_item_id) DO UPDATE SET done = excluded.done, updated_at = excluded.updated_at
		`, actionItemID, boolToInt(next), time.Now().UTC().UnixNano()); err != nil {
			return fmt.Errorf("checklist toggle: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return next, nil
}

// CompletedMap returns every recorded entry, including ones toggled back to false.
func (r *ChecklistRepo) CompletedMap(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT action_item_id, done FROM checklist`)
	if err != nil {
		return nil, fmt.Errorf("checklist list: %w", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var (
			id   string
			done int
		)
		if err := rows.Scan(&id, &done); err != nil {
			return nil, fmt.Errorf("checklist scan: %w", err)
		}
		out[id] = done != 0
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checklist rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
