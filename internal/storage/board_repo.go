package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type BoardRepo struct {
	db *sql.DB
}

func NewBoardRepo(db *sql.DB) *BoardRepo {
	return &BoardRepo{db: db}
}

type KanbanInsert struct {
	Title    string
	Status   string
	Priority string
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertItem(ctx context.Context, db execer, in KanbanInsert, now time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO kanban_items (title, status, priority, created_at)
		VALUES (?, ?, ?, ?)
	`, in.Title, in.Status, in.Priority, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("kanban insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("kanban last insert id: %w", err)
	}
	return id, nil
}

// Insert adds an item. Ids come from AUTOINCREMENT and are never reused.
func (r *BoardRepo) Insert(ctx context.Context, in KanbanInsert) (int64, error) {
	return insertItem(ctx, r.db, in, time.Now().UTC())
}

// Seed inserts items only when the board is empty. It reports whether it did.
func (r *BoardRepo) Seed(ctx context.Context, items []KanbanInsert) (bool, error) {
	seeded := false
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM kanban_items`).Scan(&n); err != nil {
			return fmt.Errorf("kanban count: %w", err)
		}
		if n > 0 {
			return nil
		}
		now := time.Now().UTC()
		for _, in := range items {
			if _, err := insertItem(ctx, tx, in, now); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func (r *BoardRepo) Get(ctx context.Context, id int64) (*KanbanItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, status, priority, created_at
		FROM kanban_items
		WHERE id = ?
	`, id)
	return scanItem(row)
}

func (r *BoardRepo) ListAll(ctx context.Context) ([]KanbanItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, status, priority, created_at
		FROM kanban_items
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("kanban list: %w", err)
	}
	defer rows.Close()

	var out []KanbanItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kanban list rows: %w", err)
	}
	return out, nil
}

// UpdateStatus changes the status only if the item is still in from.
// It reports whether a row changed.
func (r *BoardRepo) UpdateStatus(ctx context.Context, id int64, from, to string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE kanban_items SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return false, fmt.Errorf("kanban update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("kanban rows affected: %w", err)
	}
	return n > 0, nil
}

// CountByStatus returns item counts keyed by status. Empty statuses are absent.
func (r *BoardRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM kanban_items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("kanban count by status: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("kanban count scan: %w", err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kanban count rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*KanbanItem, error) {
	var (
		it      KanbanItem
		created int64
	)
	if err := row.Scan(&it.ID, &it.Title, &it.Status, &it.Priority, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("kanban scan: %w", err)
	}
	it.CreatedAt = time.Unix(0, created).UTC()
	return &it, nil
}
