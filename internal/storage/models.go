package storage

import "time"

// KanbanItem is a row of the factory board. Status and priority are stored as
// plain strings; the engine owns their valid values.
type KanbanItem struct {
	ID        int64
	Title     string
	Status    string
	Priority  string
	CreatedAt time.Time
}
