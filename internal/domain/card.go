package domain

import "time"

// Card belongs to exactly one column at a time. Position is its index within
// the column: the column's cards always occupy positions 0..n-1 with no gaps.
type Card struct {
	ID          string
	BoardID     string
	ColumnID    string
	Title       string
	Description string
	Priority    Priority
	Type        ItemType
	Position    int
	Labels      []string
	Assignees   []string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
