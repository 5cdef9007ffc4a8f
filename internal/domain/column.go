package domain

import "time"

// Column is an ordering scope for cards. Key is unique within a board.
type Column struct {
	ID        string
	BoardID   string
	Key       string
	Title     string
	WIPLimit  int
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
