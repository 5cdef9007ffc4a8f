package domain

import "time"

// ChecklistItem is one entry of an issue's checklist.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Issue belongs to exactly one scope at a time: a sprint when SprintID is set,
// or the board's backlog when it is nil. SprintID is the backward half of the
// sprint/issue link; the forward half is Sprint.Issues. Only the link
// synchronizer may write either side.
type Issue struct {
	ID          string
	BoardID     string
	SprintID    *string
	Title       string
	Description string
	Type        ItemType
	Priority    Priority
	Position    int
	StartDate   *time.Time
	EndDate     *time.Time
	Checklist   []ChecklistItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InBacklog reports whether the issue is unassigned to any sprint.
func (i *Issue) InBacklog() bool {
	return i.SprintID == nil
}

// SprintIDOrEmpty returns the sprint id, or "" for backlog issues.
func (i *Issue) SprintIDOrEmpty() string {
	if i.SprintID == nil {
		return ""
	}
	return *i.SprintID
}
