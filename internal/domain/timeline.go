package domain

import "time"

// SprintTimeline is a sprint with its issues resolved inline.
type SprintTimeline struct {
	Sprint Sprint  `json:"sprint"`
	Issues []Issue `json:"issues"`
}

// TimelineData is the nested structure a snapshot materializes: every selected
// sprint with its issues, plus the backlog.
type TimelineData struct {
	Sprints []SprintTimeline `json:"sprints"`
	Backlog []Issue          `json:"backlog"`
}

// Timeline is an immutable point-in-time snapshot of the sprint/issue
// hierarchy. Refresh recomputes Data from current state using the stored
// selections and increments Version; it never writes back to sprints or
// issues.
//
// A nil selection means "no selection supplied": compute over everything the
// board owns. A non-nil empty selection means "explicitly nothing".
type Timeline struct {
	ID              string
	BoardID         string
	OwnerID         string
	Name            string
	Data            TimelineData
	SelectedSprints *[]string
	SelectedIssues  *[]string
	SnapshotDate    time.Time
	Version         int
	IsPublished     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
