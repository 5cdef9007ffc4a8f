package domain

import "time"

// Sprint owns an ordered set of issue ids (the forward half of the
// sprint/issue link). Status moves planned -> active -> completed, with
// completed -> planned as the reopen path.
type Sprint struct {
	ID        string
	BoardID   string
	OwnerID   string
	Name      string
	Objective string
	Status    SprintStatus
	StartDate *time.Time
	EndDate   *time.Time
	Issues    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasIssue reports whether the sprint's issue list contains id.
func (s *Sprint) HasIssue(id string) bool {
	for _, existing := range s.Issues {
		if existing == id {
			return true
		}
	}
	return false
}

// AddIssue appends id to the issue list if not already present.
// Returns true if the list changed.
func (s *Sprint) AddIssue(id string) bool {
	if s.HasIssue(id) {
		return false
	}
	s.Issues = append(s.Issues, id)
	return true
}

// RemoveIssue deletes id from the issue list, preserving order.
// Returns true if the list changed.
func (s *Sprint) RemoveIssue(id string) bool {
	for i, existing := range s.Issues {
		if existing == id {
			s.Issues = append(s.Issues[:i], s.Issues[i+1:]...)
			return true
		}
	}
	return false
}
