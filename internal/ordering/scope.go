package ordering

// IssueScope identifies the ordering domain of an issue: one sprint on one
// board, or the board's backlog when SprintID is nil.
type IssueScope struct {
	BoardID  string
	SprintID *string
}

// Key returns a comparable identity for the scope, used to detect whether a
// move stays within one scope.
func (s IssueScope) Key() string {
	if s.SprintID == nil {
		return s.BoardID + "/backlog"
	}
	return s.BoardID + "/" + *s.SprintID
}
