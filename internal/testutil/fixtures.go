package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Board options
type BoardOption func(*domain.Board)

func WithBoardOwner(ownerID string) BoardOption {
	return func(b *domain.Board) {
		b.OwnerID = ownerID
	}
}

func NewTestBoard(name string, opts ...BoardOption) *domain.Board {
	now := time.Now().UTC()
	b := &domain.Board{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   "test-owner",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Column options
type ColumnOption func(*domain.Column)

func WithWIPLimit(n int) ColumnOption {
	return func(c *domain.Column) {
		c.WIPLimit = n
	}
}

func WithColumnOrder(n int) ColumnOption {
	return func(c *domain.Column) {
		c.Order = n
	}
}

func NewTestColumn(boardID, key string, opts ...ColumnOption) *domain.Column {
	now := time.Now().UTC()
	c := &domain.Column{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Key:       key,
		Title:     key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Card options
type CardOption func(*domain.Card)

func WithCardPosition(pos int) CardOption {
	return func(c *domain.Card) {
		c.Position = pos
	}
}

func WithCardPriority(p domain.Priority) CardOption {
	return func(c *domain.Card) {
		c.Priority = p
	}
}

func WithCardType(t domain.ItemType) CardOption {
	return func(c *domain.Card) {
		c.Type = t
	}
}

func WithLabels(labels ...string) CardOption {
	return func(c *domain.Card) {
		c.Labels = labels
	}
}

func WithDueDate(d time.Time) CardOption {
	return func(c *domain.Card) {
		c.DueDate = &d
	}
}

func NewTestCard(boardID, columnID, title string, opts ...CardOption) *domain.Card {
	now := time.Now().UTC()
	c := &domain.Card{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		ColumnID:  columnID,
		Title:     title,
		Priority:  domain.PriorityMedium,
		Type:      domain.TypeTask,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sprint options
type SprintOption func(*domain.Sprint)

func WithSprintStatus(s domain.SprintStatus) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Status = s
	}
}

func WithSprintDates(start, end time.Time) SprintOption {
	return func(sp *domain.Sprint) {
		sp.StartDate = &start
		sp.EndDate = &end
	}
}

func WithSprintIssues(ids ...string) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Issues = ids
	}
}

func WithSprintOwner(ownerID string) SprintOption {
	return func(sp *domain.Sprint) {
		sp.OwnerID = ownerID
	}
}

func NewTestSprint(boardID, name string, opts ...SprintOption) *domain.Sprint {
	now := time.Now().UTC()
	s := &domain.Sprint{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		OwnerID:   "test-owner",
		Name:      name,
		Status:    domain.SprintPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue options
type IssueOption func(*domain.Issue)

func WithIssueSprint(sprintID string) IssueOption {
	return func(i *domain.Issue) {
		i.SprintID = &sprintID
	}
}

func WithIssuePosition(pos int) IssueOption {
	return func(i *domain.Issue) {
		i.Position = pos
	}
}

func WithIssuePriority(p domain.Priority) IssueOption {
	return func(i *domain.Issue) {
		i.Priority = p
	}
}

func WithIssueDates(start, end time.Time) IssueOption {
	return func(i *domain.Issue) {
		i.StartDate = &start
		i.EndDate = &end
	}
}

func WithChecklist(items ...domain.ChecklistItem) IssueOption {
	return func(i *domain.Issue) {
		i.Checklist = items
	}
}

func NewTestIssue(boardID, title string, opts ...IssueOption) *domain.Issue {
	now := time.Now().UTC()
	i := &domain.Issue{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Title:     title,
		Type:      domain.TypeTask,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
