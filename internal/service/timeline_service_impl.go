package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

type timelineService struct {
	timelines repository.TimelineRepo
	sprints   repository.SprintRepo
	issues    repository.IssueRepo
	boards    repository.BoardRepo
	uow       db.UnitOfWork
}

func NewTimelineService(timelines repository.TimelineRepo, sprints repository.SprintRepo, issues repository.IssueRepo, boards repository.BoardRepo, uow db.UnitOfWork) TimelineService {
	return &timelineService{timelines: timelines, sprints: sprints, issues: issues, boards: boards, uow: uow}
}

// Compute materializes a new snapshot at version 1. It only reads sprint and
// issue state.
func (s *timelineService) Compute(ctx context.Context, in ComputeTimelineInput) (*domain.Timeline, error) {
	board, err := s.boards.GetByID(ctx, in.BoardID)
	if err != nil {
		return nil, err
	}
	if board.OwnerID != in.OwnerID {
		return nil, errForbidden("board %s is not owned by %s", in.BoardID, in.OwnerID)
	}

	data, err := s.computeData(ctx, in.BoardID, in.OwnerID, in.SelectedSprints, in.SelectedIssues)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	name := in.Name
	if name == "" {
		name = "Timeline snapshot"
	}
	t := &domain.Timeline{
		ID:              uuid.New().String(),
		BoardID:         in.BoardID,
		OwnerID:         in.OwnerID,
		Name:            name,
		Data:            data,
		SelectedSprints: in.SelectedSprints,
		SelectedIssues:  in.SelectedIssues,
		SnapshotDate:    now,
		Version:         1,
		IsPublished:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.timelines.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *timelineService) GetByID(ctx context.Context, id string) (*domain.Timeline, error) {
	return s.timelines.GetByID(ctx, id)
}

func (s *timelineService) ListByBoard(ctx context.Context, boardID, ownerID string) ([]*domain.Timeline, error) {
	return s.timelines.ListByBoard(ctx, boardID, ownerID)
}

// Refresh recomputes the snapshot's data from current sprint/issue state
// using its stored selections, and increments the version. Sprint and issue
// rows are never written.
func (s *timelineService) Refresh(ctx context.Context, id string) (*domain.Timeline, error) {
	t, err := s.timelines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.computeData(ctx, t.BoardID, t.OwnerID, t.SelectedSprints, t.SelectedIssues)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t.Data = data
	t.SnapshotDate = now
	t.Version++
	t.UpdatedAt = now
	if err := s.timelines.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateMeta edits snapshot metadata. Non-nil selection fields replace the
// stored selection; the data itself is untouched until the next refresh.
func (s *timelineService) UpdateMeta(ctx context.Context, id string, in UpdateTimelineInput) (*domain.Timeline, error) {
	t, err := s.timelines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.IsPublished != nil {
		t.IsPublished = *in.IsPublished
	}
	if in.SelectedSprints != nil {
		t.SelectedSprints = in.SelectedSprints
	}
	if in.SelectedIssues != nil {
		t.SelectedIssues = in.SelectedIssues
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.timelines.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *timelineService) Delete(ctx context.Context, id string) error {
	if _, err := s.timelines.GetByID(ctx, id); err != nil {
		return err
	}
	return s.timelines.Delete(ctx, id)
}

// computeData builds the nested sprints→issues structure plus the backlog.
//
// Selection semantics: a nil list means "no selection supplied" (everything
// the board owns); a non-nil empty list means "explicitly nothing". An issue
// selection derives its own backlog: the selected issues whose sprint is
// absent from the fetched sprints. Without an issue selection the snapshot
// carries the fetched sprints' issues plus the board's actual backlog scope;
// issues of sprints outside the selection are left out entirely.
func (s *timelineService) computeData(ctx context.Context, boardID, ownerID string, selSprints, selIssues *[]string) (domain.TimelineData, error) {
	var data domain.TimelineData

	sprints, err := s.fetchSprints(ctx, boardID, ownerID, selSprints)
	if err != nil {
		return data, err
	}
	fetched := make(map[string]bool, len(sprints))
	for _, sp := range sprints {
		fetched[sp.ID] = true
	}
	issues, err := s.fetchIssues(ctx, boardID, selIssues, fetched)
	if err != nil {
		return data, err
	}

	sort.SliceStable(sprints, func(a, b int) bool {
		return timelineDateLess(sprints[a].StartDate, sprints[b].StartDate, sprints[a].CreatedAt, sprints[b].CreatedAt)
	})
	sort.SliceStable(issues, func(a, b int) bool {
		if l := timelineDateCmp(issues[a].StartDate, issues[b].StartDate); l != 0 {
			return l < 0
		}
		return issues[a].Position < issues[b].Position
	})

	bySprint := make(map[string][]domain.Issue)
	for _, is := range issues {
		bySprint[is.SprintIDOrEmpty()] = append(bySprint[is.SprintIDOrEmpty()], *is)
	}

	data.Sprints = make([]domain.SprintTimeline, 0, len(sprints))
	for _, sp := range sprints {
		data.Sprints = append(data.Sprints, domain.SprintTimeline{
			Sprint: *sp,
			Issues: bySprint[sp.ID],
		})
	}

	data.Backlog = []domain.Issue{}
	if selIssues != nil {
		for _, is := range issues {
			if is.SprintID == nil || !fetched[*is.SprintID] {
				data.Backlog = append(data.Backlog, *is)
			}
		}
	} else {
		for _, is := range issues {
			if is.SprintID == nil {
				data.Backlog = append(data.Backlog, *is)
			}
		}
	}
	return data, nil
}

func (s *timelineService) fetchSprints(ctx context.Context, boardID, ownerID string, sel *[]string) ([]*domain.Sprint, error) {
	all, err := s.sprints.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if sel == nil {
		var owned []*domain.Sprint
		for _, sp := range all {
			if sp.OwnerID == ownerID {
				owned = append(owned, sp)
			}
		}
		return owned, nil
	}
	want := make(map[string]bool, len(*sel))
	for _, id := range *sel {
		want[id] = true
	}
	var picked []*domain.Sprint
	for _, sp := range all {
		if want[sp.ID] {
			picked = append(picked, sp)
		}
	}
	return picked, nil
}

// fetchIssues loads the snapshot's issue set. With an explicit selection the
// ids are taken as given; otherwise only the fetched sprints' issues and the
// board's backlog are loaded.
func (s *timelineService) fetchIssues(ctx context.Context, boardID string, sel *[]string, fetchedSprints map[string]bool) ([]*domain.Issue, error) {
	if sel != nil {
		if len(*sel) == 0 {
			return nil, nil
		}
		return s.issues.ListByIDs(ctx, *sel)
	}
	all, err := s.issues.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	var picked []*domain.Issue
	for _, is := range all {
		if is.SprintID == nil || fetchedSprints[*is.SprintID] {
			picked = append(picked, is)
		}
	}
	return picked, nil
}

// timelineDateCmp orders nullable dates with absent dates first, matching how
// unscheduled items sort to the top of a Gantt view.
func timelineDateCmp(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	default:
		return 0
	}
}

func timelineDateLess(aDate, bDate *time.Time, aCreated, bCreated time.Time) bool {
	if l := timelineDateCmp(aDate, bDate); l != 0 {
		return l < 0
	}
	return aCreated.Before(bCreated)
}
