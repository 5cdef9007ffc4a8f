// Package ordering computes position assignments for members of an ordering
// scope (a column's cards, or a sprint-or-backlog's issues). It is pure: the
// service layer loads scope members, asks for the re-indexed layout, and
// persists only the placements whose position actually changed.
package ordering

// Member is a scope member as currently stored, in scope order
// (position ascending, creation time breaking ties).
type Member struct {
	ID       string
	Position int
}

// Placement is a position write the caller must persist.
type Placement struct {
	ID       string
	Position int
}

// Clamp bounds a requested insertion index to [0, size]. Out-of-range targets
// are clamped rather than rejected: drag-and-drop callers say "before/after"
// and an index past the end means append.
func Clamp(target, size int) int {
	if target < 0 {
		return 0
	}
	if target > size {
		return size
	}
	return target
}

// Insert places movingID at the target index within members, removing it from
// its current slot first if present, and returns the placements needed to make
// every member's stored position equal its index. Members whose position
// already matches are omitted, so an insert at the current index of an
// existing member yields no placements.
//
// The moving member need not be present in members: a cross-scope move passes
// the destination scope's members plus the id of the arriving member.
func Insert(members []Member, movingID string, target int) []Placement {
	moving := Member{ID: movingID, Position: -1}
	others := make([]Member, 0, len(members))
	for _, m := range members {
		if m.ID == movingID {
			moving = m
			continue
		}
		others = append(others, m)
	}

	idx := Clamp(target, len(others))
	reordered := make([]Member, 0, len(others)+1)
	reordered = append(reordered, others[:idx]...)
	reordered = append(reordered, moving)
	reordered = append(reordered, others[idx:]...)

	var changes []Placement
	for i, m := range reordered {
		if m.Position != i {
			changes = append(changes, Placement{ID: m.ID, Position: i})
		}
	}
	return changes
}

// Remove drops removedID from members and returns the placements that close
// the gap, leaving the survivors at positions 0..n-1. Survivors that already
// sit at their index are omitted.
func Remove(members []Member, removedID string) []Placement {
	var changes []Placement
	i := 0
	for _, m := range members {
		if m.ID == removedID {
			continue
		}
		if m.Position != i {
			changes = append(changes, Placement{ID: m.ID, Position: i})
		}
		i++
	}
	return changes
}

// Compact returns the placements that renumber members to 0..n-1 in their
// current order. Used after bulk membership changes where several members may
// have joined or left a scope at once.
func Compact(members []Member) []Placement {
	var changes []Placement
	for i, m := range members {
		if m.Position != i {
			changes = append(changes, Placement{ID: m.ID, Position: i})
		}
	}
	return changes
}
