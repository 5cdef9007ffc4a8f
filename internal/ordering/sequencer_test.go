package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func members(ids ...string) []Member {
	ms := make([]Member, len(ids))
	for i, id := range ids {
		ms[i] = Member{ID: id, Position: i}
	}
	return ms
}

// applyPlacements returns the final position of every member after the given
// placements are persisted on top of the starting layout.
func applyPlacements(ms []Member, changes []Placement) map[string]int {
	final := make(map[string]int, len(ms))
	for _, m := range ms {
		final[m.ID] = m.Position
	}
	for _, c := range changes {
		final[c.ID] = c.Position
	}
	return final
}

func TestInsert_MoveToFront(t *testing.T) {
	// [A,B,C] at [0,1,2]; move B to 0 => [B,A,C]
	ms := members("A", "B", "C")
	changes := Insert(ms, "B", 0)

	final := applyPlacements(ms, changes)
	assert.Equal(t, 0, final["B"])
	assert.Equal(t, 1, final["A"])
	assert.Equal(t, 2, final["C"])
	// C did not move, so it must not be in the write set
	assert.Len(t, changes, 2)
}

func TestInsert_SamePositionIsNoOp(t *testing.T) {
	ms := members("A", "B", "C")
	changes := Insert(ms, "B", 1)
	assert.Empty(t, changes, "moving a member onto its own index writes nothing")
}

func TestInsert_ClampsPastEnd(t *testing.T) {
	ms := members("A", "B", "C")
	changes := Insert(ms, "A", 99)

	final := applyPlacements(ms, changes)
	assert.Equal(t, 2, final["A"], "out-of-range target appends")
	assert.Equal(t, 0, final["B"])
	assert.Equal(t, 1, final["C"])
}

func TestInsert_ClampsNegative(t *testing.T) {
	ms := members("A", "B", "C")
	changes := Insert(ms, "C", -5)

	final := applyPlacements(ms, changes)
	assert.Equal(t, 0, final["C"], "negative target inserts at the front")
	assert.Equal(t, 1, final["A"])
	assert.Equal(t, 2, final["B"])
}

func TestInsert_ArrivingMemberNotInScope(t *testing.T) {
	// Cross-scope move: destination holds [X,Y], Z arrives at index 1.
	ms := members("X", "Y")
	changes := Insert(ms, "Z", 1)

	final := applyPlacements(ms, changes)
	assert.Equal(t, 0, final["X"])
	assert.Equal(t, 1, final["Z"])
	assert.Equal(t, 2, final["Y"])
}

func TestInsert_IntoEmptyScope(t *testing.T) {
	changes := Insert(nil, "A", 0)
	assert.Equal(t, []Placement{{ID: "A", Position: 0}}, changes)
}

func TestRemove_ClosesGap(t *testing.T) {
	ms := members("A", "B", "C")
	changes := Remove(ms, "B")

	assert.Equal(t, []Placement{{ID: "C", Position: 1}}, changes,
		"only the member after the gap moves")
}

func TestRemove_LastMemberWritesNothing(t *testing.T) {
	ms := members("A", "B", "C")
	assert.Empty(t, Remove(ms, "C"))
}

func TestRemove_AbsentMemberWritesNothing(t *testing.T) {
	ms := members("A", "B")
	assert.Empty(t, Remove(ms, "Z"))
}

func TestCompact_RenumbersGappedScope(t *testing.T) {
	ms := []Member{
		{ID: "A", Position: 0},
		{ID: "B", Position: 3},
		{ID: "C", Position: 7},
	}
	changes := Compact(ms)
	assert.Equal(t, []Placement{{ID: "B", Position: 1}, {ID: "C", Position: 2}}, changes)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1, 5))
	assert.Equal(t, 3, Clamp(3, 5))
	assert.Equal(t, 5, Clamp(9, 5))
	assert.Equal(t, 0, Clamp(0, 0))
}
