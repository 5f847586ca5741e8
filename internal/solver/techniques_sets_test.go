package solver

import (
	"testing"

	"suspectgrid/internal/core"
)

func TestNakedSetEliminatesOthersFromClaimedColumns(t *testing.T) {
	p := plainGrid("naked-col-set", 3, []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindInColumns, Cols: []int{0, 1}}}},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindInColumns, Cols: []int{0, 1}}}},
		{ID: "c", Clue: "c"},
	})
	s := mustSolver(t, p)

	step := s.nakedSet(false)
	if step == nil {
		t.Fatalf("nakedSet(column) returned nil, want c eliminated from columns 0 and 1")
	}
	if step.SuspectID != "c" {
		t.Errorf("step.SuspectID = %q, want c", step.SuspectID)
	}
	remaining := s.GetCandidates("c")
	if len(remaining) != 3 {
		t.Fatalf("c's remaining candidates = %d, want 3 (column 2 only)", len(remaining))
	}
	for cell := range remaining {
		if s.index.ColOf(cell) != 2 {
			t.Errorf("c still has a candidate in column %d, want only column 2", s.index.ColOf(cell))
		}
	}
}

func TestNakedSetSecondaryLineElimination(t *testing.T) {
	p := plainGrid("naked-col-set-secondary", 3, []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindInRow, Row: 0}, {Kind: core.KindInColumns, Cols: []int{0, 1}}}},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindInRow, Row: 0}, {Kind: core.KindInColumns, Cols: []int{0, 1}}}},
		{ID: "c", Clue: "c", Constraints: []core.Constraint{{Kind: core.KindInColumns, Cols: []int{2}}}},
	})
	s := mustSolver(t, p)

	step := s.nakedSet(false)
	if step == nil {
		t.Fatalf("nakedSet(column) returned nil, want c narrowed out of row 0 by the secondary rule")
	}
	if step.SuspectID != "c" {
		t.Errorf("step.SuspectID = %q, want c", step.SuspectID)
	}
	remaining := s.GetCandidates("c")
	for cell := range remaining {
		if s.index.RowOf(cell) == 0 {
			t.Errorf("c still has a row-0 candidate at (%d,%d), want eliminated", s.index.RowOf(cell), s.index.ColOf(cell))
		}
	}
	if len(remaining) != 2 {
		t.Errorf("c's remaining candidates = %d, want 2 (column 2 minus row 0)", len(remaining))
	}
}

func TestNakedSetNoGroupWhenSpanExceedsSize(t *testing.T) {
	p := plainGrid("naked-set-none", 3, []core.Suspect{
		{ID: "a", Clue: "a"},
		{ID: "b", Clue: "b"},
		{ID: "c", Clue: "c"},
	})
	s := mustSolver(t, p)

	if step := s.nakedSet(false); step != nil {
		t.Errorf("nakedSet(column) = %+v, want nil (no suspect pair is confined to exactly 2 columns)", step)
	}
	if step := s.nakedSet(true); step != nil {
		t.Errorf("nakedSet(row) = %+v, want nil", step)
	}
}
