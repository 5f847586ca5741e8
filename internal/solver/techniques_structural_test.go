package solver

import (
	"testing"

	"suspectgrid/internal/core"
)

// chairGrid builds a 2x2 single-room grid with one chair cell at (0,0) and
// carpet everywhere else.
func chairGrid(id string, suspects []core.Suspect) *core.Puzzle {
	layout := [][]core.Cell{
		{{Room: "r", Type: core.CellChair}, {Room: "r", Type: core.CellCarpet}},
		{{Room: "r", Type: core.CellCarpet}, {Room: "r", Type: core.CellCarpet}},
	}
	return &core.Puzzle{
		ID:          id,
		GridSize:    2,
		BoardLayout: layout,
		Rooms:       map[core.RoomID]core.RoomInfo{"r": {DisplayName: "Room"}},
		Suspects:    suspects,
	}
}

func TestTryOnlyPersonOnTypeEliminatesOthersFromType(t *testing.T) {
	p := chairGrid("only-person-on-type", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindOnlyPersonOnCellType, CellType: core.CellChair}}},
		{ID: "b", Clue: "b"},
	})
	s := mustSolver(t, p)

	step := s.tryOnlyPersonOnType()
	if step == nil {
		t.Fatalf("tryOnlyPersonOnType returned nil, want b eliminated from the chair cell")
	}
	if step.SuspectID != "b" {
		t.Errorf("step.SuspectID = %q, want b", step.SuspectID)
	}
	remaining := s.GetCandidates("b")
	if len(remaining) != 3 {
		t.Fatalf("b's remaining candidates = %d, want 3 (every cell but the chair)", len(remaining))
	}
	for c := range remaining {
		if s.index.CellInfo[c].Type == core.CellChair {
			t.Errorf("b still has a chair-cell candidate at %d, want eliminated", c)
		}
	}
}

// twoChairGrid builds a 3x3 single-room grid with chair cells at 0-0 and
// 2-2, carpet everywhere else, so a suspect required onto a chair still has
// more than one candidate and is never auto-placed during Initialize.
func twoChairGrid(id string, suspects []core.Suspect) *core.Puzzle {
	layout := make([][]core.Cell, 3)
	for r := range layout {
		layout[r] = make([]core.Cell, 3)
		for c := range layout[r] {
			layout[r][c] = core.Cell{Room: "r", Type: core.CellCarpet}
		}
	}
	layout[0][0].Type = core.CellChair
	layout[2][2].Type = core.CellChair
	return &core.Puzzle{
		ID:          id,
		GridSize:    3,
		BoardLayout: layout,
		Rooms:       map[core.RoomID]core.RoomInfo{"r": {DisplayName: "Room"}},
		Suspects:    suspects,
	}
}

func TestTryOnlyPersonOnTypeSkipsSuspectsAlreadyRequiredOntoType(t *testing.T) {
	p := twoChairGrid("only-person-on-type-skip", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindOnlyPersonOnCellType, CellType: core.CellChair}}},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindOnCellType, CellType: core.CellChair}}},
	})
	s := mustSolver(t, p)

	if step := s.tryOnlyPersonOnType(); step != nil {
		t.Errorf("tryOnlyPersonOnType() = %+v, want nil (b is itself required onto a chair cell)", step)
	}
}

// relativeRowPuzzle builds a 3x3 single-room grid where suspect a's row must
// be suspect b's row + offset.
func relativeRowPuzzle(id string, offset int, extra ...core.Constraint) *core.Puzzle {
	layout := make([][]core.Cell, 3)
	for r := range layout {
		layout[r] = make([]core.Cell, 3)
		for c := range layout[r] {
			layout[r][c] = core.Cell{Room: "r", Type: core.CellCarpet}
		}
	}
	aConstraints := append([]core.Constraint{{Kind: core.KindRelativeRow, SuspectID: "b", RowOffset: offset}}, extra...)
	return &core.Puzzle{
		ID:          id,
		GridSize:    3,
		BoardLayout: layout,
		Rooms:       map[core.RoomID]core.RoomInfo{"r": {DisplayName: "Room"}},
		Suspects: []core.Suspect{
			{ID: "a", Clue: "a", Constraints: aConstraints},
			{ID: "b", Clue: "b"},
		},
	}
}

func TestEvalRelativeRowNarrowsBothSidesBeforeEitherIsPlaced(t *testing.T) {
	p := relativeRowPuzzle("relative-row-both", 1, core.Constraint{Kind: core.KindInRow, Row: 2})
	s := mustSolver(t, p)

	step := s.evalRelativeRow("a", "b", 1)
	if step == nil {
		t.Fatalf("evalRelativeRow returned nil, want b narrowed to row 1 (a's row 2 minus offset 1)")
	}
	if step.SuspectID != "b" {
		t.Errorf("step.SuspectID = %q, want b", step.SuspectID)
	}
	remaining := s.GetCandidates("b")
	for c := range remaining {
		if s.index.RowOf(c) != 1 {
			t.Errorf("b has a candidate in row %d, want only row 1", s.index.RowOf(c))
		}
	}
}

func TestEvalRelativeRowRestrictsWhenPeerAlreadyPlaced(t *testing.T) {
	p := relativeRowPuzzle("relative-row-placed", 1)
	s, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Initialize(map[string]string{"0-0": "b"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	step := s.evalRelativeRow("a", "b", 1)
	if step == nil {
		t.Fatalf("evalRelativeRow returned nil, want a restricted to row 1 (b's row 0 + offset 1)")
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.RowOf(c) != 1 {
			t.Errorf("a has a candidate in row %d, want only row 1", s.index.RowOf(c))
		}
	}
}

// pointingGroupPuzzle builds a 3x3 grid split into two rooms: "left" is
// column 0, "right" is columns 1-2.
func pointingGroupPuzzle(id string, suspects []core.Suspect) *core.Puzzle {
	layout := make([][]core.Cell, 3)
	for r := range layout {
		layout[r] = make([]core.Cell, 3)
		layout[r][0] = core.Cell{Room: "left", Type: core.CellCarpet}
		layout[r][1] = core.Cell{Room: "right", Type: core.CellCarpet}
		layout[r][2] = core.Cell{Room: "right", Type: core.CellCarpet}
	}
	return &core.Puzzle{
		ID:          id,
		GridSize:    3,
		BoardLayout: layout,
		Rooms: map[core.RoomID]core.RoomInfo{
			"left":  {DisplayName: "Left"},
			"right": {DisplayName: "Right"},
		},
		Suspects: suspects,
	}
}

func TestTryPointingGroupEliminatesOutsideRoomOnSharedRow(t *testing.T) {
	p := pointingGroupPuzzle("pointing-group-row", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{
			{Kind: core.KindInRooms, Rooms: []core.RoomID{"left", "right"}},
			{Kind: core.KindInRow, Row: 0},
		}},
		{ID: "b", Clue: "b"},
	})
	s := mustSolver(t, p)

	// a's candidates start as every row-0 cell: (0,0) in room left, (0,1)
	// and (0,2) in room right. Rooms are visited in sorted order, so "left"
	// is checked first: within room left, a's lone candidate (0,0) trivially
	// shares row 0, and the row-0 cells outside room left are (0,1)/(0,2),
	// both still candidates, so they are eliminated first.
	step := s.tryPointingGroup()
	if step == nil {
		t.Fatalf("tryPointingGroup returned nil, want a narrowed by its room-left row-0 candidate")
	}
	if step.SuspectID != "a" {
		t.Errorf("step.SuspectID = %q, want a", step.SuspectID)
	}
	remaining := s.GetCandidates("a")
	if len(remaining) != 1 {
		t.Fatalf("a's remaining candidates = %d, want 1 (cell 0-0)", len(remaining))
	}
	for c := range remaining {
		if s.index.CellInfo[c].Room != "left" {
			t.Errorf("a's remaining candidate is in room %s, want left", s.index.CellInfo[c].Room)
		}
	}
}
