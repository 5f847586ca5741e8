package solver

import (
	"testing"

	"suspectgrid/internal/core"
)

// threeByThreeTwoRoomPuzzle builds a 3x3 carpet grid split into a small
// room ("R1": the two cells (0,0) and (0,1)) and everything else ("R2"),
// with no suspects — tests add their own.
func threeByThreeTwoRoomPuzzle(id string, suspects []core.Suspect) *core.Puzzle {
	room := func(r, c int) core.RoomID {
		if r == 0 && c <= 1 {
			return "R1"
		}
		return "R2"
	}
	layout := make([][]core.Cell, 3)
	for r := 0; r < 3; r++ {
		layout[r] = make([]core.Cell, 3)
		for c := 0; c < 3; c++ {
			layout[r][c] = core.Cell{Room: room(r, c), Type: core.CellCarpet}
		}
	}
	return &core.Puzzle{
		ID:          id,
		GridSize:    3,
		BoardLayout: layout,
		Rooms: map[core.RoomID]core.RoomInfo{
			"R1": {DisplayName: "Study"},
			"R2": {DisplayName: "Lounge"},
		},
		Suspects: suspects,
	}
}

func mustSolver(t *testing.T, p *core.Puzzle) *Solver {
	t.Helper()
	s, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Initialize(nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func TestEvalAloneEliminatesRoomOfForcedOther(t *testing.T) {
	p := threeByThreeTwoRoomPuzzle("alone", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindAlone}}},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
	})
	s := mustSolver(t, p)

	if _, done := s.placed["b"]; done {
		t.Fatalf("b should remain unplaced (2 candidates), got placed")
	}

	step := s.evalAlone("a")
	if step == nil {
		t.Fatalf("evalAlone returned nil, want an elimination")
	}
	if step.SuspectID != "a" {
		t.Errorf("step.SuspectID = %q, want a", step.SuspectID)
	}
	for _, key := range step.EliminatedCells {
		if key != "0-0" && key != "0-1" {
			t.Errorf("unexpected eliminated cell %q, want only R1 cells", key)
		}
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room == "R1" {
			t.Errorf("a still has R1 candidate %d after evalAlone", c)
		}
	}
}

func TestEvalAloneWithEliminatesWhenThirdForcedIn(t *testing.T) {
	p := threeByThreeTwoRoomPuzzle("alone-with", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindAloneWith, SuspectID: "b"}}},
		{ID: "b", Clue: "b"},
		{ID: "c", Clue: "c", Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
	})
	s := mustSolver(t, p)

	step := s.evalAloneWith("a", "b")
	if step == nil {
		t.Fatalf("evalAloneWith returned nil, want an elimination")
	}
	if step.SuspectID != "a" {
		t.Errorf("step.SuspectID = %q, want a", step.SuspectID)
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room == "R1" {
			t.Errorf("a still has R1 candidate %d, want eliminated (c is forced into R1)", c)
		}
	}
}

func TestEvalAloneWithGenderEliminatesWhenNonPartnerForced(t *testing.T) {
	p := threeByThreeTwoRoomPuzzle("alone-gender", []core.Suspect{
		{ID: "a", Clue: "a", Gender: core.GenderFemale, Constraints: []core.Constraint{{Kind: core.KindAloneWithGender, Gender: core.GenderFemale}}},
		{ID: "b", Clue: "b", Gender: core.GenderFemale, Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
		{ID: "c", Clue: "c", Gender: core.GenderMale, Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
	})
	s := mustSolver(t, p)

	step := s.evalAloneWithGender("a", core.GenderFemale)
	if step == nil {
		t.Fatalf("evalAloneWithGender returned nil, want an elimination (c, a non-partner male, is forced into R1)")
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room == "R1" {
			t.Errorf("a still has R1 candidate %d after non-partner forced in", c)
		}
	}
}

func TestEvalAloneWithGenderEliminatesWhenTwoPartnersForced(t *testing.T) {
	p := threeByThreeTwoRoomPuzzle("alone-gender-2", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindAloneWithGender, Gender: core.GenderFemale}}},
		{ID: "b", Clue: "b", Gender: core.GenderFemale, Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
		{ID: "d", Clue: "d", Gender: core.GenderFemale, Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
	})
	s := mustSolver(t, p)

	step := s.evalAloneWithGender("a", core.GenderFemale)
	if step == nil {
		t.Fatalf("evalAloneWithGender returned nil, want an elimination (two partners forced into R1)")
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room == "R1" {
			t.Errorf("a still has R1 candidate %d after two partners forced in", c)
		}
	}
}

func TestEvalWithPersonRestrictsToNamedRoom(t *testing.T) {
	p := threeByThreeTwoRoomPuzzle("with-person", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindWithPerson, SuspectID: "b", Room: "R1"}}},
		{ID: "b", Clue: "b"},
	})
	s := mustSolver(t, p)

	step := s.evalWithPerson("a", "b", "R1")
	if step == nil {
		t.Fatalf("evalWithPerson returned nil, want an elimination")
	}
	if step.SuspectID != "a" {
		t.Errorf("step.SuspectID = %q, want a", step.SuspectID)
	}
	remaining := s.GetCandidates("a")
	if len(remaining) != 2 {
		t.Fatalf("a's remaining candidates = %d, want 2 (R1 only)", len(remaining))
	}
	for c := range remaining {
		if s.index.CellInfo[c].Room != "R1" {
			t.Errorf("a has non-R1 candidate %d after evalWithPerson", c)
		}
	}
}

func typeRoomPuzzle(id string, onCell core.CellType, suspects []core.Suspect) *core.Puzzle {
	layout := [][]core.Cell{
		{{Room: "R1", Type: onCell}, {Room: "R1", Type: core.CellCarpet}, {Room: "R2", Type: core.CellCarpet}},
		{{Room: "R2", Type: core.CellCarpet}, {Room: "R2", Type: core.CellCarpet}, {Room: "R2", Type: core.CellCarpet}},
		{{Room: "R2", Type: core.CellCarpet}, {Room: "R2", Type: core.CellCarpet}, {Room: "R2", Type: core.CellCarpet}},
	}
	return &core.Puzzle{
		ID:          id,
		GridSize:    3,
		BoardLayout: layout,
		Rooms: map[core.RoomID]core.RoomInfo{
			"R1": {DisplayName: "Study"},
			"R2": {DisplayName: "Lounge"},
		},
		Suspects: suspects,
	}
}

func TestEvalInRoomWithPersonOnCellTypeEliminatesUnreachableRoom(t *testing.T) {
	p := typeRoomPuzzle("on-type", core.CellChair, []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindInRoomWithPersonOnCellType, Gender: core.GenderMale, CellType: core.CellChair}}},
		{ID: "b", Clue: "b", Gender: core.GenderMale, Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
	})
	s := mustSolver(t, p)

	step := s.evalInRoomWithPersonOnCellType("a", core.GenderMale, core.CellChair)
	if step == nil {
		t.Fatalf("evalInRoomWithPersonOnCellType returned nil, want R2 eliminated (no chair there)")
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room != "R1" {
			t.Errorf("a still has R2 candidate %d, want only R1 (R2 has no reachable chair)", c)
		}
	}
	if len(remaining) == 0 {
		t.Errorf("a has no candidates left, want R1's cells to remain")
	}
}

func TestEvalInRoomWithPersonBesideCellTypeEliminatesUnreachableRoom(t *testing.T) {
	p := typeRoomPuzzle("beside-type", core.CellChair, []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindInRoomWithPersonBesideType, CellType: core.CellChair}}},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
	})
	s := mustSolver(t, p)

	step := s.evalInRoomWithPersonBesideCellType("a", core.CellChair)
	if step == nil {
		t.Fatalf("evalInRoomWithPersonBesideCellType returned nil, want R2 eliminated")
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room != "R1" {
			t.Errorf("a still has R2 candidate %d, want only R1", c)
		}
	}
}

func TestEvalVictimEliminatesRoomNobodyElseCanReach(t *testing.T) {
	p := threeByThreeTwoRoomPuzzle("victim", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindVictim}}},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R2"}}},
	})
	s := mustSolver(t, p)

	step := s.evalVictim("a")
	if step == nil {
		t.Fatalf("evalVictim returned nil, want R1 eliminated (nobody else can reach it)")
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room == "R1" {
			t.Errorf("a still has R1 candidate %d, want eliminated", c)
		}
	}
}

func TestEvalVictimEliminatesRoomWhereTwoOthersAreForced(t *testing.T) {
	p := threeByThreeTwoRoomPuzzle("victim-two", []core.Suspect{
		{ID: "a", Clue: "a", Constraints: []core.Constraint{{Kind: core.KindVictim}}},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
		{ID: "c", Clue: "c", Constraints: []core.Constraint{{Kind: core.KindInRoom, Room: "R1"}}},
	})
	s := mustSolver(t, p)

	step := s.evalVictim("a")
	if step == nil {
		t.Fatalf("evalVictim returned nil, want R1 eliminated (two others forced there)")
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.CellInfo[c].Room == "R1" {
			t.Errorf("a still has R1 candidate %d, want eliminated", c)
		}
	}
}

// trackPuzzle builds a 5x5 grid of track cells, all in one room, with a
// column-only position assignment (every cell in column c sits at track
// position c). a is aheadOf b; b is confined to the last two columns.
func trackPuzzle(id string, extra ...core.Constraint) *core.Puzzle {
	layout := make([][]core.Cell, 5)
	positions := make(map[string]int)
	for r := 0; r < 5; r++ {
		layout[r] = make([]core.Cell, 5)
		for c := 0; c < 5; c++ {
			layout[r][c] = core.Cell{Room: "track", Type: core.CellTrack}
			positions[core.Encode(r, c)] = c
		}
	}
	suspects := []core.Suspect{
		{ID: "a", Clue: "a", Constraints: append([]core.Constraint{{Kind: core.KindAheadOf, SuspectID: "b"}}, extra...)},
		{ID: "b", Clue: "b", Constraints: []core.Constraint{{Kind: core.KindInColumns, Cols: []int{3, 4}}}},
	}
	return &core.Puzzle{
		ID:             id,
		GridSize:       5,
		BoardLayout:    layout,
		Rooms:          map[core.RoomID]core.RoomInfo{"track": {DisplayName: "Track"}},
		Suspects:       suspects,
		TrackPositions: positions,
	}
}

func TestEvalAheadOfPrunesLowPositionsFromSelf(t *testing.T) {
	p := trackPuzzle("ahead-of")
	s := mustSolver(t, p)
	step := s.evalAheadOf("a", "b")
	if step == nil {
		t.Fatalf("evalAheadOf returned nil, want a's low-position candidates eliminated")
	}
	if step.SuspectID != "a" {
		t.Errorf("step.SuspectID = %q, want a", step.SuspectID)
	}
	remaining := s.GetCandidates("a")
	for c := range remaining {
		if s.index.ColOf(c) != 4 {
			t.Errorf("a still has candidate at column %d, want only column 4 (b's minimum reachable position is 3)", s.index.ColOf(c))
		}
	}
}

func TestEvalAheadOfPrunesHighPositionsFromOther(t *testing.T) {
	p := trackPuzzle("ahead-of-other", core.Constraint{Kind: core.KindInColumns, Cols: []int{4}})
	s := mustSolver(t, p)

	step := s.evalAheadOf("a", "b")
	if step == nil {
		t.Fatalf("evalAheadOf returned nil, want b's high-position candidates eliminated")
	}
	if step.SuspectID != "b" {
		t.Errorf("step.SuspectID = %q, want b", step.SuspectID)
	}
	remaining := s.GetCandidates("b")
	for c := range remaining {
		if s.index.ColOf(c) == 4 {
			t.Errorf("b still has a column-4 candidate, want eliminated (a's own max reachable position is 4)")
		}
	}
}
