package boardindex

import (
	"testing"

	"suspectgrid/internal/core"
)

// tinyPuzzle builds a 3x3 grid with two rooms:
//
//	kitchen  kitchen  lounge
//	kitchen  kitchen  lounge
//	lounge   lounge   lounge
//
// Row 0 col 2 is a TV (non-occupiable); everything else is carpet.
func tinyPuzzle() *core.Puzzle {
	room := func(r core.RoomID, t core.CellType) core.Cell { return core.Cell{Room: r, Type: t} }
	layout := [][]core.Cell{
		{room("kitchen", core.CellCarpet), room("kitchen", core.CellCarpet), room("lounge", core.CellTV)},
		{room("kitchen", core.CellCarpet), room("kitchen", core.CellCarpet), room("lounge", core.CellCarpet)},
		{room("lounge", core.CellCarpet), room("lounge", core.CellCarpet), room("lounge", core.CellCarpet)},
	}
	return &core.Puzzle{
		ID:       "tiny",
		GridSize: 3,
		BoardLayout: layout,
		Rooms: map[core.RoomID]core.RoomInfo{
			"kitchen": {DisplayName: "Kitchen"},
			"lounge":  {DisplayName: "Lounge"},
		},
		Suspects: []core.Suspect{{ID: "a", Clue: "x"}},
	}
}

func TestBuildOccupiableCells(t *testing.T) {
	idx, err := Build(tinyPuzzle())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tvCell := idx.CellIndex(0, 2)
	if _, ok := idx.OccupiableCells[tvCell]; ok {
		t.Errorf("TV cell should not be occupiable")
	}
	if len(idx.OccupiableCells) != 8 {
		t.Errorf("expected 8 occupiable cells, got %d", len(idx.OccupiableCells))
	}
}

func TestBuildRoomCells(t *testing.T) {
	idx, err := Build(tinyPuzzle())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.RoomCells["kitchen"]) != 4 {
		t.Errorf("expected 4 kitchen cells, got %d", len(idx.RoomCells["kitchen"]))
	}
	if len(idx.RoomCells["lounge"]) != 5 {
		t.Errorf("expected 5 lounge cells, got %d", len(idx.RoomCells["lounge"]))
	}
}

func TestAdjacentSameRoomExcludesOtherRoom(t *testing.T) {
	idx, err := Build(tinyPuzzle())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// (0,1) is kitchen carpet; its east neighbour (0,2) is a lounge TV cell,
	// so it must not appear as same-room adjacency even if it were occupiable.
	cell01 := idx.CellIndex(0, 1)
	eastCell := idx.CellIndex(0, 2)
	if _, ok := idx.AdjacentSameRoom[cell01][eastCell]; ok {
		t.Errorf("adjacency must not cross rooms")
	}
	// (1,1) kitchen has all four neighbours in-bounds; only the two kitchen
	// ones ((0,1) and (1,0)) count, since (1,2) and (2,1) are lounge.
	cell11 := idx.CellIndex(1, 1)
	if len(idx.AdjacentSameRoom[cell11]) != 2 {
		t.Errorf("expected 2 same-room neighbours for (1,1), got %d", len(idx.AdjacentSameRoom[cell11]))
	}
}

func TestCellsBesideType(t *testing.T) {
	idx, err := Build(tinyPuzzle())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	beside := idx.CellsBesideType(core.CellTV)
	// Only (1,2) is occupiable, same room (lounge) as the TV at (0,2).
	want := idx.CellIndex(1, 2)
	if _, ok := beside[want]; !ok {
		t.Errorf("expected (1,2) beside the TV, got %v", beside)
	}
	if len(beside) != 1 {
		t.Errorf("expected exactly 1 cell beside the TV, got %d", len(beside))
	}
}

func TestKeyRoundTrip(t *testing.T) {
	idx, err := Build(tinyPuzzle())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cell := idx.CellIndex(2, 1)
	key := idx.Key(cell)
	got, err := idx.CellByKey(key)
	if err != nil {
		t.Fatalf("CellByKey(%q): %v", key, err)
	}
	if got != cell {
		t.Errorf("CellByKey(Key(cell)) = %d, want %d", got, cell)
	}
}

func TestBuildRejectsInvalidPuzzle(t *testing.T) {
	p := tinyPuzzle()
	p.Suspects = nil
	if _, err := Build(p); err == nil {
		t.Errorf("expected an error for a puzzle with no suspects")
	}
}
