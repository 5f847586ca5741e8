// Package constraints is the constraint catalogue: the static geometry
// filters applied once at Solver.Initialize, and the classification/
// description helpers the solver and hint engine consult for every
// constraint kind. The dynamic evaluators need live access to every
// suspect's current candidate set and placement, so they are owned by
// package solver and described only here (Describe); everything that can be
// computed from a constraint plus the immutable board index lives in this
// package.
package constraints

import (
	"fmt"

	"suspectgrid/internal/boardindex"
	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
)

// StaticFilter narrows candidates by one static constraint. Callers must not
// invoke this with a dynamic kind; IsStatic(c.Kind) guards that.
func StaticFilter(candidates cellset.Set, c core.Constraint, idx *boardindex.Index) cellset.Set {
	switch c.Kind {
	case core.KindInRoom:
		return cellset.Intersect(candidates, idx.RoomCells[c.Room])

	case core.KindInRooms:
		rooms := make([]cellset.Set, 0, len(c.Rooms))
		for _, r := range c.Rooms {
			rooms = append(rooms, idx.RoomCells[r])
		}
		return cellset.Intersect(candidates, cellset.Union(rooms...))

	case core.KindOnCellType:
		return cellset.Intersect(candidates, idx.TypeCells[c.CellType])

	case core.KindNotOnCellType:
		return cellset.Subtract(candidates, idx.TypeCells[c.CellType])

	case core.KindBeside:
		return cellset.Intersect(candidates, idx.CellsBesideType(c.CellType))

	case core.KindNotBeside:
		return cellset.Subtract(candidates, idx.CellsBesideType(c.CellType))

	case core.KindInColumns:
		cols := make([]cellset.Set, 0, len(c.Cols))
		for _, col := range c.Cols {
			cols = append(cols, idx.ColCells[col])
		}
		return cellset.Intersect(candidates, cellset.Union(cols...))

	case core.KindInRow:
		return cellset.Intersect(candidates, idx.RowCells[c.Row])

	default:
		// Not a static kind; nothing to narrow here.
		return candidates
	}
}

// IsStatic reports whether a constraint kind is resolved once at
// initialization rather than during propagation.
func IsStatic(k core.ConstraintKind) bool { return core.IsStatic(k) }

// Describe renders a constraint as the human-readable fragment diagnostic
// messages and curated-hint fallbacks embed.
func Describe(c core.Constraint, puzzle *core.Puzzle) string {
	roomName := func(r core.RoomID) string {
		if info, ok := puzzle.Rooms[r]; ok && info.DisplayName != "" {
			return info.DisplayName
		}
		return string(r)
	}

	switch c.Kind {
	case core.KindInRoom:
		return fmt.Sprintf("must be in %s", roomName(c.Room))
	case core.KindInRooms:
		names := make([]string, 0, len(c.Rooms))
		for _, r := range c.Rooms {
			names = append(names, roomName(r))
		}
		return fmt.Sprintf("must be in one of %v", names)
	case core.KindInRow:
		return fmt.Sprintf("must be in row %d", c.Row)
	case core.KindInColumns:
		return fmt.Sprintf("must be in one of columns %v", c.Cols)
	case core.KindOnCellType:
		return fmt.Sprintf("must be on a %s cell", c.CellType)
	case core.KindNotOnCellType:
		return fmt.Sprintf("must not be on a %s cell", c.CellType)
	case core.KindBeside:
		return fmt.Sprintf("must be beside a %s", c.CellType)
	case core.KindNotBeside:
		return fmt.Sprintf("must not be beside a %s", c.CellType)
	case core.KindAlone:
		return "must be alone in their room"
	case core.KindAloneWith:
		return fmt.Sprintf("must share a room with only %s", c.SuspectID)
	case core.KindAloneWithGender:
		return fmt.Sprintf("must share a room with exactly one %s suspect", c.Gender)
	case core.KindWithPerson:
		return fmt.Sprintf("must be in %s with %s", roomName(c.Room), c.SuspectID)
	case core.KindInRoomWithPersonOnCellType:
		return fmt.Sprintf("must share a room with a %s suspect on a %s cell", c.Gender, c.CellType)
	case core.KindInRoomWithPersonBesideType:
		return fmt.Sprintf("must share a room with someone beside a %s", c.CellType)
	case core.KindOnlyPersonOnCellType:
		return fmt.Sprintf("must be the only one on a %s cell", c.CellType)
	case core.KindRelativeRow:
		return fmt.Sprintf("row must equal %s's row + %d", c.SuspectID, c.RowOffset)
	case core.KindAheadOf:
		return fmt.Sprintf("must be ahead of %s on the track", c.SuspectID)
	case core.KindVictim:
		return "shares their room with exactly one other suspect"
	default:
		return string(c.Kind)
	}
}
