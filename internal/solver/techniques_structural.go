package solver

import (
	"fmt"
	"sort"

	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
	"suspectgrid/pkg/constants"
)

// tryOnlyPersonOnType is pipeline stage 6: if suspect X has
// onlyPersonOnCellType(T), every other suspect not itself required onto T
// loses T-type cells from its candidates.
func (s *Solver) tryOnlyPersonOnType() *core.SolveStep {
	for _, sid := range s.order {
		for _, c := range s.suspectsByID[sid].Constraints {
			if c.Kind != core.KindOnlyPersonOnCellType {
				continue
			}
			typeCells := s.index.TypeCells[c.CellType]
			for _, other := range s.order {
				if other == sid {
					continue
				}
				if _, done := s.placed[other]; done {
					continue
				}
				if requiredOntoType(s.suspectsByID[other], c.CellType) {
					continue
				}
				eliminated := s.restrict(other, cellset.Subtract(s.candidates[other], typeCells))
				if len(eliminated) == 0 {
					continue
				}
				return s.logElimination(constants.TechniqueOnlyPersonOnType, other, eliminated,
					fmt.Sprintf("only %s may be on a %s cell", sid, c.CellType))
			}
		}
	}
	return nil
}

func requiredOntoType(suspect core.Suspect, t core.CellType) bool {
	for _, c := range suspect.Constraints {
		if (c.Kind == core.KindOnCellType || c.Kind == core.KindOnlyPersonOnCellType) && c.CellType == t {
			return true
		}
	}
	return false
}

// tryRelativeRow is pipeline stage 7: enforce row = other.row + offset
// bidirectionally.
func (s *Solver) tryRelativeRow() *core.SolveStep {
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		for _, c := range s.suspectsByID[sid].Constraints {
			if c.Kind != core.KindRelativeRow {
				continue
			}
			if step := s.evalRelativeRow(sid, c.SuspectID, c.RowOffset); step != nil {
				return step
			}
		}
	}
	return nil
}

func (s *Solver) evalRelativeRow(sid, other string, offset int) *core.SolveStep {
	if otherCell, done := s.placed[other]; done {
		target := s.index.RowOf(otherCell) + offset
		newSet := cellset.Intersect(s.candidates[sid], s.index.RowCells[target])
		eliminated := s.restrict(sid, newSet)
		if len(eliminated) == 0 {
			return nil
		}
		if cell, ok := cellset.Only(newSet); ok {
			return s.place(sid, cell, constants.TechniqueRelativeRow,
				fmt.Sprintf("%s's row must be %s's row + %d", sid, other, offset))
		}
		return s.logElimination(constants.TechniqueRelativeRow, sid, eliminated,
			fmt.Sprintf("%s's row must be %s's row + %d", sid, other, offset))
	}

	if _, done := s.placed[other]; done {
		return nil
	}

	myRows := lineSetOf(s.candidates[sid], s.index.RowOf)
	peerRows := lineSetOf(s.candidates[other], s.index.RowOf)

	validMine := make(cellset.Set)
	for r := range myRows {
		if peerRows[r-offset] {
			validMine[r] = struct{}{}
		}
	}
	validPeer := make(cellset.Set)
	for r := range peerRows {
		if myRows[r+offset] {
			validPeer[r] = struct{}{}
		}
	}

	if step := s.restrictToRows(sid, validMine, constants.TechniqueRelativeRow,
		fmt.Sprintf("%s's row must be %s's row + %d", sid, other, offset)); step != nil {
		return step
	}
	return s.restrictToRows(other, validPeer, constants.TechniqueRelativeRow,
		fmt.Sprintf("%s's row must be %s's row + %d", other, sid, offset))
}

func lineSetOf(set cellset.Set, lineOf func(int) int) map[int]bool {
	lines := make(map[int]bool)
	for c := range set {
		lines[lineOf(c)] = true
	}
	return lines
}

func (s *Solver) restrictToRows(sid string, rows cellset.Set, technique, message string) *core.SolveStep {
	newSet := make(cellset.Set)
	for c := range s.candidates[sid] {
		if _, ok := rows[s.index.RowOf(c)]; ok {
			newSet[c] = struct{}{}
		}
	}
	eliminated := s.restrict(sid, newSet)
	if len(eliminated) == 0 {
		return nil
	}
	if cell, ok := cellset.Only(newSet); ok {
		return s.place(sid, cell, technique, message)
	}
	return s.logElimination(technique, sid, eliminated, message)
}

// tryPointingGroup is pipeline stage 8: if all of a suspect's candidates
// within one room share a row (or column), the suspect is eliminated from
// cells of that row (column) in other rooms.
func (s *Solver) tryPointingGroup() *core.SolveStep {
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		cands := s.candidates[sid]
		rooms := make([]core.RoomID, 0, len(s.roomsOf(cands)))
		for room := range s.roomsOf(cands) {
			rooms = append(rooms, room)
		}
		sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })
		for _, room := range rooms {
			within := s.inRoom(cands, room)

			if row, uniform := soleLine(within, s.index.RowOf); uniform {
				lineCells := s.index.RowCells[row]
				outside := cellset.Subtract(lineCells, s.index.RoomCells[room])
				toEliminate := cellset.Intersect(cands, outside)
				eliminated := s.restrict(sid, cellset.Subtract(cands, toEliminate))
				if len(eliminated) > 0 {
					return s.logElimination(constants.TechniquePointingGroup, sid, eliminated,
						fmt.Sprintf("%s's candidates in room %s all share row %d", sid, room, row))
				}
			}

			if col, uniform := soleLine(within, s.index.ColOf); uniform {
				lineCells := s.index.ColCells[col]
				outside := cellset.Subtract(lineCells, s.index.RoomCells[room])
				toEliminate := cellset.Intersect(cands, outside)
				eliminated := s.restrict(sid, cellset.Subtract(cands, toEliminate))
				if len(eliminated) > 0 {
					return s.logElimination(constants.TechniquePointingGroup, sid, eliminated,
						fmt.Sprintf("%s's candidates in room %s all share column %d", sid, room, col))
				}
			}
		}
	}
	return nil
}
