package solver

import (
	"fmt"

	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
	"suspectgrid/pkg/constants"
)

// tryNakedSingle is pipeline stage 1. In steady state this rarely fires —
// propagateBasic already keeps every unplaced suspect's candidate count
// above one after each mutating step — but it still runs defensively, and
// matters immediately after a snapshot restore or a freshly-built solver.
func (s *Solver) tryNakedSingle() *core.SolveStep {
	for _, sid := range s.unplacedByCandidateCount(1) {
		cell, _ := cellset.Only(s.candidates[sid])
		return s.place(
			sid, cell, constants.TechniqueNakedSingle,
			fmt.Sprintf("%s is the only suspect who can be at %s", sid, s.index.Key(cell)),
		)
	}
	return nil
}

// tryRowColSingle is pipeline stage 2: row single, then column single.
func (s *Solver) tryRowColSingle() *core.SolveStep {
	if step := s.singleInLine(true); step != nil {
		return step
	}
	return s.singleInLine(false)
}

// singleInLine handles both "row single" and "column single": for each
// line not yet occupied by a placed suspect, if exactly one unplaced
// suspect has any candidate on that line, its candidates are restricted to
// that line; a resulting singleton is placed immediately.
func (s *Solver) singleInLine(isRow bool) *core.SolveStep {
	n := s.index.Cols
	technique := constants.TechniqueColumnSingle
	lineCells := s.index.ColCells
	occupied := s.colHasPlacedSuspect
	if isRow {
		n = s.index.Rows
		technique = constants.TechniqueRowSingle
		lineCells = s.index.RowCells
		occupied = s.rowHasPlacedSuspect
	}

	for line := 0; line < n; line++ {
		if occupied(line) {
			continue
		}
		cells := lineCells[line]
		if len(cells) == 0 {
			continue
		}

		var only string
		count := 0
		for _, sid := range s.order {
			if _, done := s.placed[sid]; done {
				continue
			}
			if len(cellset.Intersect(s.candidates[sid], cells)) == 0 {
				continue
			}
			count++
			only = sid
			if count > 1 {
				break
			}
		}
		if count != 1 {
			continue
		}

		newSet := cellset.Intersect(s.candidates[only], cells)
		eliminated := s.restrict(only, newSet)
		if len(eliminated) == 0 {
			continue
		}

		if cell, ok := cellset.Only(newSet); ok {
			word := "row"
			if !isRow {
				word = "column"
			}
			return s.place(only, cell, technique, fmt.Sprintf("%s is the only suspect who can be in %s %d", only, word, line))
		}
		word := "row"
		if !isRow {
			word = "column"
		}
		return s.logElimination(technique, only, eliminated, fmt.Sprintf("%s must be in %s %d, eliminating candidates elsewhere", only, word, line))
	}
	return nil
}

// tryRowColClaiming is pipeline stage 3: row claiming, then column claiming.
func (s *Solver) tryRowColClaiming() *core.SolveStep {
	if step := s.claiming(true); step != nil {
		return step
	}
	return s.claiming(false)
}

// claiming handles "row claiming"/"column claiming": if every candidate a
// suspect has shares one line, every other suspect's candidates on that
// line are eliminated.
func (s *Solver) claiming(isRow bool) *core.SolveStep {
	technique := constants.TechniqueColumnClaiming
	lineOf := s.index.ColOf
	lineCells := s.index.ColCells
	if isRow {
		technique = constants.TechniqueRowClaiming
		lineOf = s.index.RowOf
	}

	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		cands := s.candidates[sid]
		if len(cands) == 0 {
			continue
		}
		line, uniform := soleLine(cands, lineOf)
		if !uniform {
			continue
		}

		var cells cellset.Set
		if isRow {
			cells = s.index.RowCells[line]
		} else {
			cells = lineCells[line]
		}

		for _, other := range s.order {
			if other == sid {
				continue
			}
			if _, done := s.placed[other]; done {
				continue
			}
			remaining := cellset.Subtract(s.candidates[other], cells)
			eliminated := s.restrict(other, remaining)
			if len(eliminated) == 0 {
				continue
			}
			word := "row"
			if !isRow {
				word = "column"
			}
			return s.logElimination(technique, other, eliminated, fmt.Sprintf("%s's candidates all lie in %s %d, claimed by %s", sid, word, line, sid))
		}
	}
	return nil
}

// soleLine reports the single line value shared by every cell in cands, and
// whether such a line exists.
func soleLine(cands cellset.Set, lineOf func(int) int) (int, bool) {
	line := -1
	for c := range cands {
		l := lineOf(c)
		if line == -1 {
			line = l
		} else if l != line {
			return 0, false
		}
	}
	return line, line != -1
}
