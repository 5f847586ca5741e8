// Package solver implements the suspect-grid deduction engine: a fixed
// pipeline of geometric and relational inference techniques run to a fixed
// point over a per-puzzle candidate map, falling back to depth-limited
// backtracking when pure propagation stalls. A Solver is constructed once
// per puzzle, initialized per attempt, and iterated one SolveStep at a
// time, with snapshot/restore available around hypothetical branches.
package solver

import (
	"fmt"

	"suspectgrid/internal/boardindex"
	"suspectgrid/internal/cellset"
	"suspectgrid/internal/constraints"
	"suspectgrid/internal/core"
	"suspectgrid/pkg/constants"
)

// Solver owns one puzzle attempt's mutable state: the candidate map, the
// placed map, and the append-only step log. Two Solver instances may share
// a Puzzle and boardindex.Index by reference; neither is mutated after
// construction.
type Solver struct {
	puzzle       *core.Puzzle
	index        *boardindex.Index
	catalogue    *constraints.Catalogue
	suspectsByID map[string]core.Suspect
	order        []string

	candidates map[string]cellset.Set
	placed     map[string]int
	steps      []core.SolveStep
}

// New builds a Solver bound to a puzzle. Returns an error if the puzzle
// fails structural validation.
func New(p *core.Puzzle) (*Solver, error) {
	idx, err := boardindex.Build(p)
	if err != nil {
		return nil, err
	}

	order := make([]string, len(p.Suspects))
	byID := make(map[string]core.Suspect, len(p.Suspects))
	for i, s := range p.Suspects {
		order[i] = s.ID
		byID[s.ID] = s
	}

	return &Solver{
		puzzle:       p,
		index:        idx,
		catalogue:    constraints.New(idx),
		suspectsByID: byID,
		order:        order,
	}, nil
}

// Puzzle returns the puzzle this solver was built from.
func (s *Solver) Puzzle() *core.Puzzle { return s.puzzle }

// Index returns the board index this solver was built from.
func (s *Solver) Index() *boardindex.Index { return s.index }

// Initialize clears all state, computes every suspect's initial candidate
// set from their static constraints, applies any pre-placed suspects, then
// propagates to a fixed point. placements maps wire-form CellKey to
// suspect id.
func (s *Solver) Initialize(placements map[string]string) error {
	s.candidates = make(map[string]cellset.Set, len(s.order))
	s.placed = make(map[string]int, len(s.order))
	s.steps = nil

	for _, sid := range s.order {
		s.candidates[sid] = s.catalogue.InitialCandidates(s.suspectsByID[sid])
	}

	for key, sid := range placements {
		if _, ok := s.suspectsByID[sid]; !ok {
			return fmt.Errorf("solver: placements reference unknown suspect %q", sid)
		}
		cell, err := s.index.CellByKey(key)
		if err != nil {
			return fmt.Errorf("solver: placements: %w", err)
		}
		if _, ok := s.index.OccupiableCells[cell]; !ok {
			return fmt.Errorf("solver: suspect %q placed on non-occupiable cell %q", sid, key)
		}
		s.placeRaw(sid, cell)
	}

	s.propagateBasic()
	return nil
}

// GetCandidates returns the current candidate set for a suspect, as a
// defensive clone.
func (s *Solver) GetCandidates(suspectID string) cellset.Set {
	return cellset.Clone(s.candidates[suspectID])
}

// GetCellCandidates returns the unplaced suspects that still have cellKey
// as a candidate.
func (s *Solver) GetCellCandidates(cellKey string) []string {
	cell, err := s.index.CellByKey(cellKey)
	if err != nil {
		return nil
	}
	var out []string
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		if _, ok := s.candidates[sid][cell]; ok {
			out = append(out, sid)
		}
	}
	return out
}

// IsSolved reports whether every suspect has been placed.
func (s *Solver) IsSolved() bool {
	return len(s.placed) == len(s.order)
}

// Placed returns a defensive copy of the suspect-id to CellKey map.
func (s *Solver) Placed() map[string]string {
	out := make(map[string]string, len(s.placed))
	for sid, cell := range s.placed {
		out[sid] = s.index.Key(cell)
	}
	return out
}

// Steps returns a defensive copy of the accumulated step log.
func (s *Solver) Steps() []core.SolveStep {
	return append([]core.SolveStep(nil), s.steps...)
}

// Unplaced returns the suspect ids still without a placement, in puzzle
// declaration order.
func (s *Solver) Unplaced() []string {
	var out []string
	for _, sid := range s.order {
		if _, done := s.placed[sid]; !done {
			out = append(out, sid)
		}
	}
	return out
}

// Solve repeatedly calls SolveStep, bounded by a hard iteration cap, until
// solved or no technique makes progress. Returns the accumulated step list.
func (s *Solver) Solve() []core.SolveStep {
	for i := 0; i < constants.MaxSolveIterations; i++ {
		if s.IsSolved() {
			break
		}
		if step := s.SolveStep(); step == nil {
			break
		}
	}
	return s.Steps()
}

// SolveStep runs the fixed technique pipeline in order and returns the
// first step that makes progress, or nil if every technique stalls.
func (s *Solver) SolveStep() *core.SolveStep {
	if s.IsSolved() {
		return nil
	}

	stages := []func() *core.SolveStep{
		s.tryNakedSingle,
		s.tryRowColSingle,
		s.tryRowColClaiming,
		s.tryNakedSets,
		s.tryRoomConstraints,
		s.tryOnlyPersonOnType,
		s.tryRelativeRow,
		s.tryPointingGroup,
		s.tryContradictionElimination,
	}

	for _, stage := range stages {
		if step := stage(); step != nil {
			s.propagateBasic()
			return step
		}
	}
	return nil
}

// placeRaw records a placement and propagates its row/column exclusivity,
// with no logging and no cascade — the mutation half of the place
// primitive.
func (s *Solver) placeRaw(sid string, cell int) {
	s.placed[sid] = cell
	s.candidates[sid] = cellset.New(cell)

	row, col := s.index.RowOf(cell), s.index.ColOf(cell)
	for _, other := range s.order {
		if other == sid {
			continue
		}
		if _, done := s.placed[other]; done {
			continue
		}
		remaining := make(cellset.Set, len(s.candidates[other]))
		for c := range s.candidates[other] {
			if s.index.RowOf(c) == row || s.index.ColOf(c) == col {
				continue
			}
			remaining[c] = struct{}{}
		}
		s.candidates[other] = remaining
	}
}

// place is the logging half of the place primitive: it mutates via
// placeRaw, records the step that caused the placement, then propagates to
// a fixed point (which may append further naked-single steps of its own).
func (s *Solver) place(sid string, cell int, technique, message string) *core.SolveStep {
	s.placeRaw(sid, cell)
	step := s.logPlacement(technique, sid, cell, message)
	s.propagateBasic()
	return step
}

// propagateBasic iterates naked-single placement to a fixed point, logging
// one step per placement it makes. Pre-placed suspects applied during
// Initialize can themselves cascade further naked singles here, which is
// why Initialize clears the step log before applying them.
func (s *Solver) propagateBasic() {
	for {
		progressed := false
		for _, sid := range s.order {
			if _, done := s.placed[sid]; done {
				continue
			}
			if cell, ok := cellset.Only(s.candidates[sid]); ok {
				s.placeRaw(sid, cell)
				s.logPlacement(
					constants.TechniqueNakedSingle, sid, cell,
					fmt.Sprintf("%s is the only suspect who can be at %s", sid, s.index.Key(cell)),
				)
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}

func (s *Solver) logPlacement(technique, sid string, cell int, message string) *core.SolveStep {
	step := core.SolveStep{
		Technique: technique,
		SuspectID: sid,
		CellKey:   s.index.Key(cell),
		Message:   message,
	}
	s.steps = append(s.steps, step)
	return &s.steps[len(s.steps)-1]
}

func (s *Solver) logElimination(technique, sid string, eliminated cellset.Set, message string) *core.SolveStep {
	keys := make([]string, 0, len(eliminated))
	for _, c := range cellset.Sorted(eliminated) {
		keys = append(keys, s.index.Key(c))
	}
	step := core.SolveStep{
		Technique:       technique,
		SuspectID:       sid,
		Message:         message,
		EliminatedCells: keys,
	}
	s.steps = append(s.steps, step)
	return &s.steps[len(s.steps)-1]
}

// restrict narrows a suspect's candidate set to newSet if that actually
// removes anything, returning the eliminated cells (empty if no change).
func (s *Solver) restrict(sid string, newSet cellset.Set) cellset.Set {
	old := s.candidates[sid]
	eliminated := cellset.Subtract(old, newSet)
	if len(eliminated) == 0 {
		return eliminated
	}
	s.candidates[sid] = newSet
	return eliminated
}

// isContradiction reports whether the current candidate state can never
// reach a valid solution: an unplaced suspect with zero candidates, or a
// row/column with no placed suspect and no unplaced suspect able to
// occupy it.
func (s *Solver) isContradiction() bool {
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		if len(s.candidates[sid]) == 0 {
			return true
		}
	}

	for row := 0; row < s.index.Rows; row++ {
		if s.rowHasPlacedSuspect(row) {
			continue
		}
		if !s.someUnplacedCandidateIn(s.index.RowCells[row]) {
			return true
		}
	}
	for col := 0; col < s.index.Cols; col++ {
		if s.colHasPlacedSuspect(col) {
			continue
		}
		if !s.someUnplacedCandidateIn(s.index.ColCells[col]) {
			return true
		}
	}
	return false
}

func (s *Solver) rowHasPlacedSuspect(row int) bool {
	for _, cell := range s.placed {
		if s.index.RowOf(cell) == row {
			return true
		}
	}
	return false
}

func (s *Solver) colHasPlacedSuspect(col int) bool {
	for _, cell := range s.placed {
		if s.index.ColOf(cell) == col {
			return true
		}
	}
	return false
}

func (s *Solver) someUnplacedCandidateIn(cells cellset.Set) bool {
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		if len(cellset.Intersect(s.candidates[sid], cells)) > 0 {
			return true
		}
	}
	return false
}

// unplacedByCandidateCount returns unplaced suspect ids, in puzzle order,
// whose candidate count matches count.
func (s *Solver) unplacedByCandidateCount(count int) []string {
	var out []string
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		if len(s.candidates[sid]) == count {
			out = append(out, sid)
		}
	}
	return out
}
