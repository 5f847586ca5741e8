package solver

import (
	"fmt"

	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
	"suspectgrid/pkg/constants"
)

// snapshot is an opaque restore point: a deep copy of the candidate map,
// the placed map, and the step-log length. Restoring truncates the step
// log back to that length rather than replacing it, so steps logged
// before the snapshot survive a restore.
type snapshot struct {
	candidates map[string]cellset.Set
	placed     map[string]int
	stepCount  int
}

func (s *Solver) snapshotState() snapshot {
	candidates := make(map[string]cellset.Set, len(s.candidates))
	for sid, set := range s.candidates {
		candidates[sid] = cellset.Clone(set)
	}
	placed := make(map[string]int, len(s.placed))
	for sid, cell := range s.placed {
		placed[sid] = cell
	}
	return snapshot{candidates: candidates, placed: placed, stepCount: len(s.steps)}
}

func (s *Solver) restoreState(snap snapshot) {
	s.candidates = snap.candidates
	s.placed = snap.placed
	s.steps = s.steps[:snap.stepCount]
}

// tryContradictionElimination is the final pipeline stage: depth-limited
// backtracking. It picks the unplaced suspect with the fewest candidates
// (more than one), tentatively places it at each candidate in turn inside
// a snapshot, drives the pipeline to a stall, and tests for contradiction;
// any candidate that provably contradicts is eliminated for real.
func (s *Solver) tryContradictionElimination() *core.SolveStep {
	return s.contradictionEliminationAtDepth(0)
}

func (s *Solver) contradictionEliminationAtDepth(depth int) *core.SolveStep {
	target := s.fewestCandidatesAbove(1)
	if target == "" {
		return nil
	}

	for _, cell := range cellset.Sorted(s.candidates[target]) {
		snap := s.snapshotState()
		s.placeRaw(target, cell)
		s.runPipelineUntilStuck(depth)
		contradicts := s.isContradiction()
		s.restoreState(snap)

		if contradicts {
			eliminated := s.restrict(target, cellset.Subtract(s.candidates[target], cellset.New(cell)))
			if len(eliminated) == 0 {
				continue
			}
			return s.logElimination(constants.TechniqueContradictionElim, target, eliminated,
				fmt.Sprintf("%s cannot be at %s: it leaves no way to place every suspect", target, s.index.Key(cell)))
		}
	}
	return nil
}

// fewestCandidatesAbove returns the unplaced suspect (puzzle order breaks
// ties) with the smallest candidate count greater than min, or "" if none.
func (s *Solver) fewestCandidatesAbove(min int) string {
	best := ""
	bestCount := 0
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		n := len(s.candidates[sid])
		if n <= min {
			continue
		}
		if best == "" || n < bestCount {
			best, bestCount = sid, n
		}
	}
	return best
}

// runPipelineUntilStuck repeatedly applies the mid-pipeline techniques
// (plus one nested level of contradiction elimination when depth allows)
// until none of them make progress or the round cap is reached.
func (s *Solver) runPipelineUntilStuck(depth int) {
	for round := 0; round < constants.MaxBacktrackRounds; round++ {
		progressed := false

		for _, stage := range []func() *core.SolveStep{
			s.tryRoomConstraints,
			s.tryNakedSingle,
			s.tryRowColSingle,
			s.tryRowColClaiming,
			s.tryNakedSets,
			s.tryOnlyPersonOnType,
			s.tryRelativeRow,
			s.tryPointingGroup,
		} {
			if step := stage(); step != nil {
				s.propagateBasic()
				progressed = true
				_ = step
			}
		}

		if depth < constants.MaxBacktrackDepth {
			if step := s.contradictionEliminationAtDepth(depth + 1); step != nil {
				progressed = true
			}
		}

		if !progressed {
			return
		}
	}
}
