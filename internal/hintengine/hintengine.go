// Package hintengine implements the three host-facing operations: getNextHint,
// solveFromState, and getDebugState. It drives two independent solver.Solver
// instances per call — one that stops at the given placements (raw), one
// that additionally runs to a fixed point (solved) — so a curated hint can
// compare "what's true right now" against "what's true once every mechanical
// deduction has run."
package hintengine

import (
	"sort"
	"strings"

	"suspectgrid/internal/boardindex"
	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
	"suspectgrid/internal/solver"
	"suspectgrid/pkg/constants"
)

// GetNextHint returns the next hint a player should see: a curated hint if
// one's prerequisites are met and it still narrows the named suspect's
// candidates, otherwise the next mechanical deduction, otherwise a
// least-candidates fallback. placements maps wire-form CellKey to suspect id.
func GetNextHint(puzzle *core.Puzzle, placements map[string]string) (*core.Hint, error) {
	placedSuspects := suspectsPlaced(placements)
	if len(placedSuspects) >= len(puzzle.Suspects) {
		if allPlaced(puzzle, placedSuspects) {
			return &core.Hint{Message: "Every suspect has been placed.", HighlightCells: []string{}}, nil
		}
	}

	raw, err := solver.New(puzzle)
	if err != nil {
		return nil, err
	}
	if err := raw.Initialize(placements); err != nil {
		return nil, err
	}

	solved, err := solver.New(puzzle)
	if err != nil {
		return nil, err
	}
	if err := solved.Initialize(placements); err != nil {
		return nil, err
	}
	solved.Solve()

	idx := raw.Index()

	hints := append([]core.CuratedHint(nil), puzzle.Hints...)
	sort.Slice(hints, func(i, j int) bool { return hints[i].Order < hints[j].Order })

	for _, hint := range hints {
		if placedSuspects[hint.Suspect] {
			continue
		}
		if !allPrerequisitesPlaced(hint, placedSuspects) {
			continue
		}

		narrowed := filterByTarget(solved.GetCandidates(hint.Suspect), hint.Target, idx)
		if len(narrowed) == 0 {
			continue
		}

		rawNarrowed := filterByTarget(raw.GetCandidates(hint.Suspect), hint.Target, idx)
		if hint.SkipIfMoreThan != nil && len(rawNarrowed) > *hint.SkipIfMoreThan {
			continue
		}

		message := hint.Messages.Multiple
		if len(rawNarrowed) <= 1 {
			message = hint.Messages.Single
		}
		if hint.Messages.RoomBlocked != "" {
			if blocked := roomBlockedMessage(puzzle, solved, hint); blocked != "" {
				message = blocked
			}
		}

		action := constants.HintActionEliminate
		if len(narrowed) == 1 {
			action = constants.HintActionPlace
		}
		return &core.Hint{
			Message:        message,
			HighlightCells: sortedKeys(narrowed, idx),
			Suspect:        hint.Suspect,
			Action:         action,
		}, nil
	}

	if step := raw.SolveStep(); step != nil {
		return stepToHint(step), nil
	}

	return fallbackHint(puzzle, raw, placedSuspects), nil
}

// suspectsPlaced inverts a CellKey→SuspectId placements map into a set of
// placed suspect ids, the direction every other helper here wants to query.
func suspectsPlaced(placements map[string]string) map[string]bool {
	out := make(map[string]bool, len(placements))
	for _, sid := range placements {
		out[sid] = true
	}
	return out
}

func allPlaced(puzzle *core.Puzzle, placedSuspects map[string]bool) bool {
	for _, s := range puzzle.Suspects {
		if !placedSuspects[s.ID] {
			return false
		}
	}
	return true
}

func allPrerequisitesPlaced(hint core.CuratedHint, placedSuspects map[string]bool) bool {
	for _, req := range hint.Prerequisites {
		if !placedSuspects[req] {
			return false
		}
	}
	return true
}

// roomBlockedMessage handles an optional message substitution: when the
// hinted suspect carries an inRooms static constraint and only one of those
// rooms still has a candidate under solved, render hint.Messages.RoomBlocked
// with {blockedRooms} and {availableRoom} filled in. Returns "" when the
// substitution does not apply.
func roomBlockedMessage(puzzle *core.Puzzle, solved *solver.Solver, hint core.CuratedHint) string {
	var suspect core.Suspect
	found := false
	for _, s := range puzzle.Suspects {
		if s.ID == hint.Suspect {
			suspect, found = s, true
			break
		}
	}
	if !found {
		return ""
	}

	for _, c := range suspect.Constraints {
		if c.Kind != core.KindInRooms {
			continue
		}
		candidates := solved.GetCandidates(hint.Suspect)
		idx := solved.Index()
		var viable []core.RoomID
		for _, room := range c.Rooms {
			if len(cellset.Intersect(candidates, cellset.Set(idx.RoomCells[room]))) > 0 {
				viable = append(viable, room)
			}
		}
		if len(viable) != 1 {
			continue
		}
		var blocked []string
		for _, room := range c.Rooms {
			if room != viable[0] {
				blocked = append(blocked, string(room))
			}
		}
		msg := hint.Messages.RoomBlocked
		msg = strings.ReplaceAll(msg, "{blockedRooms}", strings.Join(blocked, ", "))
		msg = strings.ReplaceAll(msg, "{availableRoom}", string(viable[0]))
		return msg
	}
	return ""
}

func stepToHint(step *core.SolveStep) *core.Hint {
	action := constants.HintActionEliminate
	highlight := step.EliminatedCells
	if step.CellKey != "" {
		action = constants.HintActionPlace
		highlight = []string{step.CellKey}
	}
	return &core.Hint{
		Message:        step.Message,
		HighlightCells: highlight,
		Suspect:        step.SuspectID,
		Action:         action,
	}
}

// fallbackHint is the last resort when no curated or mechanical hint
// applies: of the suspects missing from the host's placements, the one with
// the fewest raw candidates, echoing its presentational clue. A suspect the
// raw solver already placed by propagation still counts as unplaced here.
func fallbackHint(puzzle *core.Puzzle, raw *solver.Solver, placedSuspects map[string]bool) *core.Hint {
	var unplaced []string
	for _, s := range puzzle.Suspects {
		if !placedSuspects[s.ID] {
			unplaced = append(unplaced, s.ID)
		}
	}
	if len(unplaced) == 0 {
		return &core.Hint{Message: "Every suspect has been placed.", HighlightCells: []string{}}
	}

	best := unplaced[0]
	bestCandidates := raw.GetCandidates(best)
	for _, sid := range unplaced[1:] {
		if c := raw.GetCandidates(sid); len(c) < len(bestCandidates) {
			best, bestCandidates = sid, c
		}
	}

	clue := best
	for _, s := range puzzle.Suspects {
		if s.ID == best {
			clue = s.Clue
			break
		}
	}
	return &core.Hint{
		Message:        clue,
		HighlightCells: sortedKeys(bestCandidates, raw.Index()),
		Suspect:        best,
	}
}

// SolveFromState runs the solver to a fixed point from the given placements
// and returns the full step trace alongside the final solved/unplaced
// status. placements maps wire-form CellKey to suspect id.
func SolveFromState(puzzle *core.Puzzle, placements map[string]string) (*core.SolveResult, error) {
	s, err := solver.New(puzzle)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(placements); err != nil {
		return nil, err
	}
	steps := s.Solve()
	return &core.SolveResult{
		Steps:    steps,
		Solved:   s.IsSolved(),
		Unplaced: s.Unplaced(),
	}, nil
}

// GetDebugState returns the full candidate state reached by Initialize alone
// — the given placements plus the naked-single propagation Initialize runs
// from them — without a further Solve(), so deductions of the later pipeline
// stages are not reflected. placements maps wire-form CellKey to suspect id.
func GetDebugState(puzzle *core.Puzzle, placements map[string]string) (*core.DebugState, error) {
	s, err := solver.New(puzzle)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(placements); err != nil {
		return nil, err
	}

	idx := s.Index()
	cellCandidates := make(map[string][]string)
	for cell := range idx.OccupiableCells {
		key := idx.Key(cell)
		if suspects := s.GetCellCandidates(key); len(suspects) > 0 {
			cellCandidates[key] = suspects
		}
	}

	suspectCandidates := make(map[string][]string)
	for _, suspect := range puzzle.Suspects {
		suspectCandidates[suspect.ID] = sortedKeys(s.GetCandidates(suspect.ID), idx)
	}

	return &core.DebugState{
		CellCandidates:    cellCandidates,
		SuspectCandidates: suspectCandidates,
		Placed:            s.Placed(),
	}, nil
}

// filterByTarget narrows candidates down to the subset a curated hint's
// target describes.
func filterByTarget(candidates cellset.Set, target core.CuratedHintTarget, idx *boardindex.Index) cellset.Set {
	switch target.Type {
	case "room":
		return cellset.Intersect(candidates, cellset.Set(idx.RoomCells[target.Room]))
	case "rooms":
		sets := make([]cellset.Set, 0, len(target.Rooms))
		for _, r := range target.Rooms {
			sets = append(sets, cellset.Set(idx.RoomCells[r]))
		}
		return cellset.Intersect(candidates, cellset.Union(sets...))
	case "cellType":
		narrowed := cellset.Intersect(candidates, cellset.Set(idx.TypeCells[target.CellType]))
		if target.Room != "" {
			narrowed = cellset.Intersect(narrowed, cellset.Set(idx.RoomCells[target.Room]))
		}
		return narrowed
	case "adjacentTo":
		return cellset.Intersect(candidates, cellset.Set(idx.CellsBesideType(target.AdjacentTo)))
	case "row":
		return cellset.Intersect(candidates, cellset.Set(idx.RowCells[target.Row]))
	case "any":
		return candidates
	default:
		return candidates
	}
}

func sortedKeys(set cellset.Set, idx *boardindex.Index) []string {
	out := make([]string, 0, len(set))
	for _, c := range cellset.Sorted(set) {
		out = append(out, idx.Key(c))
	}
	return out
}
