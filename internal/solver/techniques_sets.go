package solver

import (
	"fmt"
	"sort"

	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
	"suspectgrid/pkg/constants"
)

// tryNakedSets is pipeline stage 4: naked row-set, then naked column-set.
func (s *Solver) tryNakedSets() *core.SolveStep {
	if step := s.nakedSet(true); step != nil {
		return step
	}
	return s.nakedSet(false)
}

// nakedSet searches for a group of k unplaced suspects (2 ≤ k ≤
// min(#unplaced-1, 6)) whose combined candidates span exactly k lines
// (rows if isRow, columns otherwise). Combinations are generated over
// suspect ids in ascending lexicographic order, and k grows from 2 up, so
// identical inputs always produce the same group and the same step.
func (s *Solver) nakedSet(isRow bool) *core.SolveStep {
	primaryLineOf := s.index.ColOf
	primaryLineCells := s.index.ColCells
	secondaryLineOf := s.index.RowOf
	secondaryLineCells := s.index.RowCells
	technique := constants.TechniqueNakedColumnSet
	primaryWord, secondaryWord := "column", "row"
	if isRow {
		primaryLineOf, secondaryLineOf = secondaryLineOf, primaryLineOf
		primaryLineCells, secondaryLineCells = secondaryLineCells, primaryLineCells
		technique = constants.TechniqueNakedRowSet
		primaryWord, secondaryWord = "row", "column"
	}

	ids := make([]string, 0, len(s.order))
	for _, sid := range s.order {
		if _, done := s.placed[sid]; !done {
			ids = append(ids, sid)
		}
	}
	sort.Strings(ids)

	n := len(ids)
	maxK := n - 1
	if maxK > constants.MaxNakedSetSize {
		maxK = constants.MaxNakedSetSize
	}

	for k := 2; k <= maxK; k++ {
		var found *core.SolveStep
		combinations(n, k, func(idxs []int) bool {
			group := make([]string, k)
			inGroup := make(map[string]bool, k)
			for i, gi := range idxs {
				group[i] = ids[gi]
				inGroup[group[i]] = true
			}

			lines := make(map[int]bool)
			for _, gid := range group {
				for c := range s.candidates[gid] {
					lines[primaryLineOf(c)] = true
				}
			}
			if len(lines) != k {
				return false
			}

			claimed := make([]cellset.Set, 0, k)
			for line := range lines {
				claimed = append(claimed, primaryLineCells[line])
			}
			lineSet := cellset.Union(claimed...)

			for _, other := range ids {
				if inGroup[other] {
					continue
				}
				eliminated := s.restrict(other, cellset.Subtract(s.candidates[other], lineSet))
				if len(eliminated) == 0 {
					continue
				}
				found = s.logElimination(technique, other, eliminated, fmt.Sprintf(
					"%v together occupy exactly %d %ss, eliminating %s from the rest", group, k, primaryWord, other,
				))
				return true
			}

			sortedLines := make([]int, 0, len(lines))
			for line := range lines {
				sortedLines = append(sortedLines, line)
			}
			sort.Ints(sortedLines)
			for _, line := range sortedLines {
				within := make(cellset.Set)
				for _, gid := range group {
					for c := range s.candidates[gid] {
						if primaryLineOf(c) == line {
							within[c] = struct{}{}
						}
					}
				}
				secLine, uniform := soleLine(within, secondaryLineOf)
				if !uniform {
					continue
				}
				secCells := secondaryLineCells[secLine]
				for _, other := range ids {
					if inGroup[other] {
						continue
					}
					eliminated := s.restrict(other, cellset.Subtract(s.candidates[other], secCells))
					if len(eliminated) == 0 {
						continue
					}
					found = s.logElimination(technique, other, eliminated, fmt.Sprintf(
						"%v's candidates in %s %d all fall in %s %d, eliminating %s", group, primaryWord, line, secondaryWord, secLine, other,
					))
					return true
				}
			}
			return false
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// combinations calls visit once for every ascending k-subset (as indices
// into a conceptual 0..n-1 slice) in lexicographic order, stopping as soon
// as visit returns true.
func combinations(n, k int, visit func(idxs []int) bool) {
	if k <= 0 || k > n {
		return
	}
	idxs := make([]int, k)
	var rec func(start, depth int) bool
	rec = func(start, depth int) bool {
		if depth == k {
			return visit(idxs)
		}
		for i := start; i <= n-(k-depth); i++ {
			idxs[depth] = i
			if rec(i+1, depth+1) {
				return true
			}
		}
		return false
	}
	rec(0, 0)
}
