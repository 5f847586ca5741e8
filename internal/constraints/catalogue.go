package constraints

import (
	"suspectgrid/internal/boardindex"
	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
)

// Catalogue binds a constraint lookup to one puzzle's board index. It has
// no enable/disable toggles — the constraint kinds it resolves are a fixed,
// closed set.
type Catalogue struct {
	idx *boardindex.Index
}

// New builds a Catalogue bound to idx.
func New(idx *boardindex.Index) *Catalogue {
	return &Catalogue{idx: idx}
}

// InitialCandidates computes a suspect's starting candidate set: every
// occupiable cell, narrowed by each of the suspect's static constraints in
// declaration order.
func (cat *Catalogue) InitialCandidates(s core.Suspect) cellset.Set {
	candidates := cellset.Clone(cellset.Set(cat.idx.OccupiableCells))
	for _, c := range s.Constraints {
		if IsStatic(c.Kind) {
			candidates = StaticFilter(candidates, c, cat.idx)
		}
	}
	return candidates
}

// StaticConstraints returns the subset of a suspect's constraints resolved
// once at initialization.
func StaticConstraints(s core.Suspect) []core.Constraint {
	var out []core.Constraint
	for _, c := range s.Constraints {
		if IsStatic(c.Kind) {
			out = append(out, c)
		}
	}
	return out
}

// DynamicConstraints returns the subset of a suspect's constraints consulted
// during propagation.
func DynamicConstraints(s core.Suspect) []core.Constraint {
	var out []core.Constraint
	for _, c := range s.Constraints {
		if !IsStatic(c.Kind) {
			out = append(out, c)
		}
	}
	return out
}
