// Package constants holds the small set of limits and labels shared across
// the board index, constraint catalogue, solver, and hint engine.
package constants

// Solver limits: bounded caps that keep propagation and backtracking
// terminating, not timeouts.
const (
	MaxSolveIterations = 200 // hard cap on Solver.Solve's repeated SolveStep calls
	MaxBacktrackRounds = 100 // per-branch propagation cap during contradiction elimination
	MaxNakedSetSize    = 6   // upper bound on naked row/col-set group size
	MaxBacktrackDepth  = 1   // one recursive level of backtracking within backtracking
)

// Hint envelope actions.
const (
	HintActionPlace     = "place"
	HintActionEliminate = "eliminate"
)

// Technique identifiers, in the solver's fixed pipeline order.
const (
	TechniqueNakedSingle       = "naked-single"
	TechniqueRowSingle         = "row-single"
	TechniqueColumnSingle      = "column-single"
	TechniqueRowClaiming       = "row-claiming"
	TechniqueColumnClaiming    = "column-claiming"
	TechniqueNakedRowSet       = "naked-row-set"
	TechniqueNakedColumnSet    = "naked-column-set"
	TechniqueRoomConstraint    = "room-constraint"
	TechniqueOnlyPersonOnType  = "only-person-on-type"
	TechniqueRelativeRow       = "relative-row"
	TechniquePointingGroup     = "pointing-group"
	TechniqueContradictionElim = "contradiction-elimination"
)

// Default port / puzzle file for the demo HTTP transport and CLI tools.
const (
	DefaultPort        = "8080"
	DefaultPuzzlesFile = "./internal/puzzles/testdata/puzzles.json"
)

// APIVersion is reported by the demo transport's health endpoint.
const APIVersion = "1.0.0"
