// Package core defines the puzzle data model shared by the board index,
// constraint catalogue, solver, and hint engine: suspects, constraints,
// cells, and the records the solver and hint engine hand back to a host.
package core

// CellType enumerates every cell type a puzzle's grid may use. Occupiable
// membership is fixed across puzzles (see OccupiableCellTypes) — a puzzle
// cannot make a cell type occupiable or not on a per-puzzle basis.
type CellType string

const (
	CellEmpty      CellType = "empty"
	CellCarpet     CellType = "carpet"
	CellChair      CellType = "chair"
	CellTV         CellType = "tv"
	CellShelf      CellType = "shelf"
	CellTable      CellType = "table"
	CellFlowers    CellType = "flowers"
	CellLilyPad    CellType = "lilyPad"
	CellTree       CellType = "tree"
	CellBush       CellType = "bush"
	CellBed        CellType = "bed"
	CellCouch      CellType = "couch"
	CellPondWater  CellType = "pondWater"
	CellHorse      CellType = "horse"
	CellPlant      CellType = "plant"
	CellTrack      CellType = "track"
	CellFinishLine CellType = "finishingLine"
	CellOilSlick   CellType = "oilSlick"
	CellBonsai     CellType = "bonsai"
	CellCactus     CellType = "cactus"
	CellShrub      CellType = "shrub"
	CellPath       CellType = "path"
	CellBox        CellType = "box"
	CellCar        CellType = "car"
)

// OccupiableCellTypes is the single authoritative set of cell types a
// suspect may stand on; nothing else in the module may redeclare it.
var OccupiableCellTypes = map[CellType]bool{
	CellEmpty:     true,
	CellCarpet:    true,
	CellChair:     true,
	CellPondWater: true,
	CellHorse:     true,
	CellPath:      true,
	CellOilSlick:  true,
	CellCar:       true,
	CellBed:       true,
	CellTrack:     true,
}

// IsOccupiable reports whether a cell type may ever hold a suspect.
func IsOccupiable(t CellType) bool {
	return OccupiableCellTypes[t]
}

// Gender tags a suspect for gender-scoped constraints.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// RoomID identifies a room. Rooms are named contiguous subsets of cells.
type RoomID string

// Cell is one square of the grid.
type Cell struct {
	Room RoomID   `json:"room"`
	Type CellType `json:"type"`
}

// RoomInfo is the presentational metadata for a room.
type RoomInfo struct {
	DisplayName string `json:"displayName"`
	Colour      string `json:"colour,omitempty"`
}

// ConstraintKind is the closed set of constraint variants a puzzle may use.
// Modeled as a closed tagged variant (a string enum plus one struct), not
// an open interface, since the set of kinds is fixed and every kind's
// evaluation logic lives centrally rather than per-type.
type ConstraintKind string

const (
	KindInRoom                     ConstraintKind = "inRoom"
	KindInRooms                    ConstraintKind = "inRooms"
	KindInRow                      ConstraintKind = "inRow"
	KindInColumns                  ConstraintKind = "inColumns"
	KindOnCellType                 ConstraintKind = "onCellType"
	KindNotOnCellType              ConstraintKind = "notOnCellType"
	KindBeside                     ConstraintKind = "beside"
	KindNotBeside                  ConstraintKind = "notBeside"
	KindAlone                      ConstraintKind = "alone"
	KindAloneWith                  ConstraintKind = "aloneWith"
	KindAloneWithGender            ConstraintKind = "aloneWithGender"
	KindWithPerson                 ConstraintKind = "withPerson"
	KindInRoomWithPersonOnCellType ConstraintKind = "inRoomWithPersonOnCellType"
	KindInRoomWithPersonBesideType ConstraintKind = "inRoomWithPersonBesideCellType"
	KindOnlyPersonOnCellType       ConstraintKind = "onlyPersonOnCellType"
	KindRelativeRow                ConstraintKind = "relativeRow"
	KindAheadOf                    ConstraintKind = "aheadOf"
	KindVictim                     ConstraintKind = "victim"
)

// StaticKinds are evaluated once at Solver.Initialize; everything else is
// dynamic and consulted during propagation.
var StaticKinds = map[ConstraintKind]bool{
	KindInRoom:        true,
	KindInRooms:       true,
	KindOnCellType:    true,
	KindNotOnCellType: true,
	KindBeside:        true,
	KindNotBeside:     true,
	KindInColumns:     true,
	KindInRow:         true,
}

// IsStatic reports whether a constraint kind is a static geometry filter.
func IsStatic(k ConstraintKind) bool {
	return StaticKinds[k]
}

// Constraint is a single tagged-variant value carrying the union of all
// fields any kind needs; only the fields relevant to Kind are populated.
// Suspects are referenced by id only, never by pointer, since constraints
// and suspects would otherwise reference each other cyclically.
type Constraint struct {
	Kind      ConstraintKind `json:"kind"`
	Room      RoomID         `json:"room,omitempty"`
	Rooms     []RoomID       `json:"rooms,omitempty"`
	Row       int            `json:"row,omitempty"`
	Cols      []int          `json:"cols,omitempty"`
	CellType  CellType       `json:"cellType,omitempty"`
	Gender    Gender         `json:"gender,omitempty"`
	SuspectID string         `json:"suspect,omitempty"`
	RowOffset int            `json:"rowOffset,omitempty"`
}

// Suspect is a placeable entity. Logic comes only from Constraints; Clue is
// purely presentational.
type Suspect struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar,omitempty"`
	Color       string       `json:"color,omitempty"`
	Gender      Gender       `json:"gender,omitempty"`
	IsVictim    bool         `json:"isVictim,omitempty"`
	Clue        string       `json:"clue"`
	Constraints []Constraint `json:"constraints"`
}

// CellRef is a (row, col) pair used at the wire boundary (solutions,
// curated-hint targets). Internally the solver prefers CellKey strings and
// integer cell indices; CellRef exists only where the puzzle JSON needs it.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CuratedHintTarget narrows a suspect's candidates to the subset a curated
// hint wants to highlight.
type CuratedHintTarget struct {
	Type       string   `json:"type"` // room|rooms|cellType|adjacentTo|row|any
	Room       RoomID   `json:"room,omitempty"`
	Rooms      []RoomID `json:"rooms,omitempty"`
	CellType   CellType `json:"cellType,omitempty"`
	AdjacentTo CellType `json:"adjacentTo,omitempty"`
	Row        int      `json:"row,omitempty"`
}

// CuratedHintMessages holds the message variants a curated hint may choose
// between once the raw (unsolved) candidate count is known.
type CuratedHintMessages struct {
	Single      string `json:"single"`
	Multiple    string `json:"multiple"`
	RoomBlocked string `json:"roomBlocked,omitempty"`
}

// CuratedHint is one entry in a puzzle's author-written hint script.
type CuratedHint struct {
	Suspect        string              `json:"suspect"`
	Order          int                 `json:"order"`
	Prerequisites  []string            `json:"prerequisites,omitempty"`
	Target         CuratedHintTarget   `json:"target"`
	Messages       CuratedHintMessages `json:"messages"`
	SkipIfMoreThan *int                `json:"skipIfMoreThan,omitempty"`
}

// Puzzle is the immutable input to the board index and solver.
type Puzzle struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Subtitle       string              `json:"subtitle,omitempty"`
	Difficulty     string              `json:"difficulty,omitempty"`
	GridSize       int                 `json:"gridSize" validate:"required,gt=0"`
	BoardLayout    [][]Cell            `json:"boardLayout" validate:"required"`
	Rooms          map[RoomID]RoomInfo `json:"rooms"`
	Suspects       []Suspect           `json:"suspects" validate:"required,min=1,dive"`
	Solution       map[string]CellRef  `json:"solution,omitempty"`
	Hints          []CuratedHint       `json:"hints,omitempty"`
	TrackPositions map[string]int      `json:"trackPositions,omitempty"`
	Victim         string              `json:"victim,omitempty"`
	Murderer       string              `json:"murderer,omitempty"`
	CrimeRoom      RoomID              `json:"crimeRoom,omitempty"`
}

// Rows returns the grid's row count (boards are always square).
func (p *Puzzle) Rows() int { return p.GridSize }

// Cols returns the grid's column count (boards are always square).
func (p *Puzzle) Cols() int { return p.GridSize }

// SolveStep is one entry in the solver's append-only trace. A step either
// places a suspect (CellKey set), eliminates candidates (EliminatedCells
// set), or both.
type SolveStep struct {
	Technique       string   `json:"technique"`
	SuspectID       string   `json:"suspectId,omitempty"`
	CellKey         string   `json:"cellKey,omitempty"`
	Message         string   `json:"message"`
	HighlightCells  []string `json:"highlightCells,omitempty"`
	EliminatedCells []string `json:"eliminatedCells,omitempty"`
}

// Hint is the envelope getNextHint returns to a host.
type Hint struct {
	Message        string   `json:"message"`
	HighlightCells []string `json:"highlightCells"`
	Suspect        string   `json:"suspect,omitempty"`
	Action         string   `json:"action,omitempty"`
}

// SolveResult is what solveFromState returns.
type SolveResult struct {
	Steps    []SolveStep `json:"steps"`
	Solved   bool        `json:"solved"`
	Unplaced []string    `json:"unplaced"`
}

// DebugState is what getDebugState returns.
type DebugState struct {
	CellCandidates    map[string][]string `json:"cellCandidates"`
	SuspectCandidates map[string][]string `json:"suspectCandidates"`
	Placed            map[string]string   `json:"placed"`
}
