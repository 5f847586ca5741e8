// Package boardindex precomputes, once per puzzle, every lookup table the
// constraint catalogue and solver need: which cells can hold a suspect,
// which room/type each cell belongs to, which occupiable cells are
// orthogonally adjacent within the same room, and which cells share a row
// or column. All lookups are O(1) set membership after Build returns.
package boardindex

import (
	"fmt"

	"suspectgrid/internal/core"
)

// CellInfo is the precomputed metadata for one grid cell.
type CellInfo struct {
	Row, Col int
	Room     core.RoomID
	Type     core.CellType
}

// Index is the immutable, precomputed lookup structure for one puzzle.
// Safe to share by reference across solver instances on a single thread;
// nothing here is mutated after Build returns.
type Index struct {
	Rows, Cols int

	OccupiableCells  map[int]struct{}
	CellInfo         map[int]CellInfo
	RoomCells        map[core.RoomID]map[int]struct{}
	TypeCells        map[core.CellType]map[int]struct{}
	AdjacentSameRoom map[int]map[int]struct{}
	RowCells         map[int]map[int]struct{}
	ColCells         map[int]map[int]struct{}
}

// CellIndex converts a (row, col) pair into the flat index used throughout
// Index's lookup tables.
func (idx *Index) CellIndex(row, col int) int {
	return row*idx.Cols + col
}

// RowOf and ColOf invert CellIndex.
func (idx *Index) RowOf(cell int) int { return cell / idx.Cols }
func (idx *Index) ColOf(cell int) int { return cell % idx.Cols }

// Build materializes every lookup table from a puzzle's 2-D grid. Returns
// an error if the puzzle fails structural validation before any index is
// computed.
func Build(p *core.Puzzle) (*Index, error) {
	if err := core.ValidatePuzzle(p); err != nil {
		return nil, err
	}

	idx := &Index{
		Rows:             p.Rows(),
		Cols:             p.Cols(),
		OccupiableCells:  make(map[int]struct{}),
		CellInfo:         make(map[int]CellInfo),
		RoomCells:        make(map[core.RoomID]map[int]struct{}),
		TypeCells:        make(map[core.CellType]map[int]struct{}),
		AdjacentSameRoom: make(map[int]map[int]struct{}),
		RowCells:         make(map[int]map[int]struct{}),
		ColCells:         make(map[int]map[int]struct{}),
	}

	for r, row := range p.BoardLayout {
		for c, cell := range row {
			i := idx.CellIndex(r, c)
			idx.CellInfo[i] = CellInfo{Row: r, Col: c, Room: cell.Room, Type: cell.Type}

			if idx.TypeCells[cell.Type] == nil {
				idx.TypeCells[cell.Type] = make(map[int]struct{})
			}
			idx.TypeCells[cell.Type][i] = struct{}{}

			if cell.Room != "" {
				if idx.RoomCells[cell.Room] == nil {
					idx.RoomCells[cell.Room] = make(map[int]struct{})
				}
				idx.RoomCells[cell.Room][i] = struct{}{}
			}

			if core.IsOccupiable(cell.Type) {
				idx.OccupiableCells[i] = struct{}{}

				if idx.RowCells[r] == nil {
					idx.RowCells[r] = make(map[int]struct{})
				}
				idx.RowCells[r][i] = struct{}{}

				if idx.ColCells[c] == nil {
					idx.ColCells[c] = make(map[int]struct{})
				}
				idx.ColCells[c][i] = struct{}{}
			}
		}
	}

	for cell := range idx.OccupiableCells {
		info := idx.CellInfo[cell]
		neighbours := make(map[int]struct{})
		for _, n := range idx.orthogonalNeighbours(info.Row, info.Col) {
			if _, ok := idx.OccupiableCells[n]; !ok {
				continue
			}
			if idx.CellInfo[n].Room != info.Room {
				continue
			}
			neighbours[n] = struct{}{}
		}
		idx.AdjacentSameRoom[cell] = neighbours
	}

	return idx, nil
}

// orthogonalNeighbours returns the in-bounds N/S/E/W cell indices of (row,
// col). Connectivity is strictly 4-directional; diagonal cells never count
// as neighbours.
func (idx *Index) orthogonalNeighbours(row, col int) []int {
	var out []int
	if row > 0 {
		out = append(out, idx.CellIndex(row-1, col))
	}
	if row < idx.Rows-1 {
		out = append(out, idx.CellIndex(row+1, col))
	}
	if col > 0 {
		out = append(out, idx.CellIndex(row, col-1))
	}
	if col < idx.Cols-1 {
		out = append(out, idx.CellIndex(row, col+1))
	}
	return out
}

// CellsBesideType returns the occupiable cells that are orthogonal
// neighbours of any cell of type t and share that cell's room — the
// primitive behind the beside/notBeside constraints.
func (idx *Index) CellsBesideType(t core.CellType) map[int]struct{} {
	result := make(map[int]struct{})
	for typedCell := range idx.TypeCells[t] {
		info := idx.CellInfo[typedCell]
		for _, n := range idx.orthogonalNeighbours(info.Row, info.Col) {
			if _, ok := idx.OccupiableCells[n]; !ok {
				continue
			}
			if idx.CellInfo[n].Room != info.Room {
				continue
			}
			result[n] = struct{}{}
		}
	}
	return result
}

// Key returns the wire-form CellKey for a cell index.
func (idx *Index) Key(cell int) string {
	info := idx.CellInfo[cell]
	return core.Encode(info.Row, info.Col)
}

// CellByKey parses a CellKey and returns its cell index. Returns an error
// if the key does not refer to a cell on this puzzle's grid.
func (idx *Index) CellByKey(key string) (int, error) {
	row, col, err := core.Decode(key)
	if err != nil {
		return 0, err
	}
	if row < 0 || row >= idx.Rows || col < 0 || col >= idx.Cols {
		return 0, fmt.Errorf("boardindex: cell key %q out of bounds for %dx%d grid", key, idx.Rows, idx.Cols)
	}
	return idx.CellIndex(row, col), nil
}
