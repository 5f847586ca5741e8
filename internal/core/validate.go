package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// ValidatePuzzle checks that a puzzle is well-formed before a board index or
// solver is built from it. This is construction-time validation only — it
// never reports an unsolvable state, only a malformed one.
//
// Field-level requirements (a positive grid size, at least one suspect, a
// non-empty id on every suspect) are expressed as validator struct tags, the
// same binding idiom gin's ShouldBindJSON already uses elsewhere in this
// module. Cross-field checks a struct tag cannot express — matching grid
// dimensions, cells and constraints that reference declared rooms, distinct
// suspect ids, constraints that reference real suspects — are plain Go
// below. Cell types are not checked: a cell or constraint naming an unknown
// cell type passes validation.
func ValidatePuzzle(p *Puzzle) error {
	if err := structValidator.Struct(p); err != nil {
		return fmt.Errorf("core: invalid puzzle: %w", err)
	}

	if len(p.BoardLayout) != p.GridSize {
		return fmt.Errorf("core: invalid puzzle: gridSize %d but boardLayout has %d rows", p.GridSize, len(p.BoardLayout))
	}
	for r, row := range p.BoardLayout {
		if len(row) != p.GridSize {
			return fmt.Errorf("core: invalid puzzle: row %d has %d cells, want %d", r, len(row), p.GridSize)
		}
		for c, cell := range row {
			if cell.Room != "" {
				if _, ok := p.Rooms[cell.Room]; !ok {
					return fmt.Errorf("core: invalid puzzle: cell %d-%d references unknown room %q", r, c, cell.Room)
				}
			}
		}
	}

	seenIDs := make(map[string]bool, len(p.Suspects))
	for _, s := range p.Suspects {
		if seenIDs[s.ID] {
			return fmt.Errorf("core: invalid puzzle: duplicate suspect id %q", s.ID)
		}
		seenIDs[s.ID] = true
	}

	for _, s := range p.Suspects {
		for _, c := range s.Constraints {
			if err := validateConstraintReferences(c, seenIDs, p.Rooms); err != nil {
				return fmt.Errorf("core: invalid puzzle: suspect %q: %w", s.ID, err)
			}
		}
	}

	return nil
}

func validateConstraintReferences(c Constraint, suspectIDs map[string]bool, rooms map[RoomID]RoomInfo) error {
	if c.SuspectID != "" && !suspectIDs[c.SuspectID] {
		return fmt.Errorf("constraint %q references unknown suspect %q", c.Kind, c.SuspectID)
	}
	if c.Room != "" {
		if _, ok := rooms[c.Room]; !ok {
			return fmt.Errorf("constraint %q references unknown room %q", c.Kind, c.Room)
		}
	}
	for _, r := range c.Rooms {
		if _, ok := rooms[r]; !ok {
			return fmt.Errorf("constraint %q references unknown room %q", c.Kind, r)
		}
	}
	return nil
}
