// Command hintreplay drives a puzzle end to end through the hint engine:
// call getNextHint, place the suspect it names at the single candidate
// cell it highlights, and repeat until every suspect is placed or a hint
// no longer narrows to one cell.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fatih/color"

	"suspectgrid/internal/hintengine"
	"suspectgrid/internal/puzzles"
	"suspectgrid/pkg/config"
	"suspectgrid/pkg/constants"
)

func main() {
	puzzleID := flag.String("puzzle", "", "id of the puzzle to replay (required)")
	flag.Parse()

	if *puzzleID == "" {
		log.Fatal("hintreplay: -puzzle is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("hintreplay: configuration error: %v", err)
	}
	if err := puzzles.LoadGlobal(cfg.PuzzlesFile); err != nil {
		log.Fatalf("hintreplay: could not load puzzle catalogue from %s: %v", cfg.PuzzlesFile, err)
	}

	puzzle, err := puzzles.Global().GetPuzzle(*puzzleID)
	if err != nil {
		log.Fatalf("hintreplay: %v", err)
	}

	placements := map[string]string{}
	for round := 1; round <= len(puzzle.Suspects)+1; round++ {
		hint, err := hintengine.GetNextHint(puzzle, placements)
		if err != nil {
			log.Fatalf("hintreplay: round %d: %v", round, err)
		}

		if hint.Suspect == "" {
			color.HiGreen("round %d: %s", round, hint.Message)
			break
		}

		if hint.Action != constants.HintActionPlace || len(hint.HighlightCells) != 1 {
			color.HiYellow("round %d: hint for %s did not narrow to a single cell (%s): %s",
				round, hint.Suspect, hint.Action, hint.Message)
			break
		}

		cell := hint.HighlightCells[0]
		placements[cell] = hint.Suspect
		fmt.Printf("round %d: place %s at %s — %s\n", round, hint.Suspect, cell, hint.Message)
	}

	color.HiWhite("\n%d of %d suspects placed.", len(placements), len(puzzle.Suspects))
}
