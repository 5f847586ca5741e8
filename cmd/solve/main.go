// Command solve drives solveFromState for a single puzzle from the command
// line and dumps the resulting step trace as a table plus a solved/unsolved
// summary, colorized the way the reference Cluedo toolbox renders its card
// tables.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"suspectgrid/internal/core"
	"suspectgrid/internal/hintengine"
	"suspectgrid/internal/puzzles"
	"suspectgrid/pkg/config"
)

func main() {
	puzzleID := flag.String("puzzle", "", "id of the puzzle to solve (required)")
	flag.Parse()

	if *puzzleID == "" {
		log.Fatal("solve: -puzzle is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("solve: configuration error: %v", err)
	}
	if err := puzzles.LoadGlobal(cfg.PuzzlesFile); err != nil {
		log.Fatalf("solve: could not load puzzle catalogue from %s: %v", cfg.PuzzlesFile, err)
	}

	puzzle, err := puzzles.Global().GetPuzzle(*puzzleID)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	result, err := hintengine.SolveFromState(puzzle, nil)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	printTrace(result.Steps)
	printSummary(puzzle, result)

	if !result.Solved {
		os.Exit(1)
	}
}

func printTrace(steps []core.SolveStep) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Technique", "Suspect", "Cell", "Message"})
	for i, step := range steps {
		t.AppendRow(table.Row{i + 1, step.Technique, step.SuspectID, step.CellKey, step.Message})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func printSummary(puzzle *core.Puzzle, result *core.SolveResult) {
	if result.Solved {
		color.HiGreen("\n%s solved in %d steps.", puzzle.Name, len(result.Steps))
		return
	}
	color.HiRed("\n%s did not solve. Unplaced suspects:", puzzle.Name)
	for _, sid := range result.Unplaced {
		fmt.Printf("  - %s\n", sid)
	}
}
