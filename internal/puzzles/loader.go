// Package puzzles loads the puzzle catalogue from disk once per process:
// a sync.Once-guarded global, overridable for tests via SetGlobal.
package puzzles

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"suspectgrid/internal/core"
)

// PuzzleFile is the top-level structure of the puzzle catalogue JSON file:
// a flat array of puzzles in their wire format.
type PuzzleFile struct {
	Puzzles []core.Puzzle `json:"puzzles"`
}

// Loader holds the puzzle catalogue, keyed by id, safe for concurrent
// reads.
type Loader struct {
	byID map[string]*core.Puzzle
	ids  []string
	mu   sync.RWMutex
}

var (
	globalLoader *Loader
	loadOnce     sync.Once
	loadErr      error
)

// Load reads and validates every puzzle in a catalogue file.
func Load(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle catalogue file: %w", err)
	}

	var file PuzzleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle catalogue file: %w", err)
	}

	return newLoader(file.Puzzles)
}

func newLoader(in []core.Puzzle) (*Loader, error) {
	l := &Loader{byID: make(map[string]*core.Puzzle, len(in))}
	for i := range in {
		p := &in[i]
		if err := core.ValidatePuzzle(p); err != nil {
			return nil, fmt.Errorf("puzzle %q: %w", p.ID, err)
		}
		if _, dup := l.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate puzzle id %q", p.ID)
		}
		l.byID[p.ID] = p
		l.ids = append(l.ids, p.ID)
	}
	return l, nil
}

// LoadGlobal loads the catalogue into the process-wide singleton exactly
// once; subsequent calls are no-ops that return the first call's error.
func LoadGlobal(path string) error {
	loadOnce.Do(func() {
		globalLoader, loadErr = Load(path)
	})
	return loadErr
}

// Global returns the process-wide loader, or nil if LoadGlobal has not run.
func Global() *Loader {
	return globalLoader
}

// SetGlobal overrides the process-wide loader; used by tests and by hosts
// that build a catalogue in memory instead of from a file.
func SetGlobal(l *Loader) {
	globalLoader = l
}

// NewLoaderFromPuzzles builds a Loader directly from in-memory puzzles,
// skipping the file-read step (used by tests).
func NewLoaderFromPuzzles(in []core.Puzzle) (*Loader, error) {
	return newLoader(in)
}

// Count returns the number of puzzles in the catalogue.
func (l *Loader) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids)
}

// IDs returns every puzzle id in the catalogue, in load order.
func (l *Loader) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.ids...)
}

// GetPuzzle returns a puzzle by id.
func (l *Loader) GetPuzzle(id string) (*core.Puzzle, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown puzzle id %q", id)
	}
	return p, nil
}
