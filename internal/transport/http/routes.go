// Package http is a thin demo/debug transport over the engine: endpoints
// that do nothing but bind a request (a JSON body, or the query string for
// GET /api/debug-state), call into internal/hintengine or the puzzle
// catalogue, and return the result as JSON. It exists to exercise the engine's
// host-facing entry points the way a real consumer would.
package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"suspectgrid/internal/core"
	"suspectgrid/internal/hintengine"
	"suspectgrid/internal/puzzles"
	"suspectgrid/pkg/config"
	"suspectgrid/pkg/constants"
)

var cfg *config.Config

// RegisterRoutes wires the demo API onto r.
func RegisterRoutes(r *gin.Engine, c *config.Config) {
	cfg = c

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.GET("/puzzles", listPuzzlesHandler)
		api.GET("/puzzles/:id", getPuzzleHandler)
		api.POST("/hint", hintHandler)
		api.POST("/solve", solveHandler)
		api.GET("/debug-state", debugStateHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

func listPuzzlesHandler(c *gin.Context) {
	loader := puzzles.Global()
	if loader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "puzzle catalogue not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": loader.IDs()})
}

func getPuzzleHandler(c *gin.Context) {
	loader := puzzles.Global()
	if loader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "puzzle catalogue not loaded"})
		return
	}
	p, err := loader.GetPuzzle(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// stateRequest is the shared body shape for every endpoint that drives the
// engine from a puzzle id and a partial placement set. Placements maps
// wire-form CellKey to suspect id.
type stateRequest struct {
	PuzzleID   string            `json:"puzzleId" binding:"required"`
	Placements map[string]string `json:"placements"`
}

func hintHandler(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, loaderErr := lookupPuzzle(c, req.PuzzleID)
	if loaderErr {
		return
	}

	hint, err := hintengine.GetNextHint(puzzle, req.Placements)
	if err != nil {
		log.Printf("ERROR [hint]: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, hint)
}

func solveHandler(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, loaderErr := lookupPuzzle(c, req.PuzzleID)
	if loaderErr {
		return
	}

	result, err := hintengine.SolveFromState(puzzle, req.Placements)
	if err != nil {
		log.Printf("ERROR [solve]: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// debugStateHandler takes its puzzle id and placements as query parameters
// (GET, no body): ?puzzleId=...&placements={"0-0":"alice",...}, the
// placements value itself JSON-encoded since a GET request carries no body.
func debugStateHandler(c *gin.Context) {
	puzzleID := c.Query("puzzleId")
	if puzzleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "puzzleId is required"})
		return
	}

	placements, err := parsePlacementsQuery(c.Query("placements"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, loaderErr := lookupPuzzle(c, puzzleID)
	if loaderErr {
		return
	}

	state, err := hintengine.GetDebugState(puzzle, placements)
	if err != nil {
		log.Printf("ERROR [debug-state]: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

func parsePlacementsQuery(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var placements map[string]string
	if err := json.Unmarshal([]byte(raw), &placements); err != nil {
		return nil, fmt.Errorf("placements: %w", err)
	}
	return placements, nil
}

// lookupPuzzle writes the appropriate error response itself when the
// catalogue isn't loaded or the id is unknown, returning bail=true so the
// caller can return immediately.
func lookupPuzzle(c *gin.Context, id string) (puzzle *core.Puzzle, bail bool) {
	loader := puzzles.Global()
	if loader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "puzzle catalogue not loaded"})
		return nil, true
	}
	p, err := loader.GetPuzzle(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, true
	}
	return p, false
}
