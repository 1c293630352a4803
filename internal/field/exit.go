// Package field builds the static floor fields that steer pedestrians toward
// exits. Each exit owns a distance field over the whole grid; the set combines
// them cell-wise into the final closest-exit field.
package field

import (
	"errors"
	"fmt"
	"math"

	"evac-ca/internal/core"
)

// Unreachable is the sentinel field value for cells no walkable path serves.
var Unreachable = math.Inf(1)

var (
	// ErrInaccessibleExit reports a doorway that no walkable cell can reach,
	// or a configuration with nowhere to place pedestrians. Callers skip the
	// affected simulation set and carry on.
	ErrInaccessibleExit = errors.New("inaccessible exit")

	// ErrOutOfBounds reports exit coordinates outside the grid.
	ErrOutOfBounds = errors.New("exit coordinates outside the grid")

	// ErrObstacleCell reports exit coordinates on a non-walkable cell. A
	// doorway inside a wall would seed the field through the obstacle while
	// no pedestrian could ever step onto it.
	ErrObstacleCell = errors.New("exit cell on an obstacle")

	// ErrNotAdjacent reports an expansion cell that does not touch the exit.
	ErrNotAdjacent = errors.New("cell not adjacent to the exit")

	// ErrNoExits reports a build attempt on a set with no registered exits.
	ErrNoExits = errors.New("no exits registered")
)

// Exit is one doorway: an ordered run of contiguous cells plus its own
// distance field over the whole grid.
type Exit struct {
	cells []core.Location
	field *core.FloatGrid
}

// Width returns the doorway span in cells.
func (e *Exit) Width() int { return len(e.cells) }

// Cells returns the doorway cells in registration order.
func (e *Exit) Cells() []core.Location { return e.cells }

// Field exposes the exit's individual distance field. Nil until the owning
// set has been built.
func (e *Exit) Field() *core.FloatGrid { return e.field }

func (e *Exit) contains(loc core.Location) bool {
	for _, c := range e.cells {
		if c == loc {
			return true
		}
	}
	return false
}

func (e *Exit) touches(loc core.Location) bool {
	for _, c := range e.cells {
		dx, dy := loc.X-c.X, loc.Y-c.Y
		if dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 {
			return true
		}
	}
	return false
}

// Set owns every exit of one simulation configuration plus the combined
// closest-exit field.
type Set struct {
	env      *core.Environment
	diagonal bool
	exits    []*Exit
	final    *core.FloatGrid
}

// NewSet prepares an empty exit set over the given environment. When diagonal
// is true, diagonal steps cost 1.5 against 1.0 for orthogonal ones; otherwise
// only the 4-neighborhood is traversed.
func NewSet(env *core.Environment, diagonal bool) *Set {
	return &Set{env: env, diagonal: diagonal}
}

// AddExit registers a new single-cell doorway and returns it for expansion.
// The cell must be walkable.
func (s *Set) AddExit(loc core.Location) (*Exit, error) {
	if !s.env.InBounds(loc.X, loc.Y) {
		return nil, fmt.Errorf("add exit (%d,%d): %w", loc.X, loc.Y, ErrOutOfBounds)
	}
	if !s.env.IsWalkable(loc.X, loc.Y) {
		return nil, fmt.Errorf("add exit (%d,%d): %w", loc.X, loc.Y, ErrObstacleCell)
	}
	e := &Exit{cells: []core.Location{loc}}
	s.exits = append(s.exits, e)
	return e, nil
}

// Expand appends a cell to an existing doorway. The cell must be walkable and
// touch one of the doorway's current cells so the exit stays contiguous.
func (s *Set) Expand(e *Exit, loc core.Location) error {
	if !s.env.InBounds(loc.X, loc.Y) {
		return fmt.Errorf("expand exit to (%d,%d): %w", loc.X, loc.Y, ErrOutOfBounds)
	}
	if !s.env.IsWalkable(loc.X, loc.Y) {
		return fmt.Errorf("expand exit to (%d,%d): %w", loc.X, loc.Y, ErrObstacleCell)
	}
	if e.contains(loc) {
		return nil
	}
	if !e.touches(loc) {
		return fmt.Errorf("expand exit to (%d,%d): %w", loc.X, loc.Y, ErrNotAdjacent)
	}
	e.cells = append(e.cells, loc)
	return nil
}

// Exits returns the registered doorways in registration order.
func (s *Set) Exits() []*Exit { return s.exits }

// Final exposes the combined closest-exit field. Nil until Build succeeds.
func (s *Set) Final() *core.FloatGrid { return s.final }

// FinalAt returns the combined field value at (x, y).
func (s *Set) FinalAt(x, y int) float64 { return s.final.At(x, y) }

// IsExitCell reports whether (x, y) belongs to any registered doorway.
func (s *Set) IsExitCell(x, y int) bool {
	loc := core.Location{X: x, Y: y}
	for _, e := range s.exits {
		if e.contains(loc) {
			return true
		}
	}
	return false
}

// Placeable reports whether a pedestrian may start at (x, y): walkable,
// not a doorway cell, and able to reach some exit.
func (s *Set) Placeable(x, y int) bool {
	return s.env.IsWalkable(x, y) &&
		!s.IsExitCell(x, y) &&
		!math.IsInf(s.final.At(x, y), 1)
}

// PlaceableCells returns the linear indices of every placeable cell in
// row-major order.
func (s *Set) PlaceableCells() []int {
	var cells []int
	for y := 0; y < s.env.Height; y++ {
		for x := 0; x < s.env.Width; x++ {
			if s.Placeable(x, y) {
				cells = append(cells, s.env.Index(x, y))
			}
		}
	}
	return cells
}
