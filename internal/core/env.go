package core

// Environment couples the walkable bitmap of a scenario with its exits and
// optional fixed pedestrian starts. It is pure data; the floor-field and
// movement packages interpret it. Exit cells are part of the walkable area.
type Environment struct {
	Width  int
	Height int

	// Walkable is row-major; true where a pedestrian may stand.
	Walkable []bool

	// Exits groups exit cells into doorways; each inner slice is one
	// contiguous doorway, ordered so every cell touches an earlier one.
	Exits [][]Location

	// Starts lists explicit initial placements. Empty means random placement.
	Starts []Location
}

// Index returns the linear slice index for coordinates (x, y).
func (e *Environment) Index(x, y int) int { return y*e.Width + x }

// InBounds reports whether (x, y) addresses a cell of the environment.
func (e *Environment) InBounds(x, y int) bool {
	return x >= 0 && x < e.Width && y >= 0 && y < e.Height
}

// IsWalkable reports whether (x, y) is inside the grid and not an obstacle.
func (e *Environment) IsWalkable(x, y int) bool {
	return e.InBounds(x, y) && e.Walkable[y*e.Width+x]
}

// DiagonalClear reports whether the diagonal step from (x, y) by (dx, dy) has
// at least one walkable orthogonal companion cell. A body cannot squeeze
// between two wall corners.
func (e *Environment) DiagonalClear(x, y, dx, dy int) bool {
	return e.IsWalkable(x+dx, y) || e.IsWalkable(x, y+dy)
}

// NewRoom builds an empty walled room with a single doorway of exitWidth
// cells centered on the north wall. Dimensions below 3 are clamped so the
// room keeps an interior.
func NewRoom(w, h, exitWidth int) *Environment {
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	if exitWidth < 1 {
		exitWidth = 1
	}
	if exitWidth > w-2 {
		exitWidth = w - 2
	}

	walkable := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			walkable[y*w+x] = true
		}
	}

	door := make([]Location, 0, exitWidth)
	start := (w - exitWidth) / 2
	for i := 0; i < exitWidth; i++ {
		x := start + i
		walkable[x] = true // carve the doorway out of the north wall
		door = append(door, Location{X: x, Y: 0})
	}

	return &Environment{
		Width:    w,
		Height:   h,
		Walkable: walkable,
		Exits:    [][]Location{door},
	}
}
