// Package env loads evacuation environments and simulation-set files for the
// drivers. Map files are plain text: '#' obstacle, '.' floor, 'E' exit cell,
// 'P' pedestrian start. Adjacent 'E' cells merge into one doorway.
package env

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"evac-ca/internal/core"

	log "github.com/sirupsen/logrus"
)

// Load reads an environment map from path.
func Load(path string) (*core.Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("loaded environment %s: %dx%d, %d exits, %d fixed starts",
		path, e.Width, e.Height, len(e.Exits), len(e.Starts))
	return e, nil
}

// Parse reads an environment map. Every row must have the same width and at
// least one 'E' cell must be present.
func Parse(r io.Reader) (*core.Environment, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" && len(rows) > 0 {
			break // blank line ends the map block
		}
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty map")
	}

	w := len(rows[0])
	h := len(rows)
	e := &core.Environment{
		Width:    w,
		Height:   h,
		Walkable: make([]bool, w*h),
	}

	var exitCells []core.Location
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			idx := e.Index(x, y)
			switch row[x] {
			case '#':
			case '.', ' ':
				e.Walkable[idx] = true
			case 'E':
				e.Walkable[idx] = true
				exitCells = append(exitCells, core.Location{X: x, Y: y})
			case 'P':
				e.Walkable[idx] = true
				e.Starts = append(e.Starts, core.Location{X: x, Y: y})
			default:
				return nil, fmt.Errorf("unknown cell %q at (%d,%d)", row[x], x, y)
			}
		}
	}
	if len(exitCells) == 0 {
		return nil, fmt.Errorf("map has no exit cells")
	}

	e.Exits = groupExits(exitCells)
	return e, nil
}

// groupExits merges exit cells that touch (8-adjacency) into doorways. Cells
// within a doorway come out in breadth-first order from its first cell, so
// every cell touches an earlier one and expansion stays contiguous.
func groupExits(cells []core.Location) [][]core.Location {
	var doors [][]core.Location
	seen := make(map[core.Location]bool, len(cells))
	members := make(map[core.Location]bool, len(cells))
	for _, c := range cells {
		members[c] = true
	}

	for _, c := range cells {
		if seen[c] {
			continue
		}
		door := []core.Location{c}
		seen[c] = true
		for i := 0; i < len(door); i++ {
			cur := door[i]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					n := core.Location{X: cur.X + dx, Y: cur.Y + dy}
					if members[n] && !seen[n] {
						seen[n] = true
						door = append(door, n)
					}
				}
			}
		}
		doors = append(doors, door)
	}
	return doors
}
