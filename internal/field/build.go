package field

import (
	"container/heap"
	"fmt"
	"math"

	"evac-ca/internal/core"
)

const (
	orthogonalCost = 1.0
	diagonalCost   = 1.5
)

// Build computes each exit's distance field and the combined final field.
// Exit cells are 0, values grow with walkable shortest-path distance, and
// unreachable cells carry the Unreachable sentinel. It returns an error
// wrapping ErrInaccessibleExit when some doorway reaches no walkable cell
// beyond itself, or when no cell remains for pedestrian placement.
func (s *Set) Build() error {
	if len(s.exits) == 0 {
		return ErrNoExits
	}

	final := core.NewFloatGrid(s.env.Width, s.env.Height)
	final.Fill(Unreachable)

	for _, e := range s.exits {
		e.field = s.expand(e.cells)
		if !s.servesWalkableCell(e) {
			c := e.cells[0]
			return fmt.Errorf("exit at (%d,%d) reaches no walkable cell: %w",
				c.X, c.Y, ErrInaccessibleExit)
		}
		combineMin(final, e.field)
	}
	s.final = final

	if len(s.PlaceableCells()) == 0 {
		s.final = nil
		return fmt.Errorf("no pedestrian-placeable cell: %w", ErrInaccessibleExit)
	}
	return nil
}

// combineMin folds src into dst cell-wise, keeping the smaller value.
func combineMin(dst, src *core.FloatGrid) {
	d, s := dst.Cells(), src.Cells()
	for i := range d {
		if s[i] < d[i] {
			d[i] = s[i]
		}
	}
}

// servesWalkableCell reports whether the exit's field reaches at least one
// walkable cell that is not part of the doorway itself.
func (s *Set) servesWalkableCell(e *Exit) bool {
	for y := 0; y < s.env.Height; y++ {
		for x := 0; x < s.env.Width; x++ {
			if !s.env.IsWalkable(x, y) || e.contains(core.Location{X: x, Y: y}) {
				continue
			}
			if !math.IsInf(e.field.At(x, y), 1) {
				return true
			}
		}
	}
	return false
}

// expand runs a uniform-cost expansion seeded from every doorway cell at
// once. Orthogonal steps cost 1.0 and, when enabled, diagonal steps cost 1.5
// to reflect true path length. Diagonal steps between two wall corners are
// not traversable.
func (s *Set) expand(seeds []core.Location) *core.FloatGrid {
	g := core.NewFloatGrid(s.env.Width, s.env.Height)
	g.Fill(Unreachable)
	dist := g.Cells()

	pq := make(cellQueue, 0, len(seeds))
	for _, c := range seeds {
		idx := s.env.Index(c.X, c.Y)
		dist[idx] = 0
		heap.Push(&pq, cellDist{idx: idx, dist: 0})
	}

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(cellDist)
		if cur.dist > dist[cur.idx] {
			continue // stale queue entry
		}
		x, y := cur.idx%s.env.Width, cur.idx/s.env.Width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				cost := orthogonalCost
				if dx != 0 && dy != 0 {
					if !s.diagonal || !s.env.DiagonalClear(x, y, dx, dy) {
						continue
					}
					cost = diagonalCost
				}
				nx, ny := x+dx, y+dy
				if !s.env.IsWalkable(nx, ny) {
					continue
				}
				nIdx := s.env.Index(nx, ny)
				if d := cur.dist + cost; d < dist[nIdx] {
					dist[nIdx] = d
					heap.Push(&pq, cellDist{idx: nIdx, dist: d})
				}
			}
		}
	}
	return g
}

type cellDist struct {
	idx  int
	dist float64
}

// cellQueue is a min-heap over tentative distances; ties break on cell index
// so expansion order is deterministic.
type cellQueue []cellDist

func (q cellQueue) Len() int { return len(q) }

func (q cellQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].idx < q[j].idx
}

func (q cellQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *cellQueue) Push(v any) { *q = append(*q, v.(cellDist)) }

func (q *cellQueue) Pop() any {
	old := *q
	n := len(old)
	v := old[n-1]
	*q = old[:n-1]
	return v
}
