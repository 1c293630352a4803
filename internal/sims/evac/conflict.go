package evac

import (
	"sort"

	"evac-ca/internal/core"
)

// Conflict records one contested destination cell for a single timestep.
type Conflict struct {
	Cell      core.Location
	Claimants []int // pedestrian indices in decision order
	Winner    int   // pedestrian index, -1 when friction let nobody through
}

// resolveConflicts groups desired destinations by target cell and accepts
// exactly one claimant per contested cell, drawn uniformly from the run's
// RNG. Contested cells are visited in ascending index order so the draw
// sequence is reproducible. Afterwards, winners whose destination will not
// actually be vacated are blocked as well.
func (w *World) resolveConflicts() {
	claims := make(map[int][]int)
	for i, p := range w.peds {
		if p.gone || !p.hasTarget {
			continue
		}
		idx := w.env.Index(p.targetX, p.targetY)
		claims[idx] = append(claims[idx], i)
	}

	contested := make([]int, 0, len(claims))
	for idx, list := range claims {
		if len(list) > 1 {
			contested = append(contested, idx)
		}
	}
	sort.Ints(contested)

	w.conflicts = w.conflicts[:0]
	for _, idx := range contested {
		claimants := claims[idx]
		winner := -1
		if w.cfg.Params.FrictionChance <= 0 || w.rng.Float64() >= w.cfg.Params.FrictionChance {
			winner = claimants[w.rng.IntN(len(claimants))]
		} else {
			w.stats.NoWinner++
		}
		for _, pi := range claimants {
			if pi != winner {
				w.peds[pi].blocked = true
			}
		}
		w.stats.Conflicts++
		w.conflicts = append(w.conflicts, Conflict{
			Cell:      core.Location{X: idx % w.w, Y: idx / w.w},
			Claimants: claimants,
			Winner:    winner,
		})
	}

	w.blockNonVacating()
}

// blockNonVacating blocks movers whose destination cell will still be
// occupied at commit: the occupant is staying, lost its own conflict, or
// would swap head-on. Blocking cascades until stable, so chains of
// pedestrians behind a stopped one all stop.
func (w *World) blockNonVacating() {
	for changed := true; changed; {
		changed = false
		for _, p := range w.peds {
			if p.gone || !p.moving() {
				continue
			}
			occ := w.occupant[w.env.Index(p.targetX, p.targetY)]
			if occ < 0 {
				continue
			}
			q := w.peds[occ]
			if !q.moving() || (q.targetX == p.X && q.targetY == p.Y) {
				p.blocked = true
				changed = true
			}
		}
	}
}
