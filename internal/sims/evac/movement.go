package evac

import "math"

// neighborOffsets fixes the (dx, dy) scan order shared by decisions and
// crowding checks, so the RNG draw sequence is stable across runs.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (w *World) decideMovements() {
	for _, p := range w.peds {
		if p.gone {
			continue
		}
		w.decide(p)
	}
}

// decide samples one desired destination for p. Each eligible neighbor is
// weighted by exp(ks * field drop) so steeper descent toward an exit wins
// more often; panic flattens ks and lets the pedestrian keep occupied
// neighbors as candidates. The stay option carries StayWeight and absorbs the
// remainder of the draw.
func (w *World) decide(p *Pedestrian) {
	here := w.fields.FinalAt(p.X, p.Y)
	ks := w.cfg.Params.FieldSensitivity
	if p.Panicked {
		ks = w.cfg.Params.PanicSensitivity
	}

	var weights [8]float64
	total := w.cfg.Params.StayWeight
	for i, off := range neighborOffsets {
		dx, dy := off[0], off[1]
		diagonal := dx != 0 && dy != 0
		if diagonal && !w.cfg.Params.AllowDiagonal {
			continue
		}
		nx, ny := p.X+dx, p.Y+dy
		if !w.env.IsWalkable(nx, ny) {
			continue
		}
		if diagonal && !w.env.DiagonalClear(p.X, p.Y, dx, dy) {
			continue
		}
		f := w.fields.FinalAt(nx, ny)
		if math.IsInf(f, 1) {
			continue
		}
		if w.occupant[w.env.Index(nx, ny)] >= 0 {
			if !p.Panicked || w.rng.Float64() >= w.cfg.Params.PanicPushChance {
				continue
			}
		}
		weights[i] = math.Exp(ks * (here - f))
		total += weights[i]
	}
	if total <= 0 {
		return // nowhere to go and no stay weight
	}

	r := w.rng.Float64() * total
	acc := 0.0
	for i, off := range neighborOffsets {
		if weights[i] == 0 {
			continue
		}
		acc += weights[i]
		if r < acc {
			p.setTarget(p.X+off[0], p.Y+off[1])
			return
		}
	}
	// remainder of the draw falls on the stay option
}

// updatePanic recomputes every pedestrian's panic flag from current crowding.
// The flag is read by the next decision round and overwritten again here, so
// panic never outlives one timestep of stale occupancy.
func (w *World) updatePanic() {
	for _, p := range w.peds {
		if p.gone {
			continue
		}
		occupied, open := 0, 0
		for _, off := range neighborOffsets {
			nx, ny := p.X+off[0], p.Y+off[1]
			if !w.env.IsWalkable(nx, ny) {
				continue
			}
			open++
			if w.occupant[w.env.Index(nx, ny)] >= 0 {
				occupied++
			}
		}
		was := p.Panicked
		p.Panicked = open > 0 && float64(occupied)/float64(open) > w.cfg.Params.PanicThreshold
		if p.Panicked && !was {
			w.stats.Panics++
		}
	}
}

// suppressCrossings cancels pairs of diagonal desires that would swap two
// pedestrians across a shared diagonal edge, so bodies never pass through
// each other. Both revert to staying in place.
func (w *World) suppressCrossings() {
	for _, p := range w.peds {
		if p.gone || !p.hasTarget {
			continue
		}
		dx, dy := p.targetX-p.X, p.targetY-p.Y
		if dx == 0 || dy == 0 {
			continue
		}
		if q := w.crossingPartner(p, dx, dy); q != nil {
			p.clearTarget()
			q.clearTarget()
			w.stats.Crossings++
		}
	}
}

// crossingPartner returns the pedestrian on either corner cell beside p's
// diagonal whose own desire is the mirror move across the shared edge, or
// nil. The partner can sit beside p horizontally or vertically.
func (w *World) crossingPartner(p *Pedestrian, dx, dy int) *Pedestrian {
	if i := w.occupant[w.env.Index(p.X+dx, p.Y)]; i >= 0 {
		q := w.peds[i]
		if q.hasTarget && q.targetX == p.X && q.targetY == p.Y+dy {
			return q
		}
	}
	if i := w.occupant[w.env.Index(p.X, p.Y+dy)]; i >= 0 {
		q := w.peds[i]
		if q.hasTarget && q.targetX == p.X+dx && q.targetY == p.Y {
			return q
		}
	}
	return nil
}
