// Package evac implements a floor-field cellular automaton for pedestrian
// evacuation. Every timestep each pedestrian samples a desired destination
// from the static floor field, simultaneous claims on one cell are resolved
// by a seeded draw, and all accepted moves commit in a second phase.
package evac

import (
	"fmt"

	"evac-ca/internal/core"
	"evac-ca/internal/field"
)

// Stats aggregates per-run counters for debug reporting.
type Stats struct {
	Conflicts int // contested cells seen
	NoWinner  int // contested cells friction left unresolved
	Panics    int // panic onsets
	Crossings int // suppressed diagonal crossings
	Evacuated int // pedestrians that left through an exit
}

// World stores all state for one evacuation scenario.
type World struct {
	cfg Config

	w, h int
	env  *core.Environment

	fields   *field.Set
	exitMask []bool

	occupant []int // pedestrian index per cell, -1 when empty
	heatmap  []int // visits per cell, accumulated across repetitions
	display  []uint8

	peds   []*Pedestrian
	active int

	timestep int
	rng      *core.RNG

	stats     Stats
	conflicts []Conflict
}

// New returns an evacuation world over an auto-generated empty room using
// defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	world, err := NewWorld(cfg, core.NewRoom(w, h, cfg.ExitWidth))
	if err != nil {
		// Generated rooms always have a reachable doorway.
		panic(err)
	}
	return world
}

// NewWorld builds a world over the provided environment, registering its
// exits and computing the floor fields. Errors wrapping
// field.ErrInaccessibleExit are recoverable: the caller skips the
// configuration. Call Reset before stepping.
func NewWorld(cfg Config, env *core.Environment) (*World, error) {
	total := env.Width * env.Height
	if total <= 0 {
		return nil, fmt.Errorf("environment has no cells")
	}

	fs := field.NewSet(env, cfg.Params.AllowDiagonal)
	for _, door := range env.Exits {
		if len(door) == 0 {
			continue
		}
		e, err := fs.AddExit(door[0])
		if err != nil {
			return nil, err
		}
		for _, c := range door[1:] {
			if err := fs.Expand(e, c); err != nil {
				return nil, err
			}
		}
	}
	if err := fs.Build(); err != nil {
		return nil, fmt.Errorf("floor field: %w", err)
	}

	exitMask := make([]bool, total)
	for _, e := range fs.Exits() {
		for _, c := range e.Cells() {
			exitMask[env.Index(c.X, c.Y)] = true
		}
	}

	for _, s := range env.Starts {
		if !env.InBounds(s.X, s.Y) || !fs.Placeable(s.X, s.Y) {
			return nil, fmt.Errorf("pedestrian start (%d,%d) is not placeable", s.X, s.Y)
		}
	}

	occupant := make([]int, total)
	for i := range occupant {
		occupant[i] = -1
	}

	return &World{
		cfg:      cfg,
		w:        env.Width,
		h:        env.Height,
		env:      env,
		fields:   fs,
		exitMask: exitMask,
		occupant: occupant,
		heatmap:  make([]int, total),
		display:  make([]uint8, total),
		rng:      core.NewRNG(cfg.Seed),
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "evac" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Pedestrians exposes every pedestrian of the current repetition, including
// ones that already left.
func (w *World) Pedestrians() []*Pedestrian { return w.peds }

// Occupant exposes the occupancy layer: pedestrian index per cell, -1 empty.
func (w *World) Occupant() []int { return w.occupant }

// Heatmap exposes per-cell visit counters. Reset does not clear them, so a
// simulation set accumulates across repetitions.
func (w *World) Heatmap() []int { return w.heatmap }

// FieldSet exposes the exit set and its fields for rendering and debugging.
func (w *World) FieldSet() *field.Set { return w.fields }

// FinalField exposes the combined closest-exit field.
func (w *World) FinalField() *core.FloatGrid { return w.fields.Final() }

// Stats returns the counters accumulated since the last Reset.
func (w *World) Stats() Stats { return w.stats }

// Conflicts returns the contested cells of the most recent timestep.
func (w *World) Conflicts() []Conflict { return w.conflicts }

// Timestep returns the number of completed timesteps since the last Reset.
func (w *World) Timestep() int { return w.timestep }

// ActiveCount returns how many pedestrians remain on the grid.
func (w *World) ActiveCount() int { return w.active }

// Empty reports the terminal condition: no pedestrians remain.
func (w *World) Empty() bool { return w.active == 0 }

// Reset starts a new repetition: reseeds the RNG and places pedestrians at
// the environment's fixed starts, or at random placeable cells. A zero seed
// falls back to the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)

	for i := range w.occupant {
		w.occupant[i] = -1
	}
	w.peds = w.peds[:0]
	w.timestep = 0
	w.stats = Stats{}
	w.conflicts = nil

	if len(w.env.Starts) > 0 {
		for _, s := range w.env.Starts {
			w.spawn(s.X, s.Y)
		}
	} else {
		w.placeRandom(w.cfg.Params.Pedestrians)
	}
	w.active = len(w.peds)

	for _, p := range w.peds {
		w.heatmap[w.env.Index(p.X, p.Y)]++
	}
	w.rebuildDisplay()
}

func (w *World) spawn(x, y int) {
	p := &Pedestrian{X: x, Y: y}
	w.peds = append(w.peds, p)
	w.occupant[w.env.Index(x, y)] = len(w.peds) - 1
}

// placeRandom inserts n pedestrians on distinct placeable cells, drawing from
// the run's RNG over the row-major cell list.
func (w *World) placeRandom(n int) {
	cells := w.fields.PlaceableCells()
	if n > len(cells) {
		n = len(cells)
	}
	for i := 0; i < n; i++ {
		j := i + w.rng.IntN(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
		w.spawn(cells[i]%w.w, cells[i]/w.w)
	}
}

// Step advances the world one timestep: decide, update panic, suppress
// crossings, resolve conflicts, commit, reset transient state. Decisions are
// conceptually simultaneous; no move commits before every pedestrian decided.
func (w *World) Step() {
	if w.active == 0 {
		return
	}
	w.decideMovements()
	w.updatePanic()
	if w.cfg.Params.AllowDiagonal && !w.cfg.Params.AllowXMovement {
		w.suppressCrossings()
	}
	w.resolveConflicts()
	w.commitMoves()
	w.resetTransient()
	w.timestep++
	w.rebuildDisplay()
}

// Run steps the world until it empties or limit timesteps elapse. A limit of
// zero or less means no limit. It returns the elapsed timesteps and whether
// the grid emptied.
func (w *World) Run(limit int) (int, bool) {
	for !w.Empty() {
		if limit > 0 && w.timestep >= limit {
			return w.timestep, false
		}
		w.Step()
	}
	return w.timestep, true
}

// commitMoves applies every accepted move in two passes, vacate then place,
// so chains of moves stay consistent. Pedestrians landing on a doorway cell
// leave the grid.
func (w *World) commitMoves() {
	for _, p := range w.peds {
		if p.gone || !p.moving() {
			continue
		}
		w.occupant[w.env.Index(p.X, p.Y)] = -1
	}
	for i, p := range w.peds {
		if p.gone || !p.moving() {
			continue
		}
		p.X, p.Y = p.targetX, p.targetY
		idx := w.env.Index(p.X, p.Y)
		if w.exitMask[idx] {
			p.gone = true
			w.active--
			w.stats.Evacuated++
			continue
		}
		if w.occupant[idx] >= 0 {
			panic(fmt.Sprintf("occupancy invariant broken: two pedestrians on (%d,%d)", p.X, p.Y))
		}
		w.occupant[idx] = i
	}
	for _, p := range w.peds {
		if p.gone {
			continue
		}
		w.heatmap[w.env.Index(p.X, p.Y)]++
	}
}

func (w *World) resetTransient() {
	for _, p := range w.peds {
		p.clearTarget()
	}
}

// RuneAt renders one cell as ASCII for the output writers.
func (w *World) RuneAt(x, y int) byte {
	idx := w.env.Index(x, y)
	switch {
	case w.occupant[idx] >= 0:
		return 'P'
	case w.exitMask[idx]:
		return 'E'
	case !w.env.Walkable[idx]:
		return '#'
	default:
		return '.'
	}
}

func init() {
	core.Register("evac", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		world, err := NewWorld(c, core.NewRoom(c.Width, c.Height, c.ExitWidth))
		if err != nil {
			panic(err)
		}
		return world
	})
}
