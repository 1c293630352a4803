package evac

// Pedestrian is one simulated agent. Position is mirrored by the world's
// occupant layer; every move updates both within the same timestep.
type Pedestrian struct {
	X, Y int

	// Panicked is recomputed from local crowding once per timestep and read
	// by the next decision round.
	Panicked bool

	// targetX/targetY hold the sampled desired destination until commit.
	targetX, targetY int
	hasTarget        bool

	// blocked marks a conflict loser or a pedestrian whose destination will
	// not be vacated; it stays put this timestep.
	blocked bool

	gone bool
}

// Gone reports whether the pedestrian has left through an exit.
func (p *Pedestrian) Gone() bool { return p.gone }

// moving reports whether the pedestrian has an accepted move pending.
func (p *Pedestrian) moving() bool { return p.hasTarget && !p.blocked }

func (p *Pedestrian) setTarget(x, y int) {
	p.targetX, p.targetY = x, y
	p.hasTarget = true
}

func (p *Pedestrian) clearTarget() {
	p.hasTarget = false
	p.blocked = false
}
