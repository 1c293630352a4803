package core

import "testing"

func TestNewRoomCarvesCenteredDoorway(t *testing.T) {
	e := NewRoom(10, 6, 2)

	if e.Width != 10 || e.Height != 6 {
		t.Fatalf("dimensions = %dx%d, want 10x6", e.Width, e.Height)
	}
	if len(e.Exits) != 1 {
		t.Fatalf("exits = %d, want 1", len(e.Exits))
	}
	door := e.Exits[0]
	if len(door) != 2 {
		t.Fatalf("doorway width = %d, want 2", len(door))
	}
	for _, c := range door {
		if c.Y != 0 {
			t.Fatalf("doorway cell (%d,%d) not on the north wall", c.X, c.Y)
		}
		if !e.IsWalkable(c.X, c.Y) {
			t.Fatalf("doorway cell (%d,%d) not walkable", c.X, c.Y)
		}
	}

	// Interior walkable, remaining border walled.
	if !e.IsWalkable(1, 1) || !e.IsWalkable(8, 4) {
		t.Fatal("interior must be walkable")
	}
	if e.IsWalkable(0, 0) || e.IsWalkable(9, 5) || e.IsWalkable(0, 3) {
		t.Fatal("border must be walled outside the doorway")
	}
}

func TestNewRoomClampsDoorway(t *testing.T) {
	e := NewRoom(5, 5, 99)
	if got := len(e.Exits[0]); got != 3 {
		t.Fatalf("doorway width = %d, want clamp to 3", got)
	}
	e = NewRoom(5, 5, 0)
	if got := len(e.Exits[0]); got != 1 {
		t.Fatalf("doorway width = %d, want clamp to 1", got)
	}
}

func TestDiagonalClear(t *testing.T) {
	e := NewRoom(6, 6, 1)
	// Both companions open inside the room.
	if !e.DiagonalClear(2, 2, 1, 1) {
		t.Fatal("open diagonal should be clear")
	}
	// Step into the corner: both companions are border walls.
	if e.DiagonalClear(1, 1, -1, -1) {
		t.Fatal("diagonal between two wall corners should be blocked")
	}
}

func TestRNGIsDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed must replay the same stream")
		}
		if a.IntN(10) != b.IntN(10) {
			t.Fatal("same seed must replay the same stream")
		}
	}
	c := NewRNG(43)
	same := true
	r := NewRNG(42)
	for i := 0; i < 10; i++ {
		if r.Float64() != c.Float64() {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds should not replay the same stream")
	}
}

func TestFloatGridAccess(t *testing.T) {
	g := NewFloatGrid(4, 3)
	g.Fill(7)
	if g.At(3, 2) != 7 {
		t.Fatalf("fill missed (3,2): %v", g.At(3, 2))
	}
	g.Set(1, 2, 2.5)
	if g.Cells()[g.Index(1, 2)] != 2.5 {
		t.Fatalf("Set/Index mismatch: %v", g.Cells()[g.Index(1, 2)])
	}
	if g.InBounds(4, 0) || g.InBounds(0, 3) || g.InBounds(-1, 0) {
		t.Fatal("out-of-range coordinates reported in bounds")
	}
}
