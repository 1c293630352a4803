package evac

import "image/color"

const (
	displayFloor uint8 = iota
	displayWall
	displayExit
	displayPedestrian
	displayPanicked
)

var evacPalette = []color.RGBA{
	{R: 26, G: 26, B: 30, A: 255},    // floor
	{R: 112, G: 112, B: 118, A: 255}, // wall
	{R: 58, G: 158, B: 88, A: 255},   // exit
	{R: 234, G: 234, B: 240, A: 255}, // pedestrian
	{R: 221, G: 72, B: 52, A: 255},   // panicked pedestrian
}

// Palette exposes the color palette used for rendering the world.
func (w *World) Palette() []color.RGBA {
	return evacPalette
}

func (w *World) rebuildDisplay() {
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			idx := w.env.Index(x, y)
			switch {
			case w.occupant[idx] >= 0:
				if w.peds[w.occupant[idx]].Panicked {
					w.display[idx] = displayPanicked
				} else {
					w.display[idx] = displayPedestrian
				}
			case w.exitMask[idx]:
				w.display[idx] = displayExit
			case !w.env.Walkable[idx]:
				w.display[idx] = displayWall
			default:
				w.display[idx] = displayFloor
			}
		}
	}
}
