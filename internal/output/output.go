// Package output renders simulation results for the external collaborators:
// per-set timestep counts, per-timestep ASCII frames, and aggregated
// heatmaps. The core owns no file format; everything writes to an io.Writer.
package output

import (
	"fmt"
	"io"
	"math"

	"evac-ca/internal/core"
)

// CellSource is the minimal view a frame writer needs.
type CellSource interface {
	Size() core.Size
	RuneAt(x, y int) byte
}

// WriteTimesteps writes one space-separated count per repetition, matching
// the plotting tools' expected line format.
func WriteTimesteps(w io.Writer, counts []int) error {
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%d ", c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// WritePlaceholder marks a skipped simulation set in timesteps output.
func WritePlaceholder(w io.Writer) error {
	_, err := fmt.Fprintln(w, "-1")
	return err
}

// WriteInaccessible marks a skipped simulation set in frame or heatmap
// output, where a bare -1 would be ambiguous.
func WriteInaccessible(w io.Writer) error {
	_, err := fmt.Fprintln(w, "At least one exit from the simulation set is inaccessible.")
	return err
}

// WriteFrame renders the occupancy grid as one labeled ASCII block.
func WriteFrame(w io.Writer, rep, timestep int, src CellSource) error {
	if _, err := fmt.Fprintf(w, "Simulation %d, timestep %d:\n", rep, timestep); err != nil {
		return err
	}
	size := src.Size()
	row := make([]byte, size.W+1)
	row[size.W] = '\n'
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			row[x] = src.RuneAt(x, y)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// WriteHeatmap writes per-cell visit counts, one row per line.
func WriteHeatmap(w io.Writer, heat []int, width int) error {
	if width <= 0 || len(heat)%width != 0 {
		return fmt.Errorf("heatmap length %d does not divide by width %d", len(heat), width)
	}
	for start := 0; start < len(heat); start += width {
		for x, v := range heat[start : start+width] {
			sep := " "
			if x == width-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%d%s", v, sep); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteField writes a floor field for debugging, with unreachable cells
// rendered as "inf".
func WriteField(w io.Writer, g *core.FloatGrid) error {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sep := " "
			if x == g.W-1 {
				sep = "\n"
			}
			v := g.At(x, y)
			if math.IsInf(v, 1) {
				if _, err := fmt.Fprintf(w, "%6s%s", "inf", sep); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%6.1f%s", v, sep); err != nil {
				return err
			}
		}
	}
	return nil
}
