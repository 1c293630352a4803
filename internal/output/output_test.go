package output

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"evac-ca/internal/core"
)

type fakeGrid struct {
	w, h int
	rows []string
}

func (f fakeGrid) Size() core.Size      { return core.Size{W: f.w, H: f.h} }
func (f fakeGrid) RuneAt(x, y int) byte { return f.rows[y][x] }

func TestWriteTimesteps(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTimesteps(&buf, []int{3, 5, 4}); err != nil {
		t.Fatalf("WriteTimesteps: %v", err)
	}
	if got := buf.String(); got != "3 5 4 \n" {
		t.Fatalf("output = %q, want %q", got, "3 5 4 \n")
	}
}

func TestWritePlaceholder(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlaceholder(&buf); err != nil {
		t.Fatalf("WritePlaceholder: %v", err)
	}
	if got := buf.String(); got != "-1\n" {
		t.Fatalf("output = %q, want %q", got, "-1\n")
	}
}

func TestWriteInaccessible(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInaccessible(&buf); err != nil {
		t.Fatalf("WriteInaccessible: %v", err)
	}
	want := "At least one exit from the simulation set is inaccessible.\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteFrame(t *testing.T) {
	src := fakeGrid{w: 3, h: 2, rows: []string{"#E#", "#P#"}}
	var buf bytes.Buffer
	if err := WriteFrame(&buf, 2, 7, src); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	want := "Simulation 2, timestep 7:\n#E#\n#P#\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteHeatmap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeatmap(&buf, []int{0, 1, 2, 3, 4, 5}, 3); err != nil {
		t.Fatalf("WriteHeatmap: %v", err)
	}
	want := "0 1 2\n3 4 5\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteHeatmapRejectsBadWidth(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeatmap(&buf, []int{1, 2, 3}, 2); err == nil {
		t.Fatal("expected an error for a length that does not divide by width")
	}
}

func TestWriteFieldMarksUnreachable(t *testing.T) {
	g := core.NewFloatGrid(2, 1)
	g.Set(0, 0, 1.5)
	g.Set(1, 0, math.Inf(1))

	var buf bytes.Buffer
	if err := WriteField(&buf, g); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	line := strings.TrimRight(buf.String(), "\n")
	if !strings.Contains(line, "1.5") || !strings.Contains(line, "inf") {
		t.Fatalf("output = %q, want both 1.5 and inf", line)
	}
}
