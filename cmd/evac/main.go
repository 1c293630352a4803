// Command evac runs evacuation simulation sets headless and writes timestep
// counts, ASCII visualization frames, or an aggregated heatmap.
package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"evac-ca/internal/core"
	"evac-ca/internal/env"
	"evac-ca/internal/field"
	"evac-ca/internal/output"
	"evac-ca/internal/sims/evac"

	log "github.com/sirupsen/logrus"
)

const (
	formatTimesteps     = "timesteps"
	formatVisualization = "visualization"
	formatHeatmap       = "heatmap"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		mapPath     = flag.String("map", "", "environment map file ('#' wall, '.' floor, 'E' exit, 'P' start)")
		setsPath    = flag.String("sets", "", "YAML simulation-set file overriding the map's exits")
		width       = flag.Int("w", 0, "generated room width")
		height      = flag.Int("h", 0, "generated room height")
		exitWidth   = flag.Int("exit-width", 0, "generated doorway width in cells")
		pedestrians = flag.Int("pedestrians", 0, "pedestrians per repetition")
		seed        = flag.Int64("seed", 0, "base RNG seed, incremented per repetition")
		reps        = flag.Int("reps", 1, "repetitions per simulation set")
		format      = flag.String("format", formatTimesteps, "output format: timesteps, visualization or heatmap")
		outPath     = flag.String("out", "", "output file (default stdout)")
		maxSteps    = flag.Int("max-steps", 100000, "abort a repetition after this many timesteps (0 = no limit)")
		fps         = flag.Int("fps", 4, "visualization frames per second on stdout")
		debug       = flag.Bool("debug", false, "log floor fields and per-repetition details")
	)
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	switch *format {
	case formatTimesteps, formatVisualization, formatHeatmap:
	default:
		log.Fatalf("unknown format %q", *format)
	}

	cfg := evac.DefaultConfig()
	if *configPath != "" {
		loaded, err := env.FromYaml(*configPath)
		if err != nil {
			log.Fatalf("config %s: %v", *configPath, err)
		}
		cfg = loaded
	}
	// Explicit flags beat config-file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.Width = *width
		case "h":
			cfg.Height = *height
		case "exit-width":
			cfg.ExitWidth = *exitWidth
		case "pedestrians":
			cfg.Params.Pedestrians = *pedestrians
		case "seed":
			cfg.Seed = *seed
		}
	})

	out := io.Writer(os.Stdout)
	interactive := true
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("output %s: %v", *outPath, err)
		}
		defer f.Close()
		out = f
		interactive = false
	}

	var environment *core.Environment
	if *mapPath != "" {
		loaded, err := env.Load(*mapPath)
		if err != nil {
			log.Fatalf("map: %v", err)
		}
		environment = loaded
	} else {
		environment = core.NewRoom(cfg.Width, cfg.Height, cfg.ExitWidth)
	}

	sets := []env.SimulationSet{environment.Exits}
	if *setsPath != "" {
		loaded, err := env.LoadSets(*setsPath)
		if err != nil {
			log.Fatalf("sets: %v", err)
		}
		sets = loaded
	}

	for setIdx, set := range sets {
		scenario := *environment
		scenario.Exits = set

		world, err := evac.NewWorld(cfg, &scenario)
		if errors.Is(err, field.ErrInaccessibleExit) {
			log.Warnf("simulation set %d/%d skipped: %v", setIdx+1, len(sets), err)
			var werr error
			if *format == formatTimesteps {
				werr = output.WritePlaceholder(out)
			} else {
				werr = output.WriteInaccessible(out)
			}
			if werr != nil {
				log.Fatalf("write: %v", werr)
			}
			continue
		}
		if err != nil {
			log.Fatalf("simulation set %d/%d: %v", setIdx+1, len(sets), err)
		}

		if err := runSet(world, cfg, *reps, *format, *maxSteps, *fps, out, interactive); err != nil {
			log.Fatalf("simulation set %d/%d: %v", setIdx+1, len(sets), err)
		}
		log.Infof("simulation set %d/%d done", setIdx+1, len(sets))
	}
}

func runSet(world *evac.World, cfg evac.Config, reps int, format string, maxSteps, fps int, out io.Writer, interactive bool) error {
	if log.IsLevelEnabled(log.DebugLevel) {
		if err := output.WriteField(os.Stderr, world.FinalField()); err != nil {
			return err
		}
	}

	counts := make([]int, 0, reps)
	seed := cfg.Seed
	for rep := 0; rep < reps; rep++ {
		world.Reset(seed)
		seed++

		var steps int
		var done bool
		if format == formatVisualization {
			steps, done = runVisualized(world, rep, maxSteps, fps, out, interactive)
		} else {
			steps, done = world.Run(maxSteps)
		}
		if !done {
			log.Warnf("repetition %d hit the %d-timestep limit with %d pedestrians left",
				rep, maxSteps, world.ActiveCount())
		}
		counts = append(counts, steps)

		st := world.Stats()
		log.Debugf("repetition %d: %d timesteps, %d conflicts (%d unresolved), %d panics, %d crossings",
			rep, steps, st.Conflicts, st.NoWinner, st.Panics, st.Crossings)
	}

	switch format {
	case formatTimesteps:
		return output.WriteTimesteps(out, counts)
	case formatHeatmap:
		return output.WriteHeatmap(out, world.Heatmap(), world.Size().W)
	}
	return nil
}

// runVisualized steps the world while emitting a frame per timestep. On an
// interactive terminal the frames are paced; files get them as fast as the
// simulation runs.
func runVisualized(world *evac.World, rep, maxSteps, fps int, out io.Writer, interactive bool) (int, bool) {
	if err := output.WriteFrame(out, rep, 0, world); err != nil {
		log.Fatalf("write: %v", err)
	}
	pacer := core.NewFixedStep(fps)
	for !world.Empty() {
		if maxSteps > 0 && world.Timestep() >= maxSteps {
			return world.Timestep(), false
		}
		if interactive && !pacer.ShouldStep() {
			time.Sleep(pacer.Remaining())
			continue
		}
		world.Step()
		if err := output.WriteFrame(out, rep, world.Timestep(), world); err != nil {
			log.Fatalf("write: %v", err)
		}
	}
	return world.Timestep(), true
}
