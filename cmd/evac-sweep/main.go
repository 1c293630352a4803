// Command evac-sweep sweeps movement-model parameters over a generated room
// and reports mean evacuation times, for tuning panic and sensitivity values.
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"sort"

	"evac-ca/internal/core"
	"evac-ca/internal/sims/evac"

	"golang.org/x/sync/errgroup"
)

type paramSet struct {
	pedestrians      int
	fieldSensitivity float64
	panicThreshold   float64
	panicSensitivity float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("peds=%d ks=%.2f panicThr=%.2f panicKs=%.2f",
		p.pedestrians, p.fieldSensitivity, p.panicThreshold, p.panicSensitivity)
}

type sweepResult struct {
	params        paramSet
	meanSteps     float64
	maxSteps      int
	meanConflicts float64
	meanPanics    float64
	incomplete    int
}

func main() {
	width := flag.Int("w", 48, "room width")
	height := flag.Int("h", 32, "room height")
	exitWidth := flag.Int("exit-width", 2, "doorway width in cells")
	reps := flag.Int("reps", 20, "repetitions per parameter set")
	limit := flag.Int("max-steps", 5000, "timestep limit per repetition")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	pedOptions := []int{60, 120, 240}
	ksOptions := []float64{1.0, 2.0, 4.0}
	thresholdOptions := []float64{0.5, 0.65, 0.8}
	panicKsOptions := []float64{0.25, 0.5, 1.0}

	var sets []paramSet
	for _, peds := range pedOptions {
		for _, ks := range ksOptions {
			for _, thr := range thresholdOptions {
				for _, pks := range panicKsOptions {
					sets = append(sets, paramSet{
						pedestrians:      peds,
						fieldSensitivity: ks,
						panicThreshold:   thr,
						panicSensitivity: pks,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d reps, %dx%d room)\n",
		len(sets), *workers, *reps, *width, *height)

	jobs := make(chan paramSet)
	results := make(chan sweepResult)

	eg, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < *workers; i++ {
		eg.Go(func() error {
			for params := range jobs {
				res, err := runSweep(params, *width, *height, *exitWidth, *reps, *limit)
				if err != nil {
					return err
				}
				results <- res
			}
			return nil
		})
	}

	var collected []sweepResult
	collectDone := make(chan struct{})
	go func() {
		for res := range results {
			collected = append(collected, res)
		}
		close(collectDone)
	}()

	// A failed worker cancels ctx; stop feeding jobs so the send never
	// blocks on a pool that is going away.
feed:
	for _, s := range sets {
		select {
		case jobs <- s:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	if err := eg.Wait(); err != nil {
		fmt.Println("sweep failed:", err)
		return
	}
	close(results)
	<-collectDone

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].meanSteps < collected[j].meanSteps
	})

	for _, res := range collected {
		fmt.Printf("%-48s mean=%8.1f max=%6d conflicts=%8.1f panics=%7.1f incomplete=%d\n",
			res.params, res.meanSteps, res.maxSteps, res.meanConflicts, res.meanPanics, res.incomplete)
	}
}

func runSweep(params paramSet, width, height, exitWidth, reps, limit int) (sweepResult, error) {
	cfg := evac.DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.ExitWidth = exitWidth
	cfg.Params.Pedestrians = params.pedestrians
	cfg.Params.FieldSensitivity = params.fieldSensitivity
	cfg.Params.PanicThreshold = params.panicThreshold
	cfg.Params.PanicSensitivity = params.panicSensitivity

	world, err := evac.NewWorld(cfg, core.NewRoom(width, height, exitWidth))
	if err != nil {
		return sweepResult{}, fmt.Errorf("%s: %w", params, err)
	}

	res := sweepResult{params: params}
	var totalSteps, totalConflicts, totalPanics int
	seed := cfg.Seed
	for rep := 0; rep < reps; rep++ {
		world.Reset(seed)
		seed++
		steps, done := world.Run(limit)
		if !done {
			res.incomplete++
		}
		totalSteps += steps
		if steps > res.maxSteps {
			res.maxSteps = steps
		}
		st := world.Stats()
		totalConflicts += st.Conflicts
		totalPanics += st.Panics
	}
	res.meanSteps = float64(totalSteps) / float64(reps)
	res.meanConflicts = float64(totalConflicts) / float64(reps)
	res.meanPanics = float64(totalPanics) / float64(reps)
	return res, nil
}
