package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim         string
	Scale       int
	TPS         int
	Seed        int64
	Width       int
	Height      int
	Pedestrians int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "evac", Scale: 8, TPS: 10, Seed: 42, Width: 48, Height: 32, Pedestrians: 120}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "w", c.Width, "room width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "room height in cells")
	fs.IntVar(&c.Pedestrians, "pedestrians", c.Pedestrians, "pedestrians per run")
}

// SimOptions converts the viewer settings into factory configuration.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"w":           strconv.Itoa(c.Width),
		"h":           strconv.Itoa(c.Height),
		"pedestrians": strconv.Itoa(c.Pedestrians),
	}
}
