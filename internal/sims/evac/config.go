package evac

import "strconv"

// Params holds the tunables of the movement and conflict model.
type Params struct {
	// FieldSensitivity steers how strongly a pedestrian prefers neighbors
	// with lower floor-field values. Higher means greedier walking.
	FieldSensitivity float64

	// PanicThreshold is the occupied fraction of a pedestrian's neighborhood
	// above which it panics for the next decision round.
	PanicThreshold float64

	// PanicSensitivity replaces FieldSensitivity while panicked. A flatter
	// value makes panicked movement more random.
	PanicSensitivity float64

	// PanicPushChance is the chance a panicked pedestrian keeps an occupied
	// neighbor as a candidate, hoping the occupant vacates.
	PanicPushChance float64

	// FrictionChance is the chance a contested cell ends with no winner.
	FrictionChance float64

	// StayWeight is the baseline weight of remaining in place.
	StayWeight float64

	AllowDiagonal  bool
	AllowXMovement bool

	// Pedestrians inserted per repetition when placement is random.
	Pedestrians int
}

// Config controls the evacuation world dimensions and model parameters.
type Config struct {
	Width  int
	Height int

	// ExitWidth is the doorway span used when the room is auto-generated.
	ExitWidth int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     64,
		Height:    64,
		ExitWidth: 3,
		Seed:      1337,
		Params: Params{
			FieldSensitivity: 2.0,
			PanicThreshold:   0.6,
			PanicSensitivity: 0.5,
			PanicPushChance:  0.35,
			FrictionChance:   0,
			StayWeight:       1.0,
			AllowDiagonal:    true,
			AllowXMovement:   false,
			Pedestrians:      150,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["exit_width"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ExitWidth = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["field_sensitivity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.FieldSensitivity = parsed
		}
	}
	if v, ok := cfg["panic_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.PanicThreshold = parsed
		}
	}
	if v, ok := cfg["panic_sensitivity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.PanicSensitivity = parsed
		}
	}
	if v, ok := cfg["panic_push_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.PanicPushChance = parsed
		}
	}
	if v, ok := cfg["friction_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			c.Params.FrictionChance = parsed
		}
	}
	if v, ok := cfg["stay_weight"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.StayWeight = parsed
		}
	}
	if v, ok := cfg["diagonal"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.AllowDiagonal = parsed
		}
	}
	if v, ok := cfg["allow_x"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.AllowXMovement = parsed
		}
	}
	if v, ok := cfg["pedestrians"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Pedestrians = parsed
		}
	}
	return c
}
