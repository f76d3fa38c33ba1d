package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales base from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(base float64, score int, ticks uint64) float64 {
	return base * (1.0 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval shortens a tick interval as difficulty rises, never below floor.
func (d *DifficultyManager) Interval(base, floor int, score int, ticks uint64) int {
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.IntervalReduction))
	return max(base-reduction, floor, 1)
}

// Count raises a spawn count as difficulty rises.
func (d *DifficultyManager) Count(base int, score int, ticks uint64) int {
	return base + int(d.Level(score, ticks)*float64(d.cfg.Scaling.CountIncrease))
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
