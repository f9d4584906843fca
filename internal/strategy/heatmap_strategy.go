package strategy

import (
	"fmt"
	"image"
	"math"
	"strings"
)

const (
	// ModeOverwrite lets the last window in scan order own each pixel
	ModeOverwrite = "overwrite"
	// ModeMax keeps the highest score seen at each pixel
	ModeMax = "max"
)

// HeatmapStrategy defines how a window score is composited into the heatmap.
// A scan calls Prepare once, Apply for every window in scan order, then Finish.
type HeatmapStrategy interface {
	Prepare(heat []float64)
	Apply(heat []float64, width int, region image.Rectangle, score float64)
	Finish(heat []float64)
	GetStrategyName() string
}

// OverwriteStrategy writes the score over the whole region unconditionally.
// Overlapping windows therefore leave the most recently scanned score behind,
// which is not necessarily the best one.
type OverwriteStrategy struct{}

// NewOverwriteStrategy creates a new overwrite strategy
func NewOverwriteStrategy() HeatmapStrategy {
	return &OverwriteStrategy{}
}

// Prepare leaves the zeroed heatmap as is
func (s *OverwriteStrategy) Prepare(heat []float64) {}

// Finish is a no-op; uncovered pixels stay zero
func (s *OverwriteStrategy) Finish(heat []float64) {}

// Apply fills the region with score
func (s *OverwriteStrategy) Apply(heat []float64, width int, region image.Rectangle, score float64) {
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := heat[y*width+region.Min.X : y*width+region.Max.X]
		for i := range row {
			row[i] = score
		}
	}
}

// GetStrategyName returns the strategy name
func (s *OverwriteStrategy) GetStrategyName() string {
	return ModeOverwrite
}

// MaxStrategy keeps the per-pixel maximum across all covering windows
type MaxStrategy struct{}

// NewMaxStrategy creates a new max compositing strategy
func NewMaxStrategy() HeatmapStrategy {
	return &MaxStrategy{}
}

// Prepare marks every pixel as not yet covered
func (s *MaxStrategy) Prepare(heat []float64) {
	for i := range heat {
		heat[i] = math.Inf(-1)
	}
}

// Finish resets pixels no window covered to zero
func (s *MaxStrategy) Finish(heat []float64) {
	for i, v := range heat {
		if math.IsInf(v, -1) {
			heat[i] = 0
		}
	}
}

// Apply raises each pixel in the region to at least score
func (s *MaxStrategy) Apply(heat []float64, width int, region image.Rectangle, score float64) {
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := heat[y*width+region.Min.X : y*width+region.Max.X]
		for i := range row {
			if score > row[i] {
				row[i] = score
			}
		}
	}
}

// GetStrategyName returns the strategy name
func (s *MaxStrategy) GetStrategyName() string {
	return ModeMax
}

// ForMode resolves a configured mode name to a strategy
func ForMode(mode string) (HeatmapStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeOverwrite:
		return NewOverwriteStrategy(), nil
	case ModeMax:
		return NewMaxStrategy(), nil
	default:
		return nil, fmt.Errorf("unsupported heatmap mode: %s", mode)
	}
}
