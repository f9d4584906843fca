package analyzer

import "go-landing-scout/internal/strategy"

const (
	// ImageSize is the edge length every input is resized to
	ImageSize = 512
	// DefaultWindowSize is the edge length of a candidate landing site
	DefaultWindowSize = 128
	// DefaultStepSize is the distance between consecutive window origins
	DefaultStepSize = 64
	// DefaultTopN is how many ranked sites are returned
	DefaultTopN = 3
)

// AnalysisOptions provides configuration for the landing analysis
type AnalysisOptions struct {
	// Scan geometry
	WindowSize int
	StepSize   int
	TopN       int

	// Physics
	LanderMass float64

	// Heatmap compositing: "overwrite" or "max"
	HeatmapMode string

	// Performance options
	MaxWorkers int
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		WindowSize:  DefaultWindowSize,
		StepSize:    DefaultStepSize,
		TopN:        DefaultTopN,
		LanderMass:  DefaultLanderMass,
		HeatmapMode: strategy.ModeOverwrite,
		MaxWorkers:  0, // Use default CPU count
	}
}

// WithLanderMass returns options with a different lander mass
func (opts AnalysisOptions) WithLanderMass(mass float64) AnalysisOptions {
	opts.LanderMass = mass
	return opts
}

// WithHeatmapMode returns options with a different heatmap compositing mode
func (opts AnalysisOptions) WithHeatmapMode(mode string) AnalysisOptions {
	opts.HeatmapMode = mode
	return opts
}

// WithMaxWorkers bounds the number of windows scored concurrently
func (opts AnalysisOptions) WithMaxWorkers(workers int) AnalysisOptions {
	opts.MaxWorkers = workers
	return opts
}
