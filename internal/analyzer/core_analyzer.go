package analyzer

import (
	"context"
	"fmt"
	"image"
	"time"
)

// coreAnalyzer implements ImageAnalyzer interface and orchestrates all components
type coreAnalyzer struct {
	metricsCalculator MetricsCalculator
	scanner           SiteScanner
	options           AnalysisOptions
}

// NewImageAnalyzer creates a new landing analyzer with all components
func NewImageAnalyzer(options AnalysisOptions) (ImageAnalyzer, error) {
	if options.LanderMass <= 0 {
		return nil, fmt.Errorf("lander mass must be > 0 (got %g)", options.LanderMass)
	}

	calc := NewMetricsCalculator()
	scanner, err := NewSiteScanner(calc, options)
	if err != nil {
		return nil, err
	}

	return &coreAnalyzer{
		metricsCalculator: calc,
		scanner:           scanner,
		options:           options,
	}, nil
}

// Analyze estimates altitude and thrust, scans for landing sites and
// annotates the original image with the ranked picks.
func (ca *coreAnalyzer) Analyze(ctx context.Context, gray *image.Gray) (*LandingAnalysis, error) {
	start := time.Now()

	altitude := EstimateAltitude(ca.metricsCalculator, gray)
	thrust := RequiredThrust(altitude, ca.options.LanderMass)

	scan, err := ca.scanner.FindBestSpots(ctx, Normalize(gray), altitude)
	if err != nil {
		return nil, err
	}

	return &LandingAnalysis{
		Altitude:       altitude,
		RequiredThrust: thrust,
		Thrusters:      ActiveThrusters(thrust),
		Scan:           scan,
		Annotated:      Annotate(gray, scan.Best, altitude, ca.options.WindowSize),
		ProcessingTime: time.Since(start),
	}, nil
}
