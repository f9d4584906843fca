package analyzer

import (
	"context"
	"image"
)

// ImageAnalyzer defines the main interface for landing analysis
type ImageAnalyzer interface {
	// Analyze runs the full pipeline on a 512x512 grayscale image
	Analyze(ctx context.Context, gray *image.Gray) (*LandingAnalysis, error)
}

// MetricsCalculator handles intensity statistics
type MetricsCalculator interface {
	CalculateBrightness(gray *image.Gray) float64
	CalculateWindowStats(grid *Grid, window image.Rectangle) (mean, std float64)
}

// SiteScanner ranks candidate landing windows
type SiteScanner interface {
	FindBestSpots(ctx context.Context, grid *Grid, altitude float64) (ScanResult, error)
}
