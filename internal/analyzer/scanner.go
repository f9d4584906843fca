package analyzer

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"sort"

	"go-landing-scout/internal/strategy"

	"golang.org/x/sync/errgroup"
)

// siteScanner slides a fixed window over a normalized grid and ranks the windows
type siteScanner struct {
	calc       MetricsCalculator
	heatmap    strategy.HeatmapStrategy
	windowSize int
	stepSize   int
	topN       int
	workers    int
}

// NewSiteScanner creates a scanner for the given options
func NewSiteScanner(calc MetricsCalculator, options AnalysisOptions) (SiteScanner, error) {
	if options.WindowSize <= 0 || options.StepSize <= 0 {
		return nil, fmt.Errorf("window and step sizes must be > 0 (got window=%d, step=%d)",
			options.WindowSize, options.StepSize)
	}
	if options.TopN < 0 {
		return nil, fmt.Errorf("top-N must be >= 0 (got %d)", options.TopN)
	}

	heatmap, err := strategy.ForMode(options.HeatmapMode)
	if err != nil {
		return nil, err
	}

	workers := options.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &siteScanner{
		calc:       calc,
		heatmap:    heatmap,
		windowSize: options.WindowSize,
		stepSize:   options.StepSize,
		topN:       options.TopN,
		workers:    workers,
	}, nil
}

// windowOrigins lists the top-left corners of every window fully inside
// a width x height grid, in raster order (rows top to bottom, then columns).
func windowOrigins(width, height, windowSize, stepSize int) []image.Point {
	var origins []image.Point
	for y := 0; y+windowSize <= height; y += stepSize {
		for x := 0; x+windowSize <= width; x += stepSize {
			origins = append(origins, image.Pt(x, y))
		}
	}
	return origins
}

// scoreWindow favors flat windows whose brightness is close to altitude/100
func scoreWindow(mean, std, altitude float64) float64 {
	return 1 / (std + 1) * (1 - math.Abs(mean-altitude/100))
}

// FindBestSpots scores every window and returns the top-N by descending score.
// Scores are computed concurrently but stored by scan index, so the heatmap
// and the ranking are identical to a sequential raster scan. Equal scores
// keep scan order.
func (s *siteScanner) FindBestSpots(ctx context.Context, grid *Grid, altitude float64) (ScanResult, error) {
	origins := windowOrigins(grid.Width, grid.Height, s.windowSize, s.stepSize)
	scores := make([]float64, len(origins))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, origin := range origins {
		i, origin := i, origin
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			window := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(s.windowSize, s.windowSize))}
			mean, std := s.calc.CalculateWindowStats(grid, window)
			scores[i] = scoreWindow(mean, std, altitude)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, fmt.Errorf("scan aborted: %w", err)
	}

	heat := NewGrid(grid.Width, grid.Height)
	spots := make([]Spot, len(origins))
	s.heatmap.Prepare(heat.Pix)
	for i, origin := range origins {
		window := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(s.windowSize, s.windowSize))}
		s.heatmap.Apply(heat.Pix, heat.Width, window, scores[i])
		spots[i] = Spot{Score: scores[i], Point: origin}
	}
	s.heatmap.Finish(heat.Pix)

	ranked := make([]Spot, len(spots))
	copy(ranked, spots)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	n := s.topN
	if n > len(ranked) {
		n = len(ranked)
	}

	return ScanResult{
		Spots:   spots,
		Best:    ranked[:n],
		Heatmap: heat,
	}, nil
}
