package analyzer

import (
	"image"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// metricsCalculator implements MetricsCalculator on top of Gonum
type metricsCalculator struct {
	slicePool sync.Pool
}

// NewMetricsCalculator creates a new metrics calculator using Gonum
func NewMetricsCalculator() MetricsCalculator {
	return &metricsCalculator{
		slicePool: sync.Pool{
			New: func() interface{} {
				s := make([]float64, 0, DefaultWindowSize*DefaultWindowSize)
				return &s
			},
		},
	}
}

// CalculateBrightness returns the mean 0-255 intensity of the image
func (mc *metricsCalculator) CalculateBrightness(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Handle empty images
	if width == 0 || height == 0 {
		return 0
	}

	data := make([]float64, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := gray.Pix[gray.PixOffset(bounds.Min.X, y) : gray.PixOffset(bounds.Min.X, y)+width]
		for _, p := range row {
			data = append(data, float64(p))
		}
	}

	return stat.Mean(data, nil)
}

// CalculateWindowStats returns the mean and population standard deviation
// of the grid values inside window. The window must lie inside the grid.
func (mc *metricsCalculator) CalculateWindowStats(grid *Grid, window image.Rectangle) (float64, float64) {
	if window.Empty() {
		return 0, 0
	}

	buf := mc.slicePool.Get().(*[]float64)
	data := (*buf)[:0]
	defer func() {
		*buf = data[:0]
		mc.slicePool.Put(buf)
	}()

	for y := window.Min.Y; y < window.Max.Y; y++ {
		data = append(data, grid.Pix[y*grid.Width+window.Min.X:y*grid.Width+window.Max.X]...)
	}

	return stat.PopMeanStdDev(data, nil)
}
