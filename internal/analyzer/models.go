package analyzer

import (
	"image"
	"time"
)

// Grid is a row-major matrix of normalized intensities
type Grid struct {
	Width, Height int
	Pix           []float64
}

// NewGrid allocates a zeroed grid
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// At returns the value at column x, row y
func (g *Grid) At(x, y int) float64 {
	return g.Pix[y*g.Width+x]
}

// Spot is one scored window, identified by its top-left corner
type Spot struct {
	Score float64     `json:"score"`
	Point image.Point `json:"-"`
}

// X returns the window's left edge
func (s Spot) X() int { return s.Point.X }

// Y returns the window's top edge
func (s Spot) Y() int { return s.Point.Y }

// ScanResult holds every scored window in raster order plus the ranked picks
type ScanResult struct {
	Spots   []Spot
	Best    []Spot
	Heatmap *Grid
}

// Thrusters is the per-direction force assignment
type Thrusters struct {
	Front float64 `json:"front"`
	Back  float64 `json:"back"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Sum returns the total force over all four thrusters
func (t Thrusters) Sum() float64 {
	return t.Front + t.Back + t.Left + t.Right
}

// LandingAnalysis is the full outcome of one image
type LandingAnalysis struct {
	Altitude       float64
	RequiredThrust float64
	Thrusters      Thrusters
	Scan           ScanResult
	Annotated      *image.NRGBA
	ProcessingTime time.Duration
}
