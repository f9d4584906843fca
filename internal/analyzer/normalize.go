package analyzer

import "image"

// Normalize min-max scales the whole image into [0, 1].
// A constant image has no range and maps to all zeros.
func Normalize(gray *image.Gray) *Grid {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	grid := NewGrid(width, height)
	if width == 0 || height == 0 {
		return grid
	}

	lo, hi := uint8(255), uint8(0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		off := gray.PixOffset(bounds.Min.X, y)
		for _, p := range gray.Pix[off : off+width] {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
	}

	if hi == lo {
		return grid
	}

	span := float64(hi) - float64(lo)
	for y := 0; y < height; y++ {
		off := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x, p := range gray.Pix[off : off+width] {
			grid.Pix[y*width+x] = (float64(p) - float64(lo)) / span
		}
	}
	return grid
}
