package analyzer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	outlineThickness = 2
	labelOffset      = 10
)

// rankColors are the outline and label colors for ranks 1, 2 and 3
var rankColors = []color.NRGBA{
	{R: 0, G: 255, B: 0, A: 255},   // green
	{R: 0, G: 255, B: 255, A: 255}, // cyan
	{R: 255, G: 0, B: 0, A: 255},   // red
}

// Annotate draws an outlined window and a "Spot N (Alt: ...m)" label for each
// ranked spot onto a color copy of the original image. Drawing is clipped to
// the image bounds.
func Annotate(gray *image.Gray, best []Spot, altitude float64, windowSize int) *image.NRGBA {
	marked := imaging.Clone(gray)

	for i, spot := range best {
		if i >= len(rankColors) {
			break
		}
		col := rankColors[i]
		drawOutline(marked, image.Rectangle{
			Min: spot.Point,
			Max: spot.Point.Add(image.Pt(windowSize, windowSize)),
		}, col)
		drawLabel(marked, fmt.Sprintf("Spot %d (Alt: %.2fm)", i+1, altitude),
			image.Pt(spot.X(), spot.Y()-labelOffset), col)
	}

	return marked
}

// drawOutline strokes r with a band of outlineThickness pixels centered on its edges
func drawOutline(dst draw.Image, r image.Rectangle, col color.Color) {
	src := image.NewUniform(col)
	half := outlineThickness / 2
	edges := []image.Rectangle{
		image.Rect(r.Min.X-half, r.Min.Y-half, r.Max.X+half, r.Min.Y+half), // top
		image.Rect(r.Min.X-half, r.Max.Y-half, r.Max.X+half, r.Max.Y+half), // bottom
		image.Rect(r.Min.X-half, r.Min.Y-half, r.Min.X+half, r.Max.Y+half), // left
		image.Rect(r.Max.X-half, r.Min.Y-half, r.Max.X+half, r.Max.Y+half), // right
	}
	for _, edge := range edges {
		draw.Draw(dst, edge.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawLabel writes text with its baseline starting at dot
func drawLabel(dst draw.Image, text string, dot image.Point, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(text)
}
