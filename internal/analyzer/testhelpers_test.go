package analyzer

import (
	"image"
	"image/color"
)

// createUniformGray creates a grayscale image filled with one value
func createUniformGray(width, height int, value uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

// createFlatPatchImage creates a 0/2 checkerboard with a flat patch of 1s
// covering the window whose top-left corner is patch.
func createFlatPatchImage(size int, patch image.Point, patchSize int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	region := image.Rectangle{Min: patch, Max: patch.Add(image.Pt(patchSize, patchSize))}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch {
			case image.Pt(x, y).In(region):
				img.SetGray(x, y, color.Gray{Y: 1})
			case (x+y)%2 == 0:
				img.SetGray(x, y, color.Gray{Y: 0})
			default:
				img.SetGray(x, y, color.Gray{Y: 2})
			}
		}
	}
	return img
}

// createGradientGray creates a left-to-right gradient from black to white
func createGradientGray(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (width - 1))})
		}
	}
	return img
}
