package icons

import (
	"image"
	"math"
)

// PaddedLayout returns the edge length of the logo inside a padded icon and
// its offset from the top-left corner. The offset applies to both axes.
func PaddedLayout(size int, padding float64) (inner, offset int) {
	inner = int(math.Floor(float64(size) * (1 - 2*padding)))
	offset = int(math.Round(float64(size) * padding))
	return inner, offset
}

// PreviewLayout returns where a logo of srcSize lands on a width×height
// preview: its height is logoFrac of the canvas height, its width keeps the
// source aspect ratio, and it is centered with integer-divided offsets.
func PreviewLayout(srcSize image.Point, width, height int, logoFrac float64) image.Rectangle {
	lh := int(float64(height) * logoFrac)
	if lh < 1 {
		lh = 1
	}
	lw := 1
	if srcSize.Y > 0 {
		lw = int(float64(lh) * (float64(srcSize.X) / float64(srcSize.Y)))
	}
	if lw < 1 {
		lw = 1
	}
	x := (width - lw) / 2
	y := (height - lh) / 2
	return image.Rect(x, y, x+lw, y+lh)
}
