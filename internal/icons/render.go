package icons

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/Mavwarf/iconset/internal/raster"
)

// GeneratePadded renders img centered on a size×size canvas filled with bg,
// leaving padding (a fraction of size) clear on every side.
func GeneratePadded(e raster.Engine, img image.Image, size int, padding float64, bg color.Color) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("padded icon: size must be positive, got %d", size)
	}
	if padding < 0 || padding >= 0.5 {
		return nil, fmt.Errorf("padded icon: padding must be in [0, 0.5), got %v", padding)
	}

	canvas := e.Canvas(size, size, bg)
	inner, offset := PaddedLayout(size, padding)
	if inner < 1 {
		return canvas, nil
	}
	logo := e.Resize(img, inner, inner)
	return e.Paste(canvas, logo, image.Pt(offset, offset)), nil
}

// GeneratePlain resizes img to size×size without padding or background.
// The source aspect ratio is not preserved.
func GeneratePlain(e raster.Engine, img image.Image, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icon: size must be positive, got %d", size)
	}
	return e.Resize(img, size, size), nil
}

// Container is a set of square frames of the same image, smallest first.
type Container struct {
	Frames []image.Image
}

// Sizes returns the edge length of every frame, in order.
func (c *Container) Sizes() []int {
	sizes := make([]int, len(c.Frames))
	for i, f := range c.Frames {
		sizes[i] = f.Bounds().Dx()
	}
	return sizes
}

// GenerateMultiResolution resizes img independently to every size.
func GenerateMultiResolution(e raster.Engine, img image.Image, sizes []int) (*Container, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("multi-resolution icon: no sizes")
	}
	ordered := append([]int(nil), sizes...)
	sort.Ints(ordered)

	c := &Container{Frames: make([]image.Image, 0, len(ordered))}
	for _, s := range ordered {
		if s <= 0 {
			return nil, fmt.Errorf("multi-resolution icon: size must be positive, got %d", s)
		}
		c.Frames = append(c.Frames, e.Resize(img, s, s))
	}
	return c, nil
}

// GeneratePreview renders a width×height card filled with bg and the logo
// centered on it at logoFrac of the card height.
func GeneratePreview(e raster.Engine, img image.Image, width, height int, logoFrac float64, bg color.Color) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("preview: dimensions must be positive, got %dx%d", width, height)
	}
	if logoFrac <= 0 || logoFrac > 1 {
		return nil, fmt.Errorf("preview: logo fraction must be in (0, 1], got %v", logoFrac)
	}

	canvas := e.Canvas(width, height, bg)
	r := PreviewLayout(img.Bounds().Size(), width, height, logoFrac)
	logo := e.Resize(img, r.Dx(), r.Dy())
	return e.Paste(canvas, logo, r.Min), nil
}
