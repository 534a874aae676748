package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Imaging is the default engine, backed by disintegration/imaging with a
// Lanczos filter.
type Imaging struct {
	codec
	filter imaging.ResampleFilter
}

// NewImaging returns an Imaging engine that writes PNGs at level.
func NewImaging(level png.CompressionLevel) *Imaging {
	return &Imaging{codec: codec{level: level}, filter: imaging.Lanczos}
}

func (e *Imaging) Name() string { return "imaging" }

func (e *Imaging) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}

func (e *Imaging) Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, e.filter)
}

func (e *Imaging) Canvas(width, height int, fill color.Color) *image.NRGBA {
	return imaging.New(width, height, fill)
}

func (e *Imaging) Paste(dst, src image.Image, at image.Point) *image.NRGBA {
	return imaging.Overlay(dst, src, at, 1.0)
}

func (e *Imaging) Encode(w io.Writer, format Format, frames ...image.Image) error {
	return e.encode(w, format, func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(e.level))
	}, frames)
}
