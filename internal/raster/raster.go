// Package raster is the narrow imaging capability the icon generator needs:
// load, resize, fill a canvas, paste with alpha, encode.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Format is an output container.
type Format int

const (
	PNG Format = iota // single-frame PNG
	ICO               // multi-resolution Windows icon
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case ICO:
		return "ico"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Engine loads, transforms and encodes rasters. Every method returns a new
// image and leaves its inputs untouched.
type Engine interface {
	Name() string

	// Load decodes the file at path into an image with an alpha channel.
	Load(path string) (image.Image, error)

	// Resize scales img to exactly width×height, ignoring aspect ratio.
	Resize(img image.Image, width, height int) *image.NRGBA

	// Canvas returns a width×height image filled with fill.
	Canvas(width, height int, fill color.Color) *image.NRGBA

	// Paste composites src over dst with its top-left corner at at, using
	// src's alpha as the mask.
	Paste(dst, src image.Image, at image.Point) *image.NRGBA

	// Encode writes frames to w. PNG takes exactly one frame; ICO takes one
	// or more.
	Encode(w io.Writer, format Format, frames ...image.Image) error
}

// Compression maps a config name to a PNG compression level.
func Compression(name string) (png.CompressionLevel, error) {
	switch name {
	case "", "default":
		return png.DefaultCompression, nil
	case "best":
		return png.BestCompression, nil
	case "fast":
		return png.BestSpeed, nil
	case "none":
		return png.NoCompression, nil
	default:
		return 0, fmt.Errorf("raster: unknown png compression %q", name)
	}
}

// New returns the engine registered under name.
func New(name string, level png.CompressionLevel) (Engine, error) {
	switch name {
	case "", "imaging":
		return NewImaging(level), nil
	case "xdraw":
		return NewXDraw(level), nil
	default:
		return nil, fmt.Errorf("raster: unknown engine %q", name)
	}
}
