package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// XDraw is backed by golang.org/x/image/draw with the Catmull-Rom kernel.
type XDraw struct {
	codec
	scaler draw.Scaler
}

// NewXDraw returns an XDraw engine that writes PNGs at level.
func NewXDraw(level png.CompressionLevel) *XDraw {
	return &XDraw{codec: codec{level: level}, scaler: draw.CatmullRom}
}

func (e *XDraw) Name() string { return "xdraw" }

func (e *XDraw) Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func (e *XDraw) Resize(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	e.scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func (e *XDraw) Canvas(width, height int, fill color.Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return dst
}

func (e *XDraw) Paste(dst, src image.Image, at image.Point) *image.NRGBA {
	out := toNRGBA(dst)
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(out, r, src, sb.Min, draw.Over)
	return out
}

func (e *XDraw) Encode(w io.Writer, format Format, frames ...image.Image) error {
	enc := png.Encoder{CompressionLevel: e.level}
	return e.encode(w, format, enc.Encode, frames)
}

// toNRGBA copies img into a fresh zero-origin NRGBA.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
