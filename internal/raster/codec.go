package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"

	ico "github.com/sergeymakinen/go-ico"
)

// maxICOSize is the largest frame edge the ICO directory can describe.
const maxICOSize = 256

// codec is the encoding half shared by both engines.
type codec struct {
	level png.CompressionLevel
}

func (c codec) encode(w io.Writer, format Format, encodePNG func(io.Writer, image.Image) error, frames []image.Image) error {
	if len(frames) == 0 {
		return fmt.Errorf("raster: encode %s: no frames", format)
	}
	switch format {
	case PNG:
		if len(frames) != 1 {
			return fmt.Errorf("raster: encode png: want 1 frame, got %d", len(frames))
		}
		return encodePNG(w, frames[0])
	case ICO:
		return encodeICO(w, frames)
	default:
		return fmt.Errorf("raster: unsupported format %s", format)
	}
}

// encodeICO packs frames smallest first.
func encodeICO(w io.Writer, frames []image.Image) error {
	sorted := make([]image.Image, len(frames))
	copy(sorted, frames)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bounds().Dx() < sorted[j].Bounds().Dx()
	})
	for _, f := range sorted {
		b := f.Bounds()
		if b.Dx() > maxICOSize || b.Dy() > maxICOSize {
			return fmt.Errorf("raster: ico frame %dx%d exceeds %dx%d", b.Dx(), b.Dy(), maxICOSize, maxICOSize)
		}
	}
	if err := ico.EncodeAll(w, sorted); err != nil {
		return fmt.Errorf("raster: encode ico: %w", err)
	}
	return nil
}

// DecodeFrames reads every frame from an ICO stream.
func DecodeFrames(r io.Reader) ([]image.Image, error) {
	frames, err := ico.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode ico: %w", err)
	}
	return frames, nil
}
