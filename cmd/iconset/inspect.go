package main

import (
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mavwarf/iconset/internal/raster"
)

// inspectCmd prints the size of every frame in the given PNG or ICO files.
func inspectCmd(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "Error: 'inspect' requires at least one file\n")
		return 1
	}
	code := 0
	for _, path := range args {
		sizes, err := frameSizes(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", path, err)
			code = 1
			continue
		}
		parts := make([]string, len(sizes))
		for i, s := range sizes {
			parts[i] = fmt.Sprintf("%dx%d", s.X, s.Y)
		}
		fmt.Fprintf(stdout, "%s: %d frame(s) %s\n", path, len(sizes), strings.Join(parts, ", "))
	}
	return code
}

func frameSizes(path string) ([]image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".ico") {
		frames, err := raster.DecodeFrames(f)
		if err != nil {
			return nil, err
		}
		sizes := make([]image.Point, len(frames))
		for i, fr := range frames {
			sizes[i] = fr.Bounds().Size()
		}
		return sizes, nil
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, err
	}
	return []image.Point{{cfg.Width, cfg.Height}}, nil
}
