// Package icons renders a fixed set of favicons, app icons and a social
// preview from a single logo image.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Mavwarf/iconset/internal/config"
	"github.com/Mavwarf/iconset/internal/paths"
	"github.com/Mavwarf/iconset/internal/raster"
)

// ErrSourceMissing is returned by Run when the logo file does not exist.
// Nothing is written in that case.
var ErrSourceMissing = errors.New("source image not found")

// JobKind is how a planned output is rendered.
type JobKind string

const (
	JobFavicon  JobKind = "favicon"
	JobPlain    JobKind = "plain"
	JobMaskable JobKind = "maskable"
	JobPreview  JobKind = "preview"
)

// Job is one planned output file.
type Job struct {
	Name       string
	Kind       JobKind
	Width      int
	Height     int
	Sizes      []int   // JobFavicon only
	Padding    float64 // JobMaskable only
	LogoHeight float64 // JobPreview only
}

// Plan expands a config into the ordered list of files to render:
// favicon first, then the square icons, then the preview.
func Plan(cfg config.Config) []Job {
	var jobs []Job
	if len(cfg.Favicon.Sizes) > 0 {
		largest := 0
		for _, s := range cfg.Favicon.Sizes {
			largest = max(largest, s)
		}
		jobs = append(jobs, Job{
			Name:   cfg.Favicon.Name,
			Kind:   JobFavicon,
			Width:  largest,
			Height: largest,
			Sizes:  append([]int(nil), cfg.Favicon.Sizes...),
		})
	}
	for _, ic := range cfg.Icons {
		j := Job{Name: ic.Name, Kind: JobPlain, Width: ic.Size, Height: ic.Size}
		if ic.Kind == config.KindMaskable {
			j.Kind = JobMaskable
			j.Padding = cfg.MaskablePadding
		}
		jobs = append(jobs, j)
	}
	if cfg.Preview.Name != "" {
		jobs = append(jobs, Job{
			Name:       cfg.Preview.Name,
			Kind:       JobPreview,
			Width:      cfg.Preview.Width,
			Height:     cfg.Preview.Height,
			LogoHeight: cfg.Preview.LogoHeight,
		})
	}
	return jobs
}

// Output describes one file written by Run.
type Output struct {
	Name   string
	Path   string
	Kind   JobKind
	Width  int
	Height int
	Sizes  []int
	Bytes  int64
}

// KB returns the file size in kilobytes.
func (o Output) KB() float64 {
	return float64(o.Bytes) / 1024
}

// Dimensions returns "WxH", or the frame list for a favicon.
func (o Output) Dimensions() string {
	if o.Kind == JobFavicon {
		return fmt.Sprint(o.Sizes)
	}
	return fmt.Sprintf("%dx%d", o.Width, o.Height)
}

// Report is the outcome of a Run. On failure it holds the outputs written
// before the error.
type Report struct {
	Source     string
	SourceSize image.Point
	OutputDir  string
	Engine     string
	Started    time.Time
	Duration   time.Duration
	Outputs    []Output
}

// Generator renders the configured icon set with one raster engine.
type Generator struct {
	cfg    config.Config
	engine raster.Engine
	log    logrus.FieldLogger
}

// New returns a Generator. A nil log discards progress messages.
func New(cfg config.Config, engine raster.Engine, log logrus.FieldLogger) *Generator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Generator{cfg: cfg, engine: engine, log: log}
}

// Run loads the source once and renders every planned output in order.
// A missing source returns ErrSourceMissing before anything is written;
// any other failure stops the run and is returned with the partial report.
func (g *Generator) Run() (*Report, error) {
	rep := &Report{
		Source:    g.cfg.Source,
		OutputDir: g.cfg.OutputDir,
		Engine:    g.engine.Name(),
		Started:   time.Now(),
	}
	defer func() { rep.Duration = time.Since(rep.Started) }()

	if _, err := os.Stat(g.cfg.Source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rep, fmt.Errorf("%w at %s", ErrSourceMissing, g.cfg.Source)
		}
		return rep, fmt.Errorf("checking source: %w", err)
	}

	g.log.WithField("path", g.cfg.Source).Info("loading logo")
	src, err := g.engine.Load(g.cfg.Source)
	if err != nil {
		return rep, err
	}
	rep.SourceSize = src.Bounds().Size()
	g.log.WithField("size", fmt.Sprintf("%dx%d", rep.SourceSize.X, rep.SourceSize.Y)).Info("original logo size")

	for _, job := range Plan(g.cfg) {
		out, err := g.write(src, job)
		if err != nil {
			return rep, fmt.Errorf("generating %s: %w", job.Name, err)
		}
		rep.Outputs = append(rep.Outputs, out)
	}
	return rep, nil
}

// write renders one job, encodes it in memory and writes it atomically.
func (g *Generator) write(src image.Image, job Job) (Output, error) {
	frames, format, err := g.render(src, job)
	if err != nil {
		return Output{}, err
	}

	var buf bytes.Buffer
	if err := g.engine.Encode(&buf, format, frames...); err != nil {
		return Output{}, err
	}

	path := filepath.Join(g.cfg.OutputDir, job.Name)
	if err := paths.AtomicWrite(path, buf.Bytes()); err != nil {
		return Output{}, err
	}

	out := Output{
		Name:   job.Name,
		Path:   path,
		Kind:   job.Kind,
		Width:  job.Width,
		Height: job.Height,
		Bytes:  int64(buf.Len()),
	}
	if job.Kind == JobFavicon {
		c := &Container{Frames: frames}
		out.Sizes = c.Sizes()
	}

	entry := g.log.WithFields(logrus.Fields{
		"file": job.Name,
		"size": out.Dimensions(),
		"kind": job.Kind,
	})
	if job.Kind == JobMaskable {
		entry = entry.WithField("padding", job.Padding)
	}
	entry.Info("generated")
	return out, nil
}

func (g *Generator) render(src image.Image, job Job) ([]image.Image, raster.Format, error) {
	bg := g.cfg.Background.NRGBA()
	switch job.Kind {
	case JobFavicon:
		c, err := GenerateMultiResolution(g.engine, src, job.Sizes)
		if err != nil {
			return nil, 0, err
		}
		return c.Frames, raster.ICO, nil
	case JobPlain:
		img, err := GeneratePlain(g.engine, src, job.Width)
		return []image.Image{img}, raster.PNG, err
	case JobMaskable:
		inner, offset := PaddedLayout(job.Width, job.Padding)
		g.log.WithFields(logrus.Fields{"file": job.Name, "inner": inner, "offset": offset}).Debug("padded layout")
		img, err := GeneratePadded(g.engine, src, job.Width, job.Padding, bg)
		return []image.Image{img}, raster.PNG, err
	case JobPreview:
		r := PreviewLayout(src.Bounds().Size(), job.Width, job.Height, job.LogoHeight)
		g.log.WithFields(logrus.Fields{"file": job.Name, "logo": r.String()}).Debug("preview layout")
		img, err := GeneratePreview(g.engine, src, job.Width, job.Height, job.LogoHeight, bg)
		return []image.Image{img}, raster.PNG, err
	default:
		return nil, 0, fmt.Errorf("unknown job kind %q", job.Kind)
	}
}
