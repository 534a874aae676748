// Package history records every generation run so earlier outputs and
// failures can be reviewed with "iconset history".
package history

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Mavwarf/iconset/internal/icons"
	"github.com/Mavwarf/iconset/internal/paths"
)

// Status is the outcome of a run.
type Status string

const (
	StatusOK      Status = "ok"
	StatusMissing Status = "missing"
	StatusError   Status = "error"
)

// Output is one file written during a run.
type Output struct {
	Name       string
	Dimensions string
	Bytes      int64
}

// Run is a single invocation of the generator.
type Run struct {
	Time      time.Time
	Source    string
	OutputDir string
	Engine    string
	Status    Status
	Error     string
	Duration  time.Duration
	Outputs   []Output
}

// Store abstracts run history storage. FileStore keeps a flat text log,
// SQLiteStore a database.
type Store interface {
	Record(r Run) error
	Runs(limit int) ([]Run, error) // oldest first; limit 0 = all
	Clean(days int) (int, error)   // remove runs older than days, return removed count
	Clear() error
	Path() string
	Close() error
}

// FromReport converts a generator report and its error into a Run.
func FromReport(rep *icons.Report, runErr error) Run {
	r := Run{Time: time.Now(), Status: StatusOK}
	if rep != nil {
		r.Time = rep.Started
		r.Source = rep.Source
		r.OutputDir = rep.OutputDir
		r.Engine = rep.Engine
		r.Duration = rep.Duration
		for _, o := range rep.Outputs {
			r.Outputs = append(r.Outputs, Output{Name: o.Name, Dimensions: o.Dimensions(), Bytes: o.Bytes})
		}
	}
	switch {
	case runErr == nil:
	case errors.Is(runErr, icons.ErrSourceMissing):
		r.Status = StatusMissing
		r.Error = runErr.Error()
	default:
		r.Status = StatusError
		r.Error = runErr.Error()
	}
	return r
}

// Open returns the store for backend inside dir. Backend "off" returns a
// nil Store and no error.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "off":
		return nil, nil
	case "", "file":
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dir, paths.DatabaseName))
	default:
		return nil, fmt.Errorf("history: unknown backend %q", backend)
	}
}

// cutoff returns the earliest time kept by Clean(days).
func cutoff(days int) time.Time {
	return time.Now().AddDate(0, 0, -days)
}

// tail returns the last limit runs, or all of them when limit <= 0.
func tail(runs []Run, limit int) []Run {
	if limit > 0 && len(runs) > limit {
		return runs[len(runs)-limit:]
	}
	return runs
}
