package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Mavwarf/iconset/internal/paths"
)

// removeFile is os.Remove. Overridden in tests.
var removeFile = os.Remove

// FileStore implements Store using a flat log file. Each run is a summary
// line followed by one line per output; runs are separated by a blank line.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Record(r Run) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(FormatRun(r))
	return err
}

// FormatRun renders r in the log file layout, including the trailing
// blank line.
func FormatRun(r Run) string {
	var b strings.Builder
	ts := r.Time.Format(time.RFC3339)
	fmt.Fprintf(&b, "%s  run status=%s source=%q out=%q engine=%s duration=%s",
		ts, r.Status, r.Source, r.OutputDir, r.Engine, r.Duration.Round(time.Millisecond))
	if r.Error != "" {
		fmt.Fprintf(&b, " error=%q", r.Error)
	}
	b.WriteByte('\n')
	for _, o := range r.Outputs {
		fmt.Fprintf(&b, "%s    output name=%q dims=%q bytes=%d\n", ts, o.Name, o.Dimensions, o.Bytes)
	}
	b.WriteByte('\n')
	return b.String()
}

// ParseRuns parses log content written by FormatRun. Malformed blocks are
// skipped.
func ParseRuns(content string) []Run {
	var runs []Run
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) == 0 || lines[0] == "" {
			continue
		}
		r, ok := parseSummary(lines[0])
		if !ok {
			continue
		}
		for _, line := range lines[1:] {
			if o, ok := parseOutput(line); ok {
				r.Outputs = append(r.Outputs, o)
			}
		}
		runs = append(runs, r)
	}
	return runs
}

func parseSummary(line string) (Run, bool) {
	tsStr, rest, ok := strings.Cut(line, "  run ")
	if !ok {
		return Run{}, false
	}
	ts, err := time.Parse(time.RFC3339, tsStr)
	if err != nil {
		return Run{}, false
	}
	kv, ok := parseFields(rest)
	if !ok {
		return Run{}, false
	}
	d, _ := time.ParseDuration(kv["duration"])
	return Run{
		Time:      ts,
		Status:    Status(kv["status"]),
		Source:    kv["source"],
		OutputDir: kv["out"],
		Engine:    kv["engine"],
		Duration:  d,
		Error:     kv["error"],
	}, true
}

func parseOutput(line string) (Output, bool) {
	_, rest, ok := strings.Cut(line, "    output ")
	if !ok {
		return Output{}, false
	}
	kv, ok := parseFields(rest)
	if !ok {
		return Output{}, false
	}
	n, err := strconv.ParseInt(kv["bytes"], 10, 64)
	if err != nil {
		return Output{}, false
	}
	return Output{Name: kv["name"], Dimensions: kv["dims"], Bytes: n}, true
}

// parseFields splits space-separated key=value pairs. Values are either
// bare words or Go-quoted strings.
func parseFields(s string) (map[string]string, bool) {
	kv := make(map[string]string)
	for {
		s = strings.TrimLeft(s, " ")
		if s == "" {
			return kv, true
		}
		key, rest, ok := strings.Cut(s, "=")
		if !ok || key == "" || strings.Contains(key, " ") {
			return nil, false
		}
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, false
			}
			val, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, false
			}
			kv[key] = val
			s = rest[len(quoted):]
			continue
		}
		val, after, _ := strings.Cut(rest, " ")
		kv[key] = val
		s = after
	}
}

func (f *FileStore) read() ([]Run, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ParseRuns(string(data)), nil
}

func (f *FileStore) Runs(limit int) ([]Run, error) {
	runs, err := f.read()
	if err != nil {
		return nil, err
	}
	return tail(runs, limit), nil
}

func (f *FileStore) Clean(days int) (int, error) {
	runs, err := f.read()
	if err != nil || len(runs) == 0 {
		return 0, err
	}

	limit := cutoff(days)
	var b strings.Builder
	removed := 0
	for _, r := range runs {
		if r.Time.Before(limit) {
			removed++
			continue
		}
		b.WriteString(FormatRun(r))
	}
	if removed == 0 {
		return 0, nil
	}
	if b.Len() == 0 {
		if err := removeFile(f.path); err != nil && !os.IsNotExist(err) {
			return 0, err
		}
		return removed, nil
	}
	if err := paths.AtomicWrite(f.path, []byte(b.String())); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) Clear() error {
	err := removeFile(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error { return nil }
