package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Mavwarf/iconset/internal/icons"
)

// --- ANSI color helpers (disabled when NO_COLOR is set or stdout is not a terminal) ---

var noColor = colorDisabled(os.Stdout)

// colorDisabled reports whether output to f should stay plain.
func colorDisabled(f *os.File) bool {
	return os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(f.Fd()))
}

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func bold(s string) string  { return ansi("\033[1m", s) }
func dim(s string) string   { return ansi("\033[2m", s) }
func green(s string) string { return ansi("\033[32m", s) }

// fmtKB formats a byte count as kilobytes with one decimal (e.g. "4.2 KB").
func fmtKB(n int64) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// renderSummary writes the per-file listing printed after a successful run.
func renderSummary(w io.Writer, rep *icons.Report) {
	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, green("All icons generated successfully."))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, bold("Generated files:"))
	for _, o := range rep.Outputs {
		fmt.Fprintf(&b, "  - %s (%s)  %s\n", o.Name, fmtKB(o.Bytes), dim(o.Dimensions()))
	}
	io.WriteString(w, b.String())
}
