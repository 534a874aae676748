package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mavwarf/iconset/internal/config"
	"github.com/Mavwarf/iconset/internal/history"
)

func historyCmd(cfg config.Config, args []string) {
	if cfg.History == config.HistoryOff {
		fmt.Println("History is disabled. Set \"history: file\" or \"history: sqlite\" in iconset.yaml.")
		return
	}
	store, err := history.Open(cfg.History, dataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) > 0 {
		switch args[0] {
		case "clear":
			historyClear(store)
			return
		case "clean":
			historyClean(store, args[1:])
			return
		}
	}

	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: count must be a positive integer\n")
			os.Exit(1)
		}
		count = n
	}

	runs, err := store.Runs(count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	renderRuns(os.Stdout, runs)
}

// renderRuns prints one block per run, oldest first.
func renderRuns(w io.Writer, runs []history.Run) {
	var b strings.Builder
	for i, r := range runs {
		status := string(r.Status)
		if r.Status == history.StatusOK {
			status = green(status)
		}
		fmt.Fprintf(&b, "%s  %s  %s -> %s", bold(r.Time.Local().Format("2006-01-02 15:04:05")),
			status, r.Source, r.OutputDir)
		if r.Engine != "" {
			fmt.Fprintf(&b, "  %s", dim(r.Engine+", "+r.Duration.Round(time.Millisecond).String()))
		}
		b.WriteByte('\n')
		if r.Error != "" {
			fmt.Fprintf(&b, "    error: %s\n", r.Error)
		}
		var total int64
		for _, o := range r.Outputs {
			fmt.Fprintf(&b, "    %-24s %-12s %s\n", o.Name, o.Dimensions, fmtKB(o.Bytes))
			total += o.Bytes
		}
		if len(r.Outputs) > 0 {
			fmt.Fprintf(&b, "    %-24s %-12s %s\n", "total", "", fmtKB(total))
		}
		if i < len(runs)-1 {
			b.WriteByte('\n')
		}
	}
	io.WriteString(w, b.String())
}

func historyClear(store history.Store) {
	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("History cleared.")
}

func historyClean(store history.Store, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: 'history clean' requires a number of days\n")
		os.Exit(1)
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		fmt.Fprintf(os.Stderr, "Error: days must be a positive integer\n")
		os.Exit(1)
	}
	removed, err := store.Clean(days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %d run(s) older than %d days.\n", removed, days)
}
