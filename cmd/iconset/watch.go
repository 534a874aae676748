package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/Mavwarf/iconset/internal/config"
	"github.com/Mavwarf/iconset/internal/watch"
)

// watchCmd generates once, then again after every change to the source
// until interrupted.
func watchCmd(cfg config.Config, log *logrus.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, err := watch.New(cfg.Source, watch.DefaultDelay, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	generate(cfg, log, os.Stdout, os.Stderr)
	if err := w.Run(ctx, func() {
		generate(cfg, log, os.Stdout, os.Stderr)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
