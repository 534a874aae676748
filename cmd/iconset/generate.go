package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Mavwarf/iconset/internal/config"
	"github.com/Mavwarf/iconset/internal/history"
	"github.com/Mavwarf/iconset/internal/icons"
	"github.com/Mavwarf/iconset/internal/mqtt"
	"github.com/Mavwarf/iconset/internal/paths"
	"github.com/Mavwarf/iconset/internal/raster"
	"github.com/Mavwarf/iconset/internal/webhook"
)

// dataDir is where run history lives. Overridden in tests.
var dataDir = paths.DataDir

// generate runs one full generation and returns the process exit code.
// A missing source is reported but exits 0; any other failure exits 1.
func generate(cfg config.Config, log *logrus.Logger, stdout, stderr io.Writer) int {
	level, err := raster.Compression(cfg.PNGCompression)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	engine, err := raster.New(cfg.Engine, level)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	rep, runErr := icons.New(cfg, engine, log).Run()
	afterRun(cfg, log, rep, runErr)

	switch {
	case runErr == nil:
		renderSummary(stdout, rep)
		return 0
	case errors.Is(runErr, icons.ErrSourceMissing):
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}
}

// afterRun records the run and publishes it. Both are best-effort: failures
// are logged and never change the exit code.
func afterRun(cfg config.Config, log *logrus.Logger, rep *icons.Report, runErr error) {
	run := history.FromReport(rep, runErr)

	store, err := history.Open(cfg.History, dataDir())
	if err != nil {
		log.WithError(err).Warn("history unavailable")
	} else if store != nil {
		if err := store.Record(run); err != nil {
			log.WithError(err).Warn("recording history failed")
		}
		store.Close()
	}

	if !cfg.MQTT.Enabled() && !cfg.Webhook.Enabled() {
		return
	}
	payload, err := history.Payload(run)
	if err != nil {
		log.WithError(err).Warn("encoding run summary failed")
		return
	}
	if cfg.MQTT.Enabled() {
		if err := mqtt.Publish(cfg.MQTT, payload); err != nil {
			log.WithError(err).Warn("mqtt publish failed")
		} else {
			log.WithField("topic", cfg.MQTT.Topic).Debug("published run summary")
		}
	}
	if cfg.Webhook.Enabled() {
		if err := webhook.Send(cfg.Webhook.URL, payload, cfg.Webhook.Headers); err != nil {
			log.WithError(err).Warn("webhook delivery failed")
		} else {
			log.WithField("url", cfg.Webhook.URL).Debug("posted run summary")
		}
	}
}

// printConfig writes the effective config as YAML with the MQTT password masked.
func printConfig(w io.Writer, cfg config.Config) error {
	if cfg.Path != "" {
		fmt.Fprintf(w, "# loaded from %s\n", cfg.Path)
	} else {
		fmt.Fprintln(w, "# built-in defaults")
	}
	if cfg.MQTT.Password != "" {
		cfg.MQTT.Password = "********"
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
