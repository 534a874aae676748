package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/Mavwarf/iconset/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// options holds the global flags accepted before or after the command.
type options struct {
	configPath string
	engine     string
	verbose    bool
	quiet      bool
}

func main() {
	opts, args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := "generate"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "generate":
		cfg := loadConfig(opts)
		os.Exit(generate(cfg, newLogger(opts, os.Stderr), os.Stdout, os.Stderr))
	case "watch":
		cfg := loadConfig(opts)
		os.Exit(watchCmd(cfg, newLogger(opts, os.Stderr)))
	case "history":
		cfg := loadConfig(opts)
		historyCmd(cfg, args)
	case "inspect":
		os.Exit(inspectCmd(args, os.Stdout, os.Stderr))
	case "config":
		cfg := loadConfig(opts)
		if err := printConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprintf(os.Stderr, "Run 'iconset help' for usage.\n")
		os.Exit(1)
	}
}

// parseArgs pulls global flags out of args and returns the rest in order.
func parseArgs(args []string) (options, []string, error) {
	var opts options
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--config requires a file path")
			}
			opts.configPath = args[i+1]
			i++
		case "--engine", "-e":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--engine requires a value (imaging, xdraw)")
			}
			opts.engine = args[i+1]
			i++
		case "--verbose":
			opts.verbose = true
		case "--quiet", "-q":
			opts.quiet = true
		default:
			rest = append(rest, args[i])
		}
	}
	if opts.verbose && opts.quiet {
		return opts, nil, fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	return opts, rest, nil
}

func loadConfig(opts options) config.Config {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.engine != "" {
		cfg.Engine = opts.engine
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	return cfg
}

// newLogger returns a logger writing to out, colored only when out is a terminal.
func newLogger(opts options, out *os.File) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    colorDisabled(out),
	})
	switch {
	case opts.verbose:
		log.SetLevel(logrus.DebugLevel)
	case opts.quiet:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func printVersion() {
	fmt.Printf("iconset %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("iconset %s - Generate favicons, app icons and a social preview from one logo\n", version)
	fmt.Println(`
Usage:
  iconset [options] [command]

Options:
  --config, -c <path>    Path to iconset.yaml
  --engine, -e <name>    Raster engine: imaging (Lanczos) or xdraw (Catmull-Rom)
  --verbose              Log layout details
  --quiet, -q            Only log warnings and errors

Commands:
  generate               Render the full icon set (default)
  watch                  Regenerate whenever the source logo changes
  history [n]            Show the last n runs (default 10)
  history clean <days>   Remove runs older than <days>
  history clear          Delete all run history
  inspect <file>         Print the frame sizes of a PNG or ICO file
  config                 Print the effective configuration
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                   (explicit)
  2. iconset.yaml in the working directory
  3. iconset.yaml next to binary       (portable)
  4. ~/.config/iconset/iconset.yaml    (user default)
  5. built-in defaults

Examples:
  iconset                          Generate into ./public from public/images/logo.png
  iconset -c brand.yaml            Use a custom output table
  iconset -e xdraw                 Render with the Catmull-Rom engine
  iconset inspect public/favicon.ico`)
}
