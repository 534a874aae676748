package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Mavwarf/iconset/internal/paths"
)

// DefaultSource is the logo path used when no config overrides it.
const DefaultSource = "public/images/logo.png"

// DefaultOutputDir is the directory all generated files are written to.
const DefaultOutputDir = "public"

// DefaultMaskablePadding is the safe-zone padding on each side of a
// maskable icon, as a fraction of the icon size.
const DefaultMaskablePadding = 0.1

// DefaultBackground is the cream fill behind maskable icons and the preview.
var DefaultBackground = Color{R: 245, G: 234, B: 216}

// Kind selects how an icon is rendered.
type Kind string

const (
	KindPlain    Kind = "plain"    // direct resize, no background
	KindMaskable Kind = "maskable" // padded onto the background
)

// Engine names accepted by the "engine" key.
const (
	EngineImaging = "imaging"
	EngineXDraw   = "xdraw"
)

// History backends accepted by the "history" key.
const (
	HistoryFile   = "file"
	HistorySQLite = "sqlite"
	HistoryOff    = "off"
)

// Icon is a single square PNG output.
type Icon struct {
	Name string `yaml:"name"`
	Size int    `yaml:"size"`
	Kind Kind   `yaml:"kind,omitempty"`
}

// Favicon is the multi-resolution ICO output.
type Favicon struct {
	Name  string `yaml:"name"`
	Sizes []int  `yaml:"sizes"`
}

// Preview is the social-media card with the logo centered on the background.
type Preview struct {
	Name       string  `yaml:"name"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	LogoHeight float64 `yaml:"logo_height"` // fraction of Height
}

// MQTT holds the optional broker a run summary is published to.
type MQTT struct {
	Broker   string `yaml:"broker,omitempty"`
	Topic    string `yaml:"topic,omitempty"`
	ClientID string `yaml:"client_id,omitempty"`
	QoS      byte   `yaml:"qos,omitempty"`
	Retain   bool   `yaml:"retain,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Enabled reports whether a broker is configured.
func (m MQTT) Enabled() bool {
	return m.Broker != ""
}

// Webhook is an optional HTTP endpoint the run summary is posted to.
type Webhook struct {
	URL     string            `yaml:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// Enabled reports whether a URL is configured.
func (w Webhook) Enabled() bool {
	return w.URL != ""
}

// Config holds everything the generator needs: where to read, where to
// write, and the table of outputs.
type Config struct {
	Source          string  `yaml:"source"`
	OutputDir       string  `yaml:"output_dir"`
	Background      Color   `yaml:"background"`
	MaskablePadding float64 `yaml:"maskable_padding"`
	Favicon         Favicon `yaml:"favicon"`
	Icons           []Icon  `yaml:"icons"`
	Preview         Preview `yaml:"preview"`
	Engine          string  `yaml:"engine"`
	PNGCompression  string  `yaml:"png_compression"`
	History         string  `yaml:"history"`
	MQTT            MQTT    `yaml:"mqtt,omitempty"`
	Webhook         Webhook `yaml:"webhook,omitempty"`

	// Path is the file the config was read from, empty for built-in defaults.
	Path string `yaml:"-"`
}

// Default returns the built-in icon set.
func Default() Config {
	return Config{
		Source:          DefaultSource,
		OutputDir:       DefaultOutputDir,
		Background:      DefaultBackground,
		MaskablePadding: DefaultMaskablePadding,
		Favicon: Favicon{
			Name:  "favicon.ico",
			Sizes: []int{16, 32, 48},
		},
		Icons: []Icon{
			{Name: "icon-192.png", Size: 192, Kind: KindPlain},
			{Name: "icon-512.png", Size: 512, Kind: KindPlain},
			{Name: "apple-touch-icon.png", Size: 180, Kind: KindPlain},
			{Name: "icon-maskable-192.png", Size: 192, Kind: KindMaskable},
			{Name: "icon-maskable-512.png", Size: 512, Kind: KindMaskable},
		},
		Preview: Preview{
			Name:       "og-image.png",
			Width:      1200,
			Height:     630,
			LogoHeight: 0.4,
		},
		Engine:         EngineImaging,
		PNGCompression: "best",
		History:        HistoryFile,
	}
}

// UnmarshalYAML sets defaults then decodes the YAML structure, so only
// keys present in the document override the defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	*c = Default()
	type plain Config
	return value.Decode((*plain)(c))
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. iconset.yaml in the working directory
//  3. iconset.yaml next to the running binary
//  4. ~/.config/iconset/iconset.yaml
//
// When none exists the built-in defaults are returned.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	candidates := []string{paths.ConfigFileName}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), paths.ConfigFileName))
	}
	candidates = append(candidates, filepath.Join(paths.DataDir(), paths.ConfigFileName))

	for _, p := range candidates {
		if paths.Exists(p) {
			return readConfig(p)
		}
	}
	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Validate checks sizes, fractions and names for values the generator
// cannot render.
func (c Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is empty")
	}
	if c.MaskablePadding < 0 || c.MaskablePadding >= 0.5 {
		return fmt.Errorf("maskable_padding must be in [0, 0.5), got %v", c.MaskablePadding)
	}

	seen := make(map[string]bool)
	claim := func(name string) error {
		if name == "" {
			return fmt.Errorf("output with empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate output name %q", name)
		}
		seen[name] = true
		return nil
	}

	if len(c.Favicon.Sizes) > 0 {
		if err := claim(c.Favicon.Name); err != nil {
			return err
		}
		for _, s := range c.Favicon.Sizes {
			if s <= 0 || s > 256 {
				return fmt.Errorf("favicon size %d out of range (1-256)", s)
			}
		}
	}

	for _, ic := range c.Icons {
		if err := claim(ic.Name); err != nil {
			return err
		}
		if ic.Size <= 0 {
			return fmt.Errorf("icon %q: size must be positive, got %d", ic.Name, ic.Size)
		}
		switch ic.Kind {
		case KindPlain, KindMaskable, "":
		default:
			return fmt.Errorf("icon %q: unknown kind %q", ic.Name, ic.Kind)
		}
	}

	if c.Preview.Name != "" {
		if err := claim(c.Preview.Name); err != nil {
			return err
		}
		if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
			return fmt.Errorf("preview %q: dimensions must be positive, got %dx%d",
				c.Preview.Name, c.Preview.Width, c.Preview.Height)
		}
		if c.Preview.LogoHeight <= 0 || c.Preview.LogoHeight > 1 {
			return fmt.Errorf("preview %q: logo_height must be in (0, 1], got %v",
				c.Preview.Name, c.Preview.LogoHeight)
		}
	}

	switch c.Engine {
	case EngineImaging, EngineXDraw:
	default:
		return fmt.Errorf("unknown engine %q (want %q or %q)", c.Engine, EngineImaging, EngineXDraw)
	}
	switch c.PNGCompression {
	case "default", "best", "fast", "none":
	default:
		return fmt.Errorf("unknown png_compression %q", c.PNGCompression)
	}
	switch c.History {
	case HistoryFile, HistorySQLite, HistoryOff:
	default:
		return fmt.Errorf("unknown history backend %q", c.History)
	}
	if c.MQTT.Enabled() && c.MQTT.Topic == "" {
		return fmt.Errorf("mqtt: topic is required when broker is set")
	}
	if c.Webhook.Enabled() && !strings.HasPrefix(c.Webhook.URL, "http://") && !strings.HasPrefix(c.Webhook.URL, "https://") {
		return fmt.Errorf("webhook: url must start with http:// or https://")
	}
	return nil
}
