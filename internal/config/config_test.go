package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDefaultTable(t *testing.T) {
	cfg := Default()

	want := []Icon{
		{Name: "icon-192.png", Size: 192, Kind: KindPlain},
		{Name: "icon-512.png", Size: 512, Kind: KindPlain},
		{Name: "apple-touch-icon.png", Size: 180, Kind: KindPlain},
		{Name: "icon-maskable-192.png", Size: 192, Kind: KindMaskable},
		{Name: "icon-maskable-512.png", Size: 512, Kind: KindMaskable},
	}
	if diff := cmp.Diff(want, cfg.Icons); diff != "" {
		t.Errorf("Icons mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{16, 32, 48}, cfg.Favicon.Sizes); diff != "" {
		t.Errorf("Favicon.Sizes mismatch (-want +got):\n%s", diff)
	}
	wantPreview := Preview{Name: "og-image.png", Width: 1200, Height: 630, LogoHeight: 0.4}
	if diff := cmp.Diff(wantPreview, cfg.Preview); diff != "" {
		t.Errorf("Preview mismatch (-want +got):\n%s", diff)
	}
	if cfg.Background != (Color{R: 245, G: 234, B: 216}) {
		t.Errorf("Background = %v, want #f5ead8", cfg.Background)
	}
}

func TestUnmarshalKeepsDefaults(t *testing.T) {
	data := []byte(`
source: assets/logo.png
output_dir: dist
`)
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.Source != "assets/logo.png" {
		t.Errorf("Source = %q, want assets/logo.png", cfg.Source)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("OutputDir = %q, want dist", cfg.OutputDir)
	}
	if cfg.MaskablePadding != DefaultMaskablePadding {
		t.Errorf("MaskablePadding = %v, want %v", cfg.MaskablePadding, DefaultMaskablePadding)
	}
	if len(cfg.Icons) != 5 {
		t.Errorf("len(Icons) = %d, want 5", len(cfg.Icons))
	}
	if cfg.Engine != EngineImaging {
		t.Errorf("Engine = %q, want %q", cfg.Engine, EngineImaging)
	}
}

func TestUnmarshalReplacesIcons(t *testing.T) {
	data := []byte(`
icons:
  - name: small.png
    size: 64
favicon:
  sizes: [16]
background: "#102030"
`)
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff([]Icon{{Name: "small.png", Size: 64}}, cfg.Icons); diff != "" {
		t.Errorf("Icons mismatch (-want +got):\n%s", diff)
	}
	if cfg.Favicon.Name != "favicon.ico" {
		t.Errorf("Favicon.Name = %q, want favicon.ico", cfg.Favicon.Name)
	}
	if diff := cmp.Diff([]int{16}, cfg.Favicon.Sizes); diff != "" {
		t.Errorf("Favicon.Sizes mismatch (-want +got):\n%s", diff)
	}
	if cfg.Background != (Color{R: 0x10, G: 0x20, B: 0x30}) {
		t.Errorf("Background = %v, want #102030", cfg.Background)
	}
}

func TestUnmarshalJSONDocument(t *testing.T) {
	data := []byte(`{"source": "logo.png", "maskable_padding": 0.2, "mqtt": {"broker": "tcp://localhost:1883", "topic": "icons"}}`)
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.MaskablePadding != 0.2 {
		t.Errorf("MaskablePadding = %v, want 0.2", cfg.MaskablePadding)
	}
	if !cfg.MQTT.Enabled() || cfg.MQTT.Topic != "icons" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	os.WriteFile(path, []byte("output_dir: out\nhistory: sqlite\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "out" || cfg.History != HistorySQLite {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("maskable_padding: 0.5\n"), 0644)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "maskable_padding") {
		t.Fatalf("Load = %v, want maskable_padding error", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("icons: [\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty source", func(c *Config) { c.Source = "" }, "source"},
		{"negative padding", func(c *Config) { c.MaskablePadding = -0.1 }, "maskable_padding"},
		{"zero icon size", func(c *Config) { c.Icons[0].Size = 0 }, "size must be positive"},
		{"unknown kind", func(c *Config) { c.Icons[0].Kind = "round" }, "unknown kind"},
		{"duplicate name", func(c *Config) { c.Icons[1].Name = c.Icons[0].Name }, "duplicate"},
		{"preview collides", func(c *Config) { c.Preview.Name = "favicon.ico" }, "duplicate"},
		{"favicon too large", func(c *Config) { c.Favicon.Sizes = []int{512} }, "out of range"},
		{"preview zero width", func(c *Config) { c.Preview.Width = 0 }, "dimensions"},
		{"preview logo fraction", func(c *Config) { c.Preview.LogoHeight = 1.5 }, "logo_height"},
		{"engine", func(c *Config) { c.Engine = "magick" }, "engine"},
		{"compression", func(c *Config) { c.PNGCompression = "max" }, "png_compression"},
		{"history", func(c *Config) { c.History = "redis" }, "history"},
		{"mqtt without topic", func(c *Config) { c.MQTT.Broker = "tcp://x:1883" }, "topic"},
		{"webhook scheme", func(c *Config) { c.Webhook.URL = "ftp://example.com" }, "webhook"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateAllowsNoPreviewOrFavicon(t *testing.T) {
	cfg := Default()
	cfg.Preview = Preview{}
	cfg.Favicon = Favicon{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
