package config

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#f5ead8", Color{245, 234, 216}},
		{"F5EAD8", Color{245, 234, 216}},
		{"245,234,216", Color{245, 234, 216}},
		{" 0, 0 ,255 ", Color{0, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#fff", "#gggggg", "1,2", "1,2,300", "a,b,c"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) = nil error, want error", in)
		}
	}
}

func TestColorNRGBAIsOpaque(t *testing.T) {
	got := DefaultBackground.NRGBA()
	want := color.NRGBA{R: 245, G: 234, B: 216, A: 255}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
}

func TestColorString(t *testing.T) {
	if got := DefaultBackground.String(); got != "#f5ead8" {
		t.Errorf("String() = %q, want #f5ead8", got)
	}
}
