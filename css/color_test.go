package css

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"#fff", "#ffffff", true},
		{"#FF0000", "#ff0000", true},
		{"#00ff0080", "rgba(0, 255, 0, 0.502)", true},
		{"#0f08", "rgba(0, 255, 0, 0.533)", true},
		{"red", "#ff0000", true},
		{"Navy", "#000080", true},
		{"transparent", "rgba(0, 0, 0, 0)", true},
		{"rgb(255, 0, 0)", "#ff0000", true},
		{"rgba(255, 0, 0, 0.5)", "rgba(255, 0, 0, 0.5)", true},
		{"rgb(0 0 255 / 50%)", "rgba(0, 0, 255, 0.5)", true},
		{"rgb(100%, 0%, 0%)", "#ff0000", true},
		{"hsl(120, 100%, 50%)", "#00ff00", true},
		{"hsla(0, 100%, 50%, 0.25)", "rgba(255, 0, 0, 0.25)", true},
		{"#ggg", "", false},
		{"#12345", "", false},
		{"rgb(1, 2)", "", false},
		{"hsl(120, 1, 0.5)", "", false},
		{"10px", "", false},
		{"notacolor", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, ok := ParseColor(tt.input)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got ok=%v", tt.ok, ok)
			}
			if ok && c.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, c.String())
			}
		})
	}
}

func TestColorBlend(t *testing.T) {
	black, _ := ParseColor("#000000")
	white, _ := ParseColor("#ffffff")

	tests := []struct {
		progress float64
		expected string
	}{
		{0, "#000000"},
		{0.5, "#808080"},
		{1, "#ffffff"},
		{-1, "#000000"},
		{2, "#ffffff"},
	}

	for _, tt := range tests {
		if got := black.Blend(white, tt.progress).String(); got != tt.expected {
			t.Errorf("progress %v: expected %q, got %q", tt.progress, tt.expected, got)
		}
	}

	none, _ := ParseColor("transparent")
	half := none.Blend(white, 0.5)
	if half.A != 0.5 {
		t.Errorf("expected alpha 0.5, got %v", half.A)
	}
}
