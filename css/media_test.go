package css

import (
	"testing"
)

func TestCanonicalMediaKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"@media (prefers-color-scheme:dark)", KeyDark},
		{"@media  (prefers-color-scheme:  dark)", KeyDark},
		{"@media screen and (max-width: 40em)", "@media (max-width: 40em)"},
		{"@media (min-width:600px) and (orientation:landscape)", "@media (min-width: 600px) and (orientation: landscape)"},
		{"@media print", "@media print"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CanonicalMediaKey(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMediaMatches(t *testing.T) {
	landscape := MediaContext{Width: 800, Height: 400}
	portrait := MediaContext{Width: 400, Height: 800, ColorScheme: "dark", ReducedMotion: true}

	tests := []struct {
		query    string
		ctx      MediaContext
		expected bool
	}{
		{"@media (min-width: 600px)", landscape, true},
		{"@media (min-width: 600px)", portrait, false},
		{"@media (max-width: 25em)", portrait, true},
		{"@media (min-width: 600px) and (orientation: landscape)", landscape, true},
		{"@media (min-width: 300px) and (orientation: landscape)", portrait, false},
		{"@media (max-width: 100px), (orientation: portrait)", portrait, true},
		{"@media (prefers-color-scheme: dark)", portrait, true},
		{"@media (prefers-color-scheme: dark)", landscape, false},
		{"@media (prefers-color-scheme: light)", landscape, true},
		{"@media (prefers-reduced-motion: reduce)", portrait, true},
		{"@media (prefers-reduced-motion: no-preference)", landscape, true},
		{"@media (min-height: 500px)", portrait, true},
		{"@media (max-height: 500px)", portrait, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, ok := ParseMedia(tt.query)
			if !ok {
				t.Fatalf("failed to parse %q", tt.query)
			}
			if got := q.Matches(tt.ctx); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseMediaRejects(t *testing.T) {
	for _, in := range []string{
		"@media print",
		"@media (hover: hover)",
		"@media (min-width: 10vw)",
		"@media (prefers-color-scheme: blue)",
		"@media",
		"(min-width: 600px)",
		"@media (min-width: 600px",
	} {
		t.Run(in, func(t *testing.T) {
			if _, ok := ParseMedia(in); ok {
				t.Errorf("expected %q to be rejected", in)
			}
		})
	}
}

func TestMediaIsDark(t *testing.T) {
	q, _ := ParseMedia(KeyDark)
	if !q.IsDark() {
		t.Error("expected dark query")
	}
	q, _ = ParseMedia("@media (prefers-color-scheme: dark) and (min-width: 10px)")
	if q.IsDark() {
		t.Error("compound query must not be treated as dark variant")
	}
}
