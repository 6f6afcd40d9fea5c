package animation

import (
	"math"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestMetadataFromStyle(t *testing.T) {
	m, err := MetadataFromStyle(map[string]any{
		"animationName":           "keyframes-3",
		"animationDuration":       1500.0,
		"animationDelay":          "200ms",
		"animationTimingFunction": "ease-in",
		"animationIterationCount": "infinite",
		"animationDirection":      "alternate",
		"animationFillMode":       "both",
		"animationPlayState":      "paused",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "keyframes-3" {
		t.Errorf("unexpected name %q", m.Name)
	}
	if m.Duration != 1500*time.Millisecond || m.Delay != 200*time.Millisecond {
		t.Errorf("unexpected timing %v / %v", m.Duration, m.Delay)
	}
	if m.Timing.Source != "ease-in" {
		t.Errorf("unexpected timing function %q", m.Timing.Source)
	}
	if !m.Infinite() {
		t.Errorf("expected infinite iterations, got %v", m.Iterations)
	}
	if m.Direction != DirectionAlternate || m.FillMode != FillModeBoth || m.PlayState != PlayStatePaused {
		t.Errorf("unexpected modes %v %v %v", m.Direction, m.FillMode, m.PlayState)
	}
}

func TestMetadataDefaults(t *testing.T) {
	m, err := MetadataFromStyle(map[string]any{
		"animationName":           "keyframes-1",
		"animationIterationCount": 2.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Iterations != 2 || m.Duration != 0 || m.Timing.Source != "ease" {
		t.Errorf("unexpected metadata %+v", m)
	}
	if m.Direction != DirectionNormal || m.FillMode != FillModeNone || m.PlayState != PlayStateRunning {
		t.Errorf("unexpected modes %v %v %v", m.Direction, m.FillMode, m.PlayState)
	}

	none, _ := MetadataFromStyle(map[string]any{"animationName": "none"})
	if none.Name != "" {
		t.Errorf("expected no animation, got %q", none.Name)
	}
}

func TestMetadataInvalid(t *testing.T) {
	m, err := MetadataFromStyle(map[string]any{
		"animationName":           "keyframes-1",
		"animationDirection":      "sideways",
		"animationIterationCount": -1.0,
		"animationTimingFunction": "bouncy",
		"animationDuration":       true,
	})
	if n := len(multierr.Errors(err)); n != 4 {
		t.Errorf("expected 4 errors, got %d: %v", n, err)
	}
	if m.Direction != DirectionNormal || m.Iterations != 1 || m.Timing.Source != "ease" || m.Duration != 0 {
		t.Errorf("invalid values must keep defaults, got %+v", m)
	}
	if math.IsInf(m.Iterations, 0) {
		t.Error("unexpected infinite iterations")
	}
}
