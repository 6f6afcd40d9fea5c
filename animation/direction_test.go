package animation

import (
	"reflect"
	"slices"
	"testing"
)

func TestApplyDirection(t *testing.T) {
	input := []float64{0, 0.25, 1}
	output := []any{"a", "b", "c"}

	tests := []struct {
		dir            Direction
		expectedInput  []float64
		expectedOutput []any
	}{
		{DirectionNormal, []float64{0, 0.25, 1}, []any{"a", "b", "c"}},
		{DirectionReverse, []float64{0, 0.25, 1}, []any{"c", "b", "a"}},
		{
			DirectionAlternate,
			[]float64{0, 0.125, 0.5, 0.5, 0.625, 1},
			[]any{"a", "b", "c", "c", "b", "a"},
		},
		{
			DirectionAlternateReverse,
			[]float64{0, 0.125, 0.5, 0.5, 0.625, 1},
			[]any{"c", "b", "a", "a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			in, out := ApplyDirection(input, output, tt.dir)
			if !reflect.DeepEqual(in, tt.expectedInput) {
				t.Errorf("expected input %v, got %v", tt.expectedInput, in)
			}
			if !reflect.DeepEqual(out, tt.expectedOutput) {
				t.Errorf("expected output %v, got %v", tt.expectedOutput, out)
			}
		})
	}

	if !reflect.DeepEqual(output, []any{"a", "b", "c"}) {
		t.Errorf("arguments must not be modified, got %v", output)
	}
}

func TestApplyDirectionAlternateShape(t *testing.T) {
	input := []float64{0, 0.3, 0.6, 1}
	output := []float64{10, 20, 30, 40}

	in, out := ApplyDirection(input, output, DirectionAlternate)
	if len(in) != 2*len(input) || len(out) != 2*len(output) {
		t.Fatalf("expected %d stops, got %d/%d", 2*len(input), len(in), len(out))
	}
	if !slices.IsSorted(in) {
		t.Errorf("input must stay ascending: %v", in)
	}
	half := len(input)
	if in[0] != 0 || in[half-1] != 0.5 || in[half] != 0.5 || in[len(in)-1] != 1 {
		t.Errorf("unexpected halves %v", in)
	}
	if !reflect.DeepEqual(out[:half], output) {
		t.Errorf("first half must keep order, got %v", out[:half])
	}
	rev := slices.Clone(output)
	slices.Reverse(rev)
	if !reflect.DeepEqual(out[half:], rev) {
		t.Errorf("second half must be reversed, got %v", out[half:])
	}
}

func TestApplyFillMode(t *testing.T) {
	stops, err := ParseStops(Keyframes{"0%": {"opacity": 0}, "100%": {"opacity": 1}})
	if err != nil {
		t.Fatal(err)
	}
	base := map[string]any{"opacity": 0.5, "color": "red"}

	tests := []struct {
		name     string
		dir      Direction
		fill     FillMode
		state    State
		expected map[string]any
		applies  bool
	}{
		{"backwards before start", DirectionNormal, FillModeBackwards, StateNotStarted, map[string]any{"opacity": 0.0, "color": "red"}, true},
		{"both before start", DirectionNormal, FillModeBoth, StateNotStarted, map[string]any{"opacity": 0.0, "color": "red"}, true},
		{"backwards before start reversed", DirectionReverse, FillModeBackwards, StateNotStarted, map[string]any{"opacity": 1.0, "color": "red"}, true},
		{"forwards after completion", DirectionNormal, FillModeForwards, StateCompleted, map[string]any{"opacity": 1.0, "color": "red"}, true},
		{"forwards after completion reversed", DirectionAlternateReverse, FillModeForwards, StateCompleted, map[string]any{"opacity": 0.0, "color": "red"}, true},
		{"none after completion", DirectionNormal, FillModeNone, StateCompleted, base, true},
		{"backwards after completion", DirectionNormal, FillModeBackwards, StateCompleted, base, true},
		{"none before start", DirectionNormal, FillModeNone, StateNotStarted, nil, false},
		{"forwards before start", DirectionNormal, FillModeForwards, StateNotStarted, nil, false},
		{"running", DirectionNormal, FillModeBoth, StateRunning, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ApplyFillMode(stops, tt.dir, tt.fill, tt.state, base)
			if ok != tt.applies {
				t.Fatalf("expected applies %v, got %v", tt.applies, ok)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	if base["opacity"] != 0.5 {
		t.Errorf("base style must not be modified, got %v", base)
	}
}
