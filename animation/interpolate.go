package animation

import (
	"maps"

	"stylebridge/common"
	"stylebridge/css"
)

// Interpolate maps progress onto output through piecewise linear input
// range. Progress outside of input range is clamped. Numbers, number
// lists, colors and numbers sharing the same unit are interpolated, other
// values switch discretely at segment midpoint.
func Interpolate(input []float64, output []any, progress float64) any {
	n := min(len(input), len(output))
	if n == 0 {
		return nil
	}
	last := n - 1
	if progress <= input[0] {
		return output[0]
	}
	if progress >= input[last] {
		return output[last]
	}
	for i := range last {
		a, b := input[i], input[i+1]
		if progress > b {
			continue
		}
		if b <= a {
			return output[i+1]
		}
		return mix(output[i], output[i+1], (progress-a)/(b-a))
	}
	return output[last]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func mix(a, b any, t float64) any {
	switch x := a.(type) {
	case float64:
		switch y := b.(type) {
		case float64:
			return lerp(x, y, t)
		case string:
			if v, unit, ok := css.SplitDimension(y); ok {
				return css.FormatNumber(lerp(x, v, t)) + unit
			}
		}
	case []float64:
		if y, ok := b.([]float64); ok && len(x) == len(y) {
			out := make([]float64, len(x))
			for i := range x {
				out[i] = lerp(x[i], y[i], t)
			}
			return out
		}
	case string:
		switch y := b.(type) {
		case float64:
			if v, unit, ok := css.SplitDimension(x); ok {
				return css.FormatNumber(lerp(v, y, t)) + unit
			}
		case string:
			if from, ok := css.ParseColor(x); ok {
				if to, ok := css.ParseColor(y); ok {
					return from.Blend(to, t).String()
				}
			}
			v1, u1, ok1 := css.SplitDimension(x)
			v2, u2, ok2 := css.SplitDimension(y)
			if ok1 && ok2 && u1 == u2 {
				return css.FormatNumber(lerp(v1, v2, t)) + u1
			}
		}
	}
	if t < 0.5 {
		return a
	}
	return b
}

// PropertyRange builds interpolation ranges for a single property from
// stops. Stop without value for the property takes it from base style,
// then falls back to 0.
func PropertyRange(stops []Stop, name string, base map[string]any) ([]float64, []any) {
	input := make([]float64, 0, len(stops))
	output := make([]any, 0, len(stops))
	for _, s := range stops {
		v, ok := s.Values[name]
		if !ok {
			if v, ok = base[name]; !ok {
				v = 0.0
			}
		}
		input = append(input, s.Offset)
		output = append(output, v)
	}
	return input, output
}

// Properties returns names of all properties animated by stops in natural
// order.
func Properties(stops []Stop) []string {
	seen := make(map[string]struct{})
	for _, s := range stops {
		for name := range s.Values {
			seen[name] = struct{}{}
		}
	}
	return common.SortedKeys(seen)
}

// Sample computes animated style at progress: every animated property is
// interpolated over stops with direction applied and merged over base.
func Sample(stops []Stop, base map[string]any, dir Direction, progress float64) map[string]any {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]any)
	}
	for _, name := range Properties(stops) {
		if name == "transform" {
			if v, ok := InterpolateTransform(stops, dir, progress); ok {
				out[name] = v
			}
			continue
		}
		input, output := PropertyRange(stops, name, base)
		input, output = ApplyDirection(input, output, dir)
		out[name] = Interpolate(input, output, progress)
	}
	return out
}

type track struct {
	input  []float64
	output []any
}

type slotTracks struct {
	names  []string
	tracks map[string]*track
}

// InterpolateTransform interpolates transform lists slot by slot and
// sub-property by sub-property. Sub-property defined by two or more stops
// is interpolated over those stops only, defined by a single stop is held
// static. Result is host transform list with one function per entry. It
// returns false when no stop has transform.
func InterpolateTransform(stops []Stop, dir Direction, progress float64) ([]any, bool) {
	var (
		slots   []*slotTracks
		present bool
	)
	for _, s := range stops {
		v, ok := s.Values["transform"]
		if !ok {
			continue
		}
		present = true
		list, _ := v.([]Slot)
		for i, slot := range list {
			for len(slots) <= i {
				slots = append(slots, &slotTracks{tracks: make(map[string]*track)})
			}
			st := slots[i]
			for _, f := range slot {
				tr, ok := st.tracks[f.Name]
				if !ok {
					tr = &track{}
					st.tracks[f.Name] = tr
					st.names = append(st.names, f.Name)
				}
				tr.input = append(tr.input, s.Offset)
				tr.output = append(tr.output, f.Value)
			}
		}
	}
	if !present {
		return nil, false
	}

	out := make([]any, 0, len(slots))
	for _, st := range slots {
		for _, name := range st.names {
			tr := st.tracks[name]
			var v any
			if len(tr.input) == 1 {
				v = tr.output[0]
			} else {
				input, output := ApplyDirection(tr.input, tr.output, dir)
				v = Interpolate(input, output, progress)
			}
			out = append(out, map[string]any{name: v})
		}
	}
	return out, true
}

// nativeSlots converts transform slots to host transform list.
func nativeSlots(slots []Slot) []any {
	out := make([]any, 0, len(slots))
	for _, slot := range slots {
		for _, f := range slot {
			out = append(out, map[string]any{f.Name: f.Value})
		}
	}
	return out
}
