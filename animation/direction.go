package animation

import (
	"maps"
	"slices"
)

// ApplyDirection rewrites interpolation ranges for playback direction.
// Input slices are not modified.
//
// Reverse keeps input and reverses output. Alternate directions squeeze
// input into two halves, the first plays output in declared order and the
// second in reverse (alternate-reverse swaps the halves), so a single
// progress cycle covers two CSS iterations.
func ApplyDirection[T any](input []float64, output []T, dir Direction) ([]float64, []T) {
	switch dir {
	case DirectionReverse:
		return slices.Clone(input), reversed(output)
	case DirectionAlternate, DirectionAlternateReverse:
		n := len(input)
		in := make([]float64, 2*n)
		for i, v := range input {
			in[i] = v * 0.5
			in[n+i] = 0.5 + v*0.5
		}
		first, second := slices.Clone(output), reversed(output)
		if dir == DirectionAlternateReverse {
			first, second = second, first
		}
		return in, append(first, second...)
	default:
		return slices.Clone(input), slices.Clone(output)
	}
}

func reversed[T any](s []T) []T {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}

// startOffset is offset of the keyframe animation begins with.
func startOffset(dir Direction) float64 {
	if dir == DirectionReverse || dir == DirectionAlternateReverse {
		return 1
	}
	return 0
}

// ApplyFillMode returns style for animation outside of its active window:
//
//   - before start, backwards and both apply start keyframe snapshot (0%, or
//     100% for reverse directions) over base style;
//   - after completion, forwards and both apply the opposite end snapshot,
//     none and backwards return base style as is.
//
// It returns false when fill mode does not apply and style has to be
// interpolated (or base style used) by the caller.
func ApplyFillMode(stops []Stop, dir Direction, fill FillMode, state State, base map[string]any) (map[string]any, bool) {
	switch state {
	case StateNotStarted:
		if fill == FillModeBackwards || fill == FillModeBoth {
			return snapshot(stops, startOffset(dir), base), true
		}
	case StateCompleted:
		if fill == FillModeForwards || fill == FillModeBoth {
			return snapshot(stops, 1-startOffset(dir), base), true
		}
		return base, true
	}
	return nil, false
}

// snapshot merges values of the keyframe at offset over base without any
// interpolation. When there is no stop exactly at offset the closest one is
// used.
func snapshot(stops []Stop, offset float64, base map[string]any) map[string]any {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]any)
	}
	if len(stops) == 0 {
		return out
	}
	stop := stops[0]
	if offset >= 1 {
		stop = stops[len(stops)-1]
	}
	for name, v := range stop.Values {
		if slots, ok := v.([]Slot); ok {
			out[name] = nativeSlots(slots)
			continue
		}
		out[name] = v
	}
	return out
}
