package animation

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"stylebridge/common"
	"stylebridge/css"
)

// ErrInvalidStop is reported for keyframe selectors other than "from", "to"
// and percentages.
var ErrInvalidStop = errors.New("invalid keyframe selector")

// Keyframes is keyframe definition as declared: selector ("from", "to",
// "50%" or comma separated list of those) to property values.
type Keyframes map[string]map[string]any

// Field is a single named transform sub-property, e.g. translateX: 10.
type Field struct {
	Name  string
	Value any
}

// Slot is a transform list position. Normally it holds a single function,
// but several could be grouped in one object.
type Slot []Field

// Stop is a keyframe at resolved progress offset in [0, 1]. Numeric values
// are float64, pixel lengths are converted to numbers, transforms are
// []Slot, everything else is kept as declared.
type Stop struct {
	Offset float64
	Values map[string]any
}

// ParseStops turns keyframe definition into stops sorted by offset. Stops
// with the same offset are merged, later selectors (in natural order) win.
// Invalid selectors and values are skipped and reported in returned error,
// remaining stops are still usable.
func ParseStops(kf Keyframes) ([]Stop, error) {
	var (
		stops []Stop
		errs  error
	)
	index := make(map[float64]int)
	for _, selector := range common.SortedKeys(kf) {
		values, verrs := normalizeValues(kf[selector])
		errs = multierr.Append(errs, verrs)

		for part := range strings.SplitSeq(selector, ",") {
			offset, ok := parseOffset(part)
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrInvalidStop, strings.TrimSpace(part)))
				continue
			}
			i, exists := index[offset]
			if !exists {
				i = len(stops)
				index[offset] = i
				stops = append(stops, Stop{Offset: offset, Values: make(map[string]any, len(values))})
			}
			for k, v := range values {
				stops[i].Values[k] = v
			}
		}
	}
	slices.SortStableFunc(stops, func(a, b Stop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})
	return stops, errs
}

// StopResolver turns declared keyframe values into host native values for
// current render: custom properties substituted, lengths in pixels, logical
// properties mapped. Transform is never passed to it.
type StopResolver func(values map[string]any) map[string]any

// ResolveStops returns copy of stops with values passed through resolve,
// stops are returned as is when resolve is nil. Transform lists are kept.
func ResolveStops(stops []Stop, resolve StopResolver) []Stop {
	if resolve == nil {
		return stops
	}
	out := make([]Stop, 0, len(stops))
	for _, s := range stops {
		values := make(map[string]any, len(s.Values))
		for name, v := range s.Values {
			if name != "transform" {
				values[name] = v
			}
		}
		resolved := make(map[string]any, len(s.Values))
		if len(values) > 0 {
			maps.Copy(resolved, resolve(values))
		}
		if t, ok := s.Values["transform"]; ok {
			resolved["transform"] = t
		}
		out = append(out, Stop{Offset: s.Offset, Values: resolved})
	}
	return out
}

func parseOffset(selector string) (float64, bool) {
	switch s := strings.ToLower(strings.TrimSpace(selector)); s {
	case "from":
		return 0, true
	case "to":
		return 1, true
	default:
		num, ok := strings.CutSuffix(s, "%")
		if !ok {
			return 0, false
		}
		v, ok := css.ParseNumber(num)
		if !ok {
			return 0, false
		}
		return math.Max(0, math.Min(1, v/100)), true
	}
}

func normalizeValues(values map[string]any) (map[string]any, error) {
	var errs error
	out := make(map[string]any, len(values))
	for name, v := range values {
		if name == "transform" {
			slots, ok := toSlots(v)
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("keyframe transform: unsupported value %v", v))
				continue
			}
			out[name] = slots
			continue
		}
		nv, ok := nativeValue(v)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("keyframe property %q: unsupported value %v", name, v))
			continue
		}
		out[name] = nv
	}
	return out, errs
}

// nativeValue converts declared value to the form interpolators work with.
func nativeValue(v any) (any, bool) {
	switch t := v.(type) {
	case []float64:
		return slices.Clone(t), true
	case []any:
		nums := make([]float64, 0, len(t))
		for _, item := range t {
			n, ok := nativeValue(item)
			if !ok {
				return nil, false
			}
			f, ok := n.(float64)
			if !ok {
				return nil, false
			}
			nums = append(nums, f)
		}
		return nums, true
	case css.Matrix:
		return t.Slice(), true
	}

	switch lit := css.Literal(v).(type) {
	case css.Number:
		return float64(lit), true
	case css.Bool:
		return bool(lit), true
	case css.Length:
		if lit.Unit == css.UnitPx {
			return lit.Magnitude, true
		}
		return lit.String(), true
	case css.String:
		s := strings.TrimSpace(string(lit))
		if n, ok := css.ParseNumber(s); ok {
			return n, true
		}
		if l, ok := css.ParseLength(s); ok && l.Unit == css.UnitPx {
			return l.Magnitude, true
		}
		return s, true
	}
	return nil, false
}

func toSlots(v any) ([]Slot, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case []Slot:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" || s == "none" {
			return nil, true
		}
		parsed := css.ParseTransform(s)
		if len(parsed) == 0 {
			return nil, false
		}
		return opsToSlots(parsed)
	case css.Transform:
		return opsToSlots(t)
	case []map[string]any:
		slots := make([]Slot, 0, len(t))
		for _, m := range t {
			slot, ok := mapToSlot(m)
			if !ok {
				return nil, false
			}
			slots = append(slots, slot)
		}
		return slots, true
	case []any:
		slots := make([]Slot, 0, len(t))
		for _, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			slot, ok := mapToSlot(m)
			if !ok {
				return nil, false
			}
			slots = append(slots, slot)
		}
		return slots, true
	}
	return nil, false
}

func opsToSlots(ops css.Transform) ([]Slot, bool) {
	slots := make([]Slot, 0, len(ops))
	for _, op := range ops {
		v, ok := nativeValue(op.Arg)
		if !ok {
			return nil, false
		}
		slots = append(slots, Slot{{Name: op.Name, Value: v}})
	}
	return slots, true
}

func mapToSlot(m map[string]any) (Slot, bool) {
	if len(m) == 0 {
		return nil, false
	}
	slot := make(Slot, 0, len(m))
	for _, name := range common.SortedKeys(m) {
		if !css.IsTransformFunction(name) {
			return nil, false
		}
		v, ok := nativeValue(m[name])
		if !ok {
			return nil, false
		}
		slot = append(slot, Field{Name: name, Value: v})
	}
	return slot, true
}
