package animation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/multierr"

	"stylebridge/css"
)

// Metadata is animation configuration taken from animation-* properties.
type Metadata struct {
	// Name is registered keyframes id.
	Name       string
	Duration   time.Duration
	Delay      time.Duration
	Timing     css.TimingFunction
	Iterations float64 // +Inf for infinite
	Direction  Direction
	FillMode   FillMode
	PlayState  PlayState
	// NativeDriver asks host to run animation on its own thread, it is not
	// taken from style and is carried through as is.
	NativeDriver bool
}

// DefaultMetadata returns CSS initial values: single iteration, ease timing,
// normal direction, no fill, running.
func DefaultMetadata() Metadata {
	ease, _ := css.ParseTimingFunction("ease")
	return Metadata{
		Timing:     ease,
		Iterations: 1,
	}
}

// Infinite reports whether animation loops forever.
func (m Metadata) Infinite() bool {
	return math.IsInf(m.Iterations, 1)
}

// MetadataFromStyle reads resolved animation properties (as found in
// style.Result.Animation). Invalid values keep defaults and are reported in
// returned error. Animation without name has empty Name.
func MetadataFromStyle(anim map[string]any) (Metadata, error) {
	m := DefaultMetadata()
	var errs error

	if v, ok := anim["animationName"]; ok {
		if s, ok := v.(string); ok && s != "none" {
			m.Name = strings.TrimSpace(s)
		}
	}
	if v, ok := anim["animationDuration"]; ok {
		d, err := milliseconds("animationDuration", v)
		errs = multierr.Append(errs, err)
		m.Duration = d
	}
	if v, ok := anim["animationDelay"]; ok {
		d, err := milliseconds("animationDelay", v)
		errs = multierr.Append(errs, err)
		m.Delay = d
	}
	if v, ok := anim["animationTimingFunction"]; ok {
		s, _ := v.(string)
		if tf, ok := css.ParseTimingFunction(s); ok {
			m.Timing = tf
		} else {
			errs = multierr.Append(errs, fmt.Errorf("animationTimingFunction: unsupported value %v", v))
		}
	}
	if v, ok := anim["animationIterationCount"]; ok {
		n, err := iterations(v)
		errs = multierr.Append(errs, err)
		if err == nil {
			m.Iterations = n
		}
	}
	if v, ok := anim["animationDirection"]; ok {
		if d, err := ParseDirection(fmt.Sprint(v)); err == nil {
			m.Direction = d
		} else {
			errs = multierr.Append(errs, fmt.Errorf("animationDirection: %w", err))
		}
	}
	if v, ok := anim["animationFillMode"]; ok {
		if f, err := ParseFillMode(fmt.Sprint(v)); err == nil {
			m.FillMode = f
		} else {
			errs = multierr.Append(errs, fmt.Errorf("animationFillMode: %w", err))
		}
	}
	if v, ok := anim["animationPlayState"]; ok {
		if p, err := ParsePlayState(fmt.Sprint(v)); err == nil {
			m.PlayState = p
		} else {
			errs = multierr.Append(errs, fmt.Errorf("animationPlayState: %w", err))
		}
	}
	return m, errs
}

func milliseconds(name string, v any) (time.Duration, error) {
	var ms float64
	switch t := v.(type) {
	case float64:
		ms = t
	case string:
		ms = css.ParseTime(t)
	default:
		return 0, fmt.Errorf("%s: unsupported value %v", name, v)
	}
	if ms < 0 {
		return 0, fmt.Errorf("%s: negative value %v", name, v)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

func iterations(v any) (float64, error) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		if strings.EqualFold(strings.TrimSpace(t), "infinite") {
			return math.Inf(1), nil
		}
		var ok bool
		if n, ok = css.ParseNumber(strings.TrimSpace(t)); !ok {
			return 0, fmt.Errorf("animationIterationCount: unsupported value %q", t)
		}
	default:
		return 0, fmt.Errorf("animationIterationCount: unsupported value %v", v)
	}
	if n < 0 || math.IsNaN(n) {
		return 0, fmt.Errorf("animationIterationCount: invalid value %v", v)
	}
	return n, nil
}
