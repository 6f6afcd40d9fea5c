package css

import (
	"strings"

	lex "github.com/tdewolff/parse/v2/css"
)

// TimingKind is a timing function family.
type TimingKind int

const (
	TimingLinear TimingKind = iota
	TimingCubicBezier
	TimingSpring
)

// SpringParams are spring(mass, stiffness, damping, velocity) arguments.
// Values are not validated here, animation code replaces invalid ones.
type SpringParams struct {
	Mass      float64
	Stiffness float64
	Damping   float64
	Velocity  float64
}

// TimingFunction is a parsed animation-timing-function value.
type TimingFunction struct {
	Kind   TimingKind
	Bezier [4]float64 // x1, y1, x2, y2 for TimingCubicBezier
	Spring SpringParams
	Source string
}

// named timing keywords expressed as bezier control points
var timingKeywords = map[string][4]float64{
	"ease":        {0.25, 0.1, 0.25, 1},
	"ease-in":     {0.42, 0, 1, 1},
	"ease-out":    {0, 0, 0.58, 1},
	"ease-in-out": {0.42, 0, 0.58, 1},
}

// Linear is the default timing function.
var Linear = TimingFunction{Kind: TimingLinear, Source: "linear"}

type timingResult struct {
	tf TimingFunction
	ok bool
}

var timingCache = newMemo[timingResult](defaultMemoSize)

// ParseTimingFunction parses timing keyword, cubic-bezier(x1, y1, x2, y2)
// or spring(mass, stiffness, damping[, velocity]).
func ParseTimingFunction(s string) (TimingFunction, bool) {
	r := timingCache.get(s, func(s string) timingResult {
		tf, ok := parseTimingFunction(s)
		return timingResult{tf: tf, ok: ok}
	})
	return r.tf, r.ok
}

func parseTimingFunction(s string) (TimingFunction, bool) {
	src := strings.TrimSpace(s)
	lower := strings.ToLower(src)
	if lower == "linear" {
		return Linear, true
	}
	if pts, ok := timingKeywords[lower]; ok {
		return TimingFunction{Kind: TimingCubicBezier, Bezier: pts, Source: lower}, true
	}

	toks := trimSpace(tokenize(src))
	if len(toks) == 0 || toks[0].tt != lex.FunctionToken {
		return TimingFunction{}, false
	}
	c, next, ok := nextCall(toks, 0)
	if !ok || next != len(toks) {
		return TimingFunction{}, false
	}
	args := make([]float64, 0, len(c.args))
	for _, a := range c.args {
		a = trimSpace(a)
		if len(a) != 1 || a[0].tt != lex.NumberToken {
			return TimingFunction{}, false
		}
		v, ok := ParseNumber(a[0].text)
		if !ok {
			return TimingFunction{}, false
		}
		args = append(args, v)
	}

	switch strings.ToLower(c.name) {
	case "cubic-bezier":
		if len(args) != 4 {
			return TimingFunction{}, false
		}
		return TimingFunction{
			Kind:   TimingCubicBezier,
			Bezier: [4]float64{args[0], args[1], args[2], args[3]},
			Source: src,
		}, true
	case "spring":
		if len(args) != 3 && len(args) != 4 {
			return TimingFunction{}, false
		}
		sp := SpringParams{Mass: args[0], Stiffness: args[1], Damping: args[2]}
		if len(args) == 4 {
			sp.Velocity = args[3]
		}
		return TimingFunction{Kind: TimingSpring, Spring: sp, Source: src}, true
	}
	return TimingFunction{}, false
}
