package css

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
)

// Unit is a CSS length unit supported by the resolver.
type Unit int

const (
	UnitPx Unit = iota
	UnitEm
	UnitRem
	UnitVh
	UnitVw
	UnitVmin
	UnitVmax
)

// String returns CSS unit suffix.
func (u Unit) String() string {
	switch u {
	case UnitEm:
		return "em"
	case UnitRem:
		return "rem"
	case UnitVh:
		return "vh"
	case UnitVw:
		return "vw"
	case UnitVmin:
		return "vmin"
	case UnitVmax:
		return "vmax"
	default:
		return "px"
	}
}

func unitFromString(s string) (Unit, bool) {
	switch s {
	case "px":
		return UnitPx, true
	case "em":
		return UnitEm, true
	case "rem":
		return UnitRem, true
	case "vh":
		return UnitVh, true
	case "vw":
		return UnitVw, true
	case "vmin":
		return UnitVmin, true
	case "vmax":
		return UnitVmax, true
	}
	return UnitPx, false
}

// DefaultFontSize is the root font size in px before font scaling.
const DefaultFontSize = 16

// Length is a numeric value with a unit which could only be converted to
// pixels with a runtime context.
type Length struct {
	Magnitude float64
	Unit      Unit
}

// String returns CSS text of the length.
func (l Length) String() string {
	return FormatNumber(l.Magnitude) + l.Unit.String()
}

// LengthContext carries everything needed to convert a Length into pixels.
type LengthContext struct {
	ViewportWidth     float64
	ViewportHeight    float64
	FontScale         float64
	InheritedFontSize float64 // 0 when unknown
}

// Resolve converts length to pixels.
//
//	px        value unchanged
//	em        inherited font size * value, or fontScale * 16 * value when unknown
//	rem       fontScale * 16 * value, inherited font size is never used
//	vh, vw    viewport dimension * value / 100
//	vmin/vmax min/max of viewport dimensions * value / 100
func (l Length) Resolve(ctx LengthContext) float64 {
	scale := ctx.FontScale
	if scale <= 0 {
		scale = 1
	}
	switch l.Unit {
	case UnitEm:
		if ctx.InheritedFontSize > 0 {
			return ctx.InheritedFontSize * l.Magnitude
		}
		return scale * DefaultFontSize * l.Magnitude
	case UnitRem:
		return scale * DefaultFontSize * l.Magnitude
	case UnitVh:
		return ctx.ViewportHeight * l.Magnitude / 100
	case UnitVw:
		return ctx.ViewportWidth * l.Magnitude / 100
	case UnitVmin:
		return math.Min(ctx.ViewportWidth, ctx.ViewportHeight) * l.Magnitude / 100
	case UnitVmax:
		return math.Max(ctx.ViewportWidth, ctx.ViewportHeight) * l.Magnitude / 100
	default:
		return l.Magnitude
	}
}

var (
	lengthPattern = regexp.MustCompile(`^(-?[0-9.]+)(em|px|rem|vh|vmax|vmin|vw)$`)
	lengthCache   = newMemo[*Length](defaultMemoSize)
)

// ParseLength parses "-?number(em|px|rem|vh|vmax|vmin|vw)". The second
// return value is false when s is not a length.
func ParseLength(s string) (Length, bool) {
	l := lengthCache.get(s, parseLength)
	if l == nil {
		return Length{}, false
	}
	return *l, true
}

func parseLength(s string) *Length {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	u, ok := unitFromString(m[2])
	if !ok {
		return nil
	}
	return &Length{Magnitude: v, Unit: u}
}

// ParseNumber parses plain CSS number, "12", "-0.5", ".5".
func ParseNumber(s string) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	switch s[0] {
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
	default:
		// strconv accepts "Inf", "NaN" and hex which CSS does not
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SplitDimension splits "number[unit]" such as "10deg", "50%" or "1.5" into
// magnitude and unit, unit is empty for plain numbers.
func SplitDimension(s string) (float64, string, bool) {
	b := []byte(strings.TrimSpace(s))
	num, unit := parse.Dimension(b)
	if num == 0 || num+unit != len(b) {
		return 0, "", false
	}
	v, ok := ParseNumber(string(b[:num]))
	if !ok {
		return 0, "", false
	}
	return v, string(b[num:]), true
}

// ParseLengthOrNumber accepts lengths and unitless numbers, unitless numbers
// are treated as px.
func ParseLengthOrNumber(s string) (Length, bool) {
	if l, ok := ParseLength(s); ok {
		return l, true
	}
	if v, ok := ParseNumber(s); ok {
		return Length{Magnitude: v, Unit: UnitPx}, true
	}
	return Length{}, false
}
