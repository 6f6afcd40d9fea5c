package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	lex "github.com/tdewolff/parse/v2/css"
)

// Color is a parsed CSS color with alpha channel.
type Color struct {
	colorful.Color
	A float64
}

// Blend interpolates between two colors in RGB space, t is clamped to [0, 1].
func (c Color) Blend(to Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	return Color{
		Color: c.Color.BlendRgb(to.Color, t).Clamped(),
		A:     c.A + (to.A-c.A)*t,
	}
}

// String serializes color as "#rrggbb" when opaque and "rgba(r, g, b, a)" otherwise.
func (c Color) String() string {
	if c.A >= 1 {
		return c.Color.Clamped().Hex()
	}
	r, g, b := c.Color.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, FormatNumber(math.Round(c.A*1000)/1000))
}

var colorCache = newMemo[*Color](defaultMemoSize)

// ParseColor parses hex, rgb()/rgba(), hsl()/hsla() and named colors.
func ParseColor(s string) (Color, bool) {
	c := colorCache.get(s, parseColor)
	if c == nil {
		return Color{}, false
	}
	return *c, true
}

// IsColor returns true if s is a color literal.
func IsColor(s string) bool {
	_, ok := ParseColor(s)
	return ok
}

func parseColor(s string) *Color {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}
	lower := strings.ToLower(s)
	if named, ok := namedColors[lower]; ok {
		c, err := colorful.Hex(named)
		if err != nil {
			return nil
		}
		return &Color{Color: c, A: 1}
	}
	if lower == "transparent" {
		return &Color{A: 0}
	}

	toks := trimSpace(tokenize(s))
	if len(toks) == 0 || toks[0].tt != lex.FunctionToken {
		return nil
	}
	c, next, ok := nextCall(toks, 0)
	if !ok || next != len(toks) {
		return nil
	}
	args := colorArgs(c)
	switch strings.ToLower(c.name) {
	case "rgb", "rgba":
		return rgbColor(args)
	case "hsl", "hsla":
		return hslColor(args)
	}
	return nil
}

// colorArgs flattens both comma separated and space separated (CSS Color 4)
// argument forms, "/" before alpha is dropped.
func colorArgs(c call) []string {
	var out []string
	for _, arg := range c.args {
		for _, w := range words(arg) {
			if w != "/" {
				out = append(out, w)
			}
		}
	}
	return out
}

func rgbColor(args []string) *Color {
	if len(args) != 3 && len(args) != 4 {
		return nil
	}
	var ch [3]float64
	for i := range 3 {
		v, ok := channel(args[i], 255)
		if !ok {
			return nil
		}
		ch[i] = v / 255
	}
	a := 1.0
	if len(args) == 4 {
		var ok bool
		if a, ok = channel(args[3], 1); !ok {
			return nil
		}
	}
	return &Color{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.Clamped(), A: clamp01(a)}
}

func hslColor(args []string) *Color {
	if len(args) != 3 && len(args) != 4 {
		return nil
	}
	h, ok := ParseNumber(strings.TrimSuffix(args[0], "deg"))
	if !ok {
		return nil
	}
	sat, ok := channel(args[1], 1)
	if !ok || !strings.HasSuffix(args[1], "%") {
		return nil
	}
	light, ok := channel(args[2], 1)
	if !ok || !strings.HasSuffix(args[2], "%") {
		return nil
	}
	a := 1.0
	if len(args) == 4 {
		if a, ok = channel(args[3], 1); !ok {
			return nil
		}
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return &Color{Color: colorful.Hsl(h, clamp01(sat), clamp01(light)).Clamped(), A: clamp01(a)}
}

// channel parses number or percentage, percentage maps to [0, max].
func channel(s string, max float64) (float64, bool) {
	if num, found := strings.CutSuffix(s, "%"); found {
		v, ok := ParseNumber(num)
		return v / 100 * max, ok
	}
	return ParseNumber(s)
}

func parseHexColor(hex string) *Color {
	expand := func(s string) string {
		var sb strings.Builder
		for _, r := range s {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		return sb.String()
	}
	alpha := "ff"
	switch len(hex) {
	case 3:
		hex = expand(hex)
	case 4:
		alpha = expand(hex[3:])
		hex = expand(hex[:3])
	case 6:
	case 8:
		alpha = hex[6:]
		hex = hex[:6]
	default:
		return nil
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return nil
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return nil
	}
	return &Color{Color: c, A: float64(a) / 255}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// namedColors is a subset of CSS named colors commonly used in styles.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"gray":      "#808080",
	"grey":      "#808080",
	"silver":    "#c0c0c0",
	"maroon":    "#800000",
	"navy":      "#000080",
	"teal":      "#008080",
	"olive":     "#808000",
	"purple":    "#800080",
	"fuchsia":   "#ff00ff",
	"magenta":   "#ff00ff",
	"aqua":      "#00ffff",
	"cyan":      "#00ffff",
	"lime":      "#00ff00",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"brown":     "#a52a2a",
	"pink":      "#ffc0cb",
	"gold":      "#ffd700",
	"indigo":    "#4b0082",
	"violet":    "#ee82ee",
	"coral":     "#ff7f50",
	"salmon":    "#fa8072",
	"tomato":    "#ff6347",
	"crimson":   "#dc143c",
	"khaki":     "#f0e68c",
	"beige":     "#f5f5dc",
	"ivory":     "#fffff0",
	"lavender":  "#e6e6fa",
	"turquoise": "#40e0d0",
	"tan":       "#d2b48c",
	"orchid":    "#da70d6",
	"plum":      "#dda0dd",
	"skyblue":   "#87ceeb",
	"steelblue": "#4682b4",
	"slategray": "#708090",
	"lightgray": "#d3d3d3",
	"darkgray":  "#a9a9a9",
	"dimgray":   "#696969",
}
