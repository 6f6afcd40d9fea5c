package css

import (
	"strings"

	lex "github.com/tdewolff/parse/v2/css"
)

// MediaFeature is a single "(name: value)" condition.
type MediaFeature struct {
	Name  string
	Value string
	Px    float64 // value in CSS px for width and height features
}

// MediaQuery is a comma separated list of conditions, each condition is a
// list of features joined by "and". Query matches when any condition
// matches.
type MediaQuery struct {
	Conditions [][]MediaFeature
}

// MediaContext is what media features are evaluated against. Width and
// Height are in CSS px.
type MediaContext struct {
	ColorScheme   string
	ReducedMotion bool
	Width         float64
	Height        float64
}

type mediaResult struct {
	q  MediaQuery
	ok bool
}

var mediaCache = newMemo[mediaResult](defaultMemoSize)

// ParseMedia parses "@media (...) and (...)" variant key. Media types
// "screen", "all" and "only" are accepted and ignored, anything else
// is an error.
func ParseMedia(key string) (MediaQuery, bool) {
	r := mediaCache.get(key, func(key string) mediaResult {
		q, ok := parseMedia(key)
		return mediaResult{q: q, ok: ok}
	})
	return r.q, r.ok
}

// CanonicalMediaKey returns normalized form of media variant key so that
// differently spaced keys compare equal. Keys which could not be parsed are
// returned unchanged.
func CanonicalMediaKey(key string) string {
	q, ok := ParseMedia(key)
	if !ok {
		return key
	}
	return q.String()
}

var mediaFeatures = map[string]bool{
	"prefers-color-scheme":   true,
	"prefers-reduced-motion": true,
	"min-width":              true,
	"max-width":              true,
	"min-height":             true,
	"max-height":             true,
	"orientation":            true,
}

func parseMedia(key string) (MediaQuery, bool) {
	var q MediaQuery
	body, found := strings.CutPrefix(strings.TrimSpace(key), "@media")
	if !found {
		return q, false
	}
	for _, cond := range splitTop(tokenize(body), lex.CommaToken) {
		var features []MediaFeature
		for i := 0; i < len(cond); i++ {
			t := cond[i]
			switch t.tt {
			case lex.WhitespaceToken:
				continue
			case lex.IdentToken:
				switch strings.ToLower(t.text) {
				case "and", "screen", "all", "only":
					continue
				}
				return q, false
			case lex.LeftParenthesisToken:
				end := i + 1
				for end < len(cond) && cond[end].tt != lex.RightParenthesisToken {
					end++
				}
				if end == len(cond) {
					return q, false
				}
				f, ok := mediaFeature(cond[i+1 : end])
				if !ok {
					return q, false
				}
				features = append(features, f)
				i = end
			default:
				return q, false
			}
		}
		if len(features) == 0 {
			return q, false
		}
		q.Conditions = append(q.Conditions, features)
	}
	return q, len(q.Conditions) > 0
}

func mediaFeature(toks []token) (MediaFeature, bool) {
	toks = trimSpace(toks)
	colon := -1
	for i, t := range toks {
		if t.tt == lex.ColonToken {
			colon = i
			break
		}
	}
	if colon <= 0 {
		return MediaFeature{}, false
	}
	f := MediaFeature{
		Name:  strings.ToLower(joinTokens(toks[:colon])),
		Value: strings.ToLower(joinTokens(toks[colon+1:])),
	}
	if !mediaFeatures[f.Name] || f.Value == "" {
		return MediaFeature{}, false
	}
	switch f.Name {
	case "prefers-color-scheme":
		return f, f.Value == "light" || f.Value == "dark"
	case "prefers-reduced-motion":
		return f, f.Value == "reduce" || f.Value == "no-preference"
	case "orientation":
		return f, f.Value == "portrait" || f.Value == "landscape"
	}
	l, ok := ParseLengthOrNumber(f.Value)
	if !ok {
		return MediaFeature{}, false
	}
	switch l.Unit {
	case UnitPx:
		f.Px = l.Magnitude
	case UnitEm, UnitRem:
		// media queries use initial font size
		f.Px = l.Magnitude * DefaultFontSize
	default:
		return MediaFeature{}, false
	}
	return f, true
}

// String returns canonical text of the query.
func (q MediaQuery) String() string {
	conds := make([]string, 0, len(q.Conditions))
	for _, c := range q.Conditions {
		fs := make([]string, 0, len(c))
		for _, f := range c {
			fs = append(fs, "("+f.Name+": "+f.Value+")")
		}
		conds = append(conds, strings.Join(fs, " and "))
	}
	return "@media " + strings.Join(conds, ", ")
}

// IsDark returns true if query is exactly the dark color scheme query.
func (q MediaQuery) IsDark() bool {
	return len(q.Conditions) == 1 && len(q.Conditions[0]) == 1 &&
		q.Conditions[0][0].Name == "prefers-color-scheme" && q.Conditions[0][0].Value == "dark"
}

// Matches evaluates query against context.
func (q MediaQuery) Matches(ctx MediaContext) bool {
	for _, c := range q.Conditions {
		if matchAll(c, ctx) {
			return true
		}
	}
	return false
}

func matchAll(features []MediaFeature, ctx MediaContext) bool {
	for _, f := range features {
		if !f.matches(ctx) {
			return false
		}
	}
	return true
}

func (f MediaFeature) matches(ctx MediaContext) bool {
	switch f.Name {
	case "prefers-color-scheme":
		scheme := ctx.ColorScheme
		if scheme == "" {
			scheme = "light"
		}
		return scheme == f.Value
	case "prefers-reduced-motion":
		return ctx.ReducedMotion == (f.Value == "reduce")
	case "orientation":
		portrait := ctx.Height >= ctx.Width
		return portrait == (f.Value == "portrait")
	case "min-width":
		return ctx.Width >= f.Px
	case "max-width":
		return ctx.Width <= f.Px
	case "min-height":
		return ctx.Height >= f.Px
	case "max-height":
		return ctx.Height <= f.Px
	}
	return false
}
