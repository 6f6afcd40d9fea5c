package css

import (
	lex "github.com/tdewolff/parse/v2/css"
)

// Shadow is a single parsed box-shadow or text-shadow.
type Shadow struct {
	Inset        bool
	OffsetX      Length
	OffsetY      Length
	BlurRadius   Length
	SpreadRadius Length
	Color        string // empty when not specified
}

// Shadows is a comma separated shadow list in declaration order.
type Shadows []Shadow

var shadowCache = newMemo[Shadows](defaultMemoSize)

// ParseShadow parses "[inset] offsetX offsetY [blur [spread]] [color]", one
// shadow per comma separated item. Malformed items are dropped. Returned
// slice is shared, callers must not modify it.
func ParseShadow(s string) Shadows {
	return shadowCache.get(s, parseShadow)
}

func parseShadow(s string) Shadows {
	var out Shadows
	for _, item := range splitTop(tokenize(s), lex.CommaToken) {
		if sh, ok := parseSingleShadow(words(item)); ok {
			out = append(out, sh)
		}
	}
	return out
}

func parseSingleShadow(parts []string) (Shadow, bool) {
	var sh Shadow
	rest := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "inset" {
			sh.Inset = true
			continue
		}
		rest = append(rest, p)
	}
	if len(rest) == 0 {
		return sh, false
	}
	// last token is a color unless it looks like a length
	if last := rest[len(rest)-1]; !looksLikeLength(last) {
		sh.Color = last
		rest = rest[:len(rest)-1]
	}
	if len(rest) < 2 || len(rest) > 4 {
		return sh, false
	}
	lengths := make([]Length, len(rest))
	for i, p := range rest {
		l, ok := ParseLengthOrNumber(p)
		if !ok {
			return sh, false
		}
		lengths[i] = l
	}
	sh.OffsetX, sh.OffsetY = lengths[0], lengths[1]
	if len(lengths) > 2 {
		sh.BlurRadius = lengths[2]
	}
	if len(lengths) > 3 {
		sh.SpreadRadius = lengths[3]
	}
	return sh, true
}

func looksLikeLength(s string) bool {
	_, ok := ParseLengthOrNumber(s)
	return ok
}
