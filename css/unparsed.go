package css

import (
	"strings"

	lex "github.com/tdewolff/parse/v2/css"
)

// VarRef is a var(--name, fallback) reference. Name is normalized.
type VarRef struct {
	Name     string
	Fallback *Unparsed // nil when no fallback was given
}

// Segment is either a literal (String or Number) or a variable reference.
type Segment struct {
	Literal Value
	Ref     *VarRef
}

// Unparsed is a value with one or more var() references. It can only be
// resolved when custom property registry is available.
type Unparsed struct {
	Segments []Segment
	Raw      string
}

// HasVar returns true if s contains var() reference.
func HasVar(s string) bool {
	return strings.Contains(s, "var(")
}

type unparsedResult struct {
	value Unparsed
	ok    bool
}

var unparsedCache = newMemo[unparsedResult](defaultMemoSize)

// ParseUnparsed splits value into literal segments and var() references.
// It returns false when var() syntax is malformed (no name, unbalanced
// parentheses).
func ParseUnparsed(s string) (Unparsed, bool) {
	r := unparsedCache.get(s, func(s string) unparsedResult {
		u, ok := parseUnparsed(s, 0)
		return unparsedResult{value: u, ok: ok}
	})
	return r.value, r.ok
}

// maxFallbackNesting limits var() nesting inside fallbacks while parsing.
const maxFallbackNesting = 32

func parseUnparsed(s string, depth int) (Unparsed, bool) {
	u := Unparsed{Raw: s}
	if depth > maxFallbackNesting {
		return u, false
	}
	toks := tokenize(s)

	var text strings.Builder
	flush := func() {
		if text.Len() == 0 {
			return
		}
		u.Segments = append(u.Segments, Segment{Literal: literalSegment(text.String())})
		text.Reset()
	}

	for i := 0; i < len(toks); {
		t := toks[i]
		if t.tt != lex.FunctionToken || !strings.EqualFold(t.text, "var(") {
			if t.tt == lex.WhitespaceToken {
				text.WriteByte(' ')
			} else {
				text.WriteString(t.text)
			}
			i++
			continue
		}
		c, next, ok := nextCall(toks, i)
		if !ok || len(c.args) == 0 {
			return u, false
		}
		name := trimSpace(c.args[0])
		if len(name) != 1 || name[0].tt != lex.CustomPropertyNameToken {
			return u, false
		}
		ref := &VarRef{Name: NormalizeVarName(name[0].text)}
		if ref.Name == "" {
			return u, false
		}
		if len(c.args) > 1 {
			parts := make([]string, 0, len(c.args)-1)
			for _, a := range c.args[1:] {
				parts = append(parts, joinTokens(a))
			}
			fb, ok := parseUnparsed(strings.Join(parts, ", "), depth+1)
			if !ok {
				return u, false
			}
			ref.Fallback = &fb
		}
		flush()
		u.Segments = append(u.Segments, Segment{Ref: ref})
		i = next
	}
	flush()
	return u, len(u.Segments) > 0
}

// literalSegment keeps numbers numeric so that var(--x, 10) falls back to 10
// and not to "10".
func literalSegment(s string) Value {
	if v, ok := ParseNumber(strings.TrimSpace(s)); ok && strings.TrimSpace(s) == s {
		return Number(v)
	}
	return String(s)
}

// Refs returns names of all variables referenced by the value, including
// ones in fallbacks.
func (u Unparsed) Refs() []string {
	var names []string
	for _, seg := range u.Segments {
		if seg.Ref == nil {
			continue
		}
		names = append(names, seg.Ref.Name)
		if seg.Ref.Fallback != nil {
			names = append(names, seg.Ref.Fallback.Refs()...)
		}
	}
	return names
}
