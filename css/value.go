// Package css parses web CSS property values into typed intermediate values.
//
// Parsing happens once, when a style is declared. Everything that can not be
// computed without a runtime context (viewport, font metrics, color scheme,
// custom property bindings) is kept in an intermediate form and resolved later
// by the style resolver:
//
//   - Length    "10vw", "2em", "1.5rem" - needs viewport and font metrics
//   - Unparsed  any value containing var(--name) references
//   - Variants  values selected by pseudo-state or media query
//   - Transform parsed transform function list
//   - Shadows   parsed box-shadow / text-shadow list
//
// All parsers are pure and memoized by source string. Malformed input never
// causes a panic or an error, parsers return empty result and callers decide
// what diagnostic to emit.
package css

import (
	"strconv"
	"strings"
)

// Value is a style property value in one of its intermediate forms.
type Value interface {
	isValue()
}

// String is a literal string value (keyword, color, percentage, etc.).
type String string

// Number is a literal numeric value, lengths in px are stored as Number.
type Number float64

// Bool is a literal boolean value.
type Bool bool

func (String) isValue()    {}
func (Number) isValue()    {}
func (Bool) isValue()      {}
func (Length) isValue()    {}
func (Unparsed) isValue()  {}
func (Transform) isValue() {}
func (Matrix) isValue()    {}
func (Shadows) isValue()   {}
func (Variants) isValue()  {}

// Case is a single conditional branch of Variants.
type Case struct {
	Key   string // ":hover", ":focus", ":active" or "@media ..."
	Value Value
}

// Variants is a value selected at render time by pseudo-state or media
// query, Default is used when nothing else matches. Cases keep declaration
// order, it matters when more than one media query matches.
type Variants struct {
	Default Value
	Cases   []Case
}

// Lookup returns value for the given variant key.
func (v Variants) Lookup(key string) (Value, bool) {
	if key == KeyDefault {
		return v.Default, v.Default != nil
	}
	for _, c := range v.Cases {
		if c.Key == key {
			return c.Value, true
		}
	}
	return nil, false
}

// Variant keys recognized in style declarations.
const (
	KeyDefault = "default"
	KeyHover   = ":hover"
	KeyFocus   = ":focus"
	KeyActive  = ":active"
	// KeyDark is the canonical form of the dark color scheme media query.
	KeyDark = "@media (prefers-color-scheme: dark)"
)

// IsVariantKey returns true if key may be used inside a variant object.
func IsVariantKey(key string) bool {
	switch key {
	case KeyDefault, KeyHover, KeyFocus, KeyActive:
		return true
	}
	return strings.HasPrefix(key, "@media")
}

// FormatNumber formats number the way CSS serializes it (no trailing zeros).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Literal converts Go literal (as decoded from YAML or declared in code) into Value.
// It returns nil for unsupported types.
func Literal(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case int32:
		return Number(t)
	case uint:
		return Number(t)
	case uint64:
		return Number(t)
	case float32:
		return Number(t)
	case float64:
		return Number(t)
	}
	return nil
}

// Text returns string form of a literal value used when composing
// values out of several segments.
func Text(v Value) string {
	switch t := v.(type) {
	case String:
		return string(t)
	case Number:
		return FormatNumber(float64(t))
	case Bool:
		return strconv.FormatBool(bool(t))
	case Length:
		return t.String()
	case Unparsed:
		return t.Raw
	case Transform:
		return FormatTransform(t)
	}
	return ""
}
