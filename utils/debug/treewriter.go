// Package debug produces human readable dumps of intermediate style values
// for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"stylebridge/css"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Value writes intermediate style value. Variants are expanded one case per
// line in declaration order, default first.
func (tw TreeWriter) Value(depth int, label string, v css.Value) {
	switch t := v.(type) {
	case nil:
		tw.Line(depth, "%s: <none>", label)
	case css.Variants:
		tw.Line(depth, "%s: variants(%d)", label, len(t.Cases))
		if t.Default != nil {
			tw.Value(depth+1, css.KeyDefault, t.Default)
		}
		for _, c := range t.Cases {
			tw.Value(depth+1, c.Key, c.Value)
		}
	case css.Unparsed:
		tw.TextBlock(depth, label+" (unresolved)", t.Raw)
	case css.Length:
		tw.Line(depth, "%s: %s", label, t)
	case css.Shadows:
		tw.Line(depth, "%s: shadows(%d)", label, len(t))
	case css.Matrix:
		tw.Line(depth, "%s: matrix%v", label, [16]float64(t))
	default:
		if s := css.Text(v); len(s) > 0 {
			tw.TextBlock(depth, label, s)
			return
		}
		tw.Line(depth, "%s: %T", label, v)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
