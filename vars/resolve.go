package vars

import (
	"strings"

	"go.uber.org/zap"

	"stylebridge/css"
)

// DefaultMaxDepth limits reference chains, anything deeper is treated as
// a reference cycle.
const DefaultMaxDepth = 50

// Resolver substitutes var() references with custom property values.
type Resolver struct {
	log      *zap.Logger
	maxDepth int
	dev      bool
}

// Option configures Resolver.
type Option func(*Resolver)

// WithMaxDepth overrides reference chain limit.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithDevMode makes resolution problems visible as errors, otherwise they
// are only logged at debug level.
func WithDevMode(dev bool) Option {
	return func(r *Resolver) {
		r.dev = dev
	}
}

// NewResolver returns resolver with default depth limit.
func NewResolver(log *zap.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{log: log.Named("vars"), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// walk is state of a single resolution.
type walk struct {
	src      Source
	dark     bool
	maxDepth int

	missing string
	cycle   bool
}

// Resolve substitutes every reference in u. When value consists of a single
// reference the referenced value is returned as is (Number stays Number),
// otherwise segments are concatenated into String. A single unresolved
// reference fails the whole value. Themed values pick dark variant when
// dark is set.
func (r *Resolver) Resolve(u css.Unparsed, src Source, dark bool) (css.Value, bool) {
	w := &walk{src: src, dark: dark, maxDepth: r.maxDepth}
	v, ok := w.unparsed(u, 0)
	if ok {
		return v, true
	}
	switch {
	case w.cycle:
		r.report("Custom property reference cycle", zap.String("value", u.Raw), zap.Int("depth", r.maxDepth))
	case w.missing != "":
		r.report("Unresolved custom property", zap.String("name", "--"+w.missing), zap.String("value", u.Raw))
	default:
		r.report("Unable to resolve custom property value", zap.String("value", u.Raw))
	}
	return nil, false
}

// ResolveValue resolves any registry value: themes are narrowed to the
// active variant and strings with var() references are substituted.
func (r *Resolver) ResolveValue(v css.Value, src Source, dark bool) (css.Value, bool) {
	if s, ok := v.(css.String); ok && css.HasVar(string(s)) {
		u, ok := css.ParseUnparsed(string(s))
		if !ok {
			r.report("Malformed var() reference", zap.String("value", string(s)))
			return nil, false
		}
		v = u
	}
	if u, ok := v.(css.Unparsed); ok {
		return r.Resolve(u, src, dark)
	}
	w := &walk{src: src, dark: dark, maxDepth: r.maxDepth}
	return w.value(v, 0)
}

func (r *Resolver) report(msg string, fields ...zap.Field) {
	if r.dev {
		r.log.Error(msg, fields...)
		return
	}
	r.log.Debug(msg, fields...)
}

func (w *walk) unparsed(u css.Unparsed, depth int) (css.Value, bool) {
	if depth > w.maxDepth {
		w.cycle = true
		return nil, false
	}
	if len(u.Segments) == 1 {
		return w.segment(u.Segments[0], depth)
	}
	var sb strings.Builder
	for _, seg := range u.Segments {
		v, ok := w.segment(seg, depth)
		if !ok {
			return nil, false
		}
		sb.WriteString(css.Text(v))
	}
	return css.String(sb.String()), true
}

func (w *walk) segment(seg css.Segment, depth int) (css.Value, bool) {
	if seg.Ref == nil {
		return seg.Literal, seg.Literal != nil
	}
	if v, ok := w.src.Lookup(seg.Ref.Name); ok {
		return w.value(v, depth+1)
	}
	if seg.Ref.Fallback != nil {
		return w.unparsed(*seg.Ref.Fallback, depth+1)
	}
	if w.missing == "" {
		w.missing = seg.Ref.Name
	}
	return nil, false
}

func (w *walk) value(v css.Value, depth int) (css.Value, bool) {
	if depth > w.maxDepth {
		w.cycle = true
		return nil, false
	}
	switch t := v.(type) {
	case css.Variants:
		picked := t.Default
		if w.dark {
			if dv, ok := t.Lookup(css.KeyDark); ok {
				picked = dv
			}
		}
		return w.value(picked, depth+1)
	case css.Unparsed:
		return w.unparsed(t, depth+1)
	case css.String:
		if css.HasVar(string(t)) {
			u, ok := css.ParseUnparsed(string(t))
			if !ok {
				return nil, false
			}
			return w.unparsed(u, depth+1)
		}
	case nil:
		return nil, false
	}
	return v, true
}
