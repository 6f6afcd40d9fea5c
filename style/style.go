// Package style turns web shaped style declarations into host native styles.
//
// Work is split in two passes. Preprocessor runs once, when styles are
// declared: it validates property names, parses values into intermediate
// css.Value forms and reports problems. Resolver runs on every render: it
// flattens style fragments, picks active variants, substitutes custom
// properties, converts lengths to pixels and maps web properties to the
// ones host understands.
package style

import (
	"slices"

	"go.uber.org/zap"

	"stylebridge/common"
	"stylebridge/css"
)

// Declaration is a raw style declaration: property name to literal value,
// variant object (map[string]any or Ordered) or already parsed css.Value.
type Declaration = map[string]any

// Factory is parameterized style definition, it is called with positional
// arguments every time style is requested.
type Factory func(args ...any) Declaration

// Style is a preprocessed declaration ready for resolution.
type Style map[string]css.Value

// Ordered is a variant object which keeps declaration order of its keys.
// Order matters when more than one media query matches.
type Ordered struct {
	Keys   []string
	Values []any
}

// Set adds or replaces value for key, new keys are appended.
func (o *Ordered) Set(key string, value any) {
	if i := slices.Index(o.Keys, key); i >= 0 {
		o.Values[i] = value
		return
	}
	o.Keys = append(o.Keys, key)
	o.Values = append(o.Values, value)
}

// Get returns value for key.
func (o Ordered) Get(key string) (any, bool) {
	if i := slices.Index(o.Keys, key); i >= 0 {
		return o.Values[i], true
	}
	return nil, false
}

// Len returns number of keys.
func (o Ordered) Len() int {
	return len(o.Keys)
}

// Option configures Preprocessor and Resolver.
type Option func(*options)

type options struct {
	dev      bool
	maxDepth int
}

// WithDevMode enables invariant checks and makes diagnostics visible at
// warning and error levels. Without it diagnostics are logged at debug level.
func WithDevMode(dev bool) Option {
	return func(o *options) {
		o.dev = dev
	}
}

// WithMaxResolveDepth limits how many times a single value could be
// re-processed (variants, custom properties) before resolution gives up.
func WithMaxResolveDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: 50}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// diag emits developer facing diagnostics.
type diag struct {
	log *zap.Logger
	dev bool
}

func (d diag) warn(msg string, fields ...zap.Field) {
	if d.dev {
		d.log.Warn(msg, fields...)
		return
	}
	d.log.Debug(msg, fields...)
}

func (d diag) error(msg string, fields ...zap.Field) {
	if d.dev {
		d.log.Error(msg, fields...)
		return
	}
	d.log.Debug(msg, fields...)
}

// Sheet is a set of named styles created by Preprocessor.Create.
type Sheet struct {
	p         *Preprocessor
	styles    map[string]Style
	factories map[string]Factory
}

// Style returns named style. Factories are called with args, plain styles
// ignore them.
func (s *Sheet) Style(name string, args ...any) (Style, bool) {
	if st, ok := s.styles[name]; ok {
		return st, true
	}
	if f, ok := s.factories[name]; ok {
		return s.p.Declaration(f(args...)), true
	}
	return nil, false
}

// Names returns all style names in natural order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.styles)+len(s.factories))
	for k := range s.styles {
		names = append(names, k)
	}
	for k := range s.factories {
		names = append(names, k)
	}
	slices.SortFunc(names, common.CompareNatural)
	return names
}
