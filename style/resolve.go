package style

import (
	"maps"

	"go.uber.org/zap"

	"stylebridge/common"
	"stylebridge/css"
	"stylebridge/vars"
)

// Result is resolved style split by destination.
type Result struct {
	// Style is host native style.
	Style map[string]any
	// Props are element properties produced by polyfills: numberOfLines,
	// caretHidden, accessibility flags and similar.
	Props map[string]any
	// Animation holds resolved animation-* properties, they are never
	// forwarded to host as style.
	Animation map[string]any
}

// Resolver resolves preprocessed styles against render time Context. It is
// stateless and safe for concurrent use.
type Resolver struct {
	log      *zap.Logger
	d        diag
	pre      *Preprocessor
	vars     *vars.Resolver
	maxDepth int
}

// NewResolver creates resolver, options are shared with internal
// preprocessor used for re-processing substituted values.
func NewResolver(log *zap.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	o := newOptions(opts)
	named := log.Named("resolver")
	return &Resolver{
		log:      named,
		d:        diag{log: named, dev: o.dev},
		pre:      NewPreprocessor(log, opts...),
		vars:     vars.NewResolver(log, vars.WithMaxDepth(o.maxDepth), vars.WithDevMode(o.dev)),
		maxDepth: o.maxDepth,
	}
}

// Preprocessor returns preprocessor sharing resolver options.
func (r *Resolver) Preprocessor() *Preprocessor {
	return r.pre
}

// Flatten merges style fragments into a single style, later fragments
// override earlier ones. Fragments may be Style, *Style, []Style or
// arbitrarily nested []any; nil and false are skipped so conditional
// fragments could be passed as is.
func (r *Resolver) Flatten(fragments ...any) Style {
	out := make(Style)
	for _, f := range fragments {
		r.flatten(out, f)
	}
	return out
}

func (r *Resolver) flatten(out Style, f any) {
	switch t := f.(type) {
	case nil:
	case bool:
		if t {
			r.d.warn("Invalid style fragment", zap.Bool("value", t))
		}
	case Style:
		maps.Copy(out, t)
	case *Style:
		if t != nil {
			maps.Copy(out, *t)
		}
	case []Style:
		for _, s := range t {
			maps.Copy(out, s)
		}
	case []any:
		for _, item := range t {
			r.flatten(out, item)
		}
	default:
		r.d.warn("Invalid style fragment", zap.String("type", typeName(f)))
	}
}

// Resolve flattens fragments and resolves them against ctx.
func (r *Resolver) Resolve(ctx Context, fragments ...any) Result {
	flat := r.Flatten(fragments...)
	if ctx.Vars == nil {
		ctx.Vars = emptySource{}
	}

	resolved := make(map[string]any, len(flat))

	// font size goes first, em values of siblings depend on it
	fontSize := ctx.InheritedFontSize
	if v, ok := flat["fontSize"]; ok {
		if out, ok := r.property(ctx, "fontSize", v, ctx.InheritedFontSize); ok {
			resolved["fontSize"] = out
			if n, ok := out.(float64); ok {
				fontSize = n
			}
		}
	}
	for _, name := range common.SortedKeys(flat) {
		if name == "fontSize" {
			continue
		}
		if out, ok := r.property(ctx, name, flat[name], fontSize); ok {
			resolved[name] = out
		}
	}

	if r.d.dev {
		r.check(resolved)
	}
	return r.native(ctx, resolved, fontSize)
}

// Values preprocesses and resolves a single declaration and returns host
// native style, used for values declared outside of style sheets such as
// keyframes.
func (r *Resolver) Values(ctx Context, decl Declaration) map[string]any {
	return r.Resolve(ctx, r.pre.Declaration(decl)).Style
}

// property resolves single value. Variants and custom properties are staged
// back into the loop until a terminal value is reached, the number of steps
// is bounded by max resolve depth.
func (r *Resolver) property(ctx Context, name string, v css.Value, fontSize float64) (any, bool) {
	dark := ctx.ColorScheme == ColorSchemeDark
	for range r.maxDepth {
		switch t := v.(type) {
		case css.Variants:
			next := r.selectVariant(ctx, t)
			if next == nil {
				return nil, false
			}
			v = next
		case css.Unparsed:
			lit, ok := r.vars.Resolve(t, ctx.Vars, dark)
			if !ok {
				return nil, false
			}
			next, ok := r.pre.Value(name, lit)
			if !ok {
				return nil, false
			}
			v = next
		case css.Length:
			return t.Resolve(ctx.lengths(fontSize)), true
		case css.Number:
			return float64(t), true
		case css.String:
			return string(t), true
		case css.Bool:
			return bool(t), true
		case css.Transform:
			return nativeTransform(t), true
		case css.Matrix:
			return t.Slice(), true
		case css.Shadows:
			return resolveShadows(ctx, t, fontSize), true
		default:
			r.d.warn("Unsupported style value", zap.String("property", name), zap.String("type", typeName(v)))
			return nil, false
		}
	}
	r.d.error("Style value resolution exceeded depth limit", zap.String("property", name), zap.Int("depth", r.maxDepth))
	return nil, false
}

// selectVariant picks active value: :active, :focus, :hover, matching media
// query (last match wins), default.
func (r *Resolver) selectVariant(ctx Context, v css.Variants) css.Value {
	var hover, focus, active, media css.Value
	mc := ctx.media()
	for _, c := range v.Cases {
		switch c.Key {
		case css.KeyHover:
			if ctx.Hover {
				hover = c.Value
			}
		case css.KeyFocus:
			if ctx.Focus {
				focus = c.Value
			}
		case css.KeyActive:
			if ctx.Active {
				active = c.Value
			}
		default:
			if q, ok := css.ParseMedia(c.Key); ok && q.Matches(mc) {
				media = c.Value
			}
		}
	}
	switch {
	case active != nil:
		return active
	case focus != nil:
		return focus
	case hover != nil:
		return hover
	case media != nil:
		return media
	}
	return v.Default
}

func nativeTransform(t css.Transform) []any {
	out := make([]any, 0, len(t))
	for _, op := range t {
		var arg any
		switch a := op.Arg.(type) {
		case css.Number:
			arg = float64(a)
		case css.String:
			arg = string(a)
		case css.Matrix:
			arg = a.Slice()
		default:
			continue
		}
		out = append(out, map[string]any{op.Name: arg})
	}
	return out
}

// shadowPx is a shadow with lengths resolved to pixels.
type shadowPx struct {
	inset              bool
	x, y, blur, spread float64
	color              string
}

func resolveShadows(ctx Context, list css.Shadows, fontSize float64) []shadowPx {
	lc := ctx.lengths(fontSize)
	out := make([]shadowPx, 0, len(list))
	for _, s := range list {
		out = append(out, shadowPx{
			inset:  s.Inset,
			x:      s.OffsetX.Resolve(lc),
			y:      s.OffsetY.Resolve(lc),
			blur:   s.BlurRadius.Resolve(lc),
			spread: s.SpreadRadius.Resolve(lc),
			color:  s.Color,
		})
	}
	return out
}
