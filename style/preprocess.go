package style

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stylebridge/common"
	"stylebridge/css"
)

// Preprocessor validates and parses style declarations. It is safe for
// concurrent use.
type Preprocessor struct {
	log *zap.Logger
	d   diag
}

// NewPreprocessor creates preprocessor.
func NewPreprocessor(log *zap.Logger, opts ...Option) *Preprocessor {
	if log == nil {
		log = zap.NewNop()
	}
	o := newOptions(opts)
	log = log.Named("preprocessor")
	return &Preprocessor{log: log, d: diag{log: log, dev: o.dev}}
}

// Create preprocesses a set of named definitions. Each definition is either
// a Declaration or a Factory.
func (p *Preprocessor) Create(defs map[string]any) *Sheet {
	sheet := &Sheet{
		p:         p,
		styles:    make(map[string]Style, len(defs)),
		factories: make(map[string]Factory),
	}
	for _, name := range common.SortedKeys(defs) {
		switch def := defs[name].(type) {
		case map[string]any:
			sheet.styles[name] = p.Declaration(def)
		case Style:
			sheet.styles[name] = def
		case Factory:
			sheet.factories[name] = def
		case func(...any) map[string]any:
			sheet.factories[name] = def
		default:
			p.d.warn("Invalid style definition", zap.String("style", name), zap.String("type", typeName(def)))
		}
	}
	return sheet
}

// Declaration preprocesses a single declaration.
func (p *Preprocessor) Declaration(decl Declaration) Style {
	out := make(Style, len(decl))
	for _, name := range common.SortedKeys(decl) {
		p.property(out, name, decl[name])
	}
	return out
}

func (p *Preprocessor) property(out Style, name string, raw any) {
	if pseudo, found := strings.CutPrefix(name, "::"); found {
		p.pseudoElement(out, pseudo, raw)
		return
	}
	if !IsAllowed(name) {
		p.d.warn("Invalid style property", zap.String("property", name))
		return
	}
	if v, ok := p.Value(name, raw); ok {
		out[name] = v
	}
}

// pseudoElement expands "::placeholder": {color: x} into placeholderTextColor.
func (p *Preprocessor) pseudoElement(out Style, pseudo string, raw any) {
	if pseudo != "placeholder" {
		p.d.warn("Unsupported pseudo-element", zap.String("pseudo", "::"+pseudo))
		return
	}
	decl, ok := raw.(map[string]any)
	if !ok {
		p.d.warn("Invalid pseudo-element value", zap.String("pseudo", "::"+pseudo))
		return
	}
	for _, name := range common.SortedKeys(decl) {
		if name != "color" {
			p.d.warn("Unsupported pseudo-element property", zap.String("pseudo", "::"+pseudo), zap.String("property", name))
			continue
		}
		if v, ok := p.Value("placeholderTextColor", decl[name]); ok {
			out["placeholderTextColor"] = v
		}
	}
}

// Value parses raw value of an allowed property. It returns false when value
// must be dropped, diagnostic has been emitted already.
func (p *Preprocessor) Value(name string, raw any) (css.Value, bool) {
	switch t := raw.(type) {
	case nil:
		return nil, false
	case css.Variants:
		return p.variants(name, t)
	case map[string]any:
		var o Ordered
		for _, k := range common.SortedKeys(t) {
			o.Set(k, t[k])
		}
		return p.ordered(name, o)
	case Ordered:
		return p.ordered(name, t)
	case *Ordered:
		return p.ordered(name, *t)
	case []any:
		if name == "transform" {
			return p.transformList(t)
		}
	}
	v := css.Literal(raw)
	if v == nil {
		p.d.warn("Invalid style value", zap.String("property", name), zap.String("type", typeName(raw)))
		return nil, false
	}
	return p.literal(name, v)
}

func (p *Preprocessor) ordered(name string, o Ordered) (css.Value, bool) {
	var out css.Variants
	for i, key := range o.Keys {
		v, ok := p.Value(name, o.Values[i])
		if !ok {
			continue
		}
		switch {
		case key == css.KeyDefault:
			out.Default = v
		case key == css.KeyHover, key == css.KeyFocus, key == css.KeyActive:
			out.Cases = append(out.Cases, css.Case{Key: key, Value: v})
		case strings.HasPrefix(key, "@media"):
			if _, valid := css.ParseMedia(key); !valid {
				p.d.warn("Unsupported media query", zap.String("property", name), zap.String("query", key))
				continue
			}
			out.Cases = append(out.Cases, css.Case{Key: css.CanonicalMediaKey(key), Value: v})
		default:
			p.d.warn("Invalid variant key", zap.String("property", name), zap.String("key", key))
		}
	}
	if out.Default == nil && len(out.Cases) == 0 {
		return nil, false
	}
	return out, true
}

func (p *Preprocessor) variants(name string, in css.Variants) (css.Value, bool) {
	o := Ordered{}
	if in.Default != nil {
		o.Set(css.KeyDefault, in.Default)
	}
	for _, c := range in.Cases {
		o.Set(c.Key, c.Value)
	}
	return p.ordered(name, o)
}

// literal routes single literal value through per property parsing rules.
func (p *Preprocessor) literal(name string, v css.Value) (css.Value, bool) {
	kind := allowedProperties[name]
	switch t := v.(type) {
	case css.Number:
		if kind == kindNumeric {
			return css.String(css.FormatNumber(float64(t))), true
		}
		return t, true
	case css.String:
		return p.stringValue(name, kind, strings.TrimSpace(string(t)))
	}
	return v, true
}

func (p *Preprocessor) stringValue(name string, kind valueKind, s string) (css.Value, bool) {
	if s == "0" {
		return css.Number(0), true
	}
	if css.HasVar(s) {
		u, ok := css.ParseUnparsed(s)
		if !ok {
			p.d.warn("Invalid style value", zap.String("property", name), zap.String("value", s))
			return nil, false
		}
		return u, true
	}
	if singleValueProperties[name] && len(css.Words(s)) > 1 {
		p.d.error("Invalid shorthand value, use longhand properties", zap.String("property", name), zap.String("value", s))
		return nil, false
	}

	switch kind {
	case kindLength, kindNumeric:
		if l, ok := css.ParseLength(s); ok {
			if l.Unit == css.UnitPx {
				return css.Number(l.Magnitude), true
			}
			return l, true
		}
	case kindTime:
		return css.Number(css.ParseTime(s)), true
	case kindTransform:
		if s == "none" {
			return css.Transform{}, true
		}
		if tr := css.ParseTransform(s); len(tr) > 0 {
			return tr, true
		}
		p.d.warn("Invalid style value", zap.String("property", name), zap.String("value", s))
		return nil, false
	case kindShadow:
		if s == "none" {
			return css.Shadows{}, true
		}
		if sh := css.ParseShadow(s); len(sh) > 0 {
			return sh, true
		}
		p.d.warn("Invalid style value", zap.String("property", name), zap.String("value", s))
		return nil, false
	}
	return css.String(s), true
}

// transformList accepts host shaped transform: [{translateX: 10}, {rotate: "45deg"}].
func (p *Preprocessor) transformList(list []any) (css.Value, bool) {
	out := make(css.Transform, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok || len(m) != 1 {
			p.d.warn("Invalid transform operation", zap.String("type", typeName(item)))
			continue
		}
		for fn, arg := range m {
			op, ok := transformOp(fn, arg)
			if !ok {
				p.d.warn("Invalid transform operation", zap.String("function", fn))
				continue
			}
			out = append(out, op)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func transformOp(fn string, arg any) (css.TransformOp, bool) {
	if !css.IsTransformFunction(fn) {
		return css.TransformOp{}, false
	}
	if fn == "matrix" {
		nums, ok := numbers(arg)
		switch {
		case !ok:
			return css.TransformOp{}, false
		case len(nums) == 6:
			return css.TransformOp{Name: fn, Arg: css.Expand2D(nums[0], nums[1], nums[2], nums[3], nums[4], nums[5])}, true
		case len(nums) == 16:
			return css.TransformOp{Name: fn, Arg: css.Matrix(nums)}, true
		}
		return css.TransformOp{}, false
	}
	switch v := css.Literal(arg).(type) {
	case css.Number:
		return css.TransformOp{Name: fn, Arg: v}, true
	case css.String:
		// reuse text parser for unit handling
		if tr := css.ParseTransform(fn + "(" + string(v) + ")"); len(tr) == 1 {
			return tr[0], true
		}
	}
	return css.TransformOp{}, false
}

func numbers(arg any) ([]float64, bool) {
	list, ok := arg.([]any)
	if !ok {
		if fl, ok := arg.([]float64); ok {
			return fl, true
		}
		return nil, false
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		n, ok := css.Literal(item).(css.Number)
		if !ok {
			return nil, false
		}
		out = append(out, float64(n))
	}
	return out, true
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
