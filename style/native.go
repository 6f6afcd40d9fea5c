package style

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stylebridge/common"
	"stylebridge/css"
)

// logical describes mapping of a logical property to host properties.
// Physical targets are only set when not declared explicitly, start and end
// targets always overwrite.
type logical struct {
	targets   []string
	overwrite bool
}

var logicalProperties = map[string]logical{
	"marginBlock":       {targets: []string{"marginVertical"}},
	"marginBlockStart":  {targets: []string{"marginTop"}},
	"marginBlockEnd":    {targets: []string{"marginBottom"}},
	"marginInline":      {targets: []string{"marginHorizontal"}},
	"marginInlineStart": {targets: []string{"marginStart"}, overwrite: true},
	"marginInlineEnd":   {targets: []string{"marginEnd"}, overwrite: true},

	"paddingBlock":       {targets: []string{"paddingVertical"}},
	"paddingBlockStart":  {targets: []string{"paddingTop"}},
	"paddingBlockEnd":    {targets: []string{"paddingBottom"}},
	"paddingInline":      {targets: []string{"paddingHorizontal"}},
	"paddingInlineStart": {targets: []string{"paddingStart"}, overwrite: true},
	"paddingInlineEnd":   {targets: []string{"paddingEnd"}, overwrite: true},

	"inset":            {targets: []string{"top", "right", "bottom", "left"}},
	"insetBlock":       {targets: []string{"top", "bottom"}},
	"insetBlockStart":  {targets: []string{"top"}},
	"insetBlockEnd":    {targets: []string{"bottom"}},
	"insetInline":      {targets: []string{"start", "end"}},
	"insetInlineStart": {targets: []string{"start"}, overwrite: true},
	"insetInlineEnd":   {targets: []string{"end"}, overwrite: true},

	"blockSize":     {targets: []string{"height"}},
	"inlineSize":    {targets: []string{"width"}},
	"minBlockSize":  {targets: []string{"minHeight"}},
	"maxBlockSize":  {targets: []string{"maxHeight"}},
	"minInlineSize": {targets: []string{"minWidth"}},
	"maxInlineSize": {targets: []string{"maxWidth"}},

	"borderBlockStartColor":  {targets: []string{"borderTopColor"}},
	"borderBlockEndColor":    {targets: []string{"borderBottomColor"}},
	"borderInlineStartColor": {targets: []string{"borderStartColor"}, overwrite: true},
	"borderInlineEndColor":   {targets: []string{"borderEndColor"}, overwrite: true},
	"borderBlockStartWidth":  {targets: []string{"borderTopWidth"}},
	"borderBlockEndWidth":    {targets: []string{"borderBottomWidth"}},
	"borderInlineStartWidth": {targets: []string{"borderStartWidth"}, overwrite: true},
	"borderInlineEndWidth":   {targets: []string{"borderEndWidth"}, overwrite: true},
	"borderStartStartRadius": {targets: []string{"borderTopStartRadius"}, overwrite: true},
	"borderStartEndRadius":   {targets: []string{"borderTopEndRadius"}, overwrite: true},
	"borderEndStartRadius":   {targets: []string{"borderBottomStartRadius"}, overwrite: true},
	"borderEndEndRadius":     {targets: []string{"borderBottomEndRadius"}, overwrite: true},
}

var objectFitModes = map[string]string{
	"contain":    "contain",
	"cover":      "cover",
	"fill":       "stretch",
	"none":       "center",
	"scale-down": "contain",
}

// native maps resolved web properties to host ones, applying polyfills for
// features host does not have.
func (r *Resolver) native(ctx Context, in map[string]any, fontSize float64) Result {
	res := Result{
		Style:     make(map[string]any, len(in)),
		Props:     make(map[string]any),
		Animation: make(map[string]any),
	}
	st := res.Style

	var logicals []string
	for _, name := range common.SortedKeys(in) {
		v := in[name]
		switch {
		case isAnimationProperty(name):
			res.Animation[name] = v
			continue
		case isTransitionProperty(name):
			r.log.Debug("Transition property ignored", zap.String("property", name))
			continue
		}
		if _, ok := logicalProperties[name]; ok {
			logicals = append(logicals, name)
			continue
		}

		switch name {
		case "boxSizing", "visibility":
			// applied after everything else is in place
		case "textShadow":
			r.textShadow(st, v)
		case "boxShadow":
			if list, ok := v.([]shadowPx); ok && len(list) > 0 {
				st["boxShadow"] = boxShadow(list)
			}
		case "caretColor":
			if v == "transparent" {
				res.Props["caretHidden"] = true
			} else {
				res.Props["cursorColor"] = v
			}
		case "placeholderTextColor":
			res.Props["placeholderTextColor"] = v
		case "lineClamp":
			if n, ok := toNumber(v); ok && n > 0 {
				res.Props["numberOfLines"] = int(n)
			} else {
				r.d.warn("Invalid style value", zap.String("property", name), zap.Any("value", v))
			}
		case "placeContent":
			r.placeContent(in, st, v)
		case "display":
			st["display"] = r.display(v)
		case "position":
			st["position"] = r.position(v)
		case "objectFit":
			if mode, ok := objectFitModes[toString(v)]; ok {
				st["resizeMode"] = mode
			} else {
				r.d.warn("Invalid style value", zap.String("property", name), zap.Any("value", v))
			}
		case "fontVariant":
			st["fontVariant"] = fontVariant(v)
		case "textAlign":
			st["textAlign"] = textAlign(toString(v), ctx.WritingDirection)
		case "lineHeight":
			st["lineHeight"] = lineHeight(v, fontSize, ctx)
		default:
			st[name] = v
		}
	}

	for _, name := range logicals {
		l := logicalProperties[name]
		for _, target := range l.targets {
			if _, exists := st[target]; exists && !l.overwrite {
				continue
			}
			st[target] = in[name]
		}
	}

	if in["boxSizing"] == "content-box" {
		contentBox(st)
	}
	if in["visibility"] == "hidden" {
		st["opacity"] = float64(0)
		res.Props["accessibilityElementsHidden"] = true
		res.Props["importantForAccessibility"] = "no-hide-descendants"
	}
	return res
}

func (r *Resolver) textShadow(st map[string]any, v any) {
	list, ok := v.([]shadowPx)
	if !ok || len(list) == 0 {
		return
	}
	if len(list) > 1 {
		r.d.warn("Multiple text shadows are not supported, using the first one")
	}
	s := list[0]
	st["textShadowOffset"] = map[string]any{"width": s.x, "height": s.y}
	st["textShadowRadius"] = s.blur
	if s.color != "" {
		st["textShadowColor"] = s.color
	}
}

func boxShadow(list []shadowPx) []any {
	out := make([]any, 0, len(list))
	for _, s := range list {
		m := map[string]any{
			"offsetX":        s.x,
			"offsetY":        s.y,
			"blurRadius":     s.blur,
			"spreadDistance": s.spread,
		}
		if s.color != "" {
			m["color"] = s.color
		}
		if s.inset {
			m["inset"] = true
		}
		out = append(out, m)
	}
	return out
}

func (r *Resolver) placeContent(in, st map[string]any, v any) {
	parts := css.Words(toString(v))
	if len(parts) == 0 || len(parts) > 2 {
		r.d.warn("Invalid style value", zap.String("property", "placeContent"), zap.Any("value", v))
		return
	}
	align, justify := parts[0], parts[0]
	if len(parts) == 2 {
		justify = parts[1]
	}
	if _, ok := in["alignContent"]; !ok {
		st["alignContent"] = flexAlignment(align)
	}
	if _, ok := in["justifyContent"]; !ok {
		st["justifyContent"] = flexAlignment(justify)
	}
}

func flexAlignment(s string) string {
	switch s {
	case "start":
		return "flex-start"
	case "end":
		return "flex-end"
	}
	return s
}

func (r *Resolver) display(v any) string {
	s := toString(v)
	switch s {
	case "flex", "none", "contents":
		return s
	case "block":
		return "flex"
	}
	r.d.warn("Unsupported display value, using flex", zap.String("value", s))
	return "flex"
}

func (r *Resolver) position(v any) string {
	s := toString(v)
	switch s {
	case "fixed":
		r.d.warn("Unsupported position value, using absolute", zap.String("value", s))
		return "absolute"
	case "sticky":
		r.d.warn("Unsupported position value, using relative", zap.String("value", s))
		return "relative"
	}
	return s
}

func fontVariant(v any) []any {
	out := []any{}
	s := toString(v)
	if s == "normal" {
		return out
	}
	for _, f := range strings.Fields(s) {
		out = append(out, f)
	}
	return out
}

func textAlign(s string, dir WritingDirection) string {
	rtl := dir == WritingDirectionRtl
	switch s {
	case "start":
		if rtl {
			return "right"
		}
		return "left"
	case "end":
		if rtl {
			return "left"
		}
		return "right"
	}
	return s
}

// lineHeight multiplies unitless values by effective font size.
func lineHeight(v any, fontSize float64, ctx Context) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	n, ok := css.ParseNumber(s)
	if !ok {
		return v
	}
	if fontSize <= 0 {
		fontSize = ctx.rootFontSize()
	}
	return n * fontSize
}

// contentBox adds padding and border to explicit sizes.
func contentBox(st map[string]any) {
	horizontal := side(st, "padding", "Left", "Horizontal") + side(st, "padding", "Right", "Horizontal") +
		border(st, "Left") + border(st, "Right")
	vertical := side(st, "padding", "Top", "Vertical") + side(st, "padding", "Bottom", "Vertical") +
		border(st, "Top") + border(st, "Bottom")

	for _, name := range []string{"width", "minWidth", "maxWidth"} {
		if n, ok := st[name].(float64); ok {
			st[name] = n + horizontal
		}
	}
	for _, name := range []string{"height", "minHeight", "maxHeight"} {
		if n, ok := st[name].(float64); ok {
			st[name] = n + vertical
		}
	}
}

// side returns most specific numeric value of box property for a side.
func side(st map[string]any, prop, edge, axis string) float64 {
	for _, name := range []string{prop + edge, prop + axis, prop} {
		if n, ok := st[name].(float64); ok {
			return n
		}
	}
	return 0
}

func border(st map[string]any, edge string) float64 {
	for _, name := range []string{"border" + edge + "Width", "borderWidth"} {
		if n, ok := st[name].(float64); ok {
			return n
		}
	}
	return 0
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return css.FormatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		return css.ParseNumber(t)
	}
	return 0, false
}
