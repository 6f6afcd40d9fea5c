package style

import (
	"slices"
)

// valueKind tells preprocessor how string values of a property are parsed.
type valueKind int

const (
	kindPlain     valueKind = iota // passed through as is
	kindLength                     // length units, "auto" and percentages pass through
	kindTime                       // converted to milliseconds
	kindTransform                  // transform function list
	kindShadow                     // shadow list
	kindNumeric                    // numbers are stringified (fontWeight, lineHeight)
)

// allowedProperties is the list of style properties accepted in declarations.
// Anything else is dropped with diagnostic.
var allowedProperties = map[string]valueKind{
	// Layout
	"alignContent":   kindPlain,
	"alignItems":     kindPlain,
	"alignSelf":      kindPlain,
	"aspectRatio":    kindPlain,
	"boxSizing":      kindPlain,
	"direction":      kindPlain,
	"display":        kindPlain,
	"flex":           kindPlain,
	"flexBasis":      kindLength,
	"flexDirection":  kindPlain,
	"flexGrow":       kindPlain,
	"flexShrink":     kindPlain,
	"flexWrap":       kindPlain,
	"gap":            kindLength,
	"rowGap":         kindLength,
	"columnGap":      kindLength,
	"justifyContent": kindPlain,
	"overflow":       kindPlain,
	"placeContent":   kindPlain,
	"position":       kindPlain,
	"zIndex":         kindPlain,

	// Sizing
	"width":         kindLength,
	"height":        kindLength,
	"minWidth":      kindLength,
	"minHeight":     kindLength,
	"maxWidth":      kindLength,
	"maxHeight":     kindLength,
	"blockSize":     kindLength,
	"inlineSize":    kindLength,
	"minBlockSize":  kindLength,
	"maxBlockSize":  kindLength,
	"minInlineSize": kindLength,
	"maxInlineSize": kindLength,

	// Position offsets
	"top":              kindLength,
	"right":            kindLength,
	"bottom":           kindLength,
	"left":             kindLength,
	"inset":            kindLength,
	"insetBlock":       kindLength,
	"insetBlockStart":  kindLength,
	"insetBlockEnd":    kindLength,
	"insetInline":      kindLength,
	"insetInlineStart": kindLength,
	"insetInlineEnd":   kindLength,

	// Margins
	"margin":            kindLength,
	"marginTop":         kindLength,
	"marginRight":       kindLength,
	"marginBottom":      kindLength,
	"marginLeft":        kindLength,
	"marginBlock":       kindLength,
	"marginBlockStart":  kindLength,
	"marginBlockEnd":    kindLength,
	"marginInline":      kindLength,
	"marginInlineStart": kindLength,
	"marginInlineEnd":   kindLength,

	// Padding
	"padding":            kindLength,
	"paddingTop":         kindLength,
	"paddingRight":       kindLength,
	"paddingBottom":      kindLength,
	"paddingLeft":        kindLength,
	"paddingBlock":       kindLength,
	"paddingBlockStart":  kindLength,
	"paddingBlockEnd":    kindLength,
	"paddingInline":      kindLength,
	"paddingInlineStart": kindLength,
	"paddingInlineEnd":   kindLength,

	// Borders
	"borderColor":             kindPlain,
	"borderTopColor":          kindPlain,
	"borderRightColor":        kindPlain,
	"borderBottomColor":       kindPlain,
	"borderLeftColor":         kindPlain,
	"borderBlockStartColor":   kindPlain,
	"borderBlockEndColor":     kindPlain,
	"borderInlineStartColor":  kindPlain,
	"borderInlineEndColor":    kindPlain,
	"borderStyle":             kindPlain,
	"borderWidth":             kindLength,
	"borderTopWidth":          kindLength,
	"borderRightWidth":        kindLength,
	"borderBottomWidth":       kindLength,
	"borderLeftWidth":         kindLength,
	"borderBlockStartWidth":   kindLength,
	"borderBlockEndWidth":     kindLength,
	"borderInlineStartWidth":  kindLength,
	"borderInlineEndWidth":    kindLength,
	"borderRadius":            kindLength,
	"borderTopLeftRadius":     kindLength,
	"borderTopRightRadius":    kindLength,
	"borderBottomLeftRadius":  kindLength,
	"borderBottomRightRadius": kindLength,
	"borderStartStartRadius":  kindLength,
	"borderStartEndRadius":    kindLength,
	"borderEndStartRadius":    kindLength,
	"borderEndEndRadius":      kindLength,
	"outlineColor":            kindPlain,
	"outlineOffset":           kindLength,
	"outlineStyle":            kindPlain,
	"outlineWidth":            kindLength,

	// Typography
	"color":               kindPlain,
	"fontFamily":          kindPlain,
	"fontSize":            kindLength,
	"fontStyle":           kindPlain,
	"fontVariant":         kindPlain,
	"fontWeight":          kindNumeric,
	"letterSpacing":       kindLength,
	"lineHeight":          kindNumeric,
	"textAlign":           kindPlain,
	"textDecorationColor": kindPlain,
	"textDecorationLine":  kindPlain,
	"textDecorationStyle": kindPlain,
	"textIndent":          kindLength,
	"textShadow":          kindShadow,
	"textTransform":       kindPlain,
	"userSelect":          kindPlain,
	"verticalAlign":       kindPlain,
	"lineClamp":           kindPlain,

	// Visual
	"backfaceVisibility": kindPlain,
	"backgroundColor":    kindPlain,
	"boxShadow":          kindShadow,
	"caretColor":         kindPlain,
	"cursor":             kindPlain,
	"filter":             kindPlain,
	"isolation":          kindPlain,
	"mixBlendMode":       kindPlain,
	"objectFit":          kindPlain,
	"opacity":            kindPlain,
	"pointerEvents":      kindPlain,
	"transform":          kindTransform,
	"transformOrigin":    kindPlain,
	"visibility":         kindPlain,

	// Animation and transitions
	"animationDelay":           kindTime,
	"animationDirection":       kindPlain,
	"animationDuration":        kindTime,
	"animationFillMode":        kindPlain,
	"animationIterationCount":  kindPlain,
	"animationName":            kindPlain,
	"animationPlayState":       kindPlain,
	"animationTimingFunction":  kindPlain,
	"transitionDelay":          kindTime,
	"transitionDuration":       kindTime,
	"transitionProperty":       kindPlain,
	"transitionTimingFunction": kindPlain,

	// Produced from ::placeholder pseudo-element
	"placeholderTextColor": kindPlain,
}

// singleValueProperties are shorthands which host accepts with exactly one
// value. Multi-value forms ("10px 20px") are rejected.
var singleValueProperties = map[string]bool{
	"margin":        true,
	"marginBlock":   true,
	"marginInline":  true,
	"padding":       true,
	"paddingBlock":  true,
	"paddingInline": true,
	"inset":         true,
	"insetBlock":    true,
	"insetInline":   true,
	"borderColor":   true,
	"borderRadius":  true,
	"borderStyle":   true,
	"borderWidth":   true,
	"gap":           true,
}

// flexContainerProperties only take effect with display: flex.
var flexContainerProperties = []string{
	"alignContent",
	"alignItems",
	"columnGap",
	"flexDirection",
	"flexWrap",
	"gap",
	"justifyContent",
	"rowGap",
}

// IsAllowed returns true if property may be used in style declarations.
func IsAllowed(name string) bool {
	_, ok := allowedProperties[name]
	return ok
}

// AllowedProperties returns sorted list of accepted property names.
func AllowedProperties() []string {
	props := make([]string, 0, len(allowedProperties))
	for name := range allowedProperties {
		props = append(props, name)
	}
	slices.Sort(props)
	return props
}

func isAnimationProperty(name string) bool {
	switch name {
	case "animationDelay", "animationDirection", "animationDuration", "animationFillMode",
		"animationIterationCount", "animationName", "animationPlayState", "animationTimingFunction":
		return true
	}
	return false
}

func isTransitionProperty(name string) bool {
	switch name {
	case "transitionDelay", "transitionDuration", "transitionProperty", "transitionTimingFunction":
		return true
	}
	return false
}
