package style

import (
	"stylebridge/css"
	"stylebridge/vars"
)

// Context is everything style resolution depends on at render time.
type Context struct {
	// active pseudo-states
	Hover  bool
	Focus  bool
	Active bool

	ColorScheme ColorScheme
	// Vars holds custom properties, own definitions layered over inherited ones
	Vars vars.Source

	FontScale         float64 // 0 is treated as 1
	InheritedFontSize float64 // 0 when unknown

	ViewportWidth  float64
	ViewportHeight float64
	ViewportScale  float64 // device pixel ratio, 0 is treated as 1

	PrefersReducedMotion bool
	WritingDirection     WritingDirection
}

func (c Context) lengths(fontSize float64) css.LengthContext {
	return css.LengthContext{
		ViewportWidth:     c.ViewportWidth,
		ViewportHeight:    c.ViewportHeight,
		FontScale:         c.FontScale,
		InheritedFontSize: fontSize,
	}
}

// media returns context for media query evaluation, dimensions in CSS px.
func (c Context) media() css.MediaContext {
	scale := c.ViewportScale
	if scale <= 0 {
		scale = 1
	}
	scheme := "light"
	if c.ColorScheme == ColorSchemeDark {
		scheme = "dark"
	}
	return css.MediaContext{
		ColorScheme:   scheme,
		ReducedMotion: c.PrefersReducedMotion,
		Width:         c.ViewportWidth / scale,
		Height:        c.ViewportHeight / scale,
	}
}

// rootFontSize is font size used when neither element nor its parent has one.
func (c Context) rootFontSize() float64 {
	scale := c.FontScale
	if scale <= 0 {
		scale = 1
	}
	return scale * css.DefaultFontSize
}

type emptySource struct{}

func (emptySource) Lookup(string) (css.Value, bool) { return nil, false }
