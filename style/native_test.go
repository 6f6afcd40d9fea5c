package style

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNativeLogicalProperties(t *testing.T) {
	tests := []struct {
		name     string
		decl     Declaration
		expected map[string]any
	}{
		{
			"inline start and end",
			Declaration{"marginInlineStart": 4, "paddingInlineEnd": 6},
			map[string]any{"marginStart": 4.0, "paddingEnd": 6.0},
		},
		{
			"block axis",
			Declaration{"marginBlock": 2, "paddingInline": 3},
			map[string]any{"marginVertical": 2.0, "paddingHorizontal": 3.0},
		},
		{
			"physical declared wins",
			Declaration{"marginTop": 5, "marginBlockStart": 10},
			map[string]any{"marginTop": 5.0},
		},
		{
			"inset expands",
			Declaration{"inset": 0, "top": 3},
			map[string]any{"top": 3.0, "right": 0.0, "bottom": 0.0, "left": 0.0},
		},
		{
			"start overwrites",
			Declaration{"insetInline": 1, "insetInlineStart": 2},
			map[string]any{"start": 2.0, "end": 1.0},
		},
		{
			"sizes",
			Declaration{"inlineSize": 100, "blockSize": 50, "maxInlineSize": 200},
			map[string]any{"width": 100.0, "height": 50.0, "maxWidth": 200.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolveDecl(t, Context{}, tt.decl)
			if !reflect.DeepEqual(res.Style, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, res.Style)
			}
		})
	}
}

func TestNativePolyfills(t *testing.T) {
	tests := []struct {
		name          string
		ctx           Context
		decl          Declaration
		expectedStyle map[string]any
		expectedProps map[string]any
	}{
		{
			"content box",
			Context{},
			Declaration{"boxSizing": "content-box", "width": 100, "height": 50, "padding": 10, "borderWidth": 2, "paddingTop": 0},
			map[string]any{"width": 124.0, "height": 64.0, "padding": 10.0, "borderWidth": 2.0, "paddingTop": 0.0},
			map[string]any{},
		},
		{
			"border box",
			Context{},
			Declaration{"boxSizing": "border-box", "width": 100, "padding": 10},
			map[string]any{"width": 100.0, "padding": 10.0},
			map[string]any{},
		},
		{
			"caret transparent",
			Context{},
			Declaration{"caretColor": "transparent"},
			map[string]any{},
			map[string]any{"caretHidden": true},
		},
		{
			"visibility hidden",
			Context{},
			Declaration{"visibility": "hidden", "opacity": 0.5},
			map[string]any{"opacity": 0.0},
			map[string]any{"accessibilityElementsHidden": true, "importantForAccessibility": "no-hide-descendants"},
		},
		{
			"line clamp",
			Context{},
			Declaration{"lineClamp": 2},
			map[string]any{},
			map[string]any{"numberOfLines": 2},
		},
		{
			"place content",
			Context{},
			Declaration{"placeContent": "start space-between"},
			map[string]any{"alignContent": "flex-start", "justifyContent": "space-between"},
			map[string]any{},
		},
		{
			"place content does not override longhand",
			Context{},
			Declaration{"placeContent": "center", "justifyContent": "flex-end"},
			map[string]any{"alignContent": "center", "justifyContent": "flex-end"},
			map[string]any{},
		},
		{
			"display block",
			Context{},
			Declaration{"display": "block"},
			map[string]any{"display": "flex"},
			map[string]any{},
		},
		{
			"position fixed",
			Context{},
			Declaration{"position": "fixed"},
			map[string]any{"position": "absolute"},
			map[string]any{},
		},
		{
			"object fit",
			Context{},
			Declaration{"objectFit": "fill"},
			map[string]any{"resizeMode": "stretch"},
			map[string]any{},
		},
		{
			"font variant",
			Context{},
			Declaration{"fontVariant": "small-caps tabular-nums"},
			map[string]any{"fontVariant": []any{"small-caps", "tabular-nums"}},
			map[string]any{},
		},
		{
			"text align start rtl",
			Context{WritingDirection: WritingDirectionRtl},
			Declaration{"textAlign": "start"},
			map[string]any{"textAlign": "right"},
			map[string]any{},
		},
		{
			"text align end ltr",
			Context{},
			Declaration{"textAlign": "end"},
			map[string]any{"textAlign": "right"},
			map[string]any{},
		},
		{
			"placeholder",
			Context{},
			Declaration{"::placeholder": map[string]any{"color": "gray"}},
			map[string]any{},
			map[string]any{"placeholderTextColor": "gray"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolveDecl(t, tt.ctx, tt.decl)
			if !reflect.DeepEqual(res.Style, tt.expectedStyle) {
				t.Errorf("expected style %v, got %v", tt.expectedStyle, res.Style)
			}
			if !reflect.DeepEqual(res.Props, tt.expectedProps) {
				t.Errorf("expected props %v, got %v", tt.expectedProps, res.Props)
			}
		})
	}
}

func TestNativeAnimationPropertiesStripped(t *testing.T) {
	res := resolveDecl(t, Context{}, Declaration{
		"animationName":      "fade",
		"animationDuration":  "1s",
		"transitionProperty": "opacity",
		"opacity":            1,
	})
	if !reflect.DeepEqual(res.Style, map[string]any{"opacity": 1.0}) {
		t.Errorf("unexpected style %v", res.Style)
	}
	expected := map[string]any{"animationName": "fade", "animationDuration": 1000.0}
	if !reflect.DeepEqual(res.Animation, expected) {
		t.Errorf("expected animation %v, got %v", expected, res.Animation)
	}
}

func TestDevChecks(t *testing.T) {
	tests := []struct {
		name    string
		decl    Declaration
		message string
		count   int
	}{
		{"flex property without display", Declaration{"justifyContent": "center", "gap": 4}, "Flex container property requires display: flex", 2},
		{"flex property with display", Declaration{"display": "flex", "justifyContent": "center"}, "Flex container property requires display: flex", 0},
		{"unsupported display", Declaration{"display": "grid"}, "Unsupported display value, using flex", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			r := NewResolver(zap.New(core), WithDevMode(true))
			r.Resolve(Context{}, r.Preprocessor().Declaration(tt.decl))
			if n := logs.FilterMessage(tt.message).FilterLevelExact(zapcore.WarnLevel).Len(); n != tt.count {
				t.Errorf("expected %d diagnostics, got %d", tt.count, n)
			}
		})
	}
}
