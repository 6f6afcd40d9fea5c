// Package inspect implements command line actions which load stylesheet
// documents and show what styling engine makes of them.
package inspect

import (
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"stylebridge/common"
	"stylebridge/style"
)

// ErrNoAnimation is returned when sampled style does not name keyframes.
var ErrNoAnimation = errors.New("style has no animation")

// ContextFlags returns flags overriding render context described by
// configuration.
func ContextFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "scheme", Usage: "color `SCHEME` (" + style.ColorSchemeLight.String() + " or " + style.ColorSchemeDark.String() + ")"},
		&cli.StringFlag{Name: "direction", Usage: "writing `DIRECTION` (" + style.WritingDirectionLtr.String() + " or " + style.WritingDirectionRtl.String() + ")"},
		&cli.BoolFlag{Name: "hover", Usage: "element is hovered"},
		&cli.BoolFlag{Name: "focus", Usage: "element is focused"},
		&cli.BoolFlag{Name: "active", Usage: "element is pressed"},
		&cli.FloatFlag{Name: "width", Usage: "viewport `WIDTH` in pixels"},
		&cli.FloatFlag{Name: "height", Usage: "viewport `HEIGHT` in pixels"},
		&cli.FloatFlag{Name: "font-scale", Usage: "user font `SCALE`"},
		&cli.BoolFlag{Name: "reduced-motion", Usage: "user prefers reduced motion"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write result to `FILE` instead of STDOUT"},
	}
}

// renderContext applies command line overrides to base context.
func renderContext(base style.Context, cmd *cli.Command) (style.Context, error) {
	ctx := base
	if cmd.IsSet("scheme") {
		cs, err := style.ParseColorScheme(cmd.String("scheme"))
		if err != nil {
			return ctx, fmt.Errorf("unable to use color scheme: %w", err)
		}
		ctx.ColorScheme = cs
	}
	if cmd.IsSet("direction") {
		wd, err := style.ParseWritingDirection(cmd.String("direction"))
		if err != nil {
			return ctx, fmt.Errorf("unable to use writing direction: %w", err)
		}
		ctx.WritingDirection = wd
	}
	ctx.Hover, ctx.Focus, ctx.Active = cmd.Bool("hover"), cmd.Bool("focus"), cmd.Bool("active")

	if cmd.IsSet("width") {
		ctx.ViewportWidth = cmd.Float("width")
	}
	if cmd.IsSet("height") {
		ctx.ViewportHeight = cmd.Float("height")
	}
	if cmd.IsSet("font-scale") {
		if ctx.FontScale = cmd.Float("font-scale"); ctx.FontScale <= 0 {
			return ctx, fmt.Errorf("font scale must be positive, got %v", ctx.FontScale)
		}
	}
	if cmd.IsSet("reduced-motion") {
		ctx.PrefersReducedMotion = cmd.Bool("reduced-motion")
	}
	return ctx, nil
}

// writeOutput writes data to named file or to STDOUT when name is empty.
func writeOutput(name string, data []byte, log *zap.Logger) error {
	if len(name) == 0 {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write result to '%s': %w", name, err)
	}
	log.Info("Result written", zap.String("file", name))
	return nil
}

// node converts value to YAML node keeping map keys in natural order.
func node(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range common.SortedKeys(t) {
			val, err := node(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range t {
			val, err := node(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func marshal(v any) ([]byte, error) {
	n, err := node(v)
	if err != nil {
		return nil, fmt.Errorf("unable to encode result: %w", err)
	}
	return yaml.Marshal(n)
}
