package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"stylebridge/animation"
	"stylebridge/style"
)

// yamlDocument is the layout of YAML stylesheet:
//
//	variables:
//	  --accent: "#3366ff"
//	themes:
//	  "@media (prefers-color-scheme: dark)":
//	    --accent: "#99bbff"
//	keyframes:
//	  fade:
//	    from: {opacity: 0}
//	    to: {opacity: 1}
//	styles:
//	  button:
//	    color: {default: "var(--accent)", ":hover": red}
//
// Sections are kept as nodes so that declaration order of variant objects
// survives decoding.
type yamlDocument struct {
	Variables yaml.Node `yaml:"variables"`
	Themes    yaml.Node `yaml:"themes"`
	Keyframes yaml.Node `yaml:"keyframes"`
	Styles    yaml.Node `yaml:"styles"`
}

func parseYAML(data []byte) (source, error) {
	src := newSource()

	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return src, nil
		}
		return src, err
	}

	var errs error
	errs = multierr.Append(errs, eachPair(&doc.Variables, func(name string, n *yaml.Node) error {
		v, err := plain(n)
		if err != nil {
			return err
		}
		src.define(name, v)
		return nil
	}))
	errs = multierr.Append(errs, eachPair(&doc.Themes, func(media string, theme *yaml.Node) error {
		return eachPair(theme, func(name string, n *yaml.Node) error {
			v, err := plain(n)
			if err != nil {
				return err
			}
			src.theme(name, media, v)
			return nil
		})
	}))
	errs = multierr.Append(errs, eachPair(&doc.Keyframes, func(name string, n *yaml.Node) error {
		kf, err := keyframes(n)
		if err != nil {
			return err
		}
		src.keyframes[name] = kf
		return nil
	}))
	errs = multierr.Append(errs, eachPair(&doc.Styles, func(name string, n *yaml.Node) error {
		decl, err := styleDeclaration(n)
		if err != nil {
			return err
		}
		src.styles[name] = decl
		return nil
	}))
	return src, errs
}

// eachPair calls fn for every key of mapping node. Absent section is
// empty, errors of individual entries are collected and iteration goes on.
func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	n = resolveAlias(n)
	if n.Kind == 0 || n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: mapping expected", n.Line)
	}
	var errs error
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if err := fn(key.Value, n.Content[i+1]); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %q: %w", key.Line, key.Value, err))
		}
	}
	return errs
}

func keyframes(n *yaml.Node) (animation.Keyframes, error) {
	kf := make(animation.Keyframes)
	err := eachPair(n, func(selector string, stop *yaml.Node) error {
		v, err := plain(stop)
		if err != nil {
			return err
		}
		values, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("keyframe values must be a mapping, got %T", v)
		}
		kf[selector] = values
		return nil
	})
	return kf, err
}

// styleDeclaration decodes style properties. Mapping values are variant objects
// and keep key order, pseudo-element blocks are plain maps.
func styleDeclaration(n *yaml.Node) (map[string]any, error) {
	decl := make(map[string]any)
	err := eachPair(n, func(prop string, value *yaml.Node) error {
		value = resolveAlias(value)
		if value.Kind != yaml.MappingNode || strings.HasPrefix(prop, "::") {
			v, err := plain(value)
			if err != nil {
				return err
			}
			decl[prop] = v
			return nil
		}
		var o style.Ordered
		if err := eachPair(value, func(key string, item *yaml.Node) error {
			v, err := plain(item)
			if err != nil {
				return err
			}
			o.Set(key, v)
			return nil
		}); err != nil {
			return err
		}
		decl[prop] = o
		return nil
	})
	return decl, err
}

// plain decodes node into generic Go values.
func plain(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		err := eachPair(n, func(key string, item *yaml.Node) error {
			v, err := plain(item)
			if err != nil {
				return err
			}
			m[key] = v
			return nil
		})
		return m, err
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := plain(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
