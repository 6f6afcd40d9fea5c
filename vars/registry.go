// Package vars keeps custom property definitions and resolves var()
// references against them.
package vars

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylebridge/common"
	"stylebridge/css"
)

// ErrRedefined is returned when custom property is defined twice in the
// same registry layer. Use Layer to override values.
var ErrRedefined = errors.New("custom property already defined")

// ErrInvalidValue is returned for values which could not be used as custom
// property value.
var ErrInvalidValue = errors.New("invalid custom property value")

// Source is anything custom properties could be looked up in.
type Source interface {
	Lookup(name string) (css.Value, bool)
}

// Registry maps normalized custom property names to their values. Values
// are literals (String, Number), Unparsed values referencing other
// properties or themed Variants. Registry is safe for concurrent use,
// entries are never changed once defined; theme overrides produce a new
// registry layered over the base one.
type Registry struct {
	log    *zap.Logger
	parent *Registry

	mu     sync.RWMutex
	values map[string]css.Value
}

// NewRegistry returns empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:    log.Named("vars"),
		values: make(map[string]css.Value),
	}
}

// Define adds custom property to the registry. Name may be given as
// "--primary-color" or already normalized "primaryColor". Value may be a Go
// literal, css.Value or a theme map with "default" and media query keys.
func (r *Registry) Define(name string, value any) error {
	key := css.NormalizeVarName(name)
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidValue)
	}
	v, err := convert(value)
	if err != nil {
		return fmt.Errorf("custom property %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.values[key]; exists {
		return fmt.Errorf("custom property %q: %w", name, ErrRedefined)
	}
	r.values[key] = v
	r.log.Debug("Custom property defined", zap.String("name", key), zap.String("value", describe(v)))
	return nil
}

// DefineAll defines every entry of the map in natural name order. It keeps
// going after errors and returns all of them combined.
func (r *Registry) DefineAll(values map[string]any) (err error) {
	for _, name := range common.SortedKeys(values) {
		err = multierr.Append(err, r.Define(name, values[name]))
	}
	return err
}

// Lookup returns value of the property searching own definitions first and
// then inherited ones.
func (r *Registry) Lookup(name string) (css.Value, bool) {
	key := css.NormalizeVarName(name)
	for reg := r; reg != nil; reg = reg.parent {
		reg.mu.RLock()
		v, ok := reg.values[key]
		reg.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Layer returns new registry with overrides defined on top of r. The
// receiver is not changed.
func (r *Registry) Layer(overrides map[string]any) (*Registry, error) {
	layer := &Registry{
		log:    r.log,
		parent: r,
		values: make(map[string]css.Value, len(overrides)),
	}
	if err := layer.DefineAll(overrides); err != nil {
		return nil, err
	}
	return layer, nil
}

// Parent returns inherited registry, nil for the root one.
func (r *Registry) Parent() *Registry {
	return r.parent
}

// Names returns every visible property name in natural order.
func (r *Registry) Names() []string {
	seen := make(map[string]struct{})
	for reg := r; reg != nil; reg = reg.parent {
		reg.mu.RLock()
		for k := range reg.values {
			seen[k] = struct{}{}
		}
		reg.mu.RUnlock()
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	slices.SortFunc(names, common.CompareNatural)
	return names
}

// Len returns number of properties defined in this layer only.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// convert turns user supplied definition into registry value.
func convert(value any) (css.Value, error) {
	switch t := value.(type) {
	case css.Variants:
		if t.Default == nil {
			return nil, fmt.Errorf("%w: theme without default", ErrInvalidValue)
		}
		return t, nil
	case map[string]any:
		return themed(t)
	case string:
		if css.HasVar(t) {
			u, ok := css.ParseUnparsed(t)
			if !ok {
				return nil, fmt.Errorf("%w: malformed var() in %q", ErrInvalidValue, t)
			}
			return u, nil
		}
		return css.String(t), nil
	}
	if v := css.Literal(value); v != nil {
		switch v.(type) {
		case css.String, css.Number, css.Bool, css.Unparsed, css.Length:
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, value)
}

// themed converts {default: x, "@media (prefers-color-scheme: dark)": y}.
// Only default and media query keys are allowed.
func themed(m map[string]any) (css.Value, error) {
	var out css.Variants
	for _, key := range common.SortedKeys(m) {
		v, err := convert(m[key])
		if err != nil {
			return nil, fmt.Errorf("theme key %q: %w", key, err)
		}
		if _, nested := v.(css.Variants); nested {
			return nil, fmt.Errorf("%w: nested theme under %q", ErrInvalidValue, key)
		}
		switch {
		case key == css.KeyDefault:
			out.Default = v
		case strings.HasPrefix(key, "@media"):
			out.Cases = append(out.Cases, css.Case{Key: css.CanonicalMediaKey(key), Value: v})
		default:
			return nil, fmt.Errorf("%w: unexpected theme key %q", ErrInvalidValue, key)
		}
	}
	if out.Default == nil {
		return nil, fmt.Errorf("%w: theme without default", ErrInvalidValue)
	}
	return out, nil
}

func describe(v css.Value) string {
	switch t := v.(type) {
	case css.Variants:
		return "theme(" + describe(t.Default) + ")"
	default:
		return css.Text(v)
	}
}
