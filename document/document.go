// Package document loads stylesheet documents, YAML or CSS, into custom
// property registry, keyframe registrations and compiled style sheet.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylebridge/animation"
	"stylebridge/archive"
	"stylebridge/common"
	"stylebridge/css"
	"stylebridge/style"
	"stylebridge/utils/debug"
	"stylebridge/vars"
)

var (
	// ErrUnsupportedFormat is returned for documents which are neither YAML nor CSS.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrUnsupportedRule is reported for CSS rules stylesheet cannot express:
	// element, descendant and attribute selectors, unknown pseudo-classes,
	// nested at-rules.
	ErrUnsupportedRule = errors.New("unsupported rule")
)

// Document is a loaded stylesheet.
type Document struct {
	Name string
	// Vars holds custom properties defined by the document.
	Vars *vars.Registry
	// Keyframes maps keyframe names used in the document to registry ids.
	// Styles already reference ids.
	Keyframes map[string]string
	Sheet     *style.Sheet
}

// KeyframeNames returns declared keyframe names in natural order.
func (d *Document) KeyframeNames() []string {
	return common.SortedKeys(d.Keyframes)
}

// Dump returns human readable tree of document content: variables,
// keyframe registrations and preprocessed styles.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "document: %s", d.Name)

	names := d.Vars.Names()
	tw.Line(1, "variables: %d", len(names))
	for _, name := range names {
		v, _ := d.Vars.Lookup(name)
		tw.Value(2, name, v)
	}

	tw.Line(1, "keyframes: %d", len(d.Keyframes))
	for _, name := range d.KeyframeNames() {
		tw.Line(2, "%s -> %s", name, d.Keyframes[name])
	}

	names = d.Sheet.Names()
	tw.Line(1, "styles: %d", len(names))
	for _, name := range names {
		st, _ := d.Sheet.Style(name)
		tw.Line(2, "%s", name)
		for _, prop := range common.SortedKeys(st) {
			tw.Value(3, prop, st[prop])
		}
	}
	return tw.String()
}

// Loader loads documents. Keyframes of every loaded document are registered
// in the same registry.
type Loader struct {
	log       *zap.Logger
	pre       *style.Preprocessor
	keyframes *animation.Registry
}

// NewLoader creates document loader.
func NewLoader(log *zap.Logger, pre *style.Preprocessor, keyframes *animation.Registry) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		log:       log.Named("document"),
		pre:       pre,
		keyframes: keyframes,
	}
}

// LoadFile loads document, format is selected by file extension.
func (l *Loader) LoadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	return l.Load(filepath.Base(path), data, format)
}

// IsArchive reports whether path names document bundle.
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// LoadArchive loads every stylesheet document packed in zip archive,
// entries of other formats are ignored. Documents are named by their path
// inside the archive and returned in natural order of names. Problems with
// individual documents are returned combined with loaded documents.
func (l *Loader) LoadArchive(path string) ([]*Document, error) {
	var (
		docs []*Document
		errs error
	)
	supported := func(name string) bool {
		_, err := FormatFromPath(name)
		return err == nil
	}
	err := archive.Walk(path, supported, func(name string, data []byte) error {
		format, _ := FormatFromPath(name)
		doc, err := l.Load(name, data, format)
		errs = multierr.Append(errs, err)
		if doc != nil {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read document bundle: %w", err)
	}
	if len(docs) == 0 {
		return nil, multierr.Append(fmt.Errorf("no stylesheet documents found in %s", filepath.Base(path)), errs)
	}
	l.log.Debug("Bundle loaded", zap.String("bundle", filepath.Base(path)), zap.Int("documents", len(docs)))
	return docs, errs
}

// Load parses document data. Problems with individual entries do not stop
// loading: they are returned combined in error together with the usable
// document. Nil document is only returned when data could not be parsed at
// all.
func (l *Loader) Load(name string, data []byte, format Format) (*Document, error) {
	var (
		src source
		err error
	)
	switch format {
	case FormatYAML:
		src, err = parseYAML(data)
	case FormatCSS:
		src, err = parseCSS(l.log, name, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if src.empty() && err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", name, err)
	}

	doc, berr := l.build(name, src)
	err = multierr.Append(err, berr)
	for _, e := range multierr.Errors(err) {
		l.log.Warn("Stylesheet problem", zap.String("document", name), zap.Error(e))
	}
	l.log.Debug("Stylesheet loaded",
		zap.String("document", name),
		zap.Int("variables", doc.Vars.Len()),
		zap.Int("keyframes", len(doc.Keyframes)),
		zap.Int("styles", len(doc.Sheet.Names())))
	return doc, err
}

// source is format independent document content.
type source struct {
	// vars values are literals or theme maps with "default" and media keys
	vars      map[string]any
	keyframes map[string]animation.Keyframes
	styles    map[string]map[string]any
}

func newSource() source {
	return source{
		vars:      make(map[string]any),
		keyframes: make(map[string]animation.Keyframes),
		styles:    make(map[string]map[string]any),
	}
}

func (s source) empty() bool {
	return len(s.vars) == 0 && len(s.keyframes) == 0 && len(s.styles) == 0
}

// define sets default value of custom property.
func (s source) define(name string, value any) {
	if cur, ok := s.vars[name].(map[string]any); ok {
		cur[css.KeyDefault] = value
		return
	}
	s.vars[name] = value
}

// theme adds media override for custom property.
func (s source) theme(name, media string, value any) {
	switch cur := s.vars[name].(type) {
	case map[string]any:
		cur[media] = value
	case nil:
		s.vars[name] = map[string]any{media: value}
	default:
		s.vars[name] = map[string]any{css.KeyDefault: cur, media: value}
	}
}

func (l *Loader) build(name string, src source) (*Document, error) {
	var errs error

	reg := vars.NewRegistry(l.log)
	errs = multierr.Append(errs, reg.DefineAll(src.vars))

	ids := make(map[string]string, len(src.keyframes))
	for _, kf := range common.SortedKeys(src.keyframes) {
		id, err := l.keyframes.Register(src.keyframes[kf])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("keyframes %q: %w", kf, err))
			continue
		}
		ids[kf] = id
	}

	defs := make(map[string]any, len(src.styles))
	for _, sn := range common.SortedKeys(src.styles) {
		decl := src.styles[sn]
		if v, ok := decl["animationName"]; ok {
			decl["animationName"] = l.keyframeID(ids, sn, v)
		}
		defs[sn] = decl
	}

	return &Document{
		Name:      name,
		Vars:      reg,
		Keyframes: ids,
		Sheet:     l.pre.Create(defs),
	}, errs
}

// keyframeID replaces keyframe names with registered ids, variants are
// rewritten value by value.
func (l *Loader) keyframeID(ids map[string]string, styleName string, v any) any {
	switch t := v.(type) {
	case string:
		name := strings.TrimSpace(t)
		if name == "" || name == "none" {
			return t
		}
		if id, ok := ids[name]; ok {
			return id
		}
		l.log.Warn("Unknown keyframes referenced", zap.String("style", styleName), zap.String("keyframes", name))
		return t
	case style.Ordered:
		out := style.Ordered{Keys: slices.Clone(t.Keys), Values: make([]any, len(t.Values))}
		for i, item := range t.Values {
			out.Values[i] = l.keyframeID(ids, styleName, item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = l.keyframeID(ids, styleName, item)
		}
		return out
	}
	return v
}
