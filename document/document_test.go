package document

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"stylebridge/animation"
	"stylebridge/style"
)

const cssSheet = `
:root {
  --accent: #3366ff;
  --gap: 8px;
}

@media (prefers-color-scheme: dark) {
  :root { --accent: #99bbff; }
}

@keyframes fade-in {
  from { opacity: 0; transform: translateY(20px); }
  to { opacity: 1; transform: translateY(0px); }
}

.button {
  color: var(--accent);
  padding: var(--gap);
  opacity: 0.5;
  animation-name: fade-in;
  animation-duration: 300ms;
}

.button:hover { color: red; }

@media (min-width: 600px) {
  .button { padding: 16px; }
}

.card > .title { color: blue; }

@font-face { font-family: Inter; }
`

const yamlSheet = `
variables:
  --accent: "#3366ff"
  --gap: 8px
themes:
  "@media (prefers-color-scheme: dark)":
    --accent: "#99bbff"
keyframes:
  fade-in:
    from: {opacity: 0, transform: "translateY(20px)"}
    to: {opacity: 1, transform: "translateY(0px)"}
styles:
  button:
    color:
      default: var(--accent)
      ":hover": red
    padding:
      default: var(--gap)
      "@media (min-width: 600px)": 16
    opacity: 0.5
    animationName: fade-in
    animationDuration: 300ms
  input:
    "::placeholder":
      color: gray
`

type env struct {
	loader    *Loader
	resolver  *style.Resolver
	keyframes *animation.Registry
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := zaptest.NewLogger(t)
	r := style.NewResolver(log)
	kf := animation.NewRegistry(log)
	return &env{loader: NewLoader(log, r.Preprocessor(), kf), resolver: r, keyframes: kf}
}

func TestLoadResolves(t *testing.T) {
	tests := []struct {
		name           string
		data           string
		format         Format
		expectedErrors int
	}{
		{"css", cssSheet, FormatCSS, 2},
		{"yaml", yamlSheet, FormatYAML, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			doc, err := e.loader.Load("sheet."+tt.name, []byte(tt.data), tt.format)
			if doc == nil {
				t.Fatalf("document expected, got error %v", err)
			}
			if n := len(multierr.Errors(err)); n != tt.expectedErrors {
				t.Fatalf("expected %d errors, got %d: %v", tt.expectedErrors, n, err)
			}

			button, ok := doc.Sheet.Style("button")
			if !ok {
				t.Fatal("button style expected")
			}

			cases := []struct {
				name            string
				ctx             style.Context
				expectedColor   string
				expectedPadding float64
			}{
				{"light", style.Context{}, "#3366ff", 8},
				{"dark", style.Context{ColorScheme: style.ColorSchemeDark}, "#99bbff", 8},
				{"hover", style.Context{Hover: true}, "red", 8},
				{"wide", style.Context{ViewportWidth: 800}, "#3366ff", 16},
			}
			for _, c := range cases {
				c.ctx.Vars = doc.Vars
				res := e.resolver.Resolve(c.ctx, button)
				if res.Style["color"] != c.expectedColor {
					t.Errorf("%s: expected color %q, got %v", c.name, c.expectedColor, res.Style["color"])
				}
				if res.Style["padding"] != c.expectedPadding {
					t.Errorf("%s: expected padding %v, got %v", c.name, c.expectedPadding, res.Style["padding"])
				}
				if res.Style["opacity"] != 0.5 {
					t.Errorf("%s: expected opacity 0.5, got %v", c.name, res.Style["opacity"])
				}
			}

			res := e.resolver.Resolve(style.Context{Vars: doc.Vars}, button)
			id := doc.Keyframes["fade-in"]
			if id == "" || res.Animation["animationName"] != id {
				t.Errorf("animation must reference registered keyframes %q, got %v", id, res.Animation["animationName"])
			}
			if _, ok := e.keyframes.Resolve(id); !ok {
				t.Errorf("keyframes %q not registered", id)
			}
			if res.Animation["animationDuration"] != 300.0 {
				t.Errorf("expected duration 300, got %v", res.Animation["animationDuration"])
			}
		})
	}
}

func TestLoadCSSReportsUnsupportedRules(t *testing.T) {
	e := newEnv(t)
	_, err := e.loader.Load("sheet.css", []byte(cssSheet), FormatCSS)
	for _, item := range multierr.Errors(err) {
		if !errors.Is(item, ErrUnsupportedRule) {
			t.Errorf("unexpected error %v", item)
		}
	}
}

func TestLoadPlaceholder(t *testing.T) {
	e := newEnv(t)
	doc, err := e.loader.Load("sheet.yaml", []byte(yamlSheet), FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input, ok := doc.Sheet.Style("input")
	if !ok {
		t.Fatal("input style expected")
	}
	res := e.resolver.Resolve(style.Context{}, input)
	if res.Props["placeholderTextColor"] != "gray" {
		t.Errorf("expected placeholder color, got %v", res.Props)
	}
}

func TestLoadUnknownKeyframes(t *testing.T) {
	e := newEnv(t)
	doc, err := e.loader.Load("sheet.yaml", []byte(`
styles:
  box:
    animationName: missing
`), FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	box, _ := doc.Sheet.Style("box")
	res := e.resolver.Resolve(style.Context{}, box)
	if res.Animation["animationName"] != "missing" {
		t.Errorf("unknown keyframes must be kept as is, got %v", res.Animation["animationName"])
	}
}

func TestLoadSharesKeyframeRegistry(t *testing.T) {
	e := newEnv(t)
	first, _ := e.loader.Load("a.yaml", []byte(yamlSheet), FormatYAML)
	second, _ := e.loader.Load("b.css", []byte(cssSheet), FormatCSS)
	if first.Keyframes["fade-in"] == second.Keyframes["fade-in"] {
		t.Errorf("each document must register own keyframes, got %q twice", first.Keyframes["fade-in"])
	}
	if ids := e.keyframes.IDs(); len(ids) != 2 {
		t.Errorf("expected 2 registrations, got %v", ids)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	css := filepath.Join(dir, "theme.css")
	if err := os.WriteFile(css, []byte(cssSheet), 0o644); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "theme.txt")
	if err := os.WriteFile(txt, []byte(cssSheet), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newEnv(t)
	doc, err := e.loader.LoadFile(css)
	if doc == nil {
		t.Fatalf("document expected, got %v", err)
	}
	if doc.Name != "theme.css" {
		t.Errorf("unexpected document name %q", doc.Name)
	}
	if got := doc.KeyframeNames(); len(got) != 1 || got[0] != "fade-in" {
		t.Errorf("unexpected keyframes %v", got)
	}

	if _, err := e.loader.LoadFile(txt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected unsupported format, got %v", err)
	}
	if _, err := e.loader.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}

func TestLoadBrokenYAML(t *testing.T) {
	e := newEnv(t)
	if doc, err := e.loader.Load("bad.yaml", []byte("styles: [unterminated"), FormatYAML); doc != nil || err == nil {
		t.Errorf("expected parse failure, got %v / %v", doc, err)
	}
	doc, err := e.loader.Load("empty.yaml", nil, FormatYAML)
	if err != nil || doc == nil || len(doc.Sheet.Names()) != 0 {
		t.Errorf("empty document expected, got %v / %v", doc, err)
	}
}

func writeBundle(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadArchive(t *testing.T) {
	path := writeBundle(t, map[string]string{
		"theme.css":        cssSheet,
		"themes/dark.yaml": yamlSheet,
		"themes/bad.yml":   "styles: [unterminated",
		"notes.txt":        "ignored",
	})
	if !IsArchive(path) || IsArchive("theme.css") {
		t.Fatal("unexpected archive detection")
	}

	e := newEnv(t)
	docs, err := e.loader.LoadArchive(path)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d (%v)", len(docs), err)
	}
	if docs[0].Name != "theme.css" || docs[1].Name != "themes/dark.yaml" {
		t.Errorf("unexpected documents %q %q", docs[0].Name, docs[1].Name)
	}
	// two unsupported rules in css and broken yaml
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("expected 3 problems, got %d: %v", n, err)
	}
	if n := len(e.keyframes.IDs()); n != 2 {
		t.Errorf("keyframes of both documents must be registered, got %d", n)
	}
}

func TestLoadArchive_Empty(t *testing.T) {
	e := newEnv(t)
	if _, err := e.loader.LoadArchive(writeBundle(t, map[string]string{"notes.txt": "ignored"})); err == nil {
		t.Error("expected error for bundle without documents")
	}
	if _, err := e.loader.LoadArchive(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Error("expected error for missing bundle")
	}
}

func TestDocumentDump(t *testing.T) {
	e := newEnv(t)
	doc, _ := e.loader.Load("theme.css", []byte(cssSheet), FormatCSS)
	if doc == nil {
		t.Fatal("document expected")
	}
	dump := doc.Dump()
	for _, part := range []string{
		"document: theme.css\n",
		"  variables: 2\n",
		"    accent: variants(1)\n",
		"    fade-in -> " + doc.Keyframes["fade-in"] + "\n",
		"    button\n",
		"      color: variants(1)\n",
	} {
		if !strings.Contains(dump, part) {
			t.Errorf("missing %q in dump:\n%s", part, dump)
		}
	}
}
