package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"stylebridge/style"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	s := cfg.Styling
	if s.Dev {
		t.Error("dev mode must be off by default")
	}
	if s.FontScale != 1 || s.Viewport.Scale != 1 {
		t.Errorf("unexpected scales: font %v viewport %v", s.FontScale, s.Viewport.Scale)
	}
	if s.ColorScheme != style.ColorSchemeLight || s.WritingDirection != style.WritingDirectionLtr {
		t.Errorf("unexpected defaults %v %v", s.ColorScheme, s.WritingDirection)
	}
	if s.MaxResolveDepth != 50 {
		t.Errorf("MaxResolveDepth = %d, want 50", s.MaxResolveDepth)
	}
	if cfg.Animation.FrameRate != 60 {
		t.Errorf("FrameRate = %d, want 60", cfg.Animation.FrameRate)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("unexpected logging levels %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
styling:
  dev: true
  font_scale: 1.5
  viewport:
    width: 1024
    height: 768
    scale: 2
  color_scheme: dark
  writing_direction: rtl
  prefers_reduced_motion: true
animation:
  frame_rate: 30
  use_native_driver: true
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	s := cfg.Styling
	if !s.Dev || s.FontScale != 1.5 {
		t.Errorf("unexpected styling %+v", s)
	}
	if s.ColorScheme != style.ColorSchemeDark || s.WritingDirection != style.WritingDirectionRtl {
		t.Errorf("unexpected enums %v %v", s.ColorScheme, s.WritingDirection)
	}
	if cfg.Animation.FrameRate != 30 || !cfg.Animation.UseNativeDriver {
		t.Errorf("unexpected animation %+v", cfg.Animation)
	}
	// values absent from the file come from the template
	if s.MaxResolveDepth != 50 {
		t.Errorf("MaxResolveDepth = %d, want template default 50", s.MaxResolveDepth)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestStylingConfig_Context(t *testing.T) {
	conf := StylingConfig{
		FontScale:            1.25,
		BaseFontSize:         14,
		Viewport:             ViewportConfig{Width: 800, Height: 600, Scale: 2},
		ColorScheme:          style.ColorSchemeDark,
		WritingDirection:     style.WritingDirectionRtl,
		PrefersReducedMotion: true,
	}
	ctx := conf.Context()
	if ctx.FontScale != 1.25 || ctx.InheritedFontSize != 14 {
		t.Errorf("unexpected fonts %v %v", ctx.FontScale, ctx.InheritedFontSize)
	}
	if ctx.ViewportWidth != 800 || ctx.ViewportHeight != 600 || ctx.ViewportScale != 2 {
		t.Errorf("unexpected viewport %+v", ctx)
	}
	if ctx.ColorScheme != style.ColorSchemeDark || ctx.WritingDirection != style.WritingDirectionRtl || !ctx.PrefersReducedMotion {
		t.Errorf("unexpected context %+v", ctx)
	}
	if ctx.Vars != nil || ctx.Hover {
		t.Error("configuration must not set element state")
	}
	if n := len(conf.Options()); n != 2 {
		t.Errorf("expected 2 style options, got %d", n)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nstyling:\n  dev: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"wrong version", "version: 2\n"},
		{"bad color scheme", "version: 1\nstyling:\n  color_scheme: sepia\n"},
		{"frame rate out of range", "version: 1\nanimation:\n  frame_rate: 0\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
		{"incomplete viewport", "version: 1\nstyling:\n  viewport:\n    width: 800\n    height: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}
	if strings.Contains(string(data), "{{") {
		t.Error("Prepare() left template expressions unexpanded")
	}

	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Styling.ColorScheme = style.ColorSchemeDark

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "color_scheme: dark") {
		t.Errorf("enums must be dumped by name:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Version != cfg.Version || cfg2.Styling.ColorScheme != style.ColorSchemeDark {
		t.Errorf("mismatch after dump/load: %+v", cfg2.Styling)
	}
}

func TestCleanEntryName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"theme.css-button", "theme.css-button"},
		{"themes/dark.yaml-card", "themesdark.yaml-card"},
		{"", "_"},
		{"/", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanEntryName(tt.in); got != tt.want {
				t.Errorf("CleanEntryName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnableColorOutput_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if EnableColorOutput(os.Stdout) {
		t.Error("colors must be disabled when NO_COLOR is set")
	}
}
