package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"stylebridge/style"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ViewportConfig struct {
		Width  float64 `yaml:"width" validate:"gte=0"`
		Height float64 `yaml:"height" validate:"gte=0"`
		Scale  float64 `yaml:"scale" validate:"gt=0"`
	}

	StylingConfig struct {
		Dev                  bool                   `yaml:"dev"`
		FontScale            float64                `yaml:"font_scale" validate:"gt=0"`
		BaseFontSize         float64                `yaml:"base_font_size" validate:"gte=0"`
		Viewport             ViewportConfig         `yaml:"viewport"`
		ColorScheme          style.ColorScheme      `yaml:"color_scheme" validate:"oneof=0 1"`
		WritingDirection     style.WritingDirection `yaml:"writing_direction" validate:"oneof=0 1"`
		PrefersReducedMotion bool                   `yaml:"prefers_reduced_motion"`
		MaxResolveDepth      int                    `yaml:"max_resolve_depth" validate:"min=1,max=1000"`
	}

	AnimationConfig struct {
		FrameRate       int  `yaml:"frame_rate" validate:"min=1,max=240"`
		UseNativeDriver bool `yaml:"use_native_driver"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Styling   StylingConfig   `yaml:"styling"`
		Animation AnimationConfig `yaml:"animation"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

// Context returns render context described by configuration.
func (conf *StylingConfig) Context() style.Context {
	return style.Context{
		ColorScheme:          conf.ColorScheme,
		FontScale:            conf.FontScale,
		InheritedFontSize:    conf.BaseFontSize,
		ViewportWidth:        conf.Viewport.Width,
		ViewportHeight:       conf.Viewport.Height,
		ViewportScale:        conf.Viewport.Scale,
		PrefersReducedMotion: conf.PrefersReducedMotion,
		WritingDirection:     conf.WritingDirection,
	}
}

// Options returns style preprocessor and resolver options.
func (conf *StylingConfig) Options() []style.Option {
	return []style.Option{
		style.WithDevMode(conf.Dev),
		style.WithMaxResolveDepth(conf.MaxResolveDepth),
	}
}

// checkConfig validates relations between fields tags cannot express.
func checkConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	vp := cfg.Styling.Viewport
	if (vp.Width > 0) != (vp.Height > 0) {
		sl.ReportError(vp.Height, "Styling.Viewport.Height", "height", "viewport_complete", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
