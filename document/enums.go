package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Stylesheet document format.
type Format int

const (
	FormatYAML Format = iota
	FormatCSS
)

var ErrInvalidFormat = errors.New("not a valid Format")

var formatNames = map[Format]string{
	FormatYAML: "yaml",
	FormatCSS:  "css",
}

func (x Format) String() string {
	if s, ok := formatNames[x]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", x)
}

func (x Format) IsValid() bool {
	_, ok := formatNames[x]
	return ok
}

func ParseFormat(name string) (Format, error) {
	for k, v := range formatNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return FormatYAML, fmt.Errorf("%s is %w", name, ErrInvalidFormat)
}

func (x Format) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// FormatFromPath selects document format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".css":
		return FormatCSS, nil
	}
	return FormatYAML, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}
