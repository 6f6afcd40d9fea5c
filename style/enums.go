package style

import (
	"errors"
	"fmt"
	"strings"
)

// Active color scheme.
type ColorScheme int

const (
	ColorSchemeLight ColorScheme = iota
	ColorSchemeDark
)

var ErrInvalidColorScheme = errors.New("not a valid ColorScheme")

var colorSchemeNames = map[ColorScheme]string{
	ColorSchemeLight: "light",
	ColorSchemeDark:  "dark",
}

func (x ColorScheme) String() string {
	if s, ok := colorSchemeNames[x]; ok {
		return s
	}
	return fmt.Sprintf("ColorScheme(%d)", x)
}

func (x ColorScheme) IsValid() bool {
	_, ok := colorSchemeNames[x]
	return ok
}

func ParseColorScheme(name string) (ColorScheme, error) {
	for k, v := range colorSchemeNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return ColorSchemeLight, fmt.Errorf("%s is %w", name, ErrInvalidColorScheme)
}

func (x ColorScheme) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *ColorScheme) UnmarshalText(text []byte) error {
	v, err := ParseColorScheme(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// Inline base direction, used to resolve logical start and end.
type WritingDirection int

const (
	WritingDirectionLtr WritingDirection = iota
	WritingDirectionRtl
)

var ErrInvalidWritingDirection = errors.New("not a valid WritingDirection")

var writingDirectionNames = map[WritingDirection]string{
	WritingDirectionLtr: "ltr",
	WritingDirectionRtl: "rtl",
}

func (x WritingDirection) String() string {
	if s, ok := writingDirectionNames[x]; ok {
		return s
	}
	return fmt.Sprintf("WritingDirection(%d)", x)
}

func (x WritingDirection) IsValid() bool {
	_, ok := writingDirectionNames[x]
	return ok
}

func ParseWritingDirection(name string) (WritingDirection, error) {
	for k, v := range writingDirectionNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return WritingDirectionLtr, fmt.Errorf("%s is %w", name, ErrInvalidWritingDirection)
}

func (x WritingDirection) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *WritingDirection) UnmarshalText(text []byte) error {
	v, err := ParseWritingDirection(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
