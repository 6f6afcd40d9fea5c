//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// CleanEntryName turns arbitrary name (style or document name) into a
// single file name element, characters not allowed in file names are
// dropped.
func CleanEntryName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if strings.ContainsRune(string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		out = "_"
	}
	return out
}

// EnableColorOutput checks if colorized output is possible and wanted.
func EnableColorOutput(stream *os.File) bool {
	if noColor() || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(stream.Fd()))
}
