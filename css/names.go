package css

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameCache = newMemo[string](defaultMemoSize)

// CamelCase converts hyphenated CSS name into camel case form used by style
// declarations: "background-color" -> "backgroundColor".
func CamelCase(name string) string {
	return nameCache.get(name, camelCase)
}

func camelCase(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	// Caser keeps state and can not be shared between goroutines
	title := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	for i, part := range strings.Split(strings.Trim(name, "-"), "-") {
		if part == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(part)
			continue
		}
		sb.WriteString(title.String(part))
	}
	return sb.String()
}

// NormalizeVarName strips "--" prefix and camel cases the rest:
// "--primary-color" -> "primaryColor". Names already normalized are returned
// as is.
func NormalizeVarName(name string) string {
	return CamelCase(strings.TrimPrefix(strings.TrimSpace(name), "--"))
}
