// Package common holds helpers shared by styling packages.
package common

import (
	"slices"

	"github.com/maruel/natural"
)

// CompareNatural orders strings naturally, "item2" goes before "item10".
func CompareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	default:
		return 1
	}
}

// SortedKeys returns map keys in natural order.
func SortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareNatural)
	return keys
}
