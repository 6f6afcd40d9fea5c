package style

import (
	"go.uber.org/zap"
)

// check reports style invariants host layout relies on. Only runs in
// developer mode.
func (r *Resolver) check(resolved map[string]any) {
	display, _ := resolved["display"].(string)
	if display == "flex" {
		return
	}
	for _, name := range flexContainerProperties {
		if _, ok := resolved[name]; ok {
			r.d.warn("Flex container property requires display: flex",
				zap.String("property", name), zap.String("display", display))
		}
	}
}
