package css

import (
	"math"
	"strconv"
	"strings"
)

var timeCache = newMemo[float64](defaultMemoSize)

// ParseTime converts CSS time value to milliseconds: "150ms" -> 150,
// "1.5s" -> 1500. Anything else, including non-finite results, is 0.
func ParseTime(s string) float64 {
	return timeCache.get(s, parseTime)
}

func parseTime(s string) float64 {
	s = strings.TrimSpace(s)
	var (
		num   string
		scale float64
	)
	switch {
	case strings.HasSuffix(s, "ms"):
		num, scale = strings.TrimSuffix(s, "ms"), 1
	case strings.HasSuffix(s, "s"):
		num, scale = strings.TrimSuffix(s, "s"), 1000
	default:
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	v *= scale
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
