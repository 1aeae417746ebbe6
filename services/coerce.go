package services

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// CoerceNumber converts user input into a number. Anything that does not parse
// (empty strings, text, nil) becomes 0 so typing is never blocked.
func CoerceNumber(value any) float64 {
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	n, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// CoerceString converts user input into a string field value.
func CoerceString(value any) string {
	if value == nil {
		return ""
	}
	return cast.ToString(value)
}
