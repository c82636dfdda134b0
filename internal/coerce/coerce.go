// Package coerce turns loosely typed input, such as query parameters and
// form values, into booleans and numbers without failing.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var falsy = map[string]bool{
	"":          true,
	"0":         true,
	"false":     true,
	"no":        true,
	"off":       true,
	"null":      true,
	"undefined": true,
}

// CastToBoolean interprets v as a boolean. Strings are matched case
// insensitively against a small vocabulary; unknown non-empty strings are
// true.
func CastToBoolean(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case *bool:
		return x != nil && *x
	case string:
		return !falsy[strings.ToLower(strings.TrimSpace(x))]
	case *string:
		return x != nil && CastToBoolean(*x)
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	case fmt.Stringer:
		return CastToBoolean(x.String())
	}
	return true
}

// ParseNumber parses s as a finite float, returning fallback when it is
// empty, malformed, NaN or infinite.
func ParseNumber(s string, fallback float64) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}
