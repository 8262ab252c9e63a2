// Package pricing holds the input normalization and currency formatting shared by
// the estimator engines in its subpackages.
package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Clamp maps NaN, infinities and negative values to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseNumber converts a raw form entry into a non-negative number.
// Empty or non-numeric entries become 0. Parsing is strict: a numeric prefix
// is not enough, so "12abc" is 0, not 12.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return Clamp(value)
}

// ParseCount is ParseNumber truncated to a whole headcount.
func ParseCount(raw string) int {
	return ToCount(ParseNumber(raw))
}

// maxCount keeps absurd entries from overflowing int conversions.
const maxCount = 1 << 31

// ToCount truncates a number to a non-negative whole count.
func ToCount(v float64) int {
	v = Clamp(v)
	if v > maxCount {
		v = maxCount
	}
	return int(v)
}

// Number is a JSON number that tolerates what a form control can send:
// numbers, numeric strings, empty strings and null. Anything that is not a
// usable non-negative number decodes as 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(ParseNumber(s))
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*n = 0
		return nil
	}
	*n = Number(Clamp(v))
	return nil
}

// Float returns the clamped value.
func (n Number) Float() float64 {
	return Clamp(float64(n))
}

// Count returns the value truncated to a whole count.
func (n Number) Count() int {
	return ToCount(float64(n))
}
