package pricing

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatUSD renders an amount as whole US dollars with thousands separators,
// e.g. $89,208. NaN and infinities render as $0.
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0"
	}

	rounded := math.Round(amount)
	switch {
	case rounded == 0:
		return "$0"
	case rounded < 0:
		return "-$" + humanize.Comma(int64(-rounded))
	default:
		return "$" + humanize.Comma(int64(rounded))
	}
}

// FormatNumber renders a grouped number with at most three fraction digits,
// trailing zeros trimmed (4480 -> "4,480", 1234.5 -> "1,234.5").
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	s := humanize.FormatFloat("#,###.###", v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// FormatPercent renders a fraction such as 0.4 as "40%".
func FormatPercent(fraction float64) string {
	return FormatNumber(fraction*100) + "%"
}
