// Package format renders numbers the way the audit narratives print them.
package format

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// Percent renders a fraction as a percentage with the given number of decimals,
// e.g. Percent(0.025316, 2) == "2.53%" and Percent(0.9, 0) == "90%".
func Percent(fraction float64, places int) string {
	if places < 0 {
		places = 0
	}
	return strconv.FormatFloat(fraction*100, 'f', places, 64) + "%"
}

// Count renders an integer with thousands separators, e.g. 1580 -> "1,580"
func Count(n int) string {
	return humanize.Comma(int64(n))
}
