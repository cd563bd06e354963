package exporter

import (
	"fmt"
	"strconv"
)

// formatQuantity formats a produced quantity for CSV output. Quantities are
// counts and almost always whole; a fractional value keeps its precision.
func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return strconv.FormatInt(int64(q), 10)
	}
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
