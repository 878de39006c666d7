package utils

import (
	"strconv"
	"strings"
)

// FormatServing renders "<qty> <unit>" with the quantity in its shortest
// form: 1 -> "1", 1.5 -> "1.5".
func FormatServing(qty float64, unit string) string {
	return strings.TrimSpace(strconv.FormatFloat(qty, 'f', -1, 64) + " " + unit)
}
