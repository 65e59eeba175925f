package geo

import (
	"strconv"
	"strings"
)

// formatFloat prints f in its shortest form, keeping at least one decimal
// so "88" reads as "88.0" in viewbox and bbox strings.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
