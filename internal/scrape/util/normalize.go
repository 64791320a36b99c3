package util

import (
	"math"
	"strconv"
	"strings"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Uncomment removes HTML comment delimiters. Sports-reference pages ship most
// secondary tables inside comments and reveal them with script.
func Uncomment(html string) string {
	html = strings.ReplaceAll(html, "<!--", "")
	return strings.ReplaceAll(html, "-->", "")
}

// ParseNumber reads a numeric cell. Blank, "--" and text cells are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
