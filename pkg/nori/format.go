package nori

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the number of decimals parameter values are rounded to.
const Precision = 4

// Round rounds f to the given number of decimals. Rounding is decided on
// the exact binary value of f, with exact ties going to the even digit, so
// 0.12345 (stored slightly above the tie) rounds up to 0.1235.
func Round(f float64, decimals int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', decimals, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// FormatFloat returns the shortest round-trip representation of f with at
// least one fractional digit.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatRounded rounds f to decimals and formats it.
func FormatRounded(f float64, decimals int) string {
	return FormatFloat(Round(f, decimals))
}

// FormatColor formats the first three components, rounded to [Precision]
// decimals and joined with commas.
func FormatColor(c []float64) string {
	n := min(len(c), 3)
	parts := make([]string, n)
	for i := range n {
		parts[i] = FormatRounded(c[i], Precision)
	}
	return strings.Join(parts, ",")
}

// FormatList formats values rounded to decimals and joined with sep.
func FormatList(values []float64, decimals int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatRounded(v, decimals)
	}
	return strings.Join(parts, sep)
}
