package util

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// FormatNumber writes v as %.3e right justified in width columns.
func FormatNumber(v float64, width int) string {
	return fmt.Sprintf("%*.3e", width, v)
}

// Justify pads s on the left to width columns.
func Justify(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

var engineeringPrefixes = []struct {
	scale  float64
	prefix string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "u"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// FormatValueFactor scales value to the largest prefix not exceeding it,
// e.g. 4.7e-9 F -> "4.700 nF".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	if absValue == 0 {
		return fmt.Sprintf("%.3f %s", value, unit)
	}
	for _, p := range engineeringPrefixes {
		if absValue >= p.scale {
			return fmt.Sprintf("%.3f %s%s", value/p.scale, p.prefix, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", value, unit)
}

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e9:
		return fmt.Sprintf("%7.3f GHz", freq/1e9)
	case freq >= 1e6:
		return fmt.Sprintf("%7.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%7.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%7.3f Hz ", freq)
	}
}

// FormatPolar prints name=|v|<phase in degrees.
func FormatPolar(name string, v complex128) string {
	magnitude := cmplx.Abs(v)
	var magStr string
	if magnitude >= 1000 || (magnitude < 0.001 && magnitude != 0) {
		magStr = fmt.Sprintf("%8.2e", magnitude) // "1.00e+03" or "5.43e-05"
	} else {
		magStr = fmt.Sprintf("%8.3g", magnitude) // "  732.5 "
	}
	phase := cmplx.Phase(v) * 180 / math.Pi
	return fmt.Sprintf("%s=%s<%6.1fdeg", name, magStr, phase)
}
