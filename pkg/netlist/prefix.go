package netlist

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Metric prefix -> power of ten
var prefixExponents = map[string]int{
	"p": -12, // pico
	"n": -9,  // nano
	"u": -6,  // micro
	"m": -3,  // milli
	"k": 3,   // kilo
	"M": 6,   // mega
	"G": 9,   // giga
}

var valuePattern = regexp.MustCompile(`^([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)([pnumkMG])?$`)

// PrefixExponent - "k" -> 3
func PrefixExponent(prefix string) (int, bool) {
	exp, ok := prefixExponents[prefix]
	return exp, ok
}

// splitValue parses a number with an optional attached prefix. 10k -> (10, 3, true)
func splitValue(val string) (float64, int, bool, error) {
	matches := valuePattern.FindStringSubmatch(val)
	if matches == nil {
		return 0, 0, false, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, 0, false, err
	}
	if matches[2] == "" {
		return num, 0, false, nil
	}
	return num, prefixExponents[matches[2]], true, nil
}

// ParseValue - Parse value and factor. 1k -> 1000
func ParseValue(val string) (float64, error) {
	num, exp, _, err := splitValue(val)
	if err != nil {
		return 0, err
	}
	num = applyExponent(num, exp)
	if math.IsInf(num, 0) || math.IsNaN(num) {
		return 0, fmt.Errorf("value out of range: %s", val)
	}
	return num, nil
}

func applyExponent(value float64, exp int) float64 {
	if exp == 0 {
		return value
	}
	return value * math.Pow10(exp)
}
