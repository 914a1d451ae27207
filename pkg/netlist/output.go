package netlist

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/edp1096/toy-cascade/internal/consts"
)

// Quantity indexes the twelve derived values of a sweep sample.
type Quantity int

const (
	Vin Quantity = iota
	Vout
	Iin
	Iout
	Pin
	Pout
	Zin
	Zout
	Av
	Ai
	Ap
	T

	NumQuantities = 12
)

var quantityNames = [NumQuantities]string{
	"Vin", "Vout", "Iin", "Iout", "Pin", "Pout", "Zin", "Zout", "Av", "Ai", "Ap", "T",
}

func (q Quantity) String() string {
	if q < 0 || q >= NumQuantities {
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
	return quantityNames[q]
}

// IsPower selects 10*log10 instead of 20*log10 for decibels.
func (q Quantity) IsPower() bool {
	switch q {
	case Pin, Pout, Ap:
		return true
	}
	return false
}

// ParseQuantity matches the exact variable name.
func ParseQuantity(name string) (Quantity, bool) {
	for i, n := range quantityNames {
		if n == name {
			return Quantity(i), true
		}
	}
	return 0, false
}

// OutputDescriptor is one requested column pair of the result table.
type OutputDescriptor struct {
	Quantity Quantity
	Name     string
	Unit     string
	Decibel  bool
	Exponent int
}

// Index is the canonical position of the quantity, Vin=0 .. T=11.
func (d OutputDescriptor) Index() int {
	return int(d.Quantity)
}

var unitSymbols = strings.NewReplacer("Ohms", "", "V", "", "A", "", "W", "")

// ParseOutput parses "<Variable> [unit]". No unit gives the linear marker "L"
// which skips dB and prefix handling.
func ParseOutput(line string) (OutputDescriptor, []Warning, error) {
	line = CleanLine(line)
	name, unit, _ := strings.Cut(line, " ")
	unit = strings.TrimSpace(unit)

	q, ok := ParseQuantity(name)
	if !ok {
		return OutputDescriptor{}, nil, &ParseError{Block: OutputBlock, Line: line, Token: name, Err: ErrInvalidOutputVariable}
	}

	desc := OutputDescriptor{Quantity: q, Name: name, Unit: unit}
	if unit == "" || unit == consts.LinearUnit {
		desc.Unit = consts.LinearUnit
		return desc, nil, nil
	}

	rest := unitSymbols.Replace(unit)
	if strings.Contains(rest, "dB") {
		desc.Decibel = true
		rest = strings.ReplaceAll(rest, "dB", "")
	}
	rest = strings.Join(strings.Fields(rest), "")

	var warnings []Warning
	switch utf8.RuneCountInString(rest) {
	case 0:
	case 1:
		exp, ok := PrefixExponent(rest)
		if !ok {
			warnings = append(warnings, Warning{Block: OutputBlock, Line: line, Token: rest, Msg: "no or unknown prefix, defaulting to 0"})
		}
		desc.Exponent = exp
	default:
		return OutputDescriptor{}, nil, &ParseError{Block: OutputBlock, Line: line, Token: unit, Err: ErrInvalidUnit,
			Detail: fmt.Sprintf("unexpected %q besides the prefix", rest)}
	}
	return desc, warnings, nil
}

// ParseOutputs parses the OUTPUT block text, keeping the file order.
func ParseOutputs(text string) ([]OutputDescriptor, []Warning, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, nil, &ParseError{Block: OutputBlock, Err: ErrEmptyBlock}
	}

	var warnings []Warning
	outputs := make([]OutputDescriptor, 0, len(lines))
	for _, line := range lines {
		desc, warns, err := ParseOutput(line)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		outputs = append(outputs, desc)
	}
	return outputs, warnings, nil
}
