package netlist

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/edp1096/toy-cascade/pkg/device"
)

// Component is one CIRCUIT line with its exponent already applied.
type Component struct {
	NodeA int
	NodeB int
	Kind  device.Kind
	Value float64
	Line  string // normalized source line
}

// IsParallel reports a connection to the common node.
func (c Component) IsParallel() bool {
	return c.NodeA == 0 || c.NodeB == 0
}

type componentFields struct {
	nodeA, nodeB   int
	haveA, haveB   bool
	kind           device.Kind
	value          float64
	haveKind       bool
	exponent       int
	haveExponent   bool
	count          int // positional fields: n1, n2, kind, value[, exponent]
	afterValue     bool
	repeated, lost bool
}

// ParseComponent converts a line such as "n1=1 n2=2 R=10 k" into a Component.
// Unknown bare prefixes fall back to 10^0 and are reported as warnings.
func ParseComponent(line string) (Component, []Warning, error) {
	line = CleanLine(line)
	fail := func(err error, token, detail string) (Component, []Warning, error) {
		return Component{}, nil, &ParseError{Block: CircuitBlock, Line: line, Token: token, Err: err, Detail: detail}
	}
	if line == "" {
		return fail(ErrInvalidComponent, "", "empty line")
	}

	var f componentFields
	var warnings []Warning

	for _, token := range strings.Split(line, " ") {
		name, raw, hasAssign := strings.Cut(token, "=")

		// Bare prefix token, scales the value in front of it
		if !hasAssign {
			f.count++
			if !f.afterValue || f.haveExponent {
				f.lost = true
				continue
			}
			exp, ok := PrefixExponent(token)
			if !ok {
				warnings = append(warnings, Warning{Block: CircuitBlock, Line: line, Token: token, Msg: "no or unknown prefix, defaulting to 0"})
			}
			f.exponent, f.haveExponent = exp, true
			f.afterValue = false
			continue
		}
		f.afterValue = false

		switch name {
		case "n1", "n2":
			node, err := parseNode(raw)
			if err != nil {
				return fail(ErrInvalidData, token, err.Error())
			}
			f.count++
			if name == "n1" {
				f.repeated = f.repeated || f.haveA
				f.nodeA, f.haveA = node, true
			} else {
				f.repeated = f.repeated || f.haveB
				f.nodeB, f.haveB = node, true
			}

		default:
			kind, ok := device.ParseKind(name)
			if !ok {
				return fail(ErrUnknownVariable, token, "")
			}
			num, exp, attached, err := splitValue(raw)
			if err != nil {
				return fail(ErrInvalidData, token, "")
			}
			f.count += 2
			f.repeated = f.repeated || f.haveKind
			f.kind, f.value, f.haveKind = kind, num, true
			if attached {
				f.count++
				f.repeated = f.repeated || f.haveExponent
				f.exponent, f.haveExponent = exp, true
			} else {
				f.afterValue = true
			}
		}
	}

	if f.count < 4 || f.count > 5 || f.repeated || f.lost || !f.haveA || !f.haveB || !f.haveKind {
		return fail(ErrInvalidComponent, "", "expected n1=<node> n2=<node> <R|G|L|C>=<value>[prefix]")
	}

	value := applyExponent(f.value, f.exponent)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fail(ErrInvalidData, "", "value is not finite")
	}

	return Component{
		NodeA: f.nodeA,
		NodeB: f.nodeB,
		Kind:  f.kind,
		Value: value,
		Line:  line,
	}, warnings, nil
}

func parseNode(raw string) (int, error) {
	node, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errNodeFormat
	}
	if node < 0 {
		return 0, errNodeNegative
	}
	return node, nil
}

var (
	errNodeFormat   = errors.New("node must be an integer")
	errNodeNegative = errors.New("node must not be negative")
)
