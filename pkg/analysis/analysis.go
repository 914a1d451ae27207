package analysis

import (
	"errors"
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/matrix"
	"github.com/edp1096/toy-cascade/pkg/netlist"
)

var (
	// ErrSingularNetwork - division by zero while deriving the port quantities
	ErrSingularNetwork = errors.New("singular network")
	// ErrSweepConsumed - the results of a sweep can be read once
	ErrSweepConsumed = errors.New("sweep results already consumed")
	// ErrVerifyMismatch - nodal and cascade solutions disagree
	ErrVerifyMismatch = errors.New("nodal solution does not match cascade")
	// ErrVerifyUnsupported - terminations or elements without a nodal form
	ErrVerifyUnsupported = errors.New("nodal check not applicable")
)

// SweepError aborts a sweep at the first ill-defined frequency sample.
type SweepError struct {
	Frequency float64
	Source    string // description file, if known
	Err       error
}

func (e *SweepError) Error() string {
	blocks := "CIRCUIT and TERMS blocks"
	if errors.Is(e.Err, device.ErrSingularComponent) {
		blocks = "CIRCUIT block"
	}
	if e.Source != "" {
		return fmt.Sprintf("%v at f=%g Hz (check %s of %s)", e.Err, e.Frequency, blocks, e.Source)
	}
	return fmt.Sprintf("%v at f=%g Hz (check %s)", e.Err, e.Frequency, blocks)
}

func (e *SweepError) Unwrap() error {
	return e.Err
}

// Reading is the written pair of a requested output: magnitude in dB and
// phase in radians, or real and imaginary part scaled by the unit prefix.
type Reading struct {
	First  float64
	Second float64
}

// SweepResult holds every derived quantity at one frequency.
type SweepResult struct {
	Frequency float64
	ABCD      matrix.ABCD
	Values    [netlist.NumQuantities]complex128
	Readings  []Reading // One per requested output, in request order
}

func (r SweepResult) Value(q netlist.Quantity) complex128 {
	return r.Values[q]
}

type options struct {
	source string
}

type Option func(*options)

// WithSource names the description file in sweep errors.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}
