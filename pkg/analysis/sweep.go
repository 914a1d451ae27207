package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/edp1096/toy-cascade/pkg/netlist"
)

// Frequencies generates the sweep points in increasing order, evenly spaced
// on a linear or logarithmic axis. A single point sweep is just Fstart.
func Frequencies(terms netlist.Terms) ([]float64, error) {
	n := terms.FreqCount
	if n < 1 {
		return nil, fmt.Errorf("number of frequencies must be positive, got %d", n)
	}
	if terms.FreqEnd < terms.FreqStart {
		return nil, fmt.Errorf("end frequency %g below start frequency %g", terms.FreqEnd, terms.FreqStart)
	}
	if n == 1 {
		return []float64{terms.FreqStart}, nil
	}

	frequencies := make([]float64, n)
	if terms.LogSweep {
		if terms.FreqStart <= 0 {
			return nil, fmt.Errorf("logarithmic sweep needs a positive start frequency, got %g", terms.FreqStart)
		}
		floats.LogSpan(frequencies, terms.FreqStart, terms.FreqEnd)
	} else {
		floats.Span(frequencies, terms.FreqStart, terms.FreqEnd)
	}
	// exp(log(x)) drifts in the last bits
	frequencies[0], frequencies[n-1] = terms.FreqStart, terms.FreqEnd
	return frequencies, nil
}
