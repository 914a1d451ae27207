package analysis

import (
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-cascade/pkg/netlist"
)

// Project converts a complex quantity to the pair written for descriptor d.
func Project(v complex128, d netlist.OutputDescriptor) Reading {
	if d.Decibel {
		return Reading{First: Decibel(v, d.Quantity), Second: cmplx.Phase(v)}
	}

	scaled := v
	if d.Exponent != 0 {
		scaled = v / complex(math.Pow10(d.Exponent), 0)
	}
	return Reading{First: real(scaled), Second: imag(scaled)}
}

// Decibel - 10*log10|v| for power quantities, 20*log10|v| otherwise
func Decibel(v complex128, q netlist.Quantity) float64 {
	factor := 20.0
	if q.IsPower() {
		factor = 10.0
	}
	return factor * math.Log10(cmplx.Abs(v))
}

func project(r *SweepResult, outputs []netlist.OutputDescriptor) {
	r.Readings = make([]Reading, len(outputs))
	for i, d := range outputs {
		r.Readings[i] = Project(r.Values[d.Quantity], d)
	}
}
