package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/edp1096/toy-cascade/internal/consts"
	"github.com/edp1096/toy-cascade/pkg/circuit"
	"github.com/edp1096/toy-cascade/pkg/netlist"
)

// Cascade evaluates the terminated ladder one frequency at a time.
// Evaluate is safe for concurrent use.
type Cascade struct {
	circuit *circuit.Circuit
	terms   netlist.Terms
	outputs []netlist.OutputDescriptor
	source  string
}

func NewCascade(topology netlist.Topology, terms netlist.Terms, outputs []netlist.OutputDescriptor, opts ...Option) (*Cascade, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	ckt := circuit.New(o.source)
	if err := ckt.SetupDevices(topology); err != nil {
		return nil, fmt.Errorf("circuit setup error: %v", err)
	}

	return &Cascade{
		circuit: ckt,
		terms:   terms,
		outputs: outputs,
		source:  o.source,
	}, nil
}

func (c *Cascade) Circuit() *circuit.Circuit {
	return c.circuit
}

func (c *Cascade) Terms() netlist.Terms {
	return c.terms
}

func (c *Cascade) Outputs() []netlist.OutputDescriptor {
	return c.outputs
}

// Evaluate computes the overall ABCD matrix at freq and derives the port
// quantities for the source and load terminations.
func (c *Cascade) Evaluate(freq float64) (SweepResult, error) {
	result := SweepResult{Frequency: freq}

	abcd, err := c.circuit.ABCD(consts.TWOPI * freq)
	if err != nil {
		return result, c.fail(freq, err)
	}
	result.ABCD = abcd
	if !abcd.IsFinite() {
		return result, c.fail(freq, fmt.Errorf("%w: ABCD matrix is not finite", ErrSingularNetwork))
	}

	a, b, cc, d := abcd.A(), abcd.B(), abcd.C(), abcd.D()
	rs := complex(c.terms.SourceImpedance, 0)
	rl := complex(c.terms.LoadImpedance, 0)

	zinNum := a*rl + b
	zinDen := cc*rl + d
	zoutNum := d*rs + b
	zoutDen := cc*rs + a
	// tDen is (C*RL+D)(RS+Zin), so RS+Zin is nonzero once tDen is.
	tDen := a*rl + b + cc*rl*rs + d*rs

	for _, den := range []struct {
		name string
		v    complex128
	}{
		{"A*RL+B", zinNum},
		{"C*RL+D", zinDen},
		{"C*RS+A", zoutDen},
		{"A*RL+B+C*RL*RS+D*RS", tDen},
	} {
		if den.v == 0 {
			return result, c.fail(freq, fmt.Errorf("%w: %s is zero", ErrSingularNetwork, den.name))
		}
	}

	zin := zinNum / zinDen
	zout := zoutNum / zoutDen
	av := rl / zinNum
	ai := 1 / zinDen
	ap := av * cmplx.Conj(ai)
	t := 2 / tDen

	var vin, iin complex128
	drive := complex(c.terms.Source.Value, 0)
	switch c.terms.Source.Kind {
	case netlist.VoltageSource:
		vin = drive * zin / (rs + zin)
		iin = drive / (rs + zin)
	case netlist.CurrentSource:
		iin = drive * rs / (rs + zin)
		vin = iin * zin
	default:
		return result, fmt.Errorf("unknown source kind %v", c.terms.Source.Kind)
	}

	vout := vin * av
	iout := iin * ai

	result.Values = [netlist.NumQuantities]complex128{
		netlist.Vin:  vin,
		netlist.Vout: vout,
		netlist.Iin:  iin,
		netlist.Iout: iout,
		netlist.Pin:  vin * cmplx.Conj(iin),
		netlist.Pout: vout * cmplx.Conj(iout),
		netlist.Zin:  zin,
		netlist.Zout: zout,
		netlist.Av:   av,
		netlist.Ai:   ai,
		netlist.Ap:   ap,
		netlist.T:    t,
	}
	project(&result, c.outputs)

	return result, nil
}

func (c *Cascade) fail(freq float64, err error) error {
	return &SweepError{Frequency: freq, Source: c.source, Err: err}
}
