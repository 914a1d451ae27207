package analysis

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/netlist"
)

func series(kind device.Kind, value float64) netlist.Branch {
	return netlist.Branch{Connection: device.Series, Kind: kind, Value: value}
}

func shunt(kind device.Kind, value float64) netlist.Branch {
	return netlist.Branch{Connection: device.Parallel, Kind: kind, Value: value}
}

func voltageTerms(vt, rs, rl float64) netlist.Terms {
	return netlist.Terms{
		Source:          netlist.Source{Kind: netlist.VoltageSource, Value: vt},
		SourceImpedance: rs,
		LoadImpedance:   rl,
		FreqStart:       10,
		FreqEnd:         10,
		FreqCount:       1,
	}
}

func assertComplex(t *testing.T, want, got complex128, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, 0, cmplx.Abs(want-got), 1e-9, msgAndArgs...)
}

func evaluate(t *testing.T, topology netlist.Topology, terms netlist.Terms, outputs ...netlist.OutputDescriptor) SweepResult {
	t.Helper()
	c, err := NewCascade(topology, terms, outputs)
	require.NoError(t, err)
	r, err := c.Evaluate(terms.FreqStart)
	require.NoError(t, err)
	return r
}

func TestEvaluateSeriesResistor(t *testing.T) {
	r := evaluate(t, netlist.Topology{series(device.KindResistor, 10)}, voltageTerms(5, 5, 10))

	want := map[netlist.Quantity]complex128{
		netlist.Vin:  4,
		netlist.Vout: 2,
		netlist.Iin:  0.2,
		netlist.Iout: 0.2,
		netlist.Pin:  0.8,
		netlist.Pout: 0.4,
		netlist.Zin:  20,
		netlist.Zout: 15,
		netlist.Av:   0.5,
		netlist.Ai:   1,
		netlist.Ap:   0.5,
		netlist.T:    0.08,
	}
	for q, v := range want {
		assertComplex(t, v, r.Value(q), q.String())
	}
	assert.Equal(t, 10.0, r.Frequency)
}

func TestEvaluateIdealVoltageSource(t *testing.T) {
	r := evaluate(t, netlist.Topology{series(device.KindResistor, 10)}, voltageTerms(5, 0, 10))
	assertComplex(t, 5, r.Value(netlist.Vin))
	assertComplex(t, 2.5, r.Value(netlist.Vout))
}

func TestEvaluateCurrentSource(t *testing.T) {
	terms := voltageTerms(0, 10, 10)
	terms.Source = netlist.Source{Kind: netlist.CurrentSource, Value: 1}

	r := evaluate(t, netlist.Topology{series(device.KindResistor, 10)}, terms)
	assertComplex(t, complex(1.0/3, 0), r.Value(netlist.Iin))
	assertComplex(t, complex(20.0/3, 0), r.Value(netlist.Vin))
	assertComplex(t, complex(10.0/3, 0), r.Value(netlist.Vout))
	assertComplex(t, r.Value(netlist.Iin), r.Value(netlist.Iout))
}

func TestEvaluateRCLowPassCorner(t *testing.T) {
	const (
		resistance  = 1e3
		capacitance = 1e-6
	)
	terms := voltageTerms(1, 0, 1e12)
	terms.FreqStart = 1 / (2 * math.Pi * resistance * capacitance)

	r := evaluate(t, netlist.Topology{series(device.KindResistor, resistance), shunt(device.KindCapacitor, capacitance)}, terms,
		netlist.OutputDescriptor{Quantity: netlist.Av, Name: "Av", Unit: "dB", Decibel: true})

	require.Len(t, r.Readings, 1)
	assert.InDelta(t, -3.0103, r.Readings[0].First, 1e-3)
	assert.InDelta(t, -math.Pi/4, r.Readings[0].Second, 1e-6)
	abcd := r.ABCD
	assert.InDelta(t, 0, cmplx.Abs(abcd.A()*abcd.D()-abcd.B()*abcd.C()-1), 1e-9)
}

func TestEvaluateShuntOrderMatters(t *testing.T) {
	// shunt before the series element sits across the source, after it across the load
	before := evaluate(t, netlist.Topology{shunt(device.KindResistor, 10), series(device.KindResistor, 10)}, voltageTerms(1, 10, 1e9))
	after := evaluate(t, netlist.Topology{series(device.KindResistor, 10), shunt(device.KindResistor, 10)}, voltageTerms(1, 10, 1e9))

	assert.InDelta(t, 0.5, real(before.Value(netlist.Vout)), 1e-6)
	assert.InDelta(t, 1.0/3, real(after.Value(netlist.Vout)), 1e-6)
}

func TestEvaluateSingular(t *testing.T) {
	tests := []struct {
		name     string
		topology netlist.Topology
		terms    netlist.Terms
		want     error
		detail   string
	}{
		{"shorted output", netlist.Topology{series(device.KindResistor, 0)}, voltageTerms(1, 0, 0), ErrSingularNetwork, "A*RL+B is zero"},
		{"input admittance cancels", netlist.Topology{shunt(device.KindResistor, -1)}, voltageTerms(1, 1, 1), ErrSingularNetwork, "C*RL+D is zero"},
		{"output admittance cancels", netlist.Topology{series(device.KindResistor, 1), shunt(device.KindResistor, -1)}, voltageTerms(1, 0, 2), ErrSingularNetwork, "C*RS+A is zero"},
		{"source loop cancels", netlist.Topology{series(device.KindResistor, -2)}, voltageTerms(1, 1, 1), ErrSingularNetwork, "A*RL+B+C*RL*RS+D*RS is zero"},
		{"overflowing chain", netlist.Topology{series(device.KindResistor, 1e308), series(device.KindResistor, 1e308)}, voltageTerms(1, 1, 1), ErrSingularNetwork, "not finite"},
		{"shorting shunt", netlist.Topology{shunt(device.KindResistor, 0)}, voltageTerms(1, 1, 1), device.ErrSingularComponent, ""},
		{"zero conductance", netlist.Topology{series(device.KindConductor, 0)}, voltageTerms(1, 1, 1), device.ErrSingularComponent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCascade(tt.topology, tt.terms, nil, WithSource("case.net"))
			require.NoError(t, err)
			_, err = c.Evaluate(tt.terms.FreqStart)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.detail)

			var serr *SweepError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.terms.FreqStart, serr.Frequency)
			assert.Contains(t, err.Error(), "case.net")
		})
	}
}

func TestEvaluateOpenSeriesAtDC(t *testing.T) {
	terms := voltageTerms(1, 1, 1)
	terms.FreqStart = 0
	c, err := NewCascade(netlist.Topology{series(device.KindCapacitor, 1e-6)}, terms, nil)
	require.NoError(t, err)
	_, err = c.Evaluate(0)
	assert.ErrorIs(t, err, device.ErrSingularComponent)
	assert.Contains(t, err.Error(), "CIRCUIT block")
}

func TestEvaluateParsedDivider(t *testing.T) {
	data, err := netlist.Parse(`
<CIRCUIT>
n1=1 n2=2 R=10
</CIRCUIT>
<TERMS>
VT=5 RS=5 RL=10 Fstart=100 Fend=100 Nfreqs=1
</TERMS>
<OUTPUT>
Vout V
</OUTPUT>`)
	require.NoError(t, err)

	sweep, err := RunSweep(data.Topology, data.Terms, data.Outputs)
	require.NoError(t, err)

	var results []SweepResult
	for r, err := range sweep.Results() {
		require.NoError(t, err)
		results = append(results, r)
	}
	require.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].Frequency)
	assert.Equal(t, complex128(2), results[0].Value(netlist.Vout))
	assert.Equal(t, Reading{First: 2, Second: 0}, results[0].Readings[0])
}

func TestEvaluateInductorChainAtDC(t *testing.T) {
	terms := voltageTerms(1, 5, 10)
	terms.FreqStart = 0
	r := evaluate(t, netlist.Topology{series(device.KindInductor, 1e-3), series(device.KindInductor, 2e-3)}, terms)
	assert.Equal(t, complex128(10), r.Value(netlist.Zin))
	assert.Equal(t, complex128(5), r.Value(netlist.Zout))
	assert.Equal(t, complex128(1), r.Value(netlist.Av))
}
