package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-cascade/pkg/device"
)

func TestParseComponent(t *testing.T) {
	tests := []struct {
		line     string
		a, b     int
		kind     device.Kind
		value    float64
		warnings int
	}{
		{"n1=1 n2=2 R=10", 1, 2, device.KindResistor, 10, 0},
		{"n1=1 n2=2 R=10 k", 1, 2, device.KindResistor, 10e3, 0},
		{"n1=2 n2=0 C=4.7u", 2, 0, device.KindCapacitor, 4.7e-6, 0},
		{"n1 = 1, n2 = 2, L = 1 m", 1, 2, device.KindInductor, 1e-3, 0},
		{"n2=0 G=2 n1=3", 3, 0, device.KindConductor, 2, 0},
		{"n1=1 n2=2 R=1.5e2 M", 1, 2, device.KindResistor, 150e6, 0},
		{"n1=1 n2=2 R=10 x", 1, 2, device.KindResistor, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, warns, err := ParseComponent(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.a, c.NodeA)
			assert.Equal(t, tt.b, c.NodeB)
			assert.Equal(t, tt.kind, c.Kind)
			assert.InEpsilon(t, tt.value, c.Value, 1e-12)
			assert.Len(t, warns, tt.warnings)
		})
	}
}

func TestParseComponentUnknownPrefixWarning(t *testing.T) {
	_, warns, err := ParseComponent("n1=1 n2=2 R=10 x")
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, CircuitBlock, warns[0].Block)
	assert.Equal(t, "x", warns[0].Token)
}

func TestParseComponentErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"n1=1 n2=2 X=10", ErrUnknownVariable},
		{"n1=1 n2=2 r=10", ErrUnknownVariable},
		{"n1=a n2=2 R=10", ErrInvalidData},
		{"n1=1 n2=-1 R=10", ErrInvalidData},
		{"n1=1 n2=2 R=abc", ErrInvalidData},
		{"n1=1 n2=2 R=10kk", ErrInvalidData},
		{"n1=1 R=10", ErrInvalidComponent},
		{"n1=1 n2=2", ErrInvalidComponent},
		{"n1=1 n2=2 R=10 k k", ErrInvalidComponent},
		{"k n1=1 n2=2 R=10", ErrInvalidComponent},
		{"n1=1 n1=2 R=10", ErrInvalidComponent},
		{"n1=1 n2=2 R=10k m", ErrInvalidComponent},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, _, err := ParseComponent(tt.line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
