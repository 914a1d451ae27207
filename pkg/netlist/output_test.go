package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		line     string
		want     OutputDescriptor
		warnings int
	}{
		{"Vin V", OutputDescriptor{Quantity: Vin, Name: "Vin", Unit: "V"}, 0},
		{"Vout mV", OutputDescriptor{Quantity: Vout, Name: "Vout", Unit: "mV", Exponent: -3}, 0},
		{"Zin kOhms", OutputDescriptor{Quantity: Zin, Name: "Zin", Unit: "kOhms", Exponent: 3}, 0},
		{"Av dB", OutputDescriptor{Quantity: Av, Name: "Av", Unit: "dB", Decibel: true}, 0},
		{"Pout dBmW", OutputDescriptor{Quantity: Pout, Name: "Pout", Unit: "dBmW", Decibel: true, Exponent: -3}, 0},
		{"Ap", OutputDescriptor{Quantity: Ap, Name: "Ap", Unit: "L"}, 0},
		{"T L", OutputDescriptor{Quantity: T, Name: "T", Unit: "L"}, 0},
		{"Iin xA", OutputDescriptor{Quantity: Iin, Name: "Iin", Unit: "xA"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, warns, err := ParseOutput(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, warns, tt.warnings)
			assert.Equal(t, int(tt.want.Quantity), got.Index())
		})
	}
}

func TestParseOutputErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"Foo V", ErrInvalidOutputVariable},
		{"vin V", ErrInvalidOutputVariable},
		{"Vin kmV", ErrInvalidUnit},
		{"Zin Ohms extra", ErrInvalidUnit},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, _, err := ParseOutput(tt.line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseOutputsKeepsOrder(t *testing.T) {
	outputs, warns, err := ParseOutputs("T\nVin V\nAp dB\nVin mV")
	require.NoError(t, err)
	assert.Empty(t, warns)

	names := make([]string, len(outputs))
	for i, o := range outputs {
		names[i] = o.Name
	}
	assert.Equal(t, []string{"T", "Vin", "Ap", "Vin"}, names)
}

func TestQuantity(t *testing.T) {
	for q := Vin; q < NumQuantities; q++ {
		got, ok := ParseQuantity(q.String())
		require.True(t, ok)
		assert.Equal(t, q, got)
	}
	assert.True(t, Pin.IsPower())
	assert.True(t, Ap.IsPower())
	assert.False(t, Av.IsPower())
	assert.False(t, Zout.IsPower())
}
