package device

import (
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/matrix"
)

type Resistor struct {
	BaseDevice
}

func NewResistor(name string, conn Connection, value float64) *Resistor {
	return &Resistor{BaseDevice: NewBaseDevice(name, value, conn)}
}

func (r *Resistor) GetType() string { return "R" }

// Impedance - R = 0 is a plain wire
func (r *Resistor) Impedance(omega float64) (complex128, error) {
	return complex(r.Value, 0), nil
}

func (r *Resistor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if r.Value == 0 {
		return fmt.Errorf("resistor %s: %w", r.Name, ErrZeroImpedance)
	}

	g := 1.0 / r.Value // Conductance. G = 1/R
	if err := stampAdmittance(matrix, r.Nodes, complex(g, 0)); err != nil {
		return fmt.Errorf("resistor %s: %v", r.Name, err)
	}
	return nil
}
