package device

import (
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/matrix"
)

type Capacitor struct {
	BaseDevice
}

func NewCapacitor(name string, conn Connection, value float64) *Capacitor {
	return &Capacitor{BaseDevice: NewBaseDevice(name, value, conn)}
}

func (c *Capacitor) GetType() string { return "C" }

// Impedance - 1/(jwC). Zero capacitance or DC is an open circuit.
func (c *Capacitor) Impedance(omega float64) (complex128, error) {
	x := omega * c.Value
	if x == 0 {
		return 0, fmt.Errorf("capacitor %s: 1/(jwC) with wC=0: %w", c.Name, ErrSingularComponent)
	}
	return complex(0, -1/x), nil
}

func (c *Capacitor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	capConductanceImag := status.Omega() * c.Value // C * jw
	if err := stampAdmittance(matrix, c.Nodes, complex(0, capConductanceImag)); err != nil {
		return fmt.Errorf("capacitor %s: %v", c.Name, err)
	}
	return nil
}
