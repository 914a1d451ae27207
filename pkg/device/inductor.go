package device

import (
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/matrix"
)

type Inductor struct {
	BaseDevice
}

func NewInductor(name string, conn Connection, value float64) *Inductor {
	return &Inductor{BaseDevice: NewBaseDevice(name, value, conn)}
}

func (l *Inductor) GetType() string { return "L" }

// Impedance - jwL, a wire at DC
func (l *Inductor) Impedance(omega float64) (complex128, error) {
	return complex(0, omega*l.Value), nil
}

func (l *Inductor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	x := status.Omega() * l.Value
	if x == 0 {
		return fmt.Errorf("inductor %s: %w", l.Name, ErrZeroImpedance)
	}

	// Y = 1/(jwL) = -j/(wL)
	if err := stampAdmittance(matrix, l.Nodes, complex(0, -1/x)); err != nil {
		return fmt.Errorf("inductor %s: %v", l.Name, err)
	}
	return nil
}
