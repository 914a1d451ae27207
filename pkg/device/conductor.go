package device

import (
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/matrix"
)

type Conductor struct {
	BaseDevice
}

func NewConductor(name string, conn Connection, value float64) *Conductor {
	return &Conductor{BaseDevice: NewBaseDevice(name, value, conn)}
}

func (g *Conductor) GetType() string { return "G" }

func (g *Conductor) Impedance(omega float64) (complex128, error) {
	if g.Value == 0 {
		return 0, fmt.Errorf("conductor %s: zero conductance: %w", g.Name, ErrSingularComponent)
	}
	return complex(1.0/g.Value, 0), nil
}

func (g *Conductor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := stampAdmittance(matrix, g.Nodes, complex(g.Value, 0)); err != nil {
		return fmt.Errorf("conductor %s: %v", g.Name, err)
	}
	return nil
}
