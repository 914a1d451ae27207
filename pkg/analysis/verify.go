package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-cascade/pkg/circuit"
	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/netlist"
)

// DefaultTolerance is the relative error allowed between the nodal and
// cascade port voltages.
const DefaultTolerance = 1e-9

// Verify re-solves the terminated ladder at r.Frequency by nodal analysis
// and checks the input and output voltages against the cascade result.
func (c *Cascade) Verify(r SweepResult, tol float64) error {
	drive, err := c.nodalDrive()
	if err != nil {
		return err
	}

	vin, vout, err := c.circuit.SolveNodal(r.Frequency, drive)
	if errors.Is(err, device.ErrZeroImpedance) {
		return fmt.Errorf("%w: %v", ErrVerifyUnsupported, err)
	}
	if err != nil {
		return err
	}

	if !closeTo(vin, r.Values[netlist.Vin], tol) {
		return fmt.Errorf("%w at f=%g Hz: Vin nodal %v, cascade %v", ErrVerifyMismatch, r.Frequency, vin, r.Values[netlist.Vin])
	}
	if !closeTo(vout, r.Values[netlist.Vout], tol) {
		return fmt.Errorf("%w at f=%g Hz: Vout nodal %v, cascade %v", ErrVerifyMismatch, r.Frequency, vout, r.Values[netlist.Vout])
	}
	return nil
}

// Norton equivalent of the source plus the load admittance.
func (c *Cascade) nodalDrive() (circuit.Drive, error) {
	rs := c.terms.SourceImpedance
	rl := c.terms.LoadImpedance
	if rs == 0 {
		return circuit.Drive{}, fmt.Errorf("%w: zero source impedance", ErrVerifyUnsupported)
	}
	if rl == 0 {
		return circuit.Drive{}, fmt.Errorf("%w: zero load impedance", ErrVerifyUnsupported)
	}

	drive := circuit.Drive{
		SourceAdmittance: complex(1/rs, 0),
		LoadAdmittance:   complex(1/rl, 0),
	}
	switch c.terms.Source.Kind {
	case netlist.VoltageSource:
		drive.Current = complex(c.terms.Source.Value/rs, 0)
	case netlist.CurrentSource:
		drive.Current = complex(c.terms.Source.Value, 0)
	}
	return drive, nil
}

func closeTo(a, b complex128, tol float64) bool {
	scale := math.Max(1, cmplx.Abs(b))
	return cmplx.Abs(a-b) <= tol*scale
}
