package circuit

import (
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/matrix"
	"github.com/edp1096/toy-cascade/pkg/netlist"
)

// Circuit is a ladder network between an input port at node 1 and an output
// port at node numNodes, both referenced to the common node 0.
type Circuit struct {
	name     string
	devices  []device.Device
	numNodes int
}

func New(name string) *Circuit {
	return &Circuit{
		name:     name,
		devices:  make([]device.Device, 0),
		numNodes: 1,
	}
}

// SetupDevices creates the devices of a cascade ordered topology and assigns
// their nodes. A series branch steps from node k to k+1, a parallel branch
// hangs off the current node.
func (c *Circuit) SetupDevices(topology netlist.Topology) error {
	devices, err := netlist.CreateDevices(topology)
	if err != nil {
		return err
	}

	node := 1
	for _, dev := range devices {
		switch dev.Connection() {
		case device.Series:
			dev.SetNodes([]int{node, node + 1})
			node++
		case device.Parallel:
			dev.SetNodes([]int{node, 0})
		default:
			return fmt.Errorf("device %s: unknown connection %v", dev.GetName(), dev.Connection())
		}
	}

	c.devices = devices
	c.numNodes = node
	return nil
}

// ABCD multiplies the element matrices from the source side to the load side.
func (c *Circuit) ABCD(omega float64) (matrix.ABCD, error) {
	total := matrix.Identity()

	for _, dev := range c.devices {
		z, err := dev.Impedance(omega)
		if err != nil {
			return total, err
		}

		switch dev.Connection() {
		case device.Series:
			if z == 0 { // wire
				continue
			}
			total = total.Mul(matrix.SeriesABCD(z))
		case device.Parallel:
			if z == 0 {
				return total, fmt.Errorf("%s %s: shunt with zero impedance: %w", dev.Connection(), dev.GetName(), device.ErrSingularComponent)
			}
			total = total.Mul(matrix.ShuntABCD(1 / z))
		}
	}

	return total, nil
}

// Drive is the Norton form of the port terminations used by SolveNodal.
type Drive struct {
	Current          complex128 // Injected into node 1
	SourceAdmittance complex128 // Between node 1 and 0
	LoadAdmittance   complex128 // Between the output node and 0
}

// SolveNodal solves the node voltages of the terminated ladder with a sparse
// complex LU factorization and returns the input and output port voltages.
func (c *Circuit) SolveNodal(freq float64, drive Drive) (complex128, complex128, error) {
	mat, err := matrix.NewMatrix(c.numNodes)
	if err != nil {
		return 0, 0, err
	}
	defer mat.Destroy()

	status := &device.CircuitStatus{Frequency: freq}
	if err := c.Stamp(mat, status); err != nil {
		return 0, 0, err
	}

	mat.AddComplexElement(1, 1, real(drive.SourceAdmittance), imag(drive.SourceAdmittance))
	mat.AddComplexElement(c.numNodes, c.numNodes, real(drive.LoadAdmittance), imag(drive.LoadAdmittance))
	mat.AddComplexRHS(1, real(drive.Current), imag(drive.Current))

	if err := mat.Solve(); err != nil {
		return 0, 0, fmt.Errorf("nodal solve at f=%g: %v", freq, err)
	}
	return mat.Solution(1), mat.Solution(c.numNodes), nil
}

func (c *Circuit) Stamp(mat matrix.DeviceMatrix, status *device.CircuitStatus) error {
	for _, dev := range c.devices {
		if err := dev.Stamp(mat, status); err != nil {
			return fmt.Errorf("stamping device %s: %w", dev.GetName(), err)
		}
	}
	return nil
}

func (c *Circuit) GetDevices() []device.Device {
	return c.devices
}

func (c *Circuit) Name() string {
	return c.name
}

func (c *Circuit) GetNumNodes() int {
	return c.numNodes
}
