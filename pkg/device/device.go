package device

import (
	"errors"
	"fmt"
	"math"

	"github.com/edp1096/toy-cascade/internal/consts"
	"github.com/edp1096/toy-cascade/pkg/matrix"
)

var (
	// ErrSingularComponent - impedance needs a division by exactly zero
	ErrSingularComponent = errors.New("singular component")
	// ErrZeroImpedance - a short cannot be written as a nodal admittance
	ErrZeroImpedance = errors.New("zero impedance")
)

type Kind int

const (
	KindResistor Kind = iota
	KindConductor
	KindInductor
	KindCapacitor
)

var kindLetters = [...]string{"R", "G", "L", "C"}
var kindUnits = [...]string{"Ohms", "S", "H", "F"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindLetters) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindLetters[k]
}

func (k Kind) Unit() string {
	if k < 0 || int(k) >= len(kindUnits) {
		return ""
	}
	return kindUnits[k]
}

// ParseKind matches a component letter exactly.
func ParseKind(s string) (Kind, bool) {
	for i, letter := range kindLetters {
		if s == letter {
			return Kind(i), true
		}
	}
	return 0, false
}

type Connection int

const (
	Series Connection = iota
	Parallel
)

func (c Connection) String() string {
	switch c {
	case Series:
		return "Series"
	case Parallel:
		return "Parallel"
	}
	return fmt.Sprintf("Connection(%d)", int(c))
}

type Device interface {
	GetName() string
	GetType() string
	GetValue() float64
	GetNodes() []int
	SetNodes(nodes []int)
	Connection() Connection
	Impedance(omega float64) (complex128, error)
	Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error
}

type CircuitStatus struct {
	Frequency float64 // Hz
}

func (s *CircuitStatus) Omega() float64 {
	return consts.TWOPI * s.Frequency
}

type BaseDevice struct {
	Name  string
	Nodes []int
	Value float64
	Conn  Connection
}

func (d *BaseDevice) GetName() string {
	return d.Name
}

func (d *BaseDevice) GetNodes() []int {
	return d.Nodes
}

func (d *BaseDevice) GetValue() float64 {
	return d.Value
}

func (d *BaseDevice) SetNodes(nodes []int) {
	d.Nodes = nodes
}

func (d *BaseDevice) Connection() Connection {
	return d.Conn
}

func NewBaseDevice(name string, value float64, conn Connection) BaseDevice {
	return BaseDevice{
		Name:  name,
		Value: value,
		Conn:  conn,
		Nodes: make([]int, 2),
	}
}

// New creates the device for one cascade branch.
func New(kind Kind, name string, conn Connection, value float64) (Device, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%s: value must be finite, got %g", name, value)
	}

	switch kind {
	case KindResistor:
		return NewResistor(name, conn, value), nil
	case KindConductor:
		return NewConductor(name, conn, value), nil
	case KindInductor:
		return NewInductor(name, conn, value), nil
	case KindCapacitor:
		return NewCapacitor(name, conn, value), nil
	}
	return nil, fmt.Errorf("unsupported device type: %v", kind)
}

// stampAdmittance loads y between n1 and n2. Either node may be the common node 0.
func stampAdmittance(matrix matrix.DeviceMatrix, nodes []int, y complex128) error {
	if len(nodes) != 2 {
		return fmt.Errorf("requires exactly 2 nodes, got %d", len(nodes))
	}
	n1, n2 := nodes[0], nodes[1]
	g, b := real(y), imag(y)

	if n1 != 0 {
		matrix.AddComplexElement(n1, n1, g, b)
		if n2 != 0 {
			matrix.AddComplexElement(n1, n2, -g, -b)
		}
	}
	if n2 != 0 {
		if n1 != 0 {
			matrix.AddComplexElement(n2, n1, -g, -b)
		}
		matrix.AddComplexElement(n2, n2, g, b)
	}
	return nil
}
