package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// CircuitMatrix is a complex nodal admittance system Y*V = I over nodes 1..Size.
type CircuitMatrix struct {
	Size         int
	matrix       *sparse.Matrix
	rhs          []float64
	rhsImag      []float64
	solution     []float64
	solutionImag []float64
	config       *sparse.Configuration
	err          error
}

func NewMatrix(size int) (*CircuitMatrix, error) {
	if size < 1 {
		return nil, fmt.Errorf("matrix size must be positive, got %d", size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	vectorSize := size + 1 // 1-based indexing
	m := &CircuitMatrix{
		Size:    size,
		matrix:  mat,
		rhs:     make([]float64, vectorSize),
		rhsImag: make([]float64, vectorSize),
		config:  config,
	}
	m.setupElements()

	return m, nil
}

func (m *CircuitMatrix) setupElements() {
	for i := 1; i <= m.Size; i++ {
		for j := 1; j <= m.Size; j++ {
			m.matrix.GetElement(int64(i), int64(j))
		}
	}
}

func (m *CircuitMatrix) AddComplexElement(i, j int, real, imag float64) {
	if i == 0 || j == 0 { // common node row/column is not part of the system
		return
	}
	if i < 0 || j < 0 || i > m.Size || j > m.Size {
		m.err = fmt.Errorf("matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, m.Size)
		return
	}

	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real += real
	element.Imag += imag
}

func (m *CircuitMatrix) AddComplexRHS(i int, real, imag float64) {
	if i == 0 {
		return
	}
	if i < 0 || i > m.Size {
		m.err = fmt.Errorf("rhs index out of bounds (i=%d, size=%d)", i, m.Size)
		return
	}

	m.rhs[i] += real
	m.rhsImag[i] += imag
}

func (m *CircuitMatrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
		m.rhsImag[i] = 0
	}
	m.solution, m.solutionImag = nil, nil
	m.err = nil
}

func (m *CircuitMatrix) Solve() error {
	if m.err != nil {
		return m.err
	}

	err := m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}

	m.solution, m.solutionImag, err = m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}

	return nil
}

// Solution returns the voltage of node i after Solve. Node 0 is the reference.
func (m *CircuitMatrix) Solution(i int) complex128 {
	if i <= 0 || i > m.Size || i >= len(m.solution) || i >= len(m.solutionImag) {
		return 0
	}
	return complex(m.solution[i], m.solutionImag[i])
}

func (m *CircuitMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}
