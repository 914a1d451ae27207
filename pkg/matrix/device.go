package matrix

type DeviceMatrix interface {
	AddComplexElement(i, j int, real, imag float64) // 1-based indexing, 0 is the common node
	AddComplexRHS(i int, real, imag float64)
}
