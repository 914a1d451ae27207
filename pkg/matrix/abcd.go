package matrix

import (
	"fmt"
	"math/cmplx"
)

// ABCD is the transmission matrix of a two-port:
//
//	| V1 |   | A  B | | V2 |
//	| I1 | = | C  D | | I2 |
type ABCD [2][2]complex128

func Identity() ABCD {
	return ABCD{{1, 0}, {0, 1}}
}

// SeriesABCD - impedance z in the signal path
func SeriesABCD(z complex128) ABCD {
	return ABCD{{1, z}, {0, 1}}
}

// ShuntABCD - admittance y from the signal path to the common node
func ShuntABCD(y complex128) ABCD {
	return ABCD{{1, 0}, {y, 1}}
}

// Mul chains m (left, nearer the source) with n (right, nearer the load).
func (m ABCD) Mul(n ABCD) ABCD {
	var r ABCD
	for i := range 2 {
		for j := range 2 {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return r
}

func (m ABCD) A() complex128 { return m[0][0] }
func (m ABCD) B() complex128 { return m[0][1] }
func (m ABCD) C() complex128 { return m[1][0] }
func (m ABCD) D() complex128 { return m[1][1] }

func (m ABCD) IsFinite() bool {
	for i := range 2 {
		for j := range 2 {
			if cmplx.IsInf(m[i][j]) || cmplx.IsNaN(m[i][j]) {
				return false
			}
		}
	}
	return true
}

func (m ABCD) String() string {
	return fmt.Sprintf("[[%v %v] [%v %v]]", m[0][0], m[0][1], m[1][0], m[1][1])
}
