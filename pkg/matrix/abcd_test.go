package matrix

import (
	"math/cmplx"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMulIdentity(t *testing.T) {
	m := ABCD{{1, 2i}, {3, 4}}
	assert.Equal(t, m, Identity().Mul(m))
	assert.Equal(t, m, m.Mul(Identity()))
}

func TestSeriesThenShunt(t *testing.T) {
	// L-section: series z then shunt y
	z, y := complex(10, 0), complex(0.1, 0)
	got := SeriesABCD(z).Mul(ShuntABCD(y))
	want := ABCD{{1 + z*y, z}, {y, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ABCD mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, complex128(2), got.A())
	assert.Equal(t, complex128(10), got.B())
	assert.Equal(t, complex(0.1, 0), got.C())
	assert.Equal(t, complex128(1), got.D())
}

func TestSeriesImpedancesAdd(t *testing.T) {
	got := SeriesABCD(3).Mul(SeriesABCD(4i))
	assert.Equal(t, complex(3, 4), got.B())
}

func TestCascadeIsReciprocal(t *testing.T) {
	m := SeriesABCD(complex(5, 3)).
		Mul(ShuntABCD(complex(0, 0.2))).
		Mul(SeriesABCD(complex(0, -7))).
		Mul(ShuntABCD(0.5))
	det := m.A()*m.D() - m.B()*m.C()
	assert.InDelta(t, 0, cmplx.Abs(det-1), 1e-12)
	assert.True(t, m.IsFinite())
}

func TestIsFinite(t *testing.T) {
	m := Identity()
	m[0][1] = cmplx.Inf()
	assert.False(t, m.IsFinite())
	m[0][1] = cmplx.NaN()
	assert.False(t, m.IsFinite())
}
