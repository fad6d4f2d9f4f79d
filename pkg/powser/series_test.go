package powser

import (
	"math/big"
	"testing"

	"github.com/ecpoint/go-sea/pkg/util/assert"
)

func TestSeries_AddMul(t *testing.T) {
	r := NewRing(10)

	// (1 + x)(1 - x) = 1 - x^2
	a := r.Add(Scalar(1), Monomial(big.NewInt(1), 1))
	b := r.Add(Scalar(1), Monomial(big.NewInt(-1), 1))
	p := r.Mul(a, b)

	assert.BigEqualInt64(t, 1, p.Coeff(0))
	assert.BigEqualInt64(t, 0, p.Coeff(1))
	assert.BigEqualInt64(t, -1, p.Coeff(2))
}

func TestSeries_Geometric(t *testing.T) {
	r := NewRing(16)

	// 1/(1-x) = 1 + x + x^2 + ...
	d := r.Add(Scalar(1), Monomial(big.NewInt(-1), 1))
	g := r.Inv(d)

	for i := 0; i < 16; i++ {
		assert.BigEqualInt64(t, 1, g.Coeff(i), "coefficient %d", i)
	}
	// and the division round-trips
	back := r.Mul(g, d)
	assert.BigEqualInt64(t, 1, back.Coeff(0))
	assert.True(t, back.First() == 0 && len(back.c) == 1 || back.Coeff(1).Sign() == 0)
}

func TestSeries_DivLaurent(t *testing.T) {
	r := NewRing(8)

	// (x^-2 + x) / x^-1 = x^-1 + x^2
	a := r.Add(Monomial(big.NewInt(1), -2), Monomial(big.NewInt(1), 1))
	b := Monomial(big.NewInt(1), -1)
	q := r.Div(a, b)

	assert.BigEqualInt64(t, 1, q.Coeff(-1))
	assert.BigEqualInt64(t, 1, q.Coeff(2))
	assert.Equal(t, -1, q.First())
}

func TestSeries_PowerSubstitution(t *testing.T) {
	r := NewRing(4)
	rl := NewRing(12)

	// (1 + 2x + 3x^2) with x -> x^3
	s := r.Add(Scalar(1), r.Add(Monomial(big.NewInt(2), 1), Monomial(big.NewInt(3), 2)))
	p := rl.Power(s, 3)

	assert.BigEqualInt64(t, 1, p.Coeff(0))
	assert.BigEqualInt64(t, 2, p.Coeff(3))
	assert.BigEqualInt64(t, 3, p.Coeff(6))
	assert.BigEqualInt64(t, 0, p.Coeff(1))
	assert.BigEqualInt64(t, 0, p.Coeff(2))
}

func TestSeries_Phase(t *testing.T) {
	r := NewRing(10)

	// 1 + x + x^2 + ... -> phase 3 keeps 3.(1 + x^3 + x^6 + x^9)
	g := r.Inv(r.Add(Scalar(1), Monomial(big.NewInt(-1), 1)))
	p := r.Phase(g, 3)

	for i := 0; i < 10; i++ {
		want := int64(0)
		if i%3 == 0 {
			want = 3
		}

		assert.BigEqualInt64(t, want, p.Coeff(i), "coefficient %d", i)
	}
}

func TestSeries_DivXn(t *testing.T) {
	r := NewRing(10)

	s := r.DivXn(Monomial(big.NewInt(7), 5), 2)
	assert.BigEqualInt64(t, 7, s.Coeff(3))
	assert.Equal(t, 3, s.First())
}

func TestEta_PentagonalSigns(t *testing.T) {
	r := NewRing(16)
	e := r.Eta()

	// 1 - x - x^2 + x^5 + x^7 - x^12 - x^15 ...
	want := map[int]int64{0: 1, 1: -1, 2: -1, 5: 1, 7: 1, 12: -1, 15: -1}

	for i := 0; i < 16; i++ {
		assert.BigEqualInt64(t, want[i], e.Coeff(i), "coefficient %d", i)
	}
}

func TestKlein_QExpansion(t *testing.T) {
	r := NewRing(5)
	j := r.Klein()

	// j = 1/q + 744 + 196884 q + 21493760 q^2 + 864299970 q^3 + ...
	assert.Equal(t, -1, j.First())
	assert.BigEqualInt64(t, 1, j.Coeff(-1))
	assert.BigEqualInt64(t, 744, j.Coeff(0))
	assert.BigEqualInt64(t, 196884, j.Coeff(1))
	assert.BigEqualInt64(t, 21493760, j.Coeff(2))
	assert.BigEqualInt64(t, 864299970, j.Coeff(3))
}
