package polyxy

import (
	"math/big"
	"testing"

	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/poly"
	"github.com/ecpoint/go-sea/pkg/util/assert"
)

func testRing(t *testing.T) *Ring {
	t.Helper()

	f, err := field.New(big.NewInt(10007))
	if err != nil {
		t.Fatal(err)
	}

	return NewRing(poly.NewRing(f))
}

// buildSample returns 3x^2y + 5y^2 + 7x
func buildSample(r *Ring) Poly {
	var p Poly

	p = r.AddTerm(p, r.P.F.FromInt64(3), 2, 1)
	p = r.AddTerm(p, r.P.F.FromInt64(5), 0, 2)
	p = r.AddTerm(p, r.P.F.FromInt64(7), 1, 0)

	return p
}

func TestPolyXY_Eval(t *testing.T) {
	r := testRing(t)
	p := buildSample(r)

	// at (2, 3): 3*4*3 + 5*9 + 7*2 = 95
	got := r.Eval(p, r.P.F.FromInt64(2), r.P.F.FromInt64(3))
	assert.BigEqual(t, big.NewInt(95), r.P.F.BigInt(got))
}

func TestPolyXY_EvalY(t *testing.T) {
	r := testRing(t)
	p := buildSample(r)

	// at y = 2: 6x^2 + 7x + 20
	u := r.EvalY(p, r.P.F.FromInt64(2))
	assert.True(t, r.P.Equal(u, r.P.FromInt64s(20, 7, 6)))
}

func TestPolyXY_Partials(t *testing.T) {
	r := testRing(t)
	p := buildSample(r)

	// d/dx = 6xy + 7, at (2,3): 43
	dx := r.DiffX(p)
	assert.BigEqual(t, big.NewInt(43), r.P.F.BigInt(r.Eval(dx, r.P.F.FromInt64(2), r.P.F.FromInt64(3))))

	// d/dy = 3x^2 + 10y, at (2,3): 42
	dy := r.DiffY(p)
	assert.BigEqual(t, big.NewInt(42), r.P.F.BigInt(r.Eval(dy, r.P.F.FromInt64(2), r.P.F.FromInt64(3))))

	// d2/dxdy = 6x, at (2,3): 12
	dxy := r.DiffY(dx)
	assert.BigEqual(t, big.NewInt(12), r.P.F.BigInt(r.Eval(dxy, r.P.F.FromInt64(2), r.P.F.FromInt64(3))))
}

func TestPolyXY_ZeroCoefficientsDropped(t *testing.T) {
	r := testRing(t)

	var p Poly

	p = r.AddTerm(p, r.P.F.Zero(), 3, 3)
	assert.Equal(t, 0, p.Len())
}
