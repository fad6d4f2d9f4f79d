package poly

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/util/assert"
)

func testRing(t *testing.T) *Ring {
	t.Helper()

	p, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)

	f, err := field.New(p)
	if err != nil {
		t.Fatal(err)
	}

	return NewRing(f)
}

func randPoly(r *Ring, rng *rand.Rand, deg int) Poly {
	c := make([]field.Element, deg+1)
	for i := range c {
		c[i] = r.F.Rand(rng)
	}
	// keep the intended degree
	for r.F.IsZero(c[deg]) {
		c[deg] = r.F.Rand(rng)
	}

	return r.New(c...)
}

func TestPoly_MulMatchesNaive(t *testing.T) {
	var (
		r   = testRing(t)
		rng = rand.New(rand.NewPCG(1, 1))
	)

	for _, deg := range []int{33, 64, 100, 200} {
		a := randPoly(r, rng, deg)
		b := randPoly(r, rng, deg+7)

		fast := r.mulFFT(a, b)
		slow := r.mulNaive(a, b)

		assert.True(t, r.Equal(fast, slow), "degree %d", deg)
		assert.Equal(t, 2*deg+7, fast.Degree())
	}
}

func TestPoly_MulCommutesAndDistributes(t *testing.T) {
	var (
		r   = testRing(t)
		rng = rand.New(rand.NewPCG(2, 2))
		a   = randPoly(r, rng, 40)
		b   = randPoly(r, rng, 50)
		c   = randPoly(r, rng, 35)
	)

	assert.True(t, r.Equal(r.Mul(a, b), r.Mul(b, a)))
	assert.True(t, r.Equal(
		r.Mul(a, r.Add(b, c)),
		r.Add(r.Mul(a, b), r.Mul(a, c)),
	))
}

func TestPoly_DivMod(t *testing.T) {
	var (
		r   = testRing(t)
		rng = rand.New(rand.NewPCG(3, 3))
	)

	for range 20 {
		a := randPoly(r, rng, 60)
		b := randPoly(r, rng, 17)

		q, rem := r.DivMod(a, b)

		assert.True(t, rem.Degree() < b.Degree())
		assert.True(t, r.Equal(a, r.Add(r.Mul(q, b), rem)))
	}
}

func TestPoly_Gcd(t *testing.T) {
	var (
		r   = testRing(t)
		rng = rand.New(rand.NewPCG(4, 4))
		g   = randPoly(r, rng, 5)
		a   = r.Mul(g, randPoly(r, rng, 11))
		b   = r.Mul(g, randPoly(r, rng, 13))
		d   = r.Gcd(a, b)
	)

	// d is a monic multiple of g's monic form dividing both
	assert.True(t, d.Degree() >= 5)
	assert.True(t, r.F.IsOne(r.Lead(d)))
	assert.True(t, r.Rem(a, d).IsZero())
	assert.True(t, r.Rem(b, d).IsZero())
}

func TestPoly_XGcd(t *testing.T) {
	var (
		r   = testRing(t)
		rng = rand.New(rand.NewPCG(5, 5))
		a   = randPoly(r, rng, 9)
		b   = randPoly(r, rng, 7)
	)

	g, u, v := r.XGcd(a, b)
	lhs := r.Add(r.Mul(u, a), r.Mul(v, b))
	assert.True(t, r.Equal(g, lhs))
}

func TestPoly_EvalDiff(t *testing.T) {
	r := testRing(t)

	// p = x^3 + 2x + 5, p(3) = 38, p' = 3x^2 + 2
	p := r.FromInt64s(5, 2, 0, 1)
	assert.BigEqual(t, big.NewInt(38), r.F.BigInt(r.Eval(p, r.F.FromInt64(3))))

	d := r.Diff(p)
	assert.True(t, r.Equal(d, r.FromInt64s(2, 0, 3)))
}

func TestPoly_ModDivXn(t *testing.T) {
	r := testRing(t)

	p := r.FromInt64s(1, 2, 3, 4, 5)
	assert.True(t, r.Equal(r.ModXn(p, 3), r.FromInt64s(1, 2, 3)))
	assert.True(t, r.Equal(r.DivXn(p, 2), r.FromInt64s(3, 4, 5)))
}

func TestGarner_RoundTrip(t *testing.T) {
	var (
		moduli = []*big.Int{big.NewInt(101), big.NewInt(103), big.NewInt(107)}
		x      = big.NewInt(1034567)
		res    = make([]*big.Int, 3)
	)

	for i, m := range moduli {
		res[i] = new(big.Int).Mod(x, m)
	}

	assert.BigEqual(t, x, garner(res, moduli))
}
