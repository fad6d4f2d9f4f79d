package kangaroo

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/ecpoint/go-sea/pkg/curve"
	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/util/assert"
)

// bruteOrder counts points directly: #E = p + 1 + sum_x chi(x^3+Ax+B).
func bruteOrder(c *curve.Curve) *big.Int {
	var (
		p     = c.F.Modulus()
		order = new(big.Int).Add(p, big.NewInt(1))
		x     = new(big.Int)
	)

	for x.SetInt64(0); x.Cmp(p) < 0; x.Add(x, big.NewInt(1)) {
		rhs := c.F.Add(c.F.Mul(c.F.Add(c.F.Sqr(c.F.NewElement(x)), c.A), c.F.NewElement(x)), c.B)
		order.Add(order, big.NewInt(int64(c.F.Legendre(rhs))))
	}

	return order
}

func smallCurve(t *testing.T) *curve.Curve {
	t.Helper()

	f, err := field.New(big.NewInt(10007))
	if err != nil {
		t.Fatal(err)
	}

	return curve.New(f, f.FromInt64(-3), f.FromInt64(49))
}

func TestSearch_MatchesBruteForce(t *testing.T) {
	var (
		c    = smallCurve(t)
		want = bruteOrder(c)
		rng  = rand.New(rand.NewPCG(7, 7))
	)

	// unconstrained search (modulus one)
	got, err := Search(c, big.NewInt(0), big.NewInt(1), DefaultParams(), rng)
	assert.NoError(t, err)
	assert.BigEqual(t, want, got)
}

func TestSearch_WithResidueConstraint(t *testing.T) {
	var (
		c    = smallCurve(t)
		want = bruteOrder(c)
		rng  = rand.New(rand.NewPCG(8, 8))
		mod  = big.NewInt(2 * 3 * 5 * 7)
		res  = new(big.Int).Mod(want, mod)
	)

	got, err := Search(c, res, mod, DefaultParams(), rng)
	assert.NoError(t, err)
	assert.BigEqual(t, want, got)
}

func TestSearch_Deterministic(t *testing.T) {
	c := smallCurve(t)

	a, err := Search(c, big.NewInt(0), big.NewInt(1), DefaultParams(), rand.New(rand.NewPCG(9, 9)))
	assert.NoError(t, err)

	b, err := Search(c, big.NewInt(0), big.NewInt(1), DefaultParams(), rand.New(rand.NewPCG(9, 9)))
	assert.NoError(t, err)

	assert.BigEqual(t, a, b)
}

func TestSearch_HasseBoundAndKills(t *testing.T) {
	// a prime just above 2^40, whose Hasse window is about 2^22 wide
	p := new(big.Int).Lsh(big.NewInt(1), 40)
	for !p.ProbablyPrime(field.MillerRabinRounds) {
		p.Add(p, big.NewInt(1))
	}

	f, err := field.New(p)
	assert.NoError(t, err)

	var (
		c   = curve.New(f, f.FromInt64(-3), f.FromInt64(49))
		rng = rand.New(rand.NewPCG(10, 10))
	)

	order, err := Search(c, big.NewInt(0), big.NewInt(1), DefaultParams(), rng)
	assert.NoError(t, err)

	// Hasse: |#E - (p+1)| <= 2 sqrt(p)
	var (
		tr    = new(big.Int).Sub(new(big.Int).Add(p, big.NewInt(1)), order)
		bound = new(big.Int).Lsh(new(big.Int).Sqrt(p), 1)
	)

	assert.True(t, tr.CmpAbs(bound) <= 0, "Hasse bound violated")

	// the order kills random points
	for range 5 {
		assert.True(t, c.ScalarMul(c.Rand(rng), order).Inf)
	}
}
