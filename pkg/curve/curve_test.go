package curve

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/util/assert"
)

// testCurve is y^2 = x^3 - 3x + 49 over a small prime field.
func testCurve(t *testing.T) *Curve {
	t.Helper()

	f, err := field.New(big.NewInt(10007))
	if err != nil {
		t.Fatal(err)
	}

	return New(f, f.FromInt64(-3), f.FromInt64(49))
}

func TestCurve_AddClosure(t *testing.T) {
	var (
		c   = testCurve(t)
		rng = rand.New(rand.NewPCG(1, 1))
	)

	for range 100 {
		p := c.Rand(rng)
		q := c.Rand(rng)

		assert.True(t, c.IsOnCurve(c.Add(p, q)))
		assert.True(t, c.IsOnCurve(c.Double(p)))
	}
}

func TestCurve_GroupLaws(t *testing.T) {
	var (
		c   = testCurve(t)
		rng = rand.New(rand.NewPCG(2, 2))
		p   = c.Rand(rng)
		q   = c.Rand(rng)
		r   = c.Rand(rng)
	)

	// commutativity and associativity
	assert.True(t, c.Equal(c.Add(p, q), c.Add(q, p)))
	assert.True(t, c.Equal(c.Add(c.Add(p, q), r), c.Add(p, c.Add(q, r))))
	// inverses and identity
	assert.True(t, c.Add(p, c.Neg(p)).Inf)
	assert.True(t, c.Equal(c.Add(p, Infinity()), p))
}

func TestCurve_ScalarMul(t *testing.T) {
	var (
		c   = testCurve(t)
		rng = rand.New(rand.NewPCG(3, 3))
		p   = c.Rand(rng)
		acc = Infinity()
	)

	for k := int64(0); k < 50; k++ {
		assert.True(t, c.Equal(acc, c.ScalarMul(p, big.NewInt(k))), "k=%d", k)
		acc = c.Add(acc, p)
	}

	// negative scalars
	assert.True(t, c.Equal(c.ScalarMul(p, big.NewInt(-7)), c.Neg(c.ScalarMul(p, big.NewInt(7)))))
}

func TestCurve_MultiAddMatchesAdd(t *testing.T) {
	var (
		c   = testCurve(t)
		rng = rand.New(rand.NewPCG(4, 4))
	)

	for range 20 {
		var (
			dst = make([]Point, 10)
			add = make([]Point, 10)
			ref = make([]Point, 10)
		)

		for i := range dst {
			dst[i] = c.Rand(rng)
			add[i] = c.Rand(rng)
			ref[i] = c.Add(dst[i], add[i])
		}
		// exercise the special cases too
		dst[7] = Infinity()
		ref[7] = c.Add(dst[7], add[7])
		add[8] = dst[8]
		ref[8] = c.Add(dst[8], add[8])
		add[9] = c.Neg(dst[9])
		ref[9] = c.Add(dst[9], add[9])

		c.MultiAdd(dst, add)

		for i := range dst {
			assert.True(t, c.Equal(dst[i], ref[i]), "index %d", i)
		}
	}
}

func TestCurve_SetPicksCanonicalRoot(t *testing.T) {
	var (
		c   = testCurve(t)
		rng = rand.New(rand.NewPCG(5, 5))
	)

	for range 50 {
		x := c.F.Rand(rng)

		p, ok := c.Set(x)
		if !ok {
			continue
		}

		q, _ := c.Set(x)
		assert.True(t, c.Equal(p, q))
		assert.True(t, c.IsOnCurve(p))
	}
}
