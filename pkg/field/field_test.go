package field

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/ecpoint/go-sea/pkg/util/assert"
)

func mustField(t *testing.T, p *big.Int) *Field {
	t.Helper()

	f, err := New(p)
	if err != nil {
		t.Fatal(err)
	}

	return f
}

func testPrime(t *testing.T) *big.Int {
	// 2^255 - 19
	p, _ := new(big.Int).SetString("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed", 16)
	return p
}

func TestField_BadModulus(t *testing.T) {
	for _, n := range []int64{0, 1, 2, 3, 4, 6, 9, 1 << 20} {
		if _, err := New(big.NewInt(n)); err == nil {
			t.Errorf("expected error for modulus %d", n)
		}
	}
}

func TestField_MulAgainstBig(t *testing.T) {
	var (
		p   = testPrime(t)
		f   = mustField(t, p)
		rng = rand.New(rand.NewPCG(1, 2))
		ref = new(big.Int)
	)

	for range 1000 {
		a := RandBelow(rng, p)
		b := RandBelow(rng, p)

		x := f.Mul(f.NewElement(a), f.NewElement(b))

		ref.Mul(a, b).Mod(ref, p)
		assert.BigEqual(t, ref, f.BigInt(x))
	}
}

func TestField_AddSubNeg(t *testing.T) {
	var (
		p   = testPrime(t)
		f   = mustField(t, p)
		rng = rand.New(rand.NewPCG(3, 4))
		ref = new(big.Int)
	)

	for range 1000 {
		a := RandBelow(rng, p)
		b := RandBelow(rng, p)
		x := f.NewElement(a)
		y := f.NewElement(b)

		ref.Add(a, b).Mod(ref, p)
		assert.BigEqual(t, ref, f.BigInt(f.Add(x, y)))

		ref.Sub(a, b).Mod(ref, p)
		assert.BigEqual(t, ref, f.BigInt(f.Sub(x, y)))

		ref.Neg(a).Mod(ref, p)
		assert.BigEqual(t, ref, f.BigInt(f.Neg(x)))
	}
}

func TestField_Inverse(t *testing.T) {
	var (
		p   = testPrime(t)
		f   = mustField(t, p)
		rng = rand.New(rand.NewPCG(5, 6))
	)

	for range 200 {
		a := RandBelow(rng, p)
		if a.Sign() == 0 {
			continue
		}

		x := f.NewElement(a)
		assert.True(t, f.IsOne(f.Mul(x, f.Inv(x))))
	}
}

func TestField_InvertZeroPanics(t *testing.T) {
	f := mustField(t, big.NewInt(101))

	defer func() {
		if _, ok := recover().(*SanityError); !ok {
			t.Fatal("expected SanityError")
		}
	}()

	f.Inv(f.Zero())
}

func TestField_Pow(t *testing.T) {
	var (
		p   = testPrime(t)
		f   = mustField(t, p)
		rng = rand.New(rand.NewPCG(7, 8))
		ref = new(big.Int)
	)

	for range 100 {
		a := RandBelow(rng, p)
		e := RandBelow(rng, big.NewInt(1<<30))

		ref.Exp(a, e, p)
		assert.BigEqual(t, ref, f.BigInt(f.Pow(f.NewElement(a), e)))
	}
}

func TestField_SqrtRoundTrip(t *testing.T) {
	// one prime = 1 (mod 4) and one = 3 (mod 4) to cover both paths
	for _, ps := range []string{
		"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed",
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
	} {
		p, _ := new(big.Int).SetString(ps, 16)

		var (
			f   = mustField(t, p)
			rng = rand.New(rand.NewPCG(9, 10))
		)

		for range 100 {
			a := f.Rand(rng)
			sq := f.Sqr(a)

			r, ok := f.Sqrt(sq)
			assert.True(t, ok, "square has no root")
			assert.True(t, f.Equal(f.Sqr(r), sq))
		}
	}
}

func TestField_SqrtNonResidue(t *testing.T) {
	var (
		f   = mustField(t, big.NewInt(103)) // 3 mod 4
		rng = rand.New(rand.NewPCG(11, 12))
	)

	for range 50 {
		a := f.Rand(rng)
		if f.IsZero(a) {
			continue
		}

		_, ok := f.Sqrt(a)
		assert.Equal(t, f.Legendre(a) == 1, ok)
	}
}

func TestField_Legendre(t *testing.T) {
	f := mustField(t, big.NewInt(23))

	residues := 0
	for i := int64(1); i < 23; i++ {
		if f.Legendre(f.FromInt64(i)) == 1 {
			residues++
		}
	}
	// exactly half the non-zero elements are squares
	assert.Equal(t, 11, residues)
}
