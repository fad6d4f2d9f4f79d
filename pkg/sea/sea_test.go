package sea

import (
	"bytes"
	"math/big"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecpoint/go-sea/pkg/curve"
	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/modpoly"
	"github.com/ecpoint/go-sea/pkg/mueller"
	"github.com/ecpoint/go-sea/pkg/util/assert"
)

// polyFile writes a reduced modular polynomial file for p, generating the
// raw polynomials for [3, hi] first.
func polyFile(t *testing.T, p *big.Int, hi int) string {
	t.Helper()

	var raw bytes.Buffer

	if hi >= 3 {
		assert.NoError(t, mueller.Generate(mueller.DefaultConfig(0, hi), &raw))
	}

	path := filepath.Join(t.TempDir(), "mueller.pol")

	out, err := os.Create(path)
	assert.NoError(t, err)

	defer out.Close()

	_, err = modpoly.Reduce(p, &raw, out, false, 0)
	assert.NoError(t, err)

	return path
}

// bruteOrder counts points directly, p + 1 + sum chi(x^3+Ax+B).
func bruteOrder(t *testing.T, p, a, b *big.Int) *big.Int {
	t.Helper()

	f, err := field.New(p)
	assert.NoError(t, err)

	var (
		ae    = f.NewElement(a)
		be    = f.NewElement(b)
		order = new(big.Int).Add(p, big.NewInt(1))
		x     = new(big.Int)
		one   = big.NewInt(1)
	)

	for ; x.Cmp(p) < 0; x.Add(x, one) {
		xe := f.NewElement(x)
		rhs := f.Add(f.Mul(f.Add(f.Sqr(xe), ae), xe), be)
		order.Add(order, big.NewInt(int64(f.Legendre(rhs))))
	}

	return order
}

func seededConfig(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Rand = rand.New(rand.NewPCG(seed, seed))

	return cfg
}

func TestCount_MatchesBruteForce(t *testing.T) {
	var (
		p    = big.NewInt(10007)
		a    = big.NewInt(-3)
		b    = big.NewInt(49)
		path = polyFile(t, p, 0)
	)

	res, err := Count(a, b, path, seededConfig(1))
	assert.NoError(t, err)

	assert.BigEqual(t, bruteOrder(t, p, a, b), res.Order)
}

func TestCount_Scenario1(t *testing.T) {
	// p = 2^31 - 1, A = -3, B = 49
	var (
		p    = big.NewInt((1 << 31) - 1)
		a    = big.NewInt(-3)
		b    = big.NewInt(49)
		path = polyFile(t, p, 0)
	)

	res, err := Count(a, b, path, seededConfig(2))
	assert.NoError(t, err)

	// Hasse bound
	var (
		bound = new(big.Int).Lsh(new(big.Int).Sqrt(p), 1)
	)

	assert.True(t, res.Trace.CmpAbs(bound) <= 0, "Hasse bound violated")

	// the order kills random points
	f, err := field.New(p)
	assert.NoError(t, err)

	var (
		c   = curve.New(f, f.NewElement(a), f.NewElement(b))
		rng = rand.New(rand.NewPCG(3, 3))
	)

	for range 5 {
		assert.True(t, c.ScalarMul(c.Rand(rng), res.Order).Inf)
	}

	// the reported point is on the curve
	pt, ok := c.Set(f.NewElement(res.X))
	assert.True(t, ok)
	assert.BigEqual(t, res.Y, f.BigInt(pt.Y))

	// bit exact determinism under a fixed seed
	res2, err := Count(a, b, path, seededConfig(2))
	assert.NoError(t, err)
	assert.BigEqual(t, res.Order, res2.Order)
	assert.BigEqual(t, res.X, res2.X)
	assert.BigEqual(t, res.Y, res2.Y)
}

// nextPrime returns the first probable prime at or above n.
func nextPrime(n *big.Int) *big.Int {
	p := new(big.Int).Set(n)
	for !p.ProbablyPrime(field.MillerRabinRounds) {
		p.Add(p, big.NewInt(1))
	}

	return p
}

func TestCount_ElkiesAtkinPath(t *testing.T) {
	if testing.Short() {
		t.Skip("multi second end to end count")
	}

	// a 96 bit prime forces modular polynomial constraints beyond the
	// small prime powers
	var (
		p    = nextPrime(new(big.Int).Lsh(big.NewInt(1), 96))
		a    = big.NewInt(-3)
		b    = big.NewInt(49)
		path = polyFile(t, p, 40)
	)

	res, err := Count(a, b, path, seededConfig(4))
	assert.NoError(t, err)

	bound := new(big.Int).Lsh(new(big.Int).Sqrt(p), 1)
	assert.True(t, res.Trace.CmpAbs(bound) <= 0, "Hasse bound violated")

	f, err := field.New(p)
	assert.NoError(t, err)

	var (
		c   = curve.New(f, f.NewElement(a), f.NewElement(b))
		rng = rand.New(rand.NewPCG(5, 5))
	)

	for range 3 {
		assert.True(t, c.ScalarMul(c.Rand(rng), res.Order).Inf)
	}
}

func TestCount_RunsOutOfModularPolys(t *testing.T) {
	if testing.Short() {
		t.Skip("wide kangaroo search")
	}

	// the file stops at 13, well short of the threshold for a 101 bit
	// prime; the count must still finish and satisfy Hasse
	var (
		p    = nextPrime(new(big.Int).Lsh(big.NewInt(1), 101))
		a    = big.NewInt(-3)
		b    = big.NewInt(49)
		path = polyFile(t, p, 13)
	)

	res, err := Count(a, b, path, seededConfig(6))
	assert.NoError(t, err)

	bound := new(big.Int).Lsh(new(big.Int).Sqrt(p), 1)
	assert.True(t, res.Trace.CmpAbs(bound) <= 0)

	f, err := field.New(p)
	assert.NoError(t, err)

	c := curve.New(f, f.NewElement(a), f.NewElement(b))

	assert.True(t, c.ScalarMul(c.Rand(rand.New(rand.NewPCG(7, 7))), res.Order).Inf)
}

func TestCount_DegenerateCurves(t *testing.T) {
	var (
		p    = big.NewInt(10007)
		path = polyFile(t, p, 0)
	)

	// j = 0
	_, err := Count(big.NewInt(0), big.NewInt(1), path, seededConfig(8))
	assert.Error(t, err)

	// j = 1728
	_, err = Count(big.NewInt(1), big.NewInt(0), path, seededConfig(9))
	assert.Error(t, err)

	// singular: 4A^3 + 27B^2 = 0
	_, err = Count(big.NewInt(-3), big.NewInt(2), path, seededConfig(10))
	assert.Error(t, err)
}

func TestCount_CrtClosure(t *testing.T) {
	// the accumulated residue must agree with the true trace
	var (
		p    = big.NewInt(10007)
		a    = big.NewInt(-3)
		b    = big.NewInt(49)
		path = polyFile(t, p, 0)
	)

	res, err := Count(a, b, path, seededConfig(11))
	assert.NoError(t, err)

	var (
		want = bruteOrder(t, p, a, b)
		tr   = new(big.Int).Sub(new(big.Int).Add(p, big.NewInt(1)), want)
	)

	assert.BigEqual(t, tr, res.Trace)

	// the residues the small prime scan feeds the CRT are t mod 5, 7, 8, 9
	s, err := newCurveState(p, a, b)
	assert.NoError(t, err)

	assert.NoError(t, s.schoofSmall(func(l, tl int64) {
		lb := big.NewInt(l)
		assert.BigEqual(t, new(big.Int).Mod(tr, lb), big.NewInt(tl))
	}, false))
}

func TestCount_Scenario3_BignCurve(t *testing.T) {
	// the 256 bit bign-curve256v1 standard curve; needs a pre-generated
	// modular polynomial file spanning a couple of hundred primes, so the
	// scenario only runs when one is supplied
	path := os.Getenv("SEA_BIGN_POLYFILE")
	if path == "" {
		t.Skip("set SEA_BIGN_POLYFILE to a reduced file for p = 2^256 - 189")
	}

	var (
		a, _ = new(big.Int).SetString("-3", 10)
		b, _ = new(big.Int).SetString("77ce6c1515f3a8edd2c13aabe4d8fbbe4cf55069978b9253b22e7d6bd69c03f1", 16)
		q, _ = new(big.Int).SetString("ffffffffffffffffffffffffffffffffd95c8ed60dfb4dfc7e5abf99263d6607", 16)
	)

	res, err := Count(a, b, path, seededConfig(12))
	assert.NoError(t, err)
	assert.BigEqual(t, q, res.Order)
}

func TestDivisionPolynomialDegrees(t *testing.T) {
	s, err := newCurveState(big.NewInt(10007), big.NewInt(-3), big.NewInt(49))
	assert.NoError(t, err)

	dp, _, _ := s.divisionPolys(schoofBound+1, 1+(schoofBound+1)/2)

	// odd psi_l has degree (l^2 - 1)/2; even ones carry an implied y
	// factor and have degree (l^2 - 4)/2
	for _, l := range []int{3, 5, 7, 9} {
		assert.Equal(t, (l*l-1)/2, dp[l].Degree(), "l=%d", l)
	}

	assert.Equal(t, (4*4-4)/2, dp[4].Degree())
	assert.Equal(t, (8*8-4)/2, dp[8].Degree())
}
