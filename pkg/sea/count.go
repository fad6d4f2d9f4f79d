// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package sea counts the points of an elliptic curve y^2 = x^3 + Ax + B
// over GF(p) with the Schoof-Elkies-Atkin algorithm in Mueller's variant:
// small primes by Schoof's original method, Elkies primes through kernel
// factors of the division polynomial, the simplest Atkin case, and a
// Pollard lambda finish over the residue left by the CRT.
package sea

import (
	"io"
	"math/big"
	"math/rand/v2"
	"os"

	"github.com/ecpoint/go-sea/pkg/crt"
	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/curve"
	"github.com/ecpoint/go-sea/pkg/kangaroo"
	"github.com/ecpoint/go-sea/pkg/modpoly"
	"github.com/ecpoint/go-sea/pkg/polyxy"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config tunes a count.
type Config struct {
	// AtkinAll enables the general Atkin splitting search rather than the
	// single-candidate subcase.
	AtkinAll bool
	// MaxAtkinPrime skips Atkin processing above this bound unless
	// AtkinAll is set.
	MaxAtkinPrime int
	// Search aborts as soon as a small prime divides the order, letting a
	// driver move on to the next curve.
	Search bool
	// Kangaroo carries the herd tuning constants.
	Kangaroo kangaroo.Params
	// Rand drives point selection; fixing it makes the count bit exact
	// reproducible.  Defaults to an entropy seeded source.
	Rand *rand.Rand
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		MaxAtkinPrime: 100,
		Kangaroo:      kangaroo.DefaultParams(),
	}
}

// Result of a point count.
type Result struct {
	P     *big.Int
	A, B  *big.Int
	Order *big.Int
	Trace *big.Int
	// X, Y are the affine coordinates of a random curve point, a usable
	// generator whenever Order is prime.
	X, Y *big.Int
	// Anomalous curves (order = p) and curves failing the MOV screen are
	// flagged rather than rejected.
	Anomalous bool
	MOVWeak   bool
}

// Count reads the reduced modular polynomial file (which fixes the prime
// p) and counts the points of y^2 = x^3 + Ax + B over GF(p).
func Count(a, b *big.Int, polyPath string, cfg Config) (res *Result, err error) {
	defer recoverSanity(&err)

	file, err := os.Open(polyPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening modular polynomial file")
	}

	defer file.Close()

	rd := modpoly.NewReader(file)

	p, err := rd.ReadPrime()
	if err != nil {
		return nil, err
	}

	log.Infof("P = %s (%d bits, P mod 24 = %s)",
		p, p.BitLen(), new(big.Int).Mod(p, big.NewInt(24)))

	s, err := newCurveState(p, a, b)
	if err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	// pull in the pre-processed modular polynomials
	var (
		xy      = polyxy.NewRing(s.PR)
		records []modpoly.Record
	)

	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	log.Infof("%d modular polynomials read", len(records))

	// how much CRT information is needed before the kangaroos take over
	shift := uint(64)
	if p.BitLen() > 256 {
		shift = 72
	}

	threshold := new(big.Int).Sqrt(new(big.Int).Rsh(p, shift))

	var (
		acc = crt.NewAccumulator()
		p1  = new(big.Int).Add(p, big.NewInt(1))
	)

	record := func(l, t int64) {
		acc.Add(l, t)
		log.Infof("NP mod %d = %d", l, new(big.Int).Mod(
			new(big.Int).Sub(p1, big.NewInt(t)), big.NewInt(l)).Int64())
	}

	// trace parity, subsumed by the mod 8 constraint but cheap and useful
	// for early aborts
	parity := s.traceParity()
	np2 := new(big.Int).Sub(p1, big.NewInt(int64(parity)))
	log.Infof("NP mod 2 = %d", np2.Bit(0))

	if cfg.Search && np2.Bit(0) == 0 {
		return nil, ErrEarlyAbort
	}

	// Schoof's original method on the small prime powers
	if err := s.schoofSmall(record, cfg.Search); err != nil {
		return nil, err
	}

	// one Elkies or Atkin constraint per file prime until the product
	// clears the threshold
	exhausted := true

	for _, rec := range records {
		if acc.Product().Cmp(threshold) > 0 {
			exhausted = false
			break
		}

		if rec.L <= schoofBound {
			continue
		}

		if err := s.filePrime(xy, rec, cfg, record); err != nil {
			return nil, err
		}
	}

	if exhausted && acc.Product().Cmp(threshold) <= 0 {
		log.Warn("ran out of modular polynomials: kangaroos face a wider range")
	}

	// combine everything known about t and release the herds
	var (
		n       = acc.Product()
		partial = acc.Solve()
		residue = new(big.Int).Mod(new(big.Int).Sub(p1, partial), n)
		ec      = curve.New(s.F, s.A, s.B)
	)

	log.Infof("NP = %s (mod %s)", residue, n)

	order, err := kangaroo.Search(ec, residue, n, cfg.Kangaroo, rng)
	if err != nil {
		return nil, errors.Wrap(ErrBadParams, err.Error())
	}

	res = &Result{
		P:     p,
		A:     new(big.Int).Set(a),
		B:     new(big.Int).Set(b),
		Order: order,
		Trace: new(big.Int).Sub(p1, order),
	}

	// a random point, of prime order whenever the count is prime
	pt := ec.Rand(rng)
	res.X = s.F.BigInt(pt.X)
	res.Y = s.F.BigInt(pt.Y)

	if order.Cmp(p) == 0 {
		res.Anomalous = true

		log.Warn("curve is anomalous")
	}

	// MOV screen: small embedding degrees break the curve pairing-wise
	d := big.NewInt(1)
	for i := 0; i < 50; i++ {
		d.Mul(d, p).Mod(d, order)

		if d.Cmp(big.NewInt(1)) == 0 {
			res.MOVWeak = true

			log.Warn("curve fails the MOV condition")

			break
		}
	}

	return res, nil
}

// filePrime classifies one modular polynomial prime and, when it talks,
// records its trace constraint.
func (s *curveState) filePrime(xy *polyxy.Ring, rec modpoly.Record, cfg Config, record func(l, t int64)) error {
	l := rec.L

	// rebuild the bivariate polynomial over this field
	var g polyxy.Poly
	for _, t := range rec.Terms {
		g = xy.AddTerm(g, s.F.NewElement(t.C), t.NX, t.NY)
	}

	// the modulus G_l(x, j)
	f := xy.EvalY(g, s.J)
	if f.Degree() != l+1 {
		return errors.Wrapf(modpoly.ErrBadFile, "modular polynomial for %d has degree %d", l, f.Degree())
	}

	var (
		m  = s.setmod(f)
		xp = m.R.PowX(s.F.Modulus())
		h  = s.PR.Gcd(s.PR.Sub(xp, s.PR.X()), m.R.M)
	)

	switch h.Degree() {
	case l + 1:
		// pathological: the curve is l-isogenous to itself in too many ways
		log.Debugf("prime %d pathological, skipped", l)
		return nil

	case 0:
		if !cfg.AtkinAll && l > cfg.MaxAtkinPrime {
			log.Debugf("Atkin prime %d too large, skipped", l)
			return nil
		}

		if t, ok := s.atkinTrace(m, xp, l, cfg.AtkinAll); ok {
			record(int64(l), t)
		}

		return nil
	}

	// Elkies prime: extract an eigenvalue kernel root of G_l(x, j)
	var (
		discrim int
		root    field.Element
	)

	switch h.Degree() {
	case 1:
		discrim = 0
		root = s.F.Neg(s.PR.Coeff(h, 0))
	case 2:
		discrim = 1

		var (
			qb = s.PR.Coeff(h, 1)
			qc = s.PR.Coeff(h, 0)
		)

		d, ok := s.F.Sqrt(s.F.Sub(s.F.Sqr(qb), s.F.Mul(s.F.FromInt64(4), qc)))
		if !ok {
			return errors.Wrapf(ErrBadParams, "kernel quadratic for %d has no root", l)
		}

		root = s.F.Div(s.F.Neg(s.F.Add(qb, d)), s.F.FromInt64(2))
	default:
		log.Debugf("prime %d has unexpected kernel degree %d, skipped", l, h.Degree())
		return nil
	}

	is := etaExponent(l)

	iso, ok := s.isogenyParams(xy, g, root, l, is)
	if !ok {
		log.Warnf("isogenous curve square root failed for %d, skipping", l)
		return nil
	}

	fl := s.kernelFactor(iso, l)

	if t, ok := s.elkiesTrace(fl, l, discrim); ok {
		record(int64(l), t)
	}

	return nil
}

// etaExponent returns the smallest s with 12 | s(l-1).
func etaExponent(l int) int {
	s := 1
	for s*(l-1)%12 != 0 {
		s++
	}

	return s
}
