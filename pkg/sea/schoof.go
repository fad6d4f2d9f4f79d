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
package sea

import (
	"math/big"

	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/poly"
	log "github.com/sirupsen/logrus"
)

// smallPrimes are handled by Schoof's original algorithm; the two prime
// powers let the CRT keep the 2- and 3-adic information without the parity
// and mod 3 results, which they subsume.
var smallPrimes = []int{3, 5, 7, 8, 9}

// schoofBound is the largest entry of smallPrimes.
const schoofBound = 9

// firstRecorded excludes 3 from the constraint set (9 covers it).
const firstRecorded = 5

// divisionPolys returns the modified division polynomials P[0..n+1] of the
// curve, together with their squares and cubes up to index sq.  In this
// normalisation even-index polynomials carry an implied y factor, so P[2]
// is the constant 2.
func (s *curveState) divisionPolys(n, sq int) (p, p2, p3 []poly.Poly) {
	var (
		r = s.PR
		f = s.F
	)

	p = make([]poly.Poly, n+2)
	p2 = make([]poly.Poly, n+2)
	p3 = make([]poly.Poly, n+2)

	a, b := s.A, s.B

	p[0] = r.Zero()
	p[1] = r.One()
	p[2] = r.FromInt64s(2)

	// P3 = 3x^4 + 6Ax^2 + 12Bx - A^2
	p[3] = r.New(
		f.Neg(f.Sqr(a)),
		f.Mul(f.FromInt64(12), b),
		f.Mul(f.FromInt64(6), a),
		f.Zero(),
		f.FromInt64(3),
	)

	// P4 = 4x^6 + 20Ax^4 + 80Bx^3 - 20A^2x^2 - 16ABx - 4(8B^2 + A^3)
	p[4] = r.New(
		f.Mul(f.FromInt64(-4), f.Add(f.Mul(f.FromInt64(8), f.Sqr(b)), f.Mul(f.Sqr(a), a))),
		f.Mul(f.FromInt64(-16), f.Mul(a, b)),
		f.Mul(f.FromInt64(-20), f.Sqr(a)),
		f.Mul(f.FromInt64(80), b),
		f.Mul(f.FromInt64(20), a),
		f.Zero(),
		f.FromInt64(4),
	)

	for j := 1; j <= min(4, sq); j++ {
		p2[j] = r.Square(p[j])
		p3[j] = r.Mul(p2[j], p[j])
	}

	for j := 5; j <= n+1; j++ {
		if j%2 == 1 {
			m := (j - 1) / 2
			if m%2 == 0 {
				p[j] = r.Sub(r.Mul(r.Mul(p[m+2], p3[m]), s.Y4), r.Mul(p3[m+1], p[m-1]))
			} else {
				p[j] = r.Sub(r.Mul(p[m+2], p3[m]), r.Mul(s.Y4, r.Mul(p3[m+1], p[m-1])))
			}
		} else {
			m := j / 2
			inner := r.Sub(r.Mul(p[m+2], p2[m-1]), r.Mul(p[m-2], p2[m+1]))
			p[j] = r.DivScalar(r.Mul(p[m], inner), f.FromInt64(2))
		}

		if j <= sq {
			p2[j] = r.Square(p[j])
			p3[j] = r.Mul(p2[j], p[j])
		}
	}

	return p, p2, p3
}

// traceParity determines t mod 2: the trace is odd exactly when
// gcd(X^p - X, x^3 + Ax + B) is trivial, i.e. the curve has no rational
// 2-torsion.
func (s *curveState) traceParity() int {
	m := s.setmod(s.Y2)

	var (
		xp = m.R.PowX(s.F.Modulus())
		g  = s.PR.Gcd(s.PR.Sub(xp, s.PR.X()), s.Y2)
	)

	if g.Degree() == 0 {
		return 1
	}

	return 0
}

// schoofTrace runs Schoof's original scan for one small prime (or prime
// power) lp, returning t mod lp.
func (s *curveState) schoofTrace(lp int, dp []poly.Poly) int {
	var (
		p = s.F.Modulus()
		k = int(new(big.Int).Mod(p, big.NewInt(int64(lp))).Int64())
		m = s.setmod(dp[lp])
		r = m.R
	)

	// the expensive quantities: X^p, Y^p, X^(p^2), Y^(p^2)
	var (
		xp  = r.PowX(p)
		yp  = r.Pow(m.MY2, new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1))
		xpp = r.Compose(xp, xp)
		ypp = r.Mul(yp, r.Compose(yp, xp))
	)

	// k.(X, Y) from the division polynomials, Schoof prop (2.2), in
	// projective form
	var (
		pk  = r.Reduce(dp[k])
		pk1 = r.Reduce(dp[k+1])
		pm1 = r.Reduce(dp[k-1])
		pk2 = r.Reduce(dp[k+2])
		p2k = r.Square(pk)
		t   projective
	)

	quarter := s.F.Inv(s.F.FromInt64(4))

	if k%2 == 0 {
		t.X = r.Sub(r.Mul(r.Mul(r.P.X(), m.MY2), p2k), r.Mul(pm1, pk1))
		t.Y = r.MulScalar(r.Sub(r.Mul(pk2, r.Square(pm1)), r.Mul(r.Reduce(dp[k-2]), r.Square(pk1))), quarter)
		t.X = r.Mul(t.X, m.MY2)
		t.Y = r.Mul(t.Y, m.MY2)
		t.Z = r.Mul(m.MY2, pk)
	} else {
		t.X = r.Sub(r.Mul(r.P.X(), p2k), r.Mul(m.MY2, r.Mul(pm1, pk1)))
		if k == 1 {
			t.Y = r.MulScalar(r.Add(r.Mul(pk2, r.Square(pm1)), r.Square(pk1)), quarter)
		} else {
			t.Y = r.MulScalar(r.Sub(r.Mul(pk2, r.Square(pm1)), r.Mul(r.Reduce(dp[k-2]), r.Square(pk1))), quarter)
		}

		t.Z = pk
	}

	// (X^(p^2), Y^(p^2)) + k.(X, Y)
	t = ellipticAdd(m, s, t, xpp, ypp)

	if t.IsInfinity() {
		// Frobenius^2 = -k, so the trace term vanishes
		return 0
	}

	// scan tau.(X^p, Y^p) until it matches
	var (
		l   = projective{X: xp, Y: yp, Z: r.P.One()}
		zt2 = r.Square(t.Z)
	)

	for tau := 1; tau <= lp/2; tau++ {
		zl2 := r.Square(l.Z)

		if r.Sub(r.Mul(t.X, zl2), r.Mul(zt2, l.X)).IsZero() {
			// X coordinates agree; the Y coordinate picks the sign
			if !r.Sub(r.Mul(t.Y, r.Mul(zl2, l.Z)), r.Mul(l.Y, r.Mul(t.Z, zt2))).IsZero() {
				return lp - tau
			}

			return tau
		}

		l = ellipticAdd(m, s, l, xp, yp)
	}

	panic(&field.SanityError{Msg: "no Frobenius trace matched modulo small prime"})
}

// schoofSmall runs the original Schoof algorithm over the small prime
// (power) set, pushing constraints into the accumulator.  In search mode a
// trace revealing a small prime factor of the order aborts immediately.
func (s *curveState) schoofSmall(rec func(l, t int64), search bool) error {
	var (
		p1       = new(big.Int).Add(s.F.Modulus(), big.NewInt(1))
		dp, _, _ = s.divisionPolys(schoofBound+1, 1+(schoofBound+1)/2)
	)

	for _, lp := range smallPrimes {
		tau := s.schoofTrace(lp, dp)

		var (
			lb  = big.NewInt(int64(lp))
			rem = new(big.Int).Mod(new(big.Int).Sub(p1, big.NewInt(int64(tau))), lb)
		)

		log.Infof("NP mod %d = %s", lp, rem)

		if search && rem.Sign() == 0 {
			return ErrEarlyAbort
		}

		if lp >= firstRecorded {
			rec(int64(lp), int64(tau))
		}
	}

	return nil
}
