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
	"github.com/ecpoint/go-sea/pkg/polyxy"
	log "github.com/sirupsen/logrus"
)

// getCk returns the coefficients c[1..terms] of Mueller's lemma for the
// curve (a, b): the Laurent coefficients of the Weierstrass p-function.
func (s *curveState) getCk(terms int, a, b field.Element) []field.Element {
	f := s.F
	c := make([]field.Element, terms+1)

	if terms < 1 {
		return c
	}

	c[1] = f.Neg(f.Div(a, f.FromInt64(5)))

	if terms < 2 {
		return c
	}

	c[2] = f.Neg(f.Div(b, f.FromInt64(7)))

	for k := 3; k <= terms; k++ {
		acc := f.Zero()
		for h := 1; h <= k-2; h++ {
			acc = f.Add(acc, f.Mul(c[h], c[k-1-h]))
		}

		c[k] = f.Mul(acc, f.Div(f.FromInt64(3), f.FromInt64(int64((k-2)*(2*k+3)))))
	}

	return c
}

// isogenous carries the parameters of the l-isogenous curve derived from a
// root g of the modular polynomial.
type isogenous struct {
	atilde, btilde, p1 field.Element
}

// isogenyParams follows Mueller's procedure: partial derivatives of the
// modular polynomial at (g, j) determine the isogenous curve's a and b and
// the power sum p1 of the kernel's x coordinates.
func (s *curveState) isogenyParams(xy *polyxy.Ring, mp polyxy.Poly, g field.Element, l, is int) (isogenous, bool) {
	var (
		f  = s.F
		el = f.FromInt64(int64(l))
		es = f.FromInt64(int64(is))

		dGx  = xy.DiffX(mp)
		dGy  = xy.DiffY(mp)
		dGxx = xy.DiffX(dGx)
		dGxy = xy.DiffX(dGy)
		dGyy = xy.DiffY(dGy)

		eg  = xy.Eval(dGx, g, s.J)
		ej  = xy.Eval(dGy, g, s.J)
		exy = xy.Eval(dGxy, g, s.J)

		dg = f.Mul(g, eg)
		dj = f.Mul(s.J, ej)
	)

	// Mueller's chain works with the normalised discriminant
	// (E4^3 - E6^2)/1728 rather than -16(4A^3 + 27B^2)
	delta := f.Div(f.Sub(f.PowInt64(s.E4, 3), f.Sqr(s.E6)), f.FromInt64(1728))

	// delta_l = delta.g^(12/s) / l^12
	deltal := f.Div(f.Mul(delta, f.PowInt64(g, int64(12/is))), f.PowInt64(el, 12))

	var out isogenous

	if f.IsZero(dj) {
		e4l := f.Div(s.E4, f.Sqr(el))
		out.atilde = f.Mul(f.FromInt64(-3), f.Mul(f.PowInt64(el, 4), e4l))

		jl := f.Div(f.PowInt64(e4l, 3), deltal)

		root, ok := f.Sqrt(f.Mul(f.Sub(jl, f.FromInt64(1728)), deltal))
		if !ok {
			return out, false
		}

		out.btilde = f.Mul(f.FromInt64(2), f.Mul(f.PowInt64(el, 6), root))
		out.p1 = f.Zero()

		return out, true
	}

	twelve := f.FromInt64(12)

	// E2* and the chain towards the isogenous E4, E6
	e2s := f.Div(
		f.Mul(f.FromInt64(-12), f.Mul(s.E6, dj)),
		f.Mul(es, f.Mul(s.E4, dg)))

	var (
		gd  = f.Neg(f.Mul(f.Div(es, twelve), f.Mul(e2s, g)))
		jd  = f.Neg(f.Div(f.Mul(f.Sqr(s.E4), s.E6), delta))
		e0b = f.Div(s.E6, f.Mul(s.E4, e2s))

		dgd = f.Add(f.Mul(gd, eg),
			f.Mul(g, f.Add(f.Mul(gd, xy.Eval(dGxx, g, s.J)), f.Mul(jd, exy))))
		djd = f.Add(f.Mul(jd, ej),
			f.Mul(s.J, f.Add(f.Mul(jd, xy.Eval(dGyy, g, s.J)), f.Mul(gd, exy))))
	)

	e0bd := f.Div(f.Sub(f.Div(f.Neg(f.Mul(es, dgd)), twelve), f.Mul(e0b, djd)), dj)

	e4l := f.Div(
		f.Add(f.Sub(s.E4, f.Mul(e2s,
			f.Sub(f.Add(f.Mul(twelve, f.Div(e0bd, e0b)),
				f.Mul(f.FromInt64(6), f.Div(f.Sqr(s.E4), s.E6))),
				f.Mul(f.FromInt64(4), f.Div(s.E6, s.E4))))),
			f.Sqr(e2s)),
		f.Sqr(el))

	var (
		jl = f.Div(f.PowInt64(e4l, 3), deltal)
		fq = f.Div(f.PowInt64(el, int64(is)), g)
		fd = f.Div(f.Mul(es, f.Mul(e2s, fq)), twelve)

		dgs = xy.Eval(dGx, fq, jl)
		djs = xy.Eval(dGy, fq, jl)

		jld = f.Neg(f.Div(f.Mul(fd, dgs), f.Mul(el, djs)))
		e6l = f.Neg(f.Div(f.Mul(e4l, jld), jl))
	)

	out.atilde = f.Mul(f.FromInt64(-3), f.Mul(f.PowInt64(el, 4), e4l))
	out.btilde = f.Mul(f.FromInt64(-2), f.Mul(f.PowInt64(el, 6), e6l))
	out.p1 = f.Neg(f.Div(f.Mul(el, e2s), f.FromInt64(2)))

	return out, true
}

// kernelFactor builds F_l, the degree (l-1)/2 factor of the l-division
// polynomial whose roots are the x coordinates of the isogeny kernel.
// Polynomials here live with the substitution x = z^2 understood, so
// everything is truncated modulo x^(d+1).
func (s *curveState) kernelFactor(iso isogenous, l int) poly.Poly {
	var (
		f   = s.F
		r   = s.PR
		ld  = (l - 1) / 2
		ld1 = (l - 3) / 2

		cf  = s.getCk(ld1, s.A, s.B)
		cft = s.getCk(ld1, iso.atilde, iso.btilde)
	)

	// WP[v] is the v-th power of the p-function series, with an understood
	// x^-v multiplier
	wp := make([]poly.Poly, ld+1)

	w1 := make([]field.Element, ld1+2)
	for i := range w1 {
		w1[i] = f.Zero()
	}

	w1[0] = f.One()

	for k := 1; k <= ld1; k++ {
		w1[k+1] = cf[k]
	}

	wp[1] = r.New(w1...)

	for v := 2; v <= ld; v++ {
		wp[v] = r.ModXn(r.Mul(wp[v-1], wp[1]), ld+1)
	}

	// the integrand of the isogeny's formal logarithm
	yc := make([]field.Element, ld1+2)
	for i := range yc {
		yc[i] = f.Zero()
	}

	el := f.FromInt64(int64(l))

	for k := 1; k <= ld1; k++ {
		yc[k+1] = f.Div(
			f.Sub(f.Mul(el, cf[k]), cft[k]),
			f.FromInt64(int64((2*k+1)*(2*k+2))))
	}

	yc[1] = f.Neg(iso.p1)

	var (
		y  = s.PR.New(yc...)
		h  = r.One()
		x  = r.One()
		rf = f.One()
	)

	// truncated exponential: H = sum Y^r / r!
	for i := 1; i <= ld; i++ {
		x = r.ModXn(r.Mul(x, y), ld+1)
		rf = f.Mul(rf, f.FromInt64(int64(i)))
		h = r.Add(h, r.DivScalar(x, rf))
	}

	// express H in the W basis, leading coefficient first; H carries an
	// understood x^-d multiplier
	var (
		ad    = f.One()
		coeff = make([]field.Element, ld+1)
	)

	coeff[ld] = ad

	for v := ld - 1; v >= 0; v-- {
		h = r.Sub(h, r.MulScalar(wp[v+1], ad))
		h = r.DivXn(h, 1)
		ad = r.Coeff(h, 0)
		coeff[v] = ad
	}

	return r.New(coeff...)
}

// divPolyTable grows division polynomials modulo the active modulus on
// demand, together with their squares and cubes.
type divPolyTable struct {
	m       *modCtx
	s       *curveState
	p       []poly.Poly
	p2, p3  []poly.Poly
	highest int
}

func newDivPolyTable(s *curveState, m *modCtx, capacity int) *divPolyTable {
	t := &divPolyTable{
		m: m, s: s,
		p:  make([]poly.Poly, capacity),
		p2: make([]poly.Poly, capacity),
		p3: make([]poly.Poly, capacity),
	}

	var (
		r    = m.R
		f    = s.F
		a, b = s.A, s.B
	)

	t.p[0] = r.P.Zero()
	t.p[1] = r.P.One()
	t.p[2] = r.P.FromInt64s(2)
	t.p[3] = r.Reduce(r.P.New(
		f.Neg(f.Sqr(a)),
		f.Mul(f.FromInt64(12), b),
		f.Mul(f.FromInt64(6), a),
		f.Zero(),
		f.FromInt64(3),
	))
	t.p[4] = r.Reduce(r.P.New(
		f.Mul(f.FromInt64(-4), f.Add(f.Mul(f.FromInt64(8), f.Sqr(b)), f.Mul(f.Sqr(a), a))),
		f.Mul(f.FromInt64(-16), f.Mul(a, b)),
		f.Mul(f.FromInt64(-20), f.Sqr(a)),
		f.Mul(f.FromInt64(80), b),
		f.Mul(f.FromInt64(20), a),
		f.Zero(),
		f.FromInt64(4),
	))

	for j := 0; j <= 4; j++ {
		t.p2[j] = r.Square(t.p[j])
		t.p3[j] = r.Mul(t.p2[j], t.p[j])
	}

	t.highest = 4

	return t
}

// grow extends the table up to index n.
func (t *divPolyTable) grow(n int) {
	r := t.m.R

	for j := t.highest + 1; j <= n; j++ {
		if j%2 == 1 {
			m := (j - 1) / 2
			if m%2 == 0 {
				t.p[j] = r.Sub(r.Mul(r.Mul(t.p[m+2], t.p3[m]), t.m.MY4), r.Mul(t.p3[m+1], t.p[m-1]))
			} else {
				t.p[j] = r.Sub(r.Mul(t.p[m+2], t.p3[m]), r.Mul(t.m.MY4, r.Mul(t.p3[m+1], t.p[m-1])))
			}
		} else {
			m := j / 2
			inner := r.Sub(r.Mul(t.p[m+2], t.p2[m-1]), r.Mul(t.p[m-2], t.p2[m+1]))
			t.p[j] = r.DivScalar(r.Mul(t.p[m], inner), t.s.F.FromInt64(2))
		}

		t.p2[j] = r.Square(t.p[j])
		t.p3[j] = r.Mul(t.p2[j], t.p[j])
	}

	if n > t.highest {
		t.highest = n
	}
}

// elkiesTrace finds the Frobenius eigenvalue modulo l by comparing the y
// coordinate of Frobenius against lambda.(X, Y) modulo the kernel factor,
// returning t = lambda + p/lambda (mod l).
func (s *curveState) elkiesTrace(fl poly.Poly, l, discrim int) (int64, bool) {
	var (
		p  = s.F.Modulus()
		k  = int(new(big.Int).Mod(p, big.NewInt(int64(l))).Int64())
		m  = s.setmod(fl)
		r  = m.R
		lb = big.NewInt(int64(l))
	)

	// only the y coordinate of Frobenius is needed
	yp := r.Pow(m.MY2, new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1))

	var (
		table   = newDivPolyTable(s, m, (l-1)/2+3)
		quarter = s.F.Inv(s.F.FromInt64(4))
	)

	for lambda := 1; lambda <= (l-1)/2; lambda++ {
		// candidate trace for this eigenvalue
		inv := new(big.Int).ModInverse(big.NewInt(int64(lambda)), lb)
		tau := int((int64(lambda) + inv.Int64()*int64(k)) % int64(l))

		// the discriminant of x^2 - tau.x + p must match the splitting type
		kk := ((tau*tau-4*k)%l + l) % l
		if jacobiInt(kk, l) != discrim {
			continue
		}

		table.grow(lambda + 2)

		var ry, ty poly.Poly

		if lambda%2 == 0 {
			ry = r.MulScalar(r.Sub(
				r.Mul(table.p[lambda+2], table.p2[lambda-1]),
				r.Mul(table.p[lambda-2], table.p2[lambda+1])), quarter)
			ty = r.Mul(m.MY4, r.Mul(yp, table.p3[lambda]))
		} else {
			if lambda == 1 {
				ry = r.MulScalar(r.Add(
					r.Mul(table.p[lambda+2], table.p2[lambda-1]),
					table.p2[lambda+1]), quarter)
			} else {
				ry = r.MulScalar(r.Sub(
					r.Mul(table.p[lambda+2], table.p2[lambda-1]),
					r.Mul(table.p[lambda-2], table.p2[lambda+1])), quarter)
			}

			ty = r.Mul(yp, table.p3[lambda])
		}

		if r.Sub(ty, ry).IsZero() {
			return int64(tau), true
		}

		if r.Add(ty, ry).IsZero() {
			// matched with opposite sign
			return int64((l - tau) % l), true
		}
	}

	log.Warnf("no Frobenius eigenvalue found modulo %d, skipping", l)

	return 0, false
}

// jacobiInt is the Jacobi symbol for small arguments.
func jacobiInt(a, n int) int {
	return big.Jacobi(big.NewInt(int64(a)), big.NewInt(int64(n)))
}
