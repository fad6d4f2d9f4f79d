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
package poly

import (
	"github.com/ecpoint/go-sea/pkg/field"
)

// DivMod returns the quotient and remainder of a by b, with
// a = q.b + rem and degree(rem) < degree(b).
func (r *Ring) DivMod(a, b Poly) (q, rem Poly) {
	if b.IsZero() {
		panic(&field.SanityError{Msg: "polynomial division by zero"})
	}

	if a.Degree() < b.Degree() {
		return Poly{}, a
	}

	var (
		db      = b.Degree()
		leadInv = r.F.Inv(r.Lead(b))
		rc      = make([]field.Element, len(a.c))
		qc      = make([]field.Element, a.Degree()-db+1)
	)

	copy(rc, a.c)

	for i := len(rc) - 1; i >= db; i-- {
		f := r.F.Mul(rc[i], leadInv)
		qc[i-db] = f

		if r.F.IsZero(f) {
			continue
		}

		for j := 0; j <= db; j++ {
			rc[i-db+j] = r.F.Sub(rc[i-db+j], r.F.Mul(f, b.c[j]))
		}
	}

	return r.trim(Poly{qc}), r.trim(Poly{rc[:db]})
}

// Rem returns the remainder of a modulo b.
func (r *Ring) Rem(a, b Poly) Poly {
	_, rem := r.DivMod(a, b)
	return rem
}

// DivScalar returns a / k.
func (r *Ring) DivScalar(a Poly, k field.Element) Poly {
	return r.MulScalar(a, r.F.Inv(k))
}

// Monic scales p so its leading coefficient is one.
func (r *Ring) Monic(p Poly) Poly {
	if p.IsZero() || r.F.IsOne(r.Lead(p)) {
		return p
	}

	return r.MulScalar(p, r.F.Inv(r.Lead(p)))
}

// Gcd returns the monic greatest common divisor of a and b by the classical
// Euclidean remainder sequence.
func (r *Ring) Gcd(a, b Poly) Poly {
	for !b.IsZero() {
		a, b = b, r.Rem(a, b)
	}

	return r.Monic(a)
}

// XGcd returns (g, u, v) with g = u.a + v.b and g the monic gcd of a and b.
func (r *Ring) XGcd(a, b Poly) (g, u, v Poly) {
	var (
		r0, r1 = a, b
		s0, s1 = r.One(), r.Zero()
		t0, t1 = r.Zero(), r.One()
	)

	for !r1.IsZero() {
		q, rem := r.DivMod(r0, r1)
		r0, r1 = r1, rem
		s0, s1 = s1, r.Sub(s0, r.Mul(q, s1))
		t0, t1 = t1, r.Sub(t0, r.Mul(q, t1))
	}

	if r0.IsZero() {
		return r0, s0, t0
	}
	// normalise to a monic gcd
	inv := r.F.Inv(r.Lead(r0))

	return r.MulScalar(r0, inv), r.MulScalar(s0, inv), r.MulScalar(t0, inv)
}
