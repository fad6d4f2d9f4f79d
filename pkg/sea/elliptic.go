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
	"github.com/ecpoint/go-sea/pkg/poly"
)

// projective is a curve point with polynomial coordinates, reduced by the
// active modulus.  The expression standing in for each Y coordinate is
// implicitly multiplied by the curve's y; Y^2 never appears explicitly but
// is substituted by x^3 + Ax + B (the MY2 image) whenever it arises.  A
// zero Z marks the point at infinity.
type projective struct {
	X, Y, Z poly.Poly
}

// IsInfinity reports whether the point is the identity.
func (p projective) IsInfinity() bool {
	return p.Z.IsZero()
}

// ellipticDup returns 2.P.  Arguments are never mutated.
func ellipticDup(m *modCtx, s *curveState, p projective) projective {
	r := m.R

	w2 := r.Square(p.Z)
	w3 := r.MulScalar(r.Square(w2), s.A)
	w1 := r.Square(p.X)
	w4 := r.Add(r.MulInt64(w1, 3), w3)
	z := r.Mul(p.Z, r.MulInt64(p.Y, 2)) // Z keeps an implied y
	w2 = r.Mul(m.MY2, r.Square(p.Y))
	w3 = r.MulInt64(r.Mul(p.X, w2), 4)
	w1 = r.Square(w4)

	x := r.Sub(w1, r.MulInt64(w3, 2))
	w2 = r.MulInt64(r.Square(w2), 8)
	w3 = r.Mul(r.Sub(w3, x), w4)
	y := r.Sub(w3, w2)

	// move the implied y from Z over to Y
	return projective{
		X: r.Mul(x, m.MY2),
		Y: r.Mul(y, m.MY2),
		Z: r.Mul(z, m.MY2),
	}
}

// ellipticAdd returns T + Q for a projective T and an affine-style Q =
// (X, Y, 1), falling back to doubling when the points coincide.  Arguments
// are never mutated.
func ellipticAdd(m *modCtx, s *curveState, t projective, qx, qy poly.Poly) projective {
	r := m.R

	w1 := t.X
	w6 := r.Square(t.Z)
	w4 := r.Mul(qx, w6)
	w1 = r.Sub(w1, w4)

	w2 := t.Y // implied y
	w6 = r.Mul(w6, t.Z)
	w5 := r.Mul(qy, w6) // implied y
	w2 = r.Sub(w2, w5)

	if w1.IsZero() {
		if w2.IsZero() {
			// adding a point to itself
			return ellipticDup(m, s, t)
		}
		// inverse points: the sum is at infinity
		return projective{X: t.X, Y: t.Y, Z: r.P.Zero()}
	}

	w4 = r.Add(w1, r.MulInt64(w4, 2))
	w5 = r.Add(w2, r.MulInt64(w5, 2))

	z := r.Mul(t.Z, w1)

	w6 = r.Square(w1)
	w1 = r.Mul(w1, w6)
	w6 = r.Mul(w6, w4)
	w4 = r.Mul(m.MY2, r.Square(w2)) // substitute for Y^2

	x := r.Sub(w4, w6)

	w6 = r.Sub(w6, r.MulInt64(x, 2))
	w2 = r.Mul(w2, w6)
	w1 = r.Mul(w1, w5)
	w5 = r.Sub(w2, w1)

	y := r.DivScalar(w5, s.F.FromInt64(2))

	return projective{X: x, Y: y, Z: z}
}
