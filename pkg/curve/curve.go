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

// Package curve implements the group of points of a short Weierstrass
// curve y^2 = x^3 + Ax + B over GF(p), in affine coordinates.
package curve

import (
	"math/big"
	"math/rand/v2"

	"github.com/ecpoint/go-sea/pkg/field"
)

// Curve fixes the field and the coefficients A, B.  Callers are expected
// to have validated non-singularity.
type Curve struct {
	F    *field.Field
	A, B field.Element
}

// Point in affine coordinates; Inf marks the identity.
type Point struct {
	X, Y field.Element
	Inf  bool
}

// New builds the curve context.
func New(f *field.Field, a, b field.Element) *Curve {
	return &Curve{f, a, b}
}

// Infinity returns the identity element.
func Infinity() Point {
	return Point{Inf: true}
}

// rhs returns x^3 + Ax + B.
func (c *Curve) rhs(x field.Element) field.Element {
	v := c.F.Add(c.F.Sqr(x), c.A)
	return c.F.Add(c.F.Mul(v, x), c.B)
}

// Set returns the point with the given x coordinate, if one exists on the
// curve.  Of the two candidate y values the smaller representative is
// taken, keeping runs reproducible under a fixed seed.
func (c *Curve) Set(x field.Element) (Point, bool) {
	y, ok := c.F.Sqrt(c.rhs(x))
	if !ok {
		return Point{}, false
	}

	neg := c.F.Neg(y)
	if c.F.BigInt(neg).Cmp(c.F.BigInt(y)) < 0 {
		y = neg
	}

	return Point{X: x, Y: y}, true
}

// Rand draws a random curve point, retrying x until the right hand side is
// a square.
func (c *Curve) Rand(rng *rand.Rand) Point {
	for {
		if p, ok := c.Set(c.F.Rand(rng)); ok {
			return p
		}
	}
}

// IsOnCurve checks the curve equation.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}

	return c.F.Equal(c.F.Sqr(p.Y), c.rhs(p.X))
}

// Equal reports whether two points coincide.
func (c *Curve) Equal(p, q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}

	return c.F.Equal(p.X, q.X) && c.F.Equal(p.Y, q.Y)
}

// Neg returns -p.
func (c *Curve) Neg(p Point) Point {
	if p.Inf {
		return p
	}

	return Point{X: p.X, Y: c.F.Neg(p.Y)}
}

// Double returns 2p.
func (c *Curve) Double(p Point) Point {
	if p.Inf || c.F.IsZero(p.Y) {
		return Infinity()
	}

	// lambda = (3x^2 + A) / 2y
	num := c.F.Add(c.F.Mul(c.F.FromInt64(3), c.F.Sqr(p.X)), c.A)
	lam := c.F.Div(num, c.F.Double(p.Y))

	return c.chord(p, p, lam)
}

// Add returns p + q.
func (c *Curve) Add(p, q Point) Point {
	if p.Inf {
		return q
	}

	if q.Inf {
		return p
	}

	if c.F.Equal(p.X, q.X) {
		if c.F.Equal(p.Y, q.Y) {
			return c.Double(p)
		}

		return Infinity()
	}

	lam := c.F.Div(c.F.Sub(q.Y, p.Y), c.F.Sub(q.X, p.X))

	return c.chord(p, q, lam)
}

// chord completes an addition given the line slope.
func (c *Curve) chord(p, q Point, lam field.Element) Point {
	x3 := c.F.Sub(c.F.Sub(c.F.Sqr(lam), p.X), q.X)
	y3 := c.F.Sub(c.F.Mul(lam, c.F.Sub(p.X, x3)), p.Y)

	return Point{X: x3, Y: y3}
}

// ScalarMul returns k.p by double and add.  Negative k negates the point.
func (c *Curve) ScalarMul(p Point, k *big.Int) Point {
	if k.Sign() < 0 {
		return c.ScalarMul(c.Neg(p), new(big.Int).Neg(k))
	}

	acc := Infinity()

	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = c.Double(acc)

		if k.Bit(i) == 1 {
			acc = c.Add(acc, p)
		}
	}

	return acc
}
