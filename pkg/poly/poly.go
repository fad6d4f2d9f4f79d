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

// Package poly implements dense univariate polynomial arithmetic over a
// prime field GF(p).  Multiplication of large polynomials works through
// number theoretic transforms over a set of FFT-friendly fields, with the
// integer result recovered by the Chinese remainder theorem.
package poly

import (
	"strconv"
	"strings"

	"github.com/ecpoint/go-sea/pkg/field"
)

// Ring is the arithmetic context for polynomials over a fixed field.  It
// owns the transform caches, whose lifetime equals the ring's.
type Ring struct {
	F *field.Field

	conv *convolver
}

// NewRing constructs the polynomial ring over the given field.
func NewRing(f *field.Field) *Ring {
	return &Ring{f, newConvolver(f.Modulus())}
}

// ResetCache drops all cached FFT domains.
func (r *Ring) ResetCache() {
	r.conv.reset()
}

// Poly is a dense polynomial; c[i] is the coefficient of x^i and the last
// entry is non-zero.  The zero value is the zero polynomial.
type Poly struct {
	c []field.Element
}

// New builds a polynomial from its coefficients, constant term first.
func (r *Ring) New(coeffs ...field.Element) Poly {
	c := make([]field.Element, len(coeffs))
	copy(c, coeffs)

	return r.trim(Poly{c})
}

// FromInt64s builds a polynomial from small integer coefficients, constant
// term first.
func (r *Ring) FromInt64s(coeffs ...int64) Poly {
	c := make([]field.Element, len(coeffs))
	for i, k := range coeffs {
		c[i] = r.F.FromInt64(k)
	}

	return r.trim(Poly{c})
}

// Zero polynomial.
func (r *Ring) Zero() Poly {
	return Poly{}
}

// One returns the unit polynomial.
func (r *Ring) One() Poly {
	return Poly{[]field.Element{r.F.One()}}
}

// Scalar returns the constant polynomial k.
func (r *Ring) Scalar(k field.Element) Poly {
	if r.F.IsZero(k) {
		return Poly{}
	}

	return Poly{[]field.Element{k}}
}

// X returns the monomial x.
func (r *Ring) X() Poly {
	return Poly{[]field.Element{r.F.Zero(), r.F.One()}}
}

// Degree of the polynomial, with -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(p.c) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.c) == 0
}

// Coeff returns the coefficient of x^i.
func (r *Ring) Coeff(p Poly, i int) field.Element {
	if i < 0 || i >= len(p.c) {
		return r.F.Zero()
	}

	return p.c[i]
}

// Lead returns the leading coefficient of p, which must not be zero.
func (r *Ring) Lead(p Poly) field.Element {
	return p.c[len(p.c)-1]
}

// IsOne reports whether p is the unit polynomial.
func (r *Ring) IsOne(p Poly) bool {
	return len(p.c) == 1 && r.F.IsOne(p.c[0])
}

func (r *Ring) trim(p Poly) Poly {
	c := p.c
	for len(c) > 0 && r.F.IsZero(c[len(c)-1]) {
		c = c[:len(c)-1]
	}

	return Poly{c}
}

// Add returns a + b.
func (r *Ring) Add(a, b Poly) Poly {
	if len(a.c) < len(b.c) {
		a, b = b, a
	}

	c := make([]field.Element, len(a.c))
	copy(c, a.c)

	for i := range b.c {
		c[i] = r.F.Add(c[i], b.c[i])
	}

	return r.trim(Poly{c})
}

// Sub returns a - b.
func (r *Ring) Sub(a, b Poly) Poly {
	n := max(len(a.c), len(b.c))
	c := make([]field.Element, n)

	for i := range c {
		c[i] = r.F.Sub(r.Coeff(a, i), r.Coeff(b, i))
	}

	return r.trim(Poly{c})
}

// Neg returns -a.
func (r *Ring) Neg(a Poly) Poly {
	c := make([]field.Element, len(a.c))
	for i := range c {
		c[i] = r.F.Neg(a.c[i])
	}

	return Poly{c}
}

// MulScalar returns k.a.
func (r *Ring) MulScalar(a Poly, k field.Element) Poly {
	if r.F.IsZero(k) {
		return Poly{}
	}

	c := make([]field.Element, len(a.c))
	for i := range c {
		c[i] = r.F.Mul(a.c[i], k)
	}

	return r.trim(Poly{c})
}

// mulNaive is the schoolbook product, used below the transform crossover.
func (r *Ring) mulNaive(a, b Poly) Poly {
	c := make([]field.Element, len(a.c)+len(b.c)-1)
	for i := range c {
		c[i] = r.F.Zero()
	}

	for i, ai := range a.c {
		if r.F.IsZero(ai) {
			continue
		}

		for j, bj := range b.c {
			c[i+j] = r.F.Add(c[i+j], r.F.Mul(ai, bj))
		}
	}

	return r.trim(Poly{c})
}

// mulCrossover is the coefficient count of the shorter factor above which
// multiplication switches to the transform-based convolution.
const mulCrossover = 32

// Mul returns a.b.
func (r *Ring) Mul(a, b Poly) Poly {
	if a.IsZero() || b.IsZero() {
		return Poly{}
	}

	if min(len(a.c), len(b.c)) <= mulCrossover {
		return r.mulNaive(a, b)
	}

	return r.mulFFT(a, b)
}

// Square returns a.a.
func (r *Ring) Square(a Poly) Poly {
	return r.Mul(a, a)
}

// Pow returns a^e for a small non-negative exponent.
func (r *Ring) Pow(a Poly, e int) Poly {
	result := r.One()

	for e > 0 {
		if e&1 == 1 {
			result = r.Mul(result, a)
		}

		e >>= 1
		if e > 0 {
			a = r.Mul(a, a)
		}
	}

	return result
}

// ModXn truncates p modulo x^n.
func (r *Ring) ModXn(p Poly, n int) Poly {
	if len(p.c) <= n {
		return p
	}

	return r.trim(Poly{p.c[:n]})
}

// DivXn divides p by x^k, discarding coefficients below x^k.
func (r *Ring) DivXn(p Poly, k int) Poly {
	if len(p.c) <= k {
		return Poly{}
	}

	return Poly{p.c[k:]}
}

// Diff returns the formal derivative of p.
func (r *Ring) Diff(p Poly) Poly {
	if len(p.c) <= 1 {
		return Poly{}
	}

	c := make([]field.Element, len(p.c)-1)
	for i := range c {
		c[i] = r.F.Mul(p.c[i+1], r.F.FromInt64(int64(i+1)))
	}

	return r.trim(Poly{c})
}

// Eval returns p(x0) by Horner's rule.
func (r *Ring) Eval(p Poly, x0 field.Element) field.Element {
	acc := r.F.Zero()

	for i := len(p.c) - 1; i >= 0; i-- {
		acc = r.F.Add(r.F.Mul(acc, x0), p.c[i])
	}

	return acc
}

// Equal reports whether a and b are identical polynomials.
func (r *Ring) Equal(a, b Poly) bool {
	if len(a.c) != len(b.c) {
		return false
	}

	for i := range a.c {
		if !r.F.Equal(a.c[i], b.c[i]) {
			return false
		}
	}

	return true
}

// String renders p in increasing degree order.
func (r *Ring) String(p Poly) string {
	if p.IsZero() {
		return "0"
	}

	var sb strings.Builder

	for i, c := range p.c {
		if r.F.IsZero(c) {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}

		switch {
		case i == 0:
			sb.WriteString(r.F.String(c))
		case r.F.IsOne(c):
			sb.WriteString("x")
		default:
			sb.WriteString(r.F.String(c) + "*x")
		}

		if i > 1 {
			sb.WriteString("^")
			sb.WriteString(strconv.Itoa(i))
		}
	}

	return sb.String()
}

