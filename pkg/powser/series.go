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

// Package powser implements truncated formal power series over the integers,
// with a bounded number of negative exponents (Laurent tails).  All
// operations are performed modulo x^N for a precision N fixed by the Ring.
package powser

import (
	"fmt"
	"math/big"
	"strings"
)

// Ring fixes the precision of a family of series: all coefficients at
// exponents >= N are implicitly zero.
type Ring struct {
	N int
}

// NewRing returns a series context truncating at x^n.
func NewRing(n int) *Ring {
	if n < 1 {
		panic(fmt.Sprintf("invalid series precision %d", n))
	}

	return &Ring{n}
}

// Series is a finite mapping from exponents (possibly negative) to integer
// coefficients.  The zero value is the zero series.
type Series struct {
	off int        // exponent of c[0]
	c   []*big.Int // dense coefficients, c[0] != 0 unless empty
}

// Monomial returns the series k.x^n.
func Monomial(k *big.Int, n int) Series {
	if k.Sign() == 0 {
		return Series{}
	}

	return Series{n, []*big.Int{new(big.Int).Set(k)}}
}

// Scalar returns the constant series k.
func Scalar(k int64) Series {
	return Monomial(big.NewInt(k), 0)
}

// IsZero reports whether the series has no terms.
func (s Series) IsZero() bool {
	return len(s.c) == 0
}

// First returns the smallest exponent carrying a non-zero coefficient, or 0
// for the zero series.
func (s Series) First() int {
	if len(s.c) == 0 {
		return 0
	}

	return s.off
}

// Coeff returns the coefficient at exponent n.  The returned value must not
// be mutated.
func (s Series) Coeff(n int) *big.Int {
	n -= s.off
	if n < 0 || n >= len(s.c) {
		return bigZero
	}

	return s.c[n]
}

var bigZero = big.NewInt(0)

// trim drops zero coefficients at both ends and everything at or beyond the
// truncation point.
func (r *Ring) trim(s Series) Series {
	c, off := s.c, s.off
	// truncate at x^N
	if off+len(c) > r.N {
		c = c[:max(0, r.N-off)]
	}

	for len(c) > 0 && c[0].Sign() == 0 {
		c = c[1:]
		off++
	}

	for len(c) > 0 && c[len(c)-1].Sign() == 0 {
		c = c[:len(c)-1]
	}

	if len(c) == 0 {
		return Series{}
	}

	return Series{off, c}
}

// Add returns a + b.
func (r *Ring) Add(a, b Series) Series {
	if a.IsZero() {
		return r.trim(b)
	}

	if b.IsZero() {
		return r.trim(a)
	}

	var (
		off = min(a.off, b.off)
		hi  = max(a.off+len(a.c), b.off+len(b.c))
		c   = make([]*big.Int, hi-off)
	)

	for i := range c {
		c[i] = new(big.Int).Add(a.Coeff(off+i), b.Coeff(off+i))
	}

	return r.trim(Series{off, c})
}

// Sub returns a - b.
func (r *Ring) Sub(a, b Series) Series {
	return r.Add(a, r.Neg(b))
}

// Neg returns -a.
func (r *Ring) Neg(a Series) Series {
	c := make([]*big.Int, len(a.c))
	for i := range c {
		c[i] = new(big.Int).Neg(a.c[i])
	}

	return Series{a.off, c}
}

// MulScalar returns k.a.
func (r *Ring) MulScalar(a Series, k *big.Int) Series {
	if k.Sign() == 0 || a.IsZero() {
		return Series{}
	}

	c := make([]*big.Int, len(a.c))
	for i := range c {
		c[i] = new(big.Int).Mul(a.c[i], k)
	}

	return r.trim(Series{a.off, c})
}

// Mul returns a.b mod x^N.  Quadratic schoolbook convolution; the series
// sizes here never justify anything fancier.
func (r *Ring) Mul(a, b Series) Series {
	if a.IsZero() || b.IsZero() {
		return Series{}
	}

	var (
		off = a.off + b.off
		n   = min(len(a.c)+len(b.c)-1, r.N-off)
	)

	if n <= 0 {
		return Series{}
	}

	c := make([]*big.Int, n)
	for i := range c {
		c[i] = new(big.Int)
	}

	t := new(big.Int)

	for i, ai := range a.c {
		if ai.Sign() == 0 {
			continue
		}

		for j, bj := range b.c {
			if i+j >= n {
				break
			}

			c[i+j].Add(c[i+j], t.Mul(ai, bj))
		}
	}

	return r.trim(Series{off, c})
}

// Pow returns a^e for e >= 0 by square and multiply.
func (r *Ring) Pow(a Series, e int) Series {
	if e < 0 {
		panic("negative series exponent")
	}

	result := Scalar(1)

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

// DivScalarExact divides every coefficient by k, which must divide each of
// them exactly (as happens when unwinding Newton's identities).
func (r *Ring) DivScalarExact(a Series, k *big.Int) Series {
	c := make([]*big.Int, len(a.c))
	for i := range c {
		c[i] = new(big.Int).Quo(a.c[i], k)
	}

	return r.trim(Series{a.off, c})
}

// Div returns a / b mod x^N.  The divisor's first coefficient must be a
// unit over the integers, i.e. 1 or -1.
func (r *Ring) Div(a, b Series) Series {
	if b.IsZero() {
		panic("series division by zero")
	}

	lead := b.c[0]
	if !isUnit(lead) {
		panic(fmt.Sprintf("series division: leading coefficient %s is not a unit", lead))
	}

	var (
		off   = a.off - b.off
		n     = r.N - off
		rem   = a
		q     = make([]*big.Int, 0, max(n, 0))
		scale = new(big.Int)
	)
	// long division, one output coefficient per round
	for i := 0; i < n; i++ {
		qi := new(big.Int)

		if !rem.IsZero() && rem.off-b.off == off+i {
			qi.Mul(rem.c[0], lead) // lead = +-1, so this divides exactly
		}

		q = append(q, qi)

		if qi.Sign() != 0 {
			// rem -= qi.x^(off+i).b
			rem = r.Sub(rem, r.shiftScale(b, scale.Set(qi), off+i))
		}
	}

	return r.trim(Series{off, q})
}

// Inv returns 1 / b mod x^N.
func (r *Ring) Inv(b Series) Series {
	return r.Div(Scalar(1), b)
}

// shiftScale returns k.x^n.b, without truncating.
func (r *Ring) shiftScale(b Series, k *big.Int, n int) Series {
	c := make([]*big.Int, len(b.c))
	for i := range c {
		c[i] = new(big.Int).Mul(b.c[i], k)
	}

	return Series{b.off + n, c}
}

// DivXn divides the series by x^k, shifting every exponent down by k.
func (r *Ring) DivXn(a Series, k int) Series {
	if a.IsZero() {
		return a
	}

	return Series{a.off - k, a.c}
}

// Power substitutes x^k for x.  The receiver fixes the truncation of the
// result, so the input needs only ceil(N/k) accurate terms.
func (r *Ring) Power(a Series, k int) Series {
	if a.IsZero() {
		return a
	}

	var (
		off = a.off * k
		c   = make([]*big.Int, min(len(a.c)*k-k+1, r.N-off))
	)

	for i := range c {
		c[i] = bigZero
	}

	for i, ai := range a.c {
		if i*k < len(c) {
			c[i*k] = new(big.Int).Set(ai)
		}
	}

	return r.trim(Series{off, c})
}

// Phase keeps L times every L-th coefficient, i.e. the terms whose exponent
// is divisible by L.  When summing conjugate powers most terms cancel,
// leaving exactly these.
func (r *Ring) Phase(z Series, l int) Series {
	var (
		zf = z.First()
		k  int
	)

	if zf%l == 0 {
		k = zf
	} else {
		k = (zf / l) * l
		if zf >= 0 {
			k += l
		}
	}

	var (
		off = k
		c   []*big.Int
		lk  = big.NewInt(int64(l))
	)

	for ; k < r.N; k += l {
		c = append(c, new(big.Int).Mul(lk, z.Coeff(k)))
		for i := 1; i < l && k+i < r.N; i++ {
			c = append(c, bigZero)
		}
	}

	return r.trim(Series{off, c})
}

func isUnit(k *big.Int) bool {
	return k.CmpAbs(big.NewInt(1)) == 0
}

// String renders the series in increasing exponent order.
func (s Series) String() string {
	if s.IsZero() {
		return "0"
	}

	var sb strings.Builder

	for i, c := range s.c {
		if c.Sign() == 0 {
			continue
		}

		if sb.Len() > 0 && c.Sign() > 0 {
			sb.WriteString("+")
		}

		fmt.Fprintf(&sb, "%s*x^%d", c, s.off+i)
	}

	return sb.String()
}
