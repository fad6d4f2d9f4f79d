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
package field

import (
	"fmt"
	"math/big"
)

// MillerRabinRounds is the number of witnesses used when deciding whether a
// candidate modulus is prime.  Composite moduli slip past n rounds with
// probability at most 4^-n.
const MillerRabinRounds = 40

// Field of prime order p.  Elements are kept in Montgomery form with
// R = 2^(64k), k the word length of p, to speed up multiplications.
type Field struct {
	p *big.Int
	// Montgomery constants
	rbits uint     // R = 2^rbits
	mask  *big.Int // R - 1
	r     *big.Int // R mod p
	r2    *big.Int // R^2 mod p
	np    *big.Int // -p^-1 mod R
}

// Element of a prime order field, represented in Montgomery form.  The zero
// value is not meaningful; elements are created through their Field.
type Element struct {
	v *big.Int
}

// New constructs the field GF(p).  The modulus must be a prime of at least 5,
// otherwise an error is returned.
func New(p *big.Int) (*Field, error) {
	if p.Cmp(big.NewInt(5)) < 0 {
		return nil, fmt.Errorf("bad modulus: %s < 5", p)
	}
	if !p.ProbablyPrime(MillerRabinRounds) {
		return nil, fmt.Errorf("bad modulus: %s is composite", p)
	}
	//
	rbits := uint((p.BitLen() + 63) / 64 * 64)
	r := new(big.Int).Lsh(big.NewInt(1), rbits)
	mask := new(big.Int).Sub(r, big.NewInt(1))
	// np = -p^-1 mod R
	np := new(big.Int).ModInverse(p, r)
	np.Sub(r, np)
	//
	f := &Field{
		p:     p,
		rbits: rbits,
		mask:  mask,
		np:    np,
		r:     new(big.Int).Mod(r, p),
		r2:    new(big.Int).Mod(new(big.Int).Mul(r, r), p),
	}

	return f, nil
}

// Modulus returns the field's prime p.
func (f *Field) Modulus() *big.Int {
	return f.p
}

// redc performs a textbook Montgomery reduction, t -> t.R^-1 (mod p).
func (f *Field) redc(t *big.Int) *big.Int {
	m := new(big.Int).Mul(t, f.np)
	m.And(m, f.mask)
	m.Mul(m, f.p)
	m.Add(m, t)
	m.Rsh(m, f.rbits)

	if m.Cmp(f.p) >= 0 {
		m.Sub(m, f.p)
	}

	return m
}

// NewElement reduces x into [0, p) and converts it to Montgomery form.
func (f *Field) NewElement(x *big.Int) Element {
	v := new(big.Int).Mod(x, f.p)
	// multiply by R^2 then reduce, leaving x.R
	return Element{f.redc(v.Mul(v, f.r2))}
}

// FromInt64 constructs the element congruent to x.
func (f *Field) FromInt64(x int64) Element {
	return f.NewElement(big.NewInt(x))
}

// Zero element of the field.
func (f *Field) Zero() Element {
	return Element{big.NewInt(0)}
}

// One element of the field.
func (f *Field) One() Element {
	return Element{new(big.Int).Set(f.r)}
}

// BigInt converts e out of Montgomery form, returning its canonical
// representative in [0, p).
func (f *Field) BigInt(e Element) *big.Int {
	return f.redc(new(big.Int).Set(e.v))
}

// Add returns x + y.
func (f *Field) Add(x, y Element) Element {
	v := new(big.Int).Add(x.v, y.v)
	if v.Cmp(f.p) >= 0 {
		v.Sub(v, f.p)
	}

	return Element{v}
}

// Sub returns x - y.
func (f *Field) Sub(x, y Element) Element {
	v := new(big.Int).Sub(x.v, y.v)
	if v.Sign() < 0 {
		v.Add(v, f.p)
	}

	return Element{v}
}

// Neg returns -x.
func (f *Field) Neg(x Element) Element {
	if x.v.Sign() == 0 {
		return f.Zero()
	}

	return Element{new(big.Int).Sub(f.p, x.v)}
}

// Mul returns x * y.
func (f *Field) Mul(x, y Element) Element {
	return Element{f.redc(new(big.Int).Mul(x.v, y.v))}
}

// Sqr returns x * x.
func (f *Field) Sqr(x Element) Element {
	return f.Mul(x, x)
}

// Double returns 2x.
func (f *Field) Double(x Element) Element {
	return f.Add(x, x)
}

// Inv returns x^-1.  Inverting zero panics with a SanityError, since it
// indicates a broken arithmetic invariant upstream.
func (f *Field) Inv(x Element) Element {
	if x.v.Sign() == 0 {
		panic(&SanityError{"division by zero in GF(p)"})
	}

	v := f.BigInt(x)
	v.ModInverse(v, f.p)

	return f.NewElement(v)
}

// Div returns x / y.
func (f *Field) Div(x, y Element) Element {
	return f.Mul(x, f.Inv(y))
}

// Pow returns x^e for a non-negative exponent.
func (f *Field) Pow(x Element, e *big.Int) Element {
	v := f.BigInt(x)
	v.Exp(v, e, f.p)

	return f.NewElement(v)
}

// PowInt64 returns x^e for a small non-negative exponent.
func (f *Field) PowInt64(x Element, e int64) Element {
	return f.Pow(x, big.NewInt(e))
}

// Legendre returns the Legendre symbol of x, i.e. 1 if x is a non-zero
// quadratic residue, -1 if it is a non-residue and 0 if x = 0.
func (f *Field) Legendre(x Element) int {
	return big.Jacobi(f.BigInt(x), f.p)
}

// Equal returns whether x and y denote the same residue class.
func (f *Field) Equal(x, y Element) bool {
	return x.v.Cmp(y.v) == 0
}

// IsZero returns whether x is the zero element.
func (f *Field) IsZero(x Element) bool {
	return x.v.Sign() == 0
}

// IsOne returns whether x is the unit element.
func (f *Field) IsOne(x Element) bool {
	return x.v.Cmp(f.r) == 0
}

// String renders e canonically (not in Montgomery form) in base 10.
func (f *Field) String(e Element) string {
	return f.BigInt(e).String()
}

// SanityError reports a violated internal arithmetic invariant.  It is
// raised by panicking, and recovered at stage boundaries.
type SanityError struct {
	Msg string
}

// Error implements the error interface.
func (e *SanityError) Error() string {
	return fmt.Sprintf("sanity check failed: %s", e.Msg)
}
