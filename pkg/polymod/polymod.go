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

// Package polymod implements arithmetic in the quotient ring Fp[x]/(M) for
// a fixed monic modulus polynomial M.  Residues are plain poly.Poly values
// of degree below degree(M); the Ring reduces after every product.
package polymod

import (
	"math/big"

	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/poly"
)

// Ring fixes the quotient Fp[x]/(M).  Constructing a new Ring is the only
// way to switch modulus; transform caches live with the underlying
// polynomial ring and are unaffected.
type Ring struct {
	P *poly.Ring
	M poly.Poly
}

// New builds the quotient ring for the given modulus, which is made monic.
// The modulus must have degree at least one.
func New(p *poly.Ring, m poly.Poly) *Ring {
	if m.Degree() < 1 {
		panic(&field.SanityError{Msg: "polynomial modulus must have positive degree"})
	}

	return &Ring{p, p.Monic(m)}
}

// Degree of the modulus.
func (r *Ring) Degree() int {
	return r.M.Degree()
}

// Reduce maps an arbitrary polynomial onto its residue.
func (r *Ring) Reduce(f poly.Poly) poly.Poly {
	if f.Degree() < r.M.Degree() {
		return f
	}

	return r.P.Rem(f, r.M)
}

// Add returns a + b.
func (r *Ring) Add(a, b poly.Poly) poly.Poly {
	return r.P.Add(a, b)
}

// Sub returns a - b.
func (r *Ring) Sub(a, b poly.Poly) poly.Poly {
	return r.P.Sub(a, b)
}

// Neg returns -a.
func (r *Ring) Neg(a poly.Poly) poly.Poly {
	return r.P.Neg(a)
}

// Mul returns a.b reduced by the modulus.
func (r *Ring) Mul(a, b poly.Poly) poly.Poly {
	return r.Reduce(r.P.Mul(a, b))
}

// Square returns a.a reduced by the modulus.
func (r *Ring) Square(a poly.Poly) poly.Poly {
	return r.Reduce(r.P.Square(a))
}

// MulScalar returns k.a.
func (r *Ring) MulScalar(a poly.Poly, k field.Element) poly.Poly {
	return r.P.MulScalar(a, k)
}

// MulInt64 returns k.a for a small integer k.
func (r *Ring) MulInt64(a poly.Poly, k int64) poly.Poly {
	return r.P.MulScalar(a, r.P.F.FromInt64(k))
}

// DivScalar returns a / k.
func (r *Ring) DivScalar(a poly.Poly, k field.Element) poly.Poly {
	return r.P.DivScalar(a, k)
}

// Inv returns the multiplicative inverse of a.  Residues sharing a factor
// with the modulus have none; that factor is returned with ok=false.
func (r *Ring) Inv(a poly.Poly) (inv poly.Poly, gcd poly.Poly, ok bool) {
	g, u, _ := r.P.XGcd(a, r.M)

	if g.Degree() != 0 {
		return poly.Poly{}, g, false
	}
	// XGcd normalises g to one
	return r.Reduce(u), g, true
}

// Pow returns f^e reduced by the modulus, by square and multiply.
func (r *Ring) Pow(f poly.Poly, e *big.Int) poly.Poly {
	result := r.P.One()

	for i := e.BitLen() - 1; i >= 0; i-- {
		result = r.Square(result)

		if e.Bit(i) == 1 {
			result = r.Mul(result, f)
		}
	}

	return result
}

// PowX returns x^e reduced by the modulus.
func (r *Ring) PowX(e *big.Int) poly.Poly {
	return r.Pow(r.P.X(), e)
}
