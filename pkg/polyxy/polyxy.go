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

// Package polyxy implements sparse bivariate polynomials over GF(p), as
// needed for the modular polynomials G(X,Y) and their partial derivatives.
package polyxy

import (
	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/ecpoint/go-sea/pkg/poly"
)

// Term is one monomial c.x^dx.y^dy.
type Term struct {
	C      field.Element
	DX, DY int
}

// Poly is a flat, insertion ordered vector of terms with non-zero
// coefficients.
type Poly struct {
	terms []Term
}

// Ring provides bivariate operations over a fixed polynomial ring.
type Ring struct {
	P *poly.Ring
}

// NewRing constructs the bivariate context.
func NewRing(p *poly.Ring) *Ring {
	return &Ring{p}
}

// AddTerm appends one monomial; terms are expected in the file's serial
// order, so no merging is attempted.  Zero coefficients are dropped.
func (r *Ring) AddTerm(p Poly, c field.Element, dx, dy int) Poly {
	if r.P.F.IsZero(c) {
		return p
	}

	p.terms = append(p.terms, Term{c, dx, dy})

	return p
}

// Len returns the number of terms.
func (p Poly) Len() int {
	return len(p.terms)
}

// Term returns the ith term.
func (p Poly) Term(i int) Term {
	return p.terms[i]
}

// DegreeX returns the largest x exponent, or -1 for the zero polynomial.
func (p Poly) DegreeX() int {
	d := -1
	for _, t := range p.terms {
		d = max(d, t.DX)
	}

	return d
}

// DegreeY returns the largest y exponent, or -1 for the zero polynomial.
func (p Poly) DegreeY() int {
	d := -1
	for _, t := range p.terms {
		d = max(d, t.DY)
	}

	return d
}

// DiffX returns the partial derivative with respect to x.
func (r *Ring) DiffX(p Poly) Poly {
	var out Poly

	for _, t := range p.terms {
		if t.DX == 0 {
			continue
		}

		c := r.P.F.Mul(t.C, r.P.F.FromInt64(int64(t.DX)))
		out = r.AddTerm(out, c, t.DX-1, t.DY)
	}

	return out
}

// DiffY returns the partial derivative with respect to y.
func (r *Ring) DiffY(p Poly) Poly {
	var out Poly

	for _, t := range p.terms {
		if t.DY == 0 {
			continue
		}

		c := r.P.F.Mul(t.C, r.P.F.FromInt64(int64(t.DY)))
		out = r.AddTerm(out, c, t.DX, t.DY-1)
	}

	return out
}

// EvalY substitutes y = y0, returning the univariate polynomial in x.
func (r *Ring) EvalY(p Poly, y0 field.Element) poly.Poly {
	if p.Len() == 0 {
		return r.P.Zero()
	}

	c := make([]field.Element, p.DegreeX()+1)
	for i := range c {
		c[i] = r.P.F.Zero()
	}

	for _, t := range p.terms {
		c[t.DX] = r.P.F.Add(c[t.DX], r.P.F.Mul(t.C, r.P.F.PowInt64(y0, int64(t.DY))))
	}

	return r.P.New(c...)
}

// Eval substitutes (x, y) = (x0, y0).
func (r *Ring) Eval(p Poly, x0, y0 field.Element) field.Element {
	acc := r.P.F.Zero()

	for _, t := range p.terms {
		v := r.P.F.Mul(t.C, r.P.F.PowInt64(x0, int64(t.DX)))
		v = r.P.F.Mul(v, r.P.F.PowInt64(y0, int64(t.DY)))
		acc = r.P.F.Add(acc, v)
	}

	return acc
}
