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
	"github.com/ecpoint/go-sea/pkg/polymod"
	"github.com/pkg/errors"
)

// curveState is the arithmetic context threaded through the whole count:
// the field, the polynomial ring (owner of the transform caches), the
// curve coefficients and their standard derived values.
type curveState struct {
	F  *field.Field
	PR *poly.Ring

	A, B  field.Element
	Delta field.Element // discriminant -16(4A^3+27B^2)
	J     field.Element // j-invariant
	E4    field.Element // -A/3
	E6    field.Element // -B/2

	Y2 poly.Poly // x^3 + Ax + B
	Y4 poly.Poly // Y2^2
}

// newCurveState validates (p, A, B) and derives the shared values.
func newCurveState(p, a, b *big.Int) (*curveState, error) {
	f, err := field.New(p)
	if err != nil {
		return nil, errors.Wrap(ErrBadParams, err.Error())
	}

	var (
		pr = poly.NewRing(f)
		s  = &curveState{F: f, PR: pr, A: f.NewElement(a), B: f.NewElement(b)}
	)

	// delta = -16(4A^3 + 27B^2)
	a3 := f.Mul(f.Sqr(s.A), s.A)
	s.Delta = f.Mul(f.FromInt64(-16),
		f.Add(f.Mul(f.FromInt64(4), a3), f.Mul(f.FromInt64(27), f.Sqr(s.B))))

	if f.IsZero(s.Delta) {
		return nil, errors.Wrap(ErrBadParams, "singular curve: 4A^3 + 27B^2 = 0")
	}

	// j = -1728.64.A^3 / delta
	s.J = f.Div(f.Mul(f.FromInt64(-1728*64), a3), s.Delta)

	if f.IsZero(s.J) || f.Equal(s.J, f.FromInt64(1728)) {
		return nil, errors.Wrap(ErrBadParams, "degenerate curve: j-invariant is 0 or 1728")
	}

	s.E4 = f.Neg(f.Div(s.A, f.FromInt64(3)))
	s.E6 = f.Neg(f.Div(s.B, f.FromInt64(2)))

	s.Y2 = pr.New(s.B, s.A, f.Zero(), f.One())
	s.Y4 = pr.Square(s.Y2)

	return s, nil
}

// modCtx is the per-modulus context: the quotient ring and the images of
// the curve equation in it.  Built afresh at each setmod.
type modCtx struct {
	R        *polymod.Ring
	MY2, MY4 poly.Poly
}

// setmod enters the quotient ring Fp[x]/(m).
func (s *curveState) setmod(m poly.Poly) *modCtx {
	r := polymod.New(s.PR, m)

	return &modCtx{
		R:   r,
		MY2: r.Reduce(s.Y2),
		MY4: r.Reduce(s.Y4),
	}
}
