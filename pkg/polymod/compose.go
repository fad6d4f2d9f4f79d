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
package polymod

import (
	"math"

	"github.com/ecpoint/go-sea/pkg/poly"
)

// Compose returns f(g(x)) reduced by the modulus, using the Brent-Kung
// baby-step/giant-step split: with t ~ sqrt(deg f), the powers g^0..g^t
// are precomputed and f is consumed in blocks of t coefficients, each
// block a linear combination of the table, stitched together by Horner
// with stride g^t.  Naive composition is quadratic in modular products and
// infeasible at the modulus degrees involved here.
func (r *Ring) Compose(f, g poly.Poly) poly.Poly {
	if f.IsZero() {
		return f
	}

	if f.Degree() == 0 {
		return f
	}

	var (
		n = f.Degree() + 1
		t = int(math.Ceil(math.Sqrt(float64(n))))
	)

	// baby steps: g^0 .. g^t
	pows := make([]poly.Poly, t+1)
	pows[0] = r.P.One()

	for i := 1; i <= t; i++ {
		pows[i] = r.Mul(pows[i-1], g)
	}

	// giant steps: Horner over blocks of t coefficients
	var (
		blocks = (n + t - 1) / t
		acc    = r.P.Zero()
	)

	for bi := blocks - 1; bi >= 0; bi-- {
		block := r.P.Zero()

		for j := 0; j < t && bi*t+j < n; j++ {
			c := r.P.Coeff(f, bi*t+j)
			if r.P.F.IsZero(c) {
				continue
			}

			block = r.Add(block, r.MulScalar(pows[j], c))
		}

		acc = r.Add(r.Mul(acc, pows[t]), block)
	}

	return acc
}
