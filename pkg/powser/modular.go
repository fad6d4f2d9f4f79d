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
package powser

import (
	"math/big"
)

// Eta returns the Dedekind eta function (without its q^(1/24) prefactor) as
// the classical pentagonal number series sum (-1)^n x^(n(3n-1)/2) over all
// integers n, truncated at x^N.
func (r *Ring) Eta() Series {
	c := make([]*big.Int, r.N)
	for i := range c {
		c[i] = bigZero
	}

	for n := 0; ; n++ {
		// generalised pentagonal numbers for n and -n
		var (
			e1 = n * (3*n - 1) / 2
			e2 = n * (3*n + 1) / 2
		)

		if e1 >= r.N && e2 >= r.N {
			break
		}

		sign := int64(1)
		if n%2 == 1 {
			sign = -1
		}

		if e1 < r.N {
			c[e1] = big.NewInt(sign)
		}

		if e2 < r.N && n > 0 {
			c[e2] = big.NewInt(sign)
		}
	}

	return r.trim(Series{0, c})
}

// Klein returns the q-expansion of the Klein j-invariant, omitting the
// q^(1/24) prefactor of eta, so that the series starts at x^-1:
//
//	j = (240 sum n^3 x^n/(1-x^n) + 1)^3 / eta^24 / x
func (r *Ring) Klein() Series {
	var (
		c   = make([]*big.Int, r.N)
		cb  = new(big.Int)
		f40 = big.NewInt(240)
	)

	for i := range c {
		c[i] = new(big.Int)
	}

	c[0].SetInt64(1)
	// Eisenstein E4: coefficient of x^k is 240.sigma_3(k)
	for n := 1; n < r.N; n++ {
		cb.SetInt64(int64(n))
		cb.Mul(cb, cb).Mul(cb, big.NewInt(int64(n))).Mul(cb, f40)

		for m := n; m < r.N; m += n {
			c[m].Add(c[m], cb)
		}
	}

	var (
		num = r.Pow(r.trim(Series{0, c}), 3)
		den = r.Pow(r.Eta(), 24)
	)

	return r.DivXn(r.Div(num, den), 1)
}
