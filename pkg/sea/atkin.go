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

	"github.com/ecpoint/go-sea/pkg/poly"
	log "github.com/sirupsen/logrus"
)

// mulQuad multiplies (a + b.sqrt(qnr)) by (x + y.sqrt(qnr)) in GF(l^2).
func mulQuad(l, qnr, x, y int, a, b *int) {
	olda := *a
	*a = (*a*x + *b*y*qnr) % l
	*b = (olda*y + *b*x) % l
}

// powQuad raises (x + y.sqrt(qnr)) to the e-th power in GF(l^2).
func powQuad(l, qnr, x, y, e int) (a, b int) {
	a, b = 1, 0

	for k := e; k != 0; {
		if k%2 != 0 {
			mulQuad(l, qnr, x, y, &a, &b)
		}

		k /= 2
		if k == 0 {
			break
		}

		mulQuad(l, qnr, x, y, &x, &y)
	}

	return a, b
}

// totient is Euler's phi for small arguments.
func totient(n int) int {
	r := 1
	for i := 2; i < n; i++ {
		if gcdInt(i, n) == 1 {
			r++
		}
	}

	return r
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// atkinTrace handles an Atkin prime.  Only the simplest splitting type is
// exploited: when the Frobenius order r is 2, the candidate trace is
// unique (zero) and usable just like an Elkies constraint.  The general-r
// machinery below enumerates the candidate set, but a multi-candidate
// constraint has nowhere to go yet, so it is logged and dropped; enabling
// AtkinAll widens the search to every admissible r as an extension point.
func (s *curveState) atkinTrace(m *modCtx, xp poly.Poly, l int, atkinAll bool) (int64, bool) {
	var (
		p    = s.F.Modulus()
		k    = int(new(big.Int).Mod(p, big.NewInt(int64(l))).Int64())
		x    = m.R.P.X()
		maxR = 2
	)

	if atkinAll {
		maxR = l + 1
	}

	// powers u[i] = X^(p^(2^i)) by repeated composition
	u := []poly.Poly{xp, m.R.Compose(xp, xp)}

	var (
		useful bool
		order  int
	)

	for r := 2; r <= maxR; r++ {
		if (l+1)%r != 0 {
			continue
		}

		// Schoof's proposition 6.3 parity screen
		var (
			v  = jacobiInt(k, l)
			jj = (l + 1) / r
		)

		if jj%2 == 0 && v == -1 {
			continue
		}

		if jj%2 == 1 && v == 1 {
			continue
		}

		// right-to-left power composition towards X^(p^r)
		var (
			c     poly.Poly
			first = true
			idx   = 0
		)

		for kk := r; ; {
			if kk%2 != 0 {
				if first {
					c = u[idx]
				} else {
					c = m.R.Compose(u[idx], c)
				}

				first = false
			}

			kk /= 2
			if kk == 0 {
				break
			}

			idx++
			if idx >= len(u) {
				u = append(u, m.R.Compose(u[len(u)-1], u[len(u)-1]))
			}
		}

		if m.R.Sub(c, x).IsZero() {
			// Frobenius has order r in PGL2
			useful, order = true, r
			break
		}
	}

	if !useful {
		return 0, false
	}

	// quadratic non-residue seeds the GF(l^2) arithmetic
	qnr := 2
	for jacobiInt(qnr, l) != -1 {
		qnr++
	}

	// exhaustive hunt for a generator of GF(l^2)*
	var (
		ord    = l*l - 1
		gx, gy = 1, 1
	)

	for ; gx < l; gx++ {
		gen := true

		for jj := 2; jj <= ord/2; jj++ {
			if ord%jj != 0 {
				continue
			}

			if a, b := powQuad(l, qnr, gx, gy, ord/jj); a == 1 && b == 0 {
				gen = false
				break
			}
		}

		if gen {
			break
		}
	}

	var (
		inv2       = new(big.Int).ModInverse(big.NewInt(2), big.NewInt(int64(l))).Int64()
		candidates = 0
	)

	for jj := 1; jj < order; jj++ {
		if jj > 1 && gcdInt(jj, order) != 1 {
			continue
		}

		a, _ := powQuad(l, qnr, gx, gy, jj*ord/order)

		tau := (int64(a+1) * int64(k) % int64(l) * inv2) % int64(l)

		if tau == 0 {
			// order must be 2: an Atkin prime with a single candidate
			return 0, true
		}

		if jacobiInt(int(tau), l) == 1 {
			root := new(big.Int).ModSqrt(big.NewInt(tau), big.NewInt(int64(l)))
			t2 := (2 * root.Int64()) % int64(l)

			candidates += 2
			log.Debugf("Atkin prime %d: t = +-%d (mod %d)", l, t2, l)

			if candidates == totient(order) {
				break
			}
		}
	}

	return 0, false
}

