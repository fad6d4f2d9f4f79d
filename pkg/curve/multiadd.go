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
package curve

import (
	"github.com/ecpoint/go-sea/pkg/field"
)

// MultiAdd sets dst[i] += add[i] for every i, sharing a single field
// inversion across the whole batch via the Montgomery trick: multiply all
// the chord denominators together, invert once, then peel the individual
// inverses off with the prefix products.  Pairs that need doubling or hit
// the identity are handled individually; jumping a whole kangaroo herd
// this way costs one inversion per hop.
func (c *Curve) MultiAdd(dst, add []Point) {
	n := len(dst)

	var (
		denoms  = make([]field.Element, 0, n)
		which   = make([]int, 0, n)
		special = make([]bool, n)
	)

	for i := range dst {
		if dst[i].Inf || add[i].Inf || c.F.Equal(dst[i].X, add[i].X) {
			special[i] = true
			continue
		}

		denoms = append(denoms, c.F.Sub(add[i].X, dst[i].X))
		which = append(which, i)
	}

	inverses := c.batchInvert(denoms)

	for k, i := range which {
		lam := c.F.Mul(c.F.Sub(add[i].Y, dst[i].Y), inverses[k])
		dst[i] = c.chord(dst[i], add[i], lam)
	}

	for i := range dst {
		if special[i] {
			dst[i] = c.Add(dst[i], add[i])
		}
	}
}

// batchInvert inverts every element with one field inversion.
func (c *Curve) batchInvert(xs []field.Element) []field.Element {
	if len(xs) == 0 {
		return nil
	}

	// running prefix products
	prefix := make([]field.Element, len(xs))
	acc := c.F.One()

	for i, x := range xs {
		prefix[i] = acc
		acc = c.F.Mul(acc, x)
	}

	inv := c.F.Inv(acc)
	out := make([]field.Element, len(xs))

	for i := len(xs) - 1; i >= 0; i-- {
		out[i] = c.F.Mul(inv, prefix[i])
		inv = c.F.Mul(inv, xs[i])
	}

	return out
}
