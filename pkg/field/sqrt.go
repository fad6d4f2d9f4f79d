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
	"math/big"
)

// Sqrt returns a square root of x, if one exists.  For p = 3 (mod 4) the
// root is x^((p+1)/4); otherwise Tonelli-Shanks is used.
func (f *Field) Sqrt(x Element) (Element, bool) {
	if x.v.Sign() == 0 {
		return f.Zero(), true
	}

	if f.Legendre(x) != 1 {
		return Element{}, false
	}

	a := f.BigInt(x)

	var one = big.NewInt(1)

	if f.p.Bit(0) == 1 && f.p.Bit(1) == 1 {
		// p = 3 (mod 4)
		e := new(big.Int).Add(f.p, one)
		e.Rsh(e, 2)
		a.Exp(a, e, f.p)

		return f.NewElement(a), true
	}

	// Tonelli-Shanks.  Write p-1 = s.2^e with s odd.
	var (
		s = new(big.Int).Sub(f.p, one)
		e int
	)

	for s.Bit(0) == 0 {
		s.Rsh(s, 1)
		e++
	}
	// Find a non-residue n.
	n := big.NewInt(2)
	for big.Jacobi(n, f.p) != -1 {
		n.Add(n, one)
	}
	//
	var (
		z = new(big.Int)
		b = new(big.Int)
		g = new(big.Int)
		t = new(big.Int)
		r = e
	)

	z.Add(s, one).Rsh(z, 1).Exp(a, z, f.p)
	b.Exp(a, s, f.p)
	g.Exp(n, s, f.p)

	for {
		// least m with b^(2^m) = 1
		var m int

		t.Set(b)
		for t.Cmp(one) != 0 {
			t.Mul(t, t).Mod(t, f.p)
			m++
		}

		if m == 0 {
			return f.NewElement(z), true
		}

		t.SetInt64(0).SetBit(t, r-m-1, 1).Exp(g, t, f.p)
		g.Mul(t, t).Mod(g, f.p)
		z.Mul(z, t).Mod(z, f.p)
		b.Mul(b, g).Mod(b, f.p)
		r = m
	}
}
