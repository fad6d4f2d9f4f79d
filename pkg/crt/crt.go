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

// Package crt solves simultaneous congruences over pairwise coprime moduli
// by Garner's mixed radix recomposition.
package crt

import (
	"math/big"
)

// Solve returns the unique x in [0, prod(moduli)) with
// x = residues[i] (mod moduli[i]) for every i.
func Solve(residues, moduli []*big.Int) *big.Int {
	var (
		x   = new(big.Int).Mod(residues[0], moduli[0])
		m   = new(big.Int).Set(moduli[0])
		t   = new(big.Int)
		inv = new(big.Int)
	)

	for i := 1; i < len(residues); i++ {
		t.Sub(residues[i], x)
		t.Mod(t, moduli[i])
		inv.ModInverse(m, moduli[i])
		t.Mul(t, inv)
		t.Mod(t, moduli[i])
		x.Add(x, t.Mul(m, t))
		m.Mul(m, moduli[i])
	}

	return x
}

// Accumulator collects congruence constraints (l, t mod l) as the SEA scan
// discovers them, tracking the running modulus product.
type Accumulator struct {
	residues []*big.Int
	moduli   []*big.Int
	product  *big.Int
}

// NewAccumulator starts with the empty constraint set (product one).
func NewAccumulator() *Accumulator {
	return &Accumulator{product: big.NewInt(1)}
}

// Add records t = r (mod l).  Moduli must be pairwise coprime.
func (a *Accumulator) Add(l, r int64) {
	a.residues = append(a.residues, big.NewInt(r))
	a.moduli = append(a.moduli, big.NewInt(l))
	a.product = new(big.Int).Mul(a.product, big.NewInt(l))
}

// Product returns the product of all accumulated moduli.
func (a *Accumulator) Product() *big.Int {
	return a.product
}

// Len returns the number of accumulated constraints.
func (a *Accumulator) Len() int {
	return len(a.moduli)
}

// Solve combines the constraints into the residue modulo Product.
func (a *Accumulator) Solve() *big.Int {
	if len(a.moduli) == 0 {
		return big.NewInt(0)
	}

	return Solve(a.residues, a.moduli)
}
