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
package poly

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// bls12381Channel carries the bls12-381 scalar field as a residue channel, caching one
// transform domain per convolution size.
type bls12381Channel struct {
	domains map[uint64]*fft.Domain
}

func newBLS12381Channel() *convChannel {
	ch := &bls12381Channel{domains: make(map[uint64]*fft.Domain)}

	return &convChannel{
		name:     "bls12-381",
		modulus:  fr.Modulus(),
		maxSize:  1 << 32,
		convolve: ch.convolve,
		reset:    ch.reset,
	}
}

func (c *bls12381Channel) reset() {
	c.domains = make(map[uint64]*fft.Domain)
}

func (c *bls12381Channel) domain(n uint64) *fft.Domain {
	d, ok := c.domains[n]
	if !ok {
		d = fft.NewDomain(n)
		c.domains[n] = d
	}

	return d
}

func (c *bls12381Channel) convolve(a, b []*big.Int, size uint64) []*big.Int {
	var (
		d  = c.domain(size)
		fa = make([]fr.Element, size)
		fb = make([]fr.Element, size)
	)

	for i, x := range a {
		fa[i].SetBigInt(x)
	}

	for i, x := range b {
		fb[i].SetBigInt(x)
	}

	d.FFT(fa, fft.DIF)
	d.FFT(fb, fft.DIF)

	for i := range fa {
		fa[i].Mul(&fa[i], &fb[i])
	}

	d.FFTInverse(fa, fft.DIT)

	out := make([]*big.Int, size)
	for i := range fa {
		out[i] = fa[i].BigInt(new(big.Int))
	}

	return out
}
