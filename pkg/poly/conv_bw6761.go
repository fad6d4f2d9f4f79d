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

	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"
	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr/fft"
)

// bw6761Channel carries the bw6-761 scalar field as a residue channel, caching one
// transform domain per convolution size.
type bw6761Channel struct {
	domains map[uint64]*fft.Domain
}

func newBW6761Channel() *convChannel {
	ch := &bw6761Channel{domains: make(map[uint64]*fft.Domain)}

	return &convChannel{
		name:     "bw6-761",
		modulus:  fr.Modulus(),
		maxSize:  1 << 46,
		convolve: ch.convolve,
		reset:    ch.reset,
	}
}

func (c *bw6761Channel) reset() {
	c.domains = make(map[uint64]*fft.Domain)
}

func (c *bw6761Channel) domain(n uint64) *fft.Domain {
	d, ok := c.domains[n]
	if !ok {
		d = fft.NewDomain(n)
		c.domains[n] = d
	}

	return d
}

func (c *bw6761Channel) convolve(a, b []*big.Int, size uint64) []*big.Int {
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
