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
	"fmt"
	"math/big"

	"github.com/ecpoint/go-sea/pkg/field"
)

// convChannel is one residue channel of the convolver: an FFT-friendly
// prime field together with its cached transform domains.
type convChannel struct {
	name    string
	modulus *big.Int
	maxSize uint64
	// convolve returns the cyclic convolution of a and b at the given
	// power-of-two size, with every value reduced modulo the channel prime.
	convolve func(a, b []*big.Int, size uint64) []*big.Int
	reset    func()
}

// convolver multiplies integer coefficient vectors exactly by running one
// NTT per residue channel and recombining with the Chinese remainder
// theorem.  The channel prefix actually used is the smallest one whose
// modulus product exceeds the worst-case coefficient, the engine's
// analogue of reserving "32*(1+p*s/6) bits per coefficient" up front.
type convolver struct {
	channels []*convChannel
	// pSqBound = (p-1)^2, the largest possible coefficient product
	pSqBound *big.Int
}

func newConvolver(p *big.Int) *convolver {
	bound := new(big.Int).Sub(p, big.NewInt(1))
	bound.Mul(bound, bound)

	return &convolver{
		channels: []*convChannel{
			newBW6761Channel(),
			newBLS12377Channel(),
			newBLS12381Channel(),
			newBN254Channel(),
			newBLS24315Channel(),
		},
		pSqBound: bound,
	}
}

func (c *convolver) reset() {
	for _, ch := range c.channels {
		ch.reset()
	}
}

// pick returns the channel prefix whose modulus product covers products of
// n coefficient pairs, i.e. exceeds n.(p-1)^2.
func (c *convolver) pick(n int, size uint64) []*convChannel {
	var (
		bound = new(big.Int).Mul(big.NewInt(int64(n)), c.pSqBound)
		prod  = big.NewInt(1)
	)

	for i, ch := range c.channels {
		if size > ch.maxSize {
			panic(fmt.Sprintf("convolution of size %d exceeds channel %s", size, ch.name))
		}

		prod.Mul(prod, ch.modulus)
		if prod.Cmp(bound) > 0 {
			return c.channels[:i+1]
		}
	}

	panic(fmt.Sprintf("coefficient bound %s exceeds all residue channels", bound))
}

// mul returns the exact integer coefficients of a*b, where a and b hold
// canonical residues in [0, p).
func (c *convolver) mul(a, b []*big.Int) []*big.Int {
	var (
		outLen = len(a) + len(b) - 1
		size   = uint64(1)
	)

	for size < uint64(outLen) {
		size <<= 1
	}

	var (
		chans    = c.pick(min(len(a), len(b)), size)
		residues = make([][]*big.Int, len(chans))
		moduli   = make([]*big.Int, len(chans))
	)

	for i, ch := range chans {
		residues[i] = ch.convolve(a, b, size)
		moduli[i] = ch.modulus
	}

	// Garner recomposition per coefficient
	out := make([]*big.Int, outLen)

	for j := range out {
		r := make([]*big.Int, len(chans))
		for i := range chans {
			r[i] = residues[i][j]
		}

		out[j] = garner(r, moduli)
	}

	return out
}

// garner recomposes x from its residues using Garner's mixed radix walk.
func garner(residues, moduli []*big.Int) *big.Int {
	var (
		x   = new(big.Int).Set(residues[0])
		m   = new(big.Int).Set(moduli[0])
		t   = new(big.Int)
		tmp = new(big.Int)
	)

	for i := 1; i < len(residues); i++ {
		t.Sub(residues[i], x)
		t.Mod(t, moduli[i])
		tmp.ModInverse(m, moduli[i])
		t.Mul(t, tmp)
		t.Mod(t, moduli[i])
		x.Add(x, tmp.Mul(m, t))
		m.Mul(m, moduli[i])
	}

	return x
}

// mulFFT multiplies via the residue channels and reduces back into GF(p).
func (r *Ring) mulFFT(a, b Poly) Poly {
	var (
		ab = make([]*big.Int, len(a.c))
		bb = make([]*big.Int, len(b.c))
	)

	for i, e := range a.c {
		ab[i] = r.F.BigInt(e)
	}

	for i, e := range b.c {
		bb[i] = r.F.BigInt(e)
	}

	prod := r.conv.mul(ab, bb)

	c := make([]field.Element, len(prod))
	for i, v := range prod {
		c[i] = r.F.NewElement(v)
	}

	return r.trim(Poly{c})
}
