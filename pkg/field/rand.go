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
	"encoding/binary"
	"math/big"
	"math/rand/v2"
)

// RandBelow draws a uniform-ish integer in [0, n) from the given source.
// Point selection only needs unpredictability across seeds, not perfect
// uniformity, so a straight modular reduction of fresh random bytes is
// used.
func RandBelow(rng *rand.Rand, n *big.Int) *big.Int {
	nwords := (n.BitLen()+7)/8/8 + 2
	buf := make([]byte, 8*nwords)

	for i := 0; i < len(buf); i += 8 {
		binary.BigEndian.PutUint64(buf[i:], rng.Uint64())
	}

	v := new(big.Int).SetBytes(buf)

	return v.Mod(v, n)
}

// Rand draws a random field element.
func (f *Field) Rand(rng *rand.Rand) Element {
	return f.NewElement(RandBelow(rng, f.p))
}
