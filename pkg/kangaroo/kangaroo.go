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

// Package kangaroo finalises a point count with Pollard's lambda method:
// two herds of kangaroos, one tame and one wild, leap through the Hasse
// interval until a tame and a wild animal land on the same distinguished
// point.  Knowing the group order modulo N shrinks the search from
// O(p^(1/4)) to O(p^(1/4)/sqrt(N)) curve additions.
package kangaroo

import (
	"fmt"
	"math/big"
	"math/rand/v2"

	"github.com/ecpoint/go-sea/pkg/curve"
	"github.com/ecpoint/go-sea/pkg/field"
	umath "github.com/ecpoint/go-sea/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// Params are the herd tuning constants.  They are unexplained lore from
// the lambda literature; they are fields so that a caller can vary them.
type Params struct {
	// Herd is the number of kangaroos per side.
	Herd int
	// Store is the distinguished point capacity per side; overflowing it
	// aborts the round and restarts with a fresh base point.
	Store int
	// DistinguishedBitCap bounds the rarity of distinguished points.
	DistinguishedBitCap int
	// SmallPrimeBound sieves the primes used to strip small factors from
	// a candidate order.
	SmallPrimeBound int
}

// DefaultParams returns the production constants.
func DefaultParams() Params {
	return Params{Herd: 5, Store: 80, DistinguishedBitCap: 30, SmallPrimeBound: 10000}
}

// SanityError reports a collision distance that is not a multiple of the
// base point's order, which cannot happen with sound group arithmetic.
type SanityError struct {
	Nrp *big.Int
}

// Error implements the error interface.
func (e *SanityError) Error() string {
	return fmt.Sprintf("sanity check failed: %s is not a point order multiple", e.Nrp)
}

// trap is one stored distinguished point.
type trap struct {
	pt   curve.Point
	dist *big.Int
	name int
}

// Search finds the group order #E in Hasse's interval, given that
// #E = residue (mod modulus).  The modulus is the accumulated product of
// SEA constraints; modulus one degenerates to a plain lambda search.
func Search(c *curve.Curve, residue, modulus *big.Int, prm Params, rng *rand.Rand) (*big.Int, error) {
	var (
		p     = c.F.Modulus()
		sqrtP = new(big.Int).Sqrt(p)
		sieve = umath.Primes(prm.SmallPrimeBound)
	)

	// search window [p+1-2sqrt(p)-3, p+1+2sqrt(p)+3]
	lower := new(big.Int).Add(p, big.NewInt(1))
	lower.Sub(lower, new(big.Int).Lsh(sqrtP, 1))
	lower.Sub(lower, big.NewInt(3))

	upper := new(big.Int).Add(p, big.NewInt(1))
	upper.Add(upper, new(big.Int).Lsh(sqrtP, 1))
	upper.Add(upper, big.NewInt(3))

	for {
		base := c.Rand(rng)

		nrp, ok, err := release(c, base, residue, modulus, lower, upper, prm)
		if err != nil {
			return nil, err
		}

		if !ok {
			log.Warn("kangaroo store overflow - this should be rare - trying again")
			continue
		}

		// nrp kills the base point; decide whether it is the group order
		if accept(c, base, nrp, sqrtP, sieve, rng) {
			return nrp, nil
		}

		log.Warn("low order point used - trying again")
	}
}

// release runs one round of the herds from a fresh base point, returning
// the collision distance, or ok=false if a store overflowed first.
func release(c *curve.Curve, base curve.Point, residue, modulus, lower, upper *big.Int,
	prm Params) (*big.Int, bool, error) {
	var (
		one   = big.NewInt(1)
		herd  = prm.Herd
		w     = new(big.Int).Sub(upper, lower)
		leaps = new(big.Int)
		mean  = new(big.Int)
	)

	w.Div(w, modulus)
	w.Add(w, one)
	leaps.Sqrt(w)
	mean.Mul(big.NewInt(int64(herd)), leaps)
	mean.Rsh(mean, 1)

	// distinguished points are those with this many low zero bits
	nbits := new(big.Int).Div(leaps, big.NewInt(16)).BitLen()
	if nbits > prm.DistinguishedBitCap {
		nbits = prm.DistinguishedBitCap
	}

	mask := new(big.Int).Sub(new(big.Int).Lsh(one, uint(nbits)), one)

	// distance table: distance[i] = 2^i.modulus, sized so that the mean
	// leap length approaches sqrt(w)/2
	var distance []*big.Int

	for s := new(big.Int).Lsh(one, 1); ; s.Lsh(s, 1) {
		distance = append(distance, new(big.Int).Mul(
			new(big.Int).Rsh(s, 1), modulus))

		t := new(big.Int).Div(new(big.Int).Lsh(s, 1), big.NewInt(int64(len(distance))))
		if t.Cmp(mean) > 0 {
			break
		}
	}

	m := len(distance)

	// table[i] = distance[i].base
	table := make([]curve.Point, m)
	table[0] = c.ScalarMul(base, distance[0])

	for i := 1; i < m; i++ {
		table[i] = c.Double(table[i-1])
	}

	// tame herd starts near the middle, adjusted onto the right residue
	// class; wild herd starts at the origin side
	middle := new(big.Int).Add(upper, lower)
	middle.Rsh(middle, 1)

	if modulus.Cmp(one) > 0 {
		adj := new(big.Int).Mod(middle, modulus)
		adj.Sub(residue, adj)
		adj.Add(adj, modulus)
		middle.Add(middle, adj)
	}

	var (
		total = 2 * herd
		start = make([]*big.Int, total)
		pos   = make([]curve.Point, total)
		dist  = make([]*big.Int, total)
		hops  = make([]curve.Point, total)
		traps = [2][]trap{} // tame, wild
	)

	for i := 0; i < herd; i++ {
		start[i] = new(big.Int).Add(middle, spacing(modulus, i))
		start[herd+i] = spacing(modulus, i)
	}

	for i := range pos {
		pos[i] = c.ScalarMul(base, start[i])
		dist[i] = new(big.Int)
	}

	log.Debugf("releasing %d tame and %d wild kangaroos (table size %d, %d distinguished bits)",
		herd, herd, m, nbits)

	xc := new(big.Int)

	for {
		for side := 0; side < 2; side++ {
			for j := side * herd; j < (side+1)*herd; j++ {
				if pos[j].Inf {
					xc.SetInt64(0)
				} else {
					xc.Set(c.F.BigInt(pos[j].X))
				}

				i := int(new(big.Int).Mod(xc, big.NewInt(int64(m))).Int64())

				if new(big.Int).And(xc, mask).Sign() == 0 {
					if len(traps[side]) >= prm.Store {
						return nil, false, nil
					}

					traps[side] = append(traps[side],
						trap{pos[j], new(big.Int).Set(dist[j]), j})

					// probe the opposite herd's traps
					for _, other := range traps[1-side] {
						if c.Equal(other.pt, pos[j]) {
							mine := traps[side][len(traps[side])-1]
							if side == 0 {
								return resolve(c, base, start, mine, other)
							}

							return resolve(c, base, start, other, mine)
						}
					}
				}

				dist[j].Add(dist[j], distance[i])
				hops[j] = table[i]
			}
		}

		// jump together - one shared inversion for the whole mob
		c.MultiAdd(pos, hops)
	}
}

// spacing separates kangaroos of one herd by 13.modulus steps.
func spacing(modulus *big.Int, i int) *big.Int {
	s := big.NewInt(int64(13 * i))
	return s.Mul(s, modulus)
}

// resolve converts a tame/wild collision into the candidate order and
// verifies it kills the base point.
func resolve(c *curve.Curve, base curve.Point, start []*big.Int, t, w trap) (*big.Int, bool, error) {
	nrp := new(big.Int).Sub(start[t.name], start[w.name])
	nrp.Add(nrp, t.dist)
	nrp.Sub(nrp, w.dist)

	if !c.ScalarMul(base, nrp).Inf {
		return nil, false, &SanityError{nrp}
	}

	log.Debugf("collision of kangaroos %d and %d", t.name, w.name)

	return nrp, true, nil
}

// accept decides whether nrp, known to kill the base point, is credibly
// the full group order rather than a small multiple of the point's order.
func accept(c *curve.Curve, base curve.Point, nrp, sqrtP *big.Int, sieve []int, rng *rand.Rand) bool {
	if nrp.ProbablyPrime(field.MillerRabinRounds) {
		log.Debugf("NP = %s is prime", nrp)
		return true
	}

	var (
		residual = new(big.Int).Set(nrp)
		tmp      = new(big.Int)
	)

	// strip every small prime the base point provably does not need
	for _, sp := range sieve {
		spb := big.NewInt(int64(sp))

		for tmp.Mod(residual, spb); tmp.Sign() == 0; tmp.Mod(residual, spb) {
			q := new(big.Int).Div(residual, spb)
			if !c.ScalarMul(base, q).Inf {
				break
			}

			residual.Set(q)
		}
	}

	if residual.Cmp(new(big.Int).Mul(big.NewInt(4), sqrtP)) <= 0 {
		// point order too small to pin down the group order
		return false
	}

	// divide out all small primes; a trivial or odd-one-prime cofactor
	// settles the question directly
	residual.Set(nrp)

	for _, sp := range sieve {
		spb := big.NewInt(int64(sp))
		for tmp.Mod(residual, spb); tmp.Sign() == 0; tmp.Mod(residual, spb) {
			residual.Div(residual, spb)
		}
	}

	if residual.Cmp(big.NewInt(1)) == 0 {
		// all factors of nrp were accounted for
		return true
	}

	if residual.ProbablyPrime(field.MillerRabinRounds) {
		// nrp = s.q with q prime; if nrp/q already kills the point then q
		// was spurious and the round is ambiguous
		return !c.ScalarMul(base, new(big.Int).Div(nrp, residual)).Inf
	}

	// nrp kills ten random points only if it is (almost certainly) a
	// multiple of the group exponent, hence the order
	for range 10 {
		if !c.ScalarMul(c.Rand(rng), nrp).Inf {
			return false
		}
	}

	log.Debug("NP is composite (probable order)")

	return true
}
