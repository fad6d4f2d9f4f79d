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
package modpoly

import (
	"io"
	"math/big"

	"github.com/ecpoint/go-sea/pkg/field"
	log "github.com/sirupsen/logrus"
)

// AdjustPrime returns the first probable prime reached from p, scanning
// upward, or downward when down is set.  The returned offset is how far the
// scan moved.
func AdjustPrime(p *big.Int, down bool) (*big.Int, int64) {
	if p.ProbablyPrime(field.MillerRabinRounds) {
		return p, 0
	}

	var (
		q      = new(big.Int).Set(p)
		step   = big.NewInt(1)
		offset int64
	)

	if down {
		step.SetInt64(-1)
	}

	for {
		q.Add(q, step)
		offset++

		if q.ProbablyPrime(field.MillerRabinRounds) {
			break
		}
	}

	if down {
		offset = -offset
	}

	return q, offset
}

// Reduce reads a raw modular polynomial stream and writes the reduced
// stream with every coefficient taken modulo p.  A composite p is nudged
// to the nearest prime in the chosen direction first, with a diagnostic;
// the prime actually used is returned.  Records with l > maxL are dropped;
// maxL <= 0 keeps everything.
func Reduce(p *big.Int, in io.Reader, out io.Writer, down bool, maxL int) (*big.Int, error) {
	p, offset := AdjustPrime(p, down)
	if offset != 0 {
		log.Warnf("supplied modulus is not prime, using P%+d = %s", offset, p)
	}

	var (
		r = NewReader(in)
		w = NewWriter(out)
	)

	if err := w.WritePrime(p); err != nil {
		return nil, err
	}

	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if maxL > 0 && rec.L > maxL {
			break
		}

		for i, t := range rec.Terms {
			rec.Terms[i].C = new(big.Int).Mod(t.C, p)
		}

		if err := w.WriteRecord(rec); err != nil {
			return nil, err
		}

		log.Debugf("reduced modular polynomial for l=%d (%d terms)", rec.L, len(rec.Terms))
	}

	return p, w.Flush()
}
