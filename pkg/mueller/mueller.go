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

// Package mueller generates modular polynomials G_l(X,Y) for small odd
// primes l, by manipulating the q-expansions of the Klein j-invariant and
// the Dedekind eta function.  This is Mueller's variant, producing much
// smaller coefficients than the classical modular polynomials.
package mueller

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ecpoint/go-sea/pkg/modpoly"
	"github.com/ecpoint/go-sea/pkg/powser"
	umath "github.com/ecpoint/go-sea/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// Config drives a generation run over the odd primes of [Lo, Hi].
type Config struct {
	Lo, Hi int
	// Skip drops any prime whose eta exponent parameter s (the smallest
	// integer with 12 | s(l-1), one of 1, 2, 3, 6) is at least this bound.
	// The historical driver pinned this to 12, which skips nothing; that
	// remains the default, but the caller's value is honoured.
	Skip int
}

// DefaultConfig generates for every prime in range.
func DefaultConfig(lo, hi int) Config {
	return Config{Lo: lo, Hi: hi, Skip: 12}
}

// SanityError indicates the leading coefficient cancellation of a modular
// polynomial left a non-zero residual, i.e. a broken series computation.
type SanityError struct {
	L int
}

// Error implements the error interface.
func (e *SanityError) Error() string {
	return fmt.Sprintf("sanity check failed cancelling coefficients of G_%d", e.L)
}

// Generate computes the modular polynomial of every odd prime in the
// configured range and writes the raw serial stream to w.
func Generate(cfg Config, w io.Writer) error {
	if cfg.Lo > cfg.Hi || cfg.Hi > 1000 {
		return fmt.Errorf("invalid prime range [%d, %d]", cfg.Lo, cfg.Hi)
	}

	var (
		out  = modpoly.NewWriter(w)
		done int
	)

	for _, l := range umath.Primes(cfg.Hi + 1) {
		if l < 3 || l < cfg.Lo {
			continue
		}

		s := etaExponent(l)
		if s >= cfg.Skip {
			log.Infof("skipping prime %d (s=%d)", l, s)
			continue
		}

		log.Infof("prime %d (s=%d)", l, s)

		rec, err := Polynomial(l)
		if err != nil {
			return err
		}

		if err := out.WriteRecord(rec); err != nil {
			return err
		}

		done++
	}

	log.Infof("%d primes processed in the specified range", done)

	return out.Flush()
}

// etaExponent returns the smallest s such that 12 divides s(l-1).
func etaExponent(l int) int {
	s := 1
	for s*(l-1)%12 != 0 {
		s++
	}

	return s
}

// Polynomial computes the modular polynomial for one odd prime, returning
// it in serial form: leading term (1, l+1, 0) first, then the terms of each
// coefficient in decreasing x degree, constant term last.
func Polynomial(l int) (modpoly.Record, error) {
	var (
		s   = etaExponent(l)
		v   = s * (l - 1) / 12
		rec = modpoly.Record{L: l}
	)

	// Klein j needs only v+2 accurate terms before the x -> x^l
	// substitution scales the precision by l.
	klein := powser.NewRing(v + 2).Klein()

	r := powser.NewRing((v + 2) * l)
	klein = r.Power(klein, l)

	// F_l(x) = (eta(x)/eta(x^l))^2s . x^-v.  The missing q^(1/24) factors
	// of eta are exactly compensated by the x^-v shift.
	var (
		eta = r.Eta()
		flt = r.Mul(eta, r.Inv(r.Power(eta, l)))
	)

	flt = r.DivXn(r.Pow(flt, 2*s), v)

	// l^s / F_l(lt), a cheap series of only N/l terms
	zlt := r.Div(
		powser.Monomial(new(big.Int).Exp(big.NewInt(int64(l)), big.NewInt(int64(s)), nil), 0),
		r.Power(flt, l),
	)

	// Power sums of the conjugates.  Summing the conjugate expansions
	// cancels all but every l-th term of f = F_l^i, so only the phase
	// survives; the in-place growth of f dominates the stage's memory.
	ps := make([]powser.Series, l+2)
	ps[0] = powser.Scalar(int64(l + 1))

	var (
		f = powser.Scalar(1)
		z = powser.Scalar(1)
	)

	for i := 1; i <= l+1; i++ {
		f = r.Mul(f, flt)
		z = r.Mul(z, zlt)
		ps[i] = r.Add(r.Phase(f, l), z)
	}

	// Newton's identities: power sums to elementary symmetric coefficients
	c := make([]powser.Series, l+2)
	c[0] = powser.Scalar(1)

	for i := 1; i <= l+1; i++ {
		acc := powser.Series{}
		for j := 1; j <= i; j++ {
			acc = r.Add(acc, r.Mul(ps[j], c[i-j]))
		}

		c[i] = r.DivScalarExact(r.Neg(acc), big.NewInt(int64(i)))
	}

	ps = nil

	// powers of j(lt), indexing the y exponents
	jlt := make([]powser.Series, v+1)
	jlt[0] = powser.Scalar(1)

	if v >= 1 {
		jlt[1] = klein
		for i := 2; i <= v; i++ {
			jlt[i] = r.Mul(jlt[i-1], klein)
		}
	}

	// X^(l+1) with unit coefficient leads the record
	rec.Terms = append(rec.Terms, modpoly.Term{C: big.NewInt(1), NX: l + 1, NY: 0})

	// Each c_i is reduced to an integer by cancelling powers of j(lt); the
	// power needed to kill the current leading negative exponent is the y
	// exponent of the emitted term.
	for i := 1; i <= l+1; i++ {
		z := c[i]

		for !z.IsZero() && z.First() != 0 {
			j := -z.First() / l
			if j < 1 || j > v || z.First()%l != 0 {
				// leading exponent is not cancellable by any j(lt)^j
				return rec, &SanityError{l}
			}

			cf := new(big.Int).Set(z.Coeff(z.First()))

			rec.Terms = append(rec.Terms, modpoly.Term{C: cf, NX: l + 1 - i, NY: j})
			z = r.Sub(z, r.MulScalar(jlt[j], cf))
		}

		rec.Terms = append(rec.Terms,
			modpoly.Term{C: new(big.Int).Set(z.Coeff(0)), NX: l + 1 - i, NY: 0})

		// all the remaining coefficients must have cancelled
		if z.Coeff(l).Sign() != 0 {
			return rec, &SanityError{l}
		}
	}

	return rec, nil
}
