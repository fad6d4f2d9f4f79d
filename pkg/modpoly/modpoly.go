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

// Package modpoly implements the serial form of modular polynomials: the
// raw stream written by the Mueller stage, and the reduced stream obtained
// by taking every coefficient modulo a chosen prime.
//
// Both streams are ASCII with one token per line; coefficients and the
// reduction prime are base 16, l and the powers are decimal.  A
// polynomial is its prime l followed by (coefficient, x power, y power)
// triples; the triple whose power pair is (0,0) closes the polynomial.  A
// reduced stream is prefixed with the reduction prime.
package modpoly

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// ErrBadFile indicates a malformed modular polynomial stream.
var ErrBadFile = errors.New("bad modular polynomial file")

// Term is one monomial of a serialised modular polynomial.
type Term struct {
	C      *big.Int
	NX, NY int
}

// Record is one modular polynomial: its prime l and its terms in serial
// order, the (0,0) terminator included as the final constant term.
type Record struct {
	L     int
	Terms []Term
}

// Writer emits the serial form.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w for stream output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

// WritePrime emits the reduction prime heading a reduced stream.
func (w *Writer) WritePrime(p *big.Int) error {
	_, err := fmt.Fprintf(w.w, "%s\n", p.Text(16))
	return err
}

// WriteRecord emits one polynomial.
func (w *Writer) WriteRecord(rec Record) error {
	if _, err := fmt.Fprintf(w.w, "%d\n", rec.L); err != nil {
		return err
	}

	for _, t := range rec.Terms {
		if _, err := fmt.Fprintf(w.w, "%s\n%d\n%d\n", t.C.Text(16), t.NX, t.NY); err != nil {
			return err
		}
	}

	return nil
}

// Flush drains buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Reader parses the serial form token by token.
type Reader struct {
	s *bufio.Scanner
}

// NewReader wraps r for stream input.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	s.Buffer(make([]byte, 0, 1<<16), 1<<20)

	return &Reader{s}
}

func (r *Reader) token() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", errors.Wrap(err, "reading modular polynomial stream")
		}

		return "", io.EOF
	}

	return r.s.Text(), nil
}

func (r *Reader) bigToken() (*big.Int, error) {
	tok, err := r.token()
	if err != nil {
		return nil, err
	}

	v, ok := new(big.Int).SetString(tok, 16)
	if !ok {
		return nil, errors.Wrapf(ErrBadFile, "invalid integer token %q", tok)
	}

	return v, nil
}

func (r *Reader) intToken() (int, error) {
	tok, err := r.token()
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrBadFile, "invalid exponent token %q", tok)
	}

	return v, nil
}

// ReadPrime consumes the prime heading a reduced stream.
func (r *Reader) ReadPrime() (*big.Int, error) {
	p, err := r.bigToken()
	if err == io.EOF {
		return nil, errors.Wrap(ErrBadFile, "empty stream")
	}

	return p, err
}

// Next returns the next polynomial, or io.EOF at the end of the stream.
func (r *Reader) Next() (Record, error) {
	var rec Record

	l, err := r.intToken()
	if err != nil {
		return rec, err // io.EOF here is a clean end of stream
	}

	if l < 3 || l%2 == 0 {
		return rec, errors.Wrapf(ErrBadFile, "unexpected modular polynomial prime %d", l)
	}

	rec.L = l

	for {
		c, err := r.bigToken()
		if err != nil {
			return rec, truncated(err)
		}

		nx, err := r.intToken()
		if err != nil {
			return rec, truncated(err)
		}

		ny, err := r.intToken()
		if err != nil {
			return rec, truncated(err)
		}

		rec.Terms = append(rec.Terms, Term{c, nx, ny})

		if nx == 0 && ny == 0 {
			return rec, nil
		}
	}
}

func truncated(err error) error {
	if err == io.EOF {
		return errors.Wrap(ErrBadFile, "unexpected end of stream")
	}

	return err
}
