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

// Package libsea is the embedding surface of the point counter: byte
// buffer in, byte buffer out, with the modular polynomial file configured
// once up front.  It mirrors the C ABI wrapper of the original tooling,
// whose callers speak little endian buffers of a fixed width.
package libsea

import (
	"math/big"
	"os"

	"github.com/ecpoint/go-sea/pkg/modpoly"
	"github.com/ecpoint/go-sea/pkg/sea"
	"github.com/pkg/errors"
)

// Ctx is an initialised counting context.
type Ctx struct {
	rawPath     string
	reducedPath string
	resultPath  string
}

// Init points the context at a raw Mueller file.  Scratch output lands
// next to it: the reduced polynomials under ".o", the count report under
// ".x".
func Init(muellerPath string) *Ctx {
	return &Ctx{
		rawPath:     muellerPath,
		reducedPath: muellerPath + ".o",
		resultPath:  muellerPath + ".x",
	}
}

// leToBig decodes a little endian byte buffer.
func leToBig(buf []byte) *big.Int {
	be := make([]byte, len(buf))
	for i, b := range buf {
		be[len(buf)-1-i] = b
	}

	return new(big.Int).SetBytes(be)
}

// bigToLE encodes v into a little endian buffer of the given width.
func bigToLE(v *big.Int, width int) ([]byte, error) {
	be := v.Bytes()
	if len(be) > width {
		return nil, errors.Errorf("value needs %d bytes, buffer holds %d", len(be), width)
	}

	out := make([]byte, width)
	for i, b := range be {
		out[len(be)-1-i] = b
	}

	return out, nil
}

// Order counts the points of y^2 = x^3 + Ax + B over GF(p), with p, A and
// B given as little endian buffers of equal width.  The result is written
// into q, which must have that same width.  A composite p is nudged up to
// the next prime, as the reducer stage documents.
func (c *Ctx) Order(q, p, a, b []byte) error {
	if len(q) != len(p) || len(a) != len(p) || len(b) != len(p) {
		return errors.New("parameter buffers must share one width")
	}

	raw, err := os.Open(c.rawPath)
	if err != nil {
		return errors.Wrap(err, "opening raw modular polynomial file")
	}

	defer raw.Close()

	reduced, err := os.Create(c.reducedPath)
	if err != nil {
		return errors.Wrap(err, "creating reduced modular polynomial file")
	}

	if _, err := modpoly.Reduce(leToBig(p), raw, reduced, false, 0); err != nil {
		reduced.Close()
		return err
	}

	if err := reduced.Close(); err != nil {
		return err
	}

	res, err := sea.Count(leToBig(a), leToBig(b), c.reducedPath, sea.DefaultConfig())
	if err != nil {
		return err
	}

	le, err := bigToLE(res.Order, len(q))
	if err != nil {
		return err
	}

	copy(q, le)

	// the seven line report, for callers that read files instead
	report, err := os.Create(c.resultPath)
	if err != nil {
		return errors.Wrap(err, "creating result file")
	}

	defer report.Close()

	return sea.WriteResult(report, res)
}

// Clear removes the scratch files.
func (c *Ctx) Clear() error {
	for _, path := range []string{c.reducedPath, c.resultPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}
