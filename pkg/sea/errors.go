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
package sea

import (
	"github.com/ecpoint/go-sea/pkg/field"
	"github.com/pkg/errors"
)

var (
	// ErrBadParams covers every rejected input: a composite or tiny
	// modulus, a singular curve, or a degenerate j-invariant.
	ErrBadParams = errors.New("bad curve parameters")

	// ErrEarlyAbort is returned in search mode when a small prime is found
	// dividing the curve order, so the caller can move to the next curve.
	ErrEarlyAbort = errors.New("curve order divisible by a small prime")
)

// recoverSanity converts an arithmetic invariant panic into an error,
// leaving every other panic alone.  Stage entry points defer it so that a
// broken invariant surfaces as a diagnostic rather than a crash.
func recoverSanity(err *error) {
	switch r := recover().(type) {
	case nil:
	case *field.SanityError:
		*err = errors.Wrap(ErrBadParams, r.Error())
	default:
		panic(r)
	}
}
