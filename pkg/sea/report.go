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
	"fmt"
	"io"
)

// WriteResult emits the seven line count report: the bit length of p, then
// p, A, B, the order and the coordinates of a random point, all base 16.
func WriteResult(w io.Writer, res *Result) error {
	_, err := fmt.Fprintf(w, "%d\n%s\n%s\n%s\n%s\n%s\n%s\n",
		res.P.BitLen(),
		res.P.Text(16),
		res.A.Text(16),
		res.B.Text(16),
		res.Order.Text(16),
		res.X.Text(16),
		res.Y.Text(16),
	)

	return err
}
