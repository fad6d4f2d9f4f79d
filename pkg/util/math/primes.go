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
package math

// Primes returns all primes below n by a plain sieve of Eratosthenes.
func Primes(n int) []int {
	if n < 3 {
		return nil
	}

	composite := make([]bool, n)

	for i := 2; i*i < n; i++ {
		if composite[i] {
			continue
		}

		for j := i * i; j < n; j += i {
			composite[j] = true
		}
	}

	var primes []int

	for i := 2; i < n; i++ {
		if !composite[i] {
			primes = append(primes, i)
		}
	}

	return primes
}
