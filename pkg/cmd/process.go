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
package cmd

import (
	"fmt"
	"os"

	"github.com/ecpoint/go-sea/pkg/modpoly"
	"github.com/spf13/cobra"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reduce raw modular polynomials for a chosen prime modulus.",
	Long: `Reduce each coefficient of a raw Mueller file modulo the prime P,
writing the stream the count command consumes.  A composite P is moved to
the nearest prime (upward unless --down) with a diagnostic.`,
	Run: func(cmd *cobra.Command, args []string) {
		p := parseBig("modulus", getString(cmd, "field"))

		in, err := os.Open(getString(cmd, "input"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		defer in.Close()

		out, err := os.Create(getString(cmd, "output"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		defer out.Close()

		used, err := modpoly.Reduce(p, in, out, getFlag(cmd, "down"), getInt(cmd, "max"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Printf("P = %s (%d bits)\n", used.Text(16), used.BitLen())
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("field", "f", "", "prime modulus, base 16")
	processCmd.Flags().StringP("input", "i", "mueller.raw", "raw input file")
	processCmd.Flags().StringP("output", "o", "mueller.pol", "reduced output file")
	processCmd.Flags().Bool("down", false, "scan downward when the modulus is composite")
	processCmd.Flags().Int("max", 0, "drop modular polynomials above this prime (0 keeps all)")

	_ = processCmd.MarkFlagRequired("field")
}
