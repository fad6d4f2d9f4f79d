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
	"math/big"
	"os"

	"github.com/ecpoint/go-sea/pkg/sea"
	"github.com/ecpoint/go-sea/pkg/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the points of y^2 = x^3 + Ax + B over GF(p).",
	Long: `Count the points of the curve over the prime fixed by the reduced
modular polynomial file.  With --search, any curve whose order has a small
prime factor is abandoned and B is incremented until an ideal candidate
appears.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			a      = parseBig("curve parameter A", getString(cmd, "acoef"))
			b      = parseBig("curve parameter B", getString(cmd, "bcoef"))
			search = getFlag(cmd, "search")
			input  = getString(cmd, "input")
		)

		cfg := sea.DefaultConfig()
		cfg.Search = search
		cfg.AtkinAll = getFlag(cmd, "atkin")

		stats := util.NewPerfStats()

		var (
			res *sea.Result
			err error
		)

		for {
			res, err = sea.Count(a, b, input, cfg)
			if search && errors.Is(err, sea.ErrEarlyAbort) {
				// move on to the "next" curve
				b = new(big.Int).Add(b, big.NewInt(1))
				continue
			}

			break
		}

		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		stats.Log("counting points")

		fmt.Printf("NP = %s\n", res.Order.Text(16))

		if output := getString(cmd, "output"); output != "" {
			out, err := os.Create(output)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			defer out.Close()

			if err := sea.WriteResult(out, res); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().StringP("acoef", "a", "", "curve parameter A, base 16")
	countCmd.Flags().StringP("bcoef", "b", "", "curve parameter B, base 16")
	countCmd.Flags().StringP("input", "i", "mueller.pol", "reduced modular polynomial file")
	countCmd.Flags().StringP("output", "o", "", "write the seven line report here")
	countCmd.Flags().BoolP("search", "s", false, "search for a curve of prime order")
	countCmd.Flags().Bool("atkin", false, "process every Atkin prime, not just the unique case")

	_ = countCmd.MarkFlagRequired("acoef")
	_ = countCmd.MarkFlagRequired("bcoef")
}
