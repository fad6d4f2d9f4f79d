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
	"strconv"

	"github.com/ecpoint/go-sea/pkg/mueller"
	"github.com/ecpoint/go-sea/pkg/util"
	"github.com/spf13/cobra"
)

// muellerCmd represents the mueller command
var muellerCmd = &cobra.Command{
	Use:   "mueller [lo] [hi]",
	Short: "Generate raw Mueller modular polynomials for a prime range.",
	Long: `Generate the modular polynomial G_l(X,Y) of every odd prime l in
[lo, hi] and append them to the raw output file.  Primes with a large eta
exponent s can be skipped with --skip to bound memory.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lo, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		hi, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		cfg := mueller.DefaultConfig(lo, hi)
		cfg.Skip = getInt(cmd, "skip")

		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if getFlag(cmd, "append") {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}

		out, err := os.OpenFile(getString(cmd, "output"), flags, 0o644)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		defer out.Close()

		stats := util.NewPerfStats()

		if err := mueller.Generate(cfg, out); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		stats.Log("generating modular polynomials")
	},
}

func init() {
	rootCmd.AddCommand(muellerCmd)

	muellerCmd.Flags().StringP("output", "o", "mueller.raw", "raw output file")
	muellerCmd.Flags().BoolP("append", "a", false, "append to the output file")
	muellerCmd.Flags().Int("skip", 12, "skip primes whose eta exponent s is at least this")
}
