// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command ledgerinspect is a small diagnostic CLI over the codec: it
// decodes a hex-encoded transaction and prints a summary of it, and
// computes a transaction's script-data hash, serving as an integration surface
// that exercises the library the way a real caller would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardano-forge/ledger/internal/logging"
)

const programName = "ledgerinspect"

var cmdlineFlags = struct {
	logLevel string
	logJSON  bool
}{}

func main() {
	cmd := &cobra.Command{
		Use:           programName,
		Short:         "Inspect and transform Conway-era Cardano transaction CBOR",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Configure(logging.Config{Level: cmdlineFlags.logLevel, JSON: cmdlineFlags.logJSON})
		},
	}

	cmd.PersistentFlags().StringVar(&cmdlineFlags.logLevel, "log-level", "info", "logging level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&cmdlineFlags.logJSON, "log-json", false, "emit logs as JSON instead of text")

	cmd.AddCommand(newDecodeCommand())
	cmd.AddCommand(newHashCommand())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %s\n", programName, err)
		os.Exit(1)
	}
}
