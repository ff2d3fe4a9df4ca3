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

package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardano-forge/ledger/bech32addr"
	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/internal/logging"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
)

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex-cbor>",
		Short: "Decode a hex-encoded transaction and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}

	r := cborcodec.NewReader(raw)
	tx, err := ledger.TransactionFromCbor(r)
	if err != nil {
		return fmt.Errorf("decode transaction: %w", err)
	}

	logger := logging.GetLogger()
	logger.Info("decoded transaction",
		slog.Int("inputs", tx.Body.Inputs.Len()),
		slog.Int("outputs", len(tx.Body.Outputs)),
		slog.Uint64("fee", tx.Body.Fee),
		slog.Bool("is_valid", tx.IsValid),
	)

	fmt.Fprintf(os.Stdout, "fee: %d\n", tx.Body.Fee)
	fmt.Fprintf(os.Stdout, "inputs: %d\n", tx.Body.Inputs.Len())
	fmt.Fprintf(os.Stdout, "outputs: %d\n", len(tx.Body.Outputs))
	fmt.Fprintf(os.Stdout, "certificates: %d\n", len(tx.Body.Certificates))
	fmt.Fprintf(os.Stdout, "is_valid: %t\n", tx.IsValid)

	if tx.Witnesses.VKeyWitnesses.Len() > 0 {
		fmt.Fprintf(os.Stdout, "vkey witnesses: %d\n", tx.Witnesses.VKeyWitnesses.Len())
	}
	if tx.Body.RequiredSigners != nil {
		for _, signer := range tx.Body.RequiredSigners.Items() {
			hash := primitives.Hash28(signer)
			bech, err := bech32addr.EncodeStakeCredential(primitives.NewKeyHashCredential(hash))
			if err != nil {
				logger.Warn("could not render required signer", slog.String("error", err.Error()))
				continue
			}
			fmt.Fprintf(os.Stdout, "required signer: %s\n", bech)
		}
	}

	return nil
}
