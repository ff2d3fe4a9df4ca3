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

	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/internal/logging"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
)

func newHashCommand() *cobra.Command {
	hashCmd := &cobra.Command{
		Use:   "hash",
		Short: "Compute digests over decoded ledger objects",
	}
	hashCmd.AddCommand(newHashScriptDataCommand())
	return hashCmd
}

var hashScriptDataFlags = struct {
	costModelsHex string
}{}

func newHashScriptDataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script-data <hex-cbor-transaction>",
		Short: "Recompute a transaction's script-data hash from its redeemers, Plutus data, and cost models",
		Args:  cobra.ExactArgs(1),
		RunE:  runHashScriptData,
	}
	cmd.Flags().StringVar(&hashScriptDataFlags.costModelsHex, "cost-models", "", "hex-encoded cost-models map covering the Plutus languages the transaction's scripts use")
	return cmd
}

// blake2b256Hasher implements ledger.ScriptDataHasher using the Blake2b-256
// digest the Cardano ledger itself uses for script-data-hash.
func blake2b256Hasher(data []byte) primitives.Hash32 {
	sum := blake2b.Sum256(data)
	h, _ := primitives.NewHash32(sum[:])
	return h
}

func runHashScriptData(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	tx, err := ledger.TransactionFromCbor(cborcodec.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode transaction: %w", err)
	}

	var costModels *primitives.CostModels
	if hashScriptDataFlags.costModelsHex != "" {
		cmRaw, err := hex.DecodeString(hashScriptDataFlags.costModelsHex)
		if err != nil {
			return fmt.Errorf("decode cost-models hex: %w", err)
		}
		costModels, err = primitives.CostModelsFromCbor(cborcodec.NewReader(cmRaw))
		if err != nil {
			return fmt.Errorf("decode cost-models: %w", err)
		}
	}

	hash, present := ledger.ComputeScriptDataHash(
		tx.Witnesses.Redeemers,
		tx.Witnesses.PlutusData,
		costModels,
		blake2b256Hasher,
	)

	logger := logging.GetLogger()
	if !present {
		logger.Info("no script-data hash: transaction carries no redeemers, datums, or language views")
		fmt.Println("(none)")
		return nil
	}

	logger.Info("computed script-data hash", slog.String("hash", hash.String()))
	fmt.Println(hash.String())
	if tx.Body.ScriptDataHash != nil && tx.Body.ScriptDataHash.String() != hash.String() {
		logger.Warn("computed hash does not match the transaction's embedded script-data hash",
			slog.String("embedded", tx.Body.ScriptDataHash.String()),
		)
	}
	return nil
}
