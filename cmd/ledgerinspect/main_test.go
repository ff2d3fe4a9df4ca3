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
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
)

func sampleTransactionHex(t *testing.T) string {
	t.Helper()
	var txId primitives.Hash32
	body := ledger.NewTransactionBody(170000)
	body.Inputs.Add(ledger.TransactionInput{TxId: txId, Index: 0})
	body.Outputs = append(body.Outputs, ledger.NewShelleyOutput([]byte("addr0000000000000000000000000"), primitives.NewSimpleValue(5000000), nil))

	tx := ledger.NewTransaction(body, ledger.NewWitnessSet())
	w := cborcodec.NewWriter()
	tx.ToCbor(w)
	require.NoError(t, w.LastError())
	return hex.EncodeToString(w.Encoded())
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestRunDecodePrintsTransactionSummary(t *testing.T) {
	defer goleak.VerifyNone(t)
	hexTx := sampleTransactionHex(t)
	out := captureStdout(t, func() {
		err := runDecode(&cobra.Command{}, []string{hexTx})
		require.NoError(t, err)
	})
	require.Contains(t, out, "fee: 170000")
	require.Contains(t, out, "inputs: 1")
	require.Contains(t, out, "outputs: 1")
}

func TestRunHashScriptDataReportsAbsentHash(t *testing.T) {
	hexTx := sampleTransactionHex(t)
	out := captureStdout(t, func() {
		err := runHashScriptData(&cobra.Command{}, []string{hexTx})
		require.NoError(t, err)
	})
	require.Contains(t, out, "(none)")
}

func TestRunHashScriptDataComputesHashWithRedeemers(t *testing.T) {
	var txId primitives.Hash32
	body := ledger.NewTransactionBody(170000)
	body.Inputs.Add(ledger.TransactionInput{TxId: txId, Index: 0})
	body.Outputs = append(body.Outputs, ledger.NewShelleyOutput([]byte("addr0000000000000000000000000"), primitives.NewSimpleValue(5000000), nil))

	ws := ledger.NewWitnessSet()
	ws.Redeemers = []ledger.Redeemer{
		ledger.NewRedeemer(ledger.RedeemerSpend, 0, []byte{0x00}, primitives.ExUnits{Mem: 10, Steps: 20}),
	}
	tx := ledger.NewTransaction(body, ws)
	w := cborcodec.NewWriter()
	tx.ToCbor(w)
	require.NoError(t, w.LastError())

	out := captureStdout(t, func() {
		err := runHashScriptData(&cobra.Command{}, []string{hex.EncodeToString(w.Encoded())})
		require.NoError(t, err)
	})
	require.NotContains(t, out, "(none)")
	require.Len(t, out, 65)
}
