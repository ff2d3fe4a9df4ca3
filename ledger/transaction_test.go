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

package ledger_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
)

func mustHash32(t *testing.T, hexStr string) primitives.Hash32 {
	t.Helper()
	b, err := hex.DecodeString(hexStr)
	require.NoError(t, err)
	h, err := primitives.NewHash32(b)
	require.NoError(t, err)
	return h
}

func TestTransactionBodyRoundTrip(t *testing.T) {
	body := ledger.NewTransactionBody(170000)
	txId := mustHash32(t, "1111111111111111111111111111111111111111111111111111111111111111"[:64])
	body.Inputs.Add(ledger.NewTransactionInput(txId, 0))
	body.Outputs = append(body.Outputs, ledger.NewShelleyOutput([]byte{0x61, 0x62}, primitives.NewSimpleValue(5000000), nil))

	w := cborcodec.NewWriter()
	body.ToCbor(w)
	require.NoError(t, w.LastError())

	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.TransactionBodyFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, body.Fee, decoded.Fee)
	require.Equal(t, 1, decoded.Inputs.Len())
	require.Len(t, decoded.Outputs, 1)
}

func TestTransactionWrapsBodyAndWitnesses(t *testing.T) {
	body := ledger.NewTransactionBody(170000)
	txId := mustHash32(t, "2222222222222222222222222222222222222222222222222222222222222222"[:64])
	body.Inputs.Add(ledger.NewTransactionInput(txId, 1))
	body.Outputs = append(body.Outputs, ledger.NewShelleyOutput([]byte{0x61}, primitives.NewSimpleValue(1000000), nil))

	ws := ledger.NewWitnessSet()
	tx := ledger.NewTransaction(body, ws)

	w := cborcodec.NewWriter()
	tx.ToCbor(w)
	require.NoError(t, w.LastError())

	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.TransactionFromCbor(r)
	require.NoError(t, err)
	require.True(t, decoded.IsValid)
	require.Nil(t, decoded.Auxiliary)
	require.Equal(t, uint64(170000), decoded.Body.Fee)
}

func TestTransactionMarkedInvalidRoundTrips(t *testing.T) {
	body := ledger.NewTransactionBody(5000)
	tx := ledger.NewTransaction(body, ledger.NewWitnessSet())
	tx.IsValid = false

	w := cborcodec.NewWriter()
	tx.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.TransactionFromCbor(r)
	require.NoError(t, err)
	require.False(t, decoded.IsValid)
}

func TestScriptDataHashAbsentWhenNothingToProtect(t *testing.T) {
	hash, present := ledger.ComputeScriptDataHash(nil, nil, nil, func(b []byte) primitives.Hash32 {
		t.Fatal("hasher should not be invoked when nothing needs protecting")
		return primitives.Hash32{}
	})
	require.False(t, present)
	require.Nil(t, hash)
}

func TestScriptDataHashCoversRedeemersAndLanguageViews(t *testing.T) {
	redeemer := ledger.NewRedeemer(ledger.RedeemerSpend, 0, []byte{0x00}, primitives.ExUnits{Mem: 1, Steps: 2})
	costModels := primitives.NewCostModels()
	require.NoError(t, costModels.Set(primitives.PlutusV1, make([]int64, 166)))

	var sawInput []byte
	hash, present := ledger.ComputeScriptDataHash([]ledger.Redeemer{redeemer}, nil, costModels, func(b []byte) primitives.Hash32 {
		sawInput = b
		var h primitives.Hash32
		copy(h[:], b)
		return h
	})
	require.True(t, present)
	require.NotNil(t, hash)
	require.NotEmpty(t, sawInput)
}

func TestTransactionBodyRejectsUnknownMapKey(t *testing.T) {
	kw := cborcodec.NewWriter()
	kw.WriteUint(999)
	vw := cborcodec.NewWriter()
	vw.WriteUint(1)
	entries := []cborcodec.SortedMapEntry{{Key: kw.Encoded(), Value: vw.Encoded()}}

	w := cborcodec.NewWriter()
	w.WriteSortedMap(entries)

	r := cborcodec.NewReader(w.Encoded())
	_, err := ledger.TransactionBodyFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrUnknownDiscriminator)
}

func TestTransactionBodyRequiresInputsField(t *testing.T) {
	kw := cborcodec.NewWriter()
	kw.WriteUint(2) // fee only, inputs omitted
	vw := cborcodec.NewWriter()
	vw.WriteUint(100)
	entries := []cborcodec.SortedMapEntry{{Key: kw.Encoded(), Value: vw.Encoded()}}

	w := cborcodec.NewWriter()
	w.WriteSortedMap(entries)

	r := cborcodec.NewReader(w.Encoded())
	_, err := ledger.TransactionBodyFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrInvariantViolation)
}
