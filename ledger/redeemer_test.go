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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
)

func TestRedeemerRoundTrip(t *testing.T) {
	r := ledger.NewRedeemer(ledger.RedeemerMint, 2, []byte{0x9f, 0x01, 0xff}, primitives.ExUnits{Mem: 1000, Steps: 2000})

	w := cborcodec.NewWriter()
	r.ToCbor(w)
	require.NoError(t, w.LastError())

	reader := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.RedeemerFromCbor(reader)
	require.NoError(t, err)
	require.Equal(t, r, decoded)
}

func TestRedeemerFromCborRejectsUnknownTag(t *testing.T) {
	w := cborcodec.NewWriter()
	w.WriteStartArray(4)
	w.WriteUint(99)
	w.WriteUint(0)
	w.WriteUint(0)
	primitives.ExUnits{Mem: 1, Steps: 1}.ToCbor(w)
	_ = w.WriteEnd()

	r := cborcodec.NewReader(w.Encoded())
	_, err := ledger.RedeemerFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrUnknownDiscriminator)
}

func TestSortRedeemersOrdersByTagThenIndex(t *testing.T) {
	a := ledger.NewRedeemer(ledger.RedeemerSpend, 1, nil, primitives.ExUnits{})
	b := ledger.NewRedeemer(ledger.RedeemerSpend, 0, nil, primitives.ExUnits{})
	c := ledger.NewRedeemer(ledger.RedeemerMint, 0, nil, primitives.ExUnits{})

	sorted := ledger.SortRedeemers([]ledger.Redeemer{a, b, c})
	require.Equal(t, ledger.RedeemerSpend, sorted[0].Tag)
	require.Equal(t, uint64(0), sorted[0].Index)
	require.Equal(t, ledger.RedeemerSpend, sorted[1].Tag)
	require.Equal(t, uint64(1), sorted[1].Index)
	require.Equal(t, ledger.RedeemerMint, sorted[2].Tag)
}

func TestSortRedeemersDoesNotMutateInput(t *testing.T) {
	in := []ledger.Redeemer{
		ledger.NewRedeemer(ledger.RedeemerMint, 0, nil, primitives.ExUnits{}),
		ledger.NewRedeemer(ledger.RedeemerSpend, 0, nil, primitives.ExUnits{}),
	}
	_ = ledger.SortRedeemers(in)
	require.Equal(t, ledger.RedeemerMint, in[0].Tag)
}
