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
)

func TestUpdateRoundTrip(t *testing.T) {
	u := ledger.NewUpdate(250)
	paramUpdate := cborcodec.NewWriter()
	paramUpdate.WriteStartMap(0)
	_ = paramUpdate.WriteEnd()
	u.Propose(hash28Of(t, 0x90), paramUpdate.Encoded())

	w := cborcodec.NewWriter()
	u.ToCbor(w)
	require.NoError(t, w.LastError())

	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.UpdateFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, uint64(250), decoded.Epoch)
	require.Len(t, decoded.Proposals, 1)
}

func TestWithdrawalsRoundTrip(t *testing.T) {
	w := ledger.NewWithdrawals()
	w.Set([]byte("rewardacct0000000000000000002"), 12345)
	require.Equal(t, 1, w.Len())

	writer := cborcodec.NewWriter()
	w.ToCbor(writer)
	require.NoError(t, writer.LastError())

	r := cborcodec.NewReader(writer.Encoded())
	decoded, err := ledger.WithdrawalsFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, 1, decoded.Len())
}

func TestWithdrawalsEmptyRoundTrip(t *testing.T) {
	w := ledger.NewWithdrawals()
	require.Equal(t, 0, w.Len())

	writer := cborcodec.NewWriter()
	w.ToCbor(writer)

	r := cborcodec.NewReader(writer.Encoded())
	decoded, err := ledger.WithdrawalsFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, 0, decoded.Len())
}
