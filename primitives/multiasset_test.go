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

package primitives_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

func TestMultiAssetUint64RoundTrip(t *testing.T) {
	m := primitives.NewMultiAsset[uint64]()
	name, err := primitives.NewAssetName([]byte("token"))
	require.NoError(t, err)
	m.Set(hash28Of(t, 0x01), name, 100)

	w := cborcodec.NewWriter()
	m.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.MultiAssetFromCbor[uint64](r)
	require.NoError(t, err)

	amount, ok := decoded.Get(hash28Of(t, 0x01), name)
	require.True(t, ok)
	require.Equal(t, uint64(100), amount)
}

func TestMultiAssetInt64MintRoundTrip(t *testing.T) {
	m := primitives.NewMultiAsset[int64]()
	name, err := primitives.NewAssetName([]byte("token"))
	require.NoError(t, err)
	m.Set(hash28Of(t, 0x02), name, -50)

	w := cborcodec.NewWriter()
	m.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.MultiAssetFromCbor[int64](r)
	require.NoError(t, err)

	amount, ok := decoded.Get(hash28Of(t, 0x02), name)
	require.True(t, ok)
	require.Equal(t, int64(-50), amount)
}

func TestMultiAssetCanonicalizeDropsEmptyPoliciesAndZeroEntries(t *testing.T) {
	m := primitives.NewMultiAsset[uint64]()
	name, err := primitives.NewAssetName([]byte("x"))
	require.NoError(t, err)
	m.Set(hash28Of(t, 0x03), name, 0)
	require.False(t, m.IsEmpty())

	m.Canonicalize(true)
	require.True(t, m.IsEmpty())
}

func TestMultiAssetCanonicalizeKeepsNonZeroEntries(t *testing.T) {
	m := primitives.NewMultiAsset[uint64]()
	name, err := primitives.NewAssetName([]byte("x"))
	require.NoError(t, err)
	m.Set(hash28Of(t, 0x04), name, 1)

	m.Canonicalize(true)
	require.False(t, m.IsEmpty())
}

func TestMultiAssetPoliciesSortedOnEncode(t *testing.T) {
	m := primitives.NewMultiAsset[uint64]()
	name, err := primitives.NewAssetName([]byte("x"))
	require.NoError(t, err)
	m.Set(hash28Of(t, 0xff), name, 1)
	m.Set(hash28Of(t, 0x01), name, 2)

	w := cborcodec.NewWriter()
	m.ToCbor(w)
	require.NoError(t, w.LastError())

	r := cborcodec.NewReader(w.Encoded())
	n, err := r.ReadStartMap(nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	first, err := primitives.Hash28FromCbor(r)
	require.NoError(t, err)
	require.Equal(t, hash28Of(t, 0x01), first)
}
