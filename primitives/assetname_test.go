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

func TestNewAssetNameRejectsOverlongName(t *testing.T) {
	_, err := primitives.NewAssetName(make([]byte, primitives.MaxAssetNameBytes+1))
	require.ErrorIs(t, err, cborcodec.ErrInvariantViolation)
}

func TestAssetNameRoundTrip(t *testing.T) {
	name, err := primitives.NewAssetName([]byte("MyToken"))
	require.NoError(t, err)

	w := cborcodec.NewWriter()
	name.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.AssetNameFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, name.Bytes(), decoded.Bytes())
}

func TestAssetNameCompareOrdersByEncodedBytes(t *testing.T) {
	a, err := primitives.NewAssetName([]byte{0x01})
	require.NoError(t, err)
	b, err := primitives.NewAssetName([]byte{0x02})
	require.NoError(t, err)
	require.Negative(t, a.Compare(b))
	require.Zero(t, a.Compare(a))
}

func TestAssetNameEmptyIsAllowed(t *testing.T) {
	name, err := primitives.NewAssetName(nil)
	require.NoError(t, err)
	require.Empty(t, name.Bytes())
}
