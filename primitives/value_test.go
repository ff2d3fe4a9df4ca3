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

func TestSimpleValueEncodesAsBareInteger(t *testing.T) {
	v := primitives.NewSimpleValue(5000000)
	w := cborcodec.NewWriter()
	v.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	state, err := r.PeekState()
	require.NoError(t, err)
	require.Equal(t, cborcodec.MajorUnsignedInt, state.Major)

	decoded, err := primitives.ValueFromCbor(cborcodec.NewReader(w.Encoded()))
	require.NoError(t, err)
	require.True(t, v.Equal(decoded))
}

func TestValueWithAssetsEncodesAsArray(t *testing.T) {
	assets := primitives.NewMultiAsset[uint64]()
	name, err := primitives.NewAssetName([]byte("token"))
	require.NoError(t, err)
	assets.Set(hash28Of(t, 0x10), name, 7)
	v := primitives.NewValue(1000000, assets)

	w := cborcodec.NewWriter()
	v.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	state, err := r.PeekState()
	require.NoError(t, err)
	require.Equal(t, cborcodec.MajorArray, state.Major)

	decoded, err := primitives.ValueFromCbor(cborcodec.NewReader(w.Encoded()))
	require.NoError(t, err)
	amount, ok := decoded.Assets.Get(hash28Of(t, 0x10), name)
	require.True(t, ok)
	require.Equal(t, uint64(7), amount)
}

func TestValueAddIsCommutativeAndSumsAssets(t *testing.T) {
	name, err := primitives.NewAssetName([]byte("token"))
	require.NoError(t, err)
	a := primitives.NewSimpleValue(100)
	a.Assets.Set(hash28Of(t, 0x20), name, 3)
	b := primitives.NewSimpleValue(200)
	b.Assets.Set(hash28Of(t, 0x20), name, 4)

	sum := a.Add(b)
	require.True(t, sum.Equal(b.Add(a)))
	require.Equal(t, uint64(300), sum.Coin)
	amount, ok := sum.Assets.Get(hash28Of(t, 0x20), name)
	require.True(t, ok)
	require.Equal(t, uint64(7), amount)
}

func TestValueSubtractFailsOnInsufficientCoin(t *testing.T) {
	a := primitives.NewSimpleValue(10)
	b := primitives.NewSimpleValue(20)
	_, err := a.Subtract(b)
	require.ErrorIs(t, err, primitives.ErrInsufficientFunds)
}

func TestValueSubtractFailsOnInsufficientAsset(t *testing.T) {
	name, err := primitives.NewAssetName([]byte("token"))
	require.NoError(t, err)
	a := primitives.NewSimpleValue(100)
	a.Assets.Set(hash28Of(t, 0x30), name, 1)
	b := primitives.NewSimpleValue(50)
	b.Assets.Set(hash28Of(t, 0x30), name, 5)

	_, err = a.Subtract(b)
	require.ErrorIs(t, err, primitives.ErrInsufficientFunds)
}

func TestValueEqualIgnoresZeroEntries(t *testing.T) {
	name, err := primitives.NewAssetName([]byte("token"))
	require.NoError(t, err)
	a := primitives.NewSimpleValue(100)
	b := primitives.NewSimpleValue(100)
	b.Assets.Set(hash28Of(t, 0x40), name, 0)

	require.True(t, a.Equal(b))
}

func TestValueEqualDoesNotMutateOperands(t *testing.T) {
	name, err := primitives.NewAssetName([]byte("token"))
	require.NoError(t, err)
	policy := hash28Of(t, 0x41)

	a := primitives.NewSimpleValue(100)
	a.Assets.Set(policy, name, 0)
	b := primitives.NewSimpleValue(100)

	require.True(t, a.Equal(b))

	amount, ok := a.Assets.Get(policy, name)
	require.True(t, ok, "Equal must not canonicalize away a's own zero entry")
	require.Equal(t, uint64(0), amount)
}
