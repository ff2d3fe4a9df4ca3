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
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

func TestExUnitsRoundTrip(t *testing.T) {
	u := primitives.ExUnits{Mem: 1000, Steps: 2000000}
	w := cborcodec.NewWriter()
	u.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.ExUnitsFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, u, decoded)
}

func TestExUnitPricesRoundTrip(t *testing.T) {
	mem, err := primitives.NewUnitInterval(577, 10000)
	require.NoError(t, err)
	steps, err := primitives.NewUnitInterval(721, 10000000)
	require.NoError(t, err)
	prices := primitives.ExUnitPrices{MemPrice: mem, StepsPrice: steps}

	w := cborcodec.NewWriter()
	prices.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.ExUnitPricesFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, prices, decoded)
}

func TestExUnitPricesDecodesKnownTaggedRationalsBlob(t *testing.T) {
	raw, err := hex.DecodeString("82d81e820102d81e820103")
	require.NoError(t, err)

	r := cborcodec.NewReader(raw)
	decoded, err := primitives.ExUnitPricesFromCbor(r)
	require.NoError(t, err)

	mem, err := primitives.NewUnitInterval(1, 2)
	require.NoError(t, err)
	steps, err := primitives.NewUnitInterval(1, 3)
	require.NoError(t, err)
	require.Equal(t, mem, decoded.MemPrice)
	require.Equal(t, steps, decoded.StepsPrice)
	require.InDelta(t, 0.5, decoded.MemPrice.ToFloat64(), 1e-9)

	w := cborcodec.NewWriter()
	decoded.ToCbor(w)
	require.NoError(t, w.LastError())
	require.Equal(t, "82d81e820102d81e820103", w.EncodedHex())
}
