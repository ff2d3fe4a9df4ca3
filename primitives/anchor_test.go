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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

func TestNewAnchorRejectsOverlongUrl(t *testing.T) {
	longUrl := "https://example.test/" + strings.Repeat("a", primitives.MaxAnchorURLBytes)
	_, err := primitives.NewAnchor(longUrl, mustHash32(t, 0x01))
	require.ErrorIs(t, err, cborcodec.ErrInvariantViolation)
}

func TestAnchorRoundTrip(t *testing.T) {
	a, err := primitives.NewAnchor("https://example.test/metadata.json", mustHash32(t, 0x02))
	require.NoError(t, err)

	w := cborcodec.NewWriter()
	a.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.AnchorFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, a, decoded)
	require.True(t, decoded.Valid())
}

func TestAnchorFromCborDecodesOverlongUrlButItIsInvalid(t *testing.T) {
	longUrl := "https://example.test/" + strings.Repeat("a", primitives.MaxAnchorURLBytes)
	w := cborcodec.NewWriter()
	w.WriteStartArray(2)
	w.WriteTextString(longUrl)
	mustHash32(t, 0x03).ToCbor(w)
	_ = w.WriteEnd()

	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.AnchorFromCbor(r)
	require.NoError(t, err)
	require.False(t, decoded.Valid())
}
