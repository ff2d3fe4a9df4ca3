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

func hash28Of(t *testing.T, fill byte) primitives.Hash28 {
	t.Helper()
	raw := make([]byte, 28)
	for i := range raw {
		raw[i] = fill
	}
	h, err := primitives.NewHash28(raw)
	require.NoError(t, err)
	return h
}

func TestCredentialKeyHashRoundTrip(t *testing.T) {
	cred := primitives.NewKeyHashCredential(hash28Of(t, 0x01))
	w := cborcodec.NewWriter()
	cred.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.CredentialFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, cred, decoded)
}

func TestCredentialScriptHashRoundTrip(t *testing.T) {
	cred := primitives.NewScriptHashCredential(hash28Of(t, 0x02))
	w := cborcodec.NewWriter()
	cred.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.CredentialFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, primitives.CredentialScriptHash, decoded.Kind)
}

func TestCredentialCompareOrdersByKindThenHash(t *testing.T) {
	keyCred := primitives.NewKeyHashCredential(hash28Of(t, 0x05))
	scriptCred := primitives.NewScriptHashCredential(hash28Of(t, 0x01))
	require.Negative(t, keyCred.Compare(scriptCred))

	a := primitives.NewKeyHashCredential(hash28Of(t, 0x01))
	b := primitives.NewKeyHashCredential(hash28Of(t, 0x02))
	require.Negative(t, a.Compare(b))
	require.Zero(t, a.Compare(a))
}

func TestNetworkIdRoundTrip(t *testing.T) {
	w := cborcodec.NewWriter()
	primitives.NetworkMainnet.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.NetworkIdFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, primitives.NetworkMainnet, decoded)
}

func TestNetworkIdFromCborRejectsUnknownValue(t *testing.T) {
	w := cborcodec.NewWriter()
	w.WriteUint(7)
	r := cborcodec.NewReader(w.Encoded())
	_, err := primitives.NetworkIdFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrUnknownDiscriminator)
}

func TestGovernanceActionIdRoundTrip(t *testing.T) {
	id := primitives.GovernanceActionId{TxId: mustHash32(t, 0x09), Index: 3}
	w := cborcodec.NewWriter()
	id.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.GovernanceActionIdFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, id, decoded)
}

func mustHash32(t *testing.T, fill byte) primitives.Hash32 {
	t.Helper()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	h, err := primitives.NewHash32(raw)
	require.NoError(t, err)
	return h
}
