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

package witness_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/witness"
)

// RFC 8032 §7.1 test vector 1 (empty message).
const (
	rfc8032PubKeyHex = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	rfc8032SigHex    = "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestVerifySignatureAcceptsKnownGoodVector(t *testing.T) {
	var pubKey [32]byte
	copy(pubKey[:], mustDecodeHex(t, rfc8032PubKeyHex))
	var sig [64]byte
	copy(sig[:], mustDecodeHex(t, rfc8032SigHex))

	require.True(t, witness.VerifySignature(pubKey, nil, sig))
}

func TestVerifySignatureRejectsTamperedMessage(t *testing.T) {
	var pubKey [32]byte
	copy(pubKey[:], mustDecodeHex(t, rfc8032PubKeyHex))
	var sig [64]byte
	copy(sig[:], mustDecodeHex(t, rfc8032SigHex))

	require.False(t, witness.VerifySignature(pubKey, []byte("not the signed message"), sig))
}

func TestVerifySignatureRejectsMalformedPublicKey(t *testing.T) {
	var pubKey [32]byte
	for i := range pubKey {
		pubKey[i] = 0xff
	}
	var sig [64]byte
	copy(sig[:], mustDecodeHex(t, rfc8032SigHex))

	require.False(t, witness.VerifySignature(pubKey, nil, sig))
}

func TestVerifyVKeyWitnessBindsSignatureToBodyHash(t *testing.T) {
	var w ledger.VKeyWitness
	copy(w.VKey[:], mustDecodeHex(t, rfc8032PubKeyHex))
	copy(w.Signature[:], mustDecodeHex(t, rfc8032SigHex))

	// The RFC vector signs the empty message, not 32 zero bytes, so a
	// witness carrying it must not verify against an arbitrary body hash.
	var bodyHash [32]byte
	require.False(t, witness.VerifyVKeyWitness(w, bodyHash))
	require.Equal(t, witness.VerifySignature(w.VKey, bodyHash[:], w.Signature), witness.VerifyVKeyWitness(w, bodyHash))
}
