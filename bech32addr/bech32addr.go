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

// Package bech32addr pretty-prints stake credentials and pool key hashes
// in their human-readable bech32 form. The codec packages never call
// into it; it exists purely for cmd/ledgerinspect's decode output.
package bech32addr

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/cardano-forge/ledger/primitives"
)

// HRP for stake credentials rendered via EncodeStakeCredential.
const (
	hrpStakeKey    = "stake_vkh"
	hrpStakeScript = "script"
	hrpPool        = "pool"
	hrpDRepKey     = "drep"
	hrpDRepScript  = "drep_script"
)

// EncodeStakeCredential renders a Credential in its bech32 form, choosing
// the key-hash or script-hash human-readable prefix by credential kind.
func EncodeStakeCredential(cred primitives.Credential) (string, error) {
	hrp := hrpStakeKey
	if cred.Kind == primitives.CredentialScriptHash {
		hrp = hrpStakeScript
	}
	return encode(hrp, cred.Hash.Bytes())
}

// EncodeDRepCredential renders a DRep credential hash in its bech32 form.
func EncodeDRepCredential(cred primitives.Credential) (string, error) {
	hrp := hrpDRepKey
	if cred.Kind == primitives.CredentialScriptHash {
		hrp = hrpDRepScript
	}
	return encode(hrp, cred.Hash.Bytes())
}

// EncodePoolId renders a pool operator key hash in its bech32 "pool1..." form.
func EncodePoolId(operator primitives.Hash28) (string, error) {
	return encode(hrpPool, operator.Bytes())
}

// DecodeHash28 reverses EncodeStakeCredential/EncodePoolId/EncodeDRepCredential,
// returning the raw 28-byte hash the bech32 string encodes, regardless of
// human-readable prefix.
func DecodeHash28(bech string) (primitives.Hash28, error) {
	_, data, err := bech32.Decode(bech)
	if err != nil {
		return primitives.Hash28{}, fmt.Errorf("bech32addr: decode: %w", err)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return primitives.Hash28{}, fmt.Errorf("bech32addr: convert bits: %w", err)
	}
	return primitives.NewHash28(raw)
}

func encode(hrp string, raw []byte) (string, error) {
	data, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32addr: convert bits: %w", err)
	}
	encoded, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", fmt.Errorf("bech32addr: encode: %w", err)
	}
	return encoded, nil
}
