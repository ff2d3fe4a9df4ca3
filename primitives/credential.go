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

package primitives

import (
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
)

// CredentialKind discriminates a Credential's payload.
type CredentialKind int

const (
	CredentialKeyHash CredentialKind = iota
	CredentialScriptHash
)

// Credential is the ledger's key-hash-or-script-hash sum type, underlying
// stake credentials, DRep ids, committee member ids and voters.
type Credential struct {
	Kind CredentialKind
	Hash Hash28
}

// NewKeyHashCredential constructs a key-hash credential.
func NewKeyHashCredential(h Hash28) Credential {
	return Credential{Kind: CredentialKeyHash, Hash: h}
}

// NewScriptHashCredential constructs a script-hash credential.
func NewScriptHashCredential(h Hash28) Credential {
	return Credential{Kind: CredentialScriptHash, Hash: h}
}

// ToCbor writes `[tag, hash]` where tag 0 = key hash, 1 = script hash.
func (c Credential) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteUint(uint64(c.Kind))
	c.Hash.ToCbor(w)
	_ = w.WriteEnd()
}

// CredentialFromCbor reads `[tag, hash]`.
func CredentialFromCbor(r *cborcodec.Reader) (Credential, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return Credential{}, err
	}
	tag, err := r.ReadUint()
	if err != nil {
		return Credential{}, err
	}
	hash, err := Hash28FromCbor(r)
	if err != nil {
		return Credential{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return Credential{}, err
	}
	switch tag {
	case 0:
		return NewKeyHashCredential(hash), nil
	case 1:
		return NewScriptHashCredential(hash), nil
	default:
		return Credential{}, fmt.Errorf("%w: credential tag %d", cborcodec.ErrUnknownDiscriminator, tag)
	}
}

// Compare mirrors the canonical CBOR byte order of the credential's
// encoded form: kind first, then hash bytes — used by set/map containers
// that key on credentials.
func (c Credential) Compare(other Credential) int {
	if c.Kind != other.Kind {
		if c.Kind < other.Kind {
			return -1
		}
		return 1
	}
	return cborcodec.CompareEncoded(c.Hash[:], other.Hash[:])
}

// NetworkId is the two-valued network discriminator carried by addresses
// and reward accounts.
type NetworkId int

const (
	NetworkTestnet NetworkId = 0
	NetworkMainnet NetworkId = 1
)

// ToCbor writes the network id as a plain CBOR unsigned integer.
func (n NetworkId) ToCbor(w *cborcodec.Writer) { w.WriteUint(uint64(n)) }

// NetworkIdFromCbor reads a plain CBOR unsigned integer network id.
func NetworkIdFromCbor(r *cborcodec.Reader) (NetworkId, error) {
	v, err := r.ReadUint()
	if err != nil {
		return 0, err
	}
	if v != 0 && v != 1 {
		return 0, fmt.Errorf("%w: network id %d", cborcodec.ErrUnknownDiscriminator, v)
	}
	return NetworkId(v), nil
}

// GovernanceActionId identifies a previously enacted (or proposed)
// governance action by the transaction that proposed it and its index
// within that transaction's proposal procedures.
type GovernanceActionId struct {
	TxId  Hash32
	Index uint64
}

// ToCbor writes `[tx_id, index]`.
func (g GovernanceActionId) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	g.TxId.ToCbor(w)
	w.WriteUint(g.Index)
	_ = w.WriteEnd()
}

// GovernanceActionIdFromCbor reads `[tx_id, index]`.
func GovernanceActionIdFromCbor(r *cborcodec.Reader) (GovernanceActionId, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return GovernanceActionId{}, err
	}
	txId, err := Hash32FromCbor(r)
	if err != nil {
		return GovernanceActionId{}, err
	}
	index, err := r.ReadUint()
	if err != nil {
		return GovernanceActionId{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return GovernanceActionId{}, err
	}
	return GovernanceActionId{TxId: txId, Index: index}, nil
}
