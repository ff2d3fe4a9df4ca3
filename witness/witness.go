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

// Package witness collects the external collaborators the core codec
// deliberately never implements itself: hashing, signing, and signature
// verification. Package ledger carries VKeyWitness/BootstrapWitness as
// opaque byte pairs; package witness is where a caller who has decided to
// validate a transaction plugs those pairs into real cryptography.
package witness

import (
	"crypto/sha512"
	"crypto/subtle"
	"errors"

	"filippo.io/edwards25519"

	"github.com/cardano-forge/ledger/ledger"
)

// ErrMalformedKey is returned when a public key or signature component
// does not decode to a valid curve point or canonical scalar.
var ErrMalformedKey = errors.New("witness: malformed key or signature component")

// Hasher computes the Blake2b-224/256 digests the ledger's object graph
// references (script hashes, transaction ids, script-data hash) but
// never produces itself.
type Hasher interface {
	Hash28(data []byte) [28]byte
	Hash32(data []byte) [32]byte
}

// Signer produces an Ed25519 signature over a transaction body hash. The
// core never signs; this is supplied by whatever holds the private key.
type Signer interface {
	Sign(bodyHash [32]byte) (pubKey [32]byte, signature [64]byte, err error)
}

// VerifySignature checks an Ed25519 signature over message, implementing
// RFC 8032 §5.1.7's verify equation directly against the edwards25519
// group rather than delegating to crypto/ed25519, so the curve-arithmetic
// dependency the corpus already carries transitively gets a real,
// narrowly-scoped call site.
func VerifySignature(pubKey [32]byte, message []byte, signature [64]byte) bool {
	a, err := new(edwards25519.Point).SetBytes(pubKey[:])
	if err != nil {
		return false
	}
	r, err := new(edwards25519.Point).SetBytes(signature[:32])
	if err != nil {
		return false
	}
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(signature[32:])
	if err != nil {
		return false
	}

	h := sha512.New()
	h.Write(signature[:32])
	h.Write(pubKey[:])
	h.Write(message)
	digest := h.Sum(nil)

	k, err := new(edwards25519.Scalar).SetUniformBytes(digest)
	if err != nil {
		return false
	}

	sb := new(edwards25519.Point).ScalarBaseMult(s)
	ka := new(edwards25519.Point).ScalarMult(k, a)
	rhs := new(edwards25519.Point).Add(r, ka)

	return subtle.ConstantTimeCompare(sb.Bytes(), rhs.Bytes()) == 1
}

// VerifyVKeyWitness checks a decoded VKeyWitness against the signing body
// hash it is supposed to cover.
func VerifyVKeyWitness(w ledger.VKeyWitness, bodyHash [32]byte) bool {
	return VerifySignature(w.VKey, bodyHash[:], w.Signature)
}
