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

// Package primitives implements the L0 foundation types (fixed-length
// hashes, big integers, unit intervals) and the L2 domain primitives
// (credentials, values, assets, anchors, protocol knobs) that the rest of
// the object graph is built from.
package primitives

import (
	"encoding/hex"
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
)

// Hash28 is a 28-byte hash, used for key hashes, script hashes and pool
// identifiers (Blake2b-224 in practice; the hash function itself is an
// external collaborator — see Hasher in package witness).
type Hash28 [28]byte

// Hash32 is a 32-byte hash, used for transaction ids, data hashes and
// VRF key hashes (Blake2b-256 in practice).
type Hash32 [32]byte

// NewHash28 copies b into a Hash28, failing if b is not exactly 28 bytes.
func NewHash28(b []byte) (Hash28, error) {
	var h Hash28
	if len(b) != len(h) {
		return h, fmt.Errorf("%w: hash28 must be %d bytes, got %d", cborcodec.ErrInvariantViolation, len(h), len(b))
	}
	copy(h[:], b)
	return h, nil
}

// NewHash32 copies b into a Hash32, failing if b is not exactly 32 bytes.
func NewHash32(b []byte) (Hash32, error) {
	var h Hash32
	if len(b) != len(h) {
		return h, fmt.Errorf("%w: hash32 must be %d bytes, got %d", cborcodec.ErrInvariantViolation, len(h), len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Bytes returns a copy of the hash contents.
func (h Hash28) Bytes() []byte { b := make([]byte, len(h)); copy(b, h[:]); return b }

// Bytes returns a copy of the hash contents.
func (h Hash32) Bytes() []byte { b := make([]byte, len(h)); copy(b, h[:]); return b }

// String renders the hash as lowercase hex.
func (h Hash28) String() string { return hex.EncodeToString(h[:]) }

// String renders the hash as lowercase hex.
func (h Hash32) String() string { return hex.EncodeToString(h[:]) }

// ToCbor writes the hash as a definite-length byte string.
func (h Hash28) ToCbor(w *cborcodec.Writer) { w.WriteByteString(h[:]) }

// ToCbor writes the hash as a definite-length byte string.
func (h Hash32) ToCbor(w *cborcodec.Writer) { w.WriteByteString(h[:]) }

// Hash28FromCbor reads a 28-byte string and constructs a Hash28.
func Hash28FromCbor(r *cborcodec.Reader) (Hash28, error) {
	b, err := r.ReadByteString()
	if err != nil {
		return Hash28{}, err
	}
	return NewHash28(b)
}

// Hash32FromCbor reads a 32-byte string and constructs a Hash32.
func Hash32FromCbor(r *cborcodec.Reader) (Hash32, error) {
	b, err := r.ReadByteString()
	if err != nil {
		return Hash32{}, err
	}
	return NewHash32(b)
}
