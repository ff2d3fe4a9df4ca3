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

// MaxAssetNameBytes is the ledger-enforced cap on an AssetName.
const MaxAssetNameBytes = 32

// AssetName is a 0-32 byte native asset name.
type AssetName struct {
	bytes []byte
}

// NewAssetName validates the length before constructing.
func NewAssetName(b []byte) (AssetName, error) {
	if len(b) > MaxAssetNameBytes {
		return AssetName{}, fmt.Errorf("%w: asset name is %d bytes, max %d", cborcodec.ErrInvariantViolation, len(b), MaxAssetNameBytes)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return AssetName{bytes: out}, nil
}

// Bytes returns a copy of the asset name.
func (a AssetName) Bytes() []byte { b := make([]byte, len(a.bytes)); copy(b, a.bytes); return b }

// String renders the asset name as lowercase hex.
func (a AssetName) String() string { return fmt.Sprintf("%x", a.bytes) }

// Compare implements the canonical byte-string order used for sorting a
// policy's inner asset-name map.
func (a AssetName) Compare(other AssetName) int {
	return cborcodec.CompareEncoded(a.bytes, other.bytes)
}

// ToCbor writes the asset name as a definite-length byte string.
func (a AssetName) ToCbor(w *cborcodec.Writer) { w.WriteByteString(a.bytes) }

// AssetNameFromCbor reads a byte string and validates its length.
func AssetNameFromCbor(r *cborcodec.Reader) (AssetName, error) {
	b, err := r.ReadByteString()
	if err != nil {
		return AssetName{}, err
	}
	return NewAssetName(b)
}
