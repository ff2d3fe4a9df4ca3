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

// MaxAnchorURLBytes is the ledger-enforced cap on an Anchor's URL field.
const MaxAnchorURLBytes = 128

// Anchor pairs an off-chain metadata URL with the hash of its content.
// Used by governance actions, DRep registrations and committee
// resignations.
type Anchor struct {
	Url      string
	DataHash Hash32
}

// NewAnchor validates the URL length before constructing.
func NewAnchor(url string, dataHash Hash32) (Anchor, error) {
	if len(url) > MaxAnchorURLBytes {
		return Anchor{}, fmt.Errorf("%w: anchor url is %d bytes, max %d", cborcodec.ErrInvariantViolation, len(url), MaxAnchorURLBytes)
	}
	return Anchor{Url: url, DataHash: dataHash}, nil
}

// ToCbor writes `[url, data_hash]`.
func (a Anchor) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteTextString(a.Url)
	a.DataHash.ToCbor(w)
	_ = w.WriteEnd()
}

// AnchorFromCbor reads `[url, data_hash]`. The URL length is not checked
// here, so historical anchors exceeding the cap still decode; Valid
// reports whether the cap is respected.
func AnchorFromCbor(r *cborcodec.Reader) (Anchor, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return Anchor{}, err
	}
	url, err := r.ReadTextString()
	if err != nil {
		return Anchor{}, err
	}
	dataHash, err := Hash32FromCbor(r)
	if err != nil {
		return Anchor{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return Anchor{}, err
	}
	return Anchor{Url: url, DataHash: dataHash}, nil
}

// Valid reports whether the anchor's URL respects MaxAnchorURLBytes. Call
// this explicitly after AnchorFromCbor when strict validation (rather
// than permissive decode) is desired.
func (a Anchor) Valid() bool { return len(a.Url) <= MaxAnchorURLBytes }
