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

import "github.com/cardano-forge/ledger/cborcodec"

// ProtocolVersion is the ledger's (major, minor) protocol version pair.
type ProtocolVersion struct {
	Major uint64
	Minor uint64
}

// NewProtocolVersion constructs a ProtocolVersion from its components.
func NewProtocolVersion(major, minor uint64) ProtocolVersion {
	return ProtocolVersion{Major: major, Minor: minor}
}

// ToCbor writes `[major, minor]`.
func (p ProtocolVersion) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteUint(p.Major)
	w.WriteUint(p.Minor)
	_ = w.WriteEnd()
}

// ProtocolVersionFromCbor reads `[major, minor]`.
func ProtocolVersionFromCbor(r *cborcodec.Reader) (ProtocolVersion, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return ProtocolVersion{}, err
	}
	major, err := r.ReadUint()
	if err != nil {
		return ProtocolVersion{}, err
	}
	minor, err := r.ReadUint()
	if err != nil {
		return ProtocolVersion{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return ProtocolVersion{}, err
	}
	return ProtocolVersion{Major: major, Minor: minor}, nil
}
