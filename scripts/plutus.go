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

package scripts

import (
	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

// PlutusScript is an opaque compiled Plutus script plus its language tag.
// The core never executes it; it is carried as bytes.
type PlutusScript struct {
	Language primitives.PlutusLanguage
	Bytes    []byte
}

// NewPlutusScript constructs a PlutusScript, copying bytes.
func NewPlutusScript(language primitives.PlutusLanguage, bytes []byte) PlutusScript {
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	return PlutusScript{Language: language, Bytes: cp}
}

// ToCbor writes the script as a bare definite-length byte string; its
// language tag is carried by which witness-set field (plutus_v1_scripts,
// plutus_v2_scripts, ...) contains it, not by the bytes themselves.
func (p PlutusScript) ToCbor(w *cborcodec.Writer) { w.WriteByteString(p.Bytes) }

// PlutusScriptFromCbor reads a bare byte string for the given language.
func PlutusScriptFromCbor(r *cborcodec.Reader, language primitives.PlutusLanguage) (PlutusScript, error) {
	b, err := r.ReadByteString()
	if err != nil {
		return PlutusScript{}, err
	}
	return NewPlutusScript(language, b), nil
}

// ScriptHash computes this script's hash for credential/witness matching
// by delegating to the supplied Hasher and prefixing the language tag
// byte the ledger mixes into Plutus script hashes (the core never links
// a hash implementation directly — see package witness).
func (p PlutusScript) ScriptHash(hash func([]byte) [32]byte) primitives.Hash32 {
	tagged := make([]byte, 0, len(p.Bytes)+1)
	tagged = append(tagged, byte(p.Language)+1) // 1=V1, 2=V2, 3=V3 script-hash prefix
	tagged = append(tagged, p.Bytes...)
	h := hash(tagged)
	return primitives.Hash32(h)
}
