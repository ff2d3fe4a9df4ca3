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
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

// ScriptKind discriminates Script's payload: a native script, or a
// Plutus script of one of the three language versions.
type ScriptKind int

const (
	ScriptNative ScriptKind = iota
	ScriptPlutusV1
	ScriptPlutusV2
	ScriptPlutusV3
)

// Script is the sum over NativeScript and every Plutus language,
// corresponding to how reference scripts and script_ref fields are
// tagged in Babbage+ outputs: `[language_tag, script_bytes]`.
type Script struct {
	Kind   ScriptKind
	Native NativeScript
	Plutus PlutusScript
}

// NewNativeScriptWrapper wraps a NativeScript as a Script.
func NewNativeScriptWrapper(n NativeScript) Script {
	return Script{Kind: ScriptNative, Native: n}
}

// NewPlutusScriptWrapper wraps a PlutusScript as a Script.
func NewPlutusScriptWrapper(p PlutusScript) Script {
	kind := ScriptPlutusV1
	switch p.Language {
	case primitives.PlutusV2:
		kind = ScriptPlutusV2
	case primitives.PlutusV3:
		kind = ScriptPlutusV3
	}
	return Script{Kind: kind, Plutus: p}
}

// ToCbor writes `[language_tag, script_bytes]`, matching the reference
// script wire format used inside Babbage+ transaction outputs.
func (s Script) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteUint(uint64(s.Kind))
	switch s.Kind {
	case ScriptNative:
		inner := cborcodec.NewWriter()
		s.Native.ToCbor(inner)
		w.WriteByteString(inner.Encoded())
	default:
		s.Plutus.ToCbor(w)
	}
	_ = w.WriteEnd()
}

// ScriptFromCbor reads `[language_tag, script_bytes]`.
func ScriptFromCbor(r *cborcodec.Reader) (Script, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return Script{}, err
	}
	kind, err := r.ReadUint()
	if err != nil {
		return Script{}, err
	}
	switch ScriptKind(kind) {
	case ScriptNative:
		raw, err := r.ReadByteString()
		if err != nil {
			return Script{}, err
		}
		inner := cborcodec.NewReader(raw)
		n, err := NativeScriptFromCbor(inner)
		if err != nil {
			return Script{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return Script{}, err
		}
		return NewNativeScriptWrapper(n), nil
	case ScriptPlutusV1, ScriptPlutusV2, ScriptPlutusV3:
		lang := primitives.PlutusV1
		if ScriptKind(kind) == ScriptPlutusV2 {
			lang = primitives.PlutusV2
		} else if ScriptKind(kind) == ScriptPlutusV3 {
			lang = primitives.PlutusV3
		}
		p, err := PlutusScriptFromCbor(r, lang)
		if err != nil {
			return Script{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return Script{}, err
		}
		return NewPlutusScriptWrapper(p), nil
	default:
		return Script{}, fmt.Errorf("%w: script language tag %d", cborcodec.ErrUnknownDiscriminator, kind)
	}
}
