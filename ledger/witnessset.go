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

package ledger

import (
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/containers"
	"github.com/cardano-forge/ledger/primitives"
	"github.com/cardano-forge/ledger/scripts"
)

// VKeyWitness pairs an Ed25519 verification key with its signature over
// the transaction body hash. The core never verifies it — see the
// Signer/Hasher collaborators in package witness.
type VKeyWitness struct {
	VKey      [32]byte
	Signature [64]byte
}

// ToCbor writes `[vkey, signature]`.
func (v VKeyWitness) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteByteString(v.VKey[:])
	w.WriteByteString(v.Signature[:])
	_ = w.WriteEnd()
}

// VKeyWitnessFromCbor reads `[vkey, signature]`.
func VKeyWitnessFromCbor(r *cborcodec.Reader) (VKeyWitness, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return VKeyWitness{}, err
	}
	vkey, err := readFixed(r, 32)
	if err != nil {
		return VKeyWitness{}, err
	}
	sig, err := readFixed(r, 64)
	if err != nil {
		return VKeyWitness{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return VKeyWitness{}, err
	}
	var out VKeyWitness
	copy(out.VKey[:], vkey)
	copy(out.Signature[:], sig)
	return out, nil
}

func readFixed(r *cborcodec.Reader, n int) ([]byte, error) {
	b, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: expected %d-byte string, got %d", cborcodec.ErrInvariantViolation, n, len(b))
	}
	return b, nil
}

// BootstrapWitness is a Byron-era (Icarus/Daedalus derivation) witness
// carried forward for backward compatibility.
type BootstrapWitness struct {
	VKey       [32]byte
	Signature  [64]byte
	ChainCode  [32]byte
	Attributes []byte
}

// ToCbor writes `[vkey, signature, chain_code, attributes]`.
func (b BootstrapWitness) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(4)
	w.WriteByteString(b.VKey[:])
	w.WriteByteString(b.Signature[:])
	w.WriteByteString(b.ChainCode[:])
	w.WriteByteString(b.Attributes)
	_ = w.WriteEnd()
}

// BootstrapWitnessFromCbor reads `[vkey, signature, chain_code, attributes]`.
func BootstrapWitnessFromCbor(r *cborcodec.Reader) (BootstrapWitness, error) {
	four := 4
	if _, err := r.ReadStartArray(&four); err != nil {
		return BootstrapWitness{}, err
	}
	vkey, err := readFixed(r, 32)
	if err != nil {
		return BootstrapWitness{}, err
	}
	sig, err := readFixed(r, 64)
	if err != nil {
		return BootstrapWitness{}, err
	}
	chainCode, err := readFixed(r, 32)
	if err != nil {
		return BootstrapWitness{}, err
	}
	attrs, err := r.ReadByteString()
	if err != nil {
		return BootstrapWitness{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return BootstrapWitness{}, err
	}
	var out BootstrapWitness
	copy(out.VKey[:], vkey)
	copy(out.Signature[:], sig)
	copy(out.ChainCode[:], chainCode)
	out.Attributes = attrs
	return out, nil
}

// PlutusData is an opaque, pre-encoded Plutus-data term. The core never
// constructs or interprets it; it is carried verbatim.
type PlutusData struct {
	Raw []byte
}

// ToCbor re-emits the stored bytes unchanged.
func (d PlutusData) ToCbor(w *cborcodec.Writer) { w.WriteEncodedValue(d.Raw) }

// PlutusDataFromCbor captures the raw bytes of the next value without
// interpreting its structure.
func PlutusDataFromCbor(r *cborcodec.Reader) (PlutusData, error) {
	raw, err := r.ReadEncodedValue()
	if err != nil {
		return PlutusData{}, err
	}
	return PlutusData{Raw: raw}, nil
}

// The *Item names below are type aliases for the element type of each
// witness-set field's Set[T]/List[T]; the aliased types satisfy
// containers.Encodable themselves, and PlutusV1/V2/V3 fields share
// plutusScriptItem.
type nativeScriptItem = scripts.NativeScript
type plutusScriptItem = scripts.PlutusScript
type vkeyWitnessItem = VKeyWitness
type bootstrapWitnessItem = BootstrapWitness
type plutusDataItem = PlutusData
type redeemerItem = Redeemer

// WitnessSet carries everything proving a transaction is authorized:
// signatures, the scripts they satisfy, and the Plutus inputs needed to
// re-execute any Plutus scripts referenced by the transaction.
type WitnessSet struct {
	VKeyWitnesses      *containers.Set[vkeyWitnessItem]
	NativeScripts      *containers.Set[nativeScriptItem]
	BootstrapWitnesses *containers.Set[bootstrapWitnessItem]
	PlutusV1Scripts    *containers.Set[plutusScriptItem]
	PlutusV2Scripts    *containers.Set[plutusScriptItem]
	PlutusV3Scripts    *containers.Set[plutusScriptItem]
	PlutusData         *containers.Set[plutusDataItem]
	Redeemers          []Redeemer
}

// NewWitnessSet returns an empty WitnessSet with Conway-default (tag
// 258) set framing on every component.
func NewWitnessSet() *WitnessSet {
	return &WitnessSet{
		VKeyWitnesses:      containers.NewSet[vkeyWitnessItem](),
		NativeScripts:      containers.NewSet[nativeScriptItem](),
		BootstrapWitnesses: containers.NewSet[bootstrapWitnessItem](),
		PlutusV1Scripts:    containers.NewSet[plutusScriptItem](),
		PlutusV2Scripts:    containers.NewSet[plutusScriptItem](),
		PlutusV3Scripts:    containers.NewSet[plutusScriptItem](),
		PlutusData:         containers.NewSet[plutusDataItem](),
	}
}

const (
	witnessKeyVKey       = 0
	witnessKeyNative     = 1
	witnessKeyBootstrap  = 2
	witnessKeyPlutusV1   = 3
	witnessKeyPlutusData = 4
	witnessKeyRedeemers  = 5
	witnessKeyPlutusV2   = 6
	witnessKeyPlutusV3   = 7
)

// ToCbor writes a map containing only the present (non-empty) fields,
// keyed 0-7 per the ledger's witness-set field assignment.
func (ws *WitnessSet) ToCbor(w *cborcodec.Writer) {
	entries := make([]cborcodec.SortedMapEntry, 0, 8)
	add := func(key uint64, write func(*cborcodec.Writer)) {
		entries = append(entries, mapEntry(key, write))
	}
	if ws.VKeyWitnesses.Len() > 0 {
		add(witnessKeyVKey, ws.VKeyWitnesses.ToCbor)
	}
	if ws.NativeScripts.Len() > 0 {
		add(witnessKeyNative, ws.NativeScripts.ToCbor)
	}
	if ws.BootstrapWitnesses.Len() > 0 {
		add(witnessKeyBootstrap, ws.BootstrapWitnesses.ToCbor)
	}
	if ws.PlutusV1Scripts.Len() > 0 {
		add(witnessKeyPlutusV1, ws.PlutusV1Scripts.ToCbor)
	}
	if ws.PlutusData.Len() > 0 {
		add(witnessKeyPlutusData, ws.PlutusData.ToCbor)
	}
	if len(ws.Redeemers) > 0 {
		add(witnessKeyRedeemers, func(w *cborcodec.Writer) {
			sorted := SortRedeemers(ws.Redeemers)
			w.WriteStartArray(len(sorted))
			for _, r := range sorted {
				r.ToCbor(w)
			}
			_ = w.WriteEnd()
		})
	}
	if ws.PlutusV2Scripts.Len() > 0 {
		add(witnessKeyPlutusV2, ws.PlutusV2Scripts.ToCbor)
	}
	if ws.PlutusV3Scripts.Len() > 0 {
		add(witnessKeyPlutusV3, ws.PlutusV3Scripts.ToCbor)
	}
	w.WriteSortedMap(entries)
}

// WitnessSetFromCbor reads the witness-set map.
func WitnessSetFromCbor(r *cborcodec.Reader) (*WitnessSet, error) {
	ws := NewWitnessSet()
	n, err := r.ReadStartMap(nil)
	if err != nil {
		return nil, err
	}
	readEntry := func() error {
		key, err := r.ReadUint()
		if err != nil {
			return err
		}
		switch key {
		case witnessKeyVKey:
			s, err := containers.SetFromCbor[vkeyWitnessItem](r, VKeyWitnessFromCbor)
			if err != nil {
				return err
			}
			ws.VKeyWitnesses = s
		case witnessKeyNative:
			s, err := containers.SetFromCbor[nativeScriptItem](r, scripts.NativeScriptFromCbor)
			if err != nil {
				return err
			}
			ws.NativeScripts = s
		case witnessKeyBootstrap:
			s, err := containers.SetFromCbor[bootstrapWitnessItem](r, BootstrapWitnessFromCbor)
			if err != nil {
				return err
			}
			ws.BootstrapWitnesses = s
		case witnessKeyPlutusV1:
			s, err := containers.SetFromCbor[plutusScriptItem](r, plutusV1FromCbor)
			if err != nil {
				return err
			}
			ws.PlutusV1Scripts = s
		case witnessKeyPlutusData:
			s, err := containers.SetFromCbor[plutusDataItem](r, PlutusDataFromCbor)
			if err != nil {
				return err
			}
			ws.PlutusData = s
		case witnessKeyRedeemers:
			list, err := containers.ListFromCbor[redeemerItem](r, RedeemerFromCbor)
			if err != nil {
				return err
			}
			ws.Redeemers = list.Items()
		case witnessKeyPlutusV2:
			s, err := containers.SetFromCbor[plutusScriptItem](r, plutusV2FromCbor)
			if err != nil {
				return err
			}
			ws.PlutusV2Scripts = s
		case witnessKeyPlutusV3:
			s, err := containers.SetFromCbor[plutusScriptItem](r, plutusV3FromCbor)
			if err != nil {
				return err
			}
			ws.PlutusV3Scripts = s
		default:
			return fmt.Errorf("%w: witness set map key %d", cborcodec.ErrUnknownDiscriminator, key)
		}
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := readEntry(); err != nil {
				return nil, err
			}
		}
		if err := r.ConsumeBreak(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < n; i++ {
			if err := readEntry(); err != nil {
				return nil, err
			}
		}
		if err := r.ReadEnd(); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func plutusV1FromCbor(r *cborcodec.Reader) (scripts.PlutusScript, error) {
	return scripts.PlutusScriptFromCbor(r, primitives.PlutusV1)
}

func plutusV2FromCbor(r *cborcodec.Reader) (scripts.PlutusScript, error) {
	return scripts.PlutusScriptFromCbor(r, primitives.PlutusV2)
}

func plutusV3FromCbor(r *cborcodec.Reader) (scripts.PlutusScript, error) {
	return scripts.PlutusScriptFromCbor(r, primitives.PlutusV3)
}
