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
	"github.com/cardano-forge/ledger/scripts"
)

const auxiliaryDataTag = 259

// MetadatumKind discriminates a transaction-metadata value.
type MetadatumKind int

const (
	MetadatumInt MetadatumKind = iota
	MetadatumBytes
	MetadatumText
	MetadatumList
	MetadatumMap
)

// Metadatum is the recursive value type stored under a transaction's
// u64-keyed metadata map. It mirrors the ledger's untyped metadata
// schema: an integer, a byte string, a text string, or a list/map of
// further Metadatum values.
type Metadatum struct {
	Kind  MetadatumKind
	Int   int64
	Bytes []byte
	Text  string
	List  []Metadatum
	Map   []MetadatumPair
}

// MetadatumPair is a single key/value entry of a metadata map.
type MetadatumPair struct {
	Key   Metadatum
	Value Metadatum
}

// NewIntMetadatum constructs an integer metadatum.
func NewIntMetadatum(v int64) Metadatum { return Metadatum{Kind: MetadatumInt, Int: v} }

// NewBytesMetadatum constructs a byte-string metadatum.
func NewBytesMetadatum(b []byte) Metadatum { return Metadatum{Kind: MetadatumBytes, Bytes: cloneBytes(b)} }

// NewTextMetadatum constructs a text-string metadatum.
func NewTextMetadatum(s string) Metadatum { return Metadatum{Kind: MetadatumText, Text: s} }

// NewListMetadatum constructs a list metadatum.
func NewListMetadatum(items []Metadatum) Metadatum { return Metadatum{Kind: MetadatumList, List: items} }

// NewMapMetadatum constructs a map metadatum. Entries are encoded in
// canonical sorted-key order regardless of the slice's input order.
func NewMapMetadatum(pairs []MetadatumPair) Metadatum { return Metadatum{Kind: MetadatumMap, Map: pairs} }

// ToCbor writes the metadatum in its natural CBOR shape.
func (m Metadatum) ToCbor(w *cborcodec.Writer) {
	switch m.Kind {
	case MetadatumInt:
		w.WriteInt(m.Int)
	case MetadatumBytes:
		w.WriteByteString(m.Bytes)
	case MetadatumText:
		w.WriteTextString(m.Text)
	case MetadatumList:
		w.WriteStartArray(len(m.List))
		for _, item := range m.List {
			item.ToCbor(w)
		}
		_ = w.WriteEnd()
	case MetadatumMap:
		entries := make([]cborcodec.SortedMapEntry, 0, len(m.Map))
		for _, p := range m.Map {
			kw := cborcodec.NewWriter()
			p.Key.ToCbor(kw)
			vw := cborcodec.NewWriter()
			p.Value.ToCbor(vw)
			entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
		}
		w.WriteSortedMap(entries)
	}
}

// MetadatumFromCbor reads a Metadatum by peeking the next item's major
// type.
func MetadatumFromCbor(r *cborcodec.Reader) (Metadatum, error) {
	state, err := r.PeekState()
	if err != nil {
		return Metadatum{}, err
	}
	switch state.Major {
	case cborcodec.MajorUnsignedInt, cborcodec.MajorNegativeInt:
		v, err := r.ReadInt()
		if err != nil {
			return Metadatum{}, err
		}
		return NewIntMetadatum(v), nil
	case cborcodec.MajorByteString:
		b, err := r.ReadByteString()
		if err != nil {
			return Metadatum{}, err
		}
		return NewBytesMetadatum(b), nil
	case cborcodec.MajorTextString:
		s, err := r.ReadTextString()
		if err != nil {
			return Metadatum{}, err
		}
		return NewTextMetadatum(s), nil
	case cborcodec.MajorArray:
		n, err := r.ReadStartArray(nil)
		if err != nil {
			return Metadatum{}, err
		}
		var items []Metadatum
		if n < 0 {
			for !r.PeekBreak() {
				item, err := MetadatumFromCbor(r)
				if err != nil {
					return Metadatum{}, err
				}
				items = append(items, item)
			}
			if err := r.ConsumeBreak(); err != nil {
				return Metadatum{}, err
			}
		} else {
			for i := 0; i < n; i++ {
				item, err := MetadatumFromCbor(r)
				if err != nil {
					return Metadatum{}, err
				}
				items = append(items, item)
			}
			if err := r.ReadEnd(); err != nil {
				return Metadatum{}, err
			}
		}
		return NewListMetadatum(items), nil
	case cborcodec.MajorMap:
		n, err := r.ReadStartMap(nil)
		if err != nil {
			return Metadatum{}, err
		}
		var pairs []MetadatumPair
		readPair := func() error {
			k, err := MetadatumFromCbor(r)
			if err != nil {
				return err
			}
			v, err := MetadatumFromCbor(r)
			if err != nil {
				return err
			}
			pairs = append(pairs, MetadatumPair{Key: k, Value: v})
			return nil
		}
		if n < 0 {
			for !r.PeekBreak() {
				if err := readPair(); err != nil {
					return Metadatum{}, err
				}
			}
			if err := r.ConsumeBreak(); err != nil {
				return Metadatum{}, err
			}
		} else {
			for i := 0; i < n; i++ {
				if err := readPair(); err != nil {
					return Metadatum{}, err
				}
			}
			if err := r.ReadEnd(); err != nil {
				return Metadatum{}, err
			}
		}
		return NewMapMetadatum(pairs), nil
	default:
		return Metadatum{}, fmt.Errorf("%w: unexpected major type %d for metadatum", cborcodec.ErrUnexpectedCborType, state.Major)
	}
}

// metadatumKeyItem/metadatumValueItem adapt the u64 metadata key and
// Metadatum value to containers.Encodable for the top-level metadata map.
type metadatumKeyItem uint64
type metadatumValueItem Metadatum

func (k metadatumKeyItem) ToCbor(w *cborcodec.Writer)   { w.WriteUint(uint64(k)) }
func (v metadatumValueItem) ToCbor(w *cborcodec.Writer) { Metadatum(v).ToCbor(w) }

func metadatumKeyItemFromCbor(r *cborcodec.Reader) (metadatumKeyItem, error) {
	v, err := r.ReadUint()
	return metadatumKeyItem(v), err
}

func metadatumValueItemFromCbor(r *cborcodec.Reader) (metadatumValueItem, error) {
	v, err := MetadatumFromCbor(r)
	return metadatumValueItem(v), err
}

// AuxiliaryData carries a transaction's off-chain metadata plus any
// scripts the transaction author wants the metadata to vouch for.
// Encoding is the tagged Alonzo+ map form (tag 259) when any Plutus
// script is present, a bare Shelley-MA `[metadata, native_scripts]`
// array when only native scripts accompany metadata, or a bare metadata
// map when only metadata is present.
type AuxiliaryData struct {
	Metadata        *containers.Map[metadatumKeyItem, metadatumValueItem]
	NativeScripts   []scripts.NativeScript
	PlutusV1Scripts []scripts.PlutusScript
	PlutusV2Scripts []scripts.PlutusScript
	PlutusV3Scripts []scripts.PlutusScript
}

// NewAuxiliaryData returns an empty AuxiliaryData.
func NewAuxiliaryData() *AuxiliaryData {
	return &AuxiliaryData{Metadata: containers.NewMap[metadatumKeyItem, metadatumValueItem]()}
}

func (a *AuxiliaryData) hasScripts() bool {
	return len(a.NativeScripts) > 0 || len(a.PlutusV1Scripts) > 0 || len(a.PlutusV2Scripts) > 0 || len(a.PlutusV3Scripts) > 0
}

func (a *AuxiliaryData) hasOnlyNativeScripts() bool {
	return len(a.NativeScripts) > 0 && len(a.PlutusV1Scripts) == 0 && len(a.PlutusV2Scripts) == 0 && len(a.PlutusV3Scripts) == 0
}

// ToCbor selects the narrowest applicable encoding, per the rules above.
func (a *AuxiliaryData) ToCbor(w *cborcodec.Writer) {
	if !a.hasScripts() {
		a.Metadata.ToCbor(w)
		return
	}
	if a.hasOnlyNativeScripts() {
		w.WriteStartArray(2)
		a.Metadata.ToCbor(w)
		w.WriteStartArray(len(a.NativeScripts))
		for _, s := range a.NativeScripts {
			s.ToCbor(w)
		}
		_ = w.WriteEnd()
		_ = w.WriteEnd()
		return
	}
	w.WriteTag(auxiliaryDataTag)
	entries := make([]cborcodec.SortedMapEntry, 0, 4)
	if a.Metadata.Len() > 0 {
		entries = append(entries, mapEntry(0, a.Metadata.ToCbor))
	}
	if len(a.NativeScripts) > 0 {
		entries = append(entries, mapEntry(1, func(w *cborcodec.Writer) { writeScriptList(w, a.NativeScripts) }))
	}
	if len(a.PlutusV1Scripts) > 0 {
		entries = append(entries, mapEntry(2, func(w *cborcodec.Writer) { writePlutusList(w, a.PlutusV1Scripts) }))
	}
	if len(a.PlutusV2Scripts) > 0 {
		entries = append(entries, mapEntry(3, func(w *cborcodec.Writer) { writePlutusList(w, a.PlutusV2Scripts) }))
	}
	if len(a.PlutusV3Scripts) > 0 {
		entries = append(entries, mapEntry(4, func(w *cborcodec.Writer) { writePlutusList(w, a.PlutusV3Scripts) }))
	}
	w.WriteSortedMap(entries)
}

func writeScriptList(w *cborcodec.Writer, list []scripts.NativeScript) {
	w.WriteStartArray(len(list))
	for _, s := range list {
		s.ToCbor(w)
	}
	_ = w.WriteEnd()
}

func writePlutusList(w *cborcodec.Writer, list []scripts.PlutusScript) {
	w.WriteStartArray(len(list))
	for _, s := range list {
		s.ToCbor(w)
	}
	_ = w.WriteEnd()
}

// AuxiliaryDataFromCbor peeks the leading item to decide which of the
// three encodings is present.
func AuxiliaryDataFromCbor(r *cborcodec.Reader) (*AuxiliaryData, error) {
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}
	if state.Major == cborcodec.MajorTag && state.Value == auxiliaryDataTag {
		return auxiliaryDataMapFromCbor(r)
	}
	if state.Major == cborcodec.MajorArray {
		return auxiliaryDataShelleyMaFromCbor(r)
	}
	metadata, err := containers.MapFromCbor[metadatumKeyItem, metadatumValueItem](r, metadatumKeyItemFromCbor, metadatumValueItemFromCbor)
	if err != nil {
		return nil, err
	}
	return &AuxiliaryData{Metadata: metadata}, nil
}

func auxiliaryDataShelleyMaFromCbor(r *cborcodec.Reader) (*AuxiliaryData, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return nil, err
	}
	metadata, err := containers.MapFromCbor[metadatumKeyItem, metadatumValueItem](r, metadatumKeyItemFromCbor, metadatumValueItemFromCbor)
	if err != nil {
		return nil, err
	}
	nativeScripts, err := readNativeScriptArray(r)
	if err != nil {
		return nil, err
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return &AuxiliaryData{Metadata: metadata, NativeScripts: nativeScripts}, nil
}

func auxiliaryDataMapFromCbor(r *cborcodec.Reader) (*AuxiliaryData, error) {
	if _, err := r.ReadTag(); err != nil {
		return nil, err
	}
	a := NewAuxiliaryData()
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
		case 0:
			m, err := containers.MapFromCbor[metadatumKeyItem, metadatumValueItem](r, metadatumKeyItemFromCbor, metadatumValueItemFromCbor)
			if err != nil {
				return err
			}
			a.Metadata = m
		case 1:
			s, err := readNativeScriptArray(r)
			if err != nil {
				return err
			}
			a.NativeScripts = s
		case 2:
			s, err := readPlutusScriptArray(r, plutusV1FromCbor)
			if err != nil {
				return err
			}
			a.PlutusV1Scripts = s
		case 3:
			s, err := readPlutusScriptArray(r, plutusV2FromCbor)
			if err != nil {
				return err
			}
			a.PlutusV2Scripts = s
		case 4:
			s, err := readPlutusScriptArray(r, plutusV3FromCbor)
			if err != nil {
				return err
			}
			a.PlutusV3Scripts = s
		default:
			return fmt.Errorf("%w: auxiliary data map key %d", cborcodec.ErrUnknownDiscriminator, key)
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
	return a, nil
}

func readNativeScriptArray(r *cborcodec.Reader) ([]scripts.NativeScript, error) {
	list, err := containers.ListFromCbor[scripts.NativeScript](r, scripts.NativeScriptFromCbor)
	if err != nil {
		return nil, err
	}
	return list.Items(), nil
}

func readPlutusScriptArray(r *cborcodec.Reader, decode func(*cborcodec.Reader) (scripts.PlutusScript, error)) ([]scripts.PlutusScript, error) {
	list, err := containers.ListFromCbor[scripts.PlutusScript](r, decode)
	if err != nil {
		return nil, err
	}
	return list.Items(), nil
}
