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

// Package ledger implements the L4/L6 domain object graph: transaction
// inputs/outputs, certificates, governance actions, pool parameters,
// witness sets, auxiliary data and the transaction itself, plus the
// script-data-hash computation that seals a transaction against its
// redeemers and cost models.
package ledger

import (
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/containers"
	"github.com/cardano-forge/ledger/primitives"
	"github.com/cardano-forge/ledger/scripts"
)

// TransactionInput identifies a spent output by the id of the
// transaction that produced it and its index within that transaction's
// outputs.
type TransactionInput struct {
	TxId  primitives.Hash32
	Index uint64
}

// NewTransactionInput constructs a TransactionInput.
func NewTransactionInput(txId primitives.Hash32, index uint64) TransactionInput {
	return TransactionInput{TxId: txId, Index: index}
}

// ToCbor writes `[tx_id, index]`.
func (i TransactionInput) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	i.TxId.ToCbor(w)
	w.WriteUint(i.Index)
	_ = w.WriteEnd()
}

// TransactionInputFromCbor reads `[tx_id, index]`.
func TransactionInputFromCbor(r *cborcodec.Reader) (TransactionInput, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return TransactionInput{}, err
	}
	txId, err := primitives.Hash32FromCbor(r)
	if err != nil {
		return TransactionInput{}, err
	}
	index, err := r.ReadUint()
	if err != nil {
		return TransactionInput{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return TransactionInput{}, err
	}
	return NewTransactionInput(txId, index), nil
}

// Compare orders inputs lexicographically on TxId then Index, the
// canonical ordering used inside input Sets.
func (i TransactionInput) Compare(other TransactionInput) int {
	if c := cborcodec.CompareEncoded(i.TxId[:], other.TxId[:]); c != 0 {
		return c
	}
	switch {
	case i.Index < other.Index:
		return -1
	case i.Index > other.Index:
		return 1
	default:
		return 0
	}
}

// DatumKind discriminates a Babbage output's inline datum field.
type DatumKind int

const (
	DatumHash DatumKind = iota
	DatumInline
)

// Datum is either the hash of an off-chain datum or the datum's CBOR
// bytes carried inline in the output (Babbage+). The core never
// interprets the inline bytes as Plutus data.
type Datum struct {
	Kind  DatumKind
	Hash  primitives.Hash32
	Bytes []byte
}

// NewDatumHash constructs a hash-only datum reference.
func NewDatumHash(h primitives.Hash32) Datum {
	return Datum{Kind: DatumHash, Hash: h}
}

// NewInlineDatum constructs an inline datum, copying bytes.
func NewInlineDatum(bytes []byte) Datum {
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	return Datum{Kind: DatumInline, Bytes: cp}
}

// ToCbor writes `[0, hash]` for a hash datum or `[1, tag 24 (bytes)]` for
// an inline datum, matching the wrapped-CBOR-in-bytes convention the
// ledger uses so a Plutus-data blob can sit inside an otherwise
// structural CBOR document.
func (d Datum) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteUint(uint64(d.Kind))
	switch d.Kind {
	case DatumHash:
		d.Hash.ToCbor(w)
	case DatumInline:
		w.WriteTag(24)
		w.WriteByteString(d.Bytes)
	}
	_ = w.WriteEnd()
}

// DatumFromCbor reads `[0, hash]` or `[1, tag 24 (bytes)]`.
func DatumFromCbor(r *cborcodec.Reader) (Datum, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return Datum{}, err
	}
	kind, err := r.ReadUint()
	if err != nil {
		return Datum{}, err
	}
	switch DatumKind(kind) {
	case DatumHash:
		h, err := primitives.Hash32FromCbor(r)
		if err != nil {
			return Datum{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return Datum{}, err
		}
		return NewDatumHash(h), nil
	case DatumInline:
		tag, err := r.ReadTag()
		if err != nil {
			return Datum{}, err
		}
		if tag != 24 {
			return Datum{}, fmt.Errorf("%w: expected tag 24 for inline datum, got %d", cborcodec.ErrMalformedTag, tag)
		}
		raw, err := r.ReadByteString()
		if err != nil {
			return Datum{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return Datum{}, err
		}
		return NewInlineDatum(raw), nil
	default:
		return Datum{}, fmt.Errorf("%w: datum discriminator %d", cborcodec.ErrUnknownDiscriminator, kind)
	}
}

// TransactionOutputKind distinguishes the pre-Babbage array shape from
// the Babbage+ map shape.
type TransactionOutputKind int

const (
	OutputShelley TransactionOutputKind = iota
	OutputBabbage
)

// TransactionOutput is the discriminated Shelley/Babbage output union.
// The writer chooses Babbage's map encoding iff ForceBabbage is set or
// an inline datum / reference script is present; otherwise it emits the
// Shelley array form.
type TransactionOutput struct {
	Address      []byte
	Value        primitives.Value
	DatumHash    *primitives.Hash32 // Shelley-style hash-only datum
	Datum        *Datum             // Babbage-style hash or inline datum
	ScriptRef    *scripts.Script
	ForceBabbage bool
}

// NewShelleyOutput constructs a Shelley-shaped output.
func NewShelleyOutput(address []byte, value primitives.Value, datumHash *primitives.Hash32) TransactionOutput {
	return TransactionOutput{Address: cloneBytes(address), Value: value, DatumHash: datumHash}
}

// NewBabbageOutput constructs a Babbage-shaped output.
func NewBabbageOutput(address []byte, value primitives.Value, datum *Datum, scriptRef *scripts.Script) TransactionOutput {
	return TransactionOutput{Address: cloneBytes(address), Value: value, Datum: datum, ScriptRef: scriptRef, ForceBabbage: true}
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

func (o TransactionOutput) kind() TransactionOutputKind {
	if o.ForceBabbage || o.Datum != nil || o.ScriptRef != nil {
		return OutputBabbage
	}
	return OutputShelley
}

// ToCbor writes the Shelley 2/3-element array or the Babbage 0..3-keyed
// map, selecting the shape per kind().
func (o TransactionOutput) ToCbor(w *cborcodec.Writer) {
	if o.kind() == OutputShelley {
		n := 2
		if o.DatumHash != nil {
			n = 3
		}
		w.WriteStartArray(n)
		w.WriteByteString(o.Address)
		o.Value.ToCbor(w)
		if o.DatumHash != nil {
			o.DatumHash.ToCbor(w)
		}
		_ = w.WriteEnd()
		return
	}

	entries := make([]cborcodec.SortedMapEntry, 0, 4)
	entries = append(entries, mapEntry(0, func(w *cborcodec.Writer) { w.WriteByteString(o.Address) }))
	entries = append(entries, mapEntry(1, func(w *cborcodec.Writer) { o.Value.ToCbor(w) }))
	if o.Datum != nil {
		entries = append(entries, mapEntry(2, func(w *cborcodec.Writer) { o.Datum.ToCbor(w) }))
	}
	if o.ScriptRef != nil {
		entries = append(entries, mapEntry(3, func(w *cborcodec.Writer) {
			w.WriteTag(24)
			inner := cborcodec.NewWriter()
			o.ScriptRef.ToCbor(inner)
			w.WriteByteString(inner.Encoded())
		}))
	}
	w.WriteSortedMap(entries)
}

func mapEntry(key uint64, writeValue func(w *cborcodec.Writer)) cborcodec.SortedMapEntry {
	kw := cborcodec.NewWriter()
	kw.WriteUint(key)
	vw := cborcodec.NewWriter()
	writeValue(vw)
	return cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()}
}

// TransactionOutputFromCbor peeks the leading major type to decide
// between the Shelley array and Babbage map shapes.
func TransactionOutputFromCbor(r *cborcodec.Reader) (TransactionOutput, error) {
	state, err := r.PeekState()
	if err != nil {
		return TransactionOutput{}, err
	}
	if state.Major == cborcodec.MajorMap {
		return babbageOutputFromCbor(r)
	}
	return shelleyOutputFromCbor(r)
}

func shelleyOutputFromCbor(r *cborcodec.Reader) (TransactionOutput, error) {
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return TransactionOutput{}, err
	}
	address, err := r.ReadByteString()
	if err != nil {
		return TransactionOutput{}, err
	}
	value, err := primitives.ValueFromCbor(r)
	if err != nil {
		return TransactionOutput{}, err
	}
	var datumHash *primitives.Hash32
	if n < 0 {
		if !r.PeekBreak() {
			h, err := primitives.Hash32FromCbor(r)
			if err != nil {
				return TransactionOutput{}, err
			}
			datumHash = &h
		}
		if err := r.ConsumeBreak(); err != nil {
			return TransactionOutput{}, err
		}
	} else if n == 3 {
		h, err := primitives.Hash32FromCbor(r)
		if err != nil {
			return TransactionOutput{}, err
		}
		datumHash = &h
		if err := r.ReadEnd(); err != nil {
			return TransactionOutput{}, err
		}
	} else {
		if err := r.ReadEnd(); err != nil {
			return TransactionOutput{}, err
		}
	}
	return NewShelleyOutput(address, value, datumHash), nil
}

func babbageOutputFromCbor(r *cborcodec.Reader) (TransactionOutput, error) {
	n, err := r.ReadStartMap(nil)
	if err != nil {
		return TransactionOutput{}, err
	}
	out := TransactionOutput{ForceBabbage: true}
	readEntry := func() error {
		key, err := r.ReadUint()
		if err != nil {
			return err
		}
		switch key {
		case 0:
			address, err := r.ReadByteString()
			if err != nil {
				return err
			}
			out.Address = address
		case 1:
			value, err := primitives.ValueFromCbor(r)
			if err != nil {
				return err
			}
			out.Value = value
		case 2:
			d, err := DatumFromCbor(r)
			if err != nil {
				return err
			}
			out.Datum = &d
		case 3:
			tag, err := r.ReadTag()
			if err != nil {
				return err
			}
			if tag != 24 {
				return fmt.Errorf("%w: expected tag 24 for script_ref, got %d", cborcodec.ErrMalformedTag, tag)
			}
			raw, err := r.ReadByteString()
			if err != nil {
				return err
			}
			inner := cborcodec.NewReader(raw)
			s, err := scripts.ScriptFromCbor(inner)
			if err != nil {
				return err
			}
			out.ScriptRef = &s
		default:
			return fmt.Errorf("%w: transaction output map key %d", cborcodec.ErrUnknownDiscriminator, key)
		}
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := readEntry(); err != nil {
				return TransactionOutput{}, err
			}
		}
		if err := r.ConsumeBreak(); err != nil {
			return TransactionOutput{}, err
		}
	} else {
		for i := 0; i < n; i++ {
			if err := readEntry(); err != nil {
				return TransactionOutput{}, err
			}
		}
		if err := r.ReadEnd(); err != nil {
			return TransactionOutput{}, err
		}
	}
	return out, nil
}

// TransactionInput and TransactionOutput satisfy the containers.Encodable
// interface used by Set[T]/List[T] directly; these assertions check it.
var (
	_ containers.Encodable = TransactionInput{}
	_ containers.Encodable = TransactionOutput{}
)
