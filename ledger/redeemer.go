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
	"sort"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

// RedeemerTag identifies which part of a transaction a redeemer's Plutus
// script execution is authorizing.
type RedeemerTag int

const (
	RedeemerSpend RedeemerTag = iota
	RedeemerMint
	RedeemerCert
	RedeemerReward
	RedeemerVote
	RedeemerPropose
)

// Redeemer is a single input to a Plutus script invocation: the purpose
// and index it authorizes, the opaque Plutus-data argument, and the
// execution budget the submitter is willing to pay for.
type Redeemer struct {
	Tag     RedeemerTag
	Index   uint64
	Data    []byte // pre-encoded Plutus data; never interpreted here
	ExUnits primitives.ExUnits
}

// NewRedeemer constructs a Redeemer, copying data.
func NewRedeemer(tag RedeemerTag, index uint64, data []byte, exUnits primitives.ExUnits) Redeemer {
	return Redeemer{Tag: tag, Index: index, Data: cloneBytes(data), ExUnits: exUnits}
}

// ToCbor writes `[tag, index, data, ex_units]`.
func (r Redeemer) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(4)
	w.WriteUint(uint64(r.Tag))
	w.WriteUint(r.Index)
	w.WriteEncodedValue(r.Data)
	r.ExUnits.ToCbor(w)
	_ = w.WriteEnd()
}

// RedeemerFromCbor reads `[tag, index, data, ex_units]`.
func RedeemerFromCbor(reader *cborcodec.Reader) (Redeemer, error) {
	four := 4
	if _, err := reader.ReadStartArray(&four); err != nil {
		return Redeemer{}, err
	}
	tag, err := reader.ReadUint()
	if err != nil {
		return Redeemer{}, err
	}
	if tag > uint64(RedeemerPropose) {
		return Redeemer{}, fmt.Errorf("%w: redeemer tag %d", cborcodec.ErrUnknownDiscriminator, tag)
	}
	index, err := reader.ReadUint()
	if err != nil {
		return Redeemer{}, err
	}
	data, err := reader.ReadEncodedValue()
	if err != nil {
		return Redeemer{}, err
	}
	exUnits, err := primitives.ExUnitsFromCbor(reader)
	if err != nil {
		return Redeemer{}, err
	}
	if err := reader.ReadEnd(); err != nil {
		return Redeemer{}, err
	}
	return NewRedeemer(RedeemerTag(tag), index, data, exUnits), nil
}

// Compare orders redeemers by (tag, index), the order the witness set's
// redeemer list must be sorted into before encoding.
func (r Redeemer) Compare(other Redeemer) int {
	if r.Tag != other.Tag {
		if r.Tag < other.Tag {
			return -1
		}
		return 1
	}
	switch {
	case r.Index < other.Index:
		return -1
	case r.Index > other.Index:
		return 1
	default:
		return 0
	}
}

// SortRedeemers returns a copy of redeemers sorted by (tag, index).
func SortRedeemers(redeemers []Redeemer) []Redeemer {
	out := make([]Redeemer, len(redeemers))
	copy(out, redeemers)
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}
