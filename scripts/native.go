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

// Package scripts implements native multi-signature scripts (with their
// CBOR and cardano-cli-compatible JSON codecs) and the opaque Plutus
// script wrapper, and the Script sum over both.
package scripts

import (
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

// NativeScriptKind discriminates a NativeScript's variant. The numeric
// values are the ledger's own CBOR discriminators.
type NativeScriptKind int

const (
	NativeScriptPubkey NativeScriptKind = iota
	NativeScriptAllOf
	NativeScriptAnyOf
	NativeScriptNOfK
	NativeScriptInvalidBefore
	NativeScriptInvalidAfter
)

// NativeScript is the closed sum of Cardano's multi-signature script
// language: a key-hash leaf, the three boolean combinators, and the two
// slot-bound time locks.
type NativeScript struct {
	Kind NativeScriptKind

	// Pubkey
	KeyHash primitives.Hash28

	// AllOf / AnyOf / NOfK
	Scripts []NativeScript
	Required uint64 // NOfK only

	// InvalidBefore / InvalidAfter
	Slot uint64
}

// NewPubkeyScript constructs a Pubkey leaf.
func NewPubkeyScript(keyHash primitives.Hash28) NativeScript {
	return NativeScript{Kind: NativeScriptPubkey, KeyHash: keyHash}
}

// NewAllOfScript constructs an AllOf combinator.
func NewAllOfScript(children ...NativeScript) NativeScript {
	return NativeScript{Kind: NativeScriptAllOf, Scripts: children}
}

// NewAnyOfScript constructs an AnyOf combinator.
func NewAnyOfScript(children ...NativeScript) NativeScript {
	return NativeScript{Kind: NativeScriptAnyOf, Scripts: children}
}

// NewNOfKScript constructs an n-of-k threshold combinator.
func NewNOfKScript(required uint64, children ...NativeScript) NativeScript {
	return NativeScript{Kind: NativeScriptNOfK, Required: required, Scripts: children}
}

// NewInvalidBeforeScript constructs a lower-bound time lock: the script
// is only satisfied at or after slot.
func NewInvalidBeforeScript(slot uint64) NativeScript {
	return NativeScript{Kind: NativeScriptInvalidBefore, Slot: slot}
}

// NewInvalidAfterScript constructs an upper-bound time lock: the script
// is only satisfied strictly before slot.
func NewInvalidAfterScript(slot uint64) NativeScript {
	return NativeScript{Kind: NativeScriptInvalidAfter, Slot: slot}
}

// ToCbor writes `[discriminator, ...]`.
func (n NativeScript) ToCbor(w *cborcodec.Writer) {
	switch n.Kind {
	case NativeScriptPubkey:
		w.WriteStartArray(2)
		w.WriteUint(uint64(n.Kind))
		n.KeyHash.ToCbor(w)
		_ = w.WriteEnd()
	case NativeScriptAllOf, NativeScriptAnyOf:
		w.WriteStartArray(2)
		w.WriteUint(uint64(n.Kind))
		w.WriteStartArray(len(n.Scripts))
		for _, c := range n.Scripts {
			c.ToCbor(w)
		}
		_ = w.WriteEnd()
		_ = w.WriteEnd()
	case NativeScriptNOfK:
		w.WriteStartArray(3)
		w.WriteUint(uint64(n.Kind))
		w.WriteUint(n.Required)
		w.WriteStartArray(len(n.Scripts))
		for _, c := range n.Scripts {
			c.ToCbor(w)
		}
		_ = w.WriteEnd()
		_ = w.WriteEnd()
	case NativeScriptInvalidBefore, NativeScriptInvalidAfter:
		w.WriteStartArray(2)
		w.WriteUint(uint64(n.Kind))
		w.WriteUint(n.Slot)
		_ = w.WriteEnd()
	}
}

// NativeScriptFromCbor reads `[discriminator, ...]` and dispatches on the
// discriminator.
func NativeScriptFromCbor(r *cborcodec.Reader) (NativeScript, error) {
	if _, err := r.ReadStartArray(nil); err != nil {
		return NativeScript{}, err
	}
	disc, err := r.ReadUint()
	if err != nil {
		return NativeScript{}, err
	}
	switch NativeScriptKind(disc) {
	case NativeScriptPubkey:
		keyHash, err := primitives.Hash28FromCbor(r)
		if err != nil {
			return NativeScript{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return NativeScript{}, err
		}
		return NewPubkeyScript(keyHash), nil
	case NativeScriptAllOf, NativeScriptAnyOf:
		children, err := readScriptArray(r)
		if err != nil {
			return NativeScript{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return NativeScript{}, err
		}
		return NativeScript{Kind: NativeScriptKind(disc), Scripts: children}, nil
	case NativeScriptNOfK:
		required, err := r.ReadUint()
		if err != nil {
			return NativeScript{}, err
		}
		children, err := readScriptArray(r)
		if err != nil {
			return NativeScript{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return NativeScript{}, err
		}
		return NativeScript{Kind: NativeScriptNOfK, Required: required, Scripts: children}, nil
	case NativeScriptInvalidBefore, NativeScriptInvalidAfter:
		slot, err := r.ReadUint()
		if err != nil {
			return NativeScript{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return NativeScript{}, err
		}
		return NativeScript{Kind: NativeScriptKind(disc), Slot: slot}, nil
	default:
		return NativeScript{}, fmt.Errorf("%w: native script discriminator %d", cborcodec.ErrUnknownDiscriminator, disc)
	}
}

func readScriptArray(r *cborcodec.Reader) ([]NativeScript, error) {
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return nil, err
	}
	var out []NativeScript
	if n < 0 {
		for !r.PeekBreak() {
			c, err := NativeScriptFromCbor(r)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		if err := r.ConsumeBreak(); err != nil {
			return nil, err
		}
		return out, nil
	}
	for i := 0; i < n; i++ {
		c, err := NativeScriptFromCbor(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return out, nil
}
