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
	"sort"

	"github.com/cardano-forge/ledger/cborcodec"
)

// PlutusLanguage discriminates a Plutus script's language version.
type PlutusLanguage uint64

const (
	PlutusV1 PlutusLanguage = 0
	PlutusV2 PlutusLanguage = 1
	PlutusV3 PlutusLanguage = 2
)

// plutusLanguageOpCounts is the expected cost-model array length per
// language. V2/V3 have grown over protocol updates on mainnet; this
// records the Conway-era genesis values and is intentionally permissive
// (CostModels validates a minimum, not an exact match) so historical and
// future parameter updates both decode.
var plutusLanguageOpCounts = map[PlutusLanguage]int{
	PlutusV1: 166,
	PlutusV2: 175,
	PlutusV3: 223,
}

// CostModels is a map from Plutus language to its cost-model operand
// array, validated on insertion against the language's expected length.
type CostModels struct {
	models map[PlutusLanguage][]int64
}

// NewCostModels returns an empty CostModels map.
func NewCostModels() *CostModels {
	return &CostModels{models: make(map[PlutusLanguage][]int64)}
}

// Set validates ops against the minimum expected length for lang before
// inserting. Longer arrays are accepted (later cost-model parameters add
// operands); shorter ones are rejected.
func (c *CostModels) Set(lang PlutusLanguage, ops []int64) error {
	want, known := plutusLanguageOpCounts[lang]
	if known && len(ops) < want {
		return fmt.Errorf("%w: plutus language %d expects at least %d cost operands, got %d",
			cborcodec.ErrInvariantViolation, lang, want, len(ops))
	}
	cp := make([]int64, len(ops))
	copy(cp, ops)
	c.models[lang] = cp
	return nil
}

// Get returns the operand array for lang, if present.
func (c *CostModels) Get(lang PlutusLanguage) ([]int64, bool) {
	v, ok := c.models[lang]
	return v, ok
}

// Languages returns the set of languages present, ascending numeric tag
// order.
func (c *CostModels) Languages() []PlutusLanguage {
	out := make([]PlutusLanguage, 0, len(c.models))
	for l := range c.models {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ToCbor writes `{lang => [ops...]}` with languages in ascending tag
// order and values as canonical definite-length arrays. This is the
// protocol-parameter encoding; LanguageViewsEncoding below produces the
// distinct, deliberately non-canonical script-data-hash encoding.
func (c *CostModels) ToCbor(w *cborcodec.Writer) {
	langs := c.Languages()
	w.WriteStartMap(len(langs))
	for _, l := range langs {
		w.WriteUint(uint64(l))
		ops := c.models[l]
		w.WriteStartArray(len(ops))
		for _, op := range ops {
			w.WriteInt(op)
		}
		_ = w.WriteEnd()
	}
	_ = w.WriteEnd()
}

// CostModelsFromCbor reads `{lang => [ops...]}`.
func CostModelsFromCbor(r *cborcodec.Reader) (*CostModels, error) {
	n, err := r.ReadStartMap(nil)
	if err != nil {
		return nil, err
	}
	c := NewCostModels()
	readPair := func() error {
		lang, err := r.ReadUint()
		if err != nil {
			return err
		}
		arrLen, err := r.ReadStartArray(nil)
		if err != nil {
			return err
		}
		count := arrLen
		if count < 0 {
			count = 0
		}
		ops := make([]int64, 0, count)
		if arrLen < 0 {
			for !r.PeekBreak() {
				v, err := r.ReadInt()
				if err != nil {
					return err
				}
				ops = append(ops, v)
			}
			if err := r.ConsumeBreak(); err != nil {
				return err
			}
		} else {
			for i := 0; i < count; i++ {
				v, err := r.ReadInt()
				if err != nil {
					return err
				}
				ops = append(ops, v)
			}
			if err := r.ReadEnd(); err != nil {
				return err
			}
		}
		c.models[PlutusLanguage(lang)] = ops
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := readPair(); err != nil {
				return nil, err
			}
		}
		if err := r.ConsumeBreak(); err != nil {
			return nil, err
		}
		return c, nil
	}
	for i := 0; i < n; i++ {
		if err := readPair(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return c, nil
}

// LanguageViewsEncoding builds the exact byte string fed into
// script_data_hash. This is the sole place the codec deliberately emits
// non-canonical CBOR: the V1 entry uses a historical, bug-for-bug-compatible
// encoding the ledger never corrected.
func (c *CostModels) LanguageViewsEncoding() []byte {
	// Languages() already returns ascending numeric tag order; the pairs
	// below are emitted in that order directly rather than sorted by
	// encoded key bytes, matching the ledger's own (non-canonical) map
	// construction for this one encoding.
	langs := c.Languages()
	entries := make([]cborcodec.SortedMapEntry, 0, len(langs))
	for _, l := range langs {
		ops := c.models[l]
		if l == PlutusV1 {
			// Key: byte string containing the CBOR encoding of integer 0.
			keyInner := cborcodec.NewWriter()
			keyInner.WriteUint(0)
			kw := cborcodec.NewWriter()
			kw.WriteByteString(keyInner.Encoded())
			// Value: indefinite-length array of the cost operands.
			vw := cborcodec.NewWriter()
			vw.WriteEncodedValue([]byte{0x9f}) // indefinite array start
			for _, op := range ops {
				vw.WriteInt(op)
			}
			vw.WriteEncodedValue([]byte{0xff}) // break
			entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
			continue
		}
		kw := cborcodec.NewWriter()
		kw.WriteUint(uint64(l))
		vw := cborcodec.NewWriter()
		vw.WriteStartArray(len(ops))
		for _, op := range ops {
			vw.WriteInt(op)
		}
		_ = vw.WriteEnd()
		entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
	}
	w := cborcodec.NewWriter()
	w.WriteStartMap(len(entries))
	for _, e := range entries {
		w.WriteEncodedValue(e.Key)
		w.WriteEncodedValue(e.Value)
	}
	_ = w.WriteEnd()
	return w.Encoded()
}
