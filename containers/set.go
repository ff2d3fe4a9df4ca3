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

// Package containers implements the L5 generic set/list/map wrappers
// shared by every "set of X", "list of X" and keyed-map type in the
// object graph, preserving the Conway tag-258-vs-legacy-array distinction
// on round-trip.
package containers

import (
	"sort"

	"github.com/cardano-forge/ledger/cborcodec"
)

// Tag258 is the Conway-era CBOR tag wrapping a set's array encoding.
const Tag258 = 258

// Encodable is implemented by any element type usable in a Set, List or
// Map key: it must know how to serialize itself.
type Encodable interface {
	ToCbor(w *cborcodec.Writer)
}

// Set stores elements in insertion order for iteration, deduplicates and
// sorts them at encode time, and preserves the `use_tag` flag it was
// decoded with (or true, for newly constructed sets, defaulting to the
// tag-258 Conway framing).
type Set[T Encodable] struct {
	items  []T
	UseTag bool
}

// NewSet returns an empty Set defaulting to Conway (tag 258) framing.
func NewSet[T Encodable]() *Set[T] {
	return &Set[T]{UseTag: true}
}

// Add appends v, deduplicating against the encoded bytes of existing
// members.
func (s *Set[T]) Add(v T) {
	enc := encodeOf(v)
	for _, existing := range s.items {
		if cborcodec.CompareEncoded(encodeOf(existing), enc) == 0 {
			return
		}
	}
	s.items = append(s.items, v)
}

// Items returns the members in insertion order.
func (s *Set[T]) Items() []T { return s.items }

// Len returns the number of (deduplicated) members.
func (s *Set[T]) Len() int { return len(s.items) }

func encodeOf(v Encodable) []byte {
	w := cborcodec.NewWriter()
	v.ToCbor(w)
	return w.Encoded()
}

func (s *Set[T]) sorted() ([]T, [][]byte) {
	type pair struct {
		item T
		enc  []byte
	}
	pairs := make([]pair, len(s.items))
	for i, it := range s.items {
		pairs[i] = pair{item: it, enc: encodeOf(it)}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return cborcodec.CompareEncoded(pairs[i].enc, pairs[j].enc) < 0
	})
	items := make([]T, len(pairs))
	encs := make([][]byte, len(pairs))
	for i, p := range pairs {
		items[i] = p.item
		encs[i] = p.enc
	}
	return items, encs
}

// ToCbor writes the set as `tag 258 (array)` when UseTag, else a bare
// array, members sorted by their own encoded bytes.
func (s *Set[T]) ToCbor(w *cborcodec.Writer) {
	_, encs := s.sorted()
	if s.UseTag {
		w.WriteTag(Tag258)
	}
	w.WriteStartArray(len(encs))
	for _, e := range encs {
		w.WriteEncodedValue(e)
	}
	_ = w.WriteEnd()
}

// SetFromCbor decodes a set using decodeItem for each member. It peeks
// for tag 258 to record UseTag, then reads a (possibly indefinite, in
// lenient mode) array. strict mode rejects duplicate members;
// lenient mode silently coalesces them.
func SetFromCbor[T Encodable](r *cborcodec.Reader, decodeItem func(*cborcodec.Reader) (T, error)) (*Set[T], error) {
	s := NewSet[T]()
	s.UseTag = false
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}
	if state.Major == cborcodec.MajorTag && state.Value == Tag258 {
		if _, err := r.ReadTag(); err != nil {
			return nil, err
		}
		s.UseTag = true
	}
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return nil, err
	}
	add := func() error {
		item, err := decodeItem(r)
		if err != nil {
			return err
		}
		enc := encodeOf(item)
		for _, existing := range s.items {
			if cborcodec.CompareEncoded(encodeOf(existing), enc) == 0 {
				if r.Strict() {
					return wrapDuplicate()
				}
				return nil
			}
		}
		s.items = append(s.items, item)
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := add(); err != nil {
				return nil, err
			}
		}
		if err := r.ConsumeBreak(); err != nil {
			return nil, err
		}
		return s, nil
	}
	for i := 0; i < n; i++ {
		if err := add(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return s, nil
}

func wrapDuplicate() error {
	return cborcodec.ErrDuplicateKey
}
