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

package containers

import (
	"sort"

	"github.com/cardano-forge/ledger/cborcodec"
)

// Map is a keyed map whose CBOR encoding is independent of insertion
// order: entries are collected as (encoded_key, encoded_value) pairs and
// sorted by encoded_key bytes at encode time.
type Map[K Encodable, V Encodable] struct {
	keys   []K
	values map[string]V
	raw    map[string]K
}

// NewMap returns an empty Map.
func NewMap[K Encodable, V Encodable]() *Map[K, V] {
	return &Map[K, V]{values: make(map[string]V), raw: make(map[string]K)}
}

func keyOf(k Encodable) string { return string(encodeOf(k)) }

// Set inserts or overwrites the value for k.
func (m *Map[K, V]) Set(k K, v V) {
	ks := keyOf(k)
	if _, exists := m.raw[ks]; !exists {
		m.keys = append(m.keys, k)
	}
	m.raw[ks] = k
	m.values[ks] = v
}

// Get returns the value for k and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[keyOf(k)]
	return v, ok
}

// Keys returns the map's keys in insertion order.
func (m *Map[K, V]) Keys() []K { return m.keys }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// ToCbor writes the map sorted by each key's encoded bytes.
func (m *Map[K, V]) ToCbor(w *cborcodec.Writer) {
	entries := make([]cborcodec.SortedMapEntry, 0, len(m.keys))
	for _, k := range m.keys {
		ks := keyOf(k)
		kw := cborcodec.NewWriter()
		k.ToCbor(kw)
		vw := cborcodec.NewWriter()
		m.values[ks].ToCbor(vw)
		entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
	}
	w.WriteSortedMap(entries)
}

// MapFromCbor decodes key/value pairs in wire order. Strict mode rejects
// duplicate keys with DuplicateKey; lenient mode (the default) keeps the
// last value seen.
func MapFromCbor[K Encodable, V Encodable](
	r *cborcodec.Reader,
	decodeKey func(*cborcodec.Reader) (K, error),
	decodeValue func(*cborcodec.Reader) (V, error),
) (*Map[K, V], error) {
	m := NewMap[K, V]()
	n, err := r.ReadStartMap(nil)
	if err != nil {
		return nil, err
	}
	readPair := func() error {
		k, err := decodeKey(r)
		if err != nil {
			return err
		}
		v, err := decodeValue(r)
		if err != nil {
			return err
		}
		ks := keyOf(k)
		if _, exists := m.raw[ks]; exists && r.Strict() {
			return cborcodec.ErrDuplicateKey
		}
		m.Set(k, v)
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
		return m, nil
	}
	for i := 0; i < n; i++ {
		if err := readPair(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return m, nil
}

// SortedKeys returns the keys sorted by their encoded bytes, for callers (e.g. VotingProcedures)
// that need a stable, canonical iteration order outside of ToCbor.
func (m *Map[K, V]) SortedKeys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	sort.Slice(keys, func(i, j int) bool {
		return cborcodec.CompareEncoded(encodeOf(keys[i]), encodeOf(keys[j])) < 0
	})
	return keys
}
