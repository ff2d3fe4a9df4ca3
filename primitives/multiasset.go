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
	"sort"

	"github.com/cardano-forge/ledger/cborcodec"
)

// AssetCoefficient is the set of wire representations a multi-asset
// coefficient can take: unsigned in transaction outputs, signed in mint
// fields. Both encode as plain CBOR integers.
type AssetCoefficient interface {
	~int64 | ~uint64
}

// MultiAsset maps policy id to an inner map of asset name to coefficient.
// The zero value is an empty multi-asset. Invariant: no empty inner map
// is ever retained and no zero-coefficient entry survives Canonicalize(true).
type MultiAsset[T AssetCoefficient] struct {
	byPolicy map[Hash28]map[string]T
	names    map[Hash28]map[string]AssetName
}

// NewMultiAsset returns an empty MultiAsset.
func NewMultiAsset[T AssetCoefficient]() *MultiAsset[T] {
	return &MultiAsset[T]{
		byPolicy: make(map[Hash28]map[string]T),
		names:    make(map[Hash28]map[string]AssetName),
	}
}

// Set records policy/asset/coefficient, overwriting any existing entry.
func (m *MultiAsset[T]) Set(policy Hash28, name AssetName, amount T) {
	key := string(name.bytes)
	if m.byPolicy[policy] == nil {
		m.byPolicy[policy] = make(map[string]T)
		m.names[policy] = make(map[string]AssetName)
	}
	m.byPolicy[policy][key] = amount
	m.names[policy][key] = name
}

// Get returns the coefficient for policy/name and whether it was present.
func (m *MultiAsset[T]) Get(policy Hash28, name AssetName) (T, bool) {
	inner, ok := m.byPolicy[policy]
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := inner[string(name.bytes)]
	return v, ok
}

// Policies returns the set of policy ids present, unordered.
func (m *MultiAsset[T]) Policies() []Hash28 {
	out := make([]Hash28, 0, len(m.byPolicy))
	for p := range m.byPolicy {
		out = append(out, p)
	}
	return out
}

// Assets returns the (name, amount) pairs under policy, unordered.
func (m *MultiAsset[T]) Assets(policy Hash28) map[AssetName]T {
	out := make(map[AssetName]T)
	for k, v := range m.byPolicy[policy] {
		out[m.names[policy][k]] = v
	}
	return out
}

// Canonicalize drops empty inner maps and (when dropZero is true, as for
// transaction outputs) zero-coefficient entries.
func (m *MultiAsset[T]) Canonicalize(dropZero bool) {
	for p, inner := range m.byPolicy {
		if dropZero {
			var zero T
			for k, v := range inner {
				if v == zero {
					delete(inner, k)
					delete(m.names[p], k)
				}
			}
		}
		if len(inner) == 0 {
			delete(m.byPolicy, p)
			delete(m.names, p)
		}
	}
}

// IsEmpty reports whether no policies remain.
func (m *MultiAsset[T]) IsEmpty() bool { return len(m.byPolicy) == 0 }

type assetEntry[T AssetCoefficient] struct {
	name   AssetName
	amount T
}

// sortedPolicies returns policy ids in canonical CBOR byte order.
func (m *MultiAsset[T]) sortedPolicies() []Hash28 {
	policies := m.Policies()
	sort.Slice(policies, func(i, j int) bool {
		return cborcodec.CompareEncoded(policies[i][:], policies[j][:]) < 0
	})
	return policies
}

func (m *MultiAsset[T]) sortedAssets(policy Hash28) []assetEntry[T] {
	inner := m.byPolicy[policy]
	entries := make([]assetEntry[T], 0, len(inner))
	for k, v := range inner {
		entries = append(entries, assetEntry[T]{name: m.names[policy][k], amount: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name.Compare(entries[j].name) < 0
	})
	return entries
}

func writeCoefficient[T AssetCoefficient](w *cborcodec.Writer, v T) {
	switch x := any(v).(type) {
	case int64:
		w.WriteInt(x)
	case uint64:
		w.WriteUint(x)
	default:
		// unreachable given the AssetCoefficient constraint
		w.WriteInt(int64(v))
	}
}

// ToCbor writes the canonical `{policy_id => {asset_name => amount}}` map,
// policies and asset names each sorted by their encoded bytes.
func (m *MultiAsset[T]) ToCbor(w *cborcodec.Writer) {
	policies := m.sortedPolicies()
	w.WriteStartMap(len(policies))
	for _, p := range policies {
		p.ToCbor(w)
		assets := m.sortedAssets(p)
		inner := cborcodec.NewWriter()
		inner.WriteStartMap(len(assets))
		for _, a := range assets {
			a.name.ToCbor(inner)
			writeCoefficient(inner, a.amount)
		}
		_ = inner.WriteEnd()
		w.WriteEncodedValue(inner.Encoded())
	}
	_ = w.WriteEnd()
}

func readCoefficient[T AssetCoefficient](r *cborcodec.Reader) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int64:
		v, err := r.ReadInt()
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	default:
		v, err := r.ReadUint()
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	}
}

// MultiAssetFromCbor reads `{policy_id => {asset_name => amount}}`.
// Decode is lenient: it does not enforce sorted input or forbid zero
// coefficients; callers that need the output-side invariant call
// Canonicalize(true) explicitly.
func MultiAssetFromCbor[T AssetCoefficient](r *cborcodec.Reader) (*MultiAsset[T], error) {
	n, err := r.ReadStartMap(nil)
	if err != nil {
		return nil, err
	}
	m := NewMultiAsset[T]()
	count := n
	if count < 0 {
		count = 0
	}
	readPair := func() error {
		policy, err := Hash28FromCbor(r)
		if err != nil {
			return err
		}
		innerLen, err := r.ReadStartMap(nil)
		if err != nil {
			return err
		}
		innerCount := innerLen
		if innerCount < 0 {
			innerCount = 0
		}
		readAsset := func() error {
			name, err := AssetNameFromCbor(r)
			if err != nil {
				return err
			}
			amount, err := readCoefficient[T](r)
			if err != nil {
				return err
			}
			m.Set(policy, name, amount)
			return nil
		}
		if innerLen < 0 {
			for !r.PeekBreak() {
				if err := readAsset(); err != nil {
					return err
				}
			}
			return r.ConsumeBreak()
		}
		for i := 0; i < innerCount; i++ {
			if err := readAsset(); err != nil {
				return err
			}
		}
		return r.ReadEnd()
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
	for i := 0; i < count; i++ {
		if err := readPair(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return m, nil
}
