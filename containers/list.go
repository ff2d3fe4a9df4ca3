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

import "github.com/cardano-forge/ledger/cborcodec"

// List preserves insertion order and performs no deduplication; it
// encodes as a plain definite-length CBOR array.
type List[T Encodable] struct {
	items []T
}

// NewList returns an empty List.
func NewList[T Encodable]() *List[T] { return &List[T]{} }

// Append adds v to the end of the list.
func (l *List[T]) Append(v T) { l.items = append(l.items, v) }

// Items returns the members in order.
func (l *List[T]) Items() []T { return l.items }

// Len returns the number of members.
func (l *List[T]) Len() int { return len(l.items) }

// ToCbor writes the list as a definite-length array in insertion order.
func (l *List[T]) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(len(l.items))
	for _, it := range l.items {
		it.ToCbor(w)
	}
	_ = w.WriteEnd()
}

// ListFromCbor decodes a (possibly indefinite, in lenient mode) array of
// T using decodeItem for each member.
func ListFromCbor[T Encodable](r *cborcodec.Reader, decodeItem func(*cborcodec.Reader) (T, error)) (*List[T], error) {
	l := NewList[T]()
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		for !r.PeekBreak() {
			item, err := decodeItem(r)
			if err != nil {
				return nil, err
			}
			l.items = append(l.items, item)
		}
		if err := r.ConsumeBreak(); err != nil {
			return nil, err
		}
		return l, nil
	}
	for i := 0; i < n; i++ {
		item, err := decodeItem(r)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, item)
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return l, nil
}
