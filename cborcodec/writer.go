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

package cborcodec

import (
	"encoding/hex"
	"math/big"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// Writer emits deterministic (minimum-length-header, definite-length,
// sorted-key) CBOR bytes. The zero value is not usable; use NewWriter.
type Writer struct {
	buf         []byte
	frames      []writeFrame
	lastErr     error
}

type writeFrame struct {
	kind      frameKind
	declared  int
	written   int
}

// NewWriter returns an empty Writer ready to accept items.
func NewWriter() *Writer {
	return &Writer{}
}

// Encoded returns the bytes written so far. The writer must have no open
// array/map frames (all declared lengths fulfilled); Finalize enforces
// this explicitly.
func (w *Writer) Encoded() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// EncodedHex returns Encoded() as a lowercase hex string.
func (w *Writer) EncodedHex() string {
	return hex.EncodeToString(w.buf)
}

// Finalize verifies every opened array/map frame received exactly its
// declared number of items and returns InvalidOperation otherwise.
func (w *Writer) Finalize() error {
	if len(w.frames) != 0 {
		return w.fail(wrap(ErrInvalidOperation, "finalize with %d unclosed frame(s)", len(w.frames)))
	}
	return nil
}

// LastError returns the most recent encode failure, or nil.
func (w *Writer) LastError() error { return w.lastErr }

func (w *Writer) fail(err error) error {
	w.lastErr = err
	return err
}

func (w *Writer) noteItem() {
	if len(w.frames) == 0 {
		return
	}
	top := &w.frames[len(w.frames)-1]
	top.written++
}

func writeHeader(buf []byte, major MajorType, value uint64) []byte {
	m := byte(major) << 5
	switch {
	case value < 24:
		return append(buf, m|byte(value))
	case value <= 0xff:
		return append(buf, m|24, byte(value))
	case value <= 0xffff:
		return append(buf, m|25, byte(value>>8), byte(value))
	case value <= 0xffffffff:
		return append(buf, m|26, byte(value>>24), byte(value>>16), byte(value>>8), byte(value))
	default:
		return append(buf, m|27,
			byte(value>>56), byte(value>>48), byte(value>>40), byte(value>>32),
			byte(value>>24), byte(value>>16), byte(value>>8), byte(value))
	}
}

// WriteUint writes a non-negative integer as major type 0 with a
// minimum-length header.
func (w *Writer) WriteUint(v uint64) {
	w.buf = writeHeader(w.buf, MajorUnsignedInt, v)
	w.noteItem()
}

// WriteInt writes a signed integer, choosing major type 0 or 1.
func (w *Writer) WriteInt(v int64) {
	if v >= 0 {
		w.WriteUint(uint64(v))
		return
	}
	w.buf = writeHeader(w.buf, MajorNegativeInt, uint64(-1-v))
	w.noteItem()
}

// WriteBigInt writes an arbitrary-precision integer. Values within the
// native CBOR integer range (±2^64) are written as plain integers;
// outside that range it is written as a tag-2 (positive) or tag-3
// (negative) bignum byte string, per RFC 8949 §3.4.3. The bignum framing
// itself is delegated to fxamacker/cbor's big.Int support rather than
// hand-rolled, since tag-2/3 encoding has no deterministic-CBOR-specific
// wrinkle the rest of this package needs to control.
func (w *Writer) WriteBigInt(v *big.Int) {
	if v.IsInt64() {
		w.WriteInt(v.Int64())
		return
	}
	if v.Sign() >= 0 && v.IsUint64() {
		w.WriteUint(v.Uint64())
		return
	}
	raw, err := cbor.Marshal(v)
	if err != nil {
		w.fail(wrap(ErrInvalidOperation, "encode bignum: %s", err))
		return
	}
	w.WriteEncodedValue(raw)
}

// WriteBool writes a CBOR boolean simple value.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 0xe0|simpleTrue)
	} else {
		w.buf = append(w.buf, 0xe0|simpleFalse)
	}
	w.noteItem()
}

// WriteNull writes the CBOR null simple value.
func (w *Writer) WriteNull() {
	w.buf = append(w.buf, 0xe0|simpleNull)
	w.noteItem()
}

// WriteByteString writes a definite-length CBOR byte string.
func (w *Writer) WriteByteString(b []byte) {
	w.buf = writeHeader(w.buf, MajorByteString, uint64(len(b)))
	w.buf = append(w.buf, b...)
	w.noteItem()
}

// WriteTextString writes a definite-length CBOR UTF-8 text string.
func (w *Writer) WriteTextString(s string) {
	w.buf = writeHeader(w.buf, MajorTextString, uint64(len(s)))
	w.buf = append(w.buf, s...)
	w.noteItem()
}

// WriteStartArray opens a definite-length array of len items. Each
// subsequent Write call until the matching count is reached (or ReadEnd
// semantics for symmetry with the reader — the writer tracks this
// implicitly) counts toward the declared length; Finalize checks it.
func (w *Writer) WriteStartArray(length int) {
	w.buf = writeHeader(w.buf, MajorArray, uint64(length))
	w.noteItem()
	w.frames = append(w.frames, writeFrame{kind: frameArray, declared: length})
}

// WriteStartMap opens a definite-length map of length key/value pairs.
func (w *Writer) WriteStartMap(length int) {
	w.buf = writeHeader(w.buf, MajorMap, uint64(length))
	w.noteItem()
	w.frames = append(w.frames, writeFrame{kind: frameMap, declared: length})
}

// WriteEnd closes the current array/map frame, verifying the declared
// item count was met exactly.
func (w *Writer) WriteEnd() error {
	if len(w.frames) == 0 {
		return w.fail(wrap(ErrInvalidOperation, "write_end with no open frame"))
	}
	top := w.frames[len(w.frames)-1]
	want := top.declared
	if top.kind == frameMap {
		want *= 2
	}
	if top.written != want {
		return w.fail(wrap(ErrInvalidOperation,
			"frame declared %d items but received %d", want, top.written))
	}
	w.frames = w.frames[:len(w.frames)-1]
	return nil
}

// WriteTag writes a tag header; the caller must follow with the tagged
// value.
func (w *Writer) WriteTag(tag uint64) {
	w.buf = writeHeader(w.buf, MajorTag, tag)
}

// WriteEncodedValue appends a pre-encoded CBOR item verbatim, for maps or
// sets whose members are already canonically encoded elsewhere (e.g.
// language-views cost arrays).
func (w *Writer) WriteEncodedValue(raw []byte) {
	w.buf = append(w.buf, raw...)
	w.noteItem()
}

// SortedMapEntry is one key/value pair whose CBOR encodings have already
// been produced, pending canonical sort-and-emit.
type SortedMapEntry struct {
	Key   []byte
	Value []byte
}

// WriteSortedMap lexicographically sorts entries by their encoded key
// bytes (canonical CBOR map key order) and emits them as a definite-length
// map. It does not deduplicate; callers must ensure key uniqueness
// upstream (DuplicateKey is a decode-time concern, not an encode-time one
// here, since the domain's Map[K,V] container enforces it on insertion).
func (w *Writer) WriteSortedMap(entries []SortedMapEntry) {
	sorted := make([]SortedMapEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return compareBytes(sorted[i].Key, sorted[j].Key) < 0
	})
	w.buf = writeHeader(w.buf, MajorMap, uint64(len(sorted)))
	for _, e := range sorted {
		w.buf = append(w.buf, e.Key...)
		w.buf = append(w.buf, e.Value...)
	}
	w.noteItem()
}

// compareBytes is the canonical CBOR byte-string ordering: bytewise
// lexicographic, with a proper prefix ordered before the longer string —
// used to sort already-encoded map keys and set members.
func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// CompareEncoded exposes the canonical byte-string ordering used for
// sorting map keys and set members, for callers (containers.Set,
// containers.Map) that need to sort by an item's own encoded form.
func CompareEncoded(a, b []byte) int { return compareBytes(a, b) }
