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

	"github.com/cardano-forge/ledger/cborcodec"
)

// unitIntervalTag is the CBOR tag (30, "rational number") the ledger uses
// for UnitInterval, including the ex-unit prices in exunits.go.
const unitIntervalTag = 30

// UnitInterval is a rational in [0,1], encoded under CBOR tag 30. Pool
// margins and the Alonzo+ ex-unit prices are both UnitInterval-shaped.
type UnitInterval struct {
	Num uint64
	Den uint64
}

// NewUnitInterval validates Den != 0 and Num <= Den before constructing.
func NewUnitInterval(num, den uint64) (UnitInterval, error) {
	if den == 0 {
		return UnitInterval{}, fmt.Errorf("%w: unit interval denominator must not be zero", cborcodec.ErrInvariantViolation)
	}
	if num > den {
		return UnitInterval{}, fmt.Errorf("%w: unit interval numerator %d exceeds denominator %d", cborcodec.ErrInvariantViolation, num, den)
	}
	return UnitInterval{Num: num, Den: den}, nil
}

// ToFloat64 converts the ratio to an approximate double, e.g. for display.
func (u UnitInterval) ToFloat64() float64 {
	if u.Den == 0 {
		return 0
	}
	return float64(u.Num) / float64(u.Den)
}

// ToCbor writes `tag 30 [num, den]`.
func (u UnitInterval) ToCbor(w *cborcodec.Writer) {
	w.WriteTag(unitIntervalTag)
	w.WriteStartArray(2)
	w.WriteUint(u.Num)
	w.WriteUint(u.Den)
	_ = w.WriteEnd()
}

// UnitIntervalFromCbor reads `tag 30 [num, den]` and validates invariants.
func UnitIntervalFromCbor(r *cborcodec.Reader) (UnitInterval, error) {
	tag, err := r.ReadTag()
	if err != nil {
		return UnitInterval{}, err
	}
	if tag != unitIntervalTag {
		return UnitInterval{}, fmt.Errorf("%w: expected tag %d for unit interval, got %d", cborcodec.ErrMalformedTag, unitIntervalTag, tag)
	}
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return UnitInterval{}, err
	}
	num, err := r.ReadUint()
	if err != nil {
		return UnitInterval{}, err
	}
	den, err := r.ReadUint()
	if err != nil {
		return UnitInterval{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return UnitInterval{}, err
	}
	return NewUnitInterval(num, den)
}
