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

// ErrInsufficientFunds is returned by Value.Subtract when any asset
// (including the coin component) would underflow.
var ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", cborcodec.ErrInvariantViolation)

// Value is a transaction output's ada-plus-native-assets amount. Outputs
// carry unsigned coefficients; Value's MultiAsset is therefore
// uint64-coefficiented — mint amounts live in the separate signed
// MultiAsset[int64] carried directly on the transaction body.
type Value struct {
	Coin   uint64
	Assets *MultiAsset[uint64]
}

// NewSimpleValue returns a coin-only value.
func NewSimpleValue(coin uint64) Value {
	return Value{Coin: coin, Assets: NewMultiAsset[uint64]()}
}

// NewValue returns a value with both coin and multi-asset components.
func NewValue(coin uint64, assets *MultiAsset[uint64]) Value {
	if assets == nil {
		assets = NewMultiAsset[uint64]()
	}
	return Value{Coin: coin, Assets: assets}
}

// ToCbor writes a bare `coin` integer when Assets is empty, else
// `[coin, assets]`.
func (v Value) ToCbor(w *cborcodec.Writer) {
	if v.Assets == nil || v.Assets.IsEmpty() {
		w.WriteUint(v.Coin)
		return
	}
	w.WriteStartArray(2)
	w.WriteUint(v.Coin)
	v.Assets.ToCbor(w)
	_ = w.WriteEnd()
}

// ValueFromCbor reads either a bare coin integer or `[coin, assets]`.
func ValueFromCbor(r *cborcodec.Reader) (Value, error) {
	state, err := r.PeekState()
	if err != nil {
		return Value{}, err
	}
	if state.Major == cborcodec.MajorUnsignedInt {
		coin, err := r.ReadUint()
		if err != nil {
			return Value{}, err
		}
		return NewSimpleValue(coin), nil
	}
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return Value{}, err
	}
	coin, err := r.ReadUint()
	if err != nil {
		return Value{}, err
	}
	assets, err := MultiAssetFromCbor[uint64](r)
	if err != nil {
		return Value{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return Value{}, err
	}
	return NewValue(coin, assets), nil
}

// cloneMultiAsset returns a deep copy of m's policy/name/amount entries in
// a fresh MultiAsset, so the caller can mutate the copy (e.g. via
// Canonicalize) without affecting m.
func cloneMultiAsset[T AssetCoefficient](m *MultiAsset[T]) *MultiAsset[T] {
	out := NewMultiAsset[T]()
	if m == nil {
		return out
	}
	for _, policy := range m.Policies() {
		for name, amount := range m.Assets(policy) {
			out.Set(policy, name, amount)
		}
	}
	return out
}

// Add returns the pointwise sum of v and other (the Value monoid's
// operation; NewSimpleValue(0) is the identity).
func (v Value) Add(other Value) Value {
	out := NewSimpleValue(v.Coin + other.Coin)
	for _, policy := range v.Assets.Policies() {
		for name, amount := range v.Assets.Assets(policy) {
			existing, _ := out.Assets.Get(policy, name)
			out.Assets.Set(policy, name, existing+amount)
		}
	}
	for _, policy := range other.Assets.Policies() {
		for name, amount := range other.Assets.Assets(policy) {
			existing, _ := out.Assets.Get(policy, name)
			out.Assets.Set(policy, name, existing+amount)
		}
	}
	out.Assets.Canonicalize(true)
	return out
}

// Subtract returns v - other, failing with ErrInsufficientFunds if the
// coin amount or any asset amount would underflow.
func (v Value) Subtract(other Value) (Value, error) {
	if other.Coin > v.Coin {
		return Value{}, fmt.Errorf("%w: coin %d - %d", ErrInsufficientFunds, v.Coin, other.Coin)
	}
	out := NewSimpleValue(v.Coin - other.Coin)
	for _, policy := range v.Assets.Policies() {
		for name, amount := range v.Assets.Assets(policy) {
			out.Assets.Set(policy, name, amount)
		}
	}
	for _, policy := range other.Assets.Policies() {
		for name, amount := range other.Assets.Assets(policy) {
			existing, _ := out.Assets.Get(policy, name)
			if amount > existing {
				return Value{}, fmt.Errorf("%w: asset %s.%s %d - %d", ErrInsufficientFunds, policy, name, existing, amount)
			}
			out.Assets.Set(policy, name, existing-amount)
		}
	}
	out.Assets.Canonicalize(true)
	return out, nil
}

// Equal reports structural equality after canonicalization (empty inner
// maps and zero entries removed on both sides). Canonicalization runs
// against fresh copies of the asset maps, never v's or other's own, so
// calling Equal never mutates either operand.
func (v Value) Equal(other Value) bool {
	vAssets := cloneMultiAsset(v.Assets)
	oAssets := cloneMultiAsset(other.Assets)
	vAssets.Canonicalize(true)
	oAssets.Canonicalize(true)
	if v.Coin != other.Coin {
		return false
	}
	vp := vAssets.Policies()
	op := oAssets.Policies()
	if len(vp) != len(op) {
		return false
	}
	for _, p := range vp {
		va := vAssets.Assets(p)
		oa := oAssets.Assets(p)
		if len(va) != len(oa) {
			return false
		}
		for name, amount := range va {
			oamount, ok := oa[name]
			if !ok || oamount != amount {
				return false
			}
		}
	}
	return true
}
