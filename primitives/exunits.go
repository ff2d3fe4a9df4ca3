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

import "github.com/cardano-forge/ledger/cborcodec"

// ExUnits is a Plutus script execution budget.
type ExUnits struct {
	Mem   uint64
	Steps uint64
}

// ToCbor writes `[mem, steps]`.
func (e ExUnits) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteUint(e.Mem)
	w.WriteUint(e.Steps)
	_ = w.WriteEnd()
}

// ExUnitsFromCbor reads `[mem, steps]`.
func ExUnitsFromCbor(r *cborcodec.Reader) (ExUnits, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return ExUnits{}, err
	}
	mem, err := r.ReadUint()
	if err != nil {
		return ExUnits{}, err
	}
	steps, err := r.ReadUint()
	if err != nil {
		return ExUnits{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return ExUnits{}, err
	}
	return ExUnits{Mem: mem, Steps: steps}, nil
}

// ExUnitPrices prices a unit of memory and a unit of execution step, each
// as a UnitInterval (tag 30 rational).
type ExUnitPrices struct {
	MemPrice   UnitInterval
	StepsPrice UnitInterval
}

// ToCbor writes `[mem_price, steps_price]`.
func (e ExUnitPrices) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	e.MemPrice.ToCbor(w)
	e.StepsPrice.ToCbor(w)
	_ = w.WriteEnd()
}

// ExUnitPricesFromCbor reads `[mem_price, steps_price]`.
func ExUnitPricesFromCbor(r *cborcodec.Reader) (ExUnitPrices, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return ExUnitPrices{}, err
	}
	mem, err := UnitIntervalFromCbor(r)
	if err != nil {
		return ExUnitPrices{}, err
	}
	steps, err := UnitIntervalFromCbor(r)
	if err != nil {
		return ExUnitPrices{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return ExUnitPrices{}, err
	}
	return ExUnitPrices{MemPrice: mem, StepsPrice: steps}, nil
}
