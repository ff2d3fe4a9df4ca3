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

package ledger

import (
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/containers"
	"github.com/cardano-forge/ledger/primitives"
)

// transaction body map keys, per the Conway-era ledger's field
// assignment. Field 10 (the old multi-asset mint-only shape) and field
// 12 (the pre-Conway collateral-return slot) are retired; they are
// never written and rejected as unknown if seen on read.
const (
	bodyKeyInputs               = 0
	bodyKeyOutputs              = 1
	bodyKeyFee                  = 2
	bodyKeyTTL                  = 3
	bodyKeyCertificates         = 4
	bodyKeyWithdrawals          = 5
	bodyKeyUpdate               = 6
	bodyKeyAuxDataHash          = 7
	bodyKeyValidityStart        = 8
	bodyKeyMint                 = 9
	bodyKeyScriptDataHash       = 11
	bodyKeyCollateral           = 13
	bodyKeyRequiredSigners      = 14
	bodyKeyNetworkId            = 15
	bodyKeyCollateralReturn     = 16
	bodyKeyTotalCollateral      = 17
	bodyKeyReferenceInputs      = 18
	bodyKeyVotingProcedures     = 19
	bodyKeyProposalProcedures   = 20
	bodyKeyCurrentTreasuryValue = 21
	bodyKeyDonation             = 22
)

// mintCoefficient is the signed per-asset coefficient a mint field
// carries (unlike an output's Value, which only ever holds positive
// amounts).
type mintCoefficient = int64

// TransactionBody holds every field the ledger places directly under a
// transaction's signed body. Optional fields are nil/zero when absent;
// ToCbor omits them from the encoded map entirely rather than writing
// an explicit null, matching the ledger's definite-length map framing.
type TransactionBody struct {
	Inputs                *containers.Set[TransactionInput]
	Outputs               []TransactionOutput
	Fee                   uint64
	TTL                   *uint64
	Certificates          []Certificate
	Withdrawals           *Withdrawals
	Update                *Update
	AuxiliaryDataHash     *primitives.Hash32
	ValidityIntervalStart *uint64
	Mint                  *primitives.MultiAsset[mintCoefficient]
	ScriptDataHash        *primitives.Hash32
	Collateral            *containers.Set[TransactionInput]
	RequiredSigners       *containers.Set[hash28Item]
	NetworkId             *primitives.NetworkId
	CollateralReturn      *TransactionOutput
	TotalCollateral       *uint64
	ReferenceInputs       *containers.Set[TransactionInput]
	VotingProcedures      *VotingProcedures
	ProposalProcedures    []ProposalProcedure
	CurrentTreasuryValue  *uint64
	Donation              *uint64
}

// NewTransactionBody returns a body with only the mandatory fields set:
// an empty input set, no outputs, and the given fee.
func NewTransactionBody(fee uint64) *TransactionBody {
	return &TransactionBody{
		Inputs: containers.NewSet[TransactionInput](),
		Fee:    fee,
	}
}

// ToCbor writes the canonically sorted transaction body map.
func (b *TransactionBody) ToCbor(w *cborcodec.Writer) {
	entries := make([]cborcodec.SortedMapEntry, 0, 20)
	add := func(key uint64, write func(*cborcodec.Writer)) {
		entries = append(entries, mapEntry(key, write))
	}

	add(bodyKeyInputs, b.Inputs.ToCbor)
	add(bodyKeyOutputs, func(w *cborcodec.Writer) {
		w.WriteStartArray(len(b.Outputs))
		for _, o := range b.Outputs {
			o.ToCbor(w)
		}
		_ = w.WriteEnd()
	})
	add(bodyKeyFee, func(w *cborcodec.Writer) { w.WriteUint(b.Fee) })
	if b.TTL != nil {
		ttl := *b.TTL
		add(bodyKeyTTL, func(w *cborcodec.Writer) { w.WriteUint(ttl) })
	}
	if len(b.Certificates) > 0 {
		add(bodyKeyCertificates, func(w *cborcodec.Writer) {
			w.WriteStartArray(len(b.Certificates))
			for _, c := range b.Certificates {
				c.ToCbor(w)
			}
			_ = w.WriteEnd()
		})
	}
	if b.Withdrawals != nil && b.Withdrawals.Len() > 0 {
		add(bodyKeyWithdrawals, b.Withdrawals.ToCbor)
	}
	if b.Update != nil {
		add(bodyKeyUpdate, b.Update.ToCbor)
	}
	if b.AuxiliaryDataHash != nil {
		h := *b.AuxiliaryDataHash
		add(bodyKeyAuxDataHash, h.ToCbor)
	}
	if b.ValidityIntervalStart != nil {
		v := *b.ValidityIntervalStart
		add(bodyKeyValidityStart, func(w *cborcodec.Writer) { w.WriteUint(v) })
	}
	if b.Mint != nil && !b.Mint.IsEmpty() {
		add(bodyKeyMint, b.Mint.ToCbor)
	}
	if b.ScriptDataHash != nil {
		h := *b.ScriptDataHash
		add(bodyKeyScriptDataHash, h.ToCbor)
	}
	if b.Collateral != nil && b.Collateral.Len() > 0 {
		add(bodyKeyCollateral, b.Collateral.ToCbor)
	}
	if b.RequiredSigners != nil && b.RequiredSigners.Len() > 0 {
		add(bodyKeyRequiredSigners, b.RequiredSigners.ToCbor)
	}
	if b.NetworkId != nil {
		n := *b.NetworkId
		add(bodyKeyNetworkId, n.ToCbor)
	}
	if b.CollateralReturn != nil {
		ret := *b.CollateralReturn
		add(bodyKeyCollateralReturn, ret.ToCbor)
	}
	if b.TotalCollateral != nil {
		v := *b.TotalCollateral
		add(bodyKeyTotalCollateral, func(w *cborcodec.Writer) { w.WriteUint(v) })
	}
	if b.ReferenceInputs != nil && b.ReferenceInputs.Len() > 0 {
		add(bodyKeyReferenceInputs, b.ReferenceInputs.ToCbor)
	}
	if b.VotingProcedures != nil {
		add(bodyKeyVotingProcedures, b.VotingProcedures.ToCbor)
	}
	if len(b.ProposalProcedures) > 0 {
		add(bodyKeyProposalProcedures, func(w *cborcodec.Writer) {
			w.WriteStartArray(len(b.ProposalProcedures))
			for _, p := range b.ProposalProcedures {
				p.ToCbor(w)
			}
			_ = w.WriteEnd()
		})
	}
	if b.CurrentTreasuryValue != nil {
		v := *b.CurrentTreasuryValue
		add(bodyKeyCurrentTreasuryValue, func(w *cborcodec.Writer) { w.WriteUint(v) })
	}
	if b.Donation != nil {
		v := *b.Donation
		add(bodyKeyDonation, func(w *cborcodec.Writer) { w.WriteUint(v) })
	}

	w.WriteSortedMap(entries)
}

// TransactionBodyFromCbor reads a transaction body map.
func TransactionBodyFromCbor(r *cborcodec.Reader) (*TransactionBody, error) {
	b := &TransactionBody{}
	n, err := r.ReadStartMap(nil)
	if err != nil {
		return nil, err
	}
	readEntry := func() error {
		key, err := r.ReadUint()
		if err != nil {
			return err
		}
		switch key {
		case bodyKeyInputs:
			s, err := containers.SetFromCbor[TransactionInput](r, TransactionInputFromCbor)
			if err != nil {
				return err
			}
			b.Inputs = s
		case bodyKeyOutputs:
			m, err := r.ReadStartArray(nil)
			if err != nil {
				return err
			}
			outs, err := readOutputArray(r, m)
			if err != nil {
				return err
			}
			b.Outputs = outs
		case bodyKeyFee:
			fee, err := r.ReadUint()
			if err != nil {
				return err
			}
			b.Fee = fee
		case bodyKeyTTL:
			v, err := r.ReadUint()
			if err != nil {
				return err
			}
			b.TTL = &v
		case bodyKeyCertificates:
			m, err := r.ReadStartArray(nil)
			if err != nil {
				return err
			}
			certs, err := readCertificateArray(r, m)
			if err != nil {
				return err
			}
			b.Certificates = certs
		case bodyKeyWithdrawals:
			w, err := WithdrawalsFromCbor(r)
			if err != nil {
				return err
			}
			b.Withdrawals = w
		case bodyKeyUpdate:
			u, err := UpdateFromCbor(r)
			if err != nil {
				return err
			}
			b.Update = u
		case bodyKeyAuxDataHash:
			h, err := primitives.Hash32FromCbor(r)
			if err != nil {
				return err
			}
			b.AuxiliaryDataHash = &h
		case bodyKeyValidityStart:
			v, err := r.ReadUint()
			if err != nil {
				return err
			}
			b.ValidityIntervalStart = &v
		case bodyKeyMint:
			m, err := primitives.MultiAssetFromCbor[mintCoefficient](r)
			if err != nil {
				return err
			}
			b.Mint = m
		case bodyKeyScriptDataHash:
			h, err := primitives.Hash32FromCbor(r)
			if err != nil {
				return err
			}
			b.ScriptDataHash = &h
		case bodyKeyCollateral:
			s, err := containers.SetFromCbor[TransactionInput](r, TransactionInputFromCbor)
			if err != nil {
				return err
			}
			b.Collateral = s
		case bodyKeyRequiredSigners:
			s, err := containers.SetFromCbor[hash28Item](r, hash28ItemFromCbor)
			if err != nil {
				return err
			}
			b.RequiredSigners = s
		case bodyKeyNetworkId:
			nid, err := primitives.NetworkIdFromCbor(r)
			if err != nil {
				return err
			}
			b.NetworkId = &nid
		case bodyKeyCollateralReturn:
			o, err := TransactionOutputFromCbor(r)
			if err != nil {
				return err
			}
			b.CollateralReturn = &o
		case bodyKeyTotalCollateral:
			v, err := r.ReadUint()
			if err != nil {
				return err
			}
			b.TotalCollateral = &v
		case bodyKeyReferenceInputs:
			s, err := containers.SetFromCbor[TransactionInput](r, TransactionInputFromCbor)
			if err != nil {
				return err
			}
			b.ReferenceInputs = s
		case bodyKeyVotingProcedures:
			vp, err := VotingProceduresFromCbor(r)
			if err != nil {
				return err
			}
			b.VotingProcedures = vp
		case bodyKeyProposalProcedures:
			m, err := r.ReadStartArray(nil)
			if err != nil {
				return err
			}
			props, err := readProposalArray(r, m)
			if err != nil {
				return err
			}
			b.ProposalProcedures = props
		case bodyKeyCurrentTreasuryValue:
			v, err := r.ReadUint()
			if err != nil {
				return err
			}
			b.CurrentTreasuryValue = &v
		case bodyKeyDonation:
			v, err := r.ReadUint()
			if err != nil {
				return err
			}
			if v == 0 {
				return fmt.Errorf("%w: donation must be positive", cborcodec.ErrInvariantViolation)
			}
			b.Donation = &v
		default:
			return fmt.Errorf("%w: transaction body map key %d", cborcodec.ErrUnknownDiscriminator, key)
		}
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := readEntry(); err != nil {
				return nil, err
			}
		}
		if err := r.ConsumeBreak(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < n; i++ {
			if err := readEntry(); err != nil {
				return nil, err
			}
		}
		if err := r.ReadEnd(); err != nil {
			return nil, err
		}
	}
	if b.Inputs == nil {
		return nil, fmt.Errorf("%w: transaction body missing inputs", cborcodec.ErrInvariantViolation)
	}
	return b, nil
}

func readOutputArray(r *cborcodec.Reader, n int) ([]TransactionOutput, error) {
	var out []TransactionOutput
	readOne := func() error {
		o, err := TransactionOutputFromCbor(r)
		if err != nil {
			return err
		}
		out = append(out, o)
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := readOne(); err != nil {
				return nil, err
			}
		}
		return out, r.ConsumeBreak()
	}
	for i := 0; i < n; i++ {
		if err := readOne(); err != nil {
			return nil, err
		}
	}
	return out, r.ReadEnd()
}

func readCertificateArray(r *cborcodec.Reader, n int) ([]Certificate, error) {
	var out []Certificate
	readOne := func() error {
		c, err := CertificateFromCbor(r)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := readOne(); err != nil {
				return nil, err
			}
		}
		return out, r.ConsumeBreak()
	}
	for i := 0; i < n; i++ {
		if err := readOne(); err != nil {
			return nil, err
		}
	}
	return out, r.ReadEnd()
}

func readProposalArray(r *cborcodec.Reader, n int) ([]ProposalProcedure, error) {
	var out []ProposalProcedure
	readOne := func() error {
		p, err := ProposalProcedureFromCbor(r)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	}
	if n < 0 {
		for !r.PeekBreak() {
			if err := readOne(); err != nil {
				return nil, err
			}
		}
		return out, r.ConsumeBreak()
	}
	for i := 0; i < n; i++ {
		if err := readOne(); err != nil {
			return nil, err
		}
	}
	return out, r.ReadEnd()
}

// Transaction is the top-level wire object: a signed body, the witness
// set authorizing it, a validity flag (Allegra+ lets block producers
// include transactions marked invalid, e.g. failed Plutus scripts, to
// still collect collateral), and optional auxiliary data.
type Transaction struct {
	Body      *TransactionBody
	Witnesses *WitnessSet
	IsValid   bool
	Auxiliary *AuxiliaryData
}

// NewTransaction constructs a valid Transaction with no auxiliary data.
func NewTransaction(body *TransactionBody, witnesses *WitnessSet) *Transaction {
	return &Transaction{Body: body, Witnesses: witnesses, IsValid: true}
}

// ToCbor writes `[body, witness_set, is_valid, auxiliary_data_or_null]`.
func (t *Transaction) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(4)
	t.Body.ToCbor(w)
	t.Witnesses.ToCbor(w)
	w.WriteBool(t.IsValid)
	if t.Auxiliary != nil {
		t.Auxiliary.ToCbor(w)
	} else {
		w.WriteNull()
	}
	_ = w.WriteEnd()
}

// TransactionFromCbor reads `[body, witness_set, is_valid, auxiliary_data_or_null]`.
func TransactionFromCbor(r *cborcodec.Reader) (*Transaction, error) {
	four := 4
	if _, err := r.ReadStartArray(&four); err != nil {
		return nil, err
	}
	body, err := TransactionBodyFromCbor(r)
	if err != nil {
		return nil, err
	}
	witnesses, err := WitnessSetFromCbor(r)
	if err != nil {
		return nil, err
	}
	valid, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	t := &Transaction{Body: body, Witnesses: witnesses, IsValid: valid}
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}
	if state.Major == cborcodec.MajorSimple {
		if err := r.ReadNull(); err != nil {
			return nil, err
		}
	} else {
		aux, err := AuxiliaryDataFromCbor(r)
		if err != nil {
			return nil, err
		}
		t.Auxiliary = aux
	}
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return t, nil
}

// ScriptDataHasher computes a 32-byte digest (Blake2b-256 in the real
// ledger) over the bytes a script-data-hash protects.
type ScriptDataHasher func([]byte) primitives.Hash32

// ComputeScriptDataHash implements the script-data-hash rule: the hash
// is absent entirely when the transaction carries no redeemers, no
// Plutus data, and the cost models carry no Plutus language views.
// Otherwise it covers encode(redeemers) || encode(datums) ||
// language_views, with either of the first two segments omitted (not
// emitted as an empty CBOR array) when that collection is empty.
func ComputeScriptDataHash(redeemers []Redeemer, datums *containers.Set[plutusDataItem], costModels *primitives.CostModels, hash ScriptDataHasher) (*primitives.Hash32, bool) {
	noDatums := datums == nil || datums.Len() == 0
	noLanguages := costModels == nil || len(costModels.Languages()) == 0
	if len(redeemers) == 0 && noDatums && noLanguages {
		return nil, false
	}

	var buf []byte
	if len(redeemers) > 0 {
		w := cborcodec.NewWriter()
		sorted := SortRedeemers(redeemers)
		w.WriteStartArray(len(sorted))
		for _, r := range sorted {
			r.ToCbor(w)
		}
		_ = w.WriteEnd()
		buf = append(buf, w.Encoded()...)
	}
	if !noDatums {
		w := cborcodec.NewWriter()
		datums.ToCbor(w)
		buf = append(buf, w.Encoded()...)
	}
	if !noLanguages {
		buf = append(buf, costModels.LanguageViewsEncoding()...)
	}
	h := hash(buf)
	return &h, true
}
