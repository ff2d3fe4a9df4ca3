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

// CertificateKind is the ledger's own CBOR discriminator for the closed
// sum of certificate variants.
type CertificateKind int

const (
	CertStakeRegistrationLegacy CertificateKind = iota
	CertStakeDeregistrationLegacy
	CertStakeDelegation
	CertPoolRegistration
	CertPoolRetirement
	_ // 5: genesis key delegation, unused post-Shelley (not modeled)
	CertMir
	CertStakeRegistration
	CertStakeDeregistration
	CertVoteDelegation
	CertStakeAndVoteDelegation
	_ // 11: stake_reg_deleg_cert, not modeled
	_ // 12: vote_reg_deleg_cert, not modeled
	_ // 13: stake_vote_reg_deleg_cert, not modeled
	CertCommitteeHotAuth
	CertCommitteeColdResign
	CertDRepRegistration
	CertDRepUnregistration
	CertDRepUpdate
)

// DRepKind discriminates a DRep target: a specific credential, the
// "always abstain" predefined choice, or "always no confidence".
type DRepKind int

const (
	DRepCredential DRepKind = iota
	DRepAlwaysAbstain
	DRepAlwaysNoConfidence
)

// DRep identifies a delegated representative for vote delegation.
type DRep struct {
	Kind       DRepKind
	Credential primitives.Credential
}

// MirPot discriminates the legacy MIR certificate's source pot.
type MirPot int

const (
	MirReserves MirPot = iota
	MirTreasury
)

// MirTarget is the legacy MIR certificate's 2-way split: either a flat
// transfer to the other pot, or a per-credential distribution.
type MirTarget struct {
	ToOtherPot  *uint64
	ToStakeCreds map[string]mirCredAmount // keyed by encoded credential bytes, preserves Credential via value
}

type mirCredAmount struct {
	Cred   primitives.Credential
	Amount int64
}

// Certificate is the closed sum of the 15 certificate kinds modeled
// above; discriminators 5 and 11-13 are not modeled and fail to decode.
type Certificate struct {
	Kind CertificateKind

	// Stake (de)registration, delegation
	StakeCredential primitives.Credential
	Deposit         uint64 // post-Conway deposit-bearing forms only
	PoolKeyHash     primitives.Hash28
	DRep            DRep

	// Pool registration/retirement
	Pool        PoolParams
	RetireEpoch uint64

	// MIR
	MirPot    MirPot
	MirTarget MirTarget

	// Committee hot auth / cold resign / DRep registration/update
	ColdCredential primitives.Credential
	HotCredential  primitives.Credential
	Anchor         *primitives.Anchor
}

// NewStakeRegistrationLegacyCert constructs a pre-Conway (no explicit
// deposit) stake registration certificate.
func NewStakeRegistrationLegacyCert(cred primitives.Credential) Certificate {
	return Certificate{Kind: CertStakeRegistrationLegacy, StakeCredential: cred}
}

// NewStakeDeregistrationLegacyCert constructs a pre-Conway stake
// deregistration certificate.
func NewStakeDeregistrationLegacyCert(cred primitives.Credential) Certificate {
	return Certificate{Kind: CertStakeDeregistrationLegacy, StakeCredential: cred}
}

// NewStakeRegistrationCert constructs a Conway+ stake registration
// certificate carrying its explicit deposit amount.
func NewStakeRegistrationCert(cred primitives.Credential, deposit uint64) Certificate {
	return Certificate{Kind: CertStakeRegistration, StakeCredential: cred, Deposit: deposit}
}

// NewStakeDeregistrationCert constructs a Conway+ stake deregistration
// certificate carrying the deposit being refunded.
func NewStakeDeregistrationCert(cred primitives.Credential, deposit uint64) Certificate {
	return Certificate{Kind: CertStakeDeregistration, StakeCredential: cred, Deposit: deposit}
}

// NewStakeDelegationCert constructs a stake delegation certificate.
func NewStakeDelegationCert(cred primitives.Credential, poolKeyHash primitives.Hash28) Certificate {
	return Certificate{Kind: CertStakeDelegation, StakeCredential: cred, PoolKeyHash: poolKeyHash}
}

// NewStakeAndVoteDelegationCert constructs a combined stake-and-vote
// delegation certificate.
func NewStakeAndVoteDelegationCert(cred primitives.Credential, poolKeyHash primitives.Hash28, drep DRep) Certificate {
	return Certificate{Kind: CertStakeAndVoteDelegation, StakeCredential: cred, PoolKeyHash: poolKeyHash, DRep: drep}
}

// NewVoteDelegationCert constructs a vote-only delegation certificate.
func NewVoteDelegationCert(cred primitives.Credential, drep DRep) Certificate {
	return Certificate{Kind: CertVoteDelegation, StakeCredential: cred, DRep: drep}
}

// NewPoolRegistrationCert constructs a pool registration certificate.
func NewPoolRegistrationCert(pool PoolParams) Certificate {
	return Certificate{Kind: CertPoolRegistration, Pool: pool}
}

// NewPoolRetirementCert constructs a pool retirement certificate
// announcing the epoch the pool will leave the active set.
func NewPoolRetirementCert(poolKeyHash primitives.Hash28, retireEpoch uint64) Certificate {
	return Certificate{Kind: CertPoolRetirement, PoolKeyHash: poolKeyHash, RetireEpoch: retireEpoch}
}

// NewMirToOtherPotCert constructs a legacy MIR certificate transferring a
// flat amount between the reserves and treasury pots.
func NewMirToOtherPotCert(pot MirPot, amount uint64) Certificate {
	return Certificate{Kind: CertMir, MirPot: pot, MirTarget: MirTarget{ToOtherPot: &amount}}
}

// NewMirToStakeCredsCert constructs a legacy MIR certificate distributing
// (positive) or withdrawing (negative) amounts from the named pot to a
// set of stake credentials.
func NewMirToStakeCredsCert(pot MirPot, amounts map[primitives.Credential]int64) Certificate {
	target := MirTarget{ToStakeCreds: make(map[string]mirCredAmount, len(amounts))}
	for cred, amount := range amounts {
		target.ToStakeCreds[encodedCredKey(cred)] = mirCredAmount{Cred: cred, Amount: amount}
	}
	return Certificate{Kind: CertMir, MirPot: pot, MirTarget: target}
}

func encodedCredKey(c primitives.Credential) string {
	w := cborcodec.NewWriter()
	c.ToCbor(w)
	return string(w.Encoded())
}

// NewDRepRegistrationCert constructs a DRep registration certificate.
func NewDRepRegistrationCert(cred primitives.Credential, deposit uint64, anchor *primitives.Anchor) Certificate {
	return Certificate{Kind: CertDRepRegistration, StakeCredential: cred, Deposit: deposit, Anchor: anchor}
}

// NewDRepUnregistrationCert constructs a DRep unregistration certificate
// refunding the deposit.
func NewDRepUnregistrationCert(cred primitives.Credential, deposit uint64) Certificate {
	return Certificate{Kind: CertDRepUnregistration, StakeCredential: cred, Deposit: deposit}
}

// NewDRepUpdateCert constructs a DRep metadata-anchor update certificate.
func NewDRepUpdateCert(cred primitives.Credential, anchor *primitives.Anchor) Certificate {
	return Certificate{Kind: CertDRepUpdate, StakeCredential: cred, Anchor: anchor}
}

// NewCommitteeHotAuthCert authorizes a hot credential to vote on behalf
// of a cold (constitutional committee) credential.
func NewCommitteeHotAuthCert(cold, hot primitives.Credential) Certificate {
	return Certificate{Kind: CertCommitteeHotAuth, ColdCredential: cold, HotCredential: hot}
}

// NewCommitteeColdResignCert resigns a committee member's cold
// credential, optionally explaining why via an anchor.
func NewCommitteeColdResignCert(cold primitives.Credential, anchor *primitives.Anchor) Certificate {
	return Certificate{Kind: CertCommitteeColdResign, ColdCredential: cold, Anchor: anchor}
}

// ToCbor writes `[discriminator, ...]` per variant.
func (c Certificate) ToCbor(w *cborcodec.Writer) {
	switch c.Kind {
	case CertStakeRegistrationLegacy, CertStakeDeregistrationLegacy:
		w.WriteStartArray(2)
		w.WriteUint(uint64(c.Kind))
		c.StakeCredential.ToCbor(w)
		_ = w.WriteEnd()
	case CertStakeDelegation:
		w.WriteStartArray(3)
		w.WriteUint(uint64(c.Kind))
		c.StakeCredential.ToCbor(w)
		c.PoolKeyHash.ToCbor(w)
		_ = w.WriteEnd()
	case CertPoolRegistration:
		w.WriteStartArray(10)
		w.WriteUint(uint64(c.Kind))
		c.Pool.writeFields(w)
		_ = w.WriteEnd()
	case CertPoolRetirement:
		w.WriteStartArray(3)
		w.WriteUint(uint64(c.Kind))
		c.PoolKeyHash.ToCbor(w)
		w.WriteUint(c.RetireEpoch)
		_ = w.WriteEnd()
	case CertMir:
		c.mirToCbor(w)
	case CertStakeAndVoteDelegation:
		w.WriteStartArray(4)
		w.WriteUint(uint64(c.Kind))
		c.StakeCredential.ToCbor(w)
		c.PoolKeyHash.ToCbor(w)
		c.DRep.ToCbor(w)
		_ = w.WriteEnd()
	case CertStakeRegistration, CertStakeDeregistration:
		w.WriteStartArray(3)
		w.WriteUint(uint64(c.Kind))
		c.StakeCredential.ToCbor(w)
		w.WriteUint(c.Deposit)
		_ = w.WriteEnd()
	case CertVoteDelegation:
		w.WriteStartArray(3)
		w.WriteUint(uint64(c.Kind))
		c.StakeCredential.ToCbor(w)
		c.DRep.ToCbor(w)
		_ = w.WriteEnd()
	case CertCommitteeHotAuth:
		w.WriteStartArray(3)
		w.WriteUint(uint64(c.Kind))
		c.ColdCredential.ToCbor(w)
		c.HotCredential.ToCbor(w)
		_ = w.WriteEnd()
	case CertCommitteeColdResign:
		writeOptionalAnchorCert(w, uint64(c.Kind), c.ColdCredential, c.Anchor)
	case CertDRepRegistration:
		w.WriteStartArray(4)
		w.WriteUint(uint64(c.Kind))
		c.StakeCredential.ToCbor(w)
		w.WriteUint(c.Deposit)
		writeOptionalAnchor(w, c.Anchor)
		_ = w.WriteEnd()
	case CertDRepUnregistration:
		w.WriteStartArray(3)
		w.WriteUint(uint64(c.Kind))
		c.StakeCredential.ToCbor(w)
		w.WriteUint(c.Deposit)
		_ = w.WriteEnd()
	case CertDRepUpdate:
		writeOptionalAnchorCert(w, uint64(c.Kind), c.StakeCredential, c.Anchor)
	}
}

func writeOptionalAnchorCert(w *cborcodec.Writer, kind uint64, cred primitives.Credential, anchor *primitives.Anchor) {
	w.WriteStartArray(3)
	w.WriteUint(kind)
	cred.ToCbor(w)
	writeOptionalAnchor(w, anchor)
	_ = w.WriteEnd()
}

func writeOptionalAnchor(w *cborcodec.Writer, anchor *primitives.Anchor) {
	if anchor == nil {
		w.WriteNull()
		return
	}
	anchor.ToCbor(w)
}

func readOptionalAnchor(r *cborcodec.Reader) (*primitives.Anchor, error) {
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}
	if state.Major == cborcodec.MajorSimple {
		if err := r.ReadNull(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	a, err := primitives.AnchorFromCbor(r)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c Certificate) mirToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(3)
	w.WriteUint(uint64(CertMir))
	w.WriteUint(uint64(c.MirPot))
	if c.MirTarget.ToOtherPot != nil {
		w.WriteStartArray(2)
		w.WriteUint(0)
		w.WriteUint(*c.MirTarget.ToOtherPot)
		_ = w.WriteEnd()
	} else {
		w.WriteStartArray(2)
		w.WriteUint(1)
		entries := make([]cborcodec.SortedMapEntry, 0, len(c.MirTarget.ToStakeCreds))
		for _, v := range c.MirTarget.ToStakeCreds {
			kw := cborcodec.NewWriter()
			v.Cred.ToCbor(kw)
			vw := cborcodec.NewWriter()
			vw.WriteInt(v.Amount)
			entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
		}
		w.WriteSortedMap(entries)
		_ = w.WriteEnd()
	}
	_ = w.WriteEnd()
}

// CertificateFromCbor reads `[discriminator, ...]` and dispatches.
func CertificateFromCbor(r *cborcodec.Reader) (Certificate, error) {
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return Certificate{}, err
	}
	disc, err := r.ReadUint()
	if err != nil {
		return Certificate{}, err
	}
	switch CertificateKind(disc) {
	case CertStakeRegistrationLegacy, CertStakeDeregistrationLegacy:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return Certificate{Kind: CertificateKind(disc), StakeCredential: cred}, nil
	case CertStakeDelegation:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		poolKeyHash, err := primitives.Hash28FromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewStakeDelegationCert(cred, poolKeyHash), nil
	case CertPoolRegistration:
		pool, err := poolParamsFieldsFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewPoolRegistrationCert(pool), nil
	case CertPoolRetirement:
		poolKeyHash, err := primitives.Hash28FromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		epoch, err := r.ReadUint()
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewPoolRetirementCert(poolKeyHash, epoch), nil
	case CertMir:
		return mirFromCbor(r, n)
	case CertStakeAndVoteDelegation:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		poolKeyHash, err := primitives.Hash28FromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		drep, err := DRepFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewStakeAndVoteDelegationCert(cred, poolKeyHash, drep), nil
	case CertStakeRegistration, CertStakeDeregistration:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		deposit, err := r.ReadUint()
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return Certificate{Kind: CertificateKind(disc), StakeCredential: cred, Deposit: deposit}, nil
	case CertVoteDelegation:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		drep, err := DRepFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewVoteDelegationCert(cred, drep), nil
	case CertCommitteeHotAuth:
		cold, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		hot, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewCommitteeHotAuthCert(cold, hot), nil
	case CertCommitteeColdResign:
		cold, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		anchor, err := readOptionalAnchor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewCommitteeColdResignCert(cold, anchor), nil
	case CertDRepRegistration:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		deposit, err := r.ReadUint()
		if err != nil {
			return Certificate{}, err
		}
		anchor, err := readOptionalAnchor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewDRepRegistrationCert(cred, deposit, anchor), nil
	case CertDRepUnregistration:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		deposit, err := r.ReadUint()
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewDRepUnregistrationCert(cred, deposit), nil
	case CertDRepUpdate:
		cred, err := primitives.CredentialFromCbor(r)
		if err != nil {
			return Certificate{}, err
		}
		anchor, err := readOptionalAnchor(r)
		if err != nil {
			return Certificate{}, err
		}
		if err := finishArray(r, n); err != nil {
			return Certificate{}, err
		}
		return NewDRepUpdateCert(cred, anchor), nil
	default:
		return Certificate{}, fmt.Errorf("%w: certificate discriminator %d", cborcodec.ErrUnknownDiscriminator, disc)
	}
}

func mirFromCbor(r *cborcodec.Reader, outerLen int) (Certificate, error) {
	pot, err := r.ReadUint()
	if err != nil {
		return Certificate{}, err
	}
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return Certificate{}, err
	}
	targetKind, err := r.ReadUint()
	if err != nil {
		return Certificate{}, err
	}
	var cert Certificate
	switch targetKind {
	case 0:
		amount, err := r.ReadUint()
		if err != nil {
			return Certificate{}, err
		}
		cert = NewMirToOtherPotCert(MirPot(pot), amount)
	case 1:
		m, err := containers.MapFromCbor[mirCredKey, mirAmount](r, mirCredKeyFromCbor, mirAmountFromCbor)
		if err != nil {
			return Certificate{}, err
		}
		amounts := make(map[primitives.Credential]int64, m.Len())
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			amounts[k.Credential] = int64(v)
		}
		cert = NewMirToStakeCredsCert(MirPot(pot), amounts)
	default:
		return Certificate{}, fmt.Errorf("%w: mir target discriminator %d", cborcodec.ErrUnknownDiscriminator, targetKind)
	}
	if err := finishArray(r, outerLen); err != nil {
		return Certificate{}, err
	}
	return cert, nil
}

// mirCredKey/mirAmount adapt Credential/int64 to containers.Map's
// Encodable constraint for the MIR distribution's inner map.
type mirCredKey struct{ primitives.Credential }
type mirAmount int64

func (k mirCredKey) ToCbor(w *cborcodec.Writer)  { k.Credential.ToCbor(w) }
func (a mirAmount) ToCbor(w *cborcodec.Writer)   { w.WriteInt(int64(a)) }

func mirCredKeyFromCbor(r *cborcodec.Reader) (mirCredKey, error) {
	c, err := primitives.CredentialFromCbor(r)
	return mirCredKey{c}, err
}

func mirAmountFromCbor(r *cborcodec.Reader) (mirAmount, error) {
	v, err := r.ReadInt()
	return mirAmount(v), err
}

func finishArray(r *cborcodec.Reader, _ int) error {
	return r.ReadEnd()
}

// ToCbor writes `[tag, hash?]`: tags 0 (key hash) and 1 (script hash)
// carry the credential's hash, tags 2 (always-abstain) and 3
// (always-no-confidence) are bare.
func (d DRep) ToCbor(w *cborcodec.Writer) {
	switch d.Kind {
	case DRepCredential:
		w.WriteStartArray(2)
		w.WriteUint(uint64(d.Credential.Kind))
		d.Credential.Hash.ToCbor(w)
		_ = w.WriteEnd()
	case DRepAlwaysAbstain:
		w.WriteStartArray(1)
		w.WriteUint(2)
		_ = w.WriteEnd()
	case DRepAlwaysNoConfidence:
		w.WriteStartArray(1)
		w.WriteUint(3)
		_ = w.WriteEnd()
	}
}

// DRepFromCbor reads a DRep. The ledger reuses the credential tag space
// (0=key hash, 1=script hash) directly as the first two DRep
// discriminators, then 2/3 for the predefined choices.
func DRepFromCbor(r *cborcodec.Reader) (DRep, error) {
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return DRep{}, err
	}
	tag, err := r.ReadUint()
	if err != nil {
		return DRep{}, err
	}
	switch tag {
	case 0, 1:
		hash, err := primitives.Hash28FromCbor(r)
		if err != nil {
			return DRep{}, err
		}
		if err := finishArray(r, n); err != nil {
			return DRep{}, err
		}
		kind := primitives.CredentialKeyHash
		if tag == 1 {
			kind = primitives.CredentialScriptHash
		}
		return DRep{Kind: DRepCredential, Credential: primitives.Credential{Kind: kind, Hash: hash}}, nil
	case 2:
		if err := finishArray(r, n); err != nil {
			return DRep{}, err
		}
		return DRep{Kind: DRepAlwaysAbstain}, nil
	case 3:
		if err := finishArray(r, n); err != nil {
			return DRep{}, err
		}
		return DRep{Kind: DRepAlwaysNoConfidence}, nil
	default:
		return DRep{}, fmt.Errorf("%w: drep discriminator %d", cborcodec.ErrUnknownDiscriminator, tag)
	}
}
