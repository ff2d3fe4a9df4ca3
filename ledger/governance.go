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

// GovernanceActionKind is the ledger's own discriminator for the 7
// governance action variants.
type GovernanceActionKind int

const (
	GovActionParameterChange GovernanceActionKind = iota
	GovActionHardForkInitiation
	GovActionTreasuryWithdrawals
	GovActionNoConfidence
	GovActionUpdateCommittee
	GovActionNewConstitution
	GovActionInfo
)

// GovernanceAction is the closed sum of the 7 action kinds a proposal
// procedure can carry. Every kind except treasury withdrawals and info
// optionally names the GovernanceActionId of the prior enacted action of
// the same kind,
// enforcing the ledger's strict per-kind action hierarchy.
type GovernanceAction struct {
	Kind GovernanceActionKind

	PriorActionId *primitives.GovernanceActionId

	// ParameterChange: opaque param-update bytes (CBOR encoded
	// elsewhere; this layer does not model every protocol parameter).
	ParamUpdate []byte
	PolicyHash  *primitives.Hash28 // guardrail script, parameter-change only

	// HardForkInitiation
	ProtocolVersion primitives.ProtocolVersion

	// TreasuryWithdrawals: reward_account (opaque bytes) -> coin
	Withdrawals map[string]treasuryWithdrawal

	// UpdateCommittee
	MembersToRemove []primitives.Credential
	MembersToAdd    map[string]committeeTerm
	NewQuorum       primitives.UnitInterval

	// NewConstitution
	ConstitutionAnchor primitives.Anchor
	ConstitutionScript *primitives.Hash28
}

type treasuryWithdrawal struct {
	Account []byte
	Coin    uint64
}

type committeeTerm struct {
	Credential  primitives.Credential
	ExpiryEpoch uint64
}

// NewParameterChangeAction constructs a parameter-change governance
// action. paramUpdate is the pre-encoded protocol-parameter-update CBOR.
func NewParameterChangeAction(prior *primitives.GovernanceActionId, paramUpdate []byte, policyHash *primitives.Hash28) GovernanceAction {
	return GovernanceAction{Kind: GovActionParameterChange, PriorActionId: prior, ParamUpdate: cloneBytes(paramUpdate), PolicyHash: policyHash}
}

// NewHardForkInitiationAction constructs a hard-fork-initiation action.
func NewHardForkInitiationAction(prior *primitives.GovernanceActionId, version primitives.ProtocolVersion) GovernanceAction {
	return GovernanceAction{Kind: GovActionHardForkInitiation, PriorActionId: prior, ProtocolVersion: version}
}

// NewTreasuryWithdrawalsAction constructs a treasury-withdrawals action.
func NewTreasuryWithdrawalsAction(withdrawals map[string]uint64, policyHash *primitives.Hash28) GovernanceAction {
	w := make(map[string]treasuryWithdrawal, len(withdrawals))
	for account, coin := range withdrawals {
		w[account] = treasuryWithdrawal{Account: []byte(account), Coin: coin}
	}
	return GovernanceAction{Kind: GovActionTreasuryWithdrawals, Withdrawals: w, PolicyHash: policyHash}
}

// NewNoConfidenceAction constructs a no-confidence action.
func NewNoConfidenceAction(prior *primitives.GovernanceActionId) GovernanceAction {
	return GovernanceAction{Kind: GovActionNoConfidence, PriorActionId: prior}
}

// NewUpdateCommitteeAction constructs a committee-update action.
func NewUpdateCommitteeAction(prior *primitives.GovernanceActionId, toRemove []primitives.Credential, toAdd map[primitives.Credential]uint64, quorum primitives.UnitInterval) GovernanceAction {
	add := make(map[string]committeeTerm, len(toAdd))
	for cred, expiry := range toAdd {
		add[encodedCredKey(cred)] = committeeTerm{Credential: cred, ExpiryEpoch: expiry}
	}
	return GovernanceAction{Kind: GovActionUpdateCommittee, PriorActionId: prior, MembersToRemove: toRemove, MembersToAdd: add, NewQuorum: quorum}
}

// NewNewConstitutionAction constructs a new-constitution action.
func NewNewConstitutionAction(prior *primitives.GovernanceActionId, anchor primitives.Anchor, script *primitives.Hash28) GovernanceAction {
	return GovernanceAction{Kind: GovActionNewConstitution, PriorActionId: prior, ConstitutionAnchor: anchor, ConstitutionScript: script}
}

// NewInfoAction constructs an info action, which carries no payload.
func NewInfoAction() GovernanceAction {
	return GovernanceAction{Kind: GovActionInfo}
}

// ToCbor writes `[discriminator, ...]`.
func (g GovernanceAction) ToCbor(w *cborcodec.Writer) {
	switch g.Kind {
	case GovActionParameterChange:
		w.WriteStartArray(4)
		w.WriteUint(uint64(g.Kind))
		writeOptionalGovActionId(w, g.PriorActionId)
		w.WriteEncodedValue(g.ParamUpdate)
		writeOptionalHash28(w, g.PolicyHash)
		_ = w.WriteEnd()
	case GovActionHardForkInitiation:
		w.WriteStartArray(3)
		w.WriteUint(uint64(g.Kind))
		writeOptionalGovActionId(w, g.PriorActionId)
		g.ProtocolVersion.ToCbor(w)
		_ = w.WriteEnd()
	case GovActionTreasuryWithdrawals:
		w.WriteStartArray(3)
		w.WriteUint(uint64(g.Kind))
		entries := make([]cborcodec.SortedMapEntry, 0, len(g.Withdrawals))
		for _, v := range g.Withdrawals {
			kw := cborcodec.NewWriter()
			kw.WriteByteString(v.Account)
			vw := cborcodec.NewWriter()
			vw.WriteUint(v.Coin)
			entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
		}
		w.WriteSortedMap(entries)
		writeOptionalHash28(w, g.PolicyHash)
		_ = w.WriteEnd()
	case GovActionNoConfidence:
		w.WriteStartArray(2)
		w.WriteUint(uint64(g.Kind))
		writeOptionalGovActionId(w, g.PriorActionId)
		_ = w.WriteEnd()
	case GovActionUpdateCommittee:
		w.WriteStartArray(5)
		w.WriteUint(uint64(g.Kind))
		writeOptionalGovActionId(w, g.PriorActionId)
		removeSet := containers.NewSet[credItem]()
		for _, c := range g.MembersToRemove {
			removeSet.Add(credItem(c))
		}
		removeSet.ToCbor(w)
		entries := make([]cborcodec.SortedMapEntry, 0, len(g.MembersToAdd))
		for _, v := range g.MembersToAdd {
			kw := cborcodec.NewWriter()
			v.Credential.ToCbor(kw)
			vw := cborcodec.NewWriter()
			vw.WriteUint(v.ExpiryEpoch)
			entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
		}
		w.WriteSortedMap(entries)
		g.NewQuorum.ToCbor(w)
		_ = w.WriteEnd()
	case GovActionNewConstitution:
		w.WriteStartArray(3)
		w.WriteUint(uint64(g.Kind))
		writeOptionalGovActionId(w, g.PriorActionId)
		w.WriteStartArray(2)
		g.ConstitutionAnchor.ToCbor(w)
		writeOptionalHash28(w, g.ConstitutionScript)
		_ = w.WriteEnd()
		_ = w.WriteEnd()
	case GovActionInfo:
		w.WriteStartArray(1)
		w.WriteUint(uint64(g.Kind))
		_ = w.WriteEnd()
	}
}

// credItem adapts Credential to containers.Encodable.
type credItem primitives.Credential

func (c credItem) ToCbor(w *cborcodec.Writer) { primitives.Credential(c).ToCbor(w) }

func credItemFromCbor(r *cborcodec.Reader) (credItem, error) {
	c, err := primitives.CredentialFromCbor(r)
	return credItem(c), err
}

func writeOptionalGovActionId(w *cborcodec.Writer, id *primitives.GovernanceActionId) {
	if id == nil {
		w.WriteNull()
		return
	}
	id.ToCbor(w)
}

func readOptionalGovActionId(r *cborcodec.Reader) (*primitives.GovernanceActionId, error) {
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
	id, err := primitives.GovernanceActionIdFromCbor(r)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func writeOptionalHash28(w *cborcodec.Writer, h *primitives.Hash28) {
	if h == nil {
		w.WriteNull()
		return
	}
	h.ToCbor(w)
}

func readOptionalHash28(r *cborcodec.Reader) (*primitives.Hash28, error) {
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
	h, err := primitives.Hash28FromCbor(r)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GovernanceActionFromCbor reads `[discriminator, ...]` and dispatches.
func GovernanceActionFromCbor(r *cborcodec.Reader) (GovernanceAction, error) {
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return GovernanceAction{}, err
	}
	disc, err := r.ReadUint()
	if err != nil {
		return GovernanceAction{}, err
	}
	switch GovernanceActionKind(disc) {
	case GovActionParameterChange:
		prior, err := readOptionalGovActionId(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		raw, err := r.ReadEncodedValue()
		if err != nil {
			return GovernanceAction{}, err
		}
		policy, err := readOptionalHash28(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		if err := finishArray(r, n); err != nil {
			return GovernanceAction{}, err
		}
		return NewParameterChangeAction(prior, raw, policy), nil
	case GovActionHardForkInitiation:
		prior, err := readOptionalGovActionId(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		version, err := primitives.ProtocolVersionFromCbor(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		if err := finishArray(r, n); err != nil {
			return GovernanceAction{}, err
		}
		return NewHardForkInitiationAction(prior, version), nil
	case GovActionTreasuryWithdrawals:
		m, err := containers.MapFromCbor[rewardAccountKey, coinValue](r, rewardAccountKeyFromCbor, coinValueFromCbor)
		if err != nil {
			return GovernanceAction{}, err
		}
		withdrawals := make(map[string]uint64, m.Len())
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			withdrawals[string(k)] = uint64(v)
		}
		policy, err := readOptionalHash28(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		if err := finishArray(r, n); err != nil {
			return GovernanceAction{}, err
		}
		return NewTreasuryWithdrawalsAction(withdrawals, policy), nil
	case GovActionNoConfidence:
		prior, err := readOptionalGovActionId(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		if err := finishArray(r, n); err != nil {
			return GovernanceAction{}, err
		}
		return NewNoConfidenceAction(prior), nil
	case GovActionUpdateCommittee:
		prior, err := readOptionalGovActionId(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		removeSet, err := containers.SetFromCbor[credItem](r, credItemFromCbor)
		if err != nil {
			return GovernanceAction{}, err
		}
		toRemove := make([]primitives.Credential, 0, removeSet.Len())
		for _, c := range removeSet.Items() {
			toRemove = append(toRemove, primitives.Credential(c))
		}
		addMap, err := containers.MapFromCbor[credItem, epochValue](r, credItemFromCbor, epochValueFromCbor)
		if err != nil {
			return GovernanceAction{}, err
		}
		toAdd := make(map[primitives.Credential]uint64, addMap.Len())
		for _, k := range addMap.Keys() {
			v, _ := addMap.Get(k)
			toAdd[primitives.Credential(k)] = uint64(v)
		}
		quorum, err := primitives.UnitIntervalFromCbor(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		if err := finishArray(r, n); err != nil {
			return GovernanceAction{}, err
		}
		return NewUpdateCommitteeAction(prior, toRemove, toAdd, quorum), nil
	case GovActionNewConstitution:
		prior, err := readOptionalGovActionId(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		two := 2
		if _, err := r.ReadStartArray(&two); err != nil {
			return GovernanceAction{}, err
		}
		anchor, err := primitives.AnchorFromCbor(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		script, err := readOptionalHash28(r)
		if err != nil {
			return GovernanceAction{}, err
		}
		if err := r.ReadEnd(); err != nil {
			return GovernanceAction{}, err
		}
		if err := finishArray(r, n); err != nil {
			return GovernanceAction{}, err
		}
		return NewNewConstitutionAction(prior, anchor, script), nil
	case GovActionInfo:
		if err := finishArray(r, n); err != nil {
			return GovernanceAction{}, err
		}
		return NewInfoAction(), nil
	default:
		return GovernanceAction{}, fmt.Errorf("%w: governance action discriminator %d", cborcodec.ErrUnknownDiscriminator, disc)
	}
}

// rewardAccountKey/coinValue/epochValue adapt raw bytes and uint64 to
// containers.Map's Encodable constraint.
type rewardAccountKey []byte
type coinValue uint64
type epochValue uint64

func (k rewardAccountKey) ToCbor(w *cborcodec.Writer) { w.WriteByteString(k) }
func (v coinValue) ToCbor(w *cborcodec.Writer)        { w.WriteUint(uint64(v)) }
func (v epochValue) ToCbor(w *cborcodec.Writer)       { w.WriteUint(uint64(v)) }

func rewardAccountKeyFromCbor(r *cborcodec.Reader) (rewardAccountKey, error) {
	b, err := r.ReadByteString()
	return rewardAccountKey(b), err
}

func coinValueFromCbor(r *cborcodec.Reader) (coinValue, error) {
	v, err := r.ReadUint()
	return coinValue(v), err
}

func epochValueFromCbor(r *cborcodec.Reader) (epochValue, error) {
	v, err := r.ReadUint()
	return epochValue(v), err
}

// VoterKind discriminates a Voter's role and credential type.
type VoterKind int

const (
	VoterCommitteeKey VoterKind = iota
	VoterCommitteeScript
	VoterDRepKey
	VoterDRepScript
	VoterPoolKey
)

// Voter is the sum of the 5 ways a governance vote can be cast, each
// pairing a role with a 28-byte hash.
type Voter struct {
	Kind VoterKind
	Hash primitives.Hash28
}

// NewVoter constructs a Voter of the given kind.
func NewVoter(kind VoterKind, hash primitives.Hash28) Voter {
	return Voter{Kind: kind, Hash: hash}
}

// ToCbor writes `[tag, hash]`.
func (v Voter) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteUint(uint64(v.Kind))
	v.Hash.ToCbor(w)
	_ = w.WriteEnd()
}

// VoterFromCbor reads `[tag, hash]`.
func VoterFromCbor(r *cborcodec.Reader) (Voter, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return Voter{}, err
	}
	tag, err := r.ReadUint()
	if err != nil {
		return Voter{}, err
	}
	hash, err := primitives.Hash28FromCbor(r)
	if err != nil {
		return Voter{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return Voter{}, err
	}
	if tag > uint64(VoterPoolKey) {
		return Voter{}, fmt.Errorf("%w: voter tag %d", cborcodec.ErrUnknownDiscriminator, tag)
	}
	return NewVoter(VoterKind(tag), hash), nil
}

// Compare orders voters by (type_tag ASC, hash lex ASC), the canonical
// ordering of the outer VotingProcedures map.
func (v Voter) Compare(other Voter) int {
	if v.Kind != other.Kind {
		if v.Kind < other.Kind {
			return -1
		}
		return 1
	}
	return cborcodec.CompareEncoded(v.Hash[:], other.Hash[:])
}

// VoteChoice is a cast ballot value.
type VoteChoice int

const (
	VoteNo VoteChoice = iota
	VoteYes
	VoteAbstain
)

// VotingProcedure is a single vote on a single governance action.
type VotingProcedure struct {
	Vote   VoteChoice
	Anchor *primitives.Anchor
}

// ToCbor writes `[vote, anchor?]`.
func (v VotingProcedure) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteUint(uint64(v.Vote))
	writeOptionalAnchor(w, v.Anchor)
	_ = w.WriteEnd()
}

// VotingProcedureFromCbor reads `[vote, anchor?]`.
func VotingProcedureFromCbor(r *cborcodec.Reader) (VotingProcedure, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return VotingProcedure{}, err
	}
	vote, err := r.ReadUint()
	if err != nil {
		return VotingProcedure{}, err
	}
	anchor, err := readOptionalAnchor(r)
	if err != nil {
		return VotingProcedure{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return VotingProcedure{}, err
	}
	return VotingProcedure{Vote: VoteChoice(vote), Anchor: anchor}, nil
}

// voterItem/govActionIdItem/votingProcedureItem adapt Voter,
// GovernanceActionId and VotingProcedure to containers.Encodable so
// VotingProcedures can reuse the generic Map for both its outer and
// inner layers.
type voterItem Voter
type govActionIdItem primitives.GovernanceActionId
type votingProcedureItem VotingProcedure

func (v voterItem) ToCbor(w *cborcodec.Writer)            { Voter(v).ToCbor(w) }
func (g govActionIdItem) ToCbor(w *cborcodec.Writer)      { primitives.GovernanceActionId(g).ToCbor(w) }
func (p votingProcedureItem) ToCbor(w *cborcodec.Writer)  { VotingProcedure(p).ToCbor(w) }

func voterItemFromCbor(r *cborcodec.Reader) (voterItem, error) {
	v, err := VoterFromCbor(r)
	return voterItem(v), err
}

func govActionIdItemFromCbor(r *cborcodec.Reader) (govActionIdItem, error) {
	g, err := primitives.GovernanceActionIdFromCbor(r)
	return govActionIdItem(g), err
}

func votingProcedureItemFromCbor(r *cborcodec.Reader) (votingProcedureItem, error) {
	p, err := VotingProcedureFromCbor(r)
	return votingProcedureItem(p), err
}

// VotingProcedures is the doubly-nested `Voter -> (GovernanceActionId ->
// VotingProcedure)` map carried on a transaction body. Invariant: no
// voter maps to an empty inner map.
type VotingProcedures struct {
	inner *containers.Map[voterItem, *containers.Map[govActionIdItem, votingProcedureItem]]
}

// NewVotingProcedures returns an empty VotingProcedures.
func NewVotingProcedures() *VotingProcedures {
	return &VotingProcedures{inner: containers.NewMap[voterItem, *containers.Map[govActionIdItem, votingProcedureItem]]()}
}

// Vote records voter's decision on action, creating the inner map for
// voter if this is its first vote.
func (vp *VotingProcedures) Vote(voter Voter, action primitives.GovernanceActionId, procedure VotingProcedure) {
	key := voterItem(voter)
	inner, ok := vp.inner.Get(key)
	if !ok {
		inner = containers.NewMap[govActionIdItem, votingProcedureItem]()
		vp.inner.Set(key, inner)
	}
	inner.Set(govActionIdItem(action), votingProcedureItem(procedure))
}

// ToCbor writes the canonically sorted outer and inner maps.
func (vp *VotingProcedures) ToCbor(w *cborcodec.Writer) {
	entries := make([]cborcodec.SortedMapEntry, 0, vp.inner.Len())
	for _, k := range vp.inner.Keys() {
		inner, _ := vp.inner.Get(k)
		kw := cborcodec.NewWriter()
		k.ToCbor(kw)
		vw := cborcodec.NewWriter()
		inner.ToCbor(vw)
		entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: vw.Encoded()})
	}
	w.WriteSortedMap(entries)
}

// VotingProceduresFromCbor decodes the nested map, rejecting (in strict
// mode) any voter whose inner map is empty.
func VotingProceduresFromCbor(r *cborcodec.Reader) (*VotingProcedures, error) {
	outer, err := containers.MapFromCbor[voterItem, *containers.Map[govActionIdItem, votingProcedureItem]](
		r,
		voterItemFromCbor,
		func(r *cborcodec.Reader) (*containers.Map[govActionIdItem, votingProcedureItem], error) {
			return containers.MapFromCbor[govActionIdItem, votingProcedureItem](r, govActionIdItemFromCbor, votingProcedureItemFromCbor)
		},
	)
	if err != nil {
		return nil, err
	}
	if r.Strict() {
		for _, k := range outer.Keys() {
			inner, _ := outer.Get(k)
			if inner.Len() == 0 {
				return nil, fmt.Errorf("%w: voter has empty voting procedures map", cborcodec.ErrInvariantViolation)
			}
		}
	}
	return &VotingProcedures{inner: outer}, nil
}

// ProposalProcedure is a single governance-action proposal submitted in
// a transaction body.
type ProposalProcedure struct {
	Deposit        uint64
	RewardAccount  []byte
	Action         GovernanceAction
	Anchor         primitives.Anchor
}

// NewProposalProcedure constructs a ProposalProcedure.
func NewProposalProcedure(deposit uint64, rewardAccount []byte, action GovernanceAction, anchor primitives.Anchor) ProposalProcedure {
	return ProposalProcedure{Deposit: deposit, RewardAccount: cloneBytes(rewardAccount), Action: action, Anchor: anchor}
}

// ToCbor writes `[deposit, reward_account, action, anchor]`.
func (p ProposalProcedure) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(4)
	w.WriteUint(p.Deposit)
	w.WriteByteString(p.RewardAccount)
	p.Action.ToCbor(w)
	p.Anchor.ToCbor(w)
	_ = w.WriteEnd()
}

// ProposalProcedureFromCbor reads `[deposit, reward_account, action, anchor]`.
func ProposalProcedureFromCbor(r *cborcodec.Reader) (ProposalProcedure, error) {
	four := 4
	if _, err := r.ReadStartArray(&four); err != nil {
		return ProposalProcedure{}, err
	}
	deposit, err := r.ReadUint()
	if err != nil {
		return ProposalProcedure{}, err
	}
	rewardAccount, err := r.ReadByteString()
	if err != nil {
		return ProposalProcedure{}, err
	}
	action, err := GovernanceActionFromCbor(r)
	if err != nil {
		return ProposalProcedure{}, err
	}
	anchor, err := primitives.AnchorFromCbor(r)
	if err != nil {
		return ProposalProcedure{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return ProposalProcedure{}, err
	}
	return NewProposalProcedure(deposit, rewardAccount, action, anchor), nil
}
