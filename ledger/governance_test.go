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

package ledger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
)

func roundTripAction(t *testing.T, a ledger.GovernanceAction) ledger.GovernanceAction {
	t.Helper()
	w := cborcodec.NewWriter()
	a.ToCbor(w)
	require.NoError(t, w.LastError())
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.GovernanceActionFromCbor(r)
	require.NoError(t, err)
	return decoded
}

func TestParameterChangeActionRoundTrip(t *testing.T) {
	policy := hash28Of(t, 0x11)
	a := ledger.NewParameterChangeAction(nil, []byte{0xa1, 0x00, 0x01}, &policy)
	decoded := roundTripAction(t, a)
	require.Equal(t, ledger.GovActionParameterChange, decoded.Kind)
	require.Equal(t, []byte{0xa1, 0x00, 0x01}, decoded.ParamUpdate)
	require.NotNil(t, decoded.PolicyHash)
}

func TestHardForkInitiationActionRoundTrip(t *testing.T) {
	prior := primitives.GovernanceActionId{TxId: hash32Of(t, 0x20), Index: 1}
	version := primitives.NewProtocolVersion(10, 0)
	a := ledger.NewHardForkInitiationAction(&prior, version)
	decoded := roundTripAction(t, a)
	require.NotNil(t, decoded.PriorActionId)
	require.Equal(t, version, decoded.ProtocolVersion)
}

func TestTreasuryWithdrawalsActionRoundTrip(t *testing.T) {
	a := ledger.NewTreasuryWithdrawalsAction(map[string]uint64{"acct1": 1000}, nil)
	decoded := roundTripAction(t, a)
	require.Len(t, decoded.Withdrawals, 1)
	require.Nil(t, decoded.PolicyHash)
}

func TestInfoActionRoundTrip(t *testing.T) {
	decoded := roundTripAction(t, ledger.NewInfoAction())
	require.Equal(t, ledger.GovActionInfo, decoded.Kind)
}

func TestUpdateCommitteeActionRoundTrip(t *testing.T) {
	toRemove := []primitives.Credential{primitives.NewKeyHashCredential(hash28Of(t, 0x30))}
	toAdd := map[primitives.Credential]uint64{
		primitives.NewScriptHashCredential(hash28Of(t, 0x31)): 400,
	}
	quorum, err := primitives.NewUnitInterval(2, 3)
	require.NoError(t, err)
	a := ledger.NewUpdateCommitteeAction(nil, toRemove, toAdd, quorum)
	decoded := roundTripAction(t, a)
	require.Len(t, decoded.MembersToRemove, 1)
	require.Len(t, decoded.MembersToAdd, 1)
	require.Equal(t, quorum, decoded.NewQuorum)
}

func TestGovernanceActionFromCborRejectsUnknownDiscriminator(t *testing.T) {
	w := cborcodec.NewWriter()
	w.WriteStartArray(1)
	w.WriteUint(42)
	_ = w.WriteEnd()

	r := cborcodec.NewReader(w.Encoded())
	_, err := ledger.GovernanceActionFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrUnknownDiscriminator)
}

func TestVoterDecodesKnownCommitteeKeyBlob(t *testing.T) {
	zeroHex := "8200581c" + strings.Repeat("00", 28)
	oneHex := "8200581c" + strings.Repeat("00", 27) + "01"

	zero := mustHex(t, zeroHex)
	one := mustHex(t, oneHex)

	zeroVoterA, err := ledger.VoterFromCbor(cborcodec.NewReader(zero))
	require.NoError(t, err)
	zeroVoterB, err := ledger.VoterFromCbor(cborcodec.NewReader(zero))
	require.NoError(t, err)
	require.Equal(t, ledger.VoterCommitteeKey, zeroVoterA.Kind)
	require.Equal(t, zeroVoterA, zeroVoterB)

	oneVoter, err := ledger.VoterFromCbor(cborcodec.NewReader(one))
	require.NoError(t, err)
	require.Equal(t, ledger.VoterCommitteeKey, oneVoter.Kind)
	require.Negative(t, zeroVoterA.Compare(oneVoter))

	w := cborcodec.NewWriter()
	zeroVoterA.ToCbor(w)
	require.NoError(t, w.LastError())
	require.Equal(t, zeroHex, w.EncodedHex())
}

func TestVoterCompareOrdersByKindThenHash(t *testing.T) {
	a := ledger.NewVoter(ledger.VoterDRepKey, hash28Of(t, 0x01))
	b := ledger.NewVoter(ledger.VoterDRepKey, hash28Of(t, 0x02))
	c := ledger.NewVoter(ledger.VoterPoolKey, hash28Of(t, 0x00))

	require.Negative(t, a.Compare(b))
	require.Negative(t, b.Compare(c))
}

func TestVotingProceduresRoundTrip(t *testing.T) {
	vp := ledger.NewVotingProcedures()
	voter := ledger.NewVoter(ledger.VoterDRepKey, hash28Of(t, 0x40))
	action := primitives.GovernanceActionId{TxId: hash32Of(t, 0x41), Index: 0}
	vp.Vote(voter, action, ledger.VotingProcedure{Vote: ledger.VoteYes})

	w := cborcodec.NewWriter()
	vp.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.VotingProceduresFromCbor(r)
	require.NoError(t, err)
	require.NotNil(t, decoded)
}

func TestProposalProcedureRoundTrip(t *testing.T) {
	anchor, err := primitives.NewAnchor("https://example.test/action.json", hash32Of(t, 0x50))
	require.NoError(t, err)
	p := ledger.NewProposalProcedure(100000000, []byte("rewardacct"), ledger.NewInfoAction(), anchor)

	w := cborcodec.NewWriter()
	p.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.ProposalProcedureFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, p.Deposit, decoded.Deposit)
	require.Equal(t, p.RewardAccount, decoded.RewardAccount)
	require.Equal(t, anchor, decoded.Anchor)
}
