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
	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/containers"
	"github.com/cardano-forge/ledger/primitives"
)

// Update is the legacy protocol-parameter-update transaction-body field:
// each genesis delegate key hash may propose its own parameter-update
// payload, all intended to take effect at the named epoch. The core
// treats each proposal's body as opaque bytes — it does not model every
// individual protocol parameter, only the envelope that carries them.
type Update struct {
	Proposals map[string]updateProposal // keyed by encoded Hash28
	Epoch     uint64
}

type updateProposal struct {
	GenesisKeyHash primitives.Hash28
	ParamUpdate    []byte
}

// NewUpdate constructs an Update for the given epoch.
func NewUpdate(epoch uint64) *Update {
	return &Update{Proposals: make(map[string]updateProposal), Epoch: epoch}
}

// Propose attaches a genesis key's proposed (pre-encoded)
// parameter-update payload.
func (u *Update) Propose(genesisKeyHash primitives.Hash28, paramUpdate []byte) {
	u.Proposals[string(genesisKeyHash[:])] = updateProposal{GenesisKeyHash: genesisKeyHash, ParamUpdate: cloneBytes(paramUpdate)}
}

// ToCbor writes `[proposals_map, epoch]`.
func (u *Update) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	entries := make([]cborcodec.SortedMapEntry, 0, len(u.Proposals))
	for _, p := range u.Proposals {
		kw := cborcodec.NewWriter()
		p.GenesisKeyHash.ToCbor(kw)
		entries = append(entries, cborcodec.SortedMapEntry{Key: kw.Encoded(), Value: p.ParamUpdate})
	}
	w.WriteSortedMap(entries)
	w.WriteUint(u.Epoch)
	_ = w.WriteEnd()
}

// UpdateFromCbor reads `[proposals_map, epoch]`.
func UpdateFromCbor(r *cborcodec.Reader) (*Update, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return nil, err
	}
	u := NewUpdate(0)
	n, err := r.ReadStartMap(nil)
	if err != nil {
		return nil, err
	}
	readEntry := func() error {
		keyHash, err := primitives.Hash28FromCbor(r)
		if err != nil {
			return err
		}
		raw, err := r.ReadEncodedValue()
		if err != nil {
			return err
		}
		u.Propose(keyHash, raw)
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
	epoch, err := r.ReadUint()
	if err != nil {
		return nil, err
	}
	u.Epoch = epoch
	if err := r.ReadEnd(); err != nil {
		return nil, err
	}
	return u, nil
}

// Withdrawals is the reward_account -> coin map a transaction body
// carries directly (distinct from a GovernanceAction's treasury
// withdrawals, which move funds from the treasury rather than
// a registered reward account's accrued rewards).
type Withdrawals struct {
	inner *containers.Map[rewardAccountKey, coinValue]
}

// NewWithdrawals returns an empty Withdrawals.
func NewWithdrawals() *Withdrawals {
	return &Withdrawals{inner: containers.NewMap[rewardAccountKey, coinValue]()}
}

// Set records a withdrawal of amount lovelace from rewardAccount.
func (w *Withdrawals) Set(rewardAccount []byte, amount uint64) {
	w.inner.Set(rewardAccountKey(rewardAccount), coinValue(amount))
}

// Len returns the number of reward accounts withdrawn from.
func (w *Withdrawals) Len() int { return w.inner.Len() }

// ToCbor writes the canonically sorted withdrawal map.
func (w *Withdrawals) ToCbor(writer *cborcodec.Writer) { w.inner.ToCbor(writer) }

// WithdrawalsFromCbor decodes a withdrawal map.
func WithdrawalsFromCbor(r *cborcodec.Reader) (*Withdrawals, error) {
	m, err := containers.MapFromCbor[rewardAccountKey, coinValue](r, rewardAccountKeyFromCbor, coinValueFromCbor)
	if err != nil {
		return nil, err
	}
	return &Withdrawals{inner: m}, nil
}
