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
	"net"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/containers"
	"github.com/cardano-forge/ledger/primitives"
)

// PoolRelayKind discriminates a stake pool's advertised relay.
type PoolRelayKind int

const (
	RelaySingleHostAddr PoolRelayKind = iota
	RelaySingleHostName
	RelayMultiHostName
)

// PoolRelay is the sum of the three ways a pool can advertise how to
// reach it: a direct IPv4/IPv6 address pair, a DNS name resolving to an
// A/AAAA record, or a DNS name resolving to SRV records.
type PoolRelay struct {
	Kind PoolRelayKind
	Port *uint16
	Ipv4 net.IP // 4-byte form
	Ipv6 net.IP // 16-byte form
	Dns  string
}

// NewSingleHostAddrRelay validates that, when present, ipv4 is exactly 4
// bytes and ipv6 is exactly 16 bytes.
func NewSingleHostAddrRelay(port *uint16, ipv4, ipv6 net.IP) (PoolRelay, error) {
	if ipv4 != nil {
		if v4 := ipv4.To4(); v4 != nil {
			ipv4 = v4
		} else {
			return PoolRelay{}, fmt.Errorf("%w: relay ipv4 must be 4 bytes", cborcodec.ErrInvariantViolation)
		}
	}
	if ipv6 != nil {
		if v6 := ipv6.To16(); v6 != nil && ipv6.To4() == nil {
			ipv6 = v6
		} else {
			return PoolRelay{}, fmt.Errorf("%w: relay ipv6 must be 16 bytes", cborcodec.ErrInvariantViolation)
		}
	}
	return PoolRelay{Kind: RelaySingleHostAddr, Port: port, Ipv4: ipv4, Ipv6: ipv6}, nil
}

// NewSingleHostNameRelay constructs a DNS A/AAAA relay.
func NewSingleHostNameRelay(port *uint16, dns string) PoolRelay {
	return PoolRelay{Kind: RelaySingleHostName, Port: port, Dns: dns}
}

// NewMultiHostNameRelay constructs a DNS SRV relay.
func NewMultiHostNameRelay(dns string) PoolRelay {
	return PoolRelay{Kind: RelayMultiHostName, Dns: dns}
}

// ToCbor writes `[tag, ...]` per variant.
func (p PoolRelay) ToCbor(w *cborcodec.Writer) {
	switch p.Kind {
	case RelaySingleHostAddr:
		w.WriteStartArray(4)
		w.WriteUint(uint64(p.Kind))
		writeOptionalPort(w, p.Port)
		writeOptionalIp(w, p.Ipv4)
		writeOptionalIp(w, p.Ipv6)
		_ = w.WriteEnd()
	case RelaySingleHostName:
		w.WriteStartArray(3)
		w.WriteUint(uint64(p.Kind))
		writeOptionalPort(w, p.Port)
		w.WriteTextString(p.Dns)
		_ = w.WriteEnd()
	case RelayMultiHostName:
		w.WriteStartArray(2)
		w.WriteUint(uint64(p.Kind))
		w.WriteTextString(p.Dns)
		_ = w.WriteEnd()
	}
}

func writeOptionalPort(w *cborcodec.Writer, port *uint16) {
	if port == nil {
		w.WriteNull()
		return
	}
	w.WriteUint(uint64(*port))
}

func writeOptionalIp(w *cborcodec.Writer, ip net.IP) {
	if ip == nil {
		w.WriteNull()
		return
	}
	w.WriteByteString(ip)
}

func readOptionalPort(r *cborcodec.Reader) (*uint16, error) {
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
	v, err := r.ReadUint()
	if err != nil {
		return nil, err
	}
	port := uint16(v)
	return &port, nil
}

func readOptionalIp(r *cborcodec.Reader) (net.IP, error) {
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
	b, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	return net.IP(b), nil
}

// PoolRelayFromCbor reads `[tag, ...]`.
func PoolRelayFromCbor(r *cborcodec.Reader) (PoolRelay, error) {
	n, err := r.ReadStartArray(nil)
	if err != nil {
		return PoolRelay{}, err
	}
	tag, err := r.ReadUint()
	if err != nil {
		return PoolRelay{}, err
	}
	switch PoolRelayKind(tag) {
	case RelaySingleHostAddr:
		port, err := readOptionalPort(r)
		if err != nil {
			return PoolRelay{}, err
		}
		ipv4, err := readOptionalIp(r)
		if err != nil {
			return PoolRelay{}, err
		}
		ipv6, err := readOptionalIp(r)
		if err != nil {
			return PoolRelay{}, err
		}
		if err := finishArray(r, n); err != nil {
			return PoolRelay{}, err
		}
		return NewSingleHostAddrRelay(port, ipv4, ipv6)
	case RelaySingleHostName:
		port, err := readOptionalPort(r)
		if err != nil {
			return PoolRelay{}, err
		}
		dns, err := r.ReadTextString()
		if err != nil {
			return PoolRelay{}, err
		}
		if err := finishArray(r, n); err != nil {
			return PoolRelay{}, err
		}
		return NewSingleHostNameRelay(port, dns), nil
	case RelayMultiHostName:
		dns, err := r.ReadTextString()
		if err != nil {
			return PoolRelay{}, err
		}
		if err := finishArray(r, n); err != nil {
			return PoolRelay{}, err
		}
		return NewMultiHostNameRelay(dns), nil
	default:
		return PoolRelay{}, fmt.Errorf("%w: pool relay discriminator %d", cborcodec.ErrUnknownDiscriminator, tag)
	}
}

// PoolMetadata pairs a pool's off-chain metadata URL with its hash.
type PoolMetadata struct {
	Url  string
	Hash primitives.Hash32
}

// ToCbor writes `[url, hash]`.
func (m PoolMetadata) ToCbor(w *cborcodec.Writer) {
	w.WriteStartArray(2)
	w.WriteTextString(m.Url)
	m.Hash.ToCbor(w)
	_ = w.WriteEnd()
}

// PoolMetadataFromCbor reads `[url, hash]`.
func PoolMetadataFromCbor(r *cborcodec.Reader) (PoolMetadata, error) {
	two := 2
	if _, err := r.ReadStartArray(&two); err != nil {
		return PoolMetadata{}, err
	}
	url, err := r.ReadTextString()
	if err != nil {
		return PoolMetadata{}, err
	}
	hash, err := primitives.Hash32FromCbor(r)
	if err != nil {
		return PoolMetadata{}, err
	}
	if err := r.ReadEnd(); err != nil {
		return PoolMetadata{}, err
	}
	return PoolMetadata{Url: url, Hash: hash}, nil
}

// PoolParams is the full set of fields a pool registration certificate
// carries.
type PoolParams struct {
	Operator      primitives.Hash28
	VrfKeyHash    primitives.Hash32
	Pledge        uint64
	Cost          uint64
	Margin        primitives.UnitInterval
	RewardAccount []byte // 29-byte reward address, opaque to this layer
	Owners        *containers.Set[hash28Item]
	Relays        *containers.List[PoolRelay]
	Metadata      *PoolMetadata
}

// NewPoolParams constructs a PoolParams with Conway-default (tag 258)
// owner set framing.
func NewPoolParams(
	operator primitives.Hash28,
	vrfKeyHash primitives.Hash32,
	pledge, cost uint64,
	margin primitives.UnitInterval,
	rewardAccount []byte,
	owners []primitives.Hash28,
	relays []PoolRelay,
	metadata *PoolMetadata,
) PoolParams {
	ownerSet := containers.NewSet[hash28Item]()
	for _, o := range owners {
		ownerSet.Add(hash28Item(o))
	}
	relayList := containers.NewList[PoolRelay]()
	for _, r := range relays {
		relayList.Append(r)
	}
	return PoolParams{
		Operator:      operator,
		VrfKeyHash:    vrfKeyHash,
		Pledge:        pledge,
		Cost:          cost,
		Margin:        margin,
		RewardAccount: cloneBytes(rewardAccount),
		Owners:        ownerSet,
		Relays:        relayList,
		Metadata:      metadata,
	}
}

// hash28Item adapts Hash28 to containers.Encodable.
type hash28Item primitives.Hash28

func (h hash28Item) ToCbor(w *cborcodec.Writer) { primitives.Hash28(h).ToCbor(w) }

func hash28ItemFromCbor(r *cborcodec.Reader) (hash28Item, error) {
	h, err := primitives.Hash28FromCbor(r)
	return hash28Item(h), err
}

func poolRelayFromCborAdapter(r *cborcodec.Reader) (PoolRelay, error) { return PoolRelayFromCbor(r) }

// writeFields writes the 9 pool-parameter fields in order, without an
// enclosing array header — the caller (the pool registration
// certificate) owns the single flat array these fields sit inside.
func (p PoolParams) writeFields(w *cborcodec.Writer) {
	p.Operator.ToCbor(w)
	p.VrfKeyHash.ToCbor(w)
	w.WriteUint(p.Pledge)
	w.WriteUint(p.Cost)
	p.Margin.ToCbor(w)
	w.WriteByteString(p.RewardAccount)
	p.Owners.ToCbor(w)
	p.Relays.ToCbor(w)
	writeOptionalMetadata(w, p.Metadata)
}

func writeOptionalMetadata(w *cborcodec.Writer, m *PoolMetadata) {
	if m == nil {
		w.WriteNull()
		return
	}
	m.ToCbor(w)
}

// poolParamsFieldsFromCbor reads the 9 pool-parameter fields in order; the caller is
// responsible for the enclosing array header and its closing ReadEnd.
func poolParamsFieldsFromCbor(r *cborcodec.Reader) (PoolParams, error) {
	operator, err := primitives.Hash28FromCbor(r)
	if err != nil {
		return PoolParams{}, err
	}
	vrfKeyHash, err := primitives.Hash32FromCbor(r)
	if err != nil {
		return PoolParams{}, err
	}
	pledge, err := r.ReadUint()
	if err != nil {
		return PoolParams{}, err
	}
	cost, err := r.ReadUint()
	if err != nil {
		return PoolParams{}, err
	}
	margin, err := primitives.UnitIntervalFromCbor(r)
	if err != nil {
		return PoolParams{}, err
	}
	rewardAccount, err := r.ReadByteString()
	if err != nil {
		return PoolParams{}, err
	}
	owners, err := containers.SetFromCbor[hash28Item](r, hash28ItemFromCbor)
	if err != nil {
		return PoolParams{}, err
	}
	relays, err := containers.ListFromCbor[PoolRelay](r, poolRelayFromCborAdapter)
	if err != nil {
		return PoolParams{}, err
	}
	var metadata *PoolMetadata
	state, err := r.PeekState()
	if err != nil {
		return PoolParams{}, err
	}
	if state.Major == cborcodec.MajorSimple {
		if err := r.ReadNull(); err != nil {
			return PoolParams{}, err
		}
	} else {
		m, err := PoolMetadataFromCbor(r)
		if err != nil {
			return PoolParams{}, err
		}
		metadata = &m
	}
	return PoolParams{
		Operator:      operator,
		VrfKeyHash:    vrfKeyHash,
		Pledge:        pledge,
		Cost:          cost,
		Margin:        margin,
		RewardAccount: rewardAccount,
		Owners:        owners,
		Relays:        relays,
		Metadata:      metadata,
	}, nil
}
