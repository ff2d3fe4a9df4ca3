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
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func hash28Of(t *testing.T, fill byte) primitives.Hash28 {
	t.Helper()
	b := make([]byte, 28)
	for i := range b {
		b[i] = fill
	}
	h, err := primitives.NewHash28(b)
	require.NoError(t, err)
	return h
}

func roundTripCert(t *testing.T, c ledger.Certificate) ledger.Certificate {
	t.Helper()
	w := cborcodec.NewWriter()
	c.ToCbor(w)
	require.NoError(t, w.LastError())
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.CertificateFromCbor(r)
	require.NoError(t, err)
	return decoded
}

func TestStakeRegistrationLegacyCertRoundTrip(t *testing.T) {
	cred := primitives.NewKeyHashCredential(hash28Of(t, 0x01))
	c := ledger.NewStakeRegistrationLegacyCert(cred)
	decoded := roundTripCert(t, c)
	require.Equal(t, ledger.CertStakeRegistrationLegacy, decoded.Kind)
	require.Equal(t, cred, decoded.StakeCredential)
}

func TestStakeRegistrationCertCarriesDeposit(t *testing.T) {
	cred := primitives.NewKeyHashCredential(hash28Of(t, 0x02))
	c := ledger.NewStakeRegistrationCert(cred, 2000000)
	decoded := roundTripCert(t, c)
	require.Equal(t, uint64(2000000), decoded.Deposit)
}

func TestStakeAndVoteDelegationCertRoundTrip(t *testing.T) {
	cred := primitives.NewKeyHashCredential(hash28Of(t, 0x03))
	pool := hash28Of(t, 0x04)
	drep := ledger.DRep{Kind: ledger.DRepAlwaysAbstain}
	c := ledger.NewStakeAndVoteDelegationCert(cred, pool, drep)
	decoded := roundTripCert(t, c)
	require.Equal(t, pool, decoded.PoolKeyHash)
	require.Equal(t, ledger.DRepAlwaysAbstain, decoded.DRep.Kind)
}

func TestMirToOtherPotCertRoundTrip(t *testing.T) {
	c := ledger.NewMirToOtherPotCert(ledger.MirTreasury, 500000)
	decoded := roundTripCert(t, c)
	require.Equal(t, ledger.MirTreasury, decoded.MirPot)
	require.NotNil(t, decoded.MirTarget.ToOtherPot)
	require.Equal(t, uint64(500000), *decoded.MirTarget.ToOtherPot)
}

func TestMirToStakeCredsCertRoundTrip(t *testing.T) {
	cred := primitives.NewScriptHashCredential(hash28Of(t, 0x05))
	c := ledger.NewMirToStakeCredsCert(ledger.MirReserves, map[primitives.Credential]int64{cred: 42})
	decoded := roundTripCert(t, c)
	require.Nil(t, decoded.MirTarget.ToOtherPot)
	require.Len(t, decoded.MirTarget.ToStakeCreds, 1)
}

func TestCommitteeHotAuthCertRoundTrip(t *testing.T) {
	cold := primitives.NewKeyHashCredential(hash28Of(t, 0x06))
	hot := primitives.NewScriptHashCredential(hash28Of(t, 0x07))
	c := ledger.NewCommitteeHotAuthCert(cold, hot)
	decoded := roundTripCert(t, c)
	require.Equal(t, cold, decoded.ColdCredential)
	require.Equal(t, hot, decoded.HotCredential)
}

func TestCommitteeColdResignCertWithoutAnchor(t *testing.T) {
	cold := primitives.NewKeyHashCredential(hash28Of(t, 0x08))
	c := ledger.NewCommitteeColdResignCert(cold, nil)
	decoded := roundTripCert(t, c)
	require.Nil(t, decoded.Anchor)
}

func TestDRepRegistrationCertWithAnchor(t *testing.T) {
	cred := primitives.NewKeyHashCredential(hash28Of(t, 0x09))
	anchor, err := primitives.NewAnchor("https://example.test/drep.json", hash32Of(t, 0x0a))
	require.NoError(t, err)
	c := ledger.NewDRepRegistrationCert(cred, 500000000, &anchor)
	decoded := roundTripCert(t, c)
	require.NotNil(t, decoded.Anchor)
	require.Equal(t, anchor, *decoded.Anchor)
}

func TestDRepFromCborRejectsUnknownDiscriminator(t *testing.T) {
	w := cborcodec.NewWriter()
	w.WriteStartArray(1)
	w.WriteUint(9)
	_ = w.WriteEnd()

	r := cborcodec.NewReader(w.Encoded())
	_, err := ledger.DRepFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrUnknownDiscriminator)
}

func TestCertificateFromCborRejectsUnknownDiscriminator(t *testing.T) {
	w := cborcodec.NewWriter()
	w.WriteStartArray(1)
	w.WriteUint(99)
	_ = w.WriteEnd()

	r := cborcodec.NewReader(w.Encoded())
	_, err := ledger.CertificateFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrUnknownDiscriminator)
}

// A committee hot-key authorization certificate carries discriminator 14
// in the real Conway CDDL, not an adjacent small integer: [14,
// cold_credential, hot_credential]. This decodes that exact wire shape
// with two zero-filled key-hash credentials and checks the discriminator
// byte lands on 0x0e.
func TestCommitteeHotAuthCertDecodesKnownDiscriminator(t *testing.T) {
	credHex := "8200581c" + strings.Repeat("00", 28)
	certHex := "830e" + credHex + credHex

	r := cborcodec.NewReader(mustHex(t, certHex))
	decoded, err := ledger.CertificateFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, ledger.CertCommitteeHotAuth, decoded.Kind)
	require.Equal(t, uint64(14), uint64(ledger.CertCommitteeHotAuth))

	zero := hash28Of(t, 0x00)
	require.Equal(t, primitives.NewKeyHashCredential(zero), decoded.ColdCredential)
	require.Equal(t, primitives.NewKeyHashCredential(zero), decoded.HotCredential)

	w := cborcodec.NewWriter()
	decoded.ToCbor(w)
	require.NoError(t, w.LastError())
	require.Equal(t, certHex, w.EncodedHex())
}
