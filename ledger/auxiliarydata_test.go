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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/ledger"
	"github.com/cardano-forge/ledger/primitives"
	"github.com/cardano-forge/ledger/scripts"
)

func TestIntMetadatumRoundTrip(t *testing.T) {
	m := ledger.NewIntMetadatum(-42)
	w := cborcodec.NewWriter()
	m.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.MetadatumFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, ledger.MetadatumInt, decoded.Kind)
	require.Equal(t, int64(-42), decoded.Int)
}

func TestListMetadatumRoundTrip(t *testing.T) {
	m := ledger.NewListMetadatum([]ledger.Metadatum{
		ledger.NewIntMetadatum(1),
		ledger.NewTextMetadatum("two"),
	})
	w := cborcodec.NewWriter()
	m.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.MetadatumFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, ledger.MetadatumList, decoded.Kind)
	require.Len(t, decoded.List, 2)
}

func TestMapMetadatumRoundTrip(t *testing.T) {
	m := ledger.NewMapMetadatum([]ledger.MetadatumPair{
		{Key: ledger.NewTextMetadatum("k"), Value: ledger.NewBytesMetadatum([]byte{0x01})},
	})
	w := cborcodec.NewWriter()
	m.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := ledger.MetadatumFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, ledger.MetadatumMap, decoded.Kind)
	require.Len(t, decoded.Map, 1)
}

func TestAuxiliaryDataBareMetadataOnly(t *testing.T) {
	a := ledger.NewAuxiliaryData()
	w := cborcodec.NewWriter()
	a.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	state, err := r.PeekState()
	require.NoError(t, err)
	require.Equal(t, cborcodec.MajorMap, state.Major)

	decoded, err := ledger.AuxiliaryDataFromCbor(cborcodec.NewReader(w.Encoded()))
	require.NoError(t, err)
	require.Empty(t, decoded.NativeScripts)
}

func TestAuxiliaryDataShelleyMaFormWithNativeScriptsOnly(t *testing.T) {
	a := ledger.NewAuxiliaryData()
	a.NativeScripts = []scripts.NativeScript{scripts.NewPubkeyScript(hash28Of(t, 0x80))}

	w := cborcodec.NewWriter()
	a.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	state, err := r.PeekState()
	require.NoError(t, err)
	require.Equal(t, cborcodec.MajorArray, state.Major)

	decoded, err := ledger.AuxiliaryDataFromCbor(cborcodec.NewReader(w.Encoded()))
	require.NoError(t, err)
	require.Len(t, decoded.NativeScripts, 1)
}

func TestAuxiliaryDataTaggedMapFormWithPlutusScripts(t *testing.T) {
	a := ledger.NewAuxiliaryData()
	a.PlutusV2Scripts = []scripts.PlutusScript{scripts.NewPlutusScript(primitives.PlutusV2, []byte{0x01})}

	w := cborcodec.NewWriter()
	a.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	state, err := r.PeekState()
	require.NoError(t, err)
	require.Equal(t, cborcodec.MajorTag, state.Major)

	decoded, err := ledger.AuxiliaryDataFromCbor(cborcodec.NewReader(w.Encoded()))
	require.NoError(t, err)
	require.Len(t, decoded.PlutusV2Scripts, 1)
}

func TestAuxiliaryDataMapFormRejectsUnknownKey(t *testing.T) {
	kw := cborcodec.NewWriter()
	kw.WriteUint(9)
	vw := cborcodec.NewWriter()
	vw.WriteUint(1)
	entries := []cborcodec.SortedMapEntry{{Key: kw.Encoded(), Value: vw.Encoded()}}

	w := cborcodec.NewWriter()
	w.WriteTag(259)
	w.WriteSortedMap(entries)

	r := cborcodec.NewReader(w.Encoded())
	_, err := ledger.AuxiliaryDataFromCbor(r)
	require.ErrorIs(t, err, cborcodec.ErrUnknownDiscriminator)
}
