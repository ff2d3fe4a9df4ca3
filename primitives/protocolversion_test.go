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

package primitives_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

func TestProtocolVersionRoundTrip(t *testing.T) {
	pv := primitives.NewProtocolVersion(10, 0)
	w := cborcodec.NewWriter()
	pv.ToCbor(w)
	r := cborcodec.NewReader(w.Encoded())
	decoded, err := primitives.ProtocolVersionFromCbor(r)
	require.NoError(t, err)
	require.Equal(t, pv, decoded)
}
