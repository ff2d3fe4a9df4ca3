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

package scripts

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/cardano-forge/ledger/cborcodec"
	"github.com/cardano-forge/ledger/primitives"
)

// ErrInvalidJson is returned for malformed native-script JSON.
var ErrInvalidJson = fmt.Errorf("native script: invalid json")

// ErrUnknownScriptKind is returned for an unrecognized "type" field.
var ErrUnknownScriptKind = fmt.Errorf("native script: unknown type")

type nativeScriptJson struct {
	Type     string              `json:"type"`
	KeyHash  string              `json:"keyHash,omitempty"`
	Scripts  []nativeScriptJson  `json:"scripts,omitempty"`
	Required *int                `json:"required,omitempty"`
	Slot     *uint64             `json:"slot,omitempty"`
}

// ToJson renders the cardano-cli textual convention. Note the "before"/
// "after" inversion is deliberate: InvalidAfter serializes as "before"
// and InvalidBefore as "after" — do not "fix" this.
func (n NativeScript) ToJson() ([]byte, error) {
	return json.Marshal(n.toJsonNode())
}

func (n NativeScript) toJsonNode() nativeScriptJson {
	switch n.Kind {
	case NativeScriptPubkey:
		return nativeScriptJson{Type: "sig", KeyHash: hex.EncodeToString(n.KeyHash[:])}
	case NativeScriptAllOf:
		return nativeScriptJson{Type: "all", Scripts: childNodes(n.Scripts)}
	case NativeScriptAnyOf:
		return nativeScriptJson{Type: "any", Scripts: childNodes(n.Scripts)}
	case NativeScriptNOfK:
		req := int(n.Required)
		return nativeScriptJson{Type: "atLeast", Required: &req, Scripts: childNodes(n.Scripts)}
	case NativeScriptInvalidAfter:
		slot := n.Slot
		return nativeScriptJson{Type: "before", Slot: &slot}
	case NativeScriptInvalidBefore:
		slot := n.Slot
		return nativeScriptJson{Type: "after", Slot: &slot}
	default:
		return nativeScriptJson{}
	}
}

func childNodes(children []NativeScript) []nativeScriptJson {
	out := make([]nativeScriptJson, len(children))
	for i, c := range children {
		out[i] = c.toJsonNode()
	}
	return out
}

// NativeScriptFromJson parses the cardano-cli textual convention.
func NativeScriptFromJson(data []byte) (NativeScript, error) {
	var node nativeScriptJson
	if err := json.Unmarshal(data, &node); err != nil {
		return NativeScript{}, fmt.Errorf("%w: %v", ErrInvalidJson, err)
	}
	return nodeToScript(node)
}

func nodeToScript(node nativeScriptJson) (NativeScript, error) {
	switch node.Type {
	case "sig":
		raw, err := hex.DecodeString(node.KeyHash)
		if err != nil {
			return NativeScript{}, fmt.Errorf("%w: keyHash is not hex: %v", ErrInvalidJson, err)
		}
		keyHash, err := primitives.NewHash28(raw)
		if err != nil {
			return NativeScript{}, fmt.Errorf("%w: %v", ErrInvalidJson, err)
		}
		return NewPubkeyScript(keyHash), nil
	case "all", "any":
		children, err := nodesToScripts(node.Scripts)
		if err != nil {
			return NativeScript{}, err
		}
		if node.Type == "all" {
			return NewAllOfScript(children...), nil
		}
		return NewAnyOfScript(children...), nil
	case "atLeast":
		if node.Required == nil {
			return NativeScript{}, fmt.Errorf("%w: atLeast missing required", ErrInvalidJson)
		}
		children, err := nodesToScripts(node.Scripts)
		if err != nil {
			return NativeScript{}, err
		}
		return NewNOfKScript(uint64(*node.Required), children...), nil
	case "before":
		// Textual "before" maps to InvalidAfter.
		if node.Slot == nil {
			return NativeScript{}, fmt.Errorf("%w: before missing slot", ErrInvalidJson)
		}
		return NewInvalidAfterScript(*node.Slot), nil
	case "after":
		// Textual "after" maps to InvalidBefore.
		if node.Slot == nil {
			return NativeScript{}, fmt.Errorf("%w: after missing slot", ErrInvalidJson)
		}
		return NewInvalidBeforeScript(*node.Slot), nil
	default:
		return NativeScript{}, fmt.Errorf("%w: %q", ErrUnknownScriptKind, node.Type)
	}
}

func nodesToScripts(nodes []nativeScriptJson) ([]NativeScript, error) {
	out := make([]NativeScript, len(nodes))
	for i, n := range nodes {
		s, err := nodeToScript(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// cborBytesOf returns n's canonical CBOR encoding.
func cborBytesOf(n NativeScript) []byte {
	w := cborcodec.NewWriter()
	n.ToCbor(w)
	return w.Encoded()
}
