// Copyright 2024-2026 Firefly Software Solutions Inc.
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

// Package ids defines the content-addressed identifiers used throughout ojo:
// PatchID (a "P" + base64url(sha256) hash) and NodeID (a patch id paired
// with the local index of a line that patch introduced).
package ids

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PatchID is a 33-byte value: the ASCII byte 'P' followed by a 32-byte
// SHA-256 digest, rendered as URL-safe base64 (44 characters) for display
// and storage. The zero value is not a valid patch id — use Zero for the
// sentinel that anchors the START/END nodes.
type PatchID string

// Zero is the all-zero PatchID used only to key the two sentinel nodes
// (START, END) that bracket every graggle. It never names a real patch.
var Zero = PatchID("P" + base64.RawURLEncoding.EncodeToString(make([]byte, 32)))

var idPattern = regexp.MustCompile(`^P[A-Za-z0-9_-]{43}$`)

// HashPatch computes the PatchID for a patch's canonical serialization.
func HashPatch(canonical []byte) PatchID {
	sum := sha256.Sum256(canonical)
	return PatchID("P" + base64.RawURLEncoding.EncodeToString(sum[:]))
}

// Valid reports whether id has the correct syntactic shape: 'P' followed by
// 43 URL-safe base64 characters (32 bytes, no padding).
func (id PatchID) Valid() bool {
	return idPattern.MatchString(string(id))
}

func (id PatchID) String() string { return string(id) }

// NodeID identifies a single line: the patch that introduced it, and that
// patch's local index for the line (0-based in declaration order within
// the patch's ops).
type NodeID struct {
	Patch PatchID
	Local int
}

func (n NodeID) String() string {
	return fmt.Sprintf("%s:%d", n.Patch, n.Local)
}

// Start and End are the implicit sentinel nodes bracketing every graggle.
// They are never deleted and anchor the first/last-line edges.
var (
	Start = NodeID{Patch: Zero, Local: 0}
	End   = NodeID{Patch: Zero, Local: 1}
)

// IsSentinel reports whether n is Start or End.
func (n NodeID) IsSentinel() bool {
	return n.Patch == Zero
}

// ParseNodeID parses the "patch:local" form produced by String.
func ParseNodeID(s string) (NodeID, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return NodeID{}, fmt.Errorf("ids: malformed node id %q", s)
	}
	local, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return NodeID{}, fmt.Errorf("ids: malformed node id %q: %w", s, err)
	}
	return NodeID{Patch: PatchID(s[:idx]), Local: local}, nil
}

// MarshalYAML renders a NodeID as its compact "patch:local" string so patch
// files stay plain, diffable text rather than nested mappings.
func (n NodeID) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

// UnmarshalYAML parses the compact "patch:local" string form.
func (n *NodeID) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseNodeID(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
