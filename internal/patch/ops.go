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

package patch

import "github.com/fireflyframework/ojo/internal/ids"

// Pending is the reserved patch id used inside a patch's own ops to refer
// to a line the same patch introduces. It never matches ids.PatchID.Valid,
// so a corrupted patch file that leaks a Pending reference into an applied
// op is easy to catch defensively.
const Pending = ids.PatchID("SELF")

// Kind names one of the four op variants of §3 of SPEC_FULL.md.
type Kind string

const (
	NewNodeKind      Kind = "new_node"
	NewEdgeKind      Kind = "new_edge"
	DeleteNodeKind   Kind = "delete_node"
	UndeleteNodeKind Kind = "undelete_node"
)

// Op is one operation within a patch. Exactly the fields relevant to Kind
// are populated; the rest are left zero and omitted on serialization.
type Op struct {
	Kind    Kind        `yaml:"kind"`
	Local   int         `yaml:"local,omitempty"`
	Content string      `yaml:"content,omitempty"`
	Src     *ids.NodeID `yaml:"src,omitempty"`
	Dst     *ids.NodeID `yaml:"dst,omitempty"`
	Target  *ids.NodeID `yaml:"target,omitempty"`
}

// NewNodeOp introduces a line at this patch's local index, with content.
func NewNodeOp(local int, content string) Op {
	return Op{Kind: NewNodeKind, Local: local, Content: content}
}

// NewEdgeOp introduces a live ordering edge from src to dst. Either
// endpoint may use Pending to refer back to a NewNodeOp earlier in the
// same patch.
func NewEdgeOp(src, dst ids.NodeID) Op {
	return Op{Kind: NewEdgeKind, Src: &src, Dst: &dst}
}

// DeleteNodeOp marks target as deleted by this patch.
func DeleteNodeOp(target ids.NodeID) Op {
	return Op{Kind: DeleteNodeKind, Target: &target}
}

// UndeleteNodeOp clears every deleting patch currently recorded against
// target.
func UndeleteNodeOp(target ids.NodeID) Op {
	return Op{Kind: UndeleteNodeKind, Target: &target}
}

// selfNode returns the patch-local NodeId a NewNodeOp introduces.
func (o Op) selfNode() ids.NodeID {
	return ids.NodeID{Patch: Pending, Local: o.Local}
}

// resolve substitutes real for every Pending reference in a copy of n.
func resolve(n ids.NodeID, real ids.PatchID) ids.NodeID {
	if n.Patch == Pending {
		return ids.NodeID{Patch: real, Local: n.Local}
	}
	return n
}

// referenced appends, to into, every non-sentinel, non-self patch id this
// op names — the raw material for minimal dependency computation.
func (o Op) referenced(into map[ids.PatchID]bool) {
	note := func(n *ids.NodeID) {
		if n == nil {
			return
		}
		if n.Patch == ids.Zero || n.Patch == Pending {
			return
		}
		into[n.Patch] = true
	}
	note(o.Src)
	note(o.Dst)
	note(o.Target)
}
