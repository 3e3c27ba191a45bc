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

// Package graggle implements the persistent line graph described in §3 and
// §4.4 of SPEC_FULL.md: nodes carrying content and a tombstone bit, and a
// set of live ordering edges between them.
//
// A branch's graggle is treated as a pure function of the ordered list of
// applied patches (see internal/patch.Replay): rather than mutating a
// long-lived graggle in place and reversing individual ops on unapply, ojo
// rebuilds the graggle from scratch by replaying NewNode/NewEdge/DeleteNode/
// UndeleteNode ops for exactly the patches currently in a branch's applied
// set, in order. "Unapplying" a patch is then just "stop including it in
// the replay" — which trivially satisfies P1 (apply;unapply is a no-op) and
// P2 (independent patches commute) without a parallel family of op-reversal
// functions. §4.8 explicitly allows a branch to "reconstruct its graggle
// from its applied set + patch store — either lazily or cached", so this is
// a spec-sanctioned implementation choice, recorded in DESIGN.md.
package graggle

import "github.com/fireflyframework/ojo/internal/ids"

// Node is a single line: its content, and the set of patches that have
// independently marked it deleted. The node is deleted iff that set is
// non-empty (spec.md §4.4's "deleting patches" scheme), so one patch's
// deletion can be withdrawn from the replay without resurrecting a line two
// different patches both chose to delete.
type Node struct {
	Content         string
	DeletingPatches map[ids.PatchID]bool
}

// Deleted reports whether any patch currently being replayed has deleted
// this node.
func (n *Node) Deleted() bool {
	return len(n.DeletingPatches) > 0
}

// EdgeKey identifies a directed ordering edge between two nodes.
type EdgeKey struct {
	Src, Dst ids.NodeID
}

// Graggle is the directed graph of lines for one branch at one point in the
// replay.
type Graggle struct {
	Nodes     map[ids.NodeID]*Node
	LiveEdges map[EdgeKey]bool
}

// New returns an empty graggle containing only the two sentinel nodes.
func New() *Graggle {
	g := &Graggle{
		Nodes:     make(map[ids.NodeID]*Node),
		LiveEdges: make(map[EdgeKey]bool),
	}
	g.Nodes[ids.Start] = &Node{DeletingPatches: make(map[ids.PatchID]bool)}
	g.Nodes[ids.End] = &Node{DeletingPatches: make(map[ids.PatchID]bool)}
	return g
}

// IntroduceNode adds a new line. Both sentinel ids are reserved and must
// never be passed here.
func (g *Graggle) IntroduceNode(id ids.NodeID, content string) {
	g.Nodes[id] = &Node{Content: content, DeletingPatches: make(map[ids.PatchID]bool)}
}

// HasNode reports whether id has been introduced.
func (g *Graggle) HasNode(id ids.NodeID) bool {
	_, ok := g.Nodes[id]
	return ok
}

// IntroduceEdge adds a live ordering edge. Idempotent.
func (g *Graggle) IntroduceEdge(k EdgeKey) {
	g.LiveEdges[k] = true
}

// MarkDeleted records that patch has deleted id.
func (g *Graggle) MarkDeleted(id ids.NodeID, patch ids.PatchID) {
	if n, ok := g.Nodes[id]; ok {
		n.DeletingPatches[patch] = true
	}
}

// ClearDeletions removes every deleting patch recorded against id — the
// effect of an UndeleteNode op during forward replay.
func (g *Graggle) ClearDeletions(id ids.NodeID) {
	if n, ok := g.Nodes[id]; ok {
		n.DeletingPatches = make(map[ids.PatchID]bool)
	}
}

// NonDeletedCount returns the number of live (non-tombstoned) nodes,
// sentinels included.
func (g *Graggle) NonDeletedCount() int {
	n := 0
	for _, node := range g.Nodes {
		if !node.Deleted() {
			n++
		}
	}
	return n
}

// Clone deep-copies g. The resolver (internal/resolve) uses this to try
// ordering decisions against a scratch copy before committing them as
// patch ops.
func (g *Graggle) Clone() *Graggle {
	out := &Graggle{
		Nodes:     make(map[ids.NodeID]*Node, len(g.Nodes)),
		LiveEdges: make(map[EdgeKey]bool, len(g.LiveEdges)),
	}
	for id, n := range g.Nodes {
		deleting := make(map[ids.PatchID]bool, len(n.DeletingPatches))
		for p := range n.DeletingPatches {
			deleting[p] = true
		}
		out.Nodes[id] = &Node{Content: n.Content, DeletingPatches: deleting}
	}
	for k, v := range g.LiveEdges {
		out.LiveEdges[k] = v
	}
	return out
}
