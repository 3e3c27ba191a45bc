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

import (
	"sort"
	"time"

	"github.com/fireflyframework/ojo/internal/diff"
	"github.com/fireflyframework/ojo/internal/ids"
)

// DepLookup returns the direct deps already recorded for an applied patch.
// internal/store supplies the concrete implementation backed by the patch
// store; tests can supply a map-backed stub.
type DepLookup func(ids.PatchID) []ids.PatchID

// FromDiff builds an unsealed patch from a line diff, following the
// construction procedure of SPEC_FULL.md §4.5: assign local indices to
// inserted lines in edit-script order, emit NewEdge/NewNode/DeleteNode ops
// that thread prior content through both the retained and freshly inserted
// lines, compute the minimal dependency set, then hash.
//
// oldOrder must have the same length as, and correspond 1:1 with, the
// "old" slice that produced edits via diff.Lines; it supplies the NodeId
// backing each OldIndex.
func FromDiff(oldOrder []ids.NodeID, edits []diff.Edit, lookup DepLookup, author, description string, now time.Time) (*Patch, error) {
	var ops []Op
	referenced := make(patchSet)
	local := 0
	prev := ids.Start
	referenced.noteIfExternal(prev)

	for _, e := range edits {
		switch e.Kind {
		case diff.KeepOld:
			id := oldOrder[e.OldIndex]
			ops = append(ops, NewEdgeOp(prev, id))
			referenced.noteIfExternal(id)
			prev = id
		case diff.Delete:
			id := oldOrder[e.OldIndex]
			ops = append(ops, DeleteNodeOp(id))
			referenced.noteIfExternal(id)
		case diff.Insert:
			nn := NewNodeOp(local, e.Content)
			local++
			self := nn.selfNode()
			ops = append(ops, nn, NewEdgeOp(prev, self))
			prev = self
		}
	}
	ops = append(ops, NewEdgeOp(prev, ids.End))

	deps := MinimalDeps(keys(referenced), lookup)

	p := &Patch{
		Author:      author,
		Description: description,
		Timestamp:   now.UTC(),
		Deps:        deps,
		Ops:         ops,
	}
	if err := p.Seal(); err != nil {
		return nil, err
	}
	return p, nil
}

type patchSet map[ids.PatchID]bool

func (s patchSet) noteIfExternal(n ids.NodeID) {
	if n.Patch == ids.Zero || n.Patch == Pending {
		return
	}
	s[n.Patch] = true
}

func keys(s patchSet) []ids.PatchID {
	out := make([]ids.PatchID, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MinimalDeps reduces candidates to the minimal set whose transitive
// closure (via lookup) still covers every candidate: a candidate is
// dropped when some other candidate already reaches it through its own
// recorded deps.
func MinimalDeps(candidates []ids.PatchID, lookup DepLookup) []ids.PatchID {
	if len(candidates) == 0 {
		return nil
	}
	reach := make(map[ids.PatchID]map[ids.PatchID]bool, len(candidates))
	for _, c := range candidates {
		reach[c] = transitiveDeps(c, lookup)
	}

	var minimal []ids.PatchID
	for _, cand := range candidates {
		redundant := false
		for _, other := range candidates {
			if other == cand {
				continue
			}
			if reach[other][cand] {
				redundant = true
				break
			}
		}
		if !redundant {
			minimal = append(minimal, cand)
		}
	}
	sort.Slice(minimal, func(i, j int) bool { return minimal[i] < minimal[j] })
	return minimal
}

// TransitiveDeps returns every patch id reachable from start by following
// recorded deps, not including start itself. internal/store uses this to
// find the dependents of a patch being unapplied.
func TransitiveDeps(start ids.PatchID, lookup DepLookup) map[ids.PatchID]bool {
	return transitiveDeps(start, lookup)
}

func transitiveDeps(start ids.PatchID, lookup DepLookup) map[ids.PatchID]bool {
	visited := make(map[ids.PatchID]bool)
	var walk func(ids.PatchID)
	walk = func(p ids.PatchID) {
		for _, d := range lookup(p) {
			if !visited[d] {
				visited[d] = true
				walk(d)
			}
		}
	}
	walk(start)
	return visited
}
