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

package render

import (
	"sort"
	"strings"

	"github.com/fireflyframework/ojo/internal/digraph"
	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
)

// Result is the outcome of linearizing a graggle.
type Result struct {
	// Order lists the non-deleted, non-sentinel nodes in document order.
	// Empty when Conflicted is true.
	Order []ids.NodeID
	// Conflicted is true when the live-and-pseudo edge relation admits more
	// than one valid topological order, i.e. the file has an unresolved
	// conflict.
	Conflicted bool
	// Frontier holds, when Conflicted is true, the node ids that were
	// simultaneously orderable at the point the ambiguity was detected —
	// candidates for a resolver to choose between.
	Frontier []ids.NodeID
}

// OrderingGraph builds the digraph used to linearize g: every non-deleted
// node (sentinels included), every live edge whose endpoints are both
// non-deleted, and a pseudo-edge for every (live predecessor, live
// successor) pair bridged by a run of one or more deleted nodes.
func OrderingGraph(g *graggle.Graggle) *digraph.Graph[ids.NodeID] {
	full := digraph.New[ids.NodeID]()
	for id := range g.Nodes {
		full.AddNode(id)
	}
	for k := range g.LiveEdges {
		full.AddEdge(k.Src, k.Dst)
	}

	rg := digraph.New[ids.NodeID]()
	for id, n := range g.Nodes {
		if !n.Deleted() {
			rg.AddNode(id)
		}
	}
	for id, n := range g.Nodes {
		if n.Deleted() {
			continue
		}
		for _, s := range bridgeSuccessors(g, full, id) {
			rg.AddEdge(id, s)
		}
	}
	return rg
}

// bridgeSuccessors returns the non-deleted nodes reachable from start by
// following live edges through zero or more deleted nodes. It implements
// the G3 reachability guarantee: a node's non-deleted successors must stay
// reachable even after everything between it and them is tombstoned.
func bridgeSuccessors(g *graggle.Graggle, full *digraph.Graph[ids.NodeID], start ids.NodeID) []ids.NodeID {
	visited := make(map[ids.NodeID]bool)
	var result []ids.NodeID
	var walk func(ids.NodeID)
	walk = func(u ids.NodeID) {
		for _, v := range full.OutNeighbors(u) {
			if visited[v] {
				continue
			}
			visited[v] = true
			if g.Nodes[v].Deleted() {
				walk(v)
			} else {
				result = append(result, v)
			}
		}
	}
	walk(start)
	return result
}

// Order linearizes g. The returned order excludes the Start/End sentinels.
func Order(g *graggle.Graggle) Result {
	rg := OrderingGraph(g)
	topo := rg.TopologicalSort()
	if !topo.Complete {
		// A cycle can only arise from a malformed graggle (G2 violation);
		// treat it the same as an unresolved conflict rather than panicking.
		return Result{Conflicted: true}
	}
	if !topo.Unique {
		return Result{Conflicted: true, Frontier: Progress(rg).Frontier}
	}

	order := make([]ids.NodeID, 0, len(topo.Order))
	for _, id := range topo.Order {
		if id == ids.Start || id == ids.End {
			continue
		}
		order = append(order, id)
	}
	return Result{Order: order}
}

// StepResult is a single point in a step-by-step Kahn's algorithm pass:
// every node placed so far, in order, and the set of nodes simultaneously
// orderable next. Frontier is empty when the pass placed every node without
// ambiguity (or stopped at a cycle), and holds more than one entry exactly
// at the point a conflict was detected — the resolver (internal/resolve) uses that set to ask a user
// which one comes first.
type StepResult struct {
	Placed   []ids.NodeID
	Frontier []ids.NodeID
}

// Progress runs Kahn's algorithm on rg until either every node is placed or
// more than one node is simultaneously orderable, and reports both the
// deterministic prefix and the frontier at that point.
func Progress(rg *digraph.Graph[ids.NodeID]) StepResult {
	inDegree := make(map[ids.NodeID]int)
	for _, n := range rg.Nodes() {
		inDegree[n] = 0
	}
	for _, n := range rg.Nodes() {
		for _, m := range rg.OutNeighbors(n) {
			inDegree[m]++
		}
	}

	var placed, frontier []ids.NodeID
	removed := make(map[ids.NodeID]bool)
	for len(removed) < len(inDegree) {
		var zero []ids.NodeID
		for _, n := range rg.Nodes() {
			if !removed[n] && inDegree[n] == 0 {
				zero = append(zero, n)
			}
		}
		sort.Slice(zero, func(i, j int) bool { return zero[i].String() < zero[j].String() })
		if len(zero) == 0 {
			break
		}
		if len(zero) > 1 {
			frontier = zero
			break
		}
		placed = append(placed, zero[0])
		removed[zero[0]] = true
		for _, m := range rg.OutNeighbors(zero[0]) {
			inDegree[m]--
		}
	}
	if frontier == nil && len(removed) == len(inDegree) {
		frontier = nil // fully ordered, nothing ambiguous
	}
	return StepResult{Placed: placed, Frontier: frontier}
}

// Text renders r.Order against the graggle's node content into a single
// file body. trailingNewline controls whether the last line is terminated,
// mirroring the per-branch newline-policy flag recorded at ingestion
// (SPEC_FULL.md §12).
func Text(g *graggle.Graggle, order []ids.NodeID, trailingNewline bool) string {
	lines := make([]string, 0, len(order))
	for _, id := range order {
		lines = append(lines, g.Nodes[id].Content)
	}
	body := strings.Join(lines, "\n")
	if trailingNewline && len(lines) > 0 {
		body += "\n"
	}
	return body
}
