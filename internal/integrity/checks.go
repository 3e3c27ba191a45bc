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

// Package integrity runs the G1-G3 graggle invariant checks of
// SPEC_FULL.md §4.4 against a branch's materialized graggle, for the
// "ojo doctor" command. It reports the same pass/fail/warn shape the
// corpus's own doctor checks use, but every check here is a structural
// property of a graggle rather than an external-toolchain probe.
package integrity

import (
	"fmt"
	"sort"

	"github.com/fireflyframework/ojo/internal/digraph"
	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/render"
	"github.com/fireflyframework/ojo/internal/ui"
)

// Run executes every check against g and returns one ui.CheckResult per
// check: G1, G2, G3, then the sentinel check.
func Run(g *graggle.Graggle) []ui.CheckResult {
	return []ui.CheckResult{
		checkG1(g),
		checkG2(g),
		checkG3(g),
		checkSentinels(g),
	}
}

// checkG1 verifies every live edge's endpoints are nodes that actually
// exist.
func checkG1(g *graggle.Graggle) ui.CheckResult {
	var bad []string
	for k := range g.LiveEdges {
		if _, ok := g.Nodes[k.Src]; !ok {
			bad = append(bad, fmt.Sprintf("%s -> %s: src missing", k.Src, k.Dst))
			continue
		}
		if _, ok := g.Nodes[k.Dst]; !ok {
			bad = append(bad, fmt.Sprintf("%s -> %s: dst missing", k.Src, k.Dst))
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return ui.CheckResult{Name: "G1 — live edge endpoints exist", Status: "fail", Detail: bad[0]}
	}
	return ui.CheckResult{Name: "G1 — live edge endpoints exist", Status: "pass", Detail: fmt.Sprintf("%d live edges", len(g.LiveEdges))}
}

// checkG2 verifies the full node-and-live-edge graph (sentinels, deleted
// nodes, and all) has no cycle. A well-formed replay can never introduce
// one; this check exists for when a db file has been hand-edited.
func checkG2(g *graggle.Graggle) ui.CheckResult {
	full := digraph.New[ids.NodeID]()
	for id := range g.Nodes {
		full.AddNode(id)
	}
	for k := range g.LiveEdges {
		full.AddEdge(k.Src, k.Dst)
	}
	topo := full.TopologicalSort()
	if !topo.Complete {
		return ui.CheckResult{Name: "G2 — no cycles", Status: "fail", Detail: "live edge relation contains a cycle"}
	}
	return ui.CheckResult{Name: "G2 — no cycles", Status: "pass"}
}

// checkG3 verifies every non-deleted node other than End has at least one
// bridged successor in the ordering graph, i.e. that tombstoning never
// strands a surviving line with nowhere to go.
func checkG3(g *graggle.Graggle) ui.CheckResult {
	rg := render.OrderingGraph(g)
	var stranded []string
	for id, n := range g.Nodes {
		if n.Deleted() || id == ids.End {
			continue
		}
		if len(rg.OutNeighbors(id)) == 0 {
			stranded = append(stranded, id.String())
		}
	}
	if len(stranded) > 0 {
		sort.Strings(stranded)
		return ui.CheckResult{Name: "G3 — reachability preserved", Status: "fail", Detail: fmt.Sprintf("%s has no bridged successor", stranded[0])}
	}
	return ui.CheckResult{Name: "G3 — reachability preserved", Status: "pass"}
}

// checkSentinels verifies Start and End are present and never deleted,
// the one structural property every graggle must hold regardless of
// which patches have been applied.
func checkSentinels(g *graggle.Graggle) ui.CheckResult {
	start, startOK := g.Nodes[ids.Start]
	end, endOK := g.Nodes[ids.End]
	if !startOK || !endOK {
		return ui.CheckResult{Name: "Sentinels present", Status: "fail", Detail: "START or END node missing"}
	}
	if start.Deleted() || end.Deleted() {
		return ui.CheckResult{Name: "Sentinels present", Status: "fail", Detail: "START or END has been deleted"}
	}
	return ui.CheckResult{Name: "Sentinels present", Status: "pass"}
}
