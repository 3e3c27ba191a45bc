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

package resolve

import (
	"fmt"
	"time"

	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/patch"
	"github.com/fireflyframework/ojo/internal/render"
)

// FrontierEntry is one candidate the oracle can choose between: a node id
// and its current text, for display.
type FrontierEntry struct {
	Node    ids.NodeID
	Content string
}

// DecisionKind distinguishes the two oracle responses described in
// SPEC_FULL.md §4.7.
type DecisionKind int

const (
	// Choose picks Chosen as the next line, ahead of every other current
	// frontier member.
	Choose DecisionKind = iota
	// Merge collapses MergeA and MergeB into one equivalence class. With
	// Replacement == false, MergeA survives with its own content and MergeB
	// is deleted; with Replacement == true, both are deleted and a brand new
	// line holding ReplacementText is inserted in their place.
	Merge
)

// Decision is the oracle's response to one round of frontier resolution.
type Decision struct {
	Kind            DecisionKind
	Chosen          ids.NodeID
	MergeA, MergeB  ids.NodeID
	Replacement     bool
	ReplacementText string
}

// Oracle asks a user (or, in tests, a scripted stand-in) to resolve one
// round of ambiguity among the given frontier entries.
type Oracle interface {
	Decide(frontier []FrontierEntry) (Decision, error)
}

// Run drives the resolver to completion, returning a sealed patch whose
// application renders g linearizable. now and author/description fill in
// the patch metadata the same way patch.FromDiff does.
func Run(g *graggle.Graggle, oracle Oracle, author, description string, now time.Time, lookup patch.DepLookup) (*patch.Patch, error) {
	work := g.Clone()
	var ops []patch.Op
	referenced := make(map[ids.PatchID]bool)
	noteRef := func(n ids.NodeID) {
		if n.Patch != ids.Zero {
			referenced[n.Patch] = true
		}
	}

	localCounter := 0

	for {
		rg := render.OrderingGraph(work)
		step := render.Progress(rg)
		if len(step.Frontier) <= 1 {
			break
		}

		entries := make([]FrontierEntry, 0, len(step.Frontier))
		for _, n := range step.Frontier {
			entries = append(entries, FrontierEntry{Node: n, Content: work.Nodes[n].Content})
		}

		decision, err := oracle.Decide(entries)
		if err != nil {
			return nil, err
		}

		switch decision.Kind {
		case Choose:
			if !work.HasNode(decision.Chosen) {
				return nil, fmt.Errorf("resolve: chosen node %s is not in the frontier", decision.Chosen)
			}
			noteRef(decision.Chosen)
			for _, f := range step.Frontier {
				if f == decision.Chosen {
					continue
				}
				work.IntroduceEdge(graggle.EdgeKey{Src: decision.Chosen, Dst: f})
				ops = append(ops, patch.NewEdgeOp(decision.Chosen, f))
				noteRef(f)
			}
		case Merge:
			if !work.HasNode(decision.MergeA) || !work.HasNode(decision.MergeB) {
				return nil, fmt.Errorf("resolve: merge targets are not in the frontier")
			}
			noteRef(decision.MergeA)
			noteRef(decision.MergeB)

			var survivor ids.NodeID
			if decision.Replacement {
				nn := patch.NewNodeOp(localCounter, decision.ReplacementText)
				localCounter++
				survivor = ids.NodeID{Patch: patch.Pending, Local: nn.Local}
				ops = append(ops, nn)
				work.IntroduceNode(survivor, decision.ReplacementText)
				ops = append(ops, patch.DeleteNodeOp(decision.MergeA), patch.DeleteNodeOp(decision.MergeB))
				work.MarkDeleted(decision.MergeA, patch.Pending)
				work.MarkDeleted(decision.MergeB, patch.Pending)
			} else {
				survivor = decision.MergeA
				ops = append(ops, patch.DeleteNodeOp(decision.MergeB))
				work.MarkDeleted(decision.MergeB, patch.Pending)
			}

			for _, f := range step.Frontier {
				if f == decision.MergeA || f == decision.MergeB {
					continue
				}
				work.IntroduceEdge(graggle.EdgeKey{Src: survivor, Dst: f})
				ops = append(ops, patch.NewEdgeOp(survivor, f))
				noteRef(f)
			}
		default:
			return nil, fmt.Errorf("resolve: unknown decision kind %d", decision.Kind)
		}
	}

	if len(ops) == 0 {
		return nil, fmt.Errorf("resolve: graggle is already linearizable, nothing to resolve")
	}

	depCandidates := make([]ids.PatchID, 0, len(referenced))
	for p := range referenced {
		if p != patch.Pending {
			depCandidates = append(depCandidates, p)
		}
	}
	deps := patch.MinimalDeps(depCandidates, lookup)

	p := &patch.Patch{
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
