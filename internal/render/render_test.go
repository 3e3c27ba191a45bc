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

package render_test

import (
	"testing"

	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/render"
	"github.com/stretchr/testify/require"
)

func linearChain(t *testing.T, lines []string) (*graggle.Graggle, []ids.NodeID) {
	t.Helper()
	g := graggle.New()
	patch := ids.PatchID("Pchain")
	nodeIDs := make([]ids.NodeID, len(lines))
	prev := ids.Start
	for i, l := range lines {
		id := ids.NodeID{Patch: patch, Local: i}
		g.IntroduceNode(id, l)
		g.IntroduceEdge(graggle.EdgeKey{Src: prev, Dst: id})
		nodeIDs[i] = id
		prev = id
	}
	g.IntroduceEdge(graggle.EdgeKey{Src: prev, Dst: ids.End})
	return g, nodeIDs
}

func TestOrderLinearChain(t *testing.T) {
	g, nodeIDs := linearChain(t, []string{"one", "two", "three"})
	result := render.Order(g)
	require.False(t, result.Conflicted)
	require.Equal(t, nodeIDs, result.Order)
	require.Equal(t, "one\ntwo\nthree\n", render.Text(g, result.Order, true))
	require.Equal(t, "one\ntwo\nthree", render.Text(g, result.Order, false))
}

func TestOrderBridgesDeletedNode(t *testing.T) {
	g, nodeIDs := linearChain(t, []string{"one", "two", "three"})
	g.MarkDeleted(nodeIDs[1], ids.PatchID("Pdelete"))

	result := render.Order(g)
	require.False(t, result.Conflicted)
	require.Equal(t, []ids.NodeID{nodeIDs[0], nodeIDs[2]}, result.Order)
	require.Equal(t, "one\nthree", render.Text(g, result.Order, false))
}

func TestOrderDetectsConflict(t *testing.T) {
	g := graggle.New()
	p := ids.PatchID("Pconflict")
	a := ids.NodeID{Patch: p, Local: 0}
	b := ids.NodeID{Patch: p, Local: 1}
	g.IntroduceNode(a, "a")
	g.IntroduceNode(b, "b")
	// Both a and b hang directly off Start and into End with no edge
	// between them: two valid orderings exist, so this must conflict.
	g.IntroduceEdge(graggle.EdgeKey{Src: ids.Start, Dst: a})
	g.IntroduceEdge(graggle.EdgeKey{Src: ids.Start, Dst: b})
	g.IntroduceEdge(graggle.EdgeKey{Src: a, Dst: ids.End})
	g.IntroduceEdge(graggle.EdgeKey{Src: b, Dst: ids.End})

	result := render.Order(g)
	require.True(t, result.Conflicted)
	require.ElementsMatch(t, []ids.NodeID{a, b}, result.Frontier)
}
