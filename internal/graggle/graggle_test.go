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

package graggle_test

import (
	"testing"

	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/stretchr/testify/require"
)

func TestNewHasSentinels(t *testing.T) {
	g := graggle.New()
	require.True(t, g.HasNode(ids.Start))
	require.True(t, g.HasNode(ids.End))
	require.False(t, g.Nodes[ids.Start].Deleted())
	require.False(t, g.Nodes[ids.End].Deleted())
	require.Equal(t, 2, g.NonDeletedCount())
}

func TestIntroduceNodeAndEdge(t *testing.T) {
	g := graggle.New()
	p := ids.PatchID("Ptest")
	n := ids.NodeID{Patch: p, Local: 0}
	g.IntroduceNode(n, "hello")
	require.True(t, g.HasNode(n))
	require.Equal(t, "hello", g.Nodes[n].Content)

	g.IntroduceEdge(graggle.EdgeKey{Src: ids.Start, Dst: n})
	require.True(t, g.LiveEdges[graggle.EdgeKey{Src: ids.Start, Dst: n}])
	require.Equal(t, 3, g.NonDeletedCount())
}

func TestMarkAndClearDeletions(t *testing.T) {
	g := graggle.New()
	p1, p2 := ids.PatchID("Pone"), ids.PatchID("Ptwo")
	n := ids.NodeID{Patch: p1, Local: 0}
	g.IntroduceNode(n, "line")

	g.MarkDeleted(n, p1)
	require.True(t, g.Nodes[n].Deleted())

	g.MarkDeleted(n, p2)
	require.True(t, g.Nodes[n].Deleted())

	// Withdrawing one deleting patch is not enough while another remains.
	delete(g.Nodes[n].DeletingPatches, p1)
	require.True(t, g.Nodes[n].Deleted())

	g.ClearDeletions(n)
	require.False(t, g.Nodes[n].Deleted())
}
