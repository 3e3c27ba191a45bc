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

package digraph_test

import (
	"testing"

	"github.com/fireflyframework/ojo/internal/digraph"
	"github.com/stretchr/testify/require"
)

func TestTopologicalSortUnique(t *testing.T) {
	g := digraph.New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	res := g.TopologicalSort()
	require.True(t, res.Unique)
	require.True(t, res.Complete)
	require.Equal(t, []string{"a", "b", "c"}, res.Order)
}

func TestTopologicalSortNotUnique(t *testing.T) {
	g := digraph.New[string]()
	g.AddNode("a")
	g.AddNode("b") // two zero-indegree roots -> no forced order
	g.AddEdge("a", "c")
	g.AddEdge("b", "c")

	res := g.TopologicalSort()
	require.False(t, res.Unique)
	require.True(t, res.Complete)
}

func TestLayersDetectsCycle(t *testing.T) {
	g := digraph.New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	_, err := g.Layers()
	require.Error(t, err)
	var cycleErr *digraph.CycleError[string]
	require.ErrorAs(t, err, &cycleErr)
}

func TestLayers(t *testing.T) {
	g := digraph.New[string]()
	g.AddEdge("b", "a")
	g.AddEdge("c", "a")
	g.AddEdge("d", "b")
	g.AddEdge("d", "c")

	layers, err := g.Layers()
	require.NoError(t, err)
	require.Equal(t, [][]string{{"d"}, {"b", "c"}, {"a"}}, layers)
}

func TestReachable(t *testing.T) {
	g := digraph.New[int]()
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(1, 4)

	r := g.Reachable(1)
	require.True(t, r[1])
	require.True(t, r[2])
	require.True(t, r[3])
	require.True(t, r[4])
	require.Len(t, r, 4)
}

func TestRemoveEdgeAndHasEdge(t *testing.T) {
	g := digraph.New[string]()
	g.AddEdge("x", "y")
	require.True(t, g.HasEdge("x", "y"))
	g.RemoveEdge("x", "y")
	require.False(t, g.HasEdge("x", "y"))
}
