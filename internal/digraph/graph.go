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

// Package digraph provides a generic directed-graph primitive: node/edge
// storage, neighbor queries, Kahn's-algorithm topological sort, and
// dependency layering.
//
// It is a direct generalization of the corpus's own internal/dag.Graph
// (string-keyed dependency graph with forward/reverse adjacency maps and
// Kahn's algorithm for both flat sort and layering) — here parameterized
// over any comparable node key. It backs the graggle's line-ordering graph
// (internal/render) and the cycle check in internal/integrity; patch
// dependencies are walked by internal/patch's own helpers, not through
// this package.
package digraph

import "fmt"

// Graph is a directed multigraph-free graph (at most one edge per ordered
// pair) over node keys of type K.
type Graph[K comparable] struct {
	nodes   map[K]bool
	out     map[K]map[K]bool
	in      map[K]map[K]bool
	ordered []K // insertion order, for deterministic iteration
}

// New creates an empty graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodes: make(map[K]bool),
		out:   make(map[K]map[K]bool),
		in:    make(map[K]map[K]bool),
	}
}

// AddNode adds a node. Duplicate adds are no-ops.
func (g *Graph[K]) AddNode(id K) {
	if g.nodes[id] {
		return
	}
	g.nodes[id] = true
	g.out[id] = make(map[K]bool)
	g.in[id] = make(map[K]bool)
	g.ordered = append(g.ordered, id)
}

// AddEdge adds a directed edge from -> to. Both endpoints are created if
// absent. Idempotent: adding the same edge twice has no further effect.
func (g *Graph[K]) AddEdge(from, to K) {
	g.AddNode(from)
	g.AddNode(to)
	g.out[from][to] = true
	g.in[to][from] = true
}

// RemoveEdge removes the edge from -> to, if present.
func (g *Graph[K]) RemoveEdge(from, to K) {
	delete(g.out[from], to)
	delete(g.in[to], from)
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph[K]) HasEdge(from, to K) bool {
	return g.out[from][to]
}

// HasNode reports whether id has been added.
func (g *Graph[K]) HasNode(id K) bool {
	return g.nodes[id]
}

// NodeCount returns the number of nodes.
func (g *Graph[K]) NodeCount() int {
	return len(g.nodes)
}

// Nodes returns all node ids in insertion order.
func (g *Graph[K]) Nodes() []K {
	out := make([]K, len(g.ordered))
	copy(out, g.ordered)
	return out
}

// OutNeighbors returns the direct successors of id (arbitrary order).
func (g *Graph[K]) OutNeighbors(id K) []K {
	return keysOf(g.out[id])
}

// InNeighbors returns the direct predecessors of id (arbitrary order).
func (g *Graph[K]) InNeighbors(id K) []K {
	return keysOf(g.in[id])
}

func keysOf[K comparable](m map[K]bool) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// CycleError reports a detected cycle, as a sequence of nodes that close a
// loop (cycle[0] == cycle[len(cycle)-1]).
type CycleError[K comparable] struct {
	Cycle []K
}

func (e *CycleError[K]) Error() string {
	return fmt.Sprintf("digraph: cycle detected (%d nodes)", len(e.Cycle)-1)
}

// TopoResult is the outcome of a topological sort attempt.
type TopoResult[K comparable] struct {
	Order    []K  // valid only when Unique is true
	Unique   bool // false if more than one node had zero in-degree at some step
	Complete bool // false if a cycle prevented visiting every node
}

// TopologicalSort runs Kahn's algorithm starting from the zero-in-degree
// frontier. It reports not just an order but whether that order was FORCED
// (exactly one candidate at every step) — the notion §4.6 of SPEC_FULL.md
// calls "linearizable". A cycle leaves Complete false.
func (g *Graph[K]) TopologicalSort() TopoResult[K] {
	inDegree := make(map[K]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = len(g.in[id])
	}

	frontier := make([]K, 0)
	for _, id := range g.ordered {
		if inDegree[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	order := make([]K, 0, len(g.nodes))
	unique := true
	for len(frontier) > 0 {
		if len(frontier) > 1 {
			unique = false
		}
		node := frontier[0]
		frontier = frontier[1:]
		order = append(order, node)

		for _, succ := range g.orderedOut(node) {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				frontier = append(frontier, succ)
			}
		}
	}

	return TopoResult[K]{
		Order:    order,
		Unique:   unique,
		Complete: len(order) == len(g.nodes),
	}
}

// orderedOut returns node's out-neighbors in the graph's insertion order,
// so that ties in Kahn's algorithm resolve deterministically.
func (g *Graph[K]) orderedOut(node K) []K {
	out := make([]K, 0, len(g.out[node]))
	for _, id := range g.ordered {
		if g.out[node][id] {
			out = append(out, id)
		}
	}
	return out
}

// Layers groups nodes by dependency depth: layer 0 has no predecessors,
// layer N's nodes have all predecessors in layers 0..N-1. Returns a
// CycleError if the graph is not acyclic.
func (g *Graph[K]) Layers() ([][]K, error) {
	inDegree := make(map[K]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = len(g.in[id])
	}

	current := make([]K, 0)
	for _, id := range g.ordered {
		if inDegree[id] == 0 {
			current = append(current, id)
		}
	}

	var layers [][]K
	visited := 0
	for len(current) > 0 {
		layers = append(layers, current)
		visited += len(current)

		next := make([]K, 0)
		for _, node := range current {
			for _, succ := range g.orderedOut(node) {
				inDegree[succ]--
				if inDegree[succ] == 0 {
					next = append(next, succ)
				}
			}
		}
		current = next
	}

	if visited != len(g.nodes) {
		return nil, &CycleError[K]{Cycle: g.detectCycle()}
	}
	return layers, nil
}

// detectCycle finds one cycle via DFS coloring (white/gray/black).
func (g *Graph[K]) detectCycle() []K {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[K]int, len(g.nodes))
	parent := make(map[K]K, len(g.nodes))

	var cycle []K
	var dfs func(node K) bool
	dfs = func(node K) bool {
		color[node] = gray
		for _, dep := range g.orderedOut(node) {
			if color[dep] == gray {
				cycle = []K{dep, node}
				cur := node
				for cur != dep {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return true
			}
			if color[dep] == white {
				parent[dep] = node
				if dfs(dep) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for _, id := range g.ordered {
		if color[id] == white {
			if dfs(id) {
				return cycle
			}
		}
	}
	return nil
}

// Reachable returns the set of nodes reachable from start via out-edges,
// including start itself.
func (g *Graph[K]) Reachable(start K) map[K]bool {
	visited := map[K]bool{start: true}
	queue := []K{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, succ := range g.orderedOut(node) {
			if !visited[succ] {
				visited[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return visited
}

// TransitiveClosureFrom returns the set of nodes reachable from start,
// including start itself — the same result as Reachable. The patch
// engine's "minimal deps" computation (§4.5) uses its own walk over
// recorded deps and does not call this.
func (g *Graph[K]) TransitiveClosureFrom(start K) map[K]bool {
	return g.Reachable(start)
}
