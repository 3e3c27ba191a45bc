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

// Package unionfind implements a disjoint-set (union-find) structure with
// path compression and union by rank, generalized over any comparable key.
//
// The algorithm is the one the graph corpus already inlines into its own
// Kruskal's-MST routine (parent/rank maps, iterative find with path
// compression, union-by-rank with a tie-break rank bump); this package
// promotes it to a standalone, reusable primitive. No other ojo package
// imports it: the resolver (internal/resolve) handles a merge by deleting
// lines directly and keeps no equivalence classes.
package unionfind

// DSU is a disjoint-set over keys of type K. The zero value is not usable;
// construct with New.
type DSU[K comparable] struct {
	parent map[K]K
	rank   map[K]int
}

// New creates an empty disjoint-set.
func New[K comparable]() *DSU[K] {
	return &DSU[K]{
		parent: make(map[K]K),
		rank:   make(map[K]int),
	}
}

// Make registers x as its own singleton set if it is not already tracked.
// Calling Make on an already-known key is a no-op.
func (d *DSU[K]) Make(x K) {
	if _, ok := d.parent[x]; ok {
		return
	}
	d.parent[x] = x
	d.rank[x] = 0
}

// Find returns the representative of x's set, path-compressing along the
// way. x must have been registered with Make (directly, or implicitly via
// Union); calling Find on an unknown key registers it as a new singleton.
func (d *DSU[K]) Find(x K) K {
	d.Make(x)
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. A no-op if they are already in
// the same set.
func (d *DSU[K]) Union(x, y K) {
	rx, ry := d.Find(x), d.Find(y)
	if rx == ry {
		return
	}
	if d.rank[rx] < d.rank[ry] {
		d.parent[rx] = ry
		return
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}
}

// Same reports whether x and y are in the same set.
func (d *DSU[K]) Same(x, y K) bool {
	return d.Find(x) == d.Find(y)
}
