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

package patch_test

import (
	"testing"
	"time"

	"github.com/fireflyframework/ojo/internal/diff"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/patch"
	"github.com/fireflyframework/ojo/internal/render"
	"github.com/stretchr/testify/require"
)

func noDeps(ids.PatchID) []ids.PatchID { return nil }

func TestFromDiffAndReplayRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	p1, err := patch.FromDiff(nil, diff.Lines(nil, []string{"alpha", "beta"}), noDeps, "a@example.com", "seed file", now)
	require.NoError(t, err)
	require.True(t, p1.ID.Valid())

	store := patch.MapStore{p1.ID: p1}
	g, err := patch.Replay([]ids.PatchID{p1.ID}, store)
	require.NoError(t, err)

	result := render.Order(g)
	require.False(t, result.Conflicted)
	require.Equal(t, "alpha\nbeta", render.Text(g, result.Order, false))

	oldOrder := result.Order
	lookup := func(ids.PatchID) []ids.PatchID { return nil }
	p2, err := patch.FromDiff(oldOrder, diff.Lines([]string{"alpha", "beta"}, []string{"alpha", "gamma", "beta"}), lookup, "a@example.com", "insert gamma", now)
	require.NoError(t, err)
	require.Contains(t, p2.Deps, p1.ID)

	store[p2.ID] = p2
	g2, err := patch.Replay([]ids.PatchID{p1.ID, p2.ID}, store)
	require.NoError(t, err)
	result2 := render.Order(g2)
	require.False(t, result2.Conflicted)
	require.Equal(t, "alpha\ngamma\nbeta", render.Text(g2, result2.Order, false))

	// Unapplying p2 is just excluding it from replay.
	g3, err := patch.Replay([]ids.PatchID{p1.ID}, store)
	require.NoError(t, err)
	result3 := render.Order(g3)
	require.Equal(t, "alpha\nbeta", render.Text(g3, result3.Order, false))
}

func TestFromDiffDeleteLeavesDep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p1, err := patch.FromDiff(nil, diff.Lines(nil, []string{"one", "two", "three"}), noDeps, "a", "seed", now)
	require.NoError(t, err)

	store := patch.MapStore{p1.ID: p1}
	g, err := patch.Replay([]ids.PatchID{p1.ID}, store)
	require.NoError(t, err)
	order := render.Order(g).Order

	p2, err := patch.FromDiff(order, diff.Lines([]string{"one", "two", "three"}, []string{"one", "three"}), noDeps, "a", "drop two", now)
	require.NoError(t, err)
	require.Equal(t, []ids.PatchID{p1.ID}, p2.Deps)

	store[p2.ID] = p2
	g2, err := patch.Replay([]ids.PatchID{p1.ID, p2.ID}, store)
	require.NoError(t, err)
	result := render.Order(g2)
	require.False(t, result.Conflicted)
	require.Equal(t, "one\nthree", render.Text(g2, result.Order, false))
}

func TestSealAndVerify(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := patch.FromDiff(nil, diff.Lines(nil, []string{"x"}), noDeps, "a", "x", now)
	require.NoError(t, err)
	require.NoError(t, p.Verify())

	p.Description = "tampered"
	require.Error(t, p.Verify())
}

func TestMinimalDepsDropsTransitivelyReachable(t *testing.T) {
	lookup := func(id ids.PatchID) []ids.PatchID {
		switch id {
		case "Pb":
			return []ids.PatchID{"Pa"}
		case "Pc":
			return []ids.PatchID{"Pb"}
		}
		return nil
	}
	got := patch.MinimalDeps([]ids.PatchID{"Pa", "Pb", "Pc"}, lookup)
	require.Equal(t, []ids.PatchID{"Pc"}, got)
}

func TestMinimalDepsKeepsIndependent(t *testing.T) {
	got := patch.MinimalDeps([]ids.PatchID{"Pa", "Pb"}, noDeps)
	require.ElementsMatch(t, []ids.PatchID{"Pa", "Pb"}, got)
}
