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

package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fireflyframework/ojo/internal/diff"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"github.com/fireflyframework/ojo/internal/patch"
	"github.com/fireflyframework/ojo/internal/render"
	"github.com/fireflyframework/ojo/internal/store"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func createPatch(t *testing.T, repo *store.Repository, old []string, oldOrder []ids.NodeID, new []string, author, msg string) *patch.Patch {
	t.Helper()
	p, err := patch.FromDiff(oldOrder, diff.Lines(old, new), repo.DepsOf, author, msg, epoch)
	require.NoError(t, err)
	require.NoError(t, repo.PutPatch(p))
	return p
}

func TestInitCreatesMasterBranch(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	require.Equal(t, "master", repo.Current)
	require.Contains(t, repo.Branches, "master")
	require.Empty(t, repo.Branches["master"].Applied)
}

func TestInitTwiceFails(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	repo.Close()

	_, err = store.Init(dir)
	require.ErrorIs(t, err, ojoerrors.ErrRepoExists)
}

func TestOpenMissingRepositoryFails(t *testing.T) {
	dir := t.TempDir()
	_, err := store.Open(dir)
	require.ErrorIs(t, err, ojoerrors.ErrNoRepository)
}

func TestApplyAndRenderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	p := createPatch(t, repo, nil, nil, []string{"Content"}, "Me", "Msg")
	require.NoError(t, repo.Apply("master", p.ID))
	require.NoError(t, repo.Save())

	g, err := repo.Graggle("master")
	require.NoError(t, err)
	result := render.Order(g)
	require.False(t, result.Conflicted)
	require.Equal(t, "Content\n", render.Text(g, result.Order, true))
}

func TestApplyMissingDeps(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	p1 := createPatch(t, repo, nil, nil, []string{"one", "two"}, "a", "seed")
	order := []ids.NodeID{{Patch: p1.ID, Local: 0}, {Patch: p1.ID, Local: 1}}
	p2, err := patch.FromDiff(order, diff.Lines([]string{"one", "two"}, []string{"one", "three", "two"}), repo.DepsOf, "a", "insert", epoch)
	require.NoError(t, err)
	require.NoError(t, repo.PutPatch(p2))

	err = repo.Apply("master", p2.ID)
	var missing *ojoerrors.MissingDepsError
	require.ErrorAs(t, err, &missing)
}

func TestApplyAlreadyApplied(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	p := createPatch(t, repo, nil, nil, []string{"x"}, "a", "seed")
	require.NoError(t, repo.Apply("master", p.ID))
	err = repo.Apply("master", p.ID)
	require.ErrorIs(t, err, ojoerrors.ErrAlreadyApplied)
}

func TestUnapplyCascadesToDependents(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	// A seeds the file. B replaces "Second" with "SecondPrime", so B
	// depends on A (it deletes and re-anchors around A's lines). C inserts
	// next to both a line from A ("First") and the line B introduced
	// ("SecondPrime"), so C depends on both — but A is minimized away
	// since it is already transitively reachable through B.
	a := createPatch(t, repo, nil, nil, []string{"First", "Second", "Third"}, "me", "A")
	require.NoError(t, repo.Apply("master", a.ID))
	orderA := []ids.NodeID{{Patch: a.ID, Local: 0}, {Patch: a.ID, Local: 1}, {Patch: a.ID, Local: 2}}

	b := createPatch(t, repo, []string{"First", "Second", "Third"}, orderA, []string{"First", "SecondPrime", "Third"}, "me", "B")
	require.NoError(t, repo.Apply("master", b.ID))
	require.Equal(t, []ids.PatchID{a.ID}, b.Deps)

	g, err := repo.Graggle("master")
	require.NoError(t, err)
	orderB := render.Order(g).Order

	c := createPatch(t, repo, []string{"First", "SecondPrime", "Third"}, orderB, []string{"First", "Extra", "SecondPrime", "Third"}, "me", "C")
	require.NoError(t, repo.Apply("master", c.ID))
	require.Equal(t, []ids.PatchID{b.ID}, c.Deps)

	removed, err := repo.Unapply("master", a.ID)
	require.NoError(t, err)
	require.Equal(t, []ids.PatchID{c.ID, b.ID, a.ID}, removed)
	require.Empty(t, repo.Branches["master"].Applied)
}

func TestUnapplyNotApplied(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.Unapply("master", ids.PatchID("Pbogus"))
	require.ErrorIs(t, err, ojoerrors.ErrNotApplied)
}

func TestBranchLifecycle(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	p := createPatch(t, repo, nil, nil, []string{"x"}, "a", "seed")
	require.NoError(t, repo.Apply("master", p.ID))

	require.NoError(t, repo.NewBranch("feature"))
	require.Empty(t, repo.Branches["feature"].Applied)

	require.NoError(t, repo.CloneBranch("clone-of-master"))
	require.Equal(t, repo.Branches["master"].Applied, repo.Branches["clone-of-master"].Applied)

	require.ErrorIs(t, repo.DeleteBranch("master"), ojoerrors.ErrCurrentBranch)

	require.NoError(t, repo.SwitchBranch("feature"))
	require.NoError(t, repo.DeleteBranch("master"))
	require.NotContains(t, repo.Branches, "master")

	require.Equal(t, []string{"clone-of-master", "feature"}, repo.BranchNames())
}

func TestImportExportIdempotent(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	src, err := store.Init(srcDir)
	require.NoError(t, err)
	defer src.Close()

	p := createPatch(t, src, nil, nil, []string{"hello"}, "a", "seed")
	exportPath := filepath.Join(srcDir, "exported.yaml")
	require.NoError(t, src.ExportPatch(p, exportPath))

	dst, err := store.Init(dstDir)
	require.NoError(t, err)
	defer dst.Close()

	imported, err := dst.ImportPatch(exportPath)
	require.NoError(t, err)
	require.Equal(t, p.ID, imported.ID)

	// Second import is a no-op (P7), not an error.
	again, err := dst.ImportPatch(exportPath)
	require.NoError(t, err)
	require.Equal(t, p.ID, again.ID)
}

func TestImportRejectsTamperedContent(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	p := createPatch(t, repo, nil, nil, []string{"hello"}, "a", "seed")
	exportPath := filepath.Join(dir, "exported.yaml")
	require.NoError(t, repo.ExportPatch(p, exportPath))

	p.Description = "tampered but id left stale"
	require.NoError(t, repo.ExportPatch(p, exportPath))

	_, err = repo.ImportPatch(exportPath)
	require.ErrorIs(t, err, ojoerrors.ErrMalformedID)
}

func TestConflictDetection(t *testing.T) {
	dir := t.TempDir()
	repo, err := store.Init(dir)
	require.NoError(t, err)
	defer repo.Close()

	base := createPatch(t, repo, nil, nil, []string{"First", "Last"}, "a", "base")
	require.NoError(t, repo.Apply("master", base.ID))
	baseOrder := []ids.NodeID{{Patch: base.ID, Local: 0}, {Patch: base.ID, Local: 1}}

	p1 := createPatch(t, repo, []string{"First", "Last"}, baseOrder, []string{"First", "Second", "Last"}, "a", "ins1")
	p2 := createPatch(t, repo, []string{"First", "Last"}, baseOrder, []string{"First", "Middle", "Last"}, "a", "ins2")
	require.NoError(t, repo.Apply("master", p1.ID))
	require.NoError(t, repo.Apply("master", p2.ID))

	g, err := repo.Graggle("master")
	require.NoError(t, err)
	result := render.Order(g)
	require.True(t, result.Conflicted)
}
