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

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"github.com/fireflyframework/ojo/internal/patch"
	"gopkg.in/yaml.v3"
)

const (
	// RepoDirName is ojo's repository metadata directory, analogous to
	// .git. It always lives directly inside the working directory ojo was
	// run from — a single tracked file does not need the upward directory
	// search a multi-file VCS would.
	RepoDirName = ".ojo"
	// DefaultFileName is the tracked file read and written by "patch
	// create" and "render" when --path is not given.
	DefaultFileName = "ojo_file.txt"

	dbFileName      = "db"
	patchesSubdir   = "patches"
	patchFileSuffix = ".yaml"
)

// dbFile is the on-disk shape of the repository's metadata file: current
// branch name and every branch's applied set. yaml.v3 writes struct fields
// in declaration order (current, then branches) and map keys in sorted
// order, so the encoding is deterministic.
type dbFile struct {
	Current  string                 `yaml:"current"`
	Branches map[string]*branchFile `yaml:"branches"`
}

type branchFile struct {
	Applied         []ids.PatchID `yaml:"applied"`
	TrailingNewline bool          `yaml:"trailing_newline"`
}

// Branch is a named, totally ordered list of applied patches.
type Branch struct {
	Name string
	// Applied lists patch ids in apply order; this list, together with the
	// patch store, is the entire state of the branch.
	Applied []ids.PatchID
	// TrailingNewline records whether the content last ingested into this
	// branch ended in a newline, so render can reproduce it exactly
	// (SPEC_FULL.md §12).
	TrailingNewline bool
}

func (b *Branch) hasApplied(id ids.PatchID) bool {
	for _, a := range b.Applied {
		if a == id {
			return true
		}
	}
	return false
}

// Repository is an open, locked ojo repository rooted at a directory.
type Repository struct {
	root     string
	lock     *repoLock
	Current  string
	Branches map[string]*Branch
}

func ojoDir(root string) string {
	return filepath.Join(root, RepoDirName)
}

// Init creates a new repository in dir, which must not already contain
// one. The initial state is a single "master" branch with nothing applied.
func Init(dir string) (*Repository, error) {
	od := ojoDir(dir)
	if _, err := os.Stat(od); err == nil {
		return nil, ojoerrors.ErrRepoExists
	}
	if err := os.MkdirAll(filepath.Join(od, patchesSubdir), 0755); err != nil {
		return nil, &ojoerrors.IOError{Path: od, Cause: err}
	}

	repo := &Repository{
		root:    dir,
		Current: "master",
		Branches: map[string]*Branch{
			"master": {Name: "master"},
		},
	}
	lk, err := acquireLock(od)
	if err != nil {
		return nil, err
	}
	repo.lock = lk
	if err := repo.save(); err != nil {
		lk.release()
		return nil, err
	}
	return repo, nil
}

// Open locates and locks the repository rooted at dir.
func Open(dir string) (*Repository, error) {
	od := ojoDir(dir)
	dbPath := filepath.Join(od, dbFileName)
	data, err := os.ReadFile(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ojoerrors.ErrNoRepository
		}
		return nil, &ojoerrors.IOError{Path: dbPath, Cause: err}
	}

	lk, err := acquireLock(od)
	if err != nil {
		return nil, err
	}

	var df dbFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		lk.release()
		return nil, fmt.Errorf("%w: %v", ojoerrors.ErrSerialization, err)
	}

	repo := &Repository{root: dir, lock: lk, Current: df.Current, Branches: make(map[string]*Branch, len(df.Branches))}
	for name, bf := range df.Branches {
		repo.Branches[name] = &Branch{Name: name, Applied: bf.Applied, TrailingNewline: bf.TrailingNewline}
	}
	return repo, nil
}

// Close releases the repository's lock. It does not persist anything;
// callers must call Save explicitly after any mutation.
func (r *Repository) Close() error {
	return r.lock.release()
}

// save writes db atomically (temp file + rename) so a crash mid-write
// never corrupts the previous consistent state.
func (r *Repository) save() error {
	df := dbFile{Current: r.Current, Branches: make(map[string]*branchFile, len(r.Branches))}
	for name, b := range r.Branches {
		df.Branches[name] = &branchFile{Applied: b.Applied, TrailingNewline: b.TrailingNewline}
	}

	data, err := yaml.Marshal(df)
	if err != nil {
		return fmt.Errorf("%w: %v", ojoerrors.ErrSerialization, err)
	}

	od := ojoDir(r.root)
	dbPath := filepath.Join(od, dbFileName)
	tmp, err := os.CreateTemp(od, "db-*.tmp")
	if err != nil {
		return &ojoerrors.IOError{Path: od, Cause: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &ojoerrors.IOError{Path: tmpName, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &ojoerrors.IOError{Path: tmpName, Cause: err}
	}
	if err := os.Rename(tmpName, dbPath); err != nil {
		os.Remove(tmpName)
		return &ojoerrors.IOError{Path: dbPath, Cause: err}
	}
	return nil
}

// Save persists the repository's current state.
func (r *Repository) Save() error {
	return r.save()
}

// CurrentBranch returns the branch named r.Current.
func (r *Repository) CurrentBranch() *Branch {
	return r.Branches[r.Current]
}

// patchPath returns the on-disk path for a stored patch.
func (r *Repository) patchPath(id ids.PatchID) string {
	return filepath.Join(ojoDir(r.root), patchesSubdir, string(id)+patchFileSuffix)
}

// Get implements patch.Store, loading a patch from disk on demand — per
// §5's memory model, patches are never all held in memory at once.
func (r *Repository) Get(id ids.PatchID) (*patch.Patch, bool) {
	data, err := os.ReadFile(r.patchPath(id))
	if err != nil {
		return nil, false
	}
	var p patch.Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

// HasPatch reports whether id is present in the store.
func (r *Repository) HasPatch(id ids.PatchID) bool {
	_, err := os.Stat(r.patchPath(id))
	return err == nil
}

// DepsOf adapts Get to patch.DepLookup for minimal-dependency computation.
func (r *Repository) DepsOf(id ids.PatchID) []ids.PatchID {
	p, ok := r.Get(id)
	if !ok {
		return nil
	}
	return p.Deps
}

// PutPatch writes p to the store, sealing it into the database via an
// atomic temp-file-then-rename. Re-writing an already-present patch is a
// no-op beyond a content-identical overwrite (Import relies on this for
// idempotence).
func (r *Repository) PutPatch(p *patch.Patch) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ojoerrors.ErrSerialization, err)
	}
	od := ojoDir(r.root)
	tmp, err := os.CreateTemp(filepath.Join(od, patchesSubdir), "patch-*.tmp")
	if err != nil {
		return &ojoerrors.IOError{Path: od, Cause: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &ojoerrors.IOError{Path: tmpName, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &ojoerrors.IOError{Path: tmpName, Cause: err}
	}
	dest := r.patchPath(p.ID)
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return &ojoerrors.IOError{Path: dest, Cause: err}
	}
	return nil
}

// ExportPatch writes p's canonical record to an arbitrary destination path
// (outside the repository's patches/ directory), for "patch export".
func (r *Repository) ExportPatch(p *patch.Patch, destPath string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ojoerrors.ErrSerialization, err)
	}
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return &ojoerrors.IOError{Path: destPath, Cause: err}
	}
	return nil
}

// ImportPatch reads a patch record from srcPath, verifies its hash, and
// stores it if not already present (P7: a second import is a no-op).
func (r *Repository) ImportPatch(srcPath string) (*patch.Patch, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, &ojoerrors.IOError{Path: srcPath, Cause: err}
	}
	var p patch.Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ojoerrors.ErrSerialization, err)
	}
	if !p.ID.Valid() {
		return nil, ojoerrors.ErrMalformedID
	}
	if err := p.Verify(); err != nil {
		return nil, ojoerrors.ErrMalformedID
	}
	if r.HasPatch(p.ID) {
		return &p, nil
	}
	if err := r.PutPatch(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AllPatchIDs lists every patch id currently in the store, sorted.
func (r *Repository) AllPatchIDs() ([]ids.PatchID, error) {
	entries, err := os.ReadDir(filepath.Join(ojoDir(r.root), patchesSubdir))
	if err != nil {
		return nil, &ojoerrors.IOError{Path: ojoDir(r.root), Cause: err}
	}
	var out []ids.PatchID
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) != patchFileSuffix {
			continue
		}
		out = append(out, ids.PatchID(name[:len(name)-len(patchFileSuffix)]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
