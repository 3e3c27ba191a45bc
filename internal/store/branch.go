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
	"sort"

	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"github.com/fireflyframework/ojo/internal/patch"
)

// Graggle rebuilds the named branch's current graggle by replaying its
// applied patches against the store, per the replay model documented in
// internal/patch and internal/graggle.
func (r *Repository) Graggle(branchName string) (*graggle.Graggle, error) {
	b, ok := r.Branches[branchName]
	if !ok {
		return nil, ojoerrors.ErrUnknownBranch
	}
	return patch.Replay(b.Applied, r)
}

// Apply appends id to branchName's applied list after checking its
// preconditions (§4.5): the patch must exist, not already be applied, and
// every dep must already be applied.
func (r *Repository) Apply(branchName string, id ids.PatchID) error {
	b, ok := r.Branches[branchName]
	if !ok {
		return ojoerrors.ErrUnknownBranch
	}
	p, ok := r.Get(id)
	if !ok {
		return &ojoerrors.UnknownPatchError{ID: string(id)}
	}
	if b.hasApplied(id) {
		return ojoerrors.ErrAlreadyApplied
	}

	var missing []string
	for _, d := range p.Deps {
		if !b.hasApplied(d) {
			missing = append(missing, string(d))
		}
	}
	if len(missing) > 0 {
		return &ojoerrors.MissingDepsError{IDs: missing}
	}

	b.Applied = append(b.Applied, id)
	return nil
}

// Unapply removes id from branchName's applied list along with every
// already-applied patch that transitively depends on it (§4.5). The
// returned slice lists everything removed, most-recently-applied first,
// with id itself last — the order "patch apply -R" reports to the user.
func (r *Repository) Unapply(branchName string, id ids.PatchID) ([]ids.PatchID, error) {
	b, ok := r.Branches[branchName]
	if !ok {
		return nil, ojoerrors.ErrUnknownBranch
	}
	if !b.hasApplied(id) {
		return nil, ojoerrors.ErrNotApplied
	}

	pos := make(map[ids.PatchID]int, len(b.Applied))
	for i, a := range b.Applied {
		pos[a] = i
	}

	var dependents []ids.PatchID
	for _, q := range b.Applied {
		if q == id {
			continue
		}
		if patch.TransitiveDeps(q, r.DepsOf)[id] {
			dependents = append(dependents, q)
		}
	}
	sort.Slice(dependents, func(i, j int) bool { return pos[dependents[i]] > pos[dependents[j]] })

	removed := make(map[ids.PatchID]bool, len(dependents)+1)
	removed[id] = true
	for _, d := range dependents {
		removed[d] = true
	}

	newApplied := make([]ids.PatchID, 0, len(b.Applied)-len(removed))
	for _, a := range b.Applied {
		if !removed[a] {
			newApplied = append(newApplied, a)
		}
	}
	b.Applied = newApplied

	return append(dependents, id), nil
}

// NewBranch creates an empty branch.
func (r *Repository) NewBranch(name string) error {
	if _, exists := r.Branches[name]; exists {
		return ojoerrors.ErrBranchExists
	}
	r.Branches[name] = &Branch{Name: name}
	return nil
}

// CloneBranch creates name as a copy of the current branch's applied set
// and newline policy (same head).
func (r *Repository) CloneBranch(name string) error {
	if _, exists := r.Branches[name]; exists {
		return ojoerrors.ErrBranchExists
	}
	cur := r.CurrentBranch()
	applied := append([]ids.PatchID(nil), cur.Applied...)
	r.Branches[name] = &Branch{Name: name, Applied: applied, TrailingNewline: cur.TrailingNewline}
	return nil
}

// SwitchBranch changes the current branch. It never touches any graggle —
// each branch's state lives entirely in its own Applied list.
func (r *Repository) SwitchBranch(name string) error {
	if _, exists := r.Branches[name]; !exists {
		return ojoerrors.ErrUnknownBranch
	}
	r.Current = name
	return nil
}

// DeleteBranch removes a branch. Deleting the current branch is forbidden.
func (r *Repository) DeleteBranch(name string) error {
	if _, exists := r.Branches[name]; !exists {
		return ojoerrors.ErrUnknownBranch
	}
	if name == r.Current {
		return ojoerrors.ErrCurrentBranch
	}
	delete(r.Branches, name)
	return nil
}

// BranchNames lists every branch alphabetically.
func (r *Repository) BranchNames() []string {
	names := make([]string, 0, len(r.Branches))
	for n := range r.Branches {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
