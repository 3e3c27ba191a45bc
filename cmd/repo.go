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

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"github.com/fireflyframework/ojo/internal/store"
)

// openRepo opens the repository rooted at the current working directory,
// translating the not-found case into the wording every ojo command uses.
func openRepo() (*store.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not determine working directory: %w", err)
	}
	repo, err := store.Open(dir)
	if err != nil {
		return nil, friendlyError(err)
	}
	return repo, nil
}

// friendlyError rewrites the engine's sentinel errors into the exact
// wording the command surface promises, leaving everything else as-is so
// root.Execute's "Error: " + err.Error() still reads naturally.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, ojoerrors.ErrNoRepository):
		return errors.New("Failed to find an ojo repository")
	case errors.Is(err, ojoerrors.ErrRepoExists):
		return errors.New("There is already a repository")
	case errors.Is(err, ojoerrors.ErrConflictedBranch):
		return errors.New("Couldn't render a file, because the data isn't ordered")
	case errors.Is(err, ojoerrors.ErrMalformedID):
		return errors.New("Found a broken PatchId")
	case errors.Is(err, ojoerrors.ErrUnknownBranch):
		return errors.New("No such branch")
	default:
		return err
	}
}
