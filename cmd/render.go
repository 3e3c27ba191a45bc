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
	"os"

	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"github.com/fireflyframework/ojo/internal/render"
	"github.com/fireflyframework/ojo/internal/store"
	"github.com/fireflyframework/ojo/internal/ui"
	"github.com/spf13/cobra"
)

var renderPath string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the current branch's file to disk",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderPath, "path", "", "destination path (default "+store.DefaultFileName+")")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	g, err := repo.Graggle(repo.Current)
	if err != nil {
		return friendlyError(err)
	}
	result := render.Order(g)
	if result.Conflicted {
		return friendlyError(ojoerrors.ErrConflictedBranch)
	}

	path := renderPath
	if path == "" {
		path = store.DefaultFileName
	}
	branch := repo.CurrentBranch()
	body := render.Text(g, result.Order, branch.TrailingNewline)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return &ojoerrors.IOError{Path: path, Cause: err}
	}

	ui.NewPrinter().Success("Rendered " + path)
	return nil
}
