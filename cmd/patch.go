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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fireflyframework/ojo/internal/diff"
	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"github.com/fireflyframework/ojo/internal/patch"
	"github.com/fireflyframework/ojo/internal/render"
	"github.com/fireflyframework/ojo/internal/store"
	"github.com/fireflyframework/ojo/internal/ui"
	"github.com/spf13/cobra"
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Create, apply, export, and import patches",
}

var (
	patchAuthor     string
	patchMessage    string
	patchPath       string
	patchThenApply  bool
	patchOutputHash bool
	patchRevert     bool
	patchExportOut  string
)

var patchCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Diff the tracked file against the current branch and record a patch",
	Args:  cobra.NoArgs,
	RunE:  runPatchCreate,
}

var patchApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Apply, or with --revert unapply, a patch",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatchApply,
}

var patchExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a patch's canonical record to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatchExport,
}

var patchImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Read and verify a patch record, adding it to the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatchImport,
}

func init() {
	patchCreateCmd.Flags().StringVarP(&patchAuthor, "author", "a", "", "patch author")
	patchCreateCmd.Flags().StringVarP(&patchMessage, "message", "m", "", "patch description")
	patchCreateCmd.Flags().StringVar(&patchPath, "path", "", "tracked file path (default "+store.DefaultFileName+")")
	patchCreateCmd.Flags().BoolVar(&patchThenApply, "then-apply", false, "apply the patch immediately after creating it")
	patchCreateCmd.Flags().BoolVar(&patchOutputHash, "output-hash", false, "print only the new patch id")

	patchApplyCmd.Flags().BoolVarP(&patchRevert, "revert", "R", false, "unapply instead of apply, cascading to dependents")

	patchExportCmd.Flags().StringVarP(&patchExportOut, "output", "o", "", "destination file (default: the patch id)")

	patchCmd.AddCommand(patchCreateCmd, patchApplyCmd, patchExportCmd, patchImportCmd)
	rootCmd.AddCommand(patchCmd)
}

// readWorkingFile splits a file's contents into lines the same way a
// rendered branch is split: a trailing "\n" is not itself a line, and its
// presence is reported separately so the branch's newline-policy flag
// (SPEC_FULL.md §12) can be kept in sync with what was last ingested.
func readWorkingFile(path string) (lines []string, trailingNewline bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, &ojoerrors.IOError{Path: path, Cause: err}
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	s := string(data)
	trailingNewline = strings.HasSuffix(s, "\n")
	if trailingNewline {
		s = s[:len(s)-1]
	}
	return strings.Split(s, "\n"), trailingNewline, nil
}

// renderedLines returns the current branch's content as a slice of lines
// plus the NodeId backing each one, failing with ErrConflictedBranch if
// the branch does not have a unique order.
func renderedLines(repo *store.Repository, branch string) ([]string, []ids.NodeID, error) {
	g, err := repo.Graggle(branch)
	if err != nil {
		return nil, nil, err
	}
	result := render.Order(g)
	if result.Conflicted {
		return nil, nil, ojoerrors.ErrConflictedBranch
	}
	lines := make([]string, len(result.Order))
	for i, id := range result.Order {
		lines[i] = g.Nodes[id].Content
	}
	return lines, result.Order, nil
}

func runPatchCreate(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	path := patchPath
	if path == "" {
		path = store.DefaultFileName
	}

	oldLines, oldOrder, err := renderedLines(repo, repo.Current)
	if err != nil {
		return friendlyError(err)
	}
	newLines, trailingNewline, err := readWorkingFile(path)
	if err != nil {
		return err
	}

	edits := diff.Lines(oldLines, newLines)
	p, err := patch.FromDiff(oldOrder, edits, repo.DepsOf, patchAuthor, patchMessage, time.Now())
	if err != nil {
		return err
	}
	if err := repo.PutPatch(p); err != nil {
		return err
	}

	branch := repo.CurrentBranch()
	branch.TrailingNewline = trailingNewline

	applied := false
	if patchThenApply {
		if err := repo.Apply(repo.Current, p.ID); err != nil {
			return err
		}
		applied = true
	}
	if err := repo.Save(); err != nil {
		return err
	}

	if patchOutputHash {
		fmt.Println(p.ID)
		return nil
	}
	if applied {
		ui.NewPrinter().Success("Created and applied patch " + string(p.ID))
	} else {
		ui.NewPrinter().Success("Created patch " + string(p.ID))
	}
	return nil
}

func runPatchApply(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	id := ids.PatchID(args[0])

	if patchRevert {
		affected, err := repo.Unapply(repo.Current, id)
		if err != nil {
			return err
		}
		if err := repo.Save(); err != nil {
			return err
		}
		fmt.Println("Unapplied:")
		for _, a := range affected {
			fmt.Println("  " + string(a))
		}
		return nil
	}

	if err := repo.Apply(repo.Current, id); err != nil {
		return err
	}
	if err := repo.Save(); err != nil {
		return err
	}
	fmt.Println("Applied:")
	fmt.Println("  " + string(id))
	return nil
}

func runPatchExport(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	id := ids.PatchID(args[0])
	p, ok := repo.Get(id)
	if !ok {
		return &ojoerrors.UnknownPatchError{ID: string(id)}
	}

	dest := patchExportOut
	if dest == "" {
		dest = string(id)
	}
	if err := repo.ExportPatch(p, dest); err != nil {
		return err
	}
	fmt.Printf("Successfully wrote the file '%s'\n", dest)
	return nil
}

func runPatchImport(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	p, err := repo.ImportPatch(args[0])
	if err != nil {
		return friendlyError(err)
	}
	ui.NewPrinter().Success("Imported patch " + string(p.ID))
	return nil
}
