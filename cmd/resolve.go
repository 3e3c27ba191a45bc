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
	"time"

	"github.com/fireflyframework/ojo/internal/resolve"
	"github.com/fireflyframework/ojo/internal/ui"
	"github.com/spf13/cobra"
)

var resolveAuthor string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Interactively linearize a conflicted branch into a new patch",
	Args:  cobra.NoArgs,
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveAuthor, "author", "a", "", "resolution patch author")
	rootCmd.AddCommand(resolveCmd)
}

// terminalOracle asks the operator, one frontier at a time, which line
// should come next, or whether two lines mean the same thing.
type terminalOracle struct{}

func (terminalOracle) Decide(frontier []resolve.FrontierEntry) (resolve.Decision, error) {
	fmt.Println()
	fmt.Println("  Conflicting lines, pick the one that should come first:")
	labels := make([]string, len(frontier))
	for i, f := range frontier {
		labels[i] = fmt.Sprintf("%s  %q", f.Node, f.Content)
	}
	labels = append(labels, "these lines mean the same thing")

	choice := ui.Select("Which line comes first?", labels, 0)
	if choice == labels[len(labels)-1] {
		if len(frontier) < 2 {
			return resolve.Decision{}, fmt.Errorf("resolve: need at least two lines to merge")
		}
		a, b := frontier[0].Node, frontier[1].Node
		if ui.Confirm(fmt.Sprintf("Replace both %s and %s with new text?", a, b), false) {
			text := ui.Prompt("Replacement text", frontier[0].Content)
			return resolve.Decision{Kind: resolve.Merge, MergeA: a, MergeB: b, Replacement: true, ReplacementText: text}, nil
		}
		return resolve.Decision{Kind: resolve.Merge, MergeA: a, MergeB: b}, nil
	}

	for i, f := range frontier {
		if labels[i] == choice {
			return resolve.Decision{Kind: resolve.Choose, Chosen: f.Node}, nil
		}
	}
	return resolve.Decision{Kind: resolve.Choose, Chosen: frontier[0].Node}, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	g, err := repo.Graggle(repo.Current)
	if err != nil {
		return friendlyError(err)
	}

	author := resolveAuthor
	if author == "" {
		author = ui.Prompt("Resolution author", "")
	}
	description := ui.Prompt("Resolution description", "resolve conflict")

	p, err := resolve.Run(g, terminalOracle{}, author, description, time.Now(), repo.DepsOf)
	if err != nil {
		return err
	}
	if err := repo.PutPatch(p); err != nil {
		return err
	}
	if err := repo.Apply(repo.Current, p.ID); err != nil {
		return err
	}
	if err := repo.Save(); err != nil {
		return err
	}

	ui.NewPrinter().Success("Created and applied patch " + string(p.ID))
	return nil
}
