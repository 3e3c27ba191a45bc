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
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/fireflyframework/ojo/internal/patch"
	"github.com/fireflyframework/ojo/internal/ui"
	"github.com/spf13/cobra"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Read a graggle spec from stdin (edges like \"0-1 1-2\") and apply it as a patch",
	Long: `synthesize is a development tool for building a graggle shape directly,
without going through patch create's diff machinery. It reads whitespace
separated edge tokens of the form "<from>-<to>" from stdin, one synthetic
line per integer seen, and records a single patch that creates those lines
and edges. Any integer with no declared predecessor hangs off Start; any
integer with no declared successor feeds into End.`,
	Args: cobra.NoArgs,
	RunE: runSynthesize,
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)
}

func parseEdgeTokens(r io.Reader) (edges [][2]int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	for _, tok := range strings.Fields(string(data)) {
		parts := strings.SplitN(tok, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("synthesize: malformed edge token %q", tok)
		}
		a, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("synthesize: malformed edge token %q: %w", tok, err)
		}
		b, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("synthesize: malformed edge token %q: %w", tok, err)
		}
		edges = append(edges, [2]int{a, b})
	}
	return edges, nil
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	edges, err := parseEdgeTokens(os.Stdin)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return fmt.Errorf("synthesize: no edges given on stdin")
	}

	nodeSet := make(map[int]bool)
	hasIncoming := make(map[int]bool)
	hasOutgoing := make(map[int]bool)
	for _, e := range edges {
		nodeSet[e[0]] = true
		nodeSet[e[1]] = true
		hasOutgoing[e[0]] = true
		hasIncoming[e[1]] = true
	}
	nodes := make([]int, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	local := func(n int) ids.NodeID {
		return ids.NodeID{Patch: patch.Pending, Local: n}
	}

	var ops []patch.Op
	for _, n := range nodes {
		ops = append(ops, patch.NewNodeOp(n, fmt.Sprintf("line %d", n)))
	}
	for _, n := range nodes {
		if !hasIncoming[n] {
			ops = append(ops, patch.NewEdgeOp(ids.Start, local(n)))
		}
	}
	for _, e := range edges {
		ops = append(ops, patch.NewEdgeOp(local(e[0]), local(e[1])))
	}
	for _, n := range nodes {
		if !hasOutgoing[n] {
			ops = append(ops, patch.NewEdgeOp(local(n), ids.End))
		}
	}

	p := &patch.Patch{
		Author:      "synthesize",
		Description: "synthesized graggle",
		Timestamp:   time.Now().UTC(),
		Ops:         ops,
	}
	if err := p.Seal(); err != nil {
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
