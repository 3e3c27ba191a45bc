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
	"sort"

	"github.com/fireflyframework/ojo/internal/ids"
	"github.com/spf13/cobra"
)

var graphOut string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Emit a Graphviz DOT rendering of the current branch's graggle",
	Args:  cobra.NoArgs,
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphOut, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	g, err := repo.Graggle(repo.Current)
	if err != nil {
		return friendlyError(err)
	}

	byLabel := make(map[string]ids.NodeID, len(g.Nodes))
	labels := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		label := id.String()
		byLabel[label] = id
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var out []byte
	out = append(out, "digraph graggle {\n"...)
	for _, label := range labels {
		node := g.Nodes[byLabel[label]]
		style := ""
		if node.Deleted() {
			style = `, style=dashed, color="#999999"`
		}
		out = append(out, []byte(fmt.Sprintf("  %q [label=%q%s];\n", label, node.Content, style))...)
	}
	edges := make([]string, 0, len(g.LiveEdges))
	for k := range g.LiveEdges {
		edges = append(edges, fmt.Sprintf("  %q -> %q;\n", k.Src.String(), k.Dst.String()))
	}
	sort.Strings(edges)
	for _, e := range edges {
		out = append(out, e...)
	}
	out = append(out, "}\n"...)

	if graphOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(graphOut, out, 0644)
}
