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

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	verbose bool

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B35")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D")).
			Italic(true)
)

const banner = `
        _
  ___  (_)  ___
 / _ \ | | / _ \
| (_) || || (_) |
 \___/ |_| \___/`

// skipBanner lists command names (or parent+child) that should NOT print
// the banner — scripting-facing output that must stay undecorated.
var skipBanner = map[string]bool{
	"version":      true,
	"config get":   true,
	"config set":   true,
	"config reset": true,
	"patch create": true,
	"patch export": true,
	"log":          true,
	"render":       true,
	"graph":        true,
	"synthesize":   true,
	"help":         true,
	"completion":   true,
}

func shouldSkipBanner(cmd *cobra.Command) bool {
	// Skip if --help/-h flag was set.
	if cmd.Flags().Changed("help") {
		return true
	}
	// patch create --output-hash must print nothing but the hash.
	if f := cmd.Flags().Lookup("output-hash"); f != nil && f.Changed {
		return true
	}
	// Build command path like "config get" (stop at root).
	parts := []string{}
	for c := cmd; c != nil && c.Parent() != nil; c = c.Parent() {
		parts = append([]string{c.Name()}, parts...)
	}
	path := strings.Join(parts, " ")
	return skipBanner[path]
}

var rootCmd = &cobra.Command{
	Use:   "ojo",
	Short: "A minimal, patch-theoretic version control engine",
	Long: bannerStyle.Render(banner) + "\n" + subtitleStyle.Render("  patch-theoretic version control for a single file") + `

ojo tracks one text file as a graph of lines (a "graggle"). History is a
partially ordered set of content-addressed patches rather than a linear
commit chain: two independently constructed patches can be applied in
either order, and a file can only be rendered when the graph admits a
single, unambiguous line order.

Available Commands:
  init        Create a repository in the current directory
  patch       Create, apply, export, and import patches
  render      Write the current branch's file to disk
  log         List the current branch's applied patches
  branch      Manage branches (list, new, switch, delete, clone)
  resolve     Interactively linearize a conflicted branch
  graph       Emit a Graphviz DOT file of the current graggle
  synthesize  Load a graggle spec from stdin (development tool)
  doctor      Check the current branch's graggle invariants
  config      View and manage CLI configuration
  version     Print CLI version information

Getting Started:
  ojo init                          Start tracking a file in this directory
  ojo patch create -a you -m "..."  Record your edits as a patch
  ojo render                        Materialize the current branch to disk

Configuration:
  Config file: ~/.ojo/config.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !shouldSkipBanner(cmd) {
			fmt.Println(bannerStyle.Render(banner))
			fmt.Println(subtitleStyle.Render("  patch-theoretic version control for a single file"))
			fmt.Println()
		}
	},
}

func Execute() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.NewStyle().Foreground(lipgloss.Color("#DC3545")).Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
