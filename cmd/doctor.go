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

	"github.com/fireflyframework/ojo/internal/integrity"
	"github.com/fireflyframework/ojo/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the current branch's graggle for structural invariant violations",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	g, err := repo.Graggle(repo.Current)
	if err != nil {
		return friendlyError(err)
	}

	p := ui.NewPrinter()
	p.Header("Branch " + repo.Current)

	results := integrity.Run(g)
	p.PrintChecks(results)

	failed := 0
	for _, r := range results {
		if r.Status == "fail" {
			failed++
		}
	}

	p.Newline()
	if failed > 0 {
		p.Error(fmt.Sprintf("%d of %d checks failed", failed, len(results)))
		return fmt.Errorf("graggle failed integrity checks")
	}
	p.Success(fmt.Sprintf("all %d checks passed", len(results)))
	return nil
}
