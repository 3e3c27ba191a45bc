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

	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"github.com/fireflyframework/ojo/internal/ui"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Manage branches",
	Args:  cobra.NoArgs,
	RunE:  runBranchList,
}

var branchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches, current marked with *",
	Args:  cobra.NoArgs,
	RunE:  runBranchList,
}

var branchNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create an empty branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranchNew,
}

var branchSwitchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch the current branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranchSwitch,
}

var branchDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a branch (forbidden for the current branch)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranchDelete,
}

var branchCloneCmd = &cobra.Command{
	Use:   "clone <name>",
	Short: "Create a branch sharing the current branch's applied set",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranchClone,
}

func init() {
	branchCmd.AddCommand(branchListCmd, branchNewCmd, branchSwitchCmd, branchDeleteCmd, branchCloneCmd)
	rootCmd.AddCommand(branchCmd)
}

func runBranchList(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	for _, name := range repo.BranchNames() {
		if name == repo.Current {
			fmt.Println("* " + name)
		} else {
			fmt.Println("  " + name)
		}
	}
	return nil
}

func runBranchNew(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.NewBranch(args[0]); err != nil {
		return err
	}
	if err := repo.Save(); err != nil {
		return err
	}
	ui.NewPrinter().Success("Created branch " + args[0])
	return nil
}

func runBranchSwitch(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.SwitchBranch(args[0]); err != nil {
		return err
	}
	if err := repo.Save(); err != nil {
		return err
	}
	ui.NewPrinter().Success("Switched to branch " + args[0])
	return nil
}

func runBranchDelete(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.DeleteBranch(args[0]); err != nil {
		if err == ojoerrors.ErrCurrentBranch {
			return fmt.Errorf("%q is the current branch", args[0])
		}
		return err
	}
	if err := repo.Save(); err != nil {
		return err
	}
	ui.NewPrinter().Success("Deleted branch " + args[0])
	return nil
}

func runBranchClone(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.CloneBranch(args[0]); err != nil {
		return err
	}
	if err := repo.Save(); err != nil {
		return err
	}
	ui.NewPrinter().Success("Created branch " + args[0] + " from " + repo.Current)
	return nil
}
