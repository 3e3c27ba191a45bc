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

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#FF6B35")
	ColorSuccess = lipgloss.Color("#28A745")
	ColorWarning = lipgloss.Color("#FFC107")
	ColorError   = lipgloss.Color("#DC3545")
	ColorMuted   = lipgloss.Color("#6C757D")

	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// ─────────────────────────────────────────────────────────────────────────────
// Printer — core output primitives
// ─────────────────────────────────────────────────────────────────────────────

type Printer struct{}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) Success(msg string) {
	fmt.Println(StyleSuccess.Render("  ✓ ") + msg)
}

func (p *Printer) Error(msg string) {
	fmt.Println(StyleError.Render("  ✗ ") + msg)
}

// KeyValue prints a single aligned "key: value" row, used by "ojo config"
// to list the current CLI preferences.
func (p *Printer) KeyValue(key, value string) {
	padded := fmt.Sprintf("%-20s", key+":")
	fmt.Printf("  %s %s\n", StyleMuted.Render(padded), value)
}

func (p *Printer) Header(title string) {
	fmt.Println()
	fmt.Println(StylePrimary.Render("  " + title))
	fmt.Println(StyleMuted.Render("  " + strings.Repeat("─", len(title)+2)))
}

func (p *Printer) Newline() {
	fmt.Println()
}

// ─────────────────────────────────────────────────────────────────────────────
// CheckResult — doctor check outcome
// ─────────────────────────────────────────────────────────────────────────────

type CheckResult struct {
	Name   string
	Status string // "pass", "fail", "warn"
	Detail string
}

func (p *Printer) PrintChecks(results []CheckResult) {
	for _, r := range results {
		var icon string
		switch r.Status {
		case "pass":
			icon = StyleSuccess.Render("✓")
		case "fail":
			icon = StyleError.Render("✗")
		case "warn":
			icon = StyleWarning.Render("!")
		}
		line := fmt.Sprintf("  %s %s", icon, r.Name)
		if r.Detail != "" {
			line += StyleMuted.Render(" — " + r.Detail)
		}
		fmt.Println(line)
	}
}
