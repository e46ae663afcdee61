// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package variant

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

// Table lists the variants with their initWith chain. Debuggable variants are highlighted.
func (s *Set) Table() string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("VARIANT", "DEBUGGABLE", "CHAIN").
		Rows(lo.Map(s.Definitions(), func(d Definition, _ int) []string {
			name := string(d.Name)
			if d.Debuggable {
				name = lipgloss.NewStyle().
					Foreground(lipgloss.Color("3")).
					Render(name)
			}
			chain := lo.Map(s.Chain(d.Name), func(n Name, _ int) string { return string(n) })
			return []string{
				name,
				lo.Ternary(d.Debuggable, "yes", "no"),
				strings.Join(chain, " -> "),
			}
		})...).
		String()
}
