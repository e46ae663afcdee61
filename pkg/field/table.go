// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

func Table() string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("FIELD", "KIND", "DESCRIPTION").
		Rows(lo.Map(All(), func(d Definition, _ int) []string {
			return []string{
				string(d.Name),
				lipgloss.NewStyle().Faint(true).Render(d.Kind.String()),
				d.Description,
			}
		})...).
		String()
}
