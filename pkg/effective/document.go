// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package effective

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/signing"
)

// Document is the serialisable form handed to the build executor
type Document struct {
	Variant       string              `yaml:"variant" json:"variant"`
	ApplicationID string              `yaml:"effectiveApplicationId,omitempty" json:"effectiveApplicationId,omitempty"`
	Fields        map[string]any      `yaml:"fields" json:"fields"`
	Sources       map[string]string   `yaml:"sources,omitempty" json:"sources,omitempty"`
	Signing       *signing.Credential `yaml:"signing,omitempty" json:"signing,omitempty"`
	Overrides     []Override          `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Document renders c. Passwords are masked unless showSecrets is set.
func (c *Config) Document(showSecrets bool) Document {
	d := Document{
		Variant:       c.variant.String(),
		ApplicationID: c.ApplicationID(),
		Fields:        map[string]any{},
		Sources:       map[string]string{},
		Overrides:     c.Overrides(),
	}
	for _, name := range c.Fields() {
		d.Fields[string(name)] = c.values[name].Interface()
		d.Sources[string(name)] = c.sources[name]
	}
	if s := c.Signing(); s != nil {
		if !showSecrets {
			*s = s.Redacted()
		}
		d.Signing = s
	}
	return d
}

func (c *Config) Table(showSecrets bool) string {
	rows := lo.Map(c.Fields(), func(name field.Name, _ int) []string {
		return []string{string(name), c.values[name].String(), c.sources[name]}
	})

	if s := c.Signing(); s != nil {
		if !showSecrets {
			*s = s.Redacted()
		}
		rows = append(rows,
			[]string{"signing." + signing.StoreFile, s.StoreFile, s.Identity},
			[]string{"signing." + signing.StorePassword, s.StorePassword, s.Identity},
			[]string{"signing." + signing.KeyAlias, s.KeyAlias, s.Identity},
			[]string{"signing." + signing.KeyPassword, s.KeyPassword, s.Identity},
		)
	} else {
		rows = append(rows, []string{"signing", lipgloss.NewStyle().Faint(true).Italic(true).Render("unsigned"), ""})
	}

	header := lipgloss.NewStyle().Bold(true)
	policy := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("FIELD", "VALUE", "SOURCE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 2 && row >= 0 && row < len(rows) && rows[row][2] == PolicySource {
				return policy
			}
			return lipgloss.NewStyle()
		}).
		String()
}
