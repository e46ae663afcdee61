// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package variants

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"nullgram.org/x/buildcfg/pkg/builtincommand"
	"nullgram.org/x/buildcfg/pkg/toolconfig"
	"nullgram.org/x/buildcfg/pkg/variant"
	"nullgram.org/x/buildcfg/pkg/workspace"
)

func Cmd(config *toolconfig.Config) *cobra.Command {
	var output, project string

	cmd := &cobra.Command{
		Use:   string(builtincommand.Variants),
		Short: "list the variants of the project",
		Long: `list the variants of the project

	outside a project only the builtin release and debug variants exist.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := projectVariants(config, project)
			if err != nil {
				cmd.SilenceUsage = true
				return err
			}

			switch output {
			case "table":
				cmd.Println(set.Table())
			case "json":
				data, err := json.MarshalIndent(set.Definitions(), "", "    ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
			default:
				return fmt.Errorf("output format not supported: %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project file, defaults to the nearest buildcfg.yaml or buildcfg.toml")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: json, table")
	return cmd
}

func projectVariants(config *toolconfig.Config, project string) (*variant.Set, error) {
	cfg := *config
	if project != "" {
		cfg.Project = project
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	ws, err := workspace.Open(&cfg, cwd)
	if errors.Is(err, toolconfig.ErrNoProject) {
		slog.Debug("no project file found, listing builtin variants")
		return variant.DefaultSet(), nil
	} else if err != nil {
		return nil, err
	}
	return ws.Project.Variants, nil
}
