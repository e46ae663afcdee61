// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"nullgram.org/x/buildcfg/cmd/buildcfg/cmd/fields"
	"nullgram.org/x/buildcfg/cmd/buildcfg/cmd/resolve"
	"nullgram.org/x/buildcfg/cmd/buildcfg/cmd/variants"
	versionCmd "nullgram.org/x/buildcfg/cmd/buildcfg/cmd/version"
	"nullgram.org/x/buildcfg/pkg/buildinfo"
	"nullgram.org/x/buildcfg/pkg/builtincommand"
	"nullgram.org/x/buildcfg/pkg/cli"
	"nullgram.org/x/buildcfg/pkg/logging"
	"nullgram.org/x/buildcfg/pkg/toolconfig"
)

const (
	resolveGroupId = "resolve"
	metaGroupId    = "meta"
	BuildCfgName   = "buildcfg"
)

func RootCmd(ctx context.Context, b *cli.BuildCfg) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   BuildCfgName,
		Short: "resolve the effective build configuration of an android application variant",
		Long: `resolve the effective build configuration of an android application variant

	"buildcfg <variant>" is short for "buildcfg resolve <variant>".
`,
	}

	defer b.SetOutputStreams(cmd)

	if len(b.OsArgs) == 0 {
		return nil, fmt.Errorf("BuildCfg.OsArgs must contain at least one entry similar to os.Args")
	}

	cmd.SetArgs(builtincommand.ShorthandArgs(b.OsArgs)[1:])
	cmd.AddGroup(&cobra.Group{
		ID:    resolveGroupId,
		Title: "Resolution Commands",
	})
	cmd.AddGroup(&cobra.Group{
		ID:    metaGroupId,
		Title: "Meta Commands",
	})

	var logOutput io.Writer = os.Stderr
	if b.Stderr != nil {
		logOutput = b.Stderr
	}
	if err := logging.InitLogging(logOutput); err != nil {
		return nil, err
	}

	config, err := toolconfig.Get()
	if err != nil {
		return nil, err
	}

	cmd.AddCommand(
		setCmdGroup(resolve.Cmd(config), resolveGroupId),
		setCmdGroup(variants.Cmd(config), resolveGroupId),
		setCmdGroup(fields.Cmd(), metaGroupId),
		setCmdGroup(versionCmd.Cmd(), metaGroupId),
	)

	version, err := yaml.Marshal(buildinfo.Get())
	if err != nil {
		return nil, err
	}
	cmd.Version = string(version)
	cmd.SetVersionTemplate("{{.Version}}")

	return cmd, nil
}

func setCmdGroup(cmd *cobra.Command, groupId string) *cobra.Command {
	cmd.GroupID = groupId
	return cmd
}
