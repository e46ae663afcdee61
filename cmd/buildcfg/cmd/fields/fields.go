// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"github.com/spf13/cobra"
	"nullgram.org/x/buildcfg/pkg/builtincommand"
	"nullgram.org/x/buildcfg/pkg/field"
)

func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Fields),
		Short: "list the configuration fields layers may set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(field.Table())
		},
	}
}
