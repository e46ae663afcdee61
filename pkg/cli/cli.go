// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type BuildCfg struct {
	Stderr, Stdout, Stdin *os.File
	ExitFn                func(exitCode int)
	// must contain at least one argument, namely the buildcfg binary name, similar to os.Args
	OsArgs []string
}

func (b *BuildCfg) SetOutputStreams(cmd *cobra.Command) {
	cmd.SetOut(b.Stdout)
	cmd.SetErr(b.Stderr)
	cmd.SetIn(b.Stdin)

	lo.ForEach(cmd.Commands(), func(sub *cobra.Command, _ int) {
		b.SetOutputStreams(sub)
	})
}

// Exit calls ExitFn, or os.Exit when none is set
func (b *BuildCfg) Exit(code int) {
	if b.ExitFn == nil {
		os.Exit(code)
	}
	b.ExitFn(code)
}
