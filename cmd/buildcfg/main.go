// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	buildcfg "nullgram.org/x/buildcfg/cmd/buildcfg/cmd"
	"nullgram.org/x/buildcfg/pkg/cli"
)

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancelFn()

	b := cli.BuildCfg{
		Stderr: os.Stderr,
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
		ExitFn: os.Exit,
		OsArgs: os.Args,
	}
	cmd, err := buildcfg.RootCmd(ctx, &b)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		b.Exit(1)
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		b.Exit(1)
	}
}
