// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package builtincommand

import (
	"strings"

	"github.com/samber/lo"
)

type BuiltinCommand string

const (
	Resolve    BuiltinCommand = "resolve"
	Variants   BuiltinCommand = "variants"
	Fields     BuiltinCommand = "fields"
	Version    BuiltinCommand = "version"
	Help       BuiltinCommand = "help"
	Completion BuiltinCommand = "completion"
)

var BuiltinCommands = []BuiltinCommand{Resolve, Variants, Fields, Version, Help, Completion}

func IsBuiltinCommand(args []string) bool {
	if len(args) > 1 {
		elems := lo.Map(BuiltinCommands, func(item BuiltinCommand, _ int) string {
			return string(item)
		})
		return lo.Contains(elems, args[1])
	}
	return false
}

// ShorthandArgs rewrites "buildcfg <variant> ..." into "buildcfg resolve <variant> ...".
// Flags, cobra's internal completion commands and builtin commands are left alone.
func ShorthandArgs(args []string) []string {
	if len(args) < 2 || IsBuiltinCommand(args) || strings.HasPrefix(args[1], "-") || strings.HasPrefix(args[1], "__") {
		return args
	}
	return append([]string{args[0], string(Resolve)}, args[1:]...)
}
