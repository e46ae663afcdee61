// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"nullgram.org/x/buildcfg/pkg/builtincommand"
	"nullgram.org/x/buildcfg/pkg/effective"
	"nullgram.org/x/buildcfg/pkg/resolver"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/toolconfig"
	"nullgram.org/x/buildcfg/pkg/utils"
	"nullgram.org/x/buildcfg/pkg/variant"
	"nullgram.org/x/buildcfg/pkg/workspace"
)

const (
	outputYaml  = "yaml"
	outputJson  = "json"
	outputTable = "table"
)

type options struct {
	project     string
	layerFiles  []string
	netrcHost   string
	netrcPath   string
	gitVersion  bool
	fallback    string
	output      string
	write       string
	showSecrets bool
	all         bool
}

func Cmd(config *toolconfig.Config) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   string(builtincommand.Resolve) + " <variant>",
		Short: "resolve the effective configuration of a variant",
		Long: `resolve the effective configuration of a variant

	layers apply defaults first, then environment, then the variant's build type
	overrides; within a kind the last layer setting a field wins.
	signing credentials come from ANDROID_KEYSTORE, KEYSTORE_PASSWORD, KEYSTORE_ALIAS
	and KEY_PASSWORD, or a netrc entry, and any field can be overridden with
	BUILDCFG_<FIELD>, e.g. BUILDCFG_MIN_SDK.
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			out, err := run(cmd, config, &opts, args)
			if err != nil {
				cmd.SilenceErrors = true
				printError(cmd, err)
				return err
			}

			if opts.write == "" {
				cmd.Print(out)
				return nil
			}

			lockPath := filepath.Join(filepath.Dir(opts.write), toolconfig.OutputLockFileName)
			err = utils.WithFileLock(cmd.Context(), lockPath, func() error {
				return utils.WriteFile(opts.write, []byte(out))
			})
			if err != nil {
				cmd.SilenceErrors = true
				printError(cmd, err)
				return err
			}
			cmd.PrintErrln(color.GreenString("wrote %s", opts.write))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.project, "project", "", "project file, defaults to the nearest buildcfg.yaml or buildcfg.toml")
	cmd.Flags().StringArrayVarP(&opts.layerFiles, "layer", "l", nil, "extra layer file (repeatable), applied after the project file")
	cmd.Flags().StringVar(&opts.netrcHost, "netrc", "", "read signing secrets from this machine's netrc entry")
	cmd.Flags().StringVar(&opts.netrcPath, "netrc-file", "", "netrc file, defaults to ~/.netrc")
	cmd.Flags().BoolVar(&opts.gitVersion, "git-version", false, "derive versionCode and versionName from the project's git repository")
	cmd.Flags().StringVar(&opts.fallback, "fallback", "", "signing fallback when no keystore is configured: debuggable, always, never")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputYaml, "output format: yaml, json, table")
	cmd.Flags().StringVarP(&opts.write, "write", "w", "", "write the output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.showSecrets, "show-secrets", false, "print signing passwords in clear")
	cmd.Flags().BoolVarP(&opts.all, "all", "A", false, "resolve every variant")

	return cmd
}

func run(cmd *cobra.Command, config *toolconfig.Config, opts *options, args []string) (string, error) {
	if !lo.Contains([]string{outputYaml, outputJson, outputTable}, opts.output) {
		return "", fmt.Errorf("output format not supported: %s", opts.output)
	}

	var mode *signing.FallbackMode
	if opts.fallback != "" {
		m, err := signing.ParseFallbackMode(opts.fallback)
		if err != nil {
			return "", err
		}
		mode = &m
	}

	cfg := *config
	if opts.project != "" {
		cfg.Project = opts.project
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	ws, err := workspace.Open(&cfg, cwd)
	if err != nil {
		return "", err
	}

	src := workspace.Sources{
		LayerFiles: opts.layerFiles,
		NetrcHost:  opts.netrcHost,
		NetrcPath:  opts.netrcPath,
		GitVersion: opts.gitVersion,
		Lookup:     os.LookupEnv,
	}
	if src.NetrcHost != "" && src.NetrcPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		src.NetrcPath = filepath.Join(home, ".netrc")
	}
	layers, err := ws.Layers(src)
	if err != nil {
		return "", err
	}

	r, err := ws.Resolver(mode)
	if err != nil {
		return "", err
	}

	if opts.all {
		configs, err := r.ResolveAll(cmd.Context(), layers)
		if err != nil {
			return "", err
		}
		ordered := lo.FilterMap(r.Variants().Names(), func(n variant.Name, _ int) (*effective.Config, bool) {
			c, ok := configs[n]
			return c, ok
		})
		return render(ordered, opts)
	}

	c, err := r.Resolve(variant.Name(args[0]), layers)
	if err != nil {
		return "", err
	}
	return render([]*effective.Config{c}, opts)
}

func render(configs []*effective.Config, opts *options) (string, error) {
	docs := lo.Map(configs, func(c *effective.Config, _ int) effective.Document {
		return c.Document(opts.showSecrets)
	})

	switch opts.output {
	case outputTable:
		tables := lo.Map(configs, func(c *effective.Config, _ int) string {
			return color.New(color.Bold).Sprint(c.Variant().String()) + "\n" + c.Table(opts.showSecrets) + "\n"
		})
		return strings.Join(tables, "\n"), nil
	case outputJson:
		var v any = docs
		if !opts.all {
			v = docs[0]
		}
		data, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		var v any = docs
		if !opts.all {
			v = docs[0]
		}
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// printError writes err to stderr as yaml, e.g. {code: INVALID_VERSION_RANGE, variant: release, cause: ...}
func printError(cmd *cobra.Command, err error) {
	data, marshalErr := yaml.Marshal(resolver.Standardize(err))
	if marshalErr != nil {
		cmd.PrintErrln(err.Error())
		return
	}
	cmd.PrintErr(string(data))
}
