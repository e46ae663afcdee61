// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"log/slog"

	"nullgram.org/x/buildcfg/pkg/gitversion"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/project"
	"nullgram.org/x/buildcfg/pkg/resolver"
	"nullgram.org/x/buildcfg/pkg/secrets"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/toolconfig"
)

// Workspace is a project file together with the tool configuration it is resolved under
type Workspace struct {
	Config  *toolconfig.Config
	Project *project.Project
}

// Sources selects the layers gathered besides the project file's own
type Sources struct {
	// LayerFiles are extra layer files, applied in order after the project file's layers of the same kind
	LayerFiles []string
	// NetrcPath and NetrcHost, when both set, add the host's netrc entry as an environment layer
	NetrcPath  string
	NetrcHost  string
	GitVersion bool
	Lookup     secrets.LookupFunc
}

// Open reads the project file found from cwd (or configured explicitly)
func Open(config *toolconfig.Config, cwd string) (*Workspace, error) {
	path, err := config.FindProject(cwd)
	if err != nil {
		return nil, err
	}
	slog.Debug("using project file", "path", path)

	p, err := project.Read(path)
	if err != nil {
		return nil, err
	}
	return &Workspace{Config: config, Project: p}, nil
}

// Layers collects every layer in the order Resolve expects them within a kind:
// project, git, layer files, environment, netrc
func (w *Workspace) Layers(src Sources) ([]*layer.Layer, error) {
	layers := append([]*layer.Layer{}, w.Project.Layers...)

	if src.GitVersion {
		l, err := gitversion.Layer(w.Project.Dir())
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}

	for _, f := range src.LayerFiles {
		ls, err := project.ReadLayerFile(f, w.Project.Variants)
		if err != nil {
			return nil, err
		}
		layers = append(layers, ls...)
	}

	env, err := secrets.FromEnv(src.Lookup, w.Project.Dir())
	if err != nil {
		return nil, err
	}
	layers = append(layers, env)

	if src.NetrcPath != "" && src.NetrcHost != "" {
		l, err := secrets.FromNetrc(src.NetrcPath, src.NetrcHost)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}

	for _, l := range layers {
		slog.Debug("layer", "layer", l.String(), "fields", l.Len())
	}
	return layers, nil
}

// Resolver builds a resolver for the project's variants. modeOverride wins over both
// the tool configuration and the project file.
func (w *Workspace) Resolver(modeOverride *signing.FallbackMode) (*resolver.Resolver, error) {
	mode := w.Config.Fallback
	if modeOverride != nil {
		mode = modeOverride
	}
	policy, err := w.Project.FallbackPolicy(w.Config.DebugKeystore, mode, w.Config.FallbackIdentity)
	if err != nil {
		return nil, err
	}
	return resolver.New(w.Project.Variants, resolver.WithFallback(policy)), nil
}
