// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/schema"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/utils"
	"nullgram.org/x/buildcfg/pkg/variant"
)

var ErrInvalidProject = fmt.Errorf("invalid project file")

const (
	Kind       = "BuildConfig"
	Version    = "v1"
	APIVersion = schema.APIGroup + "/" + Version

	DefaultsLayerName = "project"
)

type Format int

const (
	YAML Format = iota
	TOML
)

// FormatOf picks the decoder from the file extension; anything but .toml is yaml
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

type file struct {
	schema.ManifestMeta `yaml:",inline"`

	Defaults   map[string]any            `yaml:"defaults" toml:"defaults"`
	Variants   []variant.Definition      `yaml:"variants" toml:"variants"`
	BuildTypes map[string]map[string]any `yaml:"buildTypes" toml:"buildTypes"`
	Signing    *signingSection           `yaml:"signing" toml:"signing"`
}

type signingSection struct {
	Fallback   string              `yaml:"fallback" toml:"fallback"`
	Identity   string              `yaml:"identity" toml:"identity"`
	Identities map[string]identity `yaml:"identities" toml:"identities"`
}

type identity struct {
	StoreFile     string `yaml:"storeFile" toml:"storeFile"`
	StorePassword string `yaml:"storePassword" toml:"storePassword"`
	KeyAlias      string `yaml:"keyAlias" toml:"keyAlias"`
	KeyPassword   string `yaml:"keyPassword" toml:"keyPassword"`
}

// Project is a parsed project file
type Project struct {
	AbsolutePath string
	Variants     *variant.Set
	// Layers holds the defaults layer followed by one override layer per build type, in variant order
	Layers []*layer.Layer

	Fallback         signing.FallbackMode
	FallbackIdentity string
	Identities       map[string]signing.Credential
}

func (p *Project) Dir() string {
	return filepath.Dir(p.AbsolutePath)
}

func Read(filePath string) (*Project, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	bytes, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	p, err := ReadContents(bytes, FormatOf(abs), abs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return p, nil
}

func ReadContents(contents []byte, format Format, absPath string) (*Project, error) {
	f, err := decode(contents, format)
	if err != nil {
		return nil, err
	}

	s := schema.ManifestMeta{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	if err := s.ValidateSchema(f.ManifestMeta); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProject, err.Error())
	}

	set, err := variant.NewSet(f.Variants...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}

	layers, err := layersOf(DefaultsLayerName, "", filepath.Dir(absPath), f, set)
	if err != nil {
		return nil, err
	}

	p := &Project{
		AbsolutePath:     absPath,
		Variants:         set,
		Layers:           layers,
		Fallback:         signing.FallbackDebuggable,
		FallbackIdentity: signing.DebugIdentity,
		Identities:       map[string]signing.Credential{},
	}
	if err := p.readSigning(f.Signing); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadLayerFile reads an extra layer file. Only 'defaults' and 'buildTypes' are allowed in it,
// build types must belong to set.
func ReadLayerFile(filePath string, set *variant.Set) ([]*layer.Layer, error) {
	filePath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	f, err := decode(bytes, FormatOf(filePath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if len(f.Variants) > 0 || f.Signing != nil {
		return nil, fmt.Errorf("%s: %w: layer files may only contain 'defaults' and 'buildTypes'", filePath, ErrInvalidProject)
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	layers, err := layersOf(name, name+":", filepath.Dir(filePath), f, set)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return layers, nil
}

func decode(contents []byte, format Format) (*file, error) {
	var f file
	switch format {
	case TOML:
		md, err := toml.Decode(string(contents), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
			return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidProject, strings.Join(keys, ", "))
		}
	default:
		if err := yaml.UnmarshalWithOptions(contents, &f, yaml.Strict()); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

func layersOf(defaultsName, prefix, baseDir string, f *file, set *variant.Set) ([]*layer.Layer, error) {
	var layers []*layer.Layer
	if len(f.Defaults) > 0 {
		defaults := layer.NewDefaults(defaultsName)
		if err := defaults.SetAll(f.Defaults); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
		}
		layers = append(layers, defaults.ResolvePaths(baseDir))
	}

	for name := range f.BuildTypes {
		if !set.Contains(variant.Name(name)) {
			return nil, fmt.Errorf("%w: buildTypes.%s: unknown variant, expected one of: %s", ErrInvalidProject, name, set.String())
		}
	}

	for _, v := range set.Names() {
		raw, ok := f.BuildTypes[string(v)]
		if !ok {
			continue
		}
		l := layer.NewVariant(prefix+"buildTypes."+string(v), v)
		if err := l.SetAll(raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
		}
		layers = append(layers, l.ResolvePaths(baseDir))
	}
	return layers, nil
}

func (p *Project) readSigning(s *signingSection) error {
	if s == nil {
		return nil
	}

	if s.Fallback != "" {
		mode, err := signing.ParseFallbackMode(s.Fallback)
		if err != nil {
			return fmt.Errorf("%w: signing: %w", ErrInvalidProject, err)
		}
		p.Fallback = mode
	}
	if s.Identity != "" {
		p.FallbackIdentity = s.Identity
	}

	for name, id := range s.Identities {
		f := signing.Fragment{
			StoreFile:     signing.Present(id.StoreFile),
			StorePassword: signing.Present(id.StorePassword),
			KeyAlias:      signing.Present(id.KeyAlias),
			KeyPassword:   signing.Present(id.KeyPassword),
		}
		c, ok := f.Credential(name)
		if !ok {
			return fmt.Errorf("%w: signing.identities.%s is missing %s", ErrInvalidProject, name, strings.Join(f.Missing(), ", "))
		}
		c.StoreFile = utils.ResolvePath(p.Dir(), c.StoreFile)
		p.Identities[name] = *c
	}

	if _, ok := p.Identities[p.FallbackIdentity]; !ok && p.FallbackIdentity != signing.DebugIdentity {
		return fmt.Errorf("%w: signing.identity %q is neither %q nor declared in signing.identities", ErrInvalidProject, p.FallbackIdentity, signing.DebugIdentity)
	}
	return nil
}

// FallbackPolicy builds the policy the resolver applies when no keystore is configured.
// modeOverride and identityOverride, when set, win over the project file.
func (p *Project) FallbackPolicy(debugKeystore string, modeOverride *signing.FallbackMode, identityOverride string) (signing.FallbackPolicy, error) {
	mode := p.Fallback
	if modeOverride != nil {
		mode = *modeOverride
	}
	name := p.FallbackIdentity
	if identityOverride != "" {
		name = identityOverride
	}

	if c, ok := p.Identities[name]; ok {
		return signing.FallbackPolicy{Mode: mode, Identity: &c}, nil
	}
	if name == signing.DebugIdentity {
		return signing.FallbackPolicy{Mode: mode, Identity: signing.AndroidDebugIdentity(debugKeystore)}, nil
	}
	return signing.FallbackPolicy{}, fmt.Errorf("%w: unknown signing identity %q", ErrInvalidProject, name)
}
