// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/project/testdata"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/variant"
)

const projectPath = "/work/nullgram/buildcfg.yaml"

func TestReadContents(t *testing.T) {
	for name, tc := range map[string]struct {
		contents []byte
		format   Format
	}{
		"yaml": {testdata.NullgramYaml, YAML},
		"toml": {testdata.NullgramToml, TOML},
	} {
		t.Run(name, func(t *testing.T) {
			p, err := ReadContents(tc.contents, tc.format, projectPath)
			require.NoError(t, err)

			assert.Equal(t, "/work/nullgram", p.Dir())
			assert.Equal(t, []variant.Name{variant.Release, variant.Debug, "profile"}, p.Variants.Names())
			require.Len(t, p.Layers, 3)

			defaults := p.Layers[0]
			assert.Equal(t, DefaultsLayerName, defaults.Name())
			assert.Equal(t, layer.Defaults, defaults.Kind())
			minSdk, ok := defaults.Get(field.MinSdk)
			require.True(t, ok)
			assert.Equal(t, 23, minSdk.Int())
			ndk, _ := defaults.Get(field.NdkVersion)
			assert.Equal(t, "27.0.12077973", ndk.Text())
			jni, _ := defaults.Get(field.JniLibsDirs)
			assert.Equal(t, []string{"/work/nullgram/libs"}, jni.List())

			release := p.Layers[1]
			assert.Equal(t, "buildTypes.release", release.Name())
			assert.Equal(t, variant.Release, release.Variant())
			minify, _ := release.Get(field.MinifyEnabled)
			assert.True(t, minify.Bool())
			proguard, _ := release.Get(field.ProguardFiles)
			assert.Equal(t, []string{
				"/work/nullgram/proguard-android-optimize.txt",
				"/work/nullgram/proguard-rules.pro",
			}, proguard.List())

			debug := p.Layers[2]
			assert.Equal(t, variant.Debug, debug.Variant())
			suffix, _ := debug.Get(field.ApplicationIDSuffix)
			assert.Equal(t, ".debug", suffix.Text())

			assert.Equal(t, signing.FallbackAlways, p.Fallback)
			assert.Equal(t, "upload", p.FallbackIdentity)
			assert.Equal(t, signing.Credential{
				Identity:      "upload",
				StoreFile:     "/work/nullgram/keys/upload.jks",
				StorePassword: "hunter2",
				KeyAlias:      "upload",
				KeyPassword:   "hunter2",
			}, p.Identities["upload"])
		})
	}
}

func TestReadContentsMinimal(t *testing.T) {
	p, err := ReadContents(testdata.Minimal, YAML, projectPath)
	require.NoError(t, err)
	assert.Empty(t, p.Layers)
	assert.Equal(t, variant.DefaultSet().Names(), p.Variants.Names())
	assert.Equal(t, signing.FallbackDebuggable, p.Fallback)
	assert.Equal(t, signing.DebugIdentity, p.FallbackIdentity)
}

func TestReadContentsInvalid(t *testing.T) {
	for name, tc := range map[string]struct {
		contents []byte
		format   Format
		target   error
	}{
		"unknown field":       {testdata.UnknownField, YAML, field.ErrUnknownField},
		"unknown build type":  {testdata.UnknownBuildType, YAML, ErrInvalidProject},
		"wrong kind":          {testdata.WrongKind, YAML, ErrInvalidProject},
		"incomplete identity": {testdata.IncompleteIdentity, YAML, ErrInvalidProject},
		"bad value":           {testdata.BadValue, TOML, field.ErrInvalidValue},
		"unknown toml key":    {testdata.UnknownKey, TOML, ErrInvalidProject},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadContents(tc.contents, tc.format, projectPath)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestReadContentsStrictYaml(t *testing.T) {
	_, err := ReadContents([]byte("apiVersion: buildcfg.nullgram.org/v1\nkind: BuildConfig\nflavors: [free]\n"), YAML, projectPath)
	assert.Error(t, err)
}

func TestReadContentsUnquotedVersion(t *testing.T) {
	yamlProject := []byte("apiVersion: buildcfg.nullgram.org/v1\nkind: BuildConfig\ndefaults:\n  versionName: 1.10\n")
	_, err := ReadContents(yamlProject, YAML, projectPath)
	assert.ErrorIs(t, err, field.ErrInvalidValue)

	tomlProject := []byte("apiVersion = \"buildcfg.nullgram.org/v1\"\nkind = \"BuildConfig\"\n\n[buildTypes.release]\nversionName = 2.0\n")
	_, err = ReadContents(tomlProject, TOML, projectPath)
	assert.ErrorIs(t, err, field.ErrInvalidValue)

	quoted := []byte("apiVersion: buildcfg.nullgram.org/v1\nkind: BuildConfig\ndefaults:\n  versionName: \"1.10\"\n")
	p, err := ReadContents(quoted, YAML, projectPath)
	require.NoError(t, err)
	v, _ := p.Layers[0].Get(field.VersionName)
	assert.Equal(t, "1.10", v.Text())
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buildcfg.toml")
	require.NoError(t, os.WriteFile(path, testdata.NullgramToml, 0o644))

	p, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.AbsolutePath)
	assert.Equal(t, filepath.Join(dir, "keys", "upload.jks"), p.Identities["upload"].StoreFile)

	_, err = Read(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLayerFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ci.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  versionCode: 42
buildTypes:
  profile:
    minifyEnabled: false
`), 0o644))

	set, err := variant.NewSet(variant.Definition{Name: "profile", InitWith: variant.Release})
	require.NoError(t, err)

	layers, err := ReadLayerFile(path, set)
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "ci", layers[0].Name())
	assert.Equal(t, layer.Defaults, layers[0].Kind())
	assert.Equal(t, "ci:buildTypes.profile", layers[1].Name())
	assert.Equal(t, variant.Name("profile"), layers[1].Variant())

	_, err = ReadLayerFile(path, variant.DefaultSet())
	assert.ErrorIs(t, err, ErrInvalidProject)

	withSigning := filepath.Join(dir, "signing.yaml")
	require.NoError(t, os.WriteFile(withSigning, []byte("signing:\n  fallback: never\n"), 0o644))
	_, err = ReadLayerFile(withSigning, set)
	assert.ErrorIs(t, err, ErrInvalidProject)
}

func TestFallbackPolicy(t *testing.T) {
	p, err := ReadContents(testdata.NullgramYaml, YAML, projectPath)
	require.NoError(t, err)

	policy, err := p.FallbackPolicy("/home/dev/.android/debug.keystore", nil, "")
	require.NoError(t, err)
	assert.Equal(t, signing.FallbackAlways, policy.Mode)
	assert.Equal(t, "upload", policy.Identity.Identity)

	never := signing.FallbackNever
	policy, err = p.FallbackPolicy("/home/dev/.android/debug.keystore", &never, signing.DebugIdentity)
	require.NoError(t, err)
	assert.Equal(t, signing.FallbackNever, policy.Mode)
	assert.Equal(t, signing.AndroidDebugIdentity("/home/dev/.android/debug.keystore"), policy.Identity)

	_, err = p.FallbackPolicy("", nil, "nightly")
	assert.ErrorIs(t, err, ErrInvalidProject)
}
