// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package toolconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nullgram.org/x/buildcfg/pkg/signing"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{ProjectEnvVar, FallbackEnvVar, FallbackIdentityEnvVar, DebugKeystoreEnvVar} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestGetDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", "/home/ci")
	home := t.TempDir()

	c, err := GetWithCustomHome(home)
	require.NoError(t, err)
	assert.Equal(t, home, c.HomePath)
	assert.Nil(t, c.Fallback)
	assert.Empty(t, c.Project)
	assert.Equal(t, signing.DefaultDebugKeystore("/home/ci"), c.DebugKeystore)
}

func TestGetFromFileAndEnv(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte(`
project: /src/app/buildcfg.yaml
fallback: always
debug-keystore: /keys/debug.keystore
`), 0o644))

	c, err := GetWithCustomHome(home)
	require.NoError(t, err)
	require.NotNil(t, c.Fallback)
	assert.Equal(t, signing.FallbackAlways, *c.Fallback)
	assert.Equal(t, "/src/app/buildcfg.yaml", c.Project)
	assert.Equal(t, "/keys/debug.keystore", c.DebugKeystore)

	t.Setenv(FallbackEnvVar, "never")
	t.Setenv(ProjectEnvVar, "/other/buildcfg.toml")
	t.Setenv(FallbackIdentityEnvVar, "shared")
	c, err = GetWithCustomHome(home)
	require.NoError(t, err)
	assert.Equal(t, signing.FallbackNever, *c.Fallback)
	assert.Equal(t, "/other/buildcfg.toml", c.Project)
	assert.Equal(t, "shared", c.FallbackIdentity)

	t.Setenv(FallbackEnvVar, "sometimes")
	_, err = GetWithCustomHome(home)
	assert.ErrorIs(t, err, signing.ErrInvalidFallback)
}

func TestGetRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte("registry: nope\n"), 0o644))
	_, err := GetWithCustomHome(home)
	assert.Error(t, err)
}

func TestFindProject(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "android", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c := &Config{}
	_, err := c.FindProject(nested)
	assert.ErrorIs(t, err, ErrNoProject)

	tomlPath := filepath.Join(root, ProjectTomlFilename)
	require.NoError(t, os.WriteFile(tomlPath, nil, 0o644))
	p, err := c.FindProject(nested)
	require.NoError(t, err)
	assert.Equal(t, tomlPath, p)

	yamlPath := filepath.Join(root, "android", ProjectYamlFilename)
	require.NoError(t, os.WriteFile(yamlPath, nil, 0o644))
	p, err = c.FindProject(nested)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, p)

	c.Project = tomlPath
	p, err = c.FindProject(nested)
	require.NoError(t, err)
	assert.Equal(t, tomlPath, p)
}
