// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"nullgram.org/x/buildcfg/pkg/secrets"
	"nullgram.org/x/buildcfg/pkg/toolconfig"
	"nullgram.org/x/buildcfg/pkg/utils"
)

// TestdataPath gives absolute path within the common 'testdata'
func TestdataPath(t *testing.T, path ...string) string {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	p := []string{filepath.Dir(file), "testdata"}
	p = append(p, path...)
	return filepath.Join(p...)
}

// CopyProject copies a project from the common 'testdata' into a fresh temp dir and returns the dir
func CopyProject(t *testing.T, name string) string {
	dst := t.TempDir()
	require.NoError(t, os.CopyFS(dst, os.DirFS(TestdataPath(t, name))))
	return dst
}

type CommonSetupSuite struct {
	suite.Suite
}

func (suite *CommonSetupSuite) SetupTest() {
	// set BUILDCFG_HOME to a randomized temp dir before every test,
	// otherwise, buildcfg will read the developer's ~/.buildcfg across tests.

	tmpHome, deleteFn, err := utils.MkdirTemp("", "")
	suite.Require().NoError(err)
	suite.T().Setenv(toolconfig.HomeEnvVar, tmpHome)
	suite.T().Cleanup(func() {
		_ = deleteFn()
	})

	// signing variables of the machine running the tests must not leak into them
	for _, v := range []string{
		secrets.KeystoreEnvVar,
		secrets.KeystorePasswordEnvVar,
		secrets.KeyAliasEnvVar,
		secrets.KeyPasswordEnvVar,
		toolconfig.ProjectEnvVar,
		toolconfig.FallbackEnvVar,
		toolconfig.FallbackIdentityEnvVar,
	} {
		UnsetEnv(suite.T(), v)
	}
	suite.T().Setenv(toolconfig.DebugKeystoreEnvVar, filepath.Join(tmpHome, "debug.keystore"))
}

// UnsetEnv removes key for the duration of the test
func UnsetEnv(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func Context(t *testing.T) context.Context {
	ctx, stopFn := context.WithCancel(context.Background())
	t.Cleanup(stopFn)
	return ctx
}

var OS = func() string {
	if runtime.GOOS == "windows" {
		return "windows"
	}
	return "unix"
}()
