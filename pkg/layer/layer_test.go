// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package layer

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/variant"
)

func TestSetAll(t *testing.T) {
	l := NewDefaults("project")
	require.NoError(t, l.SetAll(map[string]any{
		"minSdk":        uint64(23),
		"compileSdk":    "V",
		"minifyEnabled": "true",
	}))

	assert.Equal(t, []field.Name{field.CompileSdk, field.MinSdk, field.MinifyEnabled}, l.Fields())
	v, ok := l.Get(field.CompileSdk)
	require.True(t, ok)
	assert.Equal(t, 35, v.Int())

	err := l.SetAll(map[string]any{"isMinifyEnabled": true})
	assert.ErrorIs(t, err, field.ErrUnknownField)

	err = l.SetAll(map[string]any{"targetSdk": "Zebra"})
	assert.ErrorIs(t, err, field.ErrInvalidValue)
}

func TestSetChecksKind(t *testing.T) {
	l := NewDefaults("project")
	require.NoError(t, l.Set(field.MinSdk, field.NewSdkLevel(30)))

	err := l.Set(field.MinSdk, field.NewString("30"))
	assert.ErrorIs(t, err, field.ErrInvalidValue)
	v, _ := l.Get(field.MinSdk)
	assert.Equal(t, 30, v.Int())

	assert.ErrorIs(t, l.Set(field.VersionCode, field.NewSdkLevel(3)), field.ErrInvalidValue)
	assert.ErrorIs(t, l.Set("compileSdkVersion", field.NewSdkLevel(35)), field.ErrUnknownField)
	assert.Equal(t, 1, l.Len())
}

func TestWithSigning(t *testing.T) {
	_, err := NewDefaults("project").WithSigning(signing.Fragment{KeyAlias: signing.Present("a")})
	assert.Error(t, err)

	env := NewEnvironment("env")
	_, err = env.WithSigning(signing.Fragment{KeyAlias: signing.Present("a")})
	require.NoError(t, err)
	_, err = env.WithSigning(signing.Fragment{StoreFile: signing.Present("k.jks")})
	require.NoError(t, err)

	assert.Equal(t, "a", *env.Signing().KeyAlias)
	assert.Equal(t, "k.jks", *env.Signing().StoreFile)
}

func TestOrdered(t *testing.T) {
	layers := []*Layer{
		NewVariant("buildTypes.release", variant.Release),
		NewEnvironment("env"),
		nil,
		NewDefaults("project"),
		NewEnvironment("netrc"),
		NewDefaults("git"),
	}
	names := lo.Map(Ordered(layers), func(l *Layer, _ int) string { return l.Name() })
	assert.Equal(t, []string{"project", "git", "env", "netrc", "buildTypes.release"}, names)
	assert.Len(t, layers, 6)
}

func TestString(t *testing.T) {
	assert.Equal(t, "buildTypes.debug (variant debug)", NewVariant("buildTypes.debug", variant.Debug).String())
	assert.Equal(t, "env (environment)", NewEnvironment("env").String())
}

func TestResolvePaths(t *testing.T) {
	l := NewDefaults("project")
	require.NoError(t, l.SetAll(map[string]any{
		"toolkitSource": "../toolkit",
		"proguardFiles": []any{"rules.pro", "/opt/shared/common.pro"},
		"namespace":     "org.nullgram",
	}))
	l.ResolvePaths("/work/app")

	toolkit, _ := l.Get(field.ToolkitSource)
	assert.Equal(t, "/work/toolkit", toolkit.Text())
	proguard, _ := l.Get(field.ProguardFiles)
	assert.Equal(t, []string{"/work/app/rules.pro", "/opt/shared/common.pro"}, proguard.List())
	namespace, _ := l.Get(field.Namespace)
	assert.Equal(t, "org.nullgram", namespace.Text())
}
