// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/toolconfig"
	"nullgram.org/x/buildcfg/pkg/utils"
)

const (
	KeystoreEnvVar         = "ANDROID_KEYSTORE"
	KeystorePasswordEnvVar = "KEYSTORE_PASSWORD"
	KeyAliasEnvVar         = "KEYSTORE_ALIAS"
	KeyPasswordEnvVar      = "KEY_PASSWORD"

	EnvLayerName = "env"
)

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// FieldEnvVar is the variable overriding a catalogue field, e.g. BUILDCFG_MIN_SDK for minSdk
func FieldEnvVar(name field.Name) string {
	return toolconfig.EnvVarPrefix + strings.ToUpper(lo.SnakeCase(string(name)))
}

// FromEnv builds the environment layer. A relative keystore path resolves against baseDir.
func FromEnv(lookup LookupFunc, baseDir string) (*layer.Layer, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	l := layer.NewEnvironment(EnvLayerName)
	for _, d := range field.All() {
		raw, ok := lookup(FieldEnvVar(d.Name))
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if err := l.SetRaw(string(d.Name), raw); err != nil {
			return nil, fmt.Errorf("%s: %w", FieldEnvVar(d.Name), err)
		}
	}

	f := signing.Fragment{
		StoreFile:     signing.Present(get(KeystoreEnvVar)),
		StorePassword: signing.Present(get(KeystorePasswordEnvVar)),
		KeyAlias:      signing.Present(get(KeyAliasEnvVar)),
		KeyPassword:   signing.Present(get(KeyPasswordEnvVar)),
	}
	if f.StoreFile != nil {
		f.StoreFile = lo.ToPtr(utils.ResolvePath(baseDir, *f.StoreFile))
	}
	return l.WithSigning(f)
}
