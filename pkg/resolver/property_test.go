// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/variant"
)

// credentialFragment picks sub-fields by bit: 1 store file, 2 store password, 4 key alias, 8 key password
func credentialFragment(mask int) signing.Fragment {
	pick := func(bit int, s string) *string {
		if mask&bit == 0 {
			return nil
		}
		return signing.Present(s)
	}
	return signing.Fragment{
		StoreFile:     pick(1, "/keys/upload.jks"),
		StorePassword: pick(2, "store"),
		KeyAlias:      pick(4, "upload"),
		KeyPassword:   pick(8, "key"),
	}
}

func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	set, err := variant.NewSet(variant.Definition{Name: "profile", InitWith: variant.Release})
	require.NoError(t, err)
	names := set.Names()

	properties.Property("result satisfies invariants or is exactly one of the known errors", prop.ForAll(
		func(minSdk, targetSdk, compileSdk int, minify, shrink bool, variantIdx, mask, mode int) bool {
			v := names[variantIdx]
			r := New(set, WithLogger(quiet), WithFallback(signing.FallbackPolicy{
				Mode:     signing.FallbackMode(mode),
				Identity: debugIdentity(),
			}))

			defaults := layer.NewDefaults("project")
			require.NoError(t, defaults.Set(field.MinSdk, field.NewSdkLevel(minSdk)))
			require.NoError(t, defaults.Set(field.TargetSdk, field.NewSdkLevel(targetSdk)))
			require.NoError(t, defaults.Set(field.CompileSdk, field.NewSdkLevel(compileSdk)))
			override := layer.NewVariant("override", v)
			require.NoError(t, override.Set(field.MinifyEnabled, field.NewBool(minify)))
			require.NoError(t, override.Set(field.ShrinkResources, field.NewBool(shrink)))
			env, err := layer.NewEnvironment("env").WithSigning(credentialFragment(mask))
			require.NoError(t, err)

			cfg, err := r.Resolve(v, []*layer.Layer{override, env, defaults})

			keystore := mask&1 != 0
			incomplete := keystore && mask != 15
			badRange := minSdk > targetSdk || targetSdk > compileSdk

			if err != nil {
				var resErr *ResolutionError
				if !errors.As(err, &resErr) {
					return false
				}
				switch {
				case incomplete:
					return resErr.Code == IncompleteCredential
				case badRange:
					return resErr.Code == InvalidVersionRange
				default:
					return false
				}
			}

			if incomplete || badRange {
				return false
			}

			def, _ := set.Lookup(v)
			if def.Debuggable && (cfg.MinifyEnabled() || cfg.ShrinkResources()) {
				return false
			}
			if !def.Debuggable && (cfg.MinifyEnabled() != minify || cfg.ShrinkResources() != shrink) {
				return false
			}

			s := cfg.Signing()
			if s != nil && (s.StoreFile == "" || s.StorePassword == "" || s.KeyAlias == "" || s.KeyPassword == "") {
				return false
			}
			if keystore && (s == nil || s.Identity != EnvironmentIdentity) {
				return false
			}
			if !keystore && (s == nil) != (r.fallback.For(def.Debuggable) == nil) {
				return false
			}

			again, err := r.Resolve(v, []*layer.Layer{override, env, defaults})
			require.NoError(t, err)
			return reflect.DeepEqual(cfg, again)
		},
		gen.IntRange(1, 40),
		gen.IntRange(1, 40),
		gen.IntRange(1, 40),
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(0, len(names)-1),
		gen.IntRange(0, 15),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}
