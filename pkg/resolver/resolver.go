// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"nullgram.org/x/buildcfg/pkg/effective"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/variant"
)

// EnvironmentIdentity names credentials assembled from environment layers
const EnvironmentIdentity = "release"

const debuggableReason = "debuggable variants are never minified or resource-shrunk"

// Resolver turns layers into the effective configuration of a variant.
// It holds no mutable state; Resolve may be called concurrently.
type Resolver struct {
	variants *variant.Set
	fallback signing.FallbackPolicy
	logger   *slog.Logger
}

type Option func(*Resolver)

func WithFallback(p signing.FallbackPolicy) Option {
	return func(r *Resolver) {
		r.fallback = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// New creates a resolver accepting the variants of set (release and debug when nil).
// Without WithFallback there is no fallback identity: variants without a keystore stay unsigned.
func New(set *variant.Set, opts ...Option) *Resolver {
	r := &Resolver{
		variants: lo.Ternary(set == nil, variant.DefaultSet(), set),
		fallback: signing.FallbackPolicy{Mode: signing.FallbackNever},
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Resolver) Variants() *variant.Set {
	return r.variants
}

// Resolve applies layers (defaults, then environment, then the variant's overrides, base variants
// of its initWith chain first) field by field, last write wins, and validates the result.
// The returned error is always a *ResolutionError.
func (r *Resolver) Resolve(v variant.Name, layers []*layer.Layer) (*effective.Config, error) {
	def, ok := r.variants.Lookup(v)
	if !ok {
		return nil, NewUnknownVariantError(v, r.variants)
	}

	ordered := layer.Ordered(layers)
	b := effective.NewBuilder(v)
	var credential signing.Fragment

	for _, l := range ordered {
		if l.Kind() == layer.Variant {
			continue
		}
		apply(b, l)
		if l.Kind() == layer.Environment {
			credential = credential.Merge(l.Signing())
		}
	}

	for _, name := range r.variants.Chain(v) {
		for _, l := range ordered {
			if l.Kind() == layer.Variant && l.Variant() == name {
				apply(b, l)
			}
		}
	}

	if def.Debuggable {
		r.forceInspectable(b, v)
	}

	cred, err := r.resolveSigning(def, credential)
	if err != nil {
		return nil, err
	}
	b.SetSigning(cred)

	if err := checkSdkRange(b, v); err != nil {
		return nil, err
	}

	cfg := b.Build()
	r.logger.Debug("resolved variant", "variant", v, "fields", len(cfg.Fields()), "signed", cred != nil)
	return cfg, nil
}

func apply(b *effective.Builder, l *layer.Layer) {
	for _, name := range l.Fields() {
		val, _ := l.Get(name)
		b.Set(name, val, l.Name())
	}
}

func (r *Resolver) forceInspectable(b *effective.Builder, v variant.Name) {
	for _, name := range []field.Name{field.MinifyEnabled, field.ShrinkResources} {
		if o, changed := b.Force(name, field.NewBool(false), debuggableReason); changed {
			r.logger.Warn("overriding field for debuggable variant",
				"variant", v, "field", o.Field, "requested", o.Previous, "value", o.Value)
		}
	}
}

func (r *Resolver) resolveSigning(def variant.Definition, f signing.Fragment) (*signing.Credential, error) {
	if f.StoreFile == nil {
		c := r.fallback.For(def.Debuggable)
		if c != nil {
			r.logger.Debug("no keystore configured, using fallback identity", "variant", def.Name, "identity", c.Identity)
		}
		return c, nil
	}

	c, ok := f.Credential(EnvironmentIdentity)
	if !ok {
		return nil, NewIncompleteCredentialError(def.Name, f.Missing())
	}
	return c, nil
}

// checkSdkRange enforces minSdk <= targetSdk <= compileSdk over the levels that are set
func checkSdkRange(b *effective.Builder, v variant.Name) error {
	bounds := lo.FilterMap([]field.Name{field.MinSdk, field.TargetSdk, field.CompileSdk}, func(name field.Name, _ int) (lo.Tuple2[field.Name, int], bool) {
		val, ok := b.Get(name)
		return lo.T2(name, val.Int()), ok
	})

	for i := 1; i < len(bounds); i++ {
		lower, upper := bounds[i-1], bounds[i]
		if lower.B > upper.B {
			return NewInvalidVersionRangeError(v, fmt.Sprintf("%s (%d) must not exceed %s (%d)", lower.A, lower.B, upper.A, upper.B))
		}
	}
	return nil
}
