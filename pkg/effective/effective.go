// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package effective

import (
	"maps"
	"slices"

	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/variant"
)

// PolicySource is the provenance recorded for values forced by a safety policy
const PolicySource = "policy"

// Override records a value forced after all layers were applied
type Override struct {
	Field    field.Name `yaml:"field" json:"field"`
	Previous string     `yaml:"previous,omitempty" json:"previous,omitempty"`
	Value    string     `yaml:"value" json:"value"`
	Reason   string     `yaml:"reason" json:"reason"`
}

// Config is the resolved configuration of one variant. It is immutable; accessors return copies.
type Config struct {
	variant   variant.Name
	values    map[field.Name]field.Value
	sources   map[field.Name]string
	signing   *signing.Credential
	overrides []Override
}

func (c *Config) Variant() variant.Name {
	return c.variant
}

func (c *Config) Get(name field.Name) (field.Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Source names the layer that supplied the final value of name
func (c *Config) Source(name field.Name) (string, bool) {
	s, ok := c.sources[name]
	return s, ok
}

// Fields returns the resolved field names, sorted
func (c *Config) Fields() []field.Name {
	return slices.Sorted(maps.Keys(c.values))
}

// Signing returns a copy of the attached credential, or nil when the variant is unsigned
func (c *Config) Signing() *signing.Credential {
	if c.signing == nil {
		return nil
	}
	s := *c.signing
	return &s
}

func (c *Config) Overrides() []Override {
	return slices.Clone(c.overrides)
}

func (c *Config) MinifyEnabled() bool {
	return c.values[field.MinifyEnabled].Bool()
}

func (c *Config) ShrinkResources() bool {
	return c.values[field.ShrinkResources].Bool()
}

// ApplicationID combines applicationId and applicationIdSuffix
func (c *Config) ApplicationID() string {
	return c.values[field.ApplicationID].Text() + c.values[field.ApplicationIDSuffix].Text()
}

// Builder accumulates a Config. It is not safe for concurrent use.
type Builder struct {
	cfg Config
}

func NewBuilder(v variant.Name) *Builder {
	return &Builder{cfg: Config{
		variant: v,
		values:  map[field.Name]field.Value{},
		sources: map[field.Name]string{},
	}}
}

func (b *Builder) Set(name field.Name, v field.Value, source string) {
	b.cfg.values[name] = v
	b.cfg.sources[name] = source
}

func (b *Builder) Get(name field.Name) (field.Value, bool) {
	v, ok := b.cfg.values[name]
	return v, ok
}

// Force sets name to v regardless of what layers said; the field's source becomes PolicySource.
// An Override is recorded, and returned with true, only when a layer had set a different value.
func (b *Builder) Force(name field.Name, v field.Value, reason string) (Override, bool) {
	prev, had := b.cfg.values[name]
	b.cfg.values[name] = v
	b.cfg.sources[name] = PolicySource
	if !had || prev.Equal(v) {
		return Override{}, false
	}
	o := Override{Field: name, Previous: prev.String(), Value: v.String(), Reason: reason}
	b.cfg.overrides = append(b.cfg.overrides, o)
	return o, true
}

func (b *Builder) SetSigning(c *signing.Credential) {
	b.cfg.signing = c
}

// Build returns an independent Config; the builder may keep being used afterwards
func (b *Builder) Build() *Config {
	c := &Config{
		variant:   b.cfg.variant,
		values:    maps.Clone(b.cfg.values),
		sources:   maps.Clone(b.cfg.sources),
		overrides: slices.Clone(b.cfg.overrides),
	}
	if b.cfg.signing != nil {
		s := *b.cfg.signing
		c.signing = &s
	}
	return c
}
