// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package layer

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/signing"
	"nullgram.org/x/buildcfg/pkg/utils"
	"nullgram.org/x/buildcfg/pkg/variant"
)

// Kind orders layers: all Defaults layers apply first, then Environment, then Variant
type Kind int

const (
	Defaults Kind = iota
	Environment
	Variant
)

func (k Kind) String() string {
	switch k {
	case Defaults:
		return "defaults"
	case Environment:
		return "environment"
	case Variant:
		return "variant"
	default:
		return "Unknown"
	}
}

// Layer is one named source of field values. Only Environment layers carry signing sub-fields.
type Layer struct {
	name    string
	kind    Kind
	variant variant.Name
	values  map[field.Name]field.Value
	signing signing.Fragment
}

func NewDefaults(name string) *Layer {
	return &Layer{name: name, kind: Defaults, values: map[field.Name]field.Value{}}
}

func NewEnvironment(name string) *Layer {
	return &Layer{name: name, kind: Environment, values: map[field.Name]field.Value{}}
}

// NewVariant creates an override layer addressed to variant v
func NewVariant(name string, v variant.Name) *Layer {
	return &Layer{name: name, kind: Variant, variant: v, values: map[field.Name]field.Value{}}
}

func (l *Layer) Name() string {
	return l.name
}

func (l *Layer) Kind() Kind {
	return l.kind
}

// Variant is the variant an override layer is addressed to; empty for other kinds
func (l *Layer) Variant() variant.Name {
	return l.variant
}

// Set stores an already typed value
// Set stores v, which must have the kind the catalogue declares for name
func (l *Layer) Set(name field.Name, v field.Value) error {
	d, err := field.Lookup(string(name))
	if err != nil {
		return fmt.Errorf("layer %q: %w", l.name, err)
	}
	if v.Kind() != d.Kind {
		return fmt.Errorf("layer %q: field %q: %w: expected a %s, got a %s", l.name, name, field.ErrInvalidValue, d.Kind, v.Kind())
	}
	l.values[name] = v
	return nil
}

// SetRaw parses raw against the field catalogue and stores the result
func (l *Layer) SetRaw(name string, raw any) error {
	d, err := field.Lookup(name)
	if err != nil {
		return fmt.Errorf("layer %q: %w", l.name, err)
	}
	v, err := d.Parse(raw)
	if err != nil {
		return fmt.Errorf("layer %q: %w", l.name, err)
	}
	l.values[d.Name] = v
	return nil
}

// SetAll parses every entry of raw, in name order so the reported error is deterministic
func (l *Layer) SetAll(raw map[string]any) error {
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		if err := l.SetRaw(k, raw[k]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layer) Get(name field.Name) (field.Value, bool) {
	v, ok := l.values[name]
	return v, ok
}

// Fields returns the names the layer defines, sorted
func (l *Layer) Fields() []field.Name {
	return slices.Sorted(maps.Keys(l.values))
}

// ResolvePaths rewrites relative path and path-list values against base
func (l *Layer) ResolvePaths(base string) *Layer {
	for name, v := range l.values {
		switch v.Kind() {
		case field.Path:
			l.values[name] = field.NewPath(utils.ResolvePath(base, v.Text()))
		case field.PathList:
			l.values[name] = field.NewPathList(lo.Map(v.List(), func(p string, _ int) string {
				return utils.ResolvePath(base, p)
			})...)
		}
	}
	return l
}

func (l *Layer) Len() int {
	return len(l.values)
}

// WithSigning merges f into the layer's signing sub-fields
func (l *Layer) WithSigning(f signing.Fragment) (*Layer, error) {
	if l.kind != Environment {
		return nil, fmt.Errorf("layer %q: signing sub-fields can only come from an environment layer", l.name)
	}
	l.signing = l.signing.Merge(f)
	return l, nil
}

func (l *Layer) Signing() signing.Fragment {
	return l.signing
}

func (l *Layer) String() string {
	if l.kind == Variant {
		return fmt.Sprintf("%s (%s %s)", l.name, l.kind, l.variant)
	}
	return fmt.Sprintf("%s (%s)", l.name, l.kind)
}

// Ordered returns layers in application order: stable by kind, caller order within a kind
func Ordered(layers []*Layer) []*Layer {
	r := lo.Filter(layers, func(l *Layer, _ int) bool { return l != nil })
	slices.SortStableFunc(r, func(a, b *Layer) int {
		return int(a.kind) - int(b.kind)
	})
	return r
}
