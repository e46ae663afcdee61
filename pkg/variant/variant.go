// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package variant

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidVariant = fmt.Errorf("invalid variant definition")

type Name string

const (
	Release Name = "release"
	Debug   Name = "debug"
)

func (n Name) String() string {
	return string(n)
}

// Definition describes one build variant.
// InitWith names a variant whose overrides are applied before this one's.
type Definition struct {
	Name       Name `yaml:"name" toml:"name" json:"name"`
	Debuggable bool `yaml:"debuggable,omitempty" toml:"debuggable" json:"debuggable,omitempty"`
	InitWith   Name `yaml:"initWith,omitempty" toml:"initWith" json:"initWith,omitempty"`
}

var builtins = []Definition{
	{Name: Release},
	{Name: Debug, Debuggable: true},
}

var nameRegex = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// Set is the closed set of variants a resolver accepts
type Set struct {
	defs  map[Name]Definition
	order []Name
}

// DefaultSet contains only release and debug
func DefaultSet() *Set {
	s, err := NewSet()
	if err != nil {
		panic(err)
	}
	return s
}

// NewSet builds the closed set of the builtin variants plus extra
func NewSet(extra ...Definition) (*Set, error) {
	s := &Set{defs: map[Name]Definition{}}
	for _, d := range builtins {
		s.add(d)
	}

	for _, d := range extra {
		if !nameRegex.MatchString(string(d.Name)) {
			return nil, fmt.Errorf("%w: name %q must match %s", ErrInvalidVariant, d.Name, nameRegex.String())
		}
		if _, ok := s.defs[d.Name]; ok {
			return nil, fmt.Errorf("%w: variant %q is defined more than once", ErrInvalidVariant, d.Name)
		}
		s.add(d)
	}

	for _, n := range s.order {
		if err := s.checkChain(n); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) add(d Definition) {
	s.defs[d.Name] = d
	s.order = append(s.order, d.Name)
}

func (s *Set) checkChain(n Name) error {
	seen := []Name{n}
	for cur := s.defs[n]; cur.InitWith != ""; {
		base, ok := s.defs[cur.InitWith]
		if !ok {
			return fmt.Errorf("%w: %q is initialised with unknown variant %q", ErrInvalidVariant, cur.Name, cur.InitWith)
		}
		if lo.Contains(seen, base.Name) {
			chain := lo.Map(append(seen, base.Name), func(v Name, _ int) string { return string(v) })
			return fmt.Errorf("%w: initWith cycle %s", ErrInvalidVariant, strings.Join(chain, " -> "))
		}
		seen = append(seen, base.Name)
		cur = base
	}
	return nil
}

func (s *Set) Lookup(n Name) (Definition, bool) {
	d, ok := s.defs[n]
	return d, ok
}

func (s *Set) Contains(n Name) bool {
	_, ok := s.defs[n]
	return ok
}

// Names returns builtin variants first, then extra ones in declaration order
func (s *Set) Names() []Name {
	return slices.Clone(s.order)
}

func (s *Set) Definitions() []Definition {
	return lo.Map(s.order, func(n Name, _ int) Definition {
		return s.defs[n]
	})
}

// Chain returns the initWith chain of n, base variant first and n last.
// It is nil when n isn't in the set.
func (s *Set) Chain(n Name) []Name {
	d, ok := s.defs[n]
	if !ok {
		return nil
	}
	chain := []Name{n}
	for d.InitWith != "" {
		d = s.defs[d.InitWith]
		chain = append(chain, d.Name)
	}
	slices.Reverse(chain)
	return chain
}

func (s *Set) String() string {
	return strings.Join(lo.Map(s.order, func(n Name, _ int) string { return string(n) }), ", ")
}
