// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSet(t *testing.T) {
	s := DefaultSet()
	assert.Equal(t, []Name{Release, Debug}, s.Names())

	d, ok := s.Lookup(Debug)
	require.True(t, ok)
	assert.True(t, d.Debuggable)

	d, ok = s.Lookup(Release)
	require.True(t, ok)
	assert.False(t, d.Debuggable)

	assert.False(t, s.Contains("staging"))
}

func TestNewSet(t *testing.T) {
	s, err := NewSet(
		Definition{Name: "profile", InitWith: Release},
		Definition{Name: "qa", InitWith: "profile", Debuggable: true},
	)
	require.NoError(t, err)
	assert.Equal(t, []Name{Release, Debug, "profile", "qa"}, s.Names())
	assert.Equal(t, []Name{Release, "profile", "qa"}, s.Chain("qa"))
	assert.Equal(t, []Name{Debug}, s.Chain(Debug))
	assert.Nil(t, s.Chain("nope"))
	assert.Equal(t, "release, debug, profile, qa", s.String())
}

func TestNewSetRejects(t *testing.T) {
	tests := map[string][]Definition{
		"redefined builtin": {{Name: Release}},
		"duplicate":         {{Name: "qa"}, {Name: "qa"}},
		"bad name":          {{Name: "Q A"}},
		"empty name":        {{Name: ""}},
		"unknown initWith":  {{Name: "qa", InitWith: "staging"}},
		"cycle":             {{Name: "a", InitWith: "b"}, {Name: "b", InitWith: "a"}},
		"self":              {{Name: "a", InitWith: "a"}},
	}
	for name, defs := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewSet(defs...)
			assert.ErrorIs(t, err, ErrInvalidVariant)
		})
	}
}
