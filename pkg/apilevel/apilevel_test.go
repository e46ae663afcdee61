// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package apilevel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"23", 23},
		{" 35 ", 35},
		{"M", 23},
		{"m", 23},
		{"N-MR1", 25},
		{"V", 35},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "0", "-3", "Z", "23.1"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidLevel, bad)
	}
}
