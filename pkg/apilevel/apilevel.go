// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package apilevel

import (
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidLevel = fmt.Errorf("invalid sdk level")

// codenames of released platform versions, keyed by their letter (and maintenance release)
var codenames = map[string]int{
	"G":     9,
	"I":     14,
	"J":     16,
	"J-MR1": 17,
	"J-MR2": 18,
	"K":     19,
	"L":     21,
	"L-MR1": 22,
	"M":     23,
	"N":     24,
	"N-MR1": 25,
	"O":     26,
	"O-MR1": 27,
	"P":     28,
	"Q":     29,
	"R":     30,
	"S":     31,
	"S-V2":  32,
	"T":     33,
	"U":     34,
	"V":     35,
	"B":     36,
}

// Parse accepts either a positive integer ("23") or a platform codename ("M")
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidLevel)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return FromInt(n)
	}
	if n, ok := codenames[strings.ToUpper(s)]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q is neither a number nor a known codename", ErrInvalidLevel, s)
}

func FromInt(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d must be positive", ErrInvalidLevel, n)
	}
	return n, nil
}
