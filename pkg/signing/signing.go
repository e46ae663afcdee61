// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package signing

import (
	"strings"
)

const (
	StoreFile     = "storeFile"
	StorePassword = "storePassword"
	KeyAlias      = "keyAlias"
	KeyPassword   = "keyPassword"
)

const redacted = "********"

// Credential is a complete signing identity. It is never partially populated.
type Credential struct {
	// Identity names where the credential came from, e.g. "release" or the fallback identity
	Identity      string `yaml:"identity" json:"identity"`
	StoreFile     string `yaml:"storeFile" json:"storeFile"`
	StorePassword string `yaml:"storePassword" json:"storePassword"`
	KeyAlias      string `yaml:"keyAlias" json:"keyAlias"`
	KeyPassword   string `yaml:"keyPassword" json:"keyPassword"`
}

// Redacted returns a copy with both passwords masked
func (c Credential) Redacted() Credential {
	c.StorePassword = redacted
	c.KeyPassword = redacted
	return c
}

// Fragment holds whatever credential sub-fields a single layer provides.
// A nil pointer means the sub-field is absent.
type Fragment struct {
	StoreFile     *string
	StorePassword *string
	KeyAlias      *string
	KeyPassword   *string
}

// Present returns a pointer to s, or nil when s is blank
func Present(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (f Fragment) IsEmpty() bool {
	return f.StoreFile == nil && f.StorePassword == nil && f.KeyAlias == nil && f.KeyPassword == nil
}

// Merge overlays o on top of f, sub-field by sub-field
func (f Fragment) Merge(o Fragment) Fragment {
	if o.StoreFile != nil {
		f.StoreFile = o.StoreFile
	}
	if o.StorePassword != nil {
		f.StorePassword = o.StorePassword
	}
	if o.KeyAlias != nil {
		f.KeyAlias = o.KeyAlias
	}
	if o.KeyPassword != nil {
		f.KeyPassword = o.KeyPassword
	}
	return f
}

// Missing lists the absent sub-fields
func (f Fragment) Missing() []string {
	var missing []string
	if f.StoreFile == nil {
		missing = append(missing, StoreFile)
	}
	if f.StorePassword == nil {
		missing = append(missing, StorePassword)
	}
	if f.KeyAlias == nil {
		missing = append(missing, KeyAlias)
	}
	if f.KeyPassword == nil {
		missing = append(missing, KeyPassword)
	}
	return missing
}

// Credential converts a complete fragment. ok is false when any sub-field is absent.
func (f Fragment) Credential(identity string) (c *Credential, ok bool) {
	if len(f.Missing()) > 0 {
		return nil, false
	}
	return &Credential{
		Identity:      identity,
		StoreFile:     *f.StoreFile,
		StorePassword: *f.StorePassword,
		KeyAlias:      *f.KeyAlias,
		KeyPassword:   *f.KeyPassword,
	}, true
}
