// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package signing

import (
	"fmt"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

var ErrInvalidFallback = fmt.Errorf("invalid signing fallback")

const DebugIdentity = "debug"

// FallbackMode decides which variants get the fallback identity when no keystore is configured
type FallbackMode int

const (
	// FallbackDebuggable substitutes the fallback identity for debuggable variants only;
	// other variants stay unsigned
	FallbackDebuggable FallbackMode = iota
	// FallbackAlways substitutes the fallback identity for every variant
	FallbackAlways
	// FallbackNever leaves every variant without a keystore unsigned
	FallbackNever
)

func ParseFallbackMode(s string) (FallbackMode, error) {
	switch s {
	case "debuggable":
		return FallbackDebuggable, nil
	case "always":
		return FallbackAlways, nil
	case "never":
		return FallbackNever, nil
	default:
		return 0, fmt.Errorf("%w: mode %q must be one of 'debuggable', 'always', 'never'", ErrInvalidFallback, s)
	}
}

func (m FallbackMode) String() string {
	switch m {
	case FallbackDebuggable:
		return "debuggable"
	case FallbackAlways:
		return "always"
	case FallbackNever:
		return "never"
	default:
		return "Unknown"
	}
}

func (m *FallbackMode) UnmarshalYAML(data []byte) error {
	var s string
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal fallback mode: %w", err)
	}
	parsed, err := ParseFallbackMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m FallbackMode) MarshalYAML() ([]byte, error) {
	s := m.String()
	if s == "Unknown" {
		return nil, fmt.Errorf("%w: invalid fallback mode enum value", ErrInvalidFallback)
	}
	return []byte(s), nil
}

var _ yaml.BytesUnmarshaler = (*FallbackMode)(nil)
var _ yaml.BytesMarshaler = FallbackMode(0)

// FallbackPolicy pairs a mode with the complete credential substituted under it
type FallbackPolicy struct {
	Mode     FallbackMode
	Identity *Credential
}

// For returns the credential to attach to a variant that has no keystore configured, or nil
func (p FallbackPolicy) For(debuggable bool) *Credential {
	if p.Identity == nil {
		return nil
	}
	switch p.Mode {
	case FallbackAlways:
	case FallbackDebuggable:
		if !debuggable {
			return nil
		}
	default:
		return nil
	}
	c := *p.Identity
	return &c
}

// AndroidDebugIdentity is the well known identity of the sdk generated debug keystore
func AndroidDebugIdentity(storeFile string) *Credential {
	return &Credential{
		Identity:      DebugIdentity,
		StoreFile:     storeFile,
		StorePassword: "android",
		KeyAlias:      "androiddebugkey",
		KeyPassword:   "android",
	}
}

// DefaultDebugKeystore is where the sdk tools create the debug keystore
func DefaultDebugKeystore(home string) string {
	return filepath.Join(home, ".android", "debug.keystore")
}

func DefaultPolicy(home string) FallbackPolicy {
	return FallbackPolicy{
		Mode:     FallbackDebuggable,
		Identity: AndroidDebugIdentity(DefaultDebugKeystore(home)),
	}
}
