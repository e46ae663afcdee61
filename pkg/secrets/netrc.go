// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"fmt"

	"github.com/jdx/go-netrc"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/signing"
)

var ErrNoMachine = fmt.Errorf("no netrc entry")

// FromNetrc reads the signing sub-fields of host from the netrc file at path:
// login is the key alias, password the store password and account the key password
func FromNetrc(path, host string) (*layer.Layer, error) {
	n, err := netrc.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse netrc %s: %w", path, err)
	}

	machine := n.Machine(host)
	if machine == nil {
		return nil, fmt.Errorf("%w for machine %q in %s", ErrNoMachine, host, path)
	}

	l := layer.NewEnvironment("netrc:" + host)
	return l.WithSigning(signing.Fragment{
		KeyAlias:      signing.Present(machine.Get("login")),
		StorePassword: signing.Present(machine.Get("password")),
		KeyPassword:   signing.Present(machine.Get("account")),
	})
}
