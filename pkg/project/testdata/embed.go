// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testdata

import _ "embed"

//go:embed nullgram.yaml
var NullgramYaml []byte

//go:embed nullgram.toml
var NullgramToml []byte

//go:embed minimal.yaml
var Minimal []byte

//go:embed unknown-field.yaml
var UnknownField []byte

//go:embed unknown-build-type.yaml
var UnknownBuildType []byte

//go:embed wrong-kind.yaml
var WrongKind []byte

//go:embed incomplete-identity.yaml
var IncompleteIdentity []byte

//go:embed bad-value.toml
var BadValue []byte

//go:embed unknown-key.toml
var UnknownKey []byte
