// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package toolconfig

const (
	ConfigFileName = "config.yaml"

	ProjectYamlFilename = "buildcfg.yaml"
	ProjectTomlFilename = "buildcfg.toml"

	// lock guarding writes of resolved output files, relative to the output file's directory
	OutputLockFileName = ".buildcfg.lock"
)
