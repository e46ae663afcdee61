// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package toolconfig

const EnvVarPrefix = "BUILDCFG_"

const (
	// HomeEnvVar
	// BUILDCFG_HOME is the absolute path to the `buildcfg` home directory holding config.yaml
	// 	default: $HOME/.buildcfg
	HomeEnvVar = EnvVarPrefix + "HOME"

	// LogLevelEnvVar
	// BUILDCFG_LOG_LEVEL sets the log level.
	// 	Default: info
	//  Possible values: debug info warn error
	LogLevelEnvVar = EnvVarPrefix + "LOG_LEVEL"

	// ProjectEnvVar
	// BUILDCFG_PROJECT is a path to the project file (buildcfg.yaml or buildcfg.toml).
	// This allows resolving a project without changing directory
	ProjectEnvVar = EnvVarPrefix + "PROJECT"

	// FallbackEnvVar
	// BUILDCFG_FALLBACK overrides the signing fallback mode of the project file.
	//  Possible values: debuggable always never
	FallbackEnvVar = EnvVarPrefix + "FALLBACK"

	// FallbackIdentityEnvVar
	// BUILDCFG_FALLBACK_IDENTITY overrides the name of the fallback signing identity
	FallbackIdentityEnvVar = EnvVarPrefix + "FALLBACK_IDENTITY"

	// DebugKeystoreEnvVar
	// BUILDCFG_DEBUG_KEYSTORE overrides the location of the sdk debug keystore
	// 	default: $HOME/.android/debug.keystore
	DebugKeystoreEnvVar = EnvVarPrefix + "DEBUG_KEYSTORE"
)
