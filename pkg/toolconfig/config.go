// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package toolconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"
	"nullgram.org/x/buildcfg/pkg/signing"
)

var ErrNoProject = fmt.Errorf("no %s or %s found in the current directory or its ancestors", ProjectYamlFilename, ProjectTomlFilename)

type Config struct {
	HomePath string `yaml:"-"`

	// Project is the project file used when neither BUILDCFG_PROJECT nor --project is given
	Project string `yaml:"project,omitempty"`

	// Fallback, when set, overrides the project file's signing fallback mode
	Fallback *signing.FallbackMode `yaml:"fallback,omitempty"`

	// FallbackIdentity, when set, overrides the project file's fallback identity name
	FallbackIdentity string `yaml:"fallback-identity,omitempty"`

	DebugKeystore string `yaml:"debug-keystore,omitempty"`
}

func Get() (*Config, error) {
	homePath, err := getHomePath()
	if err != nil {
		return nil, err
	}
	return GetWithCustomHome(homePath)
}

func GetWithCustomHome(homePath string) (*Config, error) {
	config := Config{}

	// config.yaml is optional
	configFilePath := filepath.Join(homePath, ConfigFileName)
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("%q is directory and not a file", configFilePath)
		}

		bytes, err := os.ReadFile(configFilePath)
		if err != nil {
			return nil, err
		}

		if err := yaml.UnmarshalWithOptions(bytes, &config, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%s: %w", configFilePath, err)
		}
	}

	if project, ok := os.LookupEnv(ProjectEnvVar); ok {
		config.Project = project
	}

	if fallback, ok := os.LookupEnv(FallbackEnvVar); ok {
		mode, err := signing.ParseFallbackMode(fallback)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FallbackEnvVar, err)
		}
		config.Fallback = &mode
	}

	if identity, ok := os.LookupEnv(FallbackIdentityEnvVar); ok {
		config.FallbackIdentity = identity
	}

	if keystore, ok := os.LookupEnv(DebugKeystoreEnvVar); ok {
		config.DebugKeystore = keystore
	}
	if config.DebugKeystore == "" {
		userHome, err := userHomeDir()
		if err != nil {
			return nil, err
		}
		config.DebugKeystore = signing.DefaultDebugKeystore(userHome)
	}

	config.HomePath = homePath
	return &config, nil
}

// FindProject returns the absolute path of the project file: the configured one if any,
// otherwise the nearest buildcfg.yaml or buildcfg.toml in startDir or its ancestors
func (c *Config) FindProject(startDir string) (string, error) {
	if c.Project != "" {
		return filepath.Abs(c.Project)
	}

	for _, name := range []string{ProjectYamlFilename, ProjectTomlFilename} {
		p, ok, err := findInAncestors(startDir, name)
		if err != nil {
			return "", err
		}
		if ok {
			return p, nil
		}
	}
	return "", ErrNoProject
}

func getHomePath() (string, error) {
	if v, ok := os.LookupEnv(HomeEnvVar); ok {
		return v, nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".buildcfg"), nil
}

func userHomeDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("USERPROFILE")
		if !ok {
			return "", fmt.Errorf("USERPROFILE environment variable is not set")
		}
		return dir, nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return dir, nil
	}
}

func findInAncestors(startDir, filename string) (absolutePath string, ok bool, err error) {
	p, ok := doFindInAncestors(startDir, filename)
	if !ok {
		return "", false, nil
	}
	absolutePath, err = filepath.Abs(p)
	return absolutePath, err == nil, err
}

func doFindInAncestors(startDir, filename string) (string, bool) {
	f := filepath.Join(startDir, filename)

	info, err := os.Stat(f)
	if err == nil && !info.IsDir() {
		return f, true
	}

	parent := filepath.Dir(startDir)
	if parent == startDir {
		return "", false
	}

	return doFindInAncestors(parent, filename)
}
