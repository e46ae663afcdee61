// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

var (
	ErrUnknownField = fmt.Errorf("unknown field")
	ErrInvalidValue = fmt.Errorf("invalid value")
)

type Kind int

const (
	String Kind = iota
	Integer
	Boolean
	SdkLevel
	Version
	Path
	PathList
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case SdkLevel:
		return "sdk-level"
	case Version:
		return "version"
	case Path:
		return "path"
	case PathList:
		return "path-list"
	default:
		return "Unknown"
	}
}

type Name string

const (
	Namespace           Name = "namespace"
	ApplicationID       Name = "applicationId"
	ApplicationIDSuffix Name = "applicationIdSuffix"
	CompileSdk          Name = "compileSdk"
	MinSdk              Name = "minSdk"
	TargetSdk           Name = "targetSdk"
	NdkVersion          Name = "ndkVersion"
	VersionCode         Name = "versionCode"
	VersionName         Name = "versionName"
	MinifyEnabled       Name = "minifyEnabled"
	ShrinkResources     Name = "shrinkResources"
	ProguardFiles       Name = "proguardFiles"
	JniLibsDirs         Name = "jniLibsDirs"
	JavaVersion         Name = "javaVersion"
	JvmTarget           Name = "jvmTarget"
	ToolkitSource       Name = "toolkitSource"
)

type Definition struct {
	Name        Name
	Kind        Kind
	Description string
}

var catalogue = []Definition{
	{Namespace, String, "package namespace of generated R and BuildConfig classes"},
	{ApplicationID, String, "application identifier"},
	{ApplicationIDSuffix, String, "suffix appended to the application identifier"},
	{CompileSdk, SdkLevel, "sdk level the sources are compiled against"},
	{MinSdk, SdkLevel, "lowest sdk level the application runs on"},
	{TargetSdk, SdkLevel, "sdk level the application is tested against"},
	{NdkVersion, Version, "native development kit version"},
	{VersionCode, Integer, "monotonically increasing version number"},
	{VersionName, Version, "user visible version"},
	{MinifyEnabled, Boolean, "shrink and obfuscate code"},
	{ShrinkResources, Boolean, "strip unused resources"},
	{ProguardFiles, PathList, "code shrinker rule files"},
	{JniLibsDirs, PathList, "directories holding prebuilt native libraries"},
	{JavaVersion, Integer, "java source and target compatibility"},
	{JvmTarget, String, "kotlin jvm target"},
	{ToolkitSource, Path, "root of the ui toolkit project"},
}

var byName = lo.KeyBy(catalogue, func(d Definition) Name {
	return d.Name
})

// Lookup returns the definition of a catalogue field, or ErrUnknownField
func Lookup(name string) (Definition, error) {
	d, ok := byName[Name(name)]
	if !ok {
		return Definition{}, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return d, nil
}

func MustLookup(name Name) Definition {
	d, err := Lookup(string(name))
	if err != nil {
		panic(err)
	}
	return d
}

// All returns the catalogue sorted by name
func All() []Definition {
	r := slices.Clone(catalogue)
	slices.SortFunc(r, func(a, b Definition) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return r
}
