// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package gitversion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"nullgram.org/x/buildcfg/pkg/field"
	"nullgram.org/x/buildcfg/pkg/layer"
)

const LayerName = "git"

var ErrNoCommits = fmt.Errorf("repository has no commits")

type Info struct {
	Commit string
	// Count is the number of commits reachable from HEAD
	Count int
	// Tag is the highest semver tag pointing at HEAD, nil when there is none
	Tag *semver.Version
}

// Describe inspects the repository containing dir
func Describe(dir string) (*Info, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	head, err := r.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, ErrNoCommits
	} else if err != nil {
		return nil, err
	}

	info := &Info{Commit: head.Hash().String()}

	commits, err := r.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}
	err = commits.ForEach(func(*object.Commit) error {
		info.Count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	tags, err := r.Tags()
	if err != nil {
		return nil, err
	}
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		tag, err := r.TagObject(ref.Hash())
		if err == nil {
			c, err := tag.Commit()
			if err != nil {
				// tags of trees or blobs can't name a version
				return nil
			}
			target = c.Hash
		} else if !errors.Is(err, plumbing.ErrObjectNotFound) {
			return err
		}

		if target != head.Hash() {
			return nil
		}
		v, err := semver.StrictNewVersion(strings.TrimPrefix(ref.Name().Short(), "v"))
		if err != nil {
			return nil
		}
		if info.Tag == nil || v.GreaterThan(info.Tag) {
			info.Tag = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// Layer is a defaults layer carrying versionCode and, when HEAD is tagged, versionName
func Layer(dir string) (*layer.Layer, error) {
	info, err := Describe(dir)
	if err != nil {
		return nil, fmt.Errorf("git version of %s: %w", dir, err)
	}

	l := layer.NewDefaults(LayerName)
	if err := l.Set(field.VersionCode, field.NewInt(info.Count)); err != nil {
		return nil, err
	}
	if info.Tag != nil {
		v, err := field.NewVersion(info.Tag.String())
		if err != nil {
			return nil, err
		}
		if err := l.Set(field.VersionName, v); err != nil {
			return nil, err
		}
	}
	return l, nil
}
