// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
	"nullgram.org/x/buildcfg/pkg/apilevel"
)

// Value is an immutable, typed field value
type Value struct {
	kind Kind
	text string
	num  int
	flag bool
	list []string
}

func NewString(s string) Value {
	return Value{kind: String, text: s}
}

func NewPath(p string) Value {
	return Value{kind: Path, text: p}
}

func NewPathList(ps ...string) Value {
	return Value{kind: PathList, list: slices.Clone(ps)}
}

func NewBool(b bool) Value {
	return Value{kind: Boolean, flag: b}
}

func NewInt(n int) Value {
	return Value{kind: Integer, num: n}
}

func NewSdkLevel(n int) Value {
	return Value{kind: SdkLevel, num: n}
}

func NewVersion(s string) (Value, error) {
	if _, err := semver.NewVersion(s); err != nil {
		return Value{}, fmt.Errorf("%w: %q is not a version: %s", ErrInvalidValue, s, err.Error())
	}
	return Value{kind: Version, text: s}, nil
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Int() int {
	return v.num
}

func (v Value) Bool() bool {
	return v.flag
}

func (v Value) Text() string {
	return v.text
}

func (v Value) List() []string {
	return slices.Clone(v.list)
}

func (v Value) Equal(o Value) bool {
	return v.kind == o.kind &&
		v.text == o.text &&
		v.num == o.num &&
		v.flag == o.flag &&
		slices.Equal(v.list, o.list)
}

// Interface returns the value as a plain go value suitable for marshaling
func (v Value) Interface() any {
	switch v.kind {
	case Integer, SdkLevel:
		return v.num
	case Boolean:
		return v.flag
	case PathList:
		return v.List()
	default:
		return v.text
	}
}

func (v Value) String() string {
	switch v.kind {
	case Integer, SdkLevel:
		return strconv.Itoa(v.num)
	case Boolean:
		return strconv.FormatBool(v.flag)
	case PathList:
		return strings.Join(v.list, ", ")
	default:
		return v.text
	}
}

// Parse converts a raw decoded value (yaml, toml or an env var string) into a Value of d's kind
func (d Definition) Parse(raw any) (Value, error) {
	v, err := d.parse(raw)
	if err != nil {
		return Value{}, fmt.Errorf("field %q: %w", d.Name, err)
	}
	return v, nil
}

func (d Definition) parse(raw any) (Value, error) {
	if d.Kind == PathList {
		return parsePathList(raw)
	}

	// a float has already lost its source text: 1.10 arrives as 1.1
	if f, ok := raw.(float64); ok && (d.Kind == String || d.Kind == Version || d.Kind == Path) {
		return Value{}, fmt.Errorf("%w: %v was read as a number, quote %s values", ErrInvalidValue, f, d.Kind)
	}

	s, ok := scalarString(raw)
	if !ok {
		return Value{}, fmt.Errorf("%w: expected a %s, got %T", ErrInvalidValue, d.Kind, raw)
	}

	switch d.Kind {
	case String:
		return NewString(s), nil
	case Path:
		if strings.TrimSpace(s) == "" {
			return Value{}, fmt.Errorf("%w: empty path", ErrInvalidValue)
		}
		return NewPath(s), nil
	case Integer:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return Value{}, fmt.Errorf("%w: %q is not a positive integer", ErrInvalidValue, s)
		}
		return NewInt(n), nil
	case Boolean:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
		}
		return NewBool(b), nil
	case SdkLevel:
		n, err := apilevel.Parse(s)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrInvalidValue, err.Error())
		}
		return NewSdkLevel(n), nil
	case Version:
		return NewVersion(strings.TrimSpace(s))
	default:
		return Value{}, fmt.Errorf("%w: unsupported kind %s", ErrInvalidValue, d.Kind)
	}
}

func scalarString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		if v != math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
		return strconv.FormatInt(int64(v), 10), true
	default:
		return "", false
	}
}

// parsePathList accepts a list of strings or a single comma separated string
func parsePathList(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		parts := lo.FilterMap(strings.Split(v, ","), func(p string, _ int) (string, bool) {
			p = strings.TrimSpace(p)
			return p, p != ""
		})
		return NewPathList(parts...), nil
	case []string:
		return NewPathList(v...), nil
	case []any:
		paths := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return Value{}, fmt.Errorf("%w: path list entries must be non-empty strings, got %v", ErrInvalidValue, e)
			}
			paths = append(paths, s)
		}
		return NewPathList(paths...), nil
	default:
		return Value{}, fmt.Errorf("%w: expected a list of paths, got %T", ErrInvalidValue, raw)
	}
}
