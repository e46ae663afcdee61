// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"errors"
	"fmt"
	"strings"

	"nullgram.org/x/buildcfg/pkg/variant"
)

const (
	UnknownVariant       = "UNKNOWN_VARIANT"
	IncompleteCredential = "INCOMPLETE_CREDENTIAL"
	InvalidVersionRange  = "INVALID_VERSION_RANGE"
	UnknownError         = "UNKNOWN_ERROR"
)

var (
	ErrUnknownVariant       = errors.New("unknown variant")
	ErrIncompleteCredential = errors.New("incomplete signing credential")
	ErrInvalidVersionRange  = errors.New("invalid sdk version range")
)

// ResolutionError is a configuration authoring defect. None of them are worth retrying.
type ResolutionError struct {
	Code    string
	Variant variant.Name
	Cause   error
}

func (r *ResolutionError) Error() string {
	if r.Cause != nil {
		return r.Code + ": " + r.Cause.Error()
	}
	return r.Code
}

func (r *ResolutionError) MarshalYAML() (interface{}, error) {
	var causeStr string
	if r.Cause != nil {
		causeStr = r.Cause.Error()
	}
	return map[string]interface{}{
		"code":    r.Code,
		"variant": string(r.Variant),
		"cause":   causeStr,
	}, nil
}

func (r *ResolutionError) Unwrap() error {
	return r.Cause
}

func (r *ResolutionError) Retryable() bool {
	return false
}

var _ error = (*ResolutionError)(nil)

func NewUnknownVariantError(v variant.Name, known *variant.Set) *ResolutionError {
	return &ResolutionError{
		Code:    UnknownVariant,
		Variant: v,
		Cause:   fmt.Errorf("%w %q, expected one of: %s", ErrUnknownVariant, v, known.String()),
	}
}

func NewIncompleteCredentialError(v variant.Name, missing []string) *ResolutionError {
	return &ResolutionError{
		Code:    IncompleteCredential,
		Variant: v,
		Cause:   fmt.Errorf("%w: keystore is configured but %s missing", ErrIncompleteCredential, strings.Join(missing, ", ")),
	}
}

func NewInvalidVersionRangeError(v variant.Name, detail string) *ResolutionError {
	return &ResolutionError{
		Code:    InvalidVersionRange,
		Variant: v,
		Cause:   fmt.Errorf("%w: %s", ErrInvalidVersionRange, detail),
	}
}

func NewUnknownError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  UnknownError,
		Cause: cause,
	}
}

// Standardize turns any error into a ResolutionError, keeping existing ones as they are
func Standardize(err error) *ResolutionError {
	if err == nil {
		return nil
	}

	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return resErr
	}

	return NewUnknownError(err)
}
