// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import "errors"

var (
	// ErrSchemaMismatch is returned when a token's shape disagrees with the
	// schema it is encoded against. This is a caller bug, not bad input.
	ErrSchemaMismatch = errors.New("token does not match schema")

	// ErrInvalidVariant is returned when an enum discriminant does not point
	// at any declared variant.
	ErrInvalidVariant = errors.New("invalid enum variant")

	// ErrNestedVector is returned when a vector appears anywhere other than
	// as a top-level argument. The calling convention has no relocation for
	// inner dynamic segments.
	ErrNestedVector = errors.New("vectors must be top-level arguments")

	// ErrDynamicWidth is returned when a fixed encoded width is requested
	// for a schema containing a vector.
	ErrDynamicWidth = errors.New("schema has no fixed width")

	ErrWrongArgumentCount = errors.New("wrong argument count")
)
