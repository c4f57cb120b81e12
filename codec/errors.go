// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrTruncatedPayload = errors.New("truncated payload")
	ErrMalformedLength  = errors.New("malformed length")
	ErrInvalidSize      = errors.New("invalid size")
	ErrLimitExceeded    = errors.New("size limit exceeded")
)
