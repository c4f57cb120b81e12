// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import (
	"strings"

	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/fuelvm/fuels-go/consts"
)

// Selector is the fixed-width fingerprint identifying a contract method and
// its argument types: one word whose last four bytes are the leading four
// bytes of the sha256 of the canonical signature.
type Selector [consts.SelectorLen]byte

func (s Selector) Bytes() []byte {
	return s[:]
}

// Signature renders the canonical method signature, e.g.
// "entry_one(u64)". It depends only on the method name and argument
// schemas, never on values.
func Signature(method string, args ...ParamType) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Signature()
	}
	return method + "(" + strings.Join(parts, ",") + ")"
}

// NewSelector derives the selector for a method from its signature.
func NewSelector(method string, args ...ParamType) Selector {
	digest := hashing.ComputeHash256([]byte(Signature(method, args...)))

	var s Selector
	copy(s[consts.SelectorLen-4:], digest[:4])
	return s
}
