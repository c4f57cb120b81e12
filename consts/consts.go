// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// WordSize is the register width of the target VM. Every primitive
	// smaller than a word is right-aligned and zero-padded to this width.
	WordSize = 8

	// SelectorLen is the width of a method selector: one word whose last
	// four bytes hold the truncated signature hash.
	SelectorLen = WordSize

	B256Len = 32
	ByteLen = 1

	IDLen     = 32
	Uint64Len = 8

	MaxUint = ^uint(0)
	MaxInt  = int(MaxUint >> 1)

	// MaxCallDataSize bounds a single encoded argument blob.
	MaxCallDataSize = 1 << 20

	// NetworkSizeLimit bounds any payload read off the wire.
	NetworkSizeLimit = 2_718_281
)
