// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import "github.com/ava-labs/avalanchego/ids"

const (
	DefaultGasPrice  = 0
	DefaultGasLimit  = 1_000_000
	DefaultBytePrice = 0
	DefaultMaturity  = 0
)

// BaseAssetID is the chain's native asset.
var BaseAssetID = ids.Empty

// TxParams are the transaction-level economic parameters of a call.
type TxParams struct {
	GasPrice  uint64
	GasLimit  uint64
	BytePrice uint64
	Maturity  uint64
}

func DefaultTxParams() TxParams {
	return TxParams{
		GasPrice:  DefaultGasPrice,
		GasLimit:  DefaultGasLimit,
		BytePrice: DefaultBytePrice,
		Maturity:  DefaultMaturity,
	}
}

// CallParams configure the value forwarded with the call.
type CallParams struct {
	// Amount is forwarded to the called contract.
	Amount uint64
	// Asset identifies the forwarded asset.
	Asset ids.ID
}

func DefaultCallParams() CallParams {
	return CallParams{
		Amount: 0,
		Asset:  BaseAssetID,
	}
}
