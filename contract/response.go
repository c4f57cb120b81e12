// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"errors"
	"fmt"

	"github.com/fuelvm/fuels-go/abi"
	"github.com/fuelvm/fuels-go/consts"
	"github.com/fuelvm/fuels-go/receipt"
)

// ErrMissingReturn reports that execution completed without emitting a
// return record for a method declared to return a value.
var ErrMissingReturn = errors.New("no return receipt")

// Response is the decoded outcome of a successful call.
type Response struct {
	// Value is the method's return value, decoded against the declared
	// return schema.
	Value abi.Token
	// Receipts is the full execution trace, in emission order.
	Receipts []receipt.Receipt
	// Logs are the printable log payloads extracted from the trace.
	Logs []string
}

// NewResponse decodes the return value of [returns] out of the execution
// trace. Register-sized values arrive in the return record itself; wider
// values arrive through its data payload.
func NewResponse(receipts []receipt.Receipt, returns abi.ParamType) (*Response, error) {
	value, err := extractReturn(receipts, returns)
	if err != nil {
		return nil, err
	}
	return &Response{
		Value:    value,
		Receipts: receipts,
		Logs:     receipt.CollectLogs(receipts),
	}, nil
}

func extractReturn(receipts []receipt.Receipt, returns abi.ParamType) (abi.Token, error) {
	rec, ok := receipt.FindReturn(receipts)
	if !ok {
		if returns.Kind() == abi.KindUnit {
			return abi.UnitToken(), nil
		}
		return abi.Token{}, fmt.Errorf("%w: expected %s", ErrMissingReturn, returns)
	}

	if rec.Kind == receipt.Return {
		return registerToken(rec.Val, returns)
	}
	return abi.DecodeValue(rec.Data, returns)
}

// registerToken interprets a register-sized return value. The register
// holds the value right-aligned, so it round-trips through the word form
// of the declared type to reuse its range checks.
func registerToken(val uint64, returns abi.ParamType) (abi.Token, error) {
	switch returns.Kind() {
	case abi.KindUnit:
		return abi.UnitToken(), nil
	case abi.KindByte:
		return abi.DecodeValue([]byte{byte(val)}, returns)
	case abi.KindBool, abi.KindU8, abi.KindU16, abi.KindU32, abi.KindU64:
		word := make([]byte, consts.WordSize)
		for i := consts.WordSize - 1; i >= 0; i-- {
			word[i] = byte(val)
			val >>= 8
		}
		return abi.DecodeValue(word, returns)
	default:
		return abi.Token{}, fmt.Errorf(
			"%w: %s cannot be returned in a register",
			abi.ErrSchemaMismatch, returns,
		)
	}
}
