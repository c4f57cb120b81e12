// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils"
	"github.com/ava-labs/avalanchego/utils/set"
	"go.uber.org/zap"

	"github.com/fuelvm/fuels-go/abi"
	"github.com/fuelvm/fuels-go/client"
	"github.com/fuelvm/fuels-go/codec"
	"github.com/fuelvm/fuels-go/consts"
	"github.com/fuelvm/fuels-go/tx"
)

// callScript is the opcode stub executed by every contract call
// transaction; it loads the call frame from the data segment and forwards
// to the target contract.
var callScript = codec.Bytes{0x72, 0x40, 0x00, 0x03, 0x2d, 0x40, 0x04, 0x01, 0x24, 0x00, 0x00, 0x00}

// Arg pairs an argument's schema with its value. The schema drives the
// encoding; the token is never trusted to describe itself.
type Arg struct {
	Type  abi.ParamType
	Value abi.Token
}

// Call accumulates one method invocation. Calls have value semantics: every
// With* step returns an updated copy and the receiver is never mutated.
type Call struct {
	contract   ids.ID
	dispatcher client.Dispatcher
	log        *zap.Logger

	method  string
	returns abi.ParamType
	args    []Arg

	txParams          TxParams
	callParams        CallParams
	variableOutputs   int
	externalContracts []ids.ID
}

// WithArg appends one argument.
func (c Call) WithArg(typ abi.ParamType, value abi.Token) Call {
	args := make([]Arg, len(c.args), len(c.args)+1)
	copy(args, c.args)
	c.args = append(args, Arg{Type: typ, Value: value})
	return c
}

func (c Call) WithTxParams(p TxParams) Call {
	c.txParams = p
	return c
}

func (c Call) WithCallParams(p CallParams) Call {
	c.callParams = p
	return c
}

// WithVariableOutputs reserves [n] output slots whose amount and owner are
// determined during execution. Required whenever the called contract, or
// anything it calls transitively, transfers value to an address not known
// until execution; under-provisioning reverts at execution time.
func (c Call) WithVariableOutputs(n int) Call {
	c.variableOutputs = n
	return c
}

// WithExternalContracts declares contracts the call reaches transitively so
// they are included in the transaction's input set. Omitting one makes the
// nested call fail at the VM level.
func (c Call) WithExternalContracts(contracts ...ids.ID) Call {
	combined := make([]ids.ID, len(c.externalContracts), len(c.externalContracts)+len(contracts))
	copy(combined, c.externalContracts)
	c.externalContracts = append(combined, contracts...)
	return c
}

// Selector returns the method fingerprint derived from the name and
// argument schemas.
func (c Call) Selector() abi.Selector {
	types := make([]abi.ParamType, len(c.args))
	for i, a := range c.args {
		types[i] = a.Type
	}
	return abi.NewSelector(c.method, types...)
}

// Build assembles the transaction envelope: selector and encoded arguments
// in the data segment, dependent contracts as inputs, and the reserved
// variable outputs. Build is deterministic for a given call value.
func (c Call) Build() (*tx.Script, error) {
	types := make([]abi.ParamType, len(c.args))
	tokens := make([]abi.Token, len(c.args))
	for i, a := range c.args {
		types[i] = a.Type
		tokens[i] = a.Value
	}

	encodedArgs, err := abi.EncodeArguments(types, tokens)
	if err != nil {
		return nil, err
	}

	selector := abi.NewSelector(c.method, types...)
	data := codec.NewWriter(0, consts.MaxCallDataSize)
	data.PackFixedBytes(selector.Bytes())
	data.PackWord(c.callParams.Amount)
	data.PackFixedBytes(c.callParams.Asset[:])
	data.PackFixedBytes(encodedArgs)
	if err := data.Err(); err != nil {
		return nil, err
	}

	// Input order is part of the transaction identity, so dependencies are
	// sorted and deduplicated.
	deps := make([]ids.ID, 0, len(c.externalContracts))
	seen := set.Of(c.contract)
	for _, id := range c.externalContracts {
		if seen.Contains(id) {
			continue
		}
		seen.Add(id)
		deps = append(deps, id)
	}
	utils.Sort(deps)

	inputs := make([]tx.Input, 0, 1+len(deps))
	outputs := make([]tx.Output, 0, 1+len(deps)+c.variableOutputs)
	inputs = append(inputs, tx.Input{Kind: tx.InputContract, Contract: c.contract})
	outputs = append(outputs, tx.Output{Kind: tx.OutputContract, Contract: c.contract})
	for _, id := range deps {
		inputs = append(inputs, tx.Input{Kind: tx.InputContract, Contract: id})
		outputs = append(outputs, tx.Output{Kind: tx.OutputContract, Contract: id})
	}
	for i := 0; i < c.variableOutputs; i++ {
		outputs = append(outputs, tx.Output{Kind: tx.OutputVariable, Asset: c.callParams.Asset})
	}

	return &tx.Script{
		GasPrice:   c.txParams.GasPrice,
		GasLimit:   c.txParams.GasLimit,
		BytePrice:  c.txParams.BytePrice,
		Maturity:   c.txParams.Maturity,
		Script:     callScript,
		ScriptData: data.Bytes(),
		Inputs:     inputs,
		Outputs:    outputs,
	}, nil
}

// Commit submits the call as a state-changing transaction. Committing a
// read-only call is safe but pays fees.
func (c Call) Commit(ctx context.Context) (*Response, error) {
	return c.dispatch(ctx, client.Commit)
}

// Simulate executes the call against current state without persisting any
// effect. Writes performed by the call are silently discarded.
func (c Call) Simulate(ctx context.Context) (*Response, error) {
	return c.dispatch(ctx, client.Simulate)
}

func (c Call) dispatch(ctx context.Context, mode client.Mode) (*Response, error) {
	transaction, err := c.Build()
	if err != nil {
		return nil, err
	}

	c.log.Debug("dispatching call",
		zap.String("method", c.method),
		zap.Stringer("contract", c.contract),
		zap.Stringer("mode", mode),
	)

	receipts, err := c.dispatcher.Dispatch(ctx, transaction, mode)
	if err != nil {
		// A revert still carries its partial receipts inside the error.
		return nil, err
	}
	return NewResponse(receipts, c.returns)
}
