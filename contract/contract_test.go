// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"bytes"
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/fuelvm/fuels-go/abi"
	"github.com/fuelvm/fuels-go/client"
	"github.com/fuelvm/fuels-go/codec"
	"github.com/fuelvm/fuels-go/consts"
	"github.com/fuelvm/fuels-go/receipt"
	"github.com/fuelvm/fuels-go/tx"
)

// fakeVM executes call transactions in memory against a tiny counter and
// airdrop contract. It parses the data segment the same way the VM does.
type fakeVM struct {
	counter uint64

	// helper must appear in the transaction's input set before delegate
	// calls succeed.
	helper ids.ID
}

var (
	incrementSelector = abi.NewSelector("increment", abi.U64())
	airdropSelector   = abi.NewSelector("airdrop", abi.U64())
	delegateSelector  = abi.NewSelector("delegate")
)

func (v *fakeVM) Dispatch(
	_ context.Context,
	transaction *tx.Script,
	mode client.Mode,
) ([]receipt.Receipt, error) {
	r := codec.NewReader(transaction.ScriptData)
	selector := r.UnpackFixedBytes(consts.SelectorLen)
	r.UnpackWord()                          // forwarded amount
	r.UnpackFixedBytes(consts.B256Len)      // forwarded asset
	args := r.UnpackFixedBytes(r.Remaining())
	if err := r.Err(); err != nil {
		return nil, &client.ValidationError{Reason: err.Error()}
	}

	target := transaction.Inputs[0].Contract
	receipts := []receipt.Receipt{{Kind: receipt.Call, Contract: target}}

	switch {
	case bytes.Equal(selector, incrementSelector.Bytes()):
		tokens, err := abi.DecodeArguments(args, []abi.ParamType{abi.U64()})
		if err != nil {
			return nil, &client.ValidationError{Reason: err.Error()}
		}
		next := v.counter + tokens[0].Uint64()
		if mode == client.Commit {
			v.counter = next
		}
		receipts = append(receipts,
			receipt.Receipt{Kind: receipt.Return, Contract: target, Val: next},
			receipt.Receipt{Kind: receipt.ScriptResult, GasUsed: 100},
		)
		return receipts, nil

	case bytes.Equal(selector, airdropSelector.Bytes()):
		tokens, err := abi.DecodeArguments(args, []abi.ParamType{abi.U64()})
		if err != nil {
			return nil, &client.ValidationError{Reason: err.Error()}
		}
		recipients := tokens[0].Uint64()
		slots := 0
		for _, out := range transaction.Outputs {
			if out.Kind == tx.OutputVariable {
				slots++
			}
		}
		for i := uint64(0); i < recipients; i++ {
			if i >= uint64(slots) {
				receipts = append(receipts,
					receipt.Receipt{Kind: receipt.Revert, Contract: target, Val: 1},
				)
				return receipts, &client.RevertError{
					Reason:   "no free variable output",
					Receipts: receipts,
				}
			}
			receipts = append(receipts, receipt.Receipt{
				Kind:     receipt.TransferOut,
				Contract: target,
				Amount:   10,
			})
		}
		receipts = append(receipts,
			receipt.Receipt{Kind: receipt.Return, Contract: target},
			receipt.Receipt{Kind: receipt.ScriptResult, GasUsed: 250},
		)
		return receipts, nil

	case bytes.Equal(selector, delegateSelector.Bytes()):
		declared := false
		for _, in := range transaction.Inputs {
			if in.Contract == v.helper {
				declared = true
			}
		}
		if !declared {
			receipts = append(receipts,
				receipt.Receipt{Kind: receipt.Panic, Contract: target, Val: 2},
			)
			return receipts, &client.RevertError{
				Reason:   "contract not in transaction inputs",
				Receipts: receipts,
			}
		}
		receipts = append(receipts,
			receipt.Receipt{Kind: receipt.Call, Contract: v.helper},
			receipt.Receipt{Kind: receipt.Return, Contract: v.helper, Val: 7},
			receipt.Receipt{Kind: receipt.ScriptResult, GasUsed: 300},
		)
		return receipts, nil
	}

	return nil, &client.ValidationError{Reason: "unknown method"}
}

func TestBuildDefaults(t *testing.T) {
	require := require.New(t)

	target := ids.GenerateTestID()
	c := New(target, &fakeVM{})

	built, err := c.Method("increment", abi.U64()).
		WithArg(abi.U64(), abi.U64Token(5)).
		Build()
	require.NoError(err)

	require.Equal(uint64(DefaultGasLimit), built.GasLimit)
	require.Equal(uint64(DefaultGasPrice), built.GasPrice)

	// Data segment: selector, forwarded amount, forwarded asset, arguments.
	r := codec.NewReader(built.ScriptData)
	require.Equal(incrementSelector.Bytes(), r.UnpackFixedBytes(consts.SelectorLen))
	require.Zero(r.UnpackWord())
	require.Equal(BaseAssetID[:], r.UnpackFixedBytes(consts.B256Len))
	require.Equal(consts.WordSize, r.Remaining())
	require.NoError(r.Err())

	require.Len(built.Inputs, 1)
	require.Equal(target, built.Inputs[0].Contract)
	require.Len(built.Outputs, 1)
	require.Equal(tx.OutputContract, built.Outputs[0].Kind)
}

func TestCallValueSemantics(t *testing.T) {
	require := require.New(t)

	c := New(ids.GenerateTestID(), &fakeVM{})
	base := c.Method("increment", abi.U64())

	configured := base.
		WithArg(abi.U64(), abi.U64Token(5)).
		WithVariableOutputs(2).
		WithTxParams(TxParams{GasLimit: 42})

	// The base call is untouched by configuring a derived one.
	require.Empty(base.args)
	require.Zero(base.variableOutputs)
	require.Equal(uint64(DefaultGasLimit), base.txParams.GasLimit)

	require.Len(configured.args, 1)
	require.Equal(2, configured.variableOutputs)
	require.Equal(uint64(42), configured.txParams.GasLimit)
}

func TestSelectorMatchesArguments(t *testing.T) {
	require := require.New(t)

	c := New(ids.GenerateTestID(), &fakeVM{})
	call := c.Method("increment", abi.U64()).WithArg(abi.U64(), abi.U64Token(1))
	require.Equal(incrementSelector, call.Selector())

	// Same method name with different arguments fingerprints differently.
	other := c.Method("increment", abi.U64()).WithArg(abi.U32(), abi.U32Token(1))
	require.NotEqual(incrementSelector, other.Selector())
}

func TestSimulateDoesNotPersist(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm := &fakeVM{}
	c := New(ids.GenerateTestID(), vm)
	call := c.Method("increment", abi.U64()).WithArg(abi.U64(), abi.U64Token(5))

	resp, err := call.Simulate(ctx)
	require.NoError(err)
	require.Equal(uint64(5), resp.Value.Uint64())
	require.Zero(vm.counter)

	resp, err = call.Commit(ctx)
	require.NoError(err)
	require.Equal(uint64(5), resp.Value.Uint64())
	require.Equal(uint64(5), vm.counter)

	// A later simulation observes the committed state.
	resp, err = call.Simulate(ctx)
	require.NoError(err)
	require.Equal(uint64(10), resp.Value.Uint64())
	require.Equal(uint64(5), vm.counter)
}

func TestVariableOutputProvisioning(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c := New(ids.GenerateTestID(), &fakeVM{})
	airdrop := c.Method("airdrop", abi.Unit()).WithArg(abi.U64(), abi.U64Token(2))

	// Without reserved slots the transfer reverts mid-flight. The revert
	// error still carries the receipts emitted before the failure.
	_, err := airdrop.WithVariableOutputs(1).Commit(ctx)
	require.ErrorIs(err, client.ErrExecutionRevert)

	var revert *client.RevertError
	require.ErrorAs(err, &revert)
	transfers := 0
	for _, r := range revert.Receipts {
		if r.Kind == receipt.TransferOut {
			transfers++
		}
	}
	require.Equal(1, transfers)

	resp, err := airdrop.WithVariableOutputs(2).Commit(ctx)
	require.NoError(err)
	transfers = 0
	for _, r := range resp.Receipts {
		if r.Kind == receipt.TransferOut {
			transfers++
		}
	}
	require.Equal(2, transfers)
}

func TestExternalContractDeclaration(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	helper := ids.GenerateTestID()
	c := New(ids.GenerateTestID(), &fakeVM{helper: helper})
	call := c.Method("delegate", abi.U64())

	_, err := call.Commit(ctx)
	require.ErrorIs(err, client.ErrExecutionRevert)

	resp, err := call.WithExternalContracts(helper).Commit(ctx)
	require.NoError(err)
	require.Equal(uint64(7), resp.Value.Uint64())
}

func TestExternalContractsSortedAndDeduplicated(t *testing.T) {
	require := require.New(t)

	target := ids.GenerateTestID()
	a := ids.GenerateTestID()
	b := ids.GenerateTestID()

	c := New(target, &fakeVM{})
	built, err := c.Method("delegate", abi.Unit()).
		WithExternalContracts(b, a, b, target).
		Build()
	require.NoError(err)

	// Target leads, then dependencies in sorted order with duplicates and
	// the target itself removed.
	require.Len(built.Inputs, 3)
	require.Equal(target, built.Inputs[0].Contract)
	require.True(built.Inputs[1].Contract.Compare(built.Inputs[2].Contract) < 0)
}

func TestSimulateAll(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm := &fakeVM{counter: 3}
	c := New(ids.GenerateTestID(), vm)

	calls := make([]Call, 4)
	for i := range calls {
		calls[i] = c.Method("increment", abi.U64()).
			WithArg(abi.U64(), abi.U64Token(uint64(i+1)))
	}

	responses, err := SimulateAll(ctx, calls...)
	require.NoError(err)
	require.Len(responses, len(calls))
	for i, resp := range responses {
		require.Equal(uint64(3+i+1), resp.Value.Uint64())
	}
	require.Equal(uint64(3), vm.counter)
}

func TestSimulateAllPropagatesFailure(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c := New(ids.GenerateTestID(), &fakeVM{})
	ok := c.Method("increment", abi.U64()).WithArg(abi.U64(), abi.U64Token(1))
	bad := c.Method("airdrop", abi.Unit()).WithArg(abi.U64(), abi.U64Token(3))

	_, err := SimulateAll(ctx, ok, bad)
	require.ErrorIs(err, client.ErrExecutionRevert)
}

func TestResponseMissingReturn(t *testing.T) {
	require := require.New(t)

	receipts := []receipt.Receipt{{Kind: receipt.ScriptResult}}

	// A method declared to return nothing tolerates a trace without a
	// return record.
	resp, err := NewResponse(receipts, abi.Unit())
	require.NoError(err)
	require.Equal(abi.KindUnit, resp.Value.Kind())

	_, err = NewResponse(receipts, abi.U64())
	require.ErrorIs(err, ErrMissingReturn)
}

func TestResponseRegisterReturns(t *testing.T) {
	tests := []struct {
		name    string
		returns abi.ParamType
		val     uint64
		want    abi.Token
	}{
		{"u64", abi.U64(), 1 << 40, abi.U64Token(1 << 40)},
		{"u8", abi.U8(), 200, abi.U8Token(200)},
		{"bool", abi.Bool(), 1, abi.BoolToken(true)},
		{"byte", abi.Byte(), 0xab, abi.ByteToken(0xab)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			resp, err := NewResponse(
				[]receipt.Receipt{{Kind: receipt.Return, Val: tt.val}},
				tt.returns,
			)
			require.NoError(err)
			require.Equal(tt.want, resp.Value)
		})
	}

	// A register cannot carry a composite value.
	_, err := NewResponse(
		[]receipt.Receipt{{Kind: receipt.Return, Val: 1}},
		abi.Struct("Point", abi.Field("x", abi.U64())),
	)
	require.ErrorIs(t, err, abi.ErrSchemaMismatch)
}

func TestResponseDataReturn(t *testing.T) {
	require := require.New(t)

	point := abi.Struct("Point",
		abi.Field("x", abi.U64()),
		abi.Field("y", abi.U64()),
	)
	encoded, err := abi.EncodeValue(point, abi.StructToken(
		abi.U64Token(3),
		abi.U64Token(4),
	))
	require.NoError(err)

	receipts := []receipt.Receipt{
		{Kind: receipt.LogData, Data: []byte("checkpoint")},
		{Kind: receipt.ReturnData, Data: encoded},
		{Kind: receipt.ScriptResult},
	}
	resp, err := NewResponse(receipts, point)
	require.NoError(err)
	require.Equal(uint64(3), resp.Value.Elems()[0].Uint64())
	require.Equal(uint64(4), resp.Value.Elems()[1].Uint64())
	require.Equal([]string{"checkpoint"}, resp.Logs)
}
