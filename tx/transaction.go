// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tx assembles the script transaction envelope a contract call is
// dispatched in. Signing is out of scope: the envelope is handed to the
// node (or a signer) as marshaled bytes.
package tx

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/fuelvm/fuels-go/codec"
	"github.com/fuelvm/fuels-go/consts"
)

type InputKind uint8

const (
	// InputContract declares a dependent contract so nested calls into it
	// can execute.
	InputContract InputKind = iota
)

type Input struct {
	Kind     InputKind `json:"kind"`
	Contract ids.ID    `json:"contract"`
}

type OutputKind uint8

const (
	// OutputContract mirrors an [InputContract] on the output side.
	OutputContract OutputKind = iota
	// OutputVariable reserves a slot whose amount and owner are only
	// known during execution.
	OutputVariable
)

type Output struct {
	Kind     OutputKind `json:"kind"`
	Contract ids.ID     `json:"contract,omitempty"`
	To       ids.ID     `json:"to,omitempty"`
	Amount   uint64     `json:"amount,omitempty"`
	Asset    ids.ID     `json:"asset,omitempty"`
}

// Script is a script-executing transaction: the call opcode sequence plus
// its data segment, priced and bounded by the four economic parameters.
type Script struct {
	GasPrice  uint64 `json:"gasPrice"`
	GasLimit  uint64 `json:"gasLimit"`
	BytePrice uint64 `json:"bytePrice"`
	Maturity  uint64 `json:"maturity"`

	Script     codec.Bytes `json:"script"`
	ScriptData codec.Bytes `json:"scriptData"`

	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`

	// Witnesses hold signatures attached after assembly. The builder always
	// leaves this empty.
	Witnesses []codec.Bytes `json:"witnesses,omitempty"`
}

// ID is the content hash of the marshaled transaction.
func (t *Script) ID() (ids.ID, error) {
	b, err := t.Marshal()
	if err != nil {
		return ids.Empty, err
	}
	return ids.ID(hashing.ComputeHash256Array(b)), nil
}

func (t *Script) Marshal() ([]byte, error) {
	w := codec.NewWriter(0, consts.NetworkSizeLimit)
	w.PackWord(t.GasPrice)
	w.PackWord(t.GasLimit)
	w.PackWord(t.BytePrice)
	w.PackWord(t.Maturity)
	packBytes(w, t.Script)
	packBytes(w, t.ScriptData)

	w.PackWord(uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		w.PackByte(byte(in.Kind))
		w.PackFixedBytes(in.Contract[:])
	}

	w.PackWord(uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		out.Marshal(w)
	}

	w.PackWord(uint64(len(t.Witnesses)))
	for _, wit := range t.Witnesses {
		packBytes(w, wit)
	}
	return w.Bytes(), w.Err()
}

func (o Output) Marshal(w *codec.Writer) {
	w.PackByte(byte(o.Kind))
	w.PackFixedBytes(o.Contract[:])
	w.PackFixedBytes(o.To[:])
	w.PackWord(o.Amount)
	w.PackFixedBytes(o.Asset[:])
}

func UnmarshalScript(src []byte) (*Script, error) {
	r := codec.NewReader(src)
	t := &Script{
		GasPrice:  r.UnpackWord(),
		GasLimit:  r.UnpackWord(),
		BytePrice: r.UnpackWord(),
		Maturity:  r.UnpackWord(),
	}
	t.Script = unpackBytes(r)
	t.ScriptData = unpackBytes(r)

	numInputs := r.UnpackWord()
	if err := checkCount(r, numInputs, consts.IDLen+1); err != nil {
		return nil, err
	}
	t.Inputs = make([]Input, numInputs)
	for i := range t.Inputs {
		t.Inputs[i].Kind = InputKind(r.UnpackByte())
		copy(t.Inputs[i].Contract[:], r.UnpackFixedBytes(consts.IDLen))
	}

	numOutputs := r.UnpackWord()
	if err := checkCount(r, numOutputs, 1+2*consts.IDLen+consts.Uint64Len+consts.IDLen); err != nil {
		return nil, err
	}
	t.Outputs = make([]Output, numOutputs)
	for i := range t.Outputs {
		t.Outputs[i] = unmarshalOutput(r)
	}

	numWitnesses := r.UnpackWord()
	if err := checkCount(r, numWitnesses, consts.Uint64Len); err != nil {
		return nil, err
	}
	if numWitnesses > 0 {
		t.Witnesses = make([]codec.Bytes, numWitnesses)
		for i := range t.Witnesses {
			t.Witnesses[i] = unpackBytes(r)
		}
	}

	if err := r.Err(); err != nil {
		return nil, err
	}
	if !r.Empty() {
		return nil, fmt.Errorf("%w: %d trailing bytes", codec.ErrInvalidSize, r.Remaining())
	}
	return t, nil
}

func unmarshalOutput(r *codec.Reader) Output {
	var o Output
	o.Kind = OutputKind(r.UnpackByte())
	copy(o.Contract[:], r.UnpackFixedBytes(consts.IDLen))
	copy(o.To[:], r.UnpackFixedBytes(consts.IDLen))
	o.Amount = r.UnpackWord()
	copy(o.Asset[:], r.UnpackFixedBytes(consts.IDLen))
	return o
}

func packBytes(w *codec.Writer, b []byte) {
	w.PackWord(uint64(len(b)))
	w.PackFixedBytes(b)
}

func unpackBytes(r *codec.Reader) []byte {
	n := r.UnpackWord()
	if n > uint64(r.Remaining()) {
		// Force the packer into its error state with an oversized read.
		return r.UnpackFixedBytes(r.Remaining() + 1)
	}
	return r.UnpackFixedBytes(int(n))
}

// checkCount rejects a claimed element count that cannot fit in the
// remaining buffer before any allocation happens.
func checkCount(r *codec.Reader, count uint64, elemSize int) error {
	if count > uint64(r.Remaining())/uint64(elemSize) {
		return fmt.Errorf("%w: %d elements of %d bytes exceed %d remaining",
			codec.ErrMalformedLength, count, elemSize, r.Remaining())
	}
	return nil
}
