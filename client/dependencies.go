// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"

	"github.com/fuelvm/fuels-go/receipt"
	"github.com/fuelvm/fuels-go/tx"
)

type Mode uint8

const (
	// Commit submits the transaction for inclusion; effects persist.
	Commit Mode = iota
	// Simulate executes against current state without persisting any
	// effect.
	Simulate
)

func (m Mode) String() string {
	if m == Simulate {
		return "simulate"
	}
	return "commit"
}

// Dispatcher is the submission capability the call layer builds on. The
// receipts are ordered by execution. Failure classes are distinguishable
// through errors.Is: [ErrTransport] (retryable), [ErrValidation] (fix the
// transaction), and [ErrExecutionRevert] via [*RevertError] (carries
// partial receipts).
type Dispatcher interface {
	Dispatch(ctx context.Context, transaction *tx.Script, mode Mode) ([]receipt.Receipt, error)
}
