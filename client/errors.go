// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"errors"
	"fmt"

	"github.com/fuelvm/fuels-go/receipt"
)

var (
	// ErrTransport wraps node-unreachable and timeout failures. Safe to
	// retry with backoff; the transaction was never accepted.
	ErrTransport = errors.New("transport failure")

	// ErrValidation wraps a rejection before execution. Retrying without
	// changing the transaction will fail the same way.
	ErrValidation = errors.New("transaction validation failed")

	// ErrExecutionRevert is the sentinel matched by errors.Is against
	// [*RevertError].
	ErrExecutionRevert = errors.New("execution reverted")
)

// TransportError reports that the dispatch never reached the node.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// ValidationError reports a transaction-level rejection before execution.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (*ValidationError) Unwrap() error {
	return ErrValidation
}

// RevertError reports that contract logic rejected the call. It retains the
// receipts gathered up to the revert point so callers can still surface
// partial logs for diagnostics.
type RevertError struct {
	Reason   string
	Receipts []receipt.Receipt
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("%s: %s", ErrExecutionRevert, e.Reason)
}

func (*RevertError) Unwrap() error {
	return ErrExecutionRevert
}

// Logs returns the log entries captured before the revert point.
func (e *RevertError) Logs() []string {
	return receipt.CollectLogs(e.Receipts)
}
