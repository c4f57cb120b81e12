// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract builds contract method invocations: it encodes the
// arguments into the VM calling convention, assembles the transaction
// envelope, and decodes the execution trace back into a typed result.
package contract

import (
	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/fuelvm/fuels-go/abi"
	"github.com/fuelvm/fuels-go/client"
)

// Contract is a handle on a deployed contract. It is cheap to copy and safe
// to share: every call built from it is independent.
type Contract struct {
	id         ids.ID
	dispatcher client.Dispatcher
	log        *zap.Logger
}

type Option func(*Contract)

func WithLogger(log *zap.Logger) Option {
	return func(c *Contract) {
		c.log = log
	}
}

func New(id ids.ID, dispatcher client.Dispatcher, opts ...Option) *Contract {
	c := &Contract{
		id:         id,
		dispatcher: dispatcher,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Contract) ID() ids.ID {
	return c.id
}

// Method begins a call of [name] returning [returns]. The result is a value:
// each With* step yields an updated copy, so partially configured calls can
// be reused and configured concurrently without coordination.
func (c *Contract) Method(name string, returns abi.ParamType) Call {
	return Call{
		contract:   c.id,
		dispatcher: c.dispatcher,
		log:        c.log,
		method:     name,
		returns:    returns,
		txParams:   DefaultTxParams(),
		callParams: DefaultCallParams(),
	}
}
