// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client dispatches assembled transactions to a node, either as
// committing submissions or as dry-run simulations, and maps the node's
// failure modes onto a taxonomy callers can branch on.
package client

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fuelvm/fuels-go/codec"
	"github.com/fuelvm/fuels-go/receipt"
	"github.com/fuelvm/fuels-go/requester"
	"github.com/fuelvm/fuels-go/trace"
	"github.com/fuelvm/fuels-go/tx"
)

const (
	// Name prefixes every RPC method.
	Name = "fuel"

	// Endpoint is appended to the configured base URI.
	Endpoint = "/rpc"
)

var _ Dispatcher = (*JSONRPCClient)(nil)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	log      *zap.Logger
	tracer   trace.Tracer
	registry prometheus.Registerer
	metrics  *clientMetrics
}

type Option func(*JSONRPCClient)

func WithLogger(log *zap.Logger) Option {
	return func(c *JSONRPCClient) {
		c.log = log
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *JSONRPCClient) {
		c.tracer = tracer
	}
}

// WithMetrics registers the client's counters on [r].
func WithMetrics(r prometheus.Registerer) Option {
	return func(c *JSONRPCClient) {
		c.registry = r
	}
}

func NewJSONRPCClient(uri string, opts ...Option) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint

	noop, _ := trace.New(&trace.Config{})
	c := &JSONRPCClient{
		requester: requester.New(uri, Name),
		log:       zap.NewNop(),
		tracer:    noop,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Registration happens after all options so failures reach the
	// configured logger regardless of option order.
	if c.registry != nil {
		m, err := newMetrics(c.registry)
		if err != nil {
			// Duplicate registration is a caller bug surfaced on first use.
			c.log.Error("failed to register metrics", zap.Error(err))
		} else {
			c.metrics = m
		}
	}
	return c
}

type PingReply struct {
	Success bool `json:"success"`
}

func (c *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := c.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

type DispatchArgs struct {
	Tx       codec.Bytes `json:"tx"`
	Simulate bool        `json:"simulate"`
}

type DispatchReply struct {
	Receipts []receipt.Receipt `json:"receipts"`

	// Reverted is set when execution aborted; Error then carries the
	// reason and Receipts the partial trace.
	Reverted bool   `json:"reverted"`
	Error    string `json:"error,omitempty"`
}

// Dispatch marshals [transaction] and submits it in [mode]. See
// [Dispatcher] for the error contract.
func (c *JSONRPCClient) Dispatch(
	ctx context.Context,
	transaction *tx.Script,
	mode Mode,
) ([]receipt.Receipt, error) {
	ctx, span := c.tracer.Start(ctx, "JSONRPCClient.Dispatch")
	defer span.End()

	raw, err := transaction.Marshal()
	if err != nil {
		return nil, err
	}

	resp := new(DispatchReply)
	err = c.requester.SendRequest(ctx,
		"dispatch",
		&DispatchArgs{Tx: raw, Simulate: mode == Simulate},
		resp,
	)
	if err != nil {
		c.count(func(m *clientMetrics) { m.transport.Inc() })
		c.log.Warn("dispatch did not reach the node",
			zap.Stringer("mode", mode),
			zap.Error(err),
		)
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.Reverted:
		c.count(func(m *clientMetrics) { m.reverted.Inc() })
		c.log.Debug("execution reverted",
			zap.String("reason", resp.Error),
			zap.Int("receipts", len(resp.Receipts)),
		)
		return resp.Receipts, &RevertError{
			Reason:   resp.Error,
			Receipts: resp.Receipts,
		}
	case resp.Error != "":
		c.count(func(m *clientMetrics) { m.rejected.Inc() })
		return nil, &ValidationError{Reason: resp.Error}
	}

	if mode == Simulate {
		c.count(func(m *clientMetrics) { m.simulated.Inc() })
	} else {
		c.count(func(m *clientMetrics) { m.committed.Inc() })
	}
	return resp.Receipts, nil
}

func (c *JSONRPCClient) count(f func(*clientMetrics)) {
	if c.metrics != nil {
		f(c.metrics)
	}
}
