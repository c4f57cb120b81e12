// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/fuelvm/fuels-go/receipt"
	"github.com/fuelvm/fuels-go/tx"
)

var _ Dispatcher = (*WebSocketClient)(nil)

// WebSocketClient dispatches over a streaming endpoint: one request frame
// per dispatch, one reply frame with the receipts. Useful when many calls
// share a connection.
type WebSocketClient struct {
	conn *websocket.Conn
	wl   sync.Mutex
	rl   sync.Mutex
	cl   sync.Once
}

// NewWebSocketClient dials the streaming endpoint at [uri].
func NewWebSocketClient(uri string) (*WebSocketClient, error) {
	conn, resp, err := websocket.DefaultDialer.Dial(uri, nil)
	if resp != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return &WebSocketClient{conn: conn}, nil
}

func (c *WebSocketClient) Dispatch(
	ctx context.Context,
	transaction *tx.Script,
	mode Mode,
) ([]receipt.Receipt, error) {
	raw, err := transaction.Marshal()
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		_ = c.conn.SetReadDeadline(deadline)
	}

	c.wl.Lock()
	err = c.conn.WriteJSON(&DispatchArgs{Tx: raw, Simulate: mode == Simulate})
	c.wl.Unlock()
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	c.rl.Lock()
	resp := new(DispatchReply)
	err = c.conn.ReadJSON(resp)
	c.rl.Unlock()
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.Reverted:
		return resp.Receipts, &RevertError{Reason: resp.Error, Receipts: resp.Receipts}
	case resp.Error != "":
		return nil, &ValidationError{Reason: resp.Error}
	}
	return resp.Receipts, nil
}

// Close closes the connection to the streaming endpoint.
func (c *WebSocketClient) Close() error {
	var err error
	c.cl.Do(func() {
		err = c.conn.Close()
	})
	return err
}
