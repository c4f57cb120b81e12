// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWebSocketClientFailedHandshake(t *testing.T) {
	require := require.New(t)

	// A plain HTTP endpoint rejects the upgrade; the dial must surface a
	// transport error and leak nothing.
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer node.Close()

	uri := "ws" + strings.TrimPrefix(node.URL, "http")
	_, err := NewWebSocketClient(uri)
	require.ErrorIs(err, ErrTransport)
}
