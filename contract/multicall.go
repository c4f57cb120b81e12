// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SimulateAll runs every call concurrently in simulate mode and returns the
// responses in call order. The first failure cancels the remaining calls and
// is returned; simulations are side-effect free, so partial completion
// leaves no state behind.
func SimulateAll(ctx context.Context, calls ...Call) ([]*Response, error) {
	responses := make([]*Response, len(calls))
	eg, egctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		i, call := i, call
		eg.Go(func() error {
			resp, err := call.Simulate(egctx)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}
