// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import "github.com/prometheus/client_golang/prometheus"

type clientMetrics struct {
	committed prometheus.Counter
	simulated prometheus.Counter
	reverted  prometheus.Counter
	rejected  prometheus.Counter
	transport prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		committed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "client",
			Name:      "txs_committed",
			Help:      "number of transactions submitted for inclusion",
		}),
		simulated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "client",
			Name:      "txs_simulated",
			Help:      "number of dry-run executions requested",
		}),
		reverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "client",
			Name:      "txs_reverted",
			Help:      "number of dispatches rejected by contract logic",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "client",
			Name:      "txs_rejected",
			Help:      "number of dispatches rejected before execution",
		}),
		transport: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "client",
			Name:      "transport_failures",
			Help:      "number of dispatches that never reached the node",
		}),
	}
	for _, c := range []prometheus.Counter{
		m.committed, m.simulated, m.reverted, m.rejected, m.transport,
	} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
