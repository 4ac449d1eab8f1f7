// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/tokengate/evm/calldata"
	"github.com/ava-labs/tokengate/utils/metric"
	"github.com/ava-labs/tokengate/utils/wrappers"
)

var _ Client = (*meteredClient)(nil)

// meteredClient counts and times the calls sent to one endpoint.
type meteredClient struct {
	client   Client
	calls    prometheus.Counter
	failures prometheus.Counter
	duration prometheus.Histogram
}

// NewMeteredClient returns a Client that reports the number, failure count,
// and duration of its requests under [namespace]. A nil [httpClient] falls
// back to http.DefaultClient.
func NewMeteredClient(uri string, httpClient *http.Client, namespace string, registerer prometheus.Registerer) (Client, error) {
	calls := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calls",
		Help:      "Number of requests sent to the endpoint",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "call_failures",
		Help:      "Number of requests the endpoint failed to serve",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "call_duration",
		Help:      "Time spent waiting on the endpoint in nanoseconds",
		Buckets:   metric.NanosecondsBuckets,
	})

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(calls),
		registerer.Register(failures),
		registerer.Register(duration),
	)
	return &meteredClient{
		client:   NewClient(uri, httpClient),
		calls:    calls,
		failures: failures,
		duration: duration,
	}, errs.Err
}

func (c *meteredClient) ChainID(ctx context.Context) (uint64, error) {
	start := time.Now()
	id, err := c.client.ChainID(ctx)
	c.observe(start, err)
	return id, err
}

func (c *meteredClient) EthCall(ctx context.Context, call calldata.Call) (string, error) {
	start := time.Now()
	result, err := c.client.EthCall(ctx, call)
	c.observe(start, err)
	return result, err
}

func (c *meteredClient) observe(start time.Time, err error) {
	c.duration.Observe(float64(time.Since(start)))
	c.calls.Inc()
	if err != nil {
		c.failures.Inc()
	}
}
