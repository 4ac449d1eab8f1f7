// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"context"
	"net/http"
	"time"

	"github.com/ava-labs/tokengate/utils/rpc"
)

// Client provides access to the health API endpoint.
type Client struct {
	Requester rpc.EndpointRequester
}

// NewClient returns a client for the health API server at [uri]. A nil
// [httpClient] falls back to http.DefaultClient.
func NewClient(uri string, httpClient *http.Client) *Client {
	return &Client{Requester: rpc.NewEndpointRequester(
		uri+"/ext/health",
		httpClient,
	)}
}

// Health returns the result of every registered check.
func (c *Client) Health(ctx context.Context, options ...rpc.Option) (*APIReply, error) {
	res := &APIReply{}
	err := c.Requester.SendRequest(ctx, "health.health", struct{}{}, res, options...)
	return res, err
}

// AwaitHealthy polls the server every [freq] until it reports healthy. Only
// returns an error if [ctx] expires first.
func AwaitHealthy(ctx context.Context, c *Client, freq time.Duration, options ...rpc.Option) (bool, error) {
	ticker := time.NewTicker(freq)
	defer ticker.Stop()

	for {
		res, err := c.Health(ctx, options...)
		if err == nil && res.Healthy {
			return true, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
