// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpc is a minimal Ethereum JSON-RPC client covering the two calls
// the balance resolver needs: eth_call against the latest block and
// eth_chainId for endpoint health checks.
//
// The standard JSON-RPC client helpers can't be used here because Ethereum
// methods take positional parameters ([{to, data}, "latest"]), so the
// envelope is built by hand.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/ava-labs/tokengate/evm/calldata"

	utilsrpc "github.com/ava-labs/tokengate/utils/rpc"
)

const latestBlockTag = "latest"

var (
	_ Client = (*client)(nil)

	errMissingResult = errors.New("rpc response carried no result")
)

// Client issues read-only requests against one JSON-RPC endpoint.
type Client interface {
	// ChainID returns the chain id the endpoint reports for itself.
	ChainID(ctx context.Context) (uint64, error)

	// EthCall executes [call] and returns the raw hex result.
	EthCall(ctx context.Context, call calldata.Call) (string, error)
}

type client struct {
	uri       string
	client    *http.Client
	requestID atomic.Uint64
}

// NewClient returns a client for the endpoint at [uri] issuing its requests
// through [httpClient]. A nil [httpClient] falls back to http.DefaultClient.
func NewClient(uri string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		uri:    uri,
		client: httpClient,
	}
}

type ethCallParam struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      uint64        `json:"id"`
}

// Error is the error object a node returns for a failed call.
type Error struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type response struct {
	Result *string `json:"result"`
	Error  *Error  `json:"error"`
}

func (c *client) ChainID(ctx context.Context) (uint64, error) {
	result, err := c.call(ctx, "eth_chainId", []interface{}{})
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(result, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", result, err)
	}
	return id, nil
}

func (c *client) EthCall(ctx context.Context, call calldata.Call) (string, error) {
	return c.call(ctx, "eth_call", []interface{}{
		ethCallParam{
			To:   call.Target.String(),
			Data: "0x" + call.Data,
		},
		latestBlockTag,
	})
}

func (c *client) call(ctx context.Context, method string, params []interface{}) (string, error) {
	requestBodyBytes, err := json.Marshal(request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.requestID.Add(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.uri,
		bytes.NewReader(requestBodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	//nolint:bodyclose // body is closed via CleanlyCloseBody
	resp, err := c.client.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("failed to issue request: %w", err)
	}
	defer utilsrpc.CleanlyCloseBody(resp.Body)

	// Return an error for any non successful status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("received status code: %d", resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", parsed.Error
	}
	if parsed.Result == nil {
		return "", errMissingResult
	}
	return *parsed.Result, nil
}
