// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

var _ EndpointRequester = (*endpointRequester)(nil)

type EndpointRequester interface {
	SendRequest(
		ctx context.Context,
		method string,
		params interface{},
		reply interface{},
		options ...Option,
	) error
}

type endpointRequester struct {
	uri    string
	client *http.Client
}

// NewEndpointRequester returns a requester sending every call to [uri]
// through [client]. A nil [client] falls back to http.DefaultClient.
func NewEndpointRequester(uri string, client *http.Client) EndpointRequester {
	return &endpointRequester{
		uri:    uri,
		client: client,
	}
}

func (e *endpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
	options ...Option,
) error {
	uri, err := url.Parse(e.uri)
	if err != nil {
		return fmt.Errorf("invalid uri %s: %w", e.uri, err)
	}
	return SendJSONRequest(
		ctx,
		e.client,
		uri,
		method,
		params,
		reply,
		options...,
	)
}
