// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gate

import (
	"context"
	"net/http"

	"github.com/ava-labs/tokengate/identity"
	"github.com/ava-labs/tokengate/utils/rpc"
)

var _ Client = (*client)(nil)

// Client provides access to the gate API endpoint.
type Client interface {
	// CheckRole evaluates [role] for [users], returning one boolean per
	// user in input order.
	CheckRole(ctx context.Context, role Role, users []identity.User, options ...rpc.Option) ([]bool, error)

	// CheckUser evaluates [role] for a single user.
	CheckUser(ctx context.Context, role Role, user identity.User, options ...rpc.Option) (bool, error)

	// ValidateRole reports whether [role] is evaluable; the string carries
	// the reason when it isn't.
	ValidateRole(ctx context.Context, role Role, options ...rpc.Option) (bool, string, error)
}

type client struct {
	requester rpc.EndpointRequester
}

// NewClient returns a client for the gate API server at [uri]. A nil
// [httpClient] falls back to http.DefaultClient.
func NewClient(uri string, httpClient *http.Client) Client {
	return &client{requester: rpc.NewEndpointRequester(
		uri+"/ext/gate",
		httpClient,
	)}
}

func (c *client) CheckRole(ctx context.Context, role Role, users []identity.User, options ...rpc.Option) ([]bool, error) {
	res := &CheckRoleReply{}
	err := c.requester.SendRequest(ctx, "gate.checkRole", &CheckRoleArgs{
		Role:  role,
		Users: users,
	}, res, options...)
	return res.Accesses, err
}

func (c *client) CheckUser(ctx context.Context, role Role, user identity.User, options ...rpc.Option) (bool, error) {
	res := &CheckUserReply{}
	err := c.requester.SendRequest(ctx, "gate.checkUser", &CheckUserArgs{
		Role: role,
		User: user,
	}, res, options...)
	return res.Access, err
}

func (c *client) ValidateRole(ctx context.Context, role Role, options ...rpc.Option) (bool, string, error) {
	res := &ValidateRoleReply{}
	err := c.requester.SendRequest(ctx, "gate.validateRole", &ValidateRoleArgs{
		Role: role,
	}, res, options...)
	return res.Valid, res.Reason, err
}
