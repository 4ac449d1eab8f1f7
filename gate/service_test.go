// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gate

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/identity"
	"github.com/ava-labs/tokengate/relation"
	"github.com/ava-labs/tokengate/requirement"
	"github.com/ava-labs/tokengate/token"
	"github.com/ava-labs/tokengate/utils/logging"
)

func newTestAPI(t *testing.T, engine *Engine) Client {
	t.Helper()

	handler, err := NewService(logging.NoLog, engine)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, nil)
}

func TestServiceCheckRole(t *testing.T) {
	require := require.New(t)

	const loadedWallet = "0x14ddfe8ea7ffc338015627d160ccaf99e8f16dd3"
	source := &stubSource{balances: map[string]float64{
		loadedWallet: 5,
	}}
	client := newTestAPI(t, newTestEngine(t, source, nil))

	role := Role{
		ID:    "holders",
		Logic: "0",
		Requirements: []requirement.Requirement{{
			Type:         requirement.EVMBalance,
			IdentityKind: identity.EvmAddress,
			Relation:     relation.Relation[float64]{Op: relation.GreaterThan, Value: 1},
			Balance: &requirement.BalanceParams{
				Chain: evm.Ethereum,
				Token: token.Type{Standard: token.Fungible, Address: nftStr},
			},
		}},
	}

	accesses, err := client.CheckRole(context.Background(), role, []identity.User{
		walletUser(1, loadedWallet),
		walletUser(2, unlistedStr),
	})
	require.NoError(err)
	require.Equal([]bool{true, false}, accesses)

	access, err := client.CheckUser(context.Background(), role, walletUser(1, loadedWallet))
	require.NoError(err)
	require.True(access)

	access, err = client.CheckUser(context.Background(), role, walletUser(2, unlistedStr))
	require.NoError(err)
	require.False(access)
}

func TestServiceCheckRoleError(t *testing.T) {
	require := require.New(t)

	client := newTestAPI(t, newTestEngine(t, nil, nil))

	role := Role{
		ID:           "broken",
		Logic:        "0 AND 3",
		Requirements: []requirement.Requirement{balanceRequirement()},
	}
	_, err := client.CheckRole(context.Background(), role, nil)
	require.ErrorContains(err, "exceeds the requirement count")
}

func TestServiceValidateRole(t *testing.T) {
	require := require.New(t)

	client := newTestAPI(t, newTestEngine(t, nil, nil))

	valid, reason, err := client.ValidateRole(context.Background(), Role{
		ID:           "ok",
		Logic:        "0",
		Requirements: []requirement.Requirement{balanceRequirement()},
	})
	require.NoError(err)
	require.True(valid)
	require.Empty(reason)

	valid, reason, err = client.ValidateRole(context.Background(), Role{
		ID:    "empty",
		Logic: "0",
	})
	require.NoError(err)
	require.False(valid)
	require.Contains(reason, "no requirements")
}
