// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/token"
	"github.com/ava-labs/tokengate/utils/logging"
)

const (
	holder1Str   = "0x14ddfe8ea7ffc338015627d160ccaf99e8f16dd3"
	holder2Str   = "0xe43f47c497e0efc3fe96a85b2041aff2f85c78ce"
	tokenStr     = "0x458691c1692cd82facfb2c5127e36d63213448a8"
	multicallStr = "0x5ba1e12693dc8f9c48aad8770482f4739beed696"
)

func mustAddress(t *testing.T, s string) evm.Address {
	addr, err := evm.AddressFromString(s)
	require.NoError(t, err)
	return addr
}

func w(x uint64) string {
	return fmt.Sprintf("%064x", x)
}

// fakeNode is a JSON-RPC test double dispatching eth_call requests to
// [handle] by submitted target and calldata.
type fakeNode struct {
	t        *testing.T
	requests atomic.Int32
	handle   func(to, data string) string
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.requests.Add(1)

	var req struct {
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
		ID     uint64            `json:"id"`
	}
	require.NoError(n.t, json.NewDecoder(r.Body).Decode(&req))
	require.Equal(n.t, "eth_call", req.Method)
	require.Len(n.t, req.Params, 2)

	var call struct {
		To   string `json:"to"`
		Data string `json:"data"`
	}
	require.NoError(n.t, json.Unmarshal(req.Params[0], &call))

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%q}`, req.ID, n.handle(call.To, call.Data))
}

func newTestResolver(t *testing.T, node *fakeNode) *Resolver {
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	resolver, err := NewResolver(logging.NoLog, evm.Providers{
		evm.Ethereum: {
			RPCURL:    server.URL,
			Multicall: mustAddress(t, multicallStr),
		},
	}, nil, prometheus.NewRegistry())
	require.NoError(t, err)
	return resolver
}

func TestResolverNative(t *testing.T) {
	require := require.New(t)

	holders := []evm.Address{
		mustAddress(t, holder1Str),
		mustAddress(t, holder2Str),
	}
	node := &fakeNode{t: t, handle: func(to, data string) string {
		require.Equal(multicallStr, to)
		require.True(strings.HasPrefix(data, "0x252dba42"))
		require.Contains(data, "4d2301cc")
		// 1.5 coins and nothing
		return "0x" + w(17000000) + w(0x40) + w(1500000000000000000) + w(0)
	}}
	resolver := newTestResolver(t, node)

	balances, err := resolver.GetBalances(context.Background(), evm.Ethereum, Token{Standard: token.Native}, holders)
	require.NoError(err)
	require.Equal([]float64{1.5, 0}, balances)
}

func TestResolverFungible(t *testing.T) {
	require := require.New(t)

	tok := Token{
		Standard: token.Fungible,
		Address:  mustAddress(t, tokenStr),
	}
	holders := []evm.Address{
		mustAddress(t, holder1Str),
		mustAddress(t, holder2Str),
	}

	var decimalsCalls atomic.Int32
	node := &fakeNode{t: t, handle: func(to, data string) string {
		switch {
		case strings.HasPrefix(data, "0x313ce567"):
			decimalsCalls.Add(1)
			require.Equal(tokenStr, to)
			return "0x" + w(18)
		case strings.HasPrefix(data, "0x252dba42"):
			require.Equal(multicallStr, to)
			require.Contains(data, "70a08231")
			return "0x" + w(0) + w(0x40) + w(2500000000000000000) + w(0)
		default:
			t.Errorf("unexpected calldata %q", data)
			return "0x"
		}
	}}
	resolver := newTestResolver(t, node)

	balances, err := resolver.GetBalances(context.Background(), evm.Ethereum, tok, holders)
	require.NoError(err)
	require.Equal([]float64{2.5, 0}, balances)

	// The decimal count is a contract constant and must be served from the
	// cache on repeat queries.
	_, err = resolver.GetBalances(context.Background(), evm.Ethereum, tok, holders)
	require.NoError(err)
	require.Equal(int32(1), decimalsCalls.Load())
}

func TestResolverNonFungibleCounts(t *testing.T) {
	require := require.New(t)

	tok := Token{
		Standard: token.NonFungible,
		Address:  mustAddress(t, tokenStr),
	}
	holders := []evm.Address{
		mustAddress(t, holder1Str),
		mustAddress(t, holder2Str),
	}
	node := &fakeNode{t: t, handle: func(to, data string) string {
		require.Equal(multicallStr, to)
		require.True(strings.HasPrefix(data, "0x252dba42"))
		return "0x" + w(0) + w(0x40) + w(3) + w(0)
	}}
	resolver := newTestResolver(t, node)

	balances, err := resolver.GetBalances(context.Background(), evm.Ethereum, tok, holders)
	require.NoError(err)
	require.Equal([]float64{3, 0}, balances)
}

func TestResolverOwnership(t *testing.T) {
	require := require.New(t)

	tok := Token{
		Standard: token.NonFungible,
		Address:  mustAddress(t, tokenStr),
		ID:       big.NewInt(10868),
	}
	holders := []evm.Address{
		mustAddress(t, holder1Str),
		mustAddress(t, holder2Str),
	}
	node := &fakeNode{t: t, handle: func(to, data string) string {
		require.Equal(tokenStr, to)
		require.Equal("0x6352211e"+w(10868), data)
		return "0x000000000000000000000000" + strings.TrimPrefix(holder2Str, "0x")
	}}
	resolver := newTestResolver(t, node)

	balances, err := resolver.GetBalances(context.Background(), evm.Ethereum, tok, holders)
	require.NoError(err)
	require.Equal([]float64{0, 1}, balances)
	require.Equal(int32(1), node.requests.Load())
}

func TestResolverSpecial(t *testing.T) {
	require := require.New(t)

	tok := Token{
		Standard: token.Special,
		Address:  mustAddress(t, tokenStr),
		ID:       big.NewInt(5),
	}
	holders := []evm.Address{
		mustAddress(t, holder1Str),
		mustAddress(t, holder2Str),
	}
	node := &fakeNode{t: t, handle: func(to, data string) string {
		require.Equal(tokenStr, to)
		require.True(strings.HasPrefix(data, "0x4e1273f4"))
		return "0x" + w(0x20) + w(2) + w(10) + w(0)
	}}
	resolver := newTestResolver(t, node)

	balances, err := resolver.GetBalances(context.Background(), evm.Ethereum, tok, holders)
	require.NoError(err)
	require.Equal([]float64{10, 0}, balances)
}

func TestResolverSpecialWithoutID(t *testing.T) {
	require := require.New(t)

	tok := Token{
		Standard: token.Special,
		Address:  mustAddress(t, tokenStr),
	}
	node := &fakeNode{t: t, handle: func(string, string) string {
		t.Error("no call expected")
		return "0x"
	}}
	resolver := newTestResolver(t, node)

	balances, err := resolver.GetBalances(context.Background(), evm.Ethereum, tok, []evm.Address{
		mustAddress(t, holder1Str),
		mustAddress(t, holder2Str),
	})
	require.NoError(err)
	require.Equal([]float64{0, 0}, balances)
	require.Zero(node.requests.Load())
}

func TestResolverUnsupportedChain(t *testing.T) {
	resolver, err := NewResolver(logging.NoLog, nil, nil, nil)
	require.NoError(t, err)

	_, err = resolver.GetBalances(context.Background(), evm.Polygon, Token{Standard: token.Native}, nil)
	require.ErrorIs(t, err, evm.ErrUnsupportedChain)
}

func TestResolverUpstreamError(t *testing.T) {
	require := require.New(t)

	tok := Token{
		Standard: token.Fungible,
		Address:  mustAddress(t, tokenStr),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"error":{"code":3,"message":"execution reverted"}}`)
	}))
	t.Cleanup(server.Close)

	resolver, err := NewResolver(logging.NoLog, evm.Providers{
		evm.Ethereum: {
			RPCURL:    server.URL,
			Multicall: mustAddress(t, multicallStr),
		},
	}, nil, prometheus.NewRegistry())
	require.NoError(err)

	_, err = resolver.GetBalances(context.Background(), evm.Ethereum, tok, []evm.Address{mustAddress(t, holder1Str)})
	require.ErrorContains(err, "cannot fetch decimals")
	require.ErrorContains(err, "execution reverted")
}

func newHealthTestResolver(t *testing.T, chain evm.Chain, uri string) *Resolver {
	resolver, err := NewResolver(logging.NoLog, evm.Providers{
		chain: {
			RPCURL:    uri,
			Multicall: mustAddress(t, multicallStr),
		},
	}, nil, prometheus.NewRegistry())
	require.NoError(t, err)
	return resolver
}

func TestResolverHealthCheck(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     uint64 `json:"id"`
		}
		require.NoError(json.NewDecoder(r.Body).Decode(&req))
		require.Equal("eth_chainId", req.Method)
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":"0x1"}`, req.ID)
	}))
	t.Cleanup(server.Close)

	resolver := newHealthTestResolver(t, evm.Ethereum, server.URL)

	details, err := resolver.HealthCheck(context.Background())
	require.NoError(err)
	require.Equal(map[string]interface{}{
		"ethereum": uint64(1),
	}, details)
}

func TestResolverHealthCheckWrongChain(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":"0x89"}`)
	}))
	t.Cleanup(server.Close)

	resolver := newHealthTestResolver(t, evm.Ethereum, server.URL)

	details, err := resolver.HealthCheck(context.Background())
	require.ErrorContains(err, "ethereum endpoint reports chain id 137")
	require.Equal(map[string]interface{}{
		"ethereum": uint64(137),
	}, details)
}

func TestResolverHealthCheckUnreachable(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	resolver := newHealthTestResolver(t, evm.Ethereum, server.URL)

	_, err := resolver.HealthCheck(context.Background())
	require.ErrorContains(err, "ethereum endpoint is unreachable")
}
