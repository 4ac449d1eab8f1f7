// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package balance

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"net/http"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/tokengate/api/health"
	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/evm/calldata"
	"github.com/ava-labs/tokengate/evm/rpc"
	"github.com/ava-labs/tokengate/token"
	"github.com/ava-labs/tokengate/utils/logging"
)

const (
	// nativeDecimals is the wei scale of the chains' own coins.
	nativeDecimals = 18

	// decimalsCacheSize bounds the cached (chain, token) decimal counts.
	// Decimals are a contract constant, so entries never go stale.
	decimalsCacheSize = 1024
)

var (
	_ Source         = (*Resolver)(nil)
	_ health.Checker = (*Resolver)(nil)
)

type decimalsKey struct {
	chain evm.Chain
	token evm.Address
}

// Resolver answers balance queries by calling the chains' JSON-RPC nodes
// directly. Batched lookups are routed through each chain's multicall
// aggregator so that a batch costs one round trip regardless of the number
// of holders.
type Resolver struct {
	log       logging.Logger
	providers evm.Providers
	clients   map[evm.Chain]rpc.Client
	decimals  *lru.Cache
}

// NewResolver returns a resolver calling the nodes in [providers] through
// [httpClient]. A nil [httpClient] falls back to http.DefaultClient and a
// nil [registerer] keeps the per-chain client metrics private.
func NewResolver(log logging.Logger, providers evm.Providers, httpClient *http.Client, registerer prometheus.Registerer) (*Resolver, error) {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	cache, err := lru.New(decimalsCacheSize)
	if err != nil {
		return nil, err
	}

	clients := make(map[evm.Chain]rpc.Client, len(providers))
	for chain, provider := range providers {
		client, err := rpc.NewMeteredClient(
			provider.RPCURL,
			httpClient,
			fmt.Sprintf("rpc_%s", chain),
			registerer,
		)
		if err != nil {
			return nil, fmt.Errorf("cannot register %s client metrics: %w", chain, err)
		}
		clients[chain] = client
	}
	return &Resolver{
		log:       log,
		providers: providers,
		clients:   clients,
		decimals:  cache,
	}, nil
}

func (r *Resolver) GetBalances(ctx context.Context, chain evm.Chain, tok Token, holders []evm.Address) ([]float64, error) {
	provider, err := r.providers.Provider(chain)
	if err != nil {
		return nil, err
	}
	if len(holders) == 0 {
		return nil, nil
	}

	r.log.Debug("resolving balances",
		zap.Stringer("chain", chain),
		zap.Stringer("token", tok),
		zap.Int("holders", len(holders)),
	)

	client := r.clients[chain]
	switch tok.Standard {
	case token.Native:
		return r.nativeBalances(ctx, client, provider, holders)
	case token.Fungible:
		return r.fungibleBalances(ctx, client, provider, chain, tok.Address, holders)
	case token.NonFungible:
		if tok.ID != nil {
			return r.ownership(ctx, client, tok, holders)
		}
		return r.tokenCounts(ctx, client, provider, tok.Address, holders)
	case token.Special:
		if tok.ID == nil {
			// Enumerating every id a holder owns needs an indexer; a bare
			// node can't answer it, so the count is zero.
			return make([]float64, len(holders)), nil
		}
		return r.specialBalances(ctx, client, tok, holders)
	default:
		return nil, fmt.Errorf("unsupported token standard: %s", tok.Standard)
	}
}

// HealthCheck reports whether every configured endpoint is reachable and is
// actually serving the chain it is registered under. The details map one
// entry per chain to the chain id the endpoint reported, or to the error
// that kept it from answering.
func (r *Resolver) HealthCheck(ctx context.Context) (interface{}, error) {
	details := make(map[string]interface{}, len(r.clients))
	var errorReasons []string
	for chain, client := range r.clients {
		reported, err := client.ChainID(ctx)
		if err != nil {
			details[chain.String()] = err.Error()
			errorReasons = append(errorReasons, fmt.Sprintf("%s endpoint is unreachable: %s", chain, err))
			continue
		}
		details[chain.String()] = reported
		if reported != uint64(chain) {
			errorReasons = append(errorReasons, fmt.Sprintf("%s endpoint reports chain id %d", chain, reported))
		}
	}
	if len(errorReasons) > 0 {
		return details, fmt.Errorf("provider directory is unhealthy reason: %s", strings.Join(errorReasons, ", "))
	}
	return details, nil
}

// aggregate batches [calls] through the chain's multicall contract and
// decodes one result word per call.
func (r *Resolver) aggregate(ctx context.Context, client rpc.Client, multicall evm.Address, calls []calldata.Call) ([]*big.Int, error) {
	data, err := calldata.Aggregate(calls)
	if err != nil {
		return nil, err
	}
	raw, err := client.EthCall(ctx, calldata.Call{
		Target: multicall,
		Data:   data,
	})
	if err != nil {
		return nil, err
	}
	return calldata.ParseMulticallResult(raw, len(calls)), nil
}

func (r *Resolver) nativeBalances(ctx context.Context, client rpc.Client, provider evm.Provider, holders []evm.Address) ([]float64, error) {
	calls := make([]calldata.Call, len(holders))
	for i, holder := range holders {
		calls[i] = calldata.Call{
			Target: provider.Multicall,
			Data:   calldata.EthBalance(holder),
		}
	}
	raws, err := r.aggregate(ctx, client, provider.Multicall, calls)
	if err != nil {
		return nil, err
	}
	return normalizeAll(raws, nativeDecimals), nil
}

func (r *Resolver) fungibleBalances(ctx context.Context, client rpc.Client, provider evm.Provider, chain evm.Chain, tokenAddr evm.Address, holders []evm.Address) ([]float64, error) {
	decimals, err := r.tokenDecimals(ctx, client, chain, tokenAddr)
	if err != nil {
		return nil, err
	}

	calls := make([]calldata.Call, len(holders))
	for i, holder := range holders {
		calls[i] = calldata.Call{
			Target: tokenAddr,
			Data:   calldata.BalanceOf(holder),
		}
	}
	raws, err := r.aggregate(ctx, client, provider.Multicall, calls)
	if err != nil {
		return nil, err
	}
	return normalizeAll(raws, decimals), nil
}

// tokenCounts returns raw balanceOf counts, the non-fungible balance when no
// specific token id is requested.
func (r *Resolver) tokenCounts(ctx context.Context, client rpc.Client, provider evm.Provider, tokenAddr evm.Address, holders []evm.Address) ([]float64, error) {
	calls := make([]calldata.Call, len(holders))
	for i, holder := range holders {
		calls[i] = calldata.Call{
			Target: tokenAddr,
			Data:   calldata.BalanceOf(holder),
		}
	}
	raws, err := r.aggregate(ctx, client, provider.Multicall, calls)
	if err != nil {
		return nil, err
	}
	return counts(raws), nil
}

// ownership resolves a non-fungible balance pinned to one token id: every
// holder either owns that id or doesn't, so one ownerOf call answers the
// whole batch with 1 for the owner and 0 for everyone else.
func (r *Resolver) ownership(ctx context.Context, client rpc.Client, tok Token, holders []evm.Address) ([]float64, error) {
	raw, err := client.EthCall(ctx, calldata.Call{
		Target: tok.Address,
		Data:   calldata.OwnerOf(tok.ID),
	})
	if err != nil {
		return nil, err
	}
	owner, err := calldata.ParseOwner(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot decode owner of %s: %w", tok, err)
	}

	out := make([]float64, len(holders))
	for i, holder := range holders {
		if holder == owner {
			out[i] = 1
		}
	}
	return out, nil
}

// specialBalances queries one ERC-1155 id across all holders with a single
// balanceOfBatch call sent straight to the token contract; the deployed
// aggregators aren't assumed to support it.
func (r *Resolver) specialBalances(ctx context.Context, client rpc.Client, tok Token, holders []evm.Address) ([]float64, error) {
	raw, err := client.EthCall(ctx, calldata.Call{
		Target: tok.Address,
		Data:   calldata.ERC1155BalanceOfBatch(holders, tok.ID),
	})
	if err != nil {
		return nil, err
	}
	return counts(calldata.ParseMulticallResult(raw, len(holders))), nil
}

func (r *Resolver) tokenDecimals(ctx context.Context, client rpc.Client, chain evm.Chain, tokenAddr evm.Address) (uint8, error) {
	key := decimalsKey{
		chain: chain,
		token: tokenAddr,
	}
	if cached, ok := r.decimals.Get(key); ok {
		return cached.(uint8), nil
	}

	raw, err := client.EthCall(ctx, calldata.Call{
		Target: tokenAddr,
		Data:   calldata.Decimals(),
	})
	if err != nil {
		return 0, fmt.Errorf("cannot fetch decimals of %s: %w", tokenAddr, err)
	}
	parsed, err := calldata.ParseWord(raw)
	if err != nil {
		return 0, fmt.Errorf("cannot decode decimals of %s: %w", tokenAddr, err)
	}
	if !parsed.IsUint64() || parsed.Uint64() > math.MaxUint8 {
		return 0, fmt.Errorf("implausible decimal count %s reported by %s", parsed, tokenAddr)
	}

	decimals := uint8(parsed.Uint64())
	r.decimals.Add(key, decimals)
	r.log.Verbo("fetched token decimals",
		zap.Stringer("chain", chain),
		zap.Stringer("token", tokenAddr),
		zap.Uint8("decimals", decimals),
	)
	return decimals, nil
}

// normalize scales a raw integer amount down by 10^decimals.
func normalize(raw *big.Int, decimals uint8) float64 {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(raw),
		new(big.Float).SetInt(scale),
	).Float64()
	return f
}

func normalizeAll(raws []*big.Int, decimals uint8) []float64 {
	out := make([]float64, len(raws))
	for i, raw := range raws {
		out[i] = normalize(raw, decimals)
	}
	return out
}

func counts(raws []*big.Int) []float64 {
	out := make([]float64, len(raws))
	for i, raw := range raws {
		f, _ := new(big.Float).SetInt(raw).Float64()
		out[i] = f
	}
	return out
}
