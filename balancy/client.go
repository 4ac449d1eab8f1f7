// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package balancy queries an indexed token API instead of chain nodes. It
// serves the same balance.Source contract as the direct resolver and can
// stand in for it chain by chain, with two preserved differences: fungible
// amounts are returned raw (never scaled by decimals), and per-holder
// lookup failures count as a zero balance instead of failing the batch.
package balancy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/evm/balance"
	"github.com/ava-labs/tokengate/token"
	"github.com/ava-labs/tokengate/utils/logging"
	"github.com/ava-labs/tokengate/utils/set"

	utilsrpc "github.com/ava-labs/tokengate/utils/rpc"
)

// DefaultBaseURL is the hosted indexer deployment.
const DefaultBaseURL = "https://balancy.guild.xyz/api"

var (
	_ balance.Source = (*Client)(nil)

	ErrChainNotSupported     = errors.New("chain not supported by the indexer")
	ErrTokenTypeNotSupported = errors.New("token type not supported by the indexer")
	ErrInvalidRequest        = errors.New("indexer rejected the request")
	ErrTooManyRequests       = errors.New("indexer rate limit hit")

	// supportedChains is the indexer's chain allow-list. Queries against any
	// other chain fail fast without a call.
	supportedChains = set.Of(evm.Ethereum, evm.Bsc, evm.Gnosis, evm.Polygon)
)

// UnknownStatusError reports a status the indexer isn't documented to return.
type UnknownStatusError struct {
	Status int
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unexpected status code from the indexer: %d", e.Status)
}

// Client resolves balances through the indexer's addressTokens queries.
type Client struct {
	log     logging.Logger
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the indexer deployment at [baseURL] issuing
// its requests through [httpClient]. A nil [httpClient] falls back to
// http.DefaultClient.
func NewClient(log logging.Logger, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		log:     log,
		baseURL: baseURL,
		client:  httpClient,
	}
}

func (c *Client) GetBalances(ctx context.Context, chain evm.Chain, tok balance.Token, holders []evm.Address) ([]float64, error) {
	if tok.Standard == token.Native {
		return nil, fmt.Errorf("%w: %s", ErrTokenTypeNotSupported, tok.Standard)
	}
	if !supportedChains.Contains(chain) {
		return nil, fmt.Errorf("%w: %s", ErrChainNotSupported, chain)
	}

	balances := make([]float64, len(holders))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, holder := range holders {
		i, holder := i, holder
		eg.Go(func() error {
			amount, err := c.balance(egCtx, chain, tok, holder)
			if err != nil {
				// One throttled or misindexed holder must not fail the
				// group; its balance reads as zero.
				c.log.Debug("indexer lookup failed",
					zap.Stringer("chain", chain),
					zap.Stringer("holder", holder),
					zap.Error(err),
				)
				return nil
			}
			balances[i] = amount
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return balances, nil
}

func (c *Client) balance(ctx context.Context, chain evm.Chain, tok balance.Token, holder evm.Address) (float64, error) {
	switch tok.Standard {
	case token.Fungible:
		holdings, err := fetch[erc20Holding](ctx, c, "erc20", chain, holder)
		if err != nil {
			return 0, err
		}
		for i := range holdings {
			if holdings[i].TokenAddress == tok.Address {
				return toFloat(holdings[i].Amount.Big()), nil
			}
		}
		return 0, nil

	case token.NonFungible:
		holdings, err := fetch[erc721Holding](ctx, c, "erc721", chain, holder)
		if err != nil {
			return 0, err
		}
		count := 0
		for i := range holdings {
			if holdings[i].TokenAddress == tok.Address && matchesID(holdings[i].TokenID.Big(), tok.ID) {
				count++
			}
		}
		return float64(count), nil

	case token.Special:
		holdings, err := fetch[erc1155Holding](ctx, c, "erc1155", chain, holder)
		if err != nil {
			return 0, err
		}
		sum := new(big.Int)
		for i := range holdings {
			if holdings[i].TokenAddress == tok.Address && matchesID(holdings[i].TokenID.Big(), tok.ID) {
				sum.Add(sum, holdings[i].Amount.Big())
			}
		}
		return toFloat(sum), nil

	default:
		return 0, fmt.Errorf("%w: %s", ErrTokenTypeNotSupported, tok.Standard)
	}
}

// fetch issues one addressTokens query for [standard], the URL path segment
// naming the token standard.
func fetch[T any](ctx context.Context, c *Client, standard string, chain evm.Chain, holder evm.Address) ([]T, error) {
	url := fmt.Sprintf(
		"%s/%s/addressTokens?address=%s&chain=%d",
		c.baseURL,
		standard,
		holder,
		uint64(chain),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	//nolint:bodyclose // body is closed via CleanlyCloseBody
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer utilsrpc.CleanlyCloseBody(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, ErrInvalidRequest
	case http.StatusTooManyRequests:
		return nil, ErrTooManyRequests
	default:
		return nil, &UnknownStatusError{Status: resp.StatusCode}
	}

	var parsed response[T]
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("cannot decode indexer response: %w", err)
	}
	return parsed.Result, nil
}

func matchesID(held, queried *big.Int) bool {
	return queried == nil || held.Cmp(queried) == 0
}

func toFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
