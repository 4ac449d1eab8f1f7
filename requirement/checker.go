// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requirement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/evm/balance"
	"github.com/ava-labs/tokengate/relation"
	"github.com/ava-labs/tokengate/utils/hashing"
	"github.com/ava-labs/tokengate/utils/logging"

	utilsrpc "github.com/ava-labs/tokengate/utils/rpc"
)

// Checker evaluates requirements against identities. It holds the balance
// backend and the HTTP client the checks share; the requirements themselves
// stay plain data.
type Checker struct {
	log    logging.Logger
	source balance.Source
	client *http.Client
}

func NewChecker(log logging.Logger, source balance.Source, client *http.Client) *Checker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Checker{
		log:    log,
		source: source,
		client: client,
	}
}

// Check evaluates [req] for a single identity value.
func (c *Checker) Check(ctx context.Context, req *Requirement, identityValue string) (bool, error) {
	results, err := c.CheckBatch(ctx, req, []string{identityValue})
	if err != nil {
		return false, err
	}
	return results[0], nil
}

// CheckBatch evaluates [req] for every identity value, returning one result
// per input in input order. Balance requirements resolve the whole batch in
// one querier call; remote requirements fan out one request per identity
// and join.
func (c *Checker) CheckBatch(ctx context.Context, req *Requirement, identities []string) ([]bool, error) {
	c.log.Debug("checking requirement",
		zap.Stringer("type", req.Type),
		zap.Int("identities", len(identities)),
	)

	switch req.Type {
	case EVMBalance:
		return c.checkBalances(ctx, req, identities)
	case Remote:
		results := make([]bool, len(identities))
		eg, egCtx := errgroup.WithContext(ctx)
		for i, identityValue := range identities {
			i, identityValue := i, identityValue
			eg.Go(func() error {
				ok, err := c.checkRemote(egCtx, req, identityValue)
				if err != nil {
					return err
				}
				results[i] = ok
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	default:
		return nil, fmt.Errorf("unknown requirement type: %d", req.Type)
	}
}

func (c *Checker) checkBalances(ctx context.Context, req *Requirement, identities []string) ([]bool, error) {
	params := req.Balance
	tok, err := balance.ParseToken(params.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConversion, err)
	}

	holders := make([]evm.Address, len(identities))
	for i, identityValue := range identities {
		holder, err := evm.AddressFromString(identityValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConversion, err)
		}
		holders[i] = holder
	}

	balances, err := c.source.GetBalances(ctx, params.Chain, tok, holders)
	if err != nil {
		return nil, err
	}

	results := make([]bool, len(balances))
	for i, b := range balances {
		results[i] = req.Relation.Assert(b)
	}
	return results, nil
}

func (c *Checker) checkRemote(ctx context.Context, req *Requirement, identityValue string) (bool, error) {
	params := req.Remote

	url := params.URL
	if params.Param != "" {
		url = fmt.Sprintf("%s?%s=%s", url, params.Param, identityValue)
	}

	var body io.Reader
	if len(params.Body) > 0 {
		body = bytes.NewReader(params.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, params.method(), url, body)
	if err != nil {
		return false, err
	}
	if len(params.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if params.Auth != "" {
		httpReq.Header.Set("Authorization", "Bearer "+params.Auth)
	}

	//nolint:bodyclose // body is closed via CleanlyCloseBody
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return false, err
	}
	defer utilsrpc.CleanlyCloseBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("received status code: %d", resp.StatusCode)
	}

	var result interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("cannot decode response: %w", err)
	}
	return compare(req.Relation, walk(result, params.Path)), nil
}

// walk follows [path] into a decoded JSON document. Anything the path fails
// to reach is nil, which compares as no access.
func walk(value interface{}, path []interface{}) interface{} {
	current := value
	for _, elem := range path {
		switch key := elem.(type) {
		case string:
			obj, ok := current.(map[string]interface{})
			if !ok {
				return nil
			}
			current = obj[key]
		case int:
			current = index(current, key)
		case float64:
			current = index(current, int(key))
		default:
			return nil
		}
	}
	return current
}

func index(value interface{}, i int) interface{} {
	arr, ok := value.([]interface{})
	if !ok || i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

// compare applies [rel] to the value a remote check found:
//   - arrays answer equality checks by hashing each element's JSON encoding
//     against the target; any other relation passes on presence alone
//   - booleans coerce to 1 and 0
//   - strings compare through their deterministic unit hash
//   - anything else carries no access
func compare(rel relation.Relation[float64], value interface{}) bool {
	switch v := value.(type) {
	case []interface{}:
		if rel.Op != relation.EqualTo {
			return true
		}
		for _, item := range v {
			encoded, err := json.Marshal(item)
			if err != nil {
				continue
			}
			if hashing.HashToUnit(string(encoded)) == rel.Value {
				return true
			}
		}
		return false
	case bool:
		if v {
			return rel.Assert(1)
		}
		return rel.Assert(0)
	case float64:
		return rel.Assert(v)
	case string:
		return rel.Assert(hashing.HashToUnit(v))
	default:
		return false
	}
}
