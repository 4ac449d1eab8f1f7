// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package balance resolves token balances for batches of holders.
//
// The package defines the querying contract shared by every balance backend:
// the node-backed Resolver, the indexed-API client and the per-chain Mux all
// answer (chain, token, holders) with one normalized balance per holder.
package balance

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/token"
)

var errBadTokenID = errors.New("cannot parse token id")

// Source answers balance queries for batches of holders. Implementations
// return one balance per holder, in holder order.
type Source interface {
	GetBalances(ctx context.Context, chain evm.Chain, tok Token, holders []evm.Address) ([]float64, error)
}

// Token is the binary-typed form of token.Type used on the resolving side.
// ID is nil when the query isn't pinned to one specific token id.
type Token struct {
	Standard token.Standard
	Address  evm.Address
	ID       *big.Int
}

// ParseToken converts the string-typed configuration form into the resolving
// form, decoding the contract address from hex and the token id from its
// decimal representation.
func ParseToken(t token.Type) (Token, error) {
	if err := t.Verify(); err != nil {
		return Token{}, err
	}

	parsed := Token{
		Standard: t.Standard,
	}
	if t.Address != "" {
		addr, err := evm.AddressFromString(t.Address)
		if err != nil {
			return Token{}, fmt.Errorf("cannot parse token address %q: %w", t.Address, err)
		}
		parsed.Address = addr
	}
	if t.HasID() {
		id, ok := new(big.Int).SetString(t.ID, 10)
		if !ok || id.Sign() < 0 {
			return Token{}, fmt.Errorf("%w: %q", errBadTokenID, t.ID)
		}
		parsed.ID = id
	}
	return parsed, nil
}

func (t Token) String() string {
	switch {
	case t.Standard == token.Native:
		return t.Standard.String()
	case t.ID != nil:
		return fmt.Sprintf("%s %s id %s", t.Standard, t.Address, t.ID)
	default:
		return fmt.Sprintf("%s %s", t.Standard, t.Address)
	}
}
