// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package balance

import (
	"context"

	"github.com/ava-labs/tokengate/evm"
)

var _ Source = (*Mux)(nil)

// Mux routes balance queries to a per-chain source, falling back to a
// default for every other chain. It lets an indexed API stand in for direct
// node calls one chain at a time.
type Mux struct {
	fallback Source
	byChain  map[evm.Chain]Source
}

func NewMux(fallback Source, byChain map[evm.Chain]Source) *Mux {
	return &Mux{
		fallback: fallback,
		byChain:  byChain,
	}
}

func (m *Mux) GetBalances(ctx context.Context, chain evm.Chain, tok Token, holders []evm.Address) ([]float64, error) {
	if source, ok := m.byChain[chain]; ok {
		return source.GetBalances(ctx, chain, tok, holders)
	}
	return m.fallback.GetBalances(ctx, chain, tok, holders)
}
