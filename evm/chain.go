// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import (
	"errors"
	"fmt"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

// Chain is an EVM network identified by its chain ID.
type Chain uint64

const (
	Ethereum Chain = 1
	Goerli   Chain = 5
	Bsc      Chain = 56
	Gnosis   Chain = 100
	Polygon  Chain = 137
)

const (
	ethereumStr = "ethereum"
	goerliStr   = "goerli"
	bscStr      = "bsc"
	gnosisStr   = "gnosis"
	polygonStr  = "polygon"
)

func (c Chain) String() string {
	switch c {
	case Ethereum:
		return ethereumStr
	case Goerli:
		return goerliStr
	case Bsc:
		return bscStr
	case Gnosis:
		return gnosisStr
	case Polygon:
		return polygonStr
	default:
		return fmt.Sprintf("chain-%d", uint64(c))
	}
}

// ToChain is the inverse of Chain.String() for the named networks.
func ToChain(s string) (Chain, error) {
	switch s {
	case ethereumStr:
		return Ethereum, nil
	case goerliStr:
		return Goerli, nil
	case bscStr:
		return Bsc, nil
	case gnosisStr:
		return Gnosis, nil
	case polygonStr:
		return Polygon, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedChain, s)
	}
}

// Provider describes how to reach a chain: the JSON-RPC endpoint to query
// and the multicall aggregator contract deployed on it.
type Provider struct {
	RPCURL    string  `json:"rpcUrl"`
	Multicall Address `json:"multicall"`
}

// Providers maps chains to their providers.
type Providers map[Chain]Provider

// Provider returns the directory entry for [chain].
func (p Providers) Provider(chain Chain) (Provider, error) {
	provider, ok := p[chain]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}
	return provider, nil
}
