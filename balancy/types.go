// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package balancy

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ava-labs/tokengate/evm"
)

// hexInt decodes the 0x-hex quantity encoding the indexer uses for amounts
// and token ids.
type hexInt big.Int

func (h *hexInt) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// SetString accepts a sign prefix, which a quantity never carries.
	v, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("cannot decode quantity %q", s)
	}
	*h = hexInt(*v)
	return nil
}

func (h *hexInt) Big() *big.Int {
	return (*big.Int)(h)
}

type response[T any] struct {
	Result []T `json:"result"`
}

type erc20Holding struct {
	TokenAddress evm.Address `json:"tokenAddress"`
	Amount       hexInt      `json:"amount"`
}

type erc721Holding struct {
	TokenAddress evm.Address `json:"tokenAddress"`
	TokenID      hexInt      `json:"tokenId"`
}

type erc1155Holding struct {
	TokenAddress evm.Address `json:"tokenAddress"`
	TokenID      hexInt      `json:"tokenId"`
	Amount       hexInt      `json:"amount"`
}
