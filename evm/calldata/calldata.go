// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package calldata builds and parses the hex payloads of eth_call balance
// queries, one encoder per supported contract entry point. All calldata is
// handled as hex strings without the 0x prefix; scalar arguments occupy one
// 32 byte big endian word each, with addresses in the low 20 bytes of their
// word.
package calldata

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ava-labs/tokengate/evm"
)

// 4-byte selectors of the supported contract entry points.
const (
	decimalsSelector     = "313ce567" // decimals()
	ethBalanceSelector   = "4d2301cc" // getEthBalance(address)
	balanceOfSelector    = "70a08231" // balanceOf(address)
	ownerOfSelector      = "6352211e" // ownerOf(uint256)
	erc1155Selector      = "00fdd58e" // balanceOf(address,uint256)
	erc1155BatchSelector = "4e1273f4" // balanceOfBatch(address[],uint256[])
)

const (
	// wordHexLen is the length of one 32 byte word in hex characters.
	wordHexLen = 64

	// addressPadding left-pads a 20 byte address to a full word.
	addressPadding = "000000000000000000000000"
)

var (
	errResultTooLong = errors.New("result exceeds one word")
	errShortResult   = errors.New("result is shorter than one word")
)

func word(x uint64) string {
	return fmt.Sprintf("%064x", x)
}

func bigWord(x *big.Int) string {
	return fmt.Sprintf("%064x", x)
}

func addressWord(addr evm.Address) string {
	return addressPadding + addr.Hex()
}

// Decimals queries an ERC-20 contract's decimal count. The call takes no
// arguments, so the calldata is the bare selector.
func Decimals() string {
	return decimalsSelector
}

// EthBalance queries a holder's native coin balance through the multicall
// contract's getEthBalance helper.
func EthBalance(holder evm.Address) string {
	return ethBalanceSelector + addressWord(holder)
}

// BalanceOf queries a holder's ERC-20 or ERC-721 balance; both standards
// share the balanceOf(address) entry point.
func BalanceOf(holder evm.Address) string {
	return balanceOfSelector + addressWord(holder)
}

// OwnerOf queries the current owner of an ERC-721 token id.
func OwnerOf(id *big.Int) string {
	return ownerOfSelector + bigWord(id)
}

// ERC1155BalanceOf queries a holder's balance of one ERC-1155 token id.
func ERC1155BalanceOf(holder evm.Address, id *big.Int) string {
	return erc1155Selector + addressWord(holder) + bigWord(id)
}

// ERC1155BalanceOfBatch builds the balanceOfBatch calldata querying a single
// token id across many holders. The two dynamic arrays are laid out head
// first: the offset of the address array, the offset of the id array, then
// each array as an element count followed by its words, with the id
// replicated once per holder.
func ERC1155BalanceOfBatch(holders []evm.Address, id *big.Int) string {
	count := len(holders)

	var sb strings.Builder
	sb.WriteString(erc1155BatchSelector)
	sb.WriteString(word(2 * 32))
	sb.WriteString(word(uint64((count + 3) * 32)))
	sb.WriteString(word(uint64(count)))
	for _, holder := range holders {
		sb.WriteString(addressWord(holder))
	}
	sb.WriteString(word(uint64(count)))
	idWord := bigWord(id)
	for i := 0; i < count; i++ {
		sb.WriteString(idWord)
	}
	return sb.String()
}

// ParseWord decodes a single-word eth_call result into an unsigned integer.
func ParseWord(raw string) (*big.Int, error) {
	trimmed := strings.TrimPrefix(raw, "0x")
	if trimmed == "" {
		return nil, errShortResult
	}
	if len(trimmed) > wordHexLen {
		return nil, fmt.Errorf("%w: %d hex chars", errResultTooLong, len(trimmed))
	}
	v, ok := new(big.Int).SetString(trimmed, 16)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("cannot decode result %q", raw)
	}
	return v, nil
}

// ParseOwner decodes an ownerOf result, returning the address in the low 20
// bytes of the returned word.
func ParseOwner(raw string) (evm.Address, error) {
	trimmed := strings.TrimPrefix(raw, "0x")
	if len(trimmed) < wordHexLen {
		return evm.Address{}, errShortResult
	}
	return evm.AddressFromString(trimmed[wordHexLen-2*evm.AddressLen : wordHexLen])
}
