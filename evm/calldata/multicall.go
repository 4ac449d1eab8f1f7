// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package calldata

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ava-labs/tokengate/evm"
)

// aggregateSelector is the multicall contract's aggregate((address,bytes)[])
// entry point.
const aggregateSelector = "252dba42"

const (
	// headerWords is the number of leading words in an aggregate response
	// before the per-call results begin.
	headerWords = 2

	// dataPartLen is the number of bytes reserved for each aggregated call's
	// own calldata. Every supported query fits in 64 bytes (selector plus at
	// most one argument word), and deployed aggregators expect this fixed
	// tuple shape.
	dataPartLen = 64
)

var (
	errCallDataTooLong = errors.New("calldata exceeds the aggregate data part")
	errOddCallData     = errors.New("calldata is not a whole number of bytes")
)

// Call couples a target contract with the calldata to send it.
type Call struct {
	Target evm.Address
	Data   string
}

// Aggregate batches [calls] into a single multicall aggregate payload. The
// layout must be reproduced bit for bit to interoperate with the deployed
// aggregator contracts: selector, array offset word, element count, one head
// offset word per call, then per call the target address word, the fixed
// data part offset, the actual data length and the calldata right-padded
// with zero bytes to the fixed data part size.
func Aggregate(calls []Call) (string, error) {
	var sb strings.Builder
	sb.WriteString(aggregateSelector)
	sb.WriteString(word(32))
	sb.WriteString(word(uint64(len(calls))))

	factor := len(calls)
	for range calls {
		sb.WriteString(word(uint64(factor * 32)))
		factor += 5
	}

	for _, call := range calls {
		if len(call.Data)%2 != 0 {
			return "", fmt.Errorf("%w: %d hex chars", errOddCallData, len(call.Data))
		}
		dataLen := len(call.Data) / 2
		if dataLen > dataPartLen {
			return "", fmt.Errorf("%w: %d bytes", errCallDataTooLong, dataLen)
		}

		sb.WriteString(addressWord(call.Target))
		sb.WriteString(word(dataPartLen))
		sb.WriteString(word(uint64(dataLen)))
		sb.WriteString(call.Data)
		sb.WriteString(strings.Repeat("0", (dataPartLen-dataLen)*2))
	}
	return sb.String(), nil
}

// ParseMulticallResult decodes the response to an aggregate (or other
// batched balance) call into [n] values. The response is read in 32 byte
// words: two header words followed by one word per call. Words that are
// missing or fail to decode yield zero rather than an error, since nodes
// return short data when a sub-call reverts and a reverted lookup means an
// empty balance, not a failure.
func ParseMulticallResult(raw string, n int) []*big.Int {
	trimmed := strings.TrimPrefix(raw, "0x")

	balances := make([]*big.Int, n)
	for i := range balances {
		start := (headerWords + i) * wordHexLen
		end := start + wordHexLen
		if start > len(trimmed) {
			start = len(trimmed)
		}
		if end > len(trimmed) {
			end = len(trimmed)
		}
		// SetString accepts a sign prefix, which a well formed word never
		// carries; treat negative parses as malformed.
		v, ok := new(big.Int).SetString(trimmed[start:end], 16)
		if !ok || v.Sign() < 0 {
			v = new(big.Int)
		}
		balances[i] = v
	}
	return balances
}
