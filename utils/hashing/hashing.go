// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

import (
	"github.com/spaolacci/murmur3"
)

// hashDivisor is the smallest prime larger than MaxUint64. Dividing a 64 bit
// hash by it maps the hash into [0, 1) without collapsing any of its values.
const hashDivisor = float64(1<<64 + 13)

// HashToUnit deterministically maps [s] into [0, 1).
//
// Access conditions store the hash of an expected value rather than the value
// itself, so membership checks against third-party responses never persist
// the raw response contents. Comparisons between stored and freshly computed
// hashes use exact float equality, which is sound because both sides are
// produced by this one function.
func HashToUnit(s string) float64 {
	return float64(murmur3.Sum64([]byte(s))) / hashDivisor
}
