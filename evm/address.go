// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLen is the number of bytes in an EVM account address.
const AddressLen = 20

// AddressEmpty is a useful all zero value
var AddressEmpty = Address{}

// Address is a 20 byte EVM account address.
type Address [AddressLen]byte

// ToAddress attempts to convert a byte slice into an address.
func ToAddress(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return Address{}, fmt.Errorf("expected %d bytes but got %d", AddressLen, len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// AddressFromString is the inverse of Address.String(). The 0x prefix is
// optional and hex digits may be in either case.
func AddressFromString(s string) (Address, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return Address{}, fmt.Errorf("cannot parse address %q: %w", s, err)
	}
	return ToAddress(b)
}

// Bytes returns the 20 byte address as a slice. It is assumed this slice is
// not modified.
func (addr Address) Bytes() []byte {
	return addr[:]
}

// Hex returns a hex encoded string of this address, without the 0x prefix.
func (addr Address) Hex() string {
	return hex.EncodeToString(addr[:])
}

func (addr Address) String() string {
	return "0x" + addr.Hex()
}

func (addr Address) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

func (addr *Address) UnmarshalText(b []byte) error {
	parsed, err := AddressFromString(string(b))
	if err != nil {
		return err
	}
	*addr = parsed
	return nil
}
