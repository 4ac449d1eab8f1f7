// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token describes the assets an access condition can inspect. A
// token type is carried with string-typed fields at this layer; resolvers
// parse the address and id into their own representations on entry.
package token

import (
	"errors"
	"fmt"
)

var (
	errMissingAddress  = errors.New("token type requires a contract address")
	errUnexpectedID    = errors.New("token type does not take a token id")
	errUnexpectedField = errors.New("native token type takes neither address nor id")
)

// Standard enumerates the supported token standards.
type Standard uint8

const (
	// Native is the chain's own coin.
	Native Standard = iota
	// Fungible is an ERC-20 style token.
	Fungible
	// NonFungible is an ERC-721 style token.
	NonFungible
	// Special is an ERC-1155 style semi-fungible token.
	Special
)

const (
	nativeStr      = "native"
	fungibleStr    = "fungible"
	nonFungibleStr = "non_fungible"
	specialStr     = "special"
)

func (s Standard) String() string {
	switch s {
	case Native:
		return nativeStr
	case Fungible:
		return fungibleStr
	case NonFungible:
		return nonFungibleStr
	case Special:
		return specialStr
	default:
		return "unknown"
	}
}

// ToStandard is the inverse of Standard.String(). Unknown tags are an error,
// never a fallback to Native.
func ToStandard(s string) (Standard, error) {
	switch s {
	case nativeStr:
		return Native, nil
	case fungibleStr:
		return Fungible, nil
	case nonFungibleStr:
		return NonFungible, nil
	case specialStr:
		return Special, nil
	default:
		return 0, fmt.Errorf("unknown token standard: %q", s)
	}
}

func (s Standard) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Standard) UnmarshalText(b []byte) error {
	standard, err := ToStandard(string(b))
	if err != nil {
		return err
	}
	*s = standard
	return nil
}

// Type identifies a token on some chain. Address is empty for Native; ID is
// empty when the check isn't pinned to one specific token id.
type Type struct {
	Standard Standard `json:"type"`
	Address  string   `json:"address,omitempty"`
	ID       string   `json:"id,omitempty"`
}

// HasID returns true when the type is pinned to a specific token id.
func (t Type) HasID() bool {
	return t.ID != ""
}

// Verify checks the shape of the type: the contract standards require an
// address, and only the id-bearing standards may carry an id.
func (t Type) Verify() error {
	switch t.Standard {
	case Native:
		if t.Address != "" || t.HasID() {
			return errUnexpectedField
		}
	case Fungible:
		if t.Address == "" {
			return fmt.Errorf("%w: %s", errMissingAddress, t.Standard)
		}
		if t.HasID() {
			return fmt.Errorf("%w: %s", errUnexpectedID, t.Standard)
		}
	case NonFungible, Special:
		if t.Address == "" {
			return fmt.Errorf("%w: %s", errMissingAddress, t.Standard)
		}
	}
	return nil
}

func (t Type) String() string {
	switch {
	case t.Standard == Native:
		return nativeStr
	case t.HasID():
		return fmt.Sprintf("%s %s id %s", t.Standard, t.Address, t.ID)
	default:
		return fmt.Sprintf("%s %s", t.Standard, t.Address)
	}
}
