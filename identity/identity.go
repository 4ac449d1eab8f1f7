// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package identity models the external accounts a user can attach: EVM
// wallets, Solana accounts and numeric chat-platform IDs.
package identity

import (
	"fmt"
	"strconv"

	"github.com/ava-labs/tokengate/evm"
)

// Kind discriminates the supported identity platforms.
type Kind uint8

const (
	EvmAddress Kind = iota
	SolAccount
	Telegram
	Discord
)

const (
	evmAddressStr = "evm_address"
	solAccountStr = "sol_account"
	telegramStr   = "telegram"
	discordStr    = "discord"
)

func (k Kind) String() string {
	switch k {
	case EvmAddress:
		return evmAddressStr
	case SolAccount:
		return solAccountStr
	case Telegram:
		return telegramStr
	case Discord:
		return discordStr
	default:
		return "unknown"
	}
}

// ToKind is the inverse of Kind.String().
func ToKind(s string) (Kind, error) {
	switch s {
	case evmAddressStr:
		return EvmAddress, nil
	case solAccountStr:
		return SolAccount, nil
	case telegramStr:
		return Telegram, nil
	case discordStr:
		return Discord, nil
	default:
		return 0, fmt.Errorf("unknown identity kind: %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	kind, err := ToKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Identity is one external account attached to a user. Value holds the
// address or account string for the wallet kinds and the decimal platform ID
// for the chat kinds. Identities are immutable once attached.
type Identity struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// Verify checks that Value is well formed for the identity's kind.
func (i Identity) Verify() error {
	switch i.Kind {
	case EvmAddress:
		if _, err := evm.AddressFromString(i.Value); err != nil {
			return fmt.Errorf("invalid %s identity: %w", i.Kind, err)
		}
	case Telegram, Discord:
		if _, err := strconv.ParseUint(i.Value, 10, 64); err != nil {
			return fmt.Errorf("invalid %s identity %q: expected a numeric platform ID", i.Kind, i.Value)
		}
	case SolAccount:
		if i.Value == "" {
			return fmt.Errorf("invalid %s identity: empty account", i.Kind)
		}
	}
	return nil
}

// User couples an opaque identifier with the identities attached to it. The
// engine only ever reads users; creating and persisting them is the caller's
// concern.
type User struct {
	ID         uint64     `json:"id"`
	Identities []Identity `json:"identities"`
}

// IdentitiesOf returns the values of the user's identities of [kind], in
// attachment order. A user may hold several identities of the same kind.
func (u *User) IdentitiesOf(kind Kind) []string {
	var values []string
	for _, id := range u.Identities {
		if id.Kind == kind {
			values = append(values, id.Value)
		}
	}
	return values
}

// Verify checks every identity attached to the user.
func (u *User) Verify() error {
	for _, id := range u.Identities {
		if err := id.Verify(); err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	return nil
}
