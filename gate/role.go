// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gate evaluates access roles. A role combines a list of
// requirements through a boolean logic expression; the engine checks a role
// for whole user batches at once, with one upstream round trip per
// requirement rather than one per user.
package gate

import (
	"errors"
	"fmt"

	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/identity"
	"github.com/ava-labs/tokengate/logic"
	"github.com/ava-labs/tokengate/requirement"
	"github.com/ava-labs/tokengate/utils/set"
)

var (
	ErrMissingRequirements = errors.New("role has no requirements")
	ErrTerminalOutOfRange  = errors.New("logic terminal exceeds the requirement count")
)

// Role gates access behind a boolean combination of requirements. Logic is
// an expression over requirement positions, such as "0 AND (1 OR 2)".
// Filter, when present, is a membership pre-check with the final word: a
// user blocked by the filter is denied no matter what the requirements said.
type Role struct {
	ID           string                    `json:"id"`
	Logic        string                    `json:"logic"`
	Requirements []requirement.Requirement `json:"requirements"`
	Filter       *Allowlist                `json:"filter,omitempty"`
}

// Validate checks that the role can be evaluated: the logic expression
// parses, every terminal it references has a requirement at that position,
// and every requirement carries well-formed parameters.
func (r *Role) Validate() error {
	_, err := r.compile()
	return err
}

// compile parses the logic expression once and checks it against the
// requirement list. The engine evaluates the returned tree for every user in
// a batch.
func (r *Role) compile() (*logic.Tree, error) {
	tree, err := logic.Parse(r.Logic)
	if err != nil {
		return nil, fmt.Errorf("role %s: %w", r.ID, err)
	}
	if len(r.Requirements) == 0 {
		return nil, fmt.Errorf("role %s: %w", r.ID, ErrMissingRequirements)
	}
	if max := tree.MaxTerminal(); max >= len(r.Requirements) {
		return nil, fmt.Errorf("role %s: terminal %d with %d requirements: %w",
			r.ID,
			max,
			len(r.Requirements),
			ErrTerminalOutOfRange,
		)
	}
	for i := range r.Requirements {
		if err := r.Requirements[i].Verify(); err != nil {
			return nil, fmt.Errorf("role %s: requirement %d: %w", r.ID, i, err)
		}
	}
	return tree, nil
}

// Allowlist filters users by identity membership. With Deny unset a user
// must hold at least one listed identity; with Deny set, holding any listed
// identity blocks the user. EVM address entries match case-insensitively;
// every other entry matches verbatim.
type Allowlist struct {
	Deny bool     `json:"deny"`
	List []string `json:"list"`
}

// Allows reports whether [user] passes the filter.
func (a *Allowlist) Allows(user identity.User) bool {
	return a.Matches([]identity.User{user})[0]
}

// Matches reports, per user, whether the filter lets the user through.
func (a *Allowlist) Matches(users []identity.User) []bool {
	listed := set.NewSet[string](len(a.List))
	for _, entry := range a.List {
		listed.Add(canonical(entry))
	}

	matches := make([]bool, len(users))
	for u := range users {
		var member bool
		for _, id := range users[u].Identities {
			if listed.Contains(canonical(id.Value)) {
				member = true
				break
			}
		}
		matches[u] = member != a.Deny
	}
	return matches
}

// canonical folds EVM addresses to their lowercase hex form so that list
// entries and identities match regardless of checksum casing. Anything that
// doesn't parse as an address is compared as written.
func canonical(s string) string {
	addr, err := evm.AddressFromString(s)
	if err != nil {
		return s
	}
	return addr.String()
}
