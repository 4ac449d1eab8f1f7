// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package requirement defines the eligibility checks a role is built from.
// A requirement consumes one kind of identity and produces a boolean: either
// a token balance check resolved on chain, or a generic remote lookup whose
// JSON response is compared against the configured relation.
package requirement

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/evm/balance"
	"github.com/ava-labs/tokengate/identity"
	"github.com/ava-labs/tokengate/relation"
	"github.com/ava-labs/tokengate/token"
)

var (
	// ErrConversion reports a requirement whose declared shape doesn't match
	// its actual parameters.
	ErrConversion = errors.New("requirement shape mismatch")

	errMissingBalanceParams = errors.New("balance requirement takes balance parameters")
	errMissingRemoteParams  = errors.New("remote requirement takes remote parameters")
	errAmbiguousParams      = errors.New("requirement carries parameters of another type")
	errBalanceIdentityKind  = errors.New("balance requirements consume evm_address identities")
	errMissingURL           = errors.New("remote requirement needs a url")
	errUnknownMethod        = errors.New("unsupported request method")
	errAmbiguousData        = errors.New("request data is either a query parameter or a body, not both")
	errBadPathElement       = errors.New("path elements are object keys or array indices")
)

// Type discriminates the check strategies. The set is closed: decoding an
// unknown tag is an error, never a fallthrough.
type Type uint8

const (
	// EVMBalance resolves a token balance and applies the relation to it.
	EVMBalance Type = iota
	// Remote issues a configurable HTTP request per identity and applies
	// the relation to a value in the JSON response.
	Remote
)

const (
	evmBalanceStr = "evm_balance"
	remoteStr     = "http"
)

func (t Type) String() string {
	switch t {
	case EVMBalance:
		return evmBalanceStr
	case Remote:
		return remoteStr
	default:
		return "unknown"
	}
}

// ToType is the inverse of Type.String().
func ToType(s string) (Type, error) {
	switch s {
	case evmBalanceStr:
		return EVMBalance, nil
	case remoteStr:
		return Remote, nil
	default:
		return 0, fmt.Errorf("unknown requirement type: %q", s)
	}
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	typ, err := ToType(string(b))
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// Requirement is one eligibility check. IdentityKind names the identity
// type the check consumes; exactly one of Balance and Remote is set,
// matching Type.
type Requirement struct {
	Type         Type                       `json:"type"`
	IdentityKind identity.Kind              `json:"identityKind"`
	Relation     relation.Relation[float64] `json:"relation"`
	Balance      *BalanceParams             `json:"balance,omitempty"`
	Remote       *RemoteParams              `json:"remote,omitempty"`
}

// BalanceParams configures a balance check: which chain to query and which
// token to look for. The token is carried in its string-typed form and
// parsed on first use.
type BalanceParams struct {
	Chain evm.Chain  `json:"chain"`
	Token token.Type `json:"token"`
}

// RemoteParams configures a remote check. The identity parameterizes the
// request: appended as ?Param=identity when Param is set, with Body posted
// verbatim as JSON otherwise. Path walks the response document: string
// elements key into objects, non-negative integer elements index arrays.
type RemoteParams struct {
	URL    string          `json:"url"`
	Method string          `json:"method,omitempty"`
	Auth   string          `json:"auth,omitempty"`
	Param  string          `json:"param,omitempty"`
	Body   json.RawMessage `json:"body,omitempty"`
	Path   []interface{}   `json:"path,omitempty"`
}

// Verify checks the requirement's shape at construction time so that typos
// fail a role before the first user is evaluated.
func (r *Requirement) Verify() error {
	switch r.Type {
	case EVMBalance:
		if r.Balance == nil {
			return errMissingBalanceParams
		}
		if r.Remote != nil {
			return errAmbiguousParams
		}
		if r.IdentityKind != identity.EvmAddress {
			return fmt.Errorf("%w, not %s", errBalanceIdentityKind, r.IdentityKind)
		}
		if _, err := balance.ParseToken(r.Balance.Token); err != nil {
			return fmt.Errorf("%w: %s", ErrConversion, err)
		}
		return nil
	case Remote:
		if r.Remote == nil {
			return errMissingRemoteParams
		}
		if r.Balance != nil {
			return errAmbiguousParams
		}
		return r.Remote.verify()
	default:
		return fmt.Errorf("unknown requirement type: %d", r.Type)
	}
}

func (p *RemoteParams) verify() error {
	if p.URL == "" {
		return errMissingURL
	}
	switch strings.ToUpper(p.Method) {
	case "", http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("%w: %q", errUnknownMethod, p.Method)
	}
	if p.Param != "" && len(p.Body) > 0 {
		return errAmbiguousData
	}
	for _, elem := range p.Path {
		switch e := elem.(type) {
		case string:
		case int:
			if e < 0 {
				return fmt.Errorf("%w: %d", errBadPathElement, e)
			}
		case float64:
			if e < 0 || e != math.Trunc(e) {
				return fmt.Errorf("%w: %v", errBadPathElement, e)
			}
		default:
			return fmt.Errorf("%w: %T", errBadPathElement, elem)
		}
	}
	return nil
}

// method returns the HTTP method to issue, defaulting to GET.
func (p *RemoteParams) method() string {
	if p.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(p.Method)
}
