// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relation

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	errMissingValue  = errors.New("relation is missing a target value")
	errMissingBounds = errors.New("relation is missing range bounds")
)

// Op identifies a comparison operator.
type Op uint8

const (
	EqualTo Op = iota
	GreaterThan
	GreaterOrEqualTo
	LessThan
	LessOrEqualTo
	Between
	BetweenInclusive
)

const (
	equalToStr          = "equal_to"
	greaterThanStr      = "greater_than"
	greaterOrEqualStr   = "greater_or_equal_to"
	lessThanStr         = "less_than"
	lessOrEqualStr      = "less_or_equal_to"
	betweenStr          = "between"
	betweenInclusiveStr = "between_inclusive"
)

func (op Op) String() string {
	switch op {
	case EqualTo:
		return equalToStr
	case GreaterThan:
		return greaterThanStr
	case GreaterOrEqualTo:
		return greaterOrEqualStr
	case LessThan:
		return lessThanStr
	case LessOrEqualTo:
		return lessOrEqualStr
	case Between:
		return betweenStr
	case BetweenInclusive:
		return betweenInclusiveStr
	default:
		return "unknown"
	}
}

// IsRange returns true for the two-bound operators.
func (op Op) IsRange() bool {
	return op == Between || op == BetweenInclusive
}

// ToOp is the inverse of Op.String().
func ToOp(s string) (Op, error) {
	switch s {
	case equalToStr:
		return EqualTo, nil
	case greaterThanStr:
		return GreaterThan, nil
	case greaterOrEqualStr:
		return GreaterOrEqualTo, nil
	case lessThanStr:
		return LessThan, nil
	case lessOrEqualStr:
		return LessOrEqualTo, nil
	case betweenStr:
		return Between, nil
	case betweenInclusiveStr:
		return BetweenInclusive, nil
	default:
		return 0, fmt.Errorf("unknown relation op: %q", s)
	}
}

// Relation is a comparison predicate over an ordered value. The zero value
// asserts equality with the zero value of T.
//
// Between is inclusive of the lower bound and exclusive of the upper bound;
// BetweenInclusive is closed on both ends.
type Relation[T constraints.Ordered] struct {
	Op Op
	// Value is the comparison target for the scalar operators and the lower
	// bound for the range operators.
	Value T
	// Upper is only meaningful for the range operators.
	Upper T
}

// Assert reports whether x satisfies the relation. It is pure and safe for
// concurrent use.
func (r Relation[T]) Assert(x T) bool {
	switch r.Op {
	case EqualTo:
		return x == r.Value
	case GreaterThan:
		return x > r.Value
	case GreaterOrEqualTo:
		return x >= r.Value
	case LessThan:
		return x < r.Value
	case LessOrEqualTo:
		return x <= r.Value
	case Between:
		return x >= r.Value && x < r.Upper
	case BetweenInclusive:
		return x >= r.Value && x <= r.Upper
	default:
		return false
	}
}

type relationJSON[T constraints.Ordered] struct {
	Op    string `json:"op"`
	Value *T     `json:"value,omitempty"`
	Lower *T     `json:"lower,omitempty"`
	Upper *T     `json:"upper,omitempty"`
}

func (r Relation[T]) MarshalJSON() ([]byte, error) {
	out := relationJSON[T]{Op: r.Op.String()}
	if r.Op.IsRange() {
		lower, upper := r.Value, r.Upper
		out.Lower = &lower
		out.Upper = &upper
	} else {
		value := r.Value
		out.Value = &value
	}
	return json.Marshal(out)
}

func (r *Relation[T]) UnmarshalJSON(b []byte) error {
	var in relationJSON[T]
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	op, err := ToOp(in.Op)
	if err != nil {
		return err
	}
	r.Op = op
	if op.IsRange() {
		if in.Lower == nil || in.Upper == nil {
			return errMissingBounds
		}
		r.Value = *in.Lower
		r.Upper = *in.Upper
		return nil
	}
	if in.Value == nil {
		return errMissingValue
	}
	r.Value = *in.Value
	return nil
}
