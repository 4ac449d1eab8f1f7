// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relation

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestAssert(t *testing.T) {
	require := require.New(t)

	require.True(Relation[float64]{Op: EqualTo, Value: 0}.Assert(0))
	require.False(Relation[float64]{Op: EqualTo, Value: 10}.Assert(2))
	require.False(Relation[float64]{Op: EqualTo, Value: 420}.Assert(421))

	require.False(Relation[float64]{Op: GreaterThan, Value: 10}.Assert(3))
	require.False(Relation[float64]{Op: GreaterThan, Value: 10}.Assert(10))
	require.True(Relation[float64]{Op: GreaterThan, Value: 10}.Assert(20))

	require.True(Relation[float64]{Op: GreaterOrEqualTo, Value: 23}.Assert(42))
	require.True(Relation[float64]{Op: GreaterOrEqualTo, Value: 23}.Assert(23))
	require.False(Relation[float64]{Op: GreaterOrEqualTo, Value: 23}.Assert(14))

	require.True(Relation[float64]{Op: LessThan, Value: 23}.Assert(1))
	require.False(Relation[float64]{Op: LessThan, Value: 23}.Assert(23))
	require.False(Relation[float64]{Op: LessThan, Value: 23}.Assert(42))

	require.True(Relation[float64]{Op: LessOrEqualTo, Value: 23}.Assert(1))
	require.True(Relation[float64]{Op: LessOrEqualTo, Value: 23}.Assert(23))
	require.False(Relation[float64]{Op: LessOrEqualTo, Value: 23}.Assert(42))

	require.False(Relation[float64]{Op: Between, Value: 0, Upper: 100}.Assert(230))
	require.False(Relation[float64]{Op: Between, Value: 50, Upper: 100}.Assert(15))
	require.False(Relation[float64]{Op: Between, Value: 50, Upper: 100}.Assert(100))
	require.True(Relation[float64]{Op: Between, Value: 50, Upper: 100}.Assert(77))
	require.True(Relation[float64]{Op: Between, Value: 50, Upper: 100}.Assert(50))

	require.False(Relation[float64]{Op: BetweenInclusive, Value: 0, Upper: 100}.Assert(230))
	require.False(Relation[float64]{Op: BetweenInclusive, Value: 50, Upper: 100}.Assert(15))
	require.True(Relation[float64]{Op: BetweenInclusive, Value: 50, Upper: 100}.Assert(100))
	require.True(Relation[float64]{Op: BetweenInclusive, Value: 50, Upper: 100}.Assert(77))
	require.True(Relation[float64]{Op: BetweenInclusive, Value: 50, Upper: 100}.Assert(50))
}

func TestAssertStrings(t *testing.T) {
	require := require.New(t)

	require.True(Relation[string]{Op: EqualTo, Value: "guild"}.Assert("guild"))
	require.False(Relation[string]{Op: EqualTo, Value: "guild"}.Assert("gild"))
	require.True(Relation[string]{Op: GreaterThan, Value: "a"}.Assert("b"))
}

func TestJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		relation Relation[float64]
		expected string
	}{
		{
			name:     "scalar op",
			relation: Relation[float64]{Op: GreaterThan, Value: 0},
			expected: `{"op":"greater_than","value":0}`,
		},
		{
			name:     "range op",
			relation: Relation[float64]{Op: Between, Value: 50, Upper: 100},
			expected: `{"op":"between","lower":50,"upper":100}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			b, err := json.Marshal(test.relation)
			require.NoError(err)
			require.JSONEq(test.expected, string(b))

			var parsed Relation[float64]
			require.NoError(json.Unmarshal(b, &parsed))
			require.Equal(test.relation, parsed)
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "unknown op",
			json: `{"op":"approximately","value":1}`,
		},
		{
			name: "scalar without value",
			json: `{"op":"greater_than"}`,
		},
		{
			name: "range without upper",
			json: `{"op":"between","lower":1}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var parsed Relation[float64]
			require.Error(t, json.Unmarshal([]byte(test.json), &parsed))
		})
	}
}

func TestOpStringRoundTrip(t *testing.T) {
	require := require.New(t)

	for op := EqualTo; op <= BetweenInclusive; op++ {
		parsed, err := ToOp(op.String())
		require.NoError(err)
		require.Equal(op, parsed)
	}

	_, err := ToOp("unknown")
	require.Error(err)
}

func TestAssertProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("greater_than agrees with <", prop.ForAll(
		func(target, x float64) bool {
			return Relation[float64]{Op: GreaterThan, Value: target}.Assert(x) == (x > target)
		},
		gen.Float64Range(-1e9, 1e9),
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("between_inclusive accepts both bounds", prop.ForAll(
		func(lower, span float64) bool {
			r := Relation[float64]{Op: BetweenInclusive, Value: lower, Upper: lower + span}
			return r.Assert(lower) && r.Assert(lower+span)
		},
		gen.Float64Range(-1e9, 1e9),
		gen.Float64Range(0, 1e9),
	))

	properties.Property("between never accepts its upper bound", prop.ForAll(
		func(lower, span float64) bool {
			upper := lower + span
			return !Relation[float64]{Op: Between, Value: lower, Upper: upper}.Assert(upper)
		},
		gen.Float64Range(-1e9, 1e9),
		gen.Float64Range(1, 1e9),
	))

	properties.TestingRun(t)
}
