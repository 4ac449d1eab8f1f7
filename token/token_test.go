// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardRoundTrip(t *testing.T) {
	require := require.New(t)

	for standard := Native; standard <= Special; standard++ {
		parsed, err := ToStandard(standard.String())
		require.NoError(err)
		require.Equal(standard, parsed)
	}

	_, err := ToStandard("erc20")
	require.Error(err)
}

func TestTypeJSON(t *testing.T) {
	tests := []struct {
		name     string
		tokItem  Type
		expected string
	}{
		{
			name:     "native",
			tokItem:  Type{Standard: Native},
			expected: `{"type":"native"}`,
		},
		{
			name: "fungible",
			tokItem: Type{
				Standard: Fungible,
				Address:  "0x458691c1692cd82facfb2c5127e36d63213448a8",
			},
			expected: `{"type":"fungible","address":"0x458691c1692cd82facfb2c5127e36d63213448a8"}`,
		},
		{
			name: "special with id",
			tokItem: Type{
				Standard: Special,
				Address:  "0x76be3b62873462d2142405439777e971754e8e77",
				ID:       "10868",
			},
			expected: `{"type":"special","address":"0x76be3b62873462d2142405439777e971754e8e77","id":"10868"}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			b, err := json.Marshal(test.tokItem)
			require.NoError(err)
			require.JSONEq(test.expected, string(b))

			var parsed Type
			require.NoError(json.Unmarshal(b, &parsed))
			require.Equal(test.tokItem, parsed)
		})
	}
}

func TestTypeUnmarshalUnknownStandard(t *testing.T) {
	var parsed Type
	err := json.Unmarshal([]byte(`{"type":"erc777","address":"0x0"}`), &parsed)
	require.Error(t, err)
}

func TestTypeVerify(t *testing.T) {
	tests := []struct {
		name      string
		tokItem   Type
		shouldErr bool
	}{
		{
			name:    "native",
			tokItem: Type{Standard: Native},
		},
		{
			name:      "native with address",
			tokItem:   Type{Standard: Native, Address: "0x0"},
			shouldErr: true,
		},
		{
			name:    "fungible",
			tokItem: Type{Standard: Fungible, Address: "0x458691c1692cd82facfb2c5127e36d63213448a8"},
		},
		{
			name:      "fungible without address",
			tokItem:   Type{Standard: Fungible},
			shouldErr: true,
		},
		{
			name:      "fungible with id",
			tokItem:   Type{Standard: Fungible, Address: "0x0", ID: "1"},
			shouldErr: true,
		},
		{
			name:    "non fungible without id",
			tokItem: Type{Standard: NonFungible, Address: "0x57f1887a8bf19b14fc0df6fd9b2acc9af147ea85"},
		},
		{
			name:    "non fungible with id",
			tokItem: Type{Standard: NonFungible, Address: "0x57f1887a8bf19b14fc0df6fd9b2acc9af147ea85", ID: "1"},
		},
		{
			name:      "special without address",
			tokItem:   Type{Standard: Special, ID: "10868"},
			shouldErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.tokItem.Verify()
			if test.shouldErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
