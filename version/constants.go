// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

const Client = "tokengate"

// Current is the version of this code.
var Current = &Semantic{
	Major: 1,
	Minor: 0,
	Patch: 0,
}
