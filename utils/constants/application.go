// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package constants

const (
	// AppName is the name of this application
	AppName = "tokengate"
)
