// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package perms

const (
	ReadOnly         = 0o400
	ReadWrite        = 0o640
	ReadWriteExecute = 0o750
)
