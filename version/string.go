// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import "fmt"

// String is displayed by the --version flag.
func String(commit string) string {
	format := "%s/%s"
	args := []interface{}{
		Client,
		Current,
	}
	if commit != "" {
		format += " [commit=%s]"
		args = append(args, commit)
	}
	format += "\n"
	return fmt.Sprintf(format, args...)
}
