// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"strings"

	"go.uber.org/zap"
)

// Sanitize strips line breaks from [s] so that user-provided strings can't
// forge additional log lines.
func Sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n")
}

// UserString returns a field holding the sanitized form of a user-provided
// string.
func UserString(key, val string) zap.Field {
	return zap.String(key, Sanitize(val))
}

// UserStrings returns a field holding the sanitized forms of user-provided
// strings.
func UserStrings(key string, val []string) zap.Field {
	sanitized := make([]string, len(val))
	for i, v := range val {
		sanitized[i] = Sanitize(v)
	}
	return zap.Strings(key, sanitized)
}
