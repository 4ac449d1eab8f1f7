// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey                = "config-file"
	VersionKey                   = "version"
	HTTPHostKey                  = "http-host"
	HTTPPortKey                  = "http-port"
	HTTPAllowedOriginsKey        = "http-allowed-origins"
	LogsDirKey                   = "log-dir"
	LogLevelKey                  = "log-level"
	LogDisplayLevelKey           = "log-display-level"
	LogFormatKey                 = "log-format"
	LogRotaterMaxSizeKey         = "log-rotater-max-size"
	LogRotaterMaxFilesKey        = "log-rotater-max-files"
	LogRotaterMaxAgeKey          = "log-rotater-max-age"
	LogRotaterCompressEnabledKey = "log-rotater-compress-enabled"
	ChainsFileKey                = "chains-file"
	BalancyURLKey                = "balancy-url"
	BalancyChainsKey             = "balancy-chains"
	RequestTimeoutKey            = "request-timeout"
)
