// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/tokengate/balancy"
	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/utils/logging"
)

// setupConfigJSON creates a config file with [value] under [rootPath].
func setupConfigJSON(t *testing.T, rootPath string, value string) string {
	configFilePath := filepath.Join(rootPath, "config.json")
	require.NoError(t, os.WriteFile(configFilePath, []byte(value), 0o600))
	return configFilePath
}

func TestGetConfigDefaults(t *testing.T) {
	require := require.New(t)

	config, err := GetConfig(nil)
	require.NoError(err)

	require.False(config.DisplayVersionAndExit)
	require.Equal("127.0.0.1", config.HTTPHost)
	require.Equal(uint16(9750), config.HTTPPort)
	require.Equal([]string{"*"}, config.APIAllowedOrigins)
	require.Equal(logging.Info, config.LoggingConfig.LogLevel)
	require.Equal(logging.Info, config.LoggingConfig.DisplayLevel)
	require.Equal(30*time.Second, config.RequestTimeout)
	require.Equal(balancy.DefaultBaseURL, config.BalancyURL)
	require.Empty(config.BalancyChains)

	// The built-in directory covers every named chain.
	require.Len(config.Providers, 5)
	ethereum, err := config.Providers.Provider(evm.Ethereum)
	require.NoError(err)
	require.Equal("https://eth.public-rpc.com", ethereum.RPCURL)
	require.Equal("0x5ba1e12693dc8f9c48aad8770482f4739beed696", ethereum.Multicall.String())
}

func TestGetConfigFlags(t *testing.T) {
	require := require.New(t)

	config, err := GetConfig([]string{
		"--version",
		"--http-host=0.0.0.0",
		"--http-port=8080",
		"--log-level=debug",
		"--request-timeout=5s",
		"--balancy-chains=ethereum,polygon",
	})
	require.NoError(err)

	require.True(config.DisplayVersionAndExit)
	require.Equal("0.0.0.0", config.HTTPHost)
	require.Equal(uint16(8080), config.HTTPPort)
	require.Equal(logging.Debug, config.LoggingConfig.LogLevel)
	// The display level inherits the log level unless set explicitly.
	require.Equal(logging.Debug, config.LoggingConfig.DisplayLevel)
	require.Equal(5*time.Second, config.RequestTimeout)
	require.Equal([]evm.Chain{evm.Ethereum, evm.Polygon}, config.BalancyChains)
}

func TestGetConfigDisplayLevel(t *testing.T) {
	require := require.New(t)

	config, err := GetConfig([]string{
		"--log-level=debug",
		"--log-display-level=error",
	})
	require.NoError(err)
	require.Equal(logging.Debug, config.LoggingConfig.LogLevel)
	require.Equal(logging.Error, config.LoggingConfig.DisplayLevel)
}

func TestGetConfigFile(t *testing.T) {
	require := require.New(t)

	configJSON := fmt.Sprintf(`{%q: 9180, %q: "warn", %q: "1m"}`,
		HTTPPortKey,
		LogLevelKey,
		RequestTimeoutKey,
	)
	configFile := setupConfigJSON(t, t.TempDir(), configJSON)

	config, err := GetConfig([]string{"--config-file", configFile})
	require.NoError(err)
	require.Equal(uint16(9180), config.HTTPPort)
	require.Equal(logging.Warn, config.LoggingConfig.LogLevel)
	require.Equal(time.Minute, config.RequestTimeout)

	// An explicit flag beats the config file.
	config, err = GetConfig([]string{"--config-file", configFile, "--http-port=9999"})
	require.NoError(err)
	require.Equal(uint16(9999), config.HTTPPort)
}

func TestGetConfigChainsFile(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	chainsPath := filepath.Join(root, "chains.json")
	require.NoError(os.WriteFile(chainsPath, []byte(`{
		"ethereum": {
			"rpcUrl": "http://127.0.0.1:8545",
			"multicall": "0x5ba1e12693dc8f9c48aad8770482f4739beed696"
		}
	}`), 0o600))

	config, err := GetConfig([]string{"--chains-file", chainsPath})
	require.NoError(err)

	// The entry overrides the built-in one; the rest of the directory stays.
	require.Len(config.Providers, 5)
	ethereum, err := config.Providers.Provider(evm.Ethereum)
	require.NoError(err)
	require.Equal("http://127.0.0.1:8545", ethereum.RPCURL)
	polygon, err := config.Providers.Provider(evm.Polygon)
	require.NoError(err)
	require.Equal("https://polygon-rpc.com", polygon.RPCURL)
}

func TestGetConfigInvalid(t *testing.T) {
	root := t.TempDir()
	setupChainsFile := func(name, value string) string {
		path := filepath.Join(root, name)
		require.NoError(t, os.WriteFile(path, []byte(value), 0o600))
		return path
	}
	unknownChains := setupChainsFile("unknown-chain.json", `{"solana": {"rpcUrl": "http://127.0.0.1", "multicall": "0x5ba1e12693dc8f9c48aad8770482f4739beed696"}}`)
	missingRPC := setupChainsFile("missing-rpc.json", `{"ethereum": {"multicall": "0x5ba1e12693dc8f9c48aad8770482f4739beed696"}}`)
	missingMulticall := setupChainsFile("missing-multicall.json", `{"ethereum": {"rpcUrl": "http://127.0.0.1"}}`)

	tests := []struct {
		name        string
		args        []string
		expectedErr error
		expectedMsg string
	}{
		{
			name:        "unknown flag",
			args:        []string{"--definitely-not-a-flag"},
			expectedMsg: "unknown flag",
		},
		{
			name:        "bad log level",
			args:        []string{"--log-level=shout"},
			expectedMsg: "unknown log level",
		},
		{
			name:        "bad log format",
			args:        []string{"--log-format=yaml"},
			expectedMsg: "unknown format",
		},
		{
			name:        "zero request timeout",
			args:        []string{"--request-timeout=0s"},
			expectedMsg: "must be positive",
		},
		{
			name:        "unsupported balancy chain",
			args:        []string{"--balancy-chains=solana"},
			expectedErr: evm.ErrUnsupportedChain,
		},
		{
			name:        "missing chains file",
			args:        []string{"--chains-file", filepath.Join(root, "nope.json")},
			expectedMsg: "couldn't read chains file",
		},
		{
			name:        "chains file with unknown chain",
			args:        []string{"--chains-file", unknownChains},
			expectedErr: evm.ErrUnsupportedChain,
		},
		{
			name:        "chains file without rpc url",
			args:        []string{"--chains-file", missingRPC},
			expectedMsg: "missing an rpcUrl",
		},
		{
			name:        "chains file without multicall",
			args:        []string{"--chains-file", missingMulticall},
			expectedMsg: "missing a multicall contract",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			_, err := GetConfig(tt.args)
			if tt.expectedErr != nil {
				require.ErrorIs(err, tt.expectedErr)
				return
			}
			require.ErrorContains(err, tt.expectedMsg)
		})
	}
}
