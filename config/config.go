// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "embed"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/tokengate/balancy"
	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/utils/constants"
	"github.com/ava-labs/tokengate/utils/logging"
)

var (
	homeDir         = os.ExpandEnv("$HOME")
	prefixedAppName = fmt.Sprintf(".%s", constants.AppName)
	defaultDataDir  = filepath.Join(homeDir, prefixedAppName)
	defaultLogDir   = filepath.Join(defaultDataDir, "logs")

	// defaultChainsJSON is the built-in provider directory. The multicall
	// entries are the MakerDAO aggregator on Ethereum and the CREATE2
	// deployment, which shares one address everywhere, on the other chains.
	//go:embed chains.json
	defaultChainsJSON []byte
)

// Config describes a daemon: where to serve, how to log, which providers
// answer balance queries, and which chains are routed to the indexed API
// instead of their RPC nodes.
type Config struct {
	// True if the version should be printed and the process exited
	DisplayVersionAndExit bool

	// HTTP
	HTTPHost          string
	HTTPPort          uint16
	APIAllowedOrigins []string

	LoggingConfig logging.Config

	// Providers is the chain directory used for direct RPC resolution
	Providers evm.Providers

	// BalancyURL is the base URL of the indexed balance API
	BalancyURL string
	// BalancyChains lists the chains resolved through the indexed API. When
	// empty, every balance query goes to the chain's RPC provider.
	BalancyChains []evm.Chain

	// RequestTimeout bounds every upstream call: chain RPC, the indexed
	// API, and remote requirement endpoints
	RequestTimeout time.Duration
}

// flagSet returns the complete set of flags for tokengate
func flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(constants.AppName, flag.ContinueOnError)

	// If true, print the version and quit.
	fs.Bool(VersionKey, false, "If true, print version and quit")

	// Config
	fs.String(ConfigFileKey, "", "Specifies a config file")

	// Logging
	fs.String(LogsDirKey, defaultLogDir, "Logging directory for tokengate")
	fs.String(LogLevelKey, "info", "The log level. Should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogDisplayLevelKey, "", "The log display level. If left blank, will inherit the value of log-level. Otherwise, should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogFormatKey, "auto", "The structure of log format. Defaults to 'auto' which formats terminal-like logs, when the output is a terminal. Otherwise, should be one of {auto, plain, colors, json}")
	fs.Int(LogRotaterMaxSizeKey, 8, "The maximum file size in megabytes of the log file before it gets rotated.")
	fs.Int(LogRotaterMaxFilesKey, 7, "The maximum number of old log files to retain. 0 means retain all old log files.")
	fs.Int(LogRotaterMaxAgeKey, 0, "The maximum number of days to retain old log files based on the timestamp encoded in their filename. 0 means retain all old log files.")
	fs.Bool(LogRotaterCompressEnabledKey, false, "Enables the compression of rotated log files through gzip.")

	// HTTP API
	fs.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	fs.Uint(HTTPPortKey, 9750, "Port of the HTTP server")
	fs.String(HTTPAllowedOriginsKey, "*", "Origins to allow on the HTTP port. Defaults to * which allows all origins. Example: https://*.example.com https://*.example.org")

	// Chain providers
	fs.String(ChainsFileKey, "", "Specifies a JSON file of chain providers merged over the built-in directory")

	// Indexed balances
	fs.String(BalancyURLKey, balancy.DefaultBaseURL, "Base URL of the indexed balance API")
	fs.String(BalancyChainsKey, "", "Comma separated list of chains resolved through the indexed API instead of chain RPC. Example: ethereum,polygon")

	// Upstream requests
	fs.Duration(RequestTimeoutKey, 30*time.Second, "Timeout applied to chain RPC, indexed API, and remote requirement calls")

	return fs
}

// getViper returns the viper environment from parsing the given command line
// arguments along with any config file they name
func getViper(args []string) (*viper.Viper, error) {
	v := viper.New()

	fs := pflag.NewFlagSet(constants.AppName, pflag.ContinueOnError)
	fs.AddGoFlagSet(flagSet())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(ConfigFileKey) {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// getConfigFromViper sets attributes on [Config] based on the values defined
// in the [viper] environment
func getConfigFromViper(v *viper.Viper) (Config, error) {
	config := Config{}
	config.DisplayVersionAndExit = v.GetBool(VersionKey)

	// Logging
	loggingConfig := logging.Config{}
	loggingConfig.Directory = os.ExpandEnv(v.GetString(LogsDirKey))
	var err error
	loggingConfig.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return Config{}, err
	}
	logDisplayLevel := v.GetString(LogLevelKey)
	if v.IsSet(LogDisplayLevelKey) {
		logDisplayLevel = v.GetString(LogDisplayLevelKey)
	}
	loggingConfig.DisplayLevel, err = logging.ToLevel(logDisplayLevel)
	if err != nil {
		return Config{}, err
	}
	loggingConfig.LogFormat, err = logging.ToFormat(v.GetString(LogFormatKey), os.Stdout.Fd())
	if err != nil {
		return Config{}, err
	}
	loggingConfig.MaxSize = v.GetInt(LogRotaterMaxSizeKey)
	loggingConfig.MaxFiles = v.GetInt(LogRotaterMaxFilesKey)
	loggingConfig.MaxAge = v.GetInt(LogRotaterMaxAgeKey)
	loggingConfig.Compress = v.GetBool(LogRotaterCompressEnabledKey)
	config.LoggingConfig = loggingConfig

	// HTTP
	config.HTTPHost = v.GetString(HTTPHostKey)
	config.HTTPPort = uint16(v.GetUint(HTTPPortKey))
	config.APIAllowedOrigins = v.GetStringSlice(HTTPAllowedOriginsKey)

	// Chain providers
	config.Providers, err = getProviders(v)
	if err != nil {
		return Config{}, err
	}

	// Indexed balances
	config.BalancyURL = v.GetString(BalancyURLKey)
	config.BalancyChains, err = getBalancyChains(v)
	if err != nil {
		return Config{}, err
	}

	// Upstream requests
	config.RequestTimeout = v.GetDuration(RequestTimeoutKey)
	if config.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive", RequestTimeoutKey)
	}

	return config, nil
}

// getProviders loads the built-in provider directory and merges any entries
// from the chains file over it.
func getProviders(v *viper.Viper) (evm.Providers, error) {
	providers := evm.Providers{}
	if err := parseProviders(defaultChainsJSON, providers); err != nil {
		return nil, fmt.Errorf("invalid built-in chain directory: %w", err)
	}

	if v.IsSet(ChainsFileKey) {
		path := os.ExpandEnv(v.GetString(ChainsFileKey))
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("couldn't read chains file: %w", err)
		}
		if err := parseProviders(b, providers); err != nil {
			return nil, fmt.Errorf("invalid chains file %s: %w", path, err)
		}
	}
	return providers, nil
}

// parseProviders decodes a provider directory keyed by chain name into
// [providers], overwriting entries already present.
func parseProviders(b []byte, providers evm.Providers) error {
	entries := map[string]evm.Provider{}
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	for name, provider := range entries {
		chain, err := evm.ToChain(name)
		if err != nil {
			return err
		}
		if provider.RPCURL == "" {
			return fmt.Errorf("provider for %s is missing an rpcUrl", name)
		}
		if provider.Multicall == (evm.Address{}) {
			return fmt.Errorf("provider for %s is missing a multicall contract", name)
		}
		providers[chain] = provider
	}
	return nil
}

func getBalancyChains(v *viper.Viper) ([]evm.Chain, error) {
	var chains []evm.Chain
	for _, name := range strings.Split(v.GetString(BalancyChainsKey), ",") {
		if name == "" {
			continue
		}
		chain, err := evm.ToChain(name)
		if err != nil {
			return nil, fmt.Errorf("couldn't parse balancy chain: %w", err)
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

// GetConfig parses [args] into the daemon configuration
func GetConfig(args []string) (Config, error) {
	v, err := getViper(args)
	if err != nil {
		return Config{}, err
	}
	return getConfigFromViper(v)
}
