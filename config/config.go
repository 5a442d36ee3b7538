// Copyright (c) 2022 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/daltonclaybrook/GuessingGame
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config assembles the configuration of the tool from the built-in
// defaults, an optional config file, the environment (including a dotenv
// file) and the command line flags, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/daltonclaybrook/GuessingGame"
)

// Default paths of the config and dotenv files. They are read only if they exist.
const (
	DefaultConfigFile = "guessinggame.yaml"
	DefaultEnvFile    = ".env"
)

// Keys of the config values. Flags with the same name (ignoring case) are
// bound to them.
const (
	LogLevelKey         = "logLevel"
	LogFileKey          = "logFile"
	NetworkKey          = "network"
	NetworksKey         = "networks"
	SolidityKey         = "solidity"
	ArtifactsKey        = "artifacts"
	ChainConnTimeoutKey = "chainConnTimeout"
	OnChainTxTimeoutKey = "onChainTxTimeout"

	ExplorerAPIKeyKey       = "explorer.apiKey"
	ExplorerAPIURLKey       = "explorer.apiUrl"
	ExplorerTimeoutKey      = "explorer.timeout"
	ExplorerPollIntervalKey = "explorer.pollInterval"
	ExplorerMaxPollsKey     = "explorer.maxPolls"
	ExplorerMaxRetriesKey   = "explorer.maxRetries"
	ExplorerRateLimitKey    = "explorer.rateLimit"

	// ExplorerAPIKeyEnv is the environment variable holding the explorer API key.
	ExplorerAPIKeyEnv = "ETHERSCAN_API_KEY"
)

// defaults mirror the hardhat project the contracts are compiled in.
var defaults = map[string]interface{}{
	LogLevelKey:         "info",
	LogFileKey:          "",
	NetworkKey:          "rinkeby",
	SolidityKey:         "0.8.15",
	ArtifactsKey:        "artifacts",
	ChainConnTimeoutKey: 10 * time.Second,
	OnChainTxTimeoutKey: 5 * time.Minute,

	NetworksKey + ".rinkeby.chainId": 4,

	ExplorerTimeoutKey:      30 * time.Second,
	ExplorerPollIntervalKey: 3 * time.Second,
	ExplorerMaxPollsKey:     20,
	ExplorerMaxRetriesKey:   0,
	ExplorerRateLimitKey:    5.0, // Free tier of etherscan.
}

// Options specify the sources of the configuration.
type Options struct {
	// ConfigFile is the path of the YAML config file. If empty,
	// DefaultConfigFile is used if it exists.
	ConfigFile string
	// EnvFile is the path of the dotenv file. If empty, DefaultEnvFile is
	// used if it exists. Variables already set in the environment are not
	// overridden.
	EnvFile string
	// Flags, if not nil, override the values from other sources when set.
	Flags *pflag.FlagSet
}

// Parse reads the configuration from all sources and validates it. The
// error is a guessinggame.ConfigError if any value is invalid.
func Parse(opts Options) (guessinggame.Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return guessinggame.Config{}, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return guessinggame.Config{}, err
	}
	if err := bindFlags(v, opts.Flags); err != nil {
		return guessinggame.Config{}, err
	}
	if err := bindEnvs(v); err != nil {
		return guessinggame.Config{}, err
	}

	var cfg guessinggame.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return guessinggame.Config{}, errors.Wrap(err, "unmarshalling config")
	}
	// Values bound to env vars are not always present in the nested map
	// returned by viper, read them explicitly.
	for name, nc := range cfg.Networks {
		nc.URL = v.GetString(networkKey(name, "url"))
		nc.PrivateKey = v.GetString(networkKey(name, "privateKey"))
		nc.ChainID = v.GetInt64(networkKey(name, "chainId"))
		cfg.Networks[name] = nc
	}
	cfg.Explorer.APIKey = v.GetString(ExplorerAPIKeyKey)

	return cfg, Validate(cfg)
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		envFile = DefaultEnvFile
	}
	return errors.Wrap(gotenv.Load(filepath.Clean(envFile)), "loading env file")
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return nil
		}
		configFile = DefaultConfigFile
	}
	v.SetConfigFile(filepath.Clean(configFile))
	v.SetConfigType("yaml")
	return errors.Wrap(v.ReadInConfig(), "reading config file")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	for _, key := range []string{LogLevelKey, LogFileKey, NetworkKey, ArtifactsKey} {
		f := fs.Lookup(strings.ToLower(key))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrap(err, "binding flag "+f.Name)
		}
	}
	return nil
}

// bindEnvs binds the url and private key of each network to the environment
// variables <NETWORK>_URL and <NETWORK>_PRIVATE_KEY.
func bindEnvs(v *viper.Viper) error {
	names := map[string]bool{v.GetString(NetworkKey): true}
	for name := range v.GetStringMap(NetworksKey) {
		names[name] = true
	}
	for name := range names {
		prefix := EnvPrefix(name)
		if err := v.BindEnv(networkKey(name, "url"), prefix+"_URL"); err != nil {
			return errors.WithStack(err)
		}
		if err := v.BindEnv(networkKey(name, "privateKey"), prefix+"_PRIVATE_KEY"); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(v.BindEnv(ExplorerAPIKeyKey, ExplorerAPIKeyEnv))
}

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]+`)

// EnvPrefix returns the prefix of the environment variables for the network,
// eg: RINKEBY for rinkeby.
func EnvPrefix(network string) string {
	return nonAlnum.ReplaceAllString(strings.ToUpper(network), "_")
}

func networkKey(name, field string) string {
	return NetworksKey + "." + strings.ToLower(name) + "." + field
}

// Validate checks the values required by all commands.
func Validate(cfg guessinggame.Config) error {
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return guessinggame.NewConfigError(LogLevelKey, cfg.LogLevel, err)
	}
	if cfg.Artifacts == "" {
		return guessinggame.NewConfigError(ArtifactsKey, "", guessinggame.ErrMissing)
	}
	if cfg.ChainConnTimeout <= 0 {
		return guessinggame.NewConfigError(ChainConnTimeoutKey, cfg.ChainConnTimeout.String(),
			errors.New("should be positive"))
	}
	if cfg.OnChainTxTimeout <= 0 {
		return guessinggame.NewConfigError(OnChainTxTimeoutKey, cfg.OnChainTxTimeout.String(),
			errors.New("should be positive"))
	}

	nc, ok := cfg.SelectedNetwork()
	if !ok {
		return guessinggame.NewConfigError(NetworkKey, cfg.Network, errors.New("network not defined in networks"))
	}
	if nc.URL == "" {
		return guessinggame.NewConfigError(networkKey(nc.Name, "url"), "",
			errors.Wrapf(guessinggame.ErrMissing, "set %s_URL", EnvPrefix(nc.Name)))
	}
	if nc.ChainID < 0 {
		return guessinggame.NewConfigError(networkKey(nc.Name, "chainId"), "", errors.New("should not be negative"))
	}
	return nil
}

// ValidateSigner checks the values required for sending transactions.
func ValidateSigner(cfg guessinggame.Config) error {
	nc, ok := cfg.SelectedNetwork()
	if !ok {
		return guessinggame.NewConfigError(NetworkKey, cfg.Network, errors.New("network not defined in networks"))
	}
	if nc.PrivateKey == "" {
		return guessinggame.NewConfigError(networkKey(nc.Name, "privateKey"), "",
			errors.Wrapf(guessinggame.ErrMissing, "set %s_PRIVATE_KEY", EnvPrefix(nc.Name)))
	}
	return nil
}

// ValidateExplorer checks the values required for source verification.
func ValidateExplorer(cfg guessinggame.Config) error {
	e := cfg.Explorer
	if e.APIKey == "" {
		return guessinggame.NewConfigError(ExplorerAPIKeyKey, "",
			errors.Wrapf(guessinggame.ErrMissing, "set %s", ExplorerAPIKeyEnv))
	}
	if e.MaxPolls == 0 {
		return guessinggame.NewConfigError(ExplorerMaxPollsKey, "0", errors.New("should be positive"))
	}
	if e.Timeout <= 0 {
		return guessinggame.NewConfigError(ExplorerTimeoutKey, e.Timeout.String(), errors.New("should be positive"))
	}
	if e.RateLimit < 0 {
		return guessinggame.NewConfigError(ExplorerRateLimitKey, "", errors.New("should not be negative"))
	}
	return nil
}

// Masked returns a copy of the config with the secrets replaced, for printing.
func Masked(cfg guessinggame.Config) guessinggame.Config {
	networks := make(map[string]guessinggame.NetworkConfig, len(cfg.Networks))
	for name, nc := range cfg.Networks {
		nc.PrivateKey = mask(nc.PrivateKey)
		networks[name] = nc
	}
	cfg.Networks = networks
	cfg.Explorer.APIKey = mask(cfg.Explorer.APIKey)
	return cfg
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
