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

package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/daltonclaybrook/GuessingGame"
)

// Default returns the built-in configuration, without any values from files,
// the environment or flags.
func Default() guessinggame.Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	var cfg guessinggame.Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("unmarshalling default config: " + err.Error())
	}
	return cfg
}

// Marshal returns the YAML representation of the config, in the format read
// by Parse. Durations are written in the format of time.ParseDuration.
func Marshal(cfg guessinggame.Config) ([]byte, error) {
	networks := make(map[string]interface{}, len(cfg.Networks))
	for name, nc := range cfg.Networks {
		n := map[string]interface{}{"chainId": nc.ChainID}
		if nc.URL != "" {
			n["url"] = nc.URL
		}
		if nc.PrivateKey != "" {
			n["privateKey"] = nc.PrivateKey
		}
		networks[name] = n
	}
	e := cfg.Explorer
	explorer := map[string]interface{}{
		"timeout":      e.Timeout.String(),
		"pollInterval": e.PollInterval.String(),
		"maxPolls":     e.MaxPolls,
		"maxRetries":   e.MaxRetries,
		"rateLimit":    e.RateLimit,
	}
	if e.APIKey != "" {
		explorer["apiKey"] = e.APIKey
	}
	if e.APIURL != "" {
		explorer["apiUrl"] = e.APIURL
	}

	out := map[string]interface{}{
		LogLevelKey:         cfg.LogLevel,
		LogFileKey:          cfg.LogFile,
		NetworkKey:          cfg.Network,
		NetworksKey:         networks,
		SolidityKey:         cfg.Solidity,
		ArtifactsKey:        cfg.Artifacts,
		ChainConnTimeoutKey: cfg.ChainConnTimeout.String(),
		OnChainTxTimeoutKey: cfg.OnChainTxTimeout.String(),
		"explorer":          explorer,
	}
	data, err := yaml.Marshal(out)
	return data, errors.Wrap(err, "marshalling config")
}
