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

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gotest.tools/assert"

	"github.com/daltonclaybrook/GuessingGame/config"
)

func Test_Default(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "rinkeby", cfg.Network)
	assert.Equal(t, "0.8.15", cfg.Solidity)
	assert.Equal(t, int64(4), cfg.Networks["rinkeby"].ChainID)
	assert.Equal(t, 10*time.Second, cfg.ChainConnTimeout)
	assert.Equal(t, uint64(20), cfg.Explorer.MaxPolls)
}

func Test_Marshal(t *testing.T) {
	t.Run("happy_parse_back", func(t *testing.T) {
		setEnv(t, nil)
		data, err := config.Marshal(testCfg)
		require.NoError(t, err)

		cfgFile := filepath.Join(t.TempDir(), "guessinggame.yaml")
		require.NoError(t, os.WriteFile(cfgFile, data, 0o600))
		gotCfg, err := config.Parse(config.Options{ConfigFile: cfgFile})
		require.NoError(t, err)
		assert.DeepEqual(t, testCfg, gotCfg)
	})
	t.Run("happy_masked", func(t *testing.T) {
		data, err := config.Marshal(config.Masked(testCfg))
		require.NoError(t, err)
		assert.Assert(t, !strings.Contains(string(data), "0xabcdef"))
		assert.Assert(t, !strings.Contains(string(data), "test-api-key"))
		assert.Assert(t, strings.Contains(string(data), "onChainTxTimeout: 2m0s"))
	})
}
