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

package internal_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum/ethereumtest"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum/internal"
)

func Test_ParsePrivateKey(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		key, err := internal.ParsePrivateKey(ethereumtest.GanachePrivateKey)
		require.NoError(t, err)
		assert.Equal(t, ethereumtest.GanacheAddr, internal.AddrOf(key).Hex())
	})
	t.Run("happy_without_prefix", func(t *testing.T) {
		key, err := internal.ParsePrivateKey(ethereumtest.GanachePrivateKey[2:])
		require.NoError(t, err)
		assert.Equal(t, ethereumtest.GanacheAddr, internal.AddrOf(key).Hex())
	})
	t.Run("err_empty", func(t *testing.T) {
		_, err := internal.ParsePrivateKey("")
		assert.Error(t, err)
	})
	t.Run("err_invalid_does_not_leak_key", func(t *testing.T) {
		invalid := ethereumtest.GanachePrivateKey[:40] + "zz"
		_, err := internal.ParsePrivateKey(invalid)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), invalid[2:])
	})
}

func Test_ParseAddr(t *testing.T) {
	want := common.HexToAddress(ethereumtest.GanacheAddr)
	tests := []struct {
		name  string
		input string
	}{
		{"mixed_case", ethereumtest.GanacheAddr},
		{"lower_case", "0x8450c0055cb180c7c37a25866132a740b812937b"},
		{"without_prefix", "8450c0055cb180c7c37a25866132a740b812937b"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := internal.ParseAddr(tc.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	for _, invalid := range []string{"", "0x", "0x1234", "not-an-address"} {
		invalid := invalid
		t.Run("err_"+invalid, func(t *testing.T) {
			_, err := internal.ParseAddr(invalid)
			assert.Error(t, err)
		})
	}
}
