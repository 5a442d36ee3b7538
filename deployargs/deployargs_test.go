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

package deployargs_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame/deployargs"
)

func Test_GameArgs(t *testing.T) {
	args := deployargs.GameArgs()
	want := []interface{}{
		common.HexToAddress("0x44579397d2866716aB34B1e2f77fce964c8616C5"),
		common.HexToAddress("0x44579397d2866716aB34B1e2f77fce964c8616C5"),
		big.NewInt(600),
		big.NewInt(600),
		big.NewInt(600),
	}
	assert.Equal(t, want, args.Values())
}

func Test_GameArgs_Stable(t *testing.T) {
	first := deployargs.GameArgs().Values()
	for i := 0; i < 3; i++ {
		got := deployargs.GameArgs().Values()
		require.Len(t, got, 5)
		assert.Equal(t, first, got)
	}

	// Mutating a returned value must not leak into later calls.
	first[2].(*big.Int).SetInt64(1)
	assert.Equal(t, big.NewInt(600), deployargs.GameArgs().Values()[2])
}

func Test_TokenArgs(t *testing.T) {
	game := common.HexToAddress("0x8450c0055cB180C7C37A25866132A740b812937B")
	assert.Equal(t, []interface{}{game}, deployargs.TokenArgs(game))
}

func Test_LockArgs(t *testing.T) {
	now := time.Unix(1650000000, 0)
	args := deployargs.LockArgs(now)

	assert.True(t, now.Add(365*24*time.Hour).Equal(args.UnlockTime))
	assert.Equal(t, 0, big.NewInt(1e18).Cmp(args.Value))
	assert.Equal(t, []interface{}{big.NewInt(1650000000 + 365*24*60*60)}, args.Values())
}
