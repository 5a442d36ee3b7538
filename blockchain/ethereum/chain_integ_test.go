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

// +build integration

package ethereum_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/artifact/artifacttest"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum/ethereumtest"
	"github.com/daltonclaybrook/GuessingGame/deployargs"
)

// Requires a ganache-cli node started with the command in ethereumtest.ChainURL.
func Test_ChainBackend_Deploy_Integ(t *testing.T) {
	cred := guessinggame.Credential{PrivateKey: ethereumtest.GanachePrivateKey}
	cb, err := ethereum.NewChainBackend(ethereumtest.ChainURL, ethereumtest.ChainID,
		ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout, cred)
	require.NoError(t, err)

	game := artifacttest.LoadT(t, string(guessinggame.GuessingGame))
	args, err := game.ConstructorArgs(deployargs.GameArgs().Values()...)
	require.NoError(t, err)

	addr, _, err := cb.Deploy(context.Background(), game, nil, args...)
	require.NoError(t, err)
	assert.NotEqual(t, common.Address{}, addr)

	roCb, err := ethereum.NewROChainBackend(ethereumtest.ChainURL, ethereumtest.ChainID,
		ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout)
	require.NoError(t, err)
	out, err := roCb.Call(context.Background(), game, addr, "token")
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
