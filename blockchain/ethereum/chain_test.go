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

package ethereum_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/blockchain"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum/ethereumtest"
)

// newChainIDServerT starts a json-rpc server that answers every request with
// the given chain id (hex encoded).
func newChainIDServerT(t *testing.T, chainIDHex string) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ // nolint: errcheck, gosec
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  chainIDHex,
		})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func Test_NewChainBackend(t *testing.T) {
	cred := guessinggame.Credential{PrivateKey: ethereumtest.GanachePrivateKey}
	url := newChainIDServerT(t, "0x539") // 1337

	t.Run("happy", func(t *testing.T) {
		cb, err := ethereum.NewChainBackend(url, ethereumtest.ChainID,
			ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout, cred)
		require.NoError(t, err)
		assert.Equal(t, ethereumtest.GanacheAddr, cb.Sender().Hex())
		assert.Equal(t, int64(ethereumtest.ChainID), cb.ChainID().Int64())
	})
	t.Run("happy_chain_id_not_configured", func(t *testing.T) {
		cb, err := ethereum.NewChainBackend(url, 0,
			ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout, cred)
		require.NoError(t, err)
		assert.Equal(t, int64(ethereumtest.ChainID), cb.ChainID().Int64())
	})
	t.Run("err_chain_id_mismatch", func(t *testing.T) {
		_, err := ethereum.NewChainBackend(url, 4,
			ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout, cred)
		require.Error(t, err)

		mismatchErr := blockchain.ChainIDMismatchError{}
		require.True(t, errors.As(err, &mismatchErr))
		assert.Equal(t, int64(4), mismatchErr.Expected)
		assert.Equal(t, "1337", mismatchErr.Actual)
	})
	t.Run("err_invalid_key", func(t *testing.T) {
		_, err := ethereum.NewChainBackend(url, ethereumtest.ChainID,
			ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout, guessinggame.Credential{PrivateKey: "0x1234"})
		assert.Error(t, err)
	})
	t.Run("err_empty_url", func(t *testing.T) {
		_, err := ethereum.NewChainBackend("", ethereumtest.ChainID,
			ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout, cred)
		assert.Error(t, err)
	})
}

func Test_NewROChainBackend(t *testing.T) {
	url := newChainIDServerT(t, "0x4")

	t.Run("happy", func(t *testing.T) {
		cb, err := ethereum.NewROChainBackend(url, 4, ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout)
		require.NoError(t, err)
		assert.Equal(t, int64(4), cb.ChainID().Int64())
	})
	t.Run("err_chain_id_mismatch", func(t *testing.T) {
		_, err := ethereum.NewROChainBackend(url, 1, ethereumtest.ChainConnTimeout, ethereumtest.OnChainTxTimeout)
		assert.True(t, errors.As(err, &blockchain.ChainIDMismatchError{}))
	})
}

func Test_SenderAddr(t *testing.T) {
	addr, err := ethereum.SenderAddr(ethereumtest.GanachePrivateKey)
	require.NoError(t, err)
	assert.Equal(t, ethereumtest.GanacheAddr, addr.Hex())

	_, err = ethereum.SenderAddr("")
	assert.Error(t, err)
}
