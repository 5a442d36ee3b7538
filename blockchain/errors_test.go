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

package blockchain_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame/blockchain"
)

func Test_NewNoCodeError(t *testing.T) {
	addr := common.HexToAddress("0x8450c0055cB180C7C37A25866132A740b812937B")

	gotErr := blockchain.NewNoCodeError(addr)
	require.Error(t, gotErr)

	noCodeErr := blockchain.NoCodeError{}
	require.True(t, errors.As(gotErr, &noCodeErr))
	assert.Equal(t, addr.Hex(), noCodeErr.Address)
	assert.Contains(t, gotErr.Error(), addr.Hex())
}

func Test_NewTxError(t *testing.T) {
	t.Run("submitted", func(t *testing.T) {
		err := assert.AnError
		gotErr := blockchain.NewTxError("GuessingGame", "0xabcd", err)
		require.Error(t, gotErr)

		txErr := blockchain.TxError{}
		require.True(t, errors.As(gotErr, &txErr))
		assert.Equal(t, "GuessingGame", txErr.Contract)
		assert.Equal(t, "0xabcd", txErr.TxHash)
		assert.True(t, errors.Is(gotErr, err), "should return the underlying error for comparison")
		assert.Contains(t, gotErr.Error(), "0xabcd")
	})
	t.Run("not_submitted", func(t *testing.T) {
		gotErr := blockchain.NewTxError("Lock", "", assert.AnError)
		assert.Contains(t, gotErr.Error(), "not submitted")
	})
}

func Test_NewChainIDMismatchError(t *testing.T) {
	gotErr := blockchain.NewChainIDMismatchError(4, "1337")
	require.Error(t, gotErr)

	mismatchErr := blockchain.ChainIDMismatchError{}
	require.True(t, errors.As(gotErr, &mismatchErr))
	assert.Equal(t, int64(4), mismatchErr.Expected)
	assert.Equal(t, "1337", mismatchErr.Actual)
}
