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

package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/blockchain"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum/internal"
)

// NewChainBackend initializes a connection to blockchain node and sets up a
// transactor that signs the transactions with the private key in the given
// credentials.
//
// If chainID is non zero, the id of the chain the node is connected to is
// checked against it and a blockchain.ChainIDMismatchError is returned if
// they differ.
func NewChainBackend(url string, chainID int64, chainConnTimeout, onChainTxTimeout time.Duration,
	cred guessinggame.Credential) (guessinggame.ChainBackend, error) {
	key, err := internal.ParsePrivateKey(cred.PrivateKey)
	if err != nil {
		return nil, err
	}
	ethereumBackend, actualChainID, err := dial(url, chainID, chainConnTimeout)
	if err != nil {
		return nil, err
	}
	cb, err := internal.NewChainBackend(ethereumBackend, key, actualChainID, onChainTxTimeout)
	if err != nil {
		ethereumBackend.Close()
		return nil, err
	}
	return cb, nil
}

// NewROChainBackend initializes a connection to blockchain node that can only
// be used for reading the state of contracts. It does not require any
// credentials.
func NewROChainBackend(url string, chainID int64, chainConnTimeout, onChainTxTimeout time.Duration) (
	guessinggame.ROChainBackend, error) {
	ethereumBackend, actualChainID, err := dial(url, chainID, chainConnTimeout)
	if err != nil {
		return nil, err
	}
	return internal.NewROChainBackend(ethereumBackend, actualChainID, onChainTxTimeout), nil
}

func dial(url string, chainID int64, chainConnTimeout time.Duration) (*ethclient.Client, *big.Int, error) {
	if url == "" {
		return nil, nil, errors.New("url of ethereum node is empty")
	}
	ctx, cancel := context.WithTimeout(context.Background(), chainConnTimeout)
	defer cancel()
	ethereumBackend, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to ethereum node at "+url)
	}

	actualChainID, err := ethereumBackend.ChainID(ctx)
	if err != nil {
		ethereumBackend.Close()
		return nil, nil, errors.Wrap(err, "reading chain id from ethereum node at "+url)
	}
	if chainID != 0 && actualChainID.Cmp(big.NewInt(chainID)) != 0 {
		ethereumBackend.Close()
		return nil, nil, blockchain.NewChainIDMismatchError(chainID, actualChainID.String())
	}
	return ethereumBackend, actualChainID, nil
}
