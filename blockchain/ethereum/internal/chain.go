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

package internal

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/blockchain"
)

// ContractBackend wraps the methods of an ethereum node required by the chain
// backend. It is implemented by both ethclient.Client and the simulated
// backend of go-ethereum.
type ContractBackend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// ROChainBackend provides ethereum specific functionality for reading the
// state of contracts.
type ROChainBackend struct {
	// Cb is the instance of contract backend that will be used for all on-chain communications.
	Cb ContractBackend
	// TxTimeout is the max time to wait for confirmation of transactions on blockchain.
	// If this expires, a transactions is considered failed.
	// Use sufficiently large values when connecting to mainnet.
	TxTimeout time.Duration

	chainID *big.Int
}

// ChainBackend provides ethereum specific functionality for deploying
// contracts, in addition to that of ROChainBackend.
type ChainBackend struct {
	*ROChainBackend
	// Transactor signs the transactions. Context and Value are set for each
	// transaction on a copy.
	Transactor *bind.TransactOpts
}

// NewROChainBackend returns a read only chain backend.
func NewROChainBackend(cb ContractBackend, chainID *big.Int, txTimeout time.Duration) *ROChainBackend {
	return &ROChainBackend{
		Cb:        cb,
		TxTimeout: txTimeout,
		chainID:   new(big.Int).Set(chainID),
	}
}

// NewChainBackend returns a chain backend that signs transactions with the
// given key. The chain id is used for replay protection (EIP-155).
func NewChainBackend(cb ContractBackend, key *ecdsa.PrivateKey, chainID *big.Int, txTimeout time.Duration) (
	*ChainBackend, error) {
	tr, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "initializing transactor")
	}
	return &ChainBackend{
		ROChainBackend: NewROChainBackend(cb, chainID, txTimeout),
		Transactor:     tr,
	}, nil
}

// ChainID returns the id of the chain the backend is connected to.
func (cb *ROChainBackend) ChainID() *big.Int {
	return new(big.Int).Set(cb.chainID)
}

// CodeAt returns the code deployed at the address, in the latest block.
func (cb *ROChainBackend) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, cb.TxTimeout)
	defer cancel()
	code, err := cb.Cb.CodeAt(ctx, addr, nil)
	return code, errors.Wrap(err, "reading code at "+addr.Hex())
}

// BalanceAt returns the balance of the address, in the latest block.
func (cb *ROChainBackend) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, cb.TxTimeout)
	defer cancel()
	bal, err := cb.Cb.BalanceAt(ctx, addr, nil)
	return bal, errors.Wrap(err, "reading on-chain balance for "+addr.Hex())
}

// Call invokes a constant method of the contract at the address and returns
// the unpacked outputs.
//
// If there is no code at the address, a blockchain.NoCodeError is returned.
func (cb *ROChainBackend) Call(ctx context.Context, c guessinggame.Contract, addr common.Address, method string,
	args ...interface{}) ([]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, cb.TxTimeout)
	defer cancel()

	bound := bind.NewBoundContract(addr, c.ABI(), cb.Cb, cb.Cb, cb.Cb)
	var out []interface{}
	err := bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...)
	if errors.Is(err, bind.ErrNoCode) {
		return nil, blockchain.NewNoCodeError(addr)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "calling %s.%s at %s", c.Name(), method, addr.Hex())
	}
	return out, nil
}

// Sender returns the address of the account signing the transactions.
func (cb *ChainBackend) Sender() common.Address {
	return cb.Transactor.From
}

// Deploy submits the deployment transaction for the contract and waits until
// it is mined. The args should be of the go types expected by the abi encoder
// for the constructor parameters.
//
// On any error, it returns the zero address and a blockchain.TxError. The
// transaction is returned if it was submitted.
func (cb *ChainBackend) Deploy(ctx context.Context, c guessinggame.Contract, value *big.Int, args ...interface{}) (
	common.Address, *types.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, cb.TxTimeout)
	defer cancel()

	opts := *cb.Transactor
	opts.Context = ctx
	opts.Value = value

	addr, tx, _, err := bind.DeployContract(&opts, c.ABI(), c.Bytecode(), cb.Cb, args...)
	if err != nil {
		return common.Address{}, nil, blockchain.NewTxError(c.Name(), "", err)
	}

	receipt, err := bind.WaitMined(ctx, cb.Cb, tx)
	if err != nil {
		return common.Address{}, tx, blockchain.NewTxError(c.Name(), tx.Hash().Hex(),
			errors.Wrap(err, "waiting for confirmation"))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Address{}, tx, blockchain.NewTxError(c.Name(), tx.Hash().Hex(),
			errors.New("execution reverted"))
	}

	code, err := cb.Cb.CodeAt(ctx, addr, nil)
	if err != nil {
		return common.Address{}, tx, blockchain.NewTxError(c.Name(), tx.Hash().Hex(), err)
	}
	if len(code) == 0 {
		return common.Address{}, tx, blockchain.NewTxError(c.Name(), tx.Hash().Hex(),
			blockchain.NewNoCodeError(addr))
	}
	return addr, tx, nil
}
