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

// Package deployer deploys the compiled contracts to the configured network.
package deployer

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/artifact"
	"github.com/daltonclaybrook/GuessingGame/currency"
	"github.com/daltonclaybrook/GuessingGame/deployargs"
	"github.com/daltonclaybrook/GuessingGame/log"
)

// Result describes a mined deployment.
type Result struct {
	Contract string
	Network  string
	Address  common.Address
	TxHash   common.Hash
	Args     []interface{} // Constructor arguments, converted to abi types.
	Value    *big.Int
}

// Deployer deploys contracts from the artifact store using the chain backend.
type Deployer struct {
	log.Logger

	store   *artifact.Store
	chain   guessinggame.ChainBackend
	network string
	out     io.Writer
}

// New returns a deployer for the network. The outcome of each deployment is
// printed to out.
func New(store *artifact.Store, chain guessinggame.ChainBackend, network string, out io.Writer) *Deployer {
	return &Deployer{
		Logger:  log.NewLoggerWithField("network", network),
		store:   store,
		chain:   chain,
		network: network,
		out:     out,
	}
}

// Deploy deploys the contract with the given constructor arguments and sends
// value (in wei, can be nil) along with the deployment. It blocks until the
// transaction is mined.
//
// No retry is done. On failure, the error is logged and returned.
func (d *Deployer) Deploy(ctx context.Context, name string, value *big.Int, args ...interface{}) (Result, error) {
	logger := d.WithField("contract", name)
	result, err := d.deploy(ctx, logger, name, value, args)
	if err != nil {
		logger.WithError(err).Error("Deploying contract")
		return Result{}, errors.WithMessagef(err, "deploying %s to network %s", name, d.network)
	}
	logger.WithFields(log.Fields{"address": result.Address.Hex(), "tx": result.TxHash.Hex()}).
		Info("Deployed contract")
	return result, nil
}

func (d *Deployer) deploy(ctx context.Context, logger log.Logger, name string, value *big.Int, args []interface{}) (
	Result, error) {
	a, err := d.store.Load(name)
	if err != nil {
		return Result{}, err
	}
	converted, err := a.ConstructorArgs(args...)
	if err != nil {
		return Result{}, err
	}

	sender := d.chain.Sender()
	if bal, err := d.chain.BalanceAt(ctx, sender); err == nil {
		logger.Infof("Deploying from %s with balance %s ETH", sender.Hex(), currency.NewParser(currency.ETH).Print(bal))
	} else {
		logger.WithError(err).Warn("Reading balance of deployer")
	}
	logger.Debugf("Constructor arguments: %s", artifact.FormatArgs(converted))

	addr, tx, err := d.chain.Deploy(ctx, a, value, converted...)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Contract: a.Name(),
		Network:  d.network,
		Address:  addr,
		TxHash:   tx.Hash(),
		Args:     converted,
		Value:    value,
	}, nil
}

// DeployGame deploys the GuessingGame contract with the deployment arguments.
func (d *Deployer) DeployGame(ctx context.Context) (Result, error) {
	result, err := d.Deploy(ctx, string(guessinggame.GuessingGame), nil, deployargs.GameArgs().Values()...)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(d.out, "%s contract deployed to network %s at %s\n", result.Contract, d.network, result.Address.Hex())
	return result, nil
}

// DeployLock deploys the Lock example contract, locking 1 ETH for a year from
// now.
func (d *Deployer) DeployLock(ctx context.Context, now time.Time) (Result, error) {
	lockArgs := deployargs.LockArgs(now)
	result, err := d.Deploy(ctx, string(guessinggame.Lock), lockArgs.Value, lockArgs.Values()...)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(d.out, "Lock with %s ETH deployed to: %s\n",
		currency.NewParser(currency.ETH).Print(lockArgs.Value), result.Address.Hex())
	return result, nil
}

// DeployByName deploys one of the contracts known to the deployer.
func (d *Deployer) DeployByName(ctx context.Context, name guessinggame.ContractName, now time.Time) (Result, error) {
	switch name {
	case guessinggame.GuessingGame:
		return d.DeployGame(ctx)
	case guessinggame.Lock:
		return d.DeployLock(ctx, now)
	default:
		return Result{}, errors.Errorf("unknown contract %q, should be %s or %s",
			name, guessinggame.GuessingGame, guessinggame.Lock)
	}
}
