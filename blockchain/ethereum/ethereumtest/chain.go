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

package ethereumtest

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/backends"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum/internal"
)

// Chain related parameters for connecting to ganache-cli node in integration test environment.
//
// Command to start the ganache-cli node:
//
// ganache-cli --account="0x1fedd636dbc7e8d41a0622a2040b86fea8842cef9d4aa4c582aad00465b7acff,10000000000000000000"
const (
	RandSeedForTestAccs = 1729 // Seed required for generating accounts used in tests.
	OnChainTxTimeout    = 1 * time.Minute
	ChainURL            = "ws://127.0.0.1:8545"
	ChainConnTimeout    = 10 * time.Second
	ChainID             = 1337 // Default chain id for ganache-cli private network and the simulated backend.

	simGasLimit = 8000000
)

// InitialBalance is the balance (100 ETH) of each account funded in the simulated backend.
var InitialBalance = new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))

// ChainBackendSetup is a test setup that uses a simulated blockchain backend
// (for details on this backend, see go-ethereum). The first key is used for
// signing transactions in ChainBackend.
type ChainBackendSetup struct {
	Sim          *backends.SimulatedBackend
	Keys         []*ecdsa.PrivateKey
	Accs         []common.Address
	ChainBackend guessinggame.ChainBackend
}

// NewSimChainBackendSetup returns a simulated contract backend. It also
// generates the given number of accounts and funds them each with the
// InitialBalance.
func NewSimChainBackendSetup(t *testing.T, rng *rand.Rand, numAccs uint) *ChainBackendSetup {
	require.NotZero(t, numAccs, "at least one account is required")
	keys := NewKeysT(t, rng, numAccs)
	accs := make([]common.Address, len(keys))
	alloc := core.GenesisAlloc{}
	for i := range keys {
		accs[i] = internal.AddrOf(keys[i])
		alloc[accs[i]] = core.GenesisAccount{Balance: InitialBalance}
	}

	sim := backends.NewSimulatedBackend(alloc, simGasLimit)
	t.Cleanup(func() {
		sim.Close() // nolint: errcheck, gosec
	})

	setup := &ChainBackendSetup{
		Sim:  sim,
		Keys: keys,
		Accs: accs,
	}
	setup.ChainBackend = setup.NewChainBackendT(t, keys[0])
	return setup
}

// NewChainBackendT returns a chain backend connected to the simulated chain of
// the setup that signs transactions with the given key. The key need not be
// funded.
func (s *ChainBackendSetup) NewChainBackendT(t *testing.T, key *ecdsa.PrivateKey) guessinggame.ChainBackend {
	cb, err := internal.NewChainBackend(&autoCommitBackend{s.Sim}, key, big.NewInt(ChainID), OnChainTxTimeout)
	require.NoError(t, err)
	return cb
}

// ROChainBackend returns a read only chain backend connected to the simulated
// chain of the setup.
func (s *ChainBackendSetup) ROChainBackend() guessinggame.ROChainBackend {
	return internal.NewROChainBackend(&autoCommitBackend{s.Sim}, big.NewInt(ChainID), OnChainTxTimeout)
}

// autoCommitBackend mines a new block for each transaction sent to the
// simulated backend, so that deployments are confirmed without an explicit
// call to Commit.
type autoCommitBackend struct {
	*backends.SimulatedBackend
}

// SendTransaction sends the transaction and mines a block including it.
func (b *autoCommitBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := b.SimulatedBackend.SendTransaction(ctx, tx); err != nil {
		return err
	}
	b.Commit()
	return nil
}
