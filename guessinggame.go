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

package guessinggame

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Config represents the configuration of the deployer, assembled from the
// built-in defaults, the config file, the environment and the command line
// flags (in increasing order of precedence).
type Config struct {
	LogLevel string `yaml:"logLevel"` // LogLevel represents the log level for the tool and all derived loggers.
	LogFile  string `yaml:"logFile"`  // LogFile represents the file to write logs. Empty string represents stdout.

	Network   string                   `yaml:"network"`   // Name of the network to use, must be a key in Networks.
	Networks  map[string]NetworkConfig `yaml:"networks"`  // Known networks, keyed by lower case name.
	Solidity  string                   `yaml:"solidity"`  // Solidity compiler version the artifacts are expected to be built with.
	Artifacts string                   `yaml:"artifacts"` // Path to the hardhat artifacts directory.

	ChainConnTimeout time.Duration `yaml:"chainConnTimeout"` // Timeout for connecting to blockchain node.
	OnChainTxTimeout time.Duration `yaml:"onChainTxTimeout"` // Timeout to wait for confirmation of on-chain tx.

	Explorer ExplorerConfig `yaml:"explorer"`
}

// NetworkConfig describes an ethereum compatible network the contracts can be
// deployed to.
type NetworkConfig struct {
	Name       string `mapstructure:"-" yaml:"-"`
	ChainID    int64  `yaml:"chainId"`
	URL        string `yaml:"url"`
	PrivateKey string `yaml:"privateKey"` // Hex encoded private key of the account signing the transactions.
}

// ExplorerConfig holds the parameters for the etherscan compatible block
// explorer used for source verification.
type ExplorerConfig struct {
	APIKey string `yaml:"apiKey"`
	// APIURL overrides the explorer endpoint. When empty, it is derived from the chain id.
	APIURL string `yaml:"apiUrl"`

	Timeout      time.Duration `yaml:"timeout"`      // Timeout for each http request.
	PollInterval time.Duration `yaml:"pollInterval"` // Interval between verification status checks.
	MaxPolls     uint64        `yaml:"maxPolls"`     // Max number of status checks before giving up.
	MaxRetries   uint64        `yaml:"maxRetries"`   // Retries on transport errors. Zero disables retry.
	RateLimit    float64       `yaml:"rateLimit"`    // Max requests per second. Zero disables the limit.
}

// SelectedNetwork returns the config of the network named in Network.
func (c Config) SelectedNetwork() (NetworkConfig, bool) {
	nc, ok := c.Networks[c.Network]
	if ok {
		nc.Name = c.Network
	}
	return nc, ok
}

// Credential represents the parameters required to sign on-chain transactions.
type Credential struct {
	PrivateKey string
}

// ContractName identifies a compiled contract in the artifact store.
type ContractName string

// Contracts known to the deployer.
const (
	GuessingGame ContractName = "GuessingGame"
	GuessToken   ContractName = "GuessToken"
	Lock         ContractName = "Lock"
)

// Contract is a compiled contract that can be deployed and called.
type Contract interface {
	Name() string
	ABI() abi.ABI
	Bytecode() []byte
}

// ChainBackend wraps the methods required for deploying contracts and
// reading their state.
//
// The timeout for on-chain transaction should be implemented by the
// corresponding backend. It is up to the implementation to make the value user
// configurable.
type ChainBackend interface {
	ROChainBackend

	// Sender returns the address of the account signing the transactions.
	Sender() common.Address
	// Deploy submits the deployment transaction and waits until it is mined.
	// It returns the zero address on any error.
	Deploy(ctx context.Context, c Contract, value *big.Int, args ...interface{}) (
		common.Address, *types.Transaction, error)
}

// ROChainBackend wraps the read only methods of the chain backend.
type ROChainBackend interface {
	ChainID() *big.Int
	CodeAt(ctx context.Context, addr common.Address) ([]byte, error)
	BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error)
	Call(ctx context.Context, c Contract, addr common.Address, method string, args ...interface{}) (
		[]interface{}, error)
}

// VerificationRequest holds the data submitted to the block explorer for
// verifying the source of a deployed contract.
type VerificationRequest struct {
	Address         common.Address
	ContractName    string // Fully qualified name, eg: contracts/GuessingGame.sol:GuessingGame.
	CompilerVersion string // Long version of solc prefixed by "v", eg: v0.8.15+commit.e14f2714.
	SourceCode      string // Solidity standard JSON input.
	ConstructorArgs string // ABI encoded constructor arguments in hex, without the 0x prefix.
}

// Explorer wraps the methods of a block explorer used for source verification.
type Explorer interface {
	IsVerified(ctx context.Context, addr common.Address) (bool, error)
	// Verify submits the request and waits for the explorer to process it.
	// It returns the identifier assigned to the submission.
	Verify(ctx context.Context, req VerificationRequest) (guid string, _ error)
}

// Currency represents a parser that can convert between string representation of a currency and
// its equivalent value in base unit represented as a big integer.
type Currency interface {
	Parse(string) (*big.Int, error)
	Print(*big.Int) string
}
