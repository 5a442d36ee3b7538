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

package blockchain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// NoCodeError indicates that there is no contract deployed at the address.
type NoCodeError struct {
	Address string
}

// Error implements error interface.
func (e NoCodeError) Error() string {
	return fmt.Sprintf("no contract code at address %s", e.Address)
}

// NewNoCodeError constructs and returns a NoCodeError.
func NewNoCodeError(addr common.Address) error {
	return errors.WithStack(NoCodeError{Address: addr.Hex()})
}

// TxError indicates that an on-chain transaction for the contract could not be
// submitted, was not mined within the timeout or failed during execution.
//
// TxHash is empty if the transaction was never submitted.
type TxError struct {
	Contract string
	TxHash   string
	err      error
}

// Error implements error interface.
func (e TxError) Error() string {
	if e.TxHash == "" {
		return fmt.Sprintf("transaction for %s not submitted: %v", e.Contract, e.err)
	}
	return fmt.Sprintf("transaction %s for %s failed: %v", e.TxHash, e.Contract, e.err)
}

// Unwrap returns the original error.
func (e TxError) Unwrap() error {
	return e.err
}

// NewTxError constructs and returns a TxError.
func NewTxError(contract, txHash string, err error) error {
	return errors.WithStack(TxError{
		Contract: contract,
		TxHash:   txHash,
		err:      err,
	})
}

// ChainIDMismatchError indicates that the node is connected to a different
// chain than the one configured for the network.
type ChainIDMismatchError struct {
	Expected int64
	Actual   string
}

// Error implements error interface.
func (e ChainIDMismatchError) Error() string {
	return fmt.Sprintf("configured chain id is %d, but node is connected to chain id %s", e.Expected, e.Actual)
}

// NewChainIDMismatchError constructs and returns a ChainIDMismatchError.
func NewChainIDMismatchError(expected int64, actual string) error {
	return errors.WithStack(ChainIDMismatchError{
		Expected: expected,
		Actual:   actual,
	})
}
