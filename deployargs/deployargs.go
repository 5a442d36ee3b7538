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

// Package deployargs is the single source of the constructor arguments used
// when deploying and when verifying the contracts. Deployment and
// verification must encode byte for byte identical arguments, so neither of
// them should construct arguments on their own.
package deployargs

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/daltonclaybrook/GuessingGame/currency"
)

const (
	commissioner = "0x44579397d2866716aB34B1e2f77fce964c8616C5"
	initialAsker = "0x44579397d2866716aB34B1e2f77fce964c8616C5"

	clueInterval                     = 10 * time.Minute // New clue every 10 minutes.
	expirationIntervalAfterFinalClue = 10 * time.Minute // Question expires 10 minutes after final clue.
	nextAskerTimeoutInterval         = 10 * time.Minute // Next asker has 10 minutes to ask next question.

	lockDuration = 365 * 24 * time.Hour
	lockedAmount = "1 ETH"
)

// GameArguments are the constructor arguments of the GuessingGame contract.
// Intervals are passed to the contract in seconds.
type GameArguments struct {
	Commissioner                     common.Address
	InitialAsker                     common.Address
	ClueInterval                     time.Duration
	ExpirationIntervalAfterFinalClue time.Duration
	NextAskerTimeoutInterval         time.Duration
}

// GameArgs returns the constructor arguments for the GuessingGame contract.
// It returns the same values on every call.
func GameArgs() GameArguments {
	return GameArguments{
		Commissioner:                     common.HexToAddress(commissioner),
		InitialAsker:                     common.HexToAddress(initialAsker),
		ClueInterval:                     clueInterval,
		ExpirationIntervalAfterFinalClue: expirationIntervalAfterFinalClue,
		NextAskerTimeoutInterval:         nextAskerTimeoutInterval,
	}
}

// Values returns the arguments in the order of the constructor parameters.
func (a GameArguments) Values() []interface{} {
	return []interface{}{
		a.Commissioner,
		a.InitialAsker,
		seconds(a.ClueInterval),
		seconds(a.ExpirationIntervalAfterFinalClue),
		seconds(a.NextAskerTimeoutInterval),
	}
}

// TokenArgs returns the constructor arguments of the GuessToken contract
// created by the game at the given address.
func TokenArgs(game common.Address) []interface{} {
	return []interface{}{game}
}

// LockArguments are the constructor arguments and the value sent when
// deploying the Lock example contract.
type LockArguments struct {
	UnlockTime time.Time
	Value      *big.Int // In wei.
}

// LockArgs returns the arguments for a Lock deployed at the given time, that
// unlocks a year later and holds 1 ETH.
func LockArgs(now time.Time) LockArguments {
	value, err := currency.ParseAmount(lockedAmount)
	if err != nil {
		panic("parsing constant lock amount: " + err.Error())
	}
	return LockArguments{
		UnlockTime: now.Add(lockDuration).Round(time.Second),
		Value:      value,
	}
}

// Values returns the arguments in the order of the constructor parameters.
func (a LockArguments) Values() []interface{} {
	return []interface{}{big.NewInt(a.UnlockTime.Unix())}
}

func seconds(d time.Duration) *big.Int {
	return big.NewInt(int64(d / time.Second))
}
