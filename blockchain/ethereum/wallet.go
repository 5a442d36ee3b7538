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
	"github.com/ethereum/go-ethereum/common"

	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum/internal"
)

// ParseAddr parses the hex representation of an ethereum address, optionally
// prefixed by "0x". The checksum in mixed case addresses is not validated.
func ParseAddr(str string) (common.Address, error) {
	return internal.ParseAddr(str)
}

// SenderAddr returns the address of the account controlled by the hex encoded
// private key.
func SenderAddr(privateKey string) (common.Address, error) {
	key, err := internal.ParsePrivateKey(privateKey)
	if err != nil {
		return common.Address{}, err
	}
	return internal.AddrOf(key), nil
}
