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
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ParsePrivateKey parses the hex encoded secp256k1 private key, optionally
// prefixed by "0x".
//
// The error does not include the input, so that keys do not end up in logs.
func ParsePrivateKey(str string) (*ecdsa.PrivateKey, error) {
	str = strings.TrimPrefix(strings.TrimSpace(str), "0x")
	if str == "" {
		return nil, errors.New("private key is empty")
	}
	key, err := crypto.HexToECDSA(str)
	if err != nil {
		return nil, errors.New("parsing private key: invalid hex encoded secp256k1 key")
	}
	return key, nil
}

// ParseAddr parses the ethereum address from the given string. It should be
// the hexadecimal representation of the address, optionally prefixed by "0x".
// It can be all upper or all lower or mixed case. All of them will produce
// identical result.
func ParseAddr(str string) (common.Address, error) {
	str = strings.TrimSpace(str)
	if !common.IsHexAddress(str) {
		return common.Address{}, errors.Errorf("parsing address: invalid address %q", str)
	}
	return common.HexToAddress(str), nil
}

// AddrOf returns the address of the account controlled by the key.
func AddrOf(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}
