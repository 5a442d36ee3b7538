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
	"crypto/ecdsa"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// Private key of the first account funded by the ganache-cli node used in
// integration tests, see the command in ChainURL.
//
// Ethereum address corresponding to this key: 0x8450c0055cB180C7C37A25866132A740b812937B.
const (
	GanachePrivateKey = "0x1fedd636dbc7e8d41a0622a2040b86fea8842cef9d4aa4c582aad00465b7acff"
	GanacheAddr       = "0x8450c0055cB180C7C37A25866132A740b812937B"
)

// NewKeysT generates n private keys using the given randomness.
func NewKeysT(t *testing.T, rng *rand.Rand, n uint) []*ecdsa.PrivateKey {
	keys := make([]*ecdsa.PrivateKey, n)
	for i := range keys {
		var err error
		keys[i], err = ecdsa.GenerateKey(crypto.S256(), rng)
		require.NoError(t, err)
	}
	return keys
}

// KeyToHex returns the hex representation of the private key, prefixed by "0x",
// as used in the config.
func KeyToHex(key *ecdsa.PrivateKey) string {
	return "0x" + hex.EncodeToString(crypto.FromECDSA(key))
}

// NewRandomAddress generates a random address using the given randomness.
func NewRandomAddress(rng *rand.Rand) common.Address {
	var addr common.Address
	rng.Read(addr[:]) // nolint: gosec	// math/rand.Read always returns a nil error.
	return addr
}
