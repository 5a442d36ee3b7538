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

// Package artifacttest provides the hardhat artifacts of small hand assembled
// contracts used in tests:
//
//   - GuessingGame: constructor takes the game arguments and creates a
//     GuessToken, token() returns the address of that token.
//   - GuessToken, Lock: constructors ignore their arguments.
//   - BrokenGame: like GuessingGame, but every call reverts.
//   - RevertingGame: constructor always reverts.
//   - IGuessingGame: interface without bytecode.
package artifacttest

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/otiai10/copy"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame/artifact"
)

// Names of the test contracts.
const (
	BrokenGame    = "BrokenGame"
	RevertingGame = "RevertingGame"
	IGuessingGame = "IGuessingGame"

	// SolcVersion is the compiler version in the test build info.
	SolcVersion = "0.8.15"
	// CompilerVersion is the long compiler version in the test build info, in explorer format.
	CompilerVersion = "v0.8.15+commit.e14f2714"
)

// Dir returns the path of the test artifacts directory.
func Dir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot determine path of test artifacts")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", "artifacts")
}

// CopyT copies the test artifacts to a temporary directory that is removed
// when the test completes. Use it for tests that modify the artifacts.
func CopyT(t *testing.T) string {
	dir := filepath.Join(t.TempDir(), "artifacts")
	require.NoError(t, copy.Copy(Dir(), dir))
	return dir
}

// NewStoreT returns a store reading the test artifacts.
func NewStoreT(t *testing.T) *artifact.Store {
	s, err := artifact.NewStore(Dir())
	require.NoError(t, err)
	return s
}

// LoadT loads the test artifact with the given name.
func LoadT(t *testing.T, name string) *artifact.Artifact {
	a, err := NewStoreT(t).Load(name)
	require.NoError(t, err)
	return a
}
