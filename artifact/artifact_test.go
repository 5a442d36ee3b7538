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

package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame/artifact"
	"github.com/daltonclaybrook/GuessingGame/artifact/artifacttest"
)

func Test_NewStore(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		s, err := artifact.NewStore(artifacttest.Dir())
		require.NoError(t, err)
		assert.Equal(t, artifacttest.Dir(), s.Dir())
	})
	t.Run("err_missing_dir", func(t *testing.T) {
		_, err := artifact.NewStore(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		t.Log(err)
	})
	t.Run("err_not_a_dir", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))
		_, err := artifact.NewStore(file)
		require.Error(t, err)
		t.Log(err)
	})
}

func Test_Store_Load(t *testing.T) {
	s := artifacttest.NewStoreT(t)

	t.Run("happy_plain_name", func(t *testing.T) {
		a, err := s.Load("GuessingGame")
		require.NoError(t, err)
		assert.Equal(t, "GuessingGame", a.Name())
		assert.Equal(t, "contracts/GuessingGame.sol", a.SourceName())
		assert.Equal(t, "contracts/GuessingGame.sol:GuessingGame", a.FullyQualifiedName())
		assert.NotEmpty(t, a.Bytecode())
		assert.NotEmpty(t, a.DeployedBytecode())
		assert.Len(t, a.ABI().Constructor.Inputs, 5)
		_, ok := a.ABI().Methods["token"]
		assert.True(t, ok)
	})
	t.Run("happy_nested_source", func(t *testing.T) {
		a, err := s.Load(artifacttest.BrokenGame)
		require.NoError(t, err)
		assert.Equal(t, "contracts/test/BrokenGame.sol", a.SourceName())
	})
	t.Run("happy_fully_qualified_name", func(t *testing.T) {
		a, err := s.Load("contracts/GuessToken.sol:GuessToken")
		require.NoError(t, err)
		assert.Equal(t, "GuessToken", a.Name())
	})
	t.Run("err_unknown", func(t *testing.T) {
		_, err := s.Load("Unknown")
		require.Error(t, err)
		t.Log(err)
	})
	t.Run("err_unknown_fully_qualified_name", func(t *testing.T) {
		_, err := s.Load("contracts/Unknown.sol:Unknown")
		require.Error(t, err)
		t.Log(err)
	})
	t.Run("err_empty_name", func(t *testing.T) {
		_, err := s.Load("")
		require.Error(t, err)
	})
	t.Run("err_interface_without_bytecode", func(t *testing.T) {
		_, err := s.Load(artifacttest.IGuessingGame)
		require.Error(t, err)
		t.Log(err)
	})
}

func Test_Store_Load_Ambiguous(t *testing.T) {
	dir := artifacttest.CopyT(t)
	dup := filepath.Join(dir, "contracts", "test", "GuessingGame.sol")
	require.NoError(t, os.MkdirAll(dup, 0o750))
	data, err := os.ReadFile(filepath.Join(dir, "contracts", "GuessingGame.sol", "GuessingGame.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dup, "GuessingGame.json"), data, 0o600))

	s, err := artifact.NewStore(dir)
	require.NoError(t, err)

	_, err = s.Load("GuessingGame")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	a, err := s.Load("contracts/GuessingGame.sol:GuessingGame")
	require.NoError(t, err)
	assert.Equal(t, "GuessingGame", a.Name())
}

func Test_Store_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"err_not_json", "not json"},
		{"err_wrong_format", `{"_format":"foundry","contractName":"Bad","abi":[],"bytecode":"0x00"}`},
		{"err_bad_abi", `{"_format":"hh-sol-artifact-1","contractName":"Bad","abi":{},"bytecode":"0x00"}`},
		{"err_bad_hex", `{"_format":"hh-sol-artifact-1","contractName":"Bad","abi":[],"bytecode":"0xzz"}`},
		{"err_unlinked", `{"_format":"hh-sol-artifact-1","contractName":"Bad","abi":[],` +
			`"bytecode":"0x73__$0123456789abcdef0123456789abcdef01$__00"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "contracts", "Bad.sol"), 0o750))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "contracts", "Bad.sol", "Bad.json"),
				[]byte(tt.content), 0o600))
			s, err := artifact.NewStore(dir)
			require.NoError(t, err)

			_, err = s.Load("Bad")
			require.Error(t, err)
			t.Log(err)
		})
	}
}

func Test_Artifact_BuildInfo(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		a := artifacttest.LoadT(t, "GuessingGame")
		bi, err := a.BuildInfo()
		require.NoError(t, err)
		assert.Equal(t, artifacttest.SolcVersion, bi.SolcVersion)
		assert.Equal(t, artifacttest.CompilerVersion, bi.CompilerVersion())
		assert.True(t, bi.HasSource(a.SourceName()))
		assert.False(t, bi.HasSource("contracts/Missing.sol"))
	})
	t.Run("happy_nested_source", func(t *testing.T) {
		a := artifacttest.LoadT(t, artifacttest.BrokenGame)
		bi, err := a.BuildInfo()
		require.NoError(t, err)
		assert.True(t, bi.HasSource(a.SourceName()))
	})
	t.Run("err_missing_build_info", func(t *testing.T) {
		dir := artifacttest.CopyT(t)
		require.NoError(t, os.RemoveAll(filepath.Join(dir, "build-info")))
		s, err := artifact.NewStore(dir)
		require.NoError(t, err)
		a, err := s.Load("GuessingGame")
		require.NoError(t, err)

		_, err = a.BuildInfo()
		require.Error(t, err)
		t.Log(err)
	})
	t.Run("err_missing_debug_file", func(t *testing.T) {
		dir := artifacttest.CopyT(t)
		require.NoError(t, os.Remove(filepath.Join(dir, "contracts", "GuessToken.sol", "GuessToken.dbg.json")))
		s, err := artifact.NewStore(dir)
		require.NoError(t, err)
		a, err := s.Load("GuessToken")
		require.NoError(t, err)

		_, err = a.BuildInfo()
		require.Error(t, err)
		t.Log(err)
	})
}
