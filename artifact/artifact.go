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

// Package artifact reads contracts compiled by hardhat from its artifacts
// directory. Compilation itself is not done here: the artifacts directory is
// expected to be populated by running "npx hardhat compile".
package artifact

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/daltonclaybrook/GuessingGame/log"
)

// Formats of the hardhat files read by this package.
const (
	artifactFormat  = "hh-sol-artifact-1"
	debugFormat     = "hh-sol-dbg-1"
	buildInfoFormat = "hh-sol-build-info-1"

	buildInfoDir = "build-info"
	debugSuffix  = ".dbg.json"
)

type hardhatArtifact struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

type debugFile struct {
	Format    string `json:"_format"`
	BuildInfo string `json:"buildInfo"`
}

// Artifact is a compiled contract. It implements guessinggame.Contract.
type Artifact struct {
	name       string
	sourceName string
	path       string

	abi              abi.ABI
	bytecode         []byte
	deployedBytecode []byte
}

// Name returns the contract name.
func (a *Artifact) Name() string { return a.name }

// SourceName returns the path of the source file relative to the project root.
func (a *Artifact) SourceName() string { return a.sourceName }

// FullyQualifiedName returns the name in <source>:<contract> format, as required by explorers.
func (a *Artifact) FullyQualifiedName() string { return a.sourceName + ":" + a.name }

// Path returns the path of the artifact file.
func (a *Artifact) Path() string { return a.path }

// ABI returns the parsed contract ABI.
func (a *Artifact) ABI() abi.ABI { return a.abi }

// Bytecode returns the creation code of the contract.
func (a *Artifact) Bytecode() []byte { return a.bytecode }

// DeployedBytecode returns the runtime code of the contract.
func (a *Artifact) DeployedBytecode() []byte { return a.deployedBytecode }

// Store loads artifacts from a hardhat artifacts directory.
type Store struct {
	log.Logger
	dir string
}

// NewStore returns a store reading from the given directory.
func NewStore(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "opening artifacts directory")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("artifacts path %s is not a directory", dir)
	}
	return &Store{
		Logger: log.NewLoggerWithField("artifacts", dir),
		dir:    dir,
	}, nil
}

// Dir returns the artifacts directory.
func (s *Store) Dir() string { return s.dir }

// Load returns the artifact for the contract.
//
// The name can be a plain contract name (eg: GuessingGame) or a fully
// qualified name (eg: contracts/GuessingGame.sol:GuessingGame). A plain name
// that is defined in more than one source file is an error.
func (s *Store) Load(name string) (*Artifact, error) {
	path, err := s.find(name)
	if err != nil {
		return nil, err
	}
	a, err := readArtifact(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "loading artifact %s", name)
	}
	s.WithField("contract", a.FullyQualifiedName()).Debug("Loaded artifact")
	return a, nil
}

func (s *Store) find(name string) (string, error) {
	if name == "" {
		return "", errors.New("contract name is empty")
	}
	if i := strings.LastIndex(name, ":"); i != -1 {
		source, contract := name[:i], name[i+1:]
		path := filepath.Join(s.dir, filepath.FromSlash(source), contract+".json")
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, "cannot find artifact for %s", name)
		}
		return path, nil
	}

	var matches []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == buildInfoDir && filepath.Dir(path) == filepath.Clean(s.dir) {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == name+".json" {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "searching artifacts directory")
	}

	switch len(matches) {
	case 0:
		return "", errors.Errorf("cannot find artifact for %s in %s, run hardhat compile", name, s.dir)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Errorf("contract name %s is ambiguous (%s), use the fully qualified name",
			name, strings.Join(matches, ", "))
	}
}

func readArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var ha hardhatArtifact
	if err = json.Unmarshal(data, &ha); err != nil {
		return nil, errors.Wrap(err, "parsing artifact")
	}
	if ha.Format != artifactFormat {
		return nil, errors.Errorf("unsupported artifact format %q", ha.Format)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(ha.ABI))
	if err != nil {
		return nil, errors.Wrap(err, "parsing abi")
	}
	if HasLibraryPlaceholders(ha.Bytecode) {
		return nil, errors.New("bytecode has unlinked library references")
	}
	bytecode, err := decodeHex(ha.Bytecode)
	if err != nil {
		return nil, errors.WithMessage(err, "bytecode")
	}
	if len(bytecode) == 0 {
		return nil, errors.Errorf("%s has no bytecode, it is either abstract or an interface", ha.ContractName)
	}
	deployedBytecode, err := decodeHex(ha.DeployedBytecode)
	if err != nil {
		return nil, errors.WithMessage(err, "deployed bytecode")
	}

	return &Artifact{
		name:             ha.ContractName,
		sourceName:       ha.SourceName,
		path:             path,
		abi:              parsedABI,
		bytecode:         bytecode,
		deployedBytecode: deployedBytecode,
	}, nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" || s == "0x" {
		return []byte{}, nil
	}
	b, err := hexutil.Decode(s)
	return b, errors.Wrap(err, "decoding hex")
}
