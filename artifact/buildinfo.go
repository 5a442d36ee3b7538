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

package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// BuildInfo holds the compiler input used to produce an artifact. Explorers
// recompile the contract from this input during source verification.
type BuildInfo struct {
	ID              string          `json:"id"`
	Format          string          `json:"_format"`
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"` // Solidity standard JSON input.
}

// CompilerVersion returns the long compiler version in the format expected by
// etherscan, eg: v0.8.15+commit.e14f2714.
func (b *BuildInfo) CompilerVersion() string {
	return "v" + strings.TrimPrefix(b.SolcLongVersion, "v")
}

// BuildInfo reads the build info referenced by the debug file next to the
// artifact.
func (a *Artifact) BuildInfo() (*BuildInfo, error) {
	dbgPath := strings.TrimSuffix(a.path, ".json") + debugSuffix
	data, err := os.ReadFile(filepath.Clean(dbgPath))
	if err != nil {
		return nil, errors.Wrapf(err, "reading debug file of %s", a.name)
	}
	var dbg debugFile
	if err = json.Unmarshal(data, &dbg); err != nil {
		return nil, errors.Wrap(err, "parsing debug file")
	}
	if dbg.Format != debugFormat {
		return nil, errors.Errorf("unsupported debug file format %q", dbg.Format)
	}
	if dbg.BuildInfo == "" {
		return nil, errors.Errorf("debug file of %s does not reference a build info", a.name)
	}

	// Path in debug file is relative to the directory of the debug file.
	biPath := filepath.Join(filepath.Dir(dbgPath), filepath.FromSlash(dbg.BuildInfo))
	data, err = os.ReadFile(filepath.Clean(biPath))
	if err != nil {
		return nil, errors.Wrapf(err, "reading build info of %s", a.name)
	}
	var bi BuildInfo
	if err = json.Unmarshal(data, &bi); err != nil {
		return nil, errors.Wrap(err, "parsing build info")
	}
	if bi.Format != buildInfoFormat {
		return nil, errors.Errorf("unsupported build info format %q", bi.Format)
	}
	if bi.SolcLongVersion == "" || len(bi.Input) == 0 {
		return nil, errors.Errorf("build info %s has no compiler version or input", bi.ID)
	}
	return &bi, nil
}

// HasSource reports whether the compiler input includes the source file.
func (b *BuildInfo) HasSource(sourceName string) bool {
	var input struct {
		Sources map[string]json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(b.Input, &input); err != nil {
		return false
	}
	_, ok := input.Sources[sourceName]
	return ok
}
