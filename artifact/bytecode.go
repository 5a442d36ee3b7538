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
	"bytes"
	"regexp"
)

// MatchType classifies how deployed code relates to the code in an artifact.
type MatchType string

// Enumeration of match types.
const (
	FullMatch    MatchType = "full"    // Identical, including metadata.
	PartialMatch MatchType = "partial" // Executable code is identical, metadata differs.
	NoMatch      MatchType = "none"
)

// CBOR metadata marker (Solidity >=0.6.0): map with 2 entries, key "ipfs".
var metadataMarker = []byte{0xa2, 0x64, 0x69, 0x70, 0x66, 0x73}

// Library placeholder: __$<34 hex chars>$__.
var libraryPlaceholder = regexp.MustCompile(`__\$[a-fA-F0-9]{34}\$__`)

// StripMetadata removes the CBOR metadata appended to the bytecode by solc.
// The last two bytes of the code hold the length of the metadata.
func StripMetadata(code []byte) []byte {
	if len(code) < 2 {
		return code
	}
	n := int(code[len(code)-2])<<8 | int(code[len(code)-1])
	end := len(code) - 2 - n
	if n > 0 && end >= 0 && bytes.HasPrefix(code[end:], metadataMarker) {
		return code[:end]
	}

	// Length suffix does not point to a metadata block, fall back to the last marker.
	idx := bytes.LastIndex(code, metadataMarker)
	if idx == -1 {
		return code
	}
	return code[:idx]
}

// CompareBytecode compares the code deployed at an address to the runtime code in an artifact.
func CompareBytecode(deployed, expected []byte) MatchType {
	if len(deployed) == 0 || len(expected) == 0 {
		return NoMatch
	}
	if bytes.Equal(deployed, expected) {
		return FullMatch
	}
	if bytes.Equal(StripMetadata(deployed), StripMetadata(expected)) {
		return PartialMatch
	}
	return NoMatch
}

// HasLibraryPlaceholders checks if hex encoded bytecode has unlinked library references.
func HasLibraryPlaceholders(bytecodeHex string) bool {
	return libraryPlaceholder.MatchString(bytecodeHex)
}
