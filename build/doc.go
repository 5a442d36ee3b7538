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

/*
build implements commands that are called from the continuous integration scripts
and the makefile, so that the project can be built without remembering the linker
flags for the version information.

Available commands are:

	install -- install the guessinggame binary, with version and git revision set
	test    -- run unit tests, with options as in "go test" command
	integ   -- run unit and integration tests (needs ganache at ws://127.0.0.1:8545)
	lint    -- run golangci-lint with the configuration in the repository root

Run it from the repository root: go run ./build install
*/
package main
