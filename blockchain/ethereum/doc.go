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

// Package ethereum provides the on-chain transaction backend for ethereum
// compatible networks. The actual implementation of the functionality is done
// in the internal package. This implementation can be configured for both
// real and test uses and shared by this package and the ethereumtest package.
//
// The exported functions in this package use only those types defined in the
// root package of this project and in std lib, so that the rest of the project
// does not depend on the connection details of go-ethereum.
package ethereum
