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

package explorer

// API endpoints of etherscan for the chains supported out of the box. Other
// chains need the endpoint to be configured explicitly.
var apiURLs = map[int64]string{
	1:        "https://api.etherscan.io/api",
	4:        "https://api-rinkeby.etherscan.io/api",
	5:        "https://api-goerli.etherscan.io/api",
	11155111: "https://api-sepolia.etherscan.io/api",
}

// APIURL returns the etherscan endpoint for the chain.
func APIURL(chainID int64) (string, bool) {
	url, ok := apiURLs[chainID]
	return url, ok
}
