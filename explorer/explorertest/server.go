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

// Package explorertest provides a fake etherscan compatible explorer for tests.
package explorertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/daltonclaybrook/GuessingGame"
)

// APIKey is the only key accepted by the fake explorer.
const APIKey = "test-api-key"

// Submission is a verification request received by the fake explorer.
type Submission struct {
	GUID            string
	Address         common.Address
	ContractName    string
	CompilerVersion string
	CodeFormat      string
	SourceCode      string
	ConstructorArgs string
}

type pendingCheck struct {
	submission Submission
	polls      int
}

// Server is a fake explorer. A submission passes verification if the contract
// was registered with Deployed and the constructor arguments match.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	deployed     map[common.Address]string // Constructor args in lower case hex, without 0x.
	verified     map[common.Address]bool
	checks       map[string]*pendingCheck
	submissions  []Submission
	requests     int
	requestTimes []time.Time
	pendingPolls int
	failNext     int
}

// NewServerT starts a fake explorer that is closed when the test completes.
func NewServerT(t *testing.T) *Server {
	s := &Server{
		deployed: make(map[common.Address]string),
		verified: make(map[common.Address]bool),
		checks:   make(map[string]*pendingCheck),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Config returns an explorer config pointing to the fake explorer, with short
// intervals suitable for tests.
func (s *Server) Config() guessinggame.ExplorerConfig {
	return guessinggame.ExplorerConfig{
		APIKey:       APIKey,
		APIURL:       s.URL + "/api",
		Timeout:      5 * time.Second,
		PollInterval: time.Millisecond,
		MaxPolls:     5,
	}
}

// Deployed registers the contract at the address, deployed with the given
// ABI encoded constructor arguments.
func (s *Server) Deployed(addr common.Address, constructorArgs []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deployed[addr] = fmt.Sprintf("%x", constructorArgs)
}

// SetVerified marks the contract as verified.
func (s *Server) SetVerified(addr common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verified[addr] = true
}

// IsVerified returns if the contract was verified.
func (s *Server) IsVerified(addr common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verified[addr]
}

// SetPendingPolls sets the number of status checks answered with pending
// before the result of a submission is returned.
func (s *Server) SetPendingPolls(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingPolls = n
}

// FailNext makes the server respond to the next n requests with http status
// 503.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// Submissions returns the verification requests received so far, in order.
func (s *Server) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.submissions...)
}

// Requests returns the number of requests received so far.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// RequestTimes returns the time at which each request was received.
func (s *Server) RequestTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.requestTimes...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.requestTimes = append(s.requestTimes, time.Now())

	if s.failNext > 0 {
		s.failNext--
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if r.Form.Get("apikey") != APIKey {
		writeResult(w, "0", "NOTOK", "Invalid API Key")
		return
	}
	if r.Form.Get("module") != "contract" {
		writeResult(w, "0", "NOTOK", "Error! Missing Or invalid Module name")
		return
	}

	switch action := r.Form.Get("action"); {
	case action == "getsourcecode" && r.Method == http.MethodGet:
		s.getSourceCode(w, r)
	case action == "verifysourcecode" && r.Method == http.MethodPost:
		s.verifySourceCode(w, r)
	case action == "checkverifystatus" && r.Method == http.MethodGet:
		s.checkVerifyStatus(w, r)
	default:
		writeResult(w, "0", "NOTOK", "Error! Missing Or invalid Action name")
	}
}

func (s *Server) getSourceCode(w http.ResponseWriter, r *http.Request) {
	if !common.IsHexAddress(r.Form.Get("address")) {
		writeResult(w, "0", "NOTOK", "Invalid Address format")
		return
	}
	addr := common.HexToAddress(r.Form.Get("address"))
	entry := map[string]string{"SourceCode": "", "ABI": "Contract source code not verified"}
	if s.verified[addr] {
		entry = map[string]string{"SourceCode": "{}", "ABI": "[]"}
	}
	writeResult(w, "1", "OK", []map[string]string{entry})
}

func (s *Server) verifySourceCode(w http.ResponseWriter, r *http.Request) {
	if !common.IsHexAddress(r.Form.Get("contractaddress")) {
		writeResult(w, "0", "NOTOK", "Invalid Address format")
		return
	}
	sub := Submission{
		GUID:            fmt.Sprintf("guid%04d", len(s.submissions)+1),
		Address:         common.HexToAddress(r.Form.Get("contractaddress")),
		ContractName:    r.Form.Get("contractname"),
		CompilerVersion: r.Form.Get("compilerversion"),
		CodeFormat:      r.Form.Get("codeformat"),
		SourceCode:      r.Form.Get("sourceCode"),
		ConstructorArgs: r.Form.Get("constructorArguements"),
	}
	s.submissions = append(s.submissions, sub)

	switch {
	case s.verified[sub.Address]:
		writeResult(w, "0", "NOTOK", "Contract source code already verified")
	case sub.CodeFormat != "solidity-standard-json-input" || !json.Valid([]byte(sub.SourceCode)):
		writeResult(w, "0", "NOTOK", "Invalid source code format")
	case !strings.Contains(sub.ContractName, ":"):
		writeResult(w, "0", "NOTOK", "Contract name must be fully qualified")
	case !strings.HasPrefix(sub.CompilerVersion, "v"):
		writeResult(w, "0", "NOTOK", "Invalid compiler version")
	default:
		s.checks[sub.GUID] = &pendingCheck{submission: sub}
		writeResult(w, "1", "OK", sub.GUID)
	}
}

func (s *Server) checkVerifyStatus(w http.ResponseWriter, r *http.Request) {
	check, ok := s.checks[r.Form.Get("guid")]
	if !ok {
		writeResult(w, "0", "NOTOK", "Unknown UID")
		return
	}
	if check.polls < s.pendingPolls {
		check.polls++
		writeResult(w, "0", "NOTOK", "Pending in queue")
		return
	}

	sub := check.submission
	args, deployed := s.deployed[sub.Address]
	switch {
	case s.verified[sub.Address]:
		writeResult(w, "1", "OK", "Already Verified")
	case deployed && strings.EqualFold(args, sub.ConstructorArgs):
		s.verified[sub.Address] = true
		writeResult(w, "1", "OK", "Pass - Verified")
	default:
		writeResult(w, "0", "NOTOK", "Fail - Unable to verify")
	}
}

func writeResult(w http.ResponseWriter, status, message string, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{ // nolint: errcheck, gosec
		"status":  status,
		"message": message,
		"result":  result,
	})
}
