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

// Package explorer implements a client for the source verification API of
// etherscan compatible block explorers.
package explorer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/log"
)

// Actions of the contract module used by the client.
const (
	ActionGetSourceCode     = "getsourcecode"
	ActionVerifySourceCode  = "verifysourcecode"
	ActionCheckVerifyStatus = "checkverifystatus"

	// CodeFormat is the format of the submitted source code.
	CodeFormat = "solidity-standard-json-input"
)

// Results of the checkverifystatus action.
const (
	ResultPending         = "Pending in queue"
	ResultPass            = "Pass - Verified"
	ResultFail            = "Fail - Unable to verify"
	ResultAlreadyVerified = "Already Verified"
)

// Status of a verification request.
type Status string

// Enumeration of verification status.
const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
)

var errPending = errors.New("verification pending")

// response is the envelope of all responses from the explorer API.
type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// resultString returns the result as a string, or the raw json if it is not a
// string.
func (r response) resultString() string {
	var s string
	if err := json.Unmarshal(r.Result, &s); err != nil {
		return string(r.Result)
	}
	return s
}

// sourceCodeEntry is a single entry in the result of getsourcecode.
type sourceCodeEntry struct {
	SourceCode      string `json:"SourceCode"`
	ContractName    string `json:"ContractName"`
	CompilerVersion string `json:"CompilerVersion"`
}

// Client talks to the etherscan compatible API of a block explorer. It
// implements guessinggame.Explorer.
type Client struct {
	log.Logger

	apiURL  string
	apiKey  string
	chainID int64

	httpClient    *http.Client
	limiter       *rate.Limiter
	pollInterval  time.Duration
	maxPolls      uint64
	maxRetries    uint64
	retryInterval time.Duration // Initial interval of the exponential backoff for retries.
}

// NewClient returns a client for the explorer of the chain. If the config
// does not specify the API URL, it is derived from the chain id.
func NewClient(cfg guessinggame.ExplorerConfig, chainID int64) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, guessinggame.NewConfigError("explorer.apiKey", "", guessinggame.ErrMissing)
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		var ok bool
		if apiURL, ok = APIURL(chainID); !ok {
			return nil, guessinggame.NewConfigError("explorer.apiUrl", "",
				errors.Errorf("no default explorer for chain id %d", chainID))
		}
	}
	if _, err := url.ParseRequestURI(apiURL); err != nil {
		return nil, guessinggame.NewConfigError("explorer.apiUrl", apiURL, err)
	}
	if cfg.MaxPolls == 0 {
		return nil, guessinggame.NewConfigError("explorer.maxPolls", "0", errors.New("should be positive"))
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Client{
		Logger:        log.NewLoggerWithField("explorer", apiURL),
		apiURL:        apiURL,
		apiKey:        cfg.APIKey,
		chainID:       chainID,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		limiter:       rate.NewLimiter(limit, 1),
		pollInterval:  cfg.PollInterval,
		maxPolls:      cfg.MaxPolls,
		maxRetries:    cfg.MaxRetries,
		retryInterval: time.Second,
	}, nil
}

// APIURL returns the endpoint used by the client.
func (c *Client) APIURL() string {
	return c.apiURL
}

// IsVerified checks if the source of the contract at the address is verified.
func (c *Client) IsVerified(ctx context.Context, addr common.Address) (bool, error) {
	params := url.Values{}
	params.Set("address", addr.Hex())
	resp, err := c.get(ctx, ActionGetSourceCode, params)
	if err != nil {
		return false, err
	}
	if resp.Status != "1" {
		return false, NewRejectedError(ActionGetSourceCode, resp.resultString())
	}

	var entries []sourceCodeEntry
	if err := json.Unmarshal(resp.Result, &entries); err != nil {
		return false, errors.Wrap(err, "parsing result of "+ActionGetSourceCode)
	}
	return len(entries) > 0 && entries[0].SourceCode != "", nil
}

// Submit submits the source of a contract for verification and returns the
// guid assigned to the submission.
func (c *Client) Submit(ctx context.Context, req guessinggame.VerificationRequest) (string, error) {
	form := url.Values{}
	form.Set("contractaddress", req.Address.Hex())
	form.Set("sourceCode", req.SourceCode)
	form.Set("codeformat", CodeFormat)
	form.Set("contractname", req.ContractName)
	form.Set("compilerversion", req.CompilerVersion)
	// Misspelling is part of the etherscan API.
	form.Set("constructorArguements", strings.TrimPrefix(req.ConstructorArgs, "0x"))

	resp, err := c.post(ctx, ActionVerifySourceCode, form)
	if err != nil {
		return "", err
	}
	result := resp.resultString()
	if resp.Status != "1" {
		if strings.Contains(strings.ToLower(result), "already verified") {
			return "", NewAlreadyVerifiedError(req.Address.Hex())
		}
		return "", NewRejectedError(ActionVerifySourceCode, result)
	}
	c.WithFields(log.Fields{"contract": req.ContractName, "address": req.Address.Hex(), "guid": result}).
		Info("Submitted source for verification")
	return result, nil
}

// CheckStatus returns the status of the verification request. If the explorer
// could not verify the source, a RejectedError is returned.
func (c *Client) CheckStatus(ctx context.Context, guid string) (Status, error) {
	params := url.Values{}
	params.Set("guid", guid)
	resp, err := c.get(ctx, ActionCheckVerifyStatus, params)
	if err != nil {
		return "", err
	}
	result := resp.resultString()
	switch {
	case result == ResultPending:
		return StatusPending, nil
	case resp.Status == "1" && result == ResultPass:
		return StatusVerified, nil
	case strings.EqualFold(result, ResultAlreadyVerified):
		return "", NewAlreadyVerifiedError("")
	default:
		return "", NewRejectedError(ActionCheckVerifyStatus, result)
	}
}

// WaitVerified polls the status of the verification request until the
// explorer either verifies or rejects the source. It gives up after the
// configured number of polls.
func (c *Client) WaitVerified(ctx context.Context, guid string) error {
	logger := c.WithField("guid", guid)
	polls := uint64(0)
	poll := func() error {
		polls++
		status, err := c.CheckStatus(ctx, guid)
		if err != nil {
			return backoff.Permanent(err)
		}
		if status == StatusPending {
			logger.Debugf("Verification pending (poll %d/%d)", polls, c.maxPolls)
			return errPending
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.pollInterval), c.maxPolls-1), ctx)
	if err := sleep(ctx, c.pollInterval); err != nil {
		return errors.WithStack(err)
	}
	err := backoff.Retry(poll, b)
	if errors.Is(err, errPending) {
		return errors.Errorf("verification %s still pending after %d polls", guid, polls)
	}
	if err != nil {
		return err
	}
	logger.Info("Source verified")
	return nil
}

// Verify submits the request and waits until the explorer processes it.
func (c *Client) Verify(ctx context.Context, req guessinggame.VerificationRequest) (string, error) {
	guid, err := c.Submit(ctx, req)
	if err != nil {
		return "", err
	}
	if err := c.WaitVerified(ctx, guid); err != nil {
		return guid, errors.WithMessagef(err, "verifying %s at %s", req.ContractName, req.Address.Hex())
	}
	return guid, nil
}

func (c *Client) get(ctx context.Context, action string, params url.Values) (response, error) {
	params.Set("module", "contract")
	params.Set("action", action)
	c.setCommon(params)
	return c.do(ctx, action, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	})
}

func (c *Client) post(ctx context.Context, action string, form url.Values) (response, error) {
	form.Set("module", "contract")
	form.Set("action", action)
	c.setCommon(form)
	return c.do(ctx, action, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

func (c *Client) setCommon(params url.Values) {
	params.Set("apikey", c.apiKey)
	if c.chainID != 0 {
		params.Set("chainid", strconv.FormatInt(c.chainID, 10))
	}
}

// do sends the request built by newReq, retrying on transport errors and
// server errors up to maxRetries times with exponential backoff. Every
// attempt waits for the rate limiter.
func (c *Client) do(ctx context.Context, action string, newReq func() (*http.Request, error)) (response, error) {
	var resp response
	attempt := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(errors.Wrap(err, "waiting for rate limiter"))
		}
		req, err := newReq()
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "creating request"))
		}
		req.Header.Set("Accept", "application/json")

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "sending request for "+action)
		}
		defer httpResp.Body.Close() // nolint: errcheck

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return errors.Wrap(err, "reading response for "+action)
		}
		if httpResp.StatusCode >= http.StatusInternalServerError || httpResp.StatusCode == http.StatusTooManyRequests {
			return errors.Errorf("%s: http status %d", action, httpResp.StatusCode)
		}
		if httpResp.StatusCode != http.StatusOK {
			return backoff.Permanent(errors.Errorf("%s: http status %d", action, httpResp.StatusCode))
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return backoff.Permanent(errors.Wrap(err, "parsing response for "+action))
		}
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(eb, c.maxRetries), ctx)
	notify := func(err error, next time.Duration) {
		c.WithError(err).Warnf("Request failed, retrying in %v", next)
	}
	if err := backoff.RetryNotify(attempt, b, notify); err != nil {
		return response{}, err
	}
	return resp, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
