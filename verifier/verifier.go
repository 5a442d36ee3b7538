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

// Package verifier submits the sources of a deployed GuessingGame and of the
// GuessToken it created to a block explorer for verification.
package verifier

import (
	"context"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/artifact"
	"github.com/daltonclaybrook/GuessingGame/blockchain"
	"github.com/daltonclaybrook/GuessingGame/deployargs"
	"github.com/daltonclaybrook/GuessingGame/explorer"
	"github.com/daltonclaybrook/GuessingGame/log"
)

// Options control how the task handles failures.
type Options struct {
	// ContinueOnError makes the task attempt the remaining steps after the
	// game could not be verified. The task still ends in Failed.
	ContinueOnError bool
	// SkipVerified treats contracts that are already verified as a success.
	SkipVerified bool
	// Solidity is the compiler version the artifacts are expected to be built
	// with. A mismatch is logged, empty disables the check.
	Solidity string
}

// Report is the outcome of a verification task.
type Report struct {
	Game  common.Address
	Token common.Address // Zero if the token address could not be read.

	State   State // Final state, either Done or Failed.
	Reached State // Last state reached before the first failure.

	GameGUID  string
	TokenGUID string
	Errors    []error
}

type step struct {
	to State
	do func(ctx context.Context, r *Report) error
	// required steps are those the remaining steps depend on. The task
	// always stops when they fail.
	required bool
}

// Verifier runs the verification task.
type Verifier struct {
	log.Logger

	store    *artifact.Store
	chain    guessinggame.ROChainBackend
	explorer guessinggame.Explorer
	opts     Options
}

// New returns a verifier that reads contract state through the chain backend
// and submits the sources to the explorer.
func New(store *artifact.Store, chain guessinggame.ROChainBackend, e guessinggame.Explorer, opts Options) *Verifier {
	return &Verifier{
		Logger:   log.NewLoggerWithField("chain", chain.ChainID().String()),
		store:    store,
		chain:    chain,
		explorer: e,
		opts:     opts,
	}
}

// VerifyGame verifies the source of the GuessingGame contract at the address,
// reads the address of its token and verifies the source of the token.
//
// The error is nil only when the task reaches Done. It is the StepError of the
// first step that failed otherwise. All errors are listed in the report.
func (v *Verifier) VerifyGame(ctx context.Context, game common.Address) (Report, error) {
	r := Report{Game: game, State: Start, Reached: Start}
	logger := v.WithField("address", game.Hex())
	steps := []step{
		{to: SubmittedMain, do: v.submitGame},
		{to: FetchedTokenAddr, do: v.fetchToken, required: true},
		{to: SubmittedToken, do: v.submitToken},
	}

	failed := false
	for _, s := range steps {
		err := s.do(ctx, &r)
		if err != nil {
			logger.WithField("state", s.to).WithError(err).Error("Verification step failed")
			r.Errors = append(r.Errors, NewStepError(s.to, err))
			failed = true
			if s.required || !v.opts.ContinueOnError {
				break
			}
			continue
		}
		if !failed {
			r.Reached = s.to
		}
		r.State = s.to
		logger.WithField("state", s.to).Info("Verification step done")
	}

	if failed {
		r.State = Failed
		return r, r.Errors[0]
	}
	r.State, r.Reached = Done, Done
	logger.WithField("token", r.Token.Hex()).Info("Verified game and token")
	return r, nil
}

func (v *Verifier) submitGame(ctx context.Context, r *Report) error {
	guid, err := v.verifyContract(ctx, guessinggame.GuessingGame, r.Game, deployargs.GameArgs().Values())
	r.GameGUID = guid
	return err
}

// fetchToken reads the token address from the game.
func (v *Verifier) fetchToken(ctx context.Context, r *Report) error {
	a, err := v.store.Load(string(guessinggame.GuessingGame))
	if err != nil {
		return err
	}
	out, err := v.chain.Call(ctx, a, r.Game, "token")
	if err != nil {
		return err
	}
	if len(out) != 1 {
		return errors.Errorf("token() returned %d values, expected 1", len(out))
	}
	token, ok := out[0].(common.Address)
	if !ok {
		return errors.Errorf("token() returned %T, expected address", out[0])
	}
	if token == (common.Address{}) {
		return errors.New("token() returned the zero address")
	}

	// The token is the first contract created by the game and contracts start with nonce 1.
	logger := v.WithFields(log.Fields{"address": r.Game.Hex(), "token": token.Hex()})
	if expected := crypto.CreateAddress(r.Game, 1); expected != token {
		logger.Warnf("Token address differs from the address of the first contract created by the game (%s)",
			expected.Hex())
	} else {
		logger.Debug("Token address matches the first contract created by the game")
	}
	r.Token = token
	return nil
}

func (v *Verifier) submitToken(ctx context.Context, r *Report) error {
	guid, err := v.verifyContract(ctx, guessinggame.GuessToken, r.Token, deployargs.TokenArgs(r.Game))
	r.TokenGUID = guid
	return err
}

// verifyContract submits the source of the named contract deployed at addr
// with the given constructor arguments, and waits for the result.
func (v *Verifier) verifyContract(ctx context.Context, name guessinggame.ContractName, addr common.Address,
	args []interface{}) (string, error) {
	logger := v.WithFields(log.Fields{"contract": name, "address": addr.Hex()})

	a, err := v.store.Load(string(name))
	if err != nil {
		return "", err
	}
	code, err := v.chain.CodeAt(ctx, addr)
	if err != nil {
		return "", err
	}
	if len(code) == 0 {
		return "", blockchain.NewNoCodeError(addr)
	}
	if artifact.CompareBytecode(code, a.DeployedBytecode()) == artifact.NoMatch {
		logger.Warn("Deployed code does not match the artifact, verification is likely to fail")
	}

	req, err := v.newRequest(a, addr, args)
	if err != nil {
		return "", err
	}

	verified, err := v.explorer.IsVerified(ctx, addr)
	if err != nil {
		return "", err
	}
	if verified {
		return "", v.alreadyVerified(logger, explorer.NewAlreadyVerifiedError(addr.Hex()))
	}

	logger.Infof("Verifying %s contract at %s", name, addr.Hex())
	guid, err := v.explorer.Verify(ctx, req)
	if explorer.IsAlreadyVerified(err) {
		return guid, v.alreadyVerified(logger, err)
	}
	return guid, err
}

func (v *Verifier) alreadyVerified(logger log.Logger, err error) error {
	if v.opts.SkipVerified {
		logger.Info("Contract is already verified, skipping")
		return nil
	}
	return err
}

func (v *Verifier) newRequest(a *artifact.Artifact, addr common.Address, args []interface{}) (
	guessinggame.VerificationRequest, error) {
	bi, err := a.BuildInfo()
	if err != nil {
		return guessinggame.VerificationRequest{}, err
	}
	if !bi.HasSource(a.SourceName()) {
		return guessinggame.VerificationRequest{}, errors.Errorf("build info %s does not include source %s",
			bi.ID, a.SourceName())
	}
	if v.opts.Solidity != "" && bi.SolcVersion != v.opts.Solidity {
		v.WithField("contract", a.Name()).Warnf("Artifact was compiled with solc %s, configured version is %s",
			bi.SolcVersion, v.opts.Solidity)
	}

	packed, err := a.PackConstructor(args...)
	if err != nil {
		return guessinggame.VerificationRequest{}, err
	}
	return guessinggame.VerificationRequest{
		Address:         addr,
		ContractName:    a.FullyQualifiedName(),
		CompilerVersion: bi.CompilerVersion(),
		SourceCode:      string(bi.Input),
		ConstructorArgs: hex.EncodeToString(packed),
	}, nil
}
