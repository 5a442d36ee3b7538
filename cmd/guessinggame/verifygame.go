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

package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daltonclaybrook/GuessingGame/artifact"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum"
	"github.com/daltonclaybrook/GuessingGame/config"
	"github.com/daltonclaybrook/GuessingGame/explorer"
	"github.com/daltonclaybrook/GuessingGame/verifier"
)

const (
	continueOnErrorF = "continue-on-error"
	skipVerifiedF    = "skip-verified"
)

var verifyGameCmd = &cobra.Command{
	Use:   "verify-game",
	Short: "Verify the sources of a deployed game and its token",
	Long: `
Verify the source of the GuessingGame contract at the given address on the
block explorer, read the address of its token from the game and verify the
source of the token.

The constructor arguments are the same as those used by the deploy command.`,
	Args: cobra.NoArgs,
	RunE: verifyGame,
}

func init() {
	rootCmd.AddCommand(verifyGameCmd)
	verifyGameCmd.Flags().String(contractF, "", "Address of the deployed GuessingGame contract")
	verifyGameCmd.Flags().Bool(continueOnErrorF, false,
		"Verify the token even if the game could not be verified. The command still fails")
	verifyGameCmd.Flags().Bool(skipVerifiedF, false, "Treat contracts that are already verified as a success")
	if err := verifyGameCmd.MarkFlagRequired(contractF); err != nil {
		panic(err)
	}
}

// reportView is the printed form of verifier.Report.
type reportView struct {
	Game      common.Address
	Token     common.Address
	State     verifier.State
	Reached   verifier.State
	GameGUID  string
	TokenGUID string
	Errors    []string
}

func verifyGame(cmd *cobra.Command, _ []string) error {
	contract, err := cmd.Flags().GetString(contractF)
	if err != nil {
		panic("unknown flag " + contractF + "\n")
	}
	game, err := ethereum.ParseAddr(contract)
	if err != nil {
		return errors.WithMessage(err, "game contract")
	}
	opts := verifier.Options{}
	if opts.ContinueOnError, err = cmd.Flags().GetBool(continueOnErrorF); err != nil {
		panic("unknown flag " + continueOnErrorF + "\n")
	}
	if opts.SkipVerified, err = cmd.Flags().GetBool(skipVerifiedF); err != nil {
		panic("unknown flag " + skipVerifiedF + "\n")
	}

	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	if err = config.ValidateExplorer(cfg); err != nil {
		return err
	}
	if err = initLogger(cfg); err != nil {
		return errors.WithMessage(err, "initializing logger")
	}
	opts.Solidity = cfg.Solidity

	nc, _ := cfg.SelectedNetwork()
	store, err := artifact.NewStore(cfg.Artifacts)
	if err != nil {
		return err
	}
	chain, err := ethereum.NewROChainBackend(nc.URL, nc.ChainID, cfg.ChainConnTimeout, cfg.OnChainTxTimeout)
	if err != nil {
		return errors.WithMessage(err, "connecting to network "+nc.Name)
	}
	client, err := explorer.NewClient(cfg.Explorer, chain.ChainID().Int64())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Verifying game contract at %s\n", game.Hex())
	report, err := verifier.New(store, chain, client, opts).VerifyGame(context.Background(), game)
	fmt.Fprintf(out, "%s\n", prettify(newReportView(report)))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, greenf("Verified game at %s and token at %s", report.Game.Hex(), report.Token.Hex()))
	return nil
}

func newReportView(r verifier.Report) reportView {
	errs := make([]string, len(r.Errors))
	for i := range r.Errors {
		errs[i] = r.Errors[i].Error()
	}
	return reportView{
		Game:      r.Game,
		Token:     r.Token,
		State:     r.State,
		Reached:   r.Reached,
		GameGUID:  r.GameGUID,
		TokenGUID: r.TokenGUID,
		Errors:    errs,
	}
}
