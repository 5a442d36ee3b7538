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
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/artifact"
	"github.com/daltonclaybrook/GuessingGame/blockchain/ethereum"
	"github.com/daltonclaybrook/GuessingGame/config"
	"github.com/daltonclaybrook/GuessingGame/deployer"
)

const contractF = "contract"

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a contract to the network",
	Long: `
Deploy the GuessingGame contract with the deployment arguments, wait until the
transaction is mined and print the address of the contract.

Use --contract=Lock to deploy the Lock example contract, that holds 1 ETH for a
year.`,
	Args: cobra.NoArgs,
	RunE: deploy,
}

func init() {
	rootCmd.AddCommand(deployCmd)
	deployCmd.Flags().String(contractF, string(guessinggame.GuessingGame),
		"Contract to deploy: GuessingGame or Lock")
}

func deploy(cmd *cobra.Command, _ []string) error {
	contract, err := cmd.Flags().GetString(contractF)
	if err != nil {
		panic("unknown flag " + contractF + "\n")
	}
	name := guessinggame.ContractName(contract)
	if name != guessinggame.GuessingGame && name != guessinggame.Lock {
		return errors.Errorf("unknown contract %q, should be %s or %s", contract,
			guessinggame.GuessingGame, guessinggame.Lock)
	}

	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	if err = config.ValidateSigner(cfg); err != nil {
		return err
	}
	if err = initLogger(cfg); err != nil {
		return errors.WithMessage(err, "initializing logger")
	}

	nc, _ := cfg.SelectedNetwork()
	store, err := artifact.NewStore(cfg.Artifacts)
	if err != nil {
		return err
	}
	chain, err := ethereum.NewChainBackend(nc.URL, nc.ChainID, cfg.ChainConnTimeout, cfg.OnChainTxTimeout,
		guessinggame.Credential{PrivateKey: nc.PrivateKey})
	if err != nil {
		return errors.WithMessage(err, "connecting to network "+nc.Name)
	}

	d := deployer.New(store, chain, nc.Name, cmd.OutOrStdout())
	_, err = d.DeployByName(context.Background(), name, time.Now())
	return err
}
