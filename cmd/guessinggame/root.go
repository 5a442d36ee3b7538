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
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daltonclaybrook/GuessingGame"
	"github.com/daltonclaybrook/GuessingGame/config"
	"github.com/daltonclaybrook/GuessingGame/log"
)

const (
	// flag names for persistent flags of the root command.
	configfileF = "configfile"
	envfileF    = "envfile"
	networkF    = "network"
	loglevelF   = "loglevel"
	logfileF    = "logfile"
	artifactsF  = "artifacts"
)

var (
	redf   = color.New(color.FgRed).SprintfFunc()
	greenf = color.New(color.FgGreen).SprintfFunc()
)

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})
	defineRootFlags()
}

func defineRootFlags() {
	// Flags for config values should have zero values for defaults, as their only purpose is to allow the user
	// to explicitly override the configuration.
	pf := rootCmd.PersistentFlags()
	pf.String(configfileF, "", "Config file. Defaults to "+config.DefaultConfigFile+" if it exists")
	pf.String(envfileF, "", "Dotenv file. Defaults to "+config.DefaultEnvFile+" if it exists")
	pf.String(networkF, "", "Name of the network to use, as defined in the config")
	pf.String(loglevelF, "", "Log level. Supported levels: debug, info, warn, error")
	pf.String(logfileF, "", "Log file path. Use empty string for stdout")
	pf.String(artifactsF, "", "Path of the hardhat artifacts directory")
}

var rootCmd = &cobra.Command{
	Use:   "guessinggame",
	Short: "Deploy and verify the GuessingGame contracts.",
	Long: `
Deploy the GuessingGame contract (or the Lock example) compiled by hardhat to
an ethereum network and verify the sources of the game and its token on
etherscan.

Configuration is read from the built-in defaults, the config file, the
environment (<NETWORK>_URL, <NETWORK>_PRIVATE_KEY, ETHERSCAN_API_KEY, also read
from a dotenv file) and the flags, in increasing order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// parseConfig parses the configuration using the persistent flags of the command.
func parseConfig(cmd *cobra.Command) (guessinggame.Config, error) {
	fs := cmd.Flags()
	configFile, err := fs.GetString(configfileF)
	if err != nil {
		panic("unknown flag " + configfileF + "\n")
	}
	envFile, err := fs.GetString(envfileF)
	if err != nil {
		panic("unknown flag " + envfileF + "\n")
	}
	return config.Parse(config.Options{
		ConfigFile: configFile,
		EnvFile:    envFile,
		Flags:      fs,
	})
}

// initLogger initializes the logger as per the config. Subsequent calls are no-ops.
func initLogger(cfg guessinggame.Config) error {
	if loggerInitialized {
		return nil
	}
	if err := log.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	loggerInitialized = true
	return nil
}

var loggerInitialized bool
