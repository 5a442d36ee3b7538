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
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daltonclaybrook/GuessingGame/config"
)

const configFileMode = os.FileMode(0o600)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `
Print the configuration assembled from the defaults, the config file, the
environment and the flags, in the format of the config file. Private keys and
API keys are masked.`,
	Args: cobra.NoArgs,
	RunE: printConfig,
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a config file with the default values",
	Long: `
Generate a config file (` + config.DefaultConfigFile + `) with the default values in the
current directory. Secrets are not written to the file, set them in the
environment or in a dotenv file.`,
	Args: cobra.NoArgs,
	RunE: generateConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGenerateCmd)
}

func printConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(config.Masked(cfg))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func generateConfig(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(config.DefaultConfigFile); !os.IsNotExist(err) {
		return errors.New("file exists - " + config.DefaultConfigFile)
	}
	data, err := config.Marshal(config.Default())
	if err != nil {
		return err
	}
	if err = os.WriteFile(filepath.Clean(config.DefaultConfigFile), data, configFileMode); err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated config file: %s\n", config.DefaultConfigFile)
	return nil
}
