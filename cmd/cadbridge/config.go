// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cadwell-io/cadbridge/internal/config"
)

// configCmd is the parent command for configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cadbridge configuration",
	Long: `Manage cadbridge configuration.

Cadbridge reads .cadbridge.yaml from the working directory. The Anthropic
API key for the screenshot review tools is never stored in the file: it
comes from the ANTHROPIC_API_KEY environment variable or the OS keyring.`,
}

// configInitCmd writes a starter config file with the built-in defaults.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .cadbridge.yaml",
	Long: `Write a .cadbridge.yaml in the working directory, populated with the
built-in defaults so every setting is visible and editable. Refuses to
overwrite an existing file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(config.FileName); err == nil {
			return exitError(ExitInvalidArgs, "%s already exists; edit it directly", config.FileName)
		}

		cfg := &config.Config{
			RPC: config.RPCConfig{
				Host:    config.DefaultHost,
				Port:    config.DefaultPort,
				Timeout: config.DefaultTimeout.String(),
			},
			DefaultView: config.DefaultView,
			Library: config.LibraryConfig{
				Path:   config.DefaultLibraryPath(),
				Remote: config.DefaultLibraryRemote,
			},
		}

		f, err := os.Create(config.FileName)
		if err != nil {
			return exitError(ExitOperationFailed, "creating %s: %v", config.FileName, err)
		}
		defer f.Close() //nolint:errcheck // close error surfaces via Write

		if err := config.Write(f, cfg); err != nil {
			return exitError(ExitOperationFailed, "writing %s: %v", config.FileName, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.FileName)
		return nil
	},
}

// configSetAPIKeyCmd stores the Anthropic API key in the OS keyring.
var configSetAPIKeyCmd = &cobra.Command{
	Use:   "set-api-key <key>",
	Short: "Store the Anthropic API key in the OS keyring",
	Long: `Store the Anthropic API key in the OS keyring. The key enables the LLM
visual review in analyze_screenshot_for_issues; without it the tool still
runs its object-data heuristics. The ANTHROPIC_API_KEY environment
variable, when set, takes precedence over the keyring.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.StoreAnthropicAPIKey(args[0]); err != nil {
			return exitError(ExitOperationFailed, "storing API key: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Stored Anthropic API key in the OS keyring.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetAPIKeyCmd)
}
