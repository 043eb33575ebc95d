// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/cadwell-io/cadbridge/internal/config"
)

func TestConfigCmd_Subcommands(t *testing.T) {
	var names []string
	for _, cmd := range configCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "set-api-key")
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, configInitCmd.RunE(configInitCmd, nil))

	cfg, err := config.Load(".")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultHost, cfg.RPC.Host)
	assert.Equal(t, config.DefaultPort, cfg.RPC.Port)
	assert.Equal(t, config.DefaultView, cfg.DefaultView)
	assert.Equal(t, config.DefaultLibraryRemote, cfg.Library.Remote)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(config.FileName, []byte("default_view: Front\n"), 0o600))

	err := configInitCmd.RunE(configInitCmd, nil)
	require.Error(t, err)

	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	assert.Equal(t, ExitInvalidArgs, ece.ExitCode())

	// The existing file is untouched.
	cfg, err := config.Load(".")
	require.NoError(t, err)
	assert.Equal(t, "Front", cfg.DefaultView)
}

func TestConfigSetAPIKey_StoresInKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("ANTHROPIC_API_KEY", "")

	require.NoError(t, configSetAPIKeyCmd.RunE(configSetAPIKeyCmd, []string{"sk-ant-test"}))
	assert.Equal(t, "sk-ant-test", config.AnthropicAPIKey())
}
