// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

// Package config handles .cadbridge.yaml configuration files.
package config

import "time"

// Config represents the contents of a .cadbridge.yaml file. All fields are
// optional; zero values fall through to the built-in defaults.
type Config struct {
	RPC         RPCConfig                     `yaml:"rpc,omitempty"`
	DefaultView string                        `yaml:"default_view,omitempty"`
	Library     LibraryConfig                 `yaml:"library,omitempty"`
	LLM         LLMConfig                     `yaml:"llm,omitempty"`
	DFM         map[string]map[string]float64 `yaml:"dfm,omitempty"`
}

// RPCConfig holds the XML-RPC endpoint settings for the FreeCAD addon.
type RPCConfig struct {
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// LibraryConfig holds parts library settings.
type LibraryConfig struct {
	Path   string `yaml:"path,omitempty"`
	Remote string `yaml:"remote,omitempty"`
}

// LLMConfig holds settings for the optional LLM-backed screenshot analysis.
type LLMConfig struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Model    string `yaml:"model,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".cadbridge.yaml"

// Built-in defaults. The RPC endpoint matches the FreeCAD addon's default
// listen address; the library remote is the upstream FreeCAD parts library.
const (
	DefaultHost          = "localhost"
	DefaultPort          = 9875
	DefaultTimeout       = 30 * time.Second
	DefaultView          = "Isometric"
	DefaultLibraryRemote = "https://github.com/FreeCAD/FreeCAD-library.git"
)

// Settings is the fully resolved runtime configuration: defaults overlaid
// with file values overlaid with CLI flags.
type Settings struct {
	Host          string
	Port          int
	Timeout       time.Duration
	DefaultView   string
	LibraryPath   string
	LibraryRemote string
	LLMDisabled   bool
	LLMModel      string
	DFM           map[string]map[string]float64
}
