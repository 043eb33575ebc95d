// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/cadwell-io/cadbridge/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running cadbridge as an MCP server, exposing FreeCAD modeling, import/export, and DFM tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing cadbridge's tools:
  - document and object CRUD (create_document, create_object, ...)
  - arbitrary Python execution inside FreeCAD (execute_code)
  - screenshots from any viewpoint (get_view)
  - parts library, STEP import/export, McMaster-Carr part lookup
  - DFM checks and automatic repairs for CNC, 3D printing, and molding

The server connects to the FreeCAD addon lazily, so it can start before
FreeCAD does; tool calls report a clear error until the addon is up.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		return mcpserver.Run(cmd.Context(), Version, settings, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
