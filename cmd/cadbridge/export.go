// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// Export command flags.
var (
	exportFileName string
	exportTo       string
	exportObjects  []string
)

// exportCmd exports a document to STEP from the command line.
var exportCmd = &cobra.Command{
	Use:   "export <document>",
	Short: "Export a FreeCAD document to STEP",
	Long: `Export the named document from the running FreeCAD to a STEP file.

By default every object with a shape is exported to the desktop under a
generated file name. Use --objects to export a subset and --to to pick
another save location (desktop, documents, downloads, or temp).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		document := args[0]

		fileName := exportFileName
		if fileName == "" {
			fileName = fmt.Sprintf("%s-%s.step", document, uuid.NewString()[:8])
		}
		if ext := strings.ToLower(filepath.Ext(fileName)); ext != ".step" {
			fileName += ".step"
		}

		caller, err := freecad.NewCaller(settings.Host, settings.Port, settings.Timeout)
		if err != nil {
			return exitError(ExitConnectionFailed, "connecting to %s:%d: %v", settings.Host, settings.Port, err)
		}
		client := freecad.NewClient(caller)
		if err := client.Ping(cmd.Context()); err != nil {
			return exitError(ExitConnectionFailed, "FreeCAD is not reachable at %s:%d (is FreeCAD running with the MCP addon active?)", settings.Host, settings.Port)
		}

		script := freecad.ExportScript(document, exportTo, fileName, exportObjects)
		res, err := client.ExecuteCode(cmd.Context(), script)
		if err != nil {
			return exitError(ExitConnectionFailed, "executing export: %v", err)
		}
		if !res.Success {
			return exitError(ExitOperationFailed, "export failed: %s", res.Error)
		}

		out := res.Stdout()
		if out == "" {
			out = fmt.Sprintf("Exported %q to %s.", document, fileName)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFileName, "file", "", "target file name (a .step extension is enforced)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "save location: desktop, documents, downloads, or temp (default desktop)")
	exportCmd.Flags().StringSliceVar(&exportObjects, "objects", nil, "only export these objects")
}
