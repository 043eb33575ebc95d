// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/cadwell-io/cadbridge/internal/config"
	"github.com/cadwell-io/cadbridge/internal/freecad"
	"github.com/cadwell-io/cadbridge/internal/report"
)

// minFreeCADVersion is the oldest FreeCAD release the addon protocol is
// known to work with.
const minFreeCADVersion = "v0.21.0"

// statusCmd checks the connection to the FreeCAD addon.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the connection to FreeCAD",
	Long: `Connect to the FreeCAD MCP addon, verify it responds, and report the
FreeCAD version, its compatibility with this binary, and the active
document if one is open.

Exits 2 when FreeCAD is unreachable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		caller, err := freecad.NewCaller(settings.Host, settings.Port, settings.Timeout)
		if err != nil {
			return exitError(ExitConnectionFailed, "connecting to %s:%d: %v", settings.Host, settings.Port, err)
		}
		return runStatus(cmd.Context(), freecad.NewClient(caller), cmd.OutOrStdout(), settings)
	},
}

func runStatus(ctx context.Context, client *freecad.Client, w io.Writer, settings config.Settings) error {
	endpoint := fmt.Sprintf("%s:%d", settings.Host, settings.Port)
	fmt.Fprintln(w, report.SectionTitle("cadbridge status"))

	table := report.NewTable(
		report.Column{Header: "CHECK"},
		report.Column{Header: "VALUE"},
		report.Column{Header: "STATUS", Color: report.ColorStatus},
	)

	if err := client.Ping(ctx); err != nil {
		table.AddRow("FreeCAD addon", endpoint, "unreachable")
		if renderErr := table.Render(w); renderErr != nil {
			return renderErr
		}
		return exitError(ExitConnectionFailed, "FreeCAD is not reachable at %s (is FreeCAD running with the MCP addon active?)", endpoint)
	}
	table.AddRow("FreeCAD addon", endpoint, "connected")

	version, compat := freecadVersion(ctx, client)
	table.AddRow("FreeCAD version", version, compat)

	table.AddRow("Active document", activeDocument(ctx, client), "ok")

	return table.Render(w)
}

// freecadVersion asks the running FreeCAD for its version and grades it
// against the oldest supported release.
func freecadVersion(ctx context.Context, client *freecad.Client) (version, compat string) {
	res, err := client.ExecuteCode(ctx, freecad.VersionScript)
	if err != nil || !res.Success {
		return "unknown", "unknown"
	}
	version = strings.TrimSpace(res.Stdout())
	if !semver.IsValid("v" + version) {
		return version, "unknown"
	}
	if semver.Compare("v"+version, minFreeCADVersion) < 0 {
		return version, "incompatible"
	}
	return version, "ok"
}

func activeDocument(ctx context.Context, client *freecad.Client) string {
	res, err := client.ExecuteCode(ctx, freecad.ActiveDocumentScript)
	if err != nil || !res.Success {
		return "unknown"
	}
	name := strings.TrimSpace(res.Stdout())
	if name == "" {
		return "none"
	}
	return name
}
