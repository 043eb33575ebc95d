// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cadwell-io/cadbridge/internal/library"
	"github.com/cadwell-io/cadbridge/internal/report"
)

// Library command flags.
var libraryCheckOnly bool

// libraryCmd is the parent command for parts library subcommands.
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local parts library",
	Long: `Manage the local clone of the FreeCAD parts library.

The library is a git repository of ready-made parts (fasteners, bearings,
profiles, ...). Cadbridge keeps a shallow clone under the XDG data
directory by default; the insert_part_from_library MCP tool and
'cadbridge library list' both read from it.`,
}

// librarySyncCmd clones or updates the parts library.
var librarySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Clone or update the parts library",
	Long: `Clone the parts library if it is missing, or pull the latest changes
into the existing clone. With --check, only compare the local clone
against the newest commit on GitHub and report whether it is stale,
without touching the clone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		syncer := library.NewSyncer(settings.LibraryRemote, settings.LibraryPath)

		if libraryCheckOnly {
			staleness, err := syncer.CheckStaleness(cmd.Context())
			if err != nil {
				return exitError(ExitOperationFailed, "checking library staleness: %v", err)
			}
			if staleness.Stale() {
				fmt.Fprintf(w, "Library is %s: local %.8s, remote %.8s. Run 'cadbridge library sync' to update.\n",
					report.ColorStatus("stale"), staleness.LocalHead, staleness.RemoteHead)
				return nil
			}
			fmt.Fprintf(w, "Library is %s at %.8s.\n", report.ColorStatus("up to date"), staleness.LocalHead)
			return nil
		}

		result, err := syncer.Sync(cmd.Context())
		if err != nil {
			return exitError(ExitOperationFailed, "syncing parts library: %v", err)
		}
		fmt.Fprintf(w, "%s %s (%s at %.8s)\n",
			report.ColorStatus(string(result.Action)), settings.LibraryPath, settings.LibraryRemote, result.Head)
		return nil
	},
}

// libraryListCmd lists insertable parts in the local clone.
var libraryListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List parts in the local library",
	Long: `List the insertable parts in the local library clone. An optional query
filters parts by case-insensitive substring match on their path. Part
paths are what the insert_part_from_library tool expects.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if _, err := os.Stat(settings.LibraryPath); err != nil {
			return exitError(ExitInvalidArgs, "no library clone at %s; run 'cadbridge library sync' first", settings.LibraryPath)
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		parts, err := library.List(os.DirFS(settings.LibraryPath), query)
		if err != nil {
			return exitError(ExitOperationFailed, "reading library: %v", err)
		}
		w := cmd.OutOrStdout()
		if len(parts) == 0 {
			fmt.Fprintln(w, "No matching parts.")
			return nil
		}

		table := report.NewTable(
			report.Column{Header: "CATEGORY"},
			report.Column{Header: "PART"},
			report.Column{Header: "PATH"},
			report.Column{Header: "SIZE", Align: report.AlignRight},
		)
		for _, p := range parts {
			table.AddRow(p.Category, p.Name, p.RelPath, formatSize(p.SizeBytes))
		}
		if err := table.Render(w); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%d part(s) in %d categories\n", len(parts), len(library.Categories(parts)))
		return nil
	},
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func init() {
	librarySyncCmd.Flags().BoolVar(&libraryCheckOnly, "check", false, "only check whether the clone is behind GitHub")

	libraryCmd.AddCommand(librarySyncCmd)
	libraryCmd.AddCommand(libraryListCmd)
}
