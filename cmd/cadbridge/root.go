package main

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cadwell-io/cadbridge/internal/config"
	cadlog "github.com/cadwell-io/cadbridge/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool

	flagHost    string
	flagPort    int
	flagTimeout time.Duration
)

// rootCmd is the base command for cadbridge.
var rootCmd = &cobra.Command{
	Use:   "cadbridge",
	Short: "Bridge AI agents to a running FreeCAD instance",
	Long: `Cadbridge connects AI agents to a running FreeCAD application. It talks
to the FreeCAD MCP addon over XML-RPC and exposes parametric modeling,
STEP import/export, the parts library, and manufacturability checks as
MCP tools and as CLI commands.

FreeCAD must be running with the MCP addon active (default endpoint
localhost:9875) for any command that touches a document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cadlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "FreeCAD addon host (default from config, else localhost)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "FreeCAD addon port (default from config, else 9875)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "RPC timeout (default from config, else 30s)")

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings resolves the effective settings from the config file in the
// working directory overlaid with the connection flags.
func loadSettings() (config.Settings, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "loading %s: %v", config.FileName, err)
	}
	if err := config.Validate(cfg); err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "%v", err)
	}
	return config.Resolve(cfg, config.Overrides{
		Host:    flagHost,
		Port:    flagPort,
		Timeout: flagTimeout,
	}), nil
}
