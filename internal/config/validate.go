package config

import (
	"fmt"
	"strings"
	"time"
)

// ViewNames lists the camera views the FreeCAD addon accepts for
// screenshots. Kept in sync with the get_view tool schema.
var ViewNames = []string{
	"Isometric", "Front", "Top", "Right", "Back", "Left",
	"Bottom", "Dimetric", "Trimetric",
}

// ValidView reports whether name is an accepted camera view.
func ValidView(name string) bool {
	for _, v := range ViewNames {
		if v == name {
			return true
		}
	}
	return false
}

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		errs = append(errs, fmt.Sprintf("rpc.port: must be between 0 and 65535, got %d", cfg.RPC.Port))
	}

	if cfg.RPC.Timeout != "" {
		if d, err := time.ParseDuration(cfg.RPC.Timeout); err != nil {
			errs = append(errs, fmt.Sprintf("rpc.timeout: invalid duration %q", cfg.RPC.Timeout))
		} else if d <= 0 {
			errs = append(errs, fmt.Sprintf("rpc.timeout: must be positive, got %s", d))
		}
	}

	if cfg.DefaultView != "" && !ValidView(cfg.DefaultView) {
		errs = append(errs, fmt.Sprintf("default_view: unknown view %q (must be one of %s)",
			cfg.DefaultView, strings.Join(ViewNames, ", ")))
	}

	for process := range cfg.DFM {
		switch process {
		case "cnc", "3d_printing", "injection_molding":
			// valid
		default:
			errs = append(errs, fmt.Sprintf("dfm.%s: unknown process (must be cnc, 3d_printing, or injection_molding)", process))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
