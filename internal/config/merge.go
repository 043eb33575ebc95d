package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Overrides carries CLI-provided values. Zero fields fall through to the
// file config and then to the built-in defaults.
type Overrides struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// Resolve layers defaults, file config, and CLI overrides (in increasing
// precedence) into concrete runtime settings.
func Resolve(fileCfg *Config, o Overrides) Settings {
	s := Settings{
		Host:          DefaultHost,
		Port:          DefaultPort,
		Timeout:       DefaultTimeout,
		DefaultView:   DefaultView,
		LibraryPath:   DefaultLibraryPath(),
		LibraryRemote: DefaultLibraryRemote,
	}

	if fileCfg != nil {
		if fileCfg.RPC.Host != "" {
			s.Host = fileCfg.RPC.Host
		}
		if fileCfg.RPC.Port != 0 {
			s.Port = fileCfg.RPC.Port
		}
		if fileCfg.RPC.Timeout != "" {
			if d, err := time.ParseDuration(fileCfg.RPC.Timeout); err == nil {
				s.Timeout = d
			}
		}
		if fileCfg.DefaultView != "" {
			s.DefaultView = fileCfg.DefaultView
		}
		if fileCfg.Library.Path != "" {
			s.LibraryPath = fileCfg.Library.Path
		}
		if fileCfg.Library.Remote != "" {
			s.LibraryRemote = fileCfg.Library.Remote
		}
		s.LLMDisabled = fileCfg.LLM.Disabled
		s.LLMModel = fileCfg.LLM.Model
		s.DFM = fileCfg.DFM
	}

	if o.Host != "" {
		s.Host = o.Host
	}
	if o.Port != 0 {
		s.Port = o.Port
	}
	if o.Timeout != 0 {
		s.Timeout = o.Timeout
	}

	return s
}

// DefaultLibraryPath returns the XDG data directory location used for the
// parts library clone when no path is configured.
func DefaultLibraryPath() string {
	return filepath.Join(xdg.DataHome, "cadbridge", "parts-library")
}
