package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_ParsesFullConfig(t *testing.T) {
	dir := t.TempDir()
	content := `rpc:
  host: cadhost
  port: 19875
  timeout: 10s
default_view: Front
library:
  path: /srv/parts
llm:
  disabled: true
  model: claude-sonnet-4-5-20250929
dfm:
  cnc:
    min_radius: 2.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "cadhost", cfg.RPC.Host)
	assert.Equal(t, 19875, cfg.RPC.Port)
	assert.Equal(t, "10s", cfg.RPC.Timeout)
	assert.Equal(t, "Front", cfg.DefaultView)
	assert.Equal(t, "/srv/parts", cfg.Library.Path)
	assert.True(t, cfg.LLM.Disabled)
	assert.Equal(t, 2.0, cfg.DFM["cnc"]["min_radius"])
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("rpc: [unclosed"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestWrite_RoundTrips(t *testing.T) {
	cfg := &Config{
		RPC:         RPCConfig{Host: "localhost", Port: 9875},
		DefaultView: "Top",
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))
	assert.Contains(t, buf.String(), "host: localhost")
	assert.Contains(t, buf.String(), "default_view: Top")
}

func TestResolve_Defaults(t *testing.T) {
	s := Resolve(&Config{}, Overrides{})
	assert.Equal(t, DefaultHost, s.Host)
	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultTimeout, s.Timeout)
	assert.Equal(t, DefaultView, s.DefaultView)
	assert.Equal(t, DefaultLibraryRemote, s.LibraryRemote)
	assert.NotEmpty(t, s.LibraryPath)
}

func TestResolve_FileOverridesDefaults(t *testing.T) {
	cfg := &Config{
		RPC:         RPCConfig{Host: "cadhost", Port: 1234, Timeout: "5s"},
		DefaultView: "Front",
	}
	s := Resolve(cfg, Overrides{})
	assert.Equal(t, "cadhost", s.Host)
	assert.Equal(t, 1234, s.Port)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, "Front", s.DefaultView)
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	cfg := &Config{RPC: RPCConfig{Host: "cadhost", Port: 1234}}
	s := Resolve(cfg, Overrides{Host: "flaghost", Port: 4321, Timeout: time.Second})
	assert.Equal(t, "flaghost", s.Host)
	assert.Equal(t, 4321, s.Port)
	assert.Equal(t, time.Second, s.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero config is valid", cfg: Config{}},
		{
			name:    "bad port",
			cfg:     Config{RPC: RPCConfig{Port: 70000}},
			wantErr: "rpc.port",
		},
		{
			name:    "bad timeout",
			cfg:     Config{RPC: RPCConfig{Timeout: "soon"}},
			wantErr: "rpc.timeout",
		},
		{
			name:    "negative timeout",
			cfg:     Config{RPC: RPCConfig{Timeout: "-3s"}},
			wantErr: "rpc.timeout",
		},
		{
			name:    "unknown view",
			cfg:     Config{DefaultView: "Oblique"},
			wantErr: "default_view",
		},
		{
			name:    "unknown dfm process",
			cfg:     Config{DFM: map[string]map[string]float64{"casting": nil}},
			wantErr: "dfm.casting",
		},
		{
			name: "known dfm processes",
			cfg: Config{DFM: map[string]map[string]float64{
				"cnc": {"min_radius": 1.5}, "3d_printing": nil, "injection_molding": nil,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidView(t *testing.T) {
	assert.True(t, ValidView("Isometric"))
	assert.True(t, ValidView("Trimetric"))
	assert.False(t, ValidView("isometric"))
	assert.False(t, ValidView(""))
}
