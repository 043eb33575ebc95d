// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadwell-io/cadbridge/internal/config"
	"github.com/cadwell-io/cadbridge/internal/freecad"
)

func TestRunStatus_Connected(t *testing.T) {
	color.NoColor = true
	mock := freecad.NewMockCaller().
		Reply("ping", true).
		Reply("execute_code", freecad.ExecResult{Success: true, Output: "1.0.2\n"})

	var buf bytes.Buffer
	settings := config.Resolve(nil, config.Overrides{})
	err := runStatus(context.Background(), freecad.NewClient(mock), &buf, settings)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "localhost:9875")
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "1.0.2")
}

func TestRunStatus_Unreachable(t *testing.T) {
	color.NoColor = true
	mock := freecad.NewMockCaller().Fail("ping", errors.New("connection refused"))

	var buf bytes.Buffer
	settings := config.Resolve(nil, config.Overrides{})
	err := runStatus(context.Background(), freecad.NewClient(mock), &buf, settings)
	require.Error(t, err)

	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	assert.Equal(t, ExitConnectionFailed, ece.ExitCode())
	assert.Contains(t, buf.String(), "unreachable")
}

func TestFreecadVersion(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantCompat string
	}{
		{"current release", "1.0.2", "ok"},
		{"minimum supported", "0.21.0", "ok"},
		{"too old", "0.19.4", "incompatible"},
		{"garbage", "snapshot", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := freecad.NewMockCaller().
				Reply("execute_code", freecad.ExecResult{Success: true, Output: tt.output})
			version, compat := freecadVersion(context.Background(), freecad.NewClient(mock))
			assert.Equal(t, tt.wantCompat, compat)
			assert.Equal(t, tt.output, version)
		})
	}
}
