// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

// Package mcpserver exposes FreeCAD to MCP clients. Tool handlers share
// one lazily established XML-RPC connection to the addon, so the server
// can start before FreeCAD does and clients get a clear error until the
// addon is reachable.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/singleflight"

	"github.com/cadwell-io/cadbridge/internal/config"
	"github.com/cadwell-io/cadbridge/internal/freecad"
	"github.com/cadwell-io/cadbridge/internal/llm"
	"github.com/cadwell-io/cadbridge/internal/mcmaster"
)

// bridge holds the state shared by all tool handlers.
type bridge struct {
	settings config.Settings
	catalog  *mcmaster.Catalog

	// dial produces the transport for the addon connection. Tests swap it
	// for a mock Caller.
	dial func() (freecad.Caller, error)

	// provider serves the optional LLM screenshot review; nil disables it.
	provider llm.Provider

	group  singleflight.Group
	mu     sync.Mutex
	client *freecad.Client
}

func newBridge(settings config.Settings) *bridge {
	b := &bridge{settings: settings}
	b.dial = func() (freecad.Caller, error) {
		return freecad.NewCaller(settings.Host, settings.Port, settings.Timeout)
	}

	catalog, err := mcmaster.LoadCatalog()
	if err != nil {
		// The catalog is compiled in; a parse failure is a build defect.
		panic(err)
	}
	b.catalog = catalog

	if !settings.LLMDisabled {
		if key := config.AnthropicAPIKey(); key != "" {
			opts := []llm.AnthropicOption{llm.WithAPIKey(key)}
			if settings.LLMModel != "" {
				opts = append(opts, llm.WithModel(settings.LLMModel))
			}
			provider, err := llm.NewAnthropicProvider(opts...)
			if err != nil {
				slog.Warn("LLM screenshot review unavailable", "error", err)
			} else {
				b.provider = provider
			}
		}
	}
	return b
}

// freecad returns the shared addon client, establishing and pinging the
// connection on first use. Concurrent first calls collapse into one dial.
func (b *bridge) freecad(ctx context.Context) (*freecad.Client, error) {
	b.mu.Lock()
	client := b.client
	b.mu.Unlock()
	if client != nil {
		return client, nil
	}

	v, err, _ := b.group.Do("connect", func() (any, error) {
		caller, err := b.dial()
		if err != nil {
			return nil, err
		}
		c := freecad.NewClient(caller)
		if err := c.Ping(ctx); err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.client = c
		b.mu.Unlock()
		slog.Info("connected to FreeCAD addon", "host", b.settings.Host, "port", b.settings.Port)
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("FreeCAD is not reachable at %s:%d (is FreeCAD running with the MCP addon active?): %w",
			b.settings.Host, b.settings.Port, err)
	}
	return v.(*freecad.Client), nil
}

// New creates an MCP server with cadbridge's tools and prompts registered.
func New(version string, settings config.Settings) *mcp.Server {
	b := newBridge(settings)
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cadbridge",
		Title:   "Cadbridge — FreeCAD Control",
		Version: version,
	}, nil)

	b.registerTools(server)
	registerPrompts(server)
	return server
}

// Run creates an MCP server and runs it on the given transport. It blocks
// until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, settings config.Settings, transport mcp.Transport) error {
	server := New(version, settings)
	return server.Run(ctx, transport)
}
