// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cadwell-io/cadbridge/internal/dfm"
	"github.com/cadwell-io/cadbridge/internal/freecad"
	"github.com/cadwell-io/cadbridge/internal/report"
)

// CNCDFMInput is the input schema for analyze_cnc_manufacturing_dfm.
type CNCDFMInput struct {
	Document string         `json:"document" jsonschema:"Document to check"`
	Params   map[string]any `json:"params,omitempty" jsonschema:"Parameter overrides: min_radius, max_aspect_ratio, min_internal_corner_radius, min_wall_thickness"`
}

// PrintingDFMInput is the input schema for analyze_3d_printing_dfm.
type PrintingDFMInput struct {
	Document    string         `json:"document" jsonschema:"Document to check"`
	ProcessType string         `json:"process_type,omitempty" jsonschema:"Printing process preset: FDM, SLA, SLS, or Other (default)"`
	Params      map[string]any `json:"params,omitempty" jsonschema:"Parameter overrides: min_wall_thickness, min_feature_size, max_overhang_angle, min_hole_radius, min_clearance, max_aspect_ratio"`
}

// InjectionDFMInput is the input schema for analyze_injection_molding_dfm.
type InjectionDFMInput struct {
	Document string         `json:"document" jsonschema:"Document to check"`
	Params   map[string]any `json:"params,omitempty" jsonschema:"Parameter overrides: min_wall_thickness, max_wall_thickness, min_draft_angle, min_internal_corner_radius, max_aspect_ratio"`
}

// RestoreColorsInput is the input schema for restore_colors_and_objects_after_dfm_check.
type RestoreColorsInput struct {
	Document string `json:"document" jsonschema:"Document to restore"`
}

// RefinePrintingInput is the input schema for refine_3d_printing_dfm.
type RefinePrintingInput struct {
	Features  []string `json:"features,omitempty" jsonschema:"Feature names to look up (e.g. Wall Thickness, Overhang Angle); empty returns all"`
	Processes []string `json:"processes,omitempty" jsonschema:"Process names to look up (FDM, SLA, SLS); empty returns all"`
}

// RefineCNCInput is the input schema for refine_cnc_machining_dfm.
type RefineCNCInput struct {
	Features []string `json:"features,omitempty" jsonschema:"Feature names to look up (e.g. Internal Corner Radius, Pocket Depth); empty returns all"`
}

// RefineInjectionInput is the input schema for refine_injection_molding_dfm.
type RefineInjectionInput struct {
	Features []string `json:"features,omitempty" jsonschema:"Feature names to look up (e.g. Wall Thickness, Draft Angle); empty returns all"`
}

func (b *bridge) handleCNCDFM(ctx context.Context, _ *mcp.CallToolRequest, input CNCDFMInput) (*mcp.CallToolResult, any, error) {
	return b.runDFM(ctx, dfm.CNC, freecad.ProcessCNC, "CNC Machining DFM", input.Document, input.Params)
}

func (b *bridge) handlePrintingDFM(ctx context.Context, _ *mcp.CallToolRequest, input PrintingDFMInput) (*mcp.CallToolResult, any, error) {
	call := input.Params
	if input.ProcessType != "" {
		if call == nil {
			call = map[string]any{}
		}
		call["process_type"] = input.ProcessType
	}
	return b.runDFM(ctx, dfm.Printing3D, freecad.Process3DPrinting, "3D Printing DFM", input.Document, call)
}

func (b *bridge) handleInjectionDFM(ctx context.Context, _ *mcp.CallToolRequest, input InjectionDFMInput) (*mcp.CallToolResult, any, error) {
	return b.runDFM(ctx, dfm.InjectionMolding, freecad.ProcessInjectionMolding, "Injection Molding DFM", input.Document, input.Params)
}

// runDFM is the shared flow of the three DFM tools: clear leftover
// highlights, merge parameters, run the check, render the result.
func (b *bridge) runDFM(ctx context.Context, process dfm.Process, rpcProcess, title, document string, call map[string]any) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(document) == "" {
		return nil, nil, fmt.Errorf("document is required")
	}
	params, err := dfm.Params(process, b.settings.DFM[string(process)], call)
	if err != nil {
		return nil, nil, err
	}

	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}

	// A previous check may have left highlights behind; clearing them is
	// best effort.
	_, _ = client.RestoreColors(ctx, document)

	res, err := client.RunDFMCheck(ctx, rpcProcess, document, params)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		detail := res.Error
		if detail == "" {
			detail = "the addon reported a failure without details"
		}
		return errorResult(fmt.Sprintf("%s check failed: %s", title, detail)), nil, nil
	}

	text := report.DFMSummary(title, document, res, numericParams(params))
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

// numericParams keeps the float parameters for display, dropping
// non-numeric entries such as process_type.
func numericParams(params map[string]any) map[string]float64 {
	out := make(map[string]float64, len(params))
	for k, v := range params {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}

func (b *bridge) handleRestoreColors(ctx context.Context, _ *mcp.CallToolRequest, input RestoreColorsInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := client.RestoreColors(ctx, input.Document)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult(rpcFailureText("restore_colors_after_check", res)), nil, nil
	}
	text := res.Message
	if text == "" {
		text = "Restored original colors and removed DFM helper objects."
	}
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func (b *bridge) handleRefinePrinting(_ context.Context, _ *mcp.CallToolRequest, input RefinePrintingInput) (*mcp.CallToolResult, any, error) {
	table, err := dfm.Refine(dfm.PrintingRules, input.Features, input.Processes)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult(table), nil, nil
}

func (b *bridge) handleRefineCNC(_ context.Context, _ *mcp.CallToolRequest, input RefineCNCInput) (*mcp.CallToolResult, any, error) {
	table, err := dfm.Refine(dfm.CNCRules, input.Features, nil)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult(table), nil, nil
}

func (b *bridge) handleRefineInjection(_ context.Context, _ *mcp.CallToolRequest, input RefineInjectionInput) (*mcp.CallToolResult, any, error) {
	table, err := dfm.Refine(dfm.InjectionMoldingRules, input.Features, nil)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult(table), nil, nil
}
