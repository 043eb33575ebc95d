// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cadwell-io/cadbridge/internal/analysis"
	"github.com/cadwell-io/cadbridge/internal/dfm"
	"github.com/cadwell-io/cadbridge/internal/freecad"
	"github.com/cadwell-io/cadbridge/internal/report"
)

// AnalyzeScreenshotInput is the input schema for analyze_screenshot_for_issues.
type AnalyzeScreenshotInput struct {
	Document string   `json:"document" jsonschema:"Document to analyze"`
	View     string   `json:"view,omitempty" jsonschema:"Viewpoint for the screenshot; defaults to the configured view"`
	Focus    []string `json:"focus,omitempty" jsonschema:"Concerns for the visual review, e.g. intersections, proportions, floating geometry"`
}

// ApplyFixesInput is the input schema for apply_automatic_fixes.
type ApplyFixesInput struct {
	Document string   `json:"document" jsonschema:"Document to repair"`
	FixTypes []string `json:"fix_types,omitempty" jsonschema:"Kinds of fixes to apply: wall_thickness, corner_radii, geometry, separation; empty applies all"`
}

// QuickCheckInput is the input schema for analyze_manufacturability_quick.
type QuickCheckInput struct {
	Document string `json:"document" jsonschema:"Document to check"`
	Process  string `json:"process" jsonschema:"Target process: 3d_printing, cnc, or injection_molding"`
}

// ScreenshotAndFixInput is the input schema for screenshot_and_fix_issues.
type ScreenshotAndFixInput struct {
	Document string `json:"document" jsonschema:"Document to inspect and repair"`
}

func (b *bridge) handleAnalyzeScreenshot(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeScreenshotInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	view := input.View
	if view == "" {
		view = b.settings.DefaultView
	}
	encoded, err := client.ActiveScreenshot(ctx, view)
	if err != nil {
		return nil, nil, err
	}
	objects, err := client.GetObjects(ctx, input.Document)
	if err != nil {
		return nil, nil, err
	}

	text := analysis.Inspect(objects).Markdown(input.Document)

	if b.provider != nil {
		review, err := analysis.AnalyzeScreenshot(ctx, b.provider, encoded, input.Document, input.Focus)
		if err != nil {
			slog.Warn("LLM visual review failed, continuing with heuristics only", "error", err)
		} else {
			text += "\n## Visual Review\n\n" + review + "\n"
		}
	}

	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func (b *bridge) handleApplyFixes(ctx context.Context, _ *mcp.CallToolRequest, input ApplyFixesInput) (*mcp.CallToolResult, any, error) {
	for _, kind := range input.FixTypes {
		if !validFixKind(kind) {
			return nil, nil, fmt.Errorf("unknown fix type %q (supported: %s)", kind, strings.Join(analysis.FixKinds, ", "))
		}
	}

	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	objects, err := client.GetObjects(ctx, input.Document)
	if err != nil {
		return nil, nil, err
	}

	fixes := analysis.PlanFixes(input.Document, objects, input.FixTypes)
	failures := map[string]string{}
	for _, fix := range fixes {
		res, err := client.ExecuteCode(ctx, fix.Script)
		if err != nil {
			return nil, nil, err
		}
		if !res.Success {
			failures[fix.Object] = res.Error
		}
	}

	text := report.FixSummary(input.Document, fixes, true, failures)
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func validFixKind(kind string) bool {
	for _, k := range analysis.FixKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (b *bridge) handleQuickCheck(ctx context.Context, _ *mcp.CallToolRequest, input QuickCheckInput) (*mcp.CallToolResult, any, error) {
	process := dfm.Process(input.Process)
	switch process {
	case dfm.Printing3D, dfm.CNC, dfm.InjectionMolding:
	default:
		return nil, nil, fmt.Errorf("unknown process %q (supported: %s, %s, %s)",
			input.Process, dfm.Printing3D, dfm.CNC, dfm.InjectionMolding)
	}

	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	objects, err := client.GetObjects(ctx, input.Document)
	if err != nil {
		return nil, nil, err
	}

	issues, tips := analysis.QuickCheck(process, objects)
	return textResult(report.QuickCheckSummary(input.Document, input.Process, issues, tips)), nil, nil
}

func (b *bridge) handleScreenshotAndFix(ctx context.Context, _ *mcp.CallToolRequest, input ScreenshotAndFixInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	objects, err := client.GetObjects(ctx, input.Document)
	if err != nil {
		return nil, nil, err
	}

	var steps []string

	// Hidden objects make the view lie about the document; unhide them
	// before judging the layout.
	for _, obj := range objects {
		if obj.Visible() {
			continue
		}
		res, err := client.EditObject(ctx, input.Document, obj.Name(), map[string]any{"Visibility": true})
		if err != nil {
			return nil, nil, err
		}
		if res.Success {
			steps = append(steps, fmt.Sprintf("made %q visible", obj.Label()))
		}
	}

	for _, fix := range analysis.PlanFixes(input.Document, objects, []string{analysis.FixSeparation}) {
		res, err := client.ExecuteCode(ctx, fix.Script)
		if err != nil {
			return nil, nil, err
		}
		if res.Success {
			steps = append(steps, fmt.Sprintf("%s: %s", fix.Object, fix.Description))
		}
	}

	_, _ = client.ExecuteCode(ctx, freecad.ViewFitScript)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# View Cleanup: %s\n\n", input.Document)
	if len(steps) == 0 {
		sb.WriteString("Nothing needed fixing; the view was already clean.\n")
	} else {
		fmt.Fprintf(&sb, "%d change(s) applied:\n\n", len(steps))
		for _, s := range steps {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	return b.withScreenshot(ctx, client, textResult(sb.String())), nil, nil
}
