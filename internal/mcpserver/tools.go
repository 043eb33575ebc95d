// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all cadbridge tools to the MCP server.
func (b *bridge) registerTools(server *mcp.Server) {
	readOnly := &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
	mutating := &mcp.ToolAnnotations{
		ReadOnlyHint:    false,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
	destructive := &mcp.ToolAnnotations{
		ReadOnlyHint:    false,
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_document",
		Description: "Create a new FreeCAD document.",
		Annotations: mutating,
	}, b.handleCreateDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_object",
		Description: "Create an object in a FreeCAD document. Supports Part, Draft, PartDesign and Fem object types with a Properties map (Length, Width, Height, Radius, Placement, ...).",
		Annotations: mutating,
	}, b.handleCreateObject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_object",
		Description: "Edit properties of an existing object in a FreeCAD document.",
		Annotations: mutating,
	}, b.handleEditObject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_object",
		Description: "Delete an object from a FreeCAD document.",
		Annotations: destructive,
	}, b.handleDeleteObject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "execute_code",
		Description: "Execute arbitrary Python code inside FreeCAD and return its output.",
		Annotations: destructive,
	}, b.handleExecuteCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_view",
		Description: "Capture a screenshot of the active FreeCAD 3D view from a named viewpoint (Isometric, Front, Top, Right, Back, Left, Bottom, Dimetric, Trimetric).",
		Annotations: readOnly,
	}, b.handleGetView)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_objects",
		Description: "List every object in a FreeCAD document with its properties, as JSON.",
		Annotations: readOnly,
	}, b.handleGetObjects)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_object",
		Description: "Get a single object's properties from a FreeCAD document, as JSON.",
		Annotations: readOnly,
	}, b.handleGetObject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_parts_list",
		Description: "List the parts available in the FreeCAD parts library.",
		Annotations: readOnly,
	}, b.handleGetPartsList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "insert_part_from_library",
		Description: "Insert a part from the FreeCAD parts library by its library-relative path.",
		Annotations: mutating,
	}, b.handleInsertPart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_step",
		Description: "Export a document (or a subset of its objects) to a STEP file on the desktop, in documents, downloads, or the temp directory.",
		Annotations: mutating,
	}, b.handleExportStep)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_step_file",
		Description: "Import a local STEP or IGES file into a FreeCAD document, optionally placing it at given coordinates.",
		Annotations: mutating,
	}, b.handleImportStepFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_mcmaster_part",
		Description: "Identify a McMaster-Carr part number against the bundled catalog and return its STEP download URL and import instructions. No network access is performed.",
		Annotations: readOnly,
	}, b.handleImportMcMasterPart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "manage_imported_parts",
		Description: "Manage imported parts in a document: list them, identify their likely sources, organize them into a row, or clean up hidden leftovers.",
		Annotations: mutating,
	}, b.handleManageImportedParts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_cnc_manufacturing_dfm",
		Description: "Run the CNC machining design-for-manufacturing check on a document. Offending faces are highlighted in the viewport.",
		Annotations: mutating,
	}, b.handleCNCDFM)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_3d_printing_dfm",
		Description: "Run the 3D printing design-for-manufacturing check on a document. Supports FDM, SLA and SLS process presets.",
		Annotations: mutating,
	}, b.handlePrintingDFM)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_injection_molding_dfm",
		Description: "Run the injection molding design-for-manufacturing check on a document.",
		Annotations: mutating,
	}, b.handleInjectionDFM)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "restore_colors_and_objects_after_dfm_check",
		Description: "Restore original face colors and remove helper objects left behind by a DFM check.",
		Annotations: mutating,
	}, b.handleRestoreColors)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refine_3d_printing_dfm",
		Description: "Look up 3D printing design guidelines, filtered by feature and process (FDM/SLA/SLS).",
		Annotations: readOnly,
	}, b.handleRefinePrinting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refine_cnc_machining_dfm",
		Description: "Look up CNC machining design guidelines, filtered by feature.",
		Annotations: readOnly,
	}, b.handleRefineCNC)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refine_injection_molding_dfm",
		Description: "Look up injection molding design guidelines, filtered by feature.",
		Annotations: readOnly,
	}, b.handleRefineInjection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_screenshot_for_issues",
		Description: "Capture a screenshot and analyze the document for geometry, manufacturing and layout issues. Uses an LLM visual review when an Anthropic API key is configured.",
		Annotations: readOnly,
	}, b.handleAnalyzeScreenshot)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_automatic_fixes",
		Description: "Apply automatic repairs to a document: thicken thin walls, restore degenerate dimensions, fillet sharp corners, separate overlapping parts.",
		Annotations: mutating,
	}, b.handleApplyFixes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_manufacturability_quick",
		Description: "Fast manufacturability check for a target process (3d_printing, cnc, injection_molding) from object data, without modifying the document.",
		Annotations: readOnly,
	}, b.handleQuickCheck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "screenshot_and_fix_issues",
		Description: "Capture the view, fix visibility and overlap problems, refit the view, and report before/after.",
		Annotations: mutating,
	}, b.handleScreenshotAndFix)
}

// textResult wraps plain text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult reports an addon-side failure as tool output rather than a
// protocol error, so the model can read it and adjust.
func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// rpcFailureText renders the addon's {success:false} envelope.
func rpcFailureText(action string, res freecad.Result) string {
	msg := res.Error
	if msg == "" {
		msg = res.Message
	}
	if msg == "" {
		msg = "the addon reported a failure without details"
	}
	return action + " failed: " + msg
}

// withScreenshot appends the current viewport to a text result,
// best-effort. Screenshot failures are logged and swallowed so the text
// outcome still reaches the client.
func (b *bridge) withScreenshot(ctx context.Context, client *freecad.Client, result *mcp.CallToolResult) *mcp.CallToolResult {
	encoded, err := client.ActiveScreenshot(ctx, b.settings.DefaultView)
	if err != nil {
		slog.Debug("screenshot unavailable", "error", err)
		return result
	}
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		slog.Debug("screenshot payload is not valid base64", "error", err)
		return result
	}
	result.Content = append(result.Content, &mcp.ImageContent{
		Data:     png,
		MIMEType: "image/png",
	})
	return result
}
