// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cadwell-io/cadbridge/internal/freecad"
	"github.com/cadwell-io/cadbridge/internal/mcmaster"
	"github.com/cadwell-io/cadbridge/internal/report"
)

// GetPartsListInput is the input schema for get_parts_list.
type GetPartsListInput struct{}

// InsertPartInput is the input schema for insert_part_from_library.
type InsertPartInput struct {
	Path string `json:"path" jsonschema:"Library-relative path of the part, as returned by get_parts_list"`
}

// ExportStepInput is the input schema for export_step.
type ExportStepInput struct {
	Document string   `json:"document" jsonschema:"Document to export"`
	FileName string   `json:"file_name,omitempty" jsonschema:"Target file name; a .step extension is enforced. Defaults to a generated name"`
	ExportTo string   `json:"export_to,omitempty" jsonschema:"Save location: desktop, documents, downloads, or temp (default: desktop)"`
	Objects  []string `json:"objects,omitempty" jsonschema:"Only export these objects; empty exports every object with a shape"`
}

// ImportStepFileInput is the input schema for import_step_file.
type ImportStepFileInput struct {
	Document  string     `json:"document" jsonschema:"Document to import into"`
	FilePath  string     `json:"file_path" jsonschema:"Local path of the STEP or IGES file"`
	Placement *Placement `json:"placement,omitempty" jsonschema:"Position the imported objects after import"`
}

// Placement is an absolute position in millimeters.
type Placement struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ImportMcMasterInput is the input schema for import_mcmaster_part.
type ImportMcMasterInput struct {
	PartNumber  string `json:"part_number" jsonschema:"McMaster-Carr part number, e.g. 91290A115"`
	Description string `json:"description,omitempty" jsonschema:"Optional human description of the part"`
}

// ManagePartsInput is the input schema for manage_imported_parts.
type ManagePartsInput struct {
	Document string `json:"document" jsonschema:"Document holding the imported parts"`
	Action   string `json:"action" jsonschema:"One of: list, identify, organize, cleanup"`
}

// importExtensions whitelists what import_step_file accepts.
var importExtensions = map[string]bool{
	".step": true,
	".stp":  true,
	".iges": true,
	".igs":  true,
}

func (b *bridge) handleGetPartsList(ctx context.Context, _ *mcp.CallToolRequest, _ GetPartsListInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	parts, err := client.PartsList(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(parts) == 0 {
		return textResult("The parts library is empty or not configured in FreeCAD. Run `cadbridge library sync` to fetch it."), nil, nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d part(s) available:\n\n", len(parts))
	for _, p := range parts {
		fmt.Fprintf(&sb, "- %s\n", p)
	}
	return textResult(sb.String()), nil, nil
}

func (b *bridge) handleInsertPart(ctx context.Context, _ *mcp.CallToolRequest, input InsertPartInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, nil, fmt.Errorf("part path is required")
	}
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := client.InsertPartFromLibrary(ctx, input.Path)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult(rpcFailureText("insert_part_from_library", res)), nil, nil
	}
	text := fmt.Sprintf("Inserted part %q.", input.Path)
	if res.Message != "" {
		text = res.Message
	}
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func (b *bridge) handleExportStep(ctx context.Context, _ *mcp.CallToolRequest, input ExportStepInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Document) == "" {
		return nil, nil, fmt.Errorf("document is required")
	}
	fileName := input.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("%s-%s.step", input.Document, uuid.NewString()[:8])
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != ".step" {
		fileName += ".step"
	}

	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Newer addon builds have a dedicated export_step method; prefer it
	// when none of the script-only options are requested, and fall back
	// to the script on builds that lack it.
	if input.ExportTo == "" && len(input.Objects) == 0 {
		res, err := client.ExportStep(ctx, input.Document, fileName)
		if err == nil {
			if !res.Success {
				return errorResult("export failed: " + res.Error), nil, nil
			}
			text := res.Message
			if text == "" {
				text = fmt.Sprintf("Exported %q to %s.", input.Document, fileName)
			}
			return textResult(text), nil, nil
		}
		slog.Debug("export_step RPC unavailable, using script export", "error", err)
	}

	script := freecad.ExportScript(input.Document, input.ExportTo, fileName, input.Objects)
	res, err := client.ExecuteCode(ctx, script)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult("export failed: " + res.Error), nil, nil
	}
	out := res.Stdout()
	if out == "" {
		out = fmt.Sprintf("Exported %q to %s.", input.Document, fileName)
	}
	return textResult(out), nil, nil
}

func (b *bridge) handleImportStepFile(ctx context.Context, _ *mcp.CallToolRequest, input ImportStepFileInput) (*mcp.CallToolResult, any, error) {
	ext := strings.ToLower(filepath.Ext(input.FilePath))
	if !importExtensions[ext] {
		return nil, nil, fmt.Errorf("unsupported file type %q (supported: .step, .stp, .iges, .igs)", ext)
	}
	if _, err := os.Stat(input.FilePath); err != nil {
		return nil, nil, fmt.Errorf("cannot read %s: %w", input.FilePath, err)
	}

	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := client.ImportStep(ctx, input.Document, input.FilePath)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult("import failed: " + res.Error), nil, nil
	}

	if input.Placement != nil {
		base := map[string]any{"x": input.Placement.X, "y": input.Placement.Y, "z": input.Placement.Z}
		for _, name := range res.Objects {
			if _, err := client.EditObject(ctx, input.Document, name, map[string]any{
				"Placement": map[string]any{"Base": base},
			}); err != nil {
				return nil, nil, fmt.Errorf("placing %s: %w", name, err)
			}
		}
	}

	// Refit the camera so the new part is visible. Best effort.
	_, _ = client.ExecuteCode(ctx, freecad.ViewFitScript)

	text := report.ImportSummary(input.FilePath, input.Document, res.Objects)
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func (b *bridge) handleImportMcMasterPart(_ context.Context, _ *mcp.CallToolRequest, input ImportMcMasterInput) (*mcp.CallToolResult, any, error) {
	number := strings.TrimSpace(input.PartNumber)
	if !mcmaster.ValidPartNumber(number) {
		return nil, nil, fmt.Errorf("%q does not look like a McMaster-Carr part number (expected e.g. 91290A115)", input.PartNumber)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# McMaster-Carr Part %s\n\n", number)
	if input.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", input.Description)
	}
	if family, ok := b.catalog.Match(number); ok {
		fmt.Fprintf(&sb, "Series **%s** — %s (%s): %s\n\n", family.Prefix, family.Name, family.Category, family.Description)
	} else {
		sb.WriteString("The series is not in the bundled catalog; the URLs below still follow McMaster's standard pattern.\n\n")
	}
	fmt.Fprintf(&sb, "- STEP model: %s\n", mcmaster.StepURL(number))
	fmt.Fprintf(&sb, "- Product page: %s\n\n", mcmaster.PageURL(number))
	sb.WriteString("Download the STEP model to a local path, then call `import_step_file` with that path to bring it into the document.\n")

	return textResult(sb.String()), nil, nil
}

func (b *bridge) handleManageImportedParts(ctx context.Context, _ *mcp.CallToolRequest, input ManagePartsInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	objects, err := client.GetObjects(ctx, input.Document)
	if err != nil {
		return nil, nil, err
	}
	imported := importedParts(objects)

	switch input.Action {
	case "list":
		return textResult(report.ObjectList(input.Document, imported)), nil, nil

	case "identify":
		var sb strings.Builder
		fmt.Fprintf(&sb, "# Imported Parts in %s\n\n", input.Document)
		if len(imported) == 0 {
			sb.WriteString("No imported parts found.\n")
			return textResult(sb.String()), nil, nil
		}
		for _, obj := range imported {
			fmt.Fprintf(&sb, "- **%s** — likely source: %s\n", obj.Label(), guessSource(obj.Label()))
		}
		return textResult(sb.String()), nil, nil

	case "organize":
		const spacing = 60.0
		moved := 0
		placed := 0
		for _, obj := range imported {
			x, _, _, ok := obj.Base()
			if !ok {
				continue
			}
			dx := spacing*float64(placed) - x
			placed++
			if math.Abs(dx) < 0.1 {
				continue
			}
			res, err := client.ExecuteCode(ctx, freecad.TranslateScript(input.Document, obj.Name(), dx))
			if err != nil {
				return nil, nil, err
			}
			if res.Success {
				moved++
			}
		}
		_, _ = client.ExecuteCode(ctx, freecad.ViewFitScript)
		text := fmt.Sprintf("Arranged %d imported part(s) in a row with %.0fmm spacing.", moved, spacing)
		return b.withScreenshot(ctx, client, textResult(text)), nil, nil

	case "cleanup":
		removed := 0
		for _, obj := range imported {
			if obj.Visible() {
				continue
			}
			res, err := client.DeleteObject(ctx, input.Document, obj.Name())
			if err != nil {
				return nil, nil, err
			}
			if res.Success {
				removed++
			}
		}
		return textResult(fmt.Sprintf("Removed %d hidden imported part(s).", removed)), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown action %q (supported: list, identify, organize, cleanup)", input.Action)
	}
}

// importedParts filters for objects that came from a file import rather
// than parametric modeling. Imports arrive as plain Part::Feature shapes.
func importedParts(objects []freecad.Object) []freecad.Object {
	var out []freecad.Object
	for _, obj := range objects {
		if obj.TypeID() == "Part::Feature" {
			out = append(out, obj)
		}
	}
	return out
}

func guessSource(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "mcmaster") || strings.HasPrefix(l, "mc"):
		return "McMaster-Carr"
	case strings.Contains(l, "grabcad"):
		return "GrabCAD"
	case strings.Contains(l, "thingiverse"):
		return "Thingiverse"
	default:
		return "unknown"
	}
}
