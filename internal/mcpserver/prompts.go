// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cadwell-io/cadbridge/internal/dfm"
)

// registerPrompts adds the modeling guidance prompts. They carry no
// arguments; the guideline prompts interpolate the embedded rule tables
// so the text stays in step with the refine tools.
func registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "asset_creation_strategy",
		Description: "Recommended workflow for building 3D models through the cadbridge tools.",
	}, promptText(assetCreationStrategy))

	server.AddPrompt(&mcp.Prompt{
		Name:        "3d_printing_guidelines",
		Description: "Design guidelines for 3D printing, covering the supported DFM features and processes.",
	}, promptText(printingGuidelines()))

	server.AddPrompt(&mcp.Prompt{
		Name:        "cnc_machining_guidelines",
		Description: "Design guidelines for CNC machining, covering the supported DFM features.",
	}, promptText(cncGuidelines()))
}

func promptText(text string) mcp.PromptHandler {
	return func(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: text}},
			},
		}, nil
	}
}

const assetCreationStrategy = `# 3D Modeling Strategy with FreeCAD

When building models through these tools, follow this workflow:

0. Make sure a document exists. If none does, call create_document first
   and keep working in it unless the user asks for another one.

1. Before any modeling step, call get_objects to confirm the current
   state of the document.

2. For modeling:
   - Use create_object for parametric primitives (Part::Box,
     Part::Cylinder, Part::Sphere, Part::Cone, Part::Torus) with their
     dimension and Placement properties.
   - Use edit_object to adjust properties you could not set at creation.
   - Use delete_object to remove objects.

3. Prefer pre-made components where they exist: check get_parts_list and
   insert with insert_part_from_library. For standard hardware, check
   import_mcmaster_part for a downloadable STEP model.

4. For operations the primitives cannot express (booleans, sketches,
   workbench features), run Python through execute_code.

5. Give every object a clear, descriptive name.

6. Set Placement explicitly so parts do not pile up at the origin.

7. Check your work visually with get_view from more than one viewpoint,
   and run analyze_manufacturability_quick before declaring a part done.`

func printingGuidelines() string {
	var sb strings.Builder
	sb.WriteString("# 3D Printing Design Guidelines\n\n")
	sb.WriteString("Design rules for printable parts. The supported DFM features and processes are listed below; use the refine_3d_printing_dfm tool to look up the guideline for any combination.\n\n")

	sb.WriteString("## Supported features\n\n")
	for _, f := range dfm.Features(dfm.PrintingRules) {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	sb.WriteString("\n## Supported processes\n\n")
	for _, p := range dfm.Processes(dfm.PrintingRules) {
		fmt.Fprintf(&sb, "- %s\n", p)
	}

	sb.WriteString(`
## Best practices

- Match minimum feature sizes and wall thicknesses to the chosen
  process; SLA resolves finer detail than FDM.
- Keep unsupported overhangs within the process limit or add supports.
- Orient the part so critical surfaces do not rely on support material.
- Respect clearances between mating parts so they do not fuse.
- Verify the design with analyze_3d_printing_dfm before exporting, and
  use its process_type parameter (FDM, SLA, SLS) to apply the right
  preset.`)
	return sb.String()
}

func cncGuidelines() string {
	var sb strings.Builder
	sb.WriteString("# CNC Machining Design Guidelines\n\n")
	sb.WriteString("Design rules for machinable parts. The supported DFM features are listed below; use the refine_cnc_machining_dfm tool to look up the guideline for any of them.\n\n")

	sb.WriteString("## Supported features\n\n")
	for _, f := range dfm.Features(dfm.CNCRules) {
		fmt.Fprintf(&sb, "- %s\n", f)
	}

	sb.WriteString(`
## Best practices

- Internal corners need a radius; a rotating tool cannot cut them sharp.
  Aim for a radius above one third of the pocket depth.
- Keep pocket depth to width below 4:1 to avoid long, fragile tooling.
- Walls must meet the minimum thickness or they will chatter and deflect
  during machining.
- Design so the part can be machined in as few setups as possible.
- Verify the design with analyze_cnc_manufacturing_dfm before exporting.`)
	return sb.String()
}
