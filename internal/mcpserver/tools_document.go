// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cadwell-io/cadbridge/internal/config"
	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// CreateDocumentInput is the input schema for create_document.
type CreateDocumentInput struct {
	Name string `json:"name" jsonschema:"Name of the document to create"`
}

// CreateObjectInput is the input schema for create_object.
type CreateObjectInput struct {
	Document   string         `json:"document" jsonschema:"Document to create the object in"`
	Name       string         `json:"name" jsonschema:"Name for the new object"`
	Type       string         `json:"type" jsonschema:"FreeCAD type id, e.g. Part::Box, Part::Cylinder, Draft::Circle, Fem::Analysis"`
	Properties map[string]any `json:"properties,omitempty" jsonschema:"Object properties (Length, Width, Height, Radius, Placement, ...)"`
	Analysis   string         `json:"analysis,omitempty" jsonschema:"Analysis container to add a Fem object to"`
}

// EditObjectInput is the input schema for edit_object.
type EditObjectInput struct {
	Document   string         `json:"document" jsonschema:"Document containing the object"`
	Object     string         `json:"object" jsonschema:"Name of the object to edit"`
	Properties map[string]any `json:"properties" jsonschema:"Properties to change"`
}

// DeleteObjectInput is the input schema for delete_object.
type DeleteObjectInput struct {
	Document string `json:"document" jsonschema:"Document containing the object"`
	Object   string `json:"object" jsonschema:"Name of the object to delete"`
}

// ExecuteCodeInput is the input schema for execute_code.
type ExecuteCodeInput struct {
	Code string `json:"code" jsonschema:"Python code to run inside FreeCAD"`
}

// GetViewInput is the input schema for get_view.
type GetViewInput struct {
	View string `json:"view,omitempty" jsonschema:"Viewpoint name (Isometric, Front, Top, Right, Back, Left, Bottom, Dimetric, Trimetric); defaults to the configured view"`
}

// GetObjectsInput is the input schema for get_objects.
type GetObjectsInput struct {
	Document string `json:"document" jsonschema:"Document to list"`
}

// GetObjectInput is the input schema for get_object.
type GetObjectInput struct {
	Document string `json:"document" jsonschema:"Document containing the object"`
	Object   string `json:"object" jsonschema:"Name of the object"`
}

func (b *bridge) handleCreateDocument(ctx context.Context, _ *mcp.CallToolRequest, input CreateDocumentInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, fmt.Errorf("document name is required")
	}
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := client.CreateDocument(ctx, input.Name)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult(rpcFailureText("create_document", res)), nil, nil
	}
	name := res.DocumentName
	if name == "" {
		name = input.Name
	}
	return textResult(fmt.Sprintf("Created document %q.", name)), nil, nil
}

func (b *bridge) handleCreateObject(ctx context.Context, _ *mcp.CallToolRequest, input CreateObjectInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	payload := freecad.ObjectPayload{
		Name:       input.Name,
		Type:       input.Type,
		Properties: input.Properties,
	}
	if input.Analysis != "" {
		payload.Analysis = &input.Analysis
	}
	res, err := client.CreateObject(ctx, input.Document, payload)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult(rpcFailureText("create_object", res)), nil, nil
	}
	name := res.ObjectName
	if name == "" {
		name = input.Name
	}
	text := fmt.Sprintf("Created %s %q in document %q.", input.Type, name, input.Document)
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func (b *bridge) handleEditObject(ctx context.Context, _ *mcp.CallToolRequest, input EditObjectInput) (*mcp.CallToolResult, any, error) {
	if len(input.Properties) == 0 {
		return nil, nil, fmt.Errorf("properties to change are required")
	}
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := client.EditObject(ctx, input.Document, input.Object, input.Properties)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult(rpcFailureText("edit_object", res)), nil, nil
	}
	text := fmt.Sprintf("Edited %q in document %q.", input.Object, input.Document)
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func (b *bridge) handleDeleteObject(ctx context.Context, _ *mcp.CallToolRequest, input DeleteObjectInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := client.DeleteObject(ctx, input.Document, input.Object)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return errorResult(rpcFailureText("delete_object", res)), nil, nil
	}
	text := fmt.Sprintf("Deleted %q from document %q.", input.Object, input.Document)
	return b.withScreenshot(ctx, client, textResult(text)), nil, nil
}

func (b *bridge) handleExecuteCode(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteCodeInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, nil, fmt.Errorf("code is required")
	}
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := client.ExecuteCode(ctx, input.Code)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		text := "code failed: " + res.Error
		if res.Traceback != "" {
			text += "\n\n```\n" + res.Traceback + "\n```"
		}
		return errorResult(text), nil, nil
	}
	out := res.Stdout()
	if out == "" {
		out = "Code executed successfully with no output."
	}
	return b.withScreenshot(ctx, client, textResult(out)), nil, nil
}

func (b *bridge) handleGetView(ctx context.Context, _ *mcp.CallToolRequest, input GetViewInput) (*mcp.CallToolResult, any, error) {
	view := input.View
	if view == "" {
		view = b.settings.DefaultView
	}
	if !config.ValidView(view) {
		return nil, nil, fmt.Errorf("unknown view %q (supported: %s)", view, strings.Join(config.ViewNames, ", "))
	}
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := client.ActiveScreenshot(ctx, view)
	if err != nil {
		return nil, nil, err
	}
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, fmt.Errorf("screenshot payload is not valid base64: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s view of the active document.", view)},
			&mcp.ImageContent{Data: png, MIMEType: "image/png"},
		},
	}, nil, nil
}

func (b *bridge) handleGetObjects(ctx context.Context, _ *mcp.CallToolRequest, input GetObjectsInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	objects, err := client.GetObjects(ctx, input.Document)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding objects: %w", err)
	}
	return textResult(string(data)), nil, nil
}

func (b *bridge) handleGetObject(ctx context.Context, _ *mcp.CallToolRequest, input GetObjectInput) (*mcp.CallToolResult, any, error) {
	client, err := b.freecad(ctx)
	if err != nil {
		return nil, nil, err
	}
	obj, err := client.GetObject(ctx, input.Document, input.Object)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding object: %w", err)
	}
	return textResult(string(data)), nil, nil
}
