// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadwell-io/cadbridge/internal/freecad"
	"github.com/cadwell-io/cadbridge/internal/mcmaster"
)

// testBridge wires a bridge to a mock transport. The mock must reply to
// ping, which the first handler call performs.
func testBridge(t *testing.T, mock *freecad.MockCaller) *bridge {
	t.Helper()
	catalog, err := mcmaster.LoadCatalog()
	require.NoError(t, err)
	return &bridge{
		settings: testSettings(),
		catalog:  catalog,
		dial:     func() (freecad.Caller, error) { return mock, nil },
	}
}

func connectedMock() *freecad.MockCaller {
	return freecad.NewMockCaller().Reply("ping", true)
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "first content is %T, want text", res.Content[0])
	return text.Text
}

func fakeScreenshot() string {
	return base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func TestHandleCreateDocument(t *testing.T) {
	mock := connectedMock().Reply("create_document", freecad.Result{Success: true, DocumentName: "Bracket"})
	b := testBridge(t, mock)

	res, _, err := b.handleCreateDocument(context.Background(), nil, CreateDocumentInput{Name: "Bracket"})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `"Bracket"`)
	assert.False(t, res.IsError)
}

func TestHandleCreateDocument_EmptyName(t *testing.T) {
	b := testBridge(t, connectedMock())

	_, _, err := b.handleCreateDocument(context.Background(), nil, CreateDocumentInput{})
	require.Error(t, err)
}

func TestHandleCreateObject_AddonFailure(t *testing.T) {
	mock := connectedMock().Reply("create_object", freecad.Result{Success: false, Error: "document not found"})
	b := testBridge(t, mock)

	res, _, err := b.handleCreateObject(context.Background(), nil, CreateObjectInput{
		Document: "Missing", Name: "Box", Type: "Part::Box",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "document not found")
}

func TestHandleCreateObject_InvalidTypeNeverReachesAddon(t *testing.T) {
	mock := connectedMock()
	b := testBridge(t, mock)

	_, _, err := b.handleCreateObject(context.Background(), nil, CreateObjectInput{
		Document: "Demo", Name: "Thing", Type: "Mesh::Box",
	})
	require.Error(t, err)
	assert.Zero(t, mock.CallsTo("create_object"))
}

func TestBridge_ConnectionFailure(t *testing.T) {
	b := testBridge(t, connectedMock())
	b.dial = func() (freecad.Caller, error) { return nil, errors.New("connection refused") }

	_, _, err := b.handleCreateDocument(context.Background(), nil, CreateDocumentInput{Name: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestBridge_DialsOnce(t *testing.T) {
	mock := connectedMock().Reply("list_documents", []string{})
	b := testBridge(t, mock)

	for range 3 {
		client, err := b.freecad(context.Background())
		require.NoError(t, err)
		_, err = client.ListDocuments(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, mock.CallsTo("ping"))
}

func TestHandleExecuteCode_Traceback(t *testing.T) {
	mock := connectedMock().Reply("execute_code", freecad.ExecResult{
		Success: false, Error: "NameError", Traceback: "Traceback (most recent call last): ...",
	})
	b := testBridge(t, mock)

	res, _, err := b.handleExecuteCode(context.Background(), nil, ExecuteCodeInput{Code: "oops()"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "NameError")
	assert.Contains(t, text, "Traceback")
}

func TestHandleGetView(t *testing.T) {
	mock := connectedMock().Reply("get_active_screenshot", fakeScreenshot())
	b := testBridge(t, mock)

	res, _, err := b.handleGetView(context.Background(), nil, GetViewInput{View: "Front"})
	require.NoError(t, err)
	require.Len(t, res.Content, 2)

	img, ok := res.Content[1].(*mcp.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []byte("png-bytes"), img.Data)
}

func TestHandleGetView_UnknownView(t *testing.T) {
	b := testBridge(t, connectedMock())

	_, _, err := b.handleGetView(context.Background(), nil, GetViewInput{View: "Sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Isometric")
}

func TestHandleExportStep_UsesDedicatedRPC(t *testing.T) {
	mock := connectedMock().Reply("export_step", freecad.Result{
		Success: true, Message: "Exported to /home/u/Desktop/Bracket.step",
	})
	b := testBridge(t, mock)

	res, _, err := b.handleExportStep(context.Background(), nil, ExportStepInput{
		Document: "Bracket", FileName: "Bracket.step",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "/home/u/Desktop/Bracket.step")
	assert.Zero(t, mock.CallsTo("execute_code"))
}

func TestHandleExportStep_RPCFailure(t *testing.T) {
	mock := connectedMock().Reply("export_step", freecad.Result{
		Success: false, Error: "document not found",
	})
	b := testBridge(t, mock)

	res, _, err := b.handleExportStep(context.Background(), nil, ExportStepInput{Document: "Missing"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "document not found")
}

func TestHandleExportStep_DefaultFileName(t *testing.T) {
	// No export_step reply registered: older addons fail that call and
	// the handler falls back to the script.
	mock := connectedMock().Reply("execute_code", freecad.ExecResult{Success: true, Output: "exported 2 objects"})
	b := testBridge(t, mock)

	res, _, err := b.handleExportStep(context.Background(), nil, ExportStepInput{Document: "Bracket"})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "exported 2 objects")

	// The generated script carries a unique default file name.
	calls := mock.Calls()
	script, ok := calls[len(calls)-1].Args[0].(string)
	require.True(t, ok)
	assert.Contains(t, script, "Bracket-")
	assert.Contains(t, script, ".step")
}

func TestHandleImportStepFile_RejectsUnknownExtension(t *testing.T) {
	b := testBridge(t, connectedMock())

	_, _, err := b.handleImportStepFile(context.Background(), nil, ImportStepFileInput{
		Document: "Demo", FilePath: "/tmp/model.stl",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestHandleImportStepFile_MissingFile(t *testing.T) {
	b := testBridge(t, connectedMock())

	_, _, err := b.handleImportStepFile(context.Background(), nil, ImportStepFileInput{
		Document: "Demo", FilePath: filepath.Join(t.TempDir(), "nope.step"),
	})
	require.Error(t, err)
}

func TestHandleImportStepFile_WithPlacement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bracket.step")
	require.NoError(t, os.WriteFile(path, []byte("ISO-10303-21;"), 0o600))

	mock := connectedMock().
		Reply("import_step_file", freecad.ImportResult{Success: true, Objects: []string{"Bracket"}}).
		Reply("edit_object", freecad.Result{Success: true}).
		Reply("execute_code", freecad.ExecResult{Success: true}).
		Reply("get_active_screenshot", fakeScreenshot())
	b := testBridge(t, mock)

	res, _, err := b.handleImportStepFile(context.Background(), nil, ImportStepFileInput{
		Document: "Demo", FilePath: path, Placement: &Placement{X: 10, Y: 0, Z: 5},
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Bracket")
	assert.Equal(t, 1, mock.CallsTo("edit_object"))
	// Screenshot rides along as image content.
	require.Len(t, res.Content, 2)
}

func TestHandleImportMcMasterPart(t *testing.T) {
	b := testBridge(t, freecad.NewMockCaller())

	res, _, err := b.handleImportMcMasterPart(context.Background(), nil, ImportMcMasterInput{PartNumber: "91290A115"})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "https://www.mcmaster.com/step/91290A115")
	assert.Contains(t, text, "Hex Bolts")
	assert.Contains(t, text, "import_step_file")
}

func TestHandleImportMcMasterPart_BadNumber(t *testing.T) {
	b := testBridge(t, freecad.NewMockCaller())

	_, _, err := b.handleImportMcMasterPart(context.Background(), nil, ImportMcMasterInput{PartNumber: "bolt"})
	require.Error(t, err)
}

func TestHandleManageImportedParts_Identify(t *testing.T) {
	objects := []freecad.Object{
		{"Name": "mcmaster_91290A115", "TypeId": "Part::Feature"},
		{"Name": "Box", "TypeId": "Part::Box"},
	}
	mock := connectedMock().Reply("get_objects", objects)
	b := testBridge(t, mock)

	res, _, err := b.handleManageImportedParts(context.Background(), nil, ManagePartsInput{
		Document: "Demo", Action: "identify",
	})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "mcmaster_91290A115")
	assert.Contains(t, text, "McMaster-Carr")
	assert.NotContains(t, text, "Part::Box")
}

func TestHandleManageImportedParts_Cleanup(t *testing.T) {
	objects := []freecad.Object{
		{"Name": "Ghost", "TypeId": "Part::Feature", "Visibility": false},
		{"Name": "Keeper", "TypeId": "Part::Feature"},
	}
	mock := connectedMock().
		Reply("get_objects", objects).
		Reply("delete_object", freecad.Result{Success: true})
	b := testBridge(t, mock)

	res, _, err := b.handleManageImportedParts(context.Background(), nil, ManagePartsInput{
		Document: "Demo", Action: "cleanup",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Removed 1")
	assert.Equal(t, 1, mock.CallsTo("delete_object"))
}

func TestHandleManageImportedParts_UnknownAction(t *testing.T) {
	mock := connectedMock().Reply("get_objects", []freecad.Object{})
	b := testBridge(t, mock)

	_, _, err := b.handleManageImportedParts(context.Background(), nil, ManagePartsInput{
		Document: "Demo", Action: "explode",
	})
	require.Error(t, err)
}

func TestHandleCNCDFM(t *testing.T) {
	mock := connectedMock().
		Reply("restore_colors_after_check", freecad.Result{Success: true}).
		Reply("run_cnc_manufacturing_dfm_check", freecad.DFMResult{
			Success: true,
			Issues: map[string]any{
				"thin_walls": []any{map[string]any{"face": "Face3"}},
			},
		}).
		Reply("get_active_screenshot", fakeScreenshot())
	b := testBridge(t, mock)

	res, _, err := b.handleCNCDFM(context.Background(), nil, CNCDFMInput{Document: "Demo"})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "CNC Machining DFM: Demo")
	assert.Contains(t, text, "1 issue(s) found")

	// Highlights from an earlier check are cleared before running.
	assert.Equal(t, 1, mock.CallsTo("restore_colors_after_check"))

	// Defaults travel to the addon as JSON.
	calls := mock.Calls()
	var params string
	for _, c := range calls {
		if c.Method == "run_cnc_manufacturing_dfm_check" {
			params = c.Args[1].(string)
		}
	}
	assert.Contains(t, params, "min_radius")
	assert.Contains(t, params, "min_wall_thickness")
}

func TestHandlePrintingDFM_PresetForwarded(t *testing.T) {
	mock := connectedMock().
		Reply("restore_colors_after_check", freecad.Result{Success: true}).
		Reply("run_3d_printing_dfm_check", freecad.DFMResult{Success: true}).
		Reply("get_active_screenshot", fakeScreenshot())
	b := testBridge(t, mock)

	_, _, err := b.handlePrintingDFM(context.Background(), nil, PrintingDFMInput{
		Document: "Demo", ProcessType: "SLA",
	})
	require.NoError(t, err)

	var params string
	for _, c := range mock.Calls() {
		if c.Method == "run_3d_printing_dfm_check" {
			params = c.Args[1].(string)
		}
	}
	assert.Contains(t, params, `"process_type":"SLA"`)
	// SLA preset lowers the wall threshold from the 1.0 default.
	assert.Contains(t, params, `"min_wall_thickness":0.5`)
}

func TestHandleCNCDFM_ReportsAddonError(t *testing.T) {
	mock := connectedMock().
		Reply("restore_colors_after_check", freecad.Result{Success: true}).
		Reply("run_cnc_manufacturing_dfm_check", freecad.DFMResult{
			Success: false, Error: "document has no solid bodies",
		})
	b := testBridge(t, mock)

	res, _, err := b.handleCNCDFM(context.Background(), nil, CNCDFMInput{Document: "Demo"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "document has no solid bodies")
}

func TestHandleRefineCNC_NoMatch(t *testing.T) {
	b := testBridge(t, freecad.NewMockCaller())

	res, _, err := b.handleRefineCNC(context.Background(), nil, RefineCNCInput{Features: []string{"Warp Drive"}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleRefinePrinting(t *testing.T) {
	b := testBridge(t, freecad.NewMockCaller())

	res, _, err := b.handleRefinePrinting(context.Background(), nil, RefinePrintingInput{
		Features: []string{"Wall Thickness"}, Processes: []string{"FDM"},
	})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Wall Thickness")
	assert.Contains(t, text, "FDM")
}

func TestHandleRefineInjection(t *testing.T) {
	b := testBridge(t, freecad.NewMockCaller())

	res, _, err := b.handleRefineInjection(context.Background(), nil, RefineInjectionInput{
		Features: []string{"Draft Angle"},
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "0.5 degrees of draft")
}

func TestHandleManageImportedParts_OrganizeSkipsUnplaced(t *testing.T) {
	objects := []freecad.Object{
		{"Name": "NoPlace", "TypeId": "Part::Feature"},
		{"Name": "First", "TypeId": "Part::Feature",
			"Placement": map[string]any{"Base": map[string]any{"x": 0.0, "y": 0.0, "z": 0.0}}},
		{"Name": "Second", "TypeId": "Part::Feature",
			"Placement": map[string]any{"Base": map[string]any{"x": 70.0, "y": 0.0, "z": 0.0}}},
	}
	mock := connectedMock().
		Reply("get_objects", objects).
		Reply("execute_code", freecad.ExecResult{Success: true}).
		Reply("get_active_screenshot", fakeScreenshot())
	b := testBridge(t, mock)

	res, _, err := b.handleManageImportedParts(context.Background(), nil, ManagePartsInput{
		Document: "Demo", Action: "organize",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Arranged 1")

	// Parts without a placement do not consume a slot in the row: the
	// second placed part moves to 60, not 120.
	var moved string
	for _, c := range mock.Calls() {
		if c.Method != "execute_code" {
			continue
		}
		if script := c.Args[0].(string); strings.Contains(script, "Second") {
			moved = script
		}
	}
	assert.Contains(t, moved, "+= -10")
}

func TestHandleQuickCheck(t *testing.T) {
	objects := []freecad.Object{
		{"Name": "Panel", "TypeId": "Part::Box", "Length": 100.0, "Width": 0.8, "Height": 50.0},
	}
	mock := connectedMock().Reply("get_objects", objects)
	b := testBridge(t, mock)

	res, _, err := b.handleQuickCheck(context.Background(), nil, QuickCheckInput{
		Document: "Demo", Process: "3d_printing",
	})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Panel")
	assert.Contains(t, text, "Process Tips")
}

func TestHandleQuickCheck_UnknownProcess(t *testing.T) {
	b := testBridge(t, connectedMock())

	_, _, err := b.handleQuickCheck(context.Background(), nil, QuickCheckInput{
		Document: "Demo", Process: "forging",
	})
	require.Error(t, err)
}

func TestHandleApplyFixes(t *testing.T) {
	objects := []freecad.Object{
		{"Name": "Panel", "TypeId": "Part::Box", "Length": 100.0, "Width": 0.9, "Height": 50.0},
	}
	mock := connectedMock().
		Reply("get_objects", objects).
		Reply("execute_code", freecad.ExecResult{Success: true}).
		Reply("get_active_screenshot", fakeScreenshot())
	b := testBridge(t, mock)

	res, _, err := b.handleApplyFixes(context.Background(), nil, ApplyFixesInput{
		Document: "Demo", FixTypes: []string{"wall_thickness"},
	})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Panel")
	assert.Contains(t, text, "applied")
	assert.Equal(t, 1, mock.CallsTo("execute_code"))
}

func TestHandleApplyFixes_UnknownKind(t *testing.T) {
	b := testBridge(t, connectedMock())

	_, _, err := b.handleApplyFixes(context.Background(), nil, ApplyFixesInput{
		Document: "Demo", FixTypes: []string{"paint"},
	})
	require.Error(t, err)
}

func TestHandleScreenshotAndFix(t *testing.T) {
	objects := []freecad.Object{
		{"Name": "Hidden", "TypeId": "Part::Box", "Visibility": false},
	}
	mock := connectedMock().
		Reply("get_objects", objects).
		Reply("edit_object", freecad.Result{Success: true}).
		Reply("execute_code", freecad.ExecResult{Success: true}).
		Reply("get_active_screenshot", fakeScreenshot())
	b := testBridge(t, mock)

	res, _, err := b.handleScreenshotAndFix(context.Background(), nil, ScreenshotAndFixInput{Document: "Demo"})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "made \"Hidden\" visible")
	assert.Equal(t, 1, mock.CallsTo("edit_object"))
}
