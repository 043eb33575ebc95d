// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package freecad

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

// Caller abstracts a single XML-RPC round trip so the client can be tested
// without a running FreeCAD instance.
type Caller interface {
	// Call invokes method with args and decodes the response into reply.
	// Implementations must respect context cancellation and deadlines.
	Call(ctx context.Context, method string, args []any, reply any) error
}

// xmlrpcCaller is the production Caller backed by kolo/xmlrpc.
type xmlrpcCaller struct {
	rpc     *xmlrpc.Client
	timeout time.Duration
}

// NewCaller dials the addon's XML-RPC endpoint. The timeout bounds each
// individual call; zero means no per-call bound beyond ctx.
func NewCaller(host string, port int, timeout time.Duration) (Caller, error) {
	url := fmt.Sprintf("http://%s:%d", host, port)
	rpc, err := xmlrpc.NewClient(url, http.DefaultTransport)
	if err != nil {
		return nil, fmt.Errorf("freecad: dialing %s: %w", url, err)
	}
	return &xmlrpcCaller{rpc: rpc, timeout: timeout}, nil
}

// Call runs the RPC in a goroutine so the kolo client's blocking Call can be
// abandoned on context cancellation. The underlying HTTP exchange is not
// torn down early, but the caller gets its error promptly.
func (c *xmlrpcCaller) Call(ctx context.Context, method string, args []any, reply any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- c.rpc.Call(method, args, reply)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("freecad: %s: %w", method, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("freecad: %s: %w", method, err)
		}
		return nil
	}
}

// Client exposes the addon's RPC surface as typed methods.
type Client struct {
	caller Caller
}

// NewClient wraps a Caller.
func NewClient(caller Caller) *Client {
	return &Client{caller: caller}
}

// Ping checks that the addon is reachable and serving.
func (c *Client) Ping(ctx context.Context) error {
	var ok bool
	if err := c.caller.Call(ctx, "ping", nil, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("freecad: addon answered ping with false")
	}
	return nil
}

// ListDocuments returns the names of all open documents.
func (c *Client) ListDocuments(ctx context.Context) ([]string, error) {
	var docs []string
	if err := c.caller.Call(ctx, "list_documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CreateDocument creates a new document.
func (c *Client) CreateDocument(ctx context.Context, name string) (Result, error) {
	var res Result
	err := c.caller.Call(ctx, "create_document", []any{name}, &res)
	return res, err
}

// CreateObject validates the payload and forwards it as a JSON string,
// matching the addon's create_object(doc_name, params_json) signature.
func (c *Client) CreateObject(ctx context.Context, docName string, payload ObjectPayload) (Result, error) {
	if err := ValidatePayload(&payload); err != nil {
		return Result{}, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("freecad: encoding object payload: %w", err)
	}
	var res Result
	err = c.caller.Call(ctx, "create_object", []any{docName, string(data)}, &res)
	return res, err
}

// EditObject replaces properties on an existing object.
func (c *Client) EditObject(ctx context.Context, docName, objName string, properties map[string]any) (Result, error) {
	payload := ObjectPayload{Name: objName, Properties: properties}
	data, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("freecad: encoding object payload: %w", err)
	}
	var res Result
	err = c.caller.Call(ctx, "edit_object", []any{docName, objName, string(data)}, &res)
	return res, err
}

// DeleteObject removes an object from a document.
func (c *Client) DeleteObject(ctx context.Context, docName, objName string) (Result, error) {
	var res Result
	err := c.caller.Call(ctx, "delete_object", []any{docName, objName}, &res)
	return res, err
}

// ExecuteCode runs a Python snippet inside FreeCAD and captures its stdout.
func (c *Client) ExecuteCode(ctx context.Context, code string) (ExecResult, error) {
	var res ExecResult
	err := c.caller.Call(ctx, "execute_code", []any{code}, &res)
	return res, err
}

// ActiveScreenshot returns the active 3D view as a base64-encoded PNG.
func (c *Client) ActiveScreenshot(ctx context.Context, viewName string) (string, error) {
	var png string
	if err := c.caller.Call(ctx, "get_active_screenshot", []any{viewName}, &png); err != nil {
		return "", err
	}
	return png, nil
}

// GetObjects lists all objects in a document with their properties.
func (c *Client) GetObjects(ctx context.Context, docName string) ([]Object, error) {
	var objects []Object
	if err := c.caller.Call(ctx, "get_objects", []any{docName}, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// GetObject returns a single object's properties.
func (c *Client) GetObject(ctx context.Context, docName, objName string) (Object, error) {
	var obj Object
	if err := c.caller.Call(ctx, "get_object", []any{docName, objName}, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// PartsList lists the parts library contents known to the addon.
func (c *Client) PartsList(ctx context.Context) ([]string, error) {
	var parts []string
	if err := c.caller.Call(ctx, "get_parts_list", nil, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// InsertPartFromLibrary inserts a part by its library-relative path.
func (c *Client) InsertPartFromLibrary(ctx context.Context, relativePath string) (Result, error) {
	var res Result
	err := c.caller.Call(ctx, "insert_part_from_library", []any{relativePath}, &res)
	return res, err
}

// ImportStep imports a STEP/IGES file into a document.
func (c *Client) ImportStep(ctx context.Context, docName, filePath string) (ImportResult, error) {
	var res ImportResult
	err := c.caller.Call(ctx, "import_step_file", []any{docName, filePath}, &res)
	return res, err
}

// ExportStep asks the addon to export a document to a STEP file.
func (c *Client) ExportStep(ctx context.Context, docName, filePath string) (Result, error) {
	var res Result
	err := c.caller.Call(ctx, "export_step", []any{docName, filePath}, &res)
	return res, err
}

// DFM check process identifiers, matching the addon method suffixes.
const (
	ProcessCNC              = "cnc_manufacturing"
	Process3DPrinting       = "3d_printing"
	ProcessInjectionMolding = "injection_molding"
)

// RunDFMCheck runs one of the addon's DFM checkers. Parameters travel as a
// JSON string, mirroring the addon's run_*_dfm_check(doc, params_json)
// signatures.
func (c *Client) RunDFMCheck(ctx context.Context, process, docName string, params map[string]any) (DFMResult, error) {
	if params == nil {
		params = map[string]any{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return DFMResult{}, fmt.Errorf("freecad: encoding DFM parameters: %w", err)
	}
	method := "run_" + process + "_dfm_check"
	var res DFMResult
	err = c.caller.Call(ctx, method, []any{docName, string(data)}, &res)
	return res, err
}

// RestoreColors undoes the face recoloring and helper objects left behind by
// the last DFM check on docName. A no-op when nothing was recolored.
func (c *Client) RestoreColors(ctx context.Context, docName string) (Result, error) {
	var res Result
	err := c.caller.Call(ctx, "restore_colors_after_check", []any{docName}, &res)
	return res, err
}
