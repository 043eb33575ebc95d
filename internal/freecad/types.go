// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

// Package freecad talks to the FreeCAD MCP addon over XML-RPC. The addon
// owns every document and object; this package only shuttles field values
// across and never interprets geometry.
package freecad

// ObjectPayload is the object description forwarded to the addon's
// create_object and edit_object methods as a JSON string.
type ObjectPayload struct {
	Name       string         `json:"Name"`
	Type       string         `json:"Type"`
	Properties map[string]any `json:"Properties"`
	Analysis   *string        `json:"Analysis"`
}

// Object is a document object as reported by get_objects/get_object.
// Property keys are owned by FreeCAD; only the handful the analysis
// heuristics look at are pulled out through accessors.
type Object map[string]any

// Name returns the object's Name property, or "" if absent.
func (o Object) Name() string { return o.str("Name") }

// Label returns the object's user-visible Label, falling back to Name.
func (o Object) Label() string {
	if l := o.str("Label"); l != "" {
		return l
	}
	return o.Name()
}

// TypeID returns the object's TypeId property (e.g. "Part::Box").
func (o Object) TypeID() string { return o.str("TypeId") }

// Dimension returns a numeric property such as Length or Radius.
// The second result is false when the property is absent or non-numeric.
func (o Object) Dimension(key string) (float64, bool) {
	switch v := o[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Visible reports the object's Visibility property, defaulting to true.
func (o Object) Visible() bool {
	if v, ok := o["Visibility"].(bool); ok {
		return v
	}
	return true
}

// Base returns the x/y/z of the object's Placement.Base, if present.
func (o Object) Base() (x, y, z float64, ok bool) {
	placement, isMap := o["Placement"].(map[string]any)
	if !isMap {
		return 0, 0, 0, false
	}
	base, isMap := placement["Base"].(map[string]any)
	if !isMap {
		return 0, 0, 0, false
	}
	coord := func(key string) float64 {
		if f, isFloat := base[key].(float64); isFloat {
			return f
		}
		return 0
	}
	return coord("x"), coord("y"), coord("z"), true
}

func (o Object) str(key string) string {
	if s, ok := o[key].(string); ok {
		return s
	}
	return ""
}

// Result is the addon's generic {success, error} response envelope.
// The addon reports expected failures (missing document, bad object) in
// Error with Success false; transport problems surface as Go errors.
type Result struct {
	Success      bool   `xmlrpc:"success"`
	Error        string `xmlrpc:"error"`
	Message      string `xmlrpc:"message"`
	DocumentName string `xmlrpc:"document_name"`
	ObjectName   string `xmlrpc:"object_name"`
	FilePath     string `xmlrpc:"file_path"`
}

// ExecResult is the response of execute_code. Older addon builds report
// captured stdout under "output", newer ones under "message".
type ExecResult struct {
	Success   bool   `xmlrpc:"success"`
	Error     string `xmlrpc:"error"`
	Output    string `xmlrpc:"output"`
	Message   string `xmlrpc:"message"`
	Traceback string `xmlrpc:"traceback"`
}

// Stdout returns whichever output field the addon populated.
func (r ExecResult) Stdout() string {
	if r.Output != "" {
		return r.Output
	}
	return r.Message
}

// ImportResult is the response of import_step_file.
type ImportResult struct {
	Success bool     `xmlrpc:"success"`
	Error   string   `xmlrpc:"error"`
	Objects []string `xmlrpc:"objects"`
}

// DFMResult is the response of the run_*_dfm_check methods. Issues maps an
// issue category (e.g. "sharp_corners") to a list of issue records whose
// keys vary per category.
type DFMResult struct {
	Success bool           `xmlrpc:"success"`
	Error   string         `xmlrpc:"error"`
	Issues  map[string]any `xmlrpc:"issues"`
}

// IssueCount totals the issue records across all categories.
func (r DFMResult) IssueCount() int {
	n := 0
	for _, v := range r.Issues {
		if list, ok := v.([]any); ok {
			n += len(list)
		}
	}
	return n
}
