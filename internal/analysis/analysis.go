// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

// Package analysis inspects FreeCAD object data for modeling and
// manufacturability problems. Everything here works on object property
// maps already fetched from the document, so the checks run without
// touching the RPC connection.
package analysis

import (
	"fmt"
	"strings"

	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// Severity ranks how urgently an issue needs attention.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue describes a single problem found on an object.
type Issue struct {
	Object         string
	Problem        string
	Current        string
	Recommendation string
	Severity       Severity
}

func (i Issue) String() string {
	s := fmt.Sprintf("%s: %s", i.Object, i.Problem)
	if i.Current != "" {
		s += fmt.Sprintf(" (%s)", i.Current)
	}
	return s
}

// Report collects the issues from every heuristic pass over a document.
type Report struct {
	Geometry      []Issue
	Manufacturing []Issue
	Spatial       []Issue
}

// Empty reports whether no pass found anything.
func (r Report) Empty() bool {
	return len(r.Geometry) == 0 && len(r.Manufacturing) == 0 && len(r.Spatial) == 0
}

// Total counts issues across all passes.
func (r Report) Total() int {
	return len(r.Geometry) + len(r.Manufacturing) + len(r.Spatial)
}

// Inspect runs every heuristic pass over the objects.
func Inspect(objects []freecad.Object) Report {
	return Report{
		Geometry:      CheckGeometry(objects),
		Manufacturing: CheckManufacturing(objects),
		Spatial:       CheckSpatial(objects),
	}
}

// Markdown renders the report for inclusion in a tool result.
func (r Report) Markdown(docName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Design Analysis: %s\n\n", docName)
	if r.Empty() {
		b.WriteString("No issues detected.\n")
		return b.String()
	}
	section := func(title string, issues []Issue) {
		if len(issues) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, is := range issues {
			fmt.Fprintf(&b, "- **%s** [%s]: %s", is.Object, is.Severity, is.Problem)
			if is.Current != "" {
				fmt.Fprintf(&b, " (%s)", is.Current)
			}
			b.WriteString("\n")
			if is.Recommendation != "" {
				fmt.Fprintf(&b, "  - Fix: %s\n", is.Recommendation)
			}
		}
		b.WriteString("\n")
	}
	section("Geometry Errors", r.Geometry)
	section("Manufacturing Issues", r.Manufacturing)
	section("Spatial Layout", r.Spatial)
	return b.String()
}
