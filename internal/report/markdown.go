// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cadwell-io/cadbridge/internal/analysis"
	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// ImportSummary reports the outcome of a STEP import.
func ImportSummary(filePath, docName string, objects []string) string {
	var b strings.Builder
	b.WriteString("# Import Complete\n\n")
	fmt.Fprintf(&b, "Imported `%s` into **%s**.\n\n", filePath, docName)
	if len(objects) == 0 {
		b.WriteString("The file produced no objects.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d object(s) created:\n\n", len(objects))
	for _, name := range objects {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	return b.String()
}

// ObjectList renders the document's objects as a markdown table.
func ObjectList(docName string, objects []freecad.Object) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Objects in %s\n\n", docName)
	if len(objects) == 0 {
		b.WriteString("The document is empty.\n")
		return b.String()
	}
	b.WriteString("| Name | Label | Type | Visible |\n")
	b.WriteString("|------|-------|------|--------|\n")
	for _, obj := range objects {
		visible := "yes"
		if !obj.Visible() {
			visible = "no"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", obj.Name(), obj.Label(), obj.TypeID(), visible)
	}
	return b.String()
}

// FixSummary reports planned repairs and, when applied, their outcomes.
// failures maps an object name to the error that stopped its fix.
func FixSummary(docName string, fixes []analysis.Fix, applied bool, failures map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Automatic Fixes: %s\n\n", docName)
	if len(fixes) == 0 {
		b.WriteString("Nothing to fix.\n")
		return b.String()
	}

	byKind := map[string][]analysis.Fix{}
	for _, f := range fixes {
		byKind[f.Kind] = append(byKind[f.Kind], f)
	}
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		fmt.Fprintf(&b, "## %s\n\n", strings.ReplaceAll(kind, "_", " "))
		for _, f := range byKind[kind] {
			status := ""
			if applied {
				if msg, failed := failures[f.Object]; failed {
					status = fmt.Sprintf(" — FAILED: %s", msg)
				} else {
					status = " — applied"
				}
			}
			fmt.Fprintf(&b, "- **%s**: %s%s\n", f.Object, f.Description, status)
		}
		b.WriteString("\n")
	}
	if !applied {
		b.WriteString("Run again with apply enabled to make these changes.\n")
	}
	return b.String()
}

// DFMSummary renders the addon's DFM check result. Issue categories come
// back as maps of category name to issue records; record keys vary per
// category so each record is rendered as its own key/value line.
func DFMSummary(title, docName string, result freecad.DFMResult, params map[string]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", title, docName)

	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Parameters: ")
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%g", k, params[k]))
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n\n")
	}

	total := result.IssueCount()
	if total == 0 {
		b.WriteString("No issues found. Offending faces, if any, would be highlighted in the viewport.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d issue(s) found. Affected faces are highlighted in the viewport.\n\n", total)

	categories := make([]string, 0, len(result.Issues))
	for cat := range result.Issues {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		records, ok := result.Issues[cat].([]any)
		if !ok || len(records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s (%d)\n\n", strings.ReplaceAll(cat, "_", " "), len(records))
		for _, rec := range records {
			fields, ok := rec.(map[string]any)
			if !ok {
				fmt.Fprintf(&b, "- %v\n", rec)
				continue
			}
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, fmt.Sprintf("%s: %v", k, fields[k]))
			}
			fmt.Fprintf(&b, "- %s\n", strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("Run the restore tool to clear the highlight colors when done.\n")
	return b.String()
}

// QuickCheckSummary renders the fast heuristic manufacturability pass.
func QuickCheckSummary(docName, process string, issues []analysis.Issue, tips []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quick Manufacturability Check: %s (%s)\n\n", docName, process)
	if len(issues) == 0 {
		b.WriteString("No obvious problems found.\n")
	} else {
		for _, is := range issues {
			target := is.Object
			if target == "" {
				target = "document"
			}
			fmt.Fprintf(&b, "- **%s** [%s]: %s", target, is.Severity, is.Problem)
			if is.Current != "" {
				fmt.Fprintf(&b, " (%s)", is.Current)
			}
			b.WriteString("\n")
			if is.Recommendation != "" {
				fmt.Fprintf(&b, "  - Fix: %s\n", is.Recommendation)
			}
		}
	}
	if len(tips) > 0 {
		b.WriteString("\n## Process Tips\n\n")
		for _, tip := range tips {
			fmt.Fprintf(&b, "- %s\n", tip)
		}
	}
	return b.String()
}
