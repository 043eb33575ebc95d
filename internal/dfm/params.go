// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

// Package dfm holds the Design for Manufacturing rule data and parameter
// handling shared by the DFM analysis tools. The geometric checks
// themselves run inside the FreeCAD addon; this package owns the parameter
// defaults, process presets, and the guideline tables the refine tools
// filter.
package dfm

import "fmt"

// Process identifies a manufacturing process with a DFM checker.
type Process string

const (
	CNC              Process = "cnc"
	Printing3D       Process = "3d_printing"
	InjectionMolding Process = "injection_molding"
)

// Defaults returns the addon's default checker parameters for a process.
// Values mirror the checker defaults inside the FreeCAD addon so that a
// tool call without parameters behaves identically to the addon UI.
func Defaults(p Process) (map[string]float64, error) {
	switch p {
	case CNC:
		return map[string]float64{
			"min_radius":                 1.0,
			"max_aspect_ratio":           4.0,
			"min_internal_corner_radius": 0.5,
			"min_wall_thickness":         1.0,
		}, nil
	case Printing3D:
		return map[string]float64{
			"min_wall_thickness": 1.0,
			"min_feature_size":   0.8,
			"max_overhang_angle": 45.0,
			"min_hole_radius":    2.0,
			"min_clearance":      0.5,
			"max_aspect_ratio":   20,
		}, nil
	case InjectionMolding:
		return map[string]float64{
			"min_wall_thickness":         0.5,
			"max_wall_thickness":         4.0,
			"min_draft_angle":            0.5,
			"min_internal_corner_radius": 0.25,
			"max_aspect_ratio":           5.0,
		}, nil
	}
	return nil, fmt.Errorf("dfm: unknown process %q", p)
}

// PrintingPreset returns the 3D printing parameter preset for a process
// type (FDM, SLA, SLS). Unknown process types get no preset: the checker
// then applies the caller's explicit values over the defaults.
func PrintingPreset(processType string) (map[string]float64, bool) {
	switch processType {
	case "FDM":
		return map[string]float64{
			"min_wall_thickness": 0.8,
			"min_feature_size":   0.6,
			"max_overhang_angle": 45.0,
			"min_hole_radius":    1.0,
			"min_clearance":      0.5,
			"max_aspect_ratio":   20,
		}, true
	case "SLA":
		return map[string]float64{
			"min_wall_thickness": 0.5,
			"min_feature_size":   0.3,
			"max_overhang_angle": 30.0,
			"min_hole_radius":    0.5,
			"min_clearance":      0.3,
			"max_aspect_ratio":   30,
		}, true
	case "SLS":
		return map[string]float64{
			"min_wall_thickness": 0.7,
			"min_feature_size":   0.5,
			// Powder supports everything; no overhang limit.
			"max_overhang_angle": 0.0,
			"min_hole_radius":    0.75,
			"min_clearance":      0.5,
			"max_aspect_ratio":   40,
		}, true
	}
	return nil, false
}

// Params builds the parameter map sent to the addon for a check: defaults,
// overlaid with config-file overrides, overlaid with per-call values. For
// the 3D printing process a process_type entry selects a preset that is
// applied between defaults and overrides.
func Params(p Process, configOverrides map[string]float64, call map[string]any) (map[string]any, error) {
	defaults, err := Defaults(p)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(defaults)+len(call)+1)
	for k, v := range defaults {
		merged[k] = v
	}

	if p == Printing3D {
		processType := "Other"
		if pt, ok := call["process_type"].(string); ok && pt != "" {
			processType = pt
		}
		if preset, ok := PrintingPreset(processType); ok {
			for k, v := range preset {
				merged[k] = v
			}
		}
		merged["process_type"] = processType
	}

	for k, v := range configOverrides {
		merged[k] = v
	}
	for k, v := range call {
		if k == "process_type" {
			continue
		}
		num, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("dfm: parameter %s must be numeric, got %T", k, v)
		}
		if _, known := defaults[k]; !known {
			return nil, fmt.Errorf("dfm: unknown parameter %s for process %s", k, p)
		}
		merged[k] = num
	}

	return merged, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
