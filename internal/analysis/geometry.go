// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"fmt"

	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// Default dimensions used when repairing degenerate primitives.
const (
	DefaultLength      = 10.0
	DefaultWidth       = 10.0
	DefaultHeight      = 10.0
	DefaultRadius      = 5.0
	DefaultConeRadius1 = 5.0
	DefaultConeRadius2 = 2.0
)

// CheckGeometry flags primitives whose dimensions make the shape
// degenerate or impossible to build.
func CheckGeometry(objects []freecad.Object) []Issue {
	var issues []Issue
	for _, obj := range objects {
		name := obj.Label()
		switch obj.TypeID() {
		case "Part::Box":
			for _, dim := range []string{"Length", "Width", "Height"} {
				v, ok := obj.Dimension(dim)
				if !ok {
					continue
				}
				if v <= 0 {
					issues = append(issues, Issue{
						Object:         name,
						Problem:        fmt.Sprintf("%s is zero or negative", dim),
						Current:        fmt.Sprintf("%s=%.2fmm", dim, v),
						Recommendation: fmt.Sprintf("set %s to a positive value, e.g. %.1fmm", dim, defaultFor(dim)),
						Severity:       SeverityError,
					})
				}
			}
		case "Part::Cylinder":
			if r, ok := obj.Dimension("Radius"); ok && r <= 0 {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "Radius is zero or negative",
					Current:        fmt.Sprintf("Radius=%.2fmm", r),
					Recommendation: fmt.Sprintf("set Radius to a positive value, e.g. %.1fmm", DefaultRadius),
					Severity:       SeverityError,
				})
			}
			if h, ok := obj.Dimension("Height"); ok && h <= 0 {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "Height is zero or negative",
					Current:        fmt.Sprintf("Height=%.2fmm", h),
					Recommendation: fmt.Sprintf("set Height to a positive value, e.g. %.1fmm", DefaultHeight),
					Severity:       SeverityError,
				})
			}
		case "Part::Sphere":
			if r, ok := obj.Dimension("Radius"); ok && r <= 0 {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "Radius is zero or negative",
					Current:        fmt.Sprintf("Radius=%.2fmm", r),
					Recommendation: fmt.Sprintf("set Radius to a positive value, e.g. %.1fmm", DefaultRadius),
					Severity:       SeverityError,
				})
			}
		case "Part::Cone":
			r1, ok1 := obj.Dimension("Radius1")
			r2, ok2 := obj.Dimension("Radius2")
			if ok1 && ok2 && r1 <= 0 && r2 <= 0 {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "both radii are zero or negative",
					Current:        fmt.Sprintf("Radius1=%.2fmm Radius2=%.2fmm", r1, r2),
					Recommendation: fmt.Sprintf("set at least one radius positive, e.g. Radius1=%.1fmm Radius2=%.1fmm", DefaultConeRadius1, DefaultConeRadius2),
					Severity:       SeverityError,
				})
			}
			if h, ok := obj.Dimension("Height"); ok && h <= 0 {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "Height is zero or negative",
					Current:        fmt.Sprintf("Height=%.2fmm", h),
					Recommendation: fmt.Sprintf("set Height to a positive value, e.g. %.1fmm", DefaultHeight),
					Severity:       SeverityError,
				})
			}
		}
	}
	return issues
}

func defaultFor(dim string) float64 {
	switch dim {
	case "Length":
		return DefaultLength
	case "Width":
		return DefaultWidth
	default:
		return DefaultHeight
	}
}
