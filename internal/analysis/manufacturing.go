// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"fmt"
	"math"

	"github.com/cadwell-io/cadbridge/internal/dfm"
	"github.com/cadwell-io/cadbridge/internal/freecad"
)

const (
	// Walls thinner than this are hard to produce on any process.
	minWallThickness = 1.0
	// Walls below this can be repaired automatically.
	fixableWallThickness = 1.2

	maxBoxAspectRatio = 10.0
	minCylinderRadius = 0.5
	// Height over diameter; a 20:1 height-to-radius post is the limit.
	maxCylinderSlenderness = 10.0
)

// CheckManufacturing flags process-independent manufacturability
// problems: thin walls, extreme aspect ratios, and features too small
// to machine or print reliably.
func CheckManufacturing(objects []freecad.Object) []Issue {
	var issues []Issue
	for _, obj := range objects {
		name := obj.Label()
		switch obj.TypeID() {
		case "Part::Box":
			dims := boxDims(obj)
			if len(dims) == 0 {
				continue
			}
			minDim, maxDim := minMax(dims)
			if minDim > 0 && minDim < minWallThickness {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "wall thickness below manufacturable minimum",
					Current:        fmt.Sprintf("thinnest dimension %.2fmm", minDim),
					Recommendation: fmt.Sprintf("increase to at least %.1fmm", fixableWallThickness),
					Severity:       SeverityWarning,
				})
			}
			if minDim > 0 && maxDim/minDim > maxBoxAspectRatio {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "extreme aspect ratio, part may warp or deflect",
					Current:        fmt.Sprintf("ratio %.1f:1", maxDim/minDim),
					Recommendation: "thicken the part or add ribs",
					Severity:       SeverityWarning,
				})
			}
		case "Part::Cylinder":
			r, okR := obj.Dimension("Radius")
			h, okH := obj.Dimension("Height")
			if okR && r > 0 && r < minCylinderRadius {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "radius too small for standard tooling",
					Current:        fmt.Sprintf("Radius=%.2fmm", r),
					Recommendation: fmt.Sprintf("increase radius to at least %.1fmm", minCylinderRadius),
					Severity:       SeverityWarning,
				})
			}
			if okR && okH && r > 0 && h/(r*2) > maxCylinderSlenderness {
				issues = append(issues, Issue{
					Object:         name,
					Problem:        "slender cylinder prone to deflection",
					Current:        fmt.Sprintf("height/diameter %.1f", h/(r*2)),
					Recommendation: "shorten the feature or increase its diameter",
					Severity:       SeverityWarning,
				})
			}
		}
	}
	return issues
}

// QuickCheck layers process-specific heuristics on top of
// CheckManufacturing and returns general guidance for the process.
func QuickCheck(process dfm.Process, objects []freecad.Object) (issues []Issue, tips []string) {
	issues = CheckManufacturing(objects)
	switch process {
	case dfm.Printing3D:
		for _, obj := range objects {
			if h, ok := obj.Dimension("Height"); ok && h > 200 {
				issues = append(issues, Issue{
					Object:         obj.Label(),
					Problem:        "taller than common FDM build volume",
					Current:        fmt.Sprintf("Height=%.0fmm", h),
					Recommendation: "split the part or reorient it on the bed",
					Severity:       SeverityWarning,
				})
			}
		}
		tips = []string{
			"orient the largest flat face on the build plate",
			"keep unsupported overhangs under 45 degrees",
			"add chamfers instead of fillets on bottom edges",
		}
	case dfm.CNC:
		for _, obj := range objects {
			if obj.TypeID() != "Part::Box" {
				continue
			}
			dims := boxDims(obj)
			if len(dims) == 0 {
				continue
			}
			minDim, maxDim := minMax(dims)
			if minDim > 0 && maxDim/minDim > 4.0 {
				issues = append(issues, Issue{
					Object:         obj.Label(),
					Problem:        "deep pocket geometry needs long tooling",
					Current:        fmt.Sprintf("ratio %.1f:1", maxDim/minDim),
					Recommendation: "keep depth to width under 4:1",
					Severity:       SeverityInfo,
				})
			}
		}
		tips = []string{
			"internal corners need a radius matching the tool",
			"avoid features requiring more than one setup where possible",
			"specify tolerances only where function requires them",
		}
	case dfm.InjectionMolding:
		var walls []float64
		for _, obj := range objects {
			if obj.TypeID() != "Part::Box" {
				continue
			}
			if dims := boxDims(obj); len(dims) > 0 {
				w, _ := minMax(dims)
				walls = append(walls, w)
			}
		}
		if len(walls) > 1 {
			lo, hi := minMax(walls)
			if hi-lo > 0.5 {
				issues = append(issues, Issue{
					Problem:        "wall thickness varies across parts",
					Current:        fmt.Sprintf("%.2fmm to %.2fmm", lo, hi),
					Recommendation: "keep walls uniform to avoid sink marks and warping",
					Severity:       SeverityWarning,
				})
			}
		}
		for _, obj := range objects {
			if obj.TypeID() != "Part::Box" {
				continue
			}
			if dims := boxDims(obj); len(dims) > 0 {
				if w, _ := minMax(dims); w > 4.0 {
					issues = append(issues, Issue{
						Object:         obj.Label(),
						Problem:        "wall too thick for molding",
						Current:        fmt.Sprintf("thinnest dimension %.1fmm", w),
						Recommendation: "core out thick sections, target 0.5-4.0mm walls",
						Severity:       SeverityWarning,
					})
				}
			}
		}
		tips = []string{
			"add at least 0.5 degrees of draft on vertical faces",
			"keep wall thickness uniform",
			"place the parting line on a non-cosmetic surface",
		}
	}
	return issues, tips
}

func boxDims(obj freecad.Object) []float64 {
	var dims []float64
	for _, key := range []string{"Length", "Width", "Height"} {
		if v, ok := obj.Dimension(key); ok && v > 0 {
			dims = append(dims, v)
		}
	}
	return dims
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
