// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"fmt"

	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// Fix kinds selectable when planning automatic repairs.
const (
	FixWallThickness = "wall_thickness"
	FixCornerRadii   = "corner_radii"
	FixGeometry      = "geometry"
	FixSeparation    = "separation"
)

const (
	filletRadius     = 0.5
	separationStride = 20.0
)

// FixKinds lists every kind PlanFixes understands.
var FixKinds = []string{FixWallThickness, FixCornerRadii, FixGeometry, FixSeparation}

// Fix is one planned repair. Script holds the Python that applies it.
type Fix struct {
	Object      string
	Kind        string
	Description string
	Script      string
}

// PlanFixes builds the repair scripts for the requested kinds. A nil or
// empty kinds slice plans every kind.
func PlanFixes(docName string, objects []freecad.Object, kinds []string) []Fix {
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	all := len(want) == 0

	var fixes []Fix
	if all || want[FixGeometry] {
		fixes = append(fixes, planGeometryFixes(docName, objects)...)
	}
	if all || want[FixWallThickness] {
		fixes = append(fixes, planWallFixes(docName, objects)...)
	}
	if all || want[FixCornerRadii] {
		fixes = append(fixes, planFilletFixes(docName, objects)...)
	}
	if all || want[FixSeparation] {
		fixes = append(fixes, planSeparationFixes(docName, objects)...)
	}
	return fixes
}

// planGeometryFixes clamps zero and negative dimensions to sane defaults.
func planGeometryFixes(docName string, objects []freecad.Object) []Fix {
	var fixes []Fix
	for _, obj := range objects {
		floors := degenerateFloors(obj)
		if len(floors) == 0 {
			continue
		}
		fixes = append(fixes, Fix{
			Object:      obj.Name(),
			Kind:        FixGeometry,
			Description: fmt.Sprintf("restore %d degenerate dimension(s) to defaults", len(floors)),
			Script:      freecad.ClampDimensionsScript(docName, obj.Name(), floors),
		})
	}
	return fixes
}

func degenerateFloors(obj freecad.Object) map[string]float64 {
	var candidates map[string]float64
	switch obj.TypeID() {
	case "Part::Box":
		candidates = map[string]float64{"Length": DefaultLength, "Width": DefaultWidth, "Height": DefaultHeight}
	case "Part::Cylinder":
		candidates = map[string]float64{"Radius": DefaultRadius, "Height": DefaultHeight}
	case "Part::Sphere":
		candidates = map[string]float64{"Radius": DefaultRadius}
	case "Part::Cone":
		candidates = map[string]float64{"Radius1": DefaultConeRadius1, "Radius2": DefaultConeRadius2, "Height": DefaultHeight}
	default:
		return nil
	}
	floors := make(map[string]float64)
	for prop, def := range candidates {
		if v, ok := obj.Dimension(prop); ok && v <= 0 {
			floors[prop] = def
		}
	}
	if len(floors) == 0 {
		return nil
	}
	return floors
}

// planWallFixes raises box dimensions that sit below the fixable wall
// threshold while still being positive.
func planWallFixes(docName string, objects []freecad.Object) []Fix {
	var fixes []Fix
	for _, obj := range objects {
		if obj.TypeID() != "Part::Box" {
			continue
		}
		for _, prop := range []string{"Length", "Width", "Height"} {
			v, ok := obj.Dimension(prop)
			if !ok || v <= 0 || v >= fixableWallThickness {
				continue
			}
			fixes = append(fixes, Fix{
				Object:      obj.Name(),
				Kind:        FixWallThickness,
				Description: fmt.Sprintf("thicken %s from %.2fmm to %.1fmm", prop, v, fixableWallThickness),
				Script:      freecad.SetPropertyScript(docName, obj.Name(), prop, fixableWallThickness),
			})
		}
	}
	return fixes
}

// planFilletFixes rounds the edges of boxes large enough to take the
// fillet without collapsing a face.
func planFilletFixes(docName string, objects []freecad.Object) []Fix {
	var fixes []Fix
	for _, obj := range objects {
		if obj.TypeID() != "Part::Box" {
			continue
		}
		dims := boxDims(obj)
		if len(dims) != 3 {
			continue
		}
		if lo, _ := minMax(dims); lo <= filletRadius*4 {
			continue
		}
		fixes = append(fixes, Fix{
			Object:      obj.Name(),
			Kind:        FixCornerRadii,
			Description: fmt.Sprintf("fillet all edges at %.1fmm", filletRadius),
			Script:      freecad.FilletScript(docName, obj.Name(), filletRadius),
		})
	}
	return fixes
}

// planSeparationFixes pulls apart objects sharing a placement by
// stepping each duplicate along the X axis.
func planSeparationFixes(docName string, objects []freecad.Object) []Fix {
	type cell struct{ x, y, z int64 }
	seen := make(map[cell][]freecad.Object)
	order := make([]cell, 0, len(objects))
	for _, obj := range objects {
		if !obj.Visible() {
			continue
		}
		x, y, z, ok := obj.Base()
		if !ok {
			continue
		}
		c := cell{snap(x), snap(y), snap(z)}
		if _, ok := seen[c]; !ok {
			order = append(order, c)
		}
		seen[c] = append(seen[c], obj)
	}

	var fixes []Fix
	for _, c := range order {
		group := seen[c]
		for i, obj := range group[1:] {
			dx := separationStride * float64(i+1)
			fixes = append(fixes, Fix{
				Object:      obj.Name(),
				Kind:        FixSeparation,
				Description: fmt.Sprintf("move %.0fmm along X away from %s", dx, group[0].Label()),
				Script:      freecad.TranslateScript(docName, obj.Name(), dx),
			})
		}
	}
	return fixes
}
