// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"fmt"
	"math"

	"github.com/cadwell-io/cadbridge/internal/freecad"
)

// Placements are compared on a 0.1mm grid so float noise from the
// document does not hide genuine overlaps.
const placementGrid = 0.1

// CheckSpatial flags objects stacked on the same placement and
// documents crowded around the origin.
func CheckSpatial(objects []freecad.Object) []Issue {
	var issues []Issue

	type cell struct{ x, y, z int64 }
	seen := make(map[cell][]string)
	atOrigin := 0
	for _, obj := range objects {
		if !obj.Visible() {
			continue
		}
		x, y, z, ok := obj.Base()
		if !ok {
			continue
		}
		c := cell{snap(x), snap(y), snap(z)}
		seen[c] = append(seen[c], obj.Label())
		if c == (cell{0, 0, 0}) {
			atOrigin++
		}
	}

	for _, names := range seen {
		if len(names) < 2 {
			continue
		}
		for _, name := range names[1:] {
			issues = append(issues, Issue{
				Object:         name,
				Problem:        fmt.Sprintf("placed on top of %s", names[0]),
				Recommendation: "translate the object so parts do not intersect",
				Severity:       SeverityWarning,
			})
		}
	}

	if atOrigin > 2 {
		issues = append(issues, Issue{
			Problem:        fmt.Sprintf("%d objects at the origin", atOrigin),
			Recommendation: "spread parts out to make the model readable",
			Severity:       SeverityInfo,
		})
	}
	return issues
}

func snap(v float64) int64 {
	return int64(math.Round(v / placementGrid))
}
