// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"fmt"

	"github.com/uber/h3-go/v4"

	"github.com/MarcoCot1982/dashtrack/spatial"
)

// CoverageResolution is the H3 resolution used for coverage accounting.
// Res 8 hexagons are ~0.74 km², roughly a city block group: fine enough to
// tell routes apart, coarse enough that one pass fills cells.
const CoverageResolution = 8

// CellFor returns the H3 cell containing p at CoverageResolution.
func CellFor(p spatial.Point) (uint64, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), CoverageResolution)
	if err != nil {
		return 0, fmt.Errorf("converting %v to h3 cell: %w", p, err)
	}

	return uint64(cell), nil
}

// DistinctCells counts the H3 cells a trajectory traverses. Readings whose
// cell can't be computed (coordinates outside the valid range) are ignored.
func DistinctCells(readings []Reading) int {
	seen := make(map[uint64]struct{}, len(readings))

	for _, r := range readings {
		cell, err := CellFor(r.Point)
		if err != nil {
			continue
		}

		seen[cell] = struct{}{}
	}

	return len(seen)
}
