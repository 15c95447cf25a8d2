// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/h3-go/v4"

	"github.com/MarcoCot1982/dashtrack/spatial"
)

func TestCellFor(t *testing.T) {
	t.Parallel()

	cell, err := CellFor(spatial.Point{Lat: -34.9011, Lng: -56.1645})
	require.NoError(t, err)
	assert.True(t, h3.Cell(cell).IsValid())

	// Deterministic, and distinct from a cell a few km away.
	again, err := CellFor(spatial.Point{Lat: -34.9011, Lng: -56.1645})
	require.NoError(t, err)
	assert.Equal(t, cell, again)

	other, err := CellFor(spatial.Point{Lat: -34.9500, Lng: -56.2000})
	require.NoError(t, err)
	assert.NotEqual(t, cell, other)
}

func TestDistinctCells(t *testing.T) {
	t.Parallel()

	// Consecutive seconds of city driving stay inside one res 8 hexagon;
	// a point a few km away lands in another.
	readings := []Reading{
		at(0, -34.9011, -56.1645),
		at(1, -34.90112, -56.16452),
		at(2, -34.90114, -56.16455),
		at(3, -34.9500, -56.2000),
	}

	assert.Equal(t, 2, DistinctCells(readings))
}

func TestDistinctCellsEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, DistinctCells(nil))
}
