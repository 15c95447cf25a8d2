// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceTo(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Point
		meters  float64
		epsilon float64
	}{
		{
			name:    "same point",
			a:       Point{Lat: -34.9011, Lng: -56.1645},
			b:       Point{Lat: -34.9011, Lng: -56.1645},
			meters:  0,
			epsilon: 0.001,
		},
		{
			name: "one degree of latitude",
			a:    Point{Lat: 43.0, Lng: -79.0},
			b:    Point{Lat: 44.0, Lng: -79.0},
			// one degree of arc on a 6371 km sphere
			meters:  111195,
			epsilon: 100,
		},
		{
			name:    "short hop",
			a:       Point{Lat: 45.4642, Lng: 9.1900},
			b:       Point{Lat: 45.4643, Lng: 9.1901},
			meters:  13.6,
			epsilon: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.meters, tt.a.DistanceTo(tt.b), tt.epsilon)
			// symmetric
			assert.InDelta(t, tt.meters, tt.b.DistanceTo(tt.a), tt.epsilon)
		})
	}
}

func TestPointScan(t *testing.T) {
	var p Point

	require.NoError(t, p.Scan([]byte("POINT (-56.1645 -34.9011)")))
	assert.InDelta(t, -34.9011, p.Lat, 1e-9)
	assert.InDelta(t, -56.1645, p.Lng, 1e-9)

	require.NoError(t, p.Scan(map[string]interface{}{"x": 9.19, "y": 45.4642}))
	assert.InDelta(t, 45.4642, p.Lat, 1e-9)
	assert.InDelta(t, 9.19, p.Lng, 1e-9)

	require.NoError(t, p.Scan(nil))
	assert.Zero(t, p.Lat)
	assert.Zero(t, p.Lng)

	assert.Error(t, p.Scan(42))
}

func TestPointValueRoundTrip(t *testing.T) {
	p := Point{Lat: 43.5, Lng: -79.2}

	v, err := p.Value()
	require.NoError(t, err)
	assert.Equal(t, "POINT(-79.200000 43.500000)", v)
}
