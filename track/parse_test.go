// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MarcoCot1982/dashtrack/spatial"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected spatial.Point
		found    bool
	}{
		{
			name:     "hemisphere letters override raw signs",
			input:    "43.5S 79.2E",
			expected: spatial.Point{Lat: -43.5, Lng: 79.2},
			found:    true,
		},
		{
			name:     "north west",
			input:    "43.5N 79.2W",
			expected: spatial.Point{Lat: 43.5, Lng: -79.2},
			found:    true,
		},
		{
			name:     "no letters keeps raw signs",
			input:    "43.5 79.2",
			expected: spatial.Point{Lat: 43.5, Lng: 79.2},
			found:    true,
		},
		{
			name:     "negative raw values survive",
			input:    "-43.123, 79.123",
			expected: spatial.Point{Lat: -43.123, Lng: 79.123},
			found:    true,
		},
		{
			name:     "letter forces positive over ocr minus",
			input:    "-43.5N -79.2E",
			expected: spatial.Point{Lat: 43.5, Lng: 79.2},
			found:    true,
		},
		{
			name:     "degree marks and commas as separators",
			input:    "GPS 45.4642° N, 9.1900° E speed 42",
			expected: spatial.Point{Lat: 45.4642, Lng: 9.19},
			found:    true,
		},
		{
			name:     "coordinate buried in overlay noise",
			input:    "REC 00:12:31 -34.9011S 56.1645W 60km/h",
			expected: spatial.Point{Lat: -34.9011, Lng: -56.1645},
			found:    true,
		},
		{
			name:     "lowercase hemisphere letters",
			input:    "43.5s 79.2w",
			expected: spatial.Point{Lat: -43.5, Lng: -79.2},
			found:    true,
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "garbled text without coordinates",
			input: "N..W,,°-- 12 34",
		},
		{
			name:  "single number is not a pair",
			input: "43.5N",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ParseCoordinates(tt.input)
			if found != tt.found {
				t.Fatalf("ParseCoordinates(%q) found = %v, expected %v", tt.input, found, tt.found)
			}

			if !found {
				return
			}

			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ParseCoordinates(%q) mismatch (-expected +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseCoordinatesDeterminism(t *testing.T) {
	const input = "43.5S 79.2E"

	first, ok := ParseCoordinates(input)
	if !ok {
		t.Fatal("expected a reading")
	}

	for range 10 {
		got, ok := ParseCoordinates(input)
		if !ok || got != first {
			t.Fatalf("repeated parse diverged: got %v (%v), first %v", got, ok, first)
		}
	}
}
