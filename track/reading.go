// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package track turns noisy per-frame OCR text into a clean GPS trajectory.
package track

import (
	"time"

	"github.com/MarcoCot1982/dashtrack/spatial"
)

// Reading is one timestamped coordinate candidate derived from a single
// frame's OCR output. Immutable once created.
type Reading struct {
	Time  time.Time     `json:"time"`
	Point spatial.Point `json:"point"`
}

// Signs declares the hemisphere pair the whole recording occurs in, as the
// user stated it. Each field is -1 or +1.
type Signs struct {
	Lat int `json:"lat"`
	Lng int `json:"lng"`
}

// SignsFromSouthWest builds a Signs from the two yes/no questions the CLI
// asks: is the latitude South, is the longitude West.
func SignsFromSouthWest(south, west bool) Signs {
	s := Signs{Lat: 1, Lng: 1}
	if south {
		s.Lat = -1
	}

	if west {
		s.Lng = -1
	}

	return s
}
