// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/MarcoCot1982/dashtrack/spatial"
	"github.com/MarcoCot1982/dashtrack/utils/textutils"
)

// Matches overlay text like `43.1234N 79.1234W' or `-43.123, 79.123'. The
// first number is latitude and the second longitude regardless of which
// hemisphere letters survived OCR.
var coordPattern = regexp.MustCompile(
	`(-?\d{1,3}\.\d+)[ ,°]*([NnSs])?[^0-9\-]*(-?\d{1,3}\.\d+)[ ,°]*([EeWw])?`,
)

// ParseCoordinates extracts the first coordinate-shaped substring from raw
// OCR text. The second return value is false when no match is found.
//
// Hemisphere letters, when present, are the authoritative sign source: the
// OCR'd minus sign is frequently dropped or misread, the letter rarely is.
// Without a letter the raw signed value is kept and left to the sanitizer.
func ParseCoordinates(text string) (spatial.Point, bool) {
	m := coordPattern.FindStringSubmatch(textutils.FoldOCR(text))
	if m == nil {
		return spatial.Point{}, false
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return spatial.Point{}, false
	}

	lng, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return spatial.Point{}, false
	}

	if ns := m[2]; ns != "" {
		if strings.EqualFold(ns, "S") {
			lat = -math.Abs(lat)
		} else {
			lat = math.Abs(lat)
		}
	}

	if ew := m[4]; ew != "" {
		if strings.EqualFold(ew, "W") {
			lng = -math.Abs(lng)
		} else {
			lng = math.Abs(lng)
		}
	}

	return spatial.Point{Lat: lat, Lng: lng}, true
}
