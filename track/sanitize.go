// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"math"

	"github.com/MarcoCot1982/dashtrack/spatial"
)

// Thresholds inherited from the field-tuned defaults; both are overridable
// on Sanitizer because the intended tolerance depends on the footage.
const (
	// DefaultMaxSpeedKMH is the implied ground speed above which a reading
	// is treated as an OCR misread rather than movement.
	DefaultMaxSpeedKMH = 300.0

	// DefaultSignFloorDeg is the magnitude below which a coordinate's sign
	// is numerically meaningless and never corrected.
	DefaultSignFloorDeg = 1.0
)

// Stats counts what a sanitize pass did to the raw readings.
type Stats struct {
	Corrections int `json:"corrections"`
	Skipped     int `json:"skipped"`
}

// Merge combines two Stats.
func (s *Stats) Merge(o *Stats) *Stats {
	s.Corrections += o.Corrections
	s.Skipped += o.Skipped

	return s
}

// Outcome records what the sanitizer decided for one raw reading. Clean holds
// the sign-corrected reading and is meaningful even when Kept is false.
type Outcome struct {
	Raw       Reading
	Clean     Reading
	Kept      bool
	Corrected bool
}

// Sanitizer cleans an ordered sequence of readings into a physically
// plausible trajectory. The zero value is not useful; use NewSanitizer.
type Sanitizer struct {
	MaxSpeedKMH  float64
	SignFloorDeg float64
}

// NewSanitizer returns a Sanitizer with the default thresholds.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		MaxSpeedKMH:  DefaultMaxSpeedKMH,
		SignFloorDeg: DefaultSignFloorDeg,
	}
}

// cursor threads the single piece of pass state, the last accepted reading,
// through the left-to-right fold. The pass must stay sequential: each
// decision depends on the anchor the previous decisions produced.
type cursor struct {
	s        *Sanitizer
	signs    Signs
	anchor   *Reading
	outcomes []Outcome
	stats    Stats
}

func (c *cursor) correctSigns(p spatial.Point) (spatial.Point, bool) {
	var flipped bool

	if math.Abs(p.Lat) > c.s.SignFloorDeg && p.Lat*float64(c.signs.Lat) < 0 {
		p.Lat = -p.Lat
		flipped = true
	}

	if math.Abs(p.Lng) > c.s.SignFloorDeg && p.Lng*float64(c.signs.Lng) < 0 {
		p.Lng = -p.Lng
		flipped = true
	}

	return p, flipped
}

// plausible reports whether moving from the anchor to r implies a ground
// speed within the threshold. A non-positive dt skips the check entirely:
// duplicate or out-of-order timestamps pass through rather than dividing by
// zero.
func (c *cursor) plausible(r Reading) bool {
	if c.anchor == nil {
		return true
	}

	dt := r.Time.Sub(c.anchor.Time).Seconds()
	if dt <= 0 {
		return true
	}

	speed := c.anchor.Point.DistanceTo(r.Point) / dt * 3.6 // km/h

	return speed <= c.s.MaxSpeedKMH
}

func (c *cursor) push(raw Reading) {
	point, corrected := c.correctSigns(raw.Point)
	if corrected {
		c.stats.Corrections++
	}

	clean := Reading{Time: raw.Time, Point: point}

	kept := c.plausible(clean)
	if kept {
		c.anchor = &clean
	} else {
		c.stats.Skipped++
	}

	c.outcomes = append(c.outcomes, Outcome{
		Raw:       raw,
		Clean:     clean,
		Kept:      kept,
		Corrected: corrected,
	})
}

// Run performs the sanitize pass and reports the per-reading outcomes in
// input order. Every reading is deterministically kept or skipped; nothing is
// retried or deferred.
func (s *Sanitizer) Run(readings []Reading, signs Signs) ([]Outcome, Stats) {
	c := &cursor{s: s, signs: signs, outcomes: make([]Outcome, 0, len(readings))}

	for _, r := range readings {
		c.push(r)
	}

	return c.outcomes, c.stats
}

// Sanitize cleans the ordered readings and returns the kept trajectory along
// with correction and skip counts. len(cleaned)+stats.Skipped equals
// len(readings) always.
func (s *Sanitizer) Sanitize(readings []Reading, signs Signs) ([]Reading, Stats) {
	outcomes, stats := s.Run(readings, signs)

	cleaned := make([]Reading, 0, len(outcomes))

	for _, o := range outcomes {
		if o.Kept {
			cleaned = append(cleaned, o.Clean)
		}
	}

	return cleaned, stats
}
