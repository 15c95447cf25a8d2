// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package dashcam

import "github.com/MarcoCot1982/dashtrack/track"

// SampleMetrics tracks statistics about the frame sampling phase.
type SampleMetrics struct {
	FramesSampled int
	FramesCached  int
	SampleErrors  int
}

// Merge combines two SampleMetrics.
func (m *SampleMetrics) Merge(o *SampleMetrics) *SampleMetrics {
	m.FramesSampled += o.FramesSampled
	m.FramesCached += o.FramesCached
	m.SampleErrors += o.SampleErrors

	return m
}

// RecognizeMetrics tracks statistics about the OCR phase.
type RecognizeMetrics struct {
	FramesRead      int
	RecognizeErrors int
	ParsedOk        int
	ParseMisses     int
}

// Merge combines two RecognizeMetrics.
func (m *RecognizeMetrics) Merge(o *RecognizeMetrics) *RecognizeMetrics {
	m.FramesRead += o.FramesRead
	m.RecognizeErrors += o.RecognizeErrors
	m.ParsedOk += o.ParsedOk
	m.ParseMisses += o.ParseMisses

	return m
}

// ClientMetrics tracks the metrics collected across a full extraction run.
type ClientMetrics struct {
	SampleMetrics
	RecognizeMetrics
	track.Stats

	// Kept is the number of readings that survived sanitization.
	Kept int
}

// Merge combines the metrics from another ClientMetrics instance into this one.
func (m *ClientMetrics) Merge(other *ClientMetrics) *ClientMetrics {
	if other == nil {
		return m
	}

	m.SampleMetrics.Merge(&other.SampleMetrics)
	m.RecognizeMetrics.Merge(&other.RecognizeMetrics)
	m.Stats.Merge(&other.Stats)
	m.Kept += other.Kept

	return m
}
