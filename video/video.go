// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package video probes dashcam recordings and samples one frame per second
// of footage by driving ffprobe and ffmpeg.
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ROI is the region of the frame holding the GPS overlay, as fractions of
// the frame dimensions.
type ROI struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DefaultROI covers the bottom-center strip where the tested dashcam
// models print their coordinates.
func DefaultROI() ROI {
	return ROI{X: 0.32, Y: 0.91, W: 0.22, H: 0.09}
}

// filter builds the ffmpeg filtergraph that crops the overlay strip and
// drops color. Grayscale input is what the OCR whitelist was tuned on.
func (r ROI) filter() string {
	return fmt.Sprintf("crop=iw*%.4f:ih*%.4f:iw*%.4f:ih*%.4f,format=gray",
		r.W, r.H, r.X, r.Y)
}

// Info is what Probe learns about a recording.
type Info struct {
	DurationSeconds float64
	FPS             float64
}

// FFmpeg samples frames through the ffmpeg and ffprobe binaries, looked up
// in PATH when the paths are not absolute.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
	ROI         ROI
}

// NewFFmpeg returns a sampler with the standard tool names and DefaultROI.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		ROI:         DefaultROI(),
	}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

// parseRatio parses ffprobe's "num/den" frame rates; a plain number parses
// as itself.
func parseRatio(s string) (float64, error) {
	num, den, found := strings.Cut(s, "/")

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing ratio %q: %w", s, err)
	}

	if !found {
		return n, nil
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing ratio %q: %w", s, err)
	}

	if d == 0 {
		return 0, fmt.Errorf("parsing ratio %q: zero denominator", s)
	}

	return n / d, nil
}

// Probe reads the duration and frame rate of a recording.
func (f *FFmpeg) Probe(ctx context.Context, videoPath string) (Info, error) {
	cmd := exec.CommandContext(ctx, f.FFprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Info{}, fmt.Errorf("probing %s: %w: %s",
			videoPath, err, strings.TrimSpace(stderr.String()))
	}

	var probe probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return Info{}, fmt.Errorf("decoding probe of %s: %w", videoPath, err)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return Info{}, fmt.Errorf("parsing duration of %s: %w", videoPath, err)
	}

	info := Info{DurationSeconds: duration}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}

		if info.FPS, err = parseRatio(stream.AvgFrameRate); err != nil {
			return Info{}, fmt.Errorf("parsing frame rate of %s: %w", videoPath, err)
		}

		break
	}

	if info.FPS == 0 {
		return Info{}, fmt.Errorf("no video stream in %s", videoPath)
	}

	return info, nil
}

// SampleFrame extracts the overlay strip of the frame at the given second
// into outPath as a grayscale PNG.
func (f *FFmpeg) SampleFrame(ctx context.Context, videoPath string, second int, outPath string) error {
	cmd := exec.CommandContext(ctx, f.FFmpegPath,
		"-v", "error",
		"-y",
		"-ss", strconv.Itoa(second),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", f.ROI.filter(),
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sampling second %d of %s: %w: %s",
			second, videoPath, err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
