// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package ocr reads dashcam overlay text out of frame images by driving
// the tesseract binary.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Config selects the OCR tool and how it is invoked. Zero fields fall back
// to the values in DefaultConfig.
type Config struct {
	// ToolPath is the tesseract executable, looked up in PATH when not
	// absolute.
	ToolPath string

	// CharWhitelist restricts recognition to the characters a GPS overlay
	// can contain. Keeping the alphabet this small is what makes single
	// line overlay OCR reliable.
	CharWhitelist string

	// PageSegMode is tesseract's page segmentation mode. Mode 6, a single
	// uniform block of text, fits a one-line overlay strip.
	PageSegMode int
}

// DefaultConfig returns the configuration tuned for GPS overlay strips.
func DefaultConfig() Config {
	return Config{
		ToolPath:      "tesseract",
		CharWhitelist: "0123456789NnSsEeWw°.,-",
		PageSegMode:   6,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()

	if c.ToolPath == "" {
		c.ToolPath = d.ToolPath
	}

	if c.CharWhitelist == "" {
		c.CharWhitelist = d.CharWhitelist
	}

	if c.PageSegMode == 0 {
		c.PageSegMode = d.PageSegMode
	}

	return c
}

// Tesseract runs the tesseract CLI over single images.
type Tesseract struct {
	config Config
}

// NewTesseract returns a recognizer using config, filling unset fields from
// DefaultConfig.
func NewTesseract(config Config) *Tesseract {
	return &Tesseract{config: config.withDefaults()}
}

// args builds the tesseract invocation for one image, writing the
// recognized text to stdout.
func (o *Tesseract) args(imagePath string) []string {
	return []string{
		imagePath,
		"stdout",
		"--psm", fmt.Sprintf("%d", o.config.PageSegMode),
		"-c", "tessedit_char_whitelist=" + o.config.CharWhitelist,
	}
}

// Recognize OCRs one frame image and returns the raw recognized text with
// surrounding whitespace removed. An empty string with a nil error means
// tesseract found nothing.
func (o *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, o.config.ToolPath, o.args(imagePath)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s on %s: %w: %s",
			o.config.ToolPath, imagePath, err,
			strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
