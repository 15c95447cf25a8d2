// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	c := DefaultConfig()
	assert.Equal(t, "tesseract", c.ToolPath)
	assert.Equal(t, 6, c.PageSegMode)
	assert.Contains(t, c.CharWhitelist, "NnSsEeWw")
}

func TestArgs(t *testing.T) {
	t.Parallel()

	o := NewTesseract(Config{})

	assert.Equal(t, []string{
		"/tmp/frames/000042.png",
		"stdout",
		"--psm", "6",
		"-c", "tessedit_char_whitelist=0123456789NnSsEeWw°.,-",
	}, o.args("/tmp/frames/000042.png"))
}

func TestArgsOverrides(t *testing.T) {
	t.Parallel()

	o := NewTesseract(Config{
		ToolPath:      "/opt/tesseract/bin/tesseract",
		CharWhitelist: "0123456789.",
		PageSegMode:   7,
	})

	assert.Equal(t, []string{
		"frame.png",
		"stdout",
		"--psm", "7",
		"-c", "tessedit_char_whitelist=0123456789.",
	}, o.args("frame.png"))
	assert.Equal(t, "/opt/tesseract/bin/tesseract", o.config.ToolPath)
}
