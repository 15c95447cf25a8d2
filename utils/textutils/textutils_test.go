// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldOCR(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"43.5N 79.2W", "43.5N 79.2W"},
		{"  43.5N 79.2W \n", "43.5N 79.2W"},
		// full-width digits seen from unconstrained OCR runs
		{"４３.5N", "43.5N"},
		// combining marks get stripped, case preserved
		{"4́3.5S", "43.5S"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FoldOCR(tt.input), "input %q", tt.input)
	}
}
