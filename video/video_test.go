// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestROIFilter(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"crop=iw*0.2200:ih*0.0900:iw*0.3200:ih*0.9100,format=gray",
		DefaultROI().filter())
}

func TestParseRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "30/1", want: 30},
		{input: "30000/1001", want: 29.97002997002997},
		{input: "25", want: 25},
		{input: "0/0", wantErr: true},
		{input: "", wantErr: true},
		{input: "abc/1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseRatio(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
