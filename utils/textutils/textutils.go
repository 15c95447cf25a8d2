// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils normalizes raw OCR output before parsing.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldOCR normalizes OCR text: compatibility-decomposes (so full-width digits
// and styled glyphs collapse to their ASCII forms), strips combining marks and
// trims surrounding whitespace. Case is preserved because hemisphere letters
// carry meaning.
func FoldOCR(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(s),
	)

	return s
}
