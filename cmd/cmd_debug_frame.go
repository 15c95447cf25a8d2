// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MarcoCot1982/dashtrack/ocr"
	"github.com/MarcoCot1982/dashtrack/track"
	"github.com/MarcoCot1982/dashtrack/video"
)

var (
	debugFrameSecond int
	debugFrameKeep   bool
)

var debugFrameCmd = &cobra.Command{
	Use:   "frame <video>",
	Short: "Sample one frame, OCR it, and show what the parser sees",
	Long: `Extracts the overlay strip of a single second of footage, runs OCR over it,
and prints both the raw text and the parsed coordinates. Useful to vet a
camera model before paying for a full extraction.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.MkdirTemp("", "dashtrack-frame-")
		if err != nil {
			return fmt.Errorf("creating temp dir: %w", err)
		}

		if !debugFrameKeep {
			defer os.RemoveAll(dir)
		}

		framePath := filepath.Join(dir, "frame.png")
		sampler := video.NewFFmpeg()

		if err := sampler.SampleFrame(cmd.Context(), args[0], debugFrameSecond, framePath); err != nil {
			return err
		}

		if debugFrameKeep {
			fmt.Printf("frame:\t%s\n", framePath)
		}

		text, err := ocr.NewTesseract(ocr.Config{}).Recognize(cmd.Context(), framePath)
		if err != nil {
			return err
		}

		fmt.Printf("ocr:\t%q\n", text)

		point, ok := track.ParseCoordinates(text)
		if !ok {
			fmt.Println("parsed:\t<no coordinates>")
		} else {
			fmt.Printf("parsed:\t%s\n", point.String())
		}

		return nil
	},
}

func init() {
	debugFrameCmd.Flags().IntVar(
		&debugFrameSecond,
		"second",
		0,
		"Second of footage to sample",
	)
	debugFrameCmd.Flags().BoolVar(
		&debugFrameKeep,
		"keep",
		false,
		"Keep the sampled frame on disk and print its path",
	)
}
