// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarcoCot1982/dashtrack/track"
)

var (
	exportOutput    string
	exportName      string
	exportMaxSpeed  float64
	exportSignFloor float64
	exportSouth     bool
	exportWest      bool
)

var exportCmd = &cobra.Command{
	Use:   "export <video-source>",
	Short: "Re-export a stored run as GPX without re-reading the video",
	Long: `Re-runs sanitization over the raw readings stored for a run, which makes it
possible to retune the thresholds without paying for decoding and OCR again.
Use "dashtrack runs" to list the stored runs.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		db, repo, err := openRepo()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := repo.GetRun(source)
		if err != nil {
			return err
		}

		raw, err := repo.RawReadings(source)
		if err != nil {
			return err
		}

		// The signs stored with the run apply unless overridden.
		signs := run.Signs
		if cmd.Flags().Changed("south") || cmd.Flags().Changed("west") {
			signs = track.SignsFromSouthWest(exportSouth, exportWest)
		}

		sanitizer := track.NewSanitizer()
		sanitizer.MaxSpeedKMH = exportMaxSpeed
		sanitizer.SignFloorDeg = exportSignFloor

		cleaned, stats := sanitizer.Sanitize(raw, signs)
		log.Printf(
			"Sanitized %d readings - %d kept, %d corrected, %d skipped",
			len(raw),
			len(cleaned),
			stats.Corrections,
			stats.Skipped,
		)

		output := exportOutput
		if output == "" {
			output = strings.TrimSuffix(source, filepath.Ext(source)) + ".gpx"
		}

		name := exportName
		if name == "" {
			name = source
		}

		out, err := os.Create(filepath.Clean(output))
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}

		if err := track.WriteGPX(out, name, cleaned); err != nil {
			return errors.Join(err, out.Close())
		}

		if err := out.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", output, err)
		}

		log.Printf("Wrote %d trackpoints to %s", len(cleaned), output)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(
		&exportOutput,
		"output",
		"o",
		"",
		"GPX file to write. Defaults to the source name with a .gpx extension",
	)
	exportCmd.Flags().StringVar(
		&exportName,
		"name",
		"",
		"Track name inside the GPX file. Defaults to the video source",
	)
	exportCmd.Flags().Float64Var(
		&exportMaxSpeed,
		"max-speed",
		track.DefaultMaxSpeedKMH,
		"Ground speed in km/h above which a reading is discarded",
	)
	exportCmd.Flags().Float64Var(
		&exportSignFloor,
		"sign-floor",
		track.DefaultSignFloorDeg,
		"Coordinate magnitude in degrees below which signs are left alone",
	)
	exportCmd.Flags().BoolVar(
		&exportSouth,
		"south",
		false,
		"Override the stored hemisphere: latitude is South",
	)
	exportCmd.Flags().BoolVar(
		&exportWest,
		"west",
		false,
		"Override the stored hemisphere: longitude is West",
	)
}
