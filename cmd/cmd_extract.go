// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarcoCot1982/dashtrack/dashcam"
	"github.com/MarcoCot1982/dashtrack/ocr"
	"github.com/MarcoCot1982/dashtrack/track"
	"github.com/MarcoCot1982/dashtrack/video"
)

const startTimeLayout = "2006-01-02T15:04:05"

var extractOptions = &dashcam.ClientOptions{}

var (
	extractOutput    string
	extractStart     string
	extractSouth     bool
	extractWest      bool
	extractMaxSpeed  float64
	extractSignFloor float64
	extractTesseract string
	extractFFmpeg    string
	extractFFprobe   string
)

var extractCmd = &cobra.Command{
	Use:   "extract <video>",
	Short: "Extract the GPS track of a recording into a GPX file",
	Long: `Samples one frame per second of footage, reads the GPS overlay off each one,
cleans the readings into a plausible trajectory, and writes it as GPX.

The overlay states coordinates without a consistent sign, so the hemisphere
of the recording must be declared with --south / --west.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		extractOptions.WorkDir = workDir
		extractOptions.VideoPath = args[0]
		extractOptions.Signs = track.SignsFromSouthWest(extractSouth, extractWest)

		start, err := time.Parse(startTimeLayout, extractStart)
		if err != nil {
			return fmt.Errorf("parsing --start: %w", err)
		}

		extractOptions.StartTime = start

		db, repo, err := openRepo()
		if err != nil {
			return err
		}
		defer db.Close()

		sampler := video.NewFFmpeg()
		sampler.FFmpegPath = extractFFmpeg
		sampler.FFprobePath = extractFFprobe

		recognizer := ocr.NewTesseract(ocr.Config{ToolPath: extractTesseract})

		client, err := dashcam.NewClient(extractOptions, sampler, sampler, recognizer, repo)
		if err != nil {
			return err
		}

		client.Sanitizer().MaxSpeedKMH = extractMaxSpeed
		client.Sanitizer().SignFloorDeg = extractSignFloor

		output := extractOutput
		if output == "" {
			output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".gpx"
		}

		return client.Extract(cmd.Context(), output)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(
		&extractOutput,
		"output",
		"o",
		"",
		"GPX file to write. Defaults to the video name with a .gpx extension",
	)
	extractCmd.Flags().StringVar(
		&extractStart,
		"start",
		time.Now().Format(startTimeLayout),
		"Wall-clock time of the first second of footage",
	)
	extractCmd.Flags().BoolVar(
		&extractSouth,
		"south",
		false,
		"The recording happened in the southern hemisphere",
	)
	extractCmd.Flags().BoolVar(
		&extractWest,
		"west",
		false,
		"The recording happened west of the prime meridian",
	)
	extractCmd.Flags().StringVar(
		&extractOptions.TrackName,
		"name",
		"",
		"Track name inside the GPX file. Defaults to the video file name",
	)
	extractCmd.Flags().BoolVar(
		&extractOptions.SampleFull,
		"sample-full",
		false,
		"Redecode every frame instead of reusing cached ones",
	)
	extractCmd.Flags().BoolVar(
		&extractOptions.SkipSample,
		"skip-sample",
		false,
		"Skip the sampling phase and recognize whatever frames are cached",
	)
	extractCmd.Flags().BoolVar(
		&extractOptions.DryRun,
		"dry-run",
		false,
		"Don't persist the run to the database",
	)
	extractCmd.Flags().IntVar(
		&extractOptions.RecognizeMaxProcs,
		"ocr-max-procs",
		0,
		"Max number of concurrent OCR processes. Defaults to the number of CPUs",
	)
	extractCmd.Flags().Float64Var(
		&extractMaxSpeed,
		"max-speed",
		track.DefaultMaxSpeedKMH,
		"Ground speed in km/h above which a reading is discarded",
	)
	extractCmd.Flags().Float64Var(
		&extractSignFloor,
		"sign-floor",
		track.DefaultSignFloorDeg,
		"Coordinate magnitude in degrees below which signs are left alone",
	)
	extractCmd.Flags().StringVar(
		&extractTesseract,
		"tesseract",
		"tesseract",
		"Path to the tesseract binary",
	)
	extractCmd.Flags().StringVar(
		&extractFFmpeg,
		"ffmpeg",
		"ffmpeg",
		"Path to the ffmpeg binary",
	)
	extractCmd.Flags().StringVar(
		&extractFFprobe,
		"ffprobe",
		"ffprobe",
		"Path to the ffprobe binary",
	)
}
