// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashcam runs the extraction pipeline: sample frames out of a
// recording, OCR the overlay strip of each one, sanitize the readings into
// a trajectory, and persist the run.
package dashcam

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/MarcoCot1982/dashtrack/track"
	"github.com/MarcoCot1982/dashtrack/video"
)

// ClientOptions configuration for the extraction Client.
type ClientOptions struct {
	// WorkDir is the root path for cached frames.
	WorkDir string

	// VideoPath is the recording to extract.
	VideoPath string

	// StartTime is the wall-clock time of the first second of footage.
	StartTime time.Time

	// Signs is the hemisphere pair the recording occurred in.
	Signs track.Signs

	// TrackName names the GPX track; defaults to the video file name.
	TrackName string

	// Overrides incremental sampling and redecodes every frame.
	SampleFull bool

	// Skips the sampling phase (recognize whatever frames are cached).
	SkipSample bool

	// Dry run, don't persist any change.
	DryRun bool

	// Max number of concurrent OCR processes.
	RecognizeMaxProcs int
}

// Prober reports duration and frame rate of a recording.
type Prober interface {
	Probe(ctx context.Context, videoPath string) (video.Info, error)
}

// Sampler extracts the overlay strip of one frame into an image file.
type Sampler interface {
	SampleFrame(ctx context.Context, videoPath string, second int, outPath string) error
}

// Recognizer turns one frame image into overlay text.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Client drives one recording through the pipeline.
type Client struct {
	options    *ClientOptions
	prober     Prober
	sampler    Sampler
	recognizer Recognizer
	store      *video.FrameStore
	repo       track.RunRepository
	sanitizer  *track.Sanitizer
	Metrics    ClientMetrics
}

// NewClient creates a client for one recording. repo may be nil when the
// run is not persisted.
func NewClient(
	options *ClientOptions,
	prober Prober,
	sampler Sampler,
	recognizer Recognizer,
	repo track.RunRepository,
) (*Client, error) {
	if options == nil {
		options = &ClientOptions{}
	}

	store, err := video.NewFrameStore(options.WorkDir, options.VideoPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		options:    options,
		prober:     prober,
		sampler:    sampler,
		recognizer: recognizer,
		store:      store,
		repo:       repo,
		sanitizer:  track.NewSanitizer(),
	}, nil
}

// Sanitizer exposes the thresholds so callers can tune them before Run.
func (c *Client) Sanitizer() *track.Sanitizer {
	return c.sanitizer
}

// sampleFrames decodes one frame per second of footage into the store,
// skipping seconds already cached from an earlier, possibly interrupted,
// run.
func (c *Client) sampleFrames(ctx context.Context) error {
	info, err := c.prober.Probe(ctx, c.options.VideoPath)
	if err != nil {
		return fmt.Errorf("probing video: %w", err)
	}

	total := int(info.DurationSeconds)
	log.Printf("Video is %ds at %.2f fps", total, info.FPS)

	cached := make(map[int]struct{})

	if !c.options.SampleFull {
		existing, err := c.store.ExistingFrames()
		if err != nil {
			return fmt.Errorf("listing cached frames: %w", err)
		}

		for _, second := range existing {
			cached[second] = struct{}{}
		}
	}

	var errs []error

	for second := 0; second < total; second++ {
		if _, ok := cached[second]; ok {
			c.Metrics.FramesCached++
			continue
		}

		path, err := c.store.FramePath(second)
		if err != nil {
			return err
		}

		if err := c.sampler.SampleFrame(ctx, c.options.VideoPath, second, path); err != nil {
			c.Metrics.SampleErrors++

			errs = append(errs, err)
			log.Printf("[%d/%d] Sampling failed: %s", second+1, total, err)

			continue
		}

		c.Metrics.FramesSampled++
	}

	log.Printf(
		"Sampling phase completed - %d sampled, %d cached, %d failed",
		c.Metrics.FramesSampled,
		c.Metrics.FramesCached,
		c.Metrics.SampleErrors,
	)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// recognizeFrames OCRs every cached frame concurrently and parses each
// text into a reading. Results keep footage order regardless of which
// worker finished first.
func (c *Client) recognizeFrames(ctx context.Context) ([]track.Reading, error) {
	seconds, err := c.store.ExistingFrames()
	if err != nil {
		return nil, fmt.Errorf("listing frames: %w", err)
	}

	n := len(seconds)

	maxProcs := c.options.RecognizeMaxProcs
	if maxProcs == 0 {
		maxProcs = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetDescription("Recognizing "+filepath.Base(c.options.VideoPath)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, maxProcs)
	errChan := make(chan error, n)
	texts := make([]string, n)
	found := make([]bool, n)

	for i, second := range seconds {
		wg.Add(1)

		go func(i, second int) {
			defer wg.Done()
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			path, err := c.store.FramePath(second)
			if err != nil {
				errChan <- err

				return
			}

			text, err := c.recognizer.Recognize(ctx, path)
			if err != nil {
				errChan <- fmt.Errorf("recognizing second %d - %w", second, err)
			} else {
				texts[i] = text
				found[i] = true
			}

			if bar == nil {
				log.Printf("Recognizing second %d", second)
			} else {
				if err := bar.Add(1); err != nil {
					errChan <- fmt.Errorf("updating progress bar: %w", err)
				}
			}
		}(i, second)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		c.Metrics.RecognizeErrors++

		log.Printf("Recognition failed - %s", err)
	}

	readings := make([]track.Reading, 0, n)

	for i, second := range seconds {
		if !found[i] {
			continue
		}

		c.Metrics.FramesRead++

		point, ok := track.ParseCoordinates(texts[i])
		if !ok {
			c.Metrics.ParseMisses++
			continue
		}

		c.Metrics.ParsedOk++

		readings = append(readings, track.Reading{
			Time:  c.options.StartTime.Add(time.Duration(second) * time.Second),
			Point: point,
		})
	}

	log.Printf(
		"Recognition phase completed - %d frames read, %d with coordinates, %d without, %d errors",
		c.Metrics.FramesRead,
		c.Metrics.ParsedOk,
		c.Metrics.ParseMisses,
		c.Metrics.RecognizeErrors,
	)

	return readings, nil
}

func (c *Client) trackName() string {
	if c.options.TrackName != "" {
		return c.options.TrackName
	}

	return filepath.Base(c.options.VideoPath)
}

// persistRun stores the raw readings with the sanitizer's per-reading
// decisions, so the run can be re-sanitized later without re-running OCR.
func (c *Client) persistRun(raw []track.Reading, outcomes []track.Outcome, cleaned []track.Reading) error {
	stored := make([]track.StoredReading, 0, len(outcomes))

	for i, o := range outcomes {
		s := track.StoredReading{
			Seq:       i,
			Time:      o.Raw.Time,
			Raw:       o.Raw.Point,
			Clean:     o.Clean.Point,
			Kept:      o.Kept,
			Corrected: o.Corrected,
		}

		if o.Kept {
			if cell, err := track.CellFor(o.Clean.Point); err == nil {
				s.Cell = cell
			}
		}

		stored = append(stored, s)
	}

	run := &track.Run{
		VideoSource: filepath.Base(c.options.VideoPath),
		CreatedAt:   time.Now().UTC(),
		StartTime:   c.options.StartTime,
		Signs:       c.options.Signs,
		RawReadings: len(raw),
		Corrections: c.Metrics.Corrections,
		Skipped:     c.Metrics.Skipped,
		Kept:        len(cleaned),
		Cells:       track.DistinctCells(cleaned),
	}

	if err := c.repo.SaveRun(run, stored); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	return nil
}

// Extract runs the pipeline end to end and writes the cleaned trajectory
// as GPX to outputPath.
func (c *Client) Extract(ctx context.Context, outputPath string) error {
	log.Printf("Extracting track from %s", c.options.VideoPath)

	if c.options.SkipSample {
		log.Println("Skipping sampling phase")
	} else {
		if err := c.sampleFrames(ctx); err != nil {
			return err
		}
	}

	raw, err := c.recognizeFrames(ctx)
	if err != nil {
		return err
	}

	outcomes, stats := c.sanitizer.Run(raw, c.options.Signs)
	c.Metrics.Stats.Merge(&stats)

	cleaned := make([]track.Reading, 0, len(outcomes))

	for _, o := range outcomes {
		if o.Kept {
			cleaned = append(cleaned, o.Clean)
		}
	}

	c.Metrics.Kept = len(cleaned)

	log.Printf(
		"Sanitize phase completed - %d kept, %d corrected, %d skipped from %d readings",
		len(cleaned),
		stats.Corrections,
		stats.Skipped,
		len(raw),
	)

	if c.options.DryRun || c.repo == nil {
		log.Println("Skipping persistence")
	} else if err := c.persistRun(raw, outcomes, cleaned); err != nil {
		return err
	}

	out, err := os.Create(filepath.Clean(outputPath))
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}

	if err := track.WriteGPX(out, c.trackName(), cleaned); err != nil {
		return errors.Join(err, out.Close())
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outputPath, err)
	}

	log.Printf("Wrote %d trackpoints across %d cells to %s",
		len(cleaned), track.DistinctCells(cleaned), outputPath)

	return nil
}
