// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MarcoCot1982/dashtrack/spatial"
)

// Run is one extraction run over a video, with the summary counters the
// pipeline reports at the end.
type Run struct {
	VideoSource string    `json:"video_source"`
	CreatedAt   time.Time `json:"created_at"`
	StartTime   time.Time `json:"start_time"`
	Signs       Signs     `json:"signs"`
	RawReadings int       `json:"raw_readings"`
	Corrections int       `json:"corrections"`
	Skipped     int       `json:"skipped"`
	Kept        int       `json:"kept"`
	Cells       int       `json:"cells"`
}

// StoredReading is one raw reading persisted alongside the sanitizer's
// decision about it, so a run can be re-sanitized without re-running OCR.
type StoredReading struct {
	Seq       int
	Time      time.Time
	Raw       spatial.Point
	Clean     spatial.Point
	Kept      bool
	Corrected bool
	Cell      uint64 // h3 res-8 of the clean point; 0 when skipped
}

// RunRepository defines the persistence operations the pipeline needs.
type RunRepository interface {
	// CreateSchema creates the database schema.
	CreateSchema() error
	// SaveRun stores a run and its readings, replacing any previous run
	// for the same video source.
	SaveRun(run *Run, readings []StoredReading) error
	// ListRuns returns all stored runs, newest first.
	ListRuns() ([]*Run, error)
	// GetRun returns the run for a video source, or ErrRunNotFound.
	GetRun(videoSource string) (*Run, error)
	// RawReadings returns the raw (pre-sanitize) readings of a run in
	// chronological order.
	RawReadings(videoSource string) ([]Reading, error)
	// CleanReadings returns the kept, sign-corrected readings of a run in
	// chronological order.
	CleanReadings(videoSource string) ([]Reading, error)
}

// ErrRunNotFound is returned when no run exists for the requested source.
var ErrRunNotFound = errors.New("run not found")

type sqlRunRepository struct {
	db *sql.DB
}

// NewSQLRunRepository wires a RunRepository on a DuckDB connection.
func NewSQLRunRepository(db *sql.DB) (RunRepository, error) {
	// DuckDB needs to load the spatial extension for POINT_2D
	if _, err := db.Exec(`INSTALL spatial; LOAD spatial;`); err != nil {
		return nil, err
	}

	return &sqlRunRepository{db: db}, nil
}

func (r *sqlRunRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			video_source VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL,
			start_time TIMESTAMP NOT NULL,
			lat_sign TINYINT NOT NULL,
			lng_sign TINYINT NOT NULL,
			raw_readings INTEGER NOT NULL,
			corrections INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			kept INTEGER NOT NULL,
			cells INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS readings (
			video_source VARCHAR NOT NULL,
			seq INTEGER NOT NULL,
			ts TIMESTAMP NOT NULL,
			raw_point POINT_2D NOT NULL,
			clean_point POINT_2D NOT NULL,
			kept BOOLEAN NOT NULL,
			corrected BOOLEAN NOT NULL,
			h3_res8 UBIGINT
		);
	`)

	return err
}

func nzCell(v uint64) any {
	if v == 0 {
		return nil
	}

	return v
}

func (r *sqlRunRepository) SaveRun(run *Run, readings []StoredReading) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction for %s: %w", run.VideoSource, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction for %s: %v", run.VideoSource, err)
		}
	}()

	for _, q := range []string{
		"DELETE FROM runs WHERE video_source = ?",
		"DELETE FROM readings WHERE video_source = ?",
	} {
		if _, err := tx.Exec(q, run.VideoSource); err != nil {
			return fmt.Errorf("deleting previous run for %s: %w", run.VideoSource, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO runs (
			video_source, created_at, start_time, lat_sign, lng_sign,
			raw_readings, corrections, skipped, kept, cells
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.VideoSource,
		run.CreatedAt,
		run.StartTime,
		run.Signs.Lat,
		run.Signs.Lng,
		run.RawReadings,
		run.Corrections,
		run.Skipped,
		run.Kept,
		run.Cells,
	); err != nil {
		return fmt.Errorf("inserting run for %s: %w", run.VideoSource, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO readings (
			video_source, seq, ts, raw_point, clean_point, kept, corrected, h3_res8
		) VALUES (?, ?, ?, ST_Point(?, ?), ST_Point(?, ?), ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, reading := range readings {
		if _, err := stmt.Exec(
			run.VideoSource,
			reading.Seq,
			reading.Time,
			reading.Raw.Lng,
			reading.Raw.Lat,
			reading.Clean.Lng,
			reading.Clean.Lat,
			reading.Kept,
			reading.Corrected,
			nzCell(reading.Cell),
		); err != nil {
			return fmt.Errorf("inserting reading %d for %s: %w", reading.Seq, run.VideoSource, err)
		}
	}

	return tx.Commit()
}

func scanRun(scan func(...any) error) (*Run, error) {
	var run Run

	if err := scan(
		&run.VideoSource,
		&run.CreatedAt,
		&run.StartTime,
		&run.Signs.Lat,
		&run.Signs.Lng,
		&run.RawReadings,
		&run.Corrections,
		&run.Skipped,
		&run.Kept,
		&run.Cells,
	); err != nil {
		return nil, err
	}

	return &run, nil
}

const runColumns = `
	video_source, created_at, start_time, lat_sign, lng_sign,
	raw_readings, corrections, skipped, kept, cells
`

func (r *sqlRunRepository) ListRuns() ([]*Run, error) {
	rows, err := r.db.Query(
		"SELECT " + runColumns + " FROM runs ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run

	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *sqlRunRepository) GetRun(videoSource string) (*Run, error) {
	row := r.db.QueryRow(
		"SELECT "+runColumns+" FROM runs WHERE video_source = ?",
		videoSource,
	)

	run, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, videoSource)
	} else if err != nil {
		return nil, fmt.Errorf("scanning run %s: %w", videoSource, err)
	}

	return run, nil
}

func (r *sqlRunRepository) readings(videoSource, pointColumn, where string) ([]Reading, error) {
	q := fmt.Sprintf(
		"SELECT ts, %s FROM readings WHERE video_source = ?%s ORDER BY seq",
		pointColumn, where,
	)

	rows, err := r.db.Query(q, videoSource)
	if err != nil {
		return nil, fmt.Errorf("querying readings for %s: %w", videoSource, err)
	}
	defer rows.Close()

	var readings []Reading

	for rows.Next() {
		var reading Reading

		if err := rows.Scan(&reading.Time, &reading.Point); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}

		readings = append(readings, reading)
	}

	return readings, rows.Err()
}

func (r *sqlRunRepository) RawReadings(videoSource string) ([]Reading, error) {
	return r.readings(videoSource, "raw_point", "")
}

func (r *sqlRunRepository) CleanReadings(videoSource string) ([]Reading, error) {
	return r.readings(videoSource, "clean_point", " AND kept")
}
